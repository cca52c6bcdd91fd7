/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package v1alpha1 contains the values schema consumed by the broker renderer.
// Field names and JSON tags mirror the chart values file so an existing
// values.yaml can be decoded without translation.
package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"
)

// Values is the root of the configuration tree. Top-level placement and
// security fields are the deployment-wide defaults that component blocks may
// override.
type Values struct {
	// Executor selects the task-dispatch strategy of the orchestration platform.
	// Several executors may be listed, separated by commas.
	Executor string `json:"executor,omitempty"`

	// Labels are extra labels added to every rendered object and pod template.
	Labels map[string]string `json:"labels,omitempty"`

	NodeSelector              map[string]string                 `json:"nodeSelector,omitempty"`
	Affinity                  *corev1.Affinity                  `json:"affinity,omitempty"`
	Tolerations               []corev1.Toleration               `json:"tolerations,omitempty"`
	TopologySpreadConstraints []corev1.TopologySpreadConstraint `json:"topologySpreadConstraints,omitempty"`

	// SecurityContexts holds the deployment-wide pod and container security contexts.
	SecurityContexts GlobalSecurityContexts `json:"securityContexts,omitempty"`

	// ContainerLifecycleHooks is the deployment-wide default for container lifecycle hooks.
	ContainerLifecycleHooks *corev1.Lifecycle `json:"containerLifecycleHooks,omitempty"`

	Registry RegistryValues `json:"registry,omitempty"`
	Ports    PortValues     `json:"ports,omitempty"`
	Images   ImageValues    `json:"images,omitempty"`

	Redis RedisValues `json:"redis,omitempty"`
}

// GlobalSecurityContexts are the deployment-wide security contexts.
// The container scope uses the plural key for compatibility with existing values files.
type GlobalSecurityContexts struct {
	Pod        *corev1.PodSecurityContext `json:"pod,omitempty"`
	Containers *corev1.SecurityContext    `json:"containers,omitempty"`
}

// ComponentSecurityContexts are the security context overrides of a single component.
type ComponentSecurityContexts struct {
	Pod       *corev1.PodSecurityContext `json:"pod,omitempty"`
	Container *corev1.SecurityContext    `json:"container,omitempty"`
}

// RegistryValues configures access to a private image registry.
type RegistryValues struct {
	// SecretName references an existing docker-registry Secret.
	SecretName string `json:"secretName,omitempty"`
	// Connection describes registry credentials from which the surrounding
	// chart provisions a pull Secret. Only its presence matters here.
	Connection map[string]string `json:"connection,omitempty"`
}

// PortValues lists the ports exposed by chart components.
type PortValues struct {
	RedisDB int32 `json:"redisDB,omitempty"`
}

// ImageValues lists the images used by chart components.
type ImageValues struct {
	Redis ImageRef `json:"redis,omitempty"`
}

// ImageRef identifies a container image.
type ImageRef struct {
	Repository string `json:"repository,omitempty"`
	Tag        string `json:"tag,omitempty"`
	// Digest pins the image by content. When set it takes precedence over Tag.
	Digest     string            `json:"digest,omitempty"`
	PullPolicy corev1.PullPolicy `json:"pullPolicy,omitempty"`
}

// RedisValues configures the in-cluster broker.
type RedisValues struct {
	// Enabled is the feature flag half of the inclusion gate. The executor
	// must also require a broker for anything to be rendered.
	Enabled *bool `json:"enabled,omitempty"`

	TerminationGracePeriodSeconds *int64 `json:"terminationGracePeriodSeconds,omitempty"`
	PriorityClassName             string `json:"priorityClassName,omitempty"`

	Persistence PersistenceValues `json:"persistence,omitempty"`

	Resources corev1.ResourceRequirements `json:"resources,omitempty"`

	// PasswordSecretName names an externally managed Secret holding the
	// broker password under the "password" key.
	PasswordSecretName string `json:"passwordSecretName,omitempty"`

	// SafeToEvict sets the cluster-autoscaler safe-to-evict pod annotation.
	// The annotation is omitted when unset.
	SafeToEvict *bool `json:"safeToEvict,omitempty"`

	PodAnnotations map[string]string `json:"podAnnotations,omitempty"`

	NodeSelector              map[string]string                 `json:"nodeSelector,omitempty"`
	Affinity                  *corev1.Affinity                  `json:"affinity,omitempty"`
	Tolerations               []corev1.Toleration               `json:"tolerations,omitempty"`
	TopologySpreadConstraints []corev1.TopologySpreadConstraint `json:"topologySpreadConstraints,omitempty"`

	// SecurityContext is the legacy pod security context. SecurityContexts.Pod
	// takes precedence when both are set.
	SecurityContext  *corev1.PodSecurityContext `json:"securityContext,omitempty"`
	SecurityContexts ComponentSecurityContexts  `json:"securityContexts,omitempty"`

	// ContainerLifecycleHooks may reference other values through template
	// expressions, for example {{ .Release.Name }}.
	ContainerLifecycleHooks *corev1.Lifecycle `json:"containerLifecycleHooks,omitempty"`

	ServiceAccount ServiceAccountValues `json:"serviceAccount,omitempty"`
}

// PersistenceValues selects durable storage for the broker.
type PersistenceValues struct {
	Enabled bool `json:"enabled,omitempty"`
	// Size is a Kubernetes quantity such as "8Gi".
	Size string `json:"size,omitempty"`
	// StorageClassName is omitted from the claim when empty so the cluster default applies.
	StorageClassName string            `json:"storageClassName,omitempty"`
	Annotations      map[string]string `json:"annotations,omitempty"`
}

// ServiceAccountValues selects the broker pod's ServiceAccount.
type ServiceAccountValues struct {
	Create *bool  `json:"create,omitempty"`
	Name   string `json:"name,omitempty"`
	// AutomountServiceAccountToken is copied onto the pod spec when set.
	AutomountServiceAccountToken *bool `json:"automountServiceAccountToken,omitempty"`
}

// RedisEnabled reports whether the broker component flag is on.
func (v *Values) RedisEnabled() bool {
	return v.Redis.Enabled != nil && *v.Redis.Enabled
}

// CreatesServiceAccount reports whether the chart provisions a dedicated
// ServiceAccount for the broker.
func (s ServiceAccountValues) CreatesServiceAccount() bool {
	return s.Create != nil && *s.Create
}
