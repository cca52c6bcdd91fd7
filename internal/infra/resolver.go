package infra

import (
	"maps"

	corev1 "k8s.io/api/core/v1"

	redisv1alpha1 "github.com/dc-tec/broker-renderer/api/v1alpha1"
	"github.com/dc-tec/broker-renderer/internal/layered"
)

// ResolvedConfig holds one concrete value per overridable field after the
// component layer has been consulted ahead of the global layer. Values are deep
// copies, so the rendered object never aliases the input values tree.
type ResolvedConfig struct {
	NodeSelector              map[string]string
	Affinity                  *corev1.Affinity
	Tolerations               []corev1.Toleration
	TopologySpreadConstraints []corev1.TopologySpreadConstraint
	PodSecurityContext        *corev1.PodSecurityContext
	ContainerSecurityContext  *corev1.SecurityContext
	LifecycleHooks            *corev1.Lifecycle
}

// ResolveConfig resolves each overridable field independently. A component
// value that is present and non-empty replaces the global value as a whole;
// the two are never merged.
func ResolveConfig(values *redisv1alpha1.Values) ResolvedConfig {
	redis := values.Redis

	resolved := ResolvedConfig{
		NodeSelector: maps.Clone(layered.Map(redis.NodeSelector, values.NodeSelector)),
		Affinity:     layered.Pointer(redis.Affinity, values.Affinity).DeepCopy(),
		PodSecurityContext: layered.Pointer(
			redis.SecurityContexts.Pod,
			redis.SecurityContext,
			values.SecurityContexts.Pod,
		).DeepCopy(),
		ContainerSecurityContext: layered.Pointer(
			redis.SecurityContexts.Container,
			values.SecurityContexts.Containers,
		).DeepCopy(),
		LifecycleHooks: layered.Pointer(redis.ContainerLifecycleHooks, values.ContainerLifecycleHooks).DeepCopy(),
	}

	if tolerations := layered.Slice(redis.Tolerations, values.Tolerations); tolerations != nil {
		resolved.Tolerations = make([]corev1.Toleration, len(tolerations))
		for i := range tolerations {
			tolerations[i].DeepCopyInto(&resolved.Tolerations[i])
		}
	}
	if constraints := layered.Slice(redis.TopologySpreadConstraints, values.TopologySpreadConstraints); constraints != nil {
		resolved.TopologySpreadConstraints = make([]corev1.TopologySpreadConstraint, len(constraints))
		for i := range constraints {
			constraints[i].DeepCopyInto(&resolved.TopologySpreadConstraints[i])
		}
	}

	return resolved
}
