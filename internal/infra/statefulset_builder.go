package infra

import (
	"maps"
	"strconv"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/dc-tec/broker-renderer/internal/constants"
)

// brokerLabels returns the labels of the StatefulSet itself. Global extra
// labels are added first so they can never override the identifying set.
func brokerLabels(in RenderInput) map[string]string {
	labels := make(map[string]string, len(in.Values.Labels)+5)
	maps.Copy(labels, in.Values.Labels)
	maps.Copy(labels, selectorLabels(in))
	labels[constants.LabelChart] = chartLabel(in.Chart)
	labels[constants.LabelHeritage] = in.Release.Service
	return labels
}

// selectorLabels returns the labels the StatefulSet selects its pods by.
func selectorLabels(in RenderInput) map[string]string {
	return map[string]string{
		constants.LabelTier:      constants.LabelValueTier,
		constants.LabelComponent: constants.LabelValueComponentRedis,
		constants.LabelRelease:   in.Release.Name,
	}
}

func buildPodLabels(in RenderInput) map[string]string {
	labels := make(map[string]string, len(in.Values.Labels)+3)
	maps.Copy(labels, in.Values.Labels)
	maps.Copy(labels, selectorLabels(in))
	return labels
}

// buildPodAnnotations writes the eviction flag first and user annotations
// after it, so a user-supplied key wins on collision.
func buildPodAnnotations(in RenderInput) map[string]string {
	redis := in.Values.Redis
	if redis.SafeToEvict == nil && len(redis.PodAnnotations) == 0 {
		return nil
	}

	annotations := make(map[string]string, len(redis.PodAnnotations)+1)
	if redis.SafeToEvict != nil {
		annotations[constants.AnnotationSafeToEvict] = strconv.FormatBool(*redis.SafeToEvict)
	}
	maps.Copy(annotations, redis.PodAnnotations)
	return annotations
}

func buildImagePullSecrets(in RenderInput) []corev1.LocalObjectReference {
	registry := in.Values.Registry
	if registry.SecretName == "" && len(registry.Connection) == 0 {
		return nil
	}
	return []corev1.LocalObjectReference{{Name: registrySecretName(in)}}
}

func buildBrokerContainer(in RenderInput, resolved ResolvedConfig, hooks *corev1.Lifecycle, credential CredentialReference) corev1.Container {
	image := in.Values.Images.Redis

	return corev1.Container{
		Name:            constants.ContainerNameRedis,
		Image:           brokerImage(in),
		ImagePullPolicy: image.PullPolicy,
		Command:         append([]string(nil), constants.RedisCommand...),
		Args:            append([]string(nil), constants.RedisArgs...),
		SecurityContext: resolved.ContainerSecurityContext,
		Lifecycle:       hooks,
		Resources:       *in.Values.Redis.Resources.DeepCopy(),
		Ports: []corev1.ContainerPort{
			{
				Name:          constants.PortNameRedisDB,
				Protocol:      corev1.ProtocolTCP,
				ContainerPort: in.Values.Ports.RedisDB,
			},
		},
		VolumeMounts: []corev1.VolumeMount{
			{
				Name:      constants.VolumeRedisDB,
				MountPath: constants.PathRedisData,
			},
		},
		Env: []corev1.EnvVar{
			credential.EnvVar(),
		},
	}
}

// buildStatefulSet assembles the broker StatefulSet from already resolved
// parts. It performs no validation of its own.
func buildStatefulSet(in RenderInput, resolved ResolvedConfig, storage StorageDecision, hooks *corev1.Lifecycle, credential CredentialReference) *appsv1.StatefulSet {
	redis := in.Values.Redis
	name := fullname(in)

	statefulSet := &appsv1.StatefulSet{
		TypeMeta: metav1.TypeMeta{
			APIVersion: appsv1.SchemeGroupVersion.String(),
			Kind:       "StatefulSet",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: in.Release.Namespace,
			Labels:    brokerLabels(in),
		},
		Spec: appsv1.StatefulSetSpec{
			ServiceName: name,
			Selector: &metav1.LabelSelector{
				MatchLabels: selectorLabels(in),
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels:      buildPodLabels(in),
					Annotations: buildPodAnnotations(in),
				},
				Spec: corev1.PodSpec{
					NodeSelector:                  resolved.NodeSelector,
					Affinity:                      resolved.Affinity,
					Tolerations:                   resolved.Tolerations,
					TopologySpreadConstraints:     resolved.TopologySpreadConstraints,
					SecurityContext:               resolved.PodSecurityContext,
					ServiceAccountName:            serviceAccountName(in),
					AutomountServiceAccountToken:  copyBool(redis.ServiceAccount.AutomountServiceAccountToken),
					PriorityClassName:             redis.PriorityClassName,
					TerminationGracePeriodSeconds: redis.TerminationGracePeriodSeconds,
					ImagePullSecrets:              buildImagePullSecrets(in),
					Containers: []corev1.Container{
						buildBrokerContainer(in, resolved, hooks, credential),
					},
				},
			},
		},
	}

	storage.applyTo(&statefulSet.Spec)
	return statefulSet
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	return ptr.To(*b)
}
