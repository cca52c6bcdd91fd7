package infra

import (
	"fmt"
	"maps"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	redisv1alpha1 "github.com/dc-tec/broker-renderer/api/v1alpha1"
	"github.com/dc-tec/broker-renderer/internal/constants"
	operatorerrors "github.com/dc-tec/broker-renderer/internal/errors"
)

// StorageMode names the volume declaration kind of a StorageDecision.
type StorageMode string

const (
	StorageModePersistent StorageMode = "persistent"
	StorageModeEphemeral  StorageMode = "ephemeral"
)

// StorageDecision is either PersistentStorage or EphemeralStorage. Exactly one
// of them contributes the broker data volume to a StatefulSet.
type StorageDecision interface {
	Mode() StorageMode
	applyTo(spec *appsv1.StatefulSetSpec)
}

// PersistentStorage declares the data volume as a claim template, so every
// replica gets its own volume that survives pod restarts.
type PersistentStorage struct {
	Claim corev1.PersistentVolumeClaim
}

// Mode implements StorageDecision.
func (PersistentStorage) Mode() StorageMode { return StorageModePersistent }

func (s PersistentStorage) applyTo(spec *appsv1.StatefulSetSpec) {
	spec.VolumeClaimTemplates = append(spec.VolumeClaimTemplates, *s.Claim.DeepCopy())
}

// EphemeralStorage declares the data volume as a pod-lifetime emptyDir.
type EphemeralStorage struct {
	Volume corev1.Volume
}

// Mode implements StorageDecision.
func (EphemeralStorage) Mode() StorageMode { return StorageModeEphemeral }

func (s EphemeralStorage) applyTo(spec *appsv1.StatefulSetSpec) {
	spec.Template.Spec.Volumes = append(spec.Template.Spec.Volumes, *s.Volume.DeepCopy())
}

// DecideStorage selects the data volume declaration from the persistence
// settings. An unparsable size is a permanent configuration error.
func DecideStorage(persistence redisv1alpha1.PersistenceValues) (StorageDecision, error) {
	if !persistence.Enabled {
		return EphemeralStorage{Volume: buildEmptyDirVolume()}, nil
	}

	claim, err := buildStatefulSetPVC(persistence)
	if err != nil {
		return nil, operatorerrors.WrapPermanentConfig(err)
	}
	return PersistentStorage{Claim: claim}, nil
}

func buildEmptyDirVolume() corev1.Volume {
	return corev1.Volume{
		Name: constants.VolumeRedisDB,
		VolumeSource: corev1.VolumeSource{
			EmptyDir: &corev1.EmptyDirVolumeSource{},
		},
	}
}

func buildStatefulSetPVC(persistence redisv1alpha1.PersistenceValues) (corev1.PersistentVolumeClaim, error) {
	size, err := resource.ParseQuantity(persistence.Size)
	if err != nil {
		return corev1.PersistentVolumeClaim{}, fmt.Errorf("invalid redis.persistence.size %q: %w", persistence.Size, err)
	}

	pvc := corev1.PersistentVolumeClaim{
		ObjectMeta: metav1.ObjectMeta{
			Name: constants.VolumeRedisDB,
		},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{
				corev1.ReadWriteOnce,
			},
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{
					corev1.ResourceStorage: size,
				},
			},
		},
	}

	if persistence.StorageClassName != "" {
		pvc.Spec.StorageClassName = ptr.To(persistence.StorageClassName)
	}
	if len(persistence.Annotations) > 0 {
		pvc.Annotations = maps.Clone(persistence.Annotations)
	}

	return pvc, nil
}
