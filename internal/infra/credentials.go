package infra

import (
	corev1 "k8s.io/api/core/v1"

	"github.com/dc-tec/broker-renderer/internal/constants"
)

// CredentialReference points the broker at the Secret holding its password.
// Only the reference is rendered; the Secret itself is never read.
type CredentialReference struct {
	SecretName string
	Key        string
	// Explicit is true when the Secret was named in values rather than
	// derived from the release.
	Explicit bool
}

// ResolveCredential returns the password Secret reference for in.
func ResolveCredential(in RenderInput) CredentialReference {
	if name := in.Values.Redis.PasswordSecretName; name != "" {
		return CredentialReference{
			SecretName: name,
			Key:        constants.SecretKeyRedisPassword,
			Explicit:   true,
		}
	}
	return CredentialReference{
		SecretName: defaultPasswordSecretName(in),
		Key:        constants.SecretKeyRedisPassword,
	}
}

// EnvVar returns the container environment entry exposing the password.
func (c CredentialReference) EnvVar() corev1.EnvVar {
	return corev1.EnvVar{
		Name: constants.EnvRedisPassword,
		ValueFrom: &corev1.EnvVarSource{
			SecretKeyRef: &corev1.SecretKeySelector{
				LocalObjectReference: corev1.LocalObjectReference{Name: c.SecretName},
				Key:                  c.Key,
			},
		},
	}
}
