package infra

import (
	"strings"

	"github.com/dc-tec/broker-renderer/internal/constants"
)

// fullname returns the release-scoped name shared by the StatefulSet and its
// governing Service.
func fullname(in RenderInput) string {
	return in.Release.Name + constants.SuffixRedis
}

// brokerImage returns the image reference for the broker container.
func brokerImage(in RenderInput) string {
	return in.Values.Images.Redis.Reference()
}

// defaultPasswordSecretName returns the name of the password Secret the
// surrounding chart provisions when no external Secret is configured.
func defaultPasswordSecretName(in RenderInput) string {
	return in.Release.Name + constants.SuffixRedisPasswordSecret
}

// registrySecretName returns the image pull Secret name.
func registrySecretName(in RenderInput) string {
	if name := in.Values.Registry.SecretName; name != "" {
		return name
	}
	return in.Release.Name + constants.SuffixRegistrySecret
}

// serviceAccountName returns the ServiceAccount the broker pods run as.
// A chart-created account defaults to the fullname; otherwise the namespace
// default account is used unless one is named explicitly.
func serviceAccountName(in RenderInput) string {
	sa := in.Values.Redis.ServiceAccount
	if sa.Name != "" {
		return sa.Name
	}
	if sa.CreatesServiceAccount() {
		return fullname(in)
	}
	return constants.ServiceAccountNameDefault
}

// chartLabel returns "<name>-<version>" with '+' replaced so that semver
// build metadata stays a valid label value.
func chartLabel(chart Chart) string {
	return strings.ReplaceAll(chart.Name+"-"+chart.Version, "+", "_")
}

// templateSource is the path reported in the "# Source:" comment of the manifest.
func templateSource(chart Chart) string {
	return chart.Name + "/templates/redis/redis-statefulset.yaml"
}
