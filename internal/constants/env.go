package constants

// Environment variables injected into the broker container.
const (
	EnvRedisPassword = "REDIS_PASSWORD" // #nosec G101 -- This is an environment variable name constant, not a credential
)

// Environment variables read by the renderer to learn the deployment identity.
const (
	EnvReleaseName      = "RELEASE_NAME"
	EnvReleaseNamespace = "RELEASE_NAMESPACE"
	EnvReleaseService   = "RELEASE_SERVICE"
	EnvChartName        = "CHART_NAME"
	EnvChartVersion     = "CHART_VERSION"
)

// SecretKeyRedisPassword is the key holding the broker password in its Secret.
const SecretKeyRedisPassword = "password" // #nosec G101 -- This is a Secret key name, not a credential
