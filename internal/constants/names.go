package constants

// Resource name suffixes appended to the release name.
const (
	SuffixRedis               = "-redis"
	SuffixRedisPasswordSecret = "-redis-password" // #nosec G101 -- This is a resource name suffix, not a credential
	SuffixRegistrySecret      = "-registry"
)

// ServiceAccountNameDefault is the ServiceAccount used when the chart does not create one.
const ServiceAccountNameDefault = "default"

// Well-known container and port names.
const (
	ContainerNameRedis = "redis"
	PortNameRedisDB    = "redis-db"
)

// Defaults for the identity supplied by the deployment tool.
const (
	DefaultReleaseService = "Helm"
	DefaultChartName      = "airflow"
)

// FieldOwner is the Server-Side Apply field manager used by the apply command.
const FieldOwner = "broker-renderer"
