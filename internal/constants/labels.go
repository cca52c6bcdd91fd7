package constants

// Label keys stamped on every object rendered for the broker.
const (
	LabelTier      = "tier"
	LabelComponent = "component"
	LabelRelease   = "release"
	LabelChart     = "chart"
	LabelHeritage  = "heritage"
)

// Common label values.
const (
	LabelValueTier           = "airflow"
	LabelValueComponentRedis = "redis"
)
