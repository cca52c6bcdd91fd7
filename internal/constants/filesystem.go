package constants

// Mount paths used by the broker container.
const (
	PathRedisData = "/data"
)

// Volume names used by the broker pod. The same name is used for the
// ephemeral volume and for the volume claim template so the container mount
// does not depend on the storage mode.
const (
	VolumeRedisDB = "redis-db"
)
