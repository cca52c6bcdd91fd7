package constants

// Broker process invocation. The password is expanded by the shell from the
// environment so it never appears in the manifest.
var (
	RedisCommand = []string{"/bin/sh"}
	RedisArgs    = []string{"-c", "redis-server --requirepass ${" + EnvRedisPassword + "}"}
)
