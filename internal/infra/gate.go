package infra

import (
	"fmt"
	"strings"

	redisv1alpha1 "github.com/dc-tec/broker-renderer/api/v1alpha1"
)

// Reasons reported by DecideRender.
const (
	ReasonRendered              = "Rendered"
	ReasonComponentDisabled     = "ComponentDisabled"
	ReasonExecutorWithoutBroker = "ExecutorWithoutBroker"
)

// RenderDecision is the outcome of the inclusion gate.
type RenderDecision struct {
	Render  bool
	Reason  string
	Message string
}

// ShouldRender reports whether the broker is part of the deployment: the
// component must be enabled and at least one configured executor must need a
// broker. Unknown executors never need one.
func ShouldRender(enabled bool, executors []redisv1alpha1.ExecutorMode) bool {
	if !enabled {
		return false
	}
	for _, executor := range executors {
		if executor.RequiresBroker() {
			return true
		}
	}
	return false
}

// DecideRender evaluates the inclusion gate for values.
func DecideRender(values *redisv1alpha1.Values) RenderDecision {
	executors := values.ExecutorModes()
	enabled := values.RedisEnabled()

	switch {
	case ShouldRender(enabled, executors):
		return RenderDecision{
			Render:  true,
			Reason:  ReasonRendered,
			Message: fmt.Sprintf("executor %s uses the broker", joinExecutors(executors)),
		}
	case !enabled:
		return RenderDecision{
			Reason:  ReasonComponentDisabled,
			Message: "redis.enabled is false",
		}
	default:
		return RenderDecision{
			Reason:  ReasonExecutorWithoutBroker,
			Message: fmt.Sprintf("executor %s does not use the broker", joinExecutors(executors)),
		}
	}
}

func joinExecutors(executors []redisv1alpha1.ExecutorMode) string {
	if len(executors) == 0 {
		return `""`
	}
	names := make([]string, 0, len(executors))
	for _, executor := range executors {
		names = append(names, string(executor))
	}
	return fmt.Sprintf("%q", strings.Join(names, ","))
}
