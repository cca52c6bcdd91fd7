package logging

import (
	"sort"

	"github.com/go-logr/logr"
)

// Audit event types emitted when the renderer changes cluster state.
const (
	EventBrokerApplied = "broker_statefulset_applied"
	EventBrokerPruned  = "broker_statefulset_pruned"
)

// LogAuditEvent logs a structured audit event for actions that mutate the cluster.
// Audit events are distinct from regular debug/info logs and are tagged
// with "audit=true" for easy filtering in log aggregation systems.
// Fields are emitted in key order so identical events produce identical lines.
func LogAuditEvent(logger logr.Logger, eventType string, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	kvs := make([]interface{}, 0, 4+2*len(keys))
	kvs = append(kvs, "audit", "true", "event_type", eventType)
	for _, key := range keys {
		kvs = append(kvs, key, fields[key])
	}
	logger.WithValues(kvs...).Info("Broker audit event")
}
