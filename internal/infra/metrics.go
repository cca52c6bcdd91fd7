package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

// Render outcomes recorded by rendersTotal.
const (
	outcomeRendered   = "rendered"
	outcomeSuppressed = "suppressed"
	outcomeFailed     = "failed"
)

// Apply actions recorded by applyTotal.
const (
	actionApplied = "applied"
	actionPruned  = "pruned"
	actionSkipped = "skipped"
	actionFailed  = "failed"
)

var (
	// rendersTotal tracks renders by outcome and gate reason.
	rendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "broker",
			Subsystem: "render",
			Name:      "total",
			Help:      "Total number of broker renders by outcome",
		},
		[]string{"namespace", "release", "outcome", "reason"},
	)

	// renderStorageModeTotal tracks rendered brokers by data volume kind.
	renderStorageModeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "broker",
			Subsystem: "render",
			Name:      "storage_mode_total",
			Help:      "Total number of rendered brokers by data volume kind",
		},
		[]string{"namespace", "release", "mode"},
	)

	// renderIncluded reports whether the last render emitted the broker (1) or not (0).
	renderIncluded = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "broker",
			Subsystem: "render",
			Name:      "included",
			Help:      "Whether the last render emitted the broker StatefulSet (1) or not (0)",
		},
		[]string{"namespace", "release"},
	)

	// applyTotal tracks cluster apply attempts by action.
	applyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "broker",
			Subsystem: "apply",
			Name:      "total",
			Help:      "Total number of cluster apply attempts by action",
		},
		[]string{"namespace", "release", "action"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		rendersTotal,
		renderStorageModeTotal,
		renderIncluded,
		applyTotal,
	)
}

// Metrics records render and apply metrics for one release.
type Metrics struct {
	namespace string
	release   string
}

// NewMetrics creates a new Metrics instance for the given release.
func NewMetrics(namespace, release string) *Metrics {
	return &Metrics{
		namespace: namespace,
		release:   release,
	}
}

// RecordSuppressed records a render stopped by the inclusion gate.
func (m *Metrics) RecordSuppressed(decision RenderDecision) {
	rendersTotal.WithLabelValues(m.namespace, m.release, outcomeSuppressed, decision.Reason).Inc()
	renderIncluded.WithLabelValues(m.namespace, m.release).Set(0)
}

// RecordRendered records a broker that was fully assembled, with its data
// volume kind.
func (m *Metrics) RecordRendered(decision RenderDecision, mode StorageMode) {
	rendersTotal.WithLabelValues(m.namespace, m.release, outcomeRendered, decision.Reason).Inc()
	renderStorageModeTotal.WithLabelValues(m.namespace, m.release, string(mode)).Inc()
	renderIncluded.WithLabelValues(m.namespace, m.release).Set(1)
}

// RecordFailure records a render that failed after the gate opened. Nothing
// was emitted, so the broker counts as not included.
func (m *Metrics) RecordFailure(reason string) {
	rendersTotal.WithLabelValues(m.namespace, m.release, outcomeFailed, reason).Inc()
	renderIncluded.WithLabelValues(m.namespace, m.release).Set(0)
}

// RecordApply records a cluster apply action.
func (m *Metrics) RecordApply(action string) {
	applyTotal.WithLabelValues(m.namespace, m.release, action).Inc()
}
