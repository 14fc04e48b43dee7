package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shiftpay"

// Edit results reported by AttendanceEdits.
const (
	EditApplied        = "applied"
	EditRejectedLocked = "rejected_locked"
)

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	registry *prometheus.Registry

	// AttendanceCommits counts successful batch approvals.
	AttendanceCommits prometheus.Counter

	// AttendanceCommittedRecords counts records locked by batch approvals.
	AttendanceCommittedRecords prometheus.Counter

	// AttendanceEdits counts attendance edits by result.
	AttendanceEdits *prometheus.CounterVec

	// PayrollRuns counts payroll computations by kind (summary, statement, pdf, xlsx).
	PayrollRuns *prometheus.CounterVec

	// ShiftSubmissions counts accepted half-month submissions.
	ShiftSubmissions prometheus.Counter

	// ActionLogsPruned counts action log entries removed by retention.
	ActionLogsPruned prometheus.Counter

	// EventSubscribers is the number of open event streams.
	EventSubscribers prometheus.Gauge
}

// New registers every collector on a fresh registry, together with the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		AttendanceCommits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attendance_commits_total",
			Help:      "Total number of attendance batch approvals",
		}),

		AttendanceCommittedRecords: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attendance_committed_records_total",
			Help:      "Total number of attendance records locked by batch approvals",
		}),

		AttendanceEdits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attendance_edits_total",
			Help:      "Total number of attendance edits by result",
		}, []string{"result"}),

		PayrollRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payroll_runs_total",
			Help:      "Total number of payroll computations by kind",
		}, []string{"kind"}),

		ShiftSubmissions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shift_submissions_total",
			Help:      "Total number of accepted shift submissions",
		}),

		ActionLogsPruned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "action_logs_pruned_total",
			Help:      "Total number of action log entries removed by retention",
		}),

		EventSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "event_subscribers",
			Help:      "Current number of open event streams",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// IncCommit records one batch approval that locked n records.
func (m *Metrics) IncCommit(n int) {
	m.AttendanceCommits.Inc()
	m.AttendanceCommittedRecords.Add(float64(n))
}

// IncEdit records an attendance edit outcome.
func (m *Metrics) IncEdit(result string) {
	m.AttendanceEdits.WithLabelValues(result).Inc()
}

// IncPayrollRun records one payroll computation.
func (m *Metrics) IncPayrollRun(kind string) {
	m.PayrollRuns.WithLabelValues(kind).Inc()
}

// IncShiftSubmission records one accepted submission.
func (m *Metrics) IncShiftSubmission() {
	m.ShiftSubmissions.Inc()
}

// IncPruned records pruned action log entries.
func (m *Metrics) IncPruned(n int64) {
	m.ActionLogsPruned.Add(float64(n))
}
