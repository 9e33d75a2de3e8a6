package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	Namespace = "chainrelay"

	ResultBroadcast = "broadcast"
	ResultDeferred  = "deferred"
	ResultFailed    = "failed"
)

// Metrics is safe to use as a nil pointer; every recorder is then a no-op.
type Metrics struct {
	submissions     *prometheus.CounterVec
	transitions     *prometheus.CounterVec
	refunds         *prometheus.CounterVec
	reconcileErrors *prometheus.CounterVec
	reconcileSteps  *prometheus.CounterVec
	watermark       *prometheus.GaugeVec
	lowBalance      *prometheus.GaugeVec
	resubmissions   *prometheus.CounterVec
	eventsPublished *prometheus.CounterVec
	outboxBacklog   prometheus.Gauge
	stepDuration    *prometheus.HistogramVec
}

// New creates the relay metrics and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "submissions_total",
			Help:      "Relayed transactions by chain and broadcast result",
		}, []string{"chain", "result"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "status_transitions_total",
			Help:      "Ledger rows moved out of PENDING by target status",
		}, []string{"chain", "status"}),
		refunds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "refunds_scheduled_total",
			Help:      "Refund events written to the outbox",
		}, []string{"chain"}),
		reconcileErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "reconcile",
			Name:      "errors_total",
			Help:      "Failed reconciliation steps",
		}, []string{"chain"}),
		reconcileSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "reconcile",
			Name:      "steps_total",
			Help:      "Committed reconciliation steps",
		}, []string{"chain"}),
		watermark: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "reconcile",
			Name:      "last_parsed_block",
			Help:      "Reconciliation watermark per wallet",
		}, []string{"chain", "address"}),
		lowBalance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "wallet",
			Name:      "below_min_balance",
			Help:      "1 when the wallet balance is below its configured minimum",
		}, []string{"chain", "address"}),
		resubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "resubmit",
			Name:      "attempts_total",
			Help:      "Re-broadcast attempts of unbroadcast rows by result",
		}, []string{"chain", "result"}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "outbox",
			Name:      "published_total",
			Help:      "Outbox events published by kind and status",
		}, []string{"kind", "status"}),
		outboxBacklog: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "outbox",
			Name:      "backlog",
			Help:      "Undispatched events seen by the last flush",
		}),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "reconcile",
			Name:      "step_duration_seconds",
			Help:      "Duration of one wallet reconciliation step",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"chain"}),
	}

	err := errors.Join(
		reg.Register(m.submissions),
		reg.Register(m.transitions),
		reg.Register(m.refunds),
		reg.Register(m.reconcileErrors),
		reg.Register(m.reconcileSteps),
		reg.Register(m.watermark),
		reg.Register(m.lowBalance),
		reg.Register(m.resubmissions),
		reg.Register(m.eventsPublished),
		reg.Register(m.outboxBacklog),
		reg.Register(m.stepDuration),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordSubmission(chain, result string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(chain, result).Inc()
}

func (m *Metrics) RecordTransitions(chain, status string, count int) {
	if m == nil || count == 0 {
		return
	}
	m.transitions.WithLabelValues(chain, status).Add(float64(count))
}

func (m *Metrics) RecordRefunds(chain string, count int) {
	if m == nil || count == 0 {
		return
	}
	m.refunds.WithLabelValues(chain).Add(float64(count))
}

func (m *Metrics) IncReconcileError(chain string) {
	if m == nil {
		return
	}
	m.reconcileErrors.WithLabelValues(chain).Inc()
}

// RecordStep marks a committed reconciliation step and moves the watermark gauge.
func (m *Metrics) RecordStep(chain, address string, lastParsedBlock uint64, seconds float64) {
	if m == nil {
		return
	}
	m.reconcileSteps.WithLabelValues(chain).Inc()
	m.watermark.WithLabelValues(chain, address).Set(float64(lastParsedBlock))
	m.stepDuration.WithLabelValues(chain).Observe(seconds)
}

func (m *Metrics) SetLowBalance(chain, address string, low bool) {
	if m == nil {
		return
	}
	v := 0.0
	if low {
		v = 1
	}
	m.lowBalance.WithLabelValues(chain, address).Set(v)
}

func (m *Metrics) RecordResubmission(chain, result string) {
	if m == nil {
		return
	}
	m.resubmissions.WithLabelValues(chain, result).Inc()
}

func (m *Metrics) RecordPublish(kind string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.eventsPublished.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) SetOutboxBacklog(n int) {
	if m == nil {
		return
	}
	m.outboxBacklog.Set(float64(n))
}
