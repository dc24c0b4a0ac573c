// Package metrics exposes per-operation call statistics as Prometheus
// collectors. An Instrumentor subscribes to a client emitter's before-call
// and after-call events, so instrumentation never touches the invocation
// pipeline itself.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thejcannon/botocore/pkg/hooks"
)

// Instrumentor tracks operation invocation statistics.
type Instrumentor struct {
	mu sync.Mutex

	// starts maps an in-flight invocation ID to its start time.
	starts map[string]time.Time

	callsTotal     *prometheus.CounterVec
	successesTotal *prometheus.CounterVec
	durationHist   *prometheus.HistogramVec

	registerer prometheus.Registerer
	registered bool

	// now is swappable for tests.
	now func() time.Time
}

func newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "botocore",
			Subsystem: "client",
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func newHistogramVec(name, help string, buckets []float64, labels []string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "botocore",
			Subsystem: "client",
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

// NewInstrumentor creates a call instrumentor. A nil registerer falls back to
// the process default.
func NewInstrumentor(registerer prometheus.Registerer) *Instrumentor {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Instrumentor{
		starts:         make(map[string]time.Time),
		registerer:     registerer,
		now:            time.Now,
		callsTotal:     newCounterVec("calls_total", "Total number of operation invocations started", []string{"service", "operation"}),
		successesTotal: newCounterVec("successes_total", "Total number of operation invocations that completed successfully", []string{"service", "operation"}),
		durationHist:   newHistogramVec("call_duration_seconds", "Wall-clock duration of successful operation invocations", []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, []string{"service", "operation"}),
	}
}

// Register registers the Prometheus collectors. Safe to call multiple times.
func (m *Instrumentor) Register() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registered {
		return nil
	}

	collectors := []prometheus.Collector{
		m.callsTotal,
		m.successesTotal,
		m.durationHist,
	}
	for _, c := range collectors {
		if err := m.registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}

	m.registered = true
	return nil
}

// Attach subscribes the instrumentor to an emitter. Handlers never return an
// error, so instrumentation can never abort a call.
func (m *Instrumentor) Attach(em hooks.Emitter) {
	em.Register("before-call", func(ev hooks.Event) error {
		m.recordStart(ev)
		return nil
	})
	em.Register("after-call", func(ev hooks.Event) error {
		m.recordSuccess(ev)
		return nil
	})
}

func (m *Instrumentor) recordStart(ev hooks.Event) {
	m.mu.Lock()
	if ev.InvocationID != "" {
		m.starts[ev.InvocationID] = m.now()
	}
	m.mu.Unlock()

	m.callsTotal.WithLabelValues(ev.Service, ev.Operation).Inc()
}

func (m *Instrumentor) recordSuccess(ev hooks.Event) {
	var elapsed time.Duration
	var timed bool

	m.mu.Lock()
	if start, ok := m.starts[ev.InvocationID]; ok {
		elapsed = m.now().Sub(start)
		timed = true
		delete(m.starts, ev.InvocationID)
	}
	m.mu.Unlock()

	m.successesTotal.WithLabelValues(ev.Service, ev.Operation).Inc()
	if timed {
		m.durationHist.WithLabelValues(ev.Service, ev.Operation).Observe(elapsed.Seconds())
	}
}

// InFlight returns the number of invocations that started but have not
// completed. Failed calls never publish after-call, so their entries are
// dropped here rather than timed.
func (m *Instrumentor) InFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.starts)
}

// Forget discards the start record of an invocation that will never publish
// after-call, such as one that ended in a service error.
func (m *Instrumentor) Forget(invocationID string) {
	m.mu.Lock()
	delete(m.starts, invocationID)
	m.mu.Unlock()
}
