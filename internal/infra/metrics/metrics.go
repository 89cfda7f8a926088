package metrics

import (
	"context"
	"net/http"
	"time"

	"tablekeeper/internal/domain/event"
	"tablekeeper/internal/domain/table"
	"tablekeeper/internal/pkg/breaker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tablekeeper"

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	allocations       *prometheus.CounterVec
	allocationRetries prometheus.Histogram
	events            *prometheus.CounterVec
	autoReleased      prometheus.Counter
	sweepDuration     prometheus.Histogram
	breakerState      *prometheus.GaugeVec
	breakerTrips      *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		allocations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocations_total",
			Help:      "Reservation allocation attempts by outcome",
		}, []string{"outcome"}),
		allocationRetries: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "allocation_cas_attempts",
			Help:      "Compare-and-swap attempts needed per allocation",
			Buckets:   []float64{1, 2, 3, 4, 5},
		}),
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Domain events delivered by kind",
		}, []string{"kind"}),
		autoReleased: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auto_released_total",
			Help:      "Occupied tables released by the auto-release sweep",
		}),
		sweepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "auto_release_sweep_seconds",
			Help:      "Auto-release sweep duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		breakerState: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		}, []string{"breaker"}),
		breakerTrips: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breaker_transitions_total",
			Help:      "Circuit breaker state transitions",
		}, []string{"breaker", "from", "to"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveAllocation records one CreateReservation outcome.
func (m *Metrics) ObserveAllocation(outcome string, attempts int) {
	m.allocations.WithLabelValues(outcome).Inc()
	if attempts > 0 {
		m.allocationRetries.Observe(float64(attempts))
	}
}

func (m *Metrics) ObserveSweep(released int, took time.Duration) {
	m.autoReleased.Add(float64(released))
	m.sweepDuration.Observe(took.Seconds())
}

func (m *Metrics) ObserveHTTP(method, route, status string, took time.Duration) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

// BreakerHook returns an OnStateChange callback for the named breaker.
func (m *Metrics) BreakerHook(name string) func(from, to breaker.State) {
	m.breakerState.WithLabelValues(name).Set(float64(breaker.StateClosed))
	return func(from, to breaker.State) {
		m.breakerState.WithLabelValues(name).Set(float64(to))
		m.breakerTrips.WithLabelValues(name, from.String(), to.String()).Inc()
	}
}

// HandleEvent counts delivered domain events; register it on the bus.
func (m *Metrics) HandleEvent(_ context.Context, e event.Event) error {
	m.events.WithLabelValues(string(e.Kind())).Inc()
	return nil
}

// TableLister is satisfied by the table registry.
type TableLister interface {
	List() ([]table.Table, error)
}

// RegisterTableCollector exposes live table counts per status at scrape time.
func (m *Metrics) RegisterTableCollector(lister TableLister) error {
	return m.registry.Register(&tableCollector{lister: lister})
}

// BusStats is satisfied by the event bus.
type BusStats interface {
	Published() uint64
	Dropped() uint64
	Failed() uint64
}

func (m *Metrics) RegisterBusStats(stats BusStats) error {
	for name, fn := range map[string]func() uint64{
		"events_published_total":         stats.Published,
		"events_dropped_total":           stats.Dropped,
		"events_subscriber_errors_total": stats.Failed,
	} {
		err := m.registry.Register(prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      "Event bus counter " + name,
		}, func() float64 { return float64(fn()) }))
		if err != nil {
			return err
		}
	}
	return nil
}

// SweepStats is satisfied by the auto-release worker.
type SweepStats interface {
	Stats() (lastRun time.Time, released int64)
}

// RegisterSweepStats exposes when the periodic sweep last completed. The gauge
// stays at zero until the first sweep.
func (m *Metrics) RegisterSweepStats(stats SweepStats) error {
	return m.registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "auto_release_last_sweep_timestamp_seconds",
		Help:      "Unix time of the last completed auto-release sweep",
	}, func() float64 {
		lastRun, _ := stats.Stats()
		if lastRun.IsZero() {
			return 0
		}
		return float64(lastRun.Unix())
	}))
}

var tableStatusDesc = prometheus.NewDesc(
	prometheus.BuildFQName(namespace, "", "tables"),
	"Tables by current status",
	[]string{"status"}, nil,
)

type tableCollector struct {
	lister TableLister
}

func (c *tableCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- tableStatusDesc
}

func (c *tableCollector) Collect(ch chan<- prometheus.Metric) {
	tables, err := c.lister.List()
	if err != nil {
		return
	}
	counts := map[table.Status]int{
		table.StatusFree:        0,
		table.StatusReserved:    0,
		table.StatusOccupied:    0,
		table.StatusMaintenance: 0,
	}
	for _, t := range tables {
		counts[t.Status()]++
	}
	for status, n := range counts {
		ch <- prometheus.MustNewConstMetric(tableStatusDesc, prometheus.GaugeValue, float64(n), status.String())
	}
}
