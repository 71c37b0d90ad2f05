// Package metrics exports simulation counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"unbounded-life/pkg/algorithm"
	"unbounded-life/pkg/algorithm/hashlife"
	"unbounded-life/pkg/cellstate"
)

const namespace = "life"

// Metrics implements algorithm.Observer and holds the gauges the run loop
// updates after each emitted generation.
type Metrics struct {
	// GenerationsTotal counts computed generations by algorithm.
	GenerationsTotal *prometheus.CounterVec
	// GenerationSeconds measures the time spent computing one emitted state.
	GenerationSeconds *prometheus.HistogramVec
	// SwitchesTotal counts algorithm switches by source and target.
	SwitchesTotal *prometheus.CounterVec
	// Emitted counts states delivered to the consumer.
	Emitted prometheus.Counter
	// LiveCells is the population of the last emitted state.
	LiveCells prometheus.Gauge
	// HashLifeNodes and HashLifeCollections mirror hashlife.Stats.
	HashLifeNodes       prometheus.Gauge
	HashLifeCollections prometheus.Gauge

	registry *prometheus.Registry
}

var _ algorithm.Observer = (*Metrics)(nil)

// New registers every metric on a fresh registry together with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := newMetrics(reg)
	m.registry = reg
	return m
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GenerationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_computed_total",
			Help:      "Generations computed, by algorithm",
		}, []string{"algorithm"}),
		GenerationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time to compute one emitted state, by algorithm",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 10), // 50us to ~13s
		}, []string{"algorithm"}),
		SwitchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "algorithm_switches_total",
			Help:      "Algorithm switches, by source and target",
		}, []string{"from", "to"}),
		Emitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "states_emitted_total",
			Help:      "States delivered to the consumer",
		}),
		LiveCells: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_cells",
			Help:      "Live cells in the last emitted state",
		}),
		HashLifeNodes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "hashlife",
			Name:      "nodes",
			Help:      "Nodes in the HashLife canonical table",
		}),
		HashLifeCollections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "hashlife",
			Name:      "collections",
			Help:      "Node table collections run so far",
		}),
	}
}

// GenerationComputed implements algorithm.Observer.
func (m *Metrics) GenerationComputed(kind algorithm.Kind, elapsed time.Duration) {
	m.GenerationsTotal.WithLabelValues(kind.String()).Inc()
	m.GenerationSeconds.WithLabelValues(kind.String()).Observe(elapsed.Seconds())
}

// Switched implements algorithm.Observer.
func (m *Metrics) Switched(from, to algorithm.Kind) {
	m.SwitchesTotal.WithLabelValues(from.String(), to.String()).Inc()
}

// ObserveState records an emitted state.
func (m *Metrics) ObserveState(state cellstate.CellState) {
	m.Emitted.Inc()
	m.LiveCells.Set(float64(state.Len()))
}

// ObserveHashLife copies engine statistics into the gauges.
func (m *Metrics) ObserveHashLife(st hashlife.Stats) {
	m.HashLifeNodes.Set(float64(st.Nodes))
	m.HashLifeCollections.Set(float64(st.Collections))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("metrics listening", zap.String("addr", addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
