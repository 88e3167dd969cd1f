// Package metrics records batch import counters in a private Prometheus
// registry and exports them in text exposition format, for pickup by a
// node exporter textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driven"
)

const namespace = "finderbridge"

// Ensure Recorder implements the interface.
var _ driven.ImportMetrics = (*Recorder)(nil)

// Recorder implements driven.ImportMetrics.
type Recorder struct {
	path     string
	registry *prometheus.Registry

	wells         *prometheus.CounterVec
	batches       prometheus.Counter
	batchErrors   *prometheus.CounterVec
	batchWells    *prometheus.GaugeVec
	batchDuration prometheus.Gauge
	lastBatch     prometheus.Gauge
}

// NewRecorder creates a recorder exporting to path.
// An empty path keeps metrics in memory only.
func NewRecorder(path string) *Recorder {
	r := &Recorder{
		path:     path,
		registry: prometheus.NewRegistry(),
		wells: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wells_imported_total",
			Help:      "Wells processed by batch imports, by outcome.",
		}, []string{"result"}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Batch imports completed.",
		}),
		batchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_query_errors_total",
			Help:      "Failed batch-level queries, by query.",
		}, []string{"query"}),
		batchWells: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_batch_wells",
			Help:      "Wells in the last batch, by outcome.",
		}, []string{"result"}),
		batchDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_batch_duration_seconds",
			Help:      "Duration of the last batch import.",
		}),
		lastBatch: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_batch_timestamp_seconds",
			Help:      "Unix time the last batch import finished.",
		}),
	}
	r.registry.MustRegister(r.wells, r.batches, r.batchErrors, r.batchWells, r.batchDuration, r.lastBatch)
	return r
}

// ObserveWell counts one imported well.
func (r *Recorder) ObserveWell(ok bool) {
	r.wells.WithLabelValues(result(ok)).Inc()
}

// ObserveBatch records the outcome of a whole batch.
func (r *Recorder) ObserveBatch(report *domain.ImportReport) {
	if report == nil {
		return
	}
	r.batches.Inc()
	r.batchWells.WithLabelValues(result(true)).Set(float64(report.Loaded()))
	r.batchWells.WithLabelValues(result(false)).Set(float64(report.Failed()))
	r.batchDuration.Set(report.Duration().Seconds())
	if !report.FinishedAt.IsZero() {
		r.lastBatch.Set(float64(report.FinishedAt.Unix()))
	}
	if report.StateErr != nil {
		r.batchErrors.WithLabelValues("states").Inc()
	}
	if report.TopsErr != nil {
		r.batchErrors.WithLabelValues("tops").Inc()
	}
}

// Export writes the registry to the textfile. No-op without a path.
func (r *Recorder) Export() error {
	if r.path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(r.path, r.registry)
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}
