// Package metrics records the outcome of an attendance run in Prometheus
// format, for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"attendcli/pkg/contracts/domain"
)

const (
	namespace = "attendance"
	subsystem = "run"
)

// Recorder holds the metrics of a single run on a private registry, so no Go
// runtime or process collectors end up in the textfile.
type Recorder struct {
	registry *prometheus.Registry

	participants *prometheus.GaugeVec
	rosterSize   prometheus.Gauge
	duration     prometheus.Gauge
	lastRun      prometheus.Gauge
	fallbacks    prometheus.Counter
	failures     *prometheus.CounterVec
}

// NewRecorder creates a recorder with all metrics registered
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Recorder{
		registry: registry,
		participants: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "participants",
			Help:      "Number of report rows by attendance status",
		}, []string{"status"}),
		rosterSize: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "roster_size",
			Help:      "Number of canonical names in the roster",
		}),
		duration: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "duration_seconds",
			Help:      "Wall time of the last run",
		}),
		lastRun: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_completed_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
		fallbacks: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "csv_fallbacks_total",
			Help:      "Runs that kept the csv because the workbook could not be written",
		}),
		failures: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "failures_total",
			Help:      "Aborted runs by error type",
		}, []string{"type"}),
	}
}

// ObserveReport records per-status counts
func (r *Recorder) ObserveReport(summary domain.AttendanceSummary, rosterSize int) {
	r.participants.WithLabelValues(domain.StatusPresent.String()).Set(float64(summary.Present))
	r.participants.WithLabelValues(domain.StatusAbsent.String()).Set(float64(summary.Absent))
	r.participants.WithLabelValues(domain.StatusUnrecognized.String()).Set(float64(summary.Unrecognized))
	r.rosterSize.Set(float64(rosterSize))
}

// ObserveFallback counts a run that ended with the csv fallback
func (r *Recorder) ObserveFallback() {
	r.fallbacks.Inc()
}

// ObserveFailure counts an aborted run
func (r *Recorder) ObserveFailure(errType string) {
	if errType == "" {
		errType = "UNKNOWN"
	}
	r.failures.WithLabelValues(errType).Inc()
}

// ObserveCompletion records run duration and completion time
func (r *Recorder) ObserveCompletion(started, finished time.Time) {
	r.duration.Set(finished.Sub(started).Seconds())
	r.lastRun.Set(float64(finished.Unix()))
}

// Gatherer exposes the private registry
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path atomically. An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
