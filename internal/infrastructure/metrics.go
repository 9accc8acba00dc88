package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "payroll_etl"

// PipelineMetrics collects per-run counters on a private registry. Batch jobs
// have no scrape endpoint, so the registry is written to a node_exporter
// textfile at the end of the run.
type PipelineMetrics struct {
	registry *prometheus.Registry

	FilesRead         prometheus.Counter
	RowsRead          prometheus.Counter
	RowsWritten       prometheus.Gauge
	ColumnsDropped    prometheus.Counter
	DuplicatesRemoved prometheus.Counter
	StepDuration      *prometheus.GaugeVec
	LastSuccess       prometheus.Gauge
}

// NewPipelineMetrics creates and registers the pipeline collectors
func NewPipelineMetrics() *PipelineMetrics {
	m := &PipelineMetrics{
		registry: prometheus.NewRegistry(),
		FilesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "files_read_total",
			Help:      "Input files read into the dataset.",
		}),
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_read_total",
			Help:      "Records read across all input files.",
		}),
		RowsWritten: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "rows_written",
			Help:      "Rows in the last written result, summary rows included.",
		}),
		ColumnsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "columns_dropped_total",
			Help:      "Columns removed because they contained missing values.",
		}),
		DuplicatesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "duplicates_removed_total",
			Help:      "Records removed by id deduplication.",
		}),
		StepDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "step_duration_seconds",
			Help:      "Wall time of each pipeline step in the last run.",
		}, []string{"step"}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}

	m.registry.MustRegister(
		m.FilesRead,
		m.RowsRead,
		m.RowsWritten,
		m.ColumnsDropped,
		m.DuplicatesRemoved,
		m.StepDuration,
		m.LastSuccess,
	)
	return m
}

// Gatherer exposes the registry
func (m *PipelineMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the registry in text exposition format to path
func (m *PipelineMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
