package observability

import (
	"fmt"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SolutionsReadTotal counts solution manifest reads by status
	SolutionsReadTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slingshot_solutions_read_total",
			Help: "Total number of solution manifests read by status",
		},
		[]string{"status"}, // success, failure
	)

	// ProjectsParsedTotal counts parsed project files by resolved project type
	ProjectsParsedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slingshot_projects_parsed_total",
			Help: "Total number of project files parsed by project type",
		},
		[]string{"type"},
	)

	// DocumentCacheTotal counts parsed-document cache lookups
	DocumentCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slingshot_document_cache_total",
			Help: "Total number of parsed project document cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)

	// DependencyEdgesTotal counts manifest dependency edges by outcome
	DependencyEdgesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slingshot_dependency_edges_total",
			Help: "Total number of solution dependency edges by outcome",
		},
		[]string{"status"}, // accepted, dropped
	)

	// GenerationsTotal counts generation runs by output format and status
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slingshot_generations_total",
			Help: "Total number of build description generations by format and status",
		},
		[]string{"format", "status"},
	)

	// GenerationDuration tracks generation duration in seconds
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slingshot_generation_duration_seconds",
			Help:    "Build description generation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to 16s
		},
		[]string{"format"},
	)

	// OutputBytesTotal counts bytes written by sink kind
	OutputBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slingshot_output_bytes_total",
			Help: "Total number of generated bytes written by sink kind",
		},
		[]string{"sink"}, // stdout, file, s3
	)
)

// WriteMetricsFile writes every registered metric to path in the Prometheus
// text exposition format, for node_exporter's textfile collector.
func WriteMetricsFile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}

// GetCounterValue retrieves the current value of a counter metric with the given labels
// This is primarily intended for testing
func GetCounterValue(counter *prometheus.CounterVec, labels ...string) (float64, error) {
	metric, err := counter.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0, err
	}

	var pb dto.Metric
	if err := metric.Write(&pb); err != nil {
		return 0, err
	}

	if pb.Counter != nil {
		return pb.Counter.GetValue(), nil
	}

	return 0, nil
}
