package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the clustering pipeline
type Registry struct {
	// Pipeline metrics
	RunsTotal         *prometheus.CounterVec
	StageDuration     *prometheus.HistogramVec
	SeedsExpanded     prometheus.Counter
	CandidatesEmitted prometheus.Counter
	ComplexesFound    prometheus.Counter
	ComplexScore      prometheus.Histogram
	ComplexSize       prometheus.Histogram

	// Graph metrics
	GraphVertices    prometheus.Gauge
	GraphEdges       prometheus.Gauge
	GraphComponents  prometheus.Gauge
	GraphMaxCoreness prometheus.Gauge

	// Dataset metrics
	DatasetRowsTotal    *prometheus.CounterVec
	DatasetFetchesTotal *prometheus.CounterVec
	DatasetFetchBytes   prometheus.Counter

	// Snapshot metrics
	SnapshotLoadsTotal    *prometheus.CounterVec
	SnapshotWriteDuration prometheus.Histogram
	SnapshotSizeBytes     prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initPipelineMetrics()
	r.initGraphMetrics()
	r.initDatasetMetrics()
	r.initSnapshotMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
