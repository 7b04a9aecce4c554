package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSnapshotMetrics() {
	r.SnapshotLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcode_snapshot_loads_total",
			Help: "Snapshot load attempts by outcome",
		},
		[]string{"status"},
	)

	r.SnapshotWriteDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mcode_snapshot_write_duration_seconds",
			Help:    "Snapshot write duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	r.SnapshotSizeBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "mcode_snapshot_size_bytes",
			Help: "Size of the last written snapshot in bytes",
		},
	)
}
