package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDatasetMetrics() {
	r.DatasetRowsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcode_dataset_rows_total",
			Help: "Dataset rows by parse outcome",
		},
		[]string{"source", "outcome"},
	)

	r.DatasetFetchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcode_dataset_fetches_total",
			Help: "Dataset downloads by scheme and status",
		},
		[]string{"scheme", "status"},
	)

	r.DatasetFetchBytes = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "mcode_dataset_fetch_bytes_total",
			Help: "Total bytes downloaded for datasets",
		},
	)
}
