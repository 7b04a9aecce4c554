package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphVertices = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "mcode_graph_vertices",
			Help: "Number of vertices in the loaded graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "mcode_graph_edges",
			Help: "Number of edges in the loaded graph",
		},
	)

	r.GraphComponents = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "mcode_graph_components",
			Help: "Number of connected components in the loaded graph",
		},
	)

	r.GraphMaxCoreness = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "mcode_graph_max_coreness",
			Help: "Largest core number observed in the last run",
		},
	)
}
