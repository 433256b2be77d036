package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Microsecond-scale buckets, from a tiny graph to a large batch.
var durationBuckets = []float64{1e-5, 1e-4, 5e-4, 1e-3, 5e-3, 0.01, 0.05, 0.1, 0.5, 1, 5}

func (r *Registry) initRunMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bfs_runs_total",
			Help: "Total number of kernel dispatches",
		},
		[]string{"variant", "layout", "status"},
	)

	r.KernelDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bfs_kernel_duration_seconds",
			Help:    "Device-reported kernel time per dispatch in seconds",
			Buckets: durationBuckets,
		},
		[]string{"variant", "layout"},
	)

	r.WallDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bfs_wall_duration_seconds",
			Help:    "Host-observed dispatch and wait time in seconds",
			Buckets: durationBuckets,
		},
		[]string{"variant", "layout"},
	)

	r.GraphsPerRun = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bfs_graphs_per_run",
			Help:    "Number of graphs covered by one dispatch",
			Buckets: []float64{1, 2, 4, 8, 16, 64, 256},
		},
	)

	r.NodesReachedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bfs_nodes_reached_total",
			Help: "Total number of nodes reached from their source",
		},
		[]string{"variant"},
	)

	r.RoundsPerGraph = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bfs_rounds_per_graph",
			Help:    "Levels expanded before a graph converged",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64, 128},
		},
		[]string{"variant"},
	)

	r.FrontierSpillTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "bfs_frontier_spill_total",
			Help: "Frontier admissions that overflowed local memory into the spill region",
		},
	)
}
