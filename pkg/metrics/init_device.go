package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDeviceMetrics() {
	r.DeviceErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bfs_device_errors_total",
			Help: "Kernel executions that failed on the device",
		},
		[]string{"kernel"},
	)

	r.ComputeUnits = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "bfs_device_compute_units",
			Help: "Compute units of the device",
		},
	)

	r.LocalMemoryBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "bfs_device_local_memory_bytes",
			Help: "Group-local memory of one compute unit in bytes",
		},
	)
}
