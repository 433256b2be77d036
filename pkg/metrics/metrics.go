package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordRun records one completed or failed dispatch
func (r *Registry) RecordRun(variant, layout, status string, graphs int, kernel, wall time.Duration) {
	r.RunsTotal.WithLabelValues(variant, layout, status).Inc()
	r.GraphsPerRun.Observe(float64(graphs))
	if status != "ok" {
		return
	}
	r.KernelDuration.WithLabelValues(variant, layout).Observe(kernel.Seconds())
	r.WallDuration.WithLabelValues(variant, layout).Observe(wall.Seconds())
}

// RecordGraph records the outcome of one graph of a successful dispatch
func (r *Registry) RecordGraph(variant string, reached, rounds, spilled int) {
	r.NodesReachedTotal.WithLabelValues(variant).Add(float64(reached))
	r.RoundsPerGraph.WithLabelValues(variant).Observe(float64(rounds))
	if spilled > 0 {
		r.FrontierSpillTotal.Add(float64(spilled))
	}
}

// RecordDeviceError records a kernel failure
func (r *Registry) RecordDeviceError(kernel string) {
	r.DeviceErrorsTotal.WithLabelValues(kernel).Inc()
}

// SetDevice publishes the device geometry
func (r *Registry) SetDevice(computeUnits, localMemoryBytes int) {
	r.ComputeUnits.Set(float64(computeUnits))
	r.LocalMemoryBytes.Set(float64(localMemoryBytes))
}

// UpdateSystemMetrics samples uptime, goroutines and memory
func (r *Registry) UpdateSystemMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r.UptimeSeconds.Set(time.Since(r.startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}

// WriteTextfile samples the system metrics and writes every metric to path
// in the Prometheus text format, for the node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	r.UpdateSystemMetrics()
	return prometheus.WriteToTextfile(path, r.registry)
}
