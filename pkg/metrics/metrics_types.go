package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the traversal engine
type Registry struct {
	// Run Metrics
	RunsTotal          *prometheus.CounterVec
	KernelDuration     *prometheus.HistogramVec
	WallDuration       *prometheus.HistogramVec
	GraphsPerRun       prometheus.Histogram
	NodesReachedTotal  *prometheus.CounterVec
	RoundsPerGraph     *prometheus.HistogramVec
	FrontierSpillTotal prometheus.Counter

	// Device Metrics
	DeviceErrorsTotal *prometheus.CounterVec
	ComputeUnits      prometheus.Gauge
	LocalMemoryBytes  prometheus.Gauge

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry  *prometheus.Registry
	startTime time.Time
	mu        sync.Mutex
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
	r := &Registry{
		registry:  prometheus.NewRegistry(),
		startTime: time.Now(),
	}

	r.initRunMetrics()
	r.initDeviceMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
