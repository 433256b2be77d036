// Package runner dispatches BFS kernels over host graphs and writes the
// results back.
//
// A run validates its inputs, packs the graphs into a batch, seeds the
// traversal buffers, dispatches exactly one kernel, waits for it and copies
// every graph's parents (and distances, when tracked) into the caller's
// HostGraph. Host graphs are only modified by a run that succeeded.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-bfs/pkg/batch"
	"github.com/dd0wney/cluso-bfs/pkg/bfs"
	"github.com/dd0wney/cluso-bfs/pkg/csr"
	"github.com/dd0wney/cluso-bfs/pkg/device"
	"github.com/dd0wney/cluso-bfs/pkg/logging"
	"github.com/dd0wney/cluso-bfs/pkg/metrics"
	"github.com/dd0wney/cluso-bfs/pkg/validation"
)

var (
	// ErrInvalidGroupWidth is returned for a group width outside
	// [1, validation.MaxGroupWidth].
	ErrInvalidGroupWidth = errors.New("runner: invalid group width")

	// ErrSourceOutOfRange is returned when a source is not a node of its
	// graph.
	ErrSourceOutOfRange = errors.New("runner: source out of range")

	// ErrNoGraphs is returned for a run without graphs.
	ErrNoGraphs = errors.New("runner: no graphs")
)

// HostGraph is a graph together with its source and the host-owned result
// arrays a run fills in.
type HostGraph struct {
	Graph  *csr.Graph
	Source csr.NodeID

	// Parents holds one entry per node, the sentinel until a run reached
	// the node.
	Parents []int32

	// Distances is nil until a run with distance tracking completed.
	Distances []int32
}

// NewHostGraph wraps g with sentinel-initialized parents.
func NewHostGraph(g *csr.Graph, source csr.NodeID) *HostGraph {
	parents := make([]int32, g.NumNodes())
	for i := range parents {
		parents[i] = csr.InvalidNode
	}
	return &HostGraph{Graph: g, Source: source, Parents: parents}
}

// Reached returns the number of nodes with a parent.
func (h *HostGraph) Reached() int {
	n := 0
	for _, p := range h.Parents {
		if p != csr.InvalidNode {
			n++
		}
	}
	return n
}

// Options configure a Runner.
type Options struct {
	Layout         batch.Layout
	TrackDistances bool
	Kernel         bfs.Options
	Logger         logging.Logger
	Metrics        *metrics.Registry
}

// Timing reports one run.
type Timing struct {
	RunID      string
	Variant    bfs.Variant
	GroupWidth int

	// KernelTime is the sum of the device-reported command durations.
	KernelTime time.Duration
	// WallTime is the host-observed time around dispatch and wait.
	WallTime time.Duration
	// PrepareTime is the host work done before dispatch, such as building
	// incoming edges for the mask variant. It is not part of WallTime.
	PrepareTime time.Duration

	Rounds []int
	Spills []int
}

// Runner dispatches kernels on one device queue.
type Runner struct {
	queue   *device.Queue
	opts    Options
	logger  logging.Logger
	metrics *metrics.Registry
}

// New creates a runner. A nil logger or registry disables that output.
func New(q *device.Queue, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Runner{
		queue:   q,
		opts:    opts,
		logger:  logger.With(logging.Component("runner")),
		metrics: opts.Metrics,
	}
}

// validate checks caller contract violations before anything reaches the
// device.
func validate(graphs []*HostGraph, groupWidth int) error {
	if len(graphs) == 0 {
		return ErrNoGraphs
	}
	if err := validation.ValidateGroupWidth(groupWidth); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGroupWidth, err)
	}
	for g, h := range graphs {
		if h == nil || h.Graph == nil {
			return fmt.Errorf("%w: graph %d is nil", ErrNoGraphs, g)
		}
		n := h.Graph.NumNodes()
		if n > 0 && (h.Source < 0 || int(h.Source) >= n) {
			return fmt.Errorf("%w: graph %d source %d with %d nodes", ErrSourceOutOfRange, g, h.Source, n)
		}
	}
	return nil
}

// Run traverses every graph with variant v, one thread group of groupWidth
// work-items per graph, and writes the results into graphs.
func (r *Runner) Run(ctx context.Context, v bfs.Variant, graphs []*HostGraph, groupWidth int) (Timing, error) {
	timing := Timing{RunID: uuid.New().String(), Variant: v, GroupWidth: groupWidth}
	if err := validate(graphs, groupWidth); err != nil {
		return timing, err
	}

	csrs := make([]*csr.Graph, len(graphs))
	sources := make([]csr.NodeID, len(graphs))
	for g, h := range graphs {
		csrs[g] = h.Graph
		sources[g] = h.Source
	}

	b, err := batch.New(r.opts.Layout, csrs)
	if err != nil {
		return timing, err
	}
	bufs := bfs.NewBuffers(b)
	if err := bufs.Reset(b, sources); err != nil {
		return timing, err
	}

	logger := r.logger.With(logging.RunID(timing.RunID))
	logger.Info("run started",
		logging.Variant(v.String()),
		logging.Layout(b.Layout().String()),
		logging.Graphs(b.NumGraphs()),
		logging.GroupWidth(groupWidth),
		logging.Int("nodes", b.TotalNodes()),
		logging.Int("edges", b.TotalEdges()))

	prepStart := time.Now()
	prepared, err := bfs.Prepare(v, b, r.opts.Kernel)
	timing.PrepareTime = time.Since(prepStart)
	if err != nil {
		r.recordFailure(logger, v, b, err)
		return timing, err
	}

	start := time.Now()
	launch, err := prepared.Start(ctx, r.queue, bufs, sources, groupWidth)
	if err == nil {
		err = launch.Wait()
	}
	timing.WallTime = time.Since(start)

	if err != nil {
		r.recordFailure(logger, v, b, err)
		return timing, err
	}

	timing.KernelTime = device.TotalDuration(launch.Event)
	timing.Rounds = launch.Rounds
	timing.Spills = launch.Spills

	if err := r.writeBack(logger, b, bufs, graphs); err != nil {
		return timing, err
	}

	if r.metrics != nil {
		r.metrics.RecordRun(v.String(), b.Layout().String(), "ok", b.NumGraphs(), timing.KernelTime, timing.WallTime)
		for g, h := range graphs {
			r.metrics.RecordGraph(v.String(), h.Reached(), timing.Rounds[g], timing.Spills[g])
		}
	}
	for g, spilled := range timing.Spills {
		if spilled > 0 {
			logger.Warn("frontier spilled to device memory", logging.Graph(g), logging.Int("spilled", spilled))
		}
	}
	logger.Info("run completed",
		logging.Micros("prepare_us", timing.PrepareTime),
		logging.Micros("kernel_us", timing.KernelTime),
		logging.Micros("wall_us", timing.WallTime))
	return timing, nil
}

// writeBack splits the result buffers and only then touches the host graphs.
func (r *Runner) writeBack(logger logging.Logger, b *batch.Batch, bufs *bfs.Buffers, graphs []*HostGraph) error {
	parents, err := b.Split(bufs.Parents)
	if err != nil {
		return err
	}
	var distances [][]int32
	if r.opts.TrackDistances {
		if distances, err = b.Split(bufs.Distances); err != nil {
			return err
		}
	}

	for g, h := range graphs {
		h.Parents = parents[g]
		if distances != nil {
			h.Distances = distances[g]
		}
		logger.Debug("graph written back", logging.Graph(g), logging.Int("reached", h.Reached()))
	}
	return nil
}

func (r *Runner) recordFailure(logger logging.Logger, v bfs.Variant, b *batch.Batch, err error) {
	logger.Error("run failed", logging.Variant(v.String()), logging.Error(err))
	if r.metrics == nil {
		return
	}
	r.metrics.RecordRun(v.String(), b.Layout().String(), "error", b.NumGraphs(), 0, 0)
	var devErr *device.DeviceError
	if errors.As(err, &devErr) {
		r.metrics.RecordDeviceError(devErr.Kernel)
	}
}

// Sweep runs the same graphs once per group width, re-seeding the buffers
// each time, and returns the timing of every width.
func (r *Runner) Sweep(ctx context.Context, v bfs.Variant, graphs []*HostGraph, widths []int) ([]Timing, error) {
	timings := make([]Timing, 0, len(widths))
	for _, w := range widths {
		t, err := r.Run(ctx, v, graphs, w)
		if err != nil {
			return timings, fmt.Errorf("group width %d: %w", w, err)
		}
		timings = append(timings, t)
	}
	return timings, nil
}
