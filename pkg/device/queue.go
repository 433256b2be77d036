package device

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/dd0wney/cluso-bfs/pkg/parallel"
)

// DefaultLocalMemoryBytes is the group-local memory of one compute unit.
const DefaultLocalMemoryBytes = 64 << 10

// Config describes the simulated accelerator.
type Config struct {
	// ComputeUnits is how many thread groups execute at once.
	ComputeUnits int
	// LocalMemoryBytes bounds the group-local memory of one group.
	LocalMemoryBytes int
}

// DefaultConfig returns one compute unit per CPU and 64 KiB local memory.
func DefaultConfig() Config {
	return Config{
		ComputeUnits:     runtime.NumCPU(),
		LocalMemoryBytes: DefaultLocalMemoryBytes,
	}
}

// NDRange is the launch geometry of one dispatch.
type NDRange struct {
	Groups     int
	GroupWidth int
}

// Kernel is device code with group-local memory of type L.
type Kernel[L any] struct {
	Name string

	// LocalBytes reports the local memory group g needs. Nil means none.
	LocalBytes func(group int) int

	// Local allocates the local memory of group g before its work-items
	// start. Nil means a zero L.
	Local func(group int) *L

	// Release is called with the local memory once group g finished.
	Release func(group int, local *L)

	// Run is executed by every work-item of every group.
	Run func(it *Item, local *L)
}

// Queue is an in-order command queue bound to one device.
type Queue struct {
	cfg   Config
	units *parallel.WorkerPool

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewQueue creates a queue with cfg.ComputeUnits compute units.
func NewQueue(cfg Config) (*Queue, error) {
	if cfg.ComputeUnits <= 0 {
		cfg.ComputeUnits = runtime.NumCPU()
	}
	if cfg.LocalMemoryBytes <= 0 {
		cfg.LocalMemoryBytes = DefaultLocalMemoryBytes
	}

	units, err := parallel.NewWorkerPool(cfg.ComputeUnits)
	if err != nil {
		return nil, fmt.Errorf("device: %w", err)
	}
	return &Queue{cfg: cfg, units: units}, nil
}

// Config returns the device configuration.
func (q *Queue) Config() Config {
	return q.cfg
}

// Close waits for in-flight commands and releases the compute units.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.wg.Wait()
	q.units.Close()
}

// Submit enqueues kernel k over r and returns immediately. Launch errors
// (invalid range, local memory) are reported here and nothing runs;
// execution errors are reported by the returned Event.
func Submit[L any](ctx context.Context, q *Queue, r NDRange, k Kernel[L]) (*Event, error) {
	if r.Groups < 0 || r.GroupWidth <= 0 {
		return nil, fmt.Errorf("%w: %d groups of width %d", ErrInvalidRange, r.Groups, r.GroupWidth)
	}
	if k.LocalBytes != nil {
		for g := 0; g < r.Groups; g++ {
			if need := k.LocalBytes(g); need > q.cfg.LocalMemoryBytes {
				return nil, fmt.Errorf("%w: kernel %s group %d needs %d bytes, device has %d",
					ErrLocalMemoryExceeded, k.Name, g, need, q.cfg.LocalMemoryBytes)
			}
		}
	}

	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return nil, ErrQueueClosed
	}
	q.wg.Add(1)
	q.mu.RUnlock()

	ev := newEvent(k.Name, r)
	go func() {
		defer q.wg.Done()
		q.dispatch(ctx, r, k.Name, ev, func(g int) func() {
			return func() { runGroup(k, r, g, ev) }
		})
	}()
	return ev, nil
}

// dispatch feeds one task per group to the compute units and completes ev
// once every submitted group finished.
func (q *Queue) dispatch(ctx context.Context, r NDRange, name string, ev *Event, task func(g int) func()) {
	var groups sync.WaitGroup
	ev.begin()
	for g := 0; g < r.Groups; g++ {
		groups.Add(1)
		run := task(g)
		err := q.units.SubmitContext(ctx, func() {
			defer groups.Done()
			run()
		})
		if err != nil {
			groups.Done()
			ev.fail(&DeviceError{Kernel: name, Group: g, Item: -1, Cause: err})
			break
		}
	}
	groups.Wait()
	ev.finish()
}

// runGroup executes all work-items of group g and waits for them.
func runGroup[L any](k Kernel[L], r NDRange, g int, ev *Event) {
	defer func() {
		if rec := recover(); rec != nil {
			ev.fail(&DeviceError{Kernel: k.Name, Group: g, Item: -1, Cause: causeOf(rec)})
		}
	}()

	var local *L
	if k.Local != nil {
		local = k.Local(g)
	} else {
		local = new(L)
	}
	if k.Release != nil {
		defer k.Release(g, local)
	}

	grp := newGroup(g, r.GroupWidth)
	var items sync.WaitGroup
	for i := 0; i < r.GroupWidth; i++ {
		items.Add(1)
		go func(it *Item) {
			defer items.Done()
			defer func() {
				if rec := recover(); rec != nil {
					grp.bar.breakAll()
					if rec == errBarrierBroken {
						return
					}
					ev.fail(&DeviceError{Kernel: k.Name, Group: g, Item: it.local, Cause: causeOf(rec)})
				}
			}()
			k.Run(it, local)
		}(&Item{grp: grp, local: i})
	}
	items.Wait()
}
