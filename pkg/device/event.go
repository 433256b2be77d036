package device

import (
	"sync"
	"time"
)

// Event tracks one submitted command.
type Event struct {
	kernel string
	rng    NDRange
	done   chan struct{}

	mu    sync.Mutex
	err   error
	start time.Time
	end   time.Time
}

func newEvent(kernel string, r NDRange) *Event {
	return &Event{kernel: kernel, rng: r, done: make(chan struct{})}
}

func (e *Event) begin() {
	e.mu.Lock()
	e.start = time.Now()
	e.mu.Unlock()
}

func (e *Event) finish() {
	e.mu.Lock()
	e.end = time.Now()
	e.mu.Unlock()
	close(e.done)
}

// fail records the first execution error.
func (e *Event) fail(err error) {
	e.mu.Lock()
	if e.err == nil {
		e.err = err
	}
	e.mu.Unlock()
}

// Kernel returns the name of the submitted kernel.
func (e *Event) Kernel() string { return e.kernel }

// Range returns the launch geometry.
func (e *Event) Range() NDRange { return e.rng }

// Done is closed once the command completed.
func (e *Event) Done() <-chan struct{} { return e.done }

// Wait blocks until the command completed and returns its execution error.
func (e *Event) Wait() error {
	<-e.done
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Profile returns the device start and end timestamps. It blocks until the
// command completed.
func (e *Event) Profile() (start, end time.Time) {
	<-e.done
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.start, e.end
}

// Duration returns end minus start of the completed command.
func (e *Event) Duration() time.Duration {
	start, end := e.Profile()
	return end.Sub(start)
}

// TotalDuration sums the device durations of the given events.
func TotalDuration(events ...*Event) time.Duration {
	var total time.Duration
	for _, ev := range events {
		total += ev.Duration()
	}
	return total
}
