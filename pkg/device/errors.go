package device

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned for an NDRange with a negative group
	// count or a non-positive group width.
	ErrInvalidRange = errors.New("device: invalid nd-range")

	// ErrLocalMemoryExceeded is returned when a kernel asks for more
	// group-local memory than a compute unit has.
	ErrLocalMemoryExceeded = errors.New("device: local memory exceeded")

	// ErrQueueClosed is returned when submitting to a closed queue.
	ErrQueueClosed = errors.New("device: queue closed")

	// errBarrierBroken unwinds work-items of a group that has already
	// failed. It is never reported to callers.
	errBarrierBroken = errors.New("device: barrier broken")
)

// DeviceError reports a failure raised while a kernel was executing.
type DeviceError struct {
	Kernel string
	Group  int
	Item   int
	Cause  error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device: kernel %s failed in group %d item %d: %v", e.Kernel, e.Group, e.Item, e.Cause)
}

func (e *DeviceError) Unwrap() error {
	return e.Cause
}

// abort carries an error raised deliberately by kernel code through Item.Fail.
type abort struct {
	err error
}

func causeOf(r any) error {
	switch v := r.(type) {
	case abort:
		return v.err
	case error:
		return v
	default:
		return fmt.Errorf("panic: %v", v)
	}
}
