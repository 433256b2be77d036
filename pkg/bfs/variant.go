package bfs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownVariant is returned for a variant name or value that does
	// not name a kernel.
	ErrUnknownVariant = errors.New("bfs: unknown variant")

	// ErrFrontierOverflow is returned by the frontier kernel when a level
	// outgrows the local queue and the overflow policy is Fail.
	ErrFrontierOverflow = errors.New("bfs: frontier overflow")
)

// Variant selects a BFS kernel.
type Variant int

const (
	Naive Variant = iota
	Frontier
	Mask
)

var variantNames = map[Variant]string{
	Naive:    "naive",
	Frontier: "frontier",
	Mask:     "mask",
}

// Variants returns every kernel variant.
func Variants() []Variant {
	return []Variant{Naive, Frontier, Mask}
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant parses a variant name.
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for v, n := range variantNames {
		if n == name {
			return v, nil
		}
	}
	return Naive, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// OverflowPolicy decides what the frontier kernel does when a level has
// more nodes than the local queue holds.
type OverflowPolicy int

const (
	// Spill moves the excess into a per-graph region of device memory.
	Spill OverflowPolicy = iota
	// Fail aborts the dispatch with ErrFrontierOverflow.
	Fail
)

func (p OverflowPolicy) String() string {
	switch p {
	case Spill:
		return "spill"
	case Fail:
		return "fail"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

// ParseOverflowPolicy parses an overflow policy name.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spill", "":
		return Spill, nil
	case "fail":
		return Fail, nil
	default:
		return Spill, fmt.Errorf("bfs: unknown overflow policy %q", s)
	}
}

// Options tune a launch.
type Options struct {
	// FrontierCapacity is the local queue capacity of the frontier kernel.
	// Zero means the group width.
	FrontierCapacity int

	// Overflow is the frontier kernel's overflow policy.
	Overflow OverflowPolicy

	// Symmetric tells the mask kernel that every graph already contains
	// the reverse of each edge, so out-neighbors can stand in for
	// in-neighbors.
	Symmetric bool
}
