package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/dd0wney/cluso-bfs/pkg/bfs"
	"github.com/dd0wney/cluso-bfs/pkg/runner"
)

// Result holds the summarized timings of one variant at one group width.
type Result struct {
	Variant    bfs.Variant
	GroupWidth int
	Kernel     Stats
	Wall       Stats
}

// Label names the result in reports.
func (r Result) Label() string {
	return fmt.Sprintf("%s/%d", r.Variant, r.GroupWidth)
}

// Run executes the graphs iterations times at each width and summarizes
// kernel and wall times per width.
func Run(ctx context.Context, r *runner.Runner, v bfs.Variant, graphs []*runner.HostGraph, widths []int, iterations int) ([]Result, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("%w: %d iterations", ErrNoSamples, iterations)
	}

	results := make([]Result, 0, len(widths))
	for _, w := range widths {
		kernel := make([]time.Duration, 0, iterations)
		wall := make([]time.Duration, 0, iterations)
		for i := 0; i < iterations; i++ {
			t, err := r.Run(ctx, v, graphs, w)
			if err != nil {
				return results, fmt.Errorf("group width %d, iteration %d: %w", w, i, err)
			}
			kernel = append(kernel, t.KernelTime)
			wall = append(wall, t.WallTime)
		}

		res := Result{Variant: v, GroupWidth: w}
		var err error
		if res.Kernel, err = Summarize(Micros(kernel)); err != nil {
			return results, err
		}
		if res.Wall, err = Summarize(Micros(wall)); err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
