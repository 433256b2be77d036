package bench

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-bfs/pkg/bfs"
	"github.com/dd0wney/cluso-bfs/pkg/device"
	"github.com/dd0wney/cluso-bfs/pkg/graphgen"
	"github.com/dd0wney/cluso-bfs/pkg/runner"
)

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{4, 1, 2, 1})
	require.NoError(t, err)

	assert.Equal(t, 4, s.N)
	assert.InDelta(t, 2.0, s.Mean, 1e-9)
	assert.InDelta(t, 4.0/(1+1+0.5+0.25), s.HarmonicMean, 1e-9)
	assert.Equal(t, 2.0, s.Median)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)
	assert.InDelta(t, 1.5, s.Variance, 1e-9)
	assert.InDelta(t, math.Sqrt(1.5), s.StdDev, 1e-9)
	assert.InDelta(t, math.Sqrt(1.5)/2, s.StdErr, 1e-9)
	assert.InDelta(t, 1.96*math.Sqrt(1.5)/2, s.CI95, 1e-9)
}

func TestSummarizeSingleSample(t *testing.T) {
	s, err := Summarize([]float64{7})
	require.NoError(t, err)
	assert.Equal(t, 7.0, s.Mean)
	assert.Equal(t, 7.0, s.HarmonicMean)
	assert.Zero(t, s.Variance)
	assert.Zero(t, s.CI95)
}

func TestSummarizeEdgeCases(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, ErrNoSamples)

	s, err := Summarize([]float64{0, 2})
	require.NoError(t, err)
	assert.Zero(t, s.HarmonicMean)
	assert.Equal(t, 1.0, s.Mean)
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	_, err := Summarize(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestMicros(t *testing.T) {
	assert.Equal(t, []float64{1.5, 2000}, Micros([]time.Duration{1500 * time.Nanosecond, 2 * time.Millisecond}))
}

func TestRun(t *testing.T) {
	q, err := device.NewQueue(device.Config{ComputeUnits: 2})
	require.NoError(t, err)
	defer q.Close()
	r := runner.New(q, runner.Options{})

	graphs := []*runner.HostGraph{
		runner.NewHostGraph(graphgen.Diamond(), 0),
		runner.NewHostGraph(graphgen.Path(10), 0),
	}
	results, err := Run(context.Background(), r, bfs.Mask, graphs, []int{4, 16}, 3)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for i, w := range []int{4, 16} {
		assert.Equal(t, w, results[i].GroupWidth)
		assert.Equal(t, 3, results[i].Kernel.N)
		assert.Equal(t, 3, results[i].Wall.N)
		assert.LessOrEqual(t, results[i].Kernel.Min, results[i].Wall.Max)
	}
	assert.Equal(t, "mask/16", results[1].Label())
	assert.Equal(t, 5, graphs[0].Reached())
}

func TestRunRejectsZeroIterations(t *testing.T) {
	_, err := Run(context.Background(), nil, bfs.Naive, nil, []int{1}, 0)
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestRunPropagatesRunnerErrors(t *testing.T) {
	q, err := device.NewQueue(device.Config{ComputeUnits: 1})
	require.NoError(t, err)
	defer q.Close()
	r := runner.New(q, runner.Options{})

	graphs := []*runner.HostGraph{runner.NewHostGraph(graphgen.Diamond(), 0)}
	_, err = Run(context.Background(), r, bfs.Naive, graphs, []int{0}, 1)
	assert.ErrorIs(t, err, runner.ErrInvalidGroupWidth)
}

func TestReport(t *testing.T) {
	s, err := Summarize([]float64{10, 20})
	require.NoError(t, err)

	out := Report("diamond", []Result{{Variant: bfs.Frontier, GroupWidth: 8, Kernel: s, Wall: s}})
	assert.Contains(t, out, "diamond")
	assert.Contains(t, out, "frontier/8")
	assert.Contains(t, out, "kernel")
	assert.Contains(t, out, "wall")
	assert.Contains(t, out, "15.0")
}

func TestResultTable(t *testing.T) {
	out := ResultTable("graph 0", []int32{0, 0, -1}, []int32{0, 1, -1})
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], "graph 0")
	assert.Contains(t, out, "parent")
	assert.Contains(t, out, "-1")

	out = ResultTable("graph 1", []int32{0}, nil)
	assert.Contains(t, out, "-")
}
