package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-bfs/pkg/bfs"
	"github.com/dd0wney/cluso-bfs/pkg/config"
	"github.com/dd0wney/cluso-bfs/pkg/device"
	"github.com/dd0wney/cluso-bfs/pkg/graphio"
	"github.com/dd0wney/cluso-bfs/pkg/logging"
	"github.com/dd0wney/cluso-bfs/pkg/metrics"
	"github.com/dd0wney/cluso-bfs/pkg/runner"
)

// session is everything a kernel-running command needs.
type session struct {
	cfg     config.RunConfig
	variant bfs.Variant
	logger  logging.Logger
	metrics *metrics.Registry
	queue   *device.Queue
	runner  *runner.Runner
	graphs  []graphio.NamedGraph
}

func (g *globalFlags) open(cmd *cobra.Command, paths []string) (*session, error) {
	cfg, err := g.load(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd, cfg)

	variant, err := cfg.VariantValue()
	if err != nil {
		return nil, err
	}
	layout, err := cfg.LayoutValue()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	timer := logging.StartTimer(logger, "loading graphs", logging.Count(len(paths)))
	graphs, err := loadGraphs(cmd.Context(), paths, cfg.Undirected)
	if err != nil {
		timer.EndError(err)
		return nil, err
	}
	if len(graphs) == 0 {
		return nil, errors.New("no graphs given")
	}
	timer.End(logging.Graphs(len(graphs)))

	devCfg := cfg.Device()
	queue, err := device.NewQueue(devCfg)
	if err != nil {
		return nil, err
	}

	reg := metrics.NewRegistry()
	reg.SetDevice(devCfg.ComputeUnits, devCfg.LocalMemoryBytes)

	r := runner.New(queue, runner.Options{
		Layout:         layout,
		TrackDistances: cfg.TrackDistances,
		Kernel:         opts,
		Logger:         logger,
		Metrics:        reg,
	})
	return &session{
		cfg:     cfg,
		variant: variant,
		logger:  logger,
		metrics: reg,
		queue:   queue,
		runner:  r,
		graphs:  graphs,
	}, nil
}

func (s *session) hosts() []*runner.HostGraph {
	return hostGraphs(s.cfg, s.graphs)
}

func (s *session) Close() {
	s.queue.Close()
}
