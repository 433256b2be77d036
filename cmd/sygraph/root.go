package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-bfs/pkg/config"
	"github.com/dd0wney/cluso-bfs/pkg/graphio"
	"github.com/dd0wney/cluso-bfs/pkg/logging"
	"github.com/dd0wney/cluso-bfs/pkg/runner"
)

// globalFlags are shared by every subcommand that runs kernels. Only flags
// the user set override the configuration file.
type globalFlags struct {
	configPath       string
	logLevel         string
	variant          string
	layout           string
	widths           []int
	computeUnits     int
	localMemory      int
	frontierCapacity int
	overflow         string
	undirected       bool
	noDistances      bool
	sources          []int32
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "sygraph",
		Short: "Batched parallel breadth-first search over CSR graphs",
		Long: `sygraph packs many graphs into one batch and runs a BFS kernel over all of
them in a single dispatch, one thread group per graph.

Graph files are text edge lists ("num_nodes" then "src dst" pairs), the
binary .csrz format written by "sygraph convert", or OpenStreetMap extracts
(.osm, .osm.pbf) loaded as road networks. A directory argument loads every
file inside it.

Examples:
  # Frontier BFS over every graph in a directory, two group widths
  sygraph run ./graphs --variant frontier --widths 16,32

  # Print the parent and distance of every node
  sygraph run graph.txt --print

  # Benchmark the mask kernel 20 times and export metrics
  sygraph bench ./graphs --variant mask --iterations 20 --metrics-out bfs.prom

  # Generate 8 random graphs
  sygraph gen --count 8 --nodes 1000 --p 0.01 --out ./graphs`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "YAML run configuration")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: LOG_LEVEL or config)")
	pf.StringVar(&g.variant, "variant", "", "Kernel: naive, frontier, mask")
	pf.StringVar(&g.layout, "layout", "", "Batch layout: compressed, vectorized")
	pf.IntSliceVar(&g.widths, "widths", nil, "Group widths to run, each in [1, 1024]")
	pf.IntVar(&g.computeUnits, "compute-units", 0, "Thread groups executing at once (default: CPUs)")
	pf.IntVar(&g.localMemory, "local-memory", 0, "Group-local memory budget in bytes")
	pf.IntVar(&g.frontierCapacity, "frontier-capacity", 0, "Local frontier queue capacity (default: group width)")
	pf.StringVar(&g.overflow, "overflow", "", "Frontier overflow policy: spill, fail")
	pf.BoolVar(&g.undirected, "undirected", false, "Add reverse edges to text graphs")
	pf.BoolVar(&g.noDistances, "no-distances", false, "Skip distance write-back")
	pf.Int32SliceVar(&g.sources, "sources", nil, "Source node per graph (default 0)")

	root.AddCommand(
		newRunCmd(g),
		newBenchCmd(g),
		newVerifyCmd(g),
		newGenCmd(),
		newConvertCmd(g),
	)
	return root
}

// load resolves the configuration: file (or defaults), then changed flags.
func (g *globalFlags) load(cmd *cobra.Command) (config.RunConfig, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if flags.Changed("variant") {
		cfg.Variant = strings.ToLower(g.variant)
	}
	if flags.Changed("layout") {
		cfg.Layout = strings.ToLower(g.layout)
	}
	if flags.Changed("widths") {
		cfg.GroupWidths = g.widths
	}
	if flags.Changed("compute-units") {
		cfg.ComputeUnits = g.computeUnits
	}
	if flags.Changed("local-memory") {
		cfg.LocalMemoryBytes = g.localMemory
	}
	if flags.Changed("frontier-capacity") {
		cfg.FrontierCapacity = g.frontierCapacity
	}
	if flags.Changed("overflow") {
		cfg.OverflowPolicy = strings.ToLower(g.overflow)
	}
	if flags.Changed("undirected") {
		cfg.Undirected = g.undirected
	}
	if flags.Changed("no-distances") {
		cfg.TrackDistances = !g.noDistances
	}
	if flags.Changed("sources") {
		cfg.Sources = g.sources
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger builds the command logger. LOG_LEVEL wins over the
// configuration unless --log-level was given.
func newLogger(cmd *cobra.Command, cfg config.RunConfig) logging.Logger {
	level := logging.ParseLevel(cfg.LogLevel)
	if env := os.Getenv("LOG_LEVEL"); env != "" && !cmd.Flags().Changed("log-level") {
		level = logging.ParseLevel(env)
	}
	logger := logging.NewJSONLogger(cmd.ErrOrStderr(), level)
	logging.SetDefaultLogger(logger)
	return logger
}

// loadGraphs reads every path argument. Directories expand to their files
// in name order.
func loadGraphs(ctx context.Context, paths []string, undirected bool) ([]graphio.NamedGraph, error) {
	var out []graphio.NamedGraph
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			graphs, err := graphio.ReadDir(ctx, p, undirected, 0)
			if err != nil {
				return nil, err
			}
			out = append(out, graphs...)
			continue
		}
		graph, err := graphio.ReadFile(p, undirected)
		if err != nil {
			return nil, err
		}
		out = append(out, graphio.NamedGraph{Path: p, Graph: graph})
	}
	return out, nil
}

// hostGraphs wraps loaded graphs with their configured sources.
func hostGraphs(cfg config.RunConfig, graphs []graphio.NamedGraph) []*runner.HostGraph {
	hosts := make([]*runner.HostGraph, len(graphs))
	for i, g := range graphs {
		hosts[i] = runner.NewHostGraph(g.Graph, cfg.SourceFor(i))
	}
	return hosts
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
