package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-bfs/pkg/bench"
	"github.com/dd0wney/cluso-bfs/pkg/bfs"
	"github.com/dd0wney/cluso-bfs/pkg/logging"
)

func newBenchCmd(g *globalFlags) *cobra.Command {
	var (
		iterations  int
		allVariants bool
		metricsOut  string
	)

	cmd := &cobra.Command{
		Use:   "bench <graph-file|dir>...",
		Short: "Repeat runs and report timing statistics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd, args)
			if err != nil {
				return err
			}
			defer s.Close()

			if cmd.Flags().Changed("iterations") {
				s.cfg.Iterations = iterations
			}
			variants := []bfs.Variant{s.variant}
			if allVariants {
				variants = bfs.Variants()
			}

			var results []bench.Result
			hosts := s.hosts()
			for _, v := range variants {
				res, err := bench.Run(cmd.Context(), s.runner, v, hosts, s.cfg.GroupWidths, s.cfg.Iterations)
				if err != nil {
					return fmt.Errorf("%s: %w", v, err)
				}
				results = append(results, res...)
			}

			names := make([]string, len(s.graphs))
			for i, ng := range s.graphs {
				names[i] = ng.Path
			}
			title := fmt.Sprintf("%d graphs, %d iterations", len(s.graphs), s.cfg.Iterations)
			fmt.Fprint(cmd.OutOrStdout(), bench.Report(title, results))
			s.logger.Debug("benchmarked graphs", logging.String("graphs", strings.Join(names, ",")))

			if metricsOut != "" {
				s.metrics.UpdateSystemMetrics()
				if err := s.metrics.WriteTextfile(metricsOut); err != nil {
					return fmt.Errorf("failed to write metrics: %w", err)
				}
				s.logger.Info("metrics written", logging.Path(metricsOut))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&iterations, "iterations", 10, "Runs per group width")
	cmd.Flags().BoolVar(&allVariants, "all-variants", false, "Benchmark every kernel variant")
	cmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus metrics to this file")
	return cmd
}
