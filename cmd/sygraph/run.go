package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-bfs/pkg/bench"
	"github.com/dd0wney/cluso-bfs/pkg/logging"
	"github.com/dd0wney/cluso-bfs/pkg/verify"
)

func newRunCmd(g *globalFlags) *cobra.Command {
	var (
		printTables bool
		check       bool
	)

	cmd := &cobra.Command{
		Use:   "run <graph-file|dir>...",
		Short: "Run one kernel over a batch of graphs at each configured width",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd, args)
			if err != nil {
				return err
			}
			defer s.Close()

			hosts := s.hosts()
			timings, err := s.runner.Sweep(cmd.Context(), s.variant, hosts, s.cfg.GroupWidths)
			if err != nil {
				return err
			}

			printf(cmd, "[*] %s BFS over %d graphs (%s layout)\n", s.variant, len(hosts), s.cfg.Layout)
			for _, t := range timings {
				printf(cmd, "[*] Group width %d\n", t.GroupWidth)
				printf(cmd, "- Kernels time: %d us\n", t.KernelTime.Microseconds())
				printf(cmd, "- Total time: %d us\n", t.WallTime.Microseconds())
			}

			for i, h := range hosts {
				if check {
					r, err := verify.Tree(h.Graph, h.Source, h.Parents, h.Distances)
					if err != nil {
						return fmt.Errorf("%s: %w", s.graphs[i].Path, err)
					}
					s.logger.Info("tree verified",
						logging.Path(s.graphs[i].Path),
						logging.Int("reached", r.Reached),
						logging.Int("depth", r.Depth))
				}
				if printTables {
					fmt.Fprint(cmd.OutOrStdout(), bench.ResultTable(s.graphs[i].Path, h.Parents, h.Distances))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&printTables, "print", false, "Print every node's parent and distance")
	cmd.Flags().BoolVar(&check, "check", false, "Verify every BFS tree after the run")
	return cmd
}
