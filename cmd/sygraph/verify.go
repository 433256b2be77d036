package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-bfs/pkg/bfs"
	"github.com/dd0wney/cluso-bfs/pkg/logging"
	"github.com/dd0wney/cluso-bfs/pkg/parallel"
	"github.com/dd0wney/cluso-bfs/pkg/verify"
)

// reference is the host BFS result of one graph.
type reference struct {
	parents   []int32
	distances []int32
}

func newVerifyCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <graph-file|dir>...",
		Short: "Run every kernel, check each BFS tree and compare it with a host BFS",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd, args)
			if err != nil {
				return err
			}
			defer s.Close()

			tr, err := parallel.NewTraverser(s.queue.Config().ComputeUnits)
			if err != nil {
				return err
			}
			defer tr.Close()

			hosts := s.hosts()
			refs := make([]reference, len(hosts))
			for i, h := range hosts {
				parents, distances, err := tr.BFS(h.Graph, h.Source)
				if err != nil {
					return fmt.Errorf("%s: %w", s.graphs[i].Path, err)
				}
				refs[i] = reference{parents: parents, distances: distances}
			}

			for _, v := range bfs.Variants() {
				for _, w := range s.cfg.GroupWidths {
					hosts := s.hosts()
					if _, err := s.runner.Run(cmd.Context(), v, hosts, w); err != nil {
						return fmt.Errorf("%s at width %d: %w", v, w, err)
					}
					for i, h := range hosts {
						if _, err := verify.Tree(h.Graph, h.Source, h.Parents, h.Distances); err != nil {
							return fmt.Errorf("%s at width %d, %s: %w", v, w, s.graphs[i].Path, err)
						}
						if err := verify.Compare(refs[i].parents, refs[i].distances, h.Parents, h.Distances); err != nil {
							return fmt.Errorf("%s at width %d, %s: %w", v, w, s.graphs[i].Path, err)
						}
					}
				}
				s.logger.Info("variant verified", logging.Variant(v.String()), logging.Graphs(len(hosts)))
			}

			printf(cmd, "[*] %d graphs verified across %d variants and %d group widths\n",
				len(s.graphs), len(bfs.Variants()), len(s.cfg.GroupWidths))
			return nil
		},
	}
}
