package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-bfs/pkg/graphgen"
	"github.com/dd0wney/cluso-bfs/pkg/graphio"
)

func newGenCmd() *cobra.Command {
	var (
		nodes  int
		p      float64
		seed   uint64
		count  int
		out    string
		binary bool
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate random undirected G(n,p) graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}
			if err := os.MkdirAll(out, 0o755); err != nil {
				return err
			}

			ext := ".txt"
			if binary {
				ext = graphio.BinaryExt
			}
			for i := 0; i < count; i++ {
				g, err := graphgen.GNP(nodes, p, seed+uint64(i))
				if err != nil {
					return err
				}
				path := filepath.Join(out, fmt.Sprintf("graph_%03d%s", i, ext))
				if err := writeGraph(path, g); err != nil {
					return err
				}
				printf(cmd, "%s: %d nodes, %d edges\n", path, g.NumNodes(), g.NumEdges())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&nodes, "nodes", 1000, "Candidate nodes per graph (isolated nodes are dropped)")
	cmd.Flags().Float64Var(&p, "p", 0.01, "Edge probability")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Seed of the first graph; graph i uses seed+i")
	cmd.Flags().IntVar(&count, "count", 1, "Number of graphs")
	cmd.Flags().StringVar(&out, "out", ".", "Output directory")
	cmd.Flags().BoolVar(&binary, "binary", false, "Write the binary .csrz format")
	return cmd
}
