package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-bfs/pkg/csr"
	"github.com/dd0wney/cluso-bfs/pkg/graphio"
)

func newConvertCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a graph between the text and binary formats",
		Long: `convert reads <in> and writes <out>. The format of each side follows its
extension: .csrz is binary, anything else is the text edge list.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graphio.ReadFile(args[0], gf.undirected)
			if err != nil {
				return err
			}
			if err := writeGraph(args[1], g); err != nil {
				return err
			}
			printf(cmd, "%s -> %s: %d nodes, %d edges\n", args[0], args[1], g.NumNodes(), g.NumEdges())
			return nil
		},
	}
}

// writeGraph picks the output format by extension.
func writeGraph(path string, g *csr.Graph) error {
	if strings.EqualFold(filepath.Ext(path), graphio.BinaryExt) {
		return graphio.WriteBinary(path, g)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graphio.WriteText(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
