package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/xqlint/lint"
	"github.com/gnoswap-labs/xqlint/xquery/conformance"
	"github.com/gnoswap-labs/xqlint/xquery/dialect"
	"github.com/gnoswap-labs/xqlint/xquery/parser"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

var (
	dotOutput  bool
	withTrivia bool
	treeOutput string
)

var treeCmd = &cobra.Command{
	Use:   "tree <file>",
	Short: "Print the syntax tree of a query annotated with the versions each node requires",
	Long: `Prints an indented outline of the syntax tree, or a GraphViz digraph with --dot.
With -o the graph is written to a file; extensions other than .dot and .gv
are rendered with the GraphViz 'dot' command.
Example) xqlint tree --dot -o query.svg query.xq`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		config, err := lint.LoadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		cfg, err := config.Dialect.Build()
		if err != nil {
			logger.Fatal("Invalid dialect", zap.Error(err))
		}
		src, err := os.ReadFile(args[0])
		if err != nil {
			logger.Fatal("Failed to read file", zap.String("file", args[0]), zap.Error(err))
		}

		if err := runTree(ctx, os.Stdout, args[0], src, cfg, dotOutput || treeOutput != "", withTrivia, treeOutput); err != nil {
			logger.Fatal("Failed to print syntax tree", zap.Error(err))
		}
	},
}

func init() {
	treeCmd.Flags().BoolVar(&dotOutput, "dot", false, "Print a GraphViz digraph")
	treeCmd.Flags().BoolVar(&withTrivia, "trivia", false, "Include whitespace and comments")
	treeCmd.Flags().StringVarP(&treeOutput, "output", "o", "", "Output path for the GraphViz file")
}

func runTree(ctx context.Context, w io.Writer, filename string, src []byte, cfg dialect.Config, dot, trivia bool, output string) error {
	tree, err := parser.ParseFile(ctx, filename, string(src), cfg)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if dot {
		err = syntax.Fdot(&buf, tree.Root, trivia, requirementNote)
	} else {
		err = syntax.Fdump(&buf, tree.Root, trivia, requirementNote)
	}
	if err != nil {
		return err
	}

	if output == "" {
		_, err = w.Write(buf.Bytes())
		return err
	}
	if err := renderGraph(buf.Bytes(), output); err != nil {
		return err
	}
	fmt.Fprintf(w, "GraphViz file created: %s\n", output)
	return nil
}

// requirementNote annotates nodes that need more than core XQuery 1.0.
func requirementNote(n *syntax.Node) string {
	reqs := conformance.Requirements(n)
	if len(reqs) == 0 {
		return ""
	}
	return "{" + dialect.FormatAlternatives(reqs) + "}"
}

// renderGraph writes a .dot or .gv file as is; other extensions name the
// output format of the dot command.
func renderGraph(graph []byte, output string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	switch format {
	case "", "dot", "gv":
		return os.WriteFile(output, graph, 0o644)
	}

	cmd := exec.Command("dot", "-T"+format, "-o", output)
	cmd.Stdin = bytes.NewReader(graph)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("error running dot: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
