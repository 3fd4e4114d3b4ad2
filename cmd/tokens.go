package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

var (
	kindStyle  = color.New(color.FgCyan)
	errorStyle = color.New(color.FgRed, color.Bold)
	stateStyle = color.New(color.FgHiBlack)
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a query with the lexer state of each token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src, err := os.ReadFile(args[0])
		if err != nil {
			logger.Fatal("Failed to read file", zap.String("file", args[0]), zap.Error(err))
		}
		if err := writeTokens(os.Stdout, args[0], string(src)); err != nil {
			logger.Fatal("Failed to write tokens", zap.Error(err))
		}
	},
}

// writeTokens prints one token per line: position, kind, text and the
// state the token was lexed in.
func writeTokens(w io.Writer, filename, src string) error {
	tree := syntax.NewTree(filename, src, nil, false)
	for _, tok := range lexer.Tokenize(src, 0, len(src), lexer.State{}) {
		pos := tree.Position(tok.Start)
		style := kindStyle
		if tok.Kind.IsError() {
			style = errorStyle
		}
		_, err := fmt.Fprintf(w, "%4d:%-3d %s %s %s\n",
			pos.Line, pos.Column,
			style.Sprintf("%-28s", tok.Kind),
			strconv.Quote(tok.Text(src)),
			stateStyle.Sprint(tok.State))
		if err != nil {
			return err
		}
	}
	return nil
}
