package lints

import (
	"context"
	"fmt"

	tt "github.com/gnoswap-labs/xqlint/internal/types"
	"github.com/gnoswap-labs/xqlint/xquery/conformance"
	"github.com/gnoswap-labs/xqlint/xquery/dialect"
	"github.com/gnoswap-labs/xqlint/xquery/parser"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

// File is a parsed query and the dialect it is checked against.
type File struct {
	Name string
	Tree *syntax.Tree
	// Dialect is the configured dialect, adjusted to the version
	// declaration of the file.
	Dialect dialect.Config
}

// ParseFile parses src with cfg. A cancelled context yields an error; the
// partial tree is not linted.
func ParseFile(ctx context.Context, filename string, src []byte, cfg dialect.Config) (*File, error) {
	tree, err := parser.ParseFile(ctx, filename, string(src), cfg)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filename, err)
	}
	return &File{
		Name:    filename,
		Tree:    tree,
		Dialect: conformance.Effective(tree.Root, cfg),
	}, nil
}

// issue builds an issue covering n.
func (f *File) issue(rule string, n *syntax.Node, severity tt.Severity, format string, args ...any) tt.Issue {
	start, end := f.Tree.Span(n)
	return tt.Issue{
		Rule:     rule,
		Filename: f.Name,
		Message:  fmt.Sprintf(format, args...),
		Start:    start,
		End:      end,
		Severity: severity,
	}
}
