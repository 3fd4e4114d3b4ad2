package fixer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	tt "github.com/gnoswap-labs/xqlint/internal/types"
	"github.com/gnoswap-labs/xqlint/xquery/dialect"
	"github.com/gnoswap-labs/xqlint/xquery/parser"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

type Fixer struct {
	DryRun        bool
	MinConfidence float64 // threshold for fixing issues
	// Dialect is used to check that a fixed file still parses.
	Dialect dialect.Config
	Out     io.Writer
}

func New(dryRun bool, threshold float64, cfg dialect.Config) *Fixer {
	return &Fixer{
		DryRun:        dryRun,
		MinConfidence: threshold,
		Dialect:       cfg,
		Out:           os.Stdout,
	}
}

// Fix replaces the span of every issue of filename that carries a
// suggestion with enough confidence. Overlapping edits keep the first
// one. The file is left untouched if the edits add syntax errors.
func (f *Fixer) Fix(ctx context.Context, filename string, issues []tt.Issue) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	edits := f.selectEdits(issues, len(content))
	if len(edits) == 0 {
		return nil
	}

	if f.DryRun {
		for _, issue := range edits {
			fmt.Fprintf(f.Out, "Would fix issue in %s at line %d: %s\n", filename, issue.Start.Line, issue.Message)
			fmt.Fprintf(f.Out, "Suggestion:\n%s\n", issue.Suggestion)
		}
		return nil
	}

	fixed := apply(content, edits)

	before, err := f.countErrors(ctx, filename, content)
	if err != nil {
		return err
	}
	after, err := f.countErrors(ctx, filename, fixed)
	if err != nil {
		return err
	}
	if after > before {
		return fmt.Errorf("fixes to %s introduce syntax errors", filename)
	}

	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if err := os.WriteFile(filename, fixed, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Fprintf(f.Out, "Fixed %d issue(s) in %s\n", len(edits), filename)
	return nil
}

// selectEdits returns the applicable issues ordered by start offset.
func (f *Fixer) selectEdits(issues []tt.Issue, size int) []tt.Issue {
	var candidates []tt.Issue
	for _, issue := range issues {
		if issue.Suggestion == "" || issue.Confidence < f.MinConfidence {
			continue
		}
		if issue.Start.Offset < 0 || issue.End.Offset > size || issue.Start.Offset > issue.End.Offset {
			continue
		}
		candidates = append(candidates, issue)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Start.Offset < candidates[j].Start.Offset
	})

	var edits []tt.Issue
	end := -1
	for _, issue := range candidates {
		if issue.Start.Offset < end {
			continue
		}
		edits = append(edits, issue)
		end = max(issue.End.Offset, issue.Start.Offset+1)
	}
	return edits
}

// apply replaces the spans of sorted, non-overlapping edits.
func apply(content []byte, edits []tt.Issue) []byte {
	out := make([]byte, 0, len(content))
	last := 0
	for _, issue := range edits {
		out = append(out, content[last:issue.Start.Offset]...)
		out = append(out, issue.Suggestion...)
		last = issue.End.Offset
	}
	return append(out, content[last:]...)
}

func (f *Fixer) countErrors(ctx context.Context, filename string, src []byte) (int, error) {
	tree, err := parser.ParseFile(ctx, filename, string(src), f.Dialect)
	if err != nil {
		return 0, fmt.Errorf("failed to parse file: %w", err)
	}
	count := 0
	for n := range tree.Root.All() {
		if n.Kind == syntax.KindError || (n.Kind == syntax.KindToken && n.Token.IsError()) {
			count++
		}
	}
	return count, nil
}
