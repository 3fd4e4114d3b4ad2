package fixer

import (
	"bytes"
	"context"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnoswap-labs/xqlint/internal/types"
	"github.com/gnoswap-labs/xqlint/xquery/dialect"
)

const confidenceThreshold = 0.8

// at returns the issue span of the first occurrence of text in src.
func at(src, text string) (token.Position, token.Position) {
	i := strings.Index(src, text)
	return token.Position{Offset: i, Line: 1 + strings.Count(src[:i], "\n")},
		token.Position{Offset: i + len(text), Line: 1 + strings.Count(src[:i+len(text)], "\n")}
}

func entityIssue(src, ref, suggestion string, confidence float64) tt.Issue {
	start, end := at(src, ref)
	return tt.Issue{
		Rule:       "unknown-entity",
		Message:    "unknown entity " + ref,
		Start:      start,
		End:        end,
		Suggestion: suggestion,
		Confidence: confidence,
	}
}

func TestAutoFixer(t *testing.T) {
	const input = "<p>&nbsp;&copy;</p>,\n\"&eacute;\"\n"

	tests := []struct {
		name     string
		input    string
		expected string
		issues   []tt.Issue
		dryRun   bool
	}{
		{
			name:  "single reference",
			input: input,
			issues: []tt.Issue{
				entityIssue(input, "&nbsp;", "&#xA0;", 0.9),
			},
			expected: "<p>&#xA0;&copy;</p>,\n\"&eacute;\"\n",
		},
		{
			name:  "multiple references",
			input: input,
			issues: []tt.Issue{
				entityIssue(input, "&eacute;", "&#xE9;", 0.9),
				entityIssue(input, "&nbsp;", "&#xA0;", 0.9),
				entityIssue(input, "&copy;", "&#xA9;", 0.9),
			},
			expected: "<p>&#xA0;&#xA9;</p>,\n\"&#xE9;\"\n",
		},
		{
			name:  "below confidence threshold",
			input: "declare function switch() { 1 }; 1",
			issues: func() []tt.Issue {
				src := "declare function switch() { 1 }; 1"
				start, end := at(src, "switch")
				return []tt.Issue{{Rule: "reserved-function-name", Start: start, End: end, Suggestion: "local:switch", Confidence: 0.5}}
			}(),
			expected: "declare function switch() { 1 }; 1",
		},
		{
			name:  "without suggestion",
			input: input,
			issues: []tt.Issue{
				entityIssue(input, "&nbsp;", "", 1),
			},
			expected: input,
		},
		{
			name:  "overlapping edits keep the first",
			input: input,
			issues: []tt.Issue{
				entityIssue(input, "&nbsp;&copy;", "X", 1),
				entityIssue(input, "&copy;", "&#xA9;", 1),
			},
			expected: "<p>X</p>,\n\"&eacute;\"\n",
		},
		{
			name:  "dry run",
			input: input,
			issues: []tt.Issue{
				entityIssue(input, "&nbsp;", "&#xA0;", 0.9),
			},
			expected: input,
			dryRun:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpfile := filepath.Join(t.TempDir(), "test.xq")
			require.NoError(t, os.WriteFile(tmpfile, []byte(tt.input), 0o644))

			var out bytes.Buffer
			fixer := New(tt.dryRun, confidenceThreshold, dialect.Default())
			fixer.Out = &out

			require.NoError(t, fixer.Fix(context.Background(), tmpfile, tt.issues))

			content, err := os.ReadFile(tmpfile)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(content))

			if tt.dryRun {
				assert.Contains(t, out.String(), "Would fix issue in")
			}
		})
	}
}

func TestFixRejectsBrokenResult(t *testing.T) {
	src := "(1, 2)"
	tmpfile := filepath.Join(t.TempDir(), "test.xq")
	require.NoError(t, os.WriteFile(tmpfile, []byte(src), 0o644))

	start, end := at(src, ")")
	issues := []tt.Issue{{Rule: "test", Start: start, End: end, Suggestion: " +", Confidence: 1}}

	fixer := New(false, confidenceThreshold, dialect.Default())
	fixer.Out = &bytes.Buffer{}
	err := fixer.Fix(context.Background(), tmpfile, issues)
	assert.Error(t, err)

	content, err := os.ReadFile(tmpfile)
	require.NoError(t, err)
	assert.Equal(t, src, string(content))
}

func TestFixMissingFile(t *testing.T) {
	fixer := New(false, confidenceThreshold, dialect.Default())
	err := fixer.Fix(context.Background(), filepath.Join(t.TempDir(), "missing.xq"), nil)
	assert.Error(t, err)
}
