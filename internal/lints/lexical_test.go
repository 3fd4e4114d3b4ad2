package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnoswap-labs/xqlint/internal/types"
	"github.com/gnoswap-labs/xqlint/xquery/dialect"
)

func TestDetectLexicalErrors(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected []string
	}{
		{
			name:     "clean",
			code:     `"a&amp;b", 1.5e3, <a>&#x41;</a>`,
			expected: nil,
		},
		{
			name:     "unterminated string",
			code:     `"abc`,
			expected: []string{"unterminated string literal"},
		},
		{
			name:     "unterminated comment",
			code:     "1 (: note",
			expected: []string{"unterminated comment"},
		},
		{
			name:     "bad character",
			code:     "1 § 2",
			expected: []string{`unexpected character "§"`},
		},
		{
			name:     "leading bad character",
			code:     "§ 1",
			expected: []string{`unexpected character "§"`},
		},
		{
			name:     "comment never closed",
			code:     "(: never closed",
			expected: []string{"unterminated comment"},
		},
		{
			name:     "empty reference",
			code:     `"&;"`,
			expected: []string{`empty reference "&;"`},
		},
		{
			name:     "incomplete reference",
			code:     `"&amp"`,
			expected: []string{`incomplete reference "&amp"`},
		},
		{
			name:     "missing exponent",
			code:     "1e",
			expected: []string{`missing exponent digits in "1e"`},
		},
		{
			name:     "not an XML character",
			code:     `"&#0;"`,
			expected: []string{`reference "&#0;" is not a valid XML character`},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := parseQuery(t, tc.code, dialect.Default())
			issues, err := DetectLexicalErrors(f, tt.SeverityError)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, messages(issues))
		})
	}
}

func TestLexicalErrorPosition(t *testing.T) {
	f := parseQuery(t, "1,\n  2 § 3", dialect.Default())
	issues, err := DetectLexicalErrors(f, tt.SeverityWarning)
	require.NoError(t, err)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, LexicalError, issue.Rule)
	assert.Equal(t, "lexical", issue.Category)
	assert.Equal(t, tt.SeverityWarning, issue.Severity)
	assert.Equal(t, 2, issue.Start.Line)
	assert.Equal(t, 5, issue.Start.Column)
	assert.Equal(t, 7, issue.End.Column)
}
