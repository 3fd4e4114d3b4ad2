package formatter

import (
	"go/token"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/gnoswap-labs/xqlint/internal"
	"github.com/gnoswap-labs/xqlint/internal/lints"
	tt "github.com/gnoswap-labs/xqlint/internal/types"
)

func init() {
	color.NoColor = true
}

func TestGenerateFormattedIssue(t *testing.T) {
	t.Parallel()
	code := internal.NewSourceCode([]byte("xquery version \"1.0\";\n\"a\" || \"b\",\n\"&nbsp;\"\n"))

	issues := []tt.Issue{
		{
			Rule:     lints.UnsupportedConstruct,
			Filename: "test.xq",
			Start:    token.Position{Line: 2, Column: 5},
			End:      token.Position{Line: 2, Column: 7},
			Message:  "StringConcatExpr requires XQuery 3.0",
			Note:     "checked against W3C XQuery 1.0",
			Severity: tt.SeverityError,
		},
		{
			Rule:       lints.UnknownEntity,
			Filename:   "test.xq",
			Start:      token.Position{Line: 3, Column: 2},
			End:        token.Position{Line: 3, Column: 8},
			Message:    `unknown entity "&nbsp;"`,
			Suggestion: "&#xA0;",
			Note:       "defined in the html4 entity set",
			Severity:   tt.SeverityWarning,
		},
	}

	expected := `error: unsupported-construct
 --> test.xq:2:5
  |
2 | "a" || "b",
  |     ~~
  = StringConcatExpr requires XQuery 3.0
  = note: checked against W3C XQuery 1.0
  = help: set the dialect in .xqlint.yaml or declare the version with 'xquery version'

warning: unknown-entity
 --> test.xq:3:2
  |
3 | "&nbsp;"
  |  ~~~~~~
  = unknown entity "&nbsp;"
  = suggestion: &#xA0;
  = note: defined in the html4 entity set

`

	result := GenerateFormattedIssue(issues, code)

	assert.Equal(t, expected, result, "Formatted output does not match expected")
}

func TestFormatIssuesWithArrows_MultipleDigitsLineNumbers(t *testing.T) {
	t.Parallel()
	lines := make([]string, 12)
	for i := range lines {
		lines[i] = "  ()"
	}
	lines[9] = "  (1 +"
	lines[10] = "   2"
	code := &internal.SourceCode{Lines: lines}

	issue := tt.Issue{
		Rule:     lints.SyntaxError,
		Start:    token.Position{Line: 10, Column: 3},
		End:      token.Position{Line: 11, Column: 5},
		Message:  "expected ')'",
		Severity: tt.SeverityError,
	}

	expected := `error: syntax-error
  --> <stdin>:10:3
   |
10 | (1 +
11 |  2
   | ~~~~
   = expected ')'

`

	assert.Equal(t, expected, GenerateFormattedIssue([]tt.Issue{issue}, code))
}

func TestUnderlineOutsideSource(t *testing.T) {
	t.Parallel()
	code := &internal.SourceCode{Lines: []string{"1"}}
	issue := tt.Issue{
		Rule:     lints.SyntaxError,
		Filename: "test.xq",
		Start:    token.Position{Line: 3, Column: 1},
		End:      token.Position{Line: 3, Column: 1},
		Message:  "expected expression",
		Severity: tt.SeverityInfo,
	}

	expected := `info: syntax-error
 --> test.xq:3:1
  |
  | expected expression

`
	assert.Equal(t, expected, GenerateFormattedIssue([]tt.Issue{issue}, code))
}

func TestEmptySpanUnderline(t *testing.T) {
	t.Parallel()
	got := underlineAndMessage("m", "  ", 1, 1, 3, 3, []string{"ab"}, "")
	assert.Equal(t, "  |   ~\n  = m\n", got)
}

func TestCalculateVisualColumn(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line   string
		column int
		want   int
	}{
		{"abc", 1, 0},
		{"abc", 3, 2},
		{"\tx", 2, 8},
		{"a\tx", 3, 8},
		{"é!", 3, 1},
		{"ab", 10, 2},
		{"ab", -1, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, calculateVisualColumn(tc.line, tc.column), "%q column %d", tc.line, tc.column)
	}
}

func TestFindCommonIndent(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		lines    []string
	}{
		{
			name: "whitespace indent",
			lines: []string{
				"    if ($a)",
				"      then 1",
				"    else 2",
			},
			expected: "    ",
		},
		{
			name: "tab indent",
			lines: []string{
				"\tfor $x in 1 to 3",
				"\t\treturn $x",
			},
			expected: "\t",
		},
		{
			name: "mixed indent (space and tab)",
			lines: []string{
				"\t    let $a := 1",
				"\t    \treturn $a",
			},
			expected: "\t    ",
		},
		{
			name: "no indent",
			lines: []string{
				"<a>",
				"</a>",
			},
			expected: "",
		},
		{
			name: "empty line",
			lines: []string{
				"    (1,",
				"",
				"     2)",
			},
			expected: "    ",
		},
		{
			name:     "no lines",
			lines:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, findCommonIndent(tt.lines))
		})
	}
}
