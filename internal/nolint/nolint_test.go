package nolint

import (
	"context"
	"go/token"
	"testing"

	"github.com/gnoswap-labs/xqlint/xquery/dialect"
	"github.com/gnoswap-labs/xqlint/xquery/parser"
)

func parseManager(t *testing.T, src string) *Manager {
	t.Helper()
	tree, err := parser.ParseFile(context.Background(), "test.xq", src, dialect.Default())
	if err != nil {
		t.Fatalf("Failed to parse source: %v", err)
	}
	return ParseComments(tree)
}

func TestParseNolintRules(t *testing.T) {
	t.Parallel()
	input := " rule1, rule2 rule3"
	expected := []string{"rule1", "rule2", "rule3"}
	result := parseIgnoreRuleNames(input)
	if len(result) != len(expected) {
		t.Errorf("Expected %d rules, got %d", len(expected), len(result))
	}
	for _, rule := range expected {
		if _, exists := result[rule]; !exists {
			t.Errorf("Expected rule %s not found", rule)
		}
	}
}

func TestFileScope(t *testing.T) {
	t.Parallel()
	src := `(: xqlint:ignore unknown-entity :)
xquery version "3.1";
"&nbsp;",
"&eacute;"
`
	manager := parseManager(t, src)

	for line := 1; line <= 4; line++ {
		pos := token.Position{Filename: "test.xq", Line: line}
		if !manager.IsNolint(pos, "unknown-entity") {
			t.Errorf("Expected line %d to be nolinted for unknown-entity", line)
		}
		if manager.IsNolint(pos, "syntax-error") {
			t.Errorf("Expected line %d not to be nolinted for syntax-error", line)
		}
	}
}

func TestIsNolint(t *testing.T) {
	t.Parallel()
	src := `1,
(: xqlint:ignore syntax-error :)
2,
3, (: xqlint:ignore :)
4,
5,
(: a plain comment :)
6,
(: xqlint:ignored :)
7
`
	manager := parseManager(t, src)

	tests := []struct {
		line     int
		rule     string
		expected bool
	}{
		{1, "syntax-error", false},
		{2, "syntax-error", true},
		{3, "syntax-error", true},
		{3, "unknown-entity", false},
		{4, "unknown-entity", true},
		{5, "any-rule", true},
		{6, "any-rule", false},
		{8, "any-rule", false},
		{10, "any-rule", false},
	}
	for _, tt := range tests {
		pos := token.Position{Filename: "test.xq", Line: tt.line}
		if got := manager.IsNolint(pos, tt.rule); got != tt.expected {
			t.Errorf("line %d, rule %s: expected %v, got %v", tt.line, tt.rule, tt.expected, got)
		}
	}
}

func TestOtherFile(t *testing.T) {
	t.Parallel()
	manager := parseManager(t, "(: xqlint:ignore :) 1")
	pos := token.Position{Filename: "other.xq", Line: 1}
	if manager.IsNolint(pos, "syntax-error") {
		t.Errorf("Expected scopes to be bound to their file")
	}
}
