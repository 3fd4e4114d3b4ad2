package nolint

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

const nolintPrefix = "xqlint:ignore"

// Manager manages nolint scopes and checks if a position is nolinted.
type Manager struct {
	// scopes maps filename to a slice of nolint scopes.
	scopes map[string][]nolintScope
}

// nolintScope represents a range of lines where nolint applies.
type nolintScope struct {
	rules map[string]struct{}
	start int
	end   int
}

// comment is one top-level XQuery comment.
type comment struct {
	text       string
	start, end int
}

// ParseComments collects the "(: xqlint:ignore rule-a, rule-b :)" comments
// of tree. A comment applies to its own lines and the line after it; before
// the first token of the query it applies to the whole file.
func ParseComments(tree *syntax.Tree) *Manager {
	manager := Manager{
		scopes: make(map[string][]nolintScope),
	}
	comments, firstToken := collectComments(tree.Root)
	for _, c := range comments {
		ns, err := parseComment(tree, c, firstToken)
		if err != nil {
			// ignore invalid nolint comments
			continue
		}
		manager.scopes[tree.Filename] = append(manager.scopes[tree.Filename], ns)
	}
	return &manager
}

// collectComments returns the top-level comments of root and the offset of
// its first significant token, or -1.
func collectComments(root *syntax.Node) ([]comment, int) {
	var (
		comments []comment
		current  *comment
		sb       strings.Builder
		depth    int
	)
	firstToken := -1
	for leaf := range root.Leaves() {
		switch leaf.Token {
		case lexer.CommentStart:
			if depth == 0 {
				current = &comment{start: leaf.Start()}
				sb.Reset()
			} else {
				sb.WriteString(leaf.Text)
			}
			depth++
		case lexer.CommentEnd:
			depth--
			if depth > 0 {
				sb.WriteString(leaf.Text)
				continue
			}
			if current != nil {
				current.text = sb.String()
				current.end = leaf.End()
				comments = append(comments, *current)
				current = nil
			}
		case lexer.Comment:
			sb.WriteString(leaf.Text)
		default:
			if firstToken < 0 && !leaf.IsTrivia() && leaf.Token != lexer.EOF {
				firstToken = leaf.Start()
			}
		}
	}
	return comments, firstToken
}

// parseComment parses a single nolint comment and determines its scope.
func parseComment(tree *syntax.Tree, c comment, firstToken int) (nolintScope, error) {
	var ns nolintScope
	text := strings.TrimSpace(c.text)
	if !strings.HasPrefix(text, nolintPrefix) {
		return ns, fmt.Errorf("invalid nolint comment")
	}
	rest := text[len(nolintPrefix):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '\n' && rest[0] != ':' {
		return ns, fmt.Errorf("invalid nolint comment format")
	}
	rest = strings.TrimPrefix(rest, ":")
	ns.rules = parseIgnoreRuleNames(rest)

	// before the query, apply to the entire file
	if firstToken < 0 || c.end <= firstToken {
		ns.start = 1
		ns.end = tree.Position(len(tree.Source)).Line
		return ns, nil
	}

	ns.start = tree.Position(c.start).Line
	ns.end = tree.Position(c.end).Line + 1
	return ns, nil
}

// parseIgnoreRuleNames parses the comma or space separated rule list. An
// empty list applies to all rules.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	for _, rule := range fields {
		rulesMap[rule] = struct{}{}
	}
	return rulesMap
}

// IsNolint checks if a given position and rule are nolinted.
func (m *Manager) IsNolint(pos token.Position, ruleName string) bool {
	scopes, exists := m.scopes[pos.Filename]
	if !exists {
		return false
	}
	for _, ns := range scopes {
		if pos.Line < ns.start || pos.Line > ns.end {
			continue
		}
		// If the rules list is empty, nolint applies to all rules
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
