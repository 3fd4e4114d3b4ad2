package lints

import (
	tt "github.com/gnoswap-labs/xqlint/internal/types"
	"github.com/gnoswap-labs/xqlint/xquery/dialect"
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

const ReservedFunctionName = "reserved-function-name"

// DetectReservedFunctionNames reports unprefixed function names that the
// dialect reserves for its own syntax, in declarations, calls and named
// function references.
func DetectReservedFunctionNames(f *File, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	for n := range f.Tree.Root.All() {
		switch n.Kind {
		case syntax.KindFunctionDecl, syntax.KindFunctionCall, syntax.KindNamedFunctionRef:
		default:
			continue
		}
		name := n.Child(syntax.KindNCName)
		if name == nil {
			continue
		}
		tok := name.TokenChild(lexer.NCName)
		if tok == nil || !lexer.IsReservedFunctionName(tok.Text, f.Dialect) {
			continue
		}
		issue := f.issue(ReservedFunctionName, name, severity, "%q is a reserved function name", tok.Text)
		issue.Category = "naming"
		issue.Note = "reserved by " + dialect.FormatAlternatives(lexer.ReservedFunctionNameVersions(tok.Text))
		if n.Kind == syntax.KindFunctionDecl {
			// callers keep the old name
			issue.Suggestion = "local:" + tok.Text
			issue.Confidence = 0.5
		}
		issues = append(issues, issue)
	}
	return issues, nil
}
