package lints

import (
	tt "github.com/gnoswap-labs/xqlint/internal/types"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

const SyntaxError = "syntax-error"

// DetectSyntaxErrors reports the error nodes the parser recovered from.
func DetectSyntaxErrors(f *File, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	for n := range f.Tree.Root.All() {
		if n.Kind != syntax.KindError {
			continue
		}
		issue := f.issue(SyntaxError, n, severity, "%s", n.Err)
		issue.Category = "syntax"
		if len(n.Children) > 0 {
			issue.Note = "skipped: " + abbreviate(n.String(), 40)
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

func abbreviate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
