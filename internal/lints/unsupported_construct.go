package lints

import (
	tt "github.com/gnoswap-labs/xqlint/internal/types"
	"github.com/gnoswap-labs/xqlint/xquery/conformance"
)

const UnsupportedConstruct = "unsupported-construct"

// DetectUnsupportedConstructs reports constructs the dialect of the file
// does not provide. The issue points at the token that decided the
// requirement.
func DetectUnsupportedConstructs(f *File, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	for _, v := range conformance.Violations(f.Tree.Root, f.Dialect) {
		at := v.Element
		if at == nil {
			at = v.Node
		}
		issue := f.issue(UnsupportedConstruct, at, severity, "%s", v.Message())
		issue.Category = "conformance"
		issue.Note = "checked against " + f.Dialect.String()
		issues = append(issues, issue)
	}
	return issues, nil
}
