package lints

import (
	"strings"

	tt "github.com/gnoswap-labs/xqlint/internal/types"
	"github.com/gnoswap-labs/xqlint/xquery/conformance"
	"github.com/gnoswap-labs/xqlint/xquery/dialect"
)

const UnsupportedVersion = "unsupported-version"

// DetectUnsupportedVersion reports a version declaration naming an unknown
// XQuery version, or a MarkLogic dialect outside MarkLogic. An unknown
// version leaves the configured version in effect.
func DetectUnsupportedVersion(f *File, severity tt.Severity) ([]tt.Issue, error) {
	label, lit, ok := conformance.DeclaredVersion(f.Tree.Root)
	if !ok {
		return nil, nil
	}
	v, err := dialect.ParseVersion(dialect.XQuery, label)
	if err != nil {
		issue := f.issue(UnsupportedVersion, lit, severity, "unsupported XQuery version %q", label)
		issue.Category = "version"
		issue.Note = "known versions: " + strings.Join(xqueryLabels(), ", ") +
			"; checking against " + f.Dialect.XQuery.Label
		return []tt.Issue{issue}, nil
	}
	if v.IsMarkLogicDialect() && f.Dialect.Product != dialect.MarkLogic {
		issue := f.issue(UnsupportedVersion, lit, severity, "XQuery version %q is only available in MarkLogic", label)
		issue.Category = "version"
		issue.Note = "checked against " + f.Dialect.String()
		return []tt.Issue{issue}, nil
	}
	return nil, nil
}

func xqueryLabels() []string {
	var labels []string
	for _, v := range dialect.Known {
		if v.Kind == dialect.XQuery {
			labels = append(labels, v.Label)
		}
	}
	return labels
}
