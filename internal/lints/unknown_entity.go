package lints

import (
	"fmt"
	"strings"

	tt "github.com/gnoswap-labs/xqlint/internal/types"
	"github.com/gnoswap-labs/xqlint/xquery/entity"
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
)

const UnknownEntity = "unknown-entity"

// DetectUnknownEntities reports entity references that the entity set of
// the dialect does not define. Their text is kept as is when decoded.
func DetectUnknownEntities(f *File, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	for leaf := range f.Tree.Root.Leaves() {
		if !leaf.IsToken(lexer.PredefinedEntityRef) {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(leaf.Text, "&"), ";")
		if _, ok := entity.Lookup(f.Dialect.Entities, name); ok {
			continue
		}
		issue := f.issue(UnknownEntity, leaf, severity, "unknown entity %q", leaf.Text)
		issue.Category = "entity"
		if set, ok := entity.Smallest(name); ok {
			issue.Note = "defined in the " + set.String() + " entity set"
		}
		if r, ok := entity.Lookup(entity.HTML5, name); ok && len([]rune(r)) == 1 {
			issue.Suggestion = charRefFor([]rune(r)[0])
			issue.Confidence = 0.9
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

func charRefFor(r rune) string {
	return fmt.Sprintf("&#x%X;", r)
}
