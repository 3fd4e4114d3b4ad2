// Package internal provides the lint engine of xqlint.
//
// The engine parses XQuery main and library modules with the dialect from
// the configuration file and runs every enabled rule over the syntax tree.
//
// Key components:
//
// Engine: parses a file once and runs the rules over it concurrently. Issues
// suppressed with `(: xqlint:ignore ... :)` comments are dropped and the rest
// are sorted by position.
//
// LintRule: the contract of a rule. Each rule wraps a Detect function from
// the lints package and carries the severity its issues are reported at.
//
// Cache: an on-disk cache of the issues of unchanged files, keyed by the
// settings they were produced under.
//
// SourceCode: the lines of a source file, used when rendering issues.
//
// Usage:
//
//	engine, err := internal.NewEngine(dialect.Default(), nil)
//	if err != nil {
//	    // handle error
//	}
//
//	issues, err := engine.Run(ctx, "path/to/query.xq")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, issue := range issues {
//	    fmt.Printf("Found issue: %s at %s\n", issue.Message, issue.Start)
//	}
//
// This package is intended for internal use within the linting tool and should not be
// imported by external packages.
package internal
