// Package conformance classifies syntax nodes by the specification or
// product versions their surface form needs.
//
// The same production can need different versions depending on which
// optional token is present: a catch clause is XQuery 3.0 syntax, but the
// MarkLogic form "catch ($e)" needs MarkLogic. Each node kind has a small
// decision table keyed on the token or child found at its conformance
// element.
package conformance

import (
	"fmt"

	"github.com/gnoswap-labs/xqlint/xquery/decode"
	"github.com/gnoswap-labs/xqlint/xquery/dialect"
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

// profile is the cached classification of one node.
type profile struct {
	reqs    []dialect.Version
	element *syntax.Node
}

var slot = syntax.NewSlot()

func classify(n *syntax.Node) profile {
	r, ok := rules[n.Kind]
	if !ok {
		return profile{}
	}
	reqs, elem := r(n)
	if len(reqs) == 0 {
		return profile{}
	}
	if elem == nil {
		elem = firstToken(n)
	}
	return profile{reqs: reqs, element: elem}
}

func lookup(n *syntax.Node) profile {
	if n == nil || n.Kind == syntax.KindToken {
		return profile{}
	}
	return syntax.Memo(n, slot, classify)
}

// Requirements returns the versions n needs, any one of which is enough.
// An empty list means n is core XQuery 1.0 syntax. The returned slice is
// shared and must not be modified.
func Requirements(n *syntax.Node) []dialect.Version {
	return lookup(n).reqs
}

// Element returns the token or child that decided the requirements of n,
// or nil when n has none.
func Element(n *syntax.Node) *syntax.Node {
	return lookup(n).element
}

// Violation is a construct that the configured dialect does not support.
type Violation struct {
	// Node is the construct.
	Node *syntax.Node
	// Element is where the violation is reported.
	Element *syntax.Node
	// Requires lists the versions that would support Node.
	Requires []dialect.Version
}

// Message describes the violation, e.g. "TryCatchExpr requires XQuery 3.0
// or MarkLogic 6.0".
func (v Violation) Message() string {
	return fmt.Sprintf("%s requires %s", v.Node.Kind, dialect.FormatAlternatives(v.Requires))
}

// Violations returns the constructs under root, in document order, whose
// requirements cfg does not meet.
func Violations(root *syntax.Node, cfg dialect.Config) []Violation {
	var out []Violation
	for n := range root.All() {
		p := lookup(n)
		if len(p.reqs) == 0 || cfg.SupportsAny(p.reqs) {
			continue
		}
		out = append(out, Violation{Node: n, Element: p.element, Requires: p.reqs})
	}
	return out
}

// DeclaredVersion returns the version literal of the first version
// declaration under root and its decoded value.
func DeclaredVersion(root *syntax.Node) (string, *syntax.Node, bool) {
	for n := range root.All() {
		if n.Kind != syntax.KindVersionDecl {
			continue
		}
		if n.Keyword("version") == nil {
			return "", nil, false
		}
		lit := n.Child(syntax.KindStringLiteral)
		if lit == nil {
			return "", nil, false
		}
		return decode.String(lit), lit, true
	}
	return "", nil, false
}

// Effective returns cfg adjusted to the version declared in root. Unknown
// versions leave cfg unchanged.
func Effective(root *syntax.Node, cfg dialect.Config) dialect.Config {
	label, _, ok := DeclaredVersion(root)
	if !ok {
		return cfg
	}
	if c, ok := cfg.WithXQueryVersion(label); ok {
		return c
	}
	return cfg
}

// EmptyEnclosed reports whether n is an enclosed expression with nothing
// between its braces.
func EmptyEnclosed(n *syntax.Node) bool {
	if n == nil || n.Kind != syntax.KindEnclosedExpr {
		return false
	}
	for _, c := range n.Significant() {
		if c.Kind != syntax.KindToken {
			return false
		}
		if c.Token != lexer.BlockOpen && c.Token != lexer.BlockClose {
			return false
		}
	}
	return true
}

func firstToken(n *syntax.Node) *syntax.Node {
	for l := range n.Leaves() {
		if !l.IsTrivia() {
			return l
		}
	}
	return nil
}
