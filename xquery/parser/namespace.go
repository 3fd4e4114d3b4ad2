package parser

import (
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

// PrefixForm tells how a computed namespace constructor names its prefix.
type PrefixForm int

const (
	// PrefixNone is returned for nodes that are not namespace constructors
	// or whose prefix is missing.
	PrefixNone PrefixForm = iota
	// PrefixNCName is a literal prefix: namespace p { "uri" }.
	PrefixNCName
	// PrefixStringLiteral is an enclosed string literal:
	// namespace { "p" } { "uri" }.
	PrefixStringLiteral
	// PrefixOpaque is any other enclosed expression. Its value cannot be
	// computed statically.
	PrefixOpaque
)

func (f PrefixForm) String() string {
	switch f {
	case PrefixNCName:
		return "ncname"
	case PrefixStringLiteral:
		return "string-literal"
	case PrefixOpaque:
		return "opaque"
	}
	return "none"
}

// Prefix is the prefix part of a CompNamespaceConstructor.
type Prefix struct {
	Form PrefixForm
	// Node is the NCName, the StringLiteral or the EnclosedExpr.
	Node *syntax.Node
}

// Name returns the prefix text of an NCName prefix, or "".
func (p Prefix) Name() string {
	if p.Form != PrefixNCName {
		return ""
	}
	return p.Node.String()
}

// NamespacePrefix classifies the prefix of a computed namespace
// constructor.
func NamespacePrefix(n *syntax.Node) Prefix {
	if n == nil || n.Kind != syntax.KindCompNamespaceConstructor {
		return Prefix{}
	}
	for _, c := range n.Significant() {
		switch c.Kind {
		case syntax.KindNCName:
			return Prefix{Form: PrefixNCName, Node: c}
		case syntax.KindEnclosedExpr:
			// the first enclosed expression is the prefix, the second the URI
			if len(n.ChildrenOf(syntax.KindEnclosedExpr)) < 2 {
				return Prefix{}
			}
			if lit := soleStringLiteral(c); lit != nil {
				return Prefix{Form: PrefixStringLiteral, Node: lit}
			}
			return Prefix{Form: PrefixOpaque, Node: c}
		}
	}
	return Prefix{}
}

func soleStringLiteral(enclosed *syntax.Node) *syntax.Node {
	var inner []*syntax.Node
	for _, c := range enclosed.Significant() {
		if c.Kind != syntax.KindToken {
			inner = append(inner, c)
		}
	}
	if len(inner) == 1 && inner[0].Kind == syntax.KindStringLiteral {
		return inner[0]
	}
	return nil
}
