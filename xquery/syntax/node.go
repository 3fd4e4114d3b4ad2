// Package syntax defines the lossless XQuery syntax tree.
//
// A tree is made of a single Node type tagged by Kind. Token leaves keep
// their source text, including whitespace and comments, so the text of the
// root equals the parsed source.
package syntax

import (
	"iter"
	"strings"
	"sync"

	"github.com/gnoswap-labs/xqlint/xquery/lexer"
)

// Node is one node of the syntax tree. A parent owns its children; the
// parent link is a non-owning back reference.
type Node struct {
	Kind Kind

	// Token and Text are set on KindToken leaves.
	Token lexer.Kind
	Text  string
	// State is the lexer state the leaf token was lexed in.
	State lexer.State

	// Err describes the missing or unexpected construct of a KindError node.
	Err string

	Children []*Node

	parent *Node
	start  int
	end    int

	mu    sync.Mutex
	gen   uint32
	cache []cacheEntry
}

// NewToken returns a leaf for tok.
func NewToken(tok lexer.Token, src string) *Node {
	return &Node{
		Kind:  KindToken,
		Token: tok.Kind,
		Text:  tok.Text(src),
		State: tok.State,
		start: tok.Start,
		end:   tok.End,
	}
}

// NewNode returns a composite node owning children.
func NewNode(kind Kind, children ...*Node) *Node {
	n := &Node{Kind: kind, Children: children}
	n.link()
	return n
}

// NewError returns an error node holding the skipped children.
func NewError(msg string, children ...*Node) *Node {
	n := NewNode(KindError, children...)
	n.Err = msg
	return n
}

// link sets parent pointers and the span of n from its children.
func (n *Node) link() {
	for _, c := range n.Children {
		c.parent = n
	}
	if len(n.Children) > 0 {
		n.start = n.Children[0].start
		n.end = n.Children[len(n.Children)-1].end
	}
}

// SetSpan positions an empty node, such as a zero-width error node.
func (n *Node) SetSpan(start, end int) {
	n.start, n.end = start, end
}

func (n *Node) Parent() *Node { return n.parent }
func (n *Node) Start() int    { return n.start }
func (n *Node) End() int      { return n.end }

// IsToken reports whether n is a leaf of token kind k.
func (n *Node) IsToken(k lexer.Kind) bool {
	return n != nil && n.Kind == KindToken && n.Token == k
}

// IsTrivia reports whether n is a whitespace, comment or bad-character leaf.
func (n *Node) IsTrivia() bool {
	if n.Kind == KindToken {
		return n.Token.IsTrivia() || n.Token == lexer.BadCharacter
	}
	return false
}

// String returns the source text covered by n.
func (n *Node) String() string {
	if n.Kind == KindToken {
		return n.Text
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	if n.Kind == KindToken {
		sb.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.writeText(sb)
	}
}

// Child returns the first child of kind k.
func (n *Node) Child(k Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == k {
			return c
		}
	}
	return nil
}

// ChildrenOf returns the children of kind k.
func (n *Node) ChildrenOf(k Kind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

// TokenChild returns the first leaf child of token kind k.
func (n *Node) TokenChild(k lexer.Kind) *Node {
	for _, c := range n.Children {
		if c.IsToken(k) {
			return c
		}
	}
	return nil
}

// Keyword returns the first NCName leaf child spelled word.
func (n *Node) Keyword(word string) *Node {
	for _, c := range n.Children {
		if c.IsToken(lexer.NCName) && c.Text == word {
			return c
		}
	}
	return nil
}

// Significant returns the children that are not trivia.
func (n *Node) Significant() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if !c.IsTrivia() {
			out = append(out, c)
		}
	}
	return out
}

// Index returns the position of child c in n, or -1.
func (n *Node) Index(c *Node) int {
	for i, x := range n.Children {
		if x == c {
			return i
		}
	}
	return -1
}

// All returns n and its descendants in document order.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(yield) {
			return false
		}
	}
	return true
}

// Leaves returns the token leaves under n in document order.
func (n *Node) Leaves() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for d := range n.All() {
			if d.Kind == KindToken && !yield(d) {
				return
			}
		}
	}
}

// Inspect calls f for n and its descendants; returning false from f skips
// the node's children.
func Inspect(n *Node, f func(*Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range n.Children {
		Inspect(c, f)
	}
}

// Ancestor returns the nearest ancestor of kind k.
func (n *Node) Ancestor(k Kind) *Node {
	for p := n.parent; p != nil; p = p.parent {
		if p.Kind == k {
			return p
		}
	}
	return nil
}

// HasErrors reports whether n or a descendant is an error node.
func (n *Node) HasErrors() bool {
	for d := range n.All() {
		if d.Kind == KindError {
			return true
		}
	}
	return false
}
