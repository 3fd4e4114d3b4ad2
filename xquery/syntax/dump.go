package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fdump writes an indented outline of n to w. Trivia leaves are omitted
// unless trivia is set. annotate may add a suffix to each composite node.
func Fdump(w io.Writer, n *Node, trivia bool, annotate func(*Node) string) error {
	return dump(w, n, 0, trivia, annotate)
}

func dump(w io.Writer, n *Node, depth int, trivia bool, annotate func(*Node) string) error {
	if !trivia && n.IsTrivia() {
		return nil
	}
	indent := strings.Repeat("  ", depth)
	var line string
	switch n.Kind {
	case KindToken:
		line = fmt.Sprintf("%s%s %s", indent, n.Token, strconv.Quote(n.Text))
	case KindError:
		line = fmt.Sprintf("%sError(%s)", indent, n.Err)
	default:
		line = indent + n.Kind.String()
	}
	if annotate != nil && n.Kind != KindToken {
		if extra := annotate(n); extra != "" {
			line += " " + extra
		}
	}
	if _, err := fmt.Fprintf(w, "%s [%d:%d]\n", line, n.start, n.end); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := dump(w, c, depth+1, trivia, annotate); err != nil {
			return err
		}
	}
	return nil
}

// Outline returns the kinds of the composite nodes under n as a compact
// S-expression, e.g. "(DirElemConstructor (DirElemContent (EnclosedExpr ...)))".
func Outline(n *Node) string {
	var sb strings.Builder
	outline(&sb, n)
	return sb.String()
}

func outline(sb *strings.Builder, n *Node) {
	sb.WriteByte('(')
	sb.WriteString(n.Kind.String())
	for _, c := range n.Children {
		if c.Kind == KindToken {
			continue
		}
		sb.WriteByte(' ')
		outline(sb, c)
	}
	sb.WriteByte(')')
}

// Fdot writes n as a GraphViz digraph, one vertex per node. Trivia and
// annotate behave as in Fdump.
func Fdot(w io.Writer, n *Node, trivia bool, annotate func(*Node) string) error {
	if _, err := io.WriteString(w, "digraph syntax {\n\tnode [shape=box, fontname=\"monospace\"];\n\n"); err != nil {
		return err
	}
	id := 0
	var walk func(n *Node) (string, error)
	walk = func(n *Node) (string, error) {
		name := "n" + strconv.Itoa(id)
		id++

		var label string
		switch n.Kind {
		case KindToken:
			label = n.Token.String() + " " + strconv.Quote(n.Text)
		case KindError:
			label = "Error(" + n.Err + ")"
		default:
			label = n.Kind.String()
			if annotate != nil {
				if extra := annotate(n); extra != "" {
					label += "\n" + extra
				}
			}
		}
		attrs := ""
		if n.Kind == KindError {
			attrs = ", color=red"
		} else if n.Kind == KindToken {
			attrs = ", shape=plaintext"
		}
		if _, err := fmt.Fprintf(w, "\t%s [label=%s%s];\n", name, strconv.Quote(label), attrs); err != nil {
			return "", err
		}

		for _, c := range n.Children {
			if !trivia && c.IsTrivia() {
				continue
			}
			child, err := walk(c)
			if err != nil {
				return "", err
			}
			if _, err := fmt.Fprintf(w, "\t%s -> %s;\n", name, child); err != nil {
				return "", err
			}
		}
		return name, nil
	}
	if _, err := walk(n); err != nil {
		return err
	}
	_, err := io.WriteString(w, "}\n")
	return err
}
