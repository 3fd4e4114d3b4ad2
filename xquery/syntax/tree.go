package syntax

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// ErrReadOnly is returned when editing a partial tree.
var ErrReadOnly = errors.New("syntax: tree is read-only")

// Tree is a parsed document.
type Tree struct {
	Filename string
	Source   string
	Root     *Node
	// Partial is set when parsing stopped early; a partial tree cannot be
	// edited.
	Partial bool

	fset *token.FileSet
	file *token.File
}

// NewTree wraps root, parsed from src.
func NewTree(filename, src string, root *Node, partial bool) *Tree {
	t := &Tree{
		Filename: filename,
		Source:   src,
		Root:     root,
		Partial:  partial,
	}
	t.index()
	return t
}

func (t *Tree) index() {
	t.fset = token.NewFileSet()
	t.file = t.fset.AddFile(t.Filename, -1, len(t.Source))
	t.file.SetLinesForContent([]byte(t.Source))
}

// Position returns the line and column of a byte offset.
func (t *Tree) Position(offset int) token.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(t.Source) {
		offset = len(t.Source)
	}
	return t.fset.Position(t.file.Pos(offset))
}

// Span returns the positions of the start and end of n.
func (t *Tree) Span(n *Node) (token.Position, token.Position) {
	return t.Position(n.Start()), t.Position(n.End())
}

// ReplaceChild replaces the i-th child of parent with n.
func (t *Tree) ReplaceChild(parent *Node, i int, n *Node) error {
	if err := t.checkEdit(parent, i, len(parent.Children)); err != nil {
		return err
	}
	old := parent.Children[i]
	old.parent = nil
	parent.Children[i] = n
	t.edited(parent, n)
	return nil
}

// InsertChild inserts n as the i-th child of parent.
func (t *Tree) InsertChild(parent *Node, i int, n *Node) error {
	if err := t.checkEdit(parent, i, len(parent.Children)+1); err != nil {
		return err
	}
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[i+1:], parent.Children[i:])
	parent.Children[i] = n
	t.edited(parent, n)
	return nil
}

// RemoveChild removes the i-th child of parent.
func (t *Tree) RemoveChild(parent *Node, i int) error {
	if err := t.checkEdit(parent, i, len(parent.Children)); err != nil {
		return err
	}
	parent.Children[i].parent = nil
	parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
	t.edited(parent, nil)
	return nil
}

func (t *Tree) checkEdit(parent *Node, i, limit int) error {
	if t.Partial {
		return ErrReadOnly
	}
	if parent == nil {
		return errors.New("syntax: nil parent")
	}
	if i < 0 || i >= limit {
		return fmt.Errorf("syntax: child index %d out of range [0,%d)", i, limit)
	}
	return nil
}

// edited relinks the tree after a change under parent, rebuilds the source
// text and offsets, and invalidates the caches on the changed path.
func (t *Tree) edited(parent, added *Node) {
	if added != nil {
		added.parent = parent
		for d := range added.All() {
			d.mu.Lock()
			d.gen++
			d.mu.Unlock()
		}
	}
	parent.Invalidate()

	var sb strings.Builder
	t.Root.writeText(&sb)
	t.Source = sb.String()
	reposition(t.Root, 0)
	t.index()
}

// reposition recomputes the offsets of n's subtree from its leaves.
func reposition(n *Node, offset int) int {
	n.start = offset
	if n.Kind == KindToken {
		offset += len(n.Text)
	} else {
		for _, c := range n.Children {
			c.parent = n
			offset = reposition(c, offset)
		}
	}
	n.end = offset
	return offset
}
