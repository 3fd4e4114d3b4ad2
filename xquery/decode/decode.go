// Package decode computes the string values of literal and content nodes:
// string literals, braced URIs, direct attribute values, element content,
// CDATA sections, XML comments, processing instructions and string
// constructor content.
//
// Decoding always reads the original tokens of a node, so escapes and
// references are resolved exactly once.
package decode

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gnoswap-labs/xqlint/xquery/entity"
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

// Offsets maps every byte of a decoded string to the source offset of the
// text it was decoded from. The entry after the last byte holds the end of
// the decoded source range.
type Offsets []int

// Source returns the source offset of decoded byte i.
func (o Offsets) Source(i int) int {
	if len(o) == 0 {
		return 0
	}
	if i < 0 {
		i = 0
	}
	if i >= len(o) {
		i = len(o) - 1
	}
	return o[i]
}

// Decoder decodes nodes with one entity table.
type Decoder struct {
	Entities entity.Set
}

var slots [entity.Sets]syntax.Slot

func init() {
	for i := range slots {
		slots[i] = syntax.NewSlot()
	}
}

// String decodes n with the predefined XML entities.
func String(n *syntax.Node) string {
	return Decoder{}.String(n)
}

// Range decodes the part of n between the source offsets start and end
// with the predefined XML entities.
func Range(n *syntax.Node, start, end int) (string, Offsets) {
	return Decoder{}.Range(n, start, end)
}

// Decodable reports whether n has a string value.
func Decodable(n *syntax.Node) bool {
	if n == nil {
		return false
	}
	return syntax.HasCapability(n, syntax.CapDecodable) || n.Kind == syntax.KindStringConstructor
}

// String returns the decoded value of n, or "" when n is not decodable.
// Values are cached on the node per entity set.
func (d Decoder) String(n *syntax.Node) string {
	if !Decodable(n) {
		return ""
	}
	set := d.Entities
	if set < 0 || int(set) >= entity.Sets {
		set = entity.Predefined
	}
	return syntax.Memo(n, slots[set], func(n *syntax.Node) string {
		s, _ := d.decode(n, n.Start(), n.End(), false)
		return s
	})
}

// Range decodes the part of n covered by the source offsets [start, end)
// and maps each decoded byte back to its source offset. A reference or an
// escape is decoded only when the range covers it whole.
func (d Decoder) Range(n *syntax.Node, start, end int) (string, Offsets) {
	if !Decodable(n) {
		return "", Offsets{start}
	}
	start = max(start, n.Start())
	end = min(end, n.End())
	if end < start {
		end = start
	}
	return d.decode(n, start, end, true)
}

func (d Decoder) decode(n *syntax.Node, start, end int, offsets bool) (string, Offsets) {
	w := &writer{start: start, end: end, offsets: offsets}
	d.node(w, n)
	if offsets {
		w.offs = append(w.offs, end)
	}
	return w.sb.String(), w.offs
}

// node writes the parts of n that carry its value. Enclosed expressions,
// nested constructors and interpolations have no static value and are
// skipped.
func (d Decoder) node(w *writer, n *syntax.Node) {
	for _, c := range n.Children {
		switch c.Kind {
		case syntax.KindToken:
			d.token(w, c)
		case syntax.KindCDataSection, syntax.KindStringConstructorContent:
			d.node(w, c)
		}
	}
}

func (d Decoder) token(w *writer, t *syntax.Node) {
	switch t.Token {
	case lexer.XmlAttrValueContents:
		w.normalized(t)
	case lexer.StringLiteralContents, lexer.BracedURILiteralContents,
		lexer.XmlElementContents, lexer.CDataContents, lexer.XmlCommentContents,
		lexer.PIContents, lexer.StringConstructorContents,
		lexer.Invalid, lexer.PartialEntityReference, lexer.EmptyEntityReference:
		w.raw(t)
	case lexer.EscapeQuot:
		w.replace(t, `"`)
	case lexer.EscapeApos:
		w.replace(t, "'")
	case lexer.XmlEscapedCharacter:
		w.replace(t, t.Text[:1])
	case lexer.PredefinedEntityRef:
		name := strings.TrimSuffix(strings.TrimPrefix(t.Text, "&"), ";")
		if v, ok := entity.Lookup(d.Entities, name); ok {
			w.replace(t, v)
			return
		}
		w.raw(t)
	case lexer.CharRef:
		if r, ok := CharRef(t.Text); ok {
			w.replace(t, string(r))
			return
		}
		w.raw(t)
	}
}

// CharRef parses a character reference such as "&#65;" or "&#x41;".
// References to characters outside the XML Char production are rejected.
func CharRef(text string) (rune, bool) {
	if !strings.HasPrefix(text, "&#") || !strings.HasSuffix(text, ";") {
		return 0, false
	}
	digits, base := text[2:len(text)-1], 10
	if strings.HasPrefix(digits, "x") {
		digits, base = digits[1:], 16
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, false
	}
	r := rune(v)
	if !isXMLChar(r) {
		return 0, false
	}
	return r, true
}

func isXMLChar(r rune) bool {
	switch {
	case r == 0x9, r == 0xA, r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF, r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	}
	return false
}

type writer struct {
	sb         strings.Builder
	offs       Offsets
	start, end int
	offsets    bool
}

// clip returns the part of t inside the range.
func (w *writer) clip(t *syntax.Node) (text string, at int, ok bool) {
	s, e := max(t.Start(), w.start), min(t.End(), w.end)
	if s >= e {
		return "", 0, false
	}
	return t.Text[s-t.Start() : e-t.Start()], s, true
}

func (w *writer) raw(t *syntax.Node) {
	text, at, ok := w.clip(t)
	if !ok {
		return
	}
	w.sb.WriteString(text)
	if w.offsets {
		for i := range len(text) {
			w.offs = append(w.offs, at+i)
		}
	}
}

// normalized writes attribute text with each whitespace character, and
// each CR LF pair, replaced by a space.
func (w *writer) normalized(t *syntax.Node) {
	text, at, ok := w.clip(t)
	if !ok {
		return
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				w.writeByte(' ', at+i)
				i++
				continue
			}
			c = ' '
		case '\n', '\t':
			c = ' '
		}
		w.writeByte(c, at+i)
	}
}

func (w *writer) writeByte(c byte, at int) {
	w.sb.WriteByte(c)
	if w.offsets {
		w.offs = append(w.offs, at)
	}
}

// replace writes s for the whole token t, which must lie inside the range.
func (w *writer) replace(t *syntax.Node, s string) {
	if t.Start() < w.start || t.End() > w.end {
		return
	}
	w.sb.WriteString(s)
	if w.offsets {
		for range len(s) {
			w.offs = append(w.offs, t.Start())
		}
	}
}
