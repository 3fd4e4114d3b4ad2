package decode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/xqlint/xquery/dialect"
	"github.com/gnoswap-labs/xqlint/xquery/entity"
	"github.com/gnoswap-labs/xqlint/xquery/parser"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

func first(t *testing.T, src string, k syntax.Kind) *syntax.Node {
	t.Helper()
	tree, err := parser.Parse(context.Background(), src, dialect.Default())
	require.NoError(t, err)
	for n := range tree.Root.All() {
		if n.Kind == k {
			return n
		}
	}
	t.Fatalf("no %s in %q", k, src)
	return nil
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind syntax.Kind
		want string
	}{
		{"entity and char refs", `"&amp;&#65;&#x41;"`, syntax.KindStringLiteral, "&AA"},
		{"doubled quote", `"say ""hi"""`, syntax.KindStringLiteral, `say "hi"`},
		{"doubled apostrophe", `'it''s'`, syntax.KindStringLiteral, "it's"},
		{"unknown entity kept", `"a&nbsp;b"`, syntax.KindStringLiteral, "a&nbsp;b"},
		{"invalid char ref kept", `"&#0;"`, syntax.KindStringLiteral, "&#0;"},
		{"partial reference kept", `"a & b"`, syntax.KindStringLiteral, "a & b"},
		{"braced uri", `Q{urn:x}local`, syntax.KindBracedURILiteral, "urn:x"},
		{"attribute normalization", "<a b=\"x&#10;y\tz{{}}\"/>", syntax.KindDirAttributeValue, "x\ny z{}"},
		{"attribute crlf", "<a b=\"1\r\n2\"/>", syntax.KindDirAttributeValue, "1 2"},
		{"attribute skips enclosed", `<a b="x{1}y"/>`, syntax.KindDirAttributeValue, "xy"},
		{"element content", `<a>1 &lt; 2<![CDATA[<b>]]><c>no</c></a>`, syntax.KindDirElemContent, "1 < 2<b>"},
		{"cdata", `<a><![CDATA[&amp;]]></a>`, syntax.KindCDataSection, "&amp;"},
		{"comment", `<!-- hi -->`, syntax.KindDirCommentConstructor, " hi "},
		{"processing instruction", `<?target data?>`, syntax.KindDirPIConstructor, "data"},
		{"string constructor", "``[a`{1}`b]``", syntax.KindStringConstructor, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := first(t, tt.src, tt.kind)
			assert.Equal(t, tt.want, String(n))
		})
	}
}

func TestEntitySets(t *testing.T) {
	n := first(t, `"a&nbsp;b&eacute;"`, syntax.KindStringLiteral)

	assert.Equal(t, "a&nbsp;b&eacute;", Decoder{Entities: entity.Predefined}.String(n))
	assert.Equal(t, "a\u00a0bé", Decoder{Entities: entity.HTML4}.String(n))
	assert.Equal(t, "a\u00a0bé", Decoder{Entities: entity.HTML5}.String(n))

	// each set has its own cached value
	assert.True(t, syntax.Cached(n, slots[entity.Predefined]))
	assert.True(t, syntax.Cached(n, slots[entity.HTML4]))
	n.Invalidate()
	assert.False(t, syntax.Cached(n, slots[entity.HTML4]))
}

func TestRange(t *testing.T) {
	// offsets:  0 " 1 a 2 &amp; 7 b 8 "
	n := first(t, `"a&amp;b"`, syntax.KindStringLiteral)

	s, offs := Range(n, 0, 9)
	assert.Equal(t, "a&b", s)
	assert.Equal(t, Offsets{1, 2, 7, 9}, offs)

	// a reference cut by the range is left out
	s, offs = Range(n, 3, 8)
	assert.Equal(t, "b", s)
	assert.Equal(t, Offsets{7, 8}, offs)
	assert.Equal(t, 7, offs.Source(0))
	assert.Equal(t, 8, offs.Source(5))

	s, offs = Range(n, 5, 5)
	assert.Empty(t, s)
	assert.Equal(t, Offsets{5}, offs)
}

func TestRangeAttributeOffsets(t *testing.T) {
	// offsets: 0 < 1 a 2 space 3 b 4 = 5 " 6 x 7 \t 8 y 9 "
	n := first(t, "<a b=\"x\ty\"/>", syntax.KindDirAttributeValue)
	s, offs := Range(n, 0, 100)
	assert.Equal(t, "x y", s)
	assert.Equal(t, Offsets{6, 7, 8, 10}, offs)
}

func TestNotDecodable(t *testing.T) {
	n := first(t, `1 + 2`, syntax.KindAdditiveExpr)
	assert.False(t, Decodable(n))
	assert.Empty(t, String(n))
	assert.False(t, Decodable(nil))
}

func TestCharRef(t *testing.T) {
	tests := []struct {
		text string
		want rune
		ok   bool
	}{
		{"&#65;", 'A', true},
		{"&#x41;", 'A', true},
		{"&#x1F600;", 0x1F600, true},
		{"&#xD800;", 0, false},
		{"&#;", 0, false},
		{"&amp;", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r, ok := CharRef(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, r)
		})
	}
}
