package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/xqlint/xquery/dialect"
)

type lexed struct {
	Kind Kind
	Text string
}

func lexAll(t Tokenizer, src string, state State) []lexed {
	var out []lexed
	for tok := range Tokens(t, src, 0, len(src), state) {
		out = append(out, lexed{tok.Kind, tok.Text(src)})
	}
	return out
}

func lex(src string) []lexed {
	return lexAll(New(), src, State{})
}

func TestLexOperators(t *testing.T) {
	tests := []struct {
		src  string
		want []Kind
	}{
		{"<<", []Kind{NodeBefore}},
		{">>", []Kind{NodeAfter}},
		{"<=", []Kind{LessThanOrEqual}},
		{">=", []Kind{GreaterThanOrEqual}},
		{"< 2", []Kind{LessThan, Whitespace, IntegerLiteral}},
		{"!=", []Kind{NotEqual}},
		{"!", []Kind{Bang}},
		{"=>", []Kind{Arrow}},
		{":=", []Kind{Assign}},
		{"::", []Kind{AxisSeparator}},
		{"||", []Kind{Concatenation}},
		{"|", []Kind{Union}},
		{"//", []Kind{AllDescendants}},
		{"..", []Kind{ParentSelector}},
		{"$x", []Kind{VariableIndicator, NCName}},
		{"%a", []Kind{Annotation, NCName}},
		{"f#1", []Kind{NCName, Hash, IntegerLiteral}},
		{"@id", []Kind{AttributeSelector, NCName}},
		{"a:b", []Kind{NCName, Colon, NCName}},
		{"a-b.c", []Kind{NCName}},
		{"?", []Kind{Question}},
		{"§", []Kind{BadCharacter}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			var got []Kind
			for _, tok := range lex(tt.src) {
				got = append(got, tok.Kind)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		src  string
		want []lexed
	}{
		{"1234", []lexed{{IntegerLiteral, "1234"}}},
		{"12.5", []lexed{{DecimalLiteral, "12.5"}}},
		{".5", []lexed{{DecimalLiteral, ".5"}}},
		{"1.", []lexed{{DecimalLiteral, "1."}}},
		{"1e5", []lexed{{DoubleLiteral, "1e5"}}},
		{"2.5E-3", []lexed{{DoubleLiteral, "2.5E-3"}}},
		{"1e", []lexed{{PartialDoubleLiteralExponent, "1e"}}},
		{"1e+", []lexed{{PartialDoubleLiteralExponent, "1e+"}}},
		{"1e-", []lexed{{PartialDoubleLiteralExponent, "1e-"}}},
		{"0x1F", []lexed{{HexIntegerLiteral, "0x1F"}}},
		{"0b101", []lexed{{BinaryIntegerLiteral, "0b101"}}},
		{"0x", []lexed{{IntegerLiteral, "0"}, {NCName, "x"}}},
		{"1 to 2", []lexed{{IntegerLiteral, "1"}, {Whitespace, " "}, {NCName, "to"}, {Whitespace, " "}, {IntegerLiteral, "2"}}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, lex(tt.src))
		})
	}
}

func TestLexComments(t *testing.T) {
	t.Run("closed", func(t *testing.T) {
		assert.Equal(t, []lexed{
			{CommentStart, "(:"},
			{Comment, " a "},
			{CommentEnd, ":)"},
		}, lex("(: a :)"))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, []lexed{{CommentStart, "(:"}, {CommentEnd, ":)"}}, lex("(::)"))
	})

	t.Run("nested", func(t *testing.T) {
		assert.Equal(t, []lexed{
			{CommentStart, "(:"},
			{Comment, " outer (: inner :) outer "},
			{CommentEnd, ":)"},
		}, lex("(: outer (: inner :) outer :)"))
	})

	t.Run("truncated", func(t *testing.T) {
		got := lex("(: Test :")
		require.Len(t, got, 3)
		assert.Equal(t, lexed{CommentStart, "(:"}, got[0])
		assert.Equal(t, lexed{Comment, " Test :"}, got[1])
		assert.Equal(t, lexed{UnexpectedEndOfBlock, ""}, got[2])
	})

	t.Run("truncated nested", func(t *testing.T) {
		got := lex("(: a (: b :)")
		require.Len(t, got, 3)
		assert.Equal(t, Comment, got[1].Kind)
		assert.Equal(t, UnexpectedEndOfBlock, got[2].Kind)
	})
}

func TestLexStrings(t *testing.T) {
	tests := []struct {
		src  string
		want []lexed
	}{
		{`"abc"`, []lexed{{StringLiteralStart, `"`}, {StringLiteralContents, "abc"}, {StringLiteralEnd, `"`}}},
		{`'a''b'`, []lexed{{StringLiteralStart, `'`}, {StringLiteralContents, "a"}, {EscapeApos, "''"}, {StringLiteralContents, "b"}, {StringLiteralEnd, `'`}}},
		{`"a""b"`, []lexed{{StringLiteralStart, `"`}, {StringLiteralContents, "a"}, {EscapeQuot, `""`}, {StringLiteralContents, "b"}, {StringLiteralEnd, `"`}}},
		{`"&amp;&#65;&#x41;"`, []lexed{
			{StringLiteralStart, `"`},
			{PredefinedEntityRef, "&amp;"},
			{CharRef, "&#65;"},
			{CharRef, "&#x41;"},
			{StringLiteralEnd, `"`},
		}},
		{`"&#x2G;"`, []lexed{
			{StringLiteralStart, `"`},
			{PartialEntityReference, "&#x2"},
			{StringLiteralContents, "G;"},
			{StringLiteralEnd, `"`},
		}},
		{`"&;&#;&#x;"`, []lexed{
			{StringLiteralStart, `"`},
			{EmptyEntityReference, "&;"},
			{EmptyEntityReference, "&#;"},
			{EmptyEntityReference, "&#x;"},
			{StringLiteralEnd, `"`},
		}},
		{`"& &nbsp"`, []lexed{
			{StringLiteralStart, `"`},
			{PartialEntityReference, "&"},
			{StringLiteralContents, " "},
			{PartialEntityReference, "&nbsp"},
			{StringLiteralEnd, `"`},
		}},
		{`"abc`, []lexed{{StringLiteralStart, `"`}, {StringLiteralContents, "abc"}, {UnexpectedEndOfBlock, ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, lex(tt.src))
		})
	}
}

func TestLexBracedURI(t *testing.T) {
	assert.Equal(t, []lexed{
		{BracedURILiteralStart, "Q{"},
		{BracedURILiteralContents, "http://x"},
		{BracedURILiteralEnd, "}"},
		{NCName, "a"},
	}, lex("Q{http://x}a"))
}

func TestLexPragma(t *testing.T) {
	assert.Equal(t, []lexed{
		{PragmaBegin, "(#"},
		{Whitespace, " "},
		{NCName, "ext"},
		{Colon, ":"},
		{NCName, "p"},
		{Whitespace, " "},
		{PragmaContents, "some value "},
		{PragmaEnd, "#)"},
	}, lex("(# ext:p some value #)"))

	assert.Equal(t, []lexed{
		{PragmaBegin, "(#"},
		{NCName, "p"},
		{PragmaEnd, "#)"},
	}, lex("(#p#)"))
}

func TestLexStringConstructor(t *testing.T) {
	assert.Equal(t, []lexed{
		{StringConstructorStart, "``["},
		{StringConstructorContents, "a "},
		{InterpolationOpen, "`{"},
		{VariableIndicator, "$"},
		{NCName, "x"},
		{InterpolationClose, "}`"},
		{StringConstructorContents, " b"},
		{StringConstructorEnd, "]``"},
	}, lex("``[a `{$x}` b]``"))

	got := lex("``[a `{ {1} }` ]``")
	var kinds []Kind
	for _, tok := range got {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{
		StringConstructorStart, StringConstructorContents, InterpolationOpen,
		Whitespace, BlockOpen, IntegerLiteral, BlockClose, Whitespace,
		InterpolationClose, StringConstructorContents, StringConstructorEnd,
	}, kinds)
}

func TestLexLessThanAmbiguity(t *testing.T) {
	tests := []struct {
		src  string
		want []Kind
	}{
		{"a<b", []Kind{NCName, DirElemMaybeOpenTag, NCName}},
		{"a < b", []Kind{NCName, Whitespace, LessThan, Whitespace, NCName}},
		{"<!--x-->", []Kind{XmlCommentStart, XmlCommentContents, XmlCommentEnd}},
		{"<![CDATA[x]]>", []Kind{CDataStart, CDataContents, CDataEnd}},
		{"<?pi x?>", []Kind{PIBegin, NCName, XmlWhitespace, PIContents, PIEnd}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			var got []Kind
			for _, tok := range lex(tt.src) {
				got = append(got, tok.Kind)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLexDirElemModes(t *testing.T) {
	src := `<a b="x{1}&lt;">t{{</a>`
	got := lexAll(New(), src, NewState(ModeStartDirElem))
	assert.Equal(t, []lexed{
		{OpenXmlTag, "<"},
		{XmlTagNCName, "a"},
		{XmlWhitespace, " "},
		{XmlTagNCName, "b"},
		{XmlEqual, "="},
		{XmlAttrValueStart, `"`},
		{XmlAttrValueContents, "x"},
		{BlockOpen, "{"},
		{IntegerLiteral, "1"},
		{BlockClose, "}"},
		{PredefinedEntityRef, "&lt;"},
		{XmlAttrValueEnd, `"`},
		{EndXmlTag, ">"},
		{XmlElementContents, "t"},
		{XmlEscapedCharacter, "{{"},
		{CloseXmlTag, "</"},
		{XmlTagNCName, "a"},
		{EndXmlTag, ">"},
	}, got)
}

func TestLexTruncatedElement(t *testing.T) {
	got := lexAll(New(), "<a>text", NewState(ModeStartDirElem))
	require.NotEmpty(t, got)
	assert.Equal(t, lexed{UnexpectedEndOfBlock, ""}, got[len(got)-1])
}

var roundTripInputs = []string{
	"",
	"1 + 2",
	`declare function local:f($a as xs:string) { concat($a, "&amp;") };`,
	"(: outer (: inner :) outer :)",
	"(: Test :",
	`"unterminated &#x2G;`,
	"``[x `{ $y }` z]``",
	"for $x in 1 to 10 where $x mod 2 = 0 return <a b='{$x}'>{$x}</a>",
	"1e+ .5 0x1F 0b2",
	"Q{urn:x}local (# p:q r #) { 1 }",
	"§§ \xff bad",
	"<!-- c --> <?pi body?> <![CDATA[ d ]]>",
}

func TestRoundTrip(t *testing.T) {
	for _, src := range roundTripInputs {
		t.Run(src, func(t *testing.T) {
			var sb strings.Builder
			prev := 0
			for _, tok := range Tokenize(src, 0, len(src), State{}) {
				require.Equal(t, prev, tok.Start, "tokens must be contiguous")
				require.GreaterOrEqual(t, tok.End, tok.Start)
				sb.WriteString(tok.Text(src))
				prev = tok.End
			}
			assert.Equal(t, src, sb.String())
		})
	}
}

func TestRestartAtTokenState(t *testing.T) {
	for _, src := range roundTripInputs {
		t.Run(src, func(t *testing.T) {
			all := Tokenize(src, 0, len(src), State{})
			for i, tok := range all {
				suffix := Tokenize(src, tok.Start, len(src), tok.State)
				require.Equal(t, all[i:], suffix, "restart at token %d (%s)", i, tok)
			}
		})
	}
}

func TestLexSubRange(t *testing.T) {
	src := `let $a := "x&amp;y" return $a`
	start := strings.Index(src, "x")
	end := strings.Index(src, `" return`)
	toks := Tokenize(src, start, end, NewState(ModeStringQuot))
	require.Len(t, toks, 4)
	assert.Equal(t, StringLiteralContents, toks[0].Kind)
	assert.Equal(t, PredefinedEntityRef, toks[1].Kind)
	assert.Equal(t, StringLiteralContents, toks[2].Kind)
	assert.Equal(t, UnexpectedEndOfBlock, toks[3].Kind)
}

func TestNextAfterEOF(t *testing.T) {
	l := New()
	l.Start("1", 0, 1, State{})
	assert.Equal(t, IntegerLiteral, l.Next().Kind)
	for i := 0; i < 3; i++ {
		tok := l.Next()
		assert.Equal(t, EOF, tok.Kind)
		assert.Equal(t, 1, tok.Start)
		assert.Equal(t, 1, tok.End)
	}
}

func TestStartClampsRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       []Kind
	}{
		{"negative start", -3, 3, []Kind{IntegerLiteral, Whitespace, IntegerLiteral}},
		{"end past input", 0, 10, []Kind{IntegerLiteral, Whitespace, IntegerLiteral}},
		{"negative end", -2, -1, nil},
		{"start past end", 5, 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var kinds []Kind
			for _, tok := range Tokenize("1 2", tt.start, tt.end, State{}) {
				kinds = append(kinds, tok.Kind)
			}
			assert.Equal(t, tt.want, kinds)
		})
	}
}

func TestInvalidModePanics(t *testing.T) {
	assert.Panics(t, func() { NewState(modeCount) })
}

func TestIsNCName(t *testing.T) {
	assert.True(t, IsNCName("abc"))
	assert.True(t, IsNCName("a-b.c"))
	assert.True(t, IsNCName("été"))
	assert.False(t, IsNCName("1a"))
	assert.False(t, IsNCName("a:b"))
	assert.False(t, IsNCName(""))
}

func TestIsReservedFunctionName(t *testing.T) {
	w3c := dialect.Default()
	assert.True(t, IsReservedFunctionName("if", w3c))
	assert.True(t, IsReservedFunctionName("map", w3c))
	assert.False(t, IsReservedFunctionName("concat", w3c))
	assert.False(t, IsReservedFunctionName("object-node", w3c))

	xq10 := dialect.Config{XQuery: dialect.XQuery10}
	assert.False(t, IsReservedFunctionName("switch", xq10))

	ml := dialect.ForProduct(dialect.MarkLogic80)
	assert.True(t, IsReservedFunctionName("object-node", ml))
	assert.True(t, IsReservedFunctionName("switch", ml))
	assert.False(t, IsReservedFunctionName("map", ml))
}
