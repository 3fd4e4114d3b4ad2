package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/xqlint/xquery/dialect"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

func parse(t *testing.T, src string, cfg dialect.Config) *syntax.Tree {
	t.Helper()
	tree, err := Parse(context.Background(), src, cfg)
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Equal(t, src, tree.Root.String(), "root text must equal source")
	return tree
}

func errorsOf(root *syntax.Node) []string {
	var msgs []string
	for n := range root.All() {
		if n.Kind == syntax.KindError {
			msgs = append(msgs, n.Err)
		}
	}
	return msgs
}

func find(root *syntax.Node, k syntax.Kind) *syntax.Node {
	for n := range root.All() {
		if n.Kind == k {
			return n
		}
	}
	return nil
}

func TestOutline(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "element with enclosed expression",
			src:  "<a>{2}</a>",
			want: "(Module (MainModule (QueryBody (DirElemConstructor (NCName) (DirElemContent (EnclosedExpr (IntegerLiteral))) (NCName)))))",
		},
		{
			name: "additive",
			src:  "1 + 2",
			want: "(Module (MainModule (QueryBody (AdditiveExpr (IntegerLiteral) (IntegerLiteral)))))",
		},
		{
			name: "comparison against less-than",
			src:  "$a < $b",
			want: "(Module (MainModule (QueryBody (ComparisonExpr (VarRef (VarName (NCName))) (VarRef (VarName (NCName)))))))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.src, dialect.Default())
			assert.Equal(t, tt.want, syntax.Outline(tree.Root))
		})
	}
}

func TestValidPrograms(t *testing.T) {
	ml := dialect.ForProduct(dialect.MarkLogic90)
	scripting := dialect.Default()
	scripting.Extensions = append(scripting.Extensions, dialect.Scripting10)

	tests := []struct {
		name string
		src  string
		cfg  dialect.Config
	}{
		{"version decl", `xquery version "3.1"; 1`, dialect.Default()},
		{"flwor", `for $x at $i in (1, 2, 3) let $y := $x * 2 where $y > 2 order by $y descending return $y`, dialect.Default()},
		{"group by and count", `for $x in 1 to 10 group by $k := $x mod 2 count $c return $k`, dialect.Default()},
		{"tumbling window", `for tumbling window $w in (1 to 10) start $s when true() end $e when $e - $s eq 2 return $w`, dialect.Default()},
		{"quantified", `some $x in (1, 2) satisfies $x = 2`, dialect.Default()},
		{"switch", `switch (1) case 1 return "a" case 2 case 3 return "b" default return "c"`, dialect.Default()},
		{"typeswitch", `typeswitch (1) case $i as xs:integer return $i case xs:string | xs:boolean return 0 default $d return $d`, dialect.Default()},
		{"try catch", `try { error() } catch err:FOER0000 | * { $err:code }`, dialect.Default()},
		{"map and array", `map { "a": 1, "b": [1, 2] }?a`, dialect.Default()},
		{"arrow and inline function", `(1, 2) => sum() => (function($x) { $x + 1 })()`, dialect.Default()},
		{"path", `//book[@year > 2000]/title/text()`, dialect.Default()},
		{"axes", `child::a/descendant-or-self::node()/parent::*/@id`, dialect.Default()},
		{"string constructor", "``[Hello `{$name}`!]``", dialect.Default()},
		{"computed constructors", `element e { attribute a { 1 }, text { "t" }, comment { "c" } }`, dialect.Default()},
		{"direct element", `<a href="x{1}y" b='&amp;'>text<b/><!-- c --><?pi data?><![CDATA[raw]]></a>`, dialect.Default()},
		{"prolog", `declare namespace p = "urn:p";
declare default element namespace "urn:e";
declare boundary-space preserve;
declare variable $v as xs:integer := 1;
declare function p:f($a as xs:string?) as xs:string { $a };
p:f("x")`, dialect.Default()},
		{"library module", `module namespace m = "urn:m";
import module namespace x = "urn:x" at "x.xq";
declare %private function m:g() { () };`, dialect.Default()},
		{"full text", `//p[. contains text "a" ftand ("b" ftor "c") using stemming window 5 words]`, dialect.Default()},
		{"update", `copy $c := <a/> modify (insert node <b/> into $c, delete node $c/x) return $c`, dialect.Default()},
		{"transform with", `<a/> transform with { rename node . as "b" }`, dialect.Default()},
		{"marklogic json", `object-node { "a": array-node { 1, 2 }, "b": null-node {} }`, ml},
		{"scripting block", `block { declare $x := 1; $x := $x + 1; while ($x < 3) { $x := $x + 1; }; $x }`, scripting},
		{"otherwise", `() otherwise 1`, dialect.Default()},
		{"cast and instance of", `1 cast as xs:string? instance of xs:string`, dialect.Default()},
		{"keyword as element name", `for/return/if`, dialect.Default()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.src, tt.cfg)
			assert.Empty(t, errorsOf(tree.Root))
		})
	}
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"unclosed paren", `(1, 2`, "expected ')'"},
		{"mismatched tags", `<a></b>`, "end tag </b> does not match start tag <a>"},
		{"missing return", `for $x in 1`, "expected 'return'"},
		{"unknown declaration", `declare nonsense here; 1`, "unknown declaration"},
		{"trailing garbage", `1 )`, "unexpected token after query body"},
		{"prolog without body", `declare variable $x := 1;`, "expected query body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.src, dialect.Default())
			assert.Contains(t, errorsOf(tree.Root), tt.wantErr)
		})
	}
}

func TestUnterminatedComment(t *testing.T) {
	tree := parse(t, "1 (: open", dialect.Default())
	assert.Empty(t, errorsOf(tree.Root))
}

func TestLosslessTree(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"leading whitespace", "  1"},
		{"trailing whitespace", "1 \n\t"},
		{"leading comment", "(: c :) 1"},
		{"leading nested comment", "(: a (: b :) :)\n<a/>"},
		{"leading bad character", "§ 1"},
		{"comment only", "(: open"},
		{"whitespace only", " \n "},
		{"leading comment before prolog", "(: x :)\nxquery version \"3.0\"; 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.src, dialect.Default())
			assert.Equal(t, 0, tree.Root.Start())
			assert.Equal(t, len(tt.src), tree.Root.End())
			assert.Equal(t, syntax.KindModule, tree.Root.Kind)
		})
	}
}

func TestEditKeepsLeadingTrivia(t *testing.T) {
	src := "(: c :) 1 + 2"
	tree := parse(t, src, dialect.Default())

	lit := find(tree.Root, syntax.KindIntegerLiteral)
	require.NotNil(t, lit)
	parent := lit.Parent()
	require.NotNil(t, parent)
	i := -1
	for j, c := range parent.Children {
		if c == lit {
			i = j
		}
	}
	require.GreaterOrEqual(t, i, 0)

	require.NoError(t, tree.RemoveChild(parent, i))
	assert.True(t, strings.HasPrefix(tree.Source, "(: c :) "), "got %q", tree.Source)
	assert.Equal(t, tree.Source, tree.Root.String())
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := strings.Repeat("declare variable $x := 1;\n", 10) + "$x"
	tree, err := Parse(ctx, src, dialect.Default())
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, tree)
	assert.True(t, tree.Partial)
}

func TestAnnotatedDeclUnderOldVersion(t *testing.T) {
	cfg, ok := dialect.Default().WithXQueryVersion("1.0")
	require.True(t, ok)
	tree := parse(t, `declare updating function local:f() { () }; 1`, cfg)
	assert.Empty(t, errorsOf(tree.Root))

	decl := find(tree.Root, syntax.KindFunctionDecl)
	require.NotNil(t, decl)
	ann := find(tree.Root, syntax.KindAnnotation)
	require.NotNil(t, ann)
	assert.Equal(t, "updating", ann.String())
}

func TestSemicolons(t *testing.T) {
	scripting := dialect.Default()
	scripting.Extensions = append(scripting.Extensions, dialect.Scripting10)

	t.Run("transaction separator", func(t *testing.T) {
		tree := parse(t, `1; 2`, dialect.Default())
		assert.NotNil(t, find(tree.Root, syntax.KindTransactionSeparator))
		assert.Nil(t, find(tree.Root, syntax.KindApplyExpr))
		assert.Len(t, tree.Root.ChildrenOf(syntax.KindMainModule), 2)
	})

	t.Run("statements", func(t *testing.T) {
		tree := parse(t, `1; 2`, scripting)
		assert.NotNil(t, find(tree.Root, syntax.KindApplyExpr))
		assert.Nil(t, find(tree.Root, syntax.KindTransactionSeparator))
	})

	t.Run("scripting before a new module", func(t *testing.T) {
		tree := parse(t, "1;\nxquery version \"3.0\"; 2", scripting)
		assert.NotNil(t, find(tree.Root, syntax.KindTransactionSeparator))
	})
}

func TestNamespacePrefix(t *testing.T) {
	tests := []struct {
		src  string
		want PrefixForm
		name string
	}{
		{`namespace p { "urn:p" }`, PrefixNCName, "p"},
		{`namespace { "p" } { "urn:p" }`, PrefixStringLiteral, ""},
		{`namespace { $p } { "urn:p" }`, PrefixOpaque, ""},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree := parse(t, tt.src, dialect.Default())
			n := find(tree.Root, syntax.KindCompNamespaceConstructor)
			require.NotNil(t, n)
			got := NamespacePrefix(n)
			assert.Equal(t, tt.want, got.Form)
			assert.Equal(t, tt.name, got.Name())
		})
	}
	assert.Equal(t, PrefixNone, NamespacePrefix(nil).Form)
}
