package conformance

import (
	"github.com/gnoswap-labs/xqlint/xquery/dialect"
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

// Requirement lists. MarkLogic alternatives are only listed where the
// product is known to accept the construct in its own dialects.
var (
	xq30     = []dialect.Version{dialect.XQuery30}
	xq30ml60 = []dialect.Version{dialect.XQuery30, dialect.MarkLogic60}
	xq30ml70 = []dialect.Version{dialect.XQuery30, dialect.MarkLogic70}
	xq31     = []dialect.Version{dialect.XQuery31}
	xq31ml60 = []dialect.Version{dialect.XQuery31, dialect.MarkLogic60}
	xq31sx94 = []dialect.Version{dialect.XQuery31, dialect.Saxon94}
	xq40     = []dialect.Version{dialect.XQuery40}
	xq40sx98 = []dialect.Version{dialect.XQuery40, dialect.Saxon98}
	xq40sx99 = []dialect.Version{dialect.XQuery40, dialect.Saxon99}

	ft10 = []dialect.Version{dialect.FullText10}
	uf10 = []dialect.Version{dialect.UpdateFacility10}
	uf30 = []dialect.Version{dialect.UpdateFacility30}
	sc10 = []dialect.Version{dialect.Scripting10}

	ml60     = []dialect.Version{dialect.MarkLogic60}
	ml70     = []dialect.Version{dialect.MarkLogic70}
	ml80     = []dialect.Version{dialect.MarkLogic80}
	ml60sc10 = []dialect.Version{dialect.MarkLogic60, dialect.Scripting10}
	bx78     = []dialect.Version{dialect.BaseX78}
	bx80     = []dialect.Version{dialect.BaseX80}
	bx85     = []dialect.Version{dialect.BaseX85}
	sx94     = []dialect.Version{dialect.Saxon94}
	sx98     = []dialect.Version{dialect.Saxon98}
)

// rule returns the requirements of n and the element that decided them.
// A nil element stands for the first token of n.
type rule func(n *syntax.Node) ([]dialect.Version, *syntax.Node)

func always(reqs []dialect.Version) rule {
	return func(*syntax.Node) ([]dialect.Version, *syntax.Node) { return reqs, nil }
}

// onToken requires reqs when n has a direct token child of kind k, which
// is then the element.
func onToken(k lexer.Kind, reqs []dialect.Version) rule {
	return func(n *syntax.Node) ([]dialect.Version, *syntax.Node) {
		if t := n.TokenChild(k); t != nil {
			return reqs, t
		}
		return nil, nil
	}
}

// onKeyword selects the requirements by the first keyword of table found
// among the direct children of n.
func onKeyword(table map[string][]dialect.Version) rule {
	return func(n *syntax.Node) ([]dialect.Version, *syntax.Node) {
		for _, c := range n.Children {
			if !c.IsToken(lexer.NCName) {
				continue
			}
			if reqs, ok := table[c.Text]; ok {
				return reqs, c
			}
		}
		return nil, nil
	}
}

var rules = map[syntax.Kind]rule{
	// XQuery 3.0
	syntax.KindVersionDecl:              versionDecl,
	syntax.KindAllowingEmpty:            always(xq30),
	syntax.KindWindowClause:             always(xq30),
	syntax.KindCountClause:              always(xq30),
	syntax.KindGroupByClause:            always(xq30),
	syntax.KindSwitchExpr:               always(xq30),
	syntax.KindTryCatchExpr:             always(xq30ml60),
	syntax.KindCatchClause:              onToken(lexer.ParenOpen, ml60),
	syntax.KindStringConcatExpr:         onToken(lexer.Concatenation, xq30),
	syntax.KindSimpleMapExpr:            onToken(lexer.Bang, xq30),
	syntax.KindNamedFunctionRef:         onToken(lexer.Hash, xq30ml60),
	syntax.KindInlineFunctionExpr:       always(xq30ml60),
	syntax.KindArgumentPlaceholder:      always(xq30),
	syntax.KindPostfixExpr:              dynamicCall,
	syntax.KindValidateExpr:             onKeyword(map[string][]dialect.Version{"type": xq30, "as": ml60}),
	syntax.KindCompNamespaceConstructor: always(xq30),
	syntax.KindBracedURILiteral:         always(xq30),
	syntax.KindDecimalFormatDecl:        always(xq30),
	syntax.KindContextItemDecl:          always(xq30),
	syntax.KindAnnotation:               annotation,
	syntax.KindFunctionTest:             functionTest,
	syntax.KindParenthesizedItemType:    always(xq30),
	syntax.KindNamespaceNodeTest:        always(xq30),
	syntax.KindSequenceTypeUnion:        onToken(lexer.Union, xq30),
	syntax.KindEnclosedExpr:             enclosedExpr,

	// XQuery 3.1
	syntax.KindMapConstructor:         always(xq31sx94),
	syntax.KindMapConstructorEntry:    onToken(lexer.Assign, sx94),
	syntax.KindSquareArrayConstructor: always(xq31),
	syntax.KindCurlyArrayConstructor:  always(xq31),
	syntax.KindLookup:                 always(xq31),
	syntax.KindUnaryLookup:            always(xq31),
	syntax.KindArrowExpr:              onToken(lexer.Arrow, xq31),
	syntax.KindStringConstructor:      always(xq31),
	syntax.KindMapTest:                always(xq31sx94),
	syntax.KindArrayTest:              always(xq31),

	// XQuery 4.0 and Saxon extensions
	syntax.KindOtherwiseExpr:           always(xq40),
	syntax.KindKeywordArgument:         always(xq40),
	syntax.KindContextItemFunctionExpr: always(xq40),
	syntax.KindForMemberBinding:        always(xq40),
	syntax.KindTypeDecl:                always(xq40sx98),
	syntax.KindTypeAlias:               always(sx98),
	syntax.KindTupleType:               onKeyword(map[string][]dialect.Version{"tuple": sx98, "record": xq40}),
	syntax.KindUnionType:               always(xq40sx99),
	syntax.KindIntegerLiteral:          integerLiteral,
	syntax.KindIfExpr:                  ifExpr,

	// Full Text
	syntax.KindFTContainsExpr:       always(ft10),
	syntax.KindFTOptionDecl:         always(ft10),
	syntax.KindFTScoreVar:           always(ft10),
	syntax.KindFTIgnoreOption:       always(ft10),
	syntax.KindFTExtensionSelection: always(ft10),
	syntax.KindFTMatchOption:        onKeyword(map[string][]dialect.Version{"fuzzy": bx80}),

	// Update Facility
	syntax.KindInsertExpr:        always(uf10),
	syntax.KindDeleteExpr:        always(uf10),
	syntax.KindReplaceExpr:       always(uf10),
	syntax.KindRenameExpr:        always(uf10),
	syntax.KindCopyModifyExpr:    always(uf10),
	syntax.KindRevalidationDecl:  always(uf10),
	syntax.KindTransformWithExpr: always(uf30),
	syntax.KindUpdateExpr:        updateExpr,

	// Scripting
	syntax.KindBlockExpr:      always(sc10),
	syntax.KindBlockVarDecl:   always(sc10),
	syntax.KindAssignmentExpr: onToken(lexer.Assign, sc10),
	syntax.KindWhileExpr:      always(sc10),
	syntax.KindExitExpr:       always(sc10),
	syntax.KindBreakExpr:      always(sc10),
	syntax.KindContinueExpr:   always(sc10),
	syntax.KindApplyExpr:      onToken(lexer.Semicolon, sc10),

	// MarkLogic
	syntax.KindTransactionSeparator:       always(ml60sc10),
	syntax.KindCompBinaryConstructor:      always(ml60),
	syntax.KindBinaryTest:                 always(ml60),
	syntax.KindSchemaComponentTest:        always(ml70),
	syntax.KindCompArrayNodeConstructor:   always(ml80),
	syntax.KindCompBooleanNodeConstructor: always(ml80),
	syntax.KindCompNullNodeConstructor:    always(ml80),
	syntax.KindCompNumberNodeConstructor:  always(ml80),
	syntax.KindCompObjectNodeConstructor:  always(ml80),
	syntax.KindArrayNodeTest:              always(ml80),
	syntax.KindBooleanNodeTest:            always(ml80),
	syntax.KindNullNodeTest:               always(ml80),
	syntax.KindNumberNodeTest:             always(ml80),
	syntax.KindObjectNodeTest:             always(ml80),
}

// versionDecl: "xquery encoding" without a version is XQuery 3.0.
func versionDecl(n *syntax.Node) ([]dialect.Version, *syntax.Node) {
	if n.Keyword("version") != nil {
		return nil, nil
	}
	return xq30, n.Keyword("encoding")
}

// dynamicCall: an argument list applied to an expression.
func dynamicCall(n *syntax.Node) ([]dialect.Version, *syntax.Node) {
	if args := n.Child(syntax.KindArgumentList); args != nil {
		return xq30ml60, firstToken(args)
	}
	return nil, nil
}

// compatibilityAnnotations are the keywords accepted where XQuery 3.0
// writes annotations.
var compatibilityAnnotations = map[string][]dialect.Version{
	"updating":   uf10,
	"sequential": sc10,
	"simple":     sc10,
	"private":    ml60,
}

func annotation(n *syntax.Node) ([]dialect.Version, *syntax.Node) {
	if t := n.TokenChild(lexer.Annotation); t != nil {
		return xq30ml60, t
	}
	t := firstToken(n)
	if t == nil {
		return nil, nil
	}
	return compatibilityAnnotations[t.Text], t
}

// functionTest: MarkLogic accepts function tests, but not annotated ones.
func functionTest(n *syntax.Node) ([]dialect.Version, *syntax.Node) {
	if a := n.Child(syntax.KindAnnotation); a != nil {
		return xq30, a
	}
	return xq30ml70, nil
}

// emptyEnclosedCore lists the constructs whose braces may be empty in
// XQuery 1.0.
var emptyEnclosedCore = map[syntax.Kind]bool{
	syntax.KindCompElemConstructor: true,
	syntax.KindCompAttrConstructor: true,
	syntax.KindCompPIConstructor:   true,
	syntax.KindBlockExpr:           true,
}

// enclosedExpr: "{}" is XQuery 3.1 syntax unless the parent always
// allowed it. MarkLogic also accepts an empty catch body.
func enclosedExpr(n *syntax.Node) ([]dialect.Version, *syntax.Node) {
	if !EmptyEnclosed(n) {
		return nil, nil
	}
	parent := n.Parent()
	if parent == nil {
		return xq31, nil
	}
	switch {
	case emptyEnclosedCore[parent.Kind]:
		return nil, nil
	case parent.Kind == syntax.KindCatchClause:
		return xq31ml60, nil
	}
	return xq31, nil
}

func integerLiteral(n *syntax.Node) ([]dialect.Version, *syntax.Node) {
	for _, c := range n.Children {
		if c.IsToken(lexer.HexIntegerLiteral) || c.IsToken(lexer.BinaryIntegerLiteral) {
			return xq40, c
		}
	}
	return nil, nil
}

// ifExpr: braced branches and a missing else branch are XQuery 4.0.
func ifExpr(n *syntax.Node) ([]dialect.Version, *syntax.Node) {
	if e := n.Child(syntax.KindEnclosedExpr); e != nil {
		return xq40, firstToken(e)
	}
	if n.Keyword("else") == nil {
		return xq40, n.Keyword("then")
	}
	return nil, nil
}

// updateExpr: BaseX "update expr", with braces since BaseX 8.5.
func updateExpr(n *syntax.Node) ([]dialect.Version, *syntax.Node) {
	if n.Child(syntax.KindEnclosedExpr) != nil {
		return bx85, n.Keyword("update")
	}
	return bx78, n.Keyword("update")
}
