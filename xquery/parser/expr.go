package parser

import (
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

// parseExpr parses ExprSingle ("," ExprSingle)*.
func (p *parser) parseExpr() {
	m := p.mark()
	p.parseExprSingle()
	if !p.at(lexer.Comma) {
		return
	}
	for p.eatKind(lexer.Comma) {
		p.parseExprSingle()
	}
	p.done(m, syntax.KindExpr)
}

// parseStatements parses the body of a query or an enclosed expression.
// With the Scripting extension, ";"-separated statements form an
// ApplyExpr.
func (p *parser) parseStatements(top bool) {
	m := p.mark()
	p.parseExpr()
	if !p.statementSeparator(top) {
		return
	}
	for p.statementSeparator(top) {
		p.bump()
		if p.at(lexer.BlockClose) || p.atEOF() {
			break
		}
		p.parseExpr()
	}
	p.done(m, syntax.KindApplyExpr)
}

func (p *parser) parseExprSingle() {
	if r, ok := p.keyword(exprKeywords); ok {
		r.parse(p)
		return
	}
	if p.atAssignment() {
		p.parseAssignment()
		return
	}
	p.parseOrExpr()
}

// parseEnclosedExpr parses "{" Expr? "}". Block variable declarations
// may open the braces when they hold Scripting statements.
func (p *parser) parseEnclosedExpr() {
	m := p.mark()
	if !p.expect(lexer.BlockOpen, "'{'") {
		p.done(m, syntax.KindEnclosedExpr)
		return
	}
	for p.atWord(0, "declare") && p.peekKind(1) == lexer.VariableIndicator {
		p.parseBlockVarDecl()
	}
	if !p.at(lexer.BlockClose) {
		p.parseStatements(false)
	}
	p.closeWith(lexer.BlockOpen, lexer.BlockClose, "'}'")
	p.done(m, syntax.KindEnclosedExpr)
}

// binary parses operand (op operand)*, where op returns the number of
// tokens forming the operator at the next token. The node is only built
// when an operator is present.
func (p *parser) binary(k syntax.Kind, operand func(), op func() int, once bool) {
	m := p.mark()
	operand()
	wrap := false
	for n := op(); n > 0; n = op() {
		for range n {
			p.bump()
		}
		operand()
		wrap = true
		if once {
			break
		}
	}
	if wrap {
		p.done(m, k)
	}
}

func (p *parser) words(ws ...string) func() int {
	return func() int {
		for _, w := range ws {
			if p.atWord(0, w) {
				return 1
			}
		}
		return 0
	}
}

func (p *parser) kinds(ks ...lexer.Kind) func() int {
	return func() int {
		k := p.peekKind(0)
		for _, want := range ks {
			if k == want {
				return 1
			}
		}
		return 0
	}
}

func (p *parser) parseOrExpr() {
	p.binary(syntax.KindOrExpr, p.parseAndExpr, p.words("or"), false)
}

func (p *parser) parseAndExpr() {
	p.binary(syntax.KindAndExpr, p.parseComparisonExpr, p.words("and"), false)
}

func (p *parser) comparisonOp() int {
	switch p.peekKind(0) {
	case lexer.Equal, lexer.NotEqual, lexer.LessThan, lexer.LessThanOrEqual,
		lexer.GreaterThan, lexer.GreaterThanOrEqual, lexer.NodeBefore, lexer.NodeAfter,
		lexer.DirElemMaybeOpenTag:
		// after an operand "<name" is a comparison
		return 1
	}
	return p.words("eq", "ne", "lt", "le", "gt", "ge", "is")()
}

func (p *parser) parseComparisonExpr() {
	p.binary(syntax.KindComparisonExpr, p.parseFTContainsExpr, p.comparisonOp, true)
}

func (p *parser) parseFTContainsExpr() {
	m := p.mark()
	p.parseOtherwiseExpr()
	if !p.atWords("contains", "text") {
		return
	}
	p.bump()
	p.bump()
	p.parseFTSelection()
	if p.atWords("without", "content") {
		im := p.mark()
		p.bump()
		p.bump()
		p.parseUnionExpr()
		p.done(im, syntax.KindFTIgnoreOption)
	}
	p.done(m, syntax.KindFTContainsExpr)
}

func (p *parser) parseOtherwiseExpr() {
	p.binary(syntax.KindOtherwiseExpr, p.parseStringConcatExpr, p.words("otherwise"), false)
}

func (p *parser) parseStringConcatExpr() {
	p.binary(syntax.KindStringConcatExpr, p.parseRangeExpr, p.kinds(lexer.Concatenation), false)
}

func (p *parser) parseRangeExpr() {
	p.binary(syntax.KindRangeExpr, p.parseAdditiveExpr, p.words("to"), true)
}

func (p *parser) parseAdditiveExpr() {
	p.binary(syntax.KindAdditiveExpr, p.parseMultiplicativeExpr, p.kinds(lexer.Plus, lexer.Minus), false)
}

func (p *parser) multiplicativeOp() int {
	if p.at(lexer.Star) {
		return 1
	}
	return p.words("div", "idiv", "mod")()
}

func (p *parser) parseMultiplicativeExpr() {
	p.binary(syntax.KindMultiplicativeExpr, p.parseUnionExpr, p.multiplicativeOp, false)
}

func (p *parser) unionOp() int {
	if p.at(lexer.Union) {
		return 1
	}
	return p.words("union")()
}

func (p *parser) parseUnionExpr() {
	p.binary(syntax.KindUnionExpr, p.parseIntersectExceptExpr, p.unionOp, false)
}

func (p *parser) parseIntersectExceptExpr() {
	p.binary(syntax.KindIntersectExceptExpr, p.parseInstanceofExpr, p.words("intersect", "except"), false)
}

func (p *parser) parseInstanceofExpr() {
	m := p.mark()
	p.parseTreatExpr()
	if p.atWords("instance", "of") {
		p.bump()
		p.bump()
		p.parseSequenceType()
		p.done(m, syntax.KindInstanceofExpr)
	}
}

func (p *parser) parseTreatExpr() {
	m := p.mark()
	p.parseCastableExpr()
	if p.atWords("treat", "as") {
		p.bump()
		p.bump()
		p.parseSequenceType()
		p.done(m, syntax.KindTreatExpr)
	}
}

func (p *parser) parseCastableExpr() {
	m := p.mark()
	p.parseCastExpr()
	if p.atWords("castable", "as") {
		p.bump()
		p.bump()
		p.parseSingleType()
		p.done(m, syntax.KindCastableExpr)
	}
}

func (p *parser) parseCastExpr() {
	m := p.mark()
	p.parseTransformWithExpr()
	if p.atWords("cast", "as") {
		p.bump()
		p.bump()
		p.parseSingleType()
		p.done(m, syntax.KindCastExpr)
	}
}

func (p *parser) parseArrowExpr() {
	m := p.mark()
	p.parseUnaryExpr()
	wrap := false
	for p.eatKind(lexer.Arrow) {
		switch {
		case p.at(lexer.VariableIndicator):
			vm := p.mark()
			p.parseVarName()
			p.done(vm, syntax.KindVarRef)
		case p.at(lexer.ParenOpen):
			p.parseParenthesizedExpr()
		default:
			p.parseEQName("function name")
		}
		p.parseArgumentList()
		wrap = true
	}
	if wrap {
		p.done(m, syntax.KindArrowExpr)
	}
}

func (p *parser) parseUnaryExpr() {
	m := p.mark()
	signed := false
	for p.at(lexer.Plus) || p.at(lexer.Minus) {
		p.bump()
		signed = true
	}
	p.parseValueExpr()
	if signed {
		p.done(m, syntax.KindUnaryExpr)
	}
}

func (p *parser) parseValueExpr() {
	switch {
	case p.atWord(0, "validate") && p.atValidate():
		p.parseValidateExpr()
	case p.at(lexer.PragmaBegin):
		p.parseExtensionExpr()
	default:
		p.binary(syntax.KindSimpleMapExpr, p.parsePathExpr, p.kinds(lexer.Bang), false)
	}
}

func (p *parser) atValidate() bool {
	switch {
	case p.peekKind(1) == lexer.BlockOpen:
		return true
	case p.atWord(1, "lax"), p.atWord(1, "strict"):
		return p.peekKind(2) == lexer.BlockOpen
	case p.atWord(1, "type"), p.atWord(1, "as"):
		return p.atEQName(2)
	}
	return false
}

func (p *parser) parseValidateExpr() {
	m := p.mark()
	p.bump()
	switch {
	case p.eat("lax"), p.eat("strict"):
	case p.eat("type"), p.eat("as"):
		p.parseEQName("type name")
	}
	p.parseEnclosedExpr()
	p.done(m, syntax.KindValidateExpr)
}

func (p *parser) parseExtensionExpr() {
	m := p.mark()
	for p.at(lexer.PragmaBegin) {
		p.parsePragma()
	}
	p.parseEnclosedExpr()
	p.done(m, syntax.KindExtensionExpr)
}

func (p *parser) parsePragma() {
	m := p.mark()
	p.bump()
	p.parseEQName("pragma name")
	p.eatKind(lexer.PragmaContents)
	p.closeBlock(lexer.PragmaEnd, "'#)'")
	p.done(m, syntax.KindPragma)
}

// FLWOR

func (p *parser) parseFLWOR() {
	m := p.mark()
	for p.parseFLWORClause() {
	}
	if p.atWord(0, "return") {
		rm := p.mark()
		p.bump()
		p.parseExprSingle()
		p.done(rm, syntax.KindReturnClause)
	} else {
		p.errorf("expected 'return'")
	}
	p.done(m, syntax.KindFLWORExpr)
}

func (p *parser) parseFLWORClause() bool {
	switch {
	case p.atWord(0, "for") && (p.atWord(1, "tumbling") || p.atWord(1, "sliding")):
		p.parseWindowClause()
	case p.atWord(0, "for") && (p.peekKind(1) == lexer.VariableIndicator || p.atWord(1, "member")):
		p.parseBindings(syntax.KindForClause, p.parseForBinding)
	case p.atWord(0, "let") && (p.peekKind(1) == lexer.VariableIndicator || p.atWord(1, "score")):
		p.parseBindings(syntax.KindLetClause, p.parseLetBinding)
	case p.atWord(0, "where"):
		m := p.mark()
		p.bump()
		p.parseExprSingle()
		p.done(m, syntax.KindWhereClause)
	case p.atWord(0, "count") && p.peekKind(1) == lexer.VariableIndicator:
		m := p.mark()
		p.bump()
		p.parseVarName()
		p.done(m, syntax.KindCountClause)
	case p.atWords("group", "by"):
		p.parseGroupBy()
	case p.atWords("order", "by"), p.atWords("stable", "order", "by"):
		p.parseOrderBy()
	default:
		return false
	}
	return true
}

// parseBindings parses a keyword followed by comma-separated bindings.
func (p *parser) parseBindings(k syntax.Kind, binding func()) {
	m := p.mark()
	p.bump()
	binding()
	for p.eatKind(lexer.Comma) {
		binding()
	}
	p.done(m, k)
}

func (p *parser) parseTypeDeclaration() {
	if !p.atWord(0, "as") {
		return
	}
	m := p.mark()
	p.bump()
	p.parseSequenceType()
	p.done(m, syntax.KindTypeDeclaration)
}

func (p *parser) parseForBinding() {
	m := p.mark()
	k := syntax.KindForBinding
	if p.eat("member") {
		k = syntax.KindForMemberBinding
	}
	p.parseVarName()
	p.parseTypeDeclaration()
	if p.atWords("allowing", "empty") {
		am := p.mark()
		p.bump()
		p.bump()
		p.done(am, syntax.KindAllowingEmpty)
	}
	p.parsePositionalVar()
	p.parseFTScoreVar()
	p.expectWord("in")
	p.parseExprSingle()
	p.done(m, k)
}

func (p *parser) parsePositionalVar() {
	if p.atWord(0, "at") && p.peekKind(1) == lexer.VariableIndicator {
		m := p.mark()
		p.bump()
		p.parseVarName()
		p.done(m, syntax.KindPositionalVar)
	}
}

func (p *parser) parseFTScoreVar() bool {
	if !p.atWord(0, "score") || p.peekKind(1) != lexer.VariableIndicator {
		return false
	}
	m := p.mark()
	p.bump()
	p.parseVarName()
	p.done(m, syntax.KindFTScoreVar)
	return true
}

func (p *parser) parseLetBinding() {
	m := p.mark()
	if !p.parseFTScoreVar() {
		p.parseVarName()
		p.parseTypeDeclaration()
	}
	p.expect(lexer.Assign, "':='")
	p.parseExprSingle()
	p.done(m, syntax.KindLetBinding)
}

func (p *parser) parseWindowClause() {
	m := p.mark()
	p.bump()
	p.bump()
	p.expectWord("window")
	p.parseVarName()
	p.parseTypeDeclaration()
	p.expectWord("in")
	p.parseExprSingle()

	sm := p.mark()
	p.expectWord("start")
	p.parseWindowVars()
	p.expectWord("when")
	p.parseExprSingle()
	p.done(sm, syntax.KindWindowStartCondition)

	if p.atWord(0, "end") || p.atWords("only", "end") {
		em := p.mark()
		p.eat("only")
		p.bump()
		p.parseWindowVars()
		p.expectWord("when")
		p.parseExprSingle()
		p.done(em, syntax.KindWindowEndCondition)
	}
	p.done(m, syntax.KindWindowClause)
}

func (p *parser) parseWindowVars() {
	m := p.mark()
	if p.at(lexer.VariableIndicator) {
		p.parseVarName()
	}
	p.parsePositionalVar()
	for _, w := range []string{"previous", "next"} {
		if p.atWord(0, w) && p.peekKind(1) == lexer.VariableIndicator {
			p.bump()
			p.parseVarName()
		}
	}
	p.doneNonEmpty(m, syntax.KindWindowVars)
}

func (p *parser) parseGroupBy() {
	m := p.mark()
	p.bump()
	p.bump()
	p.parseGroupingSpec()
	for p.eatKind(lexer.Comma) {
		p.parseGroupingSpec()
	}
	p.done(m, syntax.KindGroupByClause)
}

func (p *parser) parseGroupingSpec() {
	m := p.mark()
	p.parseVarName()
	if p.atWord(0, "as") || p.at(lexer.Assign) {
		p.parseTypeDeclaration()
		p.expect(lexer.Assign, "':='")
		p.parseExprSingle()
	}
	if p.eat("collation") {
		p.parseURILiteral()
	}
	p.done(m, syntax.KindGroupingSpec)
}

func (p *parser) parseOrderBy() {
	m := p.mark()
	p.eat("stable")
	p.bump()
	p.bump()
	p.parseOrderSpec()
	for p.eatKind(lexer.Comma) {
		p.parseOrderSpec()
	}
	p.done(m, syntax.KindOrderByClause)
}

func (p *parser) parseOrderSpec() {
	m := p.mark()
	p.parseExprSingle()
	if !p.eat("ascending") {
		p.eat("descending")
	}
	if p.eat("empty") {
		if !p.eat("greatest") && !p.eat("least") {
			p.errorf("expected 'greatest' or 'least'")
		}
	}
	if p.eat("collation") {
		p.parseURILiteral()
	}
	p.done(m, syntax.KindOrderSpec)
}

// other ExprSingle forms

func (p *parser) parseQuantified() {
	m := p.mark()
	p.bump()
	p.parseQuantifiedBinding()
	for p.eatKind(lexer.Comma) {
		p.parseQuantifiedBinding()
	}
	p.expectWord("satisfies")
	p.parseExprSingle()
	p.done(m, syntax.KindQuantifiedExpr)
}

func (p *parser) parseQuantifiedBinding() {
	m := p.mark()
	p.parseVarName()
	p.parseTypeDeclaration()
	p.expectWord("in")
	p.parseExprSingle()
	p.done(m, syntax.KindQuantifiedBinding)
}

// parseParenExpr parses "(" Expr ")" after a keyword.
func (p *parser) parseParenExpr() {
	if !p.expect(lexer.ParenOpen, "'('") {
		return
	}
	p.parseExpr()
	p.closeWith(lexer.ParenOpen, lexer.ParenClose, "')'")
}

func (p *parser) parseSwitch() {
	m := p.mark()
	p.bump()
	p.parseParenExpr()
	if !p.atWord(0, "case") {
		p.errorf("expected 'case'")
	}
	for p.atWord(0, "case") {
		cm := p.mark()
		for p.eat("case") {
			p.parseExprSingle()
		}
		p.expectWord("return")
		p.parseExprSingle()
		p.done(cm, syntax.KindSwitchCaseClause)
	}
	dm := p.mark()
	if p.expectWord("default") {
		p.expectWord("return")
		p.parseExprSingle()
	}
	p.done(dm, syntax.KindSwitchDefaultClause)
	p.done(m, syntax.KindSwitchExpr)
}

func (p *parser) parseTypeswitch() {
	m := p.mark()
	p.bump()
	p.parseParenExpr()
	if !p.atWord(0, "case") {
		p.errorf("expected 'case'")
	}
	for p.atWord(0, "case") {
		cm := p.mark()
		p.bump()
		if p.at(lexer.VariableIndicator) {
			p.parseVarName()
			p.expectWord("as")
		}
		um := p.mark()
		p.parseSequenceType()
		if p.at(lexer.Union) {
			for p.eatKind(lexer.Union) {
				p.parseSequenceType()
			}
			p.done(um, syntax.KindSequenceTypeUnion)
		}
		p.expectWord("return")
		p.parseExprSingle()
		p.done(cm, syntax.KindCaseClause)
	}
	dm := p.mark()
	if p.expectWord("default") {
		if p.at(lexer.VariableIndicator) {
			p.parseVarName()
		}
		p.expectWord("return")
		p.parseExprSingle()
	}
	p.done(dm, syntax.KindDefaultCaseClause)
	p.done(m, syntax.KindTypeswitchExpr)
}

// parseIf parses both "if (c) then a else b" and the braced form
// "if (c) { a } else { b }". The else branch may be omitted.
func (p *parser) parseIf() {
	m := p.mark()
	p.bump()
	p.parseParenExpr()
	if p.at(lexer.BlockOpen) {
		p.parseEnclosedExpr()
		if p.eat("else") {
			if p.at(lexer.BlockOpen) {
				p.parseEnclosedExpr()
			} else {
				p.parseExprSingle()
			}
		}
	} else {
		p.expectWord("then")
		p.parseExprSingle()
		if p.eat("else") {
			p.parseExprSingle()
		}
	}
	p.done(m, syntax.KindIfExpr)
}

func (p *parser) parseTryCatch() {
	m := p.mark()
	tm := p.mark()
	p.bump()
	p.parseEnclosedExpr()
	p.done(tm, syntax.KindTryClause)
	if !p.atWord(0, "catch") {
		p.errorf("expected 'catch'")
	}
	for p.atWord(0, "catch") {
		cm := p.mark()
		p.bump()
		if p.eatKind(lexer.ParenOpen) {
			p.parseVarName()
			p.expect(lexer.ParenClose, "')'")
		} else {
			lm := p.mark()
			p.parseNameTest()
			for p.eatKind(lexer.Union) {
				p.parseNameTest()
			}
			p.done(lm, syntax.KindCatchErrorList)
		}
		p.parseEnclosedExpr()
		p.done(cm, syntax.KindCatchClause)
	}
	p.done(m, syntax.KindTryCatchExpr)
}
