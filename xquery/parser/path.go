package parser

import (
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

func (p *parser) parsePathExpr() {
	m := p.mark()
	switch p.peekKind(0) {
	case lexer.Slash:
		p.bump()
		if p.atStep() {
			p.parseRelativePathExpr()
		}
		p.done(m, syntax.KindPathExpr)
	case lexer.AllDescendants:
		p.bump()
		p.parseRelativePathExpr()
		p.done(m, syntax.KindPathExpr)
	default:
		p.parseRelativePathExpr()
	}
}

func (p *parser) parseRelativePathExpr() {
	p.binary(syntax.KindRelativePathExpr, p.parseStepExpr, p.kinds(lexer.Slash, lexer.AllDescendants), false)
}

func (p *parser) parseStepExpr() {
	if p.atPrimary() {
		p.parsePostfixExpr()
		return
	}
	if !p.atStep() {
		p.errorf("expected expression")
		return
	}
	p.parseAxisStep()
}

func (p *parser) parseAxisStep() {
	m := p.mark()
	t := p.peek(0)
	name := p.text(t)
	switch {
	case t.Kind == lexer.ParentSelector:
		sm := p.mark()
		p.bump()
		p.done(sm, syntax.KindAbbrevReverseStep)
	case t.Kind == lexer.NCName && p.peekKind(1) == lexer.AxisSeparator && forwardAxes[name]:
		am := p.mark()
		p.bump()
		p.bump()
		p.done(am, syntax.KindForwardAxis)
		p.parseNodeTest()
	case t.Kind == lexer.NCName && p.peekKind(1) == lexer.AxisSeparator && reverseAxes[name]:
		am := p.mark()
		p.bump()
		p.bump()
		p.done(am, syntax.KindReverseAxis)
		p.parseNodeTest()
	default:
		sm := p.mark()
		p.eatKind(lexer.AttributeSelector)
		p.parseNodeTest()
		p.done(sm, syntax.KindAbbrevForwardStep)
	}
	for p.at(lexer.SquareOpen) {
		p.parsePredicate()
	}
	p.done(m, syntax.KindAxisStep)
}

func (p *parser) parseNodeTest() {
	if p.atKindTest(0) {
		p.parseKindTest()
		return
	}
	p.parseNameTest()
}

// parseNameTest parses an EQName or one of the wildcards "*",
// "prefix:*", "*:local" and "Q{uri}*".
func (p *parser) parseNameTest() {
	m := p.mark()
	switch p.peekKind(0) {
	case lexer.Star:
		wm := p.mark()
		p.bump()
		if p.raw(0).Kind == lexer.Colon && p.raw(1).Kind == lexer.NCName {
			p.bump()
			p.bump()
		}
		p.done(wm, syntax.KindWildcard)
	case lexer.NCName:
		if p.qnamePrefix(0) && p.raw(p.sig(0)+2).Kind == lexer.Star {
			wm := p.mark()
			p.bump()
			p.bump()
			p.bump()
			p.done(wm, syntax.KindWildcard)
			break
		}
		p.parseQName()
	case lexer.BracedURILiteralStart:
		wm := p.mark()
		p.parseBracedURILiteral()
		if p.eatKind(lexer.Star) {
			p.done(wm, syntax.KindWildcard)
			break
		}
		p.expect(lexer.NCName, "local name")
		p.done(wm, syntax.KindURIQualifiedName)
	default:
		p.errorf("expected name test")
	}
	p.done(m, syntax.KindNameTest)
}

func (p *parser) parsePredicate() {
	m := p.mark()
	p.bump()
	p.parseExpr()
	p.closeWith(lexer.SquareOpen, lexer.SquareClose, "']'")
	p.done(m, syntax.KindPredicate)
}

func (p *parser) parsePostfixExpr() {
	m := p.mark()
	p.parsePrimary()
	wrap := false
	for {
		switch {
		case p.at(lexer.SquareOpen):
			p.parsePredicate()
		case p.at(lexer.ParenOpen):
			p.parseArgumentList()
		case p.at(lexer.Question) && p.atKeySpecifier(1):
			p.parseLookup(syntax.KindLookup)
		default:
			if wrap {
				p.done(m, syntax.KindPostfixExpr)
			}
			return
		}
		wrap = true
	}
}

func (p *parser) atKeySpecifier(n int) bool {
	switch p.peekKind(n) {
	case lexer.NCName, lexer.IntegerLiteral, lexer.ParenOpen, lexer.Star,
		lexer.StringLiteralStart, lexer.VariableIndicator:
		return true
	}
	return false
}

// parseLookup parses "?" KeySpecifier.
func (p *parser) parseLookup(k syntax.Kind) {
	m := p.mark()
	p.bump()
	km := p.mark()
	switch p.peekKind(0) {
	case lexer.NCName:
		p.parseNCName("key")
	case lexer.IntegerLiteral:
		p.parseNumericLiteral()
	case lexer.ParenOpen:
		p.parseParenthesizedExpr()
	case lexer.StringLiteralStart:
		p.parseStringLiteral()
	case lexer.VariableIndicator:
		vm := p.mark()
		p.parseVarName()
		p.done(vm, syntax.KindVarRef)
	case lexer.Star:
		p.bump()
	default:
		p.errorf("expected key specifier")
	}
	p.done(km, syntax.KindKeySpecifier)
	p.done(m, k)
}

func (p *parser) parseArgumentList() {
	m := p.mark()
	if !p.expect(lexer.ParenOpen, "'('") {
		p.done(m, syntax.KindArgumentList)
		return
	}
	if !p.at(lexer.ParenClose) {
		p.parseArgument()
		for p.eatKind(lexer.Comma) {
			p.parseArgument()
		}
	}
	p.closeWith(lexer.ParenOpen, lexer.ParenClose, "')'")
	p.done(m, syntax.KindArgumentList)
}

func (p *parser) parseArgument() {
	switch {
	case p.at(lexer.Question) && (p.peekKind(1) == lexer.Comma || p.peekKind(1) == lexer.ParenClose):
		m := p.mark()
		p.bump()
		p.done(m, syntax.KindArgumentPlaceholder)
	case p.at(lexer.NCName) && !p.qnamePrefix(0) && p.peekKind(1) == lexer.Assign:
		m := p.mark()
		p.parseNCName("parameter name")
		p.bump()
		p.parseExprSingle()
		p.done(m, syntax.KindKeywordArgument)
	default:
		p.parseExprSingle()
	}
}

func (p *parser) parsePrimary() {
	k := p.peekKind(0)
	switch {
	case isNumber(k) || k == lexer.StringLiteralStart:
		p.parseLiteral()
		return
	case k == lexer.NCName || k == lexer.BracedURILiteralStart:
		p.parseNamedPrimary()
		return
	}
	switch k {
	case lexer.VariableIndicator:
		m := p.mark()
		p.parseVarName()
		p.done(m, syntax.KindVarRef)
	case lexer.ParenOpen:
		p.parseParenthesizedExpr()
	case lexer.Dot:
		m := p.mark()
		if p.adjacent(0, lexer.BlockOpen) {
			p.bump()
			p.parseEnclosedExpr()
			p.done(m, syntax.KindContextItemFunctionExpr)
			return
		}
		p.bump()
		p.done(m, syntax.KindContextItemExpr)
	case lexer.DirElemMaybeOpenTag:
		p.relex(lexer.ConfirmDirElem(p.peek(0).State))
		p.parseDirElemConstructor()
	case lexer.XmlCommentStart:
		p.parseDirComment()
	case lexer.PIBegin:
		p.parseDirPI()
	case lexer.CDataStart:
		m := p.mark()
		p.parseCDataSection()
		n := p.done(m, syntax.KindError)
		n.Err = "CDATA section outside element content"
	case lexer.StringConstructorStart:
		p.parseStringConstructor()
	case lexer.SquareOpen:
		p.parseSquareArray()
	case lexer.Question:
		p.parseLookup(syntax.KindUnaryLookup)
	case lexer.Annotation:
		p.parseInlineFunction()
	case lexer.BlockOpen:
		p.parseBlock()
	default:
		p.errorf("expected expression")
	}
}

// parseNamedPrimary parses the primary expressions that start with a
// name: keyword constructors, named function references and calls.
func (p *parser) parseNamedPrimary() {
	if r, ok := p.keyword(primaryKeywords); ok {
		r.parse(p)
		return
	}
	m := p.mark()
	p.parseEQName("function name")
	if p.eatKind(lexer.Hash) {
		p.expect(lexer.IntegerLiteral, "arity")
		p.done(m, syntax.KindNamedFunctionRef)
		return
	}
	p.parseArgumentList()
	p.done(m, syntax.KindFunctionCall)
}

func (p *parser) parseParenthesizedExpr() {
	m := p.mark()
	p.bump()
	if !p.at(lexer.ParenClose) {
		p.parseExpr()
	}
	p.closeWith(lexer.ParenOpen, lexer.ParenClose, "')'")
	p.done(m, syntax.KindParenthesizedExpr)
}

// parseAnnotations parses Annotation* and reports whether any was found.
func (p *parser) parseAnnotations() bool {
	found := false
	for p.at(lexer.Annotation) {
		m := p.mark()
		p.bump()
		p.parseEQName("annotation name")
		if p.eatKind(lexer.ParenOpen) {
			if !p.parseLiteral() {
				p.errorf("expected literal")
			}
			for p.eatKind(lexer.Comma) {
				if !p.parseLiteral() {
					p.errorf("expected literal")
				}
			}
			p.closeWith(lexer.ParenOpen, lexer.ParenClose, "')'")
		}
		p.done(m, syntax.KindAnnotation)
		found = true
	}
	return found
}

func (p *parser) parseInlineFunction() {
	m := p.mark()
	p.parseAnnotations()
	p.expectWord("function")
	p.parseParamList()
	p.parseTypeDeclaration()
	p.parseEnclosedExpr()
	p.done(m, syntax.KindInlineFunctionExpr)
}

// parseParamList parses "(" (Param ("," Param)*)? ")".
func (p *parser) parseParamList() {
	if !p.expect(lexer.ParenOpen, "'('") {
		return
	}
	if p.at(lexer.VariableIndicator) {
		lm := p.mark()
		p.parseParam()
		for p.eatKind(lexer.Comma) {
			p.parseParam()
		}
		p.done(lm, syntax.KindParamList)
	}
	p.closeWith(lexer.ParenOpen, lexer.ParenClose, "')'")
}

func (p *parser) parseParam() {
	m := p.mark()
	p.parseVarName()
	p.parseTypeDeclaration()
	p.done(m, syntax.KindParam)
}
