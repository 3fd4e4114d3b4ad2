package parser

import (
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

// atEQName reports whether an EQName starts at the n-th significant token.
func (p *parser) atEQName(n int) bool {
	switch p.peekKind(n) {
	case lexer.NCName, lexer.BracedURILiteralStart:
		return true
	}
	return false
}

// parseEQName parses a URIQualifiedName, a QName or an NCName.
func (p *parser) parseEQName(what string) bool {
	switch p.peekKind(0) {
	case lexer.BracedURILiteralStart:
		m := p.mark()
		p.parseBracedURILiteral()
		p.expect(lexer.NCName, "local name")
		p.done(m, syntax.KindURIQualifiedName)
		return true
	case lexer.NCName:
		p.parseQName()
		return true
	}
	p.errorf("expected %s", what)
	return false
}

// parseQName parses a QName or an NCName at an NCName token.
func (p *parser) parseQName() {
	m := p.mark()
	if p.qnamePrefix(0) && p.raw(p.sig(0)+2).Kind == lexer.NCName {
		p.bump()
		p.bump()
		p.bump()
		p.done(m, syntax.KindQName)
		return
	}
	p.bump()
	p.done(m, syntax.KindNCName)
}

// parseNCName parses an unprefixed name.
func (p *parser) parseNCName(what string) bool {
	if !p.at(lexer.NCName) {
		p.errorf("expected %s", what)
		return false
	}
	m := p.mark()
	p.bump()
	p.done(m, syntax.KindNCName)
	return true
}

// parseVarName parses "$" VarName.
func (p *parser) parseVarName() bool {
	if !p.expect(lexer.VariableIndicator, "'$'") {
		return false
	}
	m := p.mark()
	ok := p.parseEQName("variable name")
	p.done(m, syntax.KindVarName)
	return ok
}

// parseXMLName parses the name of a direct element or attribute.
func (p *parser) parseXMLName() bool {
	if !p.at(lexer.XmlTagNCName) {
		p.errorf("expected element name")
		return false
	}
	m := p.mark()
	p.bump()
	if p.at(lexer.XmlColon) {
		p.bump()
		p.expect(lexer.XmlTagNCName, "local name")
		p.done(m, syntax.KindQName)
		return true
	}
	p.done(m, syntax.KindNCName)
	return true
}

// literals

func isStringPart(k lexer.Kind) bool {
	switch k {
	case lexer.StringLiteralContents, lexer.EscapeQuot, lexer.EscapeApos,
		lexer.PredefinedEntityRef, lexer.CharRef,
		lexer.PartialEntityReference, lexer.EmptyEntityReference:
		return true
	}
	return false
}

// closeBlock consumes the end delimiter of a lexical block, or the
// end-of-block marker the lexer emits when the input ends first.
func (p *parser) closeBlock(end lexer.Kind, what string) {
	switch p.peekKind(0) {
	case end, lexer.UnexpectedEndOfBlock:
		p.bump()
	default:
		p.errorf("expected %s", what)
	}
}

func (p *parser) parseStringLiteral() bool {
	if !p.at(lexer.StringLiteralStart) {
		p.errorf("expected string literal")
		return false
	}
	m := p.mark()
	p.bump()
	for isStringPart(p.peekKind(0)) {
		p.bump()
	}
	p.closeBlock(lexer.StringLiteralEnd, "closing quote")
	p.done(m, syntax.KindStringLiteral)
	return true
}

// parseURILiteral parses a string literal used as a URI.
func (p *parser) parseURILiteral() bool {
	if !p.at(lexer.StringLiteralStart) {
		p.errorf("expected URI literal")
		return false
	}
	return p.parseStringLiteral()
}

func (p *parser) parseBracedURILiteral() {
	m := p.mark()
	p.bump()
	for k := p.peekKind(0); k == lexer.BracedURILiteralContents || k.IsEntityRef(); k = p.peekKind(0) {
		p.bump()
	}
	p.closeBlock(lexer.BracedURILiteralEnd, "'}'")
	p.done(m, syntax.KindBracedURILiteral)
}

func isNumber(k lexer.Kind) bool {
	switch k {
	case lexer.IntegerLiteral, lexer.DecimalLiteral, lexer.DoubleLiteral,
		lexer.HexIntegerLiteral, lexer.BinaryIntegerLiteral, lexer.PartialDoubleLiteralExponent:
		return true
	}
	return false
}

func (p *parser) parseNumericLiteral() {
	m := p.mark()
	t := p.bump()
	switch t.Token {
	case lexer.DecimalLiteral:
		p.done(m, syntax.KindDecimalLiteral)
	case lexer.DoubleLiteral, lexer.PartialDoubleLiteralExponent:
		p.done(m, syntax.KindDoubleLiteral)
	default:
		p.done(m, syntax.KindIntegerLiteral)
	}
}

// parseLiteral parses a numeric or string literal.
func (p *parser) parseLiteral() bool {
	switch k := p.peekKind(0); {
	case isNumber(k):
		p.parseNumericLiteral()
	case k == lexer.StringLiteralStart:
		p.parseStringLiteral()
	default:
		return false
	}
	return true
}
