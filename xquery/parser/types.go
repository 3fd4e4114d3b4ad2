package parser

import (
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

// parseSequenceType parses a SequenceType. Occurrence indicators bind
// greedily, so "xs:int + 1" reads "+" as an indicator.
func (p *parser) parseSequenceType() {
	m := p.mark()
	if p.atWord(0, "empty-sequence") && p.peekKind(1) == lexer.ParenOpen {
		em := p.mark()
		p.bump()
		p.bump()
		p.expect(lexer.ParenClose, "')'")
		p.done(em, syntax.KindEmptySequenceType)
		p.done(m, syntax.KindSequenceType)
		return
	}
	p.parseItemType()
	switch p.peekKind(0) {
	case lexer.Question, lexer.Star, lexer.Plus:
		p.bump()
	}
	p.done(m, syntax.KindSequenceType)
}

func (p *parser) parseSingleType() {
	m := p.mark()
	p.parseEQName("type name")
	p.eatKind(lexer.Question)
	p.done(m, syntax.KindSingleType)
}

func (p *parser) parseItemType() {
	switch p.peekKind(0) {
	case lexer.ParenOpen:
		m := p.mark()
		p.bump()
		p.parseItemType()
		p.closeWith(lexer.ParenOpen, lexer.ParenClose, "')'")
		p.done(m, syntax.KindParenthesizedItemType)
		return
	case lexer.Annotation:
		p.parseFunctionTest()
		return
	case lexer.Tilde:
		m := p.mark()
		p.bump()
		p.parseEQName("type alias")
		p.done(m, syntax.KindTypeAlias)
		return
	case lexer.NCName, lexer.BracedURILiteralStart:
	default:
		p.errorf("expected item type")
		return
	}

	if p.atKindTest(0) {
		p.parseKindTest()
		return
	}
	if p.peekKind(1) == lexer.ParenOpen && !p.qnamePrefix(0) {
		switch p.text(p.peek(0)) {
		case "item":
			m := p.mark()
			p.bump()
			p.bump()
			p.expect(lexer.ParenClose, "')'")
			p.done(m, syntax.KindAnyItemType)
			return
		case "function":
			p.parseFunctionTest()
			return
		case "map":
			p.parseMapTest()
			return
		case "array":
			p.parseArrayTest()
			return
		case "tuple", "record":
			p.parseTupleType()
			return
		case "union":
			p.parseUnionType()
			return
		}
	}
	m := p.mark()
	p.parseEQName("type name")
	p.done(m, syntax.KindAtomicOrUnionType)
}

// parseKindTest parses the kind tests named in kindTests.
func (p *parser) parseKindTest() {
	m := p.mark()
	name := p.text(p.peek(0))
	kind := kindTests[name]
	p.bump()
	p.bump()
	switch kind {
	case syntax.KindDocumentTest:
		if p.atKindTest(0) {
			p.parseKindTest()
		}
	case syntax.KindElementTest, syntax.KindAttributeTest:
		if !p.at(lexer.ParenClose) {
			if p.at(lexer.Star) {
				wm := p.mark()
				p.bump()
				p.done(wm, syntax.KindWildcard)
			} else {
				p.parseEQName("name")
			}
			if p.eatKind(lexer.Comma) {
				p.parseEQName("type name")
				if kind == syntax.KindElementTest {
					p.eatKind(lexer.Question)
				}
			}
		}
	case syntax.KindSchemaElementTest, syntax.KindSchemaAttributeTest:
		p.parseEQName("name")
	case syntax.KindPITest, syntax.KindArrayNodeTest, syntax.KindBooleanNodeTest,
		syntax.KindNullNodeTest, syntax.KindNumberNodeTest, syntax.KindObjectNodeTest,
		syntax.KindSchemaComponentTest:
		switch p.peekKind(0) {
		case lexer.StringLiteralStart:
			p.parseStringLiteral()
		case lexer.NCName, lexer.BracedURILiteralStart:
			p.parseEQName("name")
		}
	}
	p.closeWith(lexer.ParenOpen, lexer.ParenClose, "')'")
	p.done(m, kind)
}

func (p *parser) parseFunctionTest() {
	m := p.mark()
	p.parseAnnotations()
	p.expectWord("function")
	if p.expect(lexer.ParenOpen, "'('") {
		if !p.eatKind(lexer.Star) && !p.at(lexer.ParenClose) {
			p.parseSequenceType()
			for p.eatKind(lexer.Comma) {
				p.parseSequenceType()
			}
		}
		p.closeWith(lexer.ParenOpen, lexer.ParenClose, "')'")
	}
	if p.eat("as") {
		p.parseSequenceType()
	}
	p.done(m, syntax.KindFunctionTest)
}

func (p *parser) parseMapTest() {
	m := p.mark()
	p.bump()
	p.bump()
	if !p.eatKind(lexer.Star) {
		am := p.mark()
		p.parseEQName("key type")
		p.done(am, syntax.KindAtomicOrUnionType)
		p.expect(lexer.Comma, "','")
		p.parseSequenceType()
	}
	p.closeWith(lexer.ParenOpen, lexer.ParenClose, "')'")
	p.done(m, syntax.KindMapTest)
}

func (p *parser) parseArrayTest() {
	m := p.mark()
	p.bump()
	p.bump()
	if !p.eatKind(lexer.Star) {
		p.parseSequenceType()
	}
	p.closeWith(lexer.ParenOpen, lexer.ParenClose, "')'")
	p.done(m, syntax.KindArrayTest)
}

// parseTupleType parses tuple(name: type, ...), with "as" accepted in
// place of ":" and a trailing "*" for extensible tuples.
func (p *parser) parseTupleType() {
	m := p.mark()
	p.bump()
	p.bump()
	for {
		if p.eatKind(lexer.Star) {
			break
		}
		fm := p.mark()
		if p.at(lexer.StringLiteralStart) {
			p.parseStringLiteral()
		} else {
			p.parseNCName("field name")
		}
		p.eatKind(lexer.Question)
		if p.eatKind(lexer.Colon) || p.eat("as") {
			p.parseSequenceType()
		}
		p.done(fm, syntax.KindTupleField)
		if !p.eatKind(lexer.Comma) {
			break
		}
	}
	p.closeWith(lexer.ParenOpen, lexer.ParenClose, "')'")
	p.done(m, syntax.KindTupleType)
}

func (p *parser) parseUnionType() {
	m := p.mark()
	p.bump()
	p.bump()
	p.parseEQName("type name")
	for p.eatKind(lexer.Comma) {
		p.parseEQName("type name")
	}
	p.closeWith(lexer.ParenOpen, lexer.ParenClose, "')'")
	p.done(m, syntax.KindUnionType)
}
