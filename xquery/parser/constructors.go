package parser

import (
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

// direct constructors

// parseDirElemConstructor parses an element whose "<" was confirmed as
// an open tag.
func (p *parser) parseDirElemConstructor() {
	m := p.mark()
	p.expect(lexer.OpenXmlTag, "'<'")
	open := p.parseDirElemName()

	am := p.mark()
	for !p.atTagEnd() {
		if p.at(lexer.XmlTagNCName) {
			p.parseDirAttribute()
			continue
		}
		p.skip("unexpected token in start tag", func() bool {
			return p.atTagEnd() || p.at(lexer.XmlTagNCName)
		})
	}
	p.doneNonEmpty(am, syntax.KindDirAttributeList)

	switch p.peekKind(0) {
	case lexer.SelfClosingXmlTag, lexer.UnexpectedEndOfBlock:
		p.bump()
	case lexer.EndXmlTag:
		p.bump()
		cm := p.mark()
		p.parseDirElemContent()
		p.doneNonEmpty(cm, syntax.KindDirElemContent)
		p.parseDirElemClose(open)
	default:
		p.errorf("expected '>'")
	}
	p.done(m, syntax.KindDirElemConstructor)
}

func (p *parser) atTagEnd() bool {
	switch p.peekKind(0) {
	case lexer.SelfClosingXmlTag, lexer.EndXmlTag, lexer.UnexpectedEndOfBlock, lexer.EOF:
		return true
	}
	return false
}

// parseDirElemName parses a tag name and returns its text.
func (p *parser) parseDirElemName() string {
	if !p.at(lexer.XmlTagNCName) {
		p.errorf("expected element name")
		return ""
	}
	p.flush()
	start := len(p.out)
	p.parseXMLName()
	return p.out[start].String()
}

func (p *parser) parseDirElemClose(open string) {
	switch p.peekKind(0) {
	case lexer.UnexpectedEndOfBlock:
		p.bump()
		return
	case lexer.CloseXmlTag:
	default:
		p.errorf("expected '</%s>'", open)
		return
	}
	p.bump()
	if closeName := p.parseDirElemName(); open != "" && closeName != "" && closeName != open {
		p.errorf("end tag </%s> does not match start tag <%s>", closeName, open)
	}
	p.closeBlock(lexer.EndXmlTag, "'>'")
}

func (p *parser) parseDirAttribute() {
	m := p.mark()
	p.parseXMLName()
	p.expect(lexer.XmlEqual, "'='")
	if p.at(lexer.XmlAttrValueStart) {
		p.parseDirAttributeValue()
	} else {
		p.errorf("expected attribute value")
	}
	p.done(m, syntax.KindDirAttribute)
}

func (p *parser) parseDirAttributeValue() {
	m := p.mark()
	p.bump()
	for {
		switch k := p.peekKind(0); {
		case k == lexer.XmlAttrValueContents, k == lexer.EscapeQuot, k == lexer.EscapeApos,
			k == lexer.XmlEscapedCharacter, k == lexer.Invalid, k.IsEntityRef():
			p.bump()
			continue
		case k == lexer.BlockOpen:
			p.parseEnclosedExpr()
			continue
		}
		break
	}
	p.closeBlock(lexer.XmlAttrValueEnd, "closing quote")
	p.done(m, syntax.KindDirAttributeValue)
}

func (p *parser) parseDirElemContent() {
	for {
		switch k := p.peekKind(0); {
		case k == lexer.XmlElementContents, k == lexer.XmlEscapedCharacter,
			k == lexer.Invalid, k.IsEntityRef():
			p.bump()
		case k == lexer.OpenXmlTag:
			p.parseDirElemConstructor()
		case k == lexer.XmlCommentStart:
			p.parseDirComment()
		case k == lexer.PIBegin:
			p.parseDirPI()
		case k == lexer.CDataStart:
			p.parseCDataSection()
		case k == lexer.BlockOpen:
			p.parseEnclosedExpr()
		default:
			return
		}
	}
}

func (p *parser) parseDirComment() {
	m := p.mark()
	p.bump()
	p.eatKind(lexer.XmlCommentContents)
	p.closeBlock(lexer.XmlCommentEnd, "'-->'")
	p.done(m, syntax.KindDirCommentConstructor)
}

func (p *parser) parseDirPI() {
	m := p.mark()
	p.bump()
	if !p.eatKind(lexer.NCName) {
		p.errorf("expected processing instruction target")
	}
	p.eatKind(lexer.PIContents)
	p.closeBlock(lexer.PIEnd, "'?>'")
	p.done(m, syntax.KindDirPIConstructor)
}

func (p *parser) parseCDataSection() {
	m := p.mark()
	p.bump()
	p.eatKind(lexer.CDataContents)
	p.closeBlock(lexer.CDataEnd, "']]>'")
	p.done(m, syntax.KindCDataSection)
}

// string constructors

func (p *parser) parseStringConstructor() {
	m := p.mark()
	p.bump()
	for {
		switch p.peekKind(0) {
		case lexer.StringConstructorContents:
			cm := p.mark()
			p.bump()
			p.done(cm, syntax.KindStringConstructorContent)
			continue
		case lexer.InterpolationOpen:
			im := p.mark()
			p.bump()
			if !p.at(lexer.InterpolationClose) && !p.at(lexer.UnexpectedEndOfBlock) {
				p.parseExpr()
			}
			if !p.eatKind(lexer.InterpolationClose) && !p.at(lexer.UnexpectedEndOfBlock) {
				p.errorf("expected '}`'")
			}
			p.done(im, syntax.KindStringConstructorInterpolation)
			continue
		}
		break
	}
	p.closeBlock(lexer.StringConstructorEnd, "']``'")
	p.done(m, syntax.KindStringConstructor)
}

// computed constructors

// compEnclosed returns a parser for keyword "{" Expr? "}" constructs.
func compEnclosed(k syntax.Kind) func(p *parser) {
	return func(p *parser) {
		m := p.mark()
		p.bump()
		p.parseEnclosedExpr()
		p.done(m, k)
	}
}

// compNamed returns a parser for computed constructors with a name or a
// name expression before the content.
func compNamed(k syntax.Kind, eqname bool) func(p *parser) {
	return func(p *parser) {
		m := p.mark()
		p.bump()
		switch {
		case p.at(lexer.BlockOpen):
			p.parseEnclosedExpr()
		case eqname:
			p.parseEQName("name")
		default:
			p.parseNCName("name")
		}
		p.parseEnclosedExpr()
		p.done(m, k)
	}
}

func (p *parser) parseMapConstructor() {
	m := p.mark()
	p.bump()
	p.parseMapEntries()
	p.done(m, syntax.KindMapConstructor)
}

// parseMapEntries parses "{" (key ":" value ("," key ":" value)*)? "}".
// Entries may also be written with ":=".
func (p *parser) parseMapEntries() {
	if !p.expect(lexer.BlockOpen, "'{'") {
		return
	}
	if !p.at(lexer.BlockClose) {
		p.parseMapEntry()
		for p.eatKind(lexer.Comma) {
			p.parseMapEntry()
		}
	}
	p.closeWith(lexer.BlockOpen, lexer.BlockClose, "'}'")
}

func (p *parser) parseMapEntry() {
	m := p.mark()
	saved := p.noAssign
	p.noAssign = true
	p.parseExprSingle()
	p.noAssign = saved
	if !p.eatKind(lexer.Colon) && !p.eatKind(lexer.Assign) {
		p.errorf("expected ':'")
	}
	p.parseExprSingle()
	p.done(m, syntax.KindMapConstructorEntry)
}

func (p *parser) parseSquareArray() {
	m := p.mark()
	p.bump()
	if !p.at(lexer.SquareClose) {
		p.parseExprSingle()
		for p.eatKind(lexer.Comma) {
			p.parseExprSingle()
		}
	}
	p.closeWith(lexer.SquareOpen, lexer.SquareClose, "']'")
	p.done(m, syntax.KindSquareArrayConstructor)
}

func (p *parser) parseNullNode() {
	m := p.mark()
	p.bump()
	if p.expect(lexer.BlockOpen, "'{'") {
		p.closeWith(lexer.BlockOpen, lexer.BlockClose, "'}'")
	}
	p.done(m, syntax.KindCompNullNodeConstructor)
}

func (p *parser) parseObjectNode() {
	m := p.mark()
	p.bump()
	p.parseMapEntries()
	p.done(m, syntax.KindCompObjectNodeConstructor)
}
