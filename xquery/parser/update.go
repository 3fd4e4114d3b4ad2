package parser

import (
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

// Update Facility expressions.

func (p *parser) parseInsert() {
	m := p.mark()
	p.bump()
	p.bump()
	p.parseExprSingle()
	switch {
	case p.atWord(0, "as"):
		p.bump()
		if !p.eat("first") && !p.eat("last") {
			p.errorf("expected 'first' or 'last'")
		}
		p.expectWord("into")
	case p.eat("into"), p.eat("after"), p.eat("before"):
	default:
		p.errorf("expected 'into', 'after' or 'before'")
	}
	p.parseExprSingle()
	p.done(m, syntax.KindInsertExpr)
}

func (p *parser) parseDelete() {
	m := p.mark()
	p.bump()
	p.bump()
	p.parseExprSingle()
	p.done(m, syntax.KindDeleteExpr)
}

func (p *parser) parseReplace() {
	m := p.mark()
	p.bump()
	if p.atWords("value", "of") {
		p.bump()
		p.bump()
	}
	p.expectWord("node")
	p.parseExprSingle()
	p.expectWord("with")
	p.parseExprSingle()
	p.done(m, syntax.KindReplaceExpr)
}

func (p *parser) parseRename() {
	m := p.mark()
	p.bump()
	p.bump()
	p.parseExprSingle()
	p.expectWord("as")
	p.parseExprSingle()
	p.done(m, syntax.KindRenameExpr)
}

func (p *parser) parseCopyModify() {
	m := p.mark()
	p.bump()
	p.parseCopyBinding()
	for p.eatKind(lexer.Comma) {
		p.parseCopyBinding()
	}
	p.expectWord("modify")
	p.parseExprSingle()
	p.expectWord("return")
	p.parseExprSingle()
	p.done(m, syntax.KindCopyModifyExpr)
}

func (p *parser) parseCopyBinding() {
	m := p.mark()
	p.parseVarName()
	p.expect(lexer.Assign, "':='")
	p.parseExprSingle()
	p.done(m, syntax.KindCopyBinding)
}

// parseTransformWithExpr parses the postfix update forms:
// "transform with { ... }" and BaseX's "update { ... }" or "update expr".
func (p *parser) parseTransformWithExpr() {
	m := p.mark()
	p.parseArrowExpr()
	for {
		switch {
		case p.atWords("transform", "with"):
			p.bump()
			p.bump()
			p.parseEnclosedExpr()
			p.done(m, syntax.KindTransformWithExpr)
		case p.atWord(0, "update") && p.atUpdateOperand():
			p.bump()
			if p.at(lexer.BlockOpen) {
				p.parseEnclosedExpr()
			} else {
				p.parseExprSingle()
			}
			p.done(m, syntax.KindUpdateExpr)
		default:
			return
		}
	}
}

// atUpdateOperand reports whether the token after "update" starts its
// modification: braces or an updating expression.
func (p *parser) atUpdateOperand() bool {
	if p.peekKind(1) == lexer.BlockOpen {
		return true
	}
	t := p.peek(1)
	if t.Kind != lexer.NCName {
		return false
	}
	switch p.text(t) {
	case "insert", "delete", "replace", "rename":
		return true
	}
	return false
}
