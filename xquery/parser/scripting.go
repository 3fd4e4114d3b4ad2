package parser

import (
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

// Scripting extension statements.

// parseBlock parses "block { ... }" or a bare "{ ... }" block.
func (p *parser) parseBlock() {
	m := p.mark()
	p.eat("block")
	p.parseEnclosedExpr()
	p.done(m, syntax.KindBlockExpr)
}

// parseBlockVarDecl parses "declare $x (as T)? (:= e)? (, $y ...)* ;".
func (p *parser) parseBlockVarDecl() {
	m := p.mark()
	p.bump()
	for {
		p.parseVarName()
		p.parseTypeDeclaration()
		if p.eatKind(lexer.Assign) {
			p.parseExprSingle()
		}
		if !p.eatKind(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.Semicolon, "';'")
	p.done(m, syntax.KindBlockVarDecl)
}

func (p *parser) parseAssignment() {
	m := p.mark()
	p.parseVarName()
	p.bump()
	p.parseExprSingle()
	p.done(m, syntax.KindAssignmentExpr)
}

func (p *parser) parseWhile() {
	m := p.mark()
	p.bump()
	p.parseParenExpr()
	p.parseBlock()
	p.done(m, syntax.KindWhileExpr)
}

func (p *parser) parseExit() {
	m := p.mark()
	p.bump()
	p.bump()
	p.parseExprSingle()
	p.done(m, syntax.KindExitExpr)
}

func (p *parser) parseBreak() {
	m := p.mark()
	p.bump()
	p.bump()
	p.done(m, syntax.KindBreakExpr)
}

func (p *parser) parseContinue() {
	m := p.mark()
	p.bump()
	p.bump()
	p.done(m, syntax.KindContinueExpr)
}
