package parser

import (
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

// parseOneModule parses VersionDecl? (LibraryModule | MainModule).
func (p *parser) parseOneModule() {
	if p.atWords("xquery", "version") || p.atWords("xquery", "encoding") {
		p.parseVersionDecl()
	}
	if p.atWords("module", "namespace") {
		m := p.mark()
		p.parseModuleDecl()
		p.parseProlog()
		p.done(m, syntax.KindLibraryModule)
		return
	}

	m := p.mark()
	p.parseProlog()
	if p.err != nil {
		p.doneNonEmpty(m, syntax.KindMainModule)
		return
	}
	if p.atEOF() || p.at(lexer.Semicolon) {
		if len(p.out) > m {
			p.errorf("expected query body")
		}
	} else {
		bm := p.mark()
		p.parseStatements(true)
		p.done(bm, syntax.KindQueryBody)
	}
	p.doneNonEmpty(m, syntax.KindMainModule)
}

func (p *parser) separator() {
	p.expect(lexer.Semicolon, "';'")
}

func (p *parser) parseVersionDecl() {
	m := p.mark()
	p.bump()
	if p.eat("encoding") {
		p.parseStringLiteral()
	} else {
		p.bump()
		p.parseStringLiteral()
		if p.eat("encoding") {
			p.parseStringLiteral()
		}
	}
	p.separator()
	p.done(m, syntax.KindVersionDecl)
}

func (p *parser) parseModuleDecl() {
	m := p.mark()
	p.bump()
	p.bump()
	p.parseNCName("namespace prefix")
	p.expect(lexer.Equal, "'='")
	p.parseURILiteral()
	p.separator()
	p.done(m, syntax.KindModuleDecl)
}

// parseProlog parses declarations up to the query body. The context is
// polled before each declaration.
func (p *parser) parseProlog() {
	m := p.mark()
	for p.atDecl() {
		if p.cancelled() {
			break
		}
		p.parseDecl()
	}
	p.doneNonEmpty(m, syntax.KindProlog)
}

func (p *parser) parseDecl() {
	if p.atWord(0, "import") {
		if p.atWord(1, "schema") {
			p.parseSchemaImport()
		} else {
			p.parseModuleImport()
		}
		return
	}

	m := p.mark()
	switch {
	case p.atWords("declare", "default", "element"), p.atWords("declare", "default", "function"):
		p.bumpN(3)
		p.expectWord("namespace")
		p.parseURILiteral()
		p.finishDecl(m, syntax.KindDefaultNamespaceDecl)
	case p.atWords("declare", "boundary-space"):
		p.parseSetter(m, syntax.KindBoundarySpaceDecl, "preserve", "strip")
	case p.atWords("declare", "default", "collation"):
		p.bumpN(3)
		p.parseURILiteral()
		p.finishDecl(m, syntax.KindDefaultCollationDecl)
	case p.atWords("declare", "base-uri"):
		p.bumpN(2)
		p.parseURILiteral()
		p.finishDecl(m, syntax.KindBaseURIDecl)
	case p.atWords("declare", "construction"):
		p.parseSetter(m, syntax.KindConstructionDecl, "strip", "preserve")
	case p.atWords("declare", "ordering"):
		p.parseSetter(m, syntax.KindOrderingModeDecl, "ordered", "unordered")
	case p.atWords("declare", "default", "order"):
		p.bumpN(3)
		p.expectWord("empty")
		p.expectOneOf("greatest", "least")
		p.finishDecl(m, syntax.KindEmptyOrderDecl)
	case p.atWords("declare", "copy-namespaces"):
		p.bumpN(2)
		p.expectOneOf("preserve", "no-preserve")
		p.expect(lexer.Comma, "','")
		p.expectOneOf("inherit", "no-inherit")
		p.finishDecl(m, syntax.KindCopyNamespacesDecl)
	case p.atWords("declare", "decimal-format"), p.atWords("declare", "default", "decimal-format"):
		p.parseDecimalFormatDecl(m)
	case p.atWords("declare", "namespace"):
		p.bumpN(2)
		p.parseNCName("namespace prefix")
		p.expect(lexer.Equal, "'='")
		p.parseURILiteral()
		p.finishDecl(m, syntax.KindNamespaceDecl)
	case p.atWords("declare", "context", "item"):
		p.bumpN(3)
		if p.eat("as") {
			p.parseItemType()
		}
		p.parseInitializer()
		p.finishDecl(m, syntax.KindContextItemDecl)
	case p.atWords("declare", "option"):
		p.bumpN(2)
		p.parseEQName("option name")
		p.parseStringLiteral()
		p.finishDecl(m, syntax.KindOptionDecl)
	case p.atWords("declare", "ft-option"):
		p.bumpN(2)
		p.parseFTMatchOptions()
		p.finishDecl(m, syntax.KindFTOptionDecl)
	case p.atWords("declare", "revalidation"):
		p.parseSetter(m, syntax.KindRevalidationDecl, "strict", "lax", "skip")
	case p.atWords("declare", "type"):
		p.bumpN(2)
		p.parseEQName("type name")
		if !p.eat("as") && !p.eatKind(lexer.Equal) {
			p.errorf("expected 'as'")
		}
		p.parseItemType()
		p.finishDecl(m, syntax.KindTypeDecl)
	case p.atAnnotatedDecl():
		p.parseAnnotatedDecl(m)
	default:
		p.skip("unknown declaration", func() bool { return p.at(lexer.Semicolon) })
		p.eatKind(lexer.Semicolon)
	}
}

func (p *parser) bumpN(n int) {
	for range n {
		p.bump()
	}
}

func (p *parser) expectOneOf(words ...string) {
	for _, w := range words {
		if p.eat(w) {
			return
		}
	}
	p.errorf("expected '%s'", words[0])
}

func (p *parser) finishDecl(m int, k syntax.Kind) {
	p.separator()
	p.done(m, k)
}

// parseSetter parses "declare" keyword value ";".
func (p *parser) parseSetter(m int, k syntax.Kind, values ...string) {
	p.bumpN(2)
	p.expectOneOf(values...)
	p.finishDecl(m, k)
}

func (p *parser) parseDecimalFormatDecl(m int) {
	p.bump()
	if p.eat("default") {
		p.bump()
	} else {
		p.bump()
		p.parseEQName("decimal format name")
	}
	for p.at(lexer.NCName) {
		pm := p.mark()
		p.bump()
		p.done(pm, syntax.KindDFPropertyName)
		p.expect(lexer.Equal, "'='")
		p.parseStringLiteral()
	}
	p.finishDecl(m, syntax.KindDecimalFormatDecl)
}

// parseInitializer parses (":=" ExprSingle) | ("external" (":=" ExprSingle)?).
func (p *parser) parseInitializer() {
	switch {
	case p.eatKind(lexer.Assign):
		p.parseExprSingle()
	case p.eat("external"):
		if p.eatKind(lexer.Assign) {
			p.parseExprSingle()
		}
	default:
		p.errorf("expected ':=' or 'external'")
	}
}

func (p *parser) parseSchemaImport() {
	m := p.mark()
	p.bumpN(2)
	switch {
	case p.atWord(0, "namespace"):
		pm := p.mark()
		p.bump()
		p.parseNCName("namespace prefix")
		p.expect(lexer.Equal, "'='")
		p.done(pm, syntax.KindSchemaPrefix)
	case p.atWords("default", "element", "namespace"):
		pm := p.mark()
		p.bumpN(3)
		p.done(pm, syntax.KindSchemaPrefix)
	}
	p.parseURILiteral()
	p.parseLocationHints()
	p.finishDecl(m, syntax.KindSchemaImport)
}

func (p *parser) parseModuleImport() {
	m := p.mark()
	p.bumpN(2)
	if p.eat("namespace") {
		p.parseNCName("namespace prefix")
		p.expect(lexer.Equal, "'='")
	}
	p.parseURILiteral()
	p.parseLocationHints()
	p.finishDecl(m, syntax.KindModuleImport)
}

func (p *parser) parseLocationHints() {
	if !p.eat("at") {
		return
	}
	p.parseURILiteral()
	for p.eatKind(lexer.Comma) {
		p.parseURILiteral()
	}
}

// compatibilityAnnotations are keywords written where XQuery 3.0 puts
// annotations.
var compatibilityAnnotations = map[string]bool{
	"updating":   true,
	"sequential": true,
	"simple":     true,
	"private":    true,
}

func (p *parser) atCompatibilityAnnotation(n int) bool {
	t := p.peek(n)
	return t.Kind == lexer.NCName && compatibilityAnnotations[p.text(t)] &&
		!p.qnamePrefix(n) && p.peekKind(n+1) == lexer.NCName
}

func (p *parser) atAnnotatedDecl() bool {
	if !p.atWord(0, "declare") {
		return false
	}
	return p.atWord(1, "variable") || p.atWord(1, "function") ||
		p.peekKind(1) == lexer.Annotation || p.atCompatibilityAnnotation(1)
}

// parseAnnotatedDecl parses "declare" Annotation* (VarDecl | FunctionDecl) ";".
func (p *parser) parseAnnotatedDecl(m int) {
	p.bump()
	for {
		if p.parseAnnotations() {
			continue
		}
		if p.atCompatibilityAnnotation(0) {
			am := p.mark()
			p.bump()
			p.done(am, syntax.KindAnnotation)
			continue
		}
		break
	}
	switch {
	case p.atWord(0, "variable"):
		dm := p.mark()
		p.bump()
		p.parseVarName()
		p.parseTypeDeclaration()
		p.parseInitializer()
		p.done(dm, syntax.KindVarDecl)
	case p.atWord(0, "function"):
		dm := p.mark()
		p.bump()
		p.parseEQName("function name")
		p.parseParamList()
		p.parseTypeDeclaration()
		if !p.eat("external") {
			p.parseEnclosedExpr()
		}
		p.done(dm, syntax.KindFunctionDecl)
	default:
		p.errorf("expected 'variable' or 'function'")
	}
	p.finishDecl(m, syntax.KindAnnotatedDecl)
}
