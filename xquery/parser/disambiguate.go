package parser

import (
	"github.com/gnoswap-labs/xqlint/xquery/dialect"
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

// XQuery keywords are not reserved: "for", "if" or "element" may name an
// element in a path. Each keyword below starts its construct only when
// followed by one of the listed tokens; otherwise it is read as a name.

// follow matches one token after a keyword: a token kind, or a keyword
// when word is set.
type follow struct {
	kind lexer.Kind
	word string
}

func (f follow) match(p *parser, n int) bool {
	if f.word != "" {
		return p.atWord(n, f.word)
	}
	return p.peekKind(n) == f.kind
}

var (
	dollar   = follow{kind: lexer.VariableIndicator}
	paren    = follow{kind: lexer.ParenOpen}
	brace    = follow{kind: lexer.BlockOpen}
	nodeWord = follow{word: "node"}
)

func word(w string) follow { return follow{word: w} }

// keywordRule starts a construct at a keyword.
type keywordRule struct {
	next []follow
	// match replaces next when the decision needs more lookahead.
	match func(p *parser) bool
	parse func(p *parser)
}

func (r keywordRule) matches(p *parser) bool {
	if r.match != nil {
		return r.match(p)
	}
	for _, f := range r.next {
		if f.match(p, 1) {
			return true
		}
	}
	return false
}

var (
	// exprKeywords start an ExprSingle.
	exprKeywords map[string]keywordRule
	// primaryKeywords start a primary expression.
	primaryKeywords map[string]keywordRule
)

func init() {
	exprKeywords = map[string]keywordRule{
		"for":        {next: []follow{dollar, word("tumbling"), word("sliding"), word("member")}, parse: (*parser).parseFLWOR},
		"let":        {next: []follow{dollar, word("score")}, parse: (*parser).parseFLWOR},
		"some":       {next: []follow{dollar}, parse: (*parser).parseQuantified},
		"every":      {next: []follow{dollar}, parse: (*parser).parseQuantified},
		"switch":     {next: []follow{paren}, parse: (*parser).parseSwitch},
		"typeswitch": {next: []follow{paren}, parse: (*parser).parseTypeswitch},
		"if":         {next: []follow{paren}, parse: (*parser).parseIf},
		"try":        {next: []follow{brace}, parse: (*parser).parseTryCatch},
		"insert":     {next: []follow{nodeWord, word("nodes")}, parse: (*parser).parseInsert},
		"delete":     {next: []follow{nodeWord, word("nodes")}, parse: (*parser).parseDelete},
		"replace":    {next: []follow{nodeWord, word("value")}, parse: (*parser).parseReplace},
		"rename":     {next: []follow{nodeWord}, parse: (*parser).parseRename},
		"copy":       {next: []follow{dollar}, parse: (*parser).parseCopyModify},
		"block":      {next: []follow{brace}, parse: (*parser).parseBlock},
		"while":      {next: []follow{paren}, parse: (*parser).parseWhile},
		"exit":       {next: []follow{word("returning")}, parse: (*parser).parseExit},
		"break":      {next: []follow{word("loop")}, parse: (*parser).parseBreak},
		"continue":   {next: []follow{word("loop")}, parse: (*parser).parseContinue},
	}

	primaryKeywords = map[string]keywordRule{
		"ordered":                {next: []follow{brace}, parse: compEnclosed(syntax.KindOrderedExpr)},
		"unordered":              {next: []follow{brace}, parse: compEnclosed(syntax.KindUnorderedExpr)},
		"document":               {next: []follow{brace}, parse: compEnclosed(syntax.KindCompDocConstructor)},
		"text":                   {next: []follow{brace}, parse: compEnclosed(syntax.KindCompTextConstructor)},
		"comment":                {next: []follow{brace}, parse: compEnclosed(syntax.KindCompCommentConstructor)},
		"element":                {match: namedConstructor(true), parse: compNamed(syntax.KindCompElemConstructor, true)},
		"attribute":              {match: namedConstructor(true), parse: compNamed(syntax.KindCompAttrConstructor, true)},
		"namespace":              {match: namedConstructor(false), parse: compNamed(syntax.KindCompNamespaceConstructor, false)},
		"processing-instruction": {match: namedConstructor(false), parse: compNamed(syntax.KindCompPIConstructor, false)},
		"map":                    {next: []follow{brace}, parse: (*parser).parseMapConstructor},
		"array":                  {next: []follow{brace}, parse: compEnclosed(syntax.KindCurlyArrayConstructor)},
		"function":               {next: []follow{paren}, parse: (*parser).parseInlineFunction},
		"fn":                     {next: []follow{brace}, parse: compEnclosed(syntax.KindContextItemFunctionExpr)},
		"binary":                 {next: []follow{brace}, parse: compEnclosed(syntax.KindCompBinaryConstructor)},
		"array-node":             {next: []follow{brace}, parse: compEnclosed(syntax.KindCompArrayNodeConstructor)},
		"boolean-node":           {next: []follow{brace}, parse: compEnclosed(syntax.KindCompBooleanNodeConstructor)},
		"number-node":            {next: []follow{brace}, parse: compEnclosed(syntax.KindCompNumberNodeConstructor)},
		"null-node":              {next: []follow{brace}, parse: (*parser).parseNullNode},
		"object-node":            {next: []follow{brace}, parse: (*parser).parseObjectNode},
	}
}

// keyword returns the rule for the keyword at the next token, if the
// tokens after it select the rule.
func (p *parser) keyword(table map[string]keywordRule) (keywordRule, bool) {
	t := p.peek(0)
	if t.Kind != lexer.NCName || p.qnamePrefix(0) {
		return keywordRule{}, false
	}
	r, ok := table[p.text(t)]
	if !ok || !r.matches(p) {
		return keywordRule{}, false
	}
	return r, true
}

// namedConstructor matches a computed constructor keyword followed by
// either an enclosed name expression or a literal name and the content.
func namedConstructor(eqname bool) func(p *parser) bool {
	return func(p *parser) bool {
		if p.peekKind(1) == lexer.BlockOpen {
			return true
		}
		if eqname {
			n := p.eqNameLen(1)
			return n > 0 && p.peekKind(1+n) == lexer.BlockOpen
		}
		return p.peekKind(1) == lexer.NCName && !p.qnamePrefix(1) && p.peekKind(2) == lexer.BlockOpen
	}
}

// kindTests maps the names that start a kind test when followed by "(".
// In a path step such a name is a node test, never a function call.
var kindTests = map[string]syntax.Kind{
	"document-node":          syntax.KindDocumentTest,
	"element":                syntax.KindElementTest,
	"attribute":              syntax.KindAttributeTest,
	"schema-element":         syntax.KindSchemaElementTest,
	"schema-attribute":       syntax.KindSchemaAttributeTest,
	"processing-instruction": syntax.KindPITest,
	"comment":                syntax.KindCommentTest,
	"text":                   syntax.KindTextTest,
	"namespace-node":         syntax.KindNamespaceNodeTest,
	"node":                   syntax.KindAnyKindTest,
	"binary":                 syntax.KindBinaryTest,
	"array-node":             syntax.KindArrayNodeTest,
	"boolean-node":           syntax.KindBooleanNodeTest,
	"null-node":              syntax.KindNullNodeTest,
	"number-node":            syntax.KindNumberNodeTest,
	"object-node":            syntax.KindObjectNodeTest,
	"schema-root":            syntax.KindSchemaComponentTest,
	"schema-type":            syntax.KindSchemaComponentTest,
	"schema-component":       syntax.KindSchemaComponentTest,
	"schema-particle":        syntax.KindSchemaComponentTest,
	"schema-wildcard":        syntax.KindSchemaComponentTest,
	"schema-facet":           syntax.KindSchemaComponentTest,
	"attribute-decl":         syntax.KindSchemaComponentTest,
	"element-decl":           syntax.KindSchemaComponentTest,
	"complex-type":           syntax.KindSchemaComponentTest,
	"simple-type":            syntax.KindSchemaComponentTest,
	"model-group":            syntax.KindSchemaComponentTest,
}

var (
	forwardAxes = map[string]bool{
		"child": true, "descendant": true, "attribute": true, "self": true,
		"descendant-or-self": true, "following-sibling": true, "following": true,
		"namespace": true, "property": true,
	}
	reverseAxes = map[string]bool{
		"parent": true, "ancestor": true, "preceding-sibling": true,
		"preceding": true, "ancestor-or-self": true,
	}
)

// atKindTest reports whether a kind test starts at the n-th token.
func (p *parser) atKindTest(n int) bool {
	t := p.peek(n)
	if t.Kind != lexer.NCName || p.qnamePrefix(n) || p.peekKind(n+1) != lexer.ParenOpen {
		return false
	}
	_, ok := kindTests[p.text(t)]
	return ok
}

// eqNameLen returns the number of tokens of the EQName starting at the
// n-th token, or 0.
func (p *parser) eqNameLen(n int) int {
	switch p.peekKind(n) {
	case lexer.NCName:
		if p.qnamePrefix(n) && p.peekKind(n+2) == lexer.NCName {
			return 3
		}
		return 1
	case lexer.BracedURILiteralStart:
		i := n + 1
		for {
			switch p.peekKind(i) {
			case lexer.BracedURILiteralEnd:
				if p.peekKind(i+1) == lexer.NCName {
					return i - n + 2
				}
				return 0
			case lexer.EOF, lexer.UnexpectedEndOfBlock:
				return 0
			}
			i++
		}
	}
	return 0
}

// atPrimary reports whether the next step is a postfix expression rather
// than an axis step.
func (p *parser) atPrimary() bool {
	switch k := p.peekKind(0); {
	case isNumber(k):
		return true
	case k == lexer.NCName || k == lexer.BracedURILiteralStart:
		if _, ok := p.keyword(primaryKeywords); ok {
			return true
		}
		n := p.eqNameLen(0)
		if n == 0 {
			return false
		}
		switch p.peekKind(n) {
		case lexer.Hash:
			return true
		case lexer.ParenOpen:
			return !p.atKindTest(0)
		}
		return false
	}
	switch p.peekKind(0) {
	case lexer.StringLiteralStart, lexer.VariableIndicator, lexer.ParenOpen,
		lexer.Dot, lexer.DirElemMaybeOpenTag, lexer.XmlCommentStart, lexer.PIBegin,
		lexer.CDataStart, lexer.StringConstructorStart, lexer.SquareOpen,
		lexer.Question, lexer.Annotation, lexer.BlockOpen:
		return true
	}
	return false
}

// atStep reports whether a path step can start at the next token, which
// decides whether a leading "/" stands alone.
func (p *parser) atStep() bool {
	switch p.peekKind(0) {
	case lexer.NCName, lexer.BracedURILiteralStart, lexer.Star, lexer.AttributeSelector,
		lexer.ParentSelector:
		return true
	}
	return p.atPrimary()
}

// atExpr reports whether an expression can start at the next token.
func (p *parser) atExpr() bool {
	switch p.peekKind(0) {
	case lexer.Slash, lexer.AllDescendants, lexer.Plus, lexer.Minus, lexer.PragmaBegin:
		return true
	}
	return p.atStep()
}

// atAssignment reports whether "$name :=" follows. Map entries written
// with ":=" set noAssign while their key is parsed.
func (p *parser) atAssignment() bool {
	if p.noAssign || !p.at(lexer.VariableIndicator) {
		return false
	}
	n := p.eqNameLen(1)
	return n > 0 && p.peekKind(1+n) == lexer.Assign
}

// statementSeparator reports whether the ";" at the next token separates
// Scripting statements. Outside braces the same token separates
// MarkLogic transactions: it does so when the dialect has no Scripting
// extension, or when a prolog, a version declaration or the end of input
// follows.
func (p *parser) statementSeparator(top bool) bool {
	if !p.at(lexer.Semicolon) || !p.cfg.Supports(dialect.Scripting10) {
		return false
	}
	if !top {
		return true
	}
	switch {
	case p.peekKind(1) == lexer.EOF:
		return false
	case p.atWord(1, "xquery") && (p.atWord(2, "version") || p.atWord(2, "encoding")):
		return false
	case p.atWord(1, "module") && p.atWord(2, "namespace"):
		return false
	case p.atDeclAt(1):
		return false
	}
	return true
}

// atDecl reports whether a prolog declaration starts at the next token.
func (p *parser) atDecl() bool { return p.atDeclAt(0) }

func (p *parser) atDeclAt(n int) bool {
	switch {
	case p.atWord(n, "declare"):
		k := p.peekKind(n + 1)
		return (k == lexer.NCName && !p.qnamePrefix(n+1)) || k == lexer.Annotation
	case p.atWord(n, "import"):
		return p.atWord(n+1, "module") || p.atWord(n+1, "schema")
	}
	return false
}
