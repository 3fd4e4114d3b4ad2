// Package parser builds lossless syntax trees for XQuery and its
// extensions.
//
// The parser accepts the union of every supported dialect: version and
// extension support is checked afterwards by package conformance, so a
// construct that a dialect lacks still parses into its proper node. The
// configuration only settles the few places where two dialects read the
// same tokens differently.
//
// Parsing never fails. Missing or unexpected constructs become error nodes
// and parsing continues, so the text of the root always equals the source
// unless the context was cancelled.
package parser

import (
	"context"
	"fmt"

	"github.com/gnoswap-labs/xqlint/xquery/dialect"
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

// Parse parses src as an XQuery module.
//
// If ctx is cancelled the parser stops at the next declaration boundary and
// returns the tree built so far, marked partial, together with ctx.Err().
func Parse(ctx context.Context, src string, cfg dialect.Config) (*syntax.Tree, error) {
	return ParseFile(ctx, "", src, cfg)
}

// ParseFile is like Parse and records filename for positions.
func ParseFile(ctx context.Context, filename, src string, cfg dialect.Config) (*syntax.Tree, error) {
	p := newParser(ctx, src, cfg)
	root := p.parseModule()
	if p.err != nil {
		return syntax.NewTree(filename, src, root, true), p.err
	}
	return syntax.NewTree(filename, src, root, false), nil
}

type parser struct {
	ctx context.Context
	cfg dialect.Config
	src string

	lex  *lexer.CombinedLexer
	toks []lexer.Token // lexed but not consumed; toks[0] is next
	eof  bool
	// last is the kind of the last consumed token.
	last lexer.Kind

	out []*syntax.Node
	err error

	// noAssign is set while parsing a map key, where "$k :=" is a key
	// and an entry separator.
	noAssign bool
}

func newParser(ctx context.Context, src string, cfg dialect.Config) *parser {
	if ctx == nil {
		ctx = context.Background()
	}
	p := &parser{
		ctx: ctx,
		cfg: cfg,
		src: src,
		lex: lexer.NewXQuery(),
	}
	p.lex.Start(src, 0, len(src), lexer.State{})
	return p
}

// cancelled polls the context and records its error.
func (p *parser) cancelled() bool {
	if p.err != nil {
		return true
	}
	if err := p.ctx.Err(); err != nil {
		p.err = err
		return true
	}
	return false
}

// token stream

func (p *parser) fill(n int) {
	for len(p.toks) < n && !p.eof {
		t := p.lex.Next()
		if t.Kind == lexer.EOF {
			p.eof = true
			return
		}
		p.toks = append(p.toks, t)
	}
}

// raw returns the i-th unconsumed token, trivia included.
func (p *parser) raw(i int) lexer.Token {
	p.fill(i + 1)
	if i < len(p.toks) {
		return p.toks[i]
	}
	return lexer.Token{Kind: lexer.EOF, Start: len(p.src), End: len(p.src)}
}

// trivia reports whether the i-th unconsumed token is skipped by the
// grammar. Bad characters are reported by the lexical rules, so the
// grammar passes over them, as it does over the end-of-block marker of an
// unterminated comment.
func (p *parser) trivia(i int) bool {
	t := p.raw(i)
	switch {
	case t.Kind.IsTrivia(), t.Kind == lexer.BadCharacter:
		return true
	case t.Kind == lexer.UnexpectedEndOfBlock:
		prev := p.last
		if i > 0 {
			prev = p.raw(i - 1).Kind
		}
		return prev == lexer.Comment || prev == lexer.CommentStart
	}
	return false
}

// sig returns the raw index of the n-th significant token.
func (p *parser) sig(n int) int {
	for i := 0; ; i++ {
		if p.raw(i).Kind == lexer.EOF {
			return i
		}
		if p.trivia(i) {
			continue
		}
		if n == 0 {
			return i
		}
		n--
	}
}

// peek returns the n-th significant token.
func (p *parser) peek(n int) lexer.Token { return p.raw(p.sig(n)) }

func (p *parser) peekKind(n int) lexer.Kind { return p.peek(n).Kind }

func (p *parser) text(t lexer.Token) string { return t.Text(p.src) }

func (p *parser) at(k lexer.Kind) bool { return p.peekKind(0) == k }

func (p *parser) atEOF() bool { return p.at(lexer.EOF) }

// adjacent reports whether the n-th significant token is directly followed
// by a token of kind k, with nothing in between.
func (p *parser) adjacent(n int, k lexer.Kind) bool {
	i := p.sig(n)
	return p.raw(i).Kind != lexer.EOF && p.raw(i+1).Kind == k
}

// relex discards the buffered tokens from the next significant one on and
// lexes again from its start in state.
func (p *parser) relex(state lexer.State) {
	p.flush()
	start := p.raw(0).Start
	p.toks = p.toks[:0]
	p.eof = false
	p.lex.Start(p.src, start, len(p.src), state)
}

// tree building

// flush moves pending trivia to the output.
func (p *parser) flush() {
	for p.raw(0).Kind != lexer.EOF && p.trivia(0) {
		p.push()
	}
}

func (p *parser) push() *syntax.Node {
	t := p.toks[0]
	n := syntax.NewToken(t, p.src)
	p.out = append(p.out, n)
	p.toks = p.toks[1:]
	p.last = t.Kind
	return n
}

// bump consumes the next significant token.
func (p *parser) bump() *syntax.Node {
	p.flush()
	if p.raw(0).Kind == lexer.EOF {
		return nil
	}
	return p.push()
}

// offset returns the start of the next significant token.
func (p *parser) offset() int { return p.peek(0).Start }

// mark opens a node at the next significant token.
func (p *parser) mark() int {
	p.flush()
	return len(p.out)
}

// done closes the node opened at m, wrapping everything built since.
func (p *parser) done(m int, k syntax.Kind) *syntax.Node {
	children := make([]*syntax.Node, len(p.out)-m)
	copy(children, p.out[m:])
	n := syntax.NewNode(k, children...)
	if len(children) == 0 {
		off := p.offset()
		n.SetSpan(off, off)
	}
	p.out = append(p.out[:m], n)
	return n
}

// errorf adds a zero-width error node at the next significant token.
func (p *parser) errorf(format string, args ...any) *syntax.Node {
	m := p.mark()
	n := p.done(m, syntax.KindError)
	n.Err = fmt.Sprintf(format, args...)
	return n
}

// skip wraps tokens up to a token accepted by stop, or EOF, in an error
// node. At least one token is consumed.
func (p *parser) skip(msg string, stop func() bool) {
	m := p.mark()
	p.bump()
	for !p.atEOF() && !stop() {
		p.bump()
	}
	n := p.done(m, syntax.KindError)
	n.Err = msg
}

// expect consumes a token of kind k or reports it missing.
func (p *parser) expect(k lexer.Kind, what string) bool {
	if p.at(k) {
		p.bump()
		return true
	}
	p.errorf("expected %s", what)
	return false
}

// keywords

// atWord reports whether the n-th significant token is the keyword word.
// A name that starts a prefixed QName is not a keyword.
func (p *parser) atWord(n int, word string) bool {
	t := p.peek(n)
	return t.Kind == lexer.NCName && p.text(t) == word && !p.qnamePrefix(n)
}

func (p *parser) atWords(words ...string) bool {
	for i, w := range words {
		if !p.atWord(i, w) {
			return false
		}
	}
	return true
}

// eat consumes the keyword word if it is next.
func (p *parser) eat(word string) bool {
	if p.atWord(0, word) {
		p.bump()
		return true
	}
	return false
}

func (p *parser) eatKind(k lexer.Kind) bool {
	if p.at(k) {
		p.bump()
		return true
	}
	return false
}

// expectWord consumes the keyword word or reports it missing.
func (p *parser) expectWord(word string) bool {
	if p.eat(word) {
		return true
	}
	p.errorf("expected '%s'", word)
	return false
}

// qnamePrefix reports whether the n-th significant token is the prefix
// of a QName or of a prefix:* wildcard.
func (p *parser) qnamePrefix(n int) bool {
	i := p.sig(n)
	if p.raw(i).Kind != lexer.NCName || p.raw(i+1).Kind != lexer.Colon {
		return false
	}
	next := p.raw(i + 2).Kind
	return next == lexer.NCName || next == lexer.Star
}

// parseModule parses the whole input: modules separated by transaction
// separators. The module owns the trivia before the first token.
func (p *parser) parseModule() *syntax.Node {
	m := len(p.out)
	for !p.atEOF() && !p.cancelled() {
		p.parseOneModule()
		if p.err != nil {
			break
		}
		switch {
		case p.at(lexer.Semicolon):
			sep := p.mark()
			p.bump()
			p.done(sep, syntax.KindTransactionSeparator)
		case !p.atEOF():
			p.skip("unexpected token after query body", func() bool { return p.at(lexer.Semicolon) })
		}
	}
	if p.err == nil {
		p.flush()
	}
	return p.done(m, syntax.KindModule)
}

// doneNonEmpty closes the node at m unless nothing was built since.
func (p *parser) doneNonEmpty(m int, k syntax.Kind) *syntax.Node {
	if len(p.out) == m {
		return nil
	}
	return p.done(m, k)
}

// skipBalanced wraps tokens up to the close token matching an already
// consumed open token in an error node, then consumes the close token.
// Nested open/close pairs are skipped whole.
func (p *parser) skipBalanced(msg string, open, close lexer.Kind) {
	if p.at(close) {
		p.bump()
		return
	}
	m := p.mark()
	depth := 0
	for !p.atEOF() && !p.at(lexer.UnexpectedEndOfBlock) {
		switch p.peekKind(0) {
		case open:
			depth++
		case close:
			if depth == 0 {
				n := p.done(m, syntax.KindError)
				n.Err = msg
				p.bump()
				return
			}
			depth--
		}
		p.bump()
	}
	n := p.done(m, syntax.KindError)
	n.Err = msg
}

// closeWith consumes close, recovering from unexpected tokens before it.
func (p *parser) closeWith(open, close lexer.Kind, what string) {
	if p.at(close) {
		p.bump()
		return
	}
	p.skipBalanced("expected "+what, open, close)
}
