package lexer

import "fmt"

// CombinedLexer layers delegate lexers over a base lexer. A state tagged
// with a Delegate is lexed by that delegate until its mode stack empties;
// the base lexer then resumes with the stack saved in the state.
type CombinedLexer struct {
	base      *Lexer
	delegates map[Delegate]*Lexer
	active    *Lexer
	src       string
	end       int
}

// NewCombined returns a combined lexer over base with no delegates.
func NewCombined(base *Lexer) *CombinedLexer {
	return &CombinedLexer{
		base:      base,
		delegates: make(map[Delegate]*Lexer),
		active:    base,
	}
}

// NewXQuery returns the XQuery lexer: the base lexer with a direct
// element constructor delegate.
func NewXQuery() *CombinedLexer {
	c := NewCombined(New())
	c.AddDelegate(DelegateDirElem, New())
	return c
}

// AddDelegate registers l as the lexer for states tagged with d.
func (c *CombinedLexer) AddDelegate(d Delegate, l *Lexer) {
	if d == DelegateNone {
		panic("lexer: cannot register the base lexer as a delegate")
	}
	c.delegates[d] = l
}

func (c *CombinedLexer) Start(src string, start, end int, state State) {
	c.src = src
	c.end = end
	if !state.IsDelegated() {
		c.active = c.base
		c.base.Start(src, start, end, state)
		return
	}
	if state.Depth() == 0 {
		c.active = c.base
		c.base.Start(src, start, end, state.Base())
		return
	}
	sub, ok := c.delegates[state.delegate]
	if !ok {
		panic(fmt.Sprintf("lexer: no delegate registered for %s", state.delegate))
	}
	c.active = sub
	sub.Start(src, start, end, state)
}

func (c *CombinedLexer) Next() Token {
	tok := c.active.Next()
	if c.active != c.base && c.active.Done() {
		pos := c.active.Pos()
		c.base.Start(c.src, pos, c.end, c.active.State().Base())
		c.active = c.base
	}
	return tok
}

func (c *CombinedLexer) State() State { return c.active.State() }
