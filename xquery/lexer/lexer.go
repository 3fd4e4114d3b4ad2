// Package lexer tokenizes the XQuery grammar family.
//
// The lexer is a push-down automaton: each Mode has its own dispatch, and
// start delimiters (quotes, `(:`, `(#`, "``[", `<!--`, `<![CDATA[`, `<?`,
// `{`) push a mode that the matching end delimiter pops. It never fails;
// malformed input produces diagnostic token kinds and lexing continues.
package lexer

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// Tokenizer is implemented by Lexer and CombinedLexer.
type Tokenizer interface {
	// Start resets the tokenizer to lex src[start:end] from state.
	Start(src string, start, end int, state State)
	// Next returns the next token; EOF forever once the range is consumed.
	Next() Token
	// State returns the state the next token will be lexed in.
	State() State
}

var (
	_ Tokenizer = (*Lexer)(nil)
	_ Tokenizer = (*CombinedLexer)(nil)
)

var modeStrings [modeCount]string

func init() {
	for m := Mode(0); m < modeCount; m++ {
		modeStrings[m] = string([]byte{byte(m)})
	}
}

// Lexer is the single-stack XQuery lexer.
type Lexer struct {
	src   string
	pos   int
	end   int
	state State
}

// New returns a lexer over the empty input.
func New() *Lexer {
	return &Lexer{}
}

func (l *Lexer) Start(src string, start, end int, state State) {
	if end > len(src) {
		end = len(src)
	}
	end = max(end, 0)
	start = max(start, 0)
	if start > end {
		start = end
	}
	l.src = src
	l.pos = start
	l.end = end
	l.state = state
}

func (l *Lexer) State() State { return l.state }

// Pos returns the offset of the next token.
func (l *Lexer) Pos() int { return l.pos }

// Done reports whether the mode stack is empty.
func (l *Lexer) Done() bool { return l.state.Depth() == 0 }

func (l *Lexer) Next() Token {
	st := l.state
	start := l.pos
	var k Kind
	if l.pos >= l.end {
		k = l.atEnd()
	} else {
		k = l.dispatch()
	}
	return Token{Kind: k, Start: start, End: l.pos, State: st}
}

func (l *Lexer) dispatch() Kind {
	switch m := l.state.Top(); m {
	case ModeDefault, ModeStringInterpolation:
		return l.lexExpr()
	case ModeStringQuot:
		return l.lexString('"', EscapeQuot)
	case ModeStringApos:
		return l.lexString('\'', EscapeApos)
	case ModeComment:
		return l.lexComment()
	case ModePragmaPreQName:
		return l.lexPragmaPreQName()
	case ModePragmaQName:
		return l.lexPragmaQName()
	case ModePragmaContents:
		return l.lexPragmaContents()
	case ModeBracedURI:
		return l.lexBracedURI()
	case ModeStringConstructor:
		return l.lexStringConstructor()
	case ModeStartDirElem:
		return l.lexStartDirElem()
	case ModeDirElemTag:
		return l.lexDirElemTag()
	case ModeDirElemContent:
		return l.lexDirElemContent()
	case ModeDirElemClose:
		return l.lexDirElemClose()
	case ModeDirAttrQuot:
		return l.lexDirAttr('"', EscapeQuot)
	case ModeDirAttrApos:
		return l.lexDirAttr('\'', EscapeApos)
	case ModeDirComment:
		return l.lexUntil("-->", XmlCommentContents, XmlCommentEnd)
	case ModeCDATA:
		return l.lexUntil("]]>", CDataContents, CDataEnd)
	case ModeDirPITarget:
		return l.lexDirPITarget()
	case ModeDirPIContents:
		return l.lexUntil("?>", PIContents, PIEnd)
	default:
		panic("lexer: invalid mode " + m.String())
	}
}

// atEnd closes the modes left open at the end of the range. Expression
// modes are dropped silently; every other mode yields one zero-width
// UnexpectedEndOfBlock.
func (l *Lexer) atEnd() Kind {
	for l.state.Depth() > 0 {
		switch l.state.Top() {
		case ModeDefault, ModeStringInterpolation:
			l.pop()
		default:
			l.pop()
			return UnexpectedEndOfBlock
		}
	}
	return EOF
}

func (l *Lexer) push(m Mode) {
	l.state.modes += modeStrings[m]
}

func (l *Lexer) pop() {
	if n := len(l.state.modes); n > 0 {
		l.state.modes = l.state.modes[:n-1]
	}
}

func (l *Lexer) replace(m Mode) {
	l.pop()
	l.push(m)
}

func (l *Lexer) peek(off int) byte {
	if p := l.pos + off; p < l.end {
		return l.src[p]
	}
	return 0
}

func (l *Lexer) has(prefix string) bool {
	return l.end-l.pos >= len(prefix) && l.src[l.pos:l.pos+len(prefix)] == prefix
}

func (l *Lexer) runeAt(p int) (rune, int) {
	if p >= l.end {
		return utf8.RuneError, 0
	}
	if c := l.src[p]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	r, n := utf8.DecodeRuneInString(l.src[p:l.end])
	if r == utf8.RuneError && n == 1 {
		// invalid encoding; never part of a name
		return 0, 1
	}
	return r, n
}

func (l *Lexer) nameStartsAt(p int) bool {
	r, n := l.runeAt(p)
	return n > 0 && IsNCNameStart(r)
}

// scanName advances over an NCName starting at the current position.
func (l *Lexer) scanName() {
	for l.pos < l.end {
		r, n := l.runeAt(l.pos)
		if !IsNCNameChar(r) {
			return
		}
		l.pos += n
	}
}

func (l *Lexer) whitespace(k Kind) Kind {
	for l.pos < l.end && isSpace(l.src[l.pos]) {
		l.pos++
	}
	return k
}

func (l *Lexer) badCharacter() Kind {
	_, n := l.runeAt(l.pos)
	if n == 0 {
		n = 1
	}
	l.pos += n
	return BadCharacter
}

// scanTo advances to the next occurrence of any byte in stop.
func (l *Lexer) scanTo(stop string) {
	if i := strings.IndexAny(l.src[l.pos:l.end], stop); i >= 0 {
		l.pos += i
		return
	}
	l.pos = l.end
}

// lexUntil lexes contents terminated by delim, popping the mode on delim.
func (l *Lexer) lexUntil(delim string, contents, endKind Kind) Kind {
	if l.has(delim) {
		l.pos += len(delim)
		l.pop()
		return endKind
	}
	if i := strings.Index(l.src[l.pos:l.end], delim); i >= 0 {
		l.pos += i
	} else {
		l.pos = l.end
	}
	return contents
}

func (l *Lexer) lexExpr() Kind {
	c := l.src[l.pos]
	switch c {
	case ' ', '\t', '\r', '\n':
		return l.whitespace(Whitespace)
	case '(':
		switch l.peek(1) {
		case ':':
			l.pos += 2
			l.push(ModeComment)
			return CommentStart
		case '#':
			l.pos += 2
			l.push(ModePragmaPreQName)
			return PragmaBegin
		}
		l.pos++
		return ParenOpen
	case ')':
		l.pos++
		return ParenClose
	case '[':
		l.pos++
		return SquareOpen
	case ']':
		l.pos++
		return SquareClose
	case '{':
		l.pos++
		l.push(ModeDefault)
		return BlockOpen
	case '}':
		if l.state.Top() == ModeStringInterpolation && l.peek(1) == '`' {
			l.pos += 2
			l.pop()
			return InterpolationClose
		}
		l.pos++
		if l.state.Depth() > 0 && l.state.Top() == ModeDefault {
			l.pop()
		}
		return BlockClose
	case ',':
		l.pos++
		return Comma
	case ';':
		l.pos++
		return Semicolon
	case '$':
		l.pos++
		return VariableIndicator
	case '"':
		l.pos++
		l.push(ModeStringQuot)
		return StringLiteralStart
	case '\'':
		l.pos++
		l.push(ModeStringApos)
		return StringLiteralStart
	case '`':
		if l.has("``[") {
			l.pos += 3
			l.push(ModeStringConstructor)
			return StringConstructorStart
		}
		return l.badCharacter()
	case ':':
		switch l.peek(1) {
		case '=':
			l.pos += 2
			return Assign
		case ':':
			l.pos += 2
			return AxisSeparator
		}
		l.pos++
		return Colon
	case '=':
		if l.peek(1) == '>' {
			l.pos += 2
			return Arrow
		}
		l.pos++
		return Equal
	case '!':
		if l.peek(1) == '=' {
			l.pos += 2
			return NotEqual
		}
		l.pos++
		return Bang
	case '<':
		return l.lexLessThan()
	case '>':
		switch l.peek(1) {
		case '>':
			l.pos += 2
			return NodeAfter
		case '=':
			l.pos += 2
			return GreaterThanOrEqual
		}
		l.pos++
		return GreaterThan
	case '|':
		if l.peek(1) == '|' {
			l.pos += 2
			return Concatenation
		}
		l.pos++
		return Union
	case '/':
		if l.peek(1) == '/' {
			l.pos += 2
			return AllDescendants
		}
		l.pos++
		return Slash
	case '*':
		l.pos++
		return Star
	case '+':
		l.pos++
		return Plus
	case '-':
		l.pos++
		return Minus
	case '@':
		l.pos++
		return AttributeSelector
	case '?':
		l.pos++
		return Question
	case '#':
		l.pos++
		return Hash
	case '%':
		l.pos++
		return Annotation
	case '~':
		l.pos++
		return Tilde
	case '.':
		if l.peek(1) == '.' {
			l.pos += 2
			return ParentSelector
		}
		if isDigit(l.peek(1)) {
			return l.lexNumber()
		}
		l.pos++
		return Dot
	case 'Q':
		if l.peek(1) == '{' {
			l.pos += 2
			l.push(ModeBracedURI)
			return BracedURILiteralStart
		}
	}
	if isDigit(c) {
		return l.lexNumber()
	}
	if l.nameStartsAt(l.pos) {
		l.scanName()
		return NCName
	}
	return l.badCharacter()
}

// lexLessThan resolves `<` in expression modes. A `<` followed by a name
// start character may open a direct element constructor; which one it is
// depends on the grammatical position, so the parser decides.
func (l *Lexer) lexLessThan() Kind {
	switch {
	case l.has("<<"):
		l.pos += 2
		return NodeBefore
	case l.has("<="):
		l.pos += 2
		return LessThanOrEqual
	case l.has("<!--"):
		l.pos += 4
		l.push(ModeDirComment)
		return XmlCommentStart
	case l.has("<![CDATA["):
		l.pos += 9
		l.push(ModeCDATA)
		return CDataStart
	case l.has("<?"):
		l.pos += 2
		l.push(ModeDirPITarget)
		return PIBegin
	case l.nameStartsAt(l.pos + 1):
		l.pos++
		return DirElemMaybeOpenTag
	}
	l.pos++
	return LessThan
}

func (l *Lexer) digits(valid func(byte) bool) int {
	start := l.pos
	for l.pos < l.end && valid(l.src[l.pos]) {
		l.pos++
	}
	return l.pos - start
}

func (l *Lexer) lexNumber() Kind {
	if l.src[l.pos] == '0' {
		switch l.peek(1) {
		case 'x', 'X':
			if isHexDigit(l.peek(2)) {
				l.pos += 2
				l.digits(isHexDigit)
				return HexIntegerLiteral
			}
		case 'b', 'B':
			if isBinaryDigit(l.peek(2)) {
				l.pos += 2
				l.digits(isBinaryDigit)
				return BinaryIntegerLiteral
			}
		}
	}

	kind := IntegerLiteral
	l.digits(isDigit)
	if l.peek(0) == '.' && l.peek(1) != '.' {
		l.pos++
		l.digits(isDigit)
		kind = DecimalLiteral
	}
	if c := l.peek(0); c == 'e' || c == 'E' {
		l.pos++
		if c := l.peek(0); c == '+' || c == '-' {
			l.pos++
		}
		if l.digits(isDigit) == 0 {
			return PartialDoubleLiteralExponent
		}
		kind = DoubleLiteral
	}
	return kind
}

// lexEntityRef lexes a reference starting at `&`.
func (l *Lexer) lexEntityRef() Kind {
	p := l.pos + 1
	if p < l.end && l.src[p] == '#' {
		p++
		valid := isDigit
		if p < l.end && l.src[p] == 'x' {
			p++
			valid = isHexDigit
		}
		digits := p
		for p < l.end && valid(l.src[p]) {
			p++
		}
		if p < l.end && l.src[p] == ';' {
			l.pos = p + 1
			if p == digits {
				return EmptyEntityReference
			}
			return CharRef
		}
		l.pos = p
		return PartialEntityReference
	}

	name := p
	if l.nameStartsAt(p) {
		l.pos = p
		l.scanName()
		p = l.pos
	}
	if p < l.end && l.src[p] == ';' {
		l.pos = p + 1
		if p == name {
			return EmptyEntityReference
		}
		return PredefinedEntityRef
	}
	l.pos = p
	return PartialEntityReference
}

func (l *Lexer) lexString(quote byte, escape Kind) Kind {
	switch l.src[l.pos] {
	case quote:
		if l.peek(1) == quote {
			l.pos += 2
			return escape
		}
		l.pos++
		l.pop()
		return StringLiteralEnd
	case '&':
		return l.lexEntityRef()
	}
	l.scanTo(string([]byte{quote, '&'}))
	return StringLiteralContents
}

func (l *Lexer) lexBracedURI() Kind {
	switch l.src[l.pos] {
	case '}':
		l.pos++
		l.pop()
		return BracedURILiteralEnd
	case '&':
		return l.lexEntityRef()
	}
	l.scanTo("}&")
	return BracedURILiteralContents
}

// lexComment lexes the contents of a possibly nested comment as a single
// token that ends before the `:)` matching the opening `(:`.
func (l *Lexer) lexComment() Kind {
	if l.has(":)") {
		l.pos += 2
		l.pop()
		return CommentEnd
	}
	depth := 1
	for l.pos < l.end {
		switch {
		case l.has("(:"):
			depth++
			l.pos += 2
		case l.has(":)"):
			depth--
			if depth == 0 {
				return Comment
			}
			l.pos += 2
		default:
			l.pos++
		}
	}
	return Comment
}

func (l *Lexer) lexPragmaPreQName() Kind {
	c := l.src[l.pos]
	switch {
	case isSpace(c):
		return l.whitespace(Whitespace)
	case l.has("#)"):
		l.pos += 2
		l.pop()
		return PragmaEnd
	case c == 'Q' && l.peek(1) == '{':
		l.pos += 2
		l.replace(ModePragmaQName)
		l.push(ModeBracedURI)
		return BracedURILiteralStart
	case l.nameStartsAt(l.pos):
		l.scanName()
		l.replace(ModePragmaQName)
		return NCName
	}
	l.replace(ModePragmaContents)
	return l.lexPragmaContents()
}

func (l *Lexer) lexPragmaQName() Kind {
	c := l.src[l.pos]
	switch {
	case c == ':':
		l.pos++
		return Colon
	case isSpace(c):
		l.replace(ModePragmaContents)
		return l.whitespace(Whitespace)
	case l.has("#)"):
		l.pos += 2
		l.pop()
		return PragmaEnd
	case l.nameStartsAt(l.pos):
		l.scanName()
		return NCName
	}
	l.replace(ModePragmaContents)
	return l.lexPragmaContents()
}

func (l *Lexer) lexPragmaContents() Kind {
	return l.lexUntil("#)", PragmaContents, PragmaEnd)
}

func (l *Lexer) lexStringConstructor() Kind {
	switch {
	case l.has("]``"):
		l.pos += 3
		l.pop()
		return StringConstructorEnd
	case l.has("`{"):
		l.pos += 2
		l.push(ModeStringInterpolation)
		return InterpolationOpen
	}
	for l.pos < l.end && !l.has("]``") && !l.has("`{") {
		l.pos++
	}
	return StringConstructorContents
}

func (l *Lexer) lexStartDirElem() Kind {
	if l.src[l.pos] == '<' {
		l.pos++
		l.replace(ModeDirElemTag)
		return OpenXmlTag
	}
	l.pop()
	return l.badCharacter()
}

func (l *Lexer) lexDirElemTag() Kind {
	c := l.src[l.pos]
	switch {
	case isSpace(c):
		return l.whitespace(XmlWhitespace)
	case c == ':':
		l.pos++
		return XmlColon
	case c == '=':
		l.pos++
		return XmlEqual
	case c == '"':
		l.pos++
		l.push(ModeDirAttrQuot)
		return XmlAttrValueStart
	case c == '\'':
		l.pos++
		l.push(ModeDirAttrApos)
		return XmlAttrValueStart
	case l.has("/>"):
		l.pos += 2
		l.pop()
		return SelfClosingXmlTag
	case c == '>':
		l.pos++
		l.replace(ModeDirElemContent)
		return EndXmlTag
	case l.nameStartsAt(l.pos):
		l.scanName()
		return XmlTagNCName
	}
	return l.badCharacter()
}

func (l *Lexer) lexDirElemContent() Kind {
	switch c := l.src[l.pos]; c {
	case '{', '}':
		if l.peek(1) == c {
			l.pos += 2
			return XmlEscapedCharacter
		}
		l.pos++
		if c == '{' {
			l.push(ModeDefault)
			return BlockOpen
		}
		return Invalid
	case '&':
		return l.lexEntityRef()
	case '<':
		switch {
		case l.has("</"):
			l.pos += 2
			l.replace(ModeDirElemClose)
			return CloseXmlTag
		case l.has("<!--"):
			l.pos += 4
			l.push(ModeDirComment)
			return XmlCommentStart
		case l.has("<![CDATA["):
			l.pos += 9
			l.push(ModeCDATA)
			return CDataStart
		case l.has("<?"):
			l.pos += 2
			l.push(ModeDirPITarget)
			return PIBegin
		case l.nameStartsAt(l.pos + 1):
			l.pos++
			l.push(ModeDirElemTag)
			return OpenXmlTag
		}
		l.pos++
		return Invalid
	}
	l.scanTo("{}<&")
	return XmlElementContents
}

func (l *Lexer) lexDirElemClose() Kind {
	c := l.src[l.pos]
	switch {
	case isSpace(c):
		return l.whitespace(XmlWhitespace)
	case c == ':':
		l.pos++
		return XmlColon
	case c == '>':
		l.pos++
		l.pop()
		return EndXmlTag
	case l.nameStartsAt(l.pos):
		l.scanName()
		return XmlTagNCName
	}
	return l.badCharacter()
}

func (l *Lexer) lexDirAttr(quote byte, escape Kind) Kind {
	switch c := l.src[l.pos]; c {
	case quote:
		if l.peek(1) == quote {
			l.pos += 2
			return escape
		}
		l.pos++
		l.pop()
		return XmlAttrValueEnd
	case '{', '}':
		if l.peek(1) == c {
			l.pos += 2
			return XmlEscapedCharacter
		}
		l.pos++
		if c == '{' {
			l.push(ModeDefault)
			return BlockOpen
		}
		return Invalid
	case '<':
		l.pos++
		return Invalid
	case '&':
		return l.lexEntityRef()
	}
	l.scanTo(string([]byte{quote, '{', '}', '<', '&'}))
	return XmlAttrValueContents
}

func (l *Lexer) lexDirPITarget() Kind {
	c := l.src[l.pos]
	switch {
	case l.has("?>"):
		l.pos += 2
		l.pop()
		return PIEnd
	case isSpace(c):
		l.replace(ModeDirPIContents)
		return l.whitespace(XmlWhitespace)
	case l.nameStartsAt(l.pos):
		l.scanName()
		return NCName
	}
	l.replace(ModeDirPIContents)
	return l.lexUntil("?>", PIContents, PIEnd)
}

// Tokenize lexes src[start:end] from state with the XQuery combined lexer
// and returns every token before EOF.
func Tokenize(src string, start, end int, state State) []Token {
	var toks []Token
	for tok := range Tokens(NewXQuery(), src, start, end, state) {
		toks = append(toks, tok)
	}
	return toks
}

// Tokens returns a lazy sequence of the tokens t produces for
// src[start:end], excluding EOF.
func Tokens(t Tokenizer, src string, start, end int, state State) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		t.Start(src, start, end, state)
		for {
			tok := t.Next()
			if tok.Kind == EOF || !yield(tok) {
				return
			}
		}
	}
}
