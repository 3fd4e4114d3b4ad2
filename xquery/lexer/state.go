package lexer

import (
	"fmt"
	"strings"
)

// Mode is one entry of the lexer's mode stack.
type Mode uint8

const (
	ModeDefault Mode = iota
	ModeStringQuot
	ModeStringApos
	ModeComment
	ModePragmaPreQName
	ModePragmaQName
	ModePragmaContents
	ModeBracedURI
	ModeStringConstructor
	ModeStringInterpolation
	ModeStartDirElem
	ModeDirElemTag
	ModeDirElemContent
	ModeDirElemClose
	ModeDirAttrQuot
	ModeDirAttrApos
	ModeDirComment
	ModeCDATA
	ModeDirPITarget
	ModeDirPIContents

	modeCount
)

var modeNames = [modeCount]string{
	ModeDefault:             "default",
	ModeStringQuot:          "string-quot",
	ModeStringApos:          "string-apos",
	ModeComment:             "comment",
	ModePragmaPreQName:      "pragma-pre-qname",
	ModePragmaQName:         "pragma-qname",
	ModePragmaContents:      "pragma-contents",
	ModeBracedURI:           "braced-uri",
	ModeStringConstructor:   "string-constructor",
	ModeStringInterpolation: "string-interpolation",
	ModeStartDirElem:        "start-dir-elem",
	ModeDirElemTag:          "dir-elem-tag",
	ModeDirElemContent:      "dir-elem-content",
	ModeDirElemClose:        "dir-elem-close",
	ModeDirAttrQuot:         "dir-attr-quot",
	ModeDirAttrApos:         "dir-attr-apos",
	ModeDirComment:          "dir-comment",
	ModeCDATA:               "cdata",
	ModeDirPITarget:         "dir-pi-target",
	ModeDirPIContents:       "dir-pi-contents",
}

func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Delegate names the sub-lexer a combined lexer state belongs to.
type Delegate uint8

const (
	DelegateNone Delegate = iota
	// DelegateDirElem lexes a confirmed direct element constructor.
	DelegateDirElem
)

func (d Delegate) String() string {
	switch d {
	case DelegateNone:
		return "base"
	case DelegateDirElem:
		return "dir-elem"
	}
	return fmt.Sprintf("Delegate(%d)", int(d))
}

// State is a restartable lexer state. It holds the whole mode stack, so
// starting a lexer at a token's start offset with the token's State
// reproduces the tokens that followed it.
//
// The zero State is the top-level default mode. State is comparable.
type State struct {
	modes    string // mode stack, bottom first, one byte per Mode
	delegate Delegate
	base     string // base lexer stack to resume once a delegate is done
}

// NewState returns a base-lexer state with the given mode stack.
func NewState(modes ...Mode) State {
	return State{modes: encodeModes(modes)}
}

// Modes returns a copy of the mode stack, bottom first.
func (s State) Modes() []Mode {
	return decodeModes(s.modes)
}

// Top returns the active mode. An empty stack is the default mode.
func (s State) Top() Mode {
	if s.modes == "" {
		return ModeDefault
	}
	return Mode(s.modes[len(s.modes)-1])
}

// Depth returns the number of modes on the stack.
func (s State) Depth() int { return len(s.modes) }

// Delegate returns the sub-lexer the state belongs to.
func (s State) Delegate() Delegate { return s.delegate }

// Base returns the base lexer state a delegated state returns to.
func (s State) Base() State {
	return State{modes: s.base}
}

// IsDelegated reports whether the state belongs to a sub-lexer.
func (s State) IsDelegated() bool { return s.delegate != DelegateNone }

func (s State) push(m Mode) State {
	s.modes += string([]byte{byte(m)})
	return s
}

func (s State) String() string {
	var sb strings.Builder
	if s.delegate != DelegateNone {
		sb.WriteString(s.delegate.String())
		sb.WriteString(State{modes: s.base}.String())
		sb.WriteByte('/')
	}
	sb.WriteByte('[')
	for i, m := range s.Modes() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func encodeModes(modes []Mode) string {
	b := make([]byte, len(modes))
	for i, m := range modes {
		if m >= modeCount {
			panic(fmt.Sprintf("lexer: invalid mode %d", m))
		}
		b[i] = byte(m)
	}
	return string(b)
}

func decodeModes(s string) []Mode {
	modes := make([]Mode, len(s))
	for i := 0; i < len(s); i++ {
		modes[i] = Mode(s[i])
	}
	return modes
}

// ConfirmDirElem returns the state that re-lexes a DirElemMaybeOpenTag
// token, lexed in state s, as the start of a direct element constructor.
//
// From a base state the element is handed to the DelegateDirElem
// sub-lexer and the base stack is kept for when it finishes. Inside the
// sub-lexer (an element nested in an enclosed expression) a start-element
// mode is pushed on the sub-lexer's own stack.
func ConfirmDirElem(s State) State {
	if s.delegate == DelegateNone {
		return State{
			modes:    string([]byte{byte(ModeStartDirElem)}),
			delegate: DelegateDirElem,
			base:     s.modes,
		}
	}
	return s.push(ModeStartDirElem)
}
