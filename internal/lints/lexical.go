package lints

import (
	"strconv"

	tt "github.com/gnoswap-labs/xqlint/internal/types"
	"github.com/gnoswap-labs/xqlint/xquery/decode"
	"github.com/gnoswap-labs/xqlint/xquery/lexer"
	"github.com/gnoswap-labs/xqlint/xquery/syntax"
)

const LexicalError = "lexical-error"

// DetectLexicalErrors reports the diagnostic tokens of the lexer and
// character references to characters XML does not allow.
func DetectLexicalErrors(f *File, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	for leaf := range f.Tree.Root.Leaves() {
		msg := lexicalMessage(leaf)
		if msg == "" {
			continue
		}
		issue := f.issue(LexicalError, leaf, severity, "%s", msg)
		issue.Category = "lexical"
		issues = append(issues, issue)
	}
	return issues, nil
}

func lexicalMessage(t *syntax.Node) string {
	switch t.Token {
	case lexer.BadCharacter:
		return "unexpected character " + strconv.Quote(t.Text)
	case lexer.Invalid:
		return "unexpected " + strconv.Quote(t.Text) + " in " + modeDescription(t.State.Top())
	case lexer.UnexpectedEndOfBlock:
		return "unterminated " + modeDescription(unterminated(t.State))
	case lexer.PartialEntityReference:
		return "incomplete reference " + strconv.Quote(t.Text)
	case lexer.EmptyEntityReference:
		return "empty reference " + strconv.Quote(t.Text)
	case lexer.PartialDoubleLiteralExponent:
		return "missing exponent digits in " + strconv.Quote(t.Text)
	case lexer.CharRef:
		if _, ok := decode.CharRef(t.Text); !ok {
			return "reference " + strconv.Quote(t.Text) + " is not a valid XML character"
		}
	}
	return ""
}

// unterminated returns the innermost mode of s that the lexer reports when
// the input ends inside it.
func unterminated(s lexer.State) lexer.Mode {
	modes := s.Modes()
	for i := len(modes) - 1; i >= 0; i-- {
		switch modes[i] {
		case lexer.ModeDefault, lexer.ModeStringInterpolation:
			continue
		}
		return modes[i]
	}
	return lexer.ModeDefault
}

var modeDescriptions = map[lexer.Mode]string{
	lexer.ModeDefault:           "expression",
	lexer.ModeStringQuot:        "string literal",
	lexer.ModeStringApos:        "string literal",
	lexer.ModeComment:           "comment",
	lexer.ModePragmaPreQName:    "pragma",
	lexer.ModePragmaQName:       "pragma",
	lexer.ModePragmaContents:    "pragma",
	lexer.ModeBracedURI:         "braced URI literal",
	lexer.ModeStringConstructor: "string constructor",
	lexer.ModeStartDirElem:      "element tag",
	lexer.ModeDirElemTag:        "element tag",
	lexer.ModeDirElemContent:    "element content",
	lexer.ModeDirElemClose:      "end tag",
	lexer.ModeDirAttrQuot:       "attribute value",
	lexer.ModeDirAttrApos:       "attribute value",
	lexer.ModeDirComment:        "XML comment",
	lexer.ModeCDATA:             "CDATA section",
	lexer.ModeDirPITarget:       "processing instruction",
	lexer.ModeDirPIContents:     "processing instruction",
}

func modeDescription(m lexer.Mode) string {
	if d, ok := modeDescriptions[m]; ok {
		return d
	}
	return m.String()
}
