package lexer

import "fmt"

// Kind identifies the type of a token.
type Kind uint8

const (
	EOF Kind = iota

	// diagnostics
	BadCharacter
	Invalid
	UnexpectedEndOfBlock
	PartialEntityReference
	EmptyEntityReference
	PartialDoubleLiteralExponent

	// trivia
	Whitespace
	CommentStart
	Comment
	CommentEnd

	// literals
	IntegerLiteral
	DecimalLiteral
	DoubleLiteral
	HexIntegerLiteral
	BinaryIntegerLiteral
	StringLiteralStart
	StringLiteralContents
	StringLiteralEnd
	EscapeQuot
	EscapeApos
	PredefinedEntityRef
	CharRef
	BracedURILiteralStart
	BracedURILiteralContents
	BracedURILiteralEnd

	// names
	NCName
	Colon

	// punctuation and operators
	VariableIndicator
	ParenOpen
	ParenClose
	SquareOpen
	SquareClose
	BlockOpen
	BlockClose
	Comma
	Semicolon
	Dot
	ParentSelector
	Slash
	AllDescendants
	Star
	Plus
	Minus
	Equal
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
	NodeBefore
	NodeAfter
	Concatenation
	Union
	Bang
	Assign
	AxisSeparator
	AttributeSelector
	Question
	Arrow
	Hash
	Annotation
	Tilde

	// pragmas
	PragmaBegin
	PragmaContents
	PragmaEnd

	// string constructors
	StringConstructorStart
	StringConstructorContents
	StringConstructorEnd
	InterpolationOpen
	InterpolationClose

	// direct constructors
	DirElemMaybeOpenTag
	OpenXmlTag
	EndXmlTag
	SelfClosingXmlTag
	CloseXmlTag
	XmlTagNCName
	XmlColon
	XmlWhitespace
	XmlEqual
	XmlAttrValueStart
	XmlAttrValueContents
	XmlAttrValueEnd
	XmlEscapedCharacter
	XmlElementContents
	XmlCommentStart
	XmlCommentContents
	XmlCommentEnd
	CDataStart
	CDataContents
	CDataEnd
	PIBegin
	PIContents
	PIEnd

	kindCount
)

var kindNames = [kindCount]string{
	EOF:                          "EOF",
	BadCharacter:                 "BAD_CHARACTER",
	Invalid:                      "INVALID",
	UnexpectedEndOfBlock:         "UNEXPECTED_END_OF_BLOCK",
	PartialEntityReference:       "PARTIAL_ENTITY_REFERENCE",
	EmptyEntityReference:         "EMPTY_ENTITY_REFERENCE",
	PartialDoubleLiteralExponent: "PARTIAL_DOUBLE_LITERAL_EXPONENT",
	Whitespace:                   "WHITE_SPACE",
	CommentStart:                 "COMMENT_START_TAG",
	Comment:                      "COMMENT",
	CommentEnd:                   "COMMENT_END_TAG",
	IntegerLiteral:               "INTEGER_LITERAL",
	DecimalLiteral:               "DECIMAL_LITERAL",
	DoubleLiteral:                "DOUBLE_LITERAL",
	HexIntegerLiteral:            "HEX_INTEGER_LITERAL",
	BinaryIntegerLiteral:         "BINARY_INTEGER_LITERAL",
	StringLiteralStart:           "STRING_LITERAL_START",
	StringLiteralContents:        "STRING_LITERAL_CONTENTS",
	StringLiteralEnd:             "STRING_LITERAL_END",
	EscapeQuot:                   "ESCAPED_QUOT",
	EscapeApos:                   "ESCAPED_APOS",
	PredefinedEntityRef:          "PREDEFINED_ENTITY_REFERENCE",
	CharRef:                      "CHARACTER_REFERENCE",
	BracedURILiteralStart:        "BRACED_URI_LITERAL_START",
	BracedURILiteralContents:     "BRACED_URI_LITERAL_CONTENTS",
	BracedURILiteralEnd:          "BRACED_URI_LITERAL_END",
	NCName:                       "NCNAME",
	Colon:                        "QNAME_SEPARATOR",
	VariableIndicator:            "VARIABLE_INDICATOR",
	ParenOpen:                    "PARENTHESIS_OPEN",
	ParenClose:                   "PARENTHESIS_CLOSE",
	SquareOpen:                   "SQUARE_OPEN",
	SquareClose:                  "SQUARE_CLOSE",
	BlockOpen:                    "BLOCK_OPEN",
	BlockClose:                   "BLOCK_CLOSE",
	Comma:                        "COMMA",
	Semicolon:                    "SEPARATOR",
	Dot:                          "CONTEXT_ITEM",
	ParentSelector:               "PARENT_SELECTOR",
	Slash:                        "DIRECT_DESCENDANTS_PATH",
	AllDescendants:               "ALL_DESCENDANTS_PATH",
	Star:                         "STAR",
	Plus:                         "PLUS",
	Minus:                        "MINUS",
	Equal:                        "EQUAL",
	NotEqual:                     "NOT_EQUAL",
	LessThan:                     "LESS_THAN",
	LessThanOrEqual:              "LESS_THAN_OR_EQUAL",
	GreaterThan:                  "GREATER_THAN",
	GreaterThanOrEqual:           "GREATER_THAN_OR_EQUAL",
	NodeBefore:                   "NODE_BEFORE",
	NodeAfter:                    "NODE_AFTER",
	Concatenation:                "CONCATENATION",
	Union:                        "UNION",
	Bang:                         "MAP_OPERATOR",
	Assign:                       "ASSIGN_EQUAL",
	AxisSeparator:                "AXIS_SEPARATOR",
	AttributeSelector:            "ATTRIBUTE_SELECTOR",
	Question:                     "OPTIONAL",
	Arrow:                        "ARROW",
	Hash:                         "FUNCTION_REF_LINK",
	Annotation:                   "ANNOTATION_INDICATOR",
	Tilde:                        "TYPE_ALIAS",
	PragmaBegin:                  "PRAGMA_BEGIN",
	PragmaContents:               "PRAGMA_CONTENTS",
	PragmaEnd:                    "PRAGMA_END",
	StringConstructorStart:       "STRING_CONSTRUCTOR_START",
	StringConstructorContents:    "STRING_CONSTRUCTOR_CONTENTS",
	StringConstructorEnd:         "STRING_CONSTRUCTOR_END",
	InterpolationOpen:            "STRING_INTERPOLATION_OPEN",
	InterpolationClose:           "STRING_INTERPOLATION_CLOSE",
	DirElemMaybeOpenTag:          "DIRELEM_MAYBE_OPEN_XML_TAG",
	OpenXmlTag:                   "OPEN_XML_TAG",
	EndXmlTag:                    "END_XML_TAG",
	SelfClosingXmlTag:            "SELF_CLOSING_XML_TAG",
	CloseXmlTag:                  "CLOSE_XML_TAG",
	XmlTagNCName:                 "XML_TAG_NCNAME",
	XmlColon:                     "XML_TAG_QNAME_SEPARATOR",
	XmlWhitespace:                "XML_WHITE_SPACE",
	XmlEqual:                     "XML_EQUAL",
	XmlAttrValueStart:            "XML_ATTRIBUTE_VALUE_START",
	XmlAttrValueContents:         "XML_ATTRIBUTE_VALUE_CONTENTS",
	XmlAttrValueEnd:              "XML_ATTRIBUTE_VALUE_END",
	XmlEscapedCharacter:          "XML_ESCAPED_CHARACTER",
	XmlElementContents:           "XML_ELEMENT_CONTENTS",
	XmlCommentStart:              "XML_COMMENT_START_TAG",
	XmlCommentContents:           "XML_COMMENT",
	XmlCommentEnd:                "XML_COMMENT_END_TAG",
	CDataStart:                   "CDATA_SECTION_START_TAG",
	CDataContents:                "CDATA_SECTION",
	CDataEnd:                     "CDATA_SECTION_END_TAG",
	PIBegin:                      "PROCESSING_INSTRUCTION_BEGIN",
	PIContents:                   "PROCESSING_INSTRUCTION_CONTENTS",
	PIEnd:                        "PROCESSING_INSTRUCTION_END",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsTrivia reports whether tokens of kind k carry no syntactic meaning.
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, CommentStart, Comment, CommentEnd, XmlWhitespace:
		return true
	}
	return false
}

// IsError reports whether k is a lexical diagnostic.
func (k Kind) IsError() bool {
	switch k {
	case BadCharacter, Invalid, UnexpectedEndOfBlock,
		PartialEntityReference, EmptyEntityReference, PartialDoubleLiteralExponent:
		return true
	}
	return false
}

// IsEntityRef reports whether k is one of the reference kinds handled by
// the decoders.
func (k Kind) IsEntityRef() bool {
	switch k {
	case PredefinedEntityRef, CharRef, PartialEntityReference, EmptyEntityReference:
		return true
	}
	return false
}

// Token is a span of the input with its kind and the lexer state at its
// start. Start and End are byte offsets.
type Token struct {
	Kind  Kind
	Start int
	End   int
	State State
}

// Text returns the span of src covered by the token.
func (t Token) Text(src string) string {
	return src[t.Start:t.End]
}

// Len returns the token width in bytes.
func (t Token) Len() int { return t.End - t.Start }

func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d]", t.Kind, t.Start, t.End)
}
