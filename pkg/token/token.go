// Package token defines the lexical token kinds produced by the Glitter
// scanner and consumed by the parser.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	// Special
	Illegal Kind = iota
	EOF
	Whitespace

	// Literals
	Number
	String
	Identifier

	literalEnd // marker

	// Keywords
	And
	Or
	If
	Else
	While
	For
	Return
	Function
	Var
	Let
	True
	False
	Undefined
	Print
	Class
	Base
	This
	Break
	Continue
	Foreach

	keywordEnd // marker

	// Single-character punctuators
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Star

	// One- or two-character operators
	Bang
	BangEqual
	Equal
	EqualEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	Slash
)

var kindNames = [...]string{
	Illegal:    "Illegal",
	EOF:        "EOF",
	Whitespace: "Whitespace",
	Number:     "Number",
	String:     "String",
	Identifier: "Identifier",
	And:        "And",
	Or:         "Or",
	If:         "If",
	Else:       "Else",
	While:      "While",
	For:        "For",
	Return:     "Return",
	Function:   "Function",
	Var:        "Var",
	Let:        "Let",
	True:       "True",
	False:      "False",
	Undefined:  "Undefined",
	Print:      "Print",
	Class:      "Class",
	Base:       "Base",
	This:       "This",
	Break:      "Break",
	Continue:   "Continue",
	Foreach:    "Foreach",

	LeftParen:    "LeftParen",
	RightParen:   "RightParen",
	LeftBrace:    "LeftBrace",
	RightBrace:   "RightBrace",
	Comma:        "Comma",
	Dot:          "Dot",
	Minus:        "Minus",
	Plus:         "Plus",
	Semicolon:    "Semicolon",
	Star:         "Star",
	Bang:         "Bang",
	BangEqual:    "BangEqual",
	Equal:        "Equal",
	EqualEqual:   "EqualEqual",
	Less:         "Less",
	LessEqual:    "LessEqual",
	Greater:      "Greater",
	GreaterEqual: "GreaterEqual",
	Slash:        "Slash",
}

// String returns the symbolic name of the kind (e.g. "Number"), not the
// source lexeme it was scanned from.
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// IsLiteral reports whether k is one of the literal-category kinds (Number,
// String, Identifier).
func (k Kind) IsLiteral() bool {
	return k >= Number && k < literalEnd
}

// IsKeyword reports whether k is one of the reserved-word kinds.
func (k Kind) IsKeyword() bool {
	return k > literalEnd && k < keywordEnd
}

// keywords maps reserved-word lexemes to their keyword Kind. Populated once
// at package init so LookupIdentifier is a plain map probe.
var keywords = map[string]Kind{
	"and":       And,
	"or":        Or,
	"if":        If,
	"else":      Else,
	"while":     While,
	"for":       For,
	"return":    Return,
	"function":  Function,
	"var":       Var,
	"let":       Let,
	"true":      True,
	"false":     False,
	"undefined": Undefined,
	"print":     Print,
	"class":     Class,
	"base":      Base,
	"this":      This,
	"break":     Break,
	"continue":  Continue,
	"foreach":   Foreach,
}

// LookupIdentifier returns the keyword Kind for text if it is a reserved
// word, or Identifier otherwise.
func LookupIdentifier(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return Identifier
}

// Position locates a token within a source file: a 1-based line number, a
// byte offset from the start of the file, and the token's length in bytes.
type Position struct {
	Path   string
	Line   int
	Offset int
	Length int
}

// String renders the position as "path:line" for error messages.
func (p Position) String() string {
	if p.Path == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.Path, p.Line)
}

// Token is a single lexical unit: a Kind, the exact source substring
// (Lexeme), an optional decoded literal payload, and its Position.
//
// Payload access is kind-gated: NumberValue panics unless Kind == Number,
// and TextValue panics unless Kind is String or Identifier. This mirrors
// the tagged-union discipline of the source grammar — reading the wrong
// payload is a programmer error, not a runtime condition to recover from.
type Token struct {
	Kind     Kind
	Lexeme   string
	Pos      Position
	number   float64
	text     string
	hasText  bool
	hasFloat bool
}

// New constructs a Token with no literal payload (punctuators, keywords,
// EOF, Whitespace).
func New(kind Kind, lexeme string, pos Position) Token {
	return Token{Kind: kind, Lexeme: lexeme, Pos: pos}
}

// NewNumber constructs a Number token carrying its decoded float64 payload.
func NewNumber(lexeme string, value float64, pos Position) Token {
	return Token{Kind: Number, Lexeme: lexeme, Pos: pos, number: value, hasFloat: true}
}

// NewText constructs a String or Identifier token carrying its decoded
// text payload.
func NewText(kind Kind, lexeme, text string, pos Position) Token {
	return Token{Kind: kind, Lexeme: lexeme, Pos: pos, text: text, hasText: true}
}

// NumberValue returns the decoded numeric literal. It panics if the token
// is not a Number — callers must check Kind first.
func (t Token) NumberValue() float64 {
	if !t.hasFloat {
		panic(fmt.Sprintf("token: NumberValue called on %s token", t.Kind))
	}
	return t.number
}

// TextValue returns the decoded string payload of a String or Identifier
// token. It panics for any other kind.
func (t Token) TextValue() string {
	if !t.hasText {
		panic(fmt.Sprintf("token: TextValue called on %s token", t.Kind))
	}
	return t.text
}

// String renders the token for debugging: kind, lexeme, and position.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q) @ %s", t.Kind, t.Lexeme, t.Pos)
}
