// Package lexer implements the Glitter scanner: UTF-8 source text in, a
// lazy sequence of pkg/token.Token out.
package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	coreerrors "github.com/glitterlang/glitter/internal/errors"
	"github.com/glitterlang/glitter/pkg/token"
)

// Option configures a Scanner at construction time.
type Option func(*Scanner)

// WithWhitespaceTokens makes the Scanner emit Whitespace tokens instead of
// silently skipping them. EndOfFile is always emitted regardless.
func WithWhitespaceTokens(emit bool) Option {
	return func(s *Scanner) { s.emitWhitespace = emit }
}

// Scanner produces tokens from a single source file lazily: each call to
// Next decodes exactly as much input as needed to produce one token.
//
// Positions are tracked as byte offsets (Position.Offset) with a 1-based
// line counter; Position.Length is the lexeme's byte length, so
// source[Offset:Offset+Length] always reproduces the lexeme for any
// non-whitespace token.
type Scanner struct {
	source         string
	path           string
	pos            int // byte offset of ch
	readPos        int // byte offset of next rune
	line           int
	ch             rune
	atEOF          bool
	emitWhitespace bool
	errs           coreerrors.List
	eofEmitted     bool
	lastKind       token.Kind // kind of the last non-whitespace token returned
}

// New creates a Scanner over source, attributing positions to path (used
// only for error messages; may be empty).
func New(source, path string, opts ...Option) *Scanner {
	s := &Scanner{source: source, path: path, line: 1}
	for _, opt := range opts {
		opt(s)
	}
	s.advance()
	return s
}

// Errors returns every error accumulated so far.
func (s *Scanner) Errors() coreerrors.List { return s.errs }

func (s *Scanner) addError(kind coreerrors.Kind, message string, offset, length, line int) {
	s.errs = append(s.errs, coreerrors.New(kind, message, s.path, offset, length, line))
}

// advance reads the next rune into s.ch, handling invalid UTF-8 by
// substituting utf8.RuneError and advancing by one byte (so a single bad
// byte can't wedge the scanner forever).
func (s *Scanner) advance() {
	if s.readPos >= len(s.source) {
		s.pos = len(s.source)
		s.readPos = len(s.source)
		s.ch = 0
		s.atEOF = true
		return
	}
	r, size := utf8.DecodeRuneInString(s.source[s.readPos:])
	if r == utf8.RuneError && size == 1 {
		size = 1
	}
	s.pos = s.readPos
	s.ch = r
	s.readPos += size
}

func (s *Scanner) peek() rune {
	if s.readPos >= len(s.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.readPos:])
	return r
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAlpha(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isAlphaNumeric(r rune) bool { return isAlpha(r) || isDigit(r) }

// Next returns the next token in the stream. Once EndOfFile has been
// returned it is returned again on every subsequent call, satisfying the
// "exactly one EndOfFile" contract at the sequence level (a caller that
// stops on the first EndOfFile sees it exactly once).
func (s *Scanner) Next() token.Token {
	tok := s.scan()
	if tok.Kind != token.Whitespace {
		s.lastKind = tok.Kind
	}
	return tok
}

// lastProducesValue reports whether the previous token could stand as the
// left operand of a binary operator — a Number, String, Identifier, or a
// closing ')'. When it can, a following '-' is subtraction, not the sign
// of a negative-number literal.
func (s *Scanner) lastProducesValue() bool {
	switch s.lastKind {
	case token.Number, token.String, token.Identifier, token.RightParen:
		return true
	default:
		return false
	}
}

func (s *Scanner) scan() token.Token {
	if s.emitWhitespace {
		if ws, ok := s.scanWhitespaceRun(); ok {
			return ws
		}
	} else {
		s.skipWhitespaceAndComments()
	}

	if s.atEOF {
		return s.emitEOF()
	}

	startOffset := s.pos
	startLine := s.line
	ch := s.ch

	switch {
	case ch == '-' && isDigit(s.peek()) && !s.lastProducesValue():
		return s.scanNumber(startOffset, startLine, true)
	case isDigit(ch):
		return s.scanNumber(startOffset, startLine, false)
	case ch == '"':
		return s.scanString(startOffset, startLine)
	case isAlpha(ch):
		return s.scanIdentifier(startOffset, startLine)
	}

	// Single- and double-character punctuators/operators.
	switch ch {
	case '(':
		s.advance()
		return s.simple(token.LeftParen, "(", startOffset, startLine)
	case ')':
		s.advance()
		return s.simple(token.RightParen, ")", startOffset, startLine)
	case '{':
		s.advance()
		return s.simple(token.LeftBrace, "{", startOffset, startLine)
	case '}':
		s.advance()
		return s.simple(token.RightBrace, "}", startOffset, startLine)
	case ',':
		s.advance()
		return s.simple(token.Comma, ",", startOffset, startLine)
	case '.':
		s.advance()
		return s.simple(token.Dot, ".", startOffset, startLine)
	case '-':
		s.advance()
		return s.simple(token.Minus, "-", startOffset, startLine)
	case '+':
		s.advance()
		return s.simple(token.Plus, "+", startOffset, startLine)
	case ';':
		s.advance()
		return s.simple(token.Semicolon, ";", startOffset, startLine)
	case '*':
		s.advance()
		return s.simple(token.Star, "*", startOffset, startLine)
	case '!':
		s.advance()
		if s.ch == '=' {
			s.advance()
			return s.simple(token.BangEqual, "!=", startOffset, startLine)
		}
		return s.simple(token.Bang, "!", startOffset, startLine)
	case '=':
		s.advance()
		if s.ch == '=' {
			s.advance()
			return s.simple(token.EqualEqual, "==", startOffset, startLine)
		}
		return s.simple(token.Equal, "=", startOffset, startLine)
	case '<':
		s.advance()
		if s.ch == '=' {
			s.advance()
			return s.simple(token.LessEqual, "<=", startOffset, startLine)
		}
		return s.simple(token.Less, "<", startOffset, startLine)
	case '>':
		s.advance()
		if s.ch == '=' {
			s.advance()
			return s.simple(token.GreaterEqual, ">=", startOffset, startLine)
		}
		return s.simple(token.Greater, ">", startOffset, startLine)
	case '/':
		// Comments never reach this point: scanWhitespaceRun (whitespace
		// mode) or skipWhitespaceAndComments (default mode) has already
		// consumed them, so a '/' here is always the Slash operator.
		s.advance()
		return s.simple(token.Slash, "/", startOffset, startLine)
	}

	lexeme := s.source[startOffset:s.readPos]
	s.advance()
	s.addError(coreerrors.UnexpectedCharacter, "unexpected character '"+lexeme+"'", startOffset, len(lexeme), startLine)
	return token.New(token.Illegal, lexeme, token.Position{Path: s.path, Line: startLine, Offset: startOffset, Length: len(lexeme)})
}

func (s *Scanner) emitEOF() token.Token {
	return token.New(token.EOF, "", token.Position{Path: s.path, Line: s.line, Offset: s.pos, Length: 0})
}

func (s *Scanner) simple(kind token.Kind, lexeme string, offset, line int) token.Token {
	return token.New(kind, lexeme, token.Position{Path: s.path, Line: line, Offset: offset, Length: len(lexeme)})
}

// isWhitespaceChar reports whether r is one of the four whitespace
// characters recognized by the grammar (space, tab, CR, LF).
func isWhitespaceChar(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// skipWhitespaceAndComments consumes any run of whitespace characters and
// interleaved comments without producing a token, advancing the line
// counter on every newline.
func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespaceChar(s.ch):
			if s.ch == '\n' {
				s.line++
			}
			s.advance()
		case s.ch == '/' && s.peek() == '/':
			s.skipLineComment()
		case s.ch == '/' && s.peek() == '*':
			s.skipBlockComment(s.pos, s.line)
		default:
			return
		}
	}
}

func (s *Scanner) skipLineComment() {
	for !s.atEOF && s.ch != '\n' {
		s.advance()
	}
}

func (s *Scanner) skipBlockComment(startOffset, startLine int) {
	s.advance() // consume '/'
	s.advance() // consume '*'
	for {
		if s.atEOF {
			s.addError(coreerrors.UnterminatedBlockComment, "unterminated block comment", startOffset, s.pos-startOffset, startLine)
			return
		}
		if s.ch == '*' && s.peek() == '/' {
			s.advance()
			s.advance()
			return
		}
		if s.ch == '\n' {
			s.line++
		}
		s.advance()
	}
}

// scanWhitespaceRun is the WithWhitespaceTokens(true) counterpart of
// skipWhitespaceAndComments: it coalesces the same run of whitespace and
// comments into a single Whitespace token instead of discarding it.
func (s *Scanner) scanWhitespaceRun() (token.Token, bool) {
	if !isWhitespaceChar(s.ch) && !(s.ch == '/' && (s.peek() == '/' || s.peek() == '*')) {
		return token.Token{}, false
	}
	startOffset := s.pos
	startLine := s.line
	for {
		switch {
		case isWhitespaceChar(s.ch):
			if s.ch == '\n' {
				s.line++
			}
			s.advance()
		case s.ch == '/' && s.peek() == '/':
			s.skipLineComment()
		case s.ch == '/' && s.peek() == '*':
			s.skipBlockComment(s.pos, s.line)
		default:
			lexeme := s.source[startOffset:s.pos]
			return token.New(token.Whitespace, lexeme, token.Position{Path: s.path, Line: startLine, Offset: startOffset, Length: len(lexeme)}), true
		}
		if s.atEOF {
			lexeme := s.source[startOffset:s.pos]
			return token.New(token.Whitespace, lexeme, token.Position{Path: s.path, Line: startLine, Offset: startOffset, Length: len(lexeme)}), true
		}
	}
}

// scanNumber scans one or more digits, an optional "." followed by one or
// more digits, and decodes the result as a float64. When negative is true
// the leading '-' (already positioned at s.ch on entry) is consumed as
// part of the literal, per the scanner's fold-in rule for a minus sign
// immediately followed by a digit.
func (s *Scanner) scanNumber(startOffset, startLine int, negative bool) token.Token {
	if negative {
		s.advance() // consume '-'
	}
	for isDigit(s.ch) {
		s.advance()
	}
	if s.ch == '.' && isDigit(s.peek()) {
		s.advance() // consume '.'
		for isDigit(s.ch) {
			s.advance()
		}
	}
	lexeme := s.source[startOffset:s.pos]
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		value = 0
	}
	return token.NewNumber(lexeme, value, token.Position{Path: s.path, Line: startLine, Offset: startOffset, Length: len(lexeme)})
}

// scanString scans a double-quoted string literal. Strings may span
// newlines; there is no escape processing. An unterminated string is
// reported at the position of the opening quote.
func (s *Scanner) scanString(startOffset, startLine int) token.Token {
	s.advance() // consume opening '"'
	contentStart := s.pos
	for {
		if s.atEOF {
			s.addError(coreerrors.UnterminatedString, "unterminated string literal", startOffset, s.pos-startOffset, startLine)
			lexeme := s.source[startOffset:s.pos]
			return token.NewText(token.String, lexeme, s.source[contentStart:s.pos], token.Position{Path: s.path, Line: startLine, Offset: startOffset, Length: len(lexeme)})
		}
		if s.ch == '"' {
			content := s.source[contentStart:s.pos]
			s.advance() // consume closing '"'
			lexeme := s.source[startOffset:s.pos]
			return token.NewText(token.String, lexeme, content, token.Position{Path: s.path, Line: startLine, Offset: startOffset, Length: len(lexeme)})
		}
		if s.ch == '\n' {
			s.line++
		}
		s.advance()
	}
}

// scanIdentifier scans an identifier or reserved word: a letter/underscore
// followed by letters, digits, or underscores.
func (s *Scanner) scanIdentifier(startOffset, startLine int) token.Token {
	for isAlphaNumeric(s.ch) {
		s.advance()
	}
	text := s.source[startOffset:s.pos]
	kind := token.LookupIdentifier(text)
	if kind == token.Identifier {
		return token.NewText(token.Identifier, text, text, token.Position{Path: s.path, Line: startLine, Offset: startOffset, Length: len(text)})
	}
	return token.New(kind, text, token.Position{Path: s.path, Line: startLine, Offset: startOffset, Length: len(text)})
}
