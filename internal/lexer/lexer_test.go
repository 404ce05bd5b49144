package lexer

import (
	"testing"

	"github.com/glitterlang/glitter/pkg/token"
)

func allTokens(s *Scanner) []token.Token {
	var toks []token.Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestEOFInvariant(t *testing.T) {
	tests := []string{"", "   ", "var x;", "\n\n\n"}
	for _, src := range tests {
		s := New(src, "test")
		toks := allTokens(s)
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Errorf("source %q: last token must be EOF", src)
		}
		count := 0
		for _, tok := range toks {
			if tok.Kind == token.EOF {
				count++
			}
		}
		if count != 1 {
			t.Errorf("source %q: EOF token count = %d, want 1", src, count)
		}
	}
}

func TestLexemeRoundTrip(t *testing.T) {
	src := `var greeting = "hi"; print greeting; x = 3.5;`
	s := New(src, "test")
	for {
		tok := s.Next()
		if tok.Kind == token.EOF {
			break
		}
		got := src[tok.Pos.Offset : tok.Pos.Offset+tok.Pos.Length]
		if got != tok.Lexeme {
			t.Errorf("lexeme round-trip failed: source slice %q != lexeme %q", got, tok.Lexeme)
		}
	}
}

func TestWhitespaceCoalescing(t *testing.T) {
	src := "a   \t\n // a comment\n /* block\ncomment */  b"
	s := New(src, "test", WithWhitespaceTokens(true))
	toks := allTokens(s)
	got := kinds(toks)
	want := []token.Kind{token.Identifier, token.Whitespace, token.Identifier, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kind[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestWhitespaceSkippedByDefault(t *testing.T) {
	src := "a   \n// comment\nb"
	s := New(src, "test")
	toks := allTokens(s)
	got := kinds(toks)
	want := []token.Kind{token.Identifier, token.Identifier, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestPunctuators(t *testing.T) {
	src := "(){},.-+;*"
	s := New(src, "test")
	got := kinds(allTokens(s))
	want := []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon, token.Star,
		token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kind[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTwoCharOperators(t *testing.T) {
	src := "! != = == < <= > >= /"
	s := New(src, "test")
	got := kinds(allTokens(s))
	want := []token.Kind{
		token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual, token.Slash,
		token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kind[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNumberLiteral(t *testing.T) {
	s := New("123 45.67", "test")
	tok1 := s.Next()
	if tok1.Kind != token.Number || tok1.NumberValue() != 123 {
		t.Errorf("tok1 = %v, want Number(123)", tok1)
	}
	tok2 := s.Next()
	if tok2.Kind != token.Number || tok2.NumberValue() != 45.67 {
		t.Errorf("tok2 = %v, want Number(45.67)", tok2)
	}
}

func TestNegativeNumberFoldsIntoLiteralAtStartOfExpression(t *testing.T) {
	// a '-' immediately followed by a digit folds into the number only
	// when no value-producing token (Number/String/Identifier/')') came
	// before it, so a leading negation like "-5" is one Number token.
	s := New("-5", "test")
	tok := s.Next()
	if tok.Kind != token.Number || tok.NumberValue() != -5 {
		t.Errorf("tok = %v, want Number(-5)", tok)
	}
}

func TestNegativeNumberFoldsAfterOperator(t *testing.T) {
	s := New("x * -5", "test")
	_ = s.Next() // x
	_ = s.Next() // *
	tok := s.Next()
	if tok.Kind != token.Number || tok.NumberValue() != -5 {
		t.Errorf("tok = %v, want Number(-5)", tok)
	}
}

func TestMinusIsOperatorAfterIdentifierEvenWhenFollowedByDigit(t *testing.T) {
	// "n-2" must lex as Identifier Minus Number(2), not Identifier
	// Number(-2) — the previous token (an Identifier) already produces a
	// value, so '-' here is subtraction.
	s := New("n-2", "test")
	tok1 := s.Next()
	if tok1.Kind != token.Identifier {
		t.Fatalf("tok1.Kind = %s, want Identifier", tok1.Kind)
	}
	tok2 := s.Next()
	if tok2.Kind != token.Minus {
		t.Errorf("tok2.Kind = %s, want Minus", tok2.Kind)
	}
	tok3 := s.Next()
	if tok3.Kind != token.Number || tok3.NumberValue() != 2 {
		t.Errorf("tok3 = %v, want Number(2)", tok3)
	}
}

func TestMinusIsOperatorAfterClosingParenEvenWhenFollowedByDigit(t *testing.T) {
	s := New("f(n)-1", "test")
	for i := 0; i < 4; i++ {
		s.Next() // f ( n )
	}
	tok := s.Next()
	if tok.Kind != token.Minus {
		t.Errorf("tok.Kind = %s, want Minus", tok.Kind)
	}
}

func TestMinusIsOperatorWhenNotFollowedByDigit(t *testing.T) {
	s := New("x - y", "test")
	_ = s.Next() // x
	tok2 := s.Next()
	if tok2.Kind != token.Minus {
		t.Errorf("tok2.Kind = %s, want Minus", tok2.Kind)
	}
}

func TestStringLiteral(t *testing.T) {
	s := New(`"hello world"`, "test")
	tok := s.Next()
	if tok.Kind != token.String || tok.TextValue() != "hello world" {
		t.Errorf("tok = %v, want String(\"hello world\")", tok)
	}
}

func TestStringSpansNewlines(t *testing.T) {
	s := New("\"line1\nline2\"", "test")
	tok := s.Next()
	if tok.Kind != token.String || tok.TextValue() != "line1\nline2" {
		t.Errorf("tok = %v", tok)
	}
}

func TestUnterminatedStringReportsErrorAtOpeningQuote(t *testing.T) {
	s := New(`"unterminated`, "test")
	s.Next()
	if len(s.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(s.Errors()))
	}
	if s.Errors()[0].Offset != 0 {
		t.Errorf("error offset = %d, want 0 (opening quote)", s.Errors()[0].Offset)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	s := New("/* never closed", "test")
	toks := allTokens(s)
	if toks[len(toks)-1].Kind != token.EOF {
		t.Error("must still terminate with EOF")
	}
	if len(s.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(s.Errors()))
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	s := New("if else while for return function var let true false undefined print myVar _foo123", "test")
	toks := allTokens(s)
	want := []token.Kind{
		token.If, token.Else, token.While, token.For, token.Return, token.Function,
		token.Var, token.Let, token.True, token.False, token.Undefined, token.Print,
		token.Identifier, token.Identifier, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kind[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	s := New("@", "test")
	tok := s.Next()
	if tok.Kind != token.Illegal {
		t.Errorf("kind = %s, want Illegal", tok.Kind)
	}
	if len(s.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(s.Errors()))
	}
}

func TestLineNumbersTrackNewlines(t *testing.T) {
	s := New("a\nb\n\nc", "test")
	toks := allTokens(s)
	lines := map[string]int{}
	for _, tok := range toks {
		if tok.Kind == token.Identifier {
			lines[tok.Lexeme] = tok.Pos.Line
		}
	}
	if lines["a"] != 1 || lines["b"] != 2 || lines["c"] != 4 {
		t.Errorf("lines = %v, want a:1 b:2 c:4", lines)
	}
}

func TestUnicodeIdentifier(t *testing.T) {
	s := New("var café = 1;", "test")
	_ = s.Next() // var
	tok := s.Next()
	if tok.Kind != token.Identifier || tok.TextValue() != "café" {
		t.Errorf("tok = %v, want Identifier(café)", tok)
	}
}
