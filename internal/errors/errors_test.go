package errors

import (
	"strings"
	"testing"
)

func TestErrorFormatsWithPath(t *testing.T) {
	e := New(RuntimeError, "undefined variable 'x'", "script.glitter", 10, 1, 2)
	got := e.Error()
	if !strings.Contains(got, "RuntimeError") || !strings.Contains(got, "script.glitter:2") || !strings.Contains(got, "undefined variable 'x'") {
		t.Errorf("Error() = %q, missing expected parts", got)
	}
}

func TestErrorFormatsWithoutPath(t *testing.T) {
	e := New(ParseError, "expected ';'", "", 0, 1, 5)
	got := e.Error()
	if !strings.Contains(got, "line 5") {
		t.Errorf("Error() = %q, want it to mention line 5", got)
	}
}

func TestListJoinsMultipleErrors(t *testing.T) {
	l := List{
		New(ParseError, "first", "a.glitter", 0, 1, 1),
		New(ParseError, "second", "a.glitter", 5, 1, 2),
	}
	got := l.Error()
	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Errorf("List.Error() = %q, want both messages", got)
	}
	if strings.Count(got, "\n") != 1 {
		t.Errorf("List.Error() should join with exactly one newline, got %q", got)
	}
}

func TestEmptyListErrorsToEmptyString(t *testing.T) {
	var l List
	if got := l.Error(); got != "" {
		t.Errorf("empty List.Error() = %q, want empty string", got)
	}
}

func TestKindString(t *testing.T) {
	if UnexpectedCharacter.String() != "UnexpectedCharacter" {
		t.Errorf("unexpected Kind.String()")
	}
	if Kind(999).String() != "UnknownError" {
		t.Errorf("unknown Kind.String() should fall back")
	}
}
