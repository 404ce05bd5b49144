// Package errors defines the structured diagnostics produced by every
// stage of the Glitter pipeline. It deliberately carries no formatting
// logic — source-line extraction, caret underlines, and color belong to
// the driver, per the core/driver split in the specification. See
// internal/prettyprint for that concern.
package errors

import "fmt"

// Kind discriminates the taxonomy of errors a Glitter run can produce.
type Kind int

const (
	// UnexpectedCharacter is raised by the scanner on an unrecognized
	// first character of a token.
	UnexpectedCharacter Kind = iota
	// UnterminatedString is raised by the scanner when a string literal's
	// closing quote is never found.
	UnterminatedString
	// UnterminatedBlockComment is raised by the scanner when a /* comment
	// is never closed.
	UnterminatedBlockComment
	// ParseError is raised by the parser; it synchronizes and continues.
	ParseError
	// ResolverError is raised by the resolver: duplicate declaration in
	// the same scope, self-reference in initializer, or return outside a
	// function.
	ResolverError
	// RuntimeError is raised by the evaluator: type mismatch, undefined
	// variable, arity mismatch, or a non-callable call.
	RuntimeError
)

func (k Kind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case UnterminatedString:
		return "UnterminatedString"
	case UnterminatedBlockComment:
		return "UnterminatedBlockComment"
	case ParseError:
		return "ParseError"
	case ResolverError:
		return "ResolverError"
	case RuntimeError:
		return "RuntimeError"
	default:
		return "UnknownError"
	}
}

// Error is a single diagnostic: its taxonomy Kind, a human-readable
// Message, the source Path it came from, and its Offset/Length/Line
// position within that source.
type Error struct {
	Kind    Kind
	Message string
	Path    string
	Offset  int
	Length  int
	Line    int
}

// New constructs an Error.
func New(kind Kind, message, path string, offset, length, line int) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Path:    path,
		Offset:  offset,
		Length:  length,
		Line:    line,
	}
}

// Error implements the error interface with a compact, unformatted
// rendering. Callers that want source-line context and color should use
// internal/prettyprint instead.
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s:%d: %s", e.Kind, e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: line %d: %s", e.Kind, e.Line, e.Message)
}

// List is an ordered collection of Errors accumulated across a pipeline
// stage (scanning, parsing, or resolving all gather multiple errors before
// the run is aborted).
type List []*Error

// Error implements the error interface by joining every message, one per
// line.
func (l List) Error() string {
	if len(l) == 0 {
		return ""
	}
	if len(l) == 1 {
		return l[0].Error()
	}
	msg := ""
	for i, e := range l {
		if i > 0 {
			msg += "\n"
		}
		msg += e.Error()
	}
	return msg
}
