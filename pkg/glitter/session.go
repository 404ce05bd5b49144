// Package glitter is the embedding surface for the interpreter: a Session
// wires the scanner, parser, resolver, and evaluator together, owns the
// root environment across calls, and hands every collected diagnostic to
// a caller-supplied sink rather than printing anything itself.
package glitter

import (
	"io"

	coreerrors "github.com/glitterlang/glitter/internal/errors"
	"github.com/glitterlang/glitter/internal/interp"
	"github.com/glitterlang/glitter/internal/lexer"
	"github.com/glitterlang/glitter/internal/parser"
	"github.com/glitterlang/glitter/internal/resolver"
)

// ErrorSink receives every diagnostic collected during one Run. It is
// called at most once per Run: with the static errors (scan/parse/resolve)
// when any occurred, in which case the evaluator never runs, or with a
// single-element list on a runtime error.
type ErrorSink interface {
	Report(errs coreerrors.List)
}

// ErrorSinkFunc adapts a plain function to ErrorSink.
type ErrorSinkFunc func(errs coreerrors.List)

// Report implements ErrorSink.
func (f ErrorSinkFunc) Report(errs coreerrors.List) { f(errs) }

// Option configures a Session at construction time.
type Option func(*Session)

// WithNative pre-registers a native function before any Run, equivalent to
// calling RegisterNative immediately after New.
func WithNative(name string, arity int, handler interp.NativeFunc) Option {
	return func(s *Session) { s.RegisterNative(name, arity, handler) }
}

// WithoutClock omits the default clock() built-in, for embedders that want
// a hermetic environment with no wall-clock access.
func WithoutClock() Option {
	return func(s *Session) { s.skipClock = true }
}

// Session is the interpreter's embedding API. Its root environment
// persists across Run calls, so a REPL-style driver can feed it one line
// at a time and see earlier declarations remain visible — including after
// a line that failed with a runtime error.
type Session struct {
	Input     io.Reader
	Output    io.Writer
	evaluator *interp.Evaluator
	skipClock bool
}

// New creates a Session over the given abstract input and output streams.
// Neither stream is read or written until Run is called (or a registered
// native chooses to use Input itself).
func New(input io.Reader, output io.Writer, opts ...Option) *Session {
	s := &Session{Input: input, Output: output, evaluator: interp.NewEvaluator(output)}
	for _, opt := range opts {
		opt(s)
	}
	if !s.skipClock {
		if _, err := s.evaluator.Global.GetGlobal("clock"); err != nil {
			s.evaluator.Global.DefineGlobal("clock", interp.NewClockNative())
		}
	}
	return s
}

// RegisterNative adds a named native callable to the root environment.
// Call it before any Run that depends on the registration — the language
// has no forward-declaration story for a name that doesn't exist yet.
func (s *Session) RegisterNative(name string, arity int, handler interp.NativeFunc) {
	s.evaluator.Global.DefineGlobal(name, &interp.NativeFunction{Name: name, Arity_: arity, Handler: handler})
}

// Run scans, parses, resolves, and evaluates source, attributing
// diagnostics to path (purely cosmetic — pass "" or "<stdin>" for input
// with no backing file). If any scan, parse, or resolve error occurred,
// the evaluator does not run and every accumulated error is reported
// together. A runtime error is reported alone and aborts this Run, but the
// root environment survives intact for the next one.
func (s *Session) Run(source, path string, sink ErrorSink) {
	scanner := lexer.New(source, path)
	p := parser.New(scanner, path)
	stmts := p.ParseProgram()

	var staticErrs coreerrors.List
	staticErrs = append(staticErrs, scanner.Errors()...)
	staticErrs = append(staticErrs, p.Errors()...)
	if len(staticErrs) > 0 {
		sink.Report(staticErrs)
		return
	}

	res := resolver.New(path)
	res.Resolve(stmts)
	if len(res.Errors()) > 0 {
		sink.Report(res.Errors())
		return
	}

	if runErr := s.evaluator.Run(stmts, path); runErr != nil {
		sink.Report(coreerrors.List{runErr})
	}
}
