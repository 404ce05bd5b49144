// Package interp is the tree-walking evaluator and its runtime value
// model: a tagged variant in place of interface{}, an Environment chain for
// lexical scope, and the Evaluator that drives both over a resolved AST.
package interp

import (
	"math"
	"strconv"

	"github.com/glitterlang/glitter/pkg/ast"
)

// Value is a runtime value. Every variant implements Type and String so the
// evaluator never needs a type switch to render a diagnostic.
type Value interface {
	Type() string
	String() string
}

// UndefinedValue is the language's single absent-value marker: the result
// of an unset declaration, a bare "return;", or falling off a function
// body.
type UndefinedValue struct{}

// Undefined is the shared instance; there is never a reason to allocate a
// second one.
var Undefined = UndefinedValue{}

func (UndefinedValue) Type() string   { return "UNDEFINED" }
func (UndefinedValue) String() string { return "undefined" }

// BoolValue wraps a boolean.
type BoolValue struct{ Value bool }

func (b BoolValue) Type() string { return "BOOL" }
func (b BoolValue) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// NumberValue wraps the language's one numeric type: IEEE-754 double
// precision, no separate integer representation.
type NumberValue struct{ Value float64 }

func (n NumberValue) Type() string { return "NUMBER" }

// String renders an integral value without a trailing ".0" and everything
// else with Go's shortest round-tripping decimal — the one formatting rule
// chosen to satisfy the specification's requirement to pick and keep one.
// Infinities and NaN (reachable via division by zero, which this language
// does not special-case) fall through to Go's default rendering.
func (n NumberValue) String() string {
	if math.IsInf(n.Value, 0) || math.IsNaN(n.Value) {
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	}
	if n.Value == float64(int64(n.Value)) {
		return strconv.FormatInt(int64(n.Value), 10)
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// StringValue wraps a UTF-8 string.
type StringValue struct{ Value string }

func (s StringValue) Type() string   { return "STRING" }
func (s StringValue) String() string { return s.Value }

// NativeFunc is the host routine backing a NativeFunction value. args has
// already been checked against Arity by the caller.
type NativeFunc func(eval *Evaluator, args []Value) (Value, error)

// UserFunction is a Callable backed by Glitter source: a FunctionDecl plus
// the environment captured at the point of its own declaration, which is
// what makes it a closure.
type UserFunction struct {
	Decl    *ast.FunctionDecl
	Closure *Environment
}

func (f *UserFunction) Type() string   { return "FUNCTION" }
func (f *UserFunction) String() string { return "<function " + f.Decl.Name + ">" }
func (f *UserFunction) Arity() int     { return len(f.Decl.Params) }

// NativeFunction is a Callable backed by a host Go routine rather than
// Glitter source, e.g. clock.
type NativeFunction struct {
	Name    string
	Arity_  int
	Handler NativeFunc
}

func (f *NativeFunction) Type() string   { return "FUNCTION" }
func (f *NativeFunction) String() string { return "<native fn " + f.Name + ">" }
func (f *NativeFunction) Arity() int     { return f.Arity_ }

// Callable is implemented by both UserFunction and NativeFunction so Call
// sites don't need to branch on which kind they hold until they actually
// invoke it.
type Callable interface {
	Value
	Arity() int
}

// Truthy implements the language's truthiness rule: Undefined is false,
// Bool is its own value, everything else (including Number(0) and the
// empty string) is true.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case UndefinedValue:
		return false
	case BoolValue:
		return val.Value
	default:
		return true
	}
}

// Equal implements the language's equality rule: Undefined equals only
// Undefined, numbers compare by IEEE-754 equality, strings by code-point
// equality, booleans by value, and callables by identity (pointer
// equality on the underlying UserFunction/NativeFunction).
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case UndefinedValue:
		_, ok := b.(UndefinedValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Value == bv.Value
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Value == bv.Value
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Value == bv.Value
	case *UserFunction:
		bv, ok := b.(*UserFunction)
		return ok && av == bv
	case *NativeFunction:
		bv, ok := b.(*NativeFunction)
		return ok && av == bv
	default:
		return false
	}
}
