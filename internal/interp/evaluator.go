package interp

import (
	"fmt"
	"io"

	coreerrors "github.com/glitterlang/glitter/internal/errors"
	"github.com/glitterlang/glitter/pkg/ast"
	"github.com/glitterlang/glitter/pkg/token"
)

// controlSignal distinguishes a statement that ran to completion from one
// that is unwinding a return, per the specification's preferred strategy
// over exception-based non-local exit: a small control-flow value each
// loop/block forwards upward until a function frame consumes it.
type controlSignal int

const (
	signalNormal controlSignal = iota
	signalReturn
)

type execResult struct {
	signal controlSignal
	value  Value
}

// Evaluator is a tagged-switch visitor over a resolved AST, driven by a
// currentEnv pointer that starts at Global and descends into block/call
// frames as execution nests.
type Evaluator struct {
	Global     *Environment
	currentEnv *Environment
	Output     io.Writer
	path       string
}

// NewEvaluator creates an Evaluator whose Print statements write to out.
func NewEvaluator(out io.Writer) *Evaluator {
	root := NewEnvironment()
	return &Evaluator{Global: root, currentEnv: root, Output: out}
}

// Run executes stmts against the Global environment (resetting currentEnv
// to it first, so a prior run's call/block frames never leak into the
// next). path attributes any RuntimeError this run produces. A runtime
// error aborts the run immediately but never rolls back prior side
// effects — Global retains every binding a statement before the failing
// one managed to define.
func (ev *Evaluator) Run(stmts []ast.Statement, path string) *coreerrors.Error {
	ev.path = path
	ev.currentEnv = ev.Global
	for _, stmt := range stmts {
		if _, err := ev.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (ev *Evaluator) runtimeError(node ast.Node, message string) *coreerrors.Error {
	pos := node.Pos()
	length := pos.Length
	if length == 0 {
		length = 1
	}
	return coreerrors.New(coreerrors.RuntimeError, message, ev.path, pos.Offset, length, pos.Line)
}

func (ev *Evaluator) execStmt(stmt ast.Statement) (execResult, *coreerrors.Error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := ev.eval(s.Expr)
		return execResult{}, err

	case *ast.Print:
		v, err := ev.eval(s.Expr)
		if err != nil {
			return execResult{}, err
		}
		fmt.Fprintln(ev.Output, v.String())
		return execResult{}, nil

	case *ast.VarDecl:
		value := Value(Undefined)
		if s.Initializer != nil {
			v, err := ev.eval(s.Initializer)
			if err != nil {
				return execResult{}, err
			}
			value = v
		}
		ev.currentEnv.Define(s.Name, value)
		return execResult{}, nil

	case *ast.FunctionDecl:
		fn := &UserFunction{Decl: s, Closure: ev.currentEnv}
		ev.currentEnv.Define(s.Name, fn)
		return execResult{}, nil

	case *ast.Block:
		return ev.execBlock(s.Stmts, NewEnclosedEnvironment(ev.currentEnv))

	case *ast.If:
		cond, err := ev.eval(s.Cond)
		if err != nil {
			return execResult{}, err
		}
		if Truthy(cond) {
			return ev.execStmt(s.Then)
		}
		if s.Else != nil {
			return ev.execStmt(s.Else)
		}
		return execResult{}, nil

	case *ast.While:
		for {
			cond, err := ev.eval(s.Cond)
			if err != nil {
				return execResult{}, err
			}
			if !Truthy(cond) {
				return execResult{}, nil
			}
			result, err := ev.execStmt(s.Body)
			if err != nil {
				return execResult{}, err
			}
			if result.signal == signalReturn {
				return result, nil
			}
		}

	case *ast.Return:
		value := Value(Undefined)
		if s.Expr != nil {
			v, err := ev.eval(s.Expr)
			if err != nil {
				return execResult{}, err
			}
			value = v
		}
		return execResult{signal: signalReturn, value: value}, nil
	}

	return execResult{}, nil
}

// execBlock runs stmts with currentEnv switched to env, restoring the
// prior environment on every exit path — normal completion, a propagating
// Return, or a runtime error — so control-flow unwinding can never leave
// the evaluator pointed at a frame that should already be gone.
func (ev *Evaluator) execBlock(stmts []ast.Statement, env *Environment) (execResult, *coreerrors.Error) {
	previous := ev.currentEnv
	ev.currentEnv = env
	defer func() { ev.currentEnv = previous }()

	for _, stmt := range stmts {
		result, err := ev.execStmt(stmt)
		if err != nil {
			return execResult{}, err
		}
		if result.signal == signalReturn {
			return result, nil
		}
	}
	return execResult{}, nil
}

func (ev *Evaluator) eval(expr ast.Expression) (Value, *coreerrors.Error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil

	case *ast.Variable:
		var v Value
		var err error
		if e.ScopeDistance == ast.GlobalScope {
			v, err = ev.currentEnv.GetGlobal(e.Name)
		} else {
			v, err = ev.currentEnv.GetAt(e.Name, e.ScopeDistance)
		}
		if err != nil {
			return nil, ev.runtimeError(e, err.Error())
		}
		return v, nil

	case *ast.Grouping:
		return ev.eval(e.Expr)

	case *ast.Unary:
		right, err := ev.eval(e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case token.Minus:
			num, ok := right.(NumberValue)
			if !ok {
				return nil, ev.runtimeError(e, "operand must be a number")
			}
			return NumberValue{Value: -num.Value}, nil
		case token.Bang:
			return BoolValue{Value: !Truthy(right)}, nil
		}
		return nil, ev.runtimeError(e, "unsupported unary operator")

	case *ast.Binary:
		return ev.evalBinary(e)

	case *ast.Logical:
		left, err := ev.eval(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Op == token.Or && Truthy(left) {
			return left, nil
		}
		if e.Op == token.And && !Truthy(left) {
			return left, nil
		}
		return ev.eval(e.Right)

	case *ast.Assignment:
		value, err := ev.eval(e.Value)
		if err != nil {
			return nil, err
		}
		var setErr error
		if e.ScopeDistance == ast.GlobalScope {
			setErr = ev.currentEnv.SetGlobal(e.Name, value)
		} else {
			setErr = ev.currentEnv.SetAt(e.Name, value, e.ScopeDistance)
		}
		if setErr != nil {
			return nil, ev.runtimeError(e, setErr.Error())
		}
		return value, nil

	case *ast.Call:
		return ev.evalCall(e)
	}

	return nil, ev.runtimeError(expr, "unsupported expression")
}

func literalValue(v any) Value {
	switch val := v.(type) {
	case nil:
		return Undefined
	case bool:
		return BoolValue{Value: val}
	case float64:
		return NumberValue{Value: val}
	case string:
		return StringValue{Value: val}
	default:
		return Undefined
	}
}

func (ev *Evaluator) evalBinary(e *ast.Binary) (Value, *coreerrors.Error) {
	left, err := ev.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := ev.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case token.Plus:
		if ln, ok := left.(NumberValue); ok {
			if rn, ok := right.(NumberValue); ok {
				return NumberValue{Value: ln.Value + rn.Value}, nil
			}
		}
		if ls, ok := left.(StringValue); ok {
			if rs, ok := right.(StringValue); ok {
				return StringValue{Value: ls.Value + rs.Value}, nil
			}
		}
		return nil, ev.runtimeError(e, "LHS and RHS must be two numbers or strings")

	case token.Minus, token.Star, token.Slash:
		ln, lok := left.(NumberValue)
		rn, rok := right.(NumberValue)
		if !lok || !rok {
			return nil, ev.runtimeError(e, "operand must be a number")
		}
		switch e.Op {
		case token.Minus:
			return NumberValue{Value: ln.Value - rn.Value}, nil
		case token.Star:
			return NumberValue{Value: ln.Value * rn.Value}, nil
		default: // token.Slash — division by zero is IEEE-754 infinity/NaN, not a special case
			return NumberValue{Value: ln.Value / rn.Value}, nil
		}

	case token.Less, token.LessEqual, token.Greater, token.GreaterEqual:
		ln, lok := left.(NumberValue)
		rn, rok := right.(NumberValue)
		if !lok || !rok {
			return nil, ev.runtimeError(e, "operand must be a number")
		}
		switch e.Op {
		case token.Less:
			return BoolValue{Value: ln.Value < rn.Value}, nil
		case token.LessEqual:
			return BoolValue{Value: ln.Value <= rn.Value}, nil
		case token.Greater:
			return BoolValue{Value: ln.Value > rn.Value}, nil
		default:
			return BoolValue{Value: ln.Value >= rn.Value}, nil
		}

	case token.EqualEqual:
		return BoolValue{Value: Equal(left, right)}, nil
	case token.BangEqual:
		return BoolValue{Value: !Equal(left, right)}, nil
	}

	return nil, ev.runtimeError(e, "unsupported binary operator")
}

func (ev *Evaluator) evalCall(e *ast.Call) (Value, *coreerrors.Error) {
	calleeVal, err := ev.eval(e.Callee)
	if err != nil {
		return nil, err
	}
	callable, ok := calleeVal.(Callable)
	if !ok {
		return nil, ev.runtimeError(e, "can only call functions")
	}

	args := make([]Value, len(e.Args))
	for i, argExpr := range e.Args {
		v, err := ev.eval(argExpr)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if len(args) != callable.Arity() {
		return nil, ev.runtimeError(e, fmt.Sprintf("expected %d arguments but got %d", callable.Arity(), len(args)))
	}

	switch fn := callable.(type) {
	case *UserFunction:
		callEnv := NewEnclosedEnvironment(fn.Closure)
		for i, param := range fn.Decl.Params {
			callEnv.Define(param, args[i])
		}
		result, err := ev.execBlock(fn.Decl.Body, callEnv)
		if err != nil {
			return nil, err
		}
		if result.signal == signalReturn {
			return result.value, nil
		}
		return Undefined, nil

	case *NativeFunction:
		v, hostErr := fn.Handler(ev, args)
		if hostErr != nil {
			return nil, ev.runtimeError(e, hostErr.Error())
		}
		return v, nil
	}

	return nil, ev.runtimeError(e, "not callable")
}
