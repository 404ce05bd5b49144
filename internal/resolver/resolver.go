// Package resolver implements Glitter's static scope-resolution pass: a
// single AST walk that annotates every Variable and Assignment node with
// the lexical distance the evaluator must ascend to find its binding, so
// the evaluator never performs a scope-chain search at runtime.
package resolver

import (
	coreerrors "github.com/glitterlang/glitter/internal/errors"
	"github.com/glitterlang/glitter/pkg/ast"
)

// bindingState tracks a name's progress through a scope: Declared means
// the name exists but its initializer has not finished resolving yet,
// Defined means it is fully available to references.
type bindingState int

const (
	declared bindingState = iota
	defined
)

// Resolver walks an already-parsed AST once, maintaining a stack of scopes
// with the outermost (index 0) standing in for the session's global
// environment. It never evaluates anything; its only effects are mutating
// ScopeDistance fields in place and accumulating ResolverError diagnostics.
type Resolver struct {
	path          string
	scopes        []map[string]bindingState
	functionDepth int
	errs          coreerrors.List
}

// New creates a Resolver with its implicit global scope already pushed.
func New(path string) *Resolver {
	return &Resolver{path: path, scopes: []map[string]bindingState{make(map[string]bindingState)}}
}

// Errors returns every ResolverError accumulated during Resolve.
func (r *Resolver) Errors() coreerrors.List { return r.errs }

// Resolve walks stmts in order, annotating scope distances in place.
func (r *Resolver) Resolve(stmts []ast.Statement) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) errorAt(node ast.Node, message string) {
	pos := node.Pos()
	length := pos.Length
	if length == 0 {
		length = 1
	}
	r.errs = append(r.errs, coreerrors.New(coreerrors.ResolverError, message, r.path, pos.Offset, length, pos.Line))
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bindingState))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare introduces name into the current (innermost) scope as Declared.
// Redeclaring a name already present in the current scope is only an
// error outside the global scope, per the language's permissive top-level
// redeclaration rule.
func (r *Resolver) declare(name string, node ast.Node) {
	top := r.scopes[len(r.scopes)-1]
	isGlobalScope := len(r.scopes) == 1
	if !isGlobalScope {
		if _, exists := top[name]; exists {
			r.errorAt(node, "'"+name+"' is already declared in this scope")
		}
	}
	top[name] = declared
}

func (r *Resolver) define(name string) {
	r.scopes[len(r.scopes)-1][name] = defined
}

// resolveLocal computes the ScopeDistance for name: the number of scopes
// to ascend past the innermost to reach the one that declared it, or
// ast.GlobalScope when the name belongs to (or was never found before
// reaching) the global scope.
func (r *Resolver) resolveLocal(name string) int {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			if i == 0 {
				return ast.GlobalScope
			}
			return (len(r.scopes) - 1) - i
		}
	}
	return ast.GlobalScope
}

func (r *Resolver) resolveStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		r.declare(s.Name, s)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.FunctionDecl:
		r.declare(s.Name, s)
		r.define(s.Name) // defined before the body resolves, so it may recurse
		r.resolveFunction(s)
	case *ast.Block:
		r.beginScope()
		r.Resolve(s.Stmts)
		r.endScope()
	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.While:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	case *ast.Print:
		r.resolveExpr(s.Expr)
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)
	case *ast.Return:
		if r.functionDepth == 0 {
			r.errorAt(s, "cannot return from outside a function")
		}
		if s.Expr != nil {
			r.resolveExpr(s.Expr)
		}
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionDecl) {
	r.functionDepth++
	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param, fn)
		r.define(param)
	}
	r.Resolve(fn.Body)
	r.endScope()
	r.functionDepth--
}

func (r *Resolver) resolveExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Literal:
		// nothing to resolve
	case *ast.Variable:
		top := r.scopes[len(r.scopes)-1]
		if state, ok := top[e.Name]; ok && state == declared {
			r.errorAt(e, "cannot reference '"+e.Name+"' in its own initializer")
		}
		e.ScopeDistance = r.resolveLocal(e.Name)
	case *ast.Assignment:
		r.resolveExpr(e.Value)
		e.ScopeDistance = r.resolveLocal(e.Name)
	case *ast.Grouping:
		r.resolveExpr(e.Expr)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}
	}
}
