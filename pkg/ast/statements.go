package ast

import "github.com/glitterlang/glitter/pkg/token"

// ExpressionStmt evaluates Expr and discards the result; used for calls
// made for their side effects and bare assignments.
type ExpressionStmt struct {
	Expr     Expression
	Position token.Position
}

func (*ExpressionStmt) stmtNode()          {}
func (s *ExpressionStmt) Pos() token.Position { return s.Position }

// Print evaluates Expr, formats it, and appends it (with a trailing
// newline) to the session's output sink.
type Print struct {
	Expr     Expression
	Position token.Position
}

func (*Print) stmtNode()          {}
func (p *Print) Pos() token.Position { return p.Position }

// VarDecl declares a new binding in the current environment. Initializer
// is nil when the declaration has no "= expr" clause, in which case the
// binding is initialized to Undefined.
type VarDecl struct {
	Name        string
	Initializer Expression
	Position    token.Position
}

func (*VarDecl) stmtNode()          {}
func (v *VarDecl) Pos() token.Position { return v.Position }

// FunctionDecl declares a named function. Params is a unique, ordered list
// of parameter identifier names.
type FunctionDecl struct {
	Name     string
	Params   []string
	Body     []Statement
	Position token.Position
}

func (*FunctionDecl) stmtNode()          {}
func (f *FunctionDecl) Pos() token.Position { return f.Position }

// Block is a brace-delimited sequence of statements executed in a freshly
// created child environment.
type Block struct {
	Stmts    []Statement
	Position token.Position
}

func (*Block) stmtNode()          {}
func (b *Block) Pos() token.Position { return b.Position }

// If executes Then when Cond is truthy, otherwise Else (which is nil when
// the statement has no "else" clause).
type If struct {
	Cond     Expression
	Then     Statement
	Else     Statement
	Position token.Position
}

func (*If) stmtNode()          {}
func (i *If) Pos() token.Position { return i.Position }

// While repeatedly executes Body while Cond evaluates truthy.
type While struct {
	Cond     Expression
	Body     Statement
	Position token.Position
}

func (*While) stmtNode()          {}
func (w *While) Pos() token.Position { return w.Position }

// Return unwinds to the innermost enclosing function call, producing
// Expr's value as the call's result. Expr is nil for a bare "return;",
// which produces Undefined.
type Return struct {
	Expr     Expression
	Position token.Position
}

func (*Return) stmtNode()          {}
func (r *Return) Pos() token.Position { return r.Position }
