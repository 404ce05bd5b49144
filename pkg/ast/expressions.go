package ast

import "github.com/glitterlang/glitter/pkg/token"

// Literal is a constant value baked directly into the source: a number,
// string, boolean, or undefined. Value holds the decoded Go representation
// (float64, string, bool, or nil for undefined) — the evaluator wraps it
// into a runtime Value.
type Literal struct {
	Value    any
	Position token.Position
}

func (*Literal) exprNode()           {}
func (l *Literal) Pos() token.Position { return l.Position }

// Variable is a reference to a named binding. ScopeDistance is annotated
// by the resolver: a non-negative count of lexical frames to ascend, or
// GlobalScope to look the name up in the root environment.
type Variable struct {
	Name          string
	ScopeDistance int
	Position      token.Position
}

func (*Variable) exprNode()           {}
func (v *Variable) Pos() token.Position { return v.Position }

// Grouping is a parenthesized expression, kept as its own node so printers
// and tools can distinguish "(a + b)" from "a + b" even though evaluation
// is identical.
type Grouping struct {
	Expr     Expression
	Position token.Position
}

func (*Grouping) exprNode()           {}
func (g *Grouping) Pos() token.Position { return g.Position }

// Unary is a prefix operator applied to a single operand: "-x" or "!x".
// Op is the operator's token kind (token.Minus or token.Bang), not the
// token itself — evaluation only needs to discriminate on the kind.
type Unary struct {
	Op       token.Kind
	Right    Expression
	Position token.Position
}

func (*Unary) exprNode()           {}
func (u *Unary) Pos() token.Position { return u.Position }

// Binary is an infix arithmetic, comparison, or equality operator. Op is
// never token.And or token.Or — those are represented by Logical so the
// evaluator can special-case short-circuiting without inspecting Op.
type Binary struct {
	Left     Expression
	Op       token.Kind
	Right    Expression
	Position token.Position
}

func (*Binary) exprNode()           {}
func (b *Binary) Pos() token.Position { return b.Position }

// Logical is "and"/"or", kept distinct from Binary because its evaluation
// short-circuits and returns the unevaluated-to-bool left operand verbatim
// when that operand already decides the result.
type Logical struct {
	Left     Expression
	Op       token.Kind
	Right    Expression
	Position token.Position
}

func (*Logical) exprNode()           {}
func (l *Logical) Pos() token.Position { return l.Position }

// Assignment rebinds an existing variable: "name = value". ScopeDistance
// is annotated by the resolver exactly as for Variable.
type Assignment struct {
	Name          string
	Value         Expression
	ScopeDistance int
	Position      token.Position
}

func (*Assignment) exprNode()           {}
func (a *Assignment) Pos() token.Position { return a.Position }

// Call invokes Callee with Args, evaluated left-to-right before the call
// is made.
type Call struct {
	Callee   Expression
	Args     []Expression
	Position token.Position
}

func (*Call) exprNode()           {}
func (c *Call) Pos() token.Position { return c.Position }
