// Package ast defines the Abstract Syntax Tree node types produced by the
// Glitter parser and consumed by the resolver and evaluator.
package ast

import "github.com/glitterlang/glitter/pkg/token"

// Node is the base interface for every AST node: expressions and
// statements alike.
type Node interface {
	// Pos returns the position of the token the node is anchored to, for
	// error reporting.
	Pos() token.Position
}

// Expression is any node that produces a Value when evaluated.
type Expression interface {
	Node
	exprNode()
}

// Statement is any node that is executed for its side effects.
type Statement interface {
	Node
	stmtNode()
}

// GlobalScope is the sentinel ScopeDistance the resolver assigns to a
// Variable or Assignment whose name was not found in any enclosing local
// scope: the evaluator looks it up in the root environment by name.
const GlobalScope = -1

// UnresolvedScope is the placeholder ScopeDistance the parser assigns
// before the resolver has visited a node. It never appears in a resolved
// tree.
const UnresolvedScope = -2
