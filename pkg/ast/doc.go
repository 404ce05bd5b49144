// Package ast's two node families — Expression and Statement — are kept
// disjoint: an Expression always produces a value, a Statement never does.
// The operator carried by Binary/Logical/Unary is a token.Kind rather than
// a full token.Token, since evaluation and error messages only ever need
// to discriminate on the operator's kind.
package ast
