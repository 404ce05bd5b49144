// Package parser implements Glitter's recursive-descent parser: a Pratt
// parser for expressions (one-token lookahead, precedence climbing) over a
// classic recursive-descent statement grammar, in the teacher's manner.
package parser

import (
	"fmt"

	coreerrors "github.com/glitterlang/glitter/internal/errors"
	"github.com/glitterlang/glitter/internal/lexer"
	"github.com/glitterlang/glitter/pkg/ast"
	"github.com/glitterlang/glitter/pkg/token"
)

// maxArgs bounds both function-declaration parameter lists and call
// argument lists, per the grammar's "(max 32)" annotations.
const maxArgs = 32

// Precedence levels, lowest to highest, mirroring the grammar's
// assignment < or < and < equality < comparison < addition <
// multiplication < unary < call < primary chain.
const (
	_ int = iota
	precLowest
	precAssignment
	precOr
	precAnd
	precEquality
	precComparison
	precAddition
	precMultiplication
	precUnary
	precCall
)

var precedences = map[token.Kind]int{
	token.Equal:        precAssignment,
	token.Or:           precOr,
	token.And:          precAnd,
	token.EqualEqual:   precEquality,
	token.BangEqual:    precEquality,
	token.Less:         precComparison,
	token.LessEqual:    precComparison,
	token.Greater:      precComparison,
	token.GreaterEqual: precComparison,
	token.Plus:         precAddition,
	token.Minus:        precAddition,
	token.Star:         precMultiplication,
	token.Slash:        precMultiplication,
	token.LeftParen:    precCall,
}

// parseSignal is panicked by fail to unwind to the nearest declaration
// boundary, where declaration recovers and synchronizes. It carries no
// data — the error itself was already recorded on the Parser.
type parseSignal struct{}

// Parser consumes a lexer.Scanner's token stream and produces an ordered
// list of top-level statements, accumulating ParseError diagnostics rather
// than stopping at the first one.
type Parser struct {
	scanner *lexer.Scanner
	path    string
	prev    token.Token
	cur     token.Token
	next    token.Token
	errs    coreerrors.List
}

// New creates a Parser over s, attributing diagnostics to path.
func New(s *lexer.Scanner, path string) *Parser {
	p := &Parser{scanner: s, path: path}
	p.cur = p.scanner.Next()
	p.next = p.scanner.Next()
	return p
}

// Errors returns every ParseError accumulated while parsing. Scanner
// errors are not included: callers merge these with the Scanner's own
// Errors() list.
func (p *Parser) Errors() coreerrors.List { return p.errs }

// ParseProgram parses the whole token stream to EOF, returning every
// top-level statement it could recover. A non-empty Errors() means the
// caller must not hand the result to the evaluator (spec: static errors
// gate evaluation).
func (p *Parser) ParseProgram() []ast.Statement {
	var stmts []ast.Statement
	for !p.check(token.EOF) {
		if stmt, ok := p.declaration(); ok && stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// --- token plumbing ---

func (p *Parser) advance() token.Token {
	p.prev = p.cur
	p.cur = p.next
	p.next = p.scanner.Next()
	return p.prev
}

func (p *Parser) check(kind token.Kind) bool { return p.cur.Kind == kind }

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind token.Kind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.fail(p.cur, message)
	return token.Token{}
}

func (p *Parser) errorAt(tok token.Token, message string) {
	length := tok.Pos.Length
	if length == 0 {
		length = 1
	}
	p.errs = append(p.errs, coreerrors.New(coreerrors.ParseError, message, p.path, tok.Pos.Offset, length, tok.Pos.Line))
}

func (p *Parser) fail(tok token.Token, message string) {
	p.errorAt(tok, message)
	panic(parseSignal{})
}

// declarationStarters is the synchronization set from the grammar's error
// recovery rule: tokens that begin a new declaration or statement.
var declarationStarters = map[token.Kind]bool{
	token.Class:    true,
	token.Function: true,
	token.Var:      true,
	token.Let:      true,
	token.For:      true,
	token.If:       true,
	token.While:    true,
	token.Print:    true,
	token.Return:   true,
}

// synchronize discards tokens until the previous token was ';' or the
// current token starts a declaration/statement.
func (p *Parser) synchronize() {
	for !p.check(token.EOF) {
		if p.prev.Kind == token.Semicolon {
			return
		}
		if declarationStarters[p.cur.Kind] {
			return
		}
		p.advance()
	}
}

// declaration parses one top-level or block-level declaration, recovering
// from a panicked parse error by synchronizing and reporting no statement
// for this iteration.
func (p *Parser) declaration() (stmt ast.Statement, ok bool) {
	start := p.cur
	defer func() {
		if r := recover(); r != nil {
			if _, isParseSignal := r.(parseSignal); isParseSignal {
				// A declaration that failed on its very first token skips
				// that token, so recovery always makes progress.
				if p.cur == start && !p.check(token.EOF) {
					p.advance()
				}
				p.synchronize()
				stmt, ok = nil, false
				return
			}
			panic(r)
		}
	}()

	if p.match(token.Var) || p.match(token.Let) {
		return p.varDecl(), true
	}
	if p.match(token.Function) {
		return p.functionDecl(), true
	}
	return p.statement(), true
}

func (p *Parser) varDecl() ast.Statement {
	pos := p.prev.Pos
	nameTok := p.expect(token.Identifier, "expected variable name")
	var initializer ast.Expression
	if p.match(token.Equal) {
		initializer = p.expression()
	}
	p.expect(token.Semicolon, "expected ';' after variable declaration")
	return &ast.VarDecl{Name: nameTok.TextValue(), Initializer: initializer, Position: pos}
}

func (p *Parser) functionDecl() ast.Statement {
	pos := p.prev.Pos
	nameTok := p.expect(token.Identifier, "expected function name")
	p.expect(token.LeftParen, "expected '(' after function name")
	var params []string
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.cur, fmt.Sprintf("cannot have more than %d parameters", maxArgs))
			}
			paramTok := p.expect(token.Identifier, "expected parameter name")
			params = append(params, paramTok.TextValue())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RightParen, "expected ')' after parameters")
	p.expect(token.LeftBrace, "expected '{' before function body")
	body := p.block()
	return &ast.FunctionDecl{Name: nameTok.TextValue(), Params: params, Body: body, Position: pos}
}

// block parses declaration* up to (and consuming) the closing '}'. The
// caller is expected to have already consumed the opening '{'.
func (p *Parser) block() []ast.Statement {
	var stmts []ast.Statement
	for !p.check(token.RightBrace) && !p.check(token.EOF) {
		if stmt, ok := p.declaration(); ok && stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.expect(token.RightBrace, "expected '}' after block")
	return stmts
}

func (p *Parser) statement() ast.Statement {
	switch {
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.LeftBrace):
		pos := p.prev.Pos
		return &ast.Block{Stmts: p.block(), Position: pos}
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) ifStatement() ast.Statement {
	pos := p.prev.Pos
	p.expect(token.LeftParen, "expected '(' after 'if'")
	cond := p.expression()
	p.expect(token.RightParen, "expected ')' after if condition")
	then := p.statement()
	var elseBranch ast.Statement
	if p.match(token.Else) {
		elseBranch = p.statement()
	}
	return &ast.If{Cond: cond, Then: then, Else: elseBranch, Position: pos}
}

func (p *Parser) whileStatement() ast.Statement {
	pos := p.prev.Pos
	p.expect(token.LeftParen, "expected '(' after 'while'")
	cond := p.expression()
	p.expect(token.RightParen, "expected ')' after while condition")
	body := p.statement()
	return &ast.While{Cond: cond, Body: body, Position: pos}
}

// forStatement desugars "for (init; cond; inc) body" into
// "{ init; while (cond) { body; inc; } }" at parse time, per the grammar's
// desugaring rule. An omitted cond becomes the literal true; an omitted
// init or inc simply vanishes from the lowered tree.
func (p *Parser) forStatement() ast.Statement {
	pos := p.prev.Pos
	p.expect(token.LeftParen, "expected '(' after 'for'")

	var init ast.Statement
	switch {
	case p.match(token.Semicolon):
		init = nil
	case p.check(token.Var) || p.check(token.Let):
		p.advance()
		init = p.varDecl()
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expression
	if !p.check(token.Semicolon) {
		cond = p.expression()
	} else {
		cond = &ast.Literal{Value: true, Position: p.cur.Pos}
	}
	p.expect(token.Semicolon, "expected ';' after loop condition")

	var increment ast.Expression
	if !p.check(token.RightParen) {
		increment = p.expression()
	}
	p.expect(token.RightParen, "expected ')' after for clauses")

	body := p.statement()

	if increment != nil {
		body = &ast.Block{Stmts: []ast.Statement{body, &ast.ExpressionStmt{Expr: increment, Position: increment.Pos()}}, Position: pos}
	}
	body = &ast.While{Cond: cond, Body: body, Position: pos}
	if init != nil {
		body = &ast.Block{Stmts: []ast.Statement{init, body}, Position: pos}
	}
	return body
}

func (p *Parser) returnStatement() ast.Statement {
	pos := p.prev.Pos
	var value ast.Expression
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.expect(token.Semicolon, "expected ';' after return value")
	return &ast.Return{Expr: value, Position: pos}
}

func (p *Parser) printStatement() ast.Statement {
	pos := p.prev.Pos
	value := p.expression()
	p.expect(token.Semicolon, "expected ';' after value")
	return &ast.Print{Expr: value, Position: pos}
}

func (p *Parser) expressionStatement() ast.Statement {
	expr := p.expression()
	p.expect(token.Semicolon, "expected ';' after expression")
	return &ast.ExpressionStmt{Expr: expr, Position: expr.Pos()}
}

// --- expressions (Pratt parsing) ---

func (p *Parser) expression() ast.Expression {
	return p.parsePrecedence(precLowest)
}

// parsePrecedence implements precedence climbing: it parses one prefix
// expression, then repeatedly folds in infix operators whose precedence
// is above minPrec. Assignment is handled specially since it is
// right-associative and requires its left operand to already be a
// Variable node.
func (p *Parser) parsePrecedence(minPrec int) ast.Expression {
	left := p.unary()

	for {
		prec, ok := precedences[p.cur.Kind]
		if !ok || prec <= minPrec {
			break
		}

		switch p.cur.Kind {
		case token.Equal:
			eqTok := p.advance()
			value := p.parsePrecedence(precAssignment - 1) // right-associative
			if v, isVar := left.(*ast.Variable); isVar {
				left = &ast.Assignment{Name: v.Name, Value: value, ScopeDistance: ast.UnresolvedScope, Position: v.Position}
			} else {
				p.errorAt(eqTok, "Invalid assignment target")
			}
		case token.Or, token.And:
			op := p.advance()
			right := p.parsePrecedence(prec)
			left = &ast.Logical{Left: left, Op: op.Kind, Right: right, Position: op.Pos}
		case token.LeftParen:
			p.advance()
			left = p.finishCall(left)
		default:
			op := p.advance()
			right := p.parsePrecedence(prec)
			left = &ast.Binary{Left: left, Op: op.Kind, Right: right, Position: op.Pos}
		}
	}

	return left
}

func (p *Parser) unary() ast.Expression {
	if p.match(token.Bang, token.Minus) {
		op := p.prev
		right := p.unary()
		return &ast.Unary{Op: op.Kind, Right: right, Position: op.Pos}
	}
	return p.call()
}

// call parses primary() followed by zero or more "(args)" suffixes,
// matching the grammar's call -> primary ("(" args? ")")* production, so
// chained calls like f()() are consumed by this loop. parsePrecedence also
// lists LeftParen as an infix operator and shares finishCall with it.
func (p *Parser) call() ast.Expression {
	expr := p.primary()
	for p.match(token.LeftParen) {
		expr = p.finishCall(expr)
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	pos := p.prev.Pos
	var args []ast.Expression
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.cur, fmt.Sprintf("cannot have more than %d arguments", maxArgs))
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RightParen, "expected ')' after arguments")
	return &ast.Call{Callee: callee, Args: args, Position: pos}
}

func (p *Parser) primary() ast.Expression {
	switch {
	case p.match(token.Number):
		tok := p.prev
		return &ast.Literal{Value: tok.NumberValue(), Position: tok.Pos}
	case p.match(token.String):
		tok := p.prev
		return &ast.Literal{Value: tok.TextValue(), Position: tok.Pos}
	case p.match(token.True):
		return &ast.Literal{Value: true, Position: p.prev.Pos}
	case p.match(token.False):
		return &ast.Literal{Value: false, Position: p.prev.Pos}
	case p.match(token.Undefined):
		return &ast.Literal{Value: nil, Position: p.prev.Pos}
	case p.match(token.LeftParen):
		pos := p.prev.Pos
		expr := p.expression()
		p.expect(token.RightParen, "expected ')' after expression")
		return &ast.Grouping{Expr: expr, Position: pos}
	case p.match(token.Identifier):
		tok := p.prev
		return &ast.Variable{Name: tok.TextValue(), ScopeDistance: ast.UnresolvedScope, Position: tok.Pos}
	default:
		p.fail(p.cur, "expected expression")
		return nil
	}
}
