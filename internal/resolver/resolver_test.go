package resolver

import (
	"testing"

	"github.com/glitterlang/glitter/internal/lexer"
	"github.com/glitterlang/glitter/internal/parser"
	"github.com/glitterlang/glitter/pkg/ast"
)

func resolveSource(t *testing.T, src string) ([]ast.Statement, *Resolver) {
	t.Helper()
	s := lexer.New(src, "test")
	p := parser.New(s, "test")
	stmts := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	r := New("test")
	r.Resolve(stmts)
	return stmts, r
}

func findVariable(stmts []ast.Statement) *ast.Variable {
	var found *ast.Variable
	var walkExpr func(ast.Expression)
	var walkStmt func(ast.Statement)
	walkExpr = func(e ast.Expression) {
		if e == nil || found != nil {
			return
		}
		switch ex := e.(type) {
		case *ast.Variable:
			found = ex
		case *ast.Assignment:
			walkExpr(ex.Value)
		case *ast.Grouping:
			walkExpr(ex.Expr)
		case *ast.Unary:
			walkExpr(ex.Right)
		case *ast.Binary:
			walkExpr(ex.Left)
			walkExpr(ex.Right)
		case *ast.Logical:
			walkExpr(ex.Left)
			walkExpr(ex.Right)
		case *ast.Call:
			walkExpr(ex.Callee)
			for _, a := range ex.Args {
				walkExpr(a)
			}
		}
	}
	walkStmt = func(s ast.Statement) {
		if found != nil {
			return
		}
		switch st := s.(type) {
		case *ast.ExpressionStmt:
			walkExpr(st.Expr)
		case *ast.Print:
			walkExpr(st.Expr)
		case *ast.VarDecl:
			walkExpr(st.Initializer)
		case *ast.Block:
			for _, s2 := range st.Stmts {
				walkStmt(s2)
			}
		case *ast.If:
			walkExpr(st.Cond)
			walkStmt(st.Then)
			if st.Else != nil {
				walkStmt(st.Else)
			}
		case *ast.While:
			walkExpr(st.Cond)
			walkStmt(st.Body)
		case *ast.FunctionDecl:
			for _, s2 := range st.Body {
				walkStmt(s2)
			}
		case *ast.Return:
			walkExpr(st.Expr)
		}
	}
	for _, s := range stmts {
		walkStmt(s)
	}
	return found
}

func TestGlobalVariableResolvesToGlobalScope(t *testing.T) {
	stmts, r := resolveSource(t, `var x = 1; print x;`)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected resolver errors: %v", r.Errors())
	}
	v := findVariable(stmts)
	if v == nil {
		t.Fatal("expected to find a Variable node")
	}
	if v.ScopeDistance != ast.GlobalScope {
		t.Errorf("ScopeDistance = %d, want %d (global)", v.ScopeDistance, ast.GlobalScope)
	}
}

func TestLocalVariableResolvesToZeroDistance(t *testing.T) {
	stmts, r := resolveSource(t, `{ var x = 1; print x; }`)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected resolver errors: %v", r.Errors())
	}
	v := findVariable(stmts)
	if v == nil || v.ScopeDistance != 0 {
		t.Fatalf("ScopeDistance = %v, want 0", v)
	}
}

func TestNestedBlockVariableResolvesToOuterDistance(t *testing.T) {
	stmts, r := resolveSource(t, `{ var x = 1; { print x; } }`)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected resolver errors: %v", r.Errors())
	}
	v := findVariable(stmts)
	if v == nil || v.ScopeDistance != 1 {
		t.Fatalf("ScopeDistance = %v, want 1", v)
	}
}

func TestFunctionParameterShadowsOuterVariable(t *testing.T) {
	stmts, r := resolveSource(t, `var x = 1; function f(x) { print x; }`)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected resolver errors: %v", r.Errors())
	}
	v := findVariable(stmts)
	if v == nil || v.ScopeDistance != 0 {
		t.Fatalf("ScopeDistance = %v, want 0 (the parameter, not the global)", v)
	}
}

func TestSelfReferenceInInitializerIsAnError(t *testing.T) {
	_, r := resolveSource(t, `{ var x = x; }`)
	if len(r.Errors()) != 1 {
		t.Fatalf("expected 1 resolver error, got %d: %v", len(r.Errors()), r.Errors())
	}
}

func TestGlobalSelfReferenceInInitializerIsAlsoAnError(t *testing.T) {
	_, r := resolveSource(t, `var x = x;`)
	if len(r.Errors()) != 1 {
		t.Fatalf("expected 1 resolver error, got %d: %v", len(r.Errors()), r.Errors())
	}
}

func TestDuplicateDeclarationInLocalScopeIsAnError(t *testing.T) {
	_, r := resolveSource(t, `{ var x = 1; var x = 2; }`)
	if len(r.Errors()) != 1 {
		t.Fatalf("expected 1 resolver error, got %d: %v", len(r.Errors()), r.Errors())
	}
}

func TestDuplicateDeclarationInGlobalScopeIsPermitted(t *testing.T) {
	_, r := resolveSource(t, `var x = 1; var x = 2;`)
	if len(r.Errors()) != 0 {
		t.Fatalf("expected no resolver errors, got: %v", r.Errors())
	}
}

func TestFunctionCanRecurseInItsOwnBody(t *testing.T) {
	_, r := resolveSource(t, `function fact(n) { if (n < 2) { return 1; } return n * fact(n - 1); }`)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected resolver errors: %v", r.Errors())
	}
}

func TestReturnOutsideFunctionIsAnError(t *testing.T) {
	_, r := resolveSource(t, `return 1;`)
	if len(r.Errors()) != 1 {
		t.Fatalf("expected 1 resolver error, got %d: %v", len(r.Errors()), r.Errors())
	}
}

func TestReturnInsideNestedBlockOfFunctionIsFine(t *testing.T) {
	_, r := resolveSource(t, `function f() { { return 1; } }`)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected resolver errors: %v", r.Errors())
	}
}

func TestForLoopInducesItsOwnScope(t *testing.T) {
	// The parser desugars for-loops into a Block wrapping the init and a
	// While, so the loop variable must resolve as local, not global.
	stmts, r := resolveSource(t, `for (var i = 0; i < 3; i = i + 1) { print i; }`)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected resolver errors: %v", r.Errors())
	}
	v := findVariable(stmts)
	if v == nil {
		t.Fatal("expected to find a Variable node")
	}
	if v.ScopeDistance == ast.GlobalScope {
		t.Errorf("loop variable should not resolve to global scope")
	}
}

func TestResolverIsIdempotent(t *testing.T) {
	s := lexer.New(`var x = 1; { var y = x; function f() { return y; } }`, "test")
	p := parser.New(s, "test")
	stmts := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}

	New("test").Resolve(stmts)
	first := findVariable(stmts).ScopeDistance

	New("test").Resolve(stmts)
	second := findVariable(stmts).ScopeDistance

	if first != second {
		t.Errorf("resolving twice gave different distances: %d != %d", first, second)
	}
}

func TestClosureCapturesEnclosingFunctionLocal(t *testing.T) {
	stmts, r := resolveSource(t, `
function makeCounter() {
	var count = 0;
	function increment() {
		count = count + 1;
		return count;
	}
	return increment;
}
`)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected resolver errors: %v", r.Errors())
	}
	v := findVariable(stmts)
	if v == nil {
		t.Fatal("expected to find a Variable node")
	}
	if v.ScopeDistance != 1 {
		t.Errorf("ScopeDistance = %d, want 1 (count is one function scope up from increment's body)", v.ScopeDistance)
	}
}
