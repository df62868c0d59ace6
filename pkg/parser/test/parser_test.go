package parser_test

import (
	"testing"

	"murmur/pkg/parser"
	"murmur/pkg/syntax"
)

func mustParse(t *testing.T, src string) *syntax.Tree {
	t.Helper()

	tree, errs := parser.ParseSource(src)
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	return tree
}

// onlyExpr parses a single expression statement and returns its expression.
func onlyExpr(t *testing.T, src string) syntax.Node {
	t.Helper()

	root := mustParse(t, src).Root()
	if root.NumStatements() != 1 {
		t.Fatalf("expected 1 statement, got %d", root.NumStatements())
	}

	stmt := root.Statement(0)
	if stmt.Type() != syntax.ExprStmt {
		t.Fatalf("expected %s, got %s", syntax.ExprStmt, stmt.Type())
	}

	return stmt.Subexpr()
}

func wantType(t *testing.T, n syntax.Node, expected syntax.NodeType) {
	t.Helper()

	if n.Type() != expected {
		t.Fatalf("expected %s, got %s", expected, n.Type())
	}
}

func wantIntegerNode(t *testing.T, n syntax.Node, expected int64) {
	t.Helper()

	wantType(t, n, syntax.IntegerExpr)
	if n.Value() != expected {
		t.Errorf("expected %d, got %d", expected, n.Value())
	}
}

func TestParseIntegerStatement(t *testing.T) {
	expr := onlyExpr(t, "42;")
	wantIntegerNode(t, expr, 42)
}

func TestParseEmptyFile(t *testing.T) {
	root := mustParse(t, "").Root()
	wantType(t, root, syntax.File)
	if root.NumStatements() != 0 {
		t.Errorf("expected 0 statements, got %d", root.NumStatements())
	}
}

func TestParseEmptyStatements(t *testing.T) {
	root := mustParse(t, ";;").Root()
	if root.NumStatements() != 2 {
		t.Fatalf("expected 2 statements, got %d", root.NumStatements())
	}

	for i := uint32(0); i < 2; i++ {
		wantType(t, root.Statement(i), syntax.EmptyStmt)
	}
}

func TestParsePrecedence(t *testing.T) {
	// multiplication binds tighter than addition
	expr := onlyExpr(t, "1 + 2 * 3;")
	wantType(t, expr, syntax.AddExpr)
	wantIntegerNode(t, expr.Lhs(), 1)

	rhs := expr.Rhs()
	wantType(t, rhs, syntax.MulExpr)
	wantIntegerNode(t, rhs.Lhs(), 2)
	wantIntegerNode(t, rhs.Rhs(), 3)

	expr = onlyExpr(t, "2 * 3 + 1;")
	wantType(t, expr, syntax.AddExpr)
	wantType(t, expr.Lhs(), syntax.MulExpr)
	wantIntegerNode(t, expr.Rhs(), 1)
}

func TestParseLeftAssociativity(t *testing.T) {
	expr := onlyExpr(t, "8 - 4 - 2;")
	wantType(t, expr, syntax.SubExpr)
	wantIntegerNode(t, expr.Rhs(), 2)

	lhs := expr.Lhs()
	wantType(t, lhs, syntax.SubExpr)
	wantIntegerNode(t, lhs.Lhs(), 8)
	wantIntegerNode(t, lhs.Rhs(), 4)
}

func TestParseParenGrouping(t *testing.T) {
	expr := onlyExpr(t, "(1 + 2) * 3;")
	wantType(t, expr, syntax.MulExpr)
	wantIntegerNode(t, expr.Rhs(), 3)

	lhs := expr.Lhs()
	wantType(t, lhs, syntax.ParenExpr)
	wantType(t, lhs.Subexpr(), syntax.AddExpr)
}

func TestParseUnary(t *testing.T) {
	expr := onlyExpr(t, "-5;")
	wantType(t, expr, syntax.NegExpr)
	wantIntegerNode(t, expr.Subexpr(), 5)

	expr = onlyExpr(t, "+5;")
	wantType(t, expr, syntax.PosExpr)
	wantIntegerNode(t, expr.Subexpr(), 5)

	// unary operators nest
	expr = onlyExpr(t, "--5;")
	wantType(t, expr, syntax.NegExpr)
	wantType(t, expr.Subexpr(), syntax.NegExpr)
	wantIntegerNode(t, expr.Subexpr().Subexpr(), 5)
}

func TestParseCall(t *testing.T) {
	expr := onlyExpr(t, "f(1, 2, 3);")
	wantType(t, expr, syntax.CallExpr)
	if expr.NumArgs() != 3 {
		t.Fatalf("expected 3 arguments, got %d", expr.NumArgs())
	}

	callee := expr.Callee()
	wantType(t, callee, syntax.NameExpr)
	if callee.Name() != "f" {
		t.Errorf("expected callee f, got %s", callee.Name())
	}

	for i, want := range []int64{1, 2, 3} {
		wantIntegerNode(t, expr.Arg(uint32(i)), want)
	}
}

func TestParseZeroArgCall(t *testing.T) {
	expr := onlyExpr(t, "f();")
	wantType(t, expr, syntax.CallExpr)
	if expr.NumArgs() != 0 {
		t.Errorf("expected 0 arguments, got %d", expr.NumArgs())
	}
}

func TestParseNestedCall(t *testing.T) {
	expr := onlyExpr(t, "f(g(7));")
	wantType(t, expr, syntax.CallExpr)

	inner := expr.Arg(0)
	wantType(t, inner, syntax.CallExpr)
	if inner.Callee().Name() != "g" {
		t.Errorf("expected callee g, got %s", inner.Callee().Name())
	}
	wantIntegerNode(t, inner.Arg(0), 7)
}

func TestParsePostfixChain(t *testing.T) {
	// postfix operators apply left to right: ((a.b)->c)(1).d
	expr := onlyExpr(t, "a.b->c(1).d;")
	wantType(t, expr, syntax.DotExpr)
	if expr.Name() != "d" {
		t.Fatalf("expected name d, got %s", expr.Name())
	}

	call := expr.Target()
	wantType(t, call, syntax.CallExpr)
	if call.NumArgs() != 1 {
		t.Fatalf("expected 1 argument, got %d", call.NumArgs())
	}
	wantIntegerNode(t, call.Arg(0), 1)

	arrow := call.Callee()
	wantType(t, arrow, syntax.ArrowExpr)
	if arrow.Name() != "c" {
		t.Fatalf("expected name c, got %s", arrow.Name())
	}

	dot := arrow.Target()
	wantType(t, dot, syntax.DotExpr)
	if dot.Name() != "b" {
		t.Fatalf("expected name b, got %s", dot.Name())
	}

	base := dot.Target()
	wantType(t, base, syntax.NameExpr)
	if base.Name() != "a" {
		t.Errorf("expected name a, got %s", base.Name())
	}
}

func TestParseIf(t *testing.T) {
	src := "if (1) { 2; } elsif (3) { 4; } elsif (5) { 6; } else { 7; }"
	root := mustParse(t, src).Root()

	stmt := root.Statement(0)
	wantType(t, stmt, syntax.IfStmt)
	if stmt.NumElsifs() != 2 {
		t.Fatalf("expected 2 elsifs, got %d", stmt.NumElsifs())
	}
	if !stmt.HasElse() {
		t.Fatal("expected an else block")
	}

	wantIntegerNode(t, stmt.IfCond(), 1)
	wantType(t, stmt.IfBlock(), syntax.Block)
	wantIntegerNode(t, stmt.IfBlock().Statement(0).Subexpr(), 2)

	wantIntegerNode(t, stmt.ElsifCond(0), 3)
	wantIntegerNode(t, stmt.ElsifBlock(0).Statement(0).Subexpr(), 4)
	wantIntegerNode(t, stmt.ElsifCond(1), 5)
	wantIntegerNode(t, stmt.ElsifBlock(1).Statement(0).Subexpr(), 6)

	wantIntegerNode(t, stmt.ElseBlock().Statement(0).Subexpr(), 7)
}

func TestParseIfWithoutElse(t *testing.T) {
	root := mustParse(t, "if (1) { 2; }").Root()

	stmt := root.Statement(0)
	wantType(t, stmt, syntax.IfStmt)
	if stmt.NumElsifs() != 0 {
		t.Errorf("expected 0 elsifs, got %d", stmt.NumElsifs())
	}
	if stmt.HasElse() {
		t.Error("expected no else block")
	}
}

func TestParseDef(t *testing.T) {
	root := mustParse(t, "def add(a, b) { return a + b; }").Root()

	stmt := root.Statement(0)
	wantType(t, stmt, syntax.DefStmt)
	if stmt.Name() != "add" {
		t.Errorf("expected name add, got %s", stmt.Name())
	}
	if stmt.NumParams() != 2 {
		t.Fatalf("expected 2 parameters, got %d", stmt.NumParams())
	}
	if stmt.Param(0) != "a" || stmt.Param(1) != "b" {
		t.Errorf("expected parameters a, b, got %s, %s", stmt.Param(0), stmt.Param(1))
	}

	body := stmt.Body()
	wantType(t, body, syntax.Block)
	if body.NumStatements() != 1 {
		t.Fatalf("expected 1 body statement, got %d", body.NumStatements())
	}

	ret := body.Statement(0)
	wantType(t, ret, syntax.ReturnStmt)
	if !ret.HasExpr() {
		t.Fatal("expected a return operand")
	}
	wantType(t, ret.Subexpr(), syntax.AddExpr)
}

func TestParseReturnWithoutOperand(t *testing.T) {
	root := mustParse(t, "def f() { return; }").Root()

	ret := root.Statement(0).Body().Statement(0)
	wantType(t, ret, syntax.ReturnStmt)
	if ret.HasExpr() {
		t.Error("expected no return operand")
	}
}

func TestParseVarBindings(t *testing.T) {
	root := mustParse(t, "var x := 1, y, z := 3;").Root()

	stmt := root.Statement(0)
	wantType(t, stmt, syntax.VarStmt)
	if stmt.NumBindings() != 3 {
		t.Fatalf("expected 3 bindings, got %d", stmt.NumBindings())
	}

	names := []string{"x", "y", "z"}
	inits := []bool{true, false, true}
	for i := uint32(0); i < 3; i++ {
		if stmt.BindingName(i) != names[i] {
			t.Errorf("binding %d: expected %s, got %s", i, names[i], stmt.BindingName(i))
		}
		if stmt.HasBindingExpr(i) != inits[i] {
			t.Errorf("binding %d: expected initializer %v", i, inits[i])
		}
	}

	wantIntegerNode(t, stmt.BindingExpr(0), 1)
	wantIntegerNode(t, stmt.BindingExpr(2), 3)
}

func TestParseConst(t *testing.T) {
	root := mustParse(t, "const c := 5;").Root()

	stmt := root.Statement(0)
	wantType(t, stmt, syntax.ConstStmt)
	if stmt.NumBindings() != 1 {
		t.Fatalf("expected 1 binding, got %d", stmt.NumBindings())
	}
	if stmt.BindingName(0) != "c" {
		t.Errorf("expected binding c, got %s", stmt.BindingName(0))
	}
}

func TestParseLoop(t *testing.T) {
	root := mustParse(t, "loop { ; }").Root()

	stmt := root.Statement(0)
	wantType(t, stmt, syntax.LoopStmt)

	body := stmt.Body()
	wantType(t, body, syntax.Block)
	if body.NumStatements() != 1 {
		t.Fatalf("expected 1 body statement, got %d", body.NumStatements())
	}
	wantType(t, body.Statement(0), syntax.EmptyStmt)
}

func TestParseNestedBlocks(t *testing.T) {
	root := mustParse(t, "if (1) { if (2) { 3; } }").Root()

	outer := root.Statement(0)
	wantType(t, outer, syntax.IfStmt)

	inner := outer.IfBlock().Statement(0)
	wantType(t, inner, syntax.IfStmt)
	wantIntegerNode(t, inner.IfCond(), 2)
	wantIntegerNode(t, inner.IfBlock().Statement(0).Subexpr(), 3)
}

func TestParseSpans(t *testing.T) {
	src := "var x := 10;\nprint(x + 1);"
	root := mustParse(t, src).Root()

	if got := root.Source(); got != src {
		t.Errorf("expected the file span to cover the source, got %q", got)
	}
	if got := root.Statement(0).Source(); got != "var x := 10;" {
		t.Errorf("expected %q, got %q", "var x := 10;", got)
	}
	if got := root.Statement(1).Source(); got != "print(x + 1);" {
		t.Errorf("expected %q, got %q", "print(x + 1);", got)
	}

	call := root.Statement(1).Subexpr()
	wantType(t, call, syntax.CallExpr)
	if got := call.Arg(0).Source(); got != "x + 1" {
		t.Errorf("expected %q, got %q", "x + 1", got)
	}
}

func TestParseNegativeLiteralBounds(t *testing.T) {
	// the most negative literal parses as negation of a positive literal,
	// so its magnitude must still fit int64
	expr := onlyExpr(t, "-9223372036854775807;")
	wantType(t, expr, syntax.NegExpr)
	wantIntegerNode(t, expr.Subexpr(), 9223372036854775807)
}
