package syntax_test

import (
	"testing"

	"murmur/pkg/syntax"
)

func TestNodeTypeString(t *testing.T) {
	cases := []struct {
		nodeType syntax.NodeType
		expected string
	}{
		{syntax.File, "File"},
		{syntax.EmptyStmt, "EmptyStmt"},
		{syntax.ExprStmt, "ExprStmt"},
		{syntax.ReturnStmt, "ReturnStmt"},
		{syntax.IfStmt, "IfStmt"},
		{syntax.DefStmt, "DefStmt"},
		{syntax.ConstStmt, "ConstStmt"},
		{syntax.VarStmt, "VarStmt"},
		{syntax.LoopStmt, "LoopStmt"},
		{syntax.Block, "Block"},
		{syntax.CallExpr, "CallExpr"},
		{syntax.DotExpr, "DotExpr"},
		{syntax.ArrowExpr, "ArrowExpr"},
		{syntax.PosExpr, "PosExpr"},
		{syntax.NegExpr, "NegExpr"},
		{syntax.AddExpr, "AddExpr"},
		{syntax.SubExpr, "SubExpr"},
		{syntax.MulExpr, "MulExpr"},
		{syntax.DivExpr, "DivExpr"},
		{syntax.ParenExpr, "ParenExpr"},
		{syntax.NameExpr, "NameExpr"},
		{syntax.IntegerExpr, "IntegerExpr"},
		{syntax.InvalidNode, "InvalidNode(0)"},
		{syntax.NodeType(999), "InvalidNode(999)"},
	}

	for _, c := range cases {
		if got := c.nodeType.String(); got != c.expected {
			t.Errorf("expected %s, got %s", c.expected, got)
		}
	}
}

func TestHandlerName(t *testing.T) {
	cases := []struct {
		nodeType syntax.NodeType
		expected string
	}{
		{syntax.File, "@File"},
		{syntax.IfStmt, "@IfStmt"},
		{syntax.AddExpr, "@AddExpr"},
		{syntax.IntegerExpr, "@IntegerExpr"},
	}

	for _, c := range cases {
		if got := c.nodeType.HandlerName(); got != c.expected {
			t.Errorf("expected %s, got %s", c.expected, got)
		}
	}
}

func TestHeaderWordRoundTrip(t *testing.T) {
	// the type survives any extra payload up to the field limit
	for _, extra := range []uint32{0, 1, 7, syntax.MaxExtra} {
		data := []uint32{syntax.HeaderWord(syntax.File, extra)}
		tree := syntax.NewTree(data, nil, "", nil)

		root := tree.Root()
		if root.Type() != syntax.File {
			t.Errorf("extra %d: expected %s, got %s", extra, syntax.File, root.Type())
		}
		if root.NumStatements() != extra {
			t.Errorf("extra %d: expected statement count %d, got %d", extra, extra, root.NumStatements())
		}
	}
}

// handTree packs a two-statement file by hand, following the layout the
// node accessors document: statement 0 inline after the offset table,
// statement 1 behind a relative-offset word.
//
//	0: File (2 statements)
//	1: offset word for statement 1 -> 5
//	2: ExprStmt          statement 0
//	3:   IntegerExpr
//	4:   constant 0
//	5: ExprStmt          statement 1
//	6:   IntegerExpr
//	7:   constant 1
func handTree() *syntax.Tree {
	data := []uint32{
		syntax.HeaderWord(syntax.File, 2),
		4,
		syntax.HeaderWord(syntax.ExprStmt, 0),
		syntax.HeaderWord(syntax.IntegerExpr, 0),
		0,
		syntax.HeaderWord(syntax.ExprStmt, 0),
		syntax.HeaderWord(syntax.IntegerExpr, 0),
		1,
	}
	constants := []syntax.Constant{
		{Kind: syntax.ConstInteger, Int: 11},
		{Kind: syntax.ConstInteger, Int: 22},
	}
	spans := map[uint32]syntax.Span{
		2: {Start: 0, End: 3},
		5: {Start: 4, End: 7},
	}

	return syntax.NewTree(data, constants, "11; 22;", spans)
}

func TestStatementWalk(t *testing.T) {
	tree := handTree()
	root := tree.Root()

	if root.Type() != syntax.File {
		t.Fatalf("expected %s, got %s", syntax.File, root.Type())
	}
	if root.NumStatements() != 2 {
		t.Fatalf("expected 2 statements, got %d", root.NumStatements())
	}

	expected := []int64{11, 22}
	for i, want := range expected {
		stmt := root.Statement(uint32(i))
		if stmt.Type() != syntax.ExprStmt {
			t.Errorf("statement %d: expected %s, got %s", i, syntax.ExprStmt, stmt.Type())
		}

		sub := stmt.Subexpr()
		if sub.Type() != syntax.IntegerExpr {
			t.Errorf("statement %d: expected %s, got %s", i, syntax.IntegerExpr, sub.Type())
		}
		if sub.Value() != want {
			t.Errorf("statement %d: expected %d, got %d", i, want, sub.Value())
		}
	}
}

func TestNodeAddressing(t *testing.T) {
	tree := handTree()

	if tree.Len() != 8 {
		t.Errorf("expected 8 words, got %d", tree.Len())
	}

	stmt := tree.At(5)
	if stmt.Type() != syntax.ExprStmt {
		t.Errorf("expected %s at offset 5, got %s", syntax.ExprStmt, stmt.Type())
	}
	if stmt.Offset() != 5 {
		t.Errorf("expected offset 5, got %d", stmt.Offset())
	}
	if stmt.Tree() != tree {
		t.Error("expected the node to reference its tree")
	}

	var zero syntax.Node
	if zero.IsValid() {
		t.Error("expected the zero node to be invalid")
	}
	if !stmt.IsValid() {
		t.Error("expected a tree node to be valid")
	}
}

func TestNodeSource(t *testing.T) {
	tree := handTree()
	root := tree.Root()

	if got := root.Statement(0).Source(); got != "11;" {
		t.Errorf("expected %q, got %q", "11;", got)
	}
	if got := root.Statement(1).Source(); got != "22;" {
		t.Errorf("expected %q, got %q", "22;", got)
	}
	// the file node has no recorded span
	if got := root.Source(); got != "" {
		t.Errorf("expected empty source, got %q", got)
	}
}

func TestConstantPool(t *testing.T) {
	constants := []syntax.Constant{
		{Kind: syntax.ConstName, Name: "counter"},
		{Kind: syntax.ConstInteger, Int: -7},
	}
	tree := syntax.NewTree([]uint32{syntax.HeaderWord(syntax.File, 0)}, constants, "", nil)

	if got := tree.NameAt(0); got != "counter" {
		t.Errorf("expected %q, got %q", "counter", got)
	}
	if got := tree.IntegerAt(1); got != -7 {
		t.Errorf("expected -7, got %d", got)
	}
}
