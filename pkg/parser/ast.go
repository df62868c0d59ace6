package parser

import (
	"murmur/pkg/syntax"
)

// Stmt is a parsed statement node
type Stmt interface {
	Span() syntax.Span
	stmtNode()
}

// Expr is a parsed expression node
type Expr interface {
	Span() syntax.Span
	exprNode()
}

// FileNode is the root of a parsed source file
type FileNode struct {
	Stmts []Stmt
	Loc   syntax.Span
}

// BlockNode is a braced statement sequence
type BlockNode struct {
	Stmts []Stmt
	Loc   syntax.Span
}

// EmptyStmt is a lone semicolon
type EmptyStmt struct {
	Loc syntax.Span
}

// ExprStmt is an expression evaluated for its value and effects
type ExprStmt struct {
	Expr Expr
	Loc  syntax.Span
}

// ReturnStmt is `return [expr];`
type ReturnStmt struct {
	Expr Expr // nil when the return carries no operand
	Loc  syntax.Span
}

// ElsifClause is one `elsif (cond) { ... }` arm of an IfStmt
type ElsifClause struct {
	Cond  Expr
	Block *BlockNode
}

// IfStmt is `if (cond) { ... }` with optional elsif/else arms
type IfStmt struct {
	Cond   Expr
	Block  *BlockNode
	Elsifs []ElsifClause
	Else   *BlockNode // nil when absent
	Loc    syntax.Span
}

// DefStmt is `def name(params) { ... }`
type DefStmt struct {
	Name   string
	Params []string
	Body   *BlockNode
	Loc    syntax.Span
}

// Binding is one `name [:= expr]` of a const/var statement
type Binding struct {
	Name string
	Init Expr // nil when uninitialized
}

// VarStmt is `var bindings;` or `const bindings;`
type VarStmt struct {
	IsConst  bool
	Bindings []Binding
	Loc      syntax.Span
}

// LoopStmt is `loop { ... }`
type LoopStmt struct {
	Body *BlockNode
	Loc  syntax.Span
}

// CallExpr is `callee(args)`
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Loc    syntax.Span
}

// DotExpr is `target.name`
type DotExpr struct {
	Target Expr
	Name   string
	Loc    syntax.Span
}

// ArrowExpr is `target->name`
type ArrowExpr struct {
	Target Expr
	Name   string
	Loc    syntax.Span
}

// UnaryExpr is `+expr` or `-expr`
type UnaryExpr struct {
	Negate  bool // false for +, true for -
	Operand Expr
	Loc     syntax.Span
}

// BinaryExpr is `lhs op rhs` for + - * /
type BinaryExpr struct {
	Op  syntax.NodeType // AddExpr, SubExpr, MulExpr or DivExpr
	Lhs Expr
	Rhs Expr
	Loc syntax.Span
}

// ParenExpr is `(expr)`
type ParenExpr struct {
	Inner Expr
	Loc   syntax.Span
}

// NameExpr is a bare identifier
type NameExpr struct {
	Name string
	Loc  syntax.Span
}

// IntegerExpr is a decimal integer literal
type IntegerExpr struct {
	Value int64
	Loc   syntax.Span
}

func (n *EmptyStmt) stmtNode()  {}
func (n *ExprStmt) stmtNode()   {}
func (n *ReturnStmt) stmtNode() {}
func (n *IfStmt) stmtNode()     {}
func (n *DefStmt) stmtNode()    {}
func (n *VarStmt) stmtNode()    {}
func (n *LoopStmt) stmtNode()   {}

func (n *CallExpr) exprNode()    {}
func (n *DotExpr) exprNode()     {}
func (n *ArrowExpr) exprNode()   {}
func (n *UnaryExpr) exprNode()   {}
func (n *BinaryExpr) exprNode()  {}
func (n *ParenExpr) exprNode()   {}
func (n *NameExpr) exprNode()    {}
func (n *IntegerExpr) exprNode() {}

func (n *FileNode) Span() syntax.Span    { return n.Loc }
func (n *BlockNode) Span() syntax.Span   { return n.Loc }
func (n *EmptyStmt) Span() syntax.Span   { return n.Loc }
func (n *ExprStmt) Span() syntax.Span    { return n.Loc }
func (n *ReturnStmt) Span() syntax.Span  { return n.Loc }
func (n *IfStmt) Span() syntax.Span      { return n.Loc }
func (n *DefStmt) Span() syntax.Span     { return n.Loc }
func (n *VarStmt) Span() syntax.Span     { return n.Loc }
func (n *LoopStmt) Span() syntax.Span    { return n.Loc }
func (n *CallExpr) Span() syntax.Span    { return n.Loc }
func (n *DotExpr) Span() syntax.Span     { return n.Loc }
func (n *ArrowExpr) Span() syntax.Span   { return n.Loc }
func (n *UnaryExpr) Span() syntax.Span   { return n.Loc }
func (n *BinaryExpr) Span() syntax.Span  { return n.Loc }
func (n *ParenExpr) Span() syntax.Span   { return n.Loc }
func (n *NameExpr) Span() syntax.Span    { return n.Loc }
func (n *IntegerExpr) Span() syntax.Span { return n.Loc }
