package syntax

// Tree is an immutable packed syntax tree: a flat word array plus a constant
// pool for names and integer literals. Nodes are addressed by word offset;
// child nodes are stored either inline (at a fixed index after the header) or
// behind a relative-offset word, so the whole tree lives in two allocations
// and never changes after packing.
type Tree struct {
	data      []uint32
	constants []Constant
	src       string
	spans     map[uint32]Span
}

// ConstKind classifies a constant pool entry.
type ConstKind uint8

const (
	ConstName ConstKind = iota
	ConstInteger
)

// Constant is one entry of a tree's constant pool.
type Constant struct {
	Kind ConstKind
	Name string
	Int  int64
}

// Span is a byte range into the packed tree's original source text.
type Span struct {
	Start int
	End   int
}

// NewTree assembles a packed tree from its raw parts. Packing happens in the
// parser; evaluation and tests only read.
func NewTree(data []uint32, constants []Constant, src string, spans map[uint32]Span) *Tree {
	return &Tree{
		data:      data,
		constants: constants,
		src:       src,
		spans:     spans,
	}
}

// Root returns the node at offset 0, conventionally the File node.
func (t *Tree) Root() Node {
	return Node{tree: t, offset: 0}
}

// At returns the node starting at the given word offset.
func (t *Tree) At(offset uint32) Node {
	return Node{tree: t, offset: offset}
}

// Len returns the number of words in the tree.
func (t *Tree) Len() int {
	return len(t.data)
}

// NameAt returns the name constant with the given pool index.
func (t *Tree) NameAt(cid uint32) string {
	return t.constants[cid].Name
}

// IntegerAt returns the integer constant with the given pool index.
func (t *Tree) IntegerAt(cid uint32) int64 {
	return t.constants[cid].Int
}

// Node is a reference to one node of a packed tree: the tree plus the word
// offset of the node's header. It is a value type; copying is free.
type Node struct {
	tree   *Tree
	offset uint32
}

// IsValid reports whether the node references a tree at all.
func (n Node) IsValid() bool {
	return n.tree != nil
}

// Tree returns the packed tree this node belongs to.
func (n Node) Tree() *Tree {
	return n.tree
}

// Offset returns the node's header word offset.
func (n Node) Offset() uint32 {
	return n.offset
}

// Type returns the node's kind from the low bits of its header word.
func (n Node) Type() NodeType {
	return NodeType(n.valAt(0) & typeMask)
}

// Source returns the source text the node was packed from, or "" when the
// writer recorded no span.
func (n Node) Source() string {
	span, ok := n.tree.spans[n.offset]
	if !ok {
		return ""
	}

	return n.tree.src[span.Start:span.End]
}

// extra returns the header word's high-bit payload.
func (n Node) extra() uint32 {
	return n.valAt(0) >> TypeBits
}

// valAt returns the raw word at the given index relative to the header.
func (n Node) valAt(idx uint32) uint32 {
	return n.tree.data[n.offset+idx]
}

// nodeAt returns the node starting at the given relative index.
func (n Node) nodeAt(idx uint32) Node {
	return Node{tree: n.tree, offset: n.offset + idx}
}

// indirectNodeAt returns the node addressed by the relative-offset word
// stored at idx: the target starts at idx plus that word's value.
func (n Node) indirectNodeAt(idx uint32) Node {
	return n.nodeAt(idx + n.valAt(idx))
}

// --- File / Block ---
//
// Header extra holds the statement count n. Statements 1..n-1 are reached
// through an offset table at indices 1..n-1; statement 0 sits inline right
// after the table, at index n.

// NumStatements returns the statement count of a File or Block node.
func (n Node) NumStatements() uint32 {
	return n.extra()
}

// Statement returns statement idx of a File or Block node.
func (n Node) Statement(idx uint32) Node {
	if idx == 0 {
		return n.nodeAt(n.NumStatements())
	}

	return n.indirectNodeAt(idx)
}

// --- ExprStmt / ParenExpr / PosExpr / NegExpr ---

// Subexpr returns the single inline child of a one-child node.
func (n Node) Subexpr() Node {
	return n.nodeAt(1)
}

// --- ReturnStmt ---

// HasExpr reports whether a ReturnStmt carries an operand expression.
func (n Node) HasExpr() bool {
	return n.extra()&1 != 0
}

// --- IfStmt ---
//
// Header extra is NumElsifs<<1 | HasElse. The node body is a sequence of
// "parts": if-cond, if-block, then cond/block per elsif, then the else block
// when present. Part 0 is inline after the part-offset table; parts 1..k-1
// are reached through the table.

// NumElsifs returns the elsif clause count of an IfStmt.
func (n Node) NumElsifs() uint32 {
	return n.extra() >> 1
}

// HasElse reports whether an IfStmt carries an else block.
func (n Node) HasElse() bool {
	return n.extra()&1 != 0
}

func (n Node) numIfParts() uint32 {
	parts := 2 + 2*n.NumElsifs()
	if n.HasElse() {
		parts++
	}

	return parts
}

func (n Node) ifPart(idx uint32) Node {
	if idx == 0 {
		return n.nodeAt(n.numIfParts())
	}

	return n.indirectNodeAt(idx)
}

// IfCond returns the condition of the leading if clause.
func (n Node) IfCond() Node {
	return n.ifPart(0)
}

// IfBlock returns the block of the leading if clause.
func (n Node) IfBlock() Node {
	return n.ifPart(1)
}

// ElsifCond returns the condition of elsif clause idx.
func (n Node) ElsifCond(idx uint32) Node {
	return n.ifPart(2 + 2*idx)
}

// ElsifBlock returns the block of elsif clause idx.
func (n Node) ElsifBlock(idx uint32) Node {
	return n.ifPart(3 + 2*idx)
}

// ElseBlock returns the else block; only valid when HasElse.
func (n Node) ElseBlock() Node {
	return n.ifPart(2 + 2*n.NumElsifs())
}

// --- DefStmt ---
//
// Header extra is the parameter count p. Index 1 holds the function name
// constant, indices 2..1+p the parameter name constants, and the body block
// sits inline at 2+p.

// NumParams returns the parameter count of a DefStmt.
func (n Node) NumParams() uint32 {
	return n.extra()
}

// Name returns the name constant of a DefStmt, DotExpr, ArrowExpr or
// NameExpr node.
func (n Node) Name() string {
	return n.tree.NameAt(n.valAt(1))
}

// Param returns parameter name idx of a DefStmt.
func (n Node) Param(idx uint32) string {
	return n.tree.NameAt(n.valAt(2 + idx))
}

// Body returns the body block of a DefStmt or LoopStmt.
func (n Node) Body() Node {
	if n.Type() == DefStmt {
		return n.nodeAt(2 + n.NumParams())
	}

	return n.nodeAt(1)
}

// --- ConstStmt / VarStmt ---
//
// Header extra is the binding count. Binding idx stores its name constant at
// 1+2*idx and a relative initializer offset at 2+2*idx; offset 0 means the
// binding has no initializer.

// NumBindings returns the binding count of a ConstStmt or VarStmt.
func (n Node) NumBindings() uint32 {
	return n.extra()
}

// BindingName returns the declared name of binding idx.
func (n Node) BindingName(idx uint32) string {
	return n.tree.NameAt(n.valAt(1 + 2*idx))
}

// HasBindingExpr reports whether binding idx carries an initializer.
func (n Node) HasBindingExpr(idx uint32) bool {
	return n.valAt(2+2*idx) != 0
}

// BindingExpr returns the initializer expression of binding idx; only valid
// when HasBindingExpr.
func (n Node) BindingExpr(idx uint32) Node {
	return n.indirectNodeAt(2 + 2*idx)
}

// --- CallExpr ---
//
// Header extra is the argument count a. Indices 1..a form the argument
// offset table; the callee expression sits inline at 1+a, with the argument
// expressions packed after it.

// NumArgs returns the argument count of a CallExpr.
func (n Node) NumArgs() uint32 {
	return n.extra()
}

// Callee returns the callee expression of a CallExpr.
func (n Node) Callee() Node {
	return n.nodeAt(1 + n.NumArgs())
}

// Arg returns argument expression idx of a CallExpr.
func (n Node) Arg(idx uint32) Node {
	return n.indirectNodeAt(1 + idx)
}

// --- DotExpr / ArrowExpr ---

// Target returns the receiver expression of a DotExpr or ArrowExpr.
func (n Node) Target() Node {
	return n.nodeAt(2)
}

// --- AddExpr / SubExpr / MulExpr / DivExpr ---
//
// Index 1 holds the relative offset of the rhs; the lhs sits inline at 2.

// Lhs returns the left operand of a binary expression.
func (n Node) Lhs() Node {
	return n.nodeAt(2)
}

// Rhs returns the right operand of a binary expression.
func (n Node) Rhs() Node {
	return n.indirectNodeAt(1)
}

// --- NameExpr / IntegerExpr ---

// Value returns the integer constant of an IntegerExpr.
func (n Node) Value() int64 {
	return n.tree.IntegerAt(n.valAt(1))
}
