package parser

import (
	"fmt"

	"murmur/pkg/syntax"
)

// writer accumulates the packed form of a parsed file: the word array, the
// deduplicated constant pool and the source spans of every packed node.
type writer struct {
	data      []uint32
	constants []syntax.Constant
	constIdx  map[constKey]uint32
	spans     map[uint32]syntax.Span
}

type constKey struct {
	kind syntax.ConstKind
	name string
	i    int64
}

// Pack serializes a parsed file into its packed tree form. The file must
// come from a parse with no errors.
func Pack(file *FileNode, src string) *syntax.Tree {
	w := &writer{
		data:      []uint32{},
		constants: []syntax.Constant{},
		constIdx:  map[constKey]uint32{},
		spans:     map[uint32]syntax.Span{},
	}

	w.packStmtSeq(syntax.File, file.Stmts, file.Loc)

	return syntax.NewTree(w.data, w.constants, src, w.spans)
}

// emit appends one word and returns its offset
func (w *writer) emit(word uint32) uint32 {
	w.data = append(w.data, word)
	return uint32(len(w.data) - 1)
}

// emitHeader appends a node header word and records the node's source span
func (w *writer) emitHeader(t syntax.NodeType, extra uint32, loc syntax.Span) uint32 {
	start := w.emit(syntax.HeaderWord(t, extra))
	w.spans[start] = loc
	return start
}

// reserve appends n zero words to be backpatched later
func (w *writer) reserve(n uint32) {
	for i := uint32(0); i < n; i++ {
		w.emit(0)
	}
}

// nameCid interns a name constant and returns its pool index
func (w *writer) nameCid(name string) uint32 {
	key := constKey{kind: syntax.ConstName, name: name}
	if cid, ok := w.constIdx[key]; ok {
		return cid
	}

	cid := uint32(len(w.constants))
	w.constants = append(w.constants, syntax.Constant{Kind: syntax.ConstName, Name: name})
	w.constIdx[key] = cid
	return cid
}

// integerCid interns an integer constant and returns its pool index
func (w *writer) integerCid(value int64) uint32 {
	key := constKey{kind: syntax.ConstInteger, i: value}
	if cid, ok := w.constIdx[key]; ok {
		return cid
	}

	cid := uint32(len(w.constants))
	w.constants = append(w.constants, syntax.Constant{Kind: syntax.ConstInteger, Int: value})
	w.constIdx[key] = cid
	return cid
}

// packStmtSeq packs a File or Block node: header, offset table for
// statements 1..n-1, then the statements themselves in order.
func (w *writer) packStmtSeq(t syntax.NodeType, stmts []Stmt, loc syntax.Span) uint32 {
	numStmts := uint32(len(stmts))
	start := w.emitHeader(t, numStmts, loc)
	if numStmts > 0 {
		w.reserve(numStmts - 1)
	}

	starts := make([]uint32, 0, numStmts)
	for _, stmt := range stmts {
		starts = append(starts, w.packStmt(stmt))
	}

	for i := uint32(1); i < numStmts; i++ {
		w.data[start+i] = starts[i] - start - i
	}

	return start
}

func (w *writer) packBlock(block *BlockNode) uint32 {
	return w.packStmtSeq(syntax.Block, block.Stmts, block.Loc)
}

func (w *writer) packStmt(stmt Stmt) uint32 {
	switch n := stmt.(type) {
	case *EmptyStmt:
		return w.emitHeader(syntax.EmptyStmt, 0, n.Loc)
	case *ExprStmt:
		start := w.emitHeader(syntax.ExprStmt, 0, n.Loc)
		w.packExpr(n.Expr)
		return start
	case *ReturnStmt:
		extra := uint32(0)
		if n.Expr != nil {
			extra = 1
		}

		start := w.emitHeader(syntax.ReturnStmt, extra, n.Loc)
		if n.Expr != nil {
			w.packExpr(n.Expr)
		}
		return start
	case *IfStmt:
		return w.packIfStmt(n)
	case *DefStmt:
		return w.packDefStmt(n)
	case *VarStmt:
		return w.packVarStmt(n)
	case *LoopStmt:
		start := w.emitHeader(syntax.LoopStmt, 0, n.Loc)
		w.packBlock(n.Body)
		return start
	default:
		panic(fmt.Sprintf("parser: cannot pack statement %T", stmt))
	}
}

// packIfStmt packs the clause "parts" (if-cond, if-block, elsif pairs, else
// block) behind a part-offset table, part 0 inline after the table.
func (w *writer) packIfStmt(n *IfStmt) uint32 {
	numParts := uint32(2 + 2*len(n.Elsifs))
	if n.Else != nil {
		numParts++
	}

	extra := uint32(len(n.Elsifs)) << 1
	if n.Else != nil {
		extra |= 1
	}

	start := w.emitHeader(syntax.IfStmt, extra, n.Loc)
	w.reserve(numParts - 1)

	starts := make([]uint32, 0, numParts)
	starts = append(starts, w.packExpr(n.Cond))
	starts = append(starts, w.packBlock(n.Block))
	for _, clause := range n.Elsifs {
		starts = append(starts, w.packExpr(clause.Cond))
		starts = append(starts, w.packBlock(clause.Block))
	}
	if n.Else != nil {
		starts = append(starts, w.packBlock(n.Else))
	}

	for j := uint32(1); j < numParts; j++ {
		w.data[start+j] = starts[j] - start - j
	}

	return start
}

func (w *writer) packDefStmt(n *DefStmt) uint32 {
	start := w.emitHeader(syntax.DefStmt, uint32(len(n.Params)), n.Loc)
	w.emit(w.nameCid(n.Name))
	for _, param := range n.Params {
		w.emit(w.nameCid(param))
	}
	w.packBlock(n.Body)
	return start
}

// packVarStmt packs a const/var statement: a name/offset pair per binding,
// initializer expressions after the table, offset 0 marking "none".
func (w *writer) packVarStmt(n *VarStmt) uint32 {
	kind := syntax.VarStmt
	if n.IsConst {
		kind = syntax.ConstStmt
	}

	numBindings := uint32(len(n.Bindings))
	start := w.emitHeader(kind, numBindings, n.Loc)
	w.reserve(2 * numBindings)

	for i, binding := range n.Bindings {
		w.data[start+1+2*uint32(i)] = w.nameCid(binding.Name)
		if binding.Init != nil {
			initStart := w.packExpr(binding.Init)
			slot := start + 2 + 2*uint32(i)
			w.data[slot] = initStart - slot
		}
	}

	return start
}

func (w *writer) packExpr(expr Expr) uint32 {
	switch n := expr.(type) {
	case *CallExpr:
		numArgs := uint32(len(n.Args))
		start := w.emitHeader(syntax.CallExpr, numArgs, n.Loc)
		w.reserve(numArgs)

		w.packExpr(n.Callee)
		for i, arg := range n.Args {
			argStart := w.packExpr(arg)
			slot := start + 1 + uint32(i)
			w.data[slot] = argStart - slot
		}
		return start
	case *DotExpr:
		start := w.emitHeader(syntax.DotExpr, 0, n.Loc)
		w.emit(w.nameCid(n.Name))
		w.packExpr(n.Target)
		return start
	case *ArrowExpr:
		start := w.emitHeader(syntax.ArrowExpr, 0, n.Loc)
		w.emit(w.nameCid(n.Name))
		w.packExpr(n.Target)
		return start
	case *UnaryExpr:
		kind := syntax.PosExpr
		if n.Negate {
			kind = syntax.NegExpr
		}

		start := w.emitHeader(kind, 0, n.Loc)
		w.packExpr(n.Operand)
		return start
	case *BinaryExpr:
		start := w.emitHeader(n.Op, 0, n.Loc)
		w.reserve(1)

		w.packExpr(n.Lhs)
		rhsStart := w.packExpr(n.Rhs)
		w.data[start+1] = rhsStart - start - 1
		return start
	case *ParenExpr:
		start := w.emitHeader(syntax.ParenExpr, 0, n.Loc)
		w.packExpr(n.Inner)
		return start
	case *NameExpr:
		start := w.emitHeader(syntax.NameExpr, 0, n.Loc)
		w.emit(w.nameCid(n.Name))
		return start
	case *IntegerExpr:
		start := w.emitHeader(syntax.IntegerExpr, 0, n.Loc)
		w.emit(w.integerCid(n.Value))
		return start
	default:
		panic(fmt.Sprintf("parser: cannot pack expression %T", expr))
	}
}
