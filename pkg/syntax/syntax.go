package syntax

import "fmt"

// NodeType identifies the kind of a packed syntax node. It is stored in the
// low 12 bits of a node's header word; the high 20 bits carry a per-kind
// "extra" payload (statement counts, binding counts, flags).
type NodeType uint16

const (
	InvalidNode NodeType = iota

	File
	EmptyStmt
	ExprStmt
	ReturnStmt
	IfStmt
	DefStmt
	ConstStmt
	VarStmt
	LoopStmt
	Block

	CallExpr
	DotExpr
	ArrowExpr
	PosExpr
	NegExpr
	AddExpr
	SubExpr
	MulExpr
	DivExpr
	ParenExpr
	NameExpr
	IntegerExpr
)

var nodeTypeNames = map[NodeType]string{
	File:        "File",
	EmptyStmt:   "EmptyStmt",
	ExprStmt:    "ExprStmt",
	ReturnStmt:  "ReturnStmt",
	IfStmt:      "IfStmt",
	DefStmt:     "DefStmt",
	ConstStmt:   "ConstStmt",
	VarStmt:     "VarStmt",
	LoopStmt:    "LoopStmt",
	Block:       "Block",
	CallExpr:    "CallExpr",
	DotExpr:     "DotExpr",
	ArrowExpr:   "ArrowExpr",
	PosExpr:     "PosExpr",
	NegExpr:     "NegExpr",
	AddExpr:     "AddExpr",
	SubExpr:     "SubExpr",
	MulExpr:     "MulExpr",
	DivExpr:     "DivExpr",
	ParenExpr:   "ParenExpr",
	NameExpr:    "NameExpr",
	IntegerExpr: "IntegerExpr",
}

// String returns the name of the node type
func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("InvalidNode(%d)", uint16(t))
}

// HandlerName returns the reserved property name a node of this type
// dispatches to during evaluation (e.g. "@IfStmt").
func (t NodeType) HandlerName() string {
	return "@" + t.String()
}

const (
	// TypeBits is the width of the node-type field in a header word.
	TypeBits = 12
	// ExtraBits is the width of the extra field in a header word.
	ExtraBits = 20

	typeMask = (1 << TypeBits) - 1
	// MaxExtra is the largest value the extra field can carry.
	MaxExtra = (1 << ExtraBits) - 1
)

// HeaderWord packs a node type and its extra payload into one tree word.
func HeaderWord(t NodeType, extra uint32) uint32 {
	return uint32(t)&typeMask | extra<<TypeBits
}
