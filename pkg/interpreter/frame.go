package interpreter

import "murmur/pkg/syntax"

// Frame is one suspended step of computation. Frames live on the heap,
// form a chain through their parent links, and are immutable once
// constructed: advancing a frame means building a successor that points at
// the same parent, never mutating in place. That immutability is what
// makes captured continuations reusable. The set of frame kinds below is
// closed; StepFrame and ResolveFrame switch over all of them.
type Frame interface {
	Parent() Frame
	frame()
}

// TerminalFrame is the sentinel root of every chain. It does nothing when
// stepped; resolving it records the final result of the run. Its result
// cell is the single piece of mutable frame state in the machine.
type TerminalFrame struct {
	result   EvalResult
	resolved bool
}

// NewTerminalFrame creates an unresolved terminal frame.
func NewTerminalFrame() *TerminalFrame {
	return &TerminalFrame{}
}

func (f *TerminalFrame) Parent() Frame { return nil }
func (f *TerminalFrame) frame()        {}

// Result returns the recorded final result and whether one has arrived.
func (f *TerminalFrame) Result() (EvalResult, bool) {
	return f.result, f.resolved
}

func (f *TerminalFrame) setResult(r EvalResult) {
	f.result = r
	f.resolved = true
}

// EntryFrame anchors evaluation of a node in a scope. Everything
// downstream finds its scope here, and return continuations have a stable
// frame to capture: resolving an entry frame means "this activation
// produced that result".
type EntryFrame struct {
	parent Frame
	node   syntax.Node
	scope  Object
}

// NewEntryFrame creates an entry frame for evaluating node in scope.
func NewEntryFrame(parent Frame, node syntax.Node, scope Object) *EntryFrame {
	return &EntryFrame{parent: parent, node: node, scope: scope}
}

func (f *EntryFrame) Parent() Frame { return f.parent }
func (f *EntryFrame) frame()        {}

// Node returns the node this activation evaluates.
func (f *EntryFrame) Node() syntax.Node { return f.node }

// Scope returns the activation's scope object.
func (f *EntryFrame) Scope() Object { return f.scope }

// InvokeSyntaxNodeFrame dispatches one syntax node: stepping it looks up
// the node's handler binding on the scope and invokes it as an operative
// with the raw node.
type InvokeSyntaxNodeFrame struct {
	parent Frame
	entry  *EntryFrame
	node   syntax.Node
}

// NewInvokeSyntaxNodeFrame creates a dispatch frame for node under entry.
func NewInvokeSyntaxNodeFrame(parent Frame, entry *EntryFrame, node syntax.Node) *InvokeSyntaxNodeFrame {
	return &InvokeSyntaxNodeFrame{parent: parent, entry: entry, node: node}
}

func (f *InvokeSyntaxNodeFrame) Parent() Frame { return f.parent }
func (f *InvokeSyntaxNodeFrame) frame()        {}

// EntryFrame returns the activation this dispatch belongs to.
func (f *InvokeSyntaxNodeFrame) EntryFrame() *EntryFrame { return f.entry }

// Node returns the node being dispatched.
func (f *InvokeSyntaxNodeFrame) Node() syntax.Node { return f.node }

// FileSyntaxFrame walks a file's statements in order, discarding each
// statement's value except the last, which becomes the file's result.
type FileSyntaxFrame struct {
	parent      Frame
	entry       *EntryFrame
	node        syntax.Node
	statementNo uint32
}

// NewFileSyntaxFrame creates a frame positioned at the file's first
// statement.
func NewFileSyntaxFrame(parent Frame, entry *EntryFrame, node syntax.Node) *FileSyntaxFrame {
	return &FileSyntaxFrame{parent: parent, entry: entry, node: node}
}

func (f *FileSyntaxFrame) Parent() Frame { return f.parent }
func (f *FileSyntaxFrame) frame()        {}

func (f *FileSyntaxFrame) nextStatement() *FileSyntaxFrame {
	return &FileSyntaxFrame{parent: f.parent, entry: f.entry, node: f.node, statementNo: f.statementNo + 1}
}

// BlockSyntaxFrame walks a block's statements in order, like
// FileSyntaxFrame but for brace-delimited bodies.
type BlockSyntaxFrame struct {
	parent      Frame
	entry       *EntryFrame
	node        syntax.Node
	statementNo uint32
}

// NewBlockSyntaxFrame creates a frame positioned at the block's first
// statement.
func NewBlockSyntaxFrame(parent Frame, entry *EntryFrame, node syntax.Node) *BlockSyntaxFrame {
	return &BlockSyntaxFrame{parent: parent, entry: entry, node: node}
}

func (f *BlockSyntaxFrame) Parent() Frame { return f.parent }
func (f *BlockSyntaxFrame) frame()        {}

func (f *BlockSyntaxFrame) nextStatement() *BlockSyntaxFrame {
	return &BlockSyntaxFrame{parent: f.parent, entry: f.entry, node: f.node, statementNo: f.statementNo + 1}
}

// ReturnStmtSyntaxFrame evaluates a return statement's operand, then jumps
// through the enclosing activation's return continuation instead of
// resolving its own parent.
type ReturnStmtSyntaxFrame struct {
	parent Frame
	entry  *EntryFrame
	node   syntax.Node
}

// NewReturnStmtSyntaxFrame creates a frame for a return statement.
func NewReturnStmtSyntaxFrame(parent Frame, entry *EntryFrame, node syntax.Node) *ReturnStmtSyntaxFrame {
	return &ReturnStmtSyntaxFrame{parent: parent, entry: entry, node: node}
}

func (f *ReturnStmtSyntaxFrame) Parent() Frame { return f.parent }
func (f *ReturnStmtSyntaxFrame) frame()        {}

// VarSyntaxFrame works through the bindings of a var or const statement
// left to right, evaluating each initializer and defining the name on the
// activation's scope before moving to the next.
type VarSyntaxFrame struct {
	parent    Frame
	entry     *EntryFrame
	node      syntax.Node
	bindingNo uint32
}

// NewVarSyntaxFrame creates a frame positioned at the statement's first
// binding.
func NewVarSyntaxFrame(parent Frame, entry *EntryFrame, node syntax.Node) *VarSyntaxFrame {
	return &VarSyntaxFrame{parent: parent, entry: entry, node: node}
}

func (f *VarSyntaxFrame) Parent() Frame { return f.parent }
func (f *VarSyntaxFrame) frame()        {}

func (f *VarSyntaxFrame) nextBinding() *VarSyntaxFrame {
	return &VarSyntaxFrame{parent: f.parent, entry: f.entry, node: f.node, bindingNo: f.bindingNo + 1}
}

type callPhase int

const (
	callPhaseCallee callPhase = iota
	callPhaseArg
	callPhaseInvoke
)

// CallExprSyntaxFrame drives a call expression through three phases:
// evaluate the callee, evaluate the operands left to right (skipped for
// operatives and zero-operand calls), then hand off to an invocation
// frame. Evaluated operands accumulate in an immutable list shared across
// successors.
type CallExprSyntaxFrame struct {
	parent   Frame
	entry    *EntryFrame
	node     syntax.Node
	phase    callPhase
	argNo    uint32
	callee   Box
	operands *operandList
}

// NewCallExprSyntaxFrame creates a frame in the callee phase.
func NewCallExprSyntaxFrame(parent Frame, entry *EntryFrame, node syntax.Node) *CallExprSyntaxFrame {
	return &CallExprSyntaxFrame{parent: parent, entry: entry, node: node}
}

func (f *CallExprSyntaxFrame) Parent() Frame { return f.parent }
func (f *CallExprSyntaxFrame) frame()        {}

func (f *CallExprSyntaxFrame) withCallee(callee Box, phase callPhase) *CallExprSyntaxFrame {
	return &CallExprSyntaxFrame{
		parent: f.parent, entry: f.entry, node: f.node,
		phase: phase, callee: callee,
	}
}

func (f *CallExprSyntaxFrame) withOperand(v Box, phase callPhase) *CallExprSyntaxFrame {
	return &CallExprSyntaxFrame{
		parent: f.parent, entry: f.entry, node: f.node,
		phase: phase, argNo: f.argNo + 1,
		callee: f.callee, operands: f.operands.prepend(v),
	}
}

// InvokeApplicativeFrame performs a call whose operands are already
// evaluated. Stepping it runs a native, builds the activation of a
// scripted function, or jumps through a continuation. Once the call
// delivers a result the frame forwards it unchanged: the call site's
// continuation is this frame's parent.
type InvokeApplicativeFrame struct {
	parent   Frame
	node     syntax.Node
	callee   Box
	operands *operandList
}

// NewInvokeApplicativeFrame creates an invocation frame for callee with
// the given evaluated operands.
func NewInvokeApplicativeFrame(parent Frame, node syntax.Node, callee Box, operands *operandList) *InvokeApplicativeFrame {
	return &InvokeApplicativeFrame{parent: parent, node: node, callee: callee, operands: operands}
}

func (f *InvokeApplicativeFrame) Parent() Frame { return f.parent }
func (f *InvokeApplicativeFrame) frame()        {}

// InvokeOperativeFrame performs a call that hands the callee the raw call
// expression node instead of evaluated operands.
type InvokeOperativeFrame struct {
	parent Frame
	node   syntax.Node
	callee Box
}

// NewInvokeOperativeFrame creates an operative invocation frame for
// callee.
func NewInvokeOperativeFrame(parent Frame, node syntax.Node, callee Box) *InvokeOperativeFrame {
	return &InvokeOperativeFrame{parent: parent, node: node, callee: callee}
}

func (f *InvokeOperativeFrame) Parent() Frame { return f.parent }
func (f *InvokeOperativeFrame) frame()        {}

// DotExprSyntaxFrame evaluates the target of a property access, then
// resolves the name on the resulting value through its delegation chain.
type DotExprSyntaxFrame struct {
	parent Frame
	entry  *EntryFrame
	node   syntax.Node
}

// NewDotExprSyntaxFrame creates a frame for a property access.
func NewDotExprSyntaxFrame(parent Frame, entry *EntryFrame, node syntax.Node) *DotExprSyntaxFrame {
	return &DotExprSyntaxFrame{parent: parent, entry: entry, node: node}
}

func (f *DotExprSyntaxFrame) Parent() Frame { return f.parent }
func (f *DotExprSyntaxFrame) frame()        {}

// NativeCallResumeFrame is the bridge that lets a native evaluate syntax
// without re-entering the driver: the native suspends, this frame runs the
// requested evaluation, and the native's resume function receives the
// value. Errors and exceptions skip the resume function and keep
// unwinding. A resume may suspend again, so a native can chain any number
// of evaluations through successive resume frames.
type NativeCallResumeFrame struct {
	parent    Frame
	call      *NativeCallInfo
	evalScope Object
	node      syntax.Node
	state     Box
	resume    NativeResumeFunc
}

// NewNativeCallResumeFrame creates a resume frame that evaluates node in
// evalScope and feeds the result to resume along with state.
func NewNativeCallResumeFrame(parent Frame, call *NativeCallInfo, evalScope Object, node syntax.Node, state Box, resume NativeResumeFunc) *NativeCallResumeFrame {
	return &NativeCallResumeFrame{
		parent: parent, call: call,
		evalScope: evalScope, node: node,
		state: state, resume: resume,
	}
}

func (f *NativeCallResumeFrame) Parent() Frame { return f.parent }
func (f *NativeCallResumeFrame) frame()        {}

// ancestorEntryFrame walks the parent chain to the nearest entry frame,
// which carries the scope the walk started under.
func ancestorEntryFrame(f Frame) *EntryFrame {
	for f != nil {
		if entry, ok := f.(*EntryFrame); ok {
			return entry
		}
		f = f.Parent()
	}
	return nil
}

// FrameName names a frame kind for debug logging and step traces.
func FrameName(f Frame) string {
	switch f.(type) {
	case *TerminalFrame:
		return "terminal"
	case *EntryFrame:
		return "entry"
	case *InvokeSyntaxNodeFrame:
		return "invoke-syntax-node"
	case *FileSyntaxFrame:
		return "file"
	case *BlockSyntaxFrame:
		return "block"
	case *ReturnStmtSyntaxFrame:
		return "return-stmt"
	case *VarSyntaxFrame:
		return "var"
	case *CallExprSyntaxFrame:
		return "call-expr"
	case *InvokeApplicativeFrame:
		return "invoke-applicative"
	case *InvokeOperativeFrame:
		return "invoke-operative"
	case *DotExprSyntaxFrame:
		return "dot-expr"
	case *NativeCallResumeFrame:
		return "native-call-resume"
	default:
		return "unknown"
	}
}

// operandList is an immutable singly-linked list of evaluated operands,
// most recent first. Successor frames share tails, so accumulating one
// more operand is a single allocation. A nil list is empty.
type operandList struct {
	value Box
	next  *operandList
	size  uint32
}

func (l *operandList) prepend(v Box) *operandList {
	return &operandList{value: v, next: l, size: l.length() + 1}
}

// operandsOf builds a list from values given in evaluation order.
func operandsOf(values ...Box) *operandList {
	var l *operandList
	for _, v := range values {
		l = l.prepend(v)
	}
	return l
}

func (l *operandList) length() uint32 {
	if l == nil {
		return 0
	}
	return l.size
}

// materialize copies the operands into a slice in evaluation order.
func (l *operandList) materialize() []Box {
	n := l.length()
	if n == 0 {
		return nil
	}
	args := make([]Box, n)
	for node := l; node != nil; node = node.next {
		n--
		args[n] = node.value
	}
	return args
}
