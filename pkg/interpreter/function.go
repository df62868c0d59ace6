package interpreter

import "murmur/pkg/syntax"

type FunctionKind int

const (
	FunctionNative FunctionKind = iota
	FunctionScripted
)

// NativeApplicativeFunc is the entry point of a native applicative: it
// receives its operands already evaluated. It must not run the driver
// itself; to evaluate further syntax it suspends via SuspendEval, and to
// call back into the language it returns a Continue result carrying an
// invocation frame.
type NativeApplicativeFunc func(cx *Context, call *NativeCallInfo, args []Box) CallResult

// NativeOperativeFunc is the entry point of a native operative: it receives
// the raw, unevaluated syntax node it was applied to and decides itself
// what, if anything, gets evaluated. All syntax handlers have this shape.
type NativeOperativeFunc func(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult

// NativeResumeFunc receives the result of an evaluation a native suspended
// on. It is only called for value results; errors and exceptions bypass
// the native entirely and keep unwinding.
type NativeResumeFunc func(cx *Context, call *NativeCallInfo, state Box, result EvalResult) CallResult

// Function is a callable: native or scripted, and either applicative
// (operands evaluated before the call) or operative (operands handed over
// as raw syntax). Functions are not values themselves; they travel boxed
// inside FunctionObjects.
type Function struct {
	Kind      FunctionKind
	Operative bool

	// native payload
	Name        string
	Applicative NativeApplicativeFunc
	OperativeFn NativeOperativeFunc

	// scripted payload
	Params []string
	Body   syntax.Node
	Scope  Object
}

// NewNativeApplicative creates a native applicative function.
func NewNativeApplicative(name string, fn NativeApplicativeFunc) *Function {
	return &Function{Kind: FunctionNative, Name: name, Applicative: fn}
}

// NewNativeOperative creates a native operative function.
func NewNativeOperative(name string, fn NativeOperativeFunc) *Function {
	return &Function{Kind: FunctionNative, Operative: true, Name: name, OperativeFn: fn}
}

// NewScriptedFunction creates an applicative function from a parsed body.
// The function closes over scope: its activations delegate to it.
func NewScriptedFunction(name string, params []string, body syntax.Node, scope Object) *Function {
	return &Function{
		Kind:   FunctionScripted,
		Name:   name,
		Params: params,
		Body:   body,
		Scope:  scope,
	}
}

// IsNative reports whether the function is implemented in the host.
func (f *Function) IsNative() bool {
	return f.Kind == FunctionNative
}

// IsScripted reports whether the function is implemented in the language.
func (f *Function) IsScripted() bool {
	return f.Kind == FunctionScripted
}

// NativeCallInfo carries the context of one native invocation: how the
// callee was found, the scope the call happens in, and the receiver it was
// bound to.
type NativeCallInfo struct {
	State       LookupState
	CallerScope Object
	Callee      *FunctionObject
	Receiver    Box
}

// FunctionObject is a function bound to the receiver it was looked up on.
// Method lookup synthesizes one of these; calling it supplies the stored
// receiver and lookup state to the function.
type FunctionObject struct {
	PlainObject
	Fn       *Function
	Receiver Box
	State    LookupState
}

// NewFunctionObject binds fn to a receiver under the given lookup state.
func NewFunctionObject(fn *Function, receiver Box, state LookupState) *FunctionObject {
	return &FunctionObject{
		PlainObject: *NewPlainObject(),
		Fn:          fn,
		Receiver:    receiver,
		State:       state,
	}
}
