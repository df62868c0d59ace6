package interpreter

import (
	"errors"
	"fmt"
	"io"
	"os"

	"murmur/pkg/syntax"
)

// Interpreter evaluates packed syntax trees by driving a frame chain: one
// flat loop steps the current frame until the chain's terminal sentinel is
// reached. All run-to-run state (the global scope and everything hanging
// off it) lives in the runtime, so successive evaluations share bindings.
type Interpreter struct {
	runtime  *Runtime
	out      io.Writer
	maxSteps uint64
	trace    func(step uint64, frame Frame)
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithWriter sets the writer print output goes to. Defaults to stdout.
func WithWriter(w io.Writer) Option {
	return func(it *Interpreter) {
		it.out = w
	}
}

// WithMaxSteps bounds the number of driver steps per evaluation; 0 means
// unbounded. Exceeding the bound aborts with ErrMaxStepsExceeded.
func WithMaxSteps(n uint64) Option {
	return func(it *Interpreter) {
		it.maxSteps = n
	}
}

// WithTrace installs a callback invoked before every driver step with the
// step count and the frame about to run.
func WithTrace(fn func(step uint64, frame Frame)) Option {
	return func(it *Interpreter) {
		it.trace = fn
	}
}

// New creates an interpreter with a freshly bootstrapped runtime.
func New(opts ...Option) *Interpreter {
	it := &Interpreter{}
	for _, opt := range opts {
		opt(it)
	}
	if it.out == nil {
		it.out = os.Stdout
	}
	it.runtime = NewRuntime()
	return it
}

// Runtime returns the interpreter's runtime, for binding additional
// natives or inspecting the global scope.
func (it *Interpreter) Runtime() *Runtime {
	return it.runtime
}

// GlobalScope returns the persistent global scope object.
func (it *Interpreter) GlobalScope() *PlainObject {
	return it.runtime.GlobalScope()
}

// EvalTree evaluates a packed tree's root node in the global scope.
func (it *Interpreter) EvalTree(tree *syntax.Tree) (Box, error) {
	return it.EvalNode(tree.Root(), it.runtime.GlobalScope())
}

// EvalNode evaluates one node in the given scope and returns the final
// value. A language-level exception surfaces as an error wrapping
// ErrException, with the exception payload as the returned box.
func (it *Interpreter) EvalNode(node syntax.Node, scope Object) (Box, error) {
	cx := newContext(it)
	terminal := NewTerminalFrame()
	entry := NewEntryFrame(terminal, node, scope)
	return cx.run(entry)
}

// Resume re-enters a captured continuation with value and drives the
// captured chain to its terminal. The same continuation can be resumed any
// number of times; each resumption re-runs everything downstream of the
// captured frame.
func (it *Interpreter) Resume(cont *ContinuationObject, value Box) (Box, error) {
	cx := newContext(it)
	sr := cont.Cont.ContinueWith(cx, value)
	if sr.IsError() {
		return Undefined(), cx.internalErr()
	}
	return cx.run(sr.Frame())
}

// Context is the per-evaluation state handed to natives: which frame the
// native acts on behalf of, the step count so far, and access to the
// output writer.
type Context struct {
	interp *Interpreter
	frame  Frame
	steps  uint64
	fault  string
}

func newContext(it *Interpreter) *Context {
	return &Context{interp: it}
}

// NewContext creates a fresh evaluation context, for callers that drive
// StepFrame and ResolveFrame over hand-built frame chains.
func (it *Interpreter) NewContext() *Context {
	return newContext(it)
}

// Writer returns the interpreter's output writer.
func (cx *Context) Writer() io.Writer {
	return cx.interp.out
}

// CurrentFrame returns the frame the running native acts on behalf of:
// frames the native creates should use this as their parent.
func (cx *Context) CurrentFrame() Frame {
	return cx.frame
}

// internalError records an engine fault and returns the error step result.
func (cx *Context) internalError(msg string) StepResult {
	if cx.fault == "" {
		cx.fault = msg
	}
	return StepError()
}

// faultCall records an engine fault and returns the error call result.
func (cx *Context) faultCall(msg string) CallResult {
	if cx.fault == "" {
		cx.fault = msg
	}
	return CallError()
}

func (cx *Context) internalErr() error {
	if cx.fault != "" {
		return fmt.Errorf("%w: %s", ErrInternal, cx.fault)
	}
	return ErrInternal
}

// run is the trampoline: step the cursor frame, follow the returned frame,
// stop when the cursor lands on a terminal. The loop itself never grows
// the host stack; unbounded recursion in the evaluated program shows up as
// a longer frame chain instead.
func (cx *Context) run(start Frame) (Box, error) {
	cursor := start
	for {
		if terminal, ok := cursor.(*TerminalFrame); ok {
			return cx.finish(terminal)
		}
		if cx.interp.maxSteps > 0 && cx.steps >= cx.interp.maxSteps {
			return Undefined(), fmt.Errorf("%w after %d steps", ErrMaxStepsExceeded, cx.steps)
		}
		cx.steps++
		if cx.interp.trace != nil {
			cx.interp.trace(cx.steps, cursor)
		}

		cx.frame = cursor
		sr := StepFrame(cx, cursor)
		if sr.IsError() {
			return Undefined(), cx.internalErr()
		}
		cursor = sr.Frame()
	}
}

// finish translates the terminal frame's recorded result into the public
// value-or-error shape.
func (cx *Context) finish(terminal *TerminalFrame) (Box, error) {
	result, resolved := terminal.Result()
	if !resolved {
		return Undefined(), fmt.Errorf("%w: terminal frame reached without a result", ErrInternal)
	}
	switch {
	case result.IsValue():
		return result.Value(), nil
	case result.IsException():
		payload := result.Value()
		return payload, fmt.Errorf("%w: %s", ErrException, payload)
	default:
		return Undefined(), cx.internalErr()
	}
}

var (
	// ErrException reports an exception that unwound to the top without
	// being handled. The exception payload is the returned box.
	ErrException = errors.New("uncaught exception")

	// ErrInternal reports an engine fault: a frame or result in a state
	// the machine has no transition for.
	ErrInternal = errors.New("internal interpreter error")

	// ErrMaxStepsExceeded reports that an evaluation ran longer than the
	// configured step bound.
	ErrMaxStepsExceeded = errors.New("maximum steps exceeded")
)
