package interpreter

type resultKind int

const (
	resultError resultKind = iota
	resultException
	resultValue
	resultContinue
)

// EvalResult is the outcome of evaluating a syntax node: an unrecoverable
// engine error, a language-level exception carrying a payload box, or a
// value. There is no variant for "still running" -- in-progress work lives
// in the frame chain, not in results.
type EvalResult struct {
	kind  resultKind
	value Box
}

// EvalError returns the engine-error result.
func EvalError() EvalResult {
	return EvalResult{kind: resultError}
}

// EvalException returns an exception result carrying payload v.
func EvalException(v Box) EvalResult {
	return EvalResult{kind: resultException, value: v}
}

// EvalValue returns a value result.
func EvalValue(v Box) EvalResult {
	return EvalResult{kind: resultValue, value: v}
}

func (r EvalResult) IsError() bool     { return r.kind == resultError }
func (r EvalResult) IsException() bool { return r.kind == resultException }
func (r EvalResult) IsValue() bool     { return r.kind == resultValue }

// Value returns the carried box for value and exception results.
func (r EvalResult) Value() Box {
	return r.value
}

// CallResult is the outcome of invoking a function. It extends EvalResult
// with a Continue variant: instead of an immediate answer, the callee hands
// the driver a frame to run, and the answer arrives later by resolving
// that frame's parent.
type CallResult struct {
	kind  resultKind
	value Box
	frame Frame
}

// CallError returns the engine-error call result.
func CallError() CallResult {
	return CallResult{kind: resultError}
}

// CallException returns an exception call result carrying payload v.
func CallException(v Box) CallResult {
	return CallResult{kind: resultException, value: v}
}

// CallValue returns an immediate value call result.
func CallValue(v Box) CallResult {
	return CallResult{kind: resultValue, value: v}
}

// CallContinue returns a call result that suspends into frame.
func CallContinue(frame Frame) CallResult {
	return CallResult{kind: resultContinue, frame: frame}
}

func (r CallResult) IsError() bool     { return r.kind == resultError }
func (r CallResult) IsException() bool { return r.kind == resultException }
func (r CallResult) IsValue() bool     { return r.kind == resultValue }
func (r CallResult) IsContinue() bool  { return r.kind == resultContinue }

// Value returns the carried box for value and exception call results.
func (r CallResult) Value() Box {
	return r.value
}

// Frame returns the continuation frame for Continue call results.
func (r CallResult) Frame() Frame {
	return r.frame
}

// StepResult is what one driver step produces: either an engine error that
// aborts the run, or the next frame for the driver's cursor. Completion
// has no variant of its own -- the run is over when the cursor reaches the
// terminal frame.
type StepResult struct {
	kind  resultKind
	frame Frame
}

// StepError returns the engine-error step result.
func StepError() StepResult {
	return StepResult{kind: resultError}
}

// StepContinue returns a step result moving the cursor to frame.
func StepContinue(frame Frame) StepResult {
	return StepResult{kind: resultContinue, frame: frame}
}

func (r StepResult) IsError() bool    { return r.kind == resultError }
func (r StepResult) IsContinue() bool { return r.kind == resultContinue }

// Frame returns the next cursor frame for Continue step results.
func (r StepResult) Frame() Frame {
	return r.frame
}
