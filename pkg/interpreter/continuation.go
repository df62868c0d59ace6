package interpreter

// Continuation is a captured frame. Because frames are immutable and
// heap-allocated, the capture is just the pointer: resolving the frame
// again re-runs everything downstream of it, and nothing stops a program
// from doing that more than once.
type Continuation struct {
	frame Frame
}

// NewContinuation captures frame.
func NewContinuation(frame Frame) *Continuation {
	return &Continuation{frame: frame}
}

// Frame returns the captured frame.
func (c *Continuation) Frame() Frame {
	return c.frame
}

// ContinueWith resumes the captured frame with value, abandoning whatever
// the driver was doing: the returned step result points the cursor into
// the captured frame's chain.
func (c *Continuation) ContinueWith(cx *Context, value Box) StepResult {
	return ResolveFrame(cx, c.frame, EvalValue(value))
}

// ContinuationObject makes a continuation visible to the language. It is
// callable like a function object; invoking it with a value jumps instead
// of returning.
type ContinuationObject struct {
	PlainObject
	Cont *Continuation
}

// NewContinuationObject wraps a captured frame as a callable object.
func NewContinuationObject(frame Frame) *ContinuationObject {
	return &ContinuationObject{
		PlainObject: *NewPlainObject(),
		Cont:        NewContinuation(frame),
	}
}
