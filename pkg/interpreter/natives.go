package interpreter

import (
	"fmt"

	"murmur/pkg/syntax"
)

// SuspendEval suspends the running native until node has been evaluated in
// scope: the returned call result parks a resume frame under the native's
// current frame, and resume later receives the value along with state.
// Errors and exceptions bypass resume and keep unwinding past the native.
func SuspendEval(cx *Context, call *NativeCallInfo, scope Object, node syntax.Node, state Box, resume NativeResumeFunc) CallResult {
	return CallContinue(NewNativeCallResumeFrame(cx.CurrentFrame(), call, scope, node, state, resume))
}

// nativePrint writes its operands space separated on one line and yields
// undefined.
func nativePrint(cx *Context, call *NativeCallInfo, args []Box) CallResult {
	for i, arg := range args {
		if i > 0 {
			fmt.Fprint(cx.Writer(), " ")
		}
		fmt.Fprint(cx.Writer(), arg.String())
	}
	fmt.Fprintln(cx.Writer())
	return CallValue(Undefined())
}

// nativeCallCC captures the continuation of its own call expression, wraps
// it as a callable object, and calls its single operand with it. Invoking
// the captured object later, any number of times, resumes the program at
// the point where the callcc call would have returned.
func nativeCallCC(cx *Context, call *NativeCallInfo, args []Box) CallResult {
	if len(args) != 1 {
		return CallException(ErrorBox(excArgumentMismatch))
	}
	if !isCallable(args[0]) {
		return CallException(ErrorBox(excCannotCallNonFunction))
	}

	k := ObjectBox(NewContinuationObject(cx.CurrentFrame()))
	invoke := NewInvokeApplicativeFrame(cx.CurrentFrame(), syntax.Node{}, args[0], operandsOf(k))
	return CallContinue(invoke)
}
