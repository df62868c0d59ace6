package interpreter

import (
	"fmt"

	"murmur/pkg/syntax"
)

// Syntax handlers are native operatives bound on the runtime root under
// "@"-prefixed names: dispatching a node looks up "@" plus the node's kind
// name on the scope chain and invokes whatever it finds with the raw node.
// Evaluation strategy therefore lives in the environment, not in the
// machine; a scope that rebinds a handler changes what the syntax means
// under it.
//
// Handlers for statement-list, binding and call nodes build the dedicated
// frames; the rest either answer immediately or suspend through resume
// frames.

// dispatchFrame recovers the dispatch frame a handler runs on behalf of,
// which carries the entry frame the dedicated frames need.
func dispatchFrame(cx *Context) (*InvokeSyntaxNodeFrame, bool) {
	f, ok := cx.CurrentFrame().(*InvokeSyntaxNodeFrame)
	return f, ok
}

func syntaxFile(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	dispatch, ok := dispatchFrame(cx)
	if !ok {
		return cx.faultCall("file handler invoked outside dispatch")
	}
	return CallContinue(NewFileSyntaxFrame(dispatch, dispatch.EntryFrame(), node))
}

func syntaxBlock(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	dispatch, ok := dispatchFrame(cx)
	if !ok {
		return cx.faultCall("block handler invoked outside dispatch")
	}
	return CallContinue(NewBlockSyntaxFrame(dispatch, dispatch.EntryFrame(), node))
}

func syntaxEmptyStmt(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	return CallValue(Undefined())
}

func syntaxExprStmt(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	dispatch, ok := dispatchFrame(cx)
	if !ok {
		return cx.faultCall("expression statement handler invoked outside dispatch")
	}
	return CallContinue(NewInvokeSyntaxNodeFrame(dispatch, dispatch.EntryFrame(), node.Subexpr()))
}

func syntaxReturnStmt(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	dispatch, ok := dispatchFrame(cx)
	if !ok {
		return cx.faultCall("return handler invoked outside dispatch")
	}
	return CallContinue(NewReturnStmtSyntaxFrame(dispatch, dispatch.EntryFrame(), node))
}

func syntaxIfStmt(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	// state counts clauses: 0 is the leading if, n is elsif n-1
	var resumeCond NativeResumeFunc
	resumeCond = func(cx *Context, call *NativeCallInfo, state Box, result EvalResult) CallResult {
		cond := result.Value()
		if !cond.IsInteger() {
			return CallException(ErrorBox(excIfCondNotInteger))
		}
		clause := uint32(state.Integer())
		if cond.Integer() != 0 {
			if clause == 0 {
				return evalBranchBlock(cx, call, node.IfBlock())
			}
			return evalBranchBlock(cx, call, node.ElsifBlock(clause-1))
		}
		if clause < node.NumElsifs() {
			return SuspendEval(cx, call, call.CallerScope, node.ElsifCond(clause), IntegerBox(int64(clause+1)), resumeCond)
		}
		if node.HasElse() {
			return evalBranchBlock(cx, call, node.ElseBlock())
		}
		return CallValue(Undefined())
	}
	return SuspendEval(cx, call, call.CallerScope, node.IfCond(), IntegerBox(0), resumeCond)
}

// evalBranchBlock evaluates a taken branch in a fresh scope delegating to
// the enclosing one, so bindings made inside the branch stay inside it.
func evalBranchBlock(cx *Context, call *NativeCallInfo, block syntax.Node) CallResult {
	blockScope := NewCallScope(call.CallerScope)
	return SuspendEval(cx, call, blockScope, block, Undefined(), resumePassValue)
}

func resumePassValue(cx *Context, call *NativeCallInfo, state Box, result EvalResult) CallResult {
	return CallValue(result.Value())
}

func syntaxDefStmt(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	params := make([]string, node.NumParams())
	for i := range params {
		params[i] = node.Param(uint32(i))
	}
	fn := NewScriptedFunction(node.Name(), params, node.Body(), call.CallerScope)
	call.CallerScope.DefineProperty(node.Name(), MethodDescriptor(fn))
	return CallValue(Undefined())
}

func syntaxVarStmt(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	dispatch, ok := dispatchFrame(cx)
	if !ok {
		return cx.faultCall("binding handler invoked outside dispatch")
	}
	return CallContinue(NewVarSyntaxFrame(dispatch, dispatch.EntryFrame(), node))
}

func syntaxLoopStmt(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	// loops have no condition; each iteration runs the body in a fresh
	// scope and exits only through return, a continuation or an exception
	var again NativeResumeFunc
	iterate := func(cx *Context, call *NativeCallInfo) CallResult {
		bodyScope := NewCallScope(call.CallerScope)
		return SuspendEval(cx, call, bodyScope, node.Body(), Undefined(), again)
	}
	again = func(cx *Context, call *NativeCallInfo, state Box, result EvalResult) CallResult {
		return iterate(cx, call)
	}
	return iterate(cx, call)
}

func syntaxCallExpr(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	dispatch, ok := dispatchFrame(cx)
	if !ok {
		return cx.faultCall("call handler invoked outside dispatch")
	}
	return CallContinue(NewCallExprSyntaxFrame(dispatch, dispatch.EntryFrame(), node))
}

func syntaxDotExpr(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	dispatch, ok := dispatchFrame(cx)
	if !ok {
		return cx.faultCall("property access handler invoked outside dispatch")
	}
	return CallContinue(NewDotExprSyntaxFrame(dispatch, dispatch.EntryFrame(), node))
}

func syntaxArrowExpr(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	// like dot access, but extraction only: a found method comes back
	// unbound instead of bound to the target
	return SuspendEval(cx, call, call.CallerScope, node.Target(), Undefined(),
		func(cx *Context, call *NativeCallInfo, state Box, result EvalResult) CallResult {
			target := result.Value()
			switch {
			case target.IsInteger():
				return CallException(NamedErrorBox(excPropertyOnInteger, node.Name()))
			case target.IsUndefined():
				return CallException(NamedErrorBox(excPropertyOnPrimitive, node.Name()))
			}
			desc, _, ok := GetPropertyDescriptor(target.Obj, node.Name())
			if !ok {
				return CallValue(Undefined())
			}
			if desc.IsSlot() {
				return CallValue(desc.Value)
			}
			unbound := LookupState{Receiver: Undefined(), Name: node.Name()}
			return CallValue(ObjectBox(NewFunctionObject(desc.Method, Undefined(), unbound)))
		})
}

func syntaxParenExpr(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	dispatch, ok := dispatchFrame(cx)
	if !ok {
		return cx.faultCall("paren handler invoked outside dispatch")
	}
	return CallContinue(NewInvokeSyntaxNodeFrame(dispatch, dispatch.EntryFrame(), node.Subexpr()))
}

func syntaxPosExpr(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	return SuspendEval(cx, call, call.CallerScope, node.Subexpr(), Undefined(),
		func(cx *Context, call *NativeCallInfo, state Box, result EvalResult) CallResult {
			v := result.Value()
			if !v.IsInteger() {
				return CallException(ErrorBox("Unary + applied to non-integer"))
			}
			return CallValue(v)
		})
}

func syntaxNegExpr(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	return SuspendEval(cx, call, call.CallerScope, node.Subexpr(), Undefined(),
		func(cx *Context, call *NativeCallInfo, state Box, result EvalResult) CallResult {
			v := result.Value()
			if !v.IsInteger() {
				return CallException(ErrorBox("Unary - applied to non-integer"))
			}
			return CallValue(IntegerBox(-v.Integer()))
		})
}

// binarySyntax builds the handler for one arithmetic node kind. The left
// operand evaluates first and rides to the second suspension as the resume
// state; the right operand evaluates in the first resume.
func binarySyntax(op syntax.NodeType) NativeOperativeFunc {
	return func(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
		return SuspendEval(cx, call, call.CallerScope, node.Lhs(), Undefined(),
			func(cx *Context, call *NativeCallInfo, state Box, result EvalResult) CallResult {
				lhs := result.Value()
				if !lhs.IsInteger() {
					return CallException(ErrorBox(binaryTypeError(op)))
				}
				return SuspendEval(cx, call, call.CallerScope, node.Rhs(), lhs,
					func(cx *Context, call *NativeCallInfo, state Box, result EvalResult) CallResult {
						rhs := result.Value()
						if !rhs.IsInteger() {
							return CallException(ErrorBox(binaryTypeError(op)))
						}
						return applyBinary(op, state.Integer(), rhs.Integer())
					})
			})
	}
}

// applyBinary computes one arithmetic operation on int64 values with
// two's-complement wraparound; division truncates toward zero.
func applyBinary(op syntax.NodeType, lhs, rhs int64) CallResult {
	switch op {
	case syntax.AddExpr:
		return CallValue(IntegerBox(lhs + rhs))
	case syntax.SubExpr:
		return CallValue(IntegerBox(lhs - rhs))
	case syntax.MulExpr:
		return CallValue(IntegerBox(lhs * rhs))
	default:
		if rhs == 0 {
			return CallException(ErrorBox(excDivisionByZero))
		}
		return CallValue(IntegerBox(lhs / rhs))
	}
}

func binaryTypeError(op syntax.NodeType) string {
	return fmt.Sprintf("Binary %s applied to non-integer", opSymbol(op))
}

func opSymbol(op syntax.NodeType) string {
	switch op {
	case syntax.AddExpr:
		return "+"
	case syntax.SubExpr:
		return "-"
	case syntax.MulExpr:
		return "*"
	default:
		return "/"
	}
}

func syntaxNameExpr(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	name := node.Name()
	scope := call.CallerScope
	desc, _, ok := GetPropertyDescriptor(scope, name)
	if !ok {
		return CallException(NamedErrorBox(excNameNotFound, name))
	}
	if desc.IsSlot() {
		return CallValue(desc.Value)
	}
	receiver := ObjectBox(scope)
	state := LookupState{Receiver: receiver, Name: name}
	return CallValue(ObjectBox(NewFunctionObject(desc.Method, receiver, state)))
}

func syntaxIntegerExpr(cx *Context, call *NativeCallInfo, node syntax.Node) CallResult {
	return CallValue(IntegerBox(node.Value()))
}
