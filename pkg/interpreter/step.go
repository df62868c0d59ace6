package interpreter

import "murmur/pkg/syntax"

// StepFrame advances one frame by one unit of work. It either hands the
// driver the next frame to run or reports an engine error; completed
// results travel through ResolveFrame instead. Neither function recurses
// through the frame chain, so host stack use per step is constant no
// matter how deeply frames nest.
func StepFrame(cx *Context, f Frame) StepResult {
	switch f := f.(type) {
	case *TerminalFrame:
		// the driver stops at the terminal; stepping it is a bug
		return cx.internalError("step on terminal frame")

	case *EntryFrame:
		return StepContinue(NewInvokeSyntaxNodeFrame(f, f, f.node))

	case *InvokeSyntaxNodeFrame:
		return stepInvokeSyntaxNode(cx, f)

	case *FileSyntaxFrame:
		if f.node.NumStatements() == 0 {
			return ResolveFrame(cx, f.parent, EvalValue(Undefined()))
		}
		return StepContinue(NewInvokeSyntaxNodeFrame(f, f.entry, f.node.Statement(f.statementNo)))

	case *BlockSyntaxFrame:
		if f.node.NumStatements() == 0 {
			return ResolveFrame(cx, f.parent, EvalValue(Undefined()))
		}
		return StepContinue(NewInvokeSyntaxNodeFrame(f, f.entry, f.node.Statement(f.statementNo)))

	case *ReturnStmtSyntaxFrame:
		if f.node.HasExpr() {
			return StepContinue(NewInvokeSyntaxNodeFrame(f, f.entry, f.node.Subexpr()))
		}
		// no operand: resolve self, which performs the jump
		return ResolveFrame(cx, f, EvalValue(Undefined()))

	case *VarSyntaxFrame:
		if f.bindingNo >= f.node.NumBindings() {
			return ResolveFrame(cx, f.parent, EvalValue(Undefined()))
		}
		if f.node.HasBindingExpr(f.bindingNo) {
			return StepContinue(NewInvokeSyntaxNodeFrame(f, f.entry, f.node.BindingExpr(f.bindingNo)))
		}
		f.entry.scope.DefineProperty(f.node.BindingName(f.bindingNo), SlotDescriptor(Undefined()))
		if f.bindingNo+1 < f.node.NumBindings() {
			return StepContinue(f.nextBinding())
		}
		return ResolveFrame(cx, f.parent, EvalValue(Undefined()))

	case *CallExprSyntaxFrame:
		switch f.phase {
		case callPhaseCallee:
			return StepContinue(NewInvokeSyntaxNodeFrame(f, f.entry, f.node.Callee()))
		case callPhaseArg:
			return StepContinue(NewInvokeSyntaxNodeFrame(f, f.entry, f.node.Arg(f.argNo)))
		default:
			if fnObj, ok := calleeFunction(f.callee); ok && fnObj.Fn.Operative {
				return StepContinue(NewInvokeOperativeFrame(f, f.node, f.callee))
			}
			return StepContinue(NewInvokeApplicativeFrame(f, f.node, f.callee, f.operands))
		}

	case *InvokeApplicativeFrame:
		return stepInvokeApplicative(cx, f)

	case *InvokeOperativeFrame:
		fnObj, ok := calleeFunction(f.callee)
		if !ok {
			return cx.internalError("operative invocation of a non-function")
		}
		call := &NativeCallInfo{
			State:       fnObj.State,
			CallerScope: callerScopeOf(f),
			Callee:      fnObj,
			Receiver:    fnObj.Receiver,
		}
		return completeCall(cx, f.parent, invokeOperative(cx, f, call, fnObj.Fn, f.node))

	case *DotExprSyntaxFrame:
		return StepContinue(NewInvokeSyntaxNodeFrame(f, f.entry, f.node.Target()))

	case *NativeCallResumeFrame:
		return StepContinue(NewEntryFrame(f, f.node, f.evalScope))

	default:
		return cx.internalError("step on unknown frame kind")
	}
}

// ResolveFrame delivers result to frame and keeps delivering as frames
// forward it up the chain. Frames never intercept errors or exceptions;
// only value results trigger frame-specific behaviour. The loop is the
// sole place results move upward, and a continuation jump is nothing more
// than retargeting it at the captured frame.
func ResolveFrame(cx *Context, frame Frame, result EvalResult) StepResult {
	for {
		switch f := frame.(type) {
		case *TerminalFrame:
			f.setResult(result)
			return StepContinue(f)

		case *EntryFrame:
			frame = f.parent

		case *InvokeSyntaxNodeFrame:
			frame = f.parent

		case *FileSyntaxFrame:
			if !result.IsValue() {
				frame = f.parent
				continue
			}
			if f.statementNo+1 < f.node.NumStatements() {
				return StepContinue(f.nextStatement())
			}
			frame = f.parent

		case *BlockSyntaxFrame:
			if !result.IsValue() {
				frame = f.parent
				continue
			}
			if f.statementNo+1 < f.node.NumStatements() {
				return StepContinue(f.nextStatement())
			}
			frame = f.parent

		case *ReturnStmtSyntaxFrame:
			if !result.IsValue() {
				frame = f.parent
				continue
			}
			desc, _, ok := GetPropertyDescriptor(f.entry.scope, ReturnBinding)
			if !ok {
				result = EvalException(NamedErrorBox(excNameNotFound, ReturnBinding))
				frame = f.parent
				continue
			}
			contObj, ok := continuationIn(desc)
			if !ok {
				return cx.internalError("return binding does not hold a continuation")
			}
			// the jump: aim the loop at the captured frame
			frame = contObj.Cont.Frame()

		case *VarSyntaxFrame:
			if !result.IsValue() {
				frame = f.parent
				continue
			}
			f.entry.scope.DefineProperty(f.node.BindingName(f.bindingNo), SlotDescriptor(result.Value()))
			if f.bindingNo+1 < f.node.NumBindings() {
				return StepContinue(f.nextBinding())
			}
			result = EvalValue(Undefined())
			frame = f.parent

		case *CallExprSyntaxFrame:
			if !result.IsValue() {
				frame = f.parent
				continue
			}
			switch f.phase {
			case callPhaseCallee:
				v := result.Value()
				if !isCallable(v) {
					result = EvalException(ErrorBox(excCannotCallNonFunction))
					frame = f.parent
					continue
				}
				if f.node.NumArgs() == 0 || isOperative(v) {
					return StepContinue(f.withCallee(v, callPhaseInvoke))
				}
				return StepContinue(f.withCallee(v, callPhaseArg))
			case callPhaseArg:
				if f.argNo+1 < f.node.NumArgs() {
					return StepContinue(f.withOperand(result.Value(), callPhaseArg))
				}
				return StepContinue(f.withOperand(result.Value(), callPhaseInvoke))
			default:
				// invocation finished; the call expression is done
				frame = f.parent
			}

		case *InvokeApplicativeFrame:
			frame = f.parent

		case *InvokeOperativeFrame:
			frame = f.parent

		case *DotExprSyntaxFrame:
			if !result.IsValue() {
				frame = f.parent
				continue
			}
			result = lookupDotProperty(result.Value(), f.node.Name())
			frame = f.parent

		case *NativeCallResumeFrame:
			if !result.IsValue() {
				frame = f.parent
				continue
			}
			cx.frame = f.parent
			cr := f.resume(cx, f.call, f.state, result)
			switch {
			case cr.IsValue():
				result = EvalValue(cr.Value())
				frame = f.parent
			case cr.IsException():
				result = EvalException(cr.Value())
				frame = f.parent
			case cr.IsContinue():
				return StepContinue(cr.Frame())
			default:
				return StepError()
			}

		default:
			return cx.internalError("resolve on unknown frame kind")
		}
	}
}

// stepInvokeSyntaxNode performs name-based dispatch: the node's kind maps
// to a handler binding on the scope chain. A slot binding short-circuits
// to its value; a method binding must be operative and runs with the raw
// node.
func stepInvokeSyntaxNode(cx *Context, f *InvokeSyntaxNodeFrame) StepResult {
	name := f.node.Type().HandlerName()
	scope := f.entry.scope

	desc, _, ok := GetPropertyDescriptor(scope, name)
	if !ok {
		return ResolveFrame(cx, f.parent, EvalException(NamedErrorBox(excSyntaxBindingNotFound, name)))
	}
	if desc.IsSlot() {
		return ResolveFrame(cx, f.parent, EvalValue(desc.Value))
	}

	fn := desc.Method
	if !fn.Operative {
		return ResolveFrame(cx, f.parent, EvalException(NamedErrorBox(excSyntaxBindingApplicative, name)))
	}

	receiver := ObjectBox(scope)
	state := LookupState{Receiver: receiver, Name: name}
	fnObj := NewFunctionObject(fn, receiver, state)
	call := &NativeCallInfo{
		State:       state,
		CallerScope: scope,
		Callee:      fnObj,
		Receiver:    receiver,
	}
	return completeCall(cx, f.parent, invokeOperative(cx, f, call, fn, f.node))
}

// stepInvokeApplicative performs a call with evaluated operands: a jump
// for continuations, a direct native call, or a fresh activation for a
// scripted function.
func stepInvokeApplicative(cx *Context, f *InvokeApplicativeFrame) StepResult {
	if contObj, ok := calleeContinuation(f.callee); ok {
		value := Undefined()
		if f.operands.length() > 0 {
			value = f.operands.materialize()[0]
		}
		return contObj.Cont.ContinueWith(cx, value)
	}

	fnObj, ok := calleeFunction(f.callee)
	if !ok {
		return cx.internalError("applicative invocation of a non-function")
	}
	call := &NativeCallInfo{
		State:       fnObj.State,
		CallerScope: callerScopeOf(f),
		Callee:      fnObj,
		Receiver:    fnObj.Receiver,
	}
	return completeCall(cx, f.parent, invokeApplicative(cx, f, call, fnObj.Fn, f.operands.materialize()))
}

// invokeOperative calls fn with the raw node. Only natives can be
// operative; the surface language has no way to produce a scripted one.
func invokeOperative(cx *Context, at Frame, call *NativeCallInfo, fn *Function, node syntax.Node) CallResult {
	if fn.IsNative() {
		cx.frame = at
		return fn.OperativeFn(cx, call, node)
	}
	return cx.faultCall("cannot interpret scripted operatives")
}

// invokeApplicative calls fn with evaluated operands. Scripted functions
// get a fresh call scope with parameters bound and a return continuation
// capturing the new activation's entry frame.
func invokeApplicative(cx *Context, at Frame, call *NativeCallInfo, fn *Function, args []Box) CallResult {
	if fn.Operative {
		return cx.faultCall("applicative invocation of an operative")
	}
	if fn.IsNative() {
		cx.frame = at
		return fn.Applicative(cx, call, args)
	}

	if len(args) != len(fn.Params) {
		return CallException(ErrorBox(excArgumentMismatch))
	}
	callScope := NewCallScope(fn.Scope)
	for i, param := range fn.Params {
		callScope.DefineProperty(param, SlotDescriptor(args[i]))
	}
	entry := NewEntryFrame(at, fn.Body, callScope)
	callScope.DefineProperty(ReturnBinding, SlotDescriptor(ObjectBox(NewContinuationObject(entry))))
	return CallContinue(entry)
}

// completeCall translates a call result into the driver's terms, resolving
// immediate outcomes against parent.
func completeCall(cx *Context, parent Frame, cr CallResult) StepResult {
	switch {
	case cr.IsValue():
		return ResolveFrame(cx, parent, EvalValue(cr.Value()))
	case cr.IsException():
		return ResolveFrame(cx, parent, EvalException(cr.Value()))
	case cr.IsContinue():
		return StepContinue(cr.Frame())
	default:
		return StepError()
	}
}

// lookupDotProperty resolves a property access on an evaluated target. A
// missing property yields undefined; a method binds to the target.
func lookupDotProperty(target Box, name string) EvalResult {
	switch {
	case target.IsInteger():
		return EvalException(NamedErrorBox(excPropertyOnInteger, name))
	case target.IsUndefined():
		return EvalException(NamedErrorBox(excPropertyOnPrimitive, name))
	}

	desc, _, ok := GetPropertyDescriptor(target.Obj, name)
	if !ok {
		return EvalValue(Undefined())
	}
	if desc.IsSlot() {
		return EvalValue(desc.Value)
	}
	state := LookupState{Receiver: target, Name: name}
	return EvalValue(ObjectBox(NewFunctionObject(desc.Method, target, state)))
}

// calleeFunction unwraps a box holding a function object.
func calleeFunction(v Box) (*FunctionObject, bool) {
	if !v.IsObject() {
		return nil, false
	}
	fnObj, ok := v.Obj.(*FunctionObject)
	return fnObj, ok
}

// calleeContinuation unwraps a box holding a continuation object.
func calleeContinuation(v Box) (*ContinuationObject, bool) {
	if !v.IsObject() {
		return nil, false
	}
	contObj, ok := v.Obj.(*ContinuationObject)
	return contObj, ok
}

// isCallable reports whether v can appear as a callee.
func isCallable(v Box) bool {
	if _, ok := calleeFunction(v); ok {
		return true
	}
	_, ok := calleeContinuation(v)
	return ok
}

// isOperative reports whether v is an operative function.
func isOperative(v Box) bool {
	fnObj, ok := calleeFunction(v)
	return ok && fnObj.Fn.Operative
}

// continuationIn unwraps a slot descriptor holding a continuation object.
func continuationIn(desc PropertyDescriptor) (*ContinuationObject, bool) {
	if !desc.IsSlot() || !desc.Value.IsObject() {
		return nil, false
	}
	contObj, ok := desc.Value.Obj.(*ContinuationObject)
	return contObj, ok
}

// callerScopeOf finds the scope a call happens in: the scope of the
// nearest entry frame above the invocation.
func callerScopeOf(f Frame) Object {
	if entry := ancestorEntryFrame(f); entry != nil {
		return entry.scope
	}
	return nil
}
