package interpreter_test

import (
	"testing"

	"murmur/pkg/interpreter"
	"murmur/pkg/syntax"
)

func TestDelegateChainLookup(t *testing.T) {
	grandparent := interpreter.NewPlainObject()
	grandparent.DefineProperty("x", interpreter.SlotDescriptor(interpreter.IntegerBox(1)))
	parent := interpreter.NewPlainObject(grandparent)
	child := interpreter.NewPlainObject(parent)

	desc, holder, ok := interpreter.GetPropertyDescriptor(child, "x")
	if !ok {
		t.Fatal("expected to find x through the delegate chain")
	}
	if holder != interpreter.Object(grandparent) {
		t.Errorf("expected the defining object as holder")
	}
	if !desc.IsSlot() || desc.Value.Integer() != 1 {
		t.Errorf("unexpected descriptor %v", desc)
	}

	if _, _, ok := interpreter.GetPropertyDescriptor(child, "missing"); ok {
		t.Error("expected missing name to stay missing")
	}
}

func TestDelegateDepthFirstOrder(t *testing.T) {
	// the first delegate's chain wins over later delegates
	deep := interpreter.NewPlainObject()
	deep.DefineProperty("x", interpreter.SlotDescriptor(interpreter.IntegerBox(1)))
	first := interpreter.NewPlainObject(deep)
	second := interpreter.NewPlainObject()
	second.DefineProperty("x", interpreter.SlotDescriptor(interpreter.IntegerBox(2)))

	obj := interpreter.NewPlainObject(first, second)
	desc, _, ok := interpreter.GetPropertyDescriptor(obj, "x")
	if !ok {
		t.Fatal("expected to find x")
	}
	if desc.Value.Integer() != 1 {
		t.Errorf("expected the first delegate chain to win, got %d", desc.Value.Integer())
	}
}

func TestOwnPropertyShadowsDelegate(t *testing.T) {
	parent := interpreter.NewPlainObject()
	parent.DefineProperty("x", interpreter.SlotDescriptor(interpreter.IntegerBox(1)))
	child := interpreter.NewPlainObject(parent)
	child.DefineProperty("x", interpreter.SlotDescriptor(interpreter.IntegerBox(2)))

	desc, holder, ok := interpreter.GetPropertyDescriptor(child, "x")
	if !ok || desc.Value.Integer() != 2 || holder != interpreter.Object(child) {
		t.Errorf("expected the own property to shadow the delegate")
	}
}

// bindTable installs a native that returns a fresh object with a slot
// "answer", a method "self" reporting whether its receiver is bound, and a
// delegate carrying "inherited".
func bindTable(it *interpreter.Interpreter) {
	it.Runtime().BindApplicative("table", func(cx *interpreter.Context, call *interpreter.NativeCallInfo, args []interpreter.Box) interpreter.CallResult {
		base := interpreter.NewPlainObject()
		base.DefineProperty("inherited", interpreter.SlotDescriptor(interpreter.IntegerBox(7)))

		obj := interpreter.NewPlainObject(base)
		obj.DefineProperty("answer", interpreter.SlotDescriptor(interpreter.IntegerBox(42)))
		obj.DefineProperty("self", interpreter.MethodDescriptor(
			interpreter.NewNativeApplicative("self", func(cx *interpreter.Context, call *interpreter.NativeCallInfo, args []interpreter.Box) interpreter.CallResult {
				if call.Receiver.IsObject() {
					return interpreter.CallValue(interpreter.IntegerBox(1))
				}
				return interpreter.CallValue(interpreter.IntegerBox(0))
			})))
		return interpreter.CallValue(interpreter.ObjectBox(obj))
	})
}

func evalWithTable(t *testing.T, src string) (interpreter.Box, string, error) {
	t.Helper()

	it, out := newInterp()
	bindTable(it)
	box, err := it.EvalTree(mustParse(t, src))
	return box, out.String(), err
}

func TestDotSlot(t *testing.T) {
	box, _, err := evalWithTable(t, "var o := table(); o.answer;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantInteger(t, box, 42)
}

func TestDotDelegated(t *testing.T) {
	box, _, err := evalWithTable(t, "var o := table(); o.inherited;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantInteger(t, box, 7)
}

func TestDotMissingYieldsUndefined(t *testing.T) {
	box, _, err := evalWithTable(t, "var o := table(); o.nothing;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !box.IsUndefined() {
		t.Errorf("expected undefined, got %s", box)
	}
}

func TestDotMethodBindsReceiver(t *testing.T) {
	box, _, err := evalWithTable(t, "var o := table(); o.self();")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantInteger(t, box, 1)
}

func TestArrowExtractsUnbound(t *testing.T) {
	box, _, err := evalWithTable(t, "var o := table(); o->self();")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantInteger(t, box, 0)
}

func TestArrowSlotAndMissing(t *testing.T) {
	box, _, err := evalWithTable(t, "var o := table(); o->answer;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantInteger(t, box, 42)

	box, _, err = evalWithTable(t, "var o := table(); o->nothing;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !box.IsUndefined() {
		t.Errorf("expected undefined, got %s", box)
	}
}

func TestDotOnInteger(t *testing.T) {
	_, _, err := evalSource(t, "var x := 5; x.foo;")
	wantException(t, err, "Cannot look up property on an integer.")
}

func TestDotOnUndefined(t *testing.T) {
	_, _, err := evalSource(t, "var u; u.foo;")
	wantException(t, err, "Cannot look up property on a primitive value")
}

func TestHandlerSlotShortCircuits(t *testing.T) {
	// a handler binding that is a plain slot short-circuits dispatch: the
	// slot's value becomes the node's result without any invocation
	it, _ := newInterp()
	tree := mustParse(t, "5;")

	scope := interpreter.NewCallScope(it.GlobalScope())
	scope.DefineProperty(syntax.IntegerExpr.HandlerName(), interpreter.SlotDescriptor(interpreter.IntegerBox(777)))

	box, err := it.EvalNode(tree.Root(), scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantInteger(t, box, 777)
}

func TestHandlerNotFound(t *testing.T) {
	// a scope chain without handler bindings cannot dispatch anything
	it, _ := newInterp()
	tree := mustParse(t, "5;")

	_, err := it.EvalNode(tree.Root(), interpreter.NewPlainObject())
	wantException(t, err, "Syntax method binding not found.")
}

func TestHandlerApplicativeRejected(t *testing.T) {
	it, _ := newInterp()
	tree := mustParse(t, "5;")

	scope := interpreter.NewPlainObject()
	scope.DefineProperty(syntax.File.HandlerName(), interpreter.MethodDescriptor(
		interpreter.NewNativeApplicative("bogus", func(cx *interpreter.Context, call *interpreter.NativeCallInfo, args []interpreter.Box) interpreter.CallResult {
			return interpreter.CallValue(interpreter.Undefined())
		})))

	_, err := it.EvalNode(tree.Root(), scope)
	wantException(t, err, "Syntax method binding is applicative.")
}

func TestOperativeReceivesRawNode(t *testing.T) {
	// an operative sees the unevaluated call expression; its operands must
	// not run
	it, out := newInterp()

	var sawType syntax.NodeType
	var sawArgs uint32
	it.Runtime().BindOperative("quench", func(cx *interpreter.Context, call *interpreter.NativeCallInfo, node syntax.Node) interpreter.CallResult {
		sawType = node.Type()
		sawArgs = node.NumArgs()
		return interpreter.CallValue(interpreter.IntegerBox(99))
	})

	src := `
def mark(v) { print(v); return v; }
print(quench(mark(1)));
print(mark(2));
`
	if _, err := it.EvalTree(mustParse(t, src)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sawType != syntax.CallExpr {
		t.Errorf("expected the operative to receive the call expression, got %s", sawType)
	}
	if sawArgs != 1 {
		t.Errorf("expected 1 raw operand, got %d", sawArgs)
	}
	// mark(1) must not have run; mark(2) must have
	if out.String() != "99\n2\n2\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestOperativeReadsOperandSource(t *testing.T) {
	// the packed tree keeps spans, so an operative can read the exact text
	// of a raw operand
	it, _ := newInterp()

	var sawSource string
	it.Runtime().BindOperative("probe", func(cx *interpreter.Context, call *interpreter.NativeCallInfo, node syntax.Node) interpreter.CallResult {
		sawSource = node.Arg(0).Source()
		return interpreter.CallValue(interpreter.Undefined())
	})

	if _, err := it.EvalTree(mustParse(t, "probe(a + b * 2);")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sawSource != "a + b * 2" {
		t.Errorf("expected operand source %q, got %q", "a + b * 2", sawSource)
	}
}

func TestOperativeEvaluatesOnDemand(t *testing.T) {
	// an operative can choose to evaluate a raw operand through the
	// suspension bridge
	it, out := newInterp()

	it.Runtime().BindOperative("twice", func(cx *interpreter.Context, call *interpreter.NativeCallInfo, node syntax.Node) interpreter.CallResult {
		if node.NumArgs() != 1 {
			return interpreter.CallException(interpreter.ErrorBox("Arguments do not match params."))
		}
		return interpreter.SuspendEval(cx, call, call.CallerScope, node.Arg(0), interpreter.Undefined(),
			func(cx *interpreter.Context, call *interpreter.NativeCallInfo, state interpreter.Box, result interpreter.EvalResult) interpreter.CallResult {
				v := result.Value()
				if !v.IsInteger() {
					return interpreter.CallException(interpreter.ErrorBox("Binary + applied to non-integer"))
				}
				return interpreter.CallValue(interpreter.IntegerBox(2 * v.Integer()))
			})
	})

	if _, err := it.EvalTree(mustParse(t, "print(twice(20 + 1));")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "42\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}
