package interpreter

import "murmur/pkg/syntax"

// ReturnBinding is the reserved scope binding holding an activation's
// return continuation. The "@" prefix keeps it out of reach of source
// programs, which cannot lex such a name; only the machine reads and
// writes it.
const ReturnBinding = "@return"

// Runtime holds the state that outlives a single evaluation: the root
// object carrying syntax handlers and built-in functions, and the global
// scope delegating to it.
type Runtime struct {
	root        *PlainObject
	globalScope *PlainObject
}

// NewRuntime bootstraps a runtime: a root object with every syntax
// handler and core native bound, and a fresh global scope on top.
func NewRuntime() *Runtime {
	root := NewPlainObject()
	rt := &Runtime{
		root:        root,
		globalScope: NewGlobalScope(root),
	}
	rt.bindSyntaxHandlers()
	rt.bindCoreNatives()
	return rt
}

// Root returns the delegate all scopes ultimately reach.
func (rt *Runtime) Root() *PlainObject {
	return rt.root
}

// GlobalScope returns the persistent top-level scope.
func (rt *Runtime) GlobalScope() *PlainObject {
	return rt.globalScope
}

// BindOperative binds a native operative as a method on the root, making
// it visible to every scope.
func (rt *Runtime) BindOperative(name string, fn NativeOperativeFunc) {
	rt.root.DefineProperty(name, MethodDescriptor(NewNativeOperative(name, fn)))
}

// BindApplicative binds a native applicative as a method on the root.
func (rt *Runtime) BindApplicative(name string, fn NativeApplicativeFunc) {
	rt.root.DefineProperty(name, MethodDescriptor(NewNativeApplicative(name, fn)))
}

func (rt *Runtime) bindSyntaxHandlers() {
	handlers := map[syntax.NodeType]NativeOperativeFunc{
		syntax.File:        syntaxFile,
		syntax.EmptyStmt:   syntaxEmptyStmt,
		syntax.ExprStmt:    syntaxExprStmt,
		syntax.ReturnStmt:  syntaxReturnStmt,
		syntax.IfStmt:      syntaxIfStmt,
		syntax.DefStmt:     syntaxDefStmt,
		syntax.ConstStmt:   syntaxVarStmt,
		syntax.VarStmt:     syntaxVarStmt,
		syntax.LoopStmt:    syntaxLoopStmt,
		syntax.Block:       syntaxBlock,
		syntax.CallExpr:    syntaxCallExpr,
		syntax.DotExpr:     syntaxDotExpr,
		syntax.ArrowExpr:   syntaxArrowExpr,
		syntax.PosExpr:     syntaxPosExpr,
		syntax.NegExpr:     syntaxNegExpr,
		syntax.AddExpr:     binarySyntax(syntax.AddExpr),
		syntax.SubExpr:     binarySyntax(syntax.SubExpr),
		syntax.MulExpr:     binarySyntax(syntax.MulExpr),
		syntax.DivExpr:     binarySyntax(syntax.DivExpr),
		syntax.ParenExpr:   syntaxParenExpr,
		syntax.NameExpr:    syntaxNameExpr,
		syntax.IntegerExpr: syntaxIntegerExpr,
	}
	for t, fn := range handlers {
		rt.BindOperative(t.HandlerName(), fn)
	}
}

func (rt *Runtime) bindCoreNatives() {
	rt.BindApplicative("print", nativePrint)
	rt.BindApplicative("callcc", nativeCallCC)
}
