package interpreter

// Scopes are ordinary objects: a binding is a property, an enclosing scope
// is a delegate, and name resolution is the usual delegated property walk.
// Nothing in the object model distinguishes a scope from user data.

// NewGlobalScope creates the top-level scope, delegating to the runtime
// root so that syntax handlers and built-in functions are reachable from
// every name lookup.
func NewGlobalScope(root Object) *PlainObject {
	return NewPlainObject(root)
}

// NewCallScope creates a fresh scope for one activation, delegating to the
// scope the callee closed over (or, for block scopes, the lexically
// enclosing scope).
func NewCallScope(enclosing Object) *PlainObject {
	return NewPlainObject(enclosing)
}
