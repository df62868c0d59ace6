package interpreter

type PropertyKind int

const (
	PropertySlot PropertyKind = iota
	PropertyMethod
)

// PropertyDescriptor describes one property of an object: either a slot
// holding a plain value, or a method holding a function that binds to the
// receiver on lookup.
type PropertyDescriptor struct {
	Kind   PropertyKind
	Value  Box
	Method *Function
}

// SlotDescriptor returns a slot descriptor holding v.
func SlotDescriptor(v Box) PropertyDescriptor {
	return PropertyDescriptor{Kind: PropertySlot, Value: v}
}

// MethodDescriptor returns a method descriptor holding fn.
func MethodDescriptor(fn *Function) PropertyDescriptor {
	return PropertyDescriptor{Kind: PropertyMethod, Method: fn}
}

// IsSlot reports whether the descriptor is a plain value slot.
func (d PropertyDescriptor) IsSlot() bool {
	return d.Kind == PropertySlot
}

// IsMethod reports whether the descriptor is a method.
func (d PropertyDescriptor) IsMethod() bool {
	return d.Kind == PropertyMethod
}

// Object is the interface all heap objects implement. Behaviour is shared
// through delegation rather than classes: an object that does not define a
// property itself defers to its delegates, in order, depth first.
type Object interface {
	// Delegates returns the delegation targets in lookup order.
	Delegates() []Object

	// OwnProperty reports the object's own (non-delegated) property.
	OwnProperty(name string) (PropertyDescriptor, bool)

	// DefineProperty creates or replaces an own property.
	DefineProperty(name string, desc PropertyDescriptor)
}

// PlainObject is the basic dictionary-backed object. Scopes, user objects
// and the runtime root are all plain objects or embed one.
type PlainObject struct {
	delegates  []Object
	properties map[string]PropertyDescriptor
}

// NewPlainObject creates an object delegating to the given objects.
func NewPlainObject(delegates ...Object) *PlainObject {
	return &PlainObject{
		delegates:  delegates,
		properties: make(map[string]PropertyDescriptor),
	}
}

// Delegates returns the delegation targets in lookup order.
func (o *PlainObject) Delegates() []Object {
	return o.delegates
}

// OwnProperty reports the object's own (non-delegated) property.
func (o *PlainObject) OwnProperty(name string) (PropertyDescriptor, bool) {
	desc, ok := o.properties[name]
	return desc, ok
}

// DefineProperty creates or replaces an own property.
func (o *PlainObject) DefineProperty(name string, desc PropertyDescriptor) {
	o.properties[name] = desc
}

// LookupState records where a property lookup started, so that a bound
// method remembers its receiver and the name it was found under.
type LookupState struct {
	Receiver Box
	Name     string
}

// GetPropertyDescriptor resolves name on obj through the delegation chain,
// depth first in delegate order. The second return is the object the
// property was found on. Scope chains delegate once per nesting level and
// can grow very deep, so the walk is iterative.
func GetPropertyDescriptor(obj Object, name string) (PropertyDescriptor, Object, bool) {
	stack := []Object{obj}
	for len(stack) > 0 {
		o := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if desc, ok := o.OwnProperty(name); ok {
			return desc, o, true
		}
		delegates := o.Delegates()
		for i := len(delegates) - 1; i >= 0; i-- {
			stack = append(stack, delegates[i])
		}
	}
	return PropertyDescriptor{}, nil, false
}
