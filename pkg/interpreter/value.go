package interpreter

import "strconv"

type BoxKind int

const (
	KindUndefined BoxKind = iota
	KindInteger
	KindObject
)

// Box is a dynamically-typed value: an object reference, an inline signed
// 64-bit integer, or the undefined value. Boxes are small and copied by
// value; equality on boxes is identity for objects and numeric equality
// for integers.
type Box struct {
	Kind BoxKind
	Obj  Object
	I64  int64
}

// Undefined returns the undefined box.
func Undefined() Box {
	return Box{Kind: KindUndefined}
}

// IntegerBox wraps an int64 in a box.
func IntegerBox(i int64) Box {
	return Box{Kind: KindInteger, I64: i}
}

// ObjectBox wraps an object reference in a box.
func ObjectBox(obj Object) Box {
	return Box{Kind: KindObject, Obj: obj}
}

// IsUndefined reports whether the box holds the undefined value.
func (b Box) IsUndefined() bool {
	return b.Kind == KindUndefined
}

// IsInteger reports whether the box holds an inline integer.
func (b Box) IsInteger() bool {
	return b.Kind == KindInteger
}

// IsObject reports whether the box holds an object reference.
func (b Box) IsObject() bool {
	return b.Kind == KindObject
}

// Integer returns the inline integer payload. Only meaningful when
// IsInteger reports true.
func (b Box) Integer() int64 {
	return b.I64
}

// Object returns the object payload. Only meaningful when IsObject
// reports true.
func (b Box) Object() Object {
	return b.Obj
}

// String renders the box for diagnostics and for print output.
func (b Box) String() string {
	switch b.Kind {
	case KindInteger:
		return strconv.FormatInt(b.I64, 10)
	case KindObject:
		switch obj := b.Obj.(type) {
		case *FunctionObject:
			return "<function>"
		case *ContinuationObject:
			return "<continuation>"
		case *ErrorObject:
			return obj.Error()
		default:
			return "<object>"
		}
	default:
		return "undefined"
	}
}
