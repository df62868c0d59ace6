package interpreter

// Exception messages the machine raises itself. Handlers and natives add
// their own on top of these.
const (
	excSyntaxBindingNotFound    = "Syntax method binding not found."
	excSyntaxBindingApplicative = "Syntax method binding is applicative."
	excCannotCallNonFunction    = "Cannot call non-function"
	excArgumentMismatch         = "Arguments do not match params."
	excNameNotFound             = "Name not found"
	excPropertyOnInteger        = "Cannot look up property on an integer."
	excPropertyOnPrimitive      = "Cannot look up property on a primitive value"
	excIfCondNotInteger         = "If condition is not an integer"
	excDivisionByZero           = "Division by zero"
)

// ErrorObject is the payload carried by language-level exceptions. It is a
// regular object, so programs that ever grow a catch construct can inspect
// it like any other value.
type ErrorObject struct {
	PlainObject
	Message string
	Name    string
}

// NewErrorObject creates an exception payload with the given message.
func NewErrorObject(message string) *ErrorObject {
	return &ErrorObject{
		PlainObject: *NewPlainObject(),
		Message:     message,
	}
}

// NewNamedErrorObject creates an exception payload that also records the
// name that triggered it, such as the identifier of a failed lookup.
func NewNamedErrorObject(message, name string) *ErrorObject {
	err := NewErrorObject(message)
	err.Name = name
	return err
}

// Error renders the exception message, with the offending name appended
// when one was recorded.
func (e *ErrorObject) Error() string {
	if e.Name != "" {
		return e.Message + " (" + e.Name + ")"
	}
	return e.Message
}

// ErrorBox wraps a fresh error object in a box.
func ErrorBox(message string) Box {
	return ObjectBox(NewErrorObject(message))
}

// NamedErrorBox wraps a fresh named error object in a box.
func NamedErrorBox(message, name string) Box {
	return ObjectBox(NewNamedErrorObject(message, name))
}
