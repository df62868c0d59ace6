// Package stack tracks open brackets in accumulated session input.
package stack

// openers maps each closing bracket to the opener it requires.
var openers = map[byte]byte{
	'}': '{',
	')': '(',
}

// Stack holds the brackets currently open, in source order.
type Stack struct {
	a []byte
	l int
}

// NewStack creates a new stack instance
func NewStack(elm ...byte) *Stack {
	stack := Stack{
		a: make([]byte, 0),
		l: 0,
	}

	for _, e := range elm {
		stack.l++
		stack.a = append(stack.a, e)
	}

	return &stack
}

// Push records an opening bracket on top of the stack
func (s *Stack) Push(elm byte) {
	s.l++
	s.a = append(s.a, elm)
}

// Pop removes and returns the most recent opener
func (s *Stack) Pop() byte {
	if s.l < 1 {
		return 0
	}

	s.l--
	elm := s.a[s.l]
	s.a = s.a[:s.l]

	return elm
}

// Peek returns the most recent opener without removing it
func (s *Stack) Peek() byte {
	if s.l < 1 {
		return 0
	}

	return s.a[s.l-1]
}

// Close pops the opener matching the given closing bracket. It reports
// false when the closer is stray or does not match the most recent opener.
func (s *Stack) Close(closer byte) bool {
	opener, ok := openers[closer]
	if !ok || s.l < 1 || s.a[s.l-1] != opener {
		return false
	}

	s.Pop()

	return true
}

// Get the size of the stack
func (s *Stack) Size() int {
	return s.l
}

// Array returns the underlying array of the stack
func (s Stack) Array() []byte {
	return s.a
}
