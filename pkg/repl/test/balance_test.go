package repl_test

import (
	"testing"

	"murmur/pkg/repl"
)

func TestBalanced(t *testing.T) {
	cases := []struct {
		src      string
		expected bool
	}{
		{"", true},
		{"1 + 2;", true},
		{"def f() {", false},
		{"def f() {\n\treturn 1;\n}", true},
		{"f(1,", false},
		{"f(1, 2)", true},
		{"if (1) { if (2) {", false},
		{"if (1) { if (2) { } }", true},
		// over-closed input submits so the parser can report it
		{"} stray", true},
		// so does a mismatched closer, instead of accumulating forever
		{"{ ( }", true},
		{"({)}", true},
		// comment text never counts
		{"// {", true},
		{"/* { ( */", true},
		{"loop { // }\n}", true},
		// a real paren stays open across a comment
		{"f( /* ) */", false},
	}

	for _, c := range cases {
		if got := repl.Balanced(c.src); got != c.expected {
			t.Errorf("Balanced(%q): expected %v, got %v", c.src, c.expected, got)
		}
	}
}

func TestBalancedMultiLineInput(t *testing.T) {
	// the accumulation path: each prefix of a block stays open until the
	// closing brace arrives
	lines := []string{
		"def fact(n) {",
		"\tif (n) { return n * fact(n - 1); }",
		"\treturn 1;",
		"}",
	}

	input := ""
	for i, line := range lines {
		if i == 0 {
			input = line
		} else {
			input += "\n" + line
		}

		complete := i == len(lines)-1
		if got := repl.Balanced(input); got != complete {
			t.Errorf("after line %d: expected %v, got %v", i, complete, got)
		}
	}
}
