// Package repl provides the interactive murmur session: a readline loop
// that accumulates input until braces balance, evaluates it, and echoes
// results.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lmorg/readline"

	"murmur/pkg/color"
	"murmur/pkg/interpreter"
	"murmur/pkg/parser"
	"murmur/pkg/repl/stack"
)

// Repl is one interactive session. Definitions and variables survive
// across inputs because every evaluation shares the interpreter's global
// scope.
type Repl struct {
	interp *interpreter.Interpreter
	prompt string
	out    io.Writer
}

// New builds a session. maxSteps bounds each input's evaluation; 0 leaves
// it unbounded.
func New(maxSteps uint64, prompt string) *Repl {
	if prompt == "" {
		prompt = "» "
	}

	return &Repl{
		interp: interpreter.New(interpreter.WithMaxSteps(maxSteps)),
		prompt: prompt,
		out:    os.Stdout,
	}
}

// Run reads and evaluates inputs until Ctrl-D or "exit". Ctrl-C discards
// the input accumulated so far.
func (r *Repl) Run() error {
	rl := readline.NewInstance()
	fmt.Fprintln(r.out, color.GrayText("murmur session, exit or Ctrl-D to leave"))

	var pending string
	for {
		if pending == "" {
			rl.SetPrompt(r.prompt)
		} else {
			rl.SetPrompt("… ")
		}

		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.CtrlC):
			pending = ""
			continue
		case errors.Is(err, readline.EOF):
			return nil
		case err != nil:
			return err
		}

		if pending == "" {
			switch strings.TrimSpace(line) {
			case "":
				continue
			case "exit":
				return nil
			}
			pending = line
		} else {
			pending += "\n" + line
		}

		if !Balanced(pending) {
			continue
		}

		src := pending
		pending = ""
		r.eval(src)
	}
}

// eval runs one complete input and reports its outcome.
func (r *Repl) eval(src string) {
	tree, parseErrs := parser.ParseSource(src)
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			fmt.Fprintln(r.out, e)
		}
		return
	}

	box, err := r.interp.EvalTree(tree)
	if err != nil {
		if errors.Is(err, interpreter.ErrException) {
			fmt.Fprintln(r.out, color.Exception(err.Error()))
		} else {
			fmt.Fprintln(r.out, color.RedText(err.Error()))
		}
		return
	}

	if !box.IsUndefined() {
		fmt.Fprintln(r.out, color.Result(box.String()))
	}
}

// Balanced reports whether every brace and parenthesis opened in src has
// been closed, ignoring comment text. The session only submits balanced
// input; anything else keeps accumulating lines. A stray or mismatched
// closer counts as balanced so the parser gets to report it.
func Balanced(src string) bool {
	open := stack.NewStack()
	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '/':
			if i+1 >= len(src) {
				break
			}
			switch src[i+1] {
			case '/':
				for i < len(src) && src[i] != '\n' {
					i++
				}
			case '*':
				i += 2
				for i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/') {
					i++
				}
				i++
			}
		case '{', '(':
			open.Push(c)
		case '}', ')':
			if !open.Close(c) {
				return true
			}
		}
	}

	return open.Size() == 0
}
