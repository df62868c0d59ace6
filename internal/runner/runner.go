// Package runner drives the read, parse, evaluate pipeline for murmur
// source files.
package runner

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"murmur/pkg/color"
	"murmur/pkg/interpreter"
	"murmur/pkg/parser"
)

// Runner evaluates one source file with a fresh interpreter.
type Runner struct {
	SourceFile string // path to the source file
	MaxSteps   uint64 // driver step budget, 0 means unbounded
	Debug      bool   // log every driver step
}

// Run reads, parses and evaluates the source file. Diagnostics are already
// reported when it returns; callers only translate the error into an exit
// code.
func (r *Runner) Run() error {
	log.Info("Running file", "file", r.SourceFile)

	input, err := os.ReadFile(r.SourceFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", r.SourceFile, err)
	}

	tree, parseErrs := parser.ParseSource(string(input))
	if len(parseErrs) > 0 {
		fmt.Fprintln(os.Stderr, color.Banner("Syntax Errors"))
		for _, e := range parseErrs {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("parsing failed with %d errors", len(parseErrs))
	}

	opts := []interpreter.Option{interpreter.WithMaxSteps(r.MaxSteps)}
	if r.Debug {
		opts = append(opts, interpreter.WithTrace(traceStep))
	}

	if _, err := interpreter.New(opts...).EvalTree(tree); err != nil {
		reportEvalError(err)
		return err
	}

	return nil
}

// reportEvalError prints an evaluation failure to stderr.
func reportEvalError(err error) {
	if errors.Is(err, interpreter.ErrException) {
		fmt.Fprintln(os.Stderr, color.Exception(err.Error()))
		return
	}

	fmt.Fprintln(os.Stderr, color.RedText(err.Error()))
}

// traceStep feeds the driver's step hook into the ambient logger.
func traceStep(step uint64, f interpreter.Frame) {
	log.Debug("step", "n", step, "frame", interpreter.FrameName(f))
}
