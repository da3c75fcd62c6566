// Package nfa compiles syntax trees into programs for a small regex virtual
// machine and executes them.
//
// A program is a flat sequence of four instructions: char, match, jmp and
// split. Two evaluators run programs: a BoundedBacktracker that explores
// split branches depth-first, and a PikeVM that simulates all branches in
// lock step. Both return the same verdict for every program and input.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrProgramTooLarge indicates the program counter would exceed the
	// representable address range while generating code.
	ErrProgramTooLarge = errors.New("program counter overflow: program too large")

	// ErrTooComplex indicates the syntax tree nests deeper than the
	// compiler's recursion limit.
	ErrTooComplex = errors.New("pattern too complex")

	// ErrInvalidPC indicates execution reached an address outside the
	// program. Compiled programs never do this; hand-built ones might.
	ErrInvalidPC = errors.New("program counter out of range")

	// ErrPositionOverflow indicates an input position or program counter
	// could not be advanced without overflowing.
	ErrPositionOverflow = errors.New("position overflow")

	// ErrInputTooLarge indicates the backtracker's visited bit vector for
	// the input would exceed ExecConfig.MaxVisitedBits.
	ErrInputTooLarge = errors.New("input too large for backtracking")

	// ErrStepLimit indicates the evaluator exhausted its step budget before
	// reaching a verdict.
	ErrStepLimit = errors.New("step limit exceeded")
)

// CompileError wraps compilation errors with additional context
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("rxvm: code generation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("rxvm: code generation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError reports a violated program invariant: a patch aimed at the
// wrong instruction, or an out-of-range address found by Validate. The
// compiler never produces one for a parsed tree; seeing one means a
// generator bug.
type BuildError struct {
	Message string
	PC      PC
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.PC != InvalidPC {
		return fmt.Sprintf("program build error at %04d: %s", e.PC, e.Message)
	}
	return fmt.Sprintf("program build error: %s", e.Message)
}

// EvalError reports why an evaluator could not determine a verdict, with
// the program counter and input position where it stopped.
type EvalError struct {
	PC  PC
	Pos int
	Err error
}

// Error implements the error interface
func (e *EvalError) Error() string {
	return fmt.Sprintf("rxvm: evaluation failed at pc %d, position %d: %v", e.PC, e.Pos, e.Err)
}

// Unwrap returns the underlying error
func (e *EvalError) Unwrap() error {
	return e.Err
}
