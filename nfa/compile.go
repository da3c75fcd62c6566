package nfa

import (
	"errors"
	"fmt"

	"github.com/coregx/rxvm/syntax"
)

// CompilerConfig configures code generation.
type CompilerConfig struct {
	// MaxProgramLen caps the number of emitted instructions. Exceeding it
	// fails with ErrProgramTooLarge.
	// Default: MaxProgramLen
	MaxProgramLen uint32

	// MaxRecursionDepth limits syntax tree height (see syntax.Node.Height)
	// to prevent stack exhaustion. Operands of one alternation share a
	// level, so long flat alternations are not limited by it.
	// Default: 10000
	MaxRecursionDepth int

	// MaxNestingDepth limits group nesting when parsing a pattern.
	// Default: syntax.DefaultMaxDepth
	MaxNestingDepth int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxProgramLen:     MaxProgramLen,
		MaxRecursionDepth: 10000,
		MaxNestingDepth:   syntax.DefaultMaxDepth,
	}
}

// Compiler turns syntax trees into programs using a single forward pass:
// branch instructions are emitted with a placeholder operand, their address
// is remembered, and the operand is patched once the target is known.
//
// A Compiler is not safe for concurrent use; each compilation resets it.
type Compiler struct {
	config  CompilerConfig
	builder *Builder
}

// NewCompiler creates a new compiler with the given configuration.
// Zero fields take their defaults.
func NewCompiler(config CompilerConfig) *Compiler {
	def := DefaultCompilerConfig()
	if config.MaxProgramLen == 0 {
		config.MaxProgramLen = def.MaxProgramLen
	}
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = def.MaxRecursionDepth
	}
	if config.MaxNestingDepth == 0 {
		config.MaxNestingDepth = def.MaxNestingDepth
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile parses pattern and compiles it. Parse failures are returned as
// *syntax.Error, code generation failures as *CompileError.
func (c *Compiler) Compile(pattern string) (*Program, error) {
	node, err := syntax.ParseWithLimit(pattern, c.config.MaxNestingDepth)
	if err != nil {
		return nil, err
	}
	prog, err := c.CompileNode(node)
	if err != nil {
		var cerr *CompileError
		if errors.As(err, &cerr) {
			cerr.Pattern = pattern
		}
		return nil, err
	}
	return prog, nil
}

// CompileNode compiles a syntax tree into a program ending in a single
// match instruction.
func (c *Compiler) CompileNode(node *syntax.Node) (*Program, error) {
	if node.Height() > c.config.MaxRecursionDepth {
		return nil, &CompileError{Err: ErrTooComplex}
	}
	c.builder = NewBuilderWithLimit(c.config.MaxProgramLen)

	if err := c.compile(node); err != nil {
		return nil, &CompileError{Err: err}
	}
	if _, err := c.builder.Emit(MatchInst()); err != nil {
		return nil, &CompileError{Err: err}
	}

	prog, err := c.builder.Build()
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	return prog, nil
}

// compile emits code for node at the builder's current program counter.
func (c *Compiler) compile(node *syntax.Node) error {
	switch node.Op {
	case syntax.OpChar:
		_, err := c.builder.Emit(CharInst(node.Rune))
		return err
	case syntax.OpOr:
		return c.compileOr(node.Alternatives())
	case syntax.OpSeq:
		return c.compileSeq(node.Sub)
	case syntax.OpStar:
		return c.compileStar(node.Sub[0])
	case syntax.OpPlus:
		return c.compilePlus(node.Sub[0])
	case syntax.OpQuestion:
		return c.compileQuestion(node.Sub[0])
	default:
		return fmt.Errorf("unsupported syntax node %v", node.Op)
	}
}

// compileOr generates, for alternatives e1..en of a left-nested chain,
//
//	    split L1, Ln
//	    ...
//	    split L1, L2
//	L1: e1
//	    jmp J2
//	L2: e2
//	J2: jmp J3
//	    ...
//	Ln: en
//	Jn:
//
// which is the layout nested two-way alternations produce, built with a
// loop so recursion depth does not grow with the number of alternatives.
func (c *Compiler) compileOr(alts []*syntax.Node) error {
	splits := make([]PC, len(alts)-1)
	for i := range splits {
		split, err := c.builder.Emit(SplitInst(c.builder.PC()+1, InvalidPC))
		if err != nil {
			return err
		}
		splits[i] = split
	}
	if err := c.compile(alts[0]); err != nil {
		return err
	}
	for i, alt := range alts[1:] {
		jmp, err := c.builder.Emit(JumpInst(InvalidPC))
		if err != nil {
			return err
		}
		// The innermost split, emitted last, selects the second alternative.
		if err := c.builder.PatchSplitY(splits[len(splits)-1-i], c.builder.PC()); err != nil {
			return err
		}
		if err := c.compile(alt); err != nil {
			return err
		}
		if err := c.builder.PatchJump(jmp, c.builder.PC()); err != nil {
			return err
		}
	}
	return nil
}

// compileStar generates
//
//	L1: split L2, L3
//	L2: e
//	    jmp L1
//	L3:
func (c *Compiler) compileStar(e *syntax.Node) error {
	split, err := c.builder.Emit(SplitInst(c.builder.PC()+1, InvalidPC))
	if err != nil {
		return err
	}
	if err := c.compile(e); err != nil {
		return err
	}
	if _, err := c.builder.Emit(JumpInst(split)); err != nil {
		return err
	}
	return c.builder.PatchSplitY(split, c.builder.PC())
}

// compilePlus generates
//
//	L1: e
//	    split L1, L2
//	L2:
func (c *Compiler) compilePlus(e *syntax.Node) error {
	body := c.builder.PC()
	if err := c.compile(e); err != nil {
		return err
	}
	split, err := c.builder.Emit(SplitInst(body, InvalidPC))
	if err != nil {
		return err
	}
	return c.builder.PatchSplitY(split, c.builder.PC())
}

// compileQuestion generates
//
//	    split L1, L2
//	L1: e
//	L2:
func (c *Compiler) compileQuestion(e *syntax.Node) error {
	split, err := c.builder.Emit(SplitInst(c.builder.PC()+1, InvalidPC))
	if err != nil {
		return err
	}
	if err := c.compile(e); err != nil {
		return err
	}
	return c.builder.PatchSplitY(split, c.builder.PC())
}

func (c *Compiler) compileSeq(exprs []*syntax.Node) error {
	for _, e := range exprs {
		if err := c.compile(e); err != nil {
			return err
		}
	}
	return nil
}

// Compile parses and compiles pattern with the default configuration.
func Compile(pattern string) (*Program, error) {
	return NewDefaultCompiler().Compile(pattern)
}
