// Package meta implements the engine that selects how a compiled pattern is
// evaluated.
//
// The engine coordinates three evaluators over one instruction program:
//   - BoundedBacktracker: depth-first, first branch before second
//   - PikeVM: all branches in lock step, linear in the input
//   - Aho-Corasick: a multi-string automaton for repetition-free patterns
//     whose literal set can be extracted
//
// Every evaluator answers the same question and gives the same verdict;
// strategies differ only in cost.
package meta

import (
	"github.com/coregx/rxvm/nfa"
	"github.com/coregx/rxvm/syntax"
)

// Config controls compilation limits and matching semantics.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.Strategy = meta.StrategyBacktrack
//	config.FullMatch = true
//	engine, err := meta.CompileWithConfig("a(bc)+", config)
type Config struct {
	// Strategy is the evaluator used by IsMatch.
	// Default: StrategyAuto
	Strategy Strategy

	// Anchored restricts matches to those starting at the first input
	// character. When false the pattern may match anywhere.
	// Default: true
	Anchored bool

	// FullMatch requires a match to consume the whole input. When false a
	// match may leave trailing input unconsumed.
	// Default: false
	FullMatch bool

	// EnableLiteral allows StrategyAuto to use the Aho-Corasick automaton
	// for unanchored, repetition-free patterns.
	// Default: true
	EnableLiteral bool

	// StepLimit caps the instructions executed per evaluation. Zero means
	// unlimited.
	// Default: 0
	StepLimit int

	// MaxProgramLen caps the size of the compiled program. Zero means the
	// largest representable program.
	// Default: 0
	MaxProgramLen uint32

	// MaxBacktrackBits caps the backtracker's visited bit vector. Searches
	// that would need more run on the PikeVM instead. Zero means
	// nfa.DefaultMaxVisitedBits.
	// Default: 0
	MaxBacktrackBits int

	// MaxRecursionDepth limits syntax tree height during compilation.
	// Default: 10000
	MaxRecursionDepth int

	// MaxNestingDepth limits group nesting during parsing.
	// Default: syntax.DefaultMaxDepth
	MaxNestingDepth int

	// Logf, when set, receives one line per compilation and strategy
	// decision. log.Printf fits.
	// Default: nil (silent)
	Logf func(format string, args ...any)
}

// DefaultConfig returns anchored, prefix-accepting semantics with the
// automatic strategy.
func DefaultConfig() Config {
	return Config{
		Strategy:          StrategyAuto,
		Anchored:          true,
		EnableLiteral:     true,
		MaxRecursionDepth: 10000,
		MaxNestingDepth:   syntax.DefaultMaxDepth,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - Strategy: one of the declared strategies
//   - StepLimit: >= 0
//   - MaxBacktrackBits: >= 0
//   - MaxRecursionDepth: 1 to 1,000,000
//   - MaxNestingDepth: 1 to 1,000,000
func (c Config) Validate() error {
	if !c.Strategy.valid() {
		return &ConfigError{
			Field:   "Strategy",
			Message: "unknown strategy " + c.Strategy.String(),
		}
	}
	if c.StepLimit < 0 {
		return &ConfigError{
			Field:   "StepLimit",
			Message: "must not be negative",
		}
	}
	if c.MaxBacktrackBits < 0 {
		return &ConfigError{
			Field:   "MaxBacktrackBits",
			Message: "must not be negative",
		}
	}
	if c.MaxRecursionDepth < 1 || c.MaxRecursionDepth > 1_000_000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 1 and 1,000,000",
		}
	}
	if c.MaxNestingDepth < 1 || c.MaxNestingDepth > 1_000_000 {
		return &ConfigError{
			Field:   "MaxNestingDepth",
			Message: "must be between 1 and 1,000,000",
		}
	}
	return nil
}

func (c Config) execConfig() nfa.ExecConfig {
	return nfa.ExecConfig{
		Unanchored:     !c.Anchored,
		FullMatch:      c.FullMatch,
		StepLimit:      c.StepLimit,
		MaxVisitedBits: c.MaxBacktrackBits,
	}
}

func (c Config) compilerConfig() nfa.CompilerConfig {
	return nfa.CompilerConfig{
		MaxProgramLen:     c.MaxProgramLen,
		MaxRecursionDepth: c.MaxRecursionDepth,
		MaxNestingDepth:   c.MaxNestingDepth,
	}
}

func (c Config) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "rxvm: invalid config: " + e.Field + ": " + e.Message
}
