package meta

import (
	"errors"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/rxvm/literal"
	"github.com/coregx/rxvm/nfa"
	"github.com/coregx/rxvm/syntax"
)

// Compile compiles pattern with DefaultConfig.
//
// Parse failures are returned as *syntax.Error and code generation failures
// as *nfa.CompileError.
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles pattern with a custom configuration.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.Anchored = false
//	engine, err := meta.CompileWithConfig("foo|bar", config)
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	node, err := syntax.ParseWithLimit(pattern, config.MaxNestingDepth)
	if err != nil {
		config.logf("rxvm: compile %q: %v", pattern, err)
		return nil, err
	}

	prog, err := nfa.NewCompiler(config.compilerConfig()).CompileNode(node)
	if err != nil {
		var cerr *nfa.CompileError
		if errors.As(err, &cerr) {
			cerr.Pattern = pattern
		}
		config.logf("rxvm: compile %q: %v", pattern, err)
		return nil, err
	}

	exec := config.execConfig()
	e := &Engine{
		pattern:     pattern,
		prog:        prog,
		backtracker: nfa.NewBoundedBacktracker(prog, exec),
		pikevm:      nfa.NewPikeVM(prog, exec),
		config:      config,
		statePool:   newSearchStatePool(),
	}
	e.literals, e.ahoCorasick = buildLiteralAutomaton(node, config)
	e.strategy = selectStrategy(config.Strategy, e.ahoCorasick != nil)

	config.logf("rxvm: compiled %q: %d instructions, strategy %s", pattern, prog.Len(), e.strategy)
	if e.literals != nil {
		config.logf("rxvm: literal set for %q: %s", pattern, e.literals)
	}
	return e, nil
}

// literalEligible reports whether a match of the literal set anywhere in the
// input is the same verdict the program gives. That holds only for
// unanchored searches that may leave trailing input.
func literalEligible(config Config) bool {
	return config.EnableLiteral && !config.Anchored && !config.FullMatch
}

// buildLiteralAutomaton extracts the literal set of a repetition-free tree
// and builds an Aho-Corasick automaton over its UTF-8 encodings. It returns
// nils when the pattern or configuration does not qualify.
func buildLiteralAutomaton(node *syntax.Node, config Config) (*literal.Seq, *ahocorasick.Automaton) {
	if !literalEligible(config) {
		return nil, nil
	}
	seq, ok := literal.Extract(node)
	if !ok {
		return nil, nil
	}

	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		if !lit.IsValidUTF8() {
			return nil, nil
		}
		builder.AddPattern(lit.Bytes())
	}
	auto, err := builder.Build()
	if err != nil {
		config.logf("rxvm: literal automaton: %v", err)
		return nil, nil
	}
	return seq, auto
}

// selectStrategy resolves the configured strategy against what the engine
// actually has.
func selectStrategy(configured Strategy, hasLiteral bool) Strategy {
	switch configured {
	case StrategyBacktrack, StrategyPikeVM:
		return configured
	default:
		if hasLiteral {
			return StrategyLiteral
		}
		return StrategyPikeVM
	}
}
