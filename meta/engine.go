package meta

import (
	"sync/atomic"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/rxvm/literal"
	"github.com/coregx/rxvm/nfa"
)

// Engine owns one compiled program and the evaluators that run it.
//
// Thread safety: the program, evaluators and automaton are immutable after
// compilation; per-search state comes from a sync.Pool. Multiple goroutines
// can call IsMatch on the same Engine concurrently.
//
// Example:
//
//	engine, err := meta.Compile("abc|(de|cd)+")
//	if err != nil {
//	    return err
//	}
//	ok, err := engine.IsMatch([]rune("decddede")) // true, nil
type Engine struct {
	// stats MUST be the first field for 8-byte alignment of its uint64
	// counters on 32-bit platforms.
	stats Stats

	pattern     string
	prog        *nfa.Program
	backtracker *nfa.BoundedBacktracker
	pikevm      *nfa.PikeVM

	// literals and ahoCorasick are nil unless the pattern is
	// repetition-free and the configuration allows the literal path.
	literals    *literal.Seq
	ahoCorasick *ahocorasick.Automaton

	strategy  Strategy
	config    Config
	statePool *searchStatePool
}

// Stats counts searches per evaluator. Counters are updated atomically.
type Stats struct {
	// BacktrackSearches counts BoundedBacktracker searches.
	BacktrackSearches uint64

	// PikeVMSearches counts PikeVM searches.
	PikeVMSearches uint64

	// AhoCorasickSearches counts literal automaton searches.
	AhoCorasickSearches uint64

	// Errors counts searches that failed with an evaluation error.
	Errors uint64
}

// Pattern returns the source pattern.
func (e *Engine) Pattern() string {
	return e.pattern
}

// Program returns the compiled program.
func (e *Engine) Program() *nfa.Program {
	return e.prog
}

// Literals returns a copy of the pattern's literal set when the literal
// path is available, or nil.
func (e *Engine) Literals() *literal.Seq {
	return e.literals.Clone()
}

// Config returns the configuration the engine was compiled with.
func (e *Engine) Config() Config {
	return e.config
}

// Strategy returns the evaluator IsMatch uses for valid input. StrategyAuto
// is never returned; it is resolved at compile time.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Stats returns a snapshot of the execution statistics.
//
// Example:
//
//	stats := engine.Stats()
//	println("PikeVM searches:", stats.PikeVMSearches)
func (e *Engine) Stats() Stats {
	return Stats{
		BacktrackSearches:   atomic.LoadUint64(&e.stats.BacktrackSearches),
		PikeVMSearches:      atomic.LoadUint64(&e.stats.PikeVMSearches),
		AhoCorasickSearches: atomic.LoadUint64(&e.stats.AhoCorasickSearches),
		Errors:              atomic.LoadUint64(&e.stats.Errors),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.BacktrackSearches, 0)
	atomic.StoreUint64(&e.stats.PikeVMSearches, 0)
	atomic.StoreUint64(&e.stats.AhoCorasickSearches, 0)
	atomic.StoreUint64(&e.stats.Errors, 0)
}
