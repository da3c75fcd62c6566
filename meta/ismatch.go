package meta

import (
	"sync/atomic"
	"unicode/utf8"
)

// IsMatch reports whether the program matches input under the engine's
// configured strategy and semantics.
func (e *Engine) IsMatch(input []rune) (bool, error) {
	return e.isMatch(input, e.strategy)
}

// IsMatchWith is IsMatch with an explicit strategy. StrategyAuto means the
// engine's configured strategy. All strategies return the same verdict for
// the same input. StrategyBacktrack runs the PikeVM when the input is too
// long for Config.MaxBacktrackBits.
func (e *Engine) IsMatchWith(input []rune, strategy Strategy) (bool, error) {
	if strategy == StrategyAuto {
		strategy = e.strategy
	}
	return e.isMatch(input, strategy)
}

func (e *Engine) isMatch(input []rune, strategy Strategy) (bool, error) {
	if strategy == StrategyLiteral {
		if haystack, ok := e.literalHaystack(input); ok {
			atomic.AddUint64(&e.stats.AhoCorasickSearches, 1)
			return e.ahoCorasick.IsMatch(haystack), nil
		}
		strategy = StrategyPikeVM
	}
	if strategy == StrategyBacktrack && !e.backtracker.CanHandle(len(input)) {
		e.config.logf("rxvm: %d runes exceed the backtracking budget for %q, using pikevm", len(input), e.pattern)
		strategy = StrategyPikeVM
	}

	state := e.statePool.get()
	defer e.statePool.put(state)

	var (
		matched bool
		err     error
	)
	switch strategy {
	case StrategyBacktrack:
		atomic.AddUint64(&e.stats.BacktrackSearches, 1)
		matched, err = e.backtracker.IsMatchWithState(input, state.backtracker)
	default:
		atomic.AddUint64(&e.stats.PikeVMSearches, 1)
		matched, err = e.pikevm.IsMatchWithState(input, state.pikevm)
	}
	if err != nil {
		atomic.AddUint64(&e.stats.Errors, 1)
		e.config.logf("rxvm: %s search for %q failed: %v", strategy, e.pattern, err)
		return false, err
	}
	return matched, nil
}

// literalHaystack encodes input as UTF-8 for the automaton. UTF-8 is
// self-synchronizing, so a byte-level occurrence of an encoded literal is
// an occurrence of the literal's runes. Runes without an encoding would be
// replaced by U+FFFD and break that equivalence, so such input is refused.
func (e *Engine) literalHaystack(input []rune) ([]byte, bool) {
	if e.ahoCorasick == nil {
		return nil, false
	}
	n := 0
	for _, r := range input {
		l := utf8.RuneLen(r)
		if l < 0 {
			return nil, false
		}
		n += l
	}
	buf := make([]byte, 0, n)
	for _, r := range input {
		buf = utf8.AppendRune(buf, r)
	}
	return buf, true
}
