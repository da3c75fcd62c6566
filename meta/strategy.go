package meta

import (
	"fmt"
	"strings"
)

// Strategy names the evaluator used for a search.
type Strategy int

const (
	// StrategyAuto uses the literal automaton when the engine has one and
	// the search qualifies, and the PikeVM otherwise.
	StrategyAuto Strategy = iota

	// StrategyBacktrack uses the depth-first BoundedBacktracker.
	StrategyBacktrack

	// StrategyPikeVM uses the parallel-state PikeVM.
	StrategyPikeVM

	// StrategyLiteral uses the Aho-Corasick automaton built from the
	// pattern's literal set. Searches that do not qualify for it, or
	// engines without one, run the PikeVM instead.
	StrategyLiteral
)

// String returns the canonical lowercase name accepted by ParseStrategy.
func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyBacktrack:
		return "backtrack"
	case StrategyPikeVM:
		return "pikevm"
	case StrategyLiteral:
		return "literal"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func (s Strategy) valid() bool {
	return s >= StrategyAuto && s <= StrategyLiteral
}

// ParseStrategy maps a strategy name to a Strategy. Besides the canonical
// names it accepts "depth" for backtracking and "parallel" for the PikeVM.
// Matching is case-insensitive.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "auto", "":
		return StrategyAuto, nil
	case "backtrack", "depth":
		return StrategyBacktrack, nil
	case "pikevm", "parallel":
		return StrategyPikeVM, nil
	case "literal":
		return StrategyLiteral, nil
	default:
		return 0, &ConfigError{
			Field:   "Strategy",
			Message: fmt.Sprintf("unknown strategy %q", name),
		}
	}
}
