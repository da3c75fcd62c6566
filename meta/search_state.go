package meta

import (
	"sync"

	"github.com/coregx/rxvm/nfa"
)

// SearchState holds per-search mutable state for thread-safe concurrent
// searches. Instances come from the engine's sync.Pool; one state must never
// be shared between goroutines.
type SearchState struct {
	backtracker *nfa.BacktrackerState
	pikevm      *nfa.PikeVMState
}

func newSearchState() *SearchState {
	return &SearchState{
		backtracker: nfa.NewBacktrackerState(),
		pikevm:      nfa.NewPikeVMState(),
	}
}

// searchStatePool manages SearchState reuse, following the stdlib regexp
// machine cache.
type searchStatePool struct {
	pool sync.Pool
}

func newSearchStatePool() *searchStatePool {
	return &searchStatePool{
		pool: sync.Pool{
			New: func() any {
				return newSearchState()
			},
		},
	}
}

func (p *searchStatePool) get() *SearchState {
	return p.pool.Get().(*SearchState)
}

// put returns state to the pool. Evaluators reset state at the start of
// every search, so nothing needs clearing here.
func (p *searchStatePool) put(state *SearchState) {
	if state == nil {
		return
	}
	p.pool.Put(state)
}
