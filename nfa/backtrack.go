package nfa

import (
	"github.com/coregx/rxvm/internal/conv"
)

// ExecConfig selects the matching semantics shared by both evaluators.
type ExecConfig struct {
	// Unanchored tries every start position from 0 to len(input), so the
	// program matches if it matches anywhere in the input. When false only
	// matches starting at position 0 count.
	// Default: false
	Unanchored bool

	// FullMatch makes the match instruction accept only at the end of the
	// input. When false, reaching match accepts regardless of any trailing
	// input.
	// Default: false
	FullMatch bool

	// StepLimit caps the number of instructions an evaluator may execute
	// for one input. Zero means unlimited. Exceeding it fails with
	// ErrStepLimit. The two evaluators count steps differently, so a
	// budget that suffices for one may not suffice for the other.
	StepLimit int

	// MaxVisitedBits caps the size of the backtracker's visited bit vector,
	// which needs Len() * (len(input)+1) bits. Searches that would need
	// more fail with ErrInputTooLarge; see BoundedBacktracker.CanHandle.
	// The PikeVM ignores it.
	// Default: DefaultMaxVisitedBits
	MaxVisitedBits int
}

// DefaultMaxVisitedBits is the default visited bit vector budget:
// 2M bits, 256KB.
const DefaultMaxVisitedBits = 256 * 1024 * 8

// DefaultExecConfig returns anchored-at-start, prefix-accepting semantics.
// It is the zero ExecConfig.
func DefaultExecConfig() ExecConfig {
	return ExecConfig{}
}

// frame is a pending (pc, position) pair left behind by a split.
type frame struct {
	pc  PC
	pos int
}

// BoundedBacktracker evaluates a program depth-first. A split pushes its
// second branch onto an explicit stack and continues with the first; when a
// path fails the most recent pending branch is resumed. Branches are always
// explored first-before-second.
//
// A bit vector records every visited (pc, position) pair. Arriving at a
// visited pair fails the path: the pair has either already failed, or it is
// an ancestor on the current path reached again without consuming input.
// This makes zero-width loops such as (a?)* terminate and bounds the work
// per search by Len() * (len(input)+1) instruction executions. The bit
// vector is that size too, so inputs are capped by ExecConfig.MaxVisitedBits.
//
// The backtracker itself is immutable and safe for concurrent use; each
// search needs its own BacktrackerState.
type BoundedBacktracker struct {
	prog   *Program
	config ExecConfig

	// maxVisitedBits limits memory usage of the visited bit vector.
	maxVisitedBits int

	// firstRunes lets unanchored searches skip start positions that
	// cannot begin a match. Nil when not applicable.
	firstRunes *FirstRuneSet
}

// BacktrackerState holds the mutable per-search state of a
// BoundedBacktracker. It can be reused across searches and programs but
// must not be shared between goroutines.
type BacktrackerState struct {
	// visited is a bit vector tracking (pc, position) pairs.
	// Layout: bit at index (pc * (inputLen+1) + pos) indicates visited.
	visited []uint64

	stack    []frame
	inputLen int
	steps    int
}

// NewBoundedBacktracker creates a backtracker for prog.
func NewBoundedBacktracker(prog *Program, config ExecConfig) *BoundedBacktracker {
	b := &BoundedBacktracker{
		prog:           prog,
		config:         config,
		maxVisitedBits: config.MaxVisitedBits,
	}
	if b.maxVisitedBits <= 0 {
		b.maxVisitedBits = DefaultMaxVisitedBits
	}
	if config.Unanchored {
		b.firstRunes = ExtractFirstRunes(prog)
	}
	return b
}

// NewBacktrackerState creates an empty search state.
func NewBacktrackerState() *BacktrackerState {
	return &BacktrackerState{}
}

// Program returns the program being evaluated.
func (b *BoundedBacktracker) Program() *Program {
	return b.prog
}

// CanHandle returns true if a search over an input of length inputLen fits
// the visited bit vector budget.
func (b *BoundedBacktracker) CanHandle(inputLen int) bool {
	_, ok := b.visitedBits(inputLen)
	return ok
}

// visitedBits returns the bit vector size for inputLen, and false if it
// exceeds the budget or overflows.
func (b *BoundedBacktracker) visitedBits(inputLen int) (int, bool) {
	cols, ok := conv.IncInt(inputLen)
	if !ok {
		return 0, false
	}
	bits, ok := conv.MulInt(b.prog.Len(), cols)
	if !ok || bits > b.maxVisitedBits {
		return 0, false
	}
	return bits, true
}

// reset prepares state for a search over an input of length inputLen.
func (b *BoundedBacktracker) reset(state *BacktrackerState, inputLen int) error {
	bits, ok := b.visitedBits(inputLen)
	if !ok {
		return &EvalError{PC: 0, Pos: inputLen, Err: ErrInputTooLarge}
	}
	words := bits/64 + 1

	if cap(state.visited) >= words {
		state.visited = state.visited[:words]
		clear(state.visited)
	} else {
		state.visited = make([]uint64, words)
	}
	state.stack = state.stack[:0]
	state.inputLen = inputLen
	state.steps = 0
	return nil
}

// shouldVisit checks if (pc, pos) has been visited and marks it if not.
// Returns true if we should visit (not yet visited), false if already visited.
func (state *BacktrackerState) shouldVisit(pc PC, pos int) bool {
	idx := int(pc)*(state.inputLen+1) + pos
	word := idx / 64
	bit := uint64(1) << (idx % 64)
	if state.visited[word]&bit != 0 {
		return false
	}
	state.visited[word] |= bit
	return true
}

// IsMatch reports whether the program matches input, using a fresh state.
func (b *BoundedBacktracker) IsMatch(input []rune) (bool, error) {
	return b.IsMatchWithState(input, NewBacktrackerState())
}

// IsMatchWithState is IsMatch with caller-provided state.
func (b *BoundedBacktracker) IsMatchWithState(input []rune, state *BacktrackerState) (bool, error) {
	if err := b.reset(state, len(input)); err != nil {
		return false, err
	}

	last := 0
	if b.config.Unanchored {
		last = len(input)
	}
	// Visited pairs stay valid across start positions: a pair that failed
	// from one start fails from every start.
	for start := 0; start <= last; start++ {
		if b.firstRunes != nil && (start == len(input) || !b.firstRunes.Contains(input[start])) {
			continue
		}
		matched, err := b.run(input, start, state)
		if err != nil || matched {
			return matched, err
		}
	}
	return false, nil
}

// run explores all paths from (0, start) until one accepts or all fail.
//
//nolint:gocyclo,cyclop // complexity is inherent to instruction dispatch
func (b *BoundedBacktracker) run(input []rune, start int, state *BacktrackerState) (bool, error) {
	state.stack = append(state.stack[:0], frame{pc: 0, pos: start})

	for len(state.stack) > 0 {
		n := len(state.stack) - 1
		pc, pos := state.stack[n].pc, state.stack[n].pos
		state.stack = state.stack[:n]

	path:
		for {
			inst, ok := b.prog.Inst(pc)
			if !ok {
				return false, &EvalError{PC: pc, Pos: pos, Err: ErrInvalidPC}
			}
			if !state.shouldVisit(pc, pos) {
				break path
			}
			state.steps++
			if b.config.StepLimit > 0 && state.steps > b.config.StepLimit {
				return false, &EvalError{PC: pc, Pos: pos, Err: ErrStepLimit}
			}

			switch inst.op {
			case InstChar:
				if pos >= len(input) || input[pos] != inst.r {
					break path
				}
				nextPC, ok := conv.IncUint32(uint32(pc), MaxProgramLen)
				if !ok {
					return false, &EvalError{PC: pc, Pos: pos, Err: ErrPositionOverflow}
				}
				nextPos, ok := conv.IncInt(pos)
				if !ok {
					return false, &EvalError{PC: pc, Pos: pos, Err: ErrPositionOverflow}
				}
				pc, pos = PC(nextPC), nextPos

			case InstMatch:
				if !b.config.FullMatch || pos == len(input) {
					return true, nil
				}
				break path

			case InstJump:
				pc = inst.x

			case InstSplit:
				state.stack = append(state.stack, frame{pc: inst.y, pos: pos})
				pc = inst.x

			default:
				return false, &EvalError{PC: pc, Pos: pos, Err: ErrInvalidPC}
			}
		}
	}
	return false, nil
}
