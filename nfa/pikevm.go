package nfa

import (
	"github.com/coregx/rxvm/internal/conv"
	"github.com/coregx/rxvm/internal/sparse"
)

// PikeVM evaluates a program by simulating every branch in lock step. For
// each input position it keeps the set of program counters reachable
// without consuming input (the epsilon-closure over jmp and split); each
// input character advances every matching char instruction, and the result
// is closed again.
//
// Time is O(Len() * len(input)) and memory O(Len()); there is no recursion.
//
// The PikeVM itself is immutable and safe for concurrent use; each search
// needs its own PikeVMState.
type PikeVM struct {
	prog   *Program
	config ExecConfig
}

// PikeVMState holds mutable per-search state for PikeVM.
// This struct should be pooled (via sync.Pool) for concurrent usage.
// Each goroutine must use its own PikeVMState instance.
type PikeVMState struct {
	// Thread sets for the current and next input position.
	curr *sparse.SparseSet
	next *sparse.SparseSet

	// epsilonStack is used for loop-based epsilon closure.
	epsilonStack []PC

	steps int
}

// NewPikeVM creates a PikeVM for prog.
func NewPikeVM(prog *Program, config ExecConfig) *PikeVM {
	return &PikeVM{prog: prog, config: config}
}

// NewPikeVMState creates an empty search state.
func NewPikeVMState() *PikeVMState {
	return &PikeVMState{
		curr: sparse.NewSparseSet(0),
		next: sparse.NewSparseSet(0),
	}
}

// Program returns the program being evaluated.
func (p *PikeVM) Program() *Program {
	return p.prog
}

func (p *PikeVM) reset(state *PikeVMState) {
	capacity := conv.IntToUint32(p.prog.Len())
	if state.curr == nil {
		state.curr = sparse.NewSparseSet(capacity)
		state.next = sparse.NewSparseSet(capacity)
	}
	if state.curr.Capacity() != p.prog.Len() {
		state.curr.Resize(capacity)
		state.next.Resize(capacity)
	}
	state.curr.Clear()
	state.next.Clear()
	state.epsilonStack = state.epsilonStack[:0]
	state.steps = 0
}

// IsMatch reports whether the program matches input, using a fresh state.
func (p *PikeVM) IsMatch(input []rune) (bool, error) {
	return p.IsMatchWithState(input, NewPikeVMState())
}

// IsMatchWithState is IsMatch with caller-provided state.
func (p *PikeVM) IsMatchWithState(input []rune, state *PikeVMState) (bool, error) {
	p.reset(state)

	matched, err := p.addThread(state, state.curr, 0, 0)
	if err != nil {
		return false, err
	}
	if matched && (!p.config.FullMatch || len(input) == 0) {
		return true, nil
	}

	for pos := 0; pos < len(input); pos++ {
		if state.curr.IsEmpty() && !p.config.Unanchored {
			return false, nil
		}
		nextPos, ok := conv.IncInt(pos)
		if !ok {
			return false, &EvalError{PC: 0, Pos: pos, Err: ErrPositionOverflow}
		}

		state.next.Clear()
		matched = false
		c := input[pos]
		for _, v := range state.curr.Values() {
			pc := PC(v)
			inst := p.prog.insts[pc]
			if inst.op != InstChar || inst.r != c {
				continue
			}
			nextPC, ok := conv.IncUint32(uint32(pc), MaxProgramLen)
			if !ok {
				return false, &EvalError{PC: pc, Pos: pos, Err: ErrPositionOverflow}
			}
			m, err := p.addThread(state, state.next, PC(nextPC), nextPos)
			if err != nil {
				return false, err
			}
			matched = matched || m
		}
		if p.config.Unanchored {
			m, err := p.addThread(state, state.next, 0, nextPos)
			if err != nil {
				return false, err
			}
			matched = matched || m
		}
		state.curr, state.next = state.next, state.curr

		if matched && (!p.config.FullMatch || nextPos == len(input)) {
			return true, nil
		}
	}
	return false, nil
}

// addThread adds pc and its epsilon-closure to set and reports whether the
// closure contains a match instruction. Closure uses an explicit stack;
// the first branch of a split is visited before the second.
func (p *PikeVM) addThread(state *PikeVMState, set *sparse.SparseSet, pc PC, pos int) (bool, error) {
	matched := false
	state.epsilonStack = append(state.epsilonStack[:0], pc)

	for len(state.epsilonStack) > 0 {
		n := len(state.epsilonStack) - 1
		pc = state.epsilonStack[n]
		state.epsilonStack = state.epsilonStack[:n]

		inst, ok := p.prog.Inst(pc)
		if !ok {
			return false, &EvalError{PC: pc, Pos: pos, Err: ErrInvalidPC}
		}
		if !set.Insert(uint32(pc)) {
			continue
		}
		state.steps++
		if p.config.StepLimit > 0 && state.steps > p.config.StepLimit {
			return false, &EvalError{PC: pc, Pos: pos, Err: ErrStepLimit}
		}

		switch inst.op {
		case InstChar:
			// Waits in the set for the next input character.
		case InstMatch:
			matched = true
		case InstJump:
			state.epsilonStack = append(state.epsilonStack, inst.x)
		case InstSplit:
			state.epsilonStack = append(state.epsilonStack, inst.y, inst.x)
		default:
			return false, &EvalError{PC: pc, Pos: pos, Err: ErrInvalidPC}
		}
	}
	return matched, nil
}
