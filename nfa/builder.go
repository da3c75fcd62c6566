package nfa

import (
	"github.com/coregx/rxvm/internal/conv"
)

// Builder is the growable instruction arena used during code generation.
// Instructions are appended at the running program counter and may later
// have a placeholder operand overwritten once its target is known. Build
// freezes the arena into an immutable Program.
type Builder struct {
	insts []Inst
	pc    PC
	limit uint32
}

// NewBuilder creates a new builder that accepts up to MaxProgramLen
// instructions.
func NewBuilder() *Builder {
	return NewBuilderWithLimit(MaxProgramLen)
}

// NewBuilderWithLimit creates a builder that refuses to grow beyond limit
// instructions. A zero or out-of-range limit means MaxProgramLen.
func NewBuilderWithLimit(limit uint32) *Builder {
	if limit == 0 || limit > MaxProgramLen {
		limit = MaxProgramLen
	}
	return &Builder{
		insts: make([]Inst, 0, 16),
		limit: limit,
	}
}

// PC returns the address the next emitted instruction will occupy.
func (b *Builder) PC() PC {
	return b.pc
}

// Len returns the number of emitted instructions.
func (b *Builder) Len() int {
	return len(b.insts)
}

// Emit appends inst at the current program counter and returns its
// address. The counter advances by a checked increment; once it would pass
// the builder's limit Emit fails with ErrProgramTooLarge and the arena is
// left unchanged.
func (b *Builder) Emit(inst Inst) (PC, error) {
	next, ok := conv.IncUint32(uint32(b.pc), b.limit)
	if !ok {
		return InvalidPC, ErrProgramTooLarge
	}
	at := b.pc
	b.insts = append(b.insts, inst)
	b.pc = PC(next)
	return at, nil
}

// PatchJump sets the target of the placeholder jump at address at.
func (b *Builder) PatchJump(at, target PC) error {
	inst, err := b.placeholder(at, InstJump)
	if err != nil {
		return err
	}
	if inst.x != InvalidPC {
		return &BuildError{Message: "jump already patched", PC: at}
	}
	b.insts[at].x = target
	return nil
}

// PatchSplitY sets the second (fallback) target of the placeholder split at
// address at.
func (b *Builder) PatchSplitY(at, target PC) error {
	inst, err := b.placeholder(at, InstSplit)
	if err != nil {
		return err
	}
	if inst.y != InvalidPC {
		return &BuildError{Message: "split already patched", PC: at}
	}
	b.insts[at].y = target
	return nil
}

func (b *Builder) placeholder(at PC, op InstOp) (Inst, error) {
	if uint64(at) >= uint64(len(b.insts)) {
		return Inst{}, &BuildError{Message: "patch target missing", PC: at}
	}
	inst := b.insts[at]
	if inst.op != op {
		return Inst{}, &BuildError{
			Message: "patch target is " + inst.op.String() + ", want " + op.String(),
			PC:      at,
		}
	}
	return inst, nil
}

// Build validates the emitted instructions and returns them as a Program.
// The builder must not be used afterwards.
func (b *Builder) Build() (*Program, error) {
	prog := &Program{insts: b.insts}
	b.insts = nil
	if err := prog.Validate(); err != nil {
		return nil, err
	}
	return prog, nil
}
