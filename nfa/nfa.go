package nfa

import (
	"fmt"
	"strconv"
	"strings"
)

// PC is a program counter: the address of an instruction in a Program.
// This is a 32-bit unsigned integer for compact representation.
type PC uint32

const (
	// InvalidPC is the placeholder operand of an unpatched instruction.
	// It is never a valid address.
	InvalidPC PC = 0xFFFFFFFF

	// MaxProgramLen is the largest number of instructions a Program can hold;
	// addresses run from 0 to MaxProgramLen-1.
	MaxProgramLen = uint32(InvalidPC)
)

// InstOp identifies the type of an instruction and determines which
// operands are valid.
type InstOp uint8

const (
	// InstChar consumes one input character if it equals the operand,
	// otherwise the current path fails.
	InstChar InstOp = iota + 1

	// InstMatch accepts. It is the only terminal instruction.
	InstMatch

	// InstJump transfers control to X unconditionally.
	InstJump

	// InstSplit branches non-deterministically: X first, then Y from the
	// same input position.
	InstSplit
)

// String returns the mnemonic for the InstOp.
func (op InstOp) String() string {
	switch op {
	case InstChar:
		return "char"
	case InstMatch:
		return "match"
	case InstJump:
		return "jmp"
	case InstSplit:
		return "split"
	default:
		return fmt.Sprintf("op(%d)", op)
	}
}

// Inst is a single VM instruction. It is a small value type; the op
// determines which operands are meaningful.
type Inst struct {
	op   InstOp
	r    rune // InstChar
	x, y PC   // InstJump uses x; InstSplit uses x and y
}

// CharInst returns an instruction consuming the character r.
func CharInst(r rune) Inst {
	return Inst{op: InstChar, r: r, x: InvalidPC, y: InvalidPC}
}

// MatchInst returns the accepting instruction.
func MatchInst() Inst {
	return Inst{op: InstMatch, x: InvalidPC, y: InvalidPC}
}

// JumpInst returns an unconditional jump to target.
func JumpInst(target PC) Inst {
	return Inst{op: InstJump, x: target, y: InvalidPC}
}

// SplitInst returns a branch trying x before y.
func SplitInst(x, y PC) Inst {
	return Inst{op: InstSplit, x: x, y: y}
}

// Op returns the instruction's type.
func (i Inst) Op() InstOp {
	return i.op
}

// Rune returns the character of an InstChar, or -1 for other instructions.
func (i Inst) Rune() rune {
	if i.op == InstChar {
		return i.r
	}
	return -1
}

// Jump returns the target of an InstJump, or InvalidPC.
func (i Inst) Jump() PC {
	if i.op == InstJump {
		return i.x
	}
	return InvalidPC
}

// Split returns both targets of an InstSplit, or (InvalidPC, InvalidPC).
func (i Inst) Split() (x, y PC) {
	if i.op == InstSplit {
		return i.x, i.y
	}
	return InvalidPC, InvalidPC
}

// String returns the disassembled form of the instruction.
func (i Inst) String() string {
	switch i.op {
	case InstChar:
		return "char " + string(i.r)
	case InstMatch:
		return "match"
	case InstJump:
		return "jmp " + formatPC(i.x)
	case InstSplit:
		return "split " + formatPC(i.x) + ", " + formatPC(i.y)
	default:
		return i.op.String()
	}
}

func formatPC(pc PC) string {
	if pc == InvalidPC {
		return "????"
	}
	return fmt.Sprintf("%04d", pc)
}

// Program is a compiled, addressable sequence of instructions. The index of
// an instruction is its address.
//
// A Program is immutable once built and safe for concurrent use by any
// number of evaluators.
type Program struct {
	insts []Inst
}

// NewProgram wraps insts as a Program without validating it. The slice is
// copied. Use Validate to check the address invariants of hand-built
// programs; the evaluators report malformed addresses with ErrInvalidPC.
func NewProgram(insts []Inst) *Program {
	cp := make([]Inst, len(insts))
	copy(cp, insts)
	return &Program{insts: cp}
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.insts)
}

// Inst returns the instruction at pc and whether pc is in range.
func (p *Program) Inst(pc PC) (Inst, bool) {
	if uint64(pc) >= uint64(len(p.insts)) {
		return Inst{}, false
	}
	return p.insts[pc], true
}

// Insts returns a copy of the instruction sequence.
func (p *Program) Insts() []Inst {
	cp := make([]Inst, len(p.insts))
	copy(cp, p.insts)
	return cp
}

// Equal reports whether p and o have the same instructions at the same
// addresses.
func (p *Program) Equal(o *Program) bool {
	if p == nil || o == nil {
		return p == o
	}
	if len(p.insts) != len(o.insts) {
		return false
	}
	for i := range p.insts {
		if p.insts[i] != o.insts[i] {
			return false
		}
	}
	return true
}

// Validate checks the program invariants: every jump and split target lies
// within [0, Len()), there is exactly one match instruction, and it is
// reachable from address 0.
func (p *Program) Validate() error {
	n := uint64(len(p.insts))
	matches := 0
	for pc, inst := range p.insts {
		switch inst.op {
		case InstChar:
		case InstMatch:
			matches++
		case InstJump:
			if uint64(inst.x) >= n {
				return &BuildError{Message: "jump target " + formatPC(inst.x) + " out of range", PC: PC(pc)}
			}
		case InstSplit:
			if uint64(inst.x) >= n || uint64(inst.y) >= n {
				return &BuildError{
					Message: "split target " + formatPC(inst.x) + ", " + formatPC(inst.y) + " out of range",
					PC:      PC(pc),
				}
			}
		default:
			return &BuildError{Message: "unknown instruction " + inst.op.String(), PC: PC(pc)}
		}
	}
	if matches != 1 {
		return &BuildError{Message: "program has " + strconv.Itoa(matches) + " match instructions, want 1", PC: InvalidPC}
	}
	return p.checkReachable()
}

// checkReachable walks the control flow graph from address 0 and fails if
// the match instruction cannot be reached or a char falls off the end.
// Targets are known to be in range.
func (p *Program) checkReachable() error {
	seen := make([]bool, len(p.insts))
	stack := []PC{0}
	reached := false
	for len(stack) > 0 {
		pc := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[pc] {
			continue
		}
		seen[pc] = true

		inst := p.insts[pc]
		switch inst.op {
		case InstMatch:
			reached = true
		case InstChar:
			if int(pc)+1 >= len(p.insts) {
				return &BuildError{Message: "char falls off the end of the program", PC: pc}
			}
			stack = append(stack, pc+1)
		case InstJump:
			stack = append(stack, inst.x)
		case InstSplit:
			stack = append(stack, inst.y, inst.x)
		}
	}
	if !reached {
		return &BuildError{Message: "match is unreachable from 0000", PC: InvalidPC}
	}
	return nil
}

// String returns a disassembly listing, one instruction per line:
//
//	0000: split 0001, 0003
//	0001: char a
//	0002: jmp 0000
//	0003: match
func (p *Program) String() string {
	var b strings.Builder
	for pc, inst := range p.insts {
		fmt.Fprintf(&b, "%04d: %s\n", pc, inst)
	}
	return b.String()
}
