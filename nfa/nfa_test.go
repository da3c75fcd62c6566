package nfa

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstAccessors(t *testing.T) {
	c := CharInst('x')
	assert.Equal(t, InstChar, c.Op())
	assert.Equal(t, 'x', c.Rune())
	assert.Equal(t, InvalidPC, c.Jump())

	j := JumpInst(7)
	assert.Equal(t, InstJump, j.Op())
	assert.Equal(t, PC(7), j.Jump())
	assert.Equal(t, rune(-1), j.Rune())

	s := SplitInst(1, 4)
	x, y := s.Split()
	assert.Equal(t, PC(1), x)
	assert.Equal(t, PC(4), y)

	x, y = MatchInst().Split()
	assert.Equal(t, InvalidPC, x)
	assert.Equal(t, InvalidPC, y)
}

func TestInstString(t *testing.T) {
	tests := []struct {
		inst     Inst
		expected string
	}{
		{CharInst('a'), "char a"},
		{CharInst('日'), "char 日"},
		{MatchInst(), "match"},
		{JumpInst(12), "jmp 0012"},
		{SplitInst(1, 10000), "split 0001, 10000"},
		{SplitInst(3, InvalidPC), "split 0003, ????"},
		{Inst{}, "op(0)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.inst.String())
	}
}

func TestProgramInst(t *testing.T) {
	prog := NewProgram([]Inst{CharInst('a'), MatchInst()})
	assert.Equal(t, 2, prog.Len())

	inst, ok := prog.Inst(1)
	require.True(t, ok)
	assert.Equal(t, InstMatch, inst.Op())

	_, ok = prog.Inst(2)
	assert.False(t, ok)
	_, ok = prog.Inst(InvalidPC)
	assert.False(t, ok)
}

func TestProgramImmutable(t *testing.T) {
	insts := []Inst{CharInst('a'), MatchInst()}
	prog := NewProgram(insts)
	insts[0] = CharInst('z')

	got := prog.Insts()
	got[1] = CharInst('q')

	inst, _ := prog.Inst(0)
	assert.Equal(t, 'a', inst.Rune())
	inst, _ = prog.Inst(1)
	assert.Equal(t, InstMatch, inst.Op())
}

func TestProgramValidate(t *testing.T) {
	tests := []struct {
		name    string
		insts   []Inst
		wantErr bool
	}{
		{"match only", []Inst{MatchInst()}, false},
		{"loop", []Inst{SplitInst(1, 3), CharInst('a'), JumpInst(0), MatchInst()}, false},
		{"empty", nil, true},
		{"no match", []Inst{CharInst('a'), JumpInst(0)}, true},
		{"two matches", []Inst{SplitInst(1, 2), MatchInst(), MatchInst()}, true},
		{"jump out of range", []Inst{JumpInst(5), MatchInst()}, true},
		{"split out of range", []Inst{SplitInst(1, 9), MatchInst()}, true},
		{"unpatched split", []Inst{SplitInst(1, InvalidPC), MatchInst()}, true},
		{"unreachable match", []Inst{JumpInst(0), MatchInst()}, true},
		{"char falls off end", []Inst{SplitInst(2, 1), MatchInst(), CharInst('a')}, true},
		{"unknown op", []Inst{{}, MatchInst()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewProgram(tt.insts).Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var berr *BuildError
			assert.True(t, errors.As(err, &berr), "got %v", err)
		})
	}
}

func TestProgramEqual(t *testing.T) {
	a := NewProgram([]Inst{CharInst('a'), MatchInst()})
	b := NewProgram([]Inst{CharInst('a'), MatchInst()})
	c := NewProgram([]Inst{CharInst('b'), MatchInst()})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(NewProgram([]Inst{MatchInst()})))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*Program)(nil).Equal(nil))
}

func TestBuilderEmitLimit(t *testing.T) {
	b := NewBuilderWithLimit(2)

	pc, err := b.Emit(CharInst('a'))
	require.NoError(t, err)
	assert.Equal(t, PC(0), pc)

	pc, err = b.Emit(MatchInst())
	require.NoError(t, err)
	assert.Equal(t, PC(1), pc)

	pc, err = b.Emit(MatchInst())
	assert.ErrorIs(t, err, ErrProgramTooLarge)
	assert.Equal(t, InvalidPC, pc)
	assert.Equal(t, 2, b.Len(), "failed emit leaves the arena unchanged")
	assert.Equal(t, PC(2), b.PC())
}

func TestBuilderDefaultLimit(t *testing.T) {
	b := NewBuilderWithLimit(0)
	assert.Equal(t, MaxProgramLen, b.limit)

	// The counter cannot pass the last representable address even when the
	// arena itself never gets that large.
	b.pc = PC(MaxProgramLen - 1)
	_, err := b.Emit(CharInst('a'))
	require.NoError(t, err)
	_, err = b.Emit(MatchInst())
	assert.ErrorIs(t, err, ErrProgramTooLarge)
}

func TestBuilderPatch(t *testing.T) {
	b := NewBuilder()
	split, _ := b.Emit(SplitInst(1, InvalidPC))
	char, _ := b.Emit(CharInst('a'))
	jmp, _ := b.Emit(JumpInst(InvalidPC))
	_, _ = b.Emit(MatchInst())

	var berr *BuildError

	err := b.PatchJump(char, 3)
	require.True(t, errors.As(err, &berr), "patching a char must fail")
	assert.Equal(t, char, berr.PC)

	err = b.PatchSplitY(jmp, 3)
	assert.True(t, errors.As(err, &berr))

	err = b.PatchJump(99, 3)
	require.True(t, errors.As(err, &berr))
	assert.Contains(t, berr.Error(), "patch target missing")

	require.NoError(t, b.PatchSplitY(split, 3))
	require.NoError(t, b.PatchJump(jmp, 3))

	err = b.PatchJump(jmp, 0)
	assert.True(t, errors.As(err, &berr), "double patch must fail")

	prog, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "0000: split 0001, 0003\n0001: char a\n0002: jmp 0003\n0003: match\n", prog.String())
}

func TestBuilderBuildValidates(t *testing.T) {
	b := NewBuilder()
	_, _ = b.Emit(JumpInst(InvalidPC))
	_, _ = b.Emit(MatchInst())

	prog, err := b.Build()
	assert.Nil(t, prog)
	var berr *BuildError
	assert.True(t, errors.As(err, &berr))
}

func TestErrorMessages(t *testing.T) {
	cerr := &CompileError{Pattern: "abc", Err: ErrProgramTooLarge}
	assert.Equal(t, `rxvm: code generation failed for pattern "abc": program counter overflow: program too large`, cerr.Error())
	assert.ErrorIs(t, cerr, ErrProgramTooLarge)

	assert.Equal(t, "program build error at 0003: boom", (&BuildError{Message: "boom", PC: 3}).Error())
	assert.Equal(t, "program build error: boom", (&BuildError{Message: "boom", PC: InvalidPC}).Error())

	eerr := &EvalError{PC: 5, Pos: 2, Err: ErrInvalidPC}
	assert.Equal(t, "rxvm: evaluation failed at pc 5, position 2: program counter out of range", eerr.Error())
	assert.ErrorIs(t, eerr, ErrInvalidPC)
}
