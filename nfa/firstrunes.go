package nfa

// FirstRuneSet is the set of runes that can begin a match of a program
// which cannot match the empty string. An unanchored search may skip every
// start position whose rune is not in the set.
type FirstRuneSet struct {
	// ascii is a 128-bit lookup table for O(1) membership of ASCII runes.
	ascii [2]uint64
	other map[rune]struct{}
	count int
}

// maxFirstRunes bounds the set size; larger sets reject too little to pay
// for themselves.
const maxFirstRunes = 256

// Contains returns true if r can be the first rune of a match.
func (f *FirstRuneSet) Contains(r rune) bool {
	if r >= 0 && r < 128 {
		return f.ascii[r>>6]&(1<<(uint(r)&63)) != 0
	}
	_, ok := f.other[r]
	return ok
}

// Len returns the number of runes in the set.
func (f *FirstRuneSet) Len() int {
	return f.count
}

func (f *FirstRuneSet) add(r rune) {
	if f.Contains(r) {
		return
	}
	f.count++
	if r >= 0 && r < 128 {
		f.ascii[r>>6] |= 1 << (uint(r) & 63)
		return
	}
	if f.other == nil {
		f.other = make(map[rune]struct{})
	}
	f.other[r] = struct{}{}
}

// ExtractFirstRunes walks the epsilon-closure of instruction 0 and collects
// the runes of the char instructions it reaches.
//
// Returns nil when the set would not help or cannot be trusted:
//   - the closure reaches match, so the program matches the empty string
//   - the closure leaves the program, so evaluation must report it
//   - more than maxFirstRunes distinct runes are possible
func ExtractFirstRunes(prog *Program) *FirstRuneSet {
	if prog == nil || prog.Len() == 0 {
		return nil
	}

	set := &FirstRuneSet{}
	seen := make([]bool, prog.Len())
	stack := []PC{0}
	for len(stack) > 0 {
		pc := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		inst, ok := prog.Inst(pc)
		if !ok {
			return nil
		}
		if seen[pc] {
			continue
		}
		seen[pc] = true

		switch inst.op {
		case InstChar:
			set.add(inst.r)
			if set.count > maxFirstRunes {
				return nil
			}
		case InstMatch:
			return nil
		case InstJump:
			stack = append(stack, inst.x)
		case InstSplit:
			stack = append(stack, inst.y, inst.x)
		default:
			return nil
		}
	}
	if set.count == 0 {
		// A closure with no char and no match is a loop of jumps; it
		// matches nothing, but the evaluators already handle that.
		return nil
	}
	return set
}
