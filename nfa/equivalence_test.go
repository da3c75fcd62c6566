package nfa

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// equivalenceCorpus mixes nested star, plus, question and alternation.
// Every pattern is also valid stdlib syntax with the same meaning.
var equivalenceCorpus = []string{
	"",
	"a",
	"ab",
	"a*",
	"a+",
	"a?",
	"a|b",
	"ab|ba",
	"(a|b)*",
	"(a|b)+c",
	"(ab|a)(bc|c)",
	"a*b*",
	"(a*)*",
	"(a*)+",
	"(a?)*",
	"(a?)+b",
	"(a|b?)*c",
	"((a|b)+c)*",
	"((ab)*|c)+",
	"a(b|c)*a",
	"(a+|b+)*c?",
	"((a?b?)*c)+",
	"(((a)))",
	"((a|(b|c))*)b",
	"abc|(ab|cb)+",
	"c(ab)*|a(bc)+",
}

// allStrings returns every string over alphabet with length <= maxLen.
func allStrings(alphabet string, maxLen int) []string {
	out := []string{""}
	prev := []string{""}
	for n := 1; n <= maxLen; n++ {
		var next []string
		for _, p := range prev {
			for _, c := range alphabet {
				next = append(next, p+string(c))
			}
		}
		out = append(out, next...)
		prev = next
	}
	return out
}

var execModes = []struct {
	name   string
	config ExecConfig
	wrap   func(pattern string) string
}{
	{"prefix", ExecConfig{}, func(p string) string { return `^(?:` + p + `)` }},
	{"full", ExecConfig{FullMatch: true}, func(p string) string { return `^(?:` + p + `)$` }},
	{"unanchored", ExecConfig{Unanchored: true}, func(p string) string { return `(?:` + p + `)` }},
	{"unanchored-full", ExecConfig{Unanchored: true, FullMatch: true}, func(p string) string { return `(?:` + p + `)$` }},
}

// TestStrategyEquivalence checks that both evaluators agree with each other
// and with the stdlib regexp package on every short input.
func TestStrategyEquivalence(t *testing.T) {
	inputs := allStrings("abc", 5)

	for _, pattern := range equivalenceCorpus {
		prog := compileForTest(t, pattern)
		for _, mode := range execModes {
			oracle := regexp.MustCompile(mode.wrap(pattern))
			bt := NewBoundedBacktracker(prog, mode.config)
			pv := NewPikeVM(prog, mode.config)
			btState := NewBacktrackerState()
			pvState := NewPikeVMState()

			for _, input := range inputs {
				runes := []rune(input)
				got1, err := bt.IsMatchWithState(runes, btState)
				require.NoError(t, err)
				got2, err := pv.IsMatchWithState(runes, pvState)
				require.NoError(t, err)
				want := oracle.MatchString(input)

				if got1 != got2 || got1 != want {
					t.Fatalf("%s: pattern %q input %q: backtrack=%v pikevm=%v stdlib=%v",
						mode.name, pattern, input, got1, got2, want)
				}
			}
		}
	}
}

func FuzzStrategyEquivalence(f *testing.F) {
	f.Add("abc|(de|cd)+", "decddede")
	f.Add("a(bc)+|c(def)*", "cdefdefdef")
	f.Add("(a?)*b", "aab")
	f.Add("((a|b)*c)+", "abcbc")
	f.Add("", "")

	f.Fuzz(func(t *testing.T, pattern, input string) {
		if len(pattern) > 64 || len(input) > 256 {
			t.Skip()
		}
		prog, err := Compile(pattern)
		if err != nil {
			return
		}
		runes := []rune(input)
		for _, mode := range execModes {
			got1, err1 := NewBoundedBacktracker(prog, mode.config).IsMatch(runes)
			got2, err2 := NewPikeVM(prog, mode.config).IsMatch(runes)
			require.NoError(t, err1)
			require.NoError(t, err2)
			assert.Equal(t, got1, got2, "%s: pattern %q input %q", mode.name, pattern, input)
		}
	})
}
