package nfa

import (
	"strings"
	"testing"
)

func benchmarkEngines(b *testing.B, pattern, input string) {
	prog := compileForTest(b, pattern)
	runes := []rune(input)

	b.Run("backtrack", func(b *testing.B) {
		bt := NewBoundedBacktracker(prog, DefaultExecConfig())
		state := NewBacktrackerState()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = bt.IsMatchWithState(runes, state)
		}
	})
	b.Run("pikevm", func(b *testing.B) {
		pv := NewPikeVM(prog, DefaultExecConfig())
		state := NewPikeVMState()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = pv.IsMatchWithState(runes, state)
		}
	})
}

func BenchmarkLiteral(b *testing.B) {
	benchmarkEngines(b, "hello", "hello world")
}

func BenchmarkAlternationLoop(b *testing.B) {
	benchmarkEngines(b, "abc|(de|cd)+", strings.Repeat("decd", 256))
}

// BenchmarkNestedRepetition is the classic exponential case for unmemoized
// backtracking.
func BenchmarkNestedRepetition(b *testing.B) {
	benchmarkEngines(b, "(a*)*b", strings.Repeat("a", 64))
}

func BenchmarkCompile(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Compile("a(bc)+|c(def)*|((x|y)*z)+")
	}
}
