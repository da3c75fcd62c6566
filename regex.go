// Package rxvm compiles a small regular expression language into a program
// for a virtual machine and evaluates programs against text.
//
// The language has literal characters, grouping with (), alternation with |,
// and the postfix repetitions *, + and ?. A backslash escapes one of the
// metacharacters \ ( ) | * + ?. There are no character classes, anchors or
// captures.
//
// A compiled program is a flat list of four instructions:
//
//	char c       consume c or fail this thread
//	match        accept
//	jmp x        continue at x
//	split x, y   continue at x and at y
//
// Two evaluators run programs, a depth-first backtracker and a
// parallel-state PikeVM. They always agree; the PikeVM is linear in the
// input.
//
// Basic usage:
//
//	re, err := rxvm.Compile("abc|(de|cd)+")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ok, err := re.Match("decddede") // true, nil
//
// By default a match must start at the first character and may leave
// trailing input unconsumed. Config.Anchored and Config.FullMatch change
// that:
//
//	config := rxvm.DefaultConfig()
//	config.Anchored = false // match anywhere
//	re, err := rxvm.CompileWithConfig("foo|bar", config)
package rxvm

import (
	"errors"
	"fmt"
	"io"

	"github.com/coregx/rxvm/meta"
	"github.com/coregx/rxvm/nfa"
	"github.com/coregx/rxvm/syntax"
)

// Strategy selects an evaluator.
type Strategy = meta.Strategy

// Evaluation strategies.
const (
	StrategyAuto      = meta.StrategyAuto
	StrategyBacktrack = meta.StrategyBacktrack
	StrategyPikeVM    = meta.StrategyPikeVM
	StrategyLiteral   = meta.StrategyLiteral
)

// Config controls compilation and matching; see meta.Config.
type Config = meta.Config

// ParseStrategy maps a strategy name such as "depth" or "parallel" to a
// Strategy.
func ParseStrategy(name string) (Strategy, error) {
	return meta.ParseStrategy(name)
}

// Regex is a compiled pattern.
//
// A Regex is safe to use concurrently from multiple goroutines, except for
// ResetStats.
//
// Example:
//
//	re := rxvm.MustCompile("a(bc)+|c(def)*")
//	if re.MatchString("cdefdefdef") {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Compile parses and compiles pattern with DefaultConfig.
//
// A malformed pattern fails with *syntax.Error. A pattern whose program
// would exceed the addressable size, or whose tree is too deep to compile,
// fails with *nfa.CompileError.
//
// Example:
//
//	re, err := rxvm.Compile("(a|b)*c")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("rxvm: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := rxvm.DefaultConfig()
//	config.Strategy = rxvm.StrategyBacktrack
//	config.FullMatch = true
//	re, err := rxvm.CompileWithConfig("a+b", config)
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for compilation.
//
// Users can customize this and pass to CompileWithConfig.
func DefaultConfig() Config {
	return meta.DefaultConfig()
}

// QuoteMeta returns a string that escapes all metacharacters inside the
// argument text; the returned string is a pattern matching the literal
// text.
//
// Example:
//
//	escaped := rxvm.QuoteMeta("a+b")
//	// escaped = `a\+b`
//	re := rxvm.MustCompile(escaped)
//	re.MatchString("a+b") // true
func QuoteMeta(s string) string {
	const special = `\()|*+?`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

// isSpecial returns true if c is in the special characters string.
func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// Match reports whether the compiled program matches text, using the
// configured strategy. Evaluation failures are returned as *nfa.EvalError.
func (r *Regex) Match(text string) (bool, error) {
	return r.engine.IsMatch([]rune(text))
}

// MatchRunes is Match over pre-decoded input.
func (r *Regex) MatchRunes(input []rune) (bool, error) {
	return r.engine.IsMatch(input)
}

// MatchString reports whether the compiled program matches s. An
// evaluation error counts as no match; use Match to observe it.
func (r *Regex) MatchString(s string) bool {
	ok, err := r.Match(s)
	return err == nil && ok
}

// Evaluate reports whether the compiled program matches text, using the
// given strategy. StrategyAuto means the configured strategy.
func (r *Regex) Evaluate(text string, s Strategy) (bool, error) {
	return r.engine.IsMatchWith([]rune(text), s)
}

// Program returns the compiled program. Programs are immutable and may be
// shared.
func (r *Regex) Program() *nfa.Program {
	return r.engine.Program()
}

// Strategy returns the evaluator Match uses.
func (r *Regex) Strategy() Strategy {
	return r.engine.Strategy()
}

// Stats returns per-evaluator search counts.
func (r *Regex) Stats() meta.Stats {
	return r.engine.Stats()
}

// ResetStats resets search counts to zero.
func (r *Regex) ResetStats() {
	r.engine.ResetStats()
}

// String returns the source text used to compile the pattern.
func (r *Regex) String() string {
	return r.pattern
}

// Evaluate runs prog against text with anchored-start, prefix-accepting
// semantics. StrategyBacktrack runs the backtracker, or the PikeVM when text
// is too long for the backtracker's default budget; every other strategy
// runs the PikeVM.
//
// prog is validated first, so both strategies agree on every program: one
// that breaks a program invariant, such as a jump outside itself, fails
// with an *nfa.EvalError wrapping nfa.ErrInvalidPC and the *nfa.BuildError
// describing the violation.
//
// Example:
//
//	prog, _ := nfa.Compile("a+b")
//	ok, err := rxvm.Evaluate(prog, "aaab", rxvm.StrategyBacktrack) // true, nil
func Evaluate(prog *nfa.Program, text string, s Strategy) (bool, error) {
	if err := prog.Validate(); err != nil {
		pc := nfa.InvalidPC
		var berr *nfa.BuildError
		if errors.As(err, &berr) {
			pc = berr.PC
		}
		return false, &nfa.EvalError{PC: pc, Pos: 0, Err: fmt.Errorf("%w: %w", nfa.ErrInvalidPC, err)}
	}

	input := []rune(text)
	config := nfa.DefaultExecConfig()
	if s == StrategyBacktrack {
		if bt := nfa.NewBoundedBacktracker(prog, config); bt.CanHandle(len(input)) {
			return bt.IsMatch(input)
		}
	}
	return nfa.NewPikeVM(prog, config).IsMatch(input)
}

// Match compiles pattern and evaluates it against text with the given
// strategy. Errors from either step are returned unchanged.
//
// Example:
//
//	ok, err := rxvm.Match("abc|(de|cd)+", "decddede", rxvm.StrategyPikeVM) // true, nil
func Match(pattern, text string, s Strategy) (bool, error) {
	prog, err := nfa.Compile(pattern)
	if err != nil {
		return false, err
	}
	return Evaluate(prog, text, s)
}

// Describe writes pattern, its syntax tree and its program listing to w.
//
// Example output for "a|b":
//
//	pattern: "a|b"
//	tree:    Or(Seq(Char('a')), Seq(Char('b')))
//	program:
//	0000: split 0001, 0003
//	0001: char a
//	0002: jmp 0004
//	0003: char b
//	0004: match
func Describe(w io.Writer, pattern string) error {
	node, err := syntax.Parse(pattern)
	if err != nil {
		return err
	}
	prog, err := nfa.NewDefaultCompiler().CompileNode(node)
	if err != nil {
		var cerr *nfa.CompileError
		if errors.As(err, &cerr) {
			cerr.Pattern = pattern
		}
		return err
	}
	_, err = fmt.Fprintf(w, "pattern: %q\ntree:    %s\nprogram:\n%s", pattern, node, prog)
	return err
}
