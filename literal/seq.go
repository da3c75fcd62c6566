// Package literal extracts the finite set of strings matched by
// repetition-free patterns.
//
// A pattern built only from characters, concatenation and alternation, such
// as foo|ba(r|z), matches exactly a finite set of strings. For those patterns
// the engine can skip the instruction machine entirely and hand the set to a
// multi-string searcher.
//
// Key concepts:
//   - A Literal is one concrete rune sequence the pattern matches
//   - A Seq is the set of alternative literals for a whole pattern
package literal

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Literal is one concrete string a pattern matches.
type Literal struct {
	Runes []rune
}

// NewLiteral creates a Literal from s.
//
// Example:
//
//	lit := literal.NewLiteral("hello")
//	fmt.Println(lit.Len()) // Output: 5
func NewLiteral(s string) Literal {
	return Literal{Runes: []rune(s)}
}

// Len returns the length of the literal in runes.
func (l Literal) Len() int {
	return len(l.Runes)
}

// String returns the literal as a string.
func (l Literal) String() string {
	return string(l.Runes)
}

// Bytes returns the UTF-8 encoding of the literal.
func (l Literal) Bytes() []byte {
	return []byte(string(l.Runes))
}

// IsValidUTF8 reports whether every rune of the literal has a UTF-8
// encoding, so that byte-level and rune-level occurrences coincide.
func (l Literal) IsValidUTF8() bool {
	for _, r := range l.Runes {
		if !utf8.ValidRune(r) {
			return false
		}
	}
	return true
}

// Seq represents a set of alternative literals. The order is the order in
// which the alternatives appear in the pattern, with duplicates removed.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral("foo"),
//	    literal.NewLiteral("bar"),
//	)
//	fmt.Println(seq.Len()) // Output: 2
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i.
// Panics if i is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// Strings returns the literals as strings, in order.
func (s *Seq) Strings() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.literals))
	for i, lit := range s.literals {
		out[i] = lit.String()
	}
	return out
}

// String formats the sequence as a quoted, pipe-separated list.
func (s *Seq) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, lit := range s.Strings() {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteByte('"')
		b.WriteString(lit)
		b.WriteByte('"')
	}
	b.WriteByte(']')
	return b.String()
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}
	lits := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		lits[i] = Literal{Runes: slices.Clone(lit.Runes)}
	}
	return &Seq{literals: lits}
}

// Dedup removes repeated literals, keeping the first occurrence of each.
func (s *Seq) Dedup() {
	if s.Len() < 2 {
		return
	}
	seen := make(map[string]struct{}, len(s.literals))
	out := s.literals[:0]
	for _, lit := range s.literals {
		key := lit.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, lit)
	}
	s.literals = out
}

// MinLen returns the length of the shortest literal, or 0 for an empty
// sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	minLen := s.literals[0].Len()
	for _, lit := range s.literals[1:] {
		minLen = min(minLen, lit.Len())
	}
	return minLen
}
