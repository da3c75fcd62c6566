package literal

import (
	"github.com/coregx/rxvm/syntax"
)

// ExtractorConfig configures literal extraction limits.
//
// Extraction gives up, rather than truncating, when a limit is exceeded:
// a partial set would change what the pattern matches.
type ExtractorConfig struct {
	// MaxLiterals limits the number of alternatives. Concatenating
	// alternations multiplies them, as in (a|b)(c|d)(e|f).
	// Default: 256.
	MaxLiterals int

	// MaxLiteralLen limits the length of each literal in runes.
	// Default: 256.
	MaxLiteralLen int

	// MaxDepth limits how deeply nested a tree extraction will walk.
	// Default: 1000.
	MaxDepth int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   256,
		MaxLiteralLen: 256,
		MaxDepth:      1000,
	}
}

// Extractor extracts the literal set of a repetition-free syntax tree.
//
// Example:
//
//	tree, _ := syntax.Parse("foo|ba(r|z)")
//	seq, ok := literal.New(literal.DefaultConfig()).Extract(tree)
//	// ok == true, seq = ["foo" | "bar" | "baz"]
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration. Zero limits
// take their defaults.
func New(config ExtractorConfig) *Extractor {
	def := DefaultConfig()
	if config.MaxLiterals <= 0 {
		config.MaxLiterals = def.MaxLiterals
	}
	if config.MaxLiteralLen <= 0 {
		config.MaxLiteralLen = def.MaxLiteralLen
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = def.MaxDepth
	}
	return &Extractor{config: config}
}

// Extract returns the exact set of strings node matches. It reports false
// when node contains a repetition, when any member of the set would be
// empty, or when a limit is exceeded.
//
// Examples:
//
//	"hello"       → ["hello"]
//	"(foo|bar)"   → ["foo", "bar"]
//	"a(b|c)d"     → ["abd", "acd"]
//	"ab*"         → not extractable
//	"a|"          → rejected by the parser
//	""            → not extractable (empty string)
func (e *Extractor) Extract(node *syntax.Node) (*Seq, bool) {
	lits, ok := e.extract(node, 0)
	if !ok || len(lits) == 0 {
		return nil, false
	}
	seq := NewSeq(lits...)
	seq.Dedup()
	if seq.MinLen() == 0 {
		return nil, false
	}
	return seq, true
}

func (e *Extractor) extract(node *syntax.Node, depth int) ([]Literal, bool) {
	if node == nil || depth > e.config.MaxDepth {
		return nil, false
	}

	switch node.Op {
	case syntax.OpChar:
		return []Literal{{Runes: []rune{node.Rune}}}, true

	case syntax.OpSeq:
		// Cross product of the parts, left to right.
		acc := []Literal{{}}
		for _, sub := range node.Sub {
			part, ok := e.extract(sub, depth+1)
			if !ok {
				return nil, false
			}
			acc, ok = e.cross(acc, part)
			if !ok {
				return nil, false
			}
		}
		return acc, true

	case syntax.OpOr:
		var out []Literal
		for _, sub := range node.Sub {
			part, ok := e.extract(sub, depth+1)
			if !ok {
				return nil, false
			}
			out = append(out, part...)
			if len(out) > e.config.MaxLiterals {
				return nil, false
			}
		}
		return out, true

	default:
		// Star, Plus and Question match unboundedly many or optional strings.
		return nil, false
	}
}

func (e *Extractor) cross(left, right []Literal) ([]Literal, bool) {
	if len(left)*len(right) > e.config.MaxLiterals {
		return nil, false
	}
	out := make([]Literal, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			n := len(l.Runes) + len(r.Runes)
			if n > e.config.MaxLiteralLen {
				return nil, false
			}
			runes := make([]rune, 0, n)
			runes = append(runes, l.Runes...)
			runes = append(runes, r.Runes...)
			out = append(out, Literal{Runes: runes})
		}
	}
	return out, true
}

// Extract is a convenience wrapper using DefaultConfig.
func Extract(node *syntax.Node) (*Seq, bool) {
	return New(DefaultConfig()).Extract(node)
}
