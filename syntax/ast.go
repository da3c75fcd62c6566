// Package syntax parses regular expression patterns into syntax trees.
//
// The supported language is deliberately small: literal characters,
// grouping with parentheses, alternation with '|', and the repetition
// operators '*', '+' and '?'. A backslash escapes any of the
// metacharacters `\ ( ) | * + ?`.
//
// Grammar, from highest to lowest binding:
//
//	primary  = literal | '\' meta | '(' expr ')'
//	factor   = primary [ '*' | '+' | '?' ]
//	sequence = { factor }
//	expr     = sequence { '|' sequence }
package syntax

import (
	"slices"
	"strconv"
	"strings"
)

// Op identifies the kind of a syntax tree node.
type Op uint8

const (
	// OpChar matches exactly one input character equal to Node.Rune.
	OpChar Op = iota + 1

	// OpOr is alternation; Sub holds exactly two nodes, left before right.
	OpOr

	// OpSeq is ordered concatenation of Sub.
	OpSeq

	// OpStar matches Sub[0] zero or more times.
	OpStar

	// OpPlus matches Sub[0] one or more times.
	OpPlus

	// OpQuestion matches Sub[0] zero or one time.
	OpQuestion
)

// String returns the node constructor name for the Op.
func (op Op) String() string {
	switch op {
	case OpChar:
		return "Char"
	case OpOr:
		return "Or"
	case OpSeq:
		return "Seq"
	case OpStar:
		return "Star"
	case OpPlus:
		return "Plus"
	case OpQuestion:
		return "Question"
	default:
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
}

// Node is a syntax tree node. The Op determines which fields are valid:
// Rune for OpChar, Sub for everything else.
type Node struct {
	Op   Op
	Rune rune
	Sub  []*Node
}

// Char returns a node matching the single character r.
func Char(r rune) *Node {
	return &Node{Op: OpChar, Rune: r}
}

// Or returns the alternation of left and right.
func Or(left, right *Node) *Node {
	return &Node{Op: OpOr, Sub: []*Node{left, right}}
}

// Seq returns the concatenation of subs.
func Seq(subs ...*Node) *Node {
	return &Node{Op: OpSeq, Sub: subs}
}

// Star returns zero-or-more repetition of n.
func Star(n *Node) *Node {
	return &Node{Op: OpStar, Sub: []*Node{n}}
}

// Plus returns one-or-more repetition of n.
func Plus(n *Node) *Node {
	return &Node{Op: OpPlus, Sub: []*Node{n}}
}

// Question returns zero-or-one repetition of n.
func Question(n *Node) *Node {
	return &Node{Op: OpQuestion, Sub: []*Node{n}}
}

// Equal reports whether n and o are structurally identical trees.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Op != o.Op || n.Rune != o.Rune || len(n.Sub) != len(o.Sub) {
		return false
	}
	for i := range n.Sub {
		if !n.Sub[i].Equal(o.Sub[i]) {
			return false
		}
	}
	return true
}

// Alternatives returns the operands of the chain of left-nested Or nodes
// rooted at n, in source order. The parser folds a|b|c into
// Or(Or(a, b), c), so the chain of a long alternation is as deep as it has
// operands. For any other node it returns n alone.
func (n *Node) Alternatives() []*Node {
	var alts []*Node
	for n.Op == OpOr {
		alts = append(alts, n.Sub[1])
		n = n.Sub[0]
	}
	alts = append(alts, n)
	slices.Reverse(alts)
	return alts
}

// Height returns the number of nodes on the longest root-to-leaf path,
// counting a chain of alternations as a single node.
func (n *Node) Height() int {
	if n == nil {
		return 0
	}
	subs := n.Sub
	if n.Op == OpOr {
		subs = n.Alternatives()
	}
	h := 0
	for _, sub := range subs {
		if sh := sub.Height(); sh > h {
			h = sh
		}
	}
	return h + 1
}

// String renders the tree in constructor notation, e.g.
// Seq(Char('a'), Star(Char('b'))).
func (n *Node) String() string {
	var b strings.Builder
	n.writeTo(&b)
	return b.String()
}

func (n *Node) writeTo(b *strings.Builder) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	b.WriteString(n.Op.String())
	b.WriteByte('(')
	if n.Op == OpChar {
		b.WriteString(strconv.QuoteRune(n.Rune))
	}
	for i, sub := range n.Sub {
		if i > 0 {
			b.WriteString(", ")
		}
		sub.writeTo(b)
	}
	b.WriteByte(')')
}
