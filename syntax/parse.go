package syntax

// DefaultMaxDepth is the group nesting limit used by Parse.
const DefaultMaxDepth = 1000

// Parse parses pattern into a syntax tree.
//
// The empty pattern parses to an empty Seq, which matches the empty string.
// On failure the returned error is a *Error and no tree is returned.
func Parse(pattern string) (*Node, error) {
	return ParseWithLimit(pattern, DefaultMaxDepth)
}

// ParseWithLimit is like Parse but rejects patterns whose parenthesized
// groups nest deeper than maxDepth. A maxDepth <= 0 means DefaultMaxDepth.
func ParseWithLimit(pattern string, maxDepth int) (*Node, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	p := &parser{
		pattern:  pattern,
		runes:    []rune(pattern),
		maxDepth: maxDepth,
	}
	n, err := p.parseExpr(true)
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		// parseExpr only stops early on ')'.
		return nil, p.errorAt(ErrUnexpectedParen, p.pos)
	}
	return n, nil
}

func isMeta(r rune) bool {
	switch r {
	case '\\', '(', ')', '|', '*', '+', '?':
		return true
	}
	return false
}

func isRepeat(r rune) bool {
	return r == '*' || r == '+' || r == '?'
}

type parser struct {
	pattern  string
	runes    []rune
	pos      int
	depth    int
	maxDepth int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.runes)
}

func (p *parser) peek() rune {
	if p.eof() {
		return -1
	}
	return p.runes[p.pos]
}

func (p *parser) errorAt(code ErrorCode, pos int) *Error {
	return &Error{Code: code, Pattern: p.pattern, Pos: pos}
}

// parseExpr parses sequences separated by '|'. Alternatives fold to the
// left: a|b|c is Or(Or(a, b), c).
func (p *parser) parseExpr(top bool) (*Node, error) {
	start := p.pos
	left, err := p.parseSeq()
	if err != nil {
		return nil, err
	}
	alternated := false
	for p.peek() == '|' {
		if len(left.Sub) == 0 && !alternated {
			return nil, p.errorAt(ErrEmptyAlternative, p.pos)
		}
		alternated = true
		p.pos++
		right, err := p.parseSeq()
		if err != nil {
			return nil, err
		}
		if len(right.Sub) == 0 {
			return nil, p.errorAt(ErrEmptyAlternative, p.pos)
		}
		left = Or(left, right)
	}
	if !top && !alternated && len(left.Sub) == 0 {
		// "()" has nothing to group.
		return nil, p.errorAt(ErrEmptyAlternative, start)
	}
	return left, nil
}

// parseSeq parses factors up to '|', ')' or end of input.
func (p *parser) parseSeq() (*Node, error) {
	seq := Seq()
	for !p.eof() {
		r := p.peek()
		if r == '|' || r == ')' {
			break
		}
		if isRepeat(r) {
			return nil, p.errorAt(ErrMissingRepeatArgument, p.pos)
		}
		f, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		seq.Sub = append(seq.Sub, f)
	}
	return seq, nil
}

func (p *parser) parseFactor() (*Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.eof() || !isRepeat(p.peek()) {
		return n, nil
	}
	switch p.peek() {
	case '*':
		n = Star(n)
	case '+':
		n = Plus(n)
	case '?':
		n = Question(n)
	}
	p.pos++
	if !p.eof() && isRepeat(p.peek()) {
		return nil, p.errorAt(ErrNestedRepeat, p.pos)
	}
	return n, nil
}

func (p *parser) parsePrimary() (*Node, error) {
	r := p.peek()
	switch r {
	case '(':
		open := p.pos
		if p.depth >= p.maxDepth {
			return nil, p.errorAt(ErrNestingDepth, open)
		}
		p.depth++
		p.pos++
		n, err := p.parseExpr(false)
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, p.errorAt(ErrMissingParen, open)
		}
		p.pos++
		p.depth--
		return n, nil

	case '\\':
		esc := p.pos
		p.pos++
		if p.eof() || !isMeta(p.peek()) {
			return nil, p.errorAt(ErrInvalidEscape, esc)
		}
		r = p.peek()
		p.pos++
		return Char(r), nil

	default:
		p.pos++
		return Char(r), nil
	}
}
