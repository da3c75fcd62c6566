package syntax

import "strconv"

// ErrorCode describes a failure to parse a pattern.
type ErrorCode string

const (
	ErrMissingParen          ErrorCode = "missing closing )"
	ErrUnexpectedParen       ErrorCode = "unexpected )"
	ErrMissingRepeatArgument ErrorCode = "missing argument to repetition operator"
	ErrNestedRepeat          ErrorCode = "invalid nested repetition operator"
	ErrInvalidEscape         ErrorCode = "invalid escape sequence"
	ErrEmptyAlternative      ErrorCode = "empty alternative"
	ErrNestingDepth          ErrorCode = "expression nests too deeply"
)

func (e ErrorCode) String() string {
	return string(e)
}

// Error describes a failure to parse a pattern and where it happened.
// Pos is a character (rune) offset into Pattern.
type Error struct {
	Code    ErrorCode
	Pattern string
	Pos     int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return "rxvm: error parsing pattern: " + string(e.Code) +
		" at position " + strconv.Itoa(e.Pos) + ": `" + e.Pattern + "`"
}

// Is reports whether target is an *Error with the same Code, so callers can
// write errors.Is(err, &syntax.Error{Code: syntax.ErrMissingParen}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}
