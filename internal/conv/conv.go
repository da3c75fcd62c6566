// Package conv provides checked integer arithmetic for the regex VM.
//
// Program counters and input positions are advanced through these helpers so
// that a pathologically long pattern or input fails with an error instead of
// silently wrapping around. Callers turn the boolean result into their own
// typed error (program too large, position overflow).
package conv

import "math"

// AddUint32 returns a+b and true if the sum does not exceed limit.
// When it would, it returns (a, false) and leaves the caller's counter untouched.
//
//go:inline
func AddUint32(a, b, limit uint32) (uint32, bool) {
	if a > limit || b > limit-a {
		return a, false
	}
	return a + b, true
}

// IncUint32 is AddUint32(a, 1, limit).
//
//go:inline
func IncUint32(a, limit uint32) (uint32, bool) {
	return AddUint32(a, 1, limit)
}

// AddInt returns a+b and true if the sum fits in an int.
// Negative operands are rejected; positions are never negative.
//
//go:inline
func AddInt(a, b int) (int, bool) {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		return a, false
	}
	return a + b, true
}

// IncInt is AddInt(a, 1).
//
//go:inline
func IncInt(a int) (int, bool) {
	return AddInt(a, 1)
}

// MulInt returns a*b and true if the product fits in an int.
// Both operands must be non-negative.
func MulInt(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
