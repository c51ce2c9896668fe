// Package admission decides whether an exact search is affordable and what
// to show when it is not.
//
// Breadth-first search from one stack may visit the whole pancake graph:
// n! vertices for regular stacks and n!·2^n for burnt ones. A [Guard] holds a
// size ceiling per mode and only admits stacks strictly below it. Admission
// is a capacity safeguard; it never changes the answer of a search that runs.
//
// When a query is declined, [MaxFlips] and [UpperBound] provide the known
// worst case for the stack size instead of an exact answer.
package admission

import (
	"github.com/matzehuels/flipstack/pkg/core/stack"
	errs "github.com/matzehuels/flipstack/pkg/errors"
)

// Default and hard ceilings. A ceiling c admits stacks of 1..c-1 discs.
const (
	DefaultUnsignedCeiling = 8
	DefaultSignedCeiling   = 6

	// MaxUnsignedCeiling admits up to 9! = 362,880 vertices.
	MaxUnsignedCeiling = 10
	// MaxSignedCeiling admits up to 7!·2^7 = 645,120 vertices.
	MaxSignedCeiling = 8
)

// Guard admits exact searches below a per-mode stack size ceiling.
type Guard struct {
	UnsignedCeiling int
	SignedCeiling   int
}

// DefaultGuard returns the guard with the default ceilings.
func DefaultGuard() Guard {
	return Guard{
		UnsignedCeiling: DefaultUnsignedCeiling,
		SignedCeiling:   DefaultSignedCeiling,
	}
}

// NewGuard returns a validated guard. The burnt ceiling must be positive and
// strictly below the regular one, and neither may exceed its hard maximum.
func NewGuard(unsignedCeiling, signedCeiling int) (Guard, error) {
	g := Guard{UnsignedCeiling: unsignedCeiling, SignedCeiling: signedCeiling}
	return g, g.Validate()
}

// Validate checks the ceilings against their bounds.
func (g Guard) Validate() error {
	switch {
	case g.UnsignedCeiling < 2 || g.UnsignedCeiling > MaxUnsignedCeiling:
		return errs.New(errs.ErrCodeInvalidConfig, "regular ceiling %d outside 2..%d", g.UnsignedCeiling, MaxUnsignedCeiling)
	case g.SignedCeiling < 1 || g.SignedCeiling > MaxSignedCeiling:
		return errs.New(errs.ErrCodeInvalidConfig, "burnt ceiling %d outside 1..%d", g.SignedCeiling, MaxSignedCeiling)
	case g.SignedCeiling >= g.UnsignedCeiling:
		return errs.New(errs.ErrCodeInvalidConfig, "burnt ceiling %d must be below regular ceiling %d", g.SignedCeiling, g.UnsignedCeiling)
	}
	return nil
}

// Ceiling returns the ceiling that applies to mode.
func (g Guard) Ceiling(mode stack.Mode) int {
	if mode == stack.Signed {
		return g.SignedCeiling
	}
	return g.UnsignedCeiling
}

// Admit reports whether an exhaustive search over stacks of n discs in mode
// is tractable.
func (g Guard) Admit(n int, mode stack.Mode) bool {
	return n >= 1 && n < g.Ceiling(mode)
}

// Admit is [Guard.Admit] on the default guard.
func Admit(n int, mode stack.Mode) bool {
	return DefaultGuard().Admit(n, mode)
}
