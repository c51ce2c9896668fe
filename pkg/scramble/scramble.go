// Package scramble deals random starting stacks.
//
// A [Scrambler] is seeded, so the same seed always deals the same sequence
// of stacks. A dealt stack is never already sorted, except for the single
// regular disc where no other arrangement exists.
package scramble

import (
	"math/rand/v2"

	"github.com/matzehuels/flipstack/pkg/core/stack"
	errs "github.com/matzehuels/flipstack/pkg/errors"
)

// Scrambler deals random stacks. It is not safe for concurrent use.
type Scrambler struct {
	rng *rand.Rand
}

// New returns a scrambler seeded with seed.
func New(seed uint64) *Scrambler {
	return &Scrambler{rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

// Next deals a stack of n discs in mode that differs from the identity.
func (s *Scrambler) Next(n int, mode stack.Mode) (stack.Stack, error) {
	if n < 1 || n > stack.MaxSize {
		return nil, errs.New(errs.ErrCodeInvalidInput, "stack size %d outside 1..%d", n, stack.MaxSize)
	}
	return s.NextAvoiding(stack.Identity(n), mode)
}

// NextAvoiding deals a stack of len(goal) discs in mode that differs from
// goal. goal must be a valid stack for mode.
func (s *Scrambler) NextAvoiding(goal stack.Stack, mode stack.Mode) (stack.Stack, error) {
	if len(goal) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "stack size must be at least 1")
	}
	if err := stack.Validate(goal, mode); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "goal")
	}
	if len(goal) == 1 && mode == stack.Unsigned {
		return goal.Clone(), nil
	}
	for {
		if st := s.deal(len(goal), mode); !st.Equal(goal) {
			return st, nil
		}
	}
}

func (s *Scrambler) deal(n int, mode stack.Mode) stack.Stack {
	st := stack.Identity(n)
	s.rng.Shuffle(n, func(i, j int) { st[i], st[j] = st[j], st[i] })
	if mode == stack.Signed {
		for i := range st {
			if s.rng.IntN(2) == 1 {
				st[i] = -st[i]
			}
		}
	}
	return st
}
