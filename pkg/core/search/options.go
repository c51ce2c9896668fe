package search

import (
	"errors"
	"fmt"

	"github.com/matzehuels/flipstack/pkg/core/stack"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = errors.New("search: invalid option supplied")

// Option configures a search via functional arguments. An invalid Option is
// recorded and surfaced as ErrOptionViolation when Search is invoked.
type Option func(*Options)

// Options holds the parameters and callbacks of one search.
type Options struct {
	// Exhaustive keeps traversing after the goal has been dequeued so the
	// visited map covers the whole component of the start stack.
	Exhaustive bool

	// OnDiscover is called once per stack, when its record is created.
	OnDiscover func(key stack.Key, depth int)

	// OnExpand is called when a stack is taken off the frontier.
	OnExpand func(key stack.Key, depth int)

	// CapacityHint pre-sizes the visited map. Zero lets the map grow.
	CapacityHint int

	err error
}

// DefaultOptions returns options that stop at the goal with no-op hooks.
func DefaultOptions() Options {
	return Options{
		OnDiscover: func(stack.Key, int) {},
		OnExpand:   func(stack.Key, int) {},
	}
}

// WithExhaustive makes the search visit every reachable stack.
func WithExhaustive() Option {
	return func(o *Options) {
		o.Exhaustive = true
	}
}

// WithOnDiscover registers a callback run when a stack is first discovered.
func WithOnDiscover(fn func(key stack.Key, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDiscover = fn
		}
	}
}

// WithOnExpand registers a callback run when a stack is dequeued.
func WithOnExpand(fn func(key stack.Key, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithCapacityHint pre-sizes the visited map for about n stacks.
//
//	n > 0: allocate room for n records
//	n == 0: no hint
//	n < 0: invalid option → ErrOptionViolation
func WithCapacityHint(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: capacity hint cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.CapacityHint = n
	}
}
