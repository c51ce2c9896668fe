package search

import (
	"github.com/matzehuels/flipstack/pkg/core/stack"
	errs "github.com/matzehuels/flipstack/pkg/errors"
)

// Path is a sequence of stacks from a search's start to some destination,
// one flip apart. A path of distance d has d+1 entries.
type Path []stack.Key

// Traceback follows predecessor links from goal back to the start of the
// search that produced visited.
//
// A goal missing from visited, or a broken predecessor chain, means the
// caller paired the map with the wrong query; Traceback reports it as an
// INTERNAL_ERROR rather than a user error.
func Traceback(visited Visited, goal stack.Key) (Path, error) {
	last, ok := visited[goal]
	if !ok {
		return nil, errs.New(errs.ErrCodeInternal, "traceback: %s was never discovered", goal)
	}

	path := make(Path, last.Distance+1)
	cur := goal
	for i := last.Distance; ; i-- {
		rec, ok := visited[cur]
		if !ok || rec.Distance != i {
			return nil, errs.New(errs.ErrCodeInternal, "traceback: broken predecessor chain at %s", cur)
		}
		path[i] = cur
		if rec.IsStart() {
			if i != 0 {
				return nil, errs.New(errs.ErrCodeInternal, "traceback: chain ended at distance %d", i)
			}
			return path, nil
		}
		cur = rec.Predecessor
	}
}

// Stacks decodes every key of the path.
func (p Path) Stacks() []stack.Stack {
	out := make([]stack.Stack, len(p))
	for i, k := range p {
		out[i] = stack.Decode(k)
	}
	return out
}

// Moves returns, for every step of the path, the prefix index k such that
// flipping the top k+1 discs leads to the next stack.
func (p Path) Moves(mode stack.Mode) ([]int, error) {
	if len(p) == 0 {
		return nil, nil
	}
	moves := make([]int, 0, len(p)-1)
	prev := stack.Decode(p[0])
	for i := 1; i < len(p); i++ {
		k, ok := flipIndex(prev, p[i], mode)
		if !ok {
			return nil, errs.New(errs.ErrCodeInternal, "path: %s and %s are not one flip apart", p[i-1], p[i])
		}
		moves = append(moves, k)
		prev = stack.Decode(p[i])
	}
	return moves, nil
}

func flipIndex(from stack.Stack, to stack.Key, mode stack.Mode) (int, bool) {
	for k := range from {
		if stack.Encode(stack.Flip(from, k, mode)) == to {
			return k, true
		}
	}
	return 0, false
}
