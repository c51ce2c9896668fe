// Package search finds shortest flip sequences by breadth-first search over
// the implicit pancake graph.
//
// What
//
//   - [Search] explores stacks in non-decreasing flip distance from a start
//     stack until the goal is dequeued (or, with [WithExhaustive], until the
//     whole component has been visited).
//   - Every discovered stack gets exactly one [Record] holding its distance
//     and predecessor. Records are final when created: the first discovery of
//     a stack in BFS order is a shortest one.
//   - [Traceback] turns the visited map into a start→goal [Path];
//     [Path.Moves] recovers the prefix index flipped at each step.
//
// Resources
//
// The visited map and the frontier belong to one call and are dropped with
// the [Result]. Nothing is shared between calls, so concurrent searches need
// no locking. There is no cancellation: callers bound the cost up front with
// package admission and must not search stacks it declines.
//
// Complexity (V = n! or n!·2^n vertices, every vertex has n neighbors)
//
//   - Time:   O(V·n²) (n neighbors per vertex, O(n) to build each key)
//   - Memory: O(V·n)
//
// Usage
//
//	res, err := search.Search(stack.Stack{3, 1, 2}, stack.Identity(3), stack.Unsigned)
//	if err != nil {
//	    // INVALID_STACK or LENGTH_MISMATCH (see pkg/errors)
//	}
//	if res.Reached {
//	    path, _ := res.Path()
//	    moves, _ := path.Moves(stack.Unsigned)
//	}
package search
