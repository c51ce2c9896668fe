// Package flipgraph exposes the pancake graph as an implicit graph.
//
// The graph for stacks of n discs has n! vertices in regular mode and
// n!·2^n in burnt mode, far too many to store. A [Graph] therefore holds no
// vertices or edges at all: [Graph.Neighbors] derives the adjacency of one
// vertex on demand from its key.
//
// Every vertex has exactly n neighbors, one per prefix length. They are not
// deduplicated, so in regular mode the top-disc flip (k = 0) lists the vertex
// itself. Traversals must tolerate that self-loop.
package flipgraph

import (
	"math"

	"github.com/matzehuels/flipstack/pkg/core/stack"
)

// Graph is the pancake graph of one mode. The zero value is the regular graph.
type Graph struct {
	mode stack.Mode
}

// New returns the implicit graph for mode.
func New(mode stack.Mode) Graph {
	return Graph{mode: mode}
}

// Mode returns the mode the graph flips in.
func (g Graph) Mode() stack.Mode { return g.mode }

// Neighbors returns the keys reachable from key by one flip, ordered by prefix
// index k = 0..n-1. The result always has key.Len() entries.
func (g Graph) Neighbors(key stack.Key) []stack.Key {
	s := stack.Decode(key)
	out := make([]stack.Key, len(s))
	for k := range s {
		out[k] = stack.Encode(stack.Flip(s, k, g.mode))
	}
	return out
}

// Degree returns the number of neighbors of every vertex with n discs.
func (g Graph) Degree(n int) int { return n }

// Order returns the number of vertices for stacks of n discs, saturating at
// math.MaxInt.
func (g Graph) Order(n int) int {
	total := 1
	for i := 2; i <= n; i++ {
		if total > math.MaxInt/i {
			return math.MaxInt
		}
		total *= i
	}
	if g.mode == stack.Signed {
		for i := 0; i < n; i++ {
			if total > math.MaxInt/2 {
				return math.MaxInt
			}
			total *= 2
		}
	}
	return total
}
