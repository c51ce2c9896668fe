// Package stack models a stack of discs as a vertex of the pancake graph.
//
// # Overview
//
// A [Stack] lists disc labels from the top (index 0) to the bottom. In
// [Unsigned] mode a stack of n discs is a permutation of 1..n. In [Signed]
// ("burnt") mode every disc additionally carries a sign that records which
// side faces up; the absolute values still form a permutation of 1..n.
//
// The only move is a prefix reversal: [Flip] reverses the top k+1 discs and,
// in signed mode, turns each of them over. Flip is an involution, so every
// edge of the graph is undirected.
//
// # Keys
//
// Stacks are slices and therefore not comparable. [Encode] maps a stack to a
// [Key], a compact string that can be used as a map key, and [Decode] maps it
// back. The encoding stores one byte per disc, so stacks are limited to
// [MaxSize] discs.
//
//	s := stack.Stack{3, -1, 2}
//	k := stack.Encode(s)
//	fmt.Println(k)                  // 3:-1:2
//	fmt.Println(stack.Decode(k))    // [3 -1 2]
//
// # Validation
//
// [Validate] checks the permutation contract for a mode and returns a coded
// error from pkg/errors (INVALID_STACK) on violation. [ValidatePair] also
// checks that a start and goal can share a traversal (LENGTH_MISMATCH).
package stack
