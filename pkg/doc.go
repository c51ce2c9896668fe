// Package pkg provides the core libraries for flipstack, an exact solver for
// the pancake sorting problem and its burnt variant.
//
// # Overview
//
// A stack of n pancakes is a permutation of 1..n, top first. The only move is
// a prefix reversal: flip the top k discs over. In the burnt variant each disc
// also has a burnt side, which a flip turns over. flipstack answers "what is
// the fewest number of flips from this stack to that one, and which flips?"
// by breadth-first search over the pancake graph.
//
// # Architecture
//
// The typical data flow through flipstack:
//
//	Query (start, goal, mode)
//	         ↓
//	    [core/stack] package (validate, encode as a map key)
//	         ↓
//	    [core/admission] package (is an exact search affordable?)
//	         ↓
//	    [core/search] package (BFS over [core/flipgraph], traceback)
//	         ↓
//	    [solver] package (result: fewest flips, best path, bounds)
//	         ↓
//	    text / JSON / DOT / SVG / PDF / PNG
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/flipstack/pkg/core/admission"
//	    "github.com/matzehuels/flipstack/pkg/core/stack"
//	    "github.com/matzehuels/flipstack/pkg/solver"
//	)
//
//	s, _ := solver.New(admission.DefaultGuard(), logger)
//	res, _ := s.Solve(context.Background(), solver.Query{
//	    Start: stack.Stack{3, 1, 2},
//	    Mode:  stack.Unsigned,
//	})
//	fmt.Println(*res.FewestMoves) // 2
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/stack] - Stacks, modes, the flip move and compact map keys.
//
// [core/flipgraph] - The pancake graph as a neighbor function; no vertex is
// ever stored.
//
// [core/search] - Breadth-first search with a per-query visited map, and
// traceback of shortest paths.
//
// [core/admission] - Size ceilings per mode and the published worst-case
// flip counts used when a search is declined.
//
// [solver] - Validation, admission and search in one call, reporting a
// [solver.Result] with the fewest flips, a best path and bounds.
//
// ## Input and Output
//
// [io] - TOML puzzle batches and JSON reports.
//
// [scramble] - Seeded random starting stacks.
//
// [render/nodelink] - Path diagrams through Graphviz.
//
// [render] - Format conversion (SVG to PDF/PNG).
//
// ## Infrastructure
//
// [config] - Layered configuration: defaults, a YAML file, FLIPSTACK_*
// environment variables.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [observability] - Hook interfaces for solver and HTTP events.
//
// [metrics] - Prometheus collectors implementing those hooks.
//
// [buildinfo] - Version information injected at build time.
package pkg
