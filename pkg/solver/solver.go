// Package solver answers "fewest flips" queries end to end.
//
// A [Solver] validates the query, asks the admission guard whether an exact
// search is affordable, runs the breadth-first search and turns its visited
// map into a path and a flip sequence. Queries the guard declines are
// answered with the known worst case for the stack size instead.
//
// # Usage
//
//	s, err := solver.New(admission.DefaultGuard(), logger)
//	if err != nil {
//	    return err
//	}
//	res, err := s.Solve(ctx, solver.Query{
//	    Start: stack.Stack{3, -1, 2},
//	    Mode:  stack.Signed,
//	})
//	if res.FewestMoves != nil {
//	    fmt.Println(*res.FewestMoves, res.Moves)
//	}
//
// A Solver holds no per-query state and is safe for concurrent use.
package solver

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flipstack/pkg/core/admission"
	"github.com/matzehuels/flipstack/pkg/core/flipgraph"
	"github.com/matzehuels/flipstack/pkg/core/search"
	"github.com/matzehuels/flipstack/pkg/core/stack"
	"github.com/matzehuels/flipstack/pkg/observability"
)

// Query is one shortest-flip question. An empty Goal means the sorted
// stack 1..n.
type Query struct {
	Start stack.Stack
	Goal  stack.Stack
	Mode  stack.Mode
}

// withDefaults fills in the identity goal.
func (q Query) withDefaults() Query {
	if len(q.Goal) == 0 {
		q.Goal = stack.Identity(len(q.Start))
	}
	return q
}

// Result is the answer to a Query.
type Result struct {
	Query Query

	// FewestMoves is nil when the query was declined or the goal is
	// unreachable.
	FewestMoves *int
	// BestPath lists the stacks from start to goal inclusive. It is non-nil
	// exactly when FewestMoves is.
	BestPath []stack.Stack
	// Moves holds, per step of BestPath, the prefix index that was flipped.
	Moves []int

	// Admitted reports whether an exact search ran.
	Admitted bool
	// UpperBound is the worst case for the stack size; BoundExact tells
	// whether it is the known diameter or only a published bound.
	UpperBound int
	BoundExact bool

	// Explored is the number of stacks the search discovered.
	Explored int
	Elapsed  time.Duration
}

// Solved reports whether the result carries an exact answer.
func (r *Result) Solved() bool { return r.FewestMoves != nil }

// Solver orchestrates admission, search and path reconstruction.
type Solver struct {
	Guard  admission.Guard
	Logger *log.Logger
}

// New returns a solver that uses guard. A nil logger uses log.Default().
func New(guard admission.Guard, logger *log.Logger) (*Solver, error) {
	if err := guard.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Solver{Guard: guard, Logger: logger}, nil
}

// Solve answers q. Validation failures and internal inconsistencies are
// returned as coded errors; a declined or unreachable query is not an
// error and is reported through the Result.
func (s *Solver) Solve(ctx context.Context, q Query) (*Result, error) {
	q = q.withDefaults()
	if err := stack.ValidatePair(q.Start, q.Goal, q.Mode); err != nil {
		return nil, err
	}

	n := len(q.Start)
	mode := q.Mode.String()
	res := &Result{Query: q}
	res.UpperBound, res.BoundExact = admission.UpperBound(n, q.Mode)

	if !s.Guard.Admit(n, q.Mode) {
		observability.Solver().OnAdmissionDeclined(ctx, n, mode)
		s.Logger.Info("search declined",
			"n", n,
			"mode", mode,
			"ceiling", s.Guard.Ceiling(q.Mode),
			"upper_bound", res.UpperBound)
		return res, nil
	}
	res.Admitted = true

	observability.Solver().OnSearchStart(ctx, n, mode)
	start := time.Now()
	sr, err := search.Search(q.Start, q.Goal, q.Mode,
		search.WithCapacityHint(capacityHint(n, q.Mode)))
	res.Elapsed = time.Since(start)
	if err != nil {
		return nil, err
	}
	res.Explored = len(sr.Visited)
	observability.Solver().OnSearchComplete(ctx, n, mode, res.Explored, sr.Reached, res.Elapsed)

	if !sr.Reached {
		s.Logger.Warn("goal unreachable",
			"n", n,
			"mode", mode,
			"explored", res.Explored)
		return res, nil
	}

	path, err := sr.Path()
	if err != nil {
		return nil, err
	}
	moves, err := path.Moves(q.Mode)
	if err != nil {
		return nil, err
	}

	d := sr.Distance
	res.FewestMoves = &d
	res.BestPath = path.Stacks()
	res.Moves = moves

	s.Logger.Debug("search complete",
		"n", n,
		"mode", mode,
		"flips", d,
		"explored", res.Explored,
		"elapsed", res.Elapsed)
	return res, nil
}

// capacityHint sizes the visited map for small graphs only; beyond that
// the map grows on demand so an early hit does not pay for the whole graph.
func capacityHint(n int, mode stack.Mode) int {
	const limit = 1 << 12
	if order := flipgraph.New(mode).Order(n); order <= limit {
		return order
	}
	return 0
}
