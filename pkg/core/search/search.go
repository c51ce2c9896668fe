package search

import (
	"github.com/matzehuels/flipstack/pkg/core/flipgraph"
	"github.com/matzehuels/flipstack/pkg/core/stack"
)

// Result holds the outcome of one search.
type Result struct {
	Start stack.Key
	Goal  stack.Key
	Mode  stack.Mode

	// Distance is the fewest flips from Start to Goal. Valid only if Reached.
	Distance int
	// Reached is false when the frontier ran dry without meeting Goal.
	Reached bool

	// Visited holds one record per discovered stack.
	Visited Visited
	// Expanded counts stacks whose neighbors were generated.
	Expanded int
	// Depth is the largest distance among discovered stacks.
	Depth int
}

// Path reconstructs a shortest path from Start to Goal.
func (r *Result) Path() (Path, error) {
	return Traceback(r.Visited, r.Goal)
}

// PathTo reconstructs a shortest path from Start to any discovered stack.
func (r *Result) PathTo(dest stack.Key) (Path, error) {
	return Traceback(r.Visited, dest)
}

// DistanceTo returns the distance of a discovered stack.
func (r *Result) DistanceTo(key stack.Key) (int, bool) {
	rec, ok := r.Visited[key]
	return rec.Distance, ok
}

// neighborer is the slice of flipgraph.Graph the walker needs.
type neighborer interface {
	Neighbors(key stack.Key) []stack.Key
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph    neighborer
	opts     Options
	frontier *frontier
	res      *Result
}

// Search runs breadth-first search from start towards goal in mode.
//
// Invalid stacks, mismatched lengths and stacks that do not fit mode are
// rejected with a coded error before any traversal. Search does not consult
// the admission guard; callers must.
func Search(start, goal stack.Stack, mode stack.Mode, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if err := stack.ValidatePair(start, goal, mode); err != nil {
		return nil, err
	}

	return run(flipgraph.New(mode), stack.Encode(start), stack.Encode(goal), mode, o), nil
}

func run(g neighborer, start, goal stack.Key, mode stack.Mode, o Options) *Result {
	w := &walker{
		graph:    g,
		opts:     o,
		frontier: newFrontier(),
		res: &Result{
			Start:   start,
			Goal:    goal,
			Mode:    mode,
			Visited: make(Visited, o.CapacityHint),
		},
	}
	w.discover(start, 0, "")

	if start == goal && !o.Exhaustive {
		w.res.Reached = true
		return w.res
	}
	w.loop()
	return w.res
}

// discover creates the record for key and queues it for expansion.
func (w *walker) discover(key stack.Key, depth int, pred stack.Key) {
	w.res.Visited[key] = Record{
		Stack:       stack.Decode(key),
		Distance:    depth,
		Predecessor: pred,
	}
	if depth > w.res.Depth {
		w.res.Depth = depth
	}
	w.opts.OnDiscover(key, depth)
	w.frontier.push(key)
}

// loop drains the frontier, stopping early at the goal unless exhaustive.
func (w *walker) loop() {
	for !w.frontier.empty() {
		key, _ := w.frontier.pop()
		depth := w.res.Visited[key].Distance
		w.opts.OnExpand(key, depth)

		if key == w.res.Goal {
			w.res.Reached = true
			w.res.Distance = depth
			if !w.opts.Exhaustive {
				return
			}
		}

		w.res.Expanded++
		for _, nbr := range w.graph.Neighbors(key) {
			// first discovery wins
			if _, seen := w.res.Visited[nbr]; !seen {
				w.discover(nbr, depth+1, key)
			}
		}
	}
}
