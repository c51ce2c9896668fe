package search_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/flipstack/pkg/core/admission"
	"github.com/matzehuels/flipstack/pkg/core/flipgraph"
	"github.com/matzehuels/flipstack/pkg/core/search"
	"github.com/matzehuels/flipstack/pkg/core/stack"
	errs "github.com/matzehuels/flipstack/pkg/errors"
)

// randomStack shuffles the identity and, in burnt mode, picks random signs.
func randomStack(rng *rand.Rand, n int, mode stack.Mode) stack.Stack {
	s := stack.Identity(n)
	rng.Shuffle(n, func(i, j int) { s[i], s[j] = s[j], s[i] })
	if mode == stack.Signed {
		for i := range s {
			if rng.IntN(2) == 0 {
				s[i] = -s[i]
			}
		}
	}
	return s
}

// TestScenarioRegularPair covers the two-disc regular stack.
func TestScenarioRegularPair(t *testing.T) {
	res, err := search.Search(stack.Stack{2, 1}, stack.Stack{1, 2}, stack.Unsigned)
	require.NoError(t, err)
	require.True(t, res.Reached)
	assert.Equal(t, 1, res.Distance)

	path, err := res.Path()
	require.NoError(t, err)
	assert.Equal(t, []stack.Stack{{2, 1}, {1, 2}}, path.Stacks())

	moves, err := path.Moves(stack.Unsigned)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, moves)
}

// TestScenarioSingleBurntDisc covers turning one burnt disc over.
func TestScenarioSingleBurntDisc(t *testing.T) {
	res, err := search.Search(stack.Stack{-1}, stack.Stack{1}, stack.Signed)
	require.NoError(t, err)
	require.True(t, res.Reached)
	assert.Equal(t, 1, res.Distance)

	path, err := res.Path()
	require.NoError(t, err)
	assert.Equal(t, []stack.Stack{{-1}, {1}}, path.Stacks())

	moves, err := path.Moves(stack.Signed)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, moves)
}

// TestTrivialQuery checks that start == goal answers zero without traversal.
func TestTrivialQuery(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, mode := range []stack.Mode{stack.Unsigned, stack.Signed} {
		for n := 1; n <= 6; n++ {
			s := randomStack(rng, n, mode)
			res, err := search.Search(s, s, mode)
			require.NoError(t, err)
			assert.True(t, res.Reached)
			assert.Equal(t, 0, res.Distance)
			assert.Len(t, res.Visited, 1)
			assert.Zero(t, res.Expanded)

			path, err := res.Path()
			require.NoError(t, err)
			assert.Equal(t, []stack.Stack{s}, path.Stacks())
		}
	}
}

// TestPathValidity checks start, goal, length and one-flip steps for random queries.
func TestPathValidity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for _, mode := range []stack.Mode{stack.Unsigned, stack.Signed} {
		for n := 1; n <= 5; n++ {
			for trial := 0; trial < 10; trial++ {
				start := randomStack(rng, n, mode)
				goal := stack.Identity(n)

				res, err := search.Search(start, goal, mode)
				require.NoError(t, err)
				require.True(t, res.Reached)

				path, err := res.Path()
				require.NoError(t, err)
				require.Len(t, path, res.Distance+1)
				assert.Equal(t, start, stack.Decode(path[0]))
				assert.Equal(t, goal, stack.Decode(path[len(path)-1]))

				moves, err := path.Moves(mode)
				require.NoError(t, err)
				replay := start.Clone()
				for _, k := range moves {
					replay = stack.Flip(replay, k, mode)
				}
				assert.Equal(t, goal, replay)

				bound, _ := admission.MaxFlips(n, mode)
				assert.LessOrEqual(t, res.Distance, bound)
			}
		}
	}
}

// TestLayering checks distance(v) = distance(pred(v)) + 1 for every record.
func TestLayering(t *testing.T) {
	for _, mode := range []stack.Mode{stack.Unsigned, stack.Signed} {
		start := stack.Stack{3, 1, 4, 2}
		if mode == stack.Signed {
			start = stack.Stack{-3, 1, -4, 2}
		}
		res, err := search.Search(start, stack.Identity(4), mode, search.WithExhaustive())
		require.NoError(t, err)

		startRec := res.Visited[res.Start]
		assert.Equal(t, 0, startRec.Distance)
		assert.True(t, startRec.IsStart())

		for key, rec := range res.Visited {
			assert.Equal(t, stack.Decode(key), rec.Stack)
			if rec.IsStart() {
				assert.Equal(t, res.Start, key)
				continue
			}
			pred, ok := res.Visited[rec.Predecessor]
			require.True(t, ok, "predecessor of %s missing", key)
			assert.Equal(t, pred.Distance+1, rec.Distance, "key %s", key)
		}
	}
}

// TestExhaustiveMatchesDiameter visits the whole graph from the identity;
// the pancake graph is vertex-transitive, so the deepest layer is the diameter.
func TestExhaustiveMatchesDiameter(t *testing.T) {
	cases := []struct {
		mode stack.Mode
		maxN int
	}{
		{stack.Unsigned, 6},
		{stack.Signed, 4},
	}
	for _, c := range cases {
		for n := 1; n <= c.maxN; n++ {
			id := stack.Identity(n)
			g := flipgraph.New(c.mode)
			res, err := search.Search(id, id, c.mode,
				search.WithExhaustive(),
				search.WithCapacityHint(g.Order(n)),
			)
			require.NoError(t, err)
			assert.Len(t, res.Visited, g.Order(n), "mode=%s n=%d", c.mode, n)
			assert.Equal(t, len(res.Visited), res.Expanded)

			want, ok := admission.MaxFlips(n, c.mode)
			require.True(t, ok)
			assert.Equal(t, want, res.Depth, "mode=%s n=%d", c.mode, n)
		}
	}
}

// TestExhaustiveKeepsGoalDistance checks that traversing past the goal keeps
// the goal's distance and path intact.
func TestExhaustiveKeepsGoalDistance(t *testing.T) {
	start := stack.Stack{2, 1, 3, 4}
	goal := stack.Identity(4)

	early, err := search.Search(start, goal, stack.Unsigned)
	require.NoError(t, err)
	full, err := search.Search(start, goal, stack.Unsigned, search.WithExhaustive())
	require.NoError(t, err)

	require.True(t, full.Reached)
	assert.Equal(t, early.Distance, full.Distance)
	assert.Greater(t, len(full.Visited), len(early.Visited))

	d, ok := full.DistanceTo(stack.Encode(goal))
	require.True(t, ok)
	assert.Equal(t, early.Distance, d)

	other := stack.Encode(stack.Stack{1, 3, 2, 4})
	path, err := full.PathTo(other)
	require.NoError(t, err)
	assert.Equal(t, full.Visited[other].Distance+1, len(path))
}

// TestHooks checks hook call counts and FIFO expansion order.
func TestHooks(t *testing.T) {
	var discovered, expanded []int
	res, err := search.Search(stack.Stack{3, 2, 4, 1}, stack.Identity(4), stack.Unsigned,
		search.WithOnDiscover(func(_ stack.Key, depth int) { discovered = append(discovered, depth) }),
		search.WithOnExpand(func(_ stack.Key, depth int) { expanded = append(expanded, depth) }),
	)
	require.NoError(t, err)

	assert.Len(t, discovered, len(res.Visited))
	assert.Equal(t, res.Expanded+1, len(expanded), "goal is dequeued but not expanded")
	for i := 1; i < len(expanded); i++ {
		assert.LessOrEqual(t, expanded[i-1], expanded[i], "expansion must follow BFS layers")
	}
	assert.Equal(t, res.Distance, expanded[len(expanded)-1])
}

func TestErrors(t *testing.T) {
	_, err := search.Search(stack.Stack{2, 1}, stack.Identity(2), stack.Unsigned, search.WithCapacityHint(-1))
	assert.True(t, errors.Is(err, search.ErrOptionViolation), "got %v", err)

	_, err = search.Search(stack.Stack{2, 1}, stack.Identity(3), stack.Unsigned)
	assert.True(t, errs.Is(err, errs.ErrCodeLengthMismatch), "got %v", err)

	_, err = search.Search(stack.Stack{-2, 1}, stack.Identity(2), stack.Unsigned)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidStack), "got %v", err)

	_, err = search.Search(stack.Stack{}, stack.Stack{}, stack.Signed)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidStack), "got %v", err)
}

func TestTracebackMissingGoal(t *testing.T) {
	res, err := search.Search(stack.Stack{2, 1, 3}, stack.Identity(3), stack.Unsigned)
	require.NoError(t, err)

	_, err = search.Traceback(res.Visited, stack.Encode(stack.Stack{3, 2, 1, 4}))
	assert.True(t, errs.Is(err, errs.ErrCodeInternal), "got %v", err)

	_, err = search.Traceback(search.Visited{}, res.Goal)
	assert.True(t, errs.Is(err, errs.ErrCodeInternal), "got %v", err)
}

func TestTracebackBrokenChain(t *testing.T) {
	a := stack.Encode(stack.Stack{2, 1})
	b := stack.Encode(stack.Stack{1, 2})
	visited := search.Visited{
		b: {Stack: stack.Stack{1, 2}, Distance: 1, Predecessor: a},
	}
	_, err := search.Traceback(visited, b)
	assert.True(t, errs.Is(err, errs.ErrCodeInternal), "got %v", err)

	visited[a] = search.Record{Stack: stack.Stack{2, 1}, Distance: 3}
	_, err = search.Traceback(visited, b)
	assert.True(t, errs.Is(err, errs.ErrCodeInternal), "got %v", err)
}

func TestMovesRejectsNonAdjacentSteps(t *testing.T) {
	p := search.Path{stack.Encode(stack.Stack{1, 2, 3}), stack.Encode(stack.Stack{1, 3, 2})}
	_, err := p.Moves(stack.Unsigned)
	assert.True(t, errs.Is(err, errs.ErrCodeInternal), "got %v", err)

	moves, err := search.Path{}.Moves(stack.Unsigned)
	assert.NoError(t, err)
	assert.Empty(t, moves)
}
