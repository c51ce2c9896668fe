package flipgraph_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/flipstack/pkg/core/flipgraph"
	"github.com/matzehuels/flipstack/pkg/core/stack"
)

func TestNeighborsCount(t *testing.T) {
	for _, mode := range []stack.Mode{stack.Unsigned, stack.Signed} {
		g := flipgraph.New(mode)
		for n := 1; n <= 7; n++ {
			key := stack.Encode(stack.Identity(n))
			nbrs := g.Neighbors(key)
			assert.Len(t, nbrs, n, "mode=%s n=%d", mode, n)
			assert.Equal(t, n, g.Degree(n))
		}
	}
}

func TestNeighborsOrderAndContent(t *testing.T) {
	g := flipgraph.New(stack.Unsigned)
	nbrs := g.Neighbors(stack.Encode(stack.Stack{1, 2, 3}))
	want := []stack.Stack{{1, 2, 3}, {2, 1, 3}, {3, 2, 1}}
	require.Len(t, nbrs, len(want))
	for k, w := range want {
		assert.Equal(t, w, stack.Decode(nbrs[k]), "k=%d", k)
	}
}

func TestNeighborsKeepRegularSelfLoop(t *testing.T) {
	key := stack.Encode(stack.Stack{3, 1, 2})

	regular := flipgraph.New(stack.Unsigned).Neighbors(key)
	assert.Equal(t, key, regular[0], "k=0 is a self-loop in regular mode")

	burnt := flipgraph.New(stack.Signed).Neighbors(key)
	assert.Equal(t, stack.Stack{-3, 1, 2}, stack.Decode(burnt[0]))
	for _, nb := range burnt {
		assert.NotEqual(t, key, nb, "burnt graph has no self-loops")
	}
}

func TestNeighborsAreSymmetric(t *testing.T) {
	for _, mode := range []stack.Mode{stack.Unsigned, stack.Signed} {
		g := flipgraph.New(mode)
		key := stack.Encode(stack.Stack{2, 4, 1, 3})
		if mode == stack.Signed {
			key = stack.Encode(stack.Stack{-2, 4, 1, -3})
		}
		for _, nb := range g.Neighbors(key) {
			assert.Contains(t, g.Neighbors(nb), key, "mode=%s edge %s-%s", mode, key, nb)
		}
	}
}

func TestOrder(t *testing.T) {
	assert.Equal(t, 1, flipgraph.New(stack.Unsigned).Order(1))
	assert.Equal(t, 24, flipgraph.New(stack.Unsigned).Order(4))
	assert.Equal(t, 2, flipgraph.New(stack.Signed).Order(1))
	assert.Equal(t, 384, flipgraph.New(stack.Signed).Order(4))
	assert.Equal(t, math.MaxInt, flipgraph.New(stack.Signed).Order(40))
	assert.Equal(t, stack.Signed, flipgraph.New(stack.Signed).Mode())
}
