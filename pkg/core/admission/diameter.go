package admission

import "github.com/matzehuels/flipstack/pkg/core/stack"

// Known diameters of the pancake graphs, indexed by stack size.
// Regular: OEIS A058986. Burnt: OEIS A078941.
var (
	unsignedDiameter = [...]int{
		1: 0, 2: 1, 3: 3, 4: 4, 5: 5, 6: 7, 7: 8, 8: 9, 9: 10, 10: 11,
		11: 13, 12: 14, 13: 15, 14: 16, 15: 17, 16: 18, 17: 19, 18: 20, 19: 22,
	}
	signedDiameter = [...]int{
		1: 1, 2: 4, 3: 6, 4: 8, 5: 10, 6: 12, 7: 14, 8: 15, 9: 17, 10: 18,
		11: 19, 12: 21,
	}
)

// MaxFlips returns the most flips any stack of n discs needs in mode, and
// whether that value is known.
func MaxFlips(n int, mode stack.Mode) (int, bool) {
	table := unsignedDiameter[:]
	if mode == stack.Signed {
		table = signedDiameter[:]
	}
	if n < 1 || n >= len(table) {
		return 0, false
	}
	return table[n], true
}

// KnownSizes returns the largest n for which [MaxFlips] has a value.
func KnownSizes(mode stack.Mode) int {
	if mode == stack.Signed {
		return len(signedDiameter) - 1
	}
	return len(unsignedDiameter) - 1
}

// UpperBound returns a number of flips that always suffices for n discs.
// exact is true when the bound is the tabulated diameter; otherwise it is
// the best published bound: ceil(18n/11) for regular stacks and 2n-2 for
// burnt ones.
func UpperBound(n int, mode stack.Mode) (bound int, exact bool) {
	if d, ok := MaxFlips(n, mode); ok {
		return d, true
	}
	if n < 1 {
		return 0, false
	}
	if mode == stack.Signed {
		return 2*n - 2, false
	}
	return (18*n + 10) / 11, false
}
