package stack

// Flip returns the stack reached by reversing the discs at positions 0..k.
// In [Signed] mode each reversed disc is also turned over. Positions after k
// are copied unchanged and s itself is never modified.
//
// For k == 0 an unsigned flip returns a copy of s (a self-loop) while a signed
// flip turns the top disc over. Applying the same flip twice yields s again.
//
// k must be in 0..len(s)-1.
func Flip(s Stack, k int, mode Mode) Stack {
	out := make(Stack, len(s))
	sign := 1
	if mode == Signed {
		sign = -1
	}
	for i := 0; i <= k; i++ {
		out[i] = s[k-i] * sign
	}
	copy(out[k+1:], s[k+1:])
	return out
}
