package stack

import (
	"strconv"
	"strings"
)

// Key is the canonical, comparable form of a [Stack]. Each disc occupies one
// byte holding its value as a two's-complement int8, so keys of equal-length
// stacks are equal exactly when the stacks are.
type Key string

// Encode returns the key of s. It runs in O(n) and does not retain s.
// Discs outside the int8 range are truncated; validated stacks never are.
func Encode(s Stack) Key {
	b := make([]byte, len(s))
	for i, v := range s {
		b[i] = byte(int8(v))
	}
	return Key(b)
}

// Decode returns the stack encoded by k. Decode(Encode(s)) equals s for every
// stack of at most [MaxSize] discs.
func Decode(k Key) Stack {
	s := make(Stack, len(k))
	for i := 0; i < len(k); i++ {
		s[i] = int(int8(k[i]))
	}
	return s
}

// Len returns the number of discs in the encoded stack.
func (k Key) Len() int { return len(k) }

// String renders the key as colon separated discs, e.g. "3:-1:2".
func (k Key) String() string {
	var b strings.Builder
	for i := 0; i < len(k); i++ {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(strconv.Itoa(int(int8(k[i]))))
	}
	return b.String()
}
