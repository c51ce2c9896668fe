package stack

import (
	"slices"
	"strconv"
	"strings"

	errs "github.com/matzehuels/flipstack/pkg/errors"
)

// MaxSize is the largest stack a [Key] can encode.
const MaxSize = 64

// Mode selects between the regular and the burnt pancake problem.
type Mode int

const (
	// Unsigned stacks are plain permutations; flips only reorder discs.
	Unsigned Mode = iota
	// Signed stacks are burnt: a flip also turns every flipped disc over.
	Signed
)

// ModeOf returns [Signed] when burnt is set and [Unsigned] otherwise.
func ModeOf(burnt bool) Mode {
	if burnt {
		return Signed
	}
	return Unsigned
}

// Burnt reports whether m is [Signed].
func (m Mode) Burnt() bool { return m == Signed }

// String returns "regular" or "burnt".
func (m Mode) String() string {
	if m == Signed {
		return "burnt"
	}
	return "regular"
}

// ParseMode accepts the names printed by [Mode.String] and a few aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regular", "unsigned", "plain", "":
		return Unsigned, nil
	case "burnt", "burned", "signed":
		return Signed, nil
	}
	return Unsigned, errs.New(errs.ErrCodeInvalidMode, "unknown mode %q (want regular or burnt)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Stack is an arrangement of discs, top first.
type Stack []int

// Identity returns the sorted stack 1..n with every disc face up.
func Identity(n int) Stack {
	s := make(Stack, n)
	for i := range s {
		s[i] = i + 1
	}
	return s
}

// Clone returns an independent copy of s.
func (s Stack) Clone() Stack { return slices.Clone(s) }

// Equal reports whether s and o hold the same discs in the same order.
func (s Stack) Equal(o Stack) bool { return slices.Equal(s, o) }

// IsIdentity reports whether s is sorted with every disc face up.
func (s Stack) IsIdentity() bool {
	for i, v := range s {
		if v != i+1 {
			return false
		}
	}
	return true
}

// Text renders s as a comma separated list, the form [Parse] accepts.
func (s Stack) Text() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// Parse reads a stack written as "3,-1,2", "3 -1 2" or "[3, -1, 2]".
// It does not validate the result; see [Validate].
func Parse(text string) (Stack, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "[")
	text = strings.TrimSuffix(text, "]")
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "empty stack")
	}
	s := make(Stack, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errs.New(errs.ErrCodeInvalidInput, "invalid disc %q", f)
		}
		s[i] = v
	}
	return s, nil
}

// Validate checks that s is a valid vertex for mode: a non-empty stack of at
// most [MaxSize] discs whose absolute values cover 1..n exactly once, with no
// negative discs in [Unsigned] mode.
func Validate(s Stack, mode Mode) error {
	n := len(s)
	if n == 0 {
		return errs.New(errs.ErrCodeInvalidStack, "stack is empty")
	}
	if n > MaxSize {
		return errs.New(errs.ErrCodeInvalidStack, "stack has %d discs (max %d)", n, MaxSize)
	}
	seen := make([]bool, n+1)
	for i, v := range s {
		a := v
		if a < 0 {
			if mode != Signed {
				return errs.New(errs.ErrCodeInvalidStack, "disc %d at position %d is burnt but mode is %s", v, i, mode)
			}
			a = -a
		}
		if a < 1 || a > n {
			return errs.New(errs.ErrCodeInvalidStack, "disc %d at position %d is outside 1..%d", v, i, n)
		}
		if seen[a] {
			return errs.New(errs.ErrCodeInvalidStack, "disc %d appears more than once", a)
		}
		seen[a] = true
	}
	return nil
}

// ValidatePair validates start and goal for one traversal: both must be valid
// for mode and have the same length.
func ValidatePair(start, goal Stack, mode Mode) error {
	if err := Validate(start, mode); err != nil {
		return errs.Wrap(errs.GetCode(err), err, "start")
	}
	if err := Validate(goal, mode); err != nil {
		return errs.Wrap(errs.GetCode(err), err, "goal")
	}
	if len(start) != len(goal) {
		return errs.New(errs.ErrCodeLengthMismatch, "start has %d discs, goal has %d", len(start), len(goal))
	}
	return nil
}
