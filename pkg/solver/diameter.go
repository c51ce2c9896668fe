package solver

import (
	"github.com/matzehuels/flipstack/pkg/core/admission"
	"github.com/matzehuels/flipstack/pkg/core/stack"
	errs "github.com/matzehuels/flipstack/pkg/errors"
)

// DiameterRow describes the worst case for one stack size.
type DiameterRow struct {
	N    int        `json:"n"`
	Mode stack.Mode `json:"mode"`
	// MaxFlips is nil when the diameter is not known for N.
	MaxFlips   *int `json:"max_flips"`
	UpperBound int  `json:"upper_bound"`
	BoundExact bool `json:"bound_exact"`
	// Admitted reports whether the solver would search stacks of size N.
	Admitted bool `json:"admitted"`
}

// Diameter returns the worst case for stacks of n discs in mode.
func (s *Solver) Diameter(n int, mode stack.Mode) (DiameterRow, error) {
	if n < 1 || n > stack.MaxSize {
		return DiameterRow{}, errs.New(errs.ErrCodeUnsupportedSize, "stack size %d outside 1..%d", n, stack.MaxSize)
	}
	return s.diameterRow(n, mode), nil
}

// diameterRow builds the row for a size already known to be in range.
func (s *Solver) diameterRow(n int, mode stack.Mode) DiameterRow {
	row := DiameterRow{N: n, Mode: mode, Admitted: s.Guard.Admit(n, mode)}
	if d, ok := admission.MaxFlips(n, mode); ok {
		row.MaxFlips = &d
	}
	row.UpperBound, row.BoundExact = admission.UpperBound(n, mode)
	return row
}

// Diameters returns one row per size with a known diameter in mode.
func (s *Solver) Diameters(mode stack.Mode) []DiameterRow {
	rows := make([]DiameterRow, 0, admission.KnownSizes(mode))
	for n := 1; n <= admission.KnownSizes(mode); n++ {
		rows = append(rows, s.diameterRow(n, mode))
	}
	return rows
}
