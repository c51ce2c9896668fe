package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/flipstack/pkg/core/stack"
	errs "github.com/matzehuels/flipstack/pkg/errors"
	"github.com/matzehuels/flipstack/pkg/solver"
)

// Report is the JSON form of a solver result.
type Report struct {
	Name        string        `json:"name,omitempty"`
	Start       stack.Stack   `json:"start"`
	Goal        stack.Stack   `json:"goal"`
	Mode        stack.Mode    `json:"mode"`
	FewestMoves *int          `json:"fewest_moves"`
	Path        []stack.Stack `json:"path,omitempty"`
	Moves       []int         `json:"moves,omitempty"`
	Admitted    bool          `json:"admitted"`
	UpperBound  int           `json:"upper_bound"`
	BoundExact  bool          `json:"bound_exact"`
	Explored    int           `json:"explored"`
	ElapsedMS   float64       `json:"elapsed_ms"`

	// Error is set instead of the fields above when a batch entry failed.
	Error *ErrorReport `json:"error,omitempty"`
}

// ErrorReport is the JSON form of a coded error.
type ErrorReport struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// NewErrorReport converts err. Errors without a code are reported as
// INTERNAL_ERROR.
func NewErrorReport(err error) *ErrorReport {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	return &ErrorReport{Code: code, Message: errs.UserMessage(err)}
}

// NewReport converts a solver result.
func NewReport(name string, res *solver.Result) Report {
	return Report{
		Name:        name,
		Start:       res.Query.Start,
		Goal:        res.Query.Goal,
		Mode:        res.Query.Mode,
		FewestMoves: res.FewestMoves,
		Path:        res.BestPath,
		Moves:       res.Moves,
		Admitted:    res.Admitted,
		UpperBound:  res.UpperBound,
		BoundExact:  res.BoundExact,
		Explored:    res.Explored,
		ElapsedMS:   float64(res.Elapsed) / float64(time.Millisecond),
	}
}

// BatchEntry is the outcome of one puzzle: either Result or Err is set.
type BatchEntry struct {
	Puzzle Puzzle
	Result *solver.Result
	Err    error
}

// Report converts the entry.
func (e BatchEntry) Report() Report {
	if e.Err != nil {
		return Report{
			Name:  e.Puzzle.Name,
			Start: e.Puzzle.Start,
			Goal:  e.Puzzle.Goal,
			Mode:  e.Puzzle.Mode(),
			Error: NewErrorReport(e.Err),
		}
	}
	return NewReport(e.Puzzle.Name, e.Result)
}

// WriteJSON encodes res as an indented JSON document.
func WriteJSON(res *solver.Result, w io.Writer) error {
	return encode(w, NewReport("", res))
}

// WriteBatchJSON encodes a batch as a JSON array, in input order.
func WriteBatchJSON(entries []BatchEntry, w io.Writer) error {
	out := make([]Report, len(entries))
	for i, e := range entries {
		out[i] = e.Report()
	}
	return encode(w, out)
}

// ExportJSON writes res to a JSON file at path.
func ExportJSON(res *solver.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(res, f)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
