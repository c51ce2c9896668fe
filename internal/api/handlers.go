package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/flipstack/pkg/buildinfo"
	"github.com/matzehuels/flipstack/pkg/core/stack"
	errs "github.com/matzehuels/flipstack/pkg/errors"
	flipio "github.com/matzehuels/flipstack/pkg/io"
	"github.com/matzehuels/flipstack/pkg/observability"
	"github.com/matzehuels/flipstack/pkg/render/nodelink"
	"github.com/matzehuels/flipstack/pkg/scramble"
	"github.com/matzehuels/flipstack/pkg/solver"
)

const maxBodyBytes = 64 << 10

// SolveRequest is the body of POST /v1/solve.
type SolveRequest struct {
	Start []int `json:"start"`
	Goal  []int `json:"goal,omitempty"`
	Burnt bool  `json:"burnt"`
}

// ScrambleResponse is the body of GET /v1/scramble.
type ScrambleResponse struct {
	Stack stack.Stack `json:"stack"`
	Mode  stack.Mode  `json:"mode"`
	Seed  uint64      `json:"seed"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	switch format {
	case "", "json", "dot", "svg":
	default:
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q (json, dot, svg)", format))
		return
	}

	var req SolveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	res, err := s.solver.Solve(r.Context(), solver.Query{
		Start: req.Start,
		Goal:  req.Goal,
		Mode:  stack.ModeOf(req.Burnt),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if format == "" || format == "json" {
		writeJSON(w, http.StatusOK, flipio.NewReport("", res))
		return
	}
	if !res.Solved() {
		s.writeError(w, r, errs.New(errs.ErrCodeUnsupportedSize,
			"no path to draw: %d discs exceed the %s ceiling", len(res.Query.Start), res.Query.Mode))
		return
	}

	dot := nodelink.ToDOT(res.BestPath, res.Moves, nodelink.Options{Mode: res.Query.Mode, Detailed: true})
	if format == "dot" {
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		_, _ = w.Write([]byte(dot))
		return
	}
	svg, err := nodelink.RenderSVG(r.Context(), dot)
	if err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "render svg"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) handleDiameter(w http.ResponseWriter, r *http.Request) {
	mode, err := modeParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if r.URL.Query().Get("n") == "" {
		writeJSON(w, http.StatusOK, s.solver.Diameters(mode))
		return
	}
	n, err := intParam(r, "n")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	row, err := s.solver.Diameter(n, mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleScramble(w http.ResponseWriter, r *http.Request) {
	mode, err := modeParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n, err := intParam(r, "n")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	seed := uint64(time.Now().UnixNano())
	if raw := r.URL.Query().Get("seed"); raw != "" {
		seed, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "seed must be an unsigned integer, got %q", raw))
			return
		}
	}

	st, err := scramble.New(seed).Next(n, mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ScrambleResponse{Stack: st, Mode: mode, Seed: seed})
}

// modeParam reads ?burnt=true|false, defaulting to regular stacks.
func modeParam(r *http.Request) (stack.Mode, error) {
	raw := r.URL.Query().Get("burnt")
	if raw == "" {
		return stack.Unsigned, nil
	}
	burnt, err := strconv.ParseBool(raw)
	if err != nil {
		return stack.Unsigned, errs.New(errs.ErrCodeInvalidInput, "burnt must be true or false, got %q", raw)
	}
	return stack.ModeOf(burnt), nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errs.New(errs.ErrCodeInvalidInput, "query parameter %s is required", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.New(errs.ErrCodeInvalidInput, "%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

// writeError answers with the coded JSON error form of err.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, flipio.NewErrorReport(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
