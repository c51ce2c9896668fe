package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/flipstack/pkg/config"
	"github.com/matzehuels/flipstack/pkg/core/admission"
	"github.com/matzehuels/flipstack/pkg/core/stack"
	errs "github.com/matzehuels/flipstack/pkg/errors"
	flipio "github.com/matzehuels/flipstack/pkg/io"
	"github.com/matzehuels/flipstack/pkg/metrics"
	"github.com/matzehuels/flipstack/pkg/observability"
	"github.com/matzehuels/flipstack/pkg/solver"
)

func newTestServer(t *testing.T, m *metrics.Metrics) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	sv, err := solver.New(admission.DefaultGuard(), logger)
	require.NoError(t, err)

	opts := Options{Solver: sv, Logger: logger}
	if m != nil {
		opts.Metrics = m.Handler()
	}
	ts := httptest.NewServer(New(opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postSolve(t *testing.T, ts *httptest.Server, query, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/solve"+query, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestSolve(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := postSolve(t, ts, "", `{"start":[2,1]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	rep := decode[flipio.Report](t, resp)
	require.NotNil(t, rep.FewestMoves)
	assert.Equal(t, 1, *rep.FewestMoves)
	assert.Equal(t, []stack.Stack{{2, 1}, {1, 2}}, rep.Path)
	assert.Equal(t, []int{1}, rep.Moves)
	assert.Equal(t, stack.Unsigned, rep.Mode)
	assert.True(t, rep.Admitted)
}

func TestSolveBurntWithGoal(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := postSolve(t, ts, "", `{"start":[-1,2],"goal":[2,1],"burnt":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rep := decode[flipio.Report](t, resp)
	require.NotNil(t, rep.FewestMoves)
	assert.Equal(t, stack.Signed, rep.Mode)
	assert.Equal(t, stack.Stack{2, 1}, rep.Goal)
	assert.Equal(t, len(rep.Path)-1, *rep.FewestMoves)
}

func TestSolveDeclined(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := postSolve(t, ts, "", `{"start":[1,2,3,4,5,6,7,8,9]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rep := decode[flipio.Report](t, resp)
	assert.Nil(t, rep.FewestMoves)
	assert.False(t, rep.Admitted)
	assert.Equal(t, 10, rep.UpperBound)

	resp = postSolve(t, ts, "?format=dot", `{"start":[1,2,3,4,5,6,7,8,9]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, errs.ErrCodeUnsupportedSize, decode[flipio.ErrorReport](t, resp).Code)
}

func TestSolveDOT(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := postSolve(t, ts, "?format=dot", `{"start":[3,1,2]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "digraph G")
	assert.Contains(t, string(body), `label="flip 3"`)
}

func TestSolveSVG(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := postSolve(t, ts, "?format=svg", `{"start":[2,1]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<svg")
}

func TestSolveErrors(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name  string
		query string
		body  string
		code  errs.Code
	}{
		{"malformed json", "", `{"start":`, errs.ErrCodeInvalidInput},
		{"unknown field", "", `{"start":[1],"size":3}`, errs.ErrCodeInvalidInput},
		{"not a permutation", "", `{"start":[1,1]}`, errs.ErrCodeInvalidStack},
		{"burnt disc in regular mode", "", `{"start":[-1,2]}`, errs.ErrCodeInvalidStack},
		{"empty start", "", `{"start":[]}`, errs.ErrCodeInvalidStack},
		{"length mismatch", "", `{"start":[2,1],"goal":[1,2,3]}`, errs.ErrCodeLengthMismatch},
		{"bad format", "?format=png", `{"start":[2,1]}`, errs.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postSolve(t, ts, tt.query, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			e := decode[flipio.ErrorReport](t, resp)
			assert.Equal(t, tt.code, e.Code)
			assert.NotEmpty(t, e.Message)
		})
	}
}

func TestDiameter(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := get(t, ts, "/v1/diameter")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := decode[[]solver.DiameterRow](t, resp)
	assert.Len(t, rows, 19)

	resp = get(t, ts, "/v1/diameter?n=3&burnt=true")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	row := decode[solver.DiameterRow](t, resp)
	require.NotNil(t, row.MaxFlips)
	assert.Equal(t, 6, *row.MaxFlips)
	assert.Equal(t, stack.Signed, row.Mode)
	assert.True(t, row.Admitted)

	resp = get(t, ts, "/v1/diameter?n=40")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	row = decode[solver.DiameterRow](t, resp)
	assert.Nil(t, row.MaxFlips)
	assert.Equal(t, 66, row.UpperBound)

	for _, q := range []string{"?n=zero", "?n=0", "?burnt=maybe"} {
		resp = get(t, ts, "/v1/diameter"+q)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestScramble(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := get(t, ts, "/v1/scramble?n=6&burnt=true&seed=9")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decode[ScrambleResponse](t, resp)
	assert.Equal(t, uint64(9), first.Seed)
	assert.Equal(t, stack.Signed, first.Mode)
	require.NoError(t, stack.Validate(first.Stack, stack.Signed))
	assert.False(t, first.Stack.IsIdentity())

	again := decode[ScrambleResponse](t, get(t, ts, "/v1/scramble?n=6&burnt=true&seed=9"))
	assert.Equal(t, first.Stack, again.Stack, "same seed deals the same stack")

	for _, q := range []string{"", "?n=0", "?n=3&seed=-1", "?n=65", "?n=4611686018427387904"} {
		resp = get(t, ts, "/v1/scramble"+q)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := get(t, ts, "/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[HealthResponse](t, resp).Status)
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := get(t, ts, "/healthz")
	_, err := uuid.Parse(resp.Header.Get(RequestIDHeader))
	assert.NoError(t, err, "every response carries a uuid")

	resp = postSolve(t, ts, "", `{"start":[1,1]}`)
	_, err = uuid.Parse(resp.Header.Get(RequestIDHeader))
	assert.NoError(t, err, "error responses carry one too")

	id := uuid.NewString()
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, id)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, id, resp.Header.Get(RequestIDHeader), "client ids are kept")

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.NotEqual(t, "not-a-uuid", resp2.Header.Get(RequestIDHeader))
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	errors int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, route string, _ int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
}

func (h *recordingHTTPHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestHooksSeeRoutePatterns(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	ts := newTestServer(t, nil)
	get(t, ts, "/v1/diameter?n=4")
	postSolve(t, ts, "", `{"start":[0]}`)
	get(t, ts, "/nowhere")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	assert.Equal(t, []string{"/v1/diameter", "/v1/solve", "unmatched"}, hooks.routes)
	assert.Equal(t, 1, hooks.errors)
}

type countingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	inFlight int
	statuses []int
}

func (h *countingHTTPHooks) OnRequest(context.Context, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inFlight++
}

func (h *countingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inFlight--
	h.statuses = append(h.statuses, status)
}

func TestInstrumentReportsPanics(t *testing.T) {
	hooks := &countingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	s := New(Options{Logger: log.New(io.Discard)})
	h := middleware.Recoverer(s.instrument(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/scramble", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	assert.Equal(t, 0, hooks.inFlight)
	assert.Equal(t, []int{http.StatusInternalServerError}, hooks.statuses)
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New("flipstack")
	observability.SetSolverHooks(m)
	observability.SetHTTPHooks(m)
	defer observability.Reset()

	ts := newTestServer(t, m)
	postSolve(t, ts, "", `{"start":[3,1,2]}`)

	resp := get(t, ts, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `flipstack_solver_searches_total{mode="regular",outcome="reached"} 1`)
	assert.Contains(t, string(body), `flipstack_http_requests_total{method="POST",route="/v1/solve",status="200"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := get(t, ts, "/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListenAndServeShutsDown(t *testing.T) {
	sv, err := solver.New(admission.DefaultGuard(), nil)
	require.NoError(t, err)
	s := New(Options{
		Solver: sv,
		Logger: log.New(io.Discard),
		Config: config.ServerConfig{
			Addr:            "127.0.0.1:0",
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestWriteJSONSetsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusTeapot, map[string]string{"a": "b"})
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.JSONEq(t, `{"a":"b"}`, strings.TrimSpace(rec.Body.String()))
}
