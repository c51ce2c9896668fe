// Package observability provides hooks for metrics and logging.
//
// Instrumentation is optional: the solver and the HTTP API emit events
// through the hooks registered here, and nothing below this package knows
// which backend, if any, receives them.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    m := metrics.New("flipstack")
//	    observability.SetSolverHooks(m)
//	    observability.SetHTTPHooks(m)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Solver().OnSearchStart(ctx, n, mode)
//	// ... search ...
//	observability.Solver().OnSearchComplete(ctx, n, mode, explored, reached, elapsed)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Solver Hooks
// =============================================================================

// SolverHooks receives events from the shortest-flip solver.
// mode is the printable mode name ("regular" or "burnt").
type SolverHooks interface {
	// OnSearchStart is called when an admitted query starts its search.
	OnSearchStart(ctx context.Context, n int, mode string)

	// OnSearchComplete is called when a search finishes.
	OnSearchComplete(ctx context.Context, n int, mode string, explored int, reached bool, duration time.Duration)

	// OnAdmissionDeclined is called when a query is too large to search.
	OnAdmissionDeclined(ctx context.Context, n int, mode string)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API. OnRequest fires before
// routing and sees the raw path; the other events see the matched route
// pattern.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a written response.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)

	// OnError records a request that failed with an error response.
	OnError(ctx context.Context, method, route string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnSearchStart(context.Context, int, string)                              {}
func (NoopSolverHooks) OnSearchComplete(context.Context, int, string, int, bool, time.Duration) {}
func (NoopSolverHooks) OnAdmissionDeclined(context.Context, int, string)                        {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	solverHooks SolverHooks = NoopSolverHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetSolverHooks registers custom solver hooks.
// This should be called once at application startup before any query runs.
func SetSolverHooks(h SolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solverHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solverHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solverHooks = NoopSolverHooks{}
	httpHooks = NoopHTTPHooks{}
}
