package tools

import (
	"context"
	"sync"
)

// RunContext is the typed per-request context handed to tools during an
// agent run.
type RunContext struct {
	RequestID string
	APIKey    string

	mu     sync.Mutex
	solves []SolveRef
}

// SolveRef is a verdict produced by a tool during the run.
type SolveRef struct {
	ID     string
	Result bool
}

type runContextKey struct{}

// WithRunContext attaches rc to ctx.
func WithRunContext(ctx context.Context, rc *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, rc)
}

// RunContextFrom returns the RunContext attached to ctx, or an empty one.
func RunContextFrom(ctx context.Context) *RunContext {
	if rc, ok := ctx.Value(runContextKey{}).(*RunContext); ok && rc != nil {
		return rc
	}
	return &RunContext{}
}

func (rc *RunContext) recordSolve(id string, result bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.solves = append(rc.solves, SolveRef{ID: id, Result: result})
}

// Solves returns the verdicts produced so far, oldest first.
func (rc *RunContext) Solves() []SolveRef {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return append([]SolveRef(nil), rc.solves...)
}

// LastSolve returns the most recent verdict, if any.
func (rc *RunContext) LastSolve() (SolveRef, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if len(rc.solves) == 0 {
		return SolveRef{}, false
	}
	return rc.solves[len(rc.solves)-1], true
}
