// Package workspace carries the caller's workspace through request contexts.
//
// A workspace scopes one carer's open workflow, typically one browser
// session. Its selection.Context is loaded by middleware and read by
// handlers. Keeping the helpers here lets both packages import them without
// an import cycle.
//
// Requests that only read see the workspace if it already exists. Handlers
// that change the selection call Open, which creates the workspace on first
// use, so anonymous reads never allocate server-side state.
package workspace

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/DukeRupert/carecrm/internal/selection"
)

// ErrNoWorkspace is returned by Open outside workspace middleware.
var ErrNoWorkspace = errors.New("workspace: request has no workspace")

// OpenFunc creates the request's workspace and returns its ID and Context.
type OpenFunc func() (id string, sel *selection.Context, err error)

type contextKey string

const workspaceContextKey contextKey = "workspace"

// entry is the per-request workspace handle. It is filled in lazily by
// Open.
type entry struct {
	mu   sync.Mutex
	id   string
	sel  *selection.Context
	open OpenFunc
}

// With stores an existing workspace and its selection Context in ctx.
func With(ctx context.Context, id string, sel *selection.Context) context.Context {
	return context.WithValue(ctx, workspaceContextKey, &entry{id: id, sel: sel})
}

// WithOpener stores a request with no live workspace. open runs at most
// once, on the first call to Open.
func WithOpener(ctx context.Context, open OpenFunc) context.Context {
	return context.WithValue(ctx, workspaceContextKey, &entry{open: open})
}

func fromContext(ctx context.Context) *entry {
	e, _ := ctx.Value(workspaceContextKey).(*entry)
	return e
}

// ID returns the workspace ID, or "" when the request has no live
// workspace.
func ID(ctx context.Context) string {
	e := fromContext(ctx)
	if e == nil {
		return ""
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id
}

// Selection returns the workspace's selection Context, or nil when the
// request has no live workspace. It never creates one.
func Selection(ctx context.Context) *selection.Context {
	e := fromContext(ctx)
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel
}

// SelectionFromRequest is a convenience wrapper around Selection.
func SelectionFromRequest(r *http.Request) *selection.Context {
	return Selection(r.Context())
}

// Snapshot returns the current selection, or the empty state when the
// request has no live workspace.
func Snapshot(ctx context.Context) selection.State {
	if sel := Selection(ctx); sel != nil {
		return sel.Snapshot()
	}
	return selection.State{CustomerList: []selection.CustomerRef{}}
}

// Open returns the workspace's selection Context, creating the workspace if
// the request has none yet.
func Open(ctx context.Context) (*selection.Context, error) {
	e := fromContext(ctx)
	if e == nil {
		return nil, ErrNoWorkspace
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sel != nil {
		return e.sel, nil
	}
	if e.open == nil {
		return nil, ErrNoWorkspace
	}
	id, sel, err := e.open()
	if err != nil {
		return nil, err
	}
	e.id, e.sel, e.open = id, sel, nil
	return sel, nil
}
