package selection

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, cfg StoreConfig) (*Store, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := NewStore(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, &buf
}

func mustGet(t *testing.T, s *Store, id string) *Context {
	t.Helper()
	ctx, err := s.Get(id)
	require.NoError(t, err)
	return ctx
}

func TestStoreConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  StoreConfig
		wantErr bool
	}{
		{"valid default config", DefaultStoreConfig(), false},
		{"ttl too short", StoreConfig{IdleTTL: time.Second, SweepInterval: time.Second}, true},
		{"sweep too short", StoreConfig{IdleTTL: time.Hour, SweepInterval: time.Millisecond}, true},
		{"sweep longer than ttl", StoreConfig{IdleTTL: time.Minute, SweepInterval: time.Hour, MaxWorkspaces: 1}, true},
		{"no workspaces allowed", StoreConfig{IdleTTL: time.Hour, SweepInterval: time.Minute}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStore_GetReturnsSameContextPerWorkspace(t *testing.T) {
	s, _ := newTestStore(t, DefaultStoreConfig())

	a := mustGet(t, s, "ws-1")
	b := mustGet(t, s, "ws-1")
	other := mustGet(t, s, "ws-2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
	assert.Equal(t, 2, s.Len())

	a.Establish("A", sampleRoster())
	assert.False(t, other.Snapshot().Selected())
}

func TestStore_Lookup(t *testing.T) {
	s, _ := newTestStore(t, DefaultStoreConfig())

	_, ok := s.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())

	created := mustGet(t, s, "ws")
	found, ok := s.Lookup("ws")
	assert.True(t, ok)
	assert.Same(t, created, found)
}

func TestStore_DropClearsContext(t *testing.T) {
	s, _ := newTestStore(t, DefaultStoreConfig())

	ctx := mustGet(t, s, "ws")
	ctx.Establish("B", sampleRoster())

	s.Drop("ws")
	assert.False(t, ctx.Snapshot().Selected())
	assert.Equal(t, 0, s.Len())

	fresh := mustGet(t, s, "ws")
	assert.NotSame(t, ctx, fresh)
	assert.False(t, fresh.Snapshot().Selected())
}

func TestStore_EvictIdle(t *testing.T) {
	s, buf := newTestStore(t, DefaultStoreConfig())

	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	stale := mustGet(t, s, "stale")
	stale.Establish("A", sampleRoster())

	now = now.Add(11 * time.Hour)
	mustGet(t, s, "fresh")

	now = now.Add(2 * time.Hour)
	evicted := s.evictIdle()

	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, s.Len())
	assert.False(t, stale.Snapshot().Selected())

	_, ok := s.Lookup("fresh")
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "workspace opened")
}

func TestStore_MismatchIsLoggedAndForwarded(t *testing.T) {
	var mu sync.Mutex
	var forwarded []string

	cfg := DefaultStoreConfig()
	cfg.OnMismatch = func(workspaceID string, m Mismatch) {
		mu.Lock()
		defer mu.Unlock()
		forwarded = append(forwarded, workspaceID+":"+m.Op)
	}
	s, buf := newTestStore(t, cfg)

	mustGet(t, s, "ws").Establish("Z", sampleRoster())

	assert.Contains(t, buf.String(), "selection does not match roster")
	assert.Contains(t, buf.String(), "customer_id=Z")
	assert.Equal(t, []string{"ws:establish"}, forwarded)
}

func TestStore_CloseIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t, DefaultStoreConfig())
	s.Close()
	s.Close()
}

func TestStore_MaxWorkspaces(t *testing.T) {
	cfg := DefaultStoreConfig()
	cfg.MaxWorkspaces = 2
	s, buf := newTestStore(t, cfg)

	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	first := mustGet(t, s, "one")
	first.Establish("A", sampleRoster())
	mustGet(t, s, "two")

	_, err := s.Get("three")
	assert.ErrorIs(t, err, ErrStoreFull)
	assert.Equal(t, 2, s.Len())
	assert.Contains(t, buf.String(), "workspace store full")

	// Existing workspaces stay reachable while the store is full.
	again, err := s.Get("one")
	require.NoError(t, err)
	assert.Same(t, first, again)

	// Once a workspace goes idle, its slot is reclaimed.
	now = now.Add(13 * time.Hour)
	mustGet(t, s, "two")
	mustGet(t, s, "three")
	assert.Equal(t, 2, s.Len())
	assert.False(t, first.Snapshot().Selected())
	_, ok := s.Lookup("one")
	assert.False(t, ok)
}
