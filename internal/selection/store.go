package selection

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// StoreConfig configures a Store.
type StoreConfig struct {
	// IdleTTL is how long a workspace may go untouched before its Context
	// is discarded. Discarding is the implicit end of a workflow.
	// Default: 12 hours
	IdleTTL time.Duration

	// SweepInterval is how often idle workspaces are looked for.
	// Default: 5 minutes
	SweepInterval time.Duration

	// MaxWorkspaces bounds how many workspaces may be live at once. Get
	// returns ErrStoreFull beyond it.
	// Default: 10000
	MaxWorkspaces int

	// OnMismatch, if set, is called in addition to the warning log whenever
	// a workspace's selection cannot be matched to its roster.
	OnMismatch func(workspaceID string, m Mismatch)
}

// DefaultStoreConfig returns a StoreConfig with sensible default values.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		IdleTTL:       12 * time.Hour,
		SweepInterval: 5 * time.Minute,
		MaxWorkspaces: 10000,
	}
}

// Validate checks if the configuration is valid.
func (c StoreConfig) Validate() error {
	if c.IdleTTL < time.Minute {
		return fmt.Errorf("idle ttl must be at least 1 minute, got %v", c.IdleTTL)
	}
	if c.SweepInterval < time.Second {
		return fmt.Errorf("sweep interval must be at least 1 second, got %v", c.SweepInterval)
	}
	if c.SweepInterval > c.IdleTTL {
		return fmt.Errorf("sweep interval (%v) must not exceed idle ttl (%v)", c.SweepInterval, c.IdleTTL)
	}
	if c.MaxWorkspaces < 1 {
		return fmt.Errorf("max workspaces must be at least 1, got %d", c.MaxWorkspaces)
	}
	return nil
}

// ErrStoreFull is returned by Get when MaxWorkspaces are live and none is
// idle.
var ErrStoreFull = errors.New("selection: too many open workspaces")

// Store hands out one Context per workspace.
//
// A workspace is whatever the caller uses to scope a carer's open workflow,
// typically a browser session. Contexts live only in memory.
type Store struct {
	config StoreConfig
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*storeEntry

	stopCh   chan struct{}
	stopOnce sync.Once
}

type storeEntry struct {
	ctx      *Context
	lastSeen time.Time
}

// NewStore creates a Store and starts its idle sweeper. Call Close to stop
// the sweeper.
func NewStore(config StoreConfig, logger *slog.Logger) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store config: %w", err)
	}

	s := &Store{
		config:  config,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]*storeEntry),
		stopCh:  make(chan struct{}),
	}

	go s.sweepLoop()

	return s, nil
}

// Get returns the Context for workspaceID, creating an empty one if the
// workspace is new or was evicted. When the store is at MaxWorkspaces, idle
// workspaces are evicted first; if none is idle, Get returns ErrStoreFull.
//
// Read-only callers should use Lookup so that they never create entries.
func (s *Store) Get(workspaceID string) (*Context, error) {
	s.mu.Lock()

	now := s.now()
	if e, ok := s.entries[workspaceID]; ok {
		e.lastSeen = now
		s.mu.Unlock()
		return e.ctx, nil
	}

	var evicted []*Context
	if len(s.entries) >= s.config.MaxWorkspaces {
		evicted = s.evictIdleLocked(now)
		if len(s.entries) >= s.config.MaxWorkspaces {
			s.mu.Unlock()
			clearAll(evicted)
			s.logger.Warn("workspace store full", "max_workspaces", s.config.MaxWorkspaces)
			return nil, ErrStoreFull
		}
	}

	ctx := New()
	ctx.OnMismatch(func(m Mismatch) {
		s.logger.Warn("selection does not match roster",
			"workspace_id", workspaceID,
			"op", m.Op,
			"customer_id", m.CustomerID,
			"roster_size", m.RosterSize,
		)
		if s.config.OnMismatch != nil {
			s.config.OnMismatch(workspaceID, m)
		}
	})

	s.entries[workspaceID] = &storeEntry{ctx: ctx, lastSeen: now}
	s.mu.Unlock()

	clearAll(evicted)
	s.logger.Debug("workspace opened", "workspace_id", workspaceID)
	return ctx, nil
}

// Lookup returns the Context for workspaceID without creating one.
func (s *Store) Lookup(workspaceID string) (*Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[workspaceID]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.ctx, true
}

// Drop clears and forgets the workspace's Context.
func (s *Store) Drop(workspaceID string) {
	s.mu.Lock()
	e, ok := s.entries[workspaceID]
	delete(s.entries, workspaceID)
	s.mu.Unlock()

	if ok {
		e.ctx.Clear()
	}
}

// Len returns the number of live workspaces.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the idle sweeper. It is safe to call more than once.
func (s *Store) Close() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

func (s *Store) sweepLoop() {
	ticker := time.NewTicker(s.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if n := s.evictIdle(); n > 0 {
				s.logger.Info("evicted idle workspaces", "count", n)
			}
		}
	}
}

// evictIdle removes workspaces untouched for longer than IdleTTL and returns
// how many were removed.
func (s *Store) evictIdle() int {
	s.mu.Lock()
	evicted := s.evictIdleLocked(s.now())
	s.mu.Unlock()

	clearAll(evicted)
	return len(evicted)
}

// evictIdleLocked deletes idle entries and returns their Contexts. s.mu must
// be held.
func (s *Store) evictIdleLocked(now time.Time) []*Context {
	cutoff := now.Add(-s.config.IdleTTL)
	var evicted []*Context
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			evicted = append(evicted, e.ctx)
			delete(s.entries, id)
		}
	}
	return evicted
}

func clearAll(contexts []*Context) {
	for _, ctx := range contexts {
		ctx.Clear()
	}
}
