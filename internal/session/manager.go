package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/swiper/internal/metrics"
	"github.com/mmynk/swiper/internal/storage"
)

var (
	// ErrNotFound is returned for unknown session IDs.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidID is returned for session IDs that are not UUIDs.
	ErrInvalidID = errors.New("invalid session id")
)

// DefaultSweepInterval is used when Options.IdleTimeout is set but
// Options.SweepInterval is not.
const DefaultSweepInterval = time.Minute

// Reasons a session ends, as reported to metrics.
const (
	EndRequested = "requested"
	EndIdle      = "idle"
	EndShutdown  = "shutdown"
)

// Options configures a Manager.
type Options struct {
	HistoryLimit int
	Metrics      *metrics.Metrics

	// IdleTimeout ends sessions that have not been accessed for this long.
	// Zero keeps sessions until End or Close.
	IdleTimeout time.Duration
	// SweepInterval is how often idle sessions are looked for.
	SweepInterval time.Duration
}

type entry struct {
	container *Container
	persister *Persister
	lastSeen  atomic.Int64 // unix nanoseconds
}

func (e *entry) touch(now time.Time) { e.lastSeen.Store(now.UnixNano()) }

// Manager tracks the active sessions of the server.
type Manager struct {
	store   storage.Store
	opts    Options
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]*entry

	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewManager creates a Manager backed by store. When opts.IdleTimeout is
// positive a background sweeper ends idle sessions until Close.
func NewManager(store storage.Store, opts Options) *Manager {
	m := &Manager{
		store:   store,
		opts:    opts,
		now:     time.Now,
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}
	if opts.IdleTimeout > 0 {
		interval := opts.SweepInterval
		if interval <= 0 {
			interval = DefaultSweepInterval
		}
		m.wg.Add(1)
		go m.sweep(interval)
	}
	return m
}

// Start opens a session. An empty id creates a fresh session. A known id
// returns the live container (resumed = true). An unknown but well-formed id
// creates a container under that id and hydrates its liked list from the
// store, which is how a returning browser gets its likes back.
func (m *Manager) Start(ctx context.Context, id string) (c *Container, resumed bool, err error) {
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[id]; ok {
		e.touch(m.now())
		return e.container, true, nil
	}

	c = NewContainer(id, m.opts.HistoryLimit)
	liked, err := storage.LoadLiked(ctx, m.store, id)
	switch {
	case err != nil:
		// Malformed or unreadable data is not fatal: start with no likes.
		slog.Warn("Skipping liked list hydration", "session_id", id, "error", err)
	case len(liked) > 0:
		c.Hydrate(liked)
		slog.Info("Liked list hydrated", "session_id", id, "count", len(liked))
	}

	e := &entry{
		container: c,
		persister: NewPersister(c, m.store, func(error) { m.opts.Metrics.PersistFailed() }),
	}
	e.touch(m.now())
	m.entries[id] = e
	m.opts.Metrics.SessionStarted()
	return c, false, nil
}

// Get returns the live container for id and marks the session as active.
func (m *Manager) Get(id string) (*Container, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	e.touch(m.now())
	return e.container, nil
}

// End closes a session, flushing its pending write. Its persisted likes stay
// in the store.
func (m *Manager) End(id string) error {
	if !m.end(id, EndRequested) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Forget ends the session if it is live and deletes its persisted likes.
// Unknown ids are not an error: there may be stored likes from an earlier
// process.
func (m *Manager) Forget(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	m.end(id, EndRequested)
	if err := storage.DeleteLiked(ctx, m.store, id); err != nil {
		return fmt.Errorf("failed to forget liked list: %w", err)
	}
	return nil
}

func (m *Manager) end(id, reason string) bool {
	m.mu.Lock()
	e, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()
	if !ok {
		return false
	}
	e.persister.Close()
	m.opts.Metrics.SessionEnded(reason)
	return true
}

// EvictIdle ends every session whose last access is older than the idle
// timeout as of now, and returns how many were ended.
func (m *Manager) EvictIdle(now time.Time) int {
	if m.opts.IdleTimeout <= 0 {
		return 0
	}
	cutoff := now.Add(-m.opts.IdleTimeout).UnixNano()

	m.mu.RLock()
	var stale []string
	for id, e := range m.entries {
		if e.lastSeen.Load() < cutoff {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	evicted := 0
	for _, id := range stale {
		// Re-check under the write lock; the session may have been used since.
		m.mu.Lock()
		e, ok := m.entries[id]
		if !ok || e.lastSeen.Load() >= cutoff {
			m.mu.Unlock()
			continue
		}
		delete(m.entries, id)
		m.mu.Unlock()

		e.persister.Close()
		m.opts.Metrics.SessionEnded(EndIdle)
		slog.Info("Idle session ended", "session_id", id)
		evicted++
	}
	return evicted
}

func (m *Manager) sweep(interval time.Duration) {
	defer m.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			if n := m.EvictIdle(m.now()); n > 0 {
				slog.Debug("Idle sweep", "evicted", n, "live", m.Len())
			}
		}
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close stops the idle sweeper, then flushes and closes every session.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.stop)
		m.wg.Wait()
	})

	m.mu.Lock()
	entries := m.entries
	m.entries = make(map[string]*entry)
	m.mu.Unlock()

	for _, e := range entries {
		e.persister.Close()
		m.opts.Metrics.SessionEnded(EndShutdown)
	}
}
