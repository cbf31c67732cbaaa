package session

import (
	"context"
	"sync"
	"time"
)

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithCleanupInterval sets how often expired sessions are removed by the
// background janitor. Zero disables the janitor.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(m *MemoryStore) {
		m.cleanupInterval = d
	}
}

// MemoryStore keeps sessions in process memory.
// Sessions are copied on the way in and out, so callers never share state.
type MemoryStore struct {
	items           map[string]*Session
	done            chan struct{}
	cleanupInterval time.Duration
	mu              sync.Mutex
	closed          bool
}

// NewMemoryStore creates an in-memory store.
//
//	store := session.NewMemoryStore(session.WithCleanupInterval(30 * time.Second))
//	defer store.Close()
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		items:           make(map[string]*Session),
		done:            make(chan struct{}),
		cleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.cleanupInterval > 0 {
		go m.janitor()
	}

	return m
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	s, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.IsExpired() {
		delete(m.items, id)
		return nil, ErrExpired
	}

	return s.Clone(), nil
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	if s == nil || s.ID == "" {
		return ErrInvalidID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	stored := s.Clone()
	stored.dirty = false
	stored.isNew = false
	m.items[s.ID] = stored
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	delete(m.items, id)
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the janitor. Close is idempotent.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	close(m.done)
	return nil
}

// janitor periodically removes expired sessions.
func (m *MemoryStore) janitor() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

func (m *MemoryStore) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, s := range m.items {
		if now.After(s.ExpiresAt) {
			delete(m.items, id)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
