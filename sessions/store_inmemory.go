package sessions

import (
	"context"
	"sync"
	"time"

	vkerrors "github.com/jrsteele09/go-vk-client/internal/errors"
)

var _ Store = (*InMemoryStore)(nil)

type storedSession struct {
	session   *Session
	expiresAt time.Time // zero means no expiry
}

// InMemoryStore is a thread-safe in-memory implementation of the Store interface
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]storedSession
	nowTime  func() time.Time
}

// InMemoryStoreOption defines a function type to modify the InMemoryStore instance.
type InMemoryStoreOption func(*InMemoryStore)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) InMemoryStoreOption {
	return func(s *InMemoryStore) {
		s.nowTime = nowFunc
	}
}

// NewInMemoryStore creates a new in-memory session store
func NewInMemoryStore(options ...InMemoryStoreOption) *InMemoryStore {
	s := &InMemoryStore{
		sessions: make(map[string]storedSession),
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Get retrieves a copy of the session stored under key
func (s *InMemoryStore) Get(_ context.Context, key string) (*Session, error) {
	if key == "" {
		return nil, vkerrors.ErrEmptySessionKey
	}

	s.mu.RLock()
	stored, ok := s.sessions[key]
	s.mu.RUnlock()

	if !ok {
		return &Session{}, nil
	}
	if !stored.expiresAt.IsZero() && !s.nowTime().Before(stored.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if current, ok := s.sessions[key]; ok && current.expiresAt.Equal(stored.expiresAt) {
			delete(s.sessions, key)
		}
		s.mu.Unlock()
		return &Session{}, nil
	}

	return stored.session.Clone(), nil
}

// Set stores a copy of session under key
func (s *InMemoryStore) Set(_ context.Context, key string, session *Session, ttl time.Duration) error {
	if key == "" {
		return vkerrors.ErrEmptySessionKey
	}
	if session == nil {
		return vkerrors.ErrNilSession
	}

	stored := storedSession{session: session.Clone()}
	if ttl > 0 {
		stored.expiresAt = s.nowTime().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = stored
	return nil
}

// Delete removes the session stored under key
func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return vkerrors.ErrEmptySessionKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}

// DeleteExpiredSessions removes every session whose TTL has elapsed
func (s *InMemoryStore) DeleteExpiredSessions() {
	now := s.nowTime()

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, stored := range s.sessions {
		if !stored.expiresAt.IsZero() && !now.Before(stored.expiresAt) {
			delete(s.sessions, key)
		}
	}
}
