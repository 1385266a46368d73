// Package sqlitestore keeps VK sessions in a local SQLite database, for CLI
// use where no shared cache is available.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	vkerrors "github.com/jrsteele09/go-vk-client/internal/errors"
	"github.com/jrsteele09/go-vk-client/sessions"
	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	key        TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	expires_at INTEGER
)`

var _ sessions.Store = (*Store)(nil)

// Store is a SQLite-backed session store. Expired rows are treated as absent
// and removed lazily.
type Store struct {
	db      *sql.DB
	path    string
	nowTime func() time.Time
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// NewStore opens (or creates) sessions.db in dataDir.
func NewStore(dataDir string, options ...StoreOption) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "sessions.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s := &Store{
		db:      db,
		path:    dbPath,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the session under key, or an empty session when it is missing or expired.
func (s *Store) Get(ctx context.Context, key string) (*sessions.Session, error) {
	if key == "" {
		return nil, vkerrors.ErrEmptySessionKey
	}

	var (
		data      string
		expiresAt sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `SELECT data, expires_at FROM sessions WHERE key = ?`, key).Scan(&data, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &sessions.Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	if expiresAt.Valid && s.nowTime().UnixMilli() >= expiresAt.Int64 {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE key = ? AND expires_at = ?`, key, expiresAt.Int64); err != nil {
			return nil, fmt.Errorf("removing expired session: %w", err)
		}
		return &sessions.Session{}, nil
	}

	var session sessions.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &session, nil
}

// Set upserts the session under key. A ttl of zero or less stores it without expiry.
func (s *Store) Set(ctx context.Context, key string, session *sessions.Session, ttl time.Duration) error {
	if key == "" {
		return vkerrors.ErrEmptySessionKey
	}
	if session == nil {
		return vkerrors.ErrNilSession
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	var expiresAt any
	if ttl > 0 {
		expiresAt = s.nowTime().Add(ttl).UnixMilli()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (key, data, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at`,
		key, string(data), expiresAt)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Delete removes the session stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return vkerrors.ErrEmptySessionKey
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes every expired row.
func (s *Store) DeleteExpiredSessions(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= ?`, s.nowTime().UnixMilli()); err != nil {
		return fmt.Errorf("pruning sessions: %w", err)
	}
	return nil
}
