// Package store provides storage backends for AibouCheck.
//
// A Store keeps one durable document per user (tone, seen_guide, the
// four latest answers) plus an append-only log of completed check-ins.
// Backends: in-memory, SQLite, PostgreSQL and MongoDB.
package store

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/harulab/AibouCheck/internal/models"
)

// Store is the per-user document and check-log contract. GetUser
// returns nil without error when the user has no record yet. MergeUser
// merges non-destructively: empty fields never clobber stored values
// and seen_guide can only be raised.
type Store interface {
	GetUser(userID string) (*models.UserRecord, error)
	MergeUser(rec models.UserRecord) error
	AddCheckRecord(rec models.CheckRecord) error
	GetCheckRecords(userID string) ([]models.CheckRecord, error)
	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	DSN string
}

// Option defines a configuration option for a store backend.
type Option func(*Opts)

// WithSQLiteDSN sets the SQLite database file path.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithPostgresDSN sets the PostgreSQL connection string.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithMongoURI sets the MongoDB connection URI.
func WithMongoURI(uri string) Option {
	return func(o *Opts) { o.DSN = uri }
}

// DetectDSNType classifies a DSN as "postgres", "mongodb" or "sqlite"
// (file paths default to sqlite).
func DetectDSNType(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		return "postgres"
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		return "mongodb"
	default:
		return "sqlite"
	}
}

// mergeUserRecord applies the non-destructive merge rules shared by
// every backend's read-modify-write path.
func mergeUserRecord(existing *models.UserRecord, incoming models.UserRecord, now time.Time) models.UserRecord {
	merged := incoming
	if existing != nil {
		merged = *existing
		if incoming.Tone != "" {
			merged.Tone = incoming.Tone
		}
		if incoming.SeenGuide {
			merged.SeenGuide = true
		}
		if incoming.Answers.PlayTime != "" {
			merged.Answers.PlayTime = incoming.Answers.PlayTime
		}
		if incoming.Answers.Condition != "" {
			merged.Answers.Condition = incoming.Answers.Condition
		}
		if incoming.Answers.Sleep != "" {
			merged.Answers.Sleep = incoming.Answers.Sleep
		}
		if incoming.Answers.Mood != "" {
			merged.Answers.Mood = incoming.Answers.Mood
		}
	}
	merged.UpdatedAt = now
	return merged
}

// InMemoryStore keeps all records in process memory. Used in tests and
// when no DSN is configured.
type InMemoryStore struct {
	mu     sync.RWMutex
	users  map[string]models.UserRecord
	checks map[string][]models.CheckRecord
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	slog.Debug("Creating in-memory store")
	return &InMemoryStore{
		users:  make(map[string]models.UserRecord),
		checks: make(map[string][]models.CheckRecord),
	}
}

func (s *InMemoryStore) GetUser(userID string) (*models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *InMemoryStore) MergeUser(rec models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var existing *models.UserRecord
	if cur, ok := s.users[rec.UserID]; ok {
		existing = &cur
	}
	s.users[rec.UserID] = mergeUserRecord(existing, rec, time.Now())
	return nil
}

func (s *InMemoryStore) AddCheckRecord(rec models.CheckRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks[rec.UserID] = append(s.checks[rec.UserID], rec)
	return nil
}

func (s *InMemoryStore) GetCheckRecords(userID string) ([]models.CheckRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]models.CheckRecord, len(s.checks[userID]))
	copy(records, s.checks[userID])
	return records, nil
}

func (s *InMemoryStore) Close() error {
	return nil
}
