// Package store provides storage backends for AibouCheck.
//
// This file implements the PostgreSQL-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/harulab/AibouCheck/internal/models"
	_ "github.com/lib/pq"
)

// Database connection pool configuration constants.
const (
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 25
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	slog.Debug("Running Postgres migrations")
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")

	return &PostgresStore{db: db}, nil
}

// GetUser retrieves the per-user record, or nil when none exists.
func (s *PostgresStore) GetUser(userID string) (*models.UserRecord, error) {
	query := `SELECT user_id, tone, seen_guide, answer_play_time, answer_condition, answer_sleep, answer_mood, updated_at
			  FROM user_records WHERE user_id = $1`

	var rec models.UserRecord
	err := s.db.QueryRow(query, userID).Scan(
		&rec.UserID, &rec.Tone, &rec.SeenGuide,
		&rec.Answers.PlayTime, &rec.Answers.Condition, &rec.Answers.Sleep, &rec.Answers.Mood,
		&rec.UpdatedAt)
	if err == sql.ErrNoRows {
		slog.Debug("PostgresStore GetUser not found", "userID", userID)
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore GetUser failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to query user %s: %w", userID, err)
	}
	return &rec, nil
}

// MergeUser upserts the record, keeping stored values for any empty
// incoming field. seen_guide can only be raised.
func (s *PostgresStore) MergeUser(rec models.UserRecord) error {
	query := `
		INSERT INTO user_records (user_id, tone, seen_guide, answer_play_time, answer_condition, answer_sleep, answer_mood, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT(user_id) DO UPDATE SET
			tone             = CASE WHEN excluded.tone != '' THEN excluded.tone ELSE user_records.tone END,
			seen_guide       = user_records.seen_guide OR excluded.seen_guide,
			answer_play_time = CASE WHEN excluded.answer_play_time != '' THEN excluded.answer_play_time ELSE user_records.answer_play_time END,
			answer_condition = CASE WHEN excluded.answer_condition != '' THEN excluded.answer_condition ELSE user_records.answer_condition END,
			answer_sleep     = CASE WHEN excluded.answer_sleep != '' THEN excluded.answer_sleep ELSE user_records.answer_sleep END,
			answer_mood      = CASE WHEN excluded.answer_mood != '' THEN excluded.answer_mood ELSE user_records.answer_mood END,
			updated_at       = excluded.updated_at`

	_, err := s.db.Exec(query, rec.UserID, string(rec.Tone), rec.SeenGuide,
		rec.Answers.PlayTime, rec.Answers.Condition, rec.Answers.Sleep, rec.Answers.Mood, time.Now())
	if err != nil {
		slog.Error("PostgresStore MergeUser failed", "error", err, "userID", rec.UserID)
		return fmt.Errorf("failed to merge user %s: %w", rec.UserID, err)
	}
	slog.Debug("PostgresStore MergeUser succeeded", "userID", rec.UserID)
	return nil
}

// AddCheckRecord appends one completed check-in to the log.
func (s *PostgresStore) AddCheckRecord(rec models.CheckRecord) error {
	query := `INSERT INTO check_records (id, user_id, tone, answer_play_time, answer_condition, answer_sleep, answer_mood, reply, time)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.Exec(query, rec.ID, rec.UserID, string(rec.Tone),
		rec.Answers.PlayTime, rec.Answers.Condition, rec.Answers.Sleep, rec.Answers.Mood,
		rec.Reply, rec.Time)
	if err != nil {
		slog.Error("PostgresStore AddCheckRecord failed", "error", err, "userID", rec.UserID)
		return fmt.Errorf("failed to insert check record for %s: %w", rec.UserID, err)
	}
	slog.Debug("PostgresStore AddCheckRecord succeeded", "userID", rec.UserID, "id", rec.ID)
	return nil
}

// GetCheckRecords returns the check log for one user, oldest first.
func (s *PostgresStore) GetCheckRecords(userID string) ([]models.CheckRecord, error) {
	query := `SELECT id, user_id, tone, answer_play_time, answer_condition, answer_sleep, answer_mood, reply, time
			  FROM check_records WHERE user_id = $1 ORDER BY time`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		slog.Error("PostgresStore GetCheckRecords query failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to query check records: %w", err)
	}
	defer rows.Close()

	var records []models.CheckRecord
	for rows.Next() {
		var rec models.CheckRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Tone,
			&rec.Answers.PlayTime, &rec.Answers.Condition, &rec.Answers.Sleep, &rec.Answers.Mood,
			&rec.Reply, &rec.Time); err != nil {
			slog.Error("PostgresStore GetCheckRecords scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan check record row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		slog.Error("PostgresStore GetCheckRecords rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate check record rows: %w", err)
	}
	slog.Debug("PostgresStore GetCheckRecords succeeded", "userID", userID, "count", len(records))
	return records, nil
}

// Close closes the Postgres database connection.
func (s *PostgresStore) Close() error {
	slog.Debug("Closing Postgres database connection")
	return s.db.Close()
}
