// Package store provides storage backends for AibouCheck.
//
// This file implements the MongoDB-backed store: one document per
// user, merged on write so partial updates never clobber existing
// fields.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/harulab/AibouCheck/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo naming and timeout constants.
const (
	DefaultMongoDatabase  = "aiboucheck"
	usersCollection       = "user_records"
	checksCollection      = "check_records"
	defaultMongoOpTimeout = 10 * time.Second
)

type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
	checks *mongo.Collection
}

// NewMongoStore connects to MongoDB using the configured URI.
func NewMongoStore(opts ...Option) (*MongoStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewMongoStore invoked", "URI_set", cfg.DSN != "")

	if cfg.DSN == "" {
		slog.Error("MongoStore URI not set")
		return nil, fmt.Errorf("mongodb URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultMongoOpTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DSN))
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		slog.Error("MongoDB ping failed", "error", err)
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	db := client.Database(DefaultMongoDatabase)
	slog.Debug("MongoStore connected", "database", DefaultMongoDatabase)
	return &MongoStore{
		client: client,
		users:  db.Collection(usersCollection),
		checks: db.Collection(checksCollection),
	}, nil
}

func (s *MongoStore) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), defaultMongoOpTimeout)
}

// GetUser retrieves the per-user document, or nil when none exists.
func (s *MongoStore) GetUser(userID string) (*models.UserRecord, error) {
	ctx, cancel := s.opCtx()
	defer cancel()

	var rec models.UserRecord
	err := s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		slog.Debug("MongoStore GetUser not found", "userID", userID)
		return nil, nil
	}
	if err != nil {
		slog.Error("MongoStore GetUser failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to query user %s: %w", userID, err)
	}
	return &rec, nil
}

// MergeUser upserts only the non-empty fields, matching the merge-on-
// set semantics of a document store. seen_guide can only be raised.
func (s *MongoStore) MergeUser(rec models.UserRecord) error {
	ctx, cancel := s.opCtx()
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	if rec.Tone != "" {
		set["tone"] = string(rec.Tone)
	}
	if rec.SeenGuide {
		set["seen_guide"] = true
	}
	if rec.Answers.PlayTime != "" {
		set["answers.play_time"] = rec.Answers.PlayTime
	}
	if rec.Answers.Condition != "" {
		set["answers.condition"] = rec.Answers.Condition
	}
	if rec.Answers.Sleep != "" {
		set["answers.sleep"] = rec.Answers.Sleep
	}
	if rec.Answers.Mood != "" {
		set["answers.mood"] = rec.Answers.Mood
	}

	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": rec.UserID},
		bson.M{"$set": set},
		options.Update().SetUpsert(true))
	if err != nil {
		slog.Error("MongoStore MergeUser failed", "error", err, "userID", rec.UserID)
		return fmt.Errorf("failed to merge user %s: %w", rec.UserID, err)
	}
	slog.Debug("MongoStore MergeUser succeeded", "userID", rec.UserID)
	return nil
}

// AddCheckRecord appends one completed check-in to the log collection.
func (s *MongoStore) AddCheckRecord(rec models.CheckRecord) error {
	ctx, cancel := s.opCtx()
	defer cancel()

	if _, err := s.checks.InsertOne(ctx, rec); err != nil {
		slog.Error("MongoStore AddCheckRecord failed", "error", err, "userID", rec.UserID)
		return fmt.Errorf("failed to insert check record for %s: %w", rec.UserID, err)
	}
	slog.Debug("MongoStore AddCheckRecord succeeded", "userID", rec.UserID, "id", rec.ID)
	return nil
}

// GetCheckRecords returns the check log for one user, oldest first.
func (s *MongoStore) GetCheckRecords(userID string) ([]models.CheckRecord, error) {
	ctx, cancel := s.opCtx()
	defer cancel()

	cursor, err := s.checks.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.M{"time": 1}))
	if err != nil {
		slog.Error("MongoStore GetCheckRecords query failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to query check records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.CheckRecord
	if err := cursor.All(ctx, &records); err != nil {
		slog.Error("MongoStore GetCheckRecords decode failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("failed to decode check records: %w", err)
	}
	slog.Debug("MongoStore GetCheckRecords succeeded", "userID", userID, "count", len(records))
	return records, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := s.opCtx()
	defer cancel()
	slog.Debug("Disconnecting from MongoDB")
	return s.client.Disconnect(ctx)
}
