package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	UsersCollection       = "users"
	ProjectsCollection    = "projects"
	EvaluationsCollection = "evaluations"
)

// ErrDuplicateKey is returned when an insert violates a unique index.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrNotFound is returned when a single-document lookup matches nothing.
var ErrNotFound = errors.New("not found")

// collectionIndexes declares the unique indexes the application relies
// on: one account per email, one project per team ID, and at most one
// evaluation per (project, jury, round) triple. The last one is what
// makes duplicate evaluation submission an atomic conditional write
// instead of a racy check-then-insert.
func collectionIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		UsersCollection: {{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		ProjectsCollection: {{
			Keys:    bson.D{{Key: "teamId", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		EvaluationsCollection: {{
			Keys: bson.D{
				{Key: "projectId", Value: 1},
				{Key: "juryId", Value: 1},
				{Key: "round", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		}},
	}
}

// EnsureIndexes creates the indexes declared by collectionIndexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for name, indexes := range collectionIndexes() {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return err
		}
	}
	return nil
}

// wrapErr maps driver errors onto the package sentinels so callers can
// branch without importing the mongo driver. Duplicate-key errors keep the
// driver's message, which names the colliding key.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		if msg := writeErrorMessage(err); msg != "" {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, msg)
		}
		return ErrDuplicateKey
	}
	return err
}

// writeErrorMessage digs the first write-error message out of single and
// bulk write failures.
func writeErrorMessage(err error) string {
	var we mongo.WriteException
	if errors.As(err, &we) && len(we.WriteErrors) > 0 {
		return we.WriteErrors[0].Message
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) && len(bwe.WriteErrors) > 0 {
		return bwe.WriteErrors[0].Message
	}
	return ""
}
