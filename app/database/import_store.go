package database

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/milavdabgar/npni-flutter/app/models"
)

// ImportStores adapts the Mongo collections to the importer's store
// interfaces and runs the import's replace phase as a session transaction.
type ImportStores struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewImportStores(client *mongo.Client, db *mongo.Database) *ImportStores {
	return &ImportStores{client: client, db: db}
}

// Projects returns the project store view.
func (s *ImportStores) Projects() *importProjectStore { return &importProjectStore{db: s.db} }

// Accounts returns the account store view.
func (s *ImportStores) Accounts() *importAccountStore { return &importAccountStore{db: s.db} }

type importProjectStore struct{ db *mongo.Database }

func (s *importProjectStore) DeleteAll(ctx context.Context) error {
	return DeleteAllProjects(ctx, s.db)
}

func (s *importProjectStore) InsertMany(ctx context.Context, projects []models.Project) error {
	return InsertProjects(ctx, s.db, projects)
}

type importAccountStore struct{ db *mongo.Database }

func (s *importAccountStore) DeleteByRole(ctx context.Context, role string) error {
	return DeleteUsersByRole(ctx, s.db, role)
}

func (s *importAccountStore) InsertMany(ctx context.Context, users []models.User) error {
	return InsertUsers(ctx, s.db, users)
}

// WithTransaction runs fn inside a Mongo multi-document transaction so the
// delete/insert sequence of an import is all-or-nothing. Transactions need
// a replica set; on a standalone deployment the driver rejects them, and
// the import falls back to sequential writes — still serialized by the
// engine's import lock, just without crash atomicity.
func (s *ImportStores) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		log.Printf("import: sessions unavailable, running without transaction: %v", err)
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && isTransactionUnsupported(err) {
		log.Printf("import: transactions unsupported on this deployment, running without: %v", err)
		return fn(ctx)
	}
	return err
}

// isTransactionUnsupported detects the IllegalOperation error a standalone
// mongod returns for transaction numbers.
func isTransactionUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 20 || cmdErr.Name == "IllegalOperation"
	}
	return false
}
