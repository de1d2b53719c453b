package importer

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/milavdabgar/npni-flutter/app/models"
)

// placeholderName is used as the team account's display name when every
// member column of the row was blank or "na".
const placeholderName = "Team Member"

// ProjectStore is the slice of project persistence the engine needs.
type ProjectStore interface {
	DeleteAll(ctx context.Context) error
	InsertMany(ctx context.Context, projects []models.Project) error
}

// AccountStore is the slice of account persistence the engine needs. The
// engine only ever deletes by role, so admin and jury accounts cannot be
// touched by an import.
type AccountStore interface {
	DeleteByRole(ctx context.Context, role string) error
	InsertMany(ctx context.Context, users []models.User) error
}

// TxnRunner executes fn as one atomic unit. Store calls made with the
// context passed to fn belong to that unit: either all of them are applied
// or none are.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Result reports a completed import.
type Result struct {
	BatchID  string `json:"batch_id"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// Engine turns an uploaded roster CSV into the new generation of projects
// and team accounts. Imports are destructive and non-incremental: each run
// replaces every project and every team-role account.
type Engine struct {
	mu       sync.Mutex
	schema   Schema
	projects ProjectStore
	accounts AccountStore
	txn      TxnRunner
	hashCost int
}

func NewEngine(schema Schema, projects ProjectStore, accounts AccountStore, txn TxnRunner) *Engine {
	return &Engine{
		schema:   schema,
		projects: projects,
		accounts: accounts,
		txn:      txn,
		// bcrypt at the interactive cost would stall the request for
		// minutes on a few hundred rows.
		hashCost: bcrypt.DefaultCost,
	}
}

// ImportCSV runs the full import pipeline: parse, normalize, derive
// accounts, then replace the stores in one transaction. Before the
// transaction starts the stores are untouched, so every input error leaves
// existing data exactly as it was.
func (e *Engine) ImportCSV(ctx context.Context, data []byte) (*Result, error) {
	if len(data) == 0 {
		return nil, ErrNoFile
	}

	reader, err := NewReader(data)
	if err != nil {
		return nil, err
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var (
		projects []models.Project
		skipped  int
	)
	for _, row := range rows {
		project, err := e.schema.Normalize(row)
		if err != nil {
			log.Printf("import: skipping %v", err)
			skipped++
			continue
		}
		projects = append(projects, *project)
	}
	if len(projects) == 0 {
		return nil, ErrNoUsableRows
	}

	// Hash before any store write: credential derivation is the CPU-heavy
	// step and must not sit inside the transaction window.
	accounts, err := e.deriveAccounts(projects)
	if err != nil {
		return nil, err
	}

	// Serialize imports so two concurrent uploads can never interleave
	// their delete and insert phases.
	e.mu.Lock()
	defer e.mu.Unlock()

	// A client disconnect must not abort the replace once the destructive
	// phase has started; up to this point nothing has been written.
	ctx = context.WithoutCancel(ctx)

	err = e.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := e.accounts.DeleteByRole(ctx, models.RoleTeam); err != nil {
			return &StoreError{Op: "delete team accounts", Err: err}
		}
		if err := e.projects.DeleteAll(ctx); err != nil {
			return &StoreError{Op: "delete projects", Err: err}
		}
		// Accounts go in first so a team login resolves to its project
		// the moment the import is visible.
		if err := e.accounts.InsertMany(ctx, accounts); err != nil {
			return &StoreError{Op: "insert accounts", Err: err}
		}
		if err := e.projects.InsertMany(ctx, projects); err != nil {
			return &StoreError{Op: "insert projects", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		BatchID:  uuid.NewString(),
		Imported: len(projects),
		Skipped:  skipped,
	}
	log.Printf("import %s: %d projects imported, %d rows skipped",
		result.BatchID, result.Imported, result.Skipped)
	return result, nil
}

// deriveAccounts builds one team-role account per candidate project:
// email is the team ID, the password is a bcrypt hash of the contact
// number exactly as it appears in the sheet, and the display name is the
// first listed member.
func (e *Engine) deriveAccounts(projects []models.Project) ([]models.User, error) {
	accounts := make([]models.User, 0, len(projects))
	for _, project := range projects {
		hash, err := bcrypt.GenerateFromPassword([]byte(project.ContactNumber), e.hashCost)
		if err != nil {
			return nil, fmt.Errorf("hashing credentials for %s: %w", project.TeamID, err)
		}
		name := placeholderName
		if len(project.TeamMembers) > 0 {
			name = project.TeamMembers[0]
		}
		accounts = append(accounts, models.User{
			Email:    project.TeamID,
			Password: string(hash),
			Role:     models.RoleTeam,
			Name:     name,
		})
	}
	return accounts, nil
}
