package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/milavdabgar/npni-flutter/app/models"
)

type fakeProjectStore struct {
	items      []models.Project
	failInsert bool
}

func (f *fakeProjectStore) DeleteAll(ctx context.Context) error {
	f.items = nil
	return nil
}

func (f *fakeProjectStore) InsertMany(ctx context.Context, projects []models.Project) error {
	if f.failInsert {
		return errors.New("write failed")
	}
	f.items = append(f.items, projects...)
	return nil
}

type fakeAccountStore struct {
	items      []models.User
	failInsert bool
}

func (f *fakeAccountStore) DeleteByRole(ctx context.Context, role string) error {
	kept := f.items[:0]
	for _, u := range f.items {
		if u.Role != role {
			kept = append(kept, u)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeAccountStore) InsertMany(ctx context.Context, users []models.User) error {
	if f.failInsert {
		return errors.New("duplicate key")
	}
	f.items = append(f.items, users...)
	return nil
}

// fakeTxn snapshots both stores and restores them when fn fails, matching
// the all-or-nothing contract of the real transaction runner.
type fakeTxn struct {
	projects *fakeProjectStore
	accounts *fakeAccountStore
}

func (f *fakeTxn) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	savedProjects := append([]models.Project(nil), f.projects.items...)
	savedAccounts := append([]models.User(nil), f.accounts.items...)
	if err := fn(ctx); err != nil {
		f.projects.items = savedProjects
		f.accounts.items = savedAccounts
		return err
	}
	return nil
}

func newTestEngine() (*Engine, *fakeProjectStore, *fakeAccountStore) {
	projects := &fakeProjectStore{}
	accounts := &fakeAccountStore{}
	engine := NewEngine(DefaultSchema("NPNI2025"), projects, accounts, &fakeTxn{projects, accounts})
	// MinCost keeps the bulk-hash step fast under test
	engine.hashCost = bcrypt.MinCost
	return engine, projects, accounts
}

func rosterCSV(rows ...string) []byte {
	header := "Project Title,Select Branch,First Team Member Name  (For Certificate Printing),Mobile number any one team member"
	return []byte(header + "\n" + strings.Join(rows, "\n"))
}

func TestImportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("N rows yield N projects and N paired accounts", func(t *testing.T) {
		engine, projects, accounts := newTestEngine()

		result, err := engine.ImportCSV(ctx, rosterCSV(
			"Smart Bin,ICT,Asha Patel,9876543210",
			"Solar Dryer,EC,Ravi Shah,9123456780",
			"Krishi Drone,ME,Nidhi Joshi,9012345678",
		))
		require.NoError(t, err)
		assert.Equal(t, 3, result.Imported)
		assert.Equal(t, 0, result.Skipped)
		assert.NotEmpty(t, result.BatchID)

		require.Len(t, projects.items, 3)
		require.Len(t, accounts.items, 3)
		for i := range projects.items {
			assert.Equal(t, projects.items[i].TeamID, accounts.items[i].Email)
			assert.Equal(t, models.RoleTeam, accounts.items[i].Role)
		}
		assert.Equal(t, "NPNI2025-001", projects.items[0].TeamID)
		assert.Equal(t, "NPNI2025-002", projects.items[1].TeamID)
		assert.Equal(t, "NPNI2025-003", projects.items[2].TeamID)
		assert.Equal(t, "Asha Patel", accounts.items[0].Name)
	})

	t.Run("Re-import of the same file reproduces team IDs", func(t *testing.T) {
		engine, projects, _ := newTestEngine()
		data := rosterCSV(
			"Smart Bin,ICT,Asha Patel,9876543210",
			"Solar Dryer,EC,Ravi Shah,9123456780",
		)

		_, err := engine.ImportCSV(ctx, data)
		require.NoError(t, err)
		first := []string{projects.items[0].TeamID, projects.items[1].TeamID}

		_, err = engine.ImportCSV(ctx, data)
		require.NoError(t, err)
		second := []string{projects.items[0].TeamID, projects.items[1].TeamID}

		assert.Equal(t, first, second)
	})

	t.Run("Second import fully replaces the first", func(t *testing.T) {
		engine, projects, accounts := newTestEngine()

		_, err := engine.ImportCSV(ctx, rosterCSV(
			"Smart Bin,ICT,Asha Patel,9876543210",
			"Solar Dryer,EC,Ravi Shah,9123456780",
			"Krishi Drone,ME,Nidhi Joshi,9012345678",
		))
		require.NoError(t, err)

		result, err := engine.ImportCSV(ctx, rosterCSV(
			"Water ATM,CE,Kiran Dave,9988776655",
		))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)

		require.Len(t, projects.items, 1)
		require.Len(t, accounts.items, 1)
		assert.Equal(t, "Water ATM", projects.items[0].Title)
		assert.Equal(t, "NPNI2025-001", accounts.items[0].Email)
	})

	t.Run("Admin and jury accounts survive an import", func(t *testing.T) {
		engine, _, accounts := newTestEngine()
		accounts.items = []models.User{
			{Email: "admin@gppalanpur.ac.in", Role: models.RoleAdmin},
			{Email: "jury1@gppalanpur.ac.in", Role: models.RoleJury},
			{Email: "NPNI2024-001", Role: models.RoleTeam},
		}

		_, err := engine.ImportCSV(ctx, rosterCSV("Smart Bin,ICT,Asha Patel,9876543210"))
		require.NoError(t, err)

		emails := make([]string, 0, len(accounts.items))
		for _, u := range accounts.items {
			emails = append(emails, u.Email)
		}
		assert.ElementsMatch(t, []string{
			"admin@gppalanpur.ac.in", "jury1@gppalanpur.ac.in", "NPNI2025-001",
		}, emails)
	})

	t.Run("Password is a verifiable hash, never the plaintext", func(t *testing.T) {
		engine, _, accounts := newTestEngine()

		_, err := engine.ImportCSV(ctx, rosterCSV("Smart Bin,ICT,Asha Patel,9876543210"))
		require.NoError(t, err)

		account := accounts.items[0]
		assert.NotEqual(t, "9876543210", account.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(account.Password), []byte("9876543210")))
		assert.Error(t, bcrypt.CompareHashAndPassword(
			[]byte(account.Password), []byte("0123456789")))
	})

	t.Run("Account name falls back to placeholder", func(t *testing.T) {
		engine, _, accounts := newTestEngine()

		_, err := engine.ImportCSV(ctx, rosterCSV("Smart Bin,ICT,Na,9876543210"))
		require.NoError(t, err)

		assert.Equal(t, placeholderName, accounts.items[0].Name)
	})

	t.Run("Header-only file is an input error and leaves stores untouched", func(t *testing.T) {
		engine, projects, accounts := newTestEngine()
		projects.items = []models.Project{{TeamID: "NPNI2025-001", Title: "Existing"}}
		accounts.items = []models.User{{Email: "NPNI2025-001", Role: models.RoleTeam}}

		_, err := engine.ImportCSV(ctx, rosterCSV())
		assert.ErrorIs(t, err, ErrNoUsableRows)
		assert.True(t, IsInputError(err))

		assert.Len(t, projects.items, 1)
		assert.Len(t, accounts.items, 1)
	})

	t.Run("Empty upload is an input error", func(t *testing.T) {
		engine, _, _ := newTestEngine()

		_, err := engine.ImportCSV(ctx, nil)
		assert.ErrorIs(t, err, ErrNoFile)

		_, err = engine.ImportCSV(ctx, []byte("\n\n"))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("Alien header set yields no usable rows", func(t *testing.T) {
		engine, _, _ := newTestEngine()

		_, err := engine.ImportCSV(ctx, []byte("foo,bar\n1,2\n3,4"))
		assert.ErrorIs(t, err, ErrNoUsableRows)
	})

	t.Run("Account insert failure aborts the whole import", func(t *testing.T) {
		engine, projects, accounts := newTestEngine()
		projects.items = []models.Project{{TeamID: "NPNI2025-001", Title: "Existing"}}
		accounts.items = []models.User{{Email: "NPNI2025-001", Role: models.RoleTeam}}
		accounts.failInsert = true

		_, err := engine.ImportCSV(ctx, rosterCSV("Smart Bin,ICT,Asha Patel,9876543210"))
		var storeErr *StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.False(t, IsInputError(err))

		// Transaction rolled back: previous generation still intact
		require.Len(t, projects.items, 1)
		assert.Equal(t, "Existing", projects.items[0].Title)
		require.Len(t, accounts.items, 1)
	})

	t.Run("Project insert failure aborts the whole import", func(t *testing.T) {
		engine, projects, accounts := newTestEngine()
		projects.failInsert = true

		_, err := engine.ImportCSV(ctx, rosterCSV("Smart Bin,ICT,Asha Patel,9876543210"))
		var storeErr *StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "insert projects", storeErr.Op)

		assert.Empty(t, projects.items)
		assert.Empty(t, accounts.items)
	})

	t.Run("Malformed CSV is an input error", func(t *testing.T) {
		engine, _, _ := newTestEngine()

		_, err := engine.ImportCSV(ctx, []byte("Project Title\n\"unclosed"))
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.True(t, IsInputError(err))
	})
}

func TestImportCSVSkipsUnmappableRows(t *testing.T) {
	engine, projects, _ := newTestEngine()

	// Second row has values only in columns the schema does not know
	data := []byte("Project Title,Select Branch,Favourite Colour\n" +
		"Smart Bin,ICT,\n" +
		",,blue\n" +
		"Solar Dryer,EC,\n")

	result, err := engine.ImportCSV(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	require.Len(t, projects.items, 2)
	// Team IDs come from the row's position in the file, so a skipped
	// row leaves a gap rather than renumbering those after it
	assert.Equal(t, "NPNI2025-001", projects.items[0].TeamID)
	assert.Equal(t, "NPNI2025-003", projects.items[1].TeamID)
}
