package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kopilka/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "kopilka.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newTestTransaction(owner string, typ core.TransactionType, category string, amount float64, date core.Date) core.Transaction {
	now := time.Now().UTC()
	return core.Transaction{
		ID:          uuid.NewString(),
		Amount:      decimal.NewFromFloat(amount),
		Type:        typ,
		Category:    category,
		Description: "test " + category,
		Date:        date,
		OwnerID:     owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestRepositoryCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx := newTestTransaction("user-1", core.Expense, "Food", 123.45, core.NewDate(2025, 5, 10))
	tx.Tags = []string{"lunch", "work"}
	tx.FamilyMemberID = "member-1"

	created, err := repo.Create(ctx, tx)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, created.ID)

	got, err := repo.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(tx.Amount))
	assert.Equal(t, core.Expense, got.Type)
	assert.Equal(t, "Food", got.Category)
	assert.Equal(t, "2025-05-10", got.Date.String())
	assert.Equal(t, []string{"lunch", "work"}, got.Tags)
	assert.Equal(t, "member-1", got.FamilyMemberID)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryListFiltersAndOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := newTestTransaction("user-1", core.Expense, "Rent", 500, core.NewDate(2025, 4, 1))
	newer := newTestTransaction("user-1", core.Income, "Salary", 2000, core.NewDate(2025, 4, 20))
	other := newTestTransaction("user-2", core.Expense, "Rent", 700, core.NewDate(2025, 4, 2))
	for _, tx := range []core.Transaction{older, newer, other} {
		_, err := repo.Create(ctx, tx)
		require.NoError(t, err)
	}

	// Owner scoping and date-descending order.
	got, err := repo.List(ctx, TransactionFilter{OwnerID: "user-1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)

	// Type filter; "all" means no filtering.
	got, err = repo.List(ctx, TransactionFilter{OwnerID: "user-1", Type: core.Income})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, newer.ID, got[0].ID)

	got, err = repo.List(ctx, TransactionFilter{OwnerID: "user-1", Type: "all"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Free-text search spans description and category, case-insensitive.
	got, err = repo.List(ctx, TransactionFilter{OwnerID: "user-1", Search: "rent"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, older.ID, got[0].ID)
}

func TestRepositoryHalfOpenWindow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	firstOfApril := newTestTransaction("u", core.Expense, "a", 1, core.NewDate(2025, 4, 1))
	endOfApril := newTestTransaction("u", core.Expense, "b", 2, core.NewDate(2025, 4, 30))
	firstOfMay := newTestTransaction("u", core.Expense, "c", 3, core.NewDate(2025, 5, 1))
	for _, tx := range []core.Transaction{firstOfApril, endOfApril, firstOfMay} {
		_, err := repo.Create(ctx, tx)
		require.NoError(t, err)
	}

	// [2025-04-01, 2025-05-01): includes the first day of the month,
	// excludes the first day of the next.
	got, err := repo.List(ctx, TransactionFilter{
		OwnerID:    "u",
		DateFrom:   core.NewDate(2025, 4, 1),
		DateBefore: core.NewDate(2025, 5, 1),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, tx := range got {
		assert.NotEqual(t, firstOfMay.ID, tx.ID)
	}
}

func TestRepositoryDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx := newTestTransaction("user-1", core.Expense, "Food", 10, core.NewDate(2025, 1, 1))
	_, err := repo.Create(ctx, tx)
	require.NoError(t, err)

	// A different owner cannot delete it.
	assert.ErrorIs(t, repo.Delete(ctx, "user-2", tx.ID), ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "user-1", tx.ID))
	_, err = repo.Get(ctx, tx.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryBudget(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Missing record reads as zero, not an error.
	b, err := repo.GetBudget(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, b.Amount.IsZero())
	assert.Equal(t, core.DefaultCurrency, b.Currency)

	require.NoError(t, repo.SetBudget(ctx, core.Budget{
		OwnerID: "user-1",
		Amount:  decimal.NewFromInt(75000),
	}))
	require.NoError(t, repo.SetBudget(ctx, core.Budget{
		OwnerID:  "user-1",
		Amount:   decimal.NewFromInt(90000),
		Currency: "EUR",
	}))

	b, err = repo.GetBudget(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "90000", b.Amount.String())
	assert.Equal(t, "EUR", b.Currency)
}

func TestRepositorySyncTracking(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx := newTestTransaction("u", core.Income, "Salary", 100, core.NewDate(2025, 2, 2))
	_, err := repo.Create(ctx, tx)
	require.NoError(t, err)

	pending, err := repo.PendingSync(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{tx.ID}, pending)

	require.NoError(t, repo.MarkSynced(ctx, tx.ID))
	pending, err = repo.PendingSync(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
