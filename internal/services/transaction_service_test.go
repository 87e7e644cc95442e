package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kopilka/internal/core"
	"kopilka/internal/storage"
)

type fakePublisher struct {
	published []string
	err       error
}

func (f *fakePublisher) PublishTransactionSync(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, id)
	return nil
}

func validTx() core.Transaction {
	return core.Transaction{
		OwnerID:     "anna",
		Amount:      decimal.RequireFromString("250.50"),
		Type:        core.Expense,
		Category:    "groceries",
		Description: "weekly shop",
		Date:        core.NewDate(2025, 4, 10),
	}
}

func TestCreateAssignsIDAndPublishes(t *testing.T) {
	store := storage.NewMemoryStore()
	pub := &fakePublisher{}
	svc := NewTransactionService(store, pub)

	created, err := svc.Create(context.Background(), validTx())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())
	require.Len(t, pub.published, 1)
	assert.Equal(t, created.ID, pub.published[0])

	got, err := store.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "250.5", got.Amount.String())
}

func TestCreateRejectsInvalid(t *testing.T) {
	store := storage.NewMemoryStore()
	pub := &fakePublisher{}
	svc := NewTransactionService(store, pub)

	tx := validTx()
	tx.Amount = decimal.Zero
	_, err := svc.Create(context.Background(), tx)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	assert.Empty(t, pub.published)

	txs, err := store.List(context.Background(), storage.TransactionFilter{OwnerID: "anna"})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestCreateSucceedsWhenPublishFails(t *testing.T) {
	store := storage.NewMemoryStore()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewTransactionService(store, pub)

	created, err := svc.Create(context.Background(), validTx())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestCreateWithoutPublisher(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewTransactionService(store, nil)

	_, err := svc.Create(context.Background(), validTx())
	assert.NoError(t, err)
}

func TestDeleteOwnerScoped(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewTransactionService(store, nil)

	created, err := svc.Create(context.Background(), validTx())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "boris", created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = svc.Delete(context.Background(), "anna", created.ID)
	assert.NoError(t, err)

	_, err = store.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListReturnsEmptySliceNotNil(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewTransactionService(store, nil)

	txs, err := svc.List(context.Background(), storage.TransactionFilter{OwnerID: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, txs)
	assert.Empty(t, txs)
}
