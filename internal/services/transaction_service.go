package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kopilka/internal/core"
	"kopilka/internal/storage"
)

// SyncPublisher pushes transaction sync messages to the export queue.
type SyncPublisher interface {
	PublishTransactionSync(ctx context.Context, id string) error
}

// TransactionService orchestrates transaction writes across storage and
// the export queue.
type TransactionService struct {
	store     storage.TransactionStore
	publisher SyncPublisher
}

// NewTransactionService creates the service. publisher may be nil when no
// queue is configured; export is then skipped.
func NewTransactionService(store storage.TransactionStore, publisher SyncPublisher) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
	}
}

// Create validates and persists a transaction, assigning its ID and
// timestamps, then publishes an export message. A publish failure never
// fails the request: the record is already saved locally.
func (s *TransactionService) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	now := time.Now().UTC()
	tx.ID = uuid.NewString()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	created, err := s.store.Create(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionSync(ctx, created.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to publish sync message",
				"id", created.ID, "error", err)
		}
	}

	return created, nil
}

// List returns the owner's transactions matching the filter.
func (s *TransactionService) List(ctx context.Context, filter storage.TransactionFilter) ([]core.Transaction, error) {
	txs, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	return txs, nil
}

// Delete removes a transaction owned by ownerID.
func (s *TransactionService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.store.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	return nil
}
