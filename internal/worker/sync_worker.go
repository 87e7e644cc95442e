package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kopilka/internal/amqp"
	"kopilka/internal/sheets"
	"kopilka/internal/storage"
)

// syncStore is the storage surface the worker needs: transaction lookup
// plus export bookkeeping.
type syncStore interface {
	storage.TransactionStore
	storage.SyncTracker
}

// SyncWorker exports transactions from local storage to a spreadsheet.
type SyncWorker struct {
	store     syncStore
	appender  sheets.TransactionAppender
	batchSize int
}

func NewSyncWorker(store syncStore, appender sheets.TransactionAppender, batchSize int) *SyncWorker {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &SyncWorker{
		store:     store,
		appender:  appender,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single transaction sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID)
	return w.export(ctx, msg.ID)
}

// export looks up the transaction and appends it to the spreadsheet,
// recording the outcome in the sync tracker.
func (w *SyncWorker) export(ctx context.Context, id string) error {
	tx, err := w.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Deleted before export ran; nothing to do.
			slog.WarnContext(ctx, "Transaction gone before export", "id", id)
			return nil
		}
		return fmt.Errorf("get transaction: %w", err)
	}

	ref, err := w.appender.Append(ctx, tx)
	if err != nil {
		if markErr := w.store.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed recording sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to spreadsheet: %w", err)
	}

	if err := w.store.MarkSynced(ctx, id); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}

	slog.InfoContext(ctx, "Transaction exported", "id", id, "row", ref)
	return nil
}

// RetryPending re-exports transactions still marked pending, in batches.
// It covers messages lost between the local write and the broker.
func (w *SyncWorker) RetryPending(ctx context.Context) error {
	ids, err := w.store.PendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending transactions: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Retrying pending exports", "count", len(ids))
	for _, id := range ids {
		if err := w.export(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Pending export failed", "id", id, "error", err)
		}
	}
	return nil
}

// RunPendingLoop retries pending exports on the given interval until the
// context is cancelled.
func (w *SyncWorker) RunPendingLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.RetryPending(ctx); err != nil {
				slog.ErrorContext(ctx, "Pending retry pass failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
