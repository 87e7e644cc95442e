package storage

import (
	"context"
	"errors"

	"kopilka/internal/core"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

const (
	// DefaultListLimit is applied when a caller does not specify one.
	DefaultListLimit = 50
	// MaxListLimit caps caller-supplied limits.
	MaxListLimit = 500
)

// TransactionFilter narrows a transaction range query. Zero-value fields
// are ignored. DateFrom/DateTo are inclusive bounds; DateBefore is an
// exclusive upper bound used for half-open monthly windows. A zero Limit
// applies DefaultListLimit, a negative Limit disables the cap.
type TransactionFilter struct {
	OwnerID    string
	Type       core.TransactionType
	Category   string
	DateFrom   core.Date
	DateTo     core.Date
	DateBefore core.Date
	Search     string
	Limit      int
}

// Ports for the persistence layer.
type (
	// TransactionStore persists transaction records. List returns records
	// ordered by date descending, tie-broken by creation time descending.
	TransactionStore interface {
		Create(ctx context.Context, tx core.Transaction) (core.Transaction, error)
		Get(ctx context.Context, id string) (core.Transaction, error)
		List(ctx context.Context, filter TransactionFilter) ([]core.Transaction, error)
		Delete(ctx context.Context, ownerID, id string) error
	}

	// BudgetStore persists the standing budget per owner. A missing record
	// reads as a zero budget, not an error.
	BudgetStore interface {
		GetBudget(ctx context.Context, ownerID string) (core.Budget, error)
		SetBudget(ctx context.Context, b core.Budget) error
	}

	// SyncTracker records the spreadsheet export state of transactions.
	SyncTracker interface {
		PendingSync(ctx context.Context, limit int) ([]string, error)
		MarkSynced(ctx context.Context, id string) error
		MarkSyncError(ctx context.Context, id string) error
	}
)
