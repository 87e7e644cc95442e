package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"kopilka/internal/core"
)

// MemoryStore is an in-memory TransactionStore/BudgetStore used in tests
// and for running the server without a database file.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions map[string]core.Transaction
	budgets      map[string]core.Budget
	syncStatus   map[string]string
}

var (
	_ TransactionStore = (*MemoryStore)(nil)
	_ BudgetStore      = (*MemoryStore)(nil)
	_ SyncTracker      = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string]core.Transaction),
		budgets:      make(map[string]core.Budget),
		syncStatus:   make(map[string]string),
	}
}

func (m *MemoryStore) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[tx.ID] = tx
	m.syncStatus[tx.ID] = "pending"
	return tx, nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (core.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tx, ok := m.transactions[id]
	if !ok {
		return core.Transaction{}, ErrNotFound
	}
	return tx, nil
}

func (m *MemoryStore) List(ctx context.Context, filter TransactionFilter) ([]core.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []core.Transaction
	for _, tx := range m.transactions {
		if matches(tx, filter) {
			result = append(result, tx)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date.Time) {
			return result[i].Date.After(result[j].Date.Time)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	limit := filter.Limit
	switch {
	case limit == 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MemoryStore) Delete(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.transactions[id]
	if !ok || tx.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(m.transactions, id)
	delete(m.syncStatus, id)
	return nil
}

func (m *MemoryStore) GetBudget(ctx context.Context, ownerID string) (core.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.budgets[ownerID]
	if !ok {
		return core.Budget{OwnerID: ownerID, Amount: decimal.Zero, Currency: core.DefaultCurrency}, nil
	}
	return b, nil
}

func (m *MemoryStore) SetBudget(ctx context.Context, b core.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.Currency == "" {
		b.Currency = core.DefaultCurrency
	}
	m.budgets[b.OwnerID] = b
	return nil
}

func (m *MemoryStore) PendingSync(ctx context.Context, limit int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for id, status := range m.syncStatus {
		if status == "pending" {
			ids = append(ids, id)
		}
		if len(ids) == limit {
			break
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MemoryStore) MarkSynced(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncStatus[id] = "synced"
	return nil
}

func (m *MemoryStore) MarkSyncError(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncStatus[id] = "error"
	return nil
}

func matches(tx core.Transaction, f TransactionFilter) bool {
	if f.OwnerID != "" && tx.OwnerID != f.OwnerID {
		return false
	}
	if f.Type != "" && f.Type != "all" && tx.Type != f.Type {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if !f.DateFrom.IsZero() && tx.Date.Before(f.DateFrom.Time) {
		return false
	}
	if !f.DateTo.IsZero() && tx.Date.After(f.DateTo.Time) {
		return false
	}
	if !f.DateBefore.IsZero() && !tx.Date.Before(f.DateBefore.Time) {
		return false
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		needle := strings.ToLower(s)
		if !strings.Contains(strings.ToLower(tx.Description), needle) &&
			!strings.Contains(strings.ToLower(tx.Category), needle) {
			return false
		}
	}
	return true
}
