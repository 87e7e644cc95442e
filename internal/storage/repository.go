package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"kopilka/internal/core"
)

type SQLiteRepository struct {
	db *sql.DB
}

// Interface conformance.
var (
	_ TransactionStore = (*SQLiteRepository)(nil)
	_ BudgetStore      = (*SQLiteRepository)(nil)
	_ SyncTracker      = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const transactionColumns = `id, owner_id, amount, type, category, description, date,
	family_member_id, tags, recurring, recurring_id, created_at, updated_at`

// Create inserts a transaction and returns it as stored.
func (r *SQLiteRepository) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	tags, err := json.Marshal(tx.Tags)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("marshal tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`, sync_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending')`,
		tx.ID,
		tx.OwnerID,
		tx.Amount.String(),
		string(tx.Type),
		tx.Category,
		tx.Description,
		tx.Date.String(),
		nullable(tx.FamilyMemberID),
		string(tags),
		tx.Recurring,
		nullable(tx.RecurringID),
		tx.CreatedAt.UTC().Format(time.RFC3339Nano),
		tx.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", tx.ID,
		"owner_id", tx.OwnerID,
		"type", tx.Type,
		"category", tx.Category,
		"amount", tx.Amount.String())

	return tx, nil
}

// Get returns a single transaction by ID.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// List returns transactions matching the filter, newest first.
func (r *SQLiteRepository) List(ctx context.Context, filter TransactionFilter) ([]core.Transaction, error) {
	where := []string{"1=1"}
	var args []any

	if filter.OwnerID != "" {
		where = append(where, "owner_id = ?")
		args = append(args, filter.OwnerID)
	}
	if filter.Type != "" && filter.Type != "all" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if !filter.DateFrom.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, filter.DateFrom.String())
	}
	if !filter.DateTo.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, filter.DateTo.String())
	}
	if !filter.DateBefore.IsZero() {
		where = append(where, "date < ?")
		args = append(args, filter.DateBefore.String())
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		where = append(where, "(LOWER(description) LIKE ? OR LOWER(category) LIKE ?)")
		pattern := "%" + strings.ToLower(s) + "%"
		args = append(args, pattern, pattern)
	}

	// Limit semantics: 0 means the default cap, negative means unbounded
	// (summary windows must see every record). SQLite treats LIMIT -1 as
	// no limit.
	limit := filter.Limit
	switch {
	case limit == 0:
		limit = DefaultListLimit
	case limit < 0:
		limit = -1
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	args = append(args, limit)

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` +
		strings.Join(where, " AND ") +
		` ORDER BY date DESC, created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var result []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		result = append(result, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return result, nil
}

// Delete removes a transaction owned by ownerID.
func (r *SQLiteRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id, "owner_id", ownerID)
	return nil
}

// GetBudget returns the standing budget for an owner. A missing record is
// reported as a zero budget, not an error.
func (r *SQLiteRepository) GetBudget(ctx context.Context, ownerID string) (core.Budget, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT owner_id, amount, currency, updated_at FROM budgets WHERE owner_id = ?`, ownerID)

	var (
		b         core.Budget
		amount    string
		updatedAt string
	)
	err := row.Scan(&b.OwnerID, &amount, &b.Currency, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{
			OwnerID:  ownerID,
			Amount:   decimal.Zero,
			Currency: core.DefaultCurrency,
		}, nil
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}

	b.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return core.Budget{}, fmt.Errorf("parse budget amount %q: %w", amount, err)
	}
	b.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return b, nil
}

// SetBudget upserts the standing budget for an owner.
func (r *SQLiteRepository) SetBudget(ctx context.Context, b core.Budget) error {
	currency := b.Currency
	if currency == "" {
		currency = core.DefaultCurrency
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (owner_id, amount, currency, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			amount = excluded.amount,
			currency = excluded.currency,
			updated_at = excluded.updated_at`,
		b.OwnerID, b.Amount.String(), currency, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("set budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget updated", "owner_id", b.OwnerID, "amount", b.Amount.String())
	return nil
}

// PendingSync returns IDs of transactions not yet exported.
func (r *SQLiteRepository) PendingSync(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id FROM transactions
		WHERE sync_status = 'pending'
		ORDER BY created_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("pending sync transactions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkSynced marks a transaction as successfully exported.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	if err := r.setSyncStatus(ctx, id, "synced"); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Transaction marked as synced", "id", id)
	return nil
}

// MarkSyncError marks a transaction as having failed export.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	if err := r.setSyncStatus(ctx, id, "error"); err != nil {
		return err
	}
	slog.WarnContext(ctx, "Transaction marked with sync error", "id", id)
	return nil
}

func (r *SQLiteRepository) setSyncStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("set sync status: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		tx             core.Transaction
		amount         string
		typ            string
		date           string
		familyMemberID sql.NullString
		tags           string
		recurringID    sql.NullString
		createdAt      string
		updatedAt      string
	)
	err := row.Scan(&tx.ID, &tx.OwnerID, &amount, &typ, &tx.Category, &tx.Description,
		&date, &familyMemberID, &tags, &tx.Recurring, &recurringID, &createdAt, &updatedAt)
	if err != nil {
		return core.Transaction{}, err
	}

	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	tx.Type = core.TransactionType(typ)
	tx.Date, err = core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	tx.FamilyMemberID = familyMemberID.String
	tx.RecurringID = recurringID.String
	if err := json.Unmarshal([]byte(tags), &tx.Tags); err != nil {
		return core.Transaction{}, fmt.Errorf("unmarshal tags: %w", err)
	}
	tx.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	tx.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return tx, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
