// Package core holds the budget tracking domain model: transactions,
// budgets, dates, and the aggregation that derives monthly summaries.
// Amounts are decimals end to end so sums stay exact.
package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	Date struct {
		time.Time
	}

	// Transaction is a single dated income or expense record. The amount is
	// always stored non-negative; the sign is implied by Type.
	Transaction struct {
		ID             string          `json:"id"`
		Amount         decimal.Decimal `json:"amount"`
		Type           TransactionType `json:"type"`
		Category       string          `json:"category"`
		Description    string          `json:"description"`
		Date           Date            `json:"date"`
		OwnerID        string          `json:"ownerId"`
		FamilyMemberID string          `json:"familyMemberId,omitempty"`
		Tags           []string        `json:"tags,omitempty"`
		Recurring      bool            `json:"recurring,omitempty"`
		RecurringID    string          `json:"recurringId,omitempty"`
		CreatedAt      time.Time       `json:"createdAt"`
		UpdatedAt      time.Time       `json:"updatedAt"`
	}

	// Budget is the standing budget record for a user or family account.
	Budget struct {
		OwnerID   string          `json:"ownerId"`
		Amount    decimal.Decimal `json:"amount"`
		Currency  string          `json:"currency"`
		UpdatedAt time.Time       `json:"updatedAt"`
	}
)

var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidType        = errors.New("type must be income or expense")
	ErrEmptyCategory      = errors.New("empty category")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrInvalidDate        = errors.New("invalid date")
	ErrFutureDate         = errors.New("date cannot be in the future")
)

// DefaultCurrency is used when a budget record carries no explicit currency.
const DefaultCurrency = "RUB"

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidType
}

// NewDate creates a Date at UTC midnight for the given calendar day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

const dateLayout = "2006-01-02"

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts both plain calendar dates (2006-01-02) and full
// RFC 3339 timestamps; timestamps are truncated to UTC midnight.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDate parses a calendar date from its string form.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NewDate(t.Year(), int(t.Month()), t.Day()), nil
	}
	return Date{}, ErrInvalidDate
}

func (tx Transaction) Validate() error {
	if !tx.Amount.IsPositive() || tx.Amount.GreaterThan(MaxAmount) {
		return ErrInvalidAmount
	}
	if err := tx.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(tx.Description) == "" {
		return ErrEmptyDescription
	}
	if len(tx.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if err := tx.Date.Validate(); err != nil {
		return err
	}
	// Compare against today's UTC midnight so a transaction dated today is
	// accepted for the whole day.
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if tx.Date.Time.After(today) {
		return ErrFutureDate
	}
	return nil
}

func (b Budget) Validate() error {
	if b.Amount.IsNegative() {
		return errors.New("budget cannot be negative")
	}
	return nil
}
