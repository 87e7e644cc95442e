package core

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTransaction() Transaction {
	return Transaction{
		Amount:      decimal.NewFromInt(100),
		Type:        Expense,
		Category:    "Food",
		Description: "groceries",
		Date:        NewDate(2025, 1, 15),
		OwnerID:     "user-1",
	}
}

func TestTransactionValidate(t *testing.T) {
	require.NoError(t, validTransaction().Validate())

	cases := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"zero amount", func(tx *Transaction) { tx.Amount = decimal.Zero }, ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount = decimal.NewFromInt(-5) }, ErrInvalidAmount},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"empty category", func(tx *Transaction) { tx.Category = "  " }, ErrEmptyCategory},
		{"empty description", func(tx *Transaction) { tx.Description = "" }, ErrEmptyDescription},
		{"description too long", func(tx *Transaction) { tx.Description = strings.Repeat("a", 201) }, ErrDescriptionTooLong},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
		{"future date", func(tx *Transaction) {
			future := time.Now().UTC().AddDate(0, 0, 2)
			tx.Date = NewDate(future.Year(), int(future.Month()), future.Day())
		}, ErrFutureDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := validTransaction()
			tc.mutate(&tx)
			assert.ErrorIs(t, tx.Validate(), tc.want)
		})
	}
}

func TestTransactionValidateAcceptsToday(t *testing.T) {
	tx := validTransaction()
	now := time.Now().UTC()
	tx.Date = NewDate(now.Year(), int(now.Month()), now.Day())
	assert.NoError(t, tx.Validate())
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, 3, 1)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-01"`, string(raw))

	var parsed Date
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.True(t, parsed.Equal(d.Time))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, 6, d.Month())
	assert.Equal(t, 30, d.Day())

	// RFC 3339 timestamps are truncated to the calendar day.
	d, err = ParseDate("2025-06-30T18:45:00+03:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-30", d.String())

	_, err = ParseDate("30/06/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{" 7 ", "7", true},
		{"0", "", false},
		{"-5", "", false},
		{"abc", "", false},
		{"", "", false},
		{"1000000001", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestBudgetValidate(t *testing.T) {
	assert.NoError(t, Budget{Amount: decimal.Zero}.Validate())
	assert.NoError(t, Budget{Amount: decimal.NewFromInt(500)}.Validate())
	assert.Error(t, Budget{Amount: decimal.NewFromInt(-1)}.Validate())
}
