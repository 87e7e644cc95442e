package core

import "github.com/shopspring/decimal"

// CategoryBreakdown is an aggregate for a single category. Percentage is
// relative to the total of the entry's own type, not the combined total.
type CategoryBreakdown struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
	Count      int             `json:"count"`
	Type       TransactionType `json:"type"`
}

// Stats is the reduction of a transaction list into totals and a
// per-category breakdown.
type Stats struct {
	TotalIncome        decimal.Decimal     `json:"totalIncome"`
	TotalExpenses      decimal.Decimal     `json:"totalExpenses"`
	Balance            decimal.Decimal     `json:"balance"`
	TransactionsCount  int                 `json:"transactionsCount"`
	AverageTransaction decimal.Decimal     `json:"averageTransaction"`
	LargestTransaction decimal.Decimal     `json:"largestTransaction"`
	CategoryBreakdown  []CategoryBreakdown `json:"categoryBreakdown"`
}

// FinancialSummary is the derived monthly aggregate plus the standing
// budget. It is recomputed on every request and never persisted.
// Month and Year are stringified to match the wire contract of the
// historical clients.
type FinancialSummary struct {
	TotalBudget      decimal.Decimal `json:"totalBudget"`
	MonthlyIncome    decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses  decimal.Decimal `json:"monthlyExpenses"`
	Savings          decimal.Decimal `json:"savings"`
	GrowthPercentage int             `json:"growthPercentage"`
	Month            string          `json:"month"`
	Year             string          `json:"year"`
}
