package core

import (
	"math"

	"github.com/shopspring/decimal"
)

// Aggregate reduces a list of transactions (already filtered to the desired
// window) into totals and a per-category breakdown.
//
// An empty list yields an all-zero Stats with an empty breakdown; no input
// ever produces NaN or an error. Category entries keep first-seen order, and
// each entry's type is the type of the first transaction observed for that
// category.
func Aggregate(txs []Transaction) Stats {
	stats := Stats{
		TotalIncome:        decimal.Zero,
		TotalExpenses:      decimal.Zero,
		Balance:            decimal.Zero,
		AverageTransaction: decimal.Zero,
		LargestTransaction: decimal.Zero,
		CategoryBreakdown:  []CategoryBreakdown{},
	}

	type group struct {
		amount decimal.Decimal
		count  int
		typ    TransactionType
	}
	groups := make(map[string]*group)
	var order []string

	for _, tx := range txs {
		switch tx.Type {
		case Income:
			stats.TotalIncome = stats.TotalIncome.Add(tx.Amount)
		case Expense:
			stats.TotalExpenses = stats.TotalExpenses.Add(tx.Amount)
		}
		if tx.Amount.GreaterThan(stats.LargestTransaction) {
			stats.LargestTransaction = tx.Amount
		}

		g, ok := groups[tx.Category]
		if !ok {
			g = &group{amount: decimal.Zero, typ: tx.Type}
			groups[tx.Category] = g
			order = append(order, tx.Category)
		}
		g.amount = g.amount.Add(tx.Amount)
		g.count++
	}

	stats.Balance = stats.TotalIncome.Sub(stats.TotalExpenses)
	stats.TransactionsCount = len(txs)
	if stats.TransactionsCount > 0 {
		total := stats.TotalIncome.Add(stats.TotalExpenses)
		stats.AverageTransaction = total.Div(decimal.NewFromInt(int64(stats.TransactionsCount)))
	}

	for _, category := range order {
		g := groups[category]
		denominator := stats.TotalExpenses
		if g.typ == Income {
			denominator = stats.TotalIncome
		}
		var percentage float64
		if denominator.IsPositive() {
			percentage = g.amount.InexactFloat64() / denominator.InexactFloat64() * 100
		}
		stats.CategoryBreakdown = append(stats.CategoryBreakdown, CategoryBreakdown{
			Category:   category,
			Amount:     g.amount,
			Percentage: percentage,
			Count:      g.count,
			Type:       g.typ,
		})
	}

	return stats
}

// Growth computes the income growth percentage between two periods,
// rounded to the nearest integer.
//
// When the previous period had no income the result is 100 if any income
// appeared in the current period and 0 otherwise. This asymmetric rule is
// the established product behavior and is relied upon by clients.
func Growth(current, previous decimal.Decimal) int {
	if previous.IsPositive() {
		ratio := current.Sub(previous).InexactFloat64() / previous.InexactFloat64()
		return int(math.Round(ratio * 100))
	}
	if current.IsPositive() {
		return 100
	}
	return 0
}
