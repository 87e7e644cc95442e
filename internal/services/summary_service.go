package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"kopilka/internal/core"
	"kopilka/internal/storage"
)

// SummaryService computes monthly financial summaries and category
// statistics straight off storage. Nothing is cached: every call sees
// the latest transactions.
type SummaryService struct {
	store   storage.TransactionStore
	budgets storage.BudgetStore
}

func NewSummaryService(store storage.TransactionStore, budgets storage.BudgetStore) *SummaryService {
	return &SummaryService{store: store, budgets: budgets}
}

// monthWindow returns the half-open [first of month, first of next month)
// filter bounds for the given month and year.
func monthWindow(month, year int) (core.Date, core.Date) {
	from := core.NewDate(year, month, 1)
	nextMonth, nextYear := month+1, year
	if nextMonth > 12 {
		nextMonth = 1
		nextYear++
	}
	return from, core.NewDate(nextYear, nextMonth, 1)
}

// MonthlySummary aggregates the owner's transactions for the given month
// and compares income against the previous calendar month.
func (s *SummaryService) MonthlySummary(ctx context.Context, ownerID string, month, year int) (core.FinancialSummary, error) {
	if month < 1 || month > 12 {
		return core.FinancialSummary{}, fmt.Errorf("month out of range: %d", month)
	}

	prevMonth, prevYear := month-1, year
	if prevMonth < 1 {
		prevMonth = 12
		prevYear--
	}

	curFrom, curBefore := monthWindow(month, year)
	prevFrom, prevBefore := monthWindow(prevMonth, prevYear)

	var (
		current  []core.Transaction
		previous []core.Transaction
		budget   core.Budget
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.store.List(gctx, storage.TransactionFilter{
			OwnerID:    ownerID,
			DateFrom:   curFrom,
			DateBefore: curBefore,
			Limit:      -1,
		})
		if err != nil {
			return fmt.Errorf("load current month: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		previous, err = s.store.List(gctx, storage.TransactionFilter{
			OwnerID:    ownerID,
			DateFrom:   prevFrom,
			DateBefore: prevBefore,
			Limit:      -1,
		})
		if err != nil {
			return fmt.Errorf("load previous month: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		budget, err = s.budgets.GetBudget(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("load budget: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.FinancialSummary{}, err
	}

	cur := core.Aggregate(current)
	prev := core.Aggregate(previous)

	savings := cur.TotalIncome.Sub(cur.TotalExpenses)
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	return core.FinancialSummary{
		TotalBudget:      budget.Amount,
		MonthlyIncome:    cur.TotalIncome,
		MonthlyExpenses:  cur.TotalExpenses,
		Savings:          savings,
		GrowthPercentage: core.Growth(cur.TotalIncome, prev.TotalIncome),
		Month:            strconv.Itoa(month),
		Year:             strconv.Itoa(year),
	}, nil
}

// Stats aggregates the owner's transactions over an inclusive date range.
// Zero-valued bounds leave that side of the range open.
func (s *SummaryService) Stats(ctx context.Context, ownerID string, from, to core.Date) (core.Stats, error) {
	txs, err := s.store.List(ctx, storage.TransactionFilter{
		OwnerID:  ownerID,
		DateFrom: from,
		DateTo:   to,
		Limit:    -1,
	})
	if err != nil {
		return core.Stats{}, fmt.Errorf("load transactions: %w", err)
	}
	return core.Aggregate(txs), nil
}
