package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatScenario() Scenario {
	return Scenario{
		ID:            "flat",
		InitialBudget: 50000,
		MonthlyIncome: 150000,
		Expenses: []ExpenseItem{
			{Category: "Жилье", Amount: 40000, GrowthRate: 0},
			{Category: "Продукты", Amount: 30000, GrowthRate: 0},
		},
	}
}

func TestRunHorizon(t *testing.T) {
	results := Run(flatScenario(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, results, HorizonMonths+1)
	assert.Equal(t, 0, results[0].Month)
	assert.Equal(t, HorizonMonths, results[len(results)-1].Month)
	assert.Equal(t, "January 2024", results[0].Date)
	assert.Equal(t, "January 2029", results[60].Date)
}

func TestRunLinearWhenGrowthIsZero(t *testing.T) {
	results := Run(flatScenario(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	balance0 := results[0].Balance
	assert.InDelta(t, 150000-70000, balance0, 1e-9)

	// With all expense growth at zero and income raised only at the
	// 12-month boundary (after that month's balance is applied), the first
	// year accumulates linearly.
	assert.InDelta(t, results[0].Budget+12*balance0, results[12].Budget, 1e-9)

	// The raise lands in the month-12 snapshot and first affects the
	// month-13 balance.
	assert.InDelta(t, 150000*1.05, results[12].Income, 1e-9)
	assert.InDelta(t, balance0, results[12].Balance, 1e-9)
	assert.InDelta(t, 150000*1.05-70000, results[13].Balance, 1e-9)
}

func TestRunAppliesExpenseGrowthAnnually(t *testing.T) {
	scenario := Scenario{
		InitialBudget: 0,
		MonthlyIncome: 1000,
		Expenses: []ExpenseItem{
			{Category: "Rent", Amount: 500, GrowthRate: 10},
		},
	}
	results := Run(scenario, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	// Months 0..12 charge the original amount; month 13 the grown one.
	assert.InDelta(t, 500, results[12].Expenses, 1e-9)
	assert.InDelta(t, 550, results[13].Expenses, 1e-9)
	// Two boundaries crossed by month 25.
	assert.InDelta(t, 605, results[25].Expenses, 1e-9)
}

func TestRunDoesNotMutateScenario(t *testing.T) {
	scenario := Scenario{
		MonthlyIncome: 1000,
		Expenses:      []ExpenseItem{{Category: "Rent", Amount: 500, GrowthRate: 10}},
	}
	_ = Run(scenario, time.Now())

	assert.InDelta(t, 500, scenario.Expenses[0].Amount, 1e-9)
}

func TestBuiltinScenarios(t *testing.T) {
	scenarios := BuiltinScenarios()
	require.Len(t, scenarios, 3)

	s, ok := ScenarioByID("optimistic")
	require.True(t, ok)
	assert.Equal(t, "optimistic", s.ID)
	assert.NotEmpty(t, s.Expenses)

	_, ok = ScenarioByID("nope")
	assert.False(t, ok)
}
