package finance

import "time"

// HorizonMonths is the fixed projection horizon: months 0 through 60.
const HorizonMonths = 60

// annualIncomeGrowth is the hardcoded yearly income raise applied at every
// 12-month boundary, independent of the scenario.
const annualIncomeGrowth = 1.05

type (
	// ExpenseItem is a recurring monthly expense with its own annual
	// growth rate in percent.
	ExpenseItem struct {
		Category   string  `json:"category"`
		Amount     float64 `json:"amount"`
		GrowthRate float64 `json:"growthRate"`
	}

	// Goal is a savings target attached to a scenario. It does not affect
	// the projection; it is carried for presentation.
	Goal struct {
		Name         string  `json:"name"`
		TargetAmount float64 `json:"targetAmount"`
		TargetDate   string  `json:"targetDate"`
		Priority     string  `json:"priority"`
	}

	// Scenario is a fixed set of simulator inputs. It is constructed per
	// run and never persisted.
	Scenario struct {
		ID            string        `json:"id"`
		Name          string        `json:"name"`
		Description   string        `json:"description"`
		InitialBudget float64       `json:"initialBudget"`
		MonthlyIncome float64       `json:"monthlyIncome"`
		Expenses      []ExpenseItem `json:"expenses"`
		Goals         []Goal        `json:"goals,omitempty"`
	}

	// Snapshot is the simulator output for a single monthly tick.
	Snapshot struct {
		Month    int     `json:"month"`
		Budget   float64 `json:"budget"`
		Income   float64 `json:"income"`
		Expenses float64 `json:"expenses"`
		Balance  float64 `json:"balance"`
		Date     string  `json:"date"`
	}
)

// Run projects the scenario month by month over the full horizon and
// returns one snapshot per tick, months 0..60 inclusive. There is no early
// termination; playback pacing is a presentation concern.
//
// Each tick adds income minus total expenses to the running budget. At
// every 12-month boundary (month > 0 and month%12 == 0) income grows by
// the fixed 5% and each expense grows by its own annual rate; the
// adjustment lands after that month's balance has been applied, so it
// first affects the following month. The start date only labels the
// snapshots.
func Run(scenario Scenario, start time.Time) []Snapshot {
	budget := scenario.InitialBudget
	income := scenario.MonthlyIncome
	expenses := make([]ExpenseItem, len(scenario.Expenses))
	copy(expenses, scenario.Expenses)

	results := make([]Snapshot, 0, HorizonMonths+1)
	for month := 0; month <= HorizonMonths; month++ {
		var totalExpense float64
		for _, e := range expenses {
			totalExpense += e.Amount
		}

		monthlyBalance := income - totalExpense
		budget += monthlyBalance

		if month > 0 && month%12 == 0 {
			income *= annualIncomeGrowth
			for i := range expenses {
				expenses[i].Amount *= 1 + expenses[i].GrowthRate/100
			}
		}

		results = append(results, Snapshot{
			Month:    month,
			Budget:   budget,
			Income:   income,
			Expenses: totalExpense,
			Balance:  monthlyBalance,
			Date:     start.AddDate(0, month, 0).Format("January 2006"),
		})
	}

	return results
}
