package finance

// BuiltinScenarios returns the three stock scenarios shipped with the
// simulator. Callers may run them as-is or use them as templates.
func BuiltinScenarios() []Scenario {
	return []Scenario{
		{
			ID:            "basic",
			Name:          "Базовый сценарий",
			Description:   "Стандартный бюджет средней семьи",
			InitialBudget: 50000,
			MonthlyIncome: 150000,
			Expenses: []ExpenseItem{
				{Category: "Жилье", Amount: 40000, GrowthRate: 5},
				{Category: "Продукты", Amount: 30000, GrowthRate: 7},
				{Category: "Транспорт", Amount: 15000, GrowthRate: 8},
				{Category: "Развлечения", Amount: 20000, GrowthRate: 10},
				{Category: "Сбережения", Amount: 25000, GrowthRate: 0},
				{Category: "Прочее", Amount: 20000, GrowthRate: 6},
			},
			Goals: []Goal{
				{Name: "Накопить на отпуск", TargetAmount: 150000, TargetDate: "2024-12-31", Priority: "medium"},
				{Name: "Ремонт кухни", TargetAmount: 300000, TargetDate: "2025-06-30", Priority: "high"},
			},
		},
		{
			ID:            "optimistic",
			Name:          "Оптимистичный сценарий",
			Description:   "Рост доходов при контроле расходов",
			InitialBudget: 50000,
			MonthlyIncome: 150000,
			Expenses: []ExpenseItem{
				{Category: "Жилье", Amount: 35000, GrowthRate: 4},
				{Category: "Продукты", Amount: 25000, GrowthRate: 5},
				{Category: "Транспорт", Amount: 12000, GrowthRate: 6},
				{Category: "Развлечения", Amount: 15000, GrowthRate: 8},
				{Category: "Сбережения", Amount: 40000, GrowthRate: 0},
				{Category: "Инвестиции", Amount: 20000, GrowthRate: 0},
				{Category: "Прочее", Amount: 15000, GrowthRate: 5},
			},
			Goals: []Goal{
				{Name: "Покупка автомобиля", TargetAmount: 800000, TargetDate: "2026-12-31", Priority: "high"},
				{Name: "Накопления на образование", TargetAmount: 500000, TargetDate: "2027-06-30", Priority: "medium"},
			},
		},
		{
			ID:            "pessimistic",
			Name:          "Консервативный сценарий",
			Description:   "Снижение доходов при росте расходов",
			InitialBudget: 30000,
			MonthlyIncome: 120000,
			Expenses: []ExpenseItem{
				{Category: "Жилье", Amount: 45000, GrowthRate: 8},
				{Category: "Продукты", Amount: 35000, GrowthRate: 10},
				{Category: "Транспорт", Amount: 18000, GrowthRate: 12},
				{Category: "Развлечения", Amount: 10000, GrowthRate: 5},
				{Category: "Сбережения", Amount: 10000, GrowthRate: 0},
				{Category: "Прочее", Amount: 15000, GrowthRate: 7},
			},
			Goals: []Goal{
				{Name: "Создать резервный фонд", TargetAmount: 200000, TargetDate: "2025-12-31", Priority: "high"},
				{Name: "Погасить долги", TargetAmount: 150000, TargetDate: "2024-12-31", Priority: "high"},
			},
		},
	}
}

// ScenarioByID looks up a builtin scenario; ok is false when the id is
// unknown.
func ScenarioByID(id string) (Scenario, bool) {
	for _, s := range BuiltinScenarios() {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}
