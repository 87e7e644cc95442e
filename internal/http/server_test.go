package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kopilka/internal/core"
	"kopilka/internal/finance"
	"kopilka/internal/services"
	"kopilka/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	tx := services.NewTransactionService(store, nil)
	sum := services.NewSummaryService(store, store)
	s := NewServer(":0", tx, sum, store, "default")
	t.Cleanup(func() {
		_ = s.Shutdown(context.Background())
	})
	return s, store
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func decodeTransactions(t *testing.T, rec *httptest.ResponseRecorder) []core.Transaction {
	t.Helper()
	envelope := decodeBody[struct {
		Transactions []core.Transaction `json:"transactions"`
	}](t, rec)
	return envelope.Transactions
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = doJSON(t, s, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateAndListTransactions(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/transactions", map[string]any{
		"amount":      1234.56,
		"type":        "expense",
		"category":    "groceries",
		"description": "weekly shop",
		"date":        "2025-04-10",
		"tags":        []string{"food"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeBody[core.Transaction](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "1234.56", created.Amount.String())
	assert.Equal(t, "default", created.OwnerID)
	assert.Equal(t, []string{"food"}, created.Tags)

	rec = doJSON(t, s, http.MethodGet, "/api/transactions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeTransactions(t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestCreateTransactionAcceptsStringAmount(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/transactions", map[string]any{
		"amount":      "99,90",
		"type":        "expense",
		"category":    "groceries",
		"description": "market",
		"date":        "2025-04-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[core.Transaction](t, rec)
	assert.Equal(t, "99.9", created.Amount.String())
}

func TestAPIResponsesCarryRequestID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/transactions", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCreateTransactionValidation(t *testing.T) {
	s, _ := newTestServer(t)

	cases := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"zero amount", map[string]any{"amount": 0, "type": "expense", "category": "x", "description": "y", "date": "2025-04-10"}, "amount"},
		{"bad type", map[string]any{"amount": 10, "type": "transfer", "category": "x", "description": "y", "date": "2025-04-10"}, "type"},
		{"empty category", map[string]any{"amount": 10, "type": "expense", "category": "", "description": "y", "date": "2025-04-10"}, "category"},
		{"empty description", map[string]any{"amount": 10, "type": "expense", "category": "x", "description": "", "date": "2025-04-10"}, "description"},
		{"description too long", map[string]any{"amount": 10, "type": "expense", "category": "x", "description": strings.Repeat("a", 201), "date": "2025-04-10"}, "description"},
		{"future date", map[string]any{"amount": 10, "type": "expense", "category": "x", "description": "y", "date": "2099-01-01"}, "date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/api/transactions", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeBody[map[string]string](t, rec)
			assert.Equal(t, tc.field, resp["field"])
		})
	}
}

func TestCreateTransactionRejectsUnknownFields(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/transactions", map[string]any{
		"amount": 10, "type": "expense", "category": "x", "description": "y",
		"date": "2025-04-10", "bogus": true,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTransactionsFilters(t *testing.T) {
	s, store := newTestServer(t)
	seed := func(typ core.TransactionType, category, amount, date string) {
		amt := decimal.RequireFromString(amount)
		d, err := core.ParseDate(date)
		require.NoError(t, err)
		_, err = store.Create(context.Background(), core.Transaction{
			ID: string(typ) + category + amount, OwnerID: "default",
			Amount: amt, Type: typ, Category: category,
			Description: "seed", Date: d,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		})
		require.NoError(t, err)
	}
	seed(core.Income, "salary", "3000", "2025-04-01")
	seed(core.Expense, "groceries", "120", "2025-04-05")
	seed(core.Expense, "transport", "40", "2025-05-02")

	rec := doJSON(t, s, http.MethodGet, "/api/transactions?type=expense", nil)
	assert.Len(t, decodeTransactions(t, rec), 2)

	rec = doJSON(t, s, http.MethodGet, "/api/transactions?category=salary", nil)
	assert.Len(t, decodeTransactions(t, rec), 1)

	rec = doJSON(t, s, http.MethodGet, "/api/transactions?startDate=2025-04-01&endDate=2025-04-30", nil)
	assert.Len(t, decodeTransactions(t, rec), 2)

	rec = doJSON(t, s, http.MethodGet, "/api/transactions?startDate=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTransaction(t *testing.T) {
	s, store := newTestServer(t)
	_, err := store.Create(context.Background(), core.Transaction{
		ID: "tx1", OwnerID: "default",
		Amount: decimal.RequireFromString("10"), Type: core.Expense,
		Category: "x", Description: "y", Date: core.NewDate(2025, 4, 1),
	})
	require.NoError(t, err)

	rec := doJSON(t, s, http.MethodDelete, "/api/transactions/tx1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/transactions/tx1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOwnerHeaderScopesRequests(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewBufferString(
		`{"amount":50,"type":"expense","category":"x","description":"y","date":"2025-04-01"}`))
	req.Header.Set("X-User-ID", "anna")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Default owner sees nothing.
	listRec := doJSON(t, s, http.MethodGet, "/api/transactions", nil)
	assert.Empty(t, decodeTransactions(t, listRec))
}

func TestSummaryEndpoint(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()
	seed := func(typ core.TransactionType, amount string, d core.Date) {
		_, err := store.Create(ctx, core.Transaction{
			ID: amount + d.String(), OwnerID: "default",
			Amount: decimal.RequireFromString(amount), Type: typ,
			Category: "misc", Description: "seed", Date: d,
		})
		require.NoError(t, err)
	}
	seed(core.Income, "2000", core.NewDate(2025, 4, 3))
	seed(core.Expense, "500", core.NewDate(2025, 4, 8))
	seed(core.Income, "1000", core.NewDate(2025, 3, 3))
	require.NoError(t, store.SetBudget(ctx, core.Budget{OwnerID: "default", Amount: decimal.RequireFromString("300")}))

	rec := doJSON(t, s, http.MethodGet, "/api/transactions/summary?month=4&year=2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Summary struct {
			TotalBudget      string `json:"totalBudget"`
			MonthlyIncome    string `json:"monthlyIncome"`
			MonthlyExpenses  string `json:"monthlyExpenses"`
			Savings          string `json:"savings"`
			GrowthPercentage int    `json:"growthPercentage"`
			Month            string `json:"month"`
			Year             string `json:"year"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	resp := envelope.Summary
	assert.Equal(t, "2000", resp.MonthlyIncome)
	assert.Equal(t, "500", resp.MonthlyExpenses)
	assert.Equal(t, "1500", resp.Savings)
	assert.Equal(t, "300", resp.TotalBudget)
	assert.Equal(t, 100, resp.GrowthPercentage)
	assert.Equal(t, "4", resp.Month)
	assert.Equal(t, "2025", resp.Year)

	rec = doJSON(t, s, http.MethodGet, "/api/transactions/summary?month=13&year=2025", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()
	for i, amount := range []string{"100", "300"} {
		_, err := store.Create(ctx, core.Transaction{
			ID: amount, OwnerID: "default",
			Amount: decimal.RequireFromString(amount), Type: core.Expense,
			Category: "misc", Description: "seed",
			Date: core.NewDate(2025, 4, i+1),
		})
		require.NoError(t, err)
	}

	rec := doJSON(t, s, http.MethodGet, "/api/transactions/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody[struct {
		Stats core.Stats `json:"stats"`
	}](t, rec).Stats
	assert.Equal(t, 2, stats.TransactionsCount)
	assert.Equal(t, "400", stats.TotalExpenses.String())
	assert.Equal(t, "300", stats.LargestTransaction.String())
}

func TestBudgetEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	// Missing budget comes back as a zero record, not an error.
	rec := doJSON(t, s, http.MethodGet, "/api/budget", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	budget := decodeBody[core.Budget](t, rec)
	assert.True(t, budget.Amount.IsZero())
	assert.Equal(t, core.DefaultCurrency, budget.Currency)

	rec = doJSON(t, s, http.MethodPut, "/api/budget", map[string]any{"amount": 45000})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/budget", nil)
	budget = decodeBody[core.Budget](t, rec)
	assert.Equal(t, "45000", budget.Amount.String())

	rec = doJSON(t, s, http.MethodPut, "/api/budget", map[string]any{"amount": -5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompoundInterestEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/calculators/compound-interest", map[string]any{
		"principal": 10000, "monthlyContribution": 500, "annualRate": 7, "years": 10,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeBody[finance.CompoundResult](t, rec)
	want := finance.CompoundInterest(10000, 500, 7, 10)
	assert.Equal(t, want, result)
}

func TestLoanPaymentEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/calculators/loan-payment", map[string]any{
		"amount": 300000, "annualRate": 9.5, "years": 20,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeBody[finance.LoanResult](t, rec)
	assert.Equal(t, finance.LoanPayment(300000, 9.5, 20), result)
}

func TestBudgetRuleEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/calculators/budget-rule", map[string]any{
		"income": 1000, "needs": 700, "wants": 200, "savings": 100,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeBody[finance.BudgetRuleResult](t, rec)
	assert.False(t, result.IsBalanced)
	assert.Contains(t, result.Recommendations, "Сократите обязательные расходы")
}

func TestSimulatorEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/simulator/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	scenarios := decodeBody[[]finance.Scenario](t, rec)
	assert.Len(t, scenarios, 3)

	rec = doJSON(t, s, http.MethodPost, "/api/simulator/run", map[string]any{"scenarioId": scenarios[0].ID})
	require.Equal(t, http.StatusOK, rec.Code)
	run := decodeBody[simulatorRunResponse](t, rec)
	assert.Len(t, run.Results, finance.HorizonMonths+1)
	assert.Equal(t, scenarios[0].ID, run.Scenario.ID)

	rec = doJSON(t, s, http.MethodPost, "/api/simulator/run", map[string]any{"scenarioId": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/simulator/run", map[string]any{
		"scenario": map[string]any{
			"id": "custom", "name": "Custom", "initialBudget": 100,
			"monthlyIncome": 50, "expenses": []map[string]any{
				{"category": "rent", "amount": 30, "growthRate": 0},
			},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	run = decodeBody[simulatorRunResponse](t, rec)
	assert.InDelta(t, 120, run.Results[0].Budget, 0.0001)
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodDelete, "/api/transactions", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))

	rec = doJSON(t, s, http.MethodGet, "/api/calculators/rule-of-72", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
