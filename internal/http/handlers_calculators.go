package http

import (
	"net/http"

	"kopilka/internal/finance"
)

// Calculator endpoints are stateless: parse the inputs, run the pure
// formula, return the result. All of them require POST.

func (s *Server) handleCompoundInterest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var req struct {
		Principal           float64 `json:"principal"`
		MonthlyContribution float64 `json:"monthlyContribution"`
		AnnualRate          float64 `json:"annualRate"`
		Years               int     `json:"years"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	if req.Years < 0 {
		writeError(w, http.StatusBadRequest, "years must be non-negative", "years")
		return
	}
	writeJSON(w, http.StatusOK, finance.CompoundInterest(req.Principal, req.MonthlyContribution, req.AnnualRate, req.Years))
}

func (s *Server) handleLoanPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var req struct {
		Amount     float64 `json:"amount"`
		AnnualRate float64 `json:"annualRate"`
		Years      int     `json:"years"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	if req.Years < 0 {
		writeError(w, http.StatusBadRequest, "years must be non-negative", "years")
		return
	}
	writeJSON(w, http.StatusOK, finance.LoanPayment(req.Amount, req.AnnualRate, req.Years))
}

func (s *Server) handleFutureValue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var req struct {
		PresentValue float64 `json:"presentValue"`
		AnnualRate   float64 `json:"annualRate"`
		Years        int     `json:"years"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"futureValue": finance.FutureValue(req.PresentValue, req.AnnualRate, req.Years),
	})
}

func (s *Server) handleDebtToIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var req struct {
		MonthlyDebtPayments float64 `json:"monthlyDebtPayments"`
		MonthlyIncome       float64 `json:"monthlyIncome"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"ratio": finance.DebtToIncome(req.MonthlyDebtPayments, req.MonthlyIncome),
	})
}

func (s *Server) handleSavingsRate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var req struct {
		Income   float64 `json:"income"`
		Expenses float64 `json:"expenses"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"savingsRate": finance.SavingsRate(req.Income, req.Expenses),
	})
}

func (s *Server) handleRuleOf72(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var req struct {
		AnnualRate float64 `json:"annualRate"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"yearsToDouble": finance.RuleOf72(req.AnnualRate),
	})
}

func (s *Server) handleRetirement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var req struct {
		DesiredMonthlyIncome float64 `json:"desiredMonthlyIncome"`
		YearsInRetirement    int     `json:"yearsInRetirement"`
		InflationRate        float64 `json:"inflationRate"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	if req.YearsInRetirement < 0 {
		writeError(w, http.StatusBadRequest, "yearsInRetirement must be non-negative", "yearsInRetirement")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"requiredCapital": finance.RetirementNeeds(req.DesiredMonthlyIncome, req.YearsInRetirement, req.InflationRate),
	})
}

func (s *Server) handleBudgetRule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var req struct {
		Income  float64 `json:"income"`
		Needs   float64 `json:"needs"`
		Wants   float64 `json:"wants"`
		Savings float64 `json:"savings"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	writeJSON(w, http.StatusOK, finance.AnalyzeBudgetRule(req.Income, req.Needs, req.Wants, req.Savings))
}
