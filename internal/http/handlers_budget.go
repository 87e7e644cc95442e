package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"kopilka/internal/core"
)

type setBudgetRequest struct {
	Amount   amountValue `json:"amount"`
	Currency string      `json:"currency"`
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGetBudget(w, r)
	case http.MethodPut:
		s.handleSetBudget(w, r)
	default:
		methodNotAllowed(w, "GET, PUT")
	}
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	budget, err := s.budgets.GetBudget(r.Context(), s.ownerID(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "Get budget failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load budget", "")
		return
	}
	writeJSON(w, http.StatusOK, budget)
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req setBudgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	budget := core.Budget{
		OwnerID:   s.ownerID(r),
		Amount:    req.Amount.Decimal,
		Currency:  strings.TrimSpace(req.Currency),
		UpdatedAt: time.Now().UTC(),
	}
	if budget.Currency == "" {
		budget.Currency = core.DefaultCurrency
	}

	if err := budget.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "amount")
		return
	}

	if err := s.budgets.SetBudget(r.Context(), budget); err != nil {
		slog.ErrorContext(r.Context(), "Set budget failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save budget", "")
		return
	}

	writeJSON(w, http.StatusOK, budget)
}
