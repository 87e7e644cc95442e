package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"kopilka/internal/core"
	"kopilka/internal/storage"
)

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := parseDateParam(r, "startDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "startDate")
		return
	}
	to, err := parseDateParam(r, "endDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "endDate")
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "limit")
		return
	}

	filter := storage.TransactionFilter{
		OwnerID:  s.ownerID(r),
		Type:     core.TransactionType(strings.TrimSpace(q.Get("type"))),
		Category: strings.TrimSpace(q.Get("category")),
		DateFrom: from,
		DateTo:   to,
		Search:   sanitizeInput(q.Get("search")),
		Limit:    limit,
	}

	txs, err := s.transactions.List(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions", "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

type createTransactionRequest struct {
	Amount         amountValue     `json:"amount"`
	Type           string          `json:"type"`
	Category       string          `json:"category"`
	Description    string          `json:"description"`
	Date           core.Date       `json:"date"`
	FamilyMemberID string          `json:"familyMemberId"`
	Tags           []string        `json:"tags"`
	Recurring      bool            `json:"recurring"`
	RecurringID    string          `json:"recurringId"`
}

// validationField maps a domain validation error to the request field it
// concerns, for client-side highlighting.
func validationField(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "amount"
	case errors.Is(err, core.ErrInvalidType):
		return "type"
	case errors.Is(err, core.ErrEmptyCategory):
		return "category"
	case errors.Is(err, core.ErrEmptyDescription), errors.Is(err, core.ErrDescriptionTooLong):
		return "description"
	case errors.Is(err, core.ErrInvalidDate), errors.Is(err, core.ErrFutureDate):
		return "date"
	}
	return ""
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	tx := core.Transaction{
		OwnerID:        s.ownerID(r),
		Amount:         req.Amount.Decimal,
		Type:           core.TransactionType(strings.TrimSpace(req.Type)),
		Category:       sanitizeInput(req.Category),
		Description:    sanitizeInput(req.Description),
		Date:           req.Date,
		FamilyMemberID: strings.TrimSpace(req.FamilyMemberID),
		Tags:           req.Tags,
		Recurring:      req.Recurring,
		RecurringID:    strings.TrimSpace(req.RecurringID),
	}

	created, err := s.transactions.Create(r.Context(), tx)
	if err != nil {
		if field := validationField(err); field != "" {
			writeError(w, http.StatusBadRequest, err.Error(), field)
			return
		}
		slog.ErrorContext(r.Context(), "Create transaction failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save transaction", "")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "transaction not found", "")
		return
	}

	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "DELETE")
		return
	}

	if err := s.transactions.Delete(r.Context(), s.ownerID(r), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found", "")
			return
		}
		slog.ErrorContext(r.Context(), "Delete transaction failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction", "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
