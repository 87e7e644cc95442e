package http

import (
	"log/slog"
	"net/http"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	year, month := parseYearMonth(r)
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be between 1 and 12", "month")
		return
	}

	summary, err := s.summaries.MonthlySummary(r.Context(), s.ownerID(r), month, year)
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly summary failed", "error", err, "year", year, "month", month)
		writeError(w, http.StatusInternalServerError, "failed to compute summary", "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"summary": summary})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

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

	stats, err := s.summaries.Stats(r.Context(), s.ownerID(r), from, to)
	if err != nil {
		slog.ErrorContext(r.Context(), "Stats failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute stats", "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}
