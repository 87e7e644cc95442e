package http

import (
	"net/http"
	"time"

	"kopilka/internal/finance"
)

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	writeJSON(w, http.StatusOK, finance.BuiltinScenarios())
}

type simulatorRunRequest struct {
	ScenarioID string            `json:"scenarioId"`
	Scenario   *finance.Scenario `json:"scenario"`
}

type simulatorRunResponse struct {
	Scenario finance.Scenario   `json:"scenario"`
	Results  []finance.Snapshot `json:"results"`
}

// handleSimulatorRun projects a scenario over the full horizon. The caller
// either names a builtin scenario or supplies a custom one inline.
func (s *Server) handleSimulatorRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req simulatorRunRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	var scenario finance.Scenario
	switch {
	case req.Scenario != nil:
		scenario = *req.Scenario
	case req.ScenarioID != "":
		builtin, ok := finance.ScenarioByID(req.ScenarioID)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown scenario", "scenarioId")
			return
		}
		scenario = builtin
	default:
		writeError(w, http.StatusBadRequest, "scenario or scenarioId required", "")
		return
	}

	// Projections start at the first of the current month.
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	writeJSON(w, http.StatusOK, simulatorRunResponse{
		Scenario: scenario,
		Results:  finance.Run(scenario, start),
	})
}
