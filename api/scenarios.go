/*
scenarios.go - Demo scenario loaders

PURPOSE:
  Pre-built scenarios that repopulate the service with realistic demo
  data. Loading a scenario REPLACES the current in-memory state (the
  handler swaps in a fresh service), so only enable this in development
  and demo environments.

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "small-team"}

SEE ALSO:
  - seed/seed.go: the generators behind each scenario
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lumahr/leave-engine/leave"
	"github.com/lumahr/leave-engine/seed"
)

type scenarioLoader func(context.Context, *leave.Service) error

var scenarios = []ScenarioDTO{
	{
		ID:          "small-team",
		Name:        "Small Team",
		Description: "Five employees with light leave history",
	},
	{
		ID:          "busy-quarter",
		Name:        "Busy Quarter",
		Description: "Twenty employees with heavy request traffic",
	},
}

var scenarioLoaders = map[string]scenarioLoader{
	"small-team":   seed.SmallTeam,
	"busy-quarter": seed.BusyQuarter,
}

// ListScenarios returns the available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, scenarios)
}

// LoadScenario resets state and seeds the requested scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	if h.fresh == nil {
		writeErrorMessage(w, http.StatusForbidden, "Scenario loading is disabled")
		return
	}

	var body LoadScenarioBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	load, ok := scenarioLoaders[body.ScenarioID]
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "Unknown scenario: "+body.ScenarioID)
		return
	}

	svc := h.fresh()
	if err := load(r.Context(), svc); err != nil {
		h.logger.Error("scenario load failed", "scenario", body.ScenarioID, "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "Failed to load scenario")
		return
	}

	h.swapService(svc)

	writeData(w, http.StatusOK, ScenarioResultDTO{
		ScenarioID:    body.ScenarioID,
		Employees:     len(svc.Employees()),
		LeaveRequests: len(svc.Requests()),
	})
}
