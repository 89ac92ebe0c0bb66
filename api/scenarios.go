/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates project
	configurations and a handful of time entries spread across the
	workflow states.

AVAILABLE SCENARIOS:

	internal-team:    INTERNAL project with environment/billable tags,
	                  entries in every workflow state
	client-work:      CLIENT-A support project plus INTERNAL, showing
	                  cross-project moves and declined entries

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Save project configurations
 3. Create entries through the service so they validate normally
 4. Drive a few entries through submit/approve/decline

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "internal-team"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: entry and project handlers
  - server.go: route registration
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warp/timelog/engine"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var scenarios = []ScenarioDTO{
	{
		ID:          "internal-team",
		Name:        "Internal Team",
		Description: "Single project with tagged entries across all workflow states",
	},
	{
		ID:          "client-work",
		Name:        "Client Work",
		Description: "Two projects showing cross-project moves and declined entries",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "internal-team":
		err = h.loadInternalTeamScenario(ctx)
	case "client-work":
		err = h.loadClientWorkScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]any{
		"loaded":   req.ScenarioID,
		"scenario": req.ScenarioID,
	})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]any{"reset": true})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func internalProject() engine.Project {
	return engine.Project{
		Code:   "INTERNAL",
		Name:   "Internal Development",
		Active: true,
		Tasks: []engine.ProjectTask{
			{Name: "Development", Active: true},
			{Name: "Code Review", Active: true},
			{Name: "Documentation", Active: false},
		},
		Tags: []engine.ProjectTag{
			{Name: "Environment", Active: true, Values: []string{"Development", "Staging", "Production"}},
			{Name: "Billable", Active: true, Required: true, Values: []string{"Yes", "No"}},
		},
	}
}

func clientAProject() engine.Project {
	return engine.Project{
		Code:   "CLIENT-A",
		Name:   "Client A Support",
		Active: true,
		Tasks: []engine.ProjectTask{
			{Name: "Bug Fixing", Active: true},
			{Name: "Support", Active: true},
		},
		Tags: []engine.ProjectTag{
			{Name: "Severity", Active: true, Values: []string{"Low", "Medium", "High"}},
		},
	}
}

// loadInternalTeamScenario seeds one project and entries in every state.
func (h *Handler) loadInternalTeamScenario(ctx context.Context) error {
	if err := h.Store.SaveProject(ctx, internalProject()); err != nil {
		return err
	}

	monday := engine.Today().AddDays(-7)

	// NOT_REPORTED: fresh entry, still editable
	_, err := h.Service.Create(ctx, engine.CreateInput{
		UserID:         "alice",
		ProjectCode:    "INTERNAL",
		Task:           "Development",
		IssueRef:       "DEV-101",
		Description:    "Feature work",
		StandardHours:  engine.Hours(8),
		StartDate:      monday,
		CompletionDate: monday,
		Tags: []engine.TagPair{
			{Name: "Environment", Value: "Development"},
			{Name: "Billable", Value: "Yes"},
		},
	})
	if err != nil {
		return err
	}

	// SUBMITTED: waiting for a decision
	pending, err := h.Service.Create(ctx, engine.CreateInput{
		UserID:         "alice",
		ProjectCode:    "INTERNAL",
		Task:           "Code Review",
		Description:    "Review backlog",
		StandardHours:  engine.Hours(4),
		OvertimeHours:  engine.Hours(1),
		StartDate:      monday.AddDays(1),
		CompletionDate: monday.AddDays(1),
		Tags:           []engine.TagPair{{Name: "Billable", Value: "No"}},
	})
	if err != nil {
		return err
	}
	if _, err := h.Service.Submit(ctx, pending.ID); err != nil {
		return err
	}

	// APPROVED: locked
	done, err := h.Service.Create(ctx, engine.CreateInput{
		UserID:         "bob",
		ProjectCode:    "INTERNAL",
		Task:           "Development",
		IssueRef:       "DEV-95",
		StandardHours:  engine.Hours(8),
		StartDate:      monday.AddDays(2),
		CompletionDate: monday.AddDays(2),
		Tags: []engine.TagPair{
			{Name: "Environment", Value: "Production"},
			{Name: "Billable", Value: "Yes"},
		},
	})
	if err != nil {
		return err
	}
	if _, err := h.Service.Submit(ctx, done.ID); err != nil {
		return err
	}
	if _, err := h.Service.Approve(ctx, done.ID); err != nil {
		return err
	}

	// DECLINED: sent back with a comment
	rejected, err := h.Service.Create(ctx, engine.CreateInput{
		UserID:         "bob",
		ProjectCode:    "INTERNAL",
		Task:           "Development",
		StandardHours:  engine.Hours(12),
		StartDate:      monday.AddDays(3),
		CompletionDate: monday.AddDays(3),
		Tags:           []engine.TagPair{{Name: "Billable", Value: "Yes"}},
	})
	if err != nil {
		return err
	}
	if _, err := h.Service.Submit(ctx, rejected.ID); err != nil {
		return err
	}
	if _, err := h.Service.Decline(ctx, rejected.ID, "12 hours on one day needs a breakdown"); err != nil {
		return err
	}

	return nil
}

// loadClientWorkScenario seeds two projects and a cross-project move.
func (h *Handler) loadClientWorkScenario(ctx context.Context) error {
	if err := h.Store.SaveProject(ctx, internalProject()); err != nil {
		return err
	}
	if err := h.Store.SaveProject(ctx, clientAProject()); err != nil {
		return err
	}

	monday := engine.Today().AddDays(-7)

	// Entry logged against INTERNAL, then moved to CLIENT-A. The move
	// drops the INTERNAL tags because they mean nothing on CLIENT-A.
	moved, err := h.Service.Create(ctx, engine.CreateInput{
		UserID:         "carol",
		ProjectCode:    "INTERNAL",
		Task:           "Development",
		Description:    "Misfiled client work",
		StandardHours:  engine.Hours(6),
		StartDate:      monday,
		CompletionDate: monday,
		Tags: []engine.TagPair{
			{Name: "Environment", Value: "Production"},
			{Name: "Billable", Value: "Yes"},
		},
	})
	if err != nil {
		return err
	}
	if _, err := h.Service.Move(ctx, moved.ID, engine.MoveInput{ProjectCode: "CLIENT-A", Task: "Bug Fixing"}); err != nil {
		return err
	}

	// Declined support entry awaiting rework
	support, err := h.Service.Create(ctx, engine.CreateInput{
		UserID:         "carol",
		ProjectCode:    "CLIENT-A",
		Task:           "Support",
		StandardHours:  engine.Hours(3),
		StartDate:      monday.AddDays(1),
		CompletionDate: monday.AddDays(2),
		Tags:           []engine.TagPair{{Name: "Severity", Value: "High"}},
	})
	if err != nil {
		return err
	}
	if _, err := h.Service.Submit(ctx, support.ID); err != nil {
		return err
	}
	if _, err := h.Service.Decline(ctx, support.ID, "Attach the ticket reference before resubmitting"); err != nil {
		return err
	}

	return nil
}
