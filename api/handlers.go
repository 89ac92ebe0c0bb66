/*
handlers.go - HTTP API handlers for the time entry engine

PURPOSE:
  Exposes the time entry engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Entries:
    GET    /api/entries                List entries (filterable)
    POST   /api/entries                Create entry
    GET    /api/entries/{id}           Get entry details
    PUT    /api/entries/{id}           Edit entry fields
    DELETE /api/entries/{id}           Delete entry
    PUT    /api/entries/{id}/tags      Replace entry tags
    POST   /api/entries/{id}/move      Retarget entry to project/task
    POST   /api/entries/{id}/submit    Submit for approval
    POST   /api/entries/{id}/approve   Approve a submitted entry
    POST   /api/entries/{id}/decline   Decline with a comment

  Projects:
    GET    /api/projects               List project configurations
    POST   /api/projects               Create/replace a configuration
    GET    /api/projects/{code}        Get one configuration
    DELETE /api/projects/{code}        Delete (blocked while entries exist)

  Suggestions:
    GET    /api/users/{id}/suggestion  Pre-filled payload for next entry

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/load         Load a demo scenario

ERROR HANDLING:
  Engine errors are mapped to HTTP status by kind:
  - 400: Validation errors (per-field failure list in the body)
  - 404: Unknown entry or project
  - 409: Workflow rule rejections (body names the blocking status)
  - 503: Retryable infrastructure failures
  - 500: Everything else

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/warp/timelog/engine"
	"github.com/warp/timelog/logging"
	"github.com/warp/timelog/store/sqlite"
	"github.com/warp/timelog/suggest"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Service *engine.Service
	Advisor *suggest.Advisor

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler around the store and service.
func NewHandler(store *sqlite.Store, service *engine.Service) *Handler {
	return &Handler{
		Store:   store,
		Service: service,
		Advisor: suggest.New(),
	}
}

// =============================================================================
// ENTRY HANDLERS
// =============================================================================

// ListEntries returns entries matching the query filters.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter", err)
		return
	}

	entries, err := h.Service.List(r.Context(), filter)
	if err != nil {
		writeEngineError(w, "list entries", err)
		return
	}

	dtos := make([]EntryDTO, len(entries))
	for i := range entries {
		dtos[i] = toEntryDTO(&entries[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

func filterFromQuery(r *http.Request) (engine.EntryFilter, error) {
	var filter engine.EntryFilter
	q := r.URL.Query()

	if v := q.Get("user_id"); v != "" {
		filter.UserID = &v
	}
	if v := q.Get("project_code"); v != "" {
		code := engine.ProjectCode(v)
		filter.ProjectCode = &code
	}
	if v := q.Get("status"); v != "" {
		status := engine.EntryStatus(v)
		filter.Status = &status
	}
	if v := q.Get("from"); v != "" {
		d, err := engine.ParseDate(v)
		if err != nil {
			return filter, err
		}
		filter.From = &d
	}
	if v := q.Get("to"); v != "" {
		d, err := engine.ParseDate(v)
		if err != nil {
			return filter, err
		}
		filter.To = &d
	}
	return filter, nil
}

// GetEntry returns a single entry.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := engine.EntryID(chi.URLParam(r, "id"))

	entry, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeEngineError(w, "get entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(entry))
}

// CreateEntry creates a new entry in NOT_REPORTED status.
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	entry, err := h.Service.Create(r.Context(), input)
	if err != nil {
		writeEngineError(w, "create entry", err)
		return
	}

	h.Advisor.Observe(entry)
	writeJSON(w, http.StatusCreated, toEntryDTO(entry))
}

// UpdateEntry edits fields on an existing entry.
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := engine.EntryID(chi.URLParam(r, "id"))

	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	entry, err := h.Service.Update(r.Context(), id, input)
	if err != nil {
		writeEngineError(w, "update entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(entry))
}

// ReplaceTags replaces the full tag set of an entry.
func (h *Handler) ReplaceTags(w http.ResponseWriter, r *http.Request) {
	id := engine.EntryID(chi.URLParam(r, "id"))

	var req ReplaceTagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := h.Service.ReplaceTags(r.Context(), id, toTagPairs(req.Tags))
	if err != nil {
		writeEngineError(w, "replace tags", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(entry))
}

// MoveEntry retargets an entry to another project/task.
func (h *Handler) MoveEntry(w http.ResponseWriter, r *http.Request) {
	id := engine.EntryID(chi.URLParam(r, "id"))

	var req MoveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := h.Service.Move(r.Context(), id, engine.MoveInput{
		ProjectCode: engine.ProjectCode(req.ProjectCode),
		Task:        req.Task,
	})
	if err != nil {
		writeEngineError(w, "move entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(entry))
}

// DeleteEntry removes an entry.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := engine.EntryID(chi.URLParam(r, "id"))

	deleted, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		writeEngineError(w, "delete entry", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted, "id": string(id)})
}

// =============================================================================
// WORKFLOW HANDLERS
// =============================================================================

// SubmitEntry moves an entry into SUBMITTED status. The response carries
// advisory warnings for required tags the entry does not have.
func (h *Handler) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	id := engine.EntryID(chi.URLParam(r, "id"))

	entry, err := h.Service.Submit(r.Context(), id)
	if err != nil {
		writeEngineError(w, "submit entry", err)
		return
	}

	missing, err := h.Service.Validator.MissingRequiredTags(r.Context(), entry.ProjectCode, entry.Tags)
	if err != nil {
		// Advisory only, the submit already succeeded.
		logging.Logger.WithError(err).Warn("required tag check failed")
		missing = nil
	}

	writeJSON(w, http.StatusOK, SubmitResponse{
		Entry:               toEntryDTO(entry),
		MissingRequiredTags: missing,
	})
}

// ApproveEntry approves a submitted entry.
func (h *Handler) ApproveEntry(w http.ResponseWriter, r *http.Request) {
	id := engine.EntryID(chi.URLParam(r, "id"))

	entry, err := h.Service.Approve(r.Context(), id)
	if err != nil {
		writeEngineError(w, "approve entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(entry))
}

// DeclineEntry declines a submitted entry with a mandatory comment.
func (h *Handler) DeclineEntry(w http.ResponseWriter, r *http.Request) {
	id := engine.EntryID(chi.URLParam(r, "id"))

	var req DeclineEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := h.Service.Decline(r.Context(), id, req.Comment)
	if err != nil {
		writeEngineError(w, "decline entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(entry))
}

// =============================================================================
// PROJECT HANDLERS
// =============================================================================

// ListProjects returns all project configurations.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list projects", err)
		return
	}

	dtos := make([]ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = toProjectDTO(&projects[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetProject returns a single project configuration.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	code := engine.ProjectCode(chi.URLParam(r, "code"))

	project, err := h.Store.GetProject(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get project", err)
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "Project not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toProjectDTO(project))
}

// SaveProject creates or replaces a project configuration.
func (h *Handler) SaveProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Code == "" || len(req.Code) > engine.MaxProjectCodeLen {
		writeError(w, http.StatusBadRequest, "Project code must be 1-10 characters", nil)
		return
	}

	project := req.toProject()
	if err := h.Store.SaveProject(r.Context(), project); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save project", err)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectDTO(&project))
}

// DeleteProject removes a configuration. Refused while entries reference it.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	code := engine.ProjectCode(chi.URLParam(r, "code"))

	if err := h.Store.DeleteProject(r.Context(), code); err != nil {
		writeError(w, http.StatusConflict, "Failed to delete project", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": string(code)})
}

// =============================================================================
// SUGGESTION HANDLERS
// =============================================================================

// GetSuggestion returns a pre-filled payload for the user's next entry.
func (h *Handler) GetSuggestion(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	proposal := h.Advisor.Propose(userID)
	if proposal == nil {
		writeError(w, http.StatusNotFound, "No recent activity for user", nil)
		return
	}

	tags := make([]TagPairDTO, len(proposal.Tags))
	for i, t := range proposal.Tags {
		tags[i] = TagPairDTO{Name: t.Name, Value: t.Value}
	}
	writeJSON(w, http.StatusOK, SuggestionDTO{
		ProjectCode: string(proposal.ProjectCode),
		Task:        proposal.Task,
		Tags:        tags,
		StartDate:   proposal.StartDate.String(),
	})
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

// writeEngineError maps an engine error to its HTTP representation.
func writeEngineError(w http.ResponseWriter, op string, err error) {
	switch {
	case engine.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), Field: engine.FieldID})

	case engine.IsValidation(err):
		resp := ErrorResponse{Error: err.Error()}
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			resp.Field = verr.Field
			for _, f := range verr.All {
				resp.Failures = append(resp.Failures, FieldErrorDTO{Field: f.Field, Message: f.Message})
			}
		}
		writeJSON(w, http.StatusBadRequest, resp)

	case engine.IsBusinessRule(err):
		resp := ErrorResponse{Error: err.Error()}
		var berr *engine.BusinessRuleError
		if errors.As(err, &berr) {
			resp.Status = string(berr.Status)
		}
		writeJSON(w, http.StatusConflict, resp)

	case engine.IsRetryable(err):
		logging.Logger.WithError(err).WithField("op", op).Error("infrastructure failure")
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "Temporary storage failure, retry later", Retryable: true})

	default:
		logging.Logger.WithError(err).WithField("op", op).Error("unexpected failure")
		writeError(w, http.StatusInternalServerError, "Failed to "+op, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
