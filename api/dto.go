/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication. These types decouple the
  engine's domain model from the external contract: hours travel as
  decimal strings, dates as YYYY-MM-DD, optional update fields as
  pointers that distinguish "absent" from "zero".

NAMING CONVENTION:
  - *DTO: response types returned to clients
  - *Request: request body types from clients

VALIDATION:
  Shape validation (parsable decimals/dates) happens in handlers before
  the engine is called; the engine only ever sees strongly-typed input
  structs and performs the business validation itself.

SEE ALSO:
  - handlers.go: uses these types
*/
package api

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/timelog/engine"
)

// =============================================================================
// ENTRY TYPES
// =============================================================================

type TagPairDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// EntryDTO represents a time entry in API responses.
type EntryDTO struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user_id"`
	ProjectCode    string       `json:"project_code"`
	Task           string       `json:"task"`
	IssueRef       string       `json:"issue_ref,omitempty"`
	Description    string       `json:"description,omitempty"`
	StandardHours  string       `json:"standard_hours"`
	OvertimeHours  string       `json:"overtime_hours"`
	StartDate      string       `json:"start_date"`
	CompletionDate string       `json:"completion_date"`
	Status         string       `json:"status"`
	DeclineComment string       `json:"decline_comment,omitempty"`
	Tags           []TagPairDTO `json:"tags"`
	CreatedAt      string       `json:"created_at"`
	UpdatedAt      string       `json:"updated_at"`
}

func toEntryDTO(e *engine.TimeEntry) EntryDTO {
	tags := make([]TagPairDTO, len(e.Tags))
	for i, t := range e.Tags {
		tags[i] = TagPairDTO{Name: t.Name, Value: t.Value}
	}
	return EntryDTO{
		ID:             string(e.ID),
		UserID:         e.UserID,
		ProjectCode:    string(e.ProjectCode),
		Task:           e.Task,
		IssueRef:       e.IssueRef,
		Description:    e.Description,
		StandardHours:  e.StandardHours.String(),
		OvertimeHours:  e.OvertimeHours.String(),
		StartDate:      e.StartDate.String(),
		CompletionDate: e.CompletionDate.String(),
		Status:         string(e.Status),
		DeclineComment: e.DeclineComment,
		Tags:           tags,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      e.UpdatedAt.Format(time.RFC3339),
	}
}

func toTagPairs(dtos []TagPairDTO) []engine.TagPair {
	tags := make([]engine.TagPair, len(dtos))
	for i, t := range dtos {
		tags[i] = engine.TagPair{Name: t.Name, Value: t.Value}
	}
	return tags
}

// CreateEntryRequest is the full payload for a new entry.
type CreateEntryRequest struct {
	UserID         string       `json:"user_id"`
	ProjectCode    string       `json:"project_code"`
	Task           string       `json:"task"`
	IssueRef       string       `json:"issue_ref,omitempty"`
	Description    string       `json:"description,omitempty"`
	StandardHours  string       `json:"standard_hours"`
	OvertimeHours  string       `json:"overtime_hours,omitempty"`
	StartDate      string       `json:"start_date"`
	CompletionDate string       `json:"completion_date"`
	Tags           []TagPairDTO `json:"tags,omitempty"`
}

// ToInput converts the request to the engine's input type.
func (r CreateEntryRequest) ToInput() (engine.CreateInput, error) {
	standard, err := parseHours(r.StandardHours)
	if err != nil {
		return engine.CreateInput{}, fmt.Errorf("standard_hours: %w", err)
	}
	overtime, err := parseHours(r.OvertimeHours)
	if err != nil {
		return engine.CreateInput{}, fmt.Errorf("overtime_hours: %w", err)
	}
	start, err := engine.ParseDate(r.StartDate)
	if err != nil {
		return engine.CreateInput{}, fmt.Errorf("start_date: %w", err)
	}
	completion, err := engine.ParseDate(r.CompletionDate)
	if err != nil {
		return engine.CreateInput{}, fmt.Errorf("completion_date: %w", err)
	}

	return engine.CreateInput{
		UserID:         r.UserID,
		ProjectCode:    engine.ProjectCode(r.ProjectCode),
		Task:           r.Task,
		IssueRef:       r.IssueRef,
		Description:    r.Description,
		StandardHours:  standard,
		OvertimeHours:  overtime,
		StartDate:      start,
		CompletionDate: completion,
		Tags:           toTagPairs(r.Tags),
	}, nil
}

// UpdateEntryRequest carries a partial edit. Absent fields are kept.
type UpdateEntryRequest struct {
	IssueRef       *string       `json:"issue_ref,omitempty"`
	Description    *string       `json:"description,omitempty"`
	StandardHours  *string       `json:"standard_hours,omitempty"`
	OvertimeHours  *string       `json:"overtime_hours,omitempty"`
	StartDate      *string       `json:"start_date,omitempty"`
	CompletionDate *string       `json:"completion_date,omitempty"`
	Tags           *[]TagPairDTO `json:"tags,omitempty"`
}

// ToInput converts the request to the engine's input type.
func (r UpdateEntryRequest) ToInput() (engine.UpdateInput, error) {
	var input engine.UpdateInput
	input.IssueRef = r.IssueRef
	input.Description = r.Description

	if r.StandardHours != nil {
		d, err := parseHours(*r.StandardHours)
		if err != nil {
			return input, fmt.Errorf("standard_hours: %w", err)
		}
		input.StandardHours = &d
	}
	if r.OvertimeHours != nil {
		d, err := parseHours(*r.OvertimeHours)
		if err != nil {
			return input, fmt.Errorf("overtime_hours: %w", err)
		}
		input.OvertimeHours = &d
	}
	if r.StartDate != nil {
		d, err := engine.ParseDate(*r.StartDate)
		if err != nil {
			return input, fmt.Errorf("start_date: %w", err)
		}
		input.StartDate = &d
	}
	if r.CompletionDate != nil {
		d, err := engine.ParseDate(*r.CompletionDate)
		if err != nil {
			return input, fmt.Errorf("completion_date: %w", err)
		}
		input.CompletionDate = &d
	}
	if r.Tags != nil {
		tags := toTagPairs(*r.Tags)
		input.Tags = &tags
	}
	return input, nil
}

// ReplaceTagsRequest fully replaces an entry's tag set. An empty list
// clears all tags.
type ReplaceTagsRequest struct {
	Tags []TagPairDTO `json:"tags"`
}

// MoveEntryRequest retargets an entry.
type MoveEntryRequest struct {
	ProjectCode string `json:"project_code"`
	Task        string `json:"task"`
}

// DeclineEntryRequest carries the mandatory decline comment.
type DeclineEntryRequest struct {
	Comment string `json:"comment"`
}

// SubmitResponse is the entry plus advisory warnings about required
// tags the entry does not carry.
type SubmitResponse struct {
	Entry               EntryDTO `json:"entry"`
	MissingRequiredTags []string `json:"missing_required_tags,omitempty"`
}

// =============================================================================
// PROJECT TYPES
// =============================================================================

type ProjectTaskDTO struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type ProjectTagDTO struct {
	Name     string   `json:"name"`
	Active   bool     `json:"active"`
	Required bool     `json:"required"`
	Values   []string `json:"values"`
}

type ProjectDTO struct {
	Code   string           `json:"code"`
	Name   string           `json:"name"`
	Active bool             `json:"active"`
	Tasks  []ProjectTaskDTO `json:"tasks"`
	Tags   []ProjectTagDTO  `json:"tags"`
}

func toProjectDTO(p *engine.Project) ProjectDTO {
	tasks := make([]ProjectTaskDTO, len(p.Tasks))
	for i, t := range p.Tasks {
		tasks[i] = ProjectTaskDTO{Name: t.Name, Active: t.Active}
	}
	tags := make([]ProjectTagDTO, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = ProjectTagDTO{Name: t.Name, Active: t.Active, Required: t.Required, Values: t.Values}
	}
	return ProjectDTO{
		Code:   string(p.Code),
		Name:   p.Name,
		Active: p.Active,
		Tasks:  tasks,
		Tags:   tags,
	}
}

func (d ProjectDTO) toProject() engine.Project {
	tasks := make([]engine.ProjectTask, len(d.Tasks))
	for i, t := range d.Tasks {
		tasks[i] = engine.ProjectTask{Name: t.Name, Active: t.Active}
	}
	tags := make([]engine.ProjectTag, len(d.Tags))
	for i, t := range d.Tags {
		tags[i] = engine.ProjectTag{Name: t.Name, Active: t.Active, Required: t.Required, Values: t.Values}
	}
	return engine.Project{
		Code:   engine.ProjectCode(d.Code),
		Name:   d.Name,
		Active: d.Active,
		Tasks:  tasks,
		Tags:   tags,
	}
}

// =============================================================================
// SUGGESTION TYPES
// =============================================================================

// SuggestionDTO is a proposed create payload, pre-filled from the
// user's recent activity. Purely advisory.
type SuggestionDTO struct {
	ProjectCode string       `json:"project_code"`
	Task        string       `json:"task"`
	Tags        []TagPairDTO `json:"tags,omitempty"`
	StartDate   string       `json:"start_date"`
}

// =============================================================================
// ERROR RESPONSE
// =============================================================================

type FieldErrorDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error     string          `json:"error"`
	Field     string          `json:"field,omitempty"`
	Status    string          `json:"status,omitempty"`
	Failures  []FieldErrorDTO `json:"failures,omitempty"`
	Retryable bool            `json:"retryable,omitempty"`
	Details   string          `json:"details,omitempty"`
}

func parseHours(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal %q", s)
	}
	return d, nil
}
