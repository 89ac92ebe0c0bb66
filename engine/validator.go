/*
validator.go - Configuration consistency checks

PURPOSE:
  Confirms that a proposed entry payload is consistent with its
  project's configuration: the project and task exist and are active,
  hours are non-negative, dates are ordered, and every supplied tag
  pair resolves to an active project tag and one of its allowed values.

FAILURE MODEL:
  All failures for a call are collected, each tagged with the field a
  client would highlight. Messages for tag failures carry the offending
  name or value so callers can distinguish "unknown tag name" from
  "unknown value". The validator never mutates state and is safe to
  call speculatively.

SEE ALSO:
  - errors.go:  field identifiers and ValidationError
  - service.go: converts a non-empty failure list into an error
*/
package engine

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// EntryPayload is the validator's input: the proposed state of an
// entry after a mutation would be applied.
type EntryPayload struct {
	ProjectCode    ProjectCode
	Task           string
	Tags           []TagPair
	StandardHours  decimal.Decimal
	OvertimeHours  decimal.Decimal
	StartDate      Date
	CompletionDate Date
}

// Validator checks payloads against the configuration store.
type Validator struct {
	Config ConfigStore
}

func NewValidator(config ConfigStore) *Validator {
	return &Validator{Config: config}
}

// Validate returns the itemized failures for payload, or nil when it is
// consistent. A store failure aborts with an InfrastructureError.
func (v *Validator) Validate(ctx context.Context, payload EntryPayload) ([]FieldError, error) {
	var failures []FieldError

	project, err := v.Config.GetProject(ctx, payload.ProjectCode)
	if err != nil {
		return nil, infraErr("load project", err)
	}

	switch {
	case project == nil:
		failures = append(failures, FieldError{
			Field:   FieldProjectCode,
			Message: fmt.Sprintf("unknown project: %s", payload.ProjectCode),
		})
	case !project.Active:
		failures = append(failures, FieldError{
			Field:   FieldProjectCode,
			Message: fmt.Sprintf("project %s is inactive", payload.ProjectCode),
		})
	}

	if project != nil {
		task := project.Task(payload.Task)
		switch {
		case task == nil:
			failures = append(failures, FieldError{
				Field:   FieldTask,
				Message: fmt.Sprintf("unknown task %q under project %s", payload.Task, payload.ProjectCode),
			})
		case !task.Active:
			failures = append(failures, FieldError{
				Field:   FieldTask,
				Message: fmt.Sprintf("task %q is inactive", payload.Task),
			})
		}
	}

	if payload.StandardHours.IsNegative() {
		failures = append(failures, FieldError{
			Field:   FieldStandardHours,
			Message: "standard hours must not be negative",
		})
	}
	if payload.OvertimeHours.IsNegative() {
		failures = append(failures, FieldError{
			Field:   FieldOvertimeHours,
			Message: "overtime hours must not be negative",
		})
	}

	if payload.CompletionDate.Before(payload.StartDate) {
		failures = append(failures, FieldError{
			Field:   FieldCompletionDate,
			Message: "start date must be on or before completion date",
		})
	}

	if project != nil {
		failures = append(failures, validateTags(project, payload.Tags)...)
	}

	return failures, nil
}

// ValidateMove checks only what a project/task move needs: the target
// project is active and the target task is active within it.
func (v *Validator) ValidateMove(ctx context.Context, code ProjectCode, taskName string) ([]FieldError, error) {
	payload := EntryPayload{ProjectCode: code, Task: taskName}
	return v.Validate(ctx, payload)
}

// validateTags checks each supplied pair against the project's tag
// configuration and rejects two pairs naming the same tag.
func validateTags(project *Project, tags []TagPair) []FieldError {
	var failures []FieldError
	seen := make(map[string]bool, len(tags))

	for _, pair := range tags {
		if seen[pair.Name] {
			failures = append(failures, FieldError{
				Field:   FieldTags,
				Message: fmt.Sprintf("tag %q supplied more than once", pair.Name),
			})
			continue
		}
		seen[pair.Name] = true

		tag := project.Tag(pair.Name)
		if tag == nil {
			failures = append(failures, FieldError{
				Field:   FieldTags,
				Message: fmt.Sprintf("unknown tag %q for project %s", pair.Name, project.Code),
			})
			continue
		}
		if !tag.Active {
			failures = append(failures, FieldError{
				Field:   FieldTags,
				Message: fmt.Sprintf("tag %q is inactive", pair.Name),
			})
			continue
		}
		if !tag.HasValue(pair.Value) {
			failures = append(failures, FieldError{
				Field:   FieldTags,
				Message: fmt.Sprintf("unknown value %q for tag %q", pair.Value, pair.Name),
			})
		}
	}

	return failures
}

// ValidateTags checks a tag set against one project's configuration
// without re-checking the rest of the payload. Used by replace-tags,
// where hours and dates are untouched.
func (v *Validator) ValidateTags(ctx context.Context, code ProjectCode, tags []TagPair) ([]FieldError, error) {
	project, err := v.Config.GetProject(ctx, code)
	if err != nil {
		return nil, infraErr("load project", err)
	}
	if project == nil {
		return []FieldError{{
			Field:   FieldProjectCode,
			Message: fmt.Sprintf("unknown project: %s", code),
		}}, nil
	}
	return validateTags(project, tags), nil
}

// MissingRequiredTags reports the names of required tags absent from
// the supplied set. Advisory: the boundary surfaces these as warnings,
// the engine never blocks on them.
func (v *Validator) MissingRequiredTags(ctx context.Context, code ProjectCode, tags []TagPair) ([]string, error) {
	project, err := v.Config.GetProject(ctx, code)
	if err != nil {
		return nil, infraErr("load project", err)
	}
	if project == nil {
		return nil, nil
	}

	supplied := make(map[string]bool, len(tags))
	for _, pair := range tags {
		supplied[pair.Name] = true
	}

	var missing []string
	for _, tag := range project.Tags {
		if tag.Required && tag.Active && !supplied[tag.Name] {
			missing = append(missing, tag.Name)
		}
	}
	return missing, nil
}
