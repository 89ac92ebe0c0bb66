/*
service.go - Mutation orchestrator

PURPOSE:
  The eight operations (create, update, replace-tags, move, delete,
  submit, approve, decline) plus the read accessors. Each mutation
  loads the entry and the relevant configuration, consults the workflow
  guard, consults the validator where new data arrives, and performs a
  single atomic write.

OPERATION FLOW:
  request -> load entry -> Guard(status, op) -> Validate(payload)
          -> write inside one store transaction -> updated entry

  The guard runs before the validator; both run before any write. A
  failure at any step aborts with one of the three error kinds from
  errors.go and leaves the store untouched.

STATELESSNESS:
  The service holds no per-call state. Concurrent mutations against
  different entries are independent; mutations against the same entry
  are serialized by the store's transaction isolation.

SEE ALSO:
  - workflow.go:  the guard table
  - validator.go: configuration checks
  - store.go:     the persistence interfaces
*/
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service composes the validator, the workflow guard and the stores
// into atomic units of work.
type Service struct {
	Config    ConfigStore
	Entries   TxEntryStore
	Validator *Validator

	// ClearCommentOnSubmit drops the decline comment when a declined
	// entry is resubmitted. Off by default: the retained comment serves
	// as a lightweight audit trail.
	ClearCommentOnSubmit bool

	// Now is the clock, overridable in tests. Nil means time.Now.
	Now func() time.Time
}

func NewService(config ConfigStore, entries TxEntryStore) *Service {
	return &Service{
		Config:    config,
		Entries:   entries,
		Validator: NewValidator(config),
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// inTx runs fn in one store transaction and keeps the error taxonomy
// intact: engine errors pass through, raw store errors become
// infrastructure failures.
func (s *Service) inTx(ctx context.Context, fn func(EntryStore) error) error {
	err := s.Entries.WithTx(ctx, fn)
	if err == nil || IsValidation(err) || IsBusinessRule(err) || IsRetryable(err) {
		return err
	}
	return infraErr("transaction", err)
}

// loadEntry fetches an entry inside a transaction, translating a miss
// into the field-tagged not-found error every operation shares.
func loadEntry(ctx context.Context, store EntryStore, id EntryID) (*TimeEntry, error) {
	entry, err := store.Get(ctx, id)
	if err != nil {
		return nil, infraErr("load entry", err)
	}
	if entry == nil {
		return nil, NotFoundError(id)
	}
	return entry, nil
}

func payloadOf(e *TimeEntry) EntryPayload {
	return EntryPayload{
		ProjectCode:    e.ProjectCode,
		Task:           e.Task,
		Tags:           e.Tags,
		StandardHours:  e.StandardHours,
		OvertimeHours:  e.OvertimeHours,
		StartDate:      e.StartDate,
		CompletionDate: e.CompletionDate,
	}
}

// =============================================================================
// INPUTS - Typed, partially-optional structs per operation
// =============================================================================

// CreateInput is the full payload for a new entry.
type CreateInput struct {
	UserID         string
	ProjectCode    ProjectCode
	Task           string
	IssueRef       string
	Description    string
	StandardHours  decimal.Decimal
	OvertimeHours  decimal.Decimal
	StartDate      Date
	CompletionDate Date
	Tags           []TagPair
}

// UpdateInput is a partial edit: nil fields keep their current value.
// Project and task are not changeable here; use Move.
type UpdateInput struct {
	IssueRef       *string
	Description    *string
	StandardHours  *decimal.Decimal
	OvertimeHours  *decimal.Decimal
	StartDate      *Date
	CompletionDate *Date
	Tags           *[]TagPair
}

// MoveInput retargets an entry to another project/task.
type MoveInput struct {
	ProjectCode ProjectCode
	Task        string
}

// =============================================================================
// CREATE
// =============================================================================

// Create validates the full payload and persists a new entry in status
// NOT_REPORTED. The workflow guard is not consulted: there is no prior
// entry.
func (s *Service) Create(ctx context.Context, input CreateInput) (*TimeEntry, error) {
	payload := EntryPayload{
		ProjectCode:    input.ProjectCode,
		Task:           input.Task,
		Tags:           input.Tags,
		StandardHours:  input.StandardHours,
		OvertimeHours:  input.OvertimeHours,
		StartDate:      input.StartDate,
		CompletionDate: input.CompletionDate,
	}
	failures, err := s.Validator.Validate(ctx, payload)
	if err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return nil, NewValidationErrors(failures)
	}

	now := s.now()
	entry := &TimeEntry{
		ID:             EntryID(uuid.NewString()),
		UserID:         input.UserID,
		ProjectCode:    input.ProjectCode,
		Task:           input.Task,
		IssueRef:       input.IssueRef,
		Description:    input.Description,
		StandardHours:  input.StandardHours,
		OvertimeHours:  input.OvertimeHours,
		StartDate:      input.StartDate,
		CompletionDate: input.CompletionDate,
		Status:         StatusNotReported,
		Tags:           input.Tags,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.inTx(ctx, func(store EntryStore) error {
		return store.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// =============================================================================
// UPDATE
// =============================================================================

// Update merges the supplied fields over the existing entry and
// revalidates the merged result against the project's configuration.
func (s *Service) Update(ctx context.Context, id EntryID, input UpdateInput) (*TimeEntry, error) {
	var updated *TimeEntry
	err := s.inTx(ctx, func(store EntryStore) error {
		entry, err := loadEntry(ctx, store, id)
		if err != nil {
			return err
		}

		decision := Guard(entry.Status, OpUpdate)
		if !decision.Allowed {
			return &BusinessRuleError{Status: entry.Status, Message: decision.Reason}
		}

		merged := *entry
		merged.Tags = entry.CloneTags()
		if input.IssueRef != nil {
			merged.IssueRef = *input.IssueRef
		}
		if input.Description != nil {
			merged.Description = *input.Description
		}
		if input.StandardHours != nil {
			merged.StandardHours = *input.StandardHours
		}
		if input.OvertimeHours != nil {
			merged.OvertimeHours = *input.OvertimeHours
		}
		if input.StartDate != nil {
			merged.StartDate = *input.StartDate
		}
		if input.CompletionDate != nil {
			merged.CompletionDate = *input.CompletionDate
		}
		if input.Tags != nil {
			merged.Tags = *input.Tags
		}

		failures, err := s.Validator.Validate(ctx, payloadOf(&merged))
		if err != nil {
			return err
		}
		if len(failures) > 0 {
			return NewValidationErrors(failures)
		}

		merged.Status = decision.Next
		merged.UpdatedAt = s.now()
		if err := store.Update(ctx, &merged); err != nil {
			return infraErr("update entry", err)
		}
		updated = &merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// =============================================================================
// REPLACE TAGS
// =============================================================================

// ReplaceTags fully replaces the entry's tag set (clear-then-add, not
// merge). An empty list is legal and clears all tags. Tags validate
// against the entry's current project configuration.
func (s *Service) ReplaceTags(ctx context.Context, id EntryID, tags []TagPair) (*TimeEntry, error) {
	var updated *TimeEntry
	err := s.inTx(ctx, func(store EntryStore) error {
		entry, err := loadEntry(ctx, store, id)
		if err != nil {
			return err
		}

		decision := Guard(entry.Status, OpReplaceTags)
		if !decision.Allowed {
			return &BusinessRuleError{Status: entry.Status, Message: decision.Reason}
		}

		failures, err := s.Validator.ValidateTags(ctx, entry.ProjectCode, tags)
		if err != nil {
			return err
		}
		if len(failures) > 0 {
			return NewValidationErrors(failures)
		}

		modified := *entry
		modified.Tags = tags
		modified.Status = decision.Next
		modified.UpdatedAt = s.now()
		if err := store.Update(ctx, &modified); err != nil {
			return infraErr("replace tags", err)
		}
		updated = &modified
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// =============================================================================
// MOVE
// =============================================================================

// Move retargets the entry to another project/task. A cross-project
// move discards all tags: tags are project-scoped and cannot be assumed
// valid elsewhere. A task-only move within the same project preserves
// the tag set unmodified.
func (s *Service) Move(ctx context.Context, id EntryID, input MoveInput) (*TimeEntry, error) {
	var updated *TimeEntry
	err := s.inTx(ctx, func(store EntryStore) error {
		entry, err := loadEntry(ctx, store, id)
		if err != nil {
			return err
		}

		decision := Guard(entry.Status, OpMove)
		if !decision.Allowed {
			return &BusinessRuleError{Status: entry.Status, Message: decision.Reason}
		}

		failures, err := s.Validator.ValidateMove(ctx, input.ProjectCode, input.Task)
		if err != nil {
			return err
		}
		if len(failures) > 0 {
			return NewValidationErrors(failures)
		}

		modified := *entry
		if input.ProjectCode != entry.ProjectCode {
			modified.Tags = nil
		} else {
			modified.Tags = entry.CloneTags()
		}
		modified.ProjectCode = input.ProjectCode
		modified.Task = input.Task
		modified.Status = decision.Next
		modified.UpdatedAt = s.now()
		if err := store.Update(ctx, &modified); err != nil {
			return infraErr("move entry", err)
		}
		updated = &modified
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// =============================================================================
// DELETE
// =============================================================================

// Delete removes the entry and its tag associations atomically.
// Permitted only while NOT_REPORTED or DECLINED.
func (s *Service) Delete(ctx context.Context, id EntryID) (bool, error) {
	var deleted bool
	err := s.inTx(ctx, func(store EntryStore) error {
		entry, err := loadEntry(ctx, store, id)
		if err != nil {
			return err
		}

		decision := Guard(entry.Status, OpDelete)
		if !decision.Allowed {
			return &BusinessRuleError{Status: entry.Status, Message: decision.Reason}
		}

		deleted, err = store.Delete(ctx, id)
		if err != nil {
			return infraErr("delete entry", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// =============================================================================
// SUBMIT / APPROVE / DECLINE
// =============================================================================

// Submit moves an entry into SUBMITTED. The entry was already valid
// when written, so no payload revalidation happens beyond the guard.
func (s *Service) Submit(ctx context.Context, id EntryID) (*TimeEntry, error) {
	return s.transition(ctx, id, OpSubmit, func(entry *TimeEntry) {
		if s.ClearCommentOnSubmit {
			entry.DeclineComment = ""
		}
	})
}

// Approve moves a SUBMITTED entry into its terminal APPROVED state.
func (s *Service) Approve(ctx context.Context, id EntryID) (*TimeEntry, error) {
	return s.transition(ctx, id, OpApprove, nil)
}

// Decline moves a SUBMITTED entry to DECLINED with a mandatory comment.
// The comment is validated before the guard runs, so an empty comment
// never changes the entry's status.
func (s *Service) Decline(ctx context.Context, id EntryID, comment string) (*TimeEntry, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, NewValidationError(FieldComment, "decline comment is required")
	}
	return s.transition(ctx, id, OpDecline, func(entry *TimeEntry) {
		entry.DeclineComment = comment
	})
}

// transition applies one guard-checked status change plus an optional
// mutation of the loaded entry, in one write.
func (s *Service) transition(ctx context.Context, id EntryID, op Operation, apply func(*TimeEntry)) (*TimeEntry, error) {
	var updated *TimeEntry
	err := s.inTx(ctx, func(store EntryStore) error {
		entry, err := loadEntry(ctx, store, id)
		if err != nil {
			return err
		}

		decision := Guard(entry.Status, op)
		if !decision.Allowed {
			return &BusinessRuleError{Status: entry.Status, Message: decision.Reason}
		}

		modified := *entry
		modified.Tags = entry.CloneTags()
		if apply != nil {
			apply(&modified)
		}
		modified.Status = decision.Next
		modified.UpdatedAt = s.now()
		if err := store.Update(ctx, &modified); err != nil {
			return infraErr(string(op), err)
		}
		updated = &modified
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// =============================================================================
// READS - Pass-through to the entry store
// =============================================================================

// Get returns the entry or the field-tagged not-found error.
func (s *Service) Get(ctx context.Context, id EntryID) (*TimeEntry, error) {
	entry, err := s.Entries.Get(ctx, id)
	if err != nil {
		return nil, infraErr("load entry", err)
	}
	if entry == nil {
		return nil, NotFoundError(id)
	}
	return entry, nil
}

// List returns entries matching the filter. No business logic beyond
// filter translation.
func (s *Service) List(ctx context.Context, filter EntryFilter) ([]TimeEntry, error) {
	entries, err := s.Entries.List(ctx, filter)
	if err != nil {
		return nil, infraErr("list entries", err)
	}
	return entries, nil
}
