/*
Package engine contains the time-entry validation and workflow engine.

PURPOSE:
  This package holds the domain model and the three components that give
  the system its semantics:
  - Validator:   checks a proposed entry against project configuration
  - Workflow:    decides which operations are legal in each status
  - Service:     composes both with the stores into atomic mutations

KEY CONCEPTS IN THIS FILE (types.go):
  - Project/ProjectTask/ProjectTag/TagValue: the configuration an entry
    is validated against (read-only from the engine's perspective)
  - TimeEntry: the mutable aggregate root holding hours, dates and tags
  - TagPair: one (tag name, tag value) attached to an entry
  - EntryStatus: the four lifecycle states

DESIGN PRINCIPLES:
  1. Precision: hours are decimal.Decimal, never float
  2. Type Safety: EntryID and ProjectCode are distinct string types
  3. Purity: nothing in this file performs I/O

SEE ALSO:
  - workflow.go:  status transition table
  - validator.go: configuration consistency checks
  - service.go:   the mutation orchestrator
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EntryID string
type ProjectCode string

// MaxProjectCodeLen bounds the project short code.
const MaxProjectCodeLen = 10

// =============================================================================
// CONFIGURATION - Projects, tasks, tags, allowed values
// =============================================================================

// Project is the configuration root an entry is logged against.
// Code is immutable once created; Name is unique across projects.
type Project struct {
	Code   ProjectCode
	Name   string
	Active bool
	Tasks  []ProjectTask
	Tags   []ProjectTag
}

// Task returns the named task, or nil. Task names are unique per project.
func (p *Project) Task(name string) *ProjectTask {
	for i := range p.Tasks {
		if p.Tasks[i].Name == name {
			return &p.Tasks[i]
		}
	}
	return nil
}

// Tag returns the named tag, or nil. Tag names are unique per project.
func (p *Project) Tag(name string) *ProjectTag {
	for i := range p.Tags {
		if p.Tags[i].Name == name {
			return &p.Tags[i]
		}
	}
	return nil
}

// ProjectTask belongs to exactly one project. The same task name may
// exist under different projects; those are distinct entities.
type ProjectTask struct {
	Name   string
	Active bool
}

// ProjectTag is a named metadata category with a controlled vocabulary.
// Required tags are surfaced to clients at submit time but the engine
// itself never blocks on them.
type ProjectTag struct {
	Name     string
	Active   bool
	Required bool
	Values   []string // ordered controlled vocabulary
}

// HasValue reports whether v is part of the tag's vocabulary.
func (t *ProjectTag) HasValue(v string) bool {
	for _, existing := range t.Values {
		if existing == v {
			return true
		}
	}
	return false
}

// =============================================================================
// TIME ENTRY - The mutable aggregate root
// =============================================================================

type EntryStatus string

const (
	StatusNotReported EntryStatus = "NOT_REPORTED"
	StatusSubmitted   EntryStatus = "SUBMITTED"
	StatusApproved    EntryStatus = "APPROVED"
	StatusDeclined    EntryStatus = "DECLINED"
)

// TagPair is one (tag name, tag value) held by an entry. An entry holds
// at most one pair per tag name and never the same pair twice.
type TagPair struct {
	Name  string
	Value string
}

// TimeEntry is a unit of worked time. Approved entries are permanently
// retained and never mutated or deleted by this engine.
type TimeEntry struct {
	ID          EntryID
	UserID      string
	ProjectCode ProjectCode
	Task        string

	IssueRef    string // optional external issue reference
	Description string

	StandardHours decimal.Decimal
	OvertimeHours decimal.Decimal

	StartDate      Date
	CompletionDate Date

	Status EntryStatus

	// DeclineComment is non-empty while the entry is Declined. It is
	// retained after resubmission unless the service is configured to
	// clear it, so a Submitted entry may still carry the last comment.
	DeclineComment string

	Tags []TagPair

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Editable reports whether the entry is in a state that permits
// edit/move/replace-tags/delete.
func (e *TimeEntry) Editable() bool {
	return e.Status == StatusNotReported || e.Status == StatusDeclined
}

// TagValueFor returns the value held for the named tag, if any.
func (e *TimeEntry) TagValueFor(name string) (string, bool) {
	for _, p := range e.Tags {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// CloneTags returns an independent copy of the entry's tag set.
func (e *TimeEntry) CloneTags() []TagPair {
	if len(e.Tags) == 0 {
		return nil
	}
	out := make([]TagPair, len(e.Tags))
	copy(out, e.Tags)
	return out
}

// Hours constructs a decimal hour quantity from a float literal.
// Test and seed helper; API input arrives as decimal strings.
func Hours(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}
