/*
store.go - Persistence interfaces for configuration and entries

PURPOSE:
  Defines the boundary between the engine and its two collaborators:
  the read-only configuration store (projects, tasks, tags) and the
  durable entry store. Different implementations may use SQLite,
  PostgreSQL, or in-memory storage.

ATOMICITY:
  Every mutation runs inside WithTx: read current entry, validate,
  write, with no observable intermediate state. Serialization of
  concurrent mutations against the same entry is the store's job
  (transaction isolation), not the engine's.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: production SQLite
  - engine/store/memory.go: in-memory for testing

SEE ALSO:
  - service.go: the consumer of these interfaces
*/
package engine

import "context"

// =============================================================================
// CONFIG STORE - Read-only from the engine's perspective
// =============================================================================

// ConfigStore reads project configuration. Lookups return (nil, nil)
// when the record does not exist; errors are infrastructure failures.
type ConfigStore interface {
	// GetProject returns the project with its tasks and tags loaded.
	GetProject(ctx context.Context, code ProjectCode) (*Project, error)

	// GetTask returns one task under a project.
	GetTask(ctx context.Context, code ProjectCode, taskName string) (*ProjectTask, error)

	// GetTag returns one tag, with its allowed values, under a project.
	GetTag(ctx context.Context, code ProjectCode, tagName string) (*ProjectTag, error)
}

// =============================================================================
// ENTRY STORE
// =============================================================================

// EntryFilter narrows List results. Nil members match everything.
// From/To select entries whose date range overlaps [From, To].
type EntryFilter struct {
	UserID      *string
	ProjectCode *ProjectCode
	Status      *EntryStatus
	From        *Date
	To          *Date
}

// EntryStore persists time entries and their tag rows. Get returns
// (nil, nil) for an unknown id. Create and Update write the entry and
// its full tag set; Delete removes both and reports whether anything
// was removed.
type EntryStore interface {
	Get(ctx context.Context, id EntryID) (*TimeEntry, error)
	Create(ctx context.Context, entry *TimeEntry) error
	Update(ctx context.Context, entry *TimeEntry) error
	Delete(ctx context.Context, id EntryID) (bool, error)
	List(ctx context.Context, filter EntryFilter) ([]TimeEntry, error)
}

// TxEntryStore wraps EntryStore with transaction support.
type TxEntryStore interface {
	EntryStore

	// WithTx executes fn within a transaction. If fn returns an error
	// the transaction is rolled back, otherwise committed.
	WithTx(ctx context.Context, fn func(EntryStore) error) error
}
