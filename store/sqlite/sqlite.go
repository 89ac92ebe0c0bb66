/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements engine.ConfigStore and engine.TxEntryStore using SQLite.
  In production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  projects:        Configuration roots (short code, unique name, active)
  project_tasks:   Tasks, unique per project
  project_tags:    Tags, unique per project, with required flag
  tag_values:      Ordered controlled vocabulary per tag
  time_entries:    The entries themselves
  time_entry_tags: (entry, tag name, tag value) rows, one per tag name

REFERENTIAL INTEGRITY:
  Foreign keys mirror the engine invariants:
  - (project_code, task) on time_entries references project_tasks, so a
    committed entry's task always belongs to its project
  - time_entry_tags cascade with their entry
  - deleting a project cascades to its tasks/tags/values but is blocked
    while any time_entries row references it
  - one tag value per tag name per entry via a unique index

CONCURRENCY:
  Uses sync.RWMutex for thread-safety and WAL mode for better read
  concurrency. Mutations run inside WithTx so a failed operation never
  leaves tags replaced without the parent row changing.

USAGE:
  store, err := sqlite.New("./data/timelog.db")
  svc := engine.NewService(store, store)

SEE ALSO:
  - engine/store.go: interface definitions
  - engine/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/timelog/engine"
)

// Store implements engine.ConfigStore and engine.TxEntryStore.
type Store struct {
	db *sql.DB
	mu sync.RWMutex

	// txMu serializes WithTx callers. Deliberately separate from mu:
	// transaction callbacks read configuration through GetProject,
	// which takes mu.RLock.
	txMu sync.Mutex
}

// memSeq distinguishes in-memory databases so parallel tests do not
// share state through the shared cache.
var memSeq atomic.Int64

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	// A plain ":memory:" database is per-connection, so the pool would
	// hand each caller its own empty database. A uniquely named
	// shared-cache database gives every pooled connection the same data.
	dsn := dbPath + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
	if dbPath == ":memory:" {
		dsn = fmt.Sprintf("file:memdb%d?mode=memory&cache=shared&_foreign_keys=on", memSeq.Add(1))
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		code TEXT PRIMARY KEY CHECK (length(code) <= 10),
		name TEXT NOT NULL UNIQUE,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS project_tasks (
		project_code TEXT NOT NULL REFERENCES projects(code) ON DELETE CASCADE,
		name TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		PRIMARY KEY (project_code, name)
	);

	CREATE TABLE IF NOT EXISTS project_tags (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_code TEXT NOT NULL REFERENCES projects(code) ON DELETE CASCADE,
		name TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		required BOOLEAN NOT NULL DEFAULT FALSE,
		UNIQUE (project_code, name)
	);

	CREATE TABLE IF NOT EXISTS tag_values (
		tag_id INTEGER NOT NULL REFERENCES project_tags(id) ON DELETE CASCADE,
		value TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		UNIQUE (tag_id, value)
	);

	CREATE TABLE IF NOT EXISTS time_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		project_code TEXT NOT NULL,
		task TEXT NOT NULL,
		issue_ref TEXT,
		description TEXT,
		standard_hours TEXT NOT NULL,
		overtime_hours TEXT NOT NULL,
		start_date TEXT NOT NULL,
		completion_date TEXT NOT NULL,
		status TEXT NOT NULL,
		decline_comment TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (project_code) REFERENCES projects(code),
		FOREIGN KEY (project_code, task) REFERENCES project_tasks(project_code, name),
		CHECK (start_date <= completion_date)
	);

	CREATE INDEX IF NOT EXISTS idx_entries_user
		ON time_entries(user_id);
	CREATE INDEX IF NOT EXISTS idx_entries_project
		ON time_entries(project_code);
	CREATE INDEX IF NOT EXISTS idx_entries_status
		ON time_entries(status);
	CREATE INDEX IF NOT EXISTS idx_entries_dates
		ON time_entries(start_date, completion_date);

	CREATE TABLE IF NOT EXISTS time_entry_tags (
		entry_id TEXT NOT NULL REFERENCES time_entries(id) ON DELETE CASCADE,
		tag_name TEXT NOT NULL,
		tag_value TEXT NOT NULL
	);

	-- One value per tag name per entry
	CREATE UNIQUE INDEX IF NOT EXISTS idx_entry_tags_unique
		ON time_entry_tags(entry_id, tag_name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// CONFIG STORE (engine.ConfigStore interface)
// =============================================================================

// GetProject returns a project with its tasks and tags, or nil.
func (s *Store) GetProject(ctx context.Context, code engine.ProjectCode) (*engine.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getProject(ctx, s.db, code)
}

func (s *Store) getProject(ctx context.Context, db dbtx, code engine.ProjectCode) (*engine.Project, error) {
	var p engine.Project
	err := db.QueryRowContext(ctx,
		"SELECT code, name, active FROM projects WHERE code = ?", code,
	).Scan(&p.Code, &p.Name, &p.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT name, active FROM project_tasks WHERE project_code = ? ORDER BY name", code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var t engine.ProjectTask
		if err := rows.Scan(&t.Name, &t.Active); err != nil {
			return nil, err
		}
		p.Tasks = append(p.Tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tagRows, err := db.QueryContext(ctx,
		"SELECT id, name, active, required FROM project_tags WHERE project_code = ? ORDER BY name", code)
	if err != nil {
		return nil, err
	}
	defer tagRows.Close()

	var tagIDs []int64
	for tagRows.Next() {
		var id int64
		var t engine.ProjectTag
		if err := tagRows.Scan(&id, &t.Name, &t.Active, &t.Required); err != nil {
			return nil, err
		}
		p.Tags = append(p.Tags, t)
		tagIDs = append(tagIDs, id)
	}
	if err := tagRows.Err(); err != nil {
		return nil, err
	}

	for i, id := range tagIDs {
		values, err := s.tagValues(ctx, db, id)
		if err != nil {
			return nil, err
		}
		p.Tags[i].Values = values
	}

	return &p, nil
}

func (s *Store) tagValues(ctx context.Context, db dbtx, tagID int64) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT value FROM tag_values WHERE tag_id = ? ORDER BY position, value", tagID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// GetTask returns one task under a project, or nil.
func (s *Store) GetTask(ctx context.Context, code engine.ProjectCode, taskName string) (*engine.ProjectTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t engine.ProjectTask
	err := s.db.QueryRowContext(ctx,
		"SELECT name, active FROM project_tasks WHERE project_code = ? AND name = ?",
		code, taskName,
	).Scan(&t.Name, &t.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTag returns one tag with its allowed values, or nil.
func (s *Store) GetTag(ctx context.Context, code engine.ProjectCode, tagName string) (*engine.ProjectTag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id int64
	var t engine.ProjectTag
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, active, required FROM project_tags WHERE project_code = ? AND name = ?",
		code, tagName,
	).Scan(&id, &t.Name, &t.Active, &t.Required)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	values, err := s.tagValues(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	t.Values = values
	return &t, nil
}

// =============================================================================
// CONFIG ADMIN - Write side used by seeding and the admin API
// =============================================================================

// SaveProject upserts a project with its full task/tag configuration.
// Existing tasks/tags are replaced wholesale; the project code itself
// is immutable.
func (s *Store) SaveProject(ctx context.Context, p engine.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(p.Code) > engine.MaxProjectCodeLen {
		return fmt.Errorf("project code %q exceeds %d characters", p.Code, engine.MaxProjectCodeLen)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (code, name, active, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			active = excluded.active
	`, p.Code, p.Name, p.Active, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM project_tasks WHERE project_code = ?", p.Code); err != nil {
		return err
	}
	for _, t := range p.Tasks {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO project_tasks (project_code, name, active) VALUES (?, ?, ?)",
			p.Code, t.Name, t.Active); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM project_tags WHERE project_code = ?", p.Code); err != nil {
		return err
	}
	for _, tag := range p.Tags {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO project_tags (project_code, name, active, required) VALUES (?, ?, ?, ?)",
			p.Code, tag.Name, tag.Active, tag.Required)
		if err != nil {
			return err
		}
		tagID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for i, v := range tag.Values {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO tag_values (tag_id, value, position) VALUES (?, ?, ?)",
				tagID, v, i); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// ListProjects returns all projects with configuration loaded.
func (s *Store) ListProjects(ctx context.Context) ([]engine.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT code FROM projects ORDER BY code")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []engine.ProjectCode
	for rows.Next() {
		var code engine.ProjectCode
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var projects []engine.Project
	for _, code := range codes {
		p, err := s.getProject(ctx, s.db, code)
		if err != nil {
			return nil, err
		}
		if p != nil {
			projects = append(projects, *p)
		}
	}
	return projects, nil
}

// DeleteProject removes a project and cascades to its tasks/tags.
// Fails while any time entry references the project.
func (s *Store) DeleteProject(ctx context.Context, code engine.ProjectCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM time_entries WHERE project_code = ?", code,
	).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("project %s has %d time entries and cannot be deleted", code, count)
	}

	_, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE code = ?", code)
	return err
}

// =============================================================================
// ENTRY STORE (engine.EntryStore interface)
// =============================================================================

// Get returns an entry with its tags, or nil.
func (s *Store) Get(ctx context.Context, id engine.EntryID) (*engine.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getEntry(ctx, s.db, id)
}

const entryColumns = `id, user_id, project_code, task, issue_ref, description,
	standard_hours, overtime_hours, start_date, completion_date,
	status, decline_comment, created_at, updated_at`

func (s *Store) getEntry(ctx context.Context, db dbtx, id engine.EntryID) (*engine.TimeEntry, error) {
	row := db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM time_entries WHERE id = ?", id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tags, err := s.entryTags(ctx, db, id)
	if err != nil {
		return nil, err
	}
	entry.Tags = tags
	return entry, nil
}

func (s *Store) entryTags(ctx context.Context, db dbtx, id engine.EntryID) ([]engine.TagPair, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT tag_name, tag_value FROM time_entry_tags WHERE entry_id = ? ORDER BY tag_name", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []engine.TagPair
	for rows.Next() {
		var p engine.TagPair
		if err := rows.Scan(&p.Name, &p.Value); err != nil {
			return nil, err
		}
		tags = append(tags, p)
	}
	return tags, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*engine.TimeEntry, error) {
	var (
		e              engine.TimeEntry
		issueRef       sql.NullString
		description    sql.NullString
		declineComment sql.NullString
		standardHours  string
		overtimeHours  string
		startDate      string
		completionDate string
		createdAt      string
		updatedAt      string
	)

	err := row.Scan(
		&e.ID, &e.UserID, &e.ProjectCode, &e.Task, &issueRef, &description,
		&standardHours, &overtimeHours, &startDate, &completionDate,
		&e.Status, &declineComment, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.IssueRef = issueRef.String
	e.Description = description.String
	e.DeclineComment = declineComment.String
	e.StandardHours = mustDecimal(standardHours)
	e.OvertimeHours = mustDecimal(overtimeHours)
	e.StartDate, _ = engine.ParseDate(startDate)
	e.CompletionDate, _ = engine.ParseDate(completionDate)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &e, nil
}

// Create inserts the entry and its tag rows.
func (s *Store) Create(ctx context.Context, entry *engine.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createEntry(ctx, s.db, entry)
}

func (s *Store) createEntry(ctx context.Context, db dbtx, entry *engine.TimeEntry) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO time_entries
		(id, user_id, project_code, task, issue_ref, description,
		 standard_hours, overtime_hours, start_date, completion_date,
		 status, decline_comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID, entry.UserID, entry.ProjectCode, entry.Task,
		nullString(entry.IssueRef), nullString(entry.Description),
		entry.StandardHours.String(), entry.OvertimeHours.String(),
		entry.StartDate.String(), entry.CompletionDate.String(),
		entry.Status, nullString(entry.DeclineComment),
		entry.CreatedAt.UTC().Format(time.RFC3339),
		entry.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return s.writeTags(ctx, db, entry.ID, entry.Tags)
}

// Update rewrites the entry row and replaces its tag rows.
func (s *Store) Update(ctx context.Context, entry *engine.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateEntry(ctx, s.db, entry)
}

func (s *Store) updateEntry(ctx context.Context, db dbtx, entry *engine.TimeEntry) error {
	_, err := db.ExecContext(ctx, `
		UPDATE time_entries SET
			user_id = ?, project_code = ?, task = ?, issue_ref = ?,
			description = ?, standard_hours = ?, overtime_hours = ?,
			start_date = ?, completion_date = ?, status = ?,
			decline_comment = ?, updated_at = ?
		WHERE id = ?
	`,
		entry.UserID, entry.ProjectCode, entry.Task,
		nullString(entry.IssueRef), nullString(entry.Description),
		entry.StandardHours.String(), entry.OvertimeHours.String(),
		entry.StartDate.String(), entry.CompletionDate.String(),
		entry.Status, nullString(entry.DeclineComment),
		entry.UpdatedAt.UTC().Format(time.RFC3339),
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		"DELETE FROM time_entry_tags WHERE entry_id = ?", entry.ID); err != nil {
		return err
	}
	return s.writeTags(ctx, db, entry.ID, entry.Tags)
}

func (s *Store) writeTags(ctx context.Context, db dbtx, id engine.EntryID, tags []engine.TagPair) error {
	for _, tag := range tags {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO time_entry_tags (entry_id, tag_name, tag_value) VALUES (?, ?, ?)",
			id, tag.Name, tag.Value); err != nil {
			return fmt.Errorf("failed to insert entry tag: %w", err)
		}
	}
	return nil
}

// Delete removes the entry; tag rows cascade.
func (s *Store) Delete(ctx context.Context, id engine.EntryID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteEntry(ctx, s.db, id)
}

func (s *Store) deleteEntry(ctx context.Context, db dbtx, id engine.EntryID) (bool, error) {
	res, err := db.ExecContext(ctx, "DELETE FROM time_entries WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns entries matching the filter, oldest first.
func (s *Store) List(ctx context.Context, filter engine.EntryFilter) ([]engine.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		conds []string
		args  []any
	)
	if filter.UserID != nil {
		conds = append(conds, "user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.ProjectCode != nil {
		conds = append(conds, "project_code = ?")
		args = append(args, *filter.ProjectCode)
	}
	if filter.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, *filter.Status)
	}
	// Overlap: entry range [start, completion] intersects [From, To].
	if filter.From != nil {
		conds = append(conds, "completion_date >= ?")
		args = append(args, filter.From.String())
	}
	if filter.To != nil {
		conds = append(conds, "start_date <= ?")
		args = append(args, filter.To.String())
	}

	query := "SELECT " + entryColumns + " FROM time_entries"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []engine.TimeEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		tags, err := s.entryTags(ctx, s.db, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Tags = tags
	}
	return entries, nil
}

// =============================================================================
// TRANSACTIONAL STORE (engine.TxEntryStore interface)
// =============================================================================

// WithTx executes fn within a database transaction.
func (s *Store) WithTx(ctx context.Context, fn func(engine.EntryStore) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	txStore := &txStore{tx: sqlTx, parent: s}
	if err := fn(txStore); err != nil {
		return err
	}
	return sqlTx.Commit()
}

type txStore struct {
	tx     *sql.Tx
	parent *Store
}

func (ts *txStore) Get(ctx context.Context, id engine.EntryID) (*engine.TimeEntry, error) {
	return ts.parent.getEntry(ctx, ts.tx, id)
}

func (ts *txStore) Create(ctx context.Context, entry *engine.TimeEntry) error {
	return ts.parent.createEntry(ctx, ts.tx, entry)
}

func (ts *txStore) Update(ctx context.Context, entry *engine.TimeEntry) error {
	return ts.parent.updateEntry(ctx, ts.tx, entry)
}

func (ts *txStore) Delete(ctx context.Context, id engine.EntryID) (bool, error) {
	return ts.parent.deleteEntry(ctx, ts.tx, id)
}

func (ts *txStore) List(ctx context.Context, filter engine.EntryFilter) ([]engine.TimeEntry, error) {
	return nil, fmt.Errorf("list is not available inside a transaction")
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"time_entry_tags", "time_entries", "tag_values", "project_tags", "project_tasks", "projects"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
