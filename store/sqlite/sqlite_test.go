package sqlite

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/warp/timelog/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedProject(t *testing.T, store *Store) {
	t.Helper()
	err := store.SaveProject(context.Background(), engine.Project{
		Code:   "INTERNAL",
		Name:   "Internal Development",
		Active: true,
		Tasks: []engine.ProjectTask{
			{Name: "Development", Active: true},
			{Name: "Code Review", Active: true},
		},
		Tags: []engine.ProjectTag{
			{Name: "Environment", Active: true, Values: []string{"Development", "Staging", "Production"}},
			{Name: "Billable", Active: true, Required: true, Values: []string{"Yes", "No"}},
		},
	})
	if err != nil {
		t.Fatalf("Failed to seed project: %v", err)
	}
}

func testEntry(id string) *engine.TimeEntry {
	start, _ := engine.ParseDate("2026-03-02")
	end, _ := engine.ParseDate("2026-03-06")
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	return &engine.TimeEntry{
		ID:             engine.EntryID(id),
		UserID:         "alice",
		ProjectCode:    "INTERNAL",
		Task:           "Development",
		IssueRef:       "DEV-42",
		Description:    "Feature work",
		StandardHours:  engine.Hours(8),
		OvertimeHours:  engine.Hours(1.5),
		StartDate:      start,
		CompletionDate: end,
		Status:         engine.StatusNotReported,
		Tags: []engine.TagPair{
			{Name: "Environment", Value: "Staging"},
			{Name: "Billable", Value: "Yes"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// =============================================================================
// PROJECT CONFIGURATION
// =============================================================================

func TestProjectRoundTrip(t *testing.T) {
	store := newTestStore(t)
	seedProject(t, store)
	ctx := context.Background()

	p, err := store.GetProject(ctx, "INTERNAL")
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if p == nil {
		t.Fatal("expected project, got nil")
	}
	if p.Name != "Internal Development" || !p.Active {
		t.Errorf("unexpected project: %+v", p)
	}
	if len(p.Tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(p.Tasks))
	}
	if len(p.Tags) != 2 {
		t.Errorf("expected 2 tags, got %d", len(p.Tags))
	}

	env := p.Tag("Environment")
	if env == nil {
		t.Fatal("Environment tag missing")
	}
	// Value order is preserved
	want := []string{"Development", "Staging", "Production"}
	for i, v := range want {
		if env.Values[i] != v {
			t.Errorf("value[%d] = %q, want %q", i, env.Values[i], v)
		}
	}

	billable := p.Tag("Billable")
	if billable == nil || !billable.Required {
		t.Errorf("Billable tag should be required: %+v", billable)
	}
}

func TestGetProject_Unknown(t *testing.T) {
	store := newTestStore(t)

	p, err := store.GetProject(context.Background(), "GHOST")
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for unknown project, got %+v", p)
	}
}

func TestSaveProject_ReplacesConfiguration(t *testing.T) {
	// GIVEN: A stored project configuration
	// WHEN: Saved again with a different task and tag set
	// THEN: The old configuration is fully replaced

	store := newTestStore(t)
	seedProject(t, store)
	ctx := context.Background()

	err := store.SaveProject(ctx, engine.Project{
		Code:   "INTERNAL",
		Name:   "Internal Development",
		Active: false,
		Tasks:  []engine.ProjectTask{{Name: "Maintenance", Active: true}},
		Tags:   []engine.ProjectTag{{Name: "Quarter", Active: true, Values: []string{"Q1", "Q2"}}},
	})
	if err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	p, err := store.GetProject(ctx, "INTERNAL")
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if p.Active {
		t.Error("expected project to be inactive after replacement")
	}
	if len(p.Tasks) != 1 || p.Tasks[0].Name != "Maintenance" {
		t.Errorf("unexpected tasks: %+v", p.Tasks)
	}
	if len(p.Tags) != 1 || p.Tags[0].Name != "Quarter" {
		t.Errorf("unexpected tags: %+v", p.Tags)
	}
}

func TestGetTaskAndTag(t *testing.T) {
	store := newTestStore(t)
	seedProject(t, store)
	ctx := context.Background()

	task, err := store.GetTask(ctx, "INTERNAL", "Development")
	if err != nil || task == nil || !task.Active {
		t.Errorf("GetTask = %+v, %v", task, err)
	}
	if task, _ := store.GetTask(ctx, "INTERNAL", "Gardening"); task != nil {
		t.Errorf("expected nil for unknown task, got %+v", task)
	}

	tag, err := store.GetTag(ctx, "INTERNAL", "Billable")
	if err != nil || tag == nil || !tag.Required {
		t.Errorf("GetTag = %+v, %v", tag, err)
	}
	if tag, _ := store.GetTag(ctx, "INTERNAL", "Mystery"); tag != nil {
		t.Errorf("expected nil for unknown tag, got %+v", tag)
	}
}

func TestDeleteProject_BlockedByEntries(t *testing.T) {
	store := newTestStore(t)
	seedProject(t, store)
	ctx := context.Background()

	if err := store.Create(ctx, testEntry("e-1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err := store.DeleteProject(ctx, "INTERNAL")
	if err == nil {
		t.Fatal("expected delete to be blocked while entries exist")
	}

	// Removing the entry unblocks the delete
	if _, err := store.Delete(ctx, "e-1"); err != nil {
		t.Fatalf("Delete entry failed: %v", err)
	}
	if err := store.DeleteProject(ctx, "INTERNAL"); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}
}

// =============================================================================
// ENTRY CRUD
// =============================================================================

func TestEntryRoundTrip(t *testing.T) {
	store := newTestStore(t)
	seedProject(t, store)
	ctx := context.Background()

	original := testEntry("e-1")
	if err := store.Create(ctx, original); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Get(ctx, "e-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected entry, got nil")
	}
	if got.UserID != "alice" || got.Task != "Development" {
		t.Errorf("unexpected entry: %+v", got)
	}
	// Decimal hours survive the TEXT column exactly
	if !got.StandardHours.Equal(engine.Hours(8)) {
		t.Errorf("standard hours = %s, want 8", got.StandardHours)
	}
	if !got.OvertimeHours.Equal(engine.Hours(1.5)) {
		t.Errorf("overtime hours = %s, want 1.5", got.OvertimeHours)
	}
	if got.StartDate.String() != "2026-03-02" || got.CompletionDate.String() != "2026-03-06" {
		t.Errorf("dates = %s..%s", got.StartDate, got.CompletionDate)
	}
	if len(got.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(got.Tags))
	}
}

func TestGetEntry_Unknown(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown id, got %+v", got)
	}
}

func TestUpdateEntry_ReplacesTags(t *testing.T) {
	store := newTestStore(t)
	seedProject(t, store)
	ctx := context.Background()

	entry := testEntry("e-1")
	if err := store.Create(ctx, entry); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	entry.Status = engine.StatusSubmitted
	entry.Tags = []engine.TagPair{{Name: "Billable", Value: "No"}}
	if err := store.Update(ctx, entry); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.Get(ctx, "e-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != engine.StatusSubmitted {
		t.Errorf("status = %s, want SUBMITTED", got.Status)
	}
	if len(got.Tags) != 1 || got.Tags[0].Value != "No" {
		t.Errorf("unexpected tags: %+v", got.Tags)
	}
}

func TestDeleteEntry(t *testing.T) {
	store := newTestStore(t)
	seedProject(t, store)
	ctx := context.Background()

	if err := store.Create(ctx, testEntry("e-1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := store.Delete(ctx, "e-1")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Error("expected deleted = true")
	}

	deleted, err = store.Delete(ctx, "e-1")
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if deleted {
		t.Error("expected deleted = false for missing entry")
	}
}

// =============================================================================
// LIST FILTERS
// =============================================================================

func TestList_FiltersAndOrder(t *testing.T) {
	store := newTestStore(t)
	seedProject(t, store)
	ctx := context.Background()

	base := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		e := testEntry(fmt.Sprintf("e-%d", i))
		e.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		e.UpdatedAt = e.CreatedAt
		if i == 2 {
			e.UserID = "bob"
			e.Status = engine.StatusSubmitted
		}
		if err := store.Create(ctx, e); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	all, err := store.List(ctx, engine.EntryFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	// Oldest first
	if all[0].ID != "e-0" || all[2].ID != "e-2" {
		t.Errorf("unexpected order: %s, %s, %s", all[0].ID, all[1].ID, all[2].ID)
	}

	alice := "alice"
	mine, err := store.List(ctx, engine.EntryFilter{UserID: &alice})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 entries for alice, got %d", len(mine))
	}

	status := engine.StatusSubmitted
	submitted, err := store.List(ctx, engine.EntryFilter{Status: &status})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(submitted) != 1 || submitted[0].ID != "e-2" {
		t.Errorf("unexpected submitted list: %+v", submitted)
	}
}

func TestList_DateRangeOverlap(t *testing.T) {
	// Entries span 2026-03-02 .. 2026-03-06. A window touching any part
	// of that range matches; a disjoint window does not.

	store := newTestStore(t)
	seedProject(t, store)
	ctx := context.Background()

	if err := store.Create(ctx, testEntry("e-1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	from, _ := engine.ParseDate("2026-03-05")
	to, _ := engine.ParseDate("2026-03-10")
	got, err := store.List(ctx, engine.EntryFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("overlapping window: expected 1 entry, got %d", len(got))
	}

	from, _ = engine.ParseDate("2026-03-07")
	to, _ = engine.ParseDate("2026-03-10")
	got, err = store.List(ctx, engine.EntryFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("disjoint window: expected 0 entries, got %d", len(got))
	}
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

func TestWithTx_RollbackOnError(t *testing.T) {
	// GIVEN: A transaction creating an entry
	// WHEN: The callback fails afterwards
	// THEN: The entry is not persisted

	store := newTestStore(t)
	seedProject(t, store)
	ctx := context.Background()

	err := store.WithTx(ctx, func(tx engine.EntryStore) error {
		if err := tx.Create(ctx, testEntry("e-1")); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	if err == nil || !strings.Contains(err.Error(), "deliberate") {
		t.Fatalf("expected callback error, got %v", err)
	}

	got, err := store.Get(ctx, "e-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Error("entry should have been rolled back")
	}
}

func TestWithTx_Commit(t *testing.T) {
	store := newTestStore(t)
	seedProject(t, store)
	ctx := context.Background()

	err := store.WithTx(ctx, func(tx engine.EntryStore) error {
		return tx.Create(ctx, testEntry("e-1"))
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}

	got, err := store.Get(ctx, "e-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Error("entry should have been committed")
	}
}

func TestReset(t *testing.T) {
	store := newTestStore(t)
	seedProject(t, store)
	ctx := context.Background()

	if err := store.Create(ctx, testEntry("e-1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if p, _ := store.GetProject(ctx, "INTERNAL"); p != nil {
		t.Error("projects should be cleared")
	}
	if e, _ := store.Get(ctx, "e-1"); e != nil {
		t.Error("entries should be cleared")
	}
}
