// Package store provides in-memory implementations of the engine's
// store interfaces, for tests and development.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/timelog/engine"
)

// =============================================================================
// MEMORY STORE - ConfigStore + TxEntryStore in one
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	projects map[engine.ProjectCode]engine.Project
	entries  map[engine.EntryID]engine.TimeEntry
}

func NewMemory() *Memory {
	return &Memory{
		projects: make(map[engine.ProjectCode]engine.Project),
		entries:  make(map[engine.EntryID]engine.TimeEntry),
	}
}

// SeedProject registers or replaces a project configuration.
func (m *Memory) SeedProject(p engine.Project) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.Code] = cloneProject(p)
}

// =============================================================================
// CONFIG STORE
// =============================================================================

func (m *Memory) GetProject(_ context.Context, code engine.ProjectCode) (*engine.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.projects[code]
	if !ok {
		return nil, nil
	}
	out := cloneProject(p)
	return &out, nil
}

func (m *Memory) GetTask(_ context.Context, code engine.ProjectCode, taskName string) (*engine.ProjectTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.projects[code]
	if !ok {
		return nil, nil
	}
	if t := p.Task(taskName); t != nil {
		out := *t
		return &out, nil
	}
	return nil, nil
}

func (m *Memory) GetTag(_ context.Context, code engine.ProjectCode, tagName string) (*engine.ProjectTag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.projects[code]
	if !ok {
		return nil, nil
	}
	if t := p.Tag(tagName); t != nil {
		out := *t
		out.Values = append([]string(nil), t.Values...)
		return &out, nil
	}
	return nil, nil
}

// =============================================================================
// ENTRY STORE
// =============================================================================

func (m *Memory) Get(_ context.Context, id engine.EntryID) (*engine.TimeEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	out := cloneEntry(e)
	return &out, nil
}

func (m *Memory) Create(_ context.Context, entry *engine.TimeEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = cloneEntry(*entry)
	return nil
}

func (m *Memory) Update(_ context.Context, entry *engine.TimeEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = cloneEntry(*entry)
	return nil
}

func (m *Memory) Delete(_ context.Context, id engine.EntryID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[id]; !ok {
		return false, nil
	}
	delete(m.entries, id)
	return true, nil
}

func (m *Memory) List(_ context.Context, filter engine.EntryFilter) ([]engine.TimeEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []engine.TimeEntry
	for _, e := range m.entries {
		if matches(e, filter) {
			out = append(out, cloneEntry(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func matches(e engine.TimeEntry, f engine.EntryFilter) bool {
	if f.UserID != nil && e.UserID != *f.UserID {
		return false
	}
	if f.ProjectCode != nil && e.ProjectCode != *f.ProjectCode {
		return false
	}
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	// Date filters select entries whose range overlaps [From, To].
	if f.From != nil && e.CompletionDate.Before(*f.From) {
		return false
	}
	if f.To != nil && e.StartDate.After(*f.To) {
		return false
	}
	return true
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx serializes writers and restores the pre-transaction entry map
// when fn fails, giving tests the same all-or-nothing behavior as the
// SQLite store.
func (m *Memory) WithTx(_ context.Context, fn func(engine.EntryStore) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.RLock()
	snapshot := make(map[engine.EntryID]engine.TimeEntry, len(m.entries))
	for id, e := range m.entries {
		snapshot[id] = cloneEntry(e)
	}
	m.mu.RUnlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.entries = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func cloneProject(p engine.Project) engine.Project {
	out := p
	out.Tasks = append([]engine.ProjectTask(nil), p.Tasks...)
	out.Tags = make([]engine.ProjectTag, len(p.Tags))
	for i, t := range p.Tags {
		out.Tags[i] = t
		out.Tags[i].Values = append([]string(nil), t.Values...)
	}
	return out
}

func cloneEntry(e engine.TimeEntry) engine.TimeEntry {
	out := e
	out.Tags = append([]engine.TagPair(nil), e.Tags...)
	return out
}
