/*
advisor.go - Entry suggestion advisor

PURPOSE:
  Remembers each user's most recent time entry and proposes a pre-filled
  payload for the next one (same project, task, and tag set, dated
  today). Purely advisory: the proposal is never persisted and never
  bypasses validation; a client that accepts it still goes through the
  normal create path.

CONCURRENCY:
  Safe for concurrent use. Observations and proposals share one mutex.

SEE ALSO:
  - engine/service.go: Create, which produces the entries observed here
*/
package suggest

import (
	"sync"

	"github.com/warp/timelog/engine"
)

// Proposal is a suggested starting point for a new entry.
type Proposal struct {
	ProjectCode engine.ProjectCode
	Task        string
	Tags        []engine.TagPair
	StartDate   engine.Date
}

// Advisor tracks recent activity per user and proposes new entries.
type Advisor struct {
	mu     sync.Mutex
	recent map[string]recentActivity

	// Today is swappable for tests.
	Today func() engine.Date
}

type recentActivity struct {
	projectCode engine.ProjectCode
	task        string
	tags        []engine.TagPair
}

func New() *Advisor {
	return &Advisor{
		recent: make(map[string]recentActivity),
		Today:  engine.Today,
	}
}

// Observe records an entry as the user's latest activity.
func (a *Advisor) Observe(entry *engine.TimeEntry) {
	if entry == nil || entry.UserID == "" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recent[entry.UserID] = recentActivity{
		projectCode: entry.ProjectCode,
		task:        entry.Task,
		tags:        entry.CloneTags(),
	}
}

// Propose returns a pre-filled payload for the user's next entry, or
// nil when the user has no observed activity.
func (a *Advisor) Propose(userID string) *Proposal {
	a.mu.Lock()
	defer a.mu.Unlock()
	last, ok := a.recent[userID]
	if !ok {
		return nil
	}
	tags := make([]engine.TagPair, len(last.tags))
	copy(tags, last.tags)
	return &Proposal{
		ProjectCode: last.projectCode,
		Task:        last.task,
		Tags:        tags,
		StartDate:   a.Today(),
	}
}

// Forget drops a user's observed activity, for example after the
// project they were working on is deactivated.
func (a *Advisor) Forget(userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.recent, userID)
}
