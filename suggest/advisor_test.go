package suggest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/timelog/engine"
	"github.com/warp/timelog/suggest"
)

func observedEntry(user string) *engine.TimeEntry {
	return &engine.TimeEntry{
		ID:          "e-1",
		UserID:      user,
		ProjectCode: "INTERNAL",
		Task:        "Development",
		Tags: []engine.TagPair{
			{Name: "Environment", Value: "Staging"},
			{Name: "Billable", Value: "Yes"},
		},
	}
}

func TestPropose_NoActivity(t *testing.T) {
	a := suggest.New()
	assert.Nil(t, a.Propose("alice"))
}

func TestPropose_FollowsLastEntry(t *testing.T) {
	a := suggest.New()
	today, _ := engine.ParseDate("2026-03-09")
	a.Today = func() engine.Date { return today }

	a.Observe(observedEntry("alice"))

	p := a.Propose("alice")
	require.NotNil(t, p)
	assert.Equal(t, engine.ProjectCode("INTERNAL"), p.ProjectCode)
	assert.Equal(t, "Development", p.Task)
	assert.Len(t, p.Tags, 2)
	assert.Equal(t, "2026-03-09", p.StartDate.String())

	// Other users are unaffected
	assert.Nil(t, a.Propose("bob"))
}

func TestPropose_LatestWins(t *testing.T) {
	a := suggest.New()

	a.Observe(observedEntry("alice"))

	second := observedEntry("alice")
	second.ProjectCode = "CLIENT-A"
	second.Task = "Support"
	second.Tags = nil
	a.Observe(second)

	p := a.Propose("alice")
	require.NotNil(t, p)
	assert.Equal(t, engine.ProjectCode("CLIENT-A"), p.ProjectCode)
	assert.Equal(t, "Support", p.Task)
	assert.Empty(t, p.Tags)
}

func TestPropose_CopiesTags(t *testing.T) {
	// Mutating a proposal must not leak back into the advisor's state.
	a := suggest.New()
	a.Observe(observedEntry("alice"))

	first := a.Propose("alice")
	require.NotNil(t, first)
	first.Tags[0].Value = "Production"

	second := a.Propose("alice")
	require.NotNil(t, second)
	assert.Equal(t, "Staging", second.Tags[0].Value)
}

func TestForget(t *testing.T) {
	a := suggest.New()
	a.Observe(observedEntry("alice"))
	a.Forget("alice")
	assert.Nil(t, a.Propose("alice"))
}

func TestObserve_IgnoresAnonymous(t *testing.T) {
	a := suggest.New()
	a.Observe(nil)
	a.Observe(observedEntry(""))
	assert.Nil(t, a.Propose(""))
}
