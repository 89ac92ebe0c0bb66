package engine_test

import (
	"testing"
	"time"

	"github.com/warp/timelog/engine"
)

func TestParseDate(t *testing.T) {
	d, err := engine.ParseDate("2026-03-02")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.String() != "2026-03-02" {
		t.Errorf("String() = %q", d.String())
	}

	if _, err := engine.ParseDate("02/03/2026"); err == nil {
		t.Error("expected error for non-ISO format")
	}
	if _, err := engine.ParseDate(""); err == nil {
		t.Error("expected error for empty string")
	}
}

func TestDateComparisons_IgnoreTimeOfDay(t *testing.T) {
	// Two instants on the same calendar day compare equal.
	morning := engine.Date{Time: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}
	evening := engine.Date{Time: time.Date(2026, 3, 2, 22, 30, 0, 0, time.UTC)}

	if !morning.Equal(evening) {
		t.Error("same-day instants should be equal")
	}
	if morning.Before(evening) || morning.After(evening) {
		t.Error("same-day instants should be neither before nor after")
	}
	if !morning.BeforeOrEqual(evening) || !morning.AfterOrEqual(evening) {
		t.Error("same-day instants satisfy both inclusive comparisons")
	}

	next := morning.AddDays(1)
	if !morning.Before(next) || !next.After(morning) {
		t.Error("AddDays(1) should order strictly")
	}
}

func TestAddDays_CrossesMonthBoundary(t *testing.T) {
	d, _ := engine.ParseDate("2026-02-27")
	if got := d.AddDays(2).String(); got != "2026-03-01" {
		t.Errorf("AddDays(2) = %s, want 2026-03-01", got)
	}
	if got := d.AddDays(-27).String(); got != "2026-01-31" {
		t.Errorf("AddDays(-27) = %s, want 2026-01-31", got)
	}
}
