package engine_test

import (
	"strings"
	"testing"

	"github.com/warp/timelog/engine"
)

// =============================================================================
// GUARD TABLE
// =============================================================================

func TestGuard_EditOperations(t *testing.T) {
	// GIVEN: The four edit-class operations
	// WHEN: Applied in each lifecycle state
	// THEN: Allowed only in NOT_REPORTED and DECLINED, status unchanged

	editOps := []engine.Operation{
		engine.OpUpdate,
		engine.OpReplaceTags,
		engine.OpMove,
		engine.OpDelete,
	}

	for _, op := range editOps {
		for _, status := range []engine.EntryStatus{engine.StatusNotReported, engine.StatusDeclined} {
			d := engine.Guard(status, op)
			if !d.Allowed {
				t.Errorf("%s in %s: expected allowed, got rejected (%s)", op, status, d.Reason)
			}
			if d.Next != status {
				t.Errorf("%s in %s: expected status unchanged, got %s", op, status, d.Next)
			}
		}

		d := engine.Guard(engine.StatusSubmitted, op)
		if d.Allowed {
			t.Errorf("%s on SUBMITTED: expected rejection", op)
		}
		if !strings.Contains(d.Reason, "SUBMITTED") {
			t.Errorf("%s on SUBMITTED: reason should name the status, got %q", op, d.Reason)
		}

		d = engine.Guard(engine.StatusApproved, op)
		if d.Allowed {
			t.Errorf("%s on APPROVED: expected rejection", op)
		}
		if !strings.Contains(d.Reason, "APPROVED") {
			t.Errorf("%s on APPROVED: reason should name the status, got %q", op, d.Reason)
		}
	}
}

func TestGuard_Submit(t *testing.T) {
	// GIVEN: The submit operation
	// WHEN: Applied in each lifecycle state
	// THEN: NOT_REPORTED and DECLINED transition to SUBMITTED, others reject

	for _, status := range []engine.EntryStatus{engine.StatusNotReported, engine.StatusDeclined} {
		d := engine.Guard(status, engine.OpSubmit)
		if !d.Allowed || d.Next != engine.StatusSubmitted {
			t.Errorf("submit from %s: got %+v, want transition to SUBMITTED", status, d)
		}
	}

	if d := engine.Guard(engine.StatusSubmitted, engine.OpSubmit); d.Allowed || !strings.Contains(d.Reason, "SUBMITTED") {
		t.Errorf("submit on SUBMITTED: got %+v", d)
	}
	if d := engine.Guard(engine.StatusApproved, engine.OpSubmit); d.Allowed || !strings.Contains(d.Reason, "APPROVED") {
		t.Errorf("submit on APPROVED: got %+v", d)
	}
}

func TestGuard_Approve(t *testing.T) {
	// GIVEN: The approve operation
	// WHEN: Applied in each lifecycle state
	// THEN: Only SUBMITTED entries can be approved

	if d := engine.Guard(engine.StatusSubmitted, engine.OpApprove); !d.Allowed || d.Next != engine.StatusApproved {
		t.Errorf("approve from SUBMITTED: got %+v, want transition to APPROVED", d)
	}

	for _, status := range []engine.EntryStatus{engine.StatusNotReported, engine.StatusDeclined, engine.StatusApproved} {
		d := engine.Guard(status, engine.OpApprove)
		if d.Allowed {
			t.Errorf("approve from %s: expected rejection", status)
		}
		if !strings.Contains(d.Reason, string(status)) {
			t.Errorf("approve from %s: reason should name the status, got %q", status, d.Reason)
		}
	}
}

func TestGuard_Decline(t *testing.T) {
	// GIVEN: The decline operation
	// WHEN: Applied in each lifecycle state
	// THEN: Only SUBMITTED entries can be declined

	if d := engine.Guard(engine.StatusSubmitted, engine.OpDecline); !d.Allowed || d.Next != engine.StatusDeclined {
		t.Errorf("decline from SUBMITTED: got %+v, want transition to DECLINED", d)
	}

	for _, status := range []engine.EntryStatus{engine.StatusNotReported, engine.StatusDeclined, engine.StatusApproved} {
		d := engine.Guard(status, engine.OpDecline)
		if d.Allowed {
			t.Errorf("decline from %s: expected rejection", status)
		}
		if !strings.Contains(d.Reason, string(status)) {
			t.Errorf("decline from %s: reason should name the status, got %q", status, d.Reason)
		}
	}
}

func TestGuard_ResubmitCycle(t *testing.T) {
	// GIVEN: An entry going NOT_REPORTED -> SUBMITTED -> DECLINED
	// WHEN: Following the guard's Next status at each step
	// THEN: The cycle permits resubmission after rework

	status := engine.StatusNotReported
	for _, step := range []struct {
		op   engine.Operation
		want engine.EntryStatus
	}{
		{engine.OpSubmit, engine.StatusSubmitted},
		{engine.OpDecline, engine.StatusDeclined},
		{engine.OpUpdate, engine.StatusDeclined},
		{engine.OpSubmit, engine.StatusSubmitted},
		{engine.OpApprove, engine.StatusApproved},
	} {
		d := engine.Guard(status, step.op)
		if !d.Allowed {
			t.Fatalf("%s from %s: unexpectedly rejected (%s)", step.op, status, d.Reason)
		}
		if d.Next != step.want {
			t.Fatalf("%s from %s: next = %s, want %s", step.op, status, d.Next, step.want)
		}
		status = d.Next
	}
}

func TestEditable_MatchesGuard(t *testing.T) {
	// Editable is the summary clients use; it must agree with the guard.
	for _, status := range []engine.EntryStatus{
		engine.StatusNotReported,
		engine.StatusSubmitted,
		engine.StatusApproved,
		engine.StatusDeclined,
	} {
		entry := &engine.TimeEntry{Status: status}
		want := engine.Guard(status, engine.OpUpdate).Allowed
		if entry.Editable() != want {
			t.Errorf("Editable() in %s = %v, guard says %v", status, entry.Editable(), want)
		}
	}
}

func TestTagValueFor(t *testing.T) {
	entry := &engine.TimeEntry{Tags: []engine.TagPair{{Name: "Billable", Value: "Yes"}}}

	if v, ok := entry.TagValueFor("Billable"); !ok || v != "Yes" {
		t.Errorf("TagValueFor(Billable) = %q, %v", v, ok)
	}
	if _, ok := entry.TagValueFor("Environment"); ok {
		t.Error("expected no value for absent tag")
	}
}

func TestGuard_UnknownStatus(t *testing.T) {
	// Corrupt status values reject every operation rather than panic.
	d := engine.Guard(engine.EntryStatus("GARBAGE"), engine.OpUpdate)
	if d.Allowed {
		t.Error("expected rejection for unknown status")
	}
}
