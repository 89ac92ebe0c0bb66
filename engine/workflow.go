/*
workflow.go - Entry lifecycle state machine

PURPOSE:
  Decides whether an operation is permitted given an entry's current
  status and what status results. Consulted by every mutation before
  any write.

STATES:
  NOT_REPORTED (initial) -> SUBMITTED -> APPROVED (terminal)
                                      -> DECLINED -> SUBMITTED ...

  NOT_REPORTED and DECLINED are the editable states: update, move,
  replace-tags and delete are allowed there and nowhere else. A
  SUBMITTED entry is read-only pending a decision; an APPROVED entry is
  immutable forever.

PURITY:
  Guard is a pure function of (status, operation). No side effects,
  no I/O. Rejection reasons embed the current status name because
  clients match on it.

SEE ALSO:
  - service.go: the only caller
*/
package engine

// Operation names a mutation against an existing entry. Create is not
// listed: it has no prior entry and never consults the guard.
type Operation string

const (
	OpUpdate      Operation = "update"
	OpReplaceTags Operation = "replaceTags"
	OpMove        Operation = "move"
	OpDelete      Operation = "delete"
	OpSubmit      Operation = "submit"
	OpApprove     Operation = "approve"
	OpDecline     Operation = "decline"
)

// editOp reports whether op belongs to the edit class (permitted in any
// editable state, status unchanged).
func (op Operation) editOp() bool {
	switch op {
	case OpUpdate, OpReplaceTags, OpMove, OpDelete:
		return true
	}
	return false
}

// Decision is the guard's verdict. Next is meaningful only when Allowed.
type Decision struct {
	Allowed bool
	Next    EntryStatus
	Reason  string
}

func allow(next EntryStatus) Decision { return Decision{Allowed: true, Next: next} }
func reject(reason string) Decision   { return Decision{Reason: reason} }

// Guard returns the verdict for performing op on an entry in status.
//
// Edits on a DECLINED entry leave it DECLINED: the state is equivalent
// to NOT_REPORTED for every permitted operation, and keeping the status
// preserves the decline comment alongside the reworked data.
func Guard(status EntryStatus, op Operation) Decision {
	if op.editOp() {
		switch status {
		case StatusNotReported, StatusDeclined:
			return allow(status)
		case StatusSubmitted:
			return reject("entry is SUBMITTED, read-only pending decision")
		case StatusApproved:
			return reject("entry is APPROVED, immutable")
		}
		return reject("unknown status: " + string(status))
	}

	switch op {
	case OpSubmit:
		switch status {
		case StatusNotReported, StatusDeclined:
			return allow(StatusSubmitted)
		case StatusSubmitted:
			return reject("already SUBMITTED")
		case StatusApproved:
			return reject("already APPROVED")
		}

	case OpApprove:
		switch status {
		case StatusSubmitted:
			return allow(StatusApproved)
		case StatusApproved:
			return reject("already APPROVED")
		case StatusNotReported, StatusDeclined:
			return reject("entry is " + string(status) + ", only SUBMITTED entries can be approved")
		}

	case OpDecline:
		switch status {
		case StatusSubmitted:
			return allow(StatusDeclined)
		case StatusApproved:
			return reject("entry is APPROVED, immutable")
		case StatusNotReported, StatusDeclined:
			return reject("entry is " + string(status) + ", only SUBMITTED entries can be declined")
		}
	}

	return reject("unknown operation: " + string(op))
}
