// Package listops implements batch reconciliation of problem list
// membership: an ordered sequence of add/remove instructions is applied
// against an immutable starting set, producing a new set and a report of
// which instructions were applied and which were rejected, and why.
// Failures are per-instruction; the batch as a whole always yields a
// report.
package listops

import (
	"github.com/google/uuid"
)

// RejectReason classifies why a single instruction was not applied.
type RejectReason string

const (
	// ReasonAlreadyPresent: an add targeted a problem already in the set.
	ReasonAlreadyPresent RejectReason = "already_present"

	// ReasonNotPresent: a remove targeted a problem absent from the set.
	ReasonNotPresent RejectReason = "not_present"

	// ReasonUnknownProblem: the problem reference is not in the catalog.
	ReasonUnknownProblem RejectReason = "unknown_problem"
)

// Instruction requests that a problem be present (Add true) or absent
// (Add false) in the list after the batch.
type Instruction struct {
	ProblemID uuid.UUID `json:"problem_id"`
	Add       bool      `json:"add"`
}

// Rejection records a single instruction that could not be applied.
type Rejection struct {
	ProblemID uuid.UUID    `json:"problem_id"`
	Reason    RejectReason `json:"reason"`
}

// Report lists, in instruction order, the problems whose transitions
// were applied and the instructions that were rejected.
type Report struct {
	Applied  []uuid.UUID `json:"applied"`
	Rejected []Rejection `json:"rejected"`
}

// Reconcile applies the instructions in order against a copy of the
// given member set and returns the resulting set plus a report.
//
// Each instruction is evaluated against the evolving set, so an add
// followed by a remove of the same problem within one batch can both
// succeed. Instructions for problems the catalog does not recognize
// (per the known predicate) are rejected without touching the set. A
// nil predicate treats every reference as known.
//
// The input set is never modified.
func Reconcile(
	members map[uuid.UUID]struct{},
	instructions []Instruction,
	known func(uuid.UUID) bool,
) (map[uuid.UUID]struct{}, Report) {
	result := make(map[uuid.UUID]struct{}, len(members)+len(instructions))
	for id := range members {
		result[id] = struct{}{}
	}

	report := Report{
		Applied:  make([]uuid.UUID, 0, len(instructions)),
		Rejected: make([]Rejection, 0),
	}

	for _, instr := range instructions {
		if known != nil && !known(instr.ProblemID) {
			report.Rejected = append(report.Rejected, Rejection{
				ProblemID: instr.ProblemID,
				Reason:    ReasonUnknownProblem,
			})
			continue
		}

		_, present := result[instr.ProblemID]

		if instr.Add {
			if present {
				report.Rejected = append(report.Rejected, Rejection{
					ProblemID: instr.ProblemID,
					Reason:    ReasonAlreadyPresent,
				})
				continue
			}
			result[instr.ProblemID] = struct{}{}
		} else {
			if !present {
				report.Rejected = append(report.Rejected, Rejection{
					ProblemID: instr.ProblemID,
					Reason:    ReasonNotPresent,
				})
				continue
			}
			delete(result, instr.ProblemID)
		}

		report.Applied = append(report.Applied, instr.ProblemID)
	}

	return result, report
}
