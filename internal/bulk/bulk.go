// Package bulk reports the outcome of operations applied to many entities
// in one backend call.
//
// A bulk call either fails outright (the caller gets an error and no
// partial data) or returns a Result. A Result with at least one success is
// a successful call even when other items failed; the failed IDs are
// reported for the caller to act on individually.
package bulk

import "fmt"

// Result is the backend's answer to a bulk mutation.
type Result struct {
	SuccessCount int      `json:"successCount"`
	FailedIDs    []string `json:"failedIds"`
}

// Operation names a bulk action for reporting, e.g. {"update", "fixtures"}.
type Operation struct {
	Action string
	Entity string
}

func (o Operation) String() string {
	return o.Action + " " + o.Entity
}

// Report is the tool-facing summary of a bulk call.
type Report struct {
	Success      bool     `json:"success"`
	Operation    string   `json:"operation"`
	Requested    int      `json:"requested"`
	SuccessCount int      `json:"successCount"`
	FailureCount int      `json:"failureCount"`
	FailedIDs    []string `json:"failedIds"`
	Message      string   `json:"message"`
}

// Summarize builds the Report for res. Success means SuccessCount > 0.
// It never fails: partial failure is data.
func Summarize(op Operation, requested int, res Result) Report {
	failed := res.FailedIDs
	if failed == nil {
		failed = []string{}
	}

	r := Report{
		Success:      res.SuccessCount > 0,
		Operation:    op.String(),
		Requested:    requested,
		SuccessCount: res.SuccessCount,
		FailureCount: len(failed),
		FailedIDs:    failed,
	}

	switch {
	case r.FailureCount == 0:
		r.Message = fmt.Sprintf("%s: %d of %d succeeded", op, r.SuccessCount, requested)
	case r.Success:
		r.Message = fmt.Sprintf("%s: %d of %d succeeded, %d failed", op, r.SuccessCount, requested, r.FailureCount)
	default:
		r.Message = fmt.Sprintf("%s: all %d failed", op, r.FailureCount)
	}
	return r
}

// Consistent reports whether every requested item is accounted for as a
// success or a failure.
func (r Report) Consistent() bool {
	return r.SuccessCount+r.FailureCount == r.Requested
}
