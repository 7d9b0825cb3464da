package engine

import "time"

// adminCancellationCutoff is the minimum remaining notice for an admin
// cancellation to be penalty-free.
const adminCancellationCutoff = 12 * time.Hour

// ParentCancellationPenalty reports whether a parent-initiated
// cancellation attracts a penalty: the cutoff is 17:00 on the calendar
// day before the exam.
func ParentCancellationPenalty(examAt, cancelAt time.Time) bool {
	dayBefore := examAt.AddDate(0, 0, -1)
	cutoff := time.Date(dayBefore.Year(), dayBefore.Month(), dayBefore.Day(), 17, 0, 0, 0, examAt.Location())
	return cancelAt.After(cutoff)
}

// AdminCancellationPenalty reports whether an admin-initiated cancellation
// attracts a penalty: fewer than twelve hours remain before the exam.
//
// The two policies disagree for the same booking depending on who cancels.
// That mirrors the business rules as stated; both are exported so either
// can be audited until a single policy is confirmed.
func AdminCancellationPenalty(examAt, cancelAt time.Time) bool {
	return examAt.Sub(cancelAt) < adminCancellationCutoff
}
