package engine

import "github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"

// DefaultMaxCandidates caps the candidate list presented to the admin.
const DefaultMaxCandidates = 5

// SelectCandidates filters the approved tutors down to those eligible for
// the booking: capability satisfies the required role, the subject's
// language flag (if any) is held, and no unavailability window conflicts
// with the exam slot. Input order is preserved and the list is truncated
// to maxResults (DefaultMaxCandidates when maxResults <= 0). An empty
// list means "no suitable tutor" and is never an error.
func SelectCandidates(b model.Booking, tutors []model.Tutor, windowsByTutor map[int64][]model.UnavailabilityWindow, maxResults int) []model.Tutor {
	if maxResults <= 0 {
		maxResults = DefaultMaxCandidates
	}

	requiredLang, langNeeded := RequiredLanguage(b.Subject)

	candidates := make([]model.Tutor, 0, maxResults)
	for _, t := range tutors {
		if !t.Approved {
			continue
		}
		if !RoleMatches(t.Role, b.RequiredRole) {
			continue
		}
		if langNeeded && !t.HasLanguage(requiredLang) {
			continue
		}
		if !IsAvailable(t, b.ExamDate, b.StartTime, b.DurationMinutes, windowsByTutor[t.ID]) {
			continue
		}

		candidates = append(candidates, t)
		if len(candidates) == maxResults {
			break
		}
	}

	return candidates
}
