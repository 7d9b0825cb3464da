package engine

import (
	"time"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
)

// IsAvailable reports whether the tutor is free for the requested slot.
// Windows whose date range does not contain the exam date are ignored.
// A window without times blocks the whole day. A window whose times do
// not parse, or whose bounds are reversed, fails closed: the tutor is
// treated as unavailable rather than risk a double booking.
func IsAvailable(tutor model.Tutor, examDate time.Time, startTime string, durationMinutes int, windows []model.UnavailabilityWindow) bool {
	day := dateOnly(examDate)

	for _, w := range windows {
		if w.TutorID != tutor.ID {
			continue
		}
		if day.Before(dateOnly(w.StartDate)) || day.After(dateOnly(w.EndDate)) {
			continue
		}
		if w.AllDay() {
			return false
		}

		if durationMinutes <= 0 {
			return false
		}
		slotStart, err := at(day, startTime)
		if err != nil {
			return false
		}
		slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)

		windowStart, err := at(day, *w.StartTime)
		if err != nil {
			return false
		}
		windowEnd, err := at(day, *w.EndTime)
		if err != nil {
			return false
		}
		if !windowEnd.After(windowStart) {
			return false
		}

		if Overlaps(slotStart, slotEnd, windowStart, windowEnd) {
			return false
		}
	}

	return true
}

// ValidateWindow checks an unavailability window before it is stored:
// dates in order, times both present or both absent, and when present
// parseable with start strictly before end.
func ValidateWindow(w model.UnavailabilityWindow) error {
	if w.StartDate.IsZero() || w.EndDate.IsZero() {
		return validationErrorf("unavailability window: start and end dates are required")
	}
	if dateOnly(w.EndDate).Before(dateOnly(w.StartDate)) {
		return validationErrorf("unavailability window: end date before start date")
	}
	if (w.StartTime == nil) != (w.EndTime == nil) {
		return validationErrorf("unavailability window: start and end times must both be set or both be empty")
	}
	if w.AllDay() {
		return nil
	}

	start, err := parseClock(*w.StartTime)
	if err != nil {
		return validationErrorf("unavailability window: unparseable start time %q", *w.StartTime)
	}
	end, err := parseClock(*w.EndTime)
	if err != nil {
		return validationErrorf("unavailability window: unparseable end time %q", *w.EndTime)
	}
	if !end.After(start) {
		return validationErrorf("unavailability window: start time must be before end time")
	}
	return nil
}
