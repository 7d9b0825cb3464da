package engine

import (
	"strings"
	"time"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
)

const clockLayout = "15:04"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching at a shared boundary is not an
// overlap: the intersection must have positive length.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// parseClock parses an "HH:MM" clock string.
func parseClock(s string) (time.Time, error) {
	return time.Parse(clockLayout, strings.TrimSpace(s))
}

// at places an "HH:MM" clock string onto the given calendar date.
func at(date time.Time, clock string) (time.Time, error) {
	t, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ExamStart resolves the booking's exam date and "HH:MM" start time into
// a single instant.
func ExamStart(b model.Booking) (time.Time, error) {
	start, err := at(b.ExamDate, b.StartTime)
	if err != nil {
		return time.Time{}, validationErrorf("booking %d: unparseable start time %q", b.ID, b.StartTime)
	}
	return start, nil
}
