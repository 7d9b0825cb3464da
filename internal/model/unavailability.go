package model

import "time"

// UnavailabilityWindow is a tutor-declared period during which the tutor
// must not be assigned. StartDate and EndDate are an inclusive date range.
// StartTime/EndTime ("HH:MM") are either both present, limiting the window
// to part of each day, or both absent, blocking the whole day.
type UnavailabilityWindow struct {
	ID        int64     `json:"id"`
	TutorID   int64     `json:"tutor_id"`
	StartDate time.Time `json:"start_date"` // date only, midnight
	EndDate   time.Time `json:"end_date"`   // date only, midnight
	StartTime *string   `json:"start_time"`
	EndTime   *string   `json:"end_time"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// AllDay reports whether the window blocks entire days rather than a
// time-of-day span.
func (w UnavailabilityWindow) AllDay() bool {
	return w.StartTime == nil || w.EndTime == nil
}
