package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending        BookingStatus = "pending"                     // Awaiting admin assignment
	BookingStatusAssigned       BookingStatus = "assigned"                    // Tutor assigned, not yet notified/answered
	BookingStatusAwaitingTutor  BookingStatus = "awaiting_tutor_confirmation" // Tutor notified, response pending
	BookingStatusTutorConfirmed BookingStatus = "tutor_confirmed"             // Tutor accepted, awaiting admin finalization
	BookingStatusConfirmed      BookingStatus = "confirmed"                   // Hard-confirmed by admin
	BookingStatusTutorDeclined  BookingStatus = "tutor_declined"              // Tutor declined, needs re-assignment
	BookingStatusCancelled      BookingStatus = "cancelled"                   // Cancelled, terminal
)

// Terminal reports whether the status permits no further lifecycle
// transitions. A declined booking is re-assigned as a fresh assignment
// by the admin, not resumed.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCancelled, BookingStatusTutorDeclined:
		return true
	}
	return false
}

type Booking struct {
	ID               int64         `json:"id"`
	Reference        uuid.UUID     `json:"reference"`
	ParentID         int64         `json:"parent_id"`
	ChildName        string        `json:"child_name"`
	Grade            string        `json:"grade"`
	School           string        `json:"school"`
	Subject          string        `json:"subject"`
	RequiredRole     TutorRole     `json:"required_role"`
	ExamDate         time.Time     `json:"exam_date"`  // date only, midnight
	StartTime        string        `json:"start_time"` // "HH:MM"
	DurationMinutes  int           `json:"duration_minutes"`
	ExtraTimeMinutes int           `json:"extra_time_minutes"`
	TutorID          *int64        `json:"tutor_id"` // nil until assigned
	Status           BookingStatus `json:"status"`
	Cancelled        bool          `json:"cancelled"`
	CancelledAt      *time.Time    `json:"cancelled_at"`
	ConfirmedAt      *time.Time    `json:"confirmed_at"`
	AssignedAt       *time.Time    `json:"assigned_at"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
