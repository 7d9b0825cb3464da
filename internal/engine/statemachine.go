package engine

import (
	"fmt"
	"time"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
)

type IntentKind string

const (
	IntentNotifyParent IntentKind = "notify_parent"
	IntentNotifyTutor  IntentKind = "notify_tutor"
	IntentNotifyAdmin  IntentKind = "notify_admin"
)

// Intent is a declarative description of a side effect a transition calls
// for. The engine never performs the send itself; the notification
// adapter consumes intents after the new state has been persisted.
type Intent struct {
	Kind      IntentKind
	BookingID int64
	TutorID   int64
	ParentID  int64
	Note      string
}

// Result carries the updated booking copy a transition produced together
// with the side effects the caller should execute.
type Result struct {
	Booking model.Booking
	Intents []Intent
}

type CancelActor string

const (
	CancelActorParent CancelActor = "parent"
	CancelActorAdmin  CancelActor = "admin"
	CancelActorTutor  CancelActor = "tutor"
)

// CancelResult extends Result with the billing-penalty verdict for the
// cancelling actor's policy. The engine only reports the verdict; billing
// itself is the caller's concern.
type CancelResult struct {
	Result
	PenaltyApplies bool
}

// eligibility rejects a tutor who could not have appeared in the
// candidate list for this booking. Shared by Assign, Reassign and
// HardConfirm so an out-of-band assignment obeys the same rules as a
// picked candidate.
func eligibility(b model.Booking, tutor model.Tutor, windows []model.UnavailabilityWindow) error {
	if !tutor.Approved {
		return validationErrorf("tutor %d is not approved", tutor.ID)
	}
	if !RoleMatches(tutor.Role, b.RequiredRole) {
		return validationErrorf("tutor %d role %q does not satisfy required role %q", tutor.ID, tutor.Role, b.RequiredRole)
	}
	if lang, needed := RequiredLanguage(b.Subject); needed && !tutor.HasLanguage(lang) {
		return validationErrorf("tutor %d lacks the %s capability required by subject %q", tutor.ID, lang, b.Subject)
	}
	if !IsAvailable(tutor, b.ExamDate, b.StartTime, b.DurationMinutes, windows) {
		return validationErrorf("tutor %d is unavailable on %s at %s", tutor.ID, b.ExamDate.Format("2006-01-02"), b.StartTime)
	}
	return nil
}

func requireStatus(b model.Booking, event string, allowed ...model.BookingStatus) error {
	for _, s := range allowed {
		if b.Status == s {
			return nil
		}
	}
	return &InvalidTransitionError{From: b.Status, Event: event}
}

// Assign moves a pending booking to assigned, binding the tutor. The exam
// start must still be in the future and the tutor must be eligible for
// the booking's role, language and slot.
func Assign(b model.Booking, tutor model.Tutor, windows []model.UnavailabilityWindow, now time.Time) (Result, error) {
	if err := requireStatus(b, "assign", model.BookingStatusPending); err != nil {
		return Result{}, err
	}

	examAt, err := ExamStart(b)
	if err != nil {
		return Result{}, err
	}
	if !examAt.After(now) {
		return Result{}, validationErrorf("exam start %s is not in the future", examAt.Format(time.RFC3339))
	}
	if err := eligibility(b, tutor, windows); err != nil {
		return Result{}, err
	}

	tutorID := tutor.ID
	assignedAt := now
	b.TutorID = &tutorID
	b.Status = model.BookingStatusAssigned
	b.AssignedAt = &assignedAt

	return Result{
		Booking: b,
		Intents: []Intent{
			{Kind: IntentNotifyTutor, BookingID: b.ID, TutorID: tutor.ID, ParentID: b.ParentID, Note: "new assignment"},
		},
	}, nil
}

// Reassign swaps the tutor on a booking that already has one, after the
// current tutor declined informally or the admin changed their mind. The
// replacement is validated against the existing date and time.
func Reassign(b model.Booking, tutor model.Tutor, windows []model.UnavailabilityWindow, now time.Time) (Result, error) {
	if err := requireStatus(b, "reassign", model.BookingStatusAssigned, model.BookingStatusAwaitingTutor); err != nil {
		return Result{}, err
	}
	if err := eligibility(b, tutor, windows); err != nil {
		return Result{}, err
	}

	tutorID := tutor.ID
	assignedAt := now
	b.TutorID = &tutorID
	b.Status = model.BookingStatusAssigned
	b.AssignedAt = &assignedAt

	return Result{
		Booking: b,
		Intents: []Intent{
			{Kind: IntentNotifyTutor, BookingID: b.ID, TutorID: tutor.ID, ParentID: b.ParentID, Note: "reassigned to you"},
		},
	}, nil
}

// MarkAwaitingResponse records that the assigned tutor has been notified
// and the booking now waits on their answer.
func MarkAwaitingResponse(b model.Booking) (Result, error) {
	if err := requireStatus(b, "mark_awaiting", model.BookingStatusAssigned); err != nil {
		return Result{}, err
	}
	b.Status = model.BookingStatusAwaitingTutor
	return Result{Booking: b}, nil
}

// TutorAccept records the tutor's acceptance. Admin finalization still
// follows before the parent is told.
func TutorAccept(b model.Booking) (Result, error) {
	if err := requireStatus(b, "tutor_accept", model.BookingStatusAssigned, model.BookingStatusAwaitingTutor); err != nil {
		return Result{}, err
	}
	b.Status = model.BookingStatusTutorConfirmed
	return Result{Booking: b}, nil
}

// TutorDecline records the tutor's refusal. The state is terminal: the
// admin re-assigns by driving a fresh Assign on a new pending booking or
// a Reassign before the decline lands.
func TutorDecline(b model.Booking) (Result, error) {
	if err := requireStatus(b, "tutor_decline", model.BookingStatusAssigned, model.BookingStatusAwaitingTutor); err != nil {
		return Result{}, err
	}
	b.Status = model.BookingStatusTutorDeclined

	var tutorID int64
	if b.TutorID != nil {
		tutorID = *b.TutorID
	}
	return Result{
		Booking: b,
		Intents: []Intent{
			{Kind: IntentNotifyAdmin, BookingID: b.ID, TutorID: tutorID, ParentID: b.ParentID, Note: "tutor declined"},
		},
	}, nil
}

// Finalize is the admin hard-confirm of a tutor-accepted booking. The
// assigned tutor is passed in so the parent notification can carry the
// tutor's contact details.
func Finalize(b model.Booking, tutor model.Tutor, now time.Time) (Result, error) {
	if err := requireStatus(b, "finalize", model.BookingStatusTutorConfirmed); err != nil {
		return Result{}, err
	}
	if b.TutorID == nil || *b.TutorID != tutor.ID {
		return Result{}, validationErrorf("tutor %d is not the tutor assigned to booking %d", tutor.ID, b.ID)
	}

	confirmedAt := now
	b.Status = model.BookingStatusConfirmed
	b.ConfirmedAt = &confirmedAt

	return Result{
		Booking: b,
		Intents: []Intent{
			{
				Kind:      IntentNotifyParent,
				BookingID: b.ID,
				TutorID:   tutor.ID,
				ParentID:  b.ParentID,
				Note:      fmt.Sprintf("confirmed with %s %s (%s, %s)", tutor.Name, tutor.Surname, tutor.Phone, tutor.Email),
			},
		},
	}, nil
}

// HardConfirm collapses Assign, TutorAccept and Finalize into one admin
// action on a pending booking. Both the tutor and the parent are
// notified.
func HardConfirm(b model.Booking, tutor model.Tutor, windows []model.UnavailabilityWindow, now time.Time) (Result, error) {
	if err := requireStatus(b, "hard_confirm", model.BookingStatusPending); err != nil {
		return Result{}, err
	}

	examAt, err := ExamStart(b)
	if err != nil {
		return Result{}, err
	}
	if !examAt.After(now) {
		return Result{}, validationErrorf("exam start %s is not in the future", examAt.Format(time.RFC3339))
	}
	if err := eligibility(b, tutor, windows); err != nil {
		return Result{}, err
	}

	tutorID := tutor.ID
	stamp := now
	b.TutorID = &tutorID
	b.Status = model.BookingStatusConfirmed
	b.AssignedAt = &stamp
	b.ConfirmedAt = &stamp

	return Result{
		Booking: b,
		Intents: []Intent{
			{Kind: IntentNotifyTutor, BookingID: b.ID, TutorID: tutor.ID, ParentID: b.ParentID, Note: "hard-confirmed assignment"},
			{
				Kind:      IntentNotifyParent,
				BookingID: b.ID,
				TutorID:   tutor.ID,
				ParentID:  b.ParentID,
				Note:      fmt.Sprintf("confirmed with %s %s (%s, %s)", tutor.Name, tutor.Surname, tutor.Phone, tutor.Email),
			},
		},
	}, nil
}

// Cancel ends a booking from any non-terminal state. The result carries
// the penalty verdict under the cancelling actor's policy: parents are
// measured against the 17:00-day-before cutoff, admins against the
// twelve-hour rule, tutors attract no parent-side penalty.
func Cancel(b model.Booking, actor CancelActor, now time.Time) (CancelResult, error) {
	if b.Status.Terminal() {
		return CancelResult{}, &InvalidTransitionError{From: b.Status, Event: "cancel"}
	}

	examAt, err := ExamStart(b)
	if err != nil {
		return CancelResult{}, err
	}

	var penalty bool
	switch actor {
	case CancelActorParent:
		penalty = ParentCancellationPenalty(examAt, now)
	case CancelActorAdmin:
		penalty = AdminCancellationPenalty(examAt, now)
	case CancelActorTutor:
		penalty = false
	default:
		return CancelResult{}, validationErrorf("unknown cancellation actor %q", actor)
	}

	cancelledAt := now
	prevTutorID := b.TutorID
	b.Status = model.BookingStatusCancelled
	b.Cancelled = true
	b.CancelledAt = &cancelledAt

	var intents []Intent
	if prevTutorID != nil && actor != CancelActorTutor {
		intents = append(intents, Intent{Kind: IntentNotifyTutor, BookingID: b.ID, TutorID: *prevTutorID, ParentID: b.ParentID, Note: "booking cancelled"})
	}
	if actor != CancelActorParent {
		intents = append(intents, Intent{Kind: IntentNotifyParent, BookingID: b.ID, ParentID: b.ParentID, Note: "booking cancelled"})
	}

	return CancelResult{
		Result:         Result{Booking: b, Intents: intents},
		PenaltyApplies: penalty,
	}, nil
}
