package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
)

var now = instant(2026, time.May, 1, 10, 0)

func futureBooking(id int64) model.Booking {
	return pendingBooking(id, date(2026, time.May, 20), "09:00")
}

func TestAssign(t *testing.T) {
	tutor := approvedTutor(1, model.RoleReader)

	t.Run("pending to assigned", func(t *testing.T) {
		res, err := Assign(futureBooking(1), tutor, nil, now)
		require.NoError(t, err)

		b := res.Booking
		require.Equal(t, model.BookingStatusAssigned, b.Status)
		require.NotNil(t, b.TutorID)
		require.Equal(t, tutor.ID, *b.TutorID)
		require.NotNil(t, b.AssignedAt)
		require.Equal(t, now, *b.AssignedAt)

		require.Len(t, res.Intents, 1)
		require.Equal(t, IntentNotifyTutor, res.Intents[0].Kind)
		require.Equal(t, tutor.ID, res.Intents[0].TutorID)
	})

	t.Run("past exam is a validation error", func(t *testing.T) {
		b := pendingBooking(1, date(2026, time.April, 1), "09:00")
		_, err := Assign(b, tutor, nil, now)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("unapproved tutor rejected", func(t *testing.T) {
		tu := approvedTutor(2, model.RoleReader)
		tu.Approved = false
		_, err := Assign(futureBooking(1), tu, nil, now)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("role mismatch rejected", func(t *testing.T) {
		_, err := Assign(futureBooking(1), approvedTutor(2, model.RoleInvigilator), nil, now)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("missing language flag rejected", func(t *testing.T) {
		b := futureBooking(1)
		b.Subject = "Afrikaans"
		_, err := Assign(b, tutor, nil, now)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("unavailable tutor rejected", func(t *testing.T) {
		b := futureBooking(1)
		windows := []model.UnavailabilityWindow{window(tutor.ID, b.ExamDate, b.ExamDate, nil, nil)}
		_, err := Assign(b, tutor, windows, now)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("not permitted from cancelled", func(t *testing.T) {
		b := futureBooking(1)
		b.Status = model.BookingStatusCancelled
		_, err := Assign(b, tutor, nil, now)
		var terr *InvalidTransitionError
		require.ErrorAs(t, err, &terr)
		require.Equal(t, model.BookingStatusCancelled, terr.From)
	})
}

func TestReassign(t *testing.T) {
	first := approvedTutor(1, model.RoleReader)
	second := approvedTutor(2, model.RoleBoth)

	t.Run("replaces tutor and refreshes assigned_at", func(t *testing.T) {
		res, err := Assign(futureBooking(1), first, nil, now)
		require.NoError(t, err)

		later := now.Add(2 * time.Hour)
		res2, err := Reassign(res.Booking, second, nil, later)
		require.NoError(t, err)

		b := res2.Booking
		require.Equal(t, model.BookingStatusAssigned, b.Status)
		require.Equal(t, second.ID, *b.TutorID)
		require.Equal(t, later, *b.AssignedAt)

		require.Len(t, res2.Intents, 1)
		require.Equal(t, IntentNotifyTutor, res2.Intents[0].Kind)
		require.Equal(t, second.ID, res2.Intents[0].TutorID)
	})

	t.Run("new tutor validated against existing slot", func(t *testing.T) {
		res, err := Assign(futureBooking(1), first, nil, now)
		require.NoError(t, err)

		windows := []model.UnavailabilityWindow{window(second.ID, res.Booking.ExamDate, res.Booking.ExamDate, nil, nil)}
		_, err = Reassign(res.Booking, second, windows, now)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("not permitted from pending", func(t *testing.T) {
		_, err := Reassign(futureBooking(1), second, nil, now)
		var terr *InvalidTransitionError
		require.ErrorAs(t, err, &terr)
	})
}

func TestTutorResponse(t *testing.T) {
	tutor := approvedTutor(1, model.RoleReader)

	assigned := func(t *testing.T) model.Booking {
		t.Helper()
		res, err := Assign(futureBooking(1), tutor, nil, now)
		require.NoError(t, err)
		return res.Booking
	}

	t.Run("accept from assigned", func(t *testing.T) {
		res, err := TutorAccept(assigned(t))
		require.NoError(t, err)
		require.Equal(t, model.BookingStatusTutorConfirmed, res.Booking.Status)
		require.Empty(t, res.Intents)
	})

	t.Run("accept from awaiting confirmation", func(t *testing.T) {
		res, err := MarkAwaitingResponse(assigned(t))
		require.NoError(t, err)
		require.Equal(t, model.BookingStatusAwaitingTutor, res.Booking.Status)

		res, err = TutorAccept(res.Booking)
		require.NoError(t, err)
		require.Equal(t, model.BookingStatusTutorConfirmed, res.Booking.Status)
	})

	t.Run("decline notifies admin", func(t *testing.T) {
		res, err := TutorDecline(assigned(t))
		require.NoError(t, err)
		require.Equal(t, model.BookingStatusTutorDeclined, res.Booking.Status)
		require.Len(t, res.Intents, 1)
		require.Equal(t, IntentNotifyAdmin, res.Intents[0].Kind)
	})

	t.Run("decline is terminal", func(t *testing.T) {
		res, err := TutorDecline(assigned(t))
		require.NoError(t, err)

		_, err = TutorAccept(res.Booking)
		var terr *InvalidTransitionError
		require.ErrorAs(t, err, &terr)
	})

	t.Run("accept not permitted from pending", func(t *testing.T) {
		_, err := TutorAccept(futureBooking(1))
		var terr *InvalidTransitionError
		require.ErrorAs(t, err, &terr)
	})
}

func TestFinalize(t *testing.T) {
	tutor := approvedTutor(1, model.RoleReader)

	tutorConfirmed := func(t *testing.T) model.Booking {
		t.Helper()
		res, err := Assign(futureBooking(1), tutor, nil, now)
		require.NoError(t, err)
		res, err = TutorAccept(res.Booking)
		require.NoError(t, err)
		return res.Booking
	}

	t.Run("confirms and notifies parent with contact details", func(t *testing.T) {
		res, err := Finalize(tutorConfirmed(t), tutor, now)
		require.NoError(t, err)

		b := res.Booking
		require.Equal(t, model.BookingStatusConfirmed, b.Status)
		require.NotNil(t, b.ConfirmedAt)

		require.Len(t, res.Intents, 1)
		require.Equal(t, IntentNotifyParent, res.Intents[0].Kind)
		require.Contains(t, res.Intents[0].Note, tutor.Phone)
		require.Contains(t, res.Intents[0].Note, tutor.Surname)
	})

	t.Run("wrong tutor rejected", func(t *testing.T) {
		_, err := Finalize(tutorConfirmed(t), approvedTutor(9, model.RoleReader), now)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("not permitted from assigned", func(t *testing.T) {
		res, err := Assign(futureBooking(1), tutor, nil, now)
		require.NoError(t, err)
		_, err = Finalize(res.Booking, tutor, now)
		var terr *InvalidTransitionError
		require.ErrorAs(t, err, &terr)
	})
}

func TestHardConfirm(t *testing.T) {
	tutor := approvedTutor(1, model.RoleReader)

	t.Run("pending straight to confirmed", func(t *testing.T) {
		res, err := HardConfirm(futureBooking(1), tutor, nil, now)
		require.NoError(t, err)

		b := res.Booking
		require.Equal(t, model.BookingStatusConfirmed, b.Status)
		require.Equal(t, tutor.ID, *b.TutorID)
		require.Equal(t, now, *b.AssignedAt)
		require.Equal(t, now, *b.ConfirmedAt)

		require.Len(t, res.Intents, 2)
		require.Equal(t, IntentNotifyTutor, res.Intents[0].Kind)
		require.Equal(t, IntentNotifyParent, res.Intents[1].Kind)
	})

	t.Run("same eligibility rules as assign", func(t *testing.T) {
		b := futureBooking(1)
		b.Subject = "isiZulu"
		_, err := HardConfirm(b, tutor, nil, now)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("not permitted once assigned", func(t *testing.T) {
		res, err := Assign(futureBooking(1), tutor, nil, now)
		require.NoError(t, err)
		_, err = HardConfirm(res.Booking, tutor, nil, now)
		var terr *InvalidTransitionError
		require.ErrorAs(t, err, &terr)
	})
}

func TestCancel(t *testing.T) {
	tutor := approvedTutor(1, model.RoleReader)

	t.Run("cancel a confirmed booking", func(t *testing.T) {
		res, err := HardConfirm(futureBooking(1), tutor, nil, now)
		require.NoError(t, err)

		cancelAt := instant(2026, time.May, 19, 20, 0)
		cres, err := Cancel(res.Booking, CancelActorParent, cancelAt)
		require.NoError(t, err)

		b := cres.Booking
		require.Equal(t, model.BookingStatusCancelled, b.Status)
		require.True(t, b.Cancelled)
		require.NotNil(t, b.CancelledAt)
		require.Equal(t, cancelAt, *b.CancelledAt)
		// 20:00 the evening before: past the 17:00 parent cutoff.
		require.True(t, cres.PenaltyApplies)
	})

	t.Run("penalty verdict is deterministic per actor", func(t *testing.T) {
		cancelAt := instant(2026, time.May, 19, 18, 0)

		for i := 0; i < 3; i++ {
			cres, err := Cancel(futureBooking(1), CancelActorParent, cancelAt)
			require.NoError(t, err)
			require.True(t, cres.PenaltyApplies)

			cres, err = Cancel(futureBooking(1), CancelActorAdmin, cancelAt)
			require.NoError(t, err)
			require.False(t, cres.PenaltyApplies)
		}
	})

	t.Run("tutor cancellation carries no penalty", func(t *testing.T) {
		res, err := Assign(futureBooking(1), tutor, nil, now)
		require.NoError(t, err)

		cres, err := Cancel(res.Booking, CancelActorTutor, instant(2026, time.May, 20, 8, 0))
		require.NoError(t, err)
		require.False(t, cres.PenaltyApplies)
	})

	t.Run("assigned tutor is told unless they cancelled", func(t *testing.T) {
		res, err := Assign(futureBooking(1), tutor, nil, now)
		require.NoError(t, err)

		cres, err := Cancel(res.Booking, CancelActorAdmin, now)
		require.NoError(t, err)

		kinds := make(map[IntentKind]bool)
		for _, in := range cres.Intents {
			kinds[in.Kind] = true
		}
		require.True(t, kinds[IntentNotifyTutor])
		require.True(t, kinds[IntentNotifyParent])
	})

	t.Run("cancelled booking stays cancelled", func(t *testing.T) {
		cres, err := Cancel(futureBooking(1), CancelActorAdmin, now)
		require.NoError(t, err)

		_, err = Cancel(cres.Booking, CancelActorAdmin, now)
		var terr *InvalidTransitionError
		require.ErrorAs(t, err, &terr)

		_, err = Assign(cres.Booking, tutor, nil, now)
		require.ErrorAs(t, err, &terr)
	})

	t.Run("unknown actor rejected", func(t *testing.T) {
		_, err := Cancel(futureBooking(1), CancelActor("intern"), now)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestEndToEndAfrikaansScenario(t *testing.T) {
	// Reader tutor, Reader booking, subject Afrikaans, tutor without the
	// afrikaans flag: role matches but the candidate list excludes them.
	b := futureBooking(1)
	b.Subject = "Afrikaans"
	tutor := approvedTutor(1, model.RoleReader)

	require.True(t, RoleMatches(tutor.Role, b.RequiredRole))
	require.Empty(t, SelectCandidates(b, []model.Tutor{tutor}, nil, 0))
}
