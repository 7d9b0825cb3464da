package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
)

func TestSelectCandidates(t *testing.T) {
	exam := date(2026, time.May, 20)

	t.Run("role mismatch is excluded", func(t *testing.T) {
		b := pendingBooking(1, exam, "09:00")
		b.RequiredRole = model.RoleInvigilator

		tutors := []model.Tutor{
			approvedTutor(1, model.RoleReader),
			approvedTutor(2, model.RoleBoth),
			approvedTutor(3, model.RoleInvigilator),
			approvedTutor(4, model.RoleAllOfTheAbove),
		}

		got := SelectCandidates(b, tutors, nil, 0)
		require.Len(t, got, 2)
		require.Equal(t, int64(3), got[0].ID)
		require.Equal(t, int64(4), got[1].ID)
	})

	t.Run("unapproved tutor never matches", func(t *testing.T) {
		b := pendingBooking(1, exam, "09:00")
		tu := approvedTutor(1, model.RoleReader)
		tu.Approved = false

		require.Empty(t, SelectCandidates(b, []model.Tutor{tu}, nil, 0))
	})

	t.Run("language flag required by subject", func(t *testing.T) {
		// Role matches, but the tutor lacks the Afrikaans capability.
		b := pendingBooking(1, exam, "09:00")
		b.Subject = "Afrikaans"

		without := approvedTutor(1, model.RoleReader)
		with := approvedTutor(2, model.RoleReader)
		with.Afrikaans = true

		got := SelectCandidates(b, []model.Tutor{without, with}, nil, 0)
		require.Len(t, got, 1)
		require.Equal(t, int64(2), got[0].ID)
	})

	t.Run("unavailable tutor is excluded", func(t *testing.T) {
		b := pendingBooking(1, exam, "09:00")
		free := approvedTutor(1, model.RoleReader)
		busy := approvedTutor(2, model.RoleReader)

		windows := map[int64][]model.UnavailabilityWindow{
			busy.ID: {window(busy.ID, exam, exam, nil, nil)},
		}

		got := SelectCandidates(b, []model.Tutor{busy, free}, windows, 0)
		require.Len(t, got, 1)
		require.Equal(t, int64(1), got[0].ID)
	})

	t.Run("input order preserved and truncated", func(t *testing.T) {
		b := pendingBooking(1, exam, "09:00")
		var tutors []model.Tutor
		for i := int64(1); i <= 8; i++ {
			tutors = append(tutors, approvedTutor(i, model.RoleReader))
		}

		got := SelectCandidates(b, tutors, nil, 0)
		require.Len(t, got, DefaultMaxCandidates)
		for i, tu := range got {
			require.Equal(t, int64(i+1), tu.ID)
		}

		got = SelectCandidates(b, tutors, nil, 2)
		require.Len(t, got, 2)
	})

	t.Run("no match is an empty list, not an error", func(t *testing.T) {
		b := pendingBooking(1, exam, "09:00")
		b.RequiredRole = model.RolePrompter

		got := SelectCandidates(b, []model.Tutor{approvedTutor(1, model.RoleReader)}, nil, 0)
		require.NotNil(t, got)
		require.Empty(t, got)
	})
}
