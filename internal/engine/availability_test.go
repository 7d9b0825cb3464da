package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
)

func TestIsAvailable(t *testing.T) {
	tutor := approvedTutor(1, model.RoleReader)
	exam := date(2026, time.May, 20)

	t.Run("no windows", func(t *testing.T) {
		require.True(t, IsAvailable(tutor, exam, "09:00", 90, nil))
	})

	t.Run("window outside date range", func(t *testing.T) {
		w := window(1, date(2026, time.May, 21), date(2026, time.May, 23), nil, nil)
		require.True(t, IsAvailable(tutor, exam, "09:00", 90, []model.UnavailabilityWindow{w}))
	})

	t.Run("full-day window blocks any time", func(t *testing.T) {
		w := window(1, date(2026, time.May, 18), date(2026, time.May, 22), nil, nil)
		require.False(t, IsAvailable(tutor, exam, "06:00", 30, []model.UnavailabilityWindow{w}))
		require.False(t, IsAvailable(tutor, exam, "22:00", 30, []model.UnavailabilityWindow{w}))
	})

	t.Run("timed window conflicts", func(t *testing.T) {
		w := window(1, exam, exam, str("10:00"), str("12:00"))
		require.False(t, IsAvailable(tutor, exam, "11:00", 60, []model.UnavailabilityWindow{w}))
		require.False(t, IsAvailable(tutor, exam, "09:30", 60, []model.UnavailabilityWindow{w}))
	})

	t.Run("timed window touching is no conflict", func(t *testing.T) {
		w := window(1, exam, exam, str("10:00"), str("12:00"))
		require.True(t, IsAvailable(tutor, exam, "08:00", 120, []model.UnavailabilityWindow{w}))
		require.True(t, IsAvailable(tutor, exam, "12:00", 60, []model.UnavailabilityWindow{w}))
	})

	t.Run("malformed window time fails closed", func(t *testing.T) {
		w := window(1, exam, exam, str("ten"), str("12:00"))
		require.False(t, IsAvailable(tutor, exam, "14:00", 60, []model.UnavailabilityWindow{w}))
	})

	t.Run("reversed window bounds fail closed", func(t *testing.T) {
		w := window(1, exam, exam, str("12:00"), str("10:00"))
		require.False(t, IsAvailable(tutor, exam, "14:00", 60, []model.UnavailabilityWindow{w}))
	})

	t.Run("other tutor's window is ignored", func(t *testing.T) {
		w := window(99, exam, exam, nil, nil)
		require.True(t, IsAvailable(tutor, exam, "09:00", 90, []model.UnavailabilityWindow{w}))
	})
}

func TestValidateWindow(t *testing.T) {
	exam := date(2026, time.May, 20)

	t.Run("valid all-day", func(t *testing.T) {
		require.NoError(t, ValidateWindow(window(1, exam, exam.AddDate(0, 0, 2), nil, nil)))
	})

	t.Run("valid timed", func(t *testing.T) {
		require.NoError(t, ValidateWindow(window(1, exam, exam, str("08:00"), str("12:00"))))
	})

	tests := []struct {
		name string
		w    model.UnavailabilityWindow
	}{
		{"missing dates", window(1, time.Time{}, time.Time{}, nil, nil)},
		{"end before start date", window(1, exam, exam.AddDate(0, 0, -1), nil, nil)},
		{"only start time", window(1, exam, exam, str("08:00"), nil)},
		{"only end time", window(1, exam, exam, nil, str("12:00"))},
		{"start not before end", window(1, exam, exam, str("12:00"), str("12:00"))},
		{"unparseable time", window(1, exam, exam, str("8am"), str("12:00"))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWindow(tc.w)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}
