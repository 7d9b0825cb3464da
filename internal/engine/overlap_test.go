package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	base := date(2026, time.March, 12)
	mk := func(h, m int) time.Time {
		return time.Date(base.Year(), base.Month(), base.Day(), h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"disjoint", mk(9, 0), mk(10, 0), mk(11, 0), mk(12, 0), false},
		{"touching boundary is not overlap", mk(9, 0), mk(10, 0), mk(10, 0), mk(11, 0), false},
		{"partial overlap", mk(9, 0), mk(10, 30), mk(10, 0), mk(11, 0), true},
		{"contained", mk(9, 0), mk(12, 0), mk(10, 0), mk(11, 0), true},
		{"identical", mk(9, 0), mk(10, 0), mk(9, 0), mk(10, 0), true},
		{"one minute shared", mk(9, 0), mk(10, 1), mk(10, 0), mk(11, 0), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// The predicate is symmetric in its two intervals.
			require.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestExamStart(t *testing.T) {
	t.Run("combines date and clock", func(t *testing.T) {
		b := pendingBooking(1, date(2026, time.June, 3), "08:30")
		got, err := ExamStart(b)
		require.NoError(t, err)
		require.Equal(t, instant(2026, time.June, 3, 8, 30), got)
	})

	t.Run("unparseable clock", func(t *testing.T) {
		b := pendingBooking(1, date(2026, time.June, 3), "half past eight")
		_, err := ExamStart(b)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}
