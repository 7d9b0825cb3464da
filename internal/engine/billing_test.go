package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBillingPeriodFor(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			"day 25 closes the running period",
			date(2026, time.January, 25),
			date(2025, time.December, 26),
			date(2026, time.January, 25),
		},
		{
			"day 26 opens a new period",
			date(2026, time.January, 26),
			date(2026, time.January, 26),
			date(2026, time.February, 25),
		},
		{
			"december 26 rolls the year forward",
			date(2026, time.December, 26),
			date(2026, time.December, 26),
			date(2027, time.January, 25),
		},
		{
			"january 1 rolls the year back",
			date(2026, time.January, 1),
			date(2025, time.December, 26),
			date(2026, time.January, 25),
		},
		{
			"mid-period day in a short month",
			date(2026, time.February, 10),
			date(2026, time.January, 26),
			date(2026, time.February, 25),
		},
		{
			"leap february day 25",
			date(2028, time.February, 25),
			date(2028, time.January, 26),
			date(2028, time.February, 25),
		},
		{
			"day 28 in february",
			date(2026, time.February, 28),
			date(2026, time.February, 26),
			date(2026, time.March, 25),
		},
		{
			"day 31 in a long month",
			date(2026, time.July, 31),
			date(2026, time.July, 26),
			date(2026, time.August, 25),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, end := BillingPeriodFor(tc.today)
			require.Equal(t, tc.wantStart, start)
			require.Equal(t, tc.wantEnd, end)
		})
	}
}
