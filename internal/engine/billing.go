package engine

import "time"

// BillingPeriodFor maps a day to its enclosing invoicing cycle. The cycle
// runs from the 26th of one month through the 25th of the next; time.Date
// normalizes the month arithmetic across year boundaries.
func BillingPeriodFor(today time.Time) (periodStart, periodEnd time.Time) {
	year, month, day := today.Date()
	loc := today.Location()

	if day >= 26 {
		periodStart = time.Date(year, month, 26, 0, 0, 0, 0, loc)
		periodEnd = time.Date(year, month+1, 25, 0, 0, 0, 0, loc)
	} else {
		periodStart = time.Date(year, month-1, 26, 0, 0, 0, 0, loc)
		periodEnd = time.Date(year, month, 25, 0, 0, 0, 0, loc)
	}
	return periodStart, periodEnd
}
