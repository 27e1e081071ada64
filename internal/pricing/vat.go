package pricing

import "time"

// VATPeriod is a VAT multiplier effective from an instant until the next period starts
type VATPeriod struct {
	From time.Time
	Rate float64
}

// VATSchedule returns the VAT periods ordered by start time
func VATSchedule() []VATPeriod {
	return []VATPeriod{
		{From: time.Time{}, Rate: 1.24},
		// General rate rose from 24% to 25.5%
		{From: time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC), Rate: 1.255},
	}
}

// VATRate returns the multiplier in effect at the given instant. A period's start
// instant already belongs to that period.
func VATRate(at time.Time) float64 {
	schedule := VATSchedule()
	for i := len(schedule) - 1; i >= 0; i-- {
		if !at.Before(schedule[i].From) {
			return schedule[i].Rate
		}
	}
	return schedule[0].Rate
}
