package pricing

import "time"

// Strategy resolves the price of the interval starting at the given instant.
// It reports false when it has no opinion and the next strategy should be tried.
type Strategy func(t *PriceTable, at time.Time) (float64, bool)

// DefaultLadder returns the price resolution strategies in the order they are tried
func DefaultLadder() []Strategy {
	return []Strategy{ExactMatch, HourAverage, ZeroDefault}
}

// ExactMatch uses the price recorded at exactly the interval start. Hourly
// consumption paired with sub-hourly prices uses the hour average instead, so a
// whole hour is not priced by whichever quarter happens to start it.
func ExactMatch(t *PriceTable, at time.Time) (float64, bool) {
	price, ok := t.exactPrice(at)
	if !ok {
		return 0, false
	}

	if !t.resolution.SubHourlyConsumption && t.resolution.SubHourlyPrices {
		if avg, ok := t.hourAverage(at); ok {
			return avg, true
		}
	}
	return price, true
}

// HourAverage uses the mean of all prices recorded within the interval's clock hour
func HourAverage(t *PriceTable, at time.Time) (float64, bool) {
	return t.hourAverage(at)
}

// ZeroDefault prices intervals without any data at zero
func ZeroDefault(*PriceTable, time.Time) (float64, bool) {
	return 0, true
}

// Resolve runs the ladder until a strategy yields a price. An exhausted ladder resolves to zero.
func (t *PriceTable) Resolve(at time.Time, ladder []Strategy) float64 {
	for _, strategy := range ladder {
		if price, ok := strategy(t, at); ok {
			return price
		}
	}
	return 0
}
