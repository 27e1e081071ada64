package pricing

import "time"

// Calculate prices every consumption interval and aggregates the report.
//
// The average spot price is divided by the number of consumption intervals,
// including intervals that resolved to a zero price.
func Calculate(consumption []ConsumptionInterval, prices []PriceRecord) CostReport {
	if len(consumption) == 0 {
		return CostReport{}
	}

	table := NewPriceTable(consumption, prices)
	ladder := DefaultLadder()

	var report CostReport
	var priceSum float64
	for _, c := range consumption {
		price := table.Resolve(c.Timestamp, ladder)
		vat := VATRate(c.Timestamp)

		report.TotalCost += c.Consumption * price * vat
		report.TotalConsumption += c.Consumption
		priceSum += price * vat
	}

	report.AverageSpotPrice = priceSum / float64(len(consumption))
	return report
}

// FixedCost is the cost of the consumption under a constant unit price. Fixed
// contract prices are quoted with VAT included, so no multiplier is applied.
func FixedCost(totalConsumption, pricePerUnit float64) float64 {
	return totalConsumption * pricePerUnit
}

// ConsumptionRange returns the earliest and latest interval start. ok is false for empty input.
func ConsumptionRange(consumption []ConsumptionInterval) (first, last ConsumptionInterval, ok bool) {
	if len(consumption) == 0 {
		return first, last, false
	}

	first, last = consumption[0], consumption[0]
	for _, c := range consumption[1:] {
		if c.Timestamp.Before(first.Timestamp) {
			first = c
		}
		if c.Timestamp.After(last.Timestamp) {
			last = c
		}
	}
	return first, last, true
}

// LookupWindow returns the closed range of price timestamps that can affect the
// report: every UTC hour touched by the consumption, from the start of the first
// hour to the last microsecond of the last one. ok is false for empty input.
func LookupWindow(consumption []ConsumptionInterval) (from, to time.Time, ok bool) {
	first, last, ok := ConsumptionRange(consumption)
	if !ok {
		return from, to, false
	}
	from = first.Timestamp.UTC().Truncate(time.Hour)
	to = last.Timestamp.UTC().Truncate(time.Hour).Add(time.Hour - time.Microsecond)
	return from, to, true
}
