package pricing

import "time"

// hourKey identifies a UTC clock hour as whole hours since the Unix epoch
type hourKey int64

func hourOf(t time.Time) hourKey {
	return hourKey(t.Truncate(time.Hour).Unix() / 3600)
}

// Resolution describes the time granularity of both input series
type Resolution struct {
	// SubHourlyConsumption is set when any consumption interval starts off the hour
	SubHourlyConsumption bool
	// SubHourlyPrices is set when any clock hour holds more than one price record
	SubHourlyPrices bool
}

// PriceTable indexes price records for lookups by exact instant and by clock hour
type PriceTable struct {
	exact      map[int64]float64
	byHour     map[hourKey][]float64
	resolution Resolution
}

// NewPriceTable builds the lookup table for one calculation. If several records
// share an instant, the last one wins the exact lookup while all of them count
// towards the hour average.
func NewPriceTable(consumption []ConsumptionInterval, prices []PriceRecord) *PriceTable {
	t := &PriceTable{
		exact:  make(map[int64]float64, len(prices)),
		byHour: make(map[hourKey][]float64),
	}

	for _, p := range prices {
		t.exact[p.Timestamp.UnixNano()] = p.SpotPrice
		key := hourOf(p.Timestamp)
		t.byHour[key] = append(t.byHour[key], p.SpotPrice)
	}

	for _, c := range consumption {
		if c.Timestamp.UTC().Minute() != 0 {
			t.resolution.SubHourlyConsumption = true
			break
		}
	}

	for _, bucket := range t.byHour {
		if len(bucket) > 1 {
			t.resolution.SubHourlyPrices = true
			break
		}
	}

	return t
}

// DetectResolution reports the granularity of the consumption and price series
func DetectResolution(consumption []ConsumptionInterval, prices []PriceRecord) Resolution {
	return NewPriceTable(consumption, prices).Resolution()
}

// Resolution returns the detected granularity of the inputs the table was built from
func (t *PriceTable) Resolution() Resolution {
	return t.resolution
}

// exactPrice returns the price recorded at exactly the given instant
func (t *PriceTable) exactPrice(at time.Time) (float64, bool) {
	price, ok := t.exact[at.UnixNano()]
	return price, ok
}

// hourAverage returns the mean of all prices recorded within the clock hour of at
func (t *PriceTable) hourAverage(at time.Time) (float64, bool) {
	bucket := t.byHour[hourOf(at)]
	if len(bucket) == 0 {
		return 0, false
	}

	var sum float64
	for _, p := range bucket {
		sum += p
	}
	return sum / float64(len(bucket)), true
}
