// Package pricing reconciles consumption intervals with spot price records and
// aggregates the VAT-inclusive cost of the consumption.
//
// Everything in this package is a pure function of its inputs. Callers fetch the
// price records themselves and pass them in; the package holds no handles to
// storage and no mutable package state, so concurrent calculations are independent.
package pricing

import "time"

// ConsumptionInterval is a metered amount of energy for the interval starting at Timestamp
type ConsumptionInterval struct {
	Timestamp   time.Time
	Consumption float64 // kWh
}

// PriceRecord is a VAT-exclusive spot price for the interval starting at Timestamp
type PriceRecord struct {
	Timestamp time.Time
	SpotPrice float64
}

// CostReport is the aggregate result of a calculation
type CostReport struct {
	// TotalCost is the VAT-inclusive cost of all intervals
	TotalCost float64
	// TotalConsumption is the plain sum of interval consumption
	TotalConsumption float64
	// AverageSpotPrice is the VAT-inclusive price averaged over consumption intervals
	AverageSpotPrice float64
}
