package models

import (
	"kumpisahko/internal/pricing"
	"time"
)

// ConsumptionEntry is one metered interval of a cost calculation request
type ConsumptionEntry struct {
	Timestamp   time.Time `json:"timestamp" binding:"required" example:"2025-09-01T00:15:00.000Z"`
	Consumption *float64  `json:"consumption" binding:"required,gte=0,finite" example:"0.25"`
}

// CalculateCostRequest is the body of a cost calculation. An empty consumption list is valid.
type CalculateCostRequest struct {
	Consumption          []ConsumptionEntry `json:"consumption" binding:"omitempty,dive"`
	ConstantPricePerUnit *float64           `json:"constantPricePerUnit,omitempty" binding:"omitempty,gte=0,finite" example:"8.5"`
}

// CalculateCostResponse is the result of a cost calculation
type CalculateCostResponse struct {
	Cost             float64  `json:"cost" example:"14.495"`
	TotalConsumption float64  `json:"totalConsumption" example:"1"`
	AverageSpotPrice float64  `json:"averageSpotPrice" example:"14.4325"`
	CostConstant     *float64 `json:"costConstant,omitempty" example:"8.5"`
}

// Intervals converts the validated request entries for the pricing engine
func (r CalculateCostRequest) Intervals() []pricing.ConsumptionInterval {
	intervals := make([]pricing.ConsumptionInterval, len(r.Consumption))
	for i, entry := range r.Consumption {
		var consumption float64
		if entry.Consumption != nil {
			consumption = *entry.Consumption
		}
		intervals[i] = pricing.ConsumptionInterval{
			Timestamp:   entry.Timestamp,
			Consumption: consumption,
		}
	}
	return intervals
}

// NewCalculateCostResponse builds the response for a report and the optional fixed-price cost
func NewCalculateCostResponse(report pricing.CostReport, fixedCost *float64) CalculateCostResponse {
	return CalculateCostResponse{
		Cost:             report.TotalCost,
		TotalConsumption: report.TotalConsumption,
		AverageSpotPrice: report.AverageSpotPrice,
		CostConstant:     fixedCost,
	}
}
