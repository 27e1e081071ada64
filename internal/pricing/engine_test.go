package pricing_test

import (
	"kumpisahko/internal/pricing"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return parsed
}

func quarters(t *testing.T, hour string, values ...float64) []pricing.ConsumptionInterval {
	t.Helper()
	start := ts(t, hour)
	out := make([]pricing.ConsumptionInterval, len(values))
	for i, v := range values {
		out[i] = pricing.ConsumptionInterval{Timestamp: start.Add(time.Duration(i) * 15 * time.Minute), Consumption: v}
	}
	return out
}

func quarterPrices(t *testing.T, hour string, values ...float64) []pricing.PriceRecord {
	t.Helper()
	start := ts(t, hour)
	out := make([]pricing.PriceRecord, len(values))
	for i, v := range values {
		out[i] = pricing.PriceRecord{Timestamp: start.Add(time.Duration(i) * 15 * time.Minute), SpotPrice: v}
	}
	return out
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		consumption []pricing.ConsumptionInterval
		prices      []pricing.PriceRecord
		wantCost    float64
		wantTotal   float64
		wantAverage float64
	}{
		{
			name:        "Empty consumption",
			consumption: nil,
			prices:      quarterPrices(t, "2024-01-01T00:00:00Z", 10),
		},
		{
			name: "Exact hourly match",
			consumption: []pricing.ConsumptionInterval{
				{Timestamp: ts(t, "2024-01-01T00:00:00Z"), Consumption: 1.0},
				{Timestamp: ts(t, "2024-01-01T01:00:00Z"), Consumption: 2.0},
			},
			prices: []pricing.PriceRecord{
				{Timestamp: ts(t, "2024-01-01T00:00:00Z"), SpotPrice: 10.0},
				{Timestamp: ts(t, "2024-01-01T01:00:00Z"), SpotPrice: 20.0},
			},
			wantCost:    62.0,
			wantTotal:   3.0,
			wantAverage: (10*1.24 + 20*1.24) / 2,
		},
		{
			name: "VAT boundary uses the new rate",
			consumption: []pricing.ConsumptionInterval{
				{Timestamp: ts(t, "2024-09-01T00:00:00Z"), Consumption: 1.0},
			},
			prices: []pricing.PriceRecord{
				{Timestamp: ts(t, "2024-09-01T00:00:00Z"), SpotPrice: 10.0},
			},
			wantCost:    12.55,
			wantTotal:   1.0,
			wantAverage: 12.55,
		},
		{
			name: "Last hour before the VAT change uses the old rate",
			consumption: []pricing.ConsumptionInterval{
				{Timestamp: ts(t, "2024-08-31T23:00:00Z"), Consumption: 1.0},
			},
			prices: []pricing.PriceRecord{
				{Timestamp: ts(t, "2024-08-31T23:00:00Z"), SpotPrice: 10.0},
			},
			wantCost:    12.4,
			wantTotal:   1.0,
			wantAverage: 12.4,
		},
		{
			name:        "Quarter consumption with all quarter prices",
			consumption: quarters(t, "2025-09-01T00:00:00Z", 0.25, 0.30, 0.20, 0.25),
			prices:      quarterPrices(t, "2025-09-01T00:00:00Z", 10, 12, 11, 13),
			wantCost:    14.495,
			wantTotal:   1.0,
			wantAverage: (10 + 12 + 11 + 13) * 1.255 / 4,
		},
		{
			name: "Hourly consumption with quarter prices uses the hour average",
			consumption: []pricing.ConsumptionInterval{
				{Timestamp: ts(t, "2025-09-01T00:00:00Z"), Consumption: 1.0},
			},
			prices:      quarterPrices(t, "2025-09-01T00:00:00Z", 10, 12, 11, 13),
			wantCost:    14.4325,
			wantTotal:   1.0,
			wantAverage: 11.5 * 1.255,
		},
		{
			name:        "Quarter consumption with an hourly price",
			consumption: quarters(t, "2025-09-01T00:00:00Z", 0.25, 0.30, 0.20, 0.25),
			prices:      quarterPrices(t, "2025-09-01T00:00:00Z", 10),
			wantCost:    12.55,
			wantTotal:   1.0,
			wantAverage: 12.55,
		},
		{
			name:        "Partial quarter prices",
			consumption: quarters(t, "2025-09-01T00:00:00Z", 0.25, 0.30, 0.20, 0.25),
			prices: []pricing.PriceRecord{
				{Timestamp: ts(t, "2025-09-01T00:00:00Z"), SpotPrice: 10.0},
				{Timestamp: ts(t, "2025-09-01T00:30:00Z"), SpotPrice: 11.0},
			},
			wantCost:    (0.25*10 + 0.30*10.5 + 0.20*11 + 0.25*10.5) * 1.255,
			wantTotal:   1.0,
			wantAverage: (10 + 10.5 + 11 + 10.5) * 1.255 / 4,
		},
		{
			name:        "No prices at all",
			consumption: quarters(t, "2025-09-01T00:00:00Z", 0.25, 0.30, 0.20, 0.25),
			prices:      nil,
			wantCost:    0,
			wantTotal:   1.0,
			wantAverage: 0,
		},
		{
			name: "Average divides by consumption intervals, not matched prices",
			consumption: []pricing.ConsumptionInterval{
				{Timestamp: ts(t, "2024-01-01T00:00:00Z"), Consumption: 1.0},
				{Timestamp: ts(t, "2024-01-01T01:00:00Z"), Consumption: 1.0},
				{Timestamp: ts(t, "2024-01-01T02:00:00Z"), Consumption: 1.0},
				{Timestamp: ts(t, "2024-01-01T03:00:00Z"), Consumption: 1.0},
			},
			prices: []pricing.PriceRecord{
				{Timestamp: ts(t, "2024-01-01T00:00:00Z"), SpotPrice: 10.0},
				{Timestamp: ts(t, "2024-01-01T01:00:00Z"), SpotPrice: 20.0},
			},
			wantCost:    (10 + 20) * 1.24,
			wantTotal:   4.0,
			wantAverage: (10 + 20) * 1.24 / 4,
		},
		{
			name: "Quarter consumption across two hours",
			consumption: append(
				quarters(t, "2025-09-01T00:00:00Z", 0.25, 0.25, 0.25, 0.25),
				quarters(t, "2025-09-01T01:00:00Z", 0.5, 0.5, 0.5, 0.5)...,
			),
			prices: []pricing.PriceRecord{
				{Timestamp: ts(t, "2025-09-01T00:00:00Z"), SpotPrice: 8.0},
				{Timestamp: ts(t, "2025-09-01T01:00:00Z"), SpotPrice: 4.0},
			},
			wantCost:    (1.0*8 + 2.0*4) * 1.255,
			wantTotal:   3.0,
			wantAverage: (4*8 + 4*4) * 1.255 / 8,
		},
		{
			name: "Negative spot price lowers the cost",
			consumption: []pricing.ConsumptionInterval{
				{Timestamp: ts(t, "2025-05-01T12:00:00Z"), Consumption: 2.0},
			},
			prices: []pricing.PriceRecord{
				{Timestamp: ts(t, "2025-05-01T12:00:00Z"), SpotPrice: -0.5},
			},
			wantCost:    2.0 * -0.5 * 1.255,
			wantTotal:   2.0,
			wantAverage: -0.5 * 1.255,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := pricing.Calculate(tt.consumption, tt.prices)

			assert.InDelta(t, tt.wantCost, report.TotalCost, delta)
			assert.InDelta(t, tt.wantTotal, report.TotalConsumption, delta)
			assert.InDelta(t, tt.wantAverage, report.AverageSpotPrice, delta)
		})
	}
}

func TestCalculate_UnorderedInput(t *testing.T) {
	consumption := quarters(t, "2025-09-01T00:00:00Z", 0.25, 0.30, 0.20, 0.25)
	prices := quarterPrices(t, "2025-09-01T00:00:00Z", 10, 12, 11, 13)

	reversedConsumption := make([]pricing.ConsumptionInterval, len(consumption))
	for i, c := range consumption {
		reversedConsumption[len(consumption)-1-i] = c
	}
	reversedPrices := make([]pricing.PriceRecord, len(prices))
	for i, p := range prices {
		reversedPrices[len(prices)-1-i] = p
	}

	want := pricing.Calculate(consumption, prices)
	got := pricing.Calculate(reversedConsumption, reversedPrices)

	assert.InDelta(t, want.TotalCost, got.TotalCost, delta)
	assert.InDelta(t, want.TotalConsumption, got.TotalConsumption, delta)
	assert.InDelta(t, want.AverageSpotPrice, got.AverageSpotPrice, delta)
}

func TestCalculate_Idempotent(t *testing.T) {
	consumption := quarters(t, "2025-09-01T00:00:00Z", 0.25, 0.30, 0.20, 0.25)
	prices := []pricing.PriceRecord{
		{Timestamp: ts(t, "2025-09-01T00:00:00Z"), SpotPrice: 10.0},
		{Timestamp: ts(t, "2025-09-01T00:30:00Z"), SpotPrice: 11.0},
	}

	first := pricing.Calculate(consumption, prices)
	second := pricing.Calculate(consumption, prices)

	require.Equal(t, math.Float64bits(first.TotalCost), math.Float64bits(second.TotalCost))
	require.Equal(t, math.Float64bits(first.TotalConsumption), math.Float64bits(second.TotalConsumption))
	require.Equal(t, math.Float64bits(first.AverageSpotPrice), math.Float64bits(second.AverageSpotPrice))
}

func TestCalculate_Concurrent(t *testing.T) {
	consumption := quarters(t, "2025-09-01T00:00:00Z", 0.25, 0.30, 0.20, 0.25)
	prices := quarterPrices(t, "2025-09-01T00:00:00Z", 10, 12, 11, 13)
	want := pricing.Calculate(consumption, prices)

	var wg sync.WaitGroup
	results := make([]pricing.CostReport, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = pricing.Calculate(consumption, prices)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestCalculate_NonUTCInput(t *testing.T) {
	helsinki := time.FixedZone("EET", 2*60*60)
	consumption := []pricing.ConsumptionInterval{
		{Timestamp: time.Date(2025, 9, 1, 3, 0, 0, 0, helsinki), Consumption: 1.0},
	}
	prices := []pricing.PriceRecord{
		{Timestamp: time.Date(2025, 9, 1, 1, 0, 0, 0, time.UTC), SpotPrice: 10.0},
	}

	report := pricing.Calculate(consumption, prices)
	assert.InDelta(t, 12.55, report.TotalCost, delta)
}

func TestFixedCost(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		price float64
		want  float64
	}{
		{name: "Zero consumption", total: 0, price: 8.5, want: 0},
		{name: "No VAT applied", total: 3.0, price: 10.0, want: 30.0},
		{name: "Fractional price", total: 1234.5, price: 7.99, want: 1234.5 * 7.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, pricing.FixedCost(tt.total, tt.price), delta)
		})
	}
}

func TestConsumptionRange(t *testing.T) {
	_, _, ok := pricing.ConsumptionRange(nil)
	assert.False(t, ok)

	consumption := []pricing.ConsumptionInterval{
		{Timestamp: ts(t, "2025-01-02T00:00:00Z")},
		{Timestamp: ts(t, "2025-01-01T00:00:00Z")},
		{Timestamp: ts(t, "2025-01-03T00:00:00Z")},
	}
	first, last, ok := pricing.ConsumptionRange(consumption)
	require.True(t, ok)
	assert.Equal(t, ts(t, "2025-01-01T00:00:00Z"), first.Timestamp)
	assert.Equal(t, ts(t, "2025-01-03T00:00:00Z"), last.Timestamp)
}

func TestLookupWindow(t *testing.T) {
	_, _, ok := pricing.LookupWindow(nil)
	assert.False(t, ok)

	consumption := []pricing.ConsumptionInterval{
		{Timestamp: ts(t, "2025-09-01T01:45:00Z")},
		{Timestamp: ts(t, "2025-09-01T00:15:00Z")},
	}
	from, to, ok := pricing.LookupWindow(consumption)
	require.True(t, ok)
	assert.Equal(t, ts(t, "2025-09-01T00:00:00Z"), from)
	assert.Equal(t, ts(t, "2025-09-01T01:59:59.999999Z"), to)

	single := []pricing.ConsumptionInterval{{Timestamp: ts(t, "2025-09-01T00:00:00Z")}}
	from, to, ok = pricing.LookupWindow(single)
	require.True(t, ok)
	assert.True(t, !from.After(single[0].Timestamp) && !to.Before(single[0].Timestamp))
	assert.Equal(t, ts(t, "2025-09-01T00:59:59.999999Z"), to)
}
