// Package cost runs cost calculations against the price store
package cost

import (
	"context"
	"errors"
	"fmt"
	"kumpisahko/internal/metrics"
	"kumpisahko/internal/pricing"
	"time"

	"github.com/rs/zerolog"
)

// ErrPriceLookup is returned when the prices for a calculation could not be fetched.
// It is distinct from an empty result, which is a valid lookup outcome.
var ErrPriceLookup = errors.New("price lookup failed")

// PriceLookup fetches every price record with from <= timestamp <= to
type PriceLookup interface {
	PricesInRange(ctx context.Context, from, to time.Time) ([]pricing.PriceRecord, error)
}

// Result is a spot price report with the optional fixed-price comparison
type Result struct {
	Report pricing.CostReport
	// FixedCost is set when a constant unit price was supplied
	FixedCost *float64
	// Prices is the number of price records fetched for the calculation
	Prices int
}

// Option configures the service
type Option func(*Service)

// WithMetrics records lookups and calculations on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the service logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithLookupTimeout bounds the price lookup of each calculation
func WithLookupTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// Service fetches prices for the consumption range and hands both to the pricing engine
type Service struct {
	lookup  PriceLookup
	timeout time.Duration
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewService creates a cost service reading prices from lookup
func NewService(lookup PriceLookup, opts ...Option) *Service {
	s := &Service{
		lookup:  lookup,
		timeout: 10 * time.Second,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calculate prices the consumption. Prices are fetched for every hour the consumption
// touches so hour averages see the whole hour. Empty consumption returns a zero report
// without touching the price store. A failed lookup returns ErrPriceLookup and no report.
func (s *Service) Calculate(ctx context.Context, consumption []pricing.ConsumptionInterval, constantPrice *float64) (Result, error) {
	var result Result

	from, to, ok := pricing.LookupWindow(consumption)
	if ok {
		prices, err := s.fetch(ctx, from, to)
		if err != nil {
			s.observe(metrics.ResultLookupError, len(consumption))
			return Result{}, err
		}
		result.Prices = len(prices)
		result.Report = pricing.Calculate(consumption, prices)
	}

	if constantPrice != nil {
		fixed := pricing.FixedCost(result.Report.TotalConsumption, *constantPrice)
		result.FixedCost = &fixed
	}

	s.observe(metrics.ResultSuccess, len(consumption))
	s.logger.Debug().
		Int("intervals", len(consumption)).
		Int("prices", result.Prices).
		Float64("cost", result.Report.TotalCost).
		Msg("cost calculated")
	return result, nil
}

func (s *Service) fetch(ctx context.Context, from, to time.Time) ([]pricing.PriceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	prices, err := s.lookup.PricesInRange(ctx, from, to)
	if s.metrics != nil {
		s.metrics.ObservePriceLookup(time.Since(start))
	}
	if err != nil {
		s.logger.Error().Err(err).Time("from", from).Time("to", to).Msg("price lookup failed")
		return nil, fmt.Errorf("%w: %v", ErrPriceLookup, err)
	}
	return prices, nil
}

func (s *Service) observe(result string, intervals int) {
	if s.metrics != nil {
		s.metrics.ObserveCalculation(result, intervals)
	}
}
