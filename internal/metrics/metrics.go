// Package metrics exposes Prometheus instrumentation for the API and the cost calculations
package metrics

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	metricPrefix = "kumpisahko_"

	ResultSuccess     = "success"
	ResultLookupError = "lookup_error"
)

// Metrics holds the collectors registered on one registry
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	calculations       *prometheus.CounterVec
	calculationSize    prometheus.Histogram
	priceLookupLatency prometheus.Histogram
	pricesUpserted     prometheus.Counter
}

// New creates the collectors on a fresh registry together with the Go and process collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "cost_calculations_total",
				Help: "Total cost calculations by result",
			},
			[]string{"result"},
		),
		calculationSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "cost_calculation_intervals",
				Help:    "Consumption intervals per cost calculation",
				Buckets: prometheus.ExponentialBuckets(24, 4, 8),
			},
		),
		priceLookupLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "price_lookup_latency_seconds",
				Help:    "Price store lookup latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		pricesUpserted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "spot_prices_upserted_total",
				Help: "Total spot prices written through the API",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpLatency,
		m.calculations,
		m.calculationSize,
		m.priceLookupLatency,
		m.pricesUpserted,
	)
	return m
}

// RegisterDBMetrics adds gauges that are evaluated against the database on scrape
func (m *Metrics) RegisterDBMetrics(db *sql.DB, logger zerolog.Logger) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "spot_prices_stored",
			Help: "Spot price records in the price store",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM spot_prices")
		},
	))
}

func queryCount(db *sql.DB, logger zerolog.Logger, query string) float64 {
	if db == nil {
		return 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var count int64
	if err := db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		logger.Warn().Err(err).Msg("metrics query failed")
		return 0
	}
	return float64(count)
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveCalculation records a finished cost calculation
func (m *Metrics) ObserveCalculation(result string, intervals int) {
	m.calculations.WithLabelValues(result).Inc()
	if result == ResultSuccess {
		m.calculationSize.Observe(float64(intervals))
	}
}

// ObservePriceLookup records the latency of one price store lookup
func (m *Metrics) ObservePriceLookup(elapsed time.Duration) {
	m.priceLookupLatency.Observe(elapsed.Seconds())
}

// AddUpsertedPrices counts prices written through the API
func (m *Metrics) AddUpsertedPrices(n int) {
	m.pricesUpserted.Add(float64(n))
}
