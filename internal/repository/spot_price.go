package repository

import (
	"context"
	"kumpisahko/internal/models"
	"kumpisahko/internal/pricing"
	"time"

	"github.com/google/uuid"
)

// SpotPriceRepository defines the interface for spot price database operations
type SpotPriceRepository interface {
	Repository
	// Upsert inserts the price or replaces the price already stored at the same timestamp
	Upsert(ctx context.Context, spotPrice *models.SpotPrice) error
	// UpsertBatch upserts all prices in a single transaction
	UpsertBatch(ctx context.Context, spotPrices []models.SpotPrice) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SpotPrice, error)
	// Latest returns the price with the greatest timestamp
	Latest(ctx context.Context) (*models.SpotPrice, error)
	List(ctx context.Context, filter SpotPriceFilter) ([]models.SpotPrice, error)
	// PricesInRange returns every price with from <= timestamp <= to
	PricesInRange(ctx context.Context, from, to time.Time) ([]pricing.PriceRecord, error)
}

// SpotPriceFilter defines the filter options for listing spot prices
type SpotPriceFilter struct {
	StartTime *time.Time
	EndTime   *time.Time
	OrderDesc bool
	Limit     *int
	Offset    *int
}
