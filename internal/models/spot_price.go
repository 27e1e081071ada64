package models

import (
	"time"

	"github.com/google/uuid"
)

// SpotPrice represents a stored spot price. Prices are VAT-exclusive, in c/kWh.
type SpotPrice struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp" binding:"required"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateSpotPriceRequest represents a single spot price in a batch upsert request
type CreateSpotPriceRequest struct {
	Timestamp time.Time `json:"timestamp" binding:"required" example:"2025-09-01T00:15:00Z"`
	Price     *float64  `json:"price" binding:"required,finite" example:"4.25"`
}

// CreateSpotPricesRequest represents a batch upsert request for spot prices
type CreateSpotPricesRequest struct {
	SpotPrices []CreateSpotPriceRequest `json:"spot_prices" binding:"required,min=1,max=5000,dive"`
}
