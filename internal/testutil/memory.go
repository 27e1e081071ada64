package testutil

import (
	"context"
	"database/sql"
	"errors"
	"kumpisahko/internal/models"
	"kumpisahko/internal/pricing"
	"kumpisahko/internal/repository"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var errNoDatabase = errors.New("memory repository has no database")

// MemorySpotPriceRepository is an in-memory repository.SpotPriceRepository.
// Err, when set, is returned by every operation.
type MemorySpotPriceRepository struct {
	mu     sync.Mutex
	prices map[int64]models.SpotPrice
	Err    error
	// RangeCalls counts PricesInRange invocations
	RangeCalls int
}

// NewMemorySpotPriceRepository creates a repository holding prices
func NewMemorySpotPriceRepository(prices ...models.SpotPrice) *MemorySpotPriceRepository {
	r := &MemorySpotPriceRepository{prices: make(map[int64]models.SpotPrice)}
	for i := range prices {
		_ = r.Upsert(context.Background(), &prices[i])
	}
	return r
}

func (r *MemorySpotPriceRepository) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return errNoDatabase
}

func (r *MemorySpotPriceRepository) DB() *sql.DB {
	return nil
}

func (r *MemorySpotPriceRepository) Upsert(ctx context.Context, spotPrice *models.SpotPrice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.upsertLocked(spotPrice, time.Now().UTC())
	return nil
}

func (r *MemorySpotPriceRepository) upsertLocked(spotPrice *models.SpotPrice, now time.Time) {
	key := spotPrice.Timestamp.UnixNano()
	if existing, ok := r.prices[key]; ok {
		spotPrice.ID = existing.ID
		spotPrice.CreatedAt = existing.CreatedAt
	} else {
		if spotPrice.ID == uuid.Nil {
			spotPrice.ID = uuid.New()
		}
		spotPrice.CreatedAt = now
	}
	spotPrice.Timestamp = spotPrice.Timestamp.UTC()
	spotPrice.UpdatedAt = now
	r.prices[key] = *spotPrice
}

func (r *MemorySpotPriceRepository) UpsertBatch(ctx context.Context, spotPrices []models.SpotPrice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	now := time.Now().UTC()
	for i := range spotPrices {
		r.upsertLocked(&spotPrices[i], now)
	}
	return nil
}

func (r *MemorySpotPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for key, sp := range r.prices {
		if sp.ID == id {
			delete(r.prices, key)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *MemorySpotPriceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SpotPrice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, sp := range r.prices {
		if sp.ID == id {
			found := sp
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *MemorySpotPriceRepository) Latest(ctx context.Context) (*models.SpotPrice, error) {
	all, err := r.List(ctx, repository.SpotPriceFilter{OrderDesc: true, Limit: Int(1)})
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, repository.ErrNotFound
	}
	return &all[0], nil
}

func (r *MemorySpotPriceRepository) List(ctx context.Context, filter repository.SpotPriceFilter) ([]models.SpotPrice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	result := make([]models.SpotPrice, 0, len(r.prices))
	for _, sp := range r.prices {
		if filter.StartTime != nil && sp.Timestamp.Before(*filter.StartTime) {
			continue
		}
		if filter.EndTime != nil && sp.Timestamp.After(*filter.EndTime) {
			continue
		}
		result = append(result, sp)
	}

	sort.Slice(result, func(i, j int) bool {
		if filter.OrderDesc {
			return result[i].Timestamp.After(result[j].Timestamp)
		}
		return result[i].Timestamp.Before(result[j].Timestamp)
	})

	if filter.Offset != nil {
		if *filter.Offset >= len(result) {
			return []models.SpotPrice{}, nil
		}
		result = result[*filter.Offset:]
	}
	if filter.Limit != nil && *filter.Limit < len(result) {
		result = result[:*filter.Limit]
	}
	return result, nil
}

func (r *MemorySpotPriceRepository) PricesInRange(ctx context.Context, from, to time.Time) ([]pricing.PriceRecord, error) {
	r.mu.Lock()
	r.RangeCalls++
	r.mu.Unlock()

	if to.Before(from) {
		return nil, repository.ErrInvalidRange
	}
	prices, err := r.List(ctx, repository.SpotPriceFilter{StartTime: &from, EndTime: &to})
	if err != nil {
		return nil, err
	}

	records := make([]pricing.PriceRecord, len(prices))
	for i, sp := range prices {
		records[i] = pricing.PriceRecord{Timestamp: sp.Timestamp, SpotPrice: sp.Price}
	}
	return records, nil
}
