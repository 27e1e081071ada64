package postgres_test

import (
	"context"
	"kumpisahko/internal/models"
	"kumpisahko/internal/repository"
	"kumpisahko/internal/testutil"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

func TestSpotPriceRepository_Upsert(t *testing.T) {
	tc := testutil.NewTestContext(t)
	repo := tc.SpotPriceRepo
	ctx := context.Background()

	first := &models.SpotPrice{Timestamp: base, Price: 4.25}
	require.NoError(t, repo.Upsert(ctx, first))
	require.NotEqual(t, uuid.Nil, first.ID)

	t.Run("Same timestamp replaces the price", func(t *testing.T) {
		second := &models.SpotPrice{Timestamp: base, Price: 7.5}
		require.NoError(t, repo.Upsert(ctx, second))
		assert.Equal(t, first.ID, second.ID)

		got, err := repo.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, 7.5, got.Price)
		assert.True(t, got.Timestamp.Equal(base))
	})

	t.Run("Equal instant in another zone is the same row", func(t *testing.T) {
		helsinki := time.FixedZone("EEST", 3*60*60)
		sp := &models.SpotPrice{Timestamp: base.In(helsinki), Price: -0.5}
		require.NoError(t, repo.Upsert(ctx, sp))
		assert.Equal(t, first.ID, sp.ID)

		prices, err := repo.List(ctx, repository.SpotPriceFilter{})
		require.NoError(t, err)
		require.Len(t, prices, 1)
		assert.Equal(t, -0.5, prices[0].Price)
		assert.Equal(t, time.UTC, prices[0].Timestamp.Location())
	})
}

func TestSpotPriceRepository_UpsertBatch(t *testing.T) {
	tc := testutil.NewTestContext(t)
	repo := tc.SpotPriceRepo
	ctx := context.Background()

	batch := make([]models.SpotPrice, 0, 4)
	for i := 0; i < 4; i++ {
		batch = append(batch, models.SpotPrice{
			Timestamp: base.Add(time.Duration(i) * 15 * time.Minute),
			Price:     float64(i + 1),
		})
	}

	require.NoError(t, repo.UpsertBatch(ctx, batch))
	for _, sp := range batch {
		assert.NotEqual(t, uuid.Nil, sp.ID)
		assert.False(t, sp.CreatedAt.IsZero())
	}
	require.NoError(t, repo.UpsertBatch(ctx, nil))

	prices, err := repo.List(ctx, repository.SpotPriceFilter{})
	require.NoError(t, err)
	require.Len(t, prices, 4)
	for i, sp := range prices {
		assert.Equal(t, float64(i+1), sp.Price)
	}
}

func TestSpotPriceRepository_List(t *testing.T) {
	tc := testutil.NewTestContext(t)
	for i := 0; i < 6; i++ {
		tc.CreateSpotPrice(base.Add(time.Duration(i)*time.Hour), float64(i))
	}

	tests := []struct {
		name   string
		filter repository.SpotPriceFilter
		want   []float64
	}{
		{
			name:   "All ascending",
			filter: repository.SpotPriceFilter{},
			want:   []float64{0, 1, 2, 3, 4, 5},
		},
		{
			name: "Closed time range",
			filter: repository.SpotPriceFilter{
				StartTime: testutil.Time(base.Add(1 * time.Hour)),
				EndTime:   testutil.Time(base.Add(3 * time.Hour)),
			},
			want: []float64{1, 2, 3},
		},
		{
			name:   "Descending with limit and offset",
			filter: repository.SpotPriceFilter{OrderDesc: true, Limit: testutil.Int(2), Offset: testutil.Int(1)},
			want:   []float64{4, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prices, err := tc.SpotPriceRepo.List(context.Background(), tt.filter)
			require.NoError(t, err)

			got := make([]float64, len(prices))
			for i, sp := range prices {
				got[i] = sp.Price
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpotPriceRepository_PricesInRange(t *testing.T) {
	tc := testutil.NewTestContext(t)
	ctx := context.Background()
	tc.CreateSpotPrice(base.Add(-15*time.Minute), 1)
	tc.CreateSpotPrice(base, 2)
	tc.CreateSpotPrice(base.Add(45*time.Minute), 3)
	tc.CreateSpotPrice(base.Add(time.Hour), 4)

	t.Run("Bounds are inclusive", func(t *testing.T) {
		records, err := tc.SpotPriceRepo.PricesInRange(ctx, base, base.Add(time.Hour))
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("Hour window excludes the next hour", func(t *testing.T) {
		records, err := tc.SpotPriceRepo.PricesInRange(ctx, base, base.Add(time.Hour-time.Microsecond))
		require.NoError(t, err)
		require.Len(t, records, 2)
		for _, rec := range records {
			assert.Equal(t, time.UTC, rec.Timestamp.Location())
		}
	})

	t.Run("Empty result is not an error", func(t *testing.T) {
		records, err := tc.SpotPriceRepo.PricesInRange(ctx, base.AddDate(1, 0, 0), base.AddDate(1, 0, 1))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Reversed range", func(t *testing.T) {
		_, err := tc.SpotPriceRepo.PricesInRange(ctx, base.Add(time.Hour), base)
		assert.ErrorIs(t, err, repository.ErrInvalidRange)
	})
}

func TestSpotPriceRepository_LatestAndDelete(t *testing.T) {
	tc := testutil.NewTestContext(t)
	ctx := context.Background()

	_, err := tc.SpotPriceRepo.Latest(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	tc.CreateSpotPrice(base, 1)
	newest := tc.CreateSpotPrice(base.Add(time.Hour), 2)

	got, err := tc.SpotPriceRepo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newest.ID, got.ID)

	require.NoError(t, tc.SpotPriceRepo.Delete(ctx, newest.ID))
	assert.ErrorIs(t, tc.SpotPriceRepo.Delete(ctx, newest.ID), repository.ErrNotFound)

	_, err = tc.SpotPriceRepo.GetByID(ctx, newest.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
