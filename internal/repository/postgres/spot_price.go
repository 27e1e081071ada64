package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"kumpisahko/internal/models"
	"kumpisahko/internal/pricing"
	"kumpisahko/internal/repository"
	"strings"
	"time"

	"github.com/google/uuid"
)

const upsertSpotPriceSQL = `
	INSERT INTO spot_prices (id, timestamp, price, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $4)
	ON CONFLICT (timestamp) DO UPDATE
	SET price = EXCLUDED.price,
		updated_at = EXCLUDED.updated_at
	RETURNING id, created_at, updated_at`

type spotPriceRepository struct {
	repository.BaseRepository
}

// NewSpotPriceRepository creates a new PostgreSQL spot price repository
func NewSpotPriceRepository(db *sql.DB) repository.SpotPriceRepository {
	return &spotPriceRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *spotPriceRepository) Upsert(ctx context.Context, spotPrice *models.SpotPrice) error {
	if spotPrice.ID == uuid.Nil {
		spotPrice.ID = uuid.New()
	}

	return r.DB().QueryRowContext(ctx, upsertSpotPriceSQL,
		spotPrice.ID,
		spotPrice.Timestamp.UTC(),
		spotPrice.Price,
		time.Now().UTC(),
	).Scan(&spotPrice.ID, &spotPrice.CreatedAt, &spotPrice.UpdatedAt)
}

func (r *spotPriceRepository) UpsertBatch(ctx context.Context, spotPrices []models.SpotPrice) error {
	if len(spotPrices) == 0 {
		return nil
	}

	return r.Transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, upsertSpotPriceSQL)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		now := time.Now().UTC()
		for i := range spotPrices {
			sp := &spotPrices[i]
			if sp.ID == uuid.Nil {
				sp.ID = uuid.New()
			}
			err := stmt.QueryRowContext(ctx, sp.ID, sp.Timestamp.UTC(), sp.Price, now).
				Scan(&sp.ID, &sp.CreatedAt, &sp.UpdatedAt)
			if err != nil {
				return fmt.Errorf("failed to upsert price at %s: %w", sp.Timestamp.Format(time.RFC3339), err)
			}
		}
		return nil
	})
}

func (r *spotPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB().ExecContext(ctx, `DELETE FROM spot_prices WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *spotPriceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SpotPrice, error) {
	query := `
		SELECT id, timestamp, price, created_at, updated_at
		FROM spot_prices
		WHERE id = $1`

	return r.scanOne(r.DB().QueryRowContext(ctx, query, id))
}

func (r *spotPriceRepository) Latest(ctx context.Context) (*models.SpotPrice, error) {
	query := `
		SELECT id, timestamp, price, created_at, updated_at
		FROM spot_prices
		ORDER BY timestamp DESC
		LIMIT 1`

	return r.scanOne(r.DB().QueryRowContext(ctx, query))
}

func (r *spotPriceRepository) scanOne(row *sql.Row) (*models.SpotPrice, error) {
	spotPrice := &models.SpotPrice{}
	err := row.Scan(
		&spotPrice.ID,
		&spotPrice.Timestamp,
		&spotPrice.Price,
		&spotPrice.CreatedAt,
		&spotPrice.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	spotPrice.Timestamp = spotPrice.Timestamp.UTC()
	return spotPrice, nil
}

func (r *spotPriceRepository) List(ctx context.Context, filter repository.SpotPriceFilter) ([]models.SpotPrice, error) {
	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 4)
	argCount := 1

	if filter.StartTime != nil {
		conditions = append(conditions, fmt.Sprintf("timestamp >= $%d", argCount))
		args = append(args, filter.StartTime.UTC())
		argCount++
	}

	if filter.EndTime != nil {
		conditions = append(conditions, fmt.Sprintf("timestamp <= $%d", argCount))
		args = append(args, filter.EndTime.UTC())
		argCount++
	}

	query := `
		SELECT id, timestamp, price, created_at, updated_at
		FROM spot_prices`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY timestamp"
	if filter.OrderDesc {
		query += " DESC"
	} else {
		query += " ASC"
	}

	if filter.Limit != nil {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, *filter.Limit)
		argCount++
	}

	if filter.Offset != nil {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, *filter.Offset)
	}

	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spotPrices := make([]models.SpotPrice, 0)
	for rows.Next() {
		var sp models.SpotPrice
		if err := rows.Scan(
			&sp.ID,
			&sp.Timestamp,
			&sp.Price,
			&sp.CreatedAt,
			&sp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sp.Timestamp = sp.Timestamp.UTC()
		spotPrices = append(spotPrices, sp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return spotPrices, nil
}

func (r *spotPriceRepository) PricesInRange(ctx context.Context, from, to time.Time) ([]pricing.PriceRecord, error) {
	if to.Before(from) {
		return nil, repository.ErrInvalidRange
	}

	query := `
		SELECT timestamp, price
		FROM spot_prices
		WHERE timestamp >= $1 AND timestamp <= $2`

	rows, err := r.DB().QueryContext(ctx, query, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]pricing.PriceRecord, 0)
	for rows.Next() {
		var rec pricing.PriceRecord
		if err := rows.Scan(&rec.Timestamp, &rec.SpotPrice); err != nil {
			return nil, err
		}
		rec.Timestamp = rec.Timestamp.UTC()
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
