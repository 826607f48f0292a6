package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jentrix/cityscout/internal/resource"
)

// WeatherStore persists forecast rows. It satisfies resource.Store[Weather].
type WeatherStore struct {
	db *Store
}

func NewWeatherStore(db *Store) *WeatherStore {
	return &WeatherStore{db: db}
}

func (s *WeatherStore) ListByLocation(ctx context.Context, locationID int64) ([]resource.Weather, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, forecast, forecast_time, created_at, location_id
		FROM weathers
		WHERE location_id = $1
		ORDER BY id
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query weathers: %w", err)
	}
	defer rows.Close()

	var result []resource.Weather
	for rows.Next() {
		var w resource.Weather
		if err := rows.Scan(&w.ID, &w.Forecast, &w.Time, &w.CreatedAt, &w.LocationID); err != nil {
			return nil, fmt.Errorf("failed to scan weather row: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

func (s *WeatherStore) SaveAll(ctx context.Context, locationID int64, items []resource.Weather) error {
	batch := &pgx.Batch{}
	for _, w := range items {
		batch.Queue(`
			INSERT INTO weathers (forecast, forecast_time, created_at, location_id)
			VALUES ($1, $2, $3, $4)
		`, w.Forecast, w.Time, w.CreatedAt, locationID)
	}

	if err := s.db.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save weathers: %w", err)
	}
	return nil
}

func (s *WeatherStore) DeleteByLocation(ctx context.Context, locationID int64) error {
	if _, err := s.db.Pool.Exec(ctx, `DELETE FROM weathers WHERE location_id = $1`, locationID); err != nil {
		return fmt.Errorf("failed to delete weathers: %w", err)
	}
	return nil
}

// DeleteStale removes all weather rows of every location whose newest row is
// older than maxAge. Used by the background sweeper; the read path performs
// the same check on its own.
func (s *WeatherStore) DeleteStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).UnixMilli()

	tag, err := s.db.Pool.Exec(ctx, `
		DELETE FROM weathers
		WHERE location_id IN (
			SELECT location_id
			FROM weathers
			GROUP BY location_id
			HAVING MAX(created_at) < $1
		)
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale weathers: %w", err)
	}
	return tag.RowsAffected(), nil
}
