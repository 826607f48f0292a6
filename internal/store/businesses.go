package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jentrix/cityscout/internal/resource"
)

// BusinessStore persists business listings. It satisfies
// resource.Store[Business].
type BusinessStore struct {
	db *Store
}

func NewBusinessStore(db *Store) *BusinessStore {
	return &BusinessStore{db: db}
}

func (s *BusinessStore) ListByLocation(ctx context.Context, locationID int64) ([]resource.Business, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, url, image_url, rating, price, location_id
		FROM businesses
		WHERE location_id = $1
		ORDER BY id
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses: %w", err)
	}
	defer rows.Close()

	var result []resource.Business
	for rows.Next() {
		var b resource.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.URL, &b.ImageURL, &b.Rating, &b.Price, &b.LocationID); err != nil {
			return nil, fmt.Errorf("failed to scan business row: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (s *BusinessStore) SaveAll(ctx context.Context, locationID int64, items []resource.Business) error {
	batch := &pgx.Batch{}
	for _, b := range items {
		batch.Queue(`
			INSERT INTO businesses (name, url, image_url, rating, price, location_id)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, b.Name, b.URL, b.ImageURL, b.Rating, b.Price, locationID)
	}

	if err := s.db.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save businesses: %w", err)
	}
	return nil
}

func (s *BusinessStore) DeleteByLocation(ctx context.Context, locationID int64) error {
	if _, err := s.db.Pool.Exec(ctx, `DELETE FROM businesses WHERE location_id = $1`, locationID); err != nil {
		return fmt.Errorf("failed to delete businesses: %w", err)
	}
	return nil
}
