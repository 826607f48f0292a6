package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jentrix/cityscout/internal/resource"
)

// MovieStore persists movie rows. It satisfies resource.Store[Movie].
type MovieStore struct {
	db *Store
}

func NewMovieStore(db *Store) *MovieStore {
	return &MovieStore{db: db}
}

func (s *MovieStore) ListByLocation(ctx context.Context, locationID int64) ([]resource.Movie, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, title, overview, average_votes, total_votes, image_url, popularity, released_on, location_id
		FROM movies
		WHERE location_id = $1
		ORDER BY id
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	var result []resource.Movie
	for rows.Next() {
		var m resource.Movie
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Overview, &m.AverageVotes, &m.TotalVotes,
			&m.ImageURL, &m.Popularity, &m.ReleasedOn, &m.LocationID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan movie row: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (s *MovieStore) SaveAll(ctx context.Context, locationID int64, items []resource.Movie) error {
	batch := &pgx.Batch{}
	for _, m := range items {
		batch.Queue(`
			INSERT INTO movies (title, overview, average_votes, total_votes, image_url, popularity, released_on, location_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, m.Title, m.Overview, m.AverageVotes, m.TotalVotes, m.ImageURL, m.Popularity, m.ReleasedOn, locationID)
	}

	if err := s.db.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save movies: %w", err)
	}
	return nil
}

func (s *MovieStore) DeleteByLocation(ctx context.Context, locationID int64) error {
	if _, err := s.db.Pool.Exec(ctx, `DELETE FROM movies WHERE location_id = $1`, locationID); err != nil {
		return fmt.Errorf("failed to delete movies: %w", err)
	}
	return nil
}
