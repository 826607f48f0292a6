package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jentrix/cityscout/internal/location"
)

// LocationStore persists resolved locations. It satisfies location.Store.
type LocationStore struct {
	db *Store
}

func NewLocationStore(db *Store) *LocationStore {
	return &LocationStore{db: db}
}

// FindBySearchQuery looks up a location by its raw search query.
func (s *LocationStore) FindBySearchQuery(ctx context.Context, query string) (location.Location, bool, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT id, search_query, formatted_query, latitude, longitude
		FROM locations
		WHERE search_query = $1
	`, query)

	var loc location.Location
	err := row.Scan(&loc.ID, &loc.SearchQuery, &loc.FormattedQuery, &loc.Latitude, &loc.Longitude)
	if errors.Is(err, pgx.ErrNoRows) {
		return location.Location{}, false, nil
	}
	if err != nil {
		return location.Location{}, false, fmt.Errorf("failed to find location: %w", err)
	}

	return loc, true, nil
}

// Insert stores a new location. On a search_query conflict the insert is a
// no-op and the existing row is returned, so the caller always receives an
// identified record.
func (s *LocationStore) Insert(ctx context.Context, loc location.Location) (location.Location, error) {
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO locations (search_query, formatted_query, latitude, longitude)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (search_query) DO NOTHING
		RETURNING id
	`, loc.SearchQuery, loc.FormattedQuery, loc.Latitude, loc.Longitude).Scan(&loc.ID)

	if errors.Is(err, pgx.ErrNoRows) {
		// A concurrent resolve won the insert; serve its row.
		existing, ok, findErr := s.FindBySearchQuery(ctx, loc.SearchQuery)
		if findErr != nil {
			return location.Location{}, findErr
		}
		if !ok {
			return location.Location{}, fmt.Errorf("location vanished after conflicting insert: %q", loc.SearchQuery)
		}
		return existing, nil
	}
	if err != nil {
		return location.Location{}, fmt.Errorf("failed to insert location: %w", err)
	}

	return loc, nil
}
