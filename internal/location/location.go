package location

import (
	"context"
	"errors"
)

// ErrNoResults is returned when the geocoding provider has no match
// for a search query.
var ErrNoResults = errors.New("no geocoding results for query")

// Location is a resolved place usable as the join key for all cached
// resources. Created on first successful geocode of a distinct search
// query, immutable thereafter.
type Location struct {
	ID             int64   `json:"id"`
	SearchQuery    string  `json:"search_query"`
	FormattedQuery string  `json:"formatted_query"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}

// Place is a single geocoding provider result.
type Place struct {
	FormattedAddress string
	Latitude         float64
	Longitude        float64
}

// Geocoder abstracts the upstream geocoding provider.
type Geocoder interface {
	Geocode(ctx context.Context, query string) ([]Place, error)
}

// Store is the persistence contract for resolved locations. Insert must be
// conflict-tolerant: a concurrent duplicate insert yields the existing row,
// never a record without an identity.
type Store interface {
	FindBySearchQuery(ctx context.Context, query string) (Location, bool, error)
	Insert(ctx context.Context, loc Location) (Location, error)
}
