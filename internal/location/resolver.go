package location

import (
	"context"

	"go.uber.org/zap"

	"github.com/jentrix/cityscout/internal/logger"
)

// Resolver maps free-text queries to stored locations, geocoding only on
// the first sighting of a distinct query.
type Resolver struct {
	store    Store
	geocoder Geocoder
	log      *zap.SugaredLogger
}

// NewResolver creates a new Resolver.
func NewResolver(store Store, geocoder Geocoder) *Resolver {
	return &Resolver{
		store:    store,
		geocoder: geocoder,
		log:      logger.GetLogger("resolver"),
	}
}

// Resolve returns the stored location for query, geocoding and persisting
// it on first sight. A query with no provider match returns ErrNoResults.
func (r *Resolver) Resolve(ctx context.Context, query string) (Location, error) {
	loc, ok, err := r.store.FindBySearchQuery(ctx, query)
	if err != nil {
		return Location{}, err
	}
	if ok {
		return loc, nil
	}

	places, err := r.geocoder.Geocode(ctx, query)
	if err != nil {
		return Location{}, err
	}
	if len(places) == 0 {
		return Location{}, ErrNoResults
	}

	first := places[0]
	loc = Location{
		SearchQuery:    query,
		FormattedQuery: first.FormattedAddress,
		Latitude:       first.Latitude,
		Longitude:      first.Longitude,
	}

	saved, err := r.store.Insert(ctx, loc)
	if err != nil {
		return Location{}, err
	}

	r.log.Infof("resolved %q to %q (%f, %f)", query, saved.FormattedQuery, saved.Latitude, saved.Longitude)
	return saved, nil
}
