package resource

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jentrix/cityscout/internal/logger"
)

// ErrNoData is returned when the upstream provider has nothing for the
// requested parameters. Nothing is persisted in that case.
var ErrNoData = errors.New("provider returned no data")

// Store is the persistence contract one resource table must satisfy.
type Store[T any] interface {
	ListByLocation(ctx context.Context, locationID int64) ([]T, error)
	SaveAll(ctx context.Context, locationID int64, items []T) error
	DeleteByLocation(ctx context.Context, locationID int64) error
}

// Fetcher calls the resource's upstream provider and maps the payload into
// canonical records.
type Fetcher[T any] func(ctx context.Context, params Params) ([]T, error)

// AdapterConfig describes one resource's caching behaviour.
type AdapterConfig[T any] struct {
	Name  string
	Store Store[T]
	Fetch Fetcher[T]

	// Limit caps how many records a cache miss keeps and returns.
	// Zero keeps everything.
	Limit int

	// MaxAge is the staleness threshold; zero means cached forever.
	// Age must report a record's age whenever MaxAge is set.
	MaxAge time.Duration
	Age    func(T) time.Duration
}

// Adapter is a read-through cache over one resource table. All resources
// share this fetch-or-cache sequence; they differ only in their config.
type Adapter[T any] struct {
	name           string
	store          Store[T]
	fetch          Fetcher[T]
	limit          int
	maxAge         time.Duration
	age            func(T) time.Duration
	persistTimeout time.Duration
	log            *zap.SugaredLogger
}

// NewAdapter creates a cache adapter from cfg.
func NewAdapter[T any](cfg AdapterConfig[T]) *Adapter[T] {
	return &Adapter[T]{
		name:           cfg.Name,
		store:          cfg.Store,
		fetch:          cfg.Fetch,
		limit:          cfg.Limit,
		maxAge:         cfg.MaxAge,
		age:            cfg.Age,
		persistTimeout: 10 * time.Second,
		log:            logger.GetLogger(cfg.Name),
	}
}

// FetchOrCache returns the cached records for locationID, fetching from the
// provider when the cache is empty or (weather only) stale. Concurrent
// misses for the same location may each fetch and insert; rows are keyed by
// location only, so this duplicates data rather than corrupting it.
func (a *Adapter[T]) FetchOrCache(ctx context.Context, locationID int64, params Params) ([]T, error) {
	rows, err := a.store.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if len(rows) > 0 {
		if !a.stale(rows[0]) {
			return rows, nil
		}
		a.log.Infof("stale cache for location %d; discarding %d rows", locationID, len(rows))
		if err := a.store.DeleteByLocation(ctx, locationID); err != nil {
			return nil, err
		}
	}

	items, err := a.fetch(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoData
	}

	if a.limit > 0 && len(items) > a.limit {
		items = items[:a.limit]
	}

	a.persist(locationID, items)
	return items, nil
}

func (a *Adapter[T]) stale(first T) bool {
	if a.maxAge <= 0 || a.age == nil {
		return false
	}
	return a.age(first) > a.maxAge
}

// persist writes without blocking the response; a failed write only logs,
// the already-fetched data is still returned to the caller.
func (a *Adapter[T]) persist(locationID int64, items []T) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.persistTimeout)
		defer cancel()

		if err := a.store.SaveAll(ctx, locationID, items); err != nil {
			a.log.Errorf("save failed for location %d: %v", locationID, err)
		}
	}()
}

// WeatherAge reports how old a cached weather row is.
func WeatherAge(w Weather) time.Duration {
	return time.Since(time.UnixMilli(w.CreatedAt))
}
