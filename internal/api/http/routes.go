package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jentrix/cityscout/internal/location"
	"github.com/jentrix/cityscout/internal/logger"
	"github.com/jentrix/cityscout/internal/resource"
)

var validate = validator.New()

// Resolver maps a free-text query to a stored location.
type Resolver interface {
	Resolve(ctx context.Context, query string) (location.Location, error)
}

// WeatherSource serves cached-or-fetched weather records.
type WeatherSource interface {
	FetchOrCache(ctx context.Context, locationID int64, params resource.Params) ([]resource.Weather, error)
}

// EventSource serves cached-or-fetched event records.
type EventSource interface {
	FetchOrCache(ctx context.Context, locationID int64, params resource.Params) ([]resource.Event, error)
}

// MovieSource serves cached-or-fetched movie records.
type MovieSource interface {
	FetchOrCache(ctx context.Context, locationID int64, params resource.Params) ([]resource.Movie, error)
}

// BusinessSource serves cached-or-fetched business listings.
type BusinessSource interface {
	FetchOrCache(ctx context.Context, locationID int64, params resource.Params) ([]resource.Business, error)
}

// Services bundles everything the HTTP surface depends on.
type Services struct {
	Resolver Resolver
	Weather  WeatherSource
	Events   EventSource
	Movies   MovieSource
	Yelp     BusinessSource
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svcs Services) {
	log := logger.GetLogger("api")

	app.Get("/location", func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return fiber.NewError(fiber.StatusBadRequest, "q query parameter is required")
		}

		loc, err := svcs.Resolver.Resolve(c.UserContext(), query)
		if err != nil {
			if errors.Is(err, location.ErrNoResults) {
				return fiber.NewError(fiber.StatusNotFound, "no location found for query")
			}
			log.Errorf("location resolve failed for %q: %v", query, err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to resolve location")
		}

		return c.JSON(loc)
	})

	app.Get("/weather", func(c *fiber.Ctx) error {
		var req coordinateQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		records, err := svcs.Weather.FetchOrCache(c.UserContext(), req.LocationID, resource.Params{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		})
		if err != nil {
			return resourceError(log, "weather", err)
		}
		return c.JSON(records)
	})

	app.Get("/events", func(c *fiber.Ctx) error {
		var req addressQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		records, err := svcs.Events.FetchOrCache(c.UserContext(), req.LocationID, resource.Params{
			Address: req.FormattedQuery,
		})
		if err != nil {
			return resourceError(log, "events", err)
		}
		return c.JSON(records)
	})

	app.Get("/movies", func(c *fiber.Ctx) error {
		var req searchQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		records, err := svcs.Movies.FetchOrCache(c.UserContext(), req.LocationID, resource.Params{
			Query: req.Q,
		})
		if err != nil {
			return resourceError(log, "movies", err)
		}
		return c.JSON(records)
	})

	app.Get("/yelp", func(c *fiber.Ctx) error {
		var req coordinateQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		records, err := svcs.Yelp.FetchOrCache(c.UserContext(), req.LocationID, resource.Params{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		})
		if err != nil {
			return resourceError(log, "yelp", err)
		}
		return c.JSON(records)
	})
}

// resourceError collapses fetch failures into the two responses the caller
// may see: 404 for an empty provider result, 500 for everything else. The
// underlying cause is only logged.
func resourceError(log *zap.SugaredLogger, name string, err error) error {
	if errors.Is(err, resource.ErrNoData) {
		return fiber.NewError(fiber.StatusNotFound, "no "+name+" data for requested location")
	}
	log.Errorf("%s fetch failed: %v", name, err)
	return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch "+name+" data")
}

// locationIDQuery binds the location_id parameter every resource endpoint
// requires.
type locationIDQuery struct {
	LocationID int64 `validate:"required,gt=0"`
}

func (q *locationIDQuery) bind(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Query("location_id"), 10, 64)
	if err != nil {
		return errors.New("location_id query parameter is required")
	}
	q.LocationID = id
	return validate.Struct(q)
}

// coordinateQuery binds location id plus latitude/longitude.
type coordinateQuery struct {
	locationIDQuery
	Latitude  float64
	Longitude float64
}

func (q *coordinateQuery) bind(c *fiber.Ctx) error {
	if err := q.locationIDQuery.bind(c); err != nil {
		return err
	}

	latStr := c.Query("latitude")
	lngStr := c.Query("longitude")
	if latStr == "" || lngStr == "" {
		return errors.New("latitude and longitude query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return errors.New("invalid latitude")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return errors.New("invalid longitude")
	}

	q.Latitude = lat
	q.Longitude = lng
	return nil
}

// addressQuery binds location id plus the formatted address.
type addressQuery struct {
	locationIDQuery
	FormattedQuery string
}

func (q *addressQuery) bind(c *fiber.Ctx) error {
	if err := q.locationIDQuery.bind(c); err != nil {
		return err
	}
	q.FormattedQuery = c.Query("formatted_query")
	if q.FormattedQuery == "" {
		return errors.New("formatted_query query parameter is required")
	}
	return nil
}

// searchQuery binds location id plus the free-text query.
type searchQuery struct {
	locationIDQuery
	Q string
}

func (q *searchQuery) bind(c *fiber.Ctx) error {
	if err := q.locationIDQuery.bind(c); err != nil {
		return err
	}
	q.Q = c.Query("q")
	if q.Q == "" {
		return errors.New("q query parameter is required")
	}
	return nil
}
