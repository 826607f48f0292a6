package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/jentrix/cityscout/internal/location"
	"github.com/jentrix/cityscout/internal/resource"
)

type fakeResolver struct {
	loc location.Location
	err error
}

func (f fakeResolver) Resolve(_ context.Context, _ string) (location.Location, error) {
	return f.loc, f.err
}

type fakeSource[T any] struct {
	items []T
	err   error
}

func (f fakeSource[T]) FetchOrCache(_ context.Context, _ int64, _ resource.Params) ([]T, error) {
	return f.items, f.err
}

func testApp(svcs Services) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": true, "message": err.Error()})
		},
	})
	RegisterRoutes(app, svcs)
	return app
}

func TestLocationEndpoint(t *testing.T) {
	app := testApp(Services{Resolver: fakeResolver{loc: location.Location{
		ID:             1,
		SearchQuery:    "98005",
		FormattedQuery: "Renton, WA 98056, USA",
		Latitude:       47.48,
		Longitude:      -122.19,
	}}})

	req := httptest.NewRequest(http.MethodGet, "/location?q=98005", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var loc location.Location
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &loc); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if loc.FormattedQuery != "Renton, WA 98056, USA" || loc.ID != 1 {
		t.Fatalf("unexpected location: %+v", loc)
	}
}

func TestLocationEndpointRequiresQuery(t *testing.T) {
	app := testApp(Services{Resolver: fakeResolver{}})

	req := httptest.NewRequest(http.MethodGet, "/location", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestLocationEndpointNoResults(t *testing.T) {
	app := testApp(Services{Resolver: fakeResolver{err: location.ErrNoResults}})

	req := httptest.NewRequest(http.MethodGet, "/location?q=nowhere", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestWeatherEndpointValidation(t *testing.T) {
	app := testApp(Services{Weather: fakeSource[resource.Weather]{}})

	// Missing location id.
	req := httptest.NewRequest(http.MethodGet, "/weather?latitude=47.6&longitude=-122.3", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Missing coordinates.
	req = httptest.NewRequest(http.MethodGet, "/weather?location_id=1", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestWeatherEndpointReturnsRecords(t *testing.T) {
	app := testApp(Services{Weather: fakeSource[resource.Weather]{items: []resource.Weather{
		{Forecast: "Partly cloudy.", Time: "Mon Apr 01 2019"},
	}}})

	req := httptest.NewRequest(http.MethodGet, "/weather?location_id=1&latitude=47.6&longitude=-122.3", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var records []resource.Weather
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &records); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(records) != 1 || records[0].Forecast != "Partly cloudy." {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestResourceEndpointNoData(t *testing.T) {
	app := testApp(Services{Yelp: fakeSource[resource.Business]{err: resource.ErrNoData}})

	req := httptest.NewRequest(http.MethodGet, "/yelp?location_id=1&latitude=47.6&longitude=-122.3", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestResourceEndpointProviderFailureIsGeneric(t *testing.T) {
	app := testApp(Services{Movies: fakeSource[resource.Movie]{err: errors.New("tmdb exploded: key abc123")}})

	req := httptest.NewRequest(http.MethodGet, "/movies?location_id=1&q=seattle", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if payload.Message != "failed to fetch movies data" {
		t.Fatalf("upstream detail leaked to caller: %q", payload.Message)
	}
}

func TestEventsEndpointRequiresAddress(t *testing.T) {
	app := testApp(Services{Events: fakeSource[resource.Event]{}})

	req := httptest.NewRequest(http.MethodGet, "/events?location_id=1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}
