package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/jentrix/cityscout/internal/location"
)

// GeocodeClient implements location.Geocoder against the LocationIQ
// search API.
type GeocodeClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewGeocodeClient(client *http.Client, apiKey string) *GeocodeClient {
	return &GeocodeClient{
		apiKey:  apiKey,
		baseURL: "https://us1.locationiq.com/v1/search.json",
		client:  client,
		circuit: newCircuit("geocode"),
	}
}

// Geocode maps a free-text query to candidate places. An empty slice means
// the provider had no match; the caller decides what that means.
func (c *GeocodeClient) Geocode(ctx context.Context, query string) ([]location.Place, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("geocode api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", c.apiKey)
		values.Set("q", query)
		values.Set("format", "json")

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, c.client, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// LocationIQ returns coordinates as strings.
	var payload []struct {
		DisplayName string `json:"display_name"`
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	places := make([]location.Place, 0, len(payload))
	for _, item := range payload {
		lat, err := strconv.ParseFloat(item.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("geocode: bad latitude %q: %w", item.Lat, err)
		}
		lon, err := strconv.ParseFloat(item.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("geocode: bad longitude %q: %w", item.Lon, err)
		}

		places = append(places, location.Place{
			FormattedAddress: item.DisplayName,
			Latitude:         lat,
			Longitude:        lon,
		})
	}

	return places, nil
}
