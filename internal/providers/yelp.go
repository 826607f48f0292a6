package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/jentrix/cityscout/internal/resource"
)

// YelpClient searches the Yelp Fusion API for businesses near coordinates.
// Unlike the other clients it authenticates with a bearer-token header.
type YelpClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewYelpClient(client *http.Client, apiKey string) *YelpClient {
	return &YelpClient{
		apiKey:  apiKey,
		baseURL: "https://api.yelp.com/v3/businesses/search",
		client:  client,
		circuit: newCircuit("yelp"),
	}
}

// Search fetches business listings around the coordinates in params.
func (c *YelpClient) Search(ctx context.Context, params resource.Params) ([]resource.Business, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("yelp api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(params.Latitude, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(params.Longitude, 'f', -1, 64))

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		return req, nil
	}

	resp, err := doRequest(ctx, c.client, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Businesses []struct {
			Name     string  `json:"name"`
			URL      string  `json:"url"`
			ImageURL string  `json:"image_url"`
			Rating   float64 `json:"rating"`
			Price    string  `json:"price"`
		} `json:"businesses"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	listings := make([]resource.Business, 0, len(payload.Businesses))
	for _, item := range payload.Businesses {
		listings = append(listings, resource.Business{
			Name:     item.Name,
			URL:      item.URL,
			ImageURL: item.ImageURL,
			Rating:   item.Rating,
			Price:    item.Price,
		})
	}

	return listings, nil
}
