package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jentrix/cityscout/internal/resource"
)

// WeatherClient fetches a daily forecast from the Dark Sky API.
type WeatherClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherClient(client *http.Client, apiKey string) *WeatherClient {
	return &WeatherClient{
		apiKey:  apiKey,
		baseURL: "https://api.darksky.net/forecast",
		client:  client,
		circuit: newCircuit("weather"),
	}
}

// Forecast fetches the daily forecast for the given coordinates, one record
// per forecasted day. CreatedAt is stamped at fetch time and drives the
// staleness rule downstream.
func (c *WeatherClient) Forecast(ctx context.Context, params resource.Params) ([]resource.Weather, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("weather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/%s/%s,%s",
			c.baseURL,
			c.apiKey,
			strconv.FormatFloat(params.Latitude, 'f', -1, 64),
			strconv.FormatFloat(params.Longitude, 'f', -1, 64),
		)
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, c.client, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Daily struct {
			Data []struct {
				Summary string `json:"summary"`
				Time    int64  `json:"time"`
			} `json:"data"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	days := make([]resource.Weather, 0, len(payload.Daily.Data))
	for _, day := range payload.Daily.Data {
		days = append(days, resource.Weather{
			Forecast:  day.Summary,
			Time:      time.Unix(day.Time, 0).UTC().Format("Mon Jan 02 2006"),
			CreatedAt: now,
		})
	}

	return days, nil
}
