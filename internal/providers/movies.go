package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/jentrix/cityscout/internal/resource"
)

const posterBaseURL = "https://image.tmdb.org/t/p/w500"

// MoviesClient searches the TMDB API for films matching a query.
type MoviesClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewMoviesClient(client *http.Client, apiKey string) *MoviesClient {
	return &MoviesClient{
		apiKey:  apiKey,
		baseURL: "https://api.themoviedb.org/3/search/movie",
		client:  client,
		circuit: newCircuit("movies"),
	}
}

// Search fetches movies matching the free-text query in params.
func (c *MoviesClient) Search(ctx context.Context, params resource.Params) ([]resource.Movie, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("movie api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("api_key", c.apiKey)
		values.Set("query", params.Query)

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, c.client, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Title       string  `json:"title"`
			Overview    string  `json:"overview"`
			VoteAverage float64 `json:"vote_average"`
			VoteCount   int64   `json:"vote_count"`
			PosterPath  string  `json:"poster_path"`
			Popularity  float64 `json:"popularity"`
			ReleaseDate string  `json:"release_date"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	movies := make([]resource.Movie, 0, len(payload.Results))
	for _, item := range payload.Results {
		imageURL := ""
		if item.PosterPath != "" {
			imageURL = posterBaseURL + item.PosterPath
		}

		movies = append(movies, resource.Movie{
			Title:        item.Title,
			Overview:     item.Overview,
			AverageVotes: item.VoteAverage,
			TotalVotes:   item.VoteCount,
			ImageURL:     imageURL,
			Popularity:   item.Popularity,
			ReleasedOn:   item.ReleaseDate,
		})
	}

	return movies, nil
}
