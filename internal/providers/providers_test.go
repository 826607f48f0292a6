package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jentrix/cityscout/internal/resource"
)

func TestGeocodeParsesStringCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "98005", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		fmt.Fprint(w, `[{"display_name":"Renton, WA 98056, USA","lat":"47.48","lon":"-122.19"}]`)
	}))
	defer srv.Close()

	c := NewGeocodeClient(srv.Client(), "secret")
	c.baseURL = srv.URL

	places, err := c.Geocode(context.Background(), "98005")
	require.NoError(t, err)
	require.Len(t, places, 1)

	assert.Equal(t, "Renton, WA 98056, USA", places[0].FormattedAddress)
	assert.Equal(t, 47.48, places[0].Latitude)
	assert.Equal(t, -122.19, places[0].Longitude)
}

func TestGeocodeEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := NewGeocodeClient(srv.Client(), "secret")
	c.baseURL = srv.URL

	places, err := c.Geocode(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestWeatherForecastMapsDailyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"daily":{"data":[
			{"summary":"Partly cloudy.","time":1554094800},
			{"summary":"Light rain.","time":1554181200}
		]}}`)
	}))
	defer srv.Close()

	c := NewWeatherClient(srv.Client(), "secret")
	c.baseURL = srv.URL

	before := time.Now().UnixMilli()
	days, err := c.Forecast(context.Background(), resource.Params{Latitude: 47.48, Longitude: -122.19})
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, "Partly cloudy.", days[0].Forecast)
	assert.Equal(t, "Mon Apr 01 2019", days[0].Time)
	assert.GreaterOrEqual(t, days[0].CreatedAt, before)
}

func TestEventsSearchTruncatesStartToDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Seattle, WA, USA", r.URL.Query().Get("location.address"))
		fmt.Fprint(w, `{"events":[{
			"url":"https://example.com/e/1",
			"name":{"text":"Spring Fair"},
			"start":{"local":"2019-04-06T10:00:00"},
			"summary":"A fair."
		}]}`)
	}))
	defer srv.Close()

	c := NewEventsClient(srv.Client(), "token")
	c.baseURL = srv.URL

	events, err := c.Search(context.Background(), resource.Params{Address: "Seattle, WA, USA"})
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, "https://example.com/e/1", events[0].Link)
	assert.Equal(t, "Spring Fair", events[0].Name)
	assert.Equal(t, "Sat Apr 06 2019", events[0].EventDate)
	assert.Equal(t, "A fair.", events[0].Summary)
}

func TestMoviesSearchBuildsPosterURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "seattle", r.URL.Query().Get("query"))
		fmt.Fprint(w, `{"results":[
			{"title":"Sleepless in Seattle","overview":"...","vote_average":6.7,
			 "vote_count":1200,"poster_path":"/abc.jpg","popularity":13.4,
			 "release_date":"1993-06-24"},
			{"title":"No Poster","overview":"","vote_average":5,"vote_count":3,
			 "poster_path":"","popularity":0.1,"release_date":"2001-01-01"}
		]}`)
	}))
	defer srv.Close()

	c := NewMoviesClient(srv.Client(), "secret")
	c.baseURL = srv.URL

	movies, err := c.Search(context.Background(), resource.Params{Query: "seattle"})
	require.NoError(t, err)
	require.Len(t, movies, 2)

	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", movies[0].ImageURL)
	assert.Equal(t, int64(1200), movies[0].TotalVotes)
	assert.Equal(t, "1993-06-24", movies[0].ReleasedOn)
	assert.Empty(t, movies[1].ImageURL)
}

func TestYelpSearchSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"businesses":[{
			"name":"Pho Bac","url":"https://yelp.com/biz/pho-bac",
			"image_url":"https://img.example.com/1.jpg","rating":4.5,"price":"$$"
		}]}`)
	}))
	defer srv.Close()

	c := NewYelpClient(srv.Client(), "secret")
	c.baseURL = srv.URL

	listings, err := c.Search(context.Background(), resource.Params{Latitude: 47.6, Longitude: -122.3})
	require.NoError(t, err)
	require.Len(t, listings, 1)

	assert.Equal(t, "Pho Bac", listings[0].Name)
	assert.Equal(t, 4.5, listings[0].Rating)
	assert.Equal(t, "$$", listings[0].Price)
}

func TestDoRequestRejectsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewWeatherClient(srv.Client(), "secret")
	c.baseURL = srv.URL

	_, err := c.Forecast(context.Background(), resource.Params{})
	assert.ErrorIs(t, err, errServerError)
}
