package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jentrix/cityscout/internal/resource"
)

// EventsClient searches the Eventbrite API for happenings near an address.
type EventsClient struct {
	token   string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewEventsClient(client *http.Client, token string) *EventsClient {
	return &EventsClient{
		token:   token,
		baseURL: "https://www.eventbriteapi.com/v3/events/search",
		client:  client,
		circuit: newCircuit("events"),
	}
}

// Search fetches events around the formatted address in params.
func (c *EventsClient) Search(ctx context.Context, params resource.Params) ([]resource.Event, error) {
	if c.token == "" {
		return nil, fmt.Errorf("eventbrite token is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("token", c.token)
		values.Set("location.address", params.Address)

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, c.client, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Events []struct {
			URL  string `json:"url"`
			Name struct {
				Text string `json:"text"`
			} `json:"name"`
			Start struct {
				Local string `json:"local"`
			} `json:"start"`
			Summary string `json:"summary"`
		} `json:"events"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	events := make([]resource.Event, 0, len(payload.Events))
	for _, item := range payload.Events {
		events = append(events, resource.Event{
			Link:      item.URL,
			Name:      item.Name.Text,
			EventDate: eventDate(item.Start.Local),
			Summary:   item.Summary,
		})
	}

	return events, nil
}

// eventDate truncates an Eventbrite local start time to its date.
func eventDate(local string) string {
	ts, err := time.Parse("2006-01-02T15:04:05", local)
	if err != nil {
		return local
	}
	return ts.Format("Mon Jan 02 2006")
}
