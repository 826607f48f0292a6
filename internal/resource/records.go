package resource

// Canonical record shapes, one per cached resource type. Every record
// belongs to exactly one location via LocationID.

// Weather is a single forecasted day. CreatedAt is epoch milliseconds at
// fetch time; it drives the staleness rule, which applies to weather only.
type Weather struct {
	ID         int64  `json:"id,omitempty"`
	Forecast   string `json:"forecast"`
	Time       string `json:"time"`
	CreatedAt  int64  `json:"created_at"`
	LocationID int64  `json:"location_id,omitempty"`
}

// Event is a local happening near a location.
type Event struct {
	ID         int64  `json:"id,omitempty"`
	Link       string `json:"link"`
	Name       string `json:"name"`
	EventDate  string `json:"event_date"`
	Summary    string `json:"summary"`
	LocationID int64  `json:"location_id,omitempty"`
}

// Movie is a film matched against a location's search query.
type Movie struct {
	ID           int64   `json:"id,omitempty"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	AverageVotes float64 `json:"average_votes"`
	TotalVotes   int64   `json:"total_votes"`
	ImageURL     string  `json:"image_url"`
	Popularity   float64 `json:"popularity"`
	ReleasedOn   string  `json:"released_on"`
	LocationID   int64   `json:"location_id,omitempty"`
}

// Business is a listing near a location's coordinates.
type Business struct {
	ID         int64   `json:"id,omitempty"`
	Name       string  `json:"name"`
	URL        string  `json:"url"`
	ImageURL   string  `json:"image_url"`
	Rating     float64 `json:"rating"`
	Price      string  `json:"price"`
	LocationID int64   `json:"location_id,omitempty"`
}

// Params carries everything a provider fetch may need; each provider uses
// the subset relevant to its upstream API.
type Params struct {
	Query     string
	Address   string
	Latitude  float64
	Longitude float64
}
