package store

import (
	"context"
	"fmt"
)

// schema is the initial table set. One resource table per provider plus the
// shared location table they all reference.
const schema = `
CREATE TABLE IF NOT EXISTS locations (
	id BIGSERIAL PRIMARY KEY,
	search_query TEXT NOT NULL UNIQUE,
	formatted_query TEXT NOT NULL,
	latitude NUMERIC(10,7) NOT NULL,
	longitude NUMERIC(10,7) NOT NULL
);

CREATE TABLE IF NOT EXISTS weathers (
	id BIGSERIAL PRIMARY KEY,
	forecast TEXT NOT NULL,
	forecast_time TEXT NOT NULL,
	created_at BIGINT NOT NULL,
	location_id BIGINT NOT NULL REFERENCES locations(id)
);

CREATE TABLE IF NOT EXISTS events (
	id BIGSERIAL PRIMARY KEY,
	link TEXT NOT NULL,
	name TEXT NOT NULL,
	event_date TEXT NOT NULL,
	summary TEXT NOT NULL,
	location_id BIGINT NOT NULL REFERENCES locations(id)
);

CREATE TABLE IF NOT EXISTS movies (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	overview TEXT NOT NULL,
	average_votes DOUBLE PRECISION NOT NULL,
	total_votes BIGINT NOT NULL,
	image_url TEXT NOT NULL,
	popularity DOUBLE PRECISION NOT NULL,
	released_on TEXT NOT NULL,
	location_id BIGINT NOT NULL REFERENCES locations(id)
);

CREATE TABLE IF NOT EXISTS businesses (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	url TEXT NOT NULL,
	image_url TEXT NOT NULL,
	rating DOUBLE PRECISION NOT NULL,
	price TEXT NOT NULL,
	location_id BIGINT NOT NULL REFERENCES locations(id)
);
`

// InitSchema creates the tables if they do not exist yet.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
