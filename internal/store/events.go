package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jentrix/cityscout/internal/resource"
)

// EventStore persists event rows. It satisfies resource.Store[Event].
type EventStore struct {
	db *Store
}

func NewEventStore(db *Store) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) ListByLocation(ctx context.Context, locationID int64) ([]resource.Event, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, link, name, event_date, summary, location_id
		FROM events
		WHERE location_id = $1
		ORDER BY id
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var result []resource.Event
	for rows.Next() {
		var e resource.Event
		if err := rows.Scan(&e.ID, &e.Link, &e.Name, &e.EventDate, &e.Summary, &e.LocationID); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (s *EventStore) SaveAll(ctx context.Context, locationID int64, items []resource.Event) error {
	batch := &pgx.Batch{}
	for _, e := range items {
		batch.Queue(`
			INSERT INTO events (link, name, event_date, summary, location_id)
			VALUES ($1, $2, $3, $4, $5)
		`, e.Link, e.Name, e.EventDate, e.Summary, locationID)
	}

	if err := s.db.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save events: %w", err)
	}
	return nil
}

func (s *EventStore) DeleteByLocation(ctx context.Context, locationID int64) error {
	if _, err := s.db.Pool.Exec(ctx, `DELETE FROM events WHERE location_id = $1`, locationID); err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}
	return nil
}
