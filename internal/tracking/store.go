package tracking

import (
	"context"

	"github.com/rizperdana/share-link-gan/pkg/database"
	"github.com/rizperdana/share-link-gan/pkg/models"
)

// PostgresEventStore writes analytics events to the analytics_events table
type PostgresEventStore struct {
	db database.PostgresConn
}

// NewPostgresEventStore creates a store over an open connection
func NewPostgresEventStore(db database.PostgresConn) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

// InsertEvent persists one accepted event. The id defaults server-side.
func (s *PostgresEventStore) InsertEvent(ctx context.Context, event models.AnalyticsEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analytics_events (profile_id, link_id, event_type, referrer, device, country, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, event.ProfileID, event.LinkID, event.EventType, event.Referrer, event.Device, event.Country, event.CreatedAt)
	return err
}
