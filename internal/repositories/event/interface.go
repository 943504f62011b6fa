package event

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/hglok/raidsync/internal/repositories/event Repository

import (
	"context"

	"github.com/hglok/raidsync/internal/models"
)

// Repository defines the interface for scheduled event persistence. Save is
// conditional on the event's stored version so concurrent roster writers
// cannot silently overwrite each other.
type Repository interface {
	// CreateEvent persists a new event. Fails if the ID is taken.
	CreateEvent(ctx context.Context, input *CreateEventInput) error

	// GetEvent retrieves an event by ID
	GetEvent(ctx context.Context, input *GetEventInput) (*models.ScheduledEvent, error)

	// SaveEvent persists a mutated event, but only while the stored
	// version still equals ExpectedVersion. Returns ErrVersionConflict
	// when another writer got there first.
	SaveEvent(ctx context.Context, input *SaveEventInput) error

	// DeleteEvent removes an event
	DeleteEvent(ctx context.Context, input *DeleteEventInput) error

	// ListEventsByGuild retrieves a guild's events ordered by start time
	ListEventsByGuild(ctx context.Context, input *ListEventsByGuildInput) ([]*models.ScheduledEvent, error)
}
