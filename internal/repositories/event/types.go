package event

import "github.com/hglok/raidsync/internal/models"

type CreateEventInput struct {
	Event *models.ScheduledEvent
}

type GetEventInput struct {
	EventID string
}

type SaveEventInput struct {
	// Event is the mutated aggregate, with Version already bumped by the
	// caller.
	Event *models.ScheduledEvent

	// ExpectedVersion is the version the caller loaded before mutating.
	ExpectedVersion int64
}

type DeleteEventInput struct {
	EventID string
}

type ListEventsByGuildInput struct {
	GuildID string
}
