package draft

import (
	"time"

	"github.com/hglok/raidsync/internal/common/clock"
	"github.com/hglok/raidsync/internal/common/uuid"
	"github.com/hglok/raidsync/internal/models"
	eventRepo "github.com/hglok/raidsync/internal/repositories/event"
	lockRepo "github.com/hglok/raidsync/internal/repositories/lock"
	participantRepo "github.com/hglok/raidsync/internal/repositories/participant"
	"github.com/hglok/raidsync/internal/services/feed"
)

// Config holds the dependencies for the draft service
type Config struct {
	// DefaultLockTTL is applied when an acquire request does not carry one
	DefaultLockTTL time.Duration

	// EventRepo stores scheduled events
	EventRepo eventRepo.Repository

	// LockRepo stores draft locks
	LockRepo lockRepo.Repository

	// ParticipantRepo stores signed-up participants
	ParticipantRepo participantRepo.Repository

	// Feed receives lock and roster change notifications
	Feed feed.Publisher

	// Clock provides time functions
	Clock clock.Clock

	// UUIDGenerator generates identifiers
	UUIDGenerator uuid.UUID
}

// CreateEventInput holds the data for creating an event
type CreateEventInput struct {
	GuildID   string
	ChannelID string
	Title     string
	StartTime time.Time
	CreatedBy string
}

// CreateEventOutput returns the created event
type CreateEventOutput struct {
	Event *models.ScheduledEvent
}

// GetEventInput identifies the event to fetch
type GetEventInput struct {
	EventID string
}

// GetEventOutput returns the event
type GetEventOutput struct {
	Event *models.ScheduledEvent
}

// DeleteEventInput identifies the event to delete
type DeleteEventInput struct {
	EventID string
}

// DeleteEventOutput is the result of deleting an event
type DeleteEventOutput struct{}

// AcquireLockInput holds the data for claiming a participant
type AcquireLockInput struct {
	EventID         string
	ParticipantID   string
	ParticipantType models.ParticipantType

	// HolderID is the team leader claiming the participant
	HolderID   string
	HolderName string

	// TTL overrides the service default when positive
	TTL time.Duration
}

// AcquireLockOutput returns the resulting lock
type AcquireLockOutput struct {
	Lock *models.DraftLock

	// Extended is true when the holder already held the lock and its
	// expiry was pushed out instead of a new lock being created
	Extended bool
}

// ReleaseLockInput identifies the lock to release
type ReleaseLockInput struct {
	EventID         string
	ParticipantID   string
	ParticipantType models.ParticipantType
	HolderID        string
}

// ReleaseLockOutput returns the released lock
type ReleaseLockOutput struct {
	Lock *models.DraftLock
}

// ReleaseAllLocksInput identifies the holder whose locks to release
type ReleaseAllLocksInput struct {
	EventID  string
	HolderID string
}

// ReleaseAllLocksOutput returns the locks that were released
type ReleaseAllLocksOutput struct {
	Released []*models.DraftLock
}

// ListLocksInput identifies the event to list locks for
type ListLocksInput struct {
	EventID string
}

// ListLocksOutput returns the active locks
type ListLocksOutput struct {
	Locks []*models.DraftLock
}

// AssignParticipantInput holds the data for placing a participant in a slot
type AssignParticipantInput struct {
	EventID         string
	HolderID        string
	SlotID          string
	ParticipantID   string
	ParticipantType models.ParticipantType

	// SelectedJob overrides the participant's signed-up job when set
	SelectedJob models.Job
}

// AssignParticipantOutput returns the updated event
type AssignParticipantOutput struct {
	Event *models.ScheduledEvent
}

// UnassignParticipantInput holds the data for clearing a slot
type UnassignParticipantInput struct {
	EventID  string
	HolderID string
	SlotID   string
}

// UnassignParticipantOutput returns the updated event
type UnassignParticipantOutput struct {
	Event *models.ScheduledEvent
}
