package draft

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/hglok/raidsync/internal/services/draft Service

import (
	"context"
)

// Service coordinates draft locks and roster assignments for scheduled events.
type Service interface {
	// CreateEvent creates a scheduled event with an empty roster
	CreateEvent(ctx context.Context, input *CreateEventInput) (*CreateEventOutput, error)

	// GetEvent retrieves an event by ID
	GetEvent(ctx context.Context, input *GetEventInput) (*GetEventOutput, error)

	// DeleteEvent removes an event and purges any locks scoped to it
	DeleteEvent(ctx context.Context, input *DeleteEventInput) (*DeleteEventOutput, error)

	// AcquireLock claims a participant for a team leader, or extends the
	// leader's existing claim
	AcquireLock(ctx context.Context, input *AcquireLockInput) (*AcquireLockOutput, error)

	// ReleaseLock releases a lock held by the requesting leader
	ReleaseLock(ctx context.Context, input *ReleaseLockInput) (*ReleaseLockOutput, error)

	// ReleaseAllLocks releases every lock the requesting leader holds on an event
	ReleaseAllLocks(ctx context.Context, input *ReleaseAllLocksInput) (*ReleaseAllLocksOutput, error)

	// ListLocks lists the active locks on an event
	ListLocks(ctx context.Context, input *ListLocksInput) (*ListLocksOutput, error)

	// AssignParticipant places a participant into a roster slot
	AssignParticipant(ctx context.Context, input *AssignParticipantInput) (*AssignParticipantOutput, error)

	// UnassignParticipant clears a roster slot drafted by the requesting leader
	UnassignParticipant(ctx context.Context, input *UnassignParticipantInput) (*UnassignParticipantOutput, error)
}
