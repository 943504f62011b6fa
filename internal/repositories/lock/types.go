package lock

import (
	"time"

	"github.com/hglok/raidsync/internal/models"
)

type AcquireInput struct {
	// Lock is the candidate lock to write. ID, LockedAt, and ExpiresAt
	// must be set by the caller. When the key is already held by
	// Lock.LockedBy, the stored lock is extended to Lock.ExpiresAt and
	// keeps its original ID and LockedAt.
	Lock *models.DraftLock

	// TTL is the lock's remaining lifetime, used for the key expiry.
	TTL time.Duration
}

type AcquireOutput struct {
	// Lock is the stored lock after the call.
	Lock *models.DraftLock

	// Extended is true when an existing lock held by the same leader was
	// renewed rather than a new one created.
	Extended bool
}

type ReleaseInput struct {
	EventID         string
	ParticipantID   string
	ParticipantType models.ParticipantType
	HolderID        string
}

type ReleaseOutput struct {
	// Lock is the lock that was removed.
	Lock *models.DraftLock
}

type ReleaseAllForHolderInput struct {
	EventID  string
	HolderID string
}

type ReleaseAllForHolderOutput struct {
	Released []*models.DraftLock
}

type ListActiveInput struct {
	EventID string
}

type ListActiveOutput struct {
	Locks []*models.DraftLock
}

type SweepExpiredInput struct {
}

// EvictedLock describes one lock removed by a sweep. Lock is nil when the
// payload had already expired out of the store; the key fields are always
// present so subscribers can still be told which claim lapsed.
type EvictedLock struct {
	EventID         string
	ParticipantID   string
	ParticipantType models.ParticipantType
	Lock            *models.DraftLock
}

type SweepExpiredOutput struct {
	Evicted []*EvictedLock
}

type PurgeEventInput struct {
	EventID string
}
