package feed

import "github.com/hglok/raidsync/internal/models"

// Kind identifies what changed
type Kind string

const (
	// KindLockCreated indicates a new draft lock
	KindLockCreated Kind = "lock_created"

	// KindLockExtended indicates a holder renewed their lock
	KindLockExtended Kind = "lock_extended"

	// KindLockReleased indicates a lock was explicitly released
	KindLockReleased Kind = "lock_released"

	// KindLockExpired indicates the sweeper evicted a lapsed lock
	KindLockExpired Kind = "lock_expired"

	// KindRosterUpdated indicates a roster mutation (assign/unassign)
	KindRosterUpdated Kind = "roster_updated"
)

// Notification is one change fanned out to an event's subscribers
type Notification struct {
	// Kind identifies what changed
	Kind Kind `json:"kind"`

	// EventID is the event the change belongs to
	EventID string `json:"eventId"`

	// Lock carries the affected lock for the lock kinds
	Lock *models.DraftLock `json:"lock,omitempty"`

	// Event carries the updated aggregate for roster updates
	Event *models.ScheduledEvent `json:"event,omitempty"`
}

// Config holds configuration for the feed
type Config struct {
	// BufferSize bounds each subscriber's notification buffer. A
	// subscriber that falls this far behind starts missing notifications.
	BufferSize int
}
