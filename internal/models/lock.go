package models

import (
	"time"
)

// DraftLock represents a team leader's temporary exclusive claim on one
// participant within one event. At most one unexpired lock may exist for a
// given (event, participant, type) key.
type DraftLock struct {
	// ID is the unique identifier for this lock
	ID string `json:"id"`

	// EventID is the scheduled event the lock belongs to
	EventID string `json:"eventId"`

	// ParticipantID is the participant being claimed
	ParticipantID string `json:"participantId"`

	// ParticipantType is the participant's type, part of the lock key
	ParticipantType ParticipantType `json:"participantType"`

	// LockedBy is the team leader holding the lock
	LockedBy string `json:"lockedBy"`

	// LockedByName is the display name of the holder, kept so conflicts
	// can report who holds the lock
	LockedByName string `json:"lockedByName"`

	// LockedAt is when the lock was first acquired
	LockedAt time.Time `json:"lockedAt"`

	// ExpiresAt is when the lock lapses unless renewed
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired returns true if the lock has lapsed at the given time
func (l *DraftLock) Expired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}
