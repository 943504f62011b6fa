package draft

import (
	"errors"
	"fmt"
	"time"
)

// Define errors
var (
	ErrEventNotFound          = errors.New("event not found")
	ErrSlotNotFound           = errors.New("slot not found")
	ErrParticipantNotFound    = errors.New("participant not found")
	ErrLockNotFound           = errors.New("no lock exists for this participant")
	ErrNotLockHolder          = errors.New("lock is held by a different team leader")
	ErrLockConflict           = errors.New("participant is locked by another team leader")
	ErrSlotOccupied           = errors.New("slot already has a participant assigned")
	ErrSlotEmpty              = errors.New("slot has no participant assigned")
	ErrNotDrafter             = errors.New("only the leader who drafted this slot can undo it")
	ErrInvalidJob             = errors.New("unknown job")
	ErrJobRoleMismatch        = errors.New("job cannot fill this slot's role")
	ErrJobRestricted          = errors.New("slot is restricted to a specific job")
	ErrInvalidParticipantType = errors.New("unknown participant type")
	ErrConcurrentUpdate       = errors.New("event was modified concurrently")
	ErrInvalidInput           = errors.New("invalid input")
)

// LockConflictError reports who holds a contested lock and until when, so
// the caller can tell the leader why the action failed rather than just
// that it failed.
type LockConflictError struct {
	// HolderID is the team leader holding the lock
	HolderID string

	// HolderName is the holder's display name
	HolderName string

	// ExpiresAt is when the conflicting lock lapses
	ExpiresAt time.Time
}

func (e *LockConflictError) Error() string {
	return fmt.Sprintf("locked by %s until %s", e.HolderName, e.ExpiresAt.Format(time.RFC3339))
}

// Is makes errors.Is(err, ErrLockConflict) match.
func (e *LockConflictError) Is(target error) bool {
	return target == ErrLockConflict
}
