package lock

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/hglok/raidsync/internal/repositories/lock Repository

import (
	"context"
)

// Repository defines the interface for draft lock persistence. Acquire,
// Release, and the sweep eviction are atomic per lock key: two callers
// racing on the same (event, participant, type) key serialize, and at most
// one unexpired lock exists per key at any time.
type Repository interface {
	// Acquire creates a lock for the key, or extends it when the caller
	// already holds it. Returns ErrLockHeld (as a HeldError carrying the
	// current lock) when another holder owns the key.
	Acquire(ctx context.Context, input *AcquireInput) (*AcquireOutput, error)

	// Release removes the caller's lock. Returns ErrLockNotFound when no
	// lock exists, ErrNotHolder when another leader owns it.
	Release(ctx context.Context, input *ReleaseInput) (*ReleaseOutput, error)

	// ReleaseAllForHolder removes every lock the holder owns for an event
	// and returns what was released.
	ReleaseAllForHolder(ctx context.Context, input *ReleaseAllForHolderInput) (*ReleaseAllForHolderOutput, error)

	// ListActive returns all unexpired locks for an event. Expired
	// leftovers found along the way are evicted lazily.
	ListActive(ctx context.Context, input *ListActiveInput) (*ListActiveOutput, error)

	// SweepExpired evicts every tracked lock whose expiry has passed and
	// reports the evictions.
	SweepExpired(ctx context.Context, input *SweepExpiredInput) (*SweepExpiredOutput, error)

	// PurgeEvent drops all locks for an event, regardless of holder.
	PurgeEvent(ctx context.Context, input *PurgeEventInput) error
}
