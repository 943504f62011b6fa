package feed

//go:generate mockgen -package=mocks -destination=mocks/mock_publisher.go github.com/hglok/raidsync/internal/services/feed Publisher

import "context"

// Publisher is the write side of the change feed. The draft service and
// the expiry sweeper publish through this so tests can observe
// notifications without a live hub.
type Publisher interface {
	// Publish fans a notification out to every subscriber of the event.
	// Delivery is best-effort: a subscriber with a full buffer misses the
	// notification and is expected to re-fetch state.
	Publish(ctx context.Context, eventID string, notification Notification)
}
