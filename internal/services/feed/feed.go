package feed

import (
	"context"
	"sync"

	"github.com/hglok/raidsync/internal/common/logger"
	"github.com/hglok/raidsync/internal/metrics"
)

const defaultBufferSize = 64

// Feed is a per-event broadcast hub. Every connected team leader's client
// subscribes to the events it is viewing; lock and roster mutations are
// fanned out to all of them. Publishing never blocks: a subscriber whose
// buffer is full misses that notification and must re-fetch state.
type Feed struct {
	bufferSize int

	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

// New creates a new feed hub
func New(cfg *Config) *Feed {
	bufferSize := defaultBufferSize
	if cfg != nil && cfg.BufferSize > 0 {
		bufferSize = cfg.BufferSize
	}

	return &Feed{
		bufferSize: bufferSize,
		subs:       make(map[string]map[*Subscription]struct{}),
	}
}

// Subscription is one subscriber's view of an event's change stream
type Subscription struct {
	feed    *Feed
	eventID string
	ch      chan Notification
	once    sync.Once
}

// C returns the channel notifications arrive on. It is closed when the
// subscription is closed.
func (s *Subscription) C() <-chan Notification {
	return s.ch
}

// Close unregisters the subscription and closes its channel. Safe to call
// more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.feed.unsubscribe(s)
		close(s.ch)
	})
}

// Subscribe registers a new subscriber for an event's changes
func (f *Feed) Subscribe(eventID string) *Subscription {
	sub := &Subscription{
		feed:    f,
		eventID: eventID,
		ch:      make(chan Notification, f.bufferSize),
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.subs[eventID] == nil {
		f.subs[eventID] = make(map[*Subscription]struct{})
	}
	f.subs[eventID][sub] = struct{}{}

	metrics.AddFeedSubscribers(1)
	return sub
}

func (f *Feed) unsubscribe(sub *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()

	subs := f.subs[sub.eventID]
	if _, ok := subs[sub]; !ok {
		return
	}

	delete(subs, sub)
	if len(subs) == 0 {
		delete(f.subs, sub.eventID)
	}

	metrics.AddFeedSubscribers(-1)
}

// Publish fans a notification out to every subscriber of the event
func (f *Feed) Publish(ctx context.Context, eventID string, notification Notification) {
	metrics.RecordFeedPublished(string(notification.Kind))

	f.mu.RLock()
	defer f.mu.RUnlock()

	for sub := range f.subs[eventID] {
		select {
		case sub.ch <- notification:
		default:
			// Slow subscriber; it will re-fetch on reconnect
			metrics.RecordFeedDropped()
			logger.L().Debug(ctx, "dropped feed notification",
				logger.String("event_id", eventID),
				logger.String("kind", string(notification.Kind)))
		}
	}
}

// SubscriberCount returns the number of live subscribers for an event
func (f *Feed) SubscriberCount(eventID string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs[eventID])
}
