package feed

import (
	"context"
	"testing"
	"time"

	"github.com/hglok/raidsync/internal/models"
	"github.com/stretchr/testify/suite"
)

type FeedTestSuite struct {
	suite.Suite
	feed *Feed
	ctx  context.Context
}

func (s *FeedTestSuite) SetupTest() {
	s.feed = New(&Config{BufferSize: 4})
	s.ctx = context.Background()
}

func TestFeedTestSuite(t *testing.T) {
	suite.Run(t, new(FeedTestSuite))
}

func (s *FeedTestSuite) notification(kind Kind) Notification {
	return Notification{
		Kind:    kind,
		EventID: "test-event-id",
		Lock: &models.DraftLock{
			ID:            "test-lock-id",
			EventID:       "test-event-id",
			ParticipantID: "test-participant-id",
			LockedBy:      "leader-a",
		},
	}
}

func (s *FeedTestSuite) TestFanOutToAllSubscribers() {
	sub1 := s.feed.Subscribe("test-event-id")
	defer sub1.Close()
	sub2 := s.feed.Subscribe("test-event-id")
	defer sub2.Close()

	s.feed.Publish(s.ctx, "test-event-id", s.notification(KindLockCreated))

	for _, sub := range []*Subscription{sub1, sub2} {
		select {
		case n := <-sub.C():
			s.Equal(KindLockCreated, n.Kind)
			s.Equal("test-event-id", n.EventID)
			s.Equal("leader-a", n.Lock.LockedBy)
		case <-time.After(time.Second):
			s.Fail("expected a notification")
		}
	}
}

func (s *FeedTestSuite) TestSubscribersAreScopedToOneEvent() {
	sub := s.feed.Subscribe("test-event-id")
	defer sub.Close()

	s.feed.Publish(s.ctx, "other-event-id", s.notification(KindLockCreated))

	select {
	case <-sub.C():
		s.Fail("notification leaked across events")
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *FeedTestSuite) TestSlowSubscriberDoesNotBlockPublisher() {
	slow := s.feed.Subscribe("test-event-id")
	defer slow.Close()
	fast := s.feed.Subscribe("test-event-id")
	defer fast.Close()

	// Overfill the slow subscriber's buffer; nobody reads it.
	for i := 0; i < 10; i++ {
		s.feed.Publish(s.ctx, "test-event-id", s.notification(KindLockCreated))
	}

	// The publisher never blocked, and the fast subscriber still has a
	// full buffer to drain.
	received := 0
	for {
		select {
		case <-fast.C():
			received++
			continue
		default:
		}
		break
	}
	s.Equal(4, received)
}

func (s *FeedTestSuite) TestCloseUnregisters() {
	sub := s.feed.Subscribe("test-event-id")
	s.Equal(1, s.feed.SubscriberCount("test-event-id"))

	sub.Close()
	s.Equal(0, s.feed.SubscriberCount("test-event-id"))

	// The channel is closed
	_, open := <-sub.C()
	s.False(open)

	// Closing twice is fine
	sub.Close()
}

func (s *FeedTestSuite) TestPublishWithNoSubscribers() {
	// Nothing to deliver to; must be a no-op
	s.feed.Publish(s.ctx, "test-event-id", s.notification(KindRosterUpdated))
}
