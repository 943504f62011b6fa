package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/hglok/raidsync/internal/models"
	lockRepo "github.com/hglok/raidsync/internal/repositories/lock"
	lockmocks "github.com/hglok/raidsync/internal/repositories/lock/mocks"
	"github.com/hglok/raidsync/internal/services/feed"
	feedmocks "github.com/hglok/raidsync/internal/services/feed/mocks"
)

type SweeperTestSuite struct {
	suite.Suite
	ctx context.Context

	ctrl     *gomock.Controller
	lockRepo *lockmocks.MockRepository
	feed     *feedmocks.MockPublisher

	sweeper *Sweeper
}

func (s *SweeperTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.lockRepo = lockmocks.NewMockRepository(s.ctrl)
	s.feed = feedmocks.NewMockPublisher(s.ctrl)

	sweeper, err := New(&Config{
		Interval: time.Minute,
		LockRepo: s.lockRepo,
		Feed:     s.feed,
	})
	s.Require().NoError(err)
	s.sweeper = sweeper
}

func (s *SweeperTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSweeperTestSuite(t *testing.T) {
	suite.Run(t, new(SweeperTestSuite))
}

func (s *SweeperTestSuite) TestSweepPublishesExpiry() {
	expired := &models.DraftLock{
		ID:              "lock-1",
		EventID:         "event-1",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
		LockedBy:        "leader-a",
	}

	s.lockRepo.EXPECT().
		SweepExpired(s.ctx, gomock.Any()).
		Return(&lockRepo.SweepExpiredOutput{
			Evicted: []*lockRepo.EvictedLock{{
				EventID:         "event-1",
				ParticipantID:   "part-1",
				ParticipantType: models.ParticipantTypeProgger,
				Lock:            expired,
			}},
		}, nil)
	s.feed.EXPECT().
		Publish(s.ctx, "event-1", gomock.Any()).
		Do(func(_ context.Context, _ string, n feed.Notification) {
			s.Equal(feed.KindLockExpired, n.Kind)
			s.Equal(expired, n.Lock)
		})

	s.sweeper.sweep(s.ctx)
}

func (s *SweeperTestSuite) TestSweepReportsKeyWhenPayloadGone() {
	s.lockRepo.EXPECT().
		SweepExpired(s.ctx, gomock.Any()).
		Return(&lockRepo.SweepExpiredOutput{
			Evicted: []*lockRepo.EvictedLock{{
				EventID:         "event-1",
				ParticipantID:   "part-2",
				ParticipantType: models.ParticipantTypeHelper,
			}},
		}, nil)
	s.feed.EXPECT().
		Publish(s.ctx, "event-1", gomock.Any()).
		Do(func(_ context.Context, _ string, n feed.Notification) {
			s.Equal(feed.KindLockExpired, n.Kind)
			s.Require().NotNil(n.Lock)
			s.Equal("part-2", n.Lock.ParticipantID)
			s.Equal(models.ParticipantTypeHelper, n.Lock.ParticipantType)
		})

	s.sweeper.sweep(s.ctx)
}

func (s *SweeperTestSuite) TestSweepErrorDoesNotPublish() {
	s.lockRepo.EXPECT().
		SweepExpired(s.ctx, gomock.Any()).
		Return(nil, errors.New("redis: connection refused"))

	s.sweeper.sweep(s.ctx)
}

func (s *SweeperTestSuite) TestSweepNothingExpired() {
	s.lockRepo.EXPECT().
		SweepExpired(s.ctx, gomock.Any()).
		Return(&lockRepo.SweepExpiredOutput{}, nil)

	s.sweeper.sweep(s.ctx)
}

func (s *SweeperTestSuite) TestStartStopLifecycle() {
	sweeper, err := New(&Config{
		Interval: 5 * time.Millisecond,
		LockRepo: s.lockRepo,
		Feed:     s.feed,
	})
	s.Require().NoError(err)

	swept := make(chan struct{}, 1)
	s.lockRepo.EXPECT().
		SweepExpired(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *lockRepo.SweepExpiredInput) (*lockRepo.SweepExpiredOutput, error) {
			select {
			case swept <- struct{}{}:
			default:
			}
			return &lockRepo.SweepExpiredOutput{}, nil
		}).
		MinTimes(1)

	sweeper.Start(s.ctx)
	select {
	case <-swept:
	case <-time.After(2 * time.Second):
		s.Fail("sweep never ran")
	}
	sweeper.Stop()

	// Stop on an already-stopped sweeper is safe.
	sweeper.Stop()
}

func (s *SweeperTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{Interval: time.Minute, Feed: s.feed})
	s.Error(err)

	_, err = New(&Config{Interval: 0, LockRepo: s.lockRepo, Feed: s.feed})
	s.Error(err)
}
