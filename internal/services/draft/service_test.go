package draft

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockmocks "github.com/hglok/raidsync/internal/common/clock/mocks"
	uuidmocks "github.com/hglok/raidsync/internal/common/uuid/mocks"
	"github.com/hglok/raidsync/internal/models"
	eventRepo "github.com/hglok/raidsync/internal/repositories/event"
	eventmocks "github.com/hglok/raidsync/internal/repositories/event/mocks"
	lockRepo "github.com/hglok/raidsync/internal/repositories/lock"
	lockmocks "github.com/hglok/raidsync/internal/repositories/lock/mocks"
	participantRepo "github.com/hglok/raidsync/internal/repositories/participant"
	participantmocks "github.com/hglok/raidsync/internal/repositories/participant/mocks"
	"github.com/hglok/raidsync/internal/services/feed"
	feedmocks "github.com/hglok/raidsync/internal/services/feed/mocks"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx context.Context

	ctrl            *gomock.Controller
	eventRepo       *eventmocks.MockRepository
	lockRepo        *lockmocks.MockRepository
	participantRepo *participantmocks.MockRepository
	feed            *feedmocks.MockPublisher
	clock           *clockmocks.MockClock
	uuidGen         *uuidmocks.MockUUID

	now time.Time
	svc *service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.eventRepo = eventmocks.NewMockRepository(s.ctrl)
	s.lockRepo = lockmocks.NewMockRepository(s.ctrl)
	s.participantRepo = participantmocks.NewMockRepository(s.ctrl)
	s.feed = feedmocks.NewMockPublisher(s.ctrl)
	s.clock = clockmocks.NewMockClock(s.ctrl)
	s.uuidGen = uuidmocks.NewMockUUID(s.ctrl)

	s.now = time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)
	s.clock.EXPECT().Now().Return(s.now).AnyTimes()

	svc, err := New(&Config{
		DefaultLockTTL:  15 * time.Minute,
		EventRepo:       s.eventRepo,
		LockRepo:        s.lockRepo,
		ParticipantRepo: s.participantRepo,
		Feed:            s.feed,
		Clock:           s.clock,
		UUIDGenerator:   s.uuidGen,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

// event builds a fresh draft-status event for one test case.
func (s *ServiceTestSuite) event() *models.ScheduledEvent {
	return &models.ScheduledEvent{
		ID:           "event-1",
		GuildID:      "guild-1",
		ChannelID:    "channel-1",
		Title:        "Savage Reclear",
		Status:       models.EventStatusDraft,
		StartTime:    s.now.Add(48 * time.Hour),
		CreatedBy:    "leader-a",
		Roster:       models.NewEmptyRoster(),
		Version:      3,
		CreatedAt:    s.now.Add(-time.Hour),
		LastModified: s.now.Add(-time.Hour),
	}
}

func (s *ServiceTestSuite) participant() *models.Participant {
	return &models.Participant{
		ID:          "part-1",
		GuildID:     "guild-1",
		DiscordID:   "discord-1",
		DisplayName: "Aster Vane",
		Job:         models.JobPaladin,
		Type:        models.ParticipantTypeProgger,
	}
}

func (s *ServiceTestSuite) lock() *models.DraftLock {
	return &models.DraftLock{
		ID:              "lock-1",
		EventID:         "event-1",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
		LockedBy:        "leader-a",
		LockedByName:    "Alice",
		LockedAt:        s.now,
		ExpiresAt:       s.now.Add(15 * time.Minute),
	}
}

func (s *ServiceTestSuite) expectGetEvent(event *models.ScheduledEvent) {
	s.eventRepo.EXPECT().
		GetEvent(s.ctx, &eventRepo.GetEventInput{EventID: event.ID}).
		Return(event, nil)
}

func (s *ServiceTestSuite) TestCreateEvent() {
	s.uuidGen.EXPECT().NewUUID().Return("event-1")
	s.eventRepo.EXPECT().
		CreateEvent(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *eventRepo.CreateEventInput) error {
			s.Equal("event-1", input.Event.ID)
			s.Equal(models.EventStatusDraft, input.Event.Status)
			s.Equal(int64(1), input.Event.Version)
			s.Len(input.Event.Roster.Party, 8)
			s.Equal(0, input.Event.Roster.FilledSlots)
			return nil
		})

	out, err := s.svc.CreateEvent(s.ctx, &CreateEventInput{
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		Title:     "Savage Reclear",
		StartTime: s.now.Add(48 * time.Hour),
		CreatedBy: "leader-a",
	})

	s.Require().NoError(err)
	s.Equal("event-1", out.Event.ID)
	s.Equal(s.now, out.Event.CreatedAt)
}

func (s *ServiceTestSuite) TestCreateEventRequiresGuild() {
	_, err := s.svc.CreateEvent(s.ctx, &CreateEventInput{Title: "x"})
	s.Error(err)
}

func (s *ServiceTestSuite) TestGetEventNotFound() {
	s.eventRepo.EXPECT().
		GetEvent(s.ctx, gomock.Any()).
		Return(nil, eventRepo.ErrEventNotFound)

	_, err := s.svc.GetEvent(s.ctx, &GetEventInput{EventID: "missing"})
	s.ErrorIs(err, ErrEventNotFound)
}

func (s *ServiceTestSuite) TestDeleteEventPurgesLocks() {
	event := s.event()
	s.expectGetEvent(event)
	s.eventRepo.EXPECT().
		DeleteEvent(s.ctx, &eventRepo.DeleteEventInput{EventID: "event-1"}).
		Return(nil)
	s.lockRepo.EXPECT().
		PurgeEvent(s.ctx, &lockRepo.PurgeEventInput{EventID: "event-1"}).
		Return(nil)

	_, err := s.svc.DeleteEvent(s.ctx, &DeleteEventInput{EventID: "event-1"})
	s.NoError(err)
}

func (s *ServiceTestSuite) TestAcquireLock() {
	event := s.event()
	stored := s.lock()

	s.expectGetEvent(event)
	s.uuidGen.EXPECT().NewUUID().Return("lock-1")
	s.lockRepo.EXPECT().
		Acquire(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *lockRepo.AcquireInput) (*lockRepo.AcquireOutput, error) {
			s.Equal("lock-1", input.Lock.ID)
			s.Equal("leader-a", input.Lock.LockedBy)
			s.Equal(s.now.Add(15*time.Minute), input.Lock.ExpiresAt)
			s.Equal(15*time.Minute, input.TTL)
			return &lockRepo.AcquireOutput{Lock: stored}, nil
		})
	s.feed.EXPECT().
		Publish(s.ctx, "event-1", gomock.Any()).
		Do(func(_ context.Context, _ string, n feed.Notification) {
			s.Equal(feed.KindLockCreated, n.Kind)
			s.Equal(stored, n.Lock)
		})

	out, err := s.svc.AcquireLock(s.ctx, &AcquireLockInput{
		EventID:         "event-1",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
		HolderID:        "leader-a",
		HolderName:      "Alice",
	})

	s.Require().NoError(err)
	s.False(out.Extended)
	s.Equal(stored, out.Lock)
}

func (s *ServiceTestSuite) TestAcquireLockExtendPublishesExtended() {
	event := s.event()
	stored := s.lock()

	s.expectGetEvent(event)
	s.uuidGen.EXPECT().NewUUID().Return("lock-2")
	s.lockRepo.EXPECT().
		Acquire(s.ctx, gomock.Any()).
		Return(&lockRepo.AcquireOutput{Lock: stored, Extended: true}, nil)
	s.feed.EXPECT().
		Publish(s.ctx, "event-1", gomock.Any()).
		Do(func(_ context.Context, _ string, n feed.Notification) {
			s.Equal(feed.KindLockExtended, n.Kind)
		})

	out, err := s.svc.AcquireLock(s.ctx, &AcquireLockInput{
		EventID:         "event-1",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
		HolderID:        "leader-a",
	})

	s.Require().NoError(err)
	s.True(out.Extended)
}

func (s *ServiceTestSuite) TestAcquireLockConflictCarriesHolder() {
	event := s.event()
	other := s.lock()
	other.LockedBy = "leader-b"
	other.LockedByName = "Bob"

	s.expectGetEvent(event)
	s.uuidGen.EXPECT().NewUUID().Return("lock-3")
	s.lockRepo.EXPECT().
		Acquire(s.ctx, gomock.Any()).
		Return(nil, &lockRepo.HeldError{Lock: other})

	_, err := s.svc.AcquireLock(s.ctx, &AcquireLockInput{
		EventID:         "event-1",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
		HolderID:        "leader-a",
	})

	s.ErrorIs(err, ErrLockConflict)
	var conflict *LockConflictError
	s.Require().ErrorAs(err, &conflict)
	s.Equal("leader-b", conflict.HolderID)
	s.Equal("Bob", conflict.HolderName)
	s.Equal(other.ExpiresAt, conflict.ExpiresAt)
}

func (s *ServiceTestSuite) TestAcquireLockRejectsUnknownEvent() {
	s.eventRepo.EXPECT().
		GetEvent(s.ctx, gomock.Any()).
		Return(nil, eventRepo.ErrEventNotFound)

	_, err := s.svc.AcquireLock(s.ctx, &AcquireLockInput{
		EventID:         "missing",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
		HolderID:        "leader-a",
	})
	s.ErrorIs(err, ErrEventNotFound)
}

func (s *ServiceTestSuite) TestAcquireLockRejectsBadType() {
	_, err := s.svc.AcquireLock(s.ctx, &AcquireLockInput{
		EventID:         "event-1",
		ParticipantID:   "part-1",
		ParticipantType: "spectator",
		HolderID:        "leader-a",
	})
	s.ErrorIs(err, ErrInvalidParticipantType)
}

func (s *ServiceTestSuite) TestReleaseLock() {
	released := s.lock()

	s.lockRepo.EXPECT().
		Release(s.ctx, &lockRepo.ReleaseInput{
			EventID:         "event-1",
			ParticipantID:   "part-1",
			ParticipantType: models.ParticipantTypeProgger,
			HolderID:        "leader-a",
		}).
		Return(&lockRepo.ReleaseOutput{Lock: released}, nil)
	s.feed.EXPECT().
		Publish(s.ctx, "event-1", gomock.Any()).
		Do(func(_ context.Context, _ string, n feed.Notification) {
			s.Equal(feed.KindLockReleased, n.Kind)
		})

	out, err := s.svc.ReleaseLock(s.ctx, &ReleaseLockInput{
		EventID:         "event-1",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
		HolderID:        "leader-a",
	})

	s.Require().NoError(err)
	s.Equal(released, out.Lock)
}

func (s *ServiceTestSuite) TestReleaseLockErrorsMapped() {
	s.lockRepo.EXPECT().Release(s.ctx, gomock.Any()).Return(nil, lockRepo.ErrLockNotFound)
	_, err := s.svc.ReleaseLock(s.ctx, &ReleaseLockInput{EventID: "event-1", ParticipantID: "p", ParticipantType: models.ParticipantTypeProgger, HolderID: "leader-a"})
	s.ErrorIs(err, ErrLockNotFound)

	s.lockRepo.EXPECT().Release(s.ctx, gomock.Any()).Return(nil, lockRepo.ErrNotHolder)
	_, err = s.svc.ReleaseLock(s.ctx, &ReleaseLockInput{EventID: "event-1", ParticipantID: "p", ParticipantType: models.ParticipantTypeProgger, HolderID: "leader-b"})
	s.ErrorIs(err, ErrNotLockHolder)
}

func (s *ServiceTestSuite) TestReleaseAllLocksPublishesEach() {
	event := s.event()
	first := s.lock()
	second := s.lock()
	second.ID = "lock-2"
	second.ParticipantID = "part-2"

	s.expectGetEvent(event)
	s.lockRepo.EXPECT().
		ReleaseAllForHolder(s.ctx, &lockRepo.ReleaseAllForHolderInput{EventID: "event-1", HolderID: "leader-a"}).
		Return(&lockRepo.ReleaseAllForHolderOutput{Released: []*models.DraftLock{first, second}}, nil)
	s.feed.EXPECT().Publish(s.ctx, "event-1", gomock.Any()).Times(2)

	out, err := s.svc.ReleaseAllLocks(s.ctx, &ReleaseAllLocksInput{EventID: "event-1", HolderID: "leader-a"})

	s.Require().NoError(err)
	s.Len(out.Released, 2)
}

func (s *ServiceTestSuite) TestListLocks() {
	event := s.event()
	s.expectGetEvent(event)
	s.lockRepo.EXPECT().
		ListActive(s.ctx, &lockRepo.ListActiveInput{EventID: "event-1"}).
		Return(&lockRepo.ListActiveOutput{Locks: []*models.DraftLock{s.lock()}}, nil)

	out, err := s.svc.ListLocks(s.ctx, &ListLocksInput{EventID: "event-1"})

	s.Require().NoError(err)
	s.Len(out.Locks, 1)
}

func (s *ServiceTestSuite) expectResolveParticipant(p *models.Participant) {
	s.participantRepo.EXPECT().
		GetParticipant(s.ctx, &participantRepo.GetParticipantInput{
			GuildID:         "guild-1",
			ParticipantType: p.Type,
			ParticipantID:   p.ID,
		}).
		Return(p, nil)
}

func (s *ServiceTestSuite) TestAssignParticipantWithOwnLock() {
	event := s.event()
	p := s.participant()

	s.expectGetEvent(event)
	s.expectResolveParticipant(p)
	s.lockRepo.EXPECT().
		ListActive(s.ctx, &lockRepo.ListActiveInput{EventID: "event-1"}).
		Return(&lockRepo.ListActiveOutput{Locks: []*models.DraftLock{s.lock()}}, nil)
	s.eventRepo.EXPECT().
		SaveEvent(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *eventRepo.SaveEventInput) error {
			s.Equal(int64(3), input.ExpectedVersion)
			s.Equal(int64(4), input.Event.Version)
			s.Equal(1, input.Event.Roster.FilledSlots)

			slot := input.Event.Roster.FindSlot("tank-1")
			s.Require().NotNil(slot.AssignedParticipant)
			s.Equal("part-1", slot.AssignedParticipant.Participant.ID)
			s.Equal(models.JobPaladin, slot.AssignedParticipant.Job)
			s.Equal("leader-a", slot.DraftedBy)
			return nil
		})
	s.lockRepo.EXPECT().
		Release(s.ctx, &lockRepo.ReleaseInput{
			EventID:         "event-1",
			ParticipantID:   "part-1",
			ParticipantType: models.ParticipantTypeProgger,
			HolderID:        "leader-a",
		}).
		Return(&lockRepo.ReleaseOutput{Lock: s.lock()}, nil)

	var kinds []feed.Kind
	s.feed.EXPECT().
		Publish(s.ctx, "event-1", gomock.Any()).
		Do(func(_ context.Context, _ string, n feed.Notification) {
			kinds = append(kinds, n.Kind)
		}).
		Times(2)

	out, err := s.svc.AssignParticipant(s.ctx, &AssignParticipantInput{
		EventID:         "event-1",
		HolderID:        "leader-a",
		SlotID:          "tank-1",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
	})

	s.Require().NoError(err)
	s.Equal(int64(4), out.Event.Version)
	s.Equal([]feed.Kind{feed.KindLockReleased, feed.KindRosterUpdated}, kinds)
}

func (s *ServiceTestSuite) TestAssignUnlockedParticipantSkipsRelease() {
	event := s.event()
	p := s.participant()

	s.expectGetEvent(event)
	s.expectResolveParticipant(p)
	s.lockRepo.EXPECT().
		ListActive(s.ctx, gomock.Any()).
		Return(&lockRepo.ListActiveOutput{}, nil)
	s.eventRepo.EXPECT().SaveEvent(s.ctx, gomock.Any()).Return(nil)
	s.feed.EXPECT().
		Publish(s.ctx, "event-1", gomock.Any()).
		Do(func(_ context.Context, _ string, n feed.Notification) {
			s.Equal(feed.KindRosterUpdated, n.Kind)
		})

	_, err := s.svc.AssignParticipant(s.ctx, &AssignParticipantInput{
		EventID:         "event-1",
		HolderID:        "leader-a",
		SlotID:          "tank-2",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
	})
	s.NoError(err)
}

func (s *ServiceTestSuite) TestAssignRejectsForeignLock() {
	event := s.event()
	p := s.participant()
	other := s.lock()
	other.LockedBy = "leader-b"
	other.LockedByName = "Bob"

	s.expectGetEvent(event)
	s.expectResolveParticipant(p)
	s.lockRepo.EXPECT().
		ListActive(s.ctx, gomock.Any()).
		Return(&lockRepo.ListActiveOutput{Locks: []*models.DraftLock{other}}, nil)

	_, err := s.svc.AssignParticipant(s.ctx, &AssignParticipantInput{
		EventID:         "event-1",
		HolderID:        "leader-a",
		SlotID:          "tank-1",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
	})

	s.ErrorIs(err, ErrLockConflict)
	var conflict *LockConflictError
	s.Require().ErrorAs(err, &conflict)
	s.Equal("Bob", conflict.HolderName)
}

func (s *ServiceTestSuite) TestAssignRejectsOccupiedSlot() {
	event := s.event()
	slot := event.Roster.FindSlot("tank-1")
	slot.AssignedParticipant = &models.SlotAssignment{Participant: *s.participant(), Job: models.JobWarrior}
	slot.DraftedBy = "leader-b"

	s.expectGetEvent(event)

	_, err := s.svc.AssignParticipant(s.ctx, &AssignParticipantInput{
		EventID:         "event-1",
		HolderID:        "leader-a",
		SlotID:          "tank-1",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
	})
	s.ErrorIs(err, ErrSlotOccupied)
}

func (s *ServiceTestSuite) TestAssignRejectsUnknownSlot() {
	s.expectGetEvent(s.event())

	_, err := s.svc.AssignParticipant(s.ctx, &AssignParticipantInput{
		EventID:         "event-1",
		HolderID:        "leader-a",
		SlotID:          "tank-9",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
	})
	s.ErrorIs(err, ErrSlotNotFound)
}

func (s *ServiceTestSuite) TestAssignRejectsRoleMismatch() {
	event := s.event()
	p := s.participant() // paladin, a tank

	s.expectGetEvent(event)
	s.expectResolveParticipant(p)

	_, err := s.svc.AssignParticipant(s.ctx, &AssignParticipantInput{
		EventID:         "event-1",
		HolderID:        "leader-a",
		SlotID:          "healer-1",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
	})
	s.ErrorIs(err, ErrJobRoleMismatch)
}

func (s *ServiceTestSuite) TestAssignHonorsSelectedJobOverride() {
	event := s.event()
	p := s.participant() // signed up as paladin

	s.expectGetEvent(event)
	s.expectResolveParticipant(p)
	s.lockRepo.EXPECT().ListActive(s.ctx, gomock.Any()).Return(&lockRepo.ListActiveOutput{}, nil)
	s.eventRepo.EXPECT().
		SaveEvent(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *eventRepo.SaveEventInput) error {
			slot := input.Event.Roster.FindSlot("healer-1")
			s.Equal(models.JobSage, slot.AssignedParticipant.Job)
			return nil
		})
	s.feed.EXPECT().Publish(s.ctx, "event-1", gomock.Any())

	_, err := s.svc.AssignParticipant(s.ctx, &AssignParticipantInput{
		EventID:         "event-1",
		HolderID:        "leader-a",
		SlotID:          "healer-1",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
		SelectedJob:     models.JobSage,
	})
	s.NoError(err)
}

func (s *ServiceTestSuite) TestAssignRejectsJobRestriction() {
	event := s.event()
	event.Roster.FindSlot("tank-1").JobRestriction = models.JobWarrior
	p := s.participant()

	s.expectGetEvent(event)
	s.expectResolveParticipant(p)

	_, err := s.svc.AssignParticipant(s.ctx, &AssignParticipantInput{
		EventID:         "event-1",
		HolderID:        "leader-a",
		SlotID:          "tank-1",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
	})
	s.ErrorIs(err, ErrJobRestricted)
}

func (s *ServiceTestSuite) TestAssignRetriesOnVersionConflict() {
	p := s.participant()

	// Each attempt reloads the event, so hand out fresh copies.
	s.eventRepo.EXPECT().
		GetEvent(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *eventRepo.GetEventInput) (*models.ScheduledEvent, error) {
			return s.event(), nil
		}).
		Times(2)
	s.expectResolveParticipant(p)
	s.expectResolveParticipant(p)
	s.lockRepo.EXPECT().ListActive(s.ctx, gomock.Any()).Return(&lockRepo.ListActiveOutput{}, nil).Times(2)

	gomock.InOrder(
		s.eventRepo.EXPECT().SaveEvent(s.ctx, gomock.Any()).Return(eventRepo.ErrVersionConflict),
		s.eventRepo.EXPECT().SaveEvent(s.ctx, gomock.Any()).Return(nil),
	)
	s.feed.EXPECT().Publish(s.ctx, "event-1", gomock.Any())

	_, err := s.svc.AssignParticipant(s.ctx, &AssignParticipantInput{
		EventID:         "event-1",
		HolderID:        "leader-a",
		SlotID:          "tank-1",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
	})
	s.NoError(err)
}

func (s *ServiceTestSuite) TestAssignGivesUpAfterRepeatedConflicts() {
	p := s.participant()

	s.eventRepo.EXPECT().
		GetEvent(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *eventRepo.GetEventInput) (*models.ScheduledEvent, error) {
			return s.event(), nil
		}).
		Times(3)
	s.participantRepo.EXPECT().GetParticipant(s.ctx, gomock.Any()).Return(p, nil).Times(3)
	s.lockRepo.EXPECT().ListActive(s.ctx, gomock.Any()).Return(&lockRepo.ListActiveOutput{}, nil).Times(3)
	s.eventRepo.EXPECT().SaveEvent(s.ctx, gomock.Any()).Return(eventRepo.ErrVersionConflict).Times(3)

	_, err := s.svc.AssignParticipant(s.ctx, &AssignParticipantInput{
		EventID:         "event-1",
		HolderID:        "leader-a",
		SlotID:          "tank-1",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
	})
	s.ErrorIs(err, ErrConcurrentUpdate)
}

func (s *ServiceTestSuite) TestAssignSurvivesLockReleaseFailure() {
	event := s.event()
	p := s.participant()

	s.expectGetEvent(event)
	s.expectResolveParticipant(p)
	s.lockRepo.EXPECT().
		ListActive(s.ctx, gomock.Any()).
		Return(&lockRepo.ListActiveOutput{Locks: []*models.DraftLock{s.lock()}}, nil)
	s.eventRepo.EXPECT().SaveEvent(s.ctx, gomock.Any()).Return(nil)
	s.lockRepo.EXPECT().
		Release(s.ctx, gomock.Any()).
		Return(nil, errors.New("redis: connection refused"))
	s.feed.EXPECT().
		Publish(s.ctx, "event-1", gomock.Any()).
		Do(func(_ context.Context, _ string, n feed.Notification) {
			s.Equal(feed.KindRosterUpdated, n.Kind)
		})

	out, err := s.svc.AssignParticipant(s.ctx, &AssignParticipantInput{
		EventID:         "event-1",
		HolderID:        "leader-a",
		SlotID:          "tank-1",
		ParticipantID:   "part-1",
		ParticipantType: models.ParticipantTypeProgger,
	})

	s.Require().NoError(err)
	s.Equal(1, out.Event.Roster.FilledSlots)
}

func (s *ServiceTestSuite) TestUnassignParticipant() {
	event := s.event()
	slot := event.Roster.FindSlot("tank-1")
	slot.AssignedParticipant = &models.SlotAssignment{Participant: *s.participant(), Job: models.JobPaladin}
	slot.DraftedBy = "leader-a"
	draftedAt := s.now.Add(-time.Minute)
	slot.DraftedAt = &draftedAt
	event.Roster.Recount()

	s.expectGetEvent(event)
	s.eventRepo.EXPECT().
		SaveEvent(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *eventRepo.SaveEventInput) error {
			s.Equal(int64(3), input.ExpectedVersion)
			s.Equal(int64(4), input.Event.Version)
			s.Equal(0, input.Event.Roster.FilledSlots)

			cleared := input.Event.Roster.FindSlot("tank-1")
			s.Nil(cleared.AssignedParticipant)
			s.Empty(cleared.DraftedBy)
			s.Nil(cleared.DraftedAt)
			return nil
		})
	s.feed.EXPECT().
		Publish(s.ctx, "event-1", gomock.Any()).
		Do(func(_ context.Context, _ string, n feed.Notification) {
			s.Equal(feed.KindRosterUpdated, n.Kind)
		})

	out, err := s.svc.UnassignParticipant(s.ctx, &UnassignParticipantInput{
		EventID:  "event-1",
		HolderID: "leader-a",
		SlotID:   "tank-1",
	})

	s.Require().NoError(err)
	s.Equal(int64(4), out.Event.Version)
}

func (s *ServiceTestSuite) TestUnassignEmptySlot() {
	s.expectGetEvent(s.event())

	_, err := s.svc.UnassignParticipant(s.ctx, &UnassignParticipantInput{
		EventID:  "event-1",
		HolderID: "leader-a",
		SlotID:   "tank-1",
	})
	s.ErrorIs(err, ErrSlotEmpty)
}

func (s *ServiceTestSuite) TestUnassignByOtherLeaderForbidden() {
	event := s.event()
	slot := event.Roster.FindSlot("tank-1")
	slot.AssignedParticipant = &models.SlotAssignment{Participant: *s.participant(), Job: models.JobPaladin}
	slot.DraftedBy = "leader-a"
	event.Roster.Recount()

	s.expectGetEvent(event)

	_, err := s.svc.UnassignParticipant(s.ctx, &UnassignParticipantInput{
		EventID:  "event-1",
		HolderID: "leader-b",
		SlotID:   "tank-1",
	})
	s.ErrorIs(err, ErrNotDrafter)
}
