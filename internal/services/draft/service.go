package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hglok/raidsync/internal/common/clock"
	"github.com/hglok/raidsync/internal/common/logger"
	"github.com/hglok/raidsync/internal/common/uuid"
	"github.com/hglok/raidsync/internal/metrics"
	"github.com/hglok/raidsync/internal/models"
	eventRepo "github.com/hglok/raidsync/internal/repositories/event"
	lockRepo "github.com/hglok/raidsync/internal/repositories/lock"
	participantRepo "github.com/hglok/raidsync/internal/repositories/participant"
	"github.com/hglok/raidsync/internal/services/feed"
)

// maxSaveAttempts bounds how many times a roster mutation is replayed when
// another writer commits between our read and our save.
const maxSaveAttempts = 3

type service struct {
	eventRepo       eventRepo.Repository
	lockRepo        lockRepo.Repository
	participantRepo participantRepo.Repository
	feed            feed.Publisher
	clock           clock.Clock
	uuidGenerator   uuid.UUID
	defaultLockTTL  time.Duration
}

// New creates a new draft service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.EventRepo == nil {
		return nil, errors.New("event repository is required")
	}
	if cfg.LockRepo == nil {
		return nil, errors.New("lock repository is required")
	}
	if cfg.ParticipantRepo == nil {
		return nil, errors.New("participant repository is required")
	}
	if cfg.Feed == nil {
		return nil, errors.New("feed publisher is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.UUIDGenerator == nil {
		cfg.UUIDGenerator = uuid.New()
	}
	if cfg.DefaultLockTTL <= 0 {
		return nil, errors.New("default lock TTL must be positive")
	}

	return &service{
		eventRepo:       cfg.EventRepo,
		lockRepo:        cfg.LockRepo,
		participantRepo: cfg.ParticipantRepo,
		feed:            cfg.Feed,
		clock:           cfg.Clock,
		uuidGenerator:   cfg.UUIDGenerator,
		defaultLockTTL:  cfg.DefaultLockTTL,
	}, nil
}

// CreateEvent creates a scheduled event with an empty roster
func (s *service) CreateEvent(ctx context.Context, input *CreateEventInput) (*CreateEventOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input is required", ErrInvalidInput)
	}
	if input.GuildID == "" {
		return nil, fmt.Errorf("%w: guild ID is required", ErrInvalidInput)
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	now := s.clock.Now()
	event := &models.ScheduledEvent{
		ID:           s.uuidGenerator.NewUUID(),
		GuildID:      input.GuildID,
		ChannelID:    input.ChannelID,
		Title:        input.Title,
		Status:       models.EventStatusDraft,
		StartTime:    input.StartTime,
		CreatedBy:    input.CreatedBy,
		Roster:       models.NewEmptyRoster(),
		Version:      1,
		CreatedAt:    now,
		LastModified: now,
	}

	if err := s.eventRepo.CreateEvent(ctx, &eventRepo.CreateEventInput{Event: event}); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return &CreateEventOutput{Event: event}, nil
}

// GetEvent retrieves an event by ID
func (s *service) GetEvent(ctx context.Context, input *GetEventInput) (*GetEventOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input is required", ErrInvalidInput)
	}

	event, err := s.loadEvent(ctx, input.EventID)
	if err != nil {
		return nil, err
	}

	return &GetEventOutput{Event: event}, nil
}

// DeleteEvent removes an event and purges any locks scoped to it
func (s *service) DeleteEvent(ctx context.Context, input *DeleteEventInput) (*DeleteEventOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input is required", ErrInvalidInput)
	}

	if _, err := s.loadEvent(ctx, input.EventID); err != nil {
		return nil, err
	}

	if err := s.eventRepo.DeleteEvent(ctx, &eventRepo.DeleteEventInput{EventID: input.EventID}); err != nil {
		return nil, fmt.Errorf("failed to delete event: %w", err)
	}

	// Locks without an event are meaningless; drop them all.
	if err := s.lockRepo.PurgeEvent(ctx, &lockRepo.PurgeEventInput{EventID: input.EventID}); err != nil {
		logger.L().Warn(ctx, "failed to purge locks for deleted event",
			logger.String("event_id", input.EventID),
			logger.Error(err))
	}

	return &DeleteEventOutput{}, nil
}

// AcquireLock claims a participant for a team leader, or extends the
// leader's existing claim
func (s *service) AcquireLock(ctx context.Context, input *AcquireLockInput) (*AcquireLockOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input is required", ErrInvalidInput)
	}
	if input.HolderID == "" {
		return nil, fmt.Errorf("%w: holder ID is required", ErrInvalidInput)
	}
	if !input.ParticipantType.IsValid() {
		return nil, ErrInvalidParticipantType
	}

	if _, err := s.loadEvent(ctx, input.EventID); err != nil {
		return nil, err
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = s.defaultLockTTL
	}

	now := s.clock.Now()
	candidate := &models.DraftLock{
		ID:              s.uuidGenerator.NewUUID(),
		EventID:         input.EventID,
		ParticipantID:   input.ParticipantID,
		ParticipantType: input.ParticipantType,
		LockedBy:        input.HolderID,
		LockedByName:    input.HolderName,
		LockedAt:        now,
		ExpiresAt:       now.Add(ttl),
	}

	out, err := s.lockRepo.Acquire(ctx, &lockRepo.AcquireInput{Lock: candidate, TTL: ttl})
	if err != nil {
		var held *lockRepo.HeldError
		if errors.As(err, &held) {
			metrics.RecordLockConflict()
			return nil, &LockConflictError{
				HolderID:   held.Lock.LockedBy,
				HolderName: held.Lock.LockedByName,
				ExpiresAt:  held.Lock.ExpiresAt,
			}
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	if out.Extended {
		metrics.RecordLockExtended()
		s.publishLock(ctx, feed.KindLockExtended, out.Lock)
	} else {
		metrics.RecordLockAcquired()
		s.publishLock(ctx, feed.KindLockCreated, out.Lock)
	}

	return &AcquireLockOutput{Lock: out.Lock, Extended: out.Extended}, nil
}

// ReleaseLock releases a lock held by the requesting leader
func (s *service) ReleaseLock(ctx context.Context, input *ReleaseLockInput) (*ReleaseLockOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input is required", ErrInvalidInput)
	}

	out, err := s.lockRepo.Release(ctx, &lockRepo.ReleaseInput{
		EventID:         input.EventID,
		ParticipantID:   input.ParticipantID,
		ParticipantType: input.ParticipantType,
		HolderID:        input.HolderID,
	})
	if err != nil {
		switch {
		case errors.Is(err, lockRepo.ErrLockNotFound):
			return nil, ErrLockNotFound
		case errors.Is(err, lockRepo.ErrNotHolder):
			return nil, ErrNotLockHolder
		}
		return nil, fmt.Errorf("failed to release lock: %w", err)
	}

	metrics.RecordLocksReleased(1)
	s.publishLock(ctx, feed.KindLockReleased, out.Lock)

	return &ReleaseLockOutput{Lock: out.Lock}, nil
}

// ReleaseAllLocks releases every lock the requesting leader holds on an event
func (s *service) ReleaseAllLocks(ctx context.Context, input *ReleaseAllLocksInput) (*ReleaseAllLocksOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input is required", ErrInvalidInput)
	}

	if _, err := s.loadEvent(ctx, input.EventID); err != nil {
		return nil, err
	}

	out, err := s.lockRepo.ReleaseAllForHolder(ctx, &lockRepo.ReleaseAllForHolderInput{
		EventID:  input.EventID,
		HolderID: input.HolderID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to release locks: %w", err)
	}

	metrics.RecordLocksReleased(len(out.Released))
	for _, l := range out.Released {
		s.publishLock(ctx, feed.KindLockReleased, l)
	}

	return &ReleaseAllLocksOutput{Released: out.Released}, nil
}

// ListLocks lists the active locks on an event
func (s *service) ListLocks(ctx context.Context, input *ListLocksInput) (*ListLocksOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input is required", ErrInvalidInput)
	}

	if _, err := s.loadEvent(ctx, input.EventID); err != nil {
		return nil, err
	}

	out, err := s.lockRepo.ListActive(ctx, &lockRepo.ListActiveInput{EventID: input.EventID})
	if err != nil {
		return nil, fmt.Errorf("failed to list locks: %w", err)
	}

	return &ListLocksOutput{Locks: out.Locks}, nil
}

// AssignParticipant places a participant into a roster slot. The caller must
// either hold the participant's lock or the participant must be unlocked; the
// mutation is committed with a version check and replayed on conflict.
func (s *service) AssignParticipant(ctx context.Context, input *AssignParticipantInput) (*AssignParticipantOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input is required", ErrInvalidInput)
	}
	if input.HolderID == "" {
		return nil, fmt.Errorf("%w: holder ID is required", ErrInvalidInput)
	}
	if !input.ParticipantType.IsValid() {
		return nil, ErrInvalidParticipantType
	}

	var saved *models.ScheduledEvent
	var heldOwnLock bool

	for attempt := 1; ; attempt++ {
		event, err := s.loadEvent(ctx, input.EventID)
		if err != nil {
			return nil, err
		}

		slot := event.Roster.FindSlot(input.SlotID)
		if slot == nil {
			return nil, ErrSlotNotFound
		}
		if slot.AssignedParticipant != nil {
			return nil, ErrSlotOccupied
		}

		p, err := s.participantRepo.GetParticipant(ctx, &participantRepo.GetParticipantInput{
			GuildID:         event.GuildID,
			ParticipantType: input.ParticipantType,
			ParticipantID:   input.ParticipantID,
		})
		if err != nil {
			if errors.Is(err, participantRepo.ErrParticipantNotFound) {
				return nil, ErrParticipantNotFound
			}
			return nil, fmt.Errorf("failed to resolve participant: %w", err)
		}

		job := p.Job
		if input.SelectedJob != "" {
			job = input.SelectedJob
		}
		if !job.IsValid() {
			return nil, ErrInvalidJob
		}
		if !job.CanFill(slot.Role) {
			return nil, ErrJobRoleMismatch
		}
		if slot.JobRestriction != "" && job != slot.JobRestriction {
			return nil, ErrJobRestricted
		}

		heldOwnLock, err = s.checkLock(ctx, input.EventID, input.ParticipantID, input.ParticipantType, input.HolderID)
		if err != nil {
			return nil, err
		}

		now := s.clock.Now()
		slot.AssignedParticipant = &models.SlotAssignment{
			Participant: *p,
			Job:         job,
		}
		slot.DraftedBy = input.HolderID
		slot.DraftedAt = &now
		event.Roster.Recount()
		event.LastModified = now

		expected := event.Version
		event.Version++

		err = s.eventRepo.SaveEvent(ctx, &eventRepo.SaveEventInput{
			Event:           event,
			ExpectedVersion: expected,
		})
		if err == nil {
			saved = event
			break
		}
		if !errors.Is(err, eventRepo.ErrVersionConflict) {
			return nil, fmt.Errorf("failed to save event: %w", err)
		}
		if attempt >= maxSaveAttempts {
			metrics.RecordRosterMutation("assign", "conflict")
			return nil, ErrConcurrentUpdate
		}

		logger.L().Debug(ctx, "roster save conflicted, retrying",
			logger.String("event_id", input.EventID),
			logger.Int("attempt", attempt))
	}

	// The assignment is committed; releasing the leader's own lock is
	// cleanup, so a failure here is logged, never rolled back.
	if heldOwnLock {
		relOut, err := s.lockRepo.Release(ctx, &lockRepo.ReleaseInput{
			EventID:         input.EventID,
			ParticipantID:   input.ParticipantID,
			ParticipantType: input.ParticipantType,
			HolderID:        input.HolderID,
		})
		if err != nil {
			logger.L().Warn(ctx, "failed to release lock after assignment",
				logger.String("event_id", input.EventID),
				logger.String("participant_id", input.ParticipantID),
				logger.Error(err))
		} else {
			metrics.RecordLocksReleased(1)
			s.publishLock(ctx, feed.KindLockReleased, relOut.Lock)
		}
	}

	metrics.RecordRosterMutation("assign", "ok")
	s.feed.Publish(ctx, saved.ID, feed.Notification{
		Kind:    feed.KindRosterUpdated,
		EventID: saved.ID,
		Event:   saved,
	})

	return &AssignParticipantOutput{Event: saved}, nil
}

// UnassignParticipant clears a roster slot drafted by the requesting leader
func (s *service) UnassignParticipant(ctx context.Context, input *UnassignParticipantInput) (*UnassignParticipantOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input is required", ErrInvalidInput)
	}
	if input.HolderID == "" {
		return nil, fmt.Errorf("%w: holder ID is required", ErrInvalidInput)
	}

	var saved *models.ScheduledEvent

	for attempt := 1; ; attempt++ {
		event, err := s.loadEvent(ctx, input.EventID)
		if err != nil {
			return nil, err
		}

		slot := event.Roster.FindSlot(input.SlotID)
		if slot == nil {
			return nil, ErrSlotNotFound
		}
		if slot.AssignedParticipant == nil {
			return nil, ErrSlotEmpty
		}
		if slot.DraftedBy != input.HolderID {
			return nil, ErrNotDrafter
		}

		slot.AssignedParticipant = nil
		slot.DraftedBy = ""
		slot.DraftedAt = nil
		event.Roster.Recount()
		event.LastModified = s.clock.Now()

		expected := event.Version
		event.Version++

		err = s.eventRepo.SaveEvent(ctx, &eventRepo.SaveEventInput{
			Event:           event,
			ExpectedVersion: expected,
		})
		if err == nil {
			saved = event
			break
		}
		if !errors.Is(err, eventRepo.ErrVersionConflict) {
			return nil, fmt.Errorf("failed to save event: %w", err)
		}
		if attempt >= maxSaveAttempts {
			metrics.RecordRosterMutation("unassign", "conflict")
			return nil, ErrConcurrentUpdate
		}

		logger.L().Debug(ctx, "roster save conflicted, retrying",
			logger.String("event_id", input.EventID),
			logger.Int("attempt", attempt))
	}

	metrics.RecordRosterMutation("unassign", "ok")
	s.feed.Publish(ctx, saved.ID, feed.Notification{
		Kind:    feed.KindRosterUpdated,
		EventID: saved.ID,
		Event:   saved,
	})

	return &UnassignParticipantOutput{Event: saved}, nil
}

// checkLock verifies the participant is either unlocked or locked by the
// holder. Returns whether the holder owns the lock, or a LockConflictError
// when someone else does.
func (s *service) checkLock(ctx context.Context, eventID, participantID string, ptype models.ParticipantType, holderID string) (bool, error) {
	out, err := s.lockRepo.ListActive(ctx, &lockRepo.ListActiveInput{EventID: eventID})
	if err != nil {
		return false, fmt.Errorf("failed to list locks: %w", err)
	}

	for _, l := range out.Locks {
		if l.ParticipantID != participantID || l.ParticipantType != ptype {
			continue
		}
		if l.LockedBy != holderID {
			metrics.RecordLockConflict()
			return false, &LockConflictError{
				HolderID:   l.LockedBy,
				HolderName: l.LockedByName,
				ExpiresAt:  l.ExpiresAt,
			}
		}
		return true, nil
	}

	return false, nil
}

func (s *service) loadEvent(ctx context.Context, eventID string) (*models.ScheduledEvent, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: event ID is required", ErrInvalidInput)
	}

	event, err := s.eventRepo.GetEvent(ctx, &eventRepo.GetEventInput{EventID: eventID})
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

func (s *service) publishLock(ctx context.Context, kind feed.Kind, l *models.DraftLock) {
	if l == nil {
		return
	}
	s.feed.Publish(ctx, l.EventID, feed.Notification{
		Kind:    kind,
		EventID: l.EventID,
		Lock:    l,
	})
}
