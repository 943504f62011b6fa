package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hglok/raidsync/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	eventKeyPrefix  = "scheduled_event:"
	guildIndexPrefix = "guild_events:" // zset of event IDs scored by start time
)

// ErrEventNotFound is returned when an event is not found
var ErrEventNotFound = errors.New("event not found")

// ErrEventExists is returned when creating an event whose ID is taken
var ErrEventExists = errors.New("event already exists")

// ErrVersionConflict is returned when a conditional save loses to a
// concurrent writer
var ErrVersionConflict = errors.New("event was modified concurrently")

// Config holds configuration for the Redis event repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed event repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func eventKey(eventID string) string {
	return eventKeyPrefix + eventID
}

func guildIndexKey(guildID string) string {
	return guildIndexPrefix + guildID
}

// CreateEvent persists a new event
func (r *redisRepository) CreateEvent(ctx context.Context, input *CreateEventInput) error {
	if input == nil || input.Event == nil {
		return errors.New("input and event cannot be nil")
	}

	if input.Event.ID == "" {
		return errors.New("event ID cannot be empty")
	}

	eventJSON, err := json.Marshal(input.Event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	created, err := r.client.SetNX(ctx, eventKey(input.Event.ID), eventJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	if !created {
		return ErrEventExists
	}

	if input.Event.GuildID != "" {
		err = r.client.ZAdd(ctx, guildIndexKey(input.Event.GuildID), redis.Z{
			Score:  float64(input.Event.StartTime.Unix()),
			Member: input.Event.ID,
		}).Err()
		if err != nil {
			return fmt.Errorf("failed to index event: %w", err)
		}
	}

	return nil
}

// GetEvent retrieves an event by ID
func (r *redisRepository) GetEvent(ctx context.Context, input *GetEventInput) (*models.ScheduledEvent, error) {
	if input == nil || input.EventID == "" {
		return nil, errors.New("input and event ID cannot be empty")
	}

	eventJSON, err := r.client.Get(ctx, eventKey(input.EventID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	var evt models.ScheduledEvent
	if err := json.Unmarshal([]byte(eventJSON), &evt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &evt, nil
}

// SaveEvent persists a mutated event, conditional on the stored version
func (r *redisRepository) SaveEvent(ctx context.Context, input *SaveEventInput) error {
	if input == nil || input.Event == nil {
		return errors.New("input and event cannot be nil")
	}

	key := eventKey(input.Event.ID)

	txn := func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to get event: %w", err)
		}

		var current models.ScheduledEvent
		if err := json.Unmarshal([]byte(stored), &current); err != nil {
			return fmt.Errorf("failed to unmarshal event: %w", err)
		}

		if current.Version != input.ExpectedVersion {
			return ErrVersionConflict
		}

		eventJSON, err := json.Marshal(input.Event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, eventJSON, 0)
			if input.Event.GuildID != "" {
				pipe.ZAdd(ctx, guildIndexKey(input.Event.GuildID), redis.Z{
					Score:  float64(input.Event.StartTime.Unix()),
					Member: input.Event.ID,
				})
			}
			return nil
		})
		return err
	}

	err := r.client.Watch(ctx, txn, key)
	if err != nil {
		// The key changed between the version check and the write; to
		// the caller that is the same stale-read condition.
		if err == redis.TxFailedErr {
			return ErrVersionConflict
		}
		return err
	}

	return nil
}

// DeleteEvent removes an event
func (r *redisRepository) DeleteEvent(ctx context.Context, input *DeleteEventInput) error {
	if input == nil || input.EventID == "" {
		return errors.New("input and event ID cannot be empty")
	}

	evt, err := r.GetEvent(ctx, &GetEventInput{EventID: input.EventID})
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, eventKey(input.EventID))
	if evt.GuildID != "" {
		pipe.ZRem(ctx, guildIndexKey(evt.GuildID), input.EventID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// ListEventsByGuild retrieves a guild's events ordered by start time
func (r *redisRepository) ListEventsByGuild(ctx context.Context, input *ListEventsByGuildInput) ([]*models.ScheduledEvent, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	eventIDs, err := r.client.ZRange(ctx, guildIndexKey(input.GuildID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list guild events: %w", err)
	}

	if len(eventIDs) == 0 {
		return []*models.ScheduledEvent{}, nil
	}

	events := make([]*models.ScheduledEvent, 0, len(eventIDs))
	for _, eventID := range eventIDs {
		evt, err := r.GetEvent(ctx, &GetEventInput{EventID: eventID})
		if err != nil {
			// Skip events that were deleted after the index read
			if errors.Is(err, ErrEventNotFound) {
				continue
			}
			return nil, err
		}
		events = append(events, evt)
	}

	return events, nil
}
