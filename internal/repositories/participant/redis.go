package participant

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
	participantKeyPrefix  = "participant:"        // participant:<guild>:<type>:<id>
	guildPoolKeyPrefix    = "guild_participants:" // set of participant keys per guild
)

// ErrParticipantNotFound is returned when a participant is not found
var ErrParticipantNotFound = errors.New("participant not found")

// Config holds configuration for the Redis participant repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed participant repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
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

func participantKey(guildID string, participantType models.ParticipantType, participantID string) string {
	return fmt.Sprintf("%s%s:%s:%s", participantKeyPrefix, guildID, participantType, participantID)
}

func guildPoolKey(guildID string) string {
	return guildPoolKeyPrefix + guildID
}

// SaveParticipant persists a participant to Redis
func (r *redisRepository) SaveParticipant(ctx context.Context, input *SaveParticipantInput) error {
	if input == nil || input.Participant == nil {
		return errors.New("input and participant cannot be nil")
	}

	p := input.Participant

	if p.ID == "" || p.GuildID == "" {
		return errors.New("participant ID and guild ID cannot be empty")
	}

	if !p.Type.IsValid() {
		return fmt.Errorf("invalid participant type %q", p.Type)
	}

	participantJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal participant: %w", err)
	}

	key := participantKey(p.GuildID, p.Type, p.ID)

	pipe := r.client.Pipeline()
	pipe.Set(ctx, key, participantJSON, 0)
	pipe.SAdd(ctx, guildPoolKey(p.GuildID), key)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save participant: %w", err)
	}

	return nil
}

// GetParticipant retrieves a participant from Redis
func (r *redisRepository) GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error) {
	if input == nil || input.GuildID == "" || input.ParticipantID == "" {
		return nil, errors.New("input, guild ID, and participant ID cannot be empty")
	}

	key := participantKey(input.GuildID, input.ParticipantType, input.ParticipantID)
	participantJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	var p models.Participant
	if err := json.Unmarshal([]byte(participantJSON), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal participant: %w", err)
	}

	return &p, nil
}

// DeleteParticipant removes a participant from Redis
func (r *redisRepository) DeleteParticipant(ctx context.Context, input *DeleteParticipantInput) error {
	if input == nil || input.GuildID == "" || input.ParticipantID == "" {
		return errors.New("input, guild ID, and participant ID cannot be empty")
	}

	key := participantKey(input.GuildID, input.ParticipantType, input.ParticipantID)

	pipe := r.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, guildPoolKey(input.GuildID), key)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}

	return nil
}

// ListParticipantsByGuild retrieves all participants in a guild's pool
func (r *redisRepository) ListParticipantsByGuild(ctx context.Context, input *ListParticipantsByGuildInput) (*ListParticipantsByGuildOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	keys, err := r.client.SMembers(ctx, guildPoolKey(input.GuildID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list guild participants: %w", err)
	}

	if len(keys) == 0 {
		return &ListParticipantsByGuildOutput{Participants: []*models.Participant{}}, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	participants := make([]*models.Participant, 0, len(values))
	for _, v := range values {
		payload, ok := v.(string)
		if !ok {
			// Deleted between the index read and the fetch
			continue
		}

		var p models.Participant
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal participant: %w", err)
		}
		participants = append(participants, &p)
	}

	return &ListParticipantsByGuildOutput{Participants: participants}, nil
}
