package lock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hglok/raidsync/internal/common/clock"
	"github.com/hglok/raidsync/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	lockKeyPrefix    = "draft_lock:"       // draft_lock:<event>|<type>|<participant>
	eventLocksPrefix = "event_draft_locks:" // set of lock members per event
	expiryIndexKey   = "draft_lock_expiry" // zset of members scored by expiry (ms)

	memberSep = "|"

	// timeLayout matches encoding/json's time.Time encoding so the
	// extend path in the acquire script stays byte-compatible.
	timeLayout = time.RFC3339Nano
)

// ErrLockNotFound is returned when no lock exists for the key
var ErrLockNotFound = errors.New("lock not found")

// ErrNotHolder is returned when the caller does not hold the lock
var ErrNotHolder = errors.New("lock is held by a different team leader")

// ErrLockHeld is returned by Acquire when another holder owns the key.
// The returned error is a *HeldError carrying the current lock.
var ErrLockHeld = errors.New("participant is already locked")

// HeldError reports an acquire attempt on a key locked by another holder.
type HeldError struct {
	// Lock is the lock currently held by someone else.
	Lock *models.DraftLock
}

func (e *HeldError) Error() string {
	return fmt.Sprintf("participant %s is locked by %s until %s",
		e.Lock.ParticipantID, e.Lock.LockedByName, e.Lock.ExpiresAt.Format("15:04:05"))
}

// Is makes errors.Is(err, ErrLockHeld) match.
func (e *HeldError) Is(target error) bool {
	return target == ErrLockHeld
}

// acquireScript performs the check-then-write for one lock key in a single
// atomic step. A key held by the same leader is extended in place, keeping
// its original ID and LockedAt.
//
// KEYS: lock key, event lock set, expiry zset
// ARGV: holder ID, lock JSON, ttl ms, new expiry (RFC3339), member, expiry ms
var acquireScript = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if cur then
  local lock = cjson.decode(cur)
  if lock.lockedBy ~= ARGV[1] then
    return {'held', cur}
  end
  lock.expiresAt = ARGV[4]
  local payload = cjson.encode(lock)
  redis.call('SET', KEYS[1], payload, 'PX', ARGV[3])
  redis.call('ZADD', KEYS[3], ARGV[6], ARGV[5])
  return {'extended', payload}
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
redis.call('SADD', KEYS[2], ARGV[5])
redis.call('ZADD', KEYS[3], ARGV[6], ARGV[5])
return {'created', ARGV[2]}
`)

// releaseScript removes a lock only when the caller holds it.
//
// KEYS: lock key, event lock set, expiry zset
// ARGV: holder ID, member
var releaseScript = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if not cur then
  return {'notfound'}
end
local lock = cjson.decode(cur)
if lock.lockedBy ~= ARGV[1] then
  return {'forbidden'}
end
redis.call('DEL', KEYS[1])
redis.call('SREM', KEYS[2], ARGV[2])
redis.call('ZREM', KEYS[3], ARGV[2])
return {'released', cur}
`)

// evictScript removes a lock during a sweep, but only while its indexed
// expiry is still in the past. A concurrent re-acquire moves the score
// forward and the eviction backs off.
//
// KEYS: lock key, event lock set, expiry zset
// ARGV: member, now ms
var evictScript = redis.NewScript(`
local score = redis.call('ZSCORE', KEYS[3], ARGV[1])
if not score or tonumber(score) > tonumber(ARGV[2]) then
  return {'live'}
end
local cur = redis.call('GET', KEYS[1])
redis.call('DEL', KEYS[1])
redis.call('SREM', KEYS[2], ARGV[1])
redis.call('ZREM', KEYS[3], ARGV[1])
if cur then
  return {'evicted', cur}
end
return {'evicted'}
`)

// Config holds configuration for the Redis lock repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Clock for expiry comparisons
	Clock clock.Clock
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	clock  clock.Clock
}

// NewRedis creates a new Redis-backed lock repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
		clock:  cfg.Clock,
	}, nil
}

func lockMember(eventID string, participantType models.ParticipantType, participantID string) string {
	return strings.Join([]string{eventID, string(participantType), participantID}, memberSep)
}

func parseMember(member string) (eventID string, participantType models.ParticipantType, participantID string, err error) {
	parts := strings.SplitN(member, memberSep, 3)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("malformed lock member %q", member)
	}
	return parts[0], models.ParticipantType(parts[1]), parts[2], nil
}

func lockKey(member string) string {
	return lockKeyPrefix + member
}

func eventLocksKey(eventID string) string {
	return eventLocksPrefix + eventID
}

// parseScriptReply unpacks the {status, payload?} arrays the lock scripts
// return.
func parseScriptReply(v interface{}) (status, payload string, err error) {
	reply, ok := v.([]interface{})
	if !ok || len(reply) == 0 {
		return "", "", fmt.Errorf("unexpected script reply %T", v)
	}

	status, ok = reply[0].(string)
	if !ok {
		return "", "", fmt.Errorf("unexpected script status %T", reply[0])
	}

	if len(reply) > 1 {
		payload, ok = reply[1].(string)
		if !ok {
			return "", "", fmt.Errorf("unexpected script payload %T", reply[1])
		}
	}

	return status, payload, nil
}

// Acquire creates or extends a lock atomically
func (r *redisRepository) Acquire(ctx context.Context, input *AcquireInput) (*AcquireOutput, error) {
	if input == nil || input.Lock == nil {
		return nil, errors.New("input and lock cannot be nil")
	}

	if input.TTL <= 0 {
		return nil, errors.New("ttl must be positive")
	}

	l := input.Lock
	lockJSON, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lock: %w", err)
	}

	member := lockMember(l.EventID, l.ParticipantType, l.ParticipantID)
	keys := []string{lockKey(member), eventLocksKey(l.EventID), expiryIndexKey}
	argv := []interface{}{
		l.LockedBy,
		string(lockJSON),
		input.TTL.Milliseconds(),
		l.ExpiresAt.Format(timeLayout),
		member,
		l.ExpiresAt.UnixMilli(),
	}

	raw, err := acquireScript.Run(ctx, r.client, keys, argv...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	status, payload, err := parseScriptReply(raw)
	if err != nil {
		return nil, err
	}

	switch status {
	case "held":
		held, err := unmarshalLock(payload)
		if err != nil {
			return nil, err
		}
		return nil, &HeldError{Lock: held}
	case "created", "extended":
		stored, err := unmarshalLock(payload)
		if err != nil {
			return nil, err
		}
		return &AcquireOutput{
			Lock:     stored,
			Extended: status == "extended",
		}, nil
	default:
		return nil, fmt.Errorf("unexpected acquire status %q", status)
	}
}

// Release removes the caller's lock
func (r *redisRepository) Release(ctx context.Context, input *ReleaseInput) (*ReleaseOutput, error) {
	if input == nil || input.EventID == "" || input.ParticipantID == "" {
		return nil, errors.New("input, event ID, and participant ID cannot be empty")
	}

	member := lockMember(input.EventID, input.ParticipantType, input.ParticipantID)
	keys := []string{lockKey(member), eventLocksKey(input.EventID), expiryIndexKey}

	raw, err := releaseScript.Run(ctx, r.client, keys, input.HolderID, member).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to release lock: %w", err)
	}

	status, payload, err := parseScriptReply(raw)
	if err != nil {
		return nil, err
	}

	switch status {
	case "notfound":
		return nil, ErrLockNotFound
	case "forbidden":
		return nil, ErrNotHolder
	case "released":
		released, err := unmarshalLock(payload)
		if err != nil {
			return nil, err
		}
		return &ReleaseOutput{Lock: released}, nil
	default:
		return nil, fmt.Errorf("unexpected release status %q", status)
	}
}

// ReleaseAllForHolder removes every lock the holder owns for the event
func (r *redisRepository) ReleaseAllForHolder(ctx context.Context, input *ReleaseAllForHolderInput) (*ReleaseAllForHolderOutput, error) {
	if input == nil || input.EventID == "" || input.HolderID == "" {
		return nil, errors.New("input, event ID, and holder ID cannot be empty")
	}

	members, err := r.client.SMembers(ctx, eventLocksKey(input.EventID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list event locks: %w", err)
	}

	released := make([]*models.DraftLock, 0, len(members))
	for _, member := range members {
		keys := []string{lockKey(member), eventLocksKey(input.EventID), expiryIndexKey}

		raw, err := releaseScript.Run(ctx, r.client, keys, input.HolderID, member).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to release lock %s: %w", member, err)
		}

		status, payload, err := parseScriptReply(raw)
		if err != nil {
			return nil, err
		}

		// Locks held by other leaders, or already gone, stay untouched.
		if status != "released" {
			continue
		}

		l, err := unmarshalLock(payload)
		if err != nil {
			return nil, err
		}
		released = append(released, l)
	}

	return &ReleaseAllForHolderOutput{Released: released}, nil
}

// ListActive returns all unexpired locks for an event
func (r *redisRepository) ListActive(ctx context.Context, input *ListActiveInput) (*ListActiveOutput, error) {
	if input == nil || input.EventID == "" {
		return nil, errors.New("input and event ID cannot be empty")
	}

	setKey := eventLocksKey(input.EventID)
	members, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list event locks: %w", err)
	}

	if len(members) == 0 {
		return &ListActiveOutput{Locks: []*models.DraftLock{}}, nil
	}

	keys := make([]string, len(members))
	for i, member := range members {
		keys[i] = lockKey(member)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get locks: %w", err)
	}

	now := r.clock.Now()
	locks := make([]*models.DraftLock, 0, len(values))
	var stale []string

	for i, v := range values {
		payload, ok := v.(string)
		if !ok {
			// Key expired out from under the index; clean up lazily.
			stale = append(stale, members[i])
			continue
		}

		l, err := unmarshalLock(payload)
		if err != nil {
			return nil, err
		}

		if l.Expired(now) {
			continue
		}

		locks = append(locks, l)
	}

	if len(stale) > 0 {
		pipe := r.client.Pipeline()
		for _, member := range stale {
			pipe.SRem(ctx, setKey, member)
			pipe.ZRem(ctx, expiryIndexKey, member)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("failed to evict stale lock entries: %w", err)
		}
	}

	return &ListActiveOutput{Locks: locks}, nil
}

// SweepExpired evicts every lock whose expiry has passed
func (r *redisRepository) SweepExpired(ctx context.Context, input *SweepExpiredInput) (*SweepExpiredOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	now := r.clock.Now()
	members, err := r.client.ZRangeByScore(ctx, expiryIndexKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", now.UnixMilli()),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to scan expired locks: %w", err)
	}

	evicted := make([]*EvictedLock, 0, len(members))
	for _, member := range members {
		eventID, participantType, participantID, err := parseMember(member)
		if err != nil {
			return nil, err
		}

		keys := []string{lockKey(member), eventLocksKey(eventID), expiryIndexKey}

		raw, err := evictScript.Run(ctx, r.client, keys, member, now.UnixMilli()).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to evict lock %s: %w", member, err)
		}

		status, payload, err := parseScriptReply(raw)
		if err != nil {
			return nil, err
		}

		// Re-acquired between the scan and the eviction.
		if status != "evicted" {
			continue
		}

		ev := &EvictedLock{
			EventID:         eventID,
			ParticipantID:   participantID,
			ParticipantType: participantType,
		}
		if payload != "" {
			l, err := unmarshalLock(payload)
			if err != nil {
				return nil, err
			}
			ev.Lock = l
		}
		evicted = append(evicted, ev)
	}

	return &SweepExpiredOutput{Evicted: evicted}, nil
}

// PurgeEvent drops every lock for an event
func (r *redisRepository) PurgeEvent(ctx context.Context, input *PurgeEventInput) error {
	if input == nil || input.EventID == "" {
		return errors.New("input and event ID cannot be empty")
	}

	setKey := eventLocksKey(input.EventID)
	members, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list event locks: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, member := range members {
		pipe.Del(ctx, lockKey(member))
		pipe.ZRem(ctx, expiryIndexKey, member)
	}
	pipe.Del(ctx, setKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to purge event locks: %w", err)
	}

	return nil
}

func unmarshalLock(payload string) (*models.DraftLock, error) {
	var l models.DraftLock
	if err := json.Unmarshal([]byte(payload), &l); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lock: %w", err)
	}
	return &l, nil
}
