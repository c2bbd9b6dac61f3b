package rollhistory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-dice-tray/internal/errors"
	"github.com/KirkDiggler/rpg-dice-tray/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-dice-tray/internal/redis"
)

const (
	// Key pattern: roll_history:{player_id}
	historyKeyPrefix = "roll_history:"

	// DefaultMaxEntries is how many selections a player keeps
	DefaultMaxEntries = 6
	defaultTTL        = 7 * 24 * time.Hour

	// maxRemoveAttempts bounds WATCH retries when pushes race a removal
	maxRemoveAttempts = 3

	// removedMarker replaces an entry before LREM deletes it by value
	removedMarker = "__removed__"

	errEntryNil      = "entry cannot be nil"
	errPlayerIDEmpty = "player ID cannot be empty"
	errSetIDEmpty    = "set ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	// MaxEntries defaults to DefaultMaxEntries
	MaxEntries int
	// TTL is refreshed on every push; defaults to a week
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.MaxEntries < 0 {
		vb.Field("MaxEntries", "must not be negative")
	}

	return vb.Build()
}

type redisRepository struct {
	client     redisclient.Client
	clock      clock.Clock
	maxEntries int
	ttl        time.Duration
}

// NewRedisRepository creates a new Redis repository for roll history
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	maxEntries := cfg.MaxEntries
	if maxEntries == 0 {
		maxEntries = DefaultMaxEntries
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client:     cfg.Client,
		clock:      cfg.Clock,
		maxEntries: maxEntries,
		ttl:        ttl,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Push records a selection as the newest entry
func (r *redisRepository) Push(ctx context.Context, input PushInput) (*PushOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if input.Entry == nil {
		return nil, errors.InvalidArgument(errEntryNil)
	}
	if input.Entry.SetID == "" {
		return nil, errors.InvalidArgument(errSetIDEmpty)
	}
	if !input.Entry.Advantage.Valid() {
		return nil, errors.InvalidArgumentf("unknown advantage: %s", input.Entry.Advantage)
	}

	entry := *input.Entry
	entry.CreatedAt = r.clock.Now()

	data, err := json.Marshal(&entry)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal history entry")
	}

	key := r.buildKey(input.PlayerID)

	// Start transaction
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, int64(-r.maxEntries), -1)
	pipe.Expire(ctx, key, r.ttl)
	listCmd := pipe.LRange(ctx, key, 0, -1)

	// Execute transaction
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to push history entry")
	}

	entries, err := decodeEntries(listCmd.Val())
	if err != nil {
		return nil, err
	}

	return &PushOutput{Entries: entries}, nil
}

// List returns the player's history
func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	entries, err := r.list(ctx, r.buildKey(input.PlayerID))
	if err != nil {
		return nil, err
	}

	return &ListOutput{Entries: entries}, nil
}

// Get returns a single entry
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if input.Index < 0 {
		return nil, errors.InvalidArgumentf("index must not be negative: %d", input.Index)
	}

	data, err := r.client.LIndex(ctx, r.buildKey(input.PlayerID), int64(input.Index)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, r.notFound(input.PlayerID, input.Index)
		}
		return nil, errors.Wrapf(err, "failed to get history entry from Redis")
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal history entry")
	}

	return &GetOutput{Entry: &entry}, nil
}

// Remove deletes the entry at the given index
func (r *redisRepository) Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if input.Index < 0 {
		return nil, errors.InvalidArgumentf("index must not be negative: %d", input.Index)
	}

	key := r.buildKey(input.PlayerID)

	var listCmd *redis.StringSliceCmd
	remove := func(tx *redis.Tx) error {
		length, err := tx.LLen(ctx, key).Result()
		if err != nil {
			return errors.Wrapf(err, "failed to count history entries")
		}
		if int64(input.Index) >= length {
			return r.notFound(input.PlayerID, input.Index)
		}

		// Lists have no delete-by-index, so mark the slot and remove the mark
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.LSet(ctx, key, int64(input.Index), removedMarker)
			pipe.LRem(ctx, key, 1, removedMarker)
			listCmd = pipe.LRange(ctx, key, 0, -1)
			return nil
		})
		return err
	}

	// The index is checked and removed under WATCH; a concurrent push
	// aborts the transaction and the check runs again
	var err error
	for attempt := 0; attempt < maxRemoveAttempts; attempt++ {
		err = r.client.Watch(ctx, remove, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if errors.Is(err, redis.TxFailedErr) {
		return nil, errors.Unavailable("history changed during removal").
			WithMeta("player_id", input.PlayerID).
			WithMeta("index", input.Index)
	}
	if err != nil {
		var appErr *errors.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to remove history entry")
	}

	entries, err := decodeEntries(listCmd.Val())
	if err != nil {
		return nil, err
	}

	return &RemoveOutput{Entries: entries}, nil
}

func (r *redisRepository) list(ctx context.Context, key string) ([]*Entry, error) {
	raw, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list history entries")
	}
	return decodeEntries(raw)
}

func (r *redisRepository) notFound(playerID string, index int) error {
	return errors.NotFoundf("history entry %d not found", index).
		WithMeta("player_id", playerID).
		WithMeta("index", index)
}

// buildKey creates the Redis key for a player's history
func (r *redisRepository) buildKey(playerID string) string {
	return fmt.Sprintf("%s%s", historyKeyPrefix, playerID)
}

func decodeEntries(raw []string) ([]*Entry, error) {
	entries := make([]*Entry, 0, len(raw))
	for _, data := range raw {
		var entry Entry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal history entry")
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}
