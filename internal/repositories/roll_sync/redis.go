package rollsync

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
	// Key pattern: roll_sync:{player_id}
	snapshotKeyPrefix = "roll_sync:"
	defaultTTL        = 15 * time.Minute

	errSnapshotNil   = "snapshot cannot be nil"
	errPlayerIDEmpty = "player ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
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

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for roll snapshots
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Publish stores the snapshot with the requested TTL
func (r *redisRepository) Publish(ctx context.Context, input PublishInput) (*PublishOutput, error) {
	if input.Snapshot == nil {
		return nil, errors.InvalidArgument(errSnapshotNil)
	}
	if input.Snapshot.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	snapshot := *input.Snapshot
	now := r.clock.Now()
	snapshot.UpdatedAt = now
	snapshot.ExpiresAt = now.Add(ttl)

	data, err := json.Marshal(&snapshot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal roll snapshot")
	}

	key := r.buildKey(snapshot.PlayerID)
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store roll snapshot in Redis")
	}

	return &PublishOutput{Snapshot: &snapshot}, nil
}

// Get retrieves the player's snapshot
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	key := r.buildKey(input.PlayerID)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("roll snapshot not found").WithMeta("player_id", input.PlayerID)
		}
		return nil, errors.Wrapf(err, "failed to get roll snapshot from Redis")
	}

	var snapshot RollSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal roll snapshot")
	}

	// Check if snapshot has expired
	if r.clock.Now().After(snapshot.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFound("roll snapshot has expired").WithMeta("player_id", input.PlayerID)
	}

	return &GetOutput{Snapshot: &snapshot}, nil
}

// Delete removes the player's snapshot
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	removed, err := r.client.Del(ctx, r.buildKey(input.PlayerID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete roll snapshot from Redis")
	}

	return &DeleteOutput{Deleted: removed > 0}, nil
}

// buildKey creates the Redis key for a player's snapshot
func (r *redisRepository) buildKey(playerID string) string {
	return fmt.Sprintf("%s%s", snapshotKeyPrefix, playerID)
}
