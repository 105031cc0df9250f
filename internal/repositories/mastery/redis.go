package mastery

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/studyquest/progression/internal/entities/progression"
	"github.com/studyquest/progression/internal/errors"
	redisclient "github.com/studyquest/progression/internal/redis"
)

const (
	// Key pattern: progression:{namespace}:{profile}:mastery
	keySuffix = "mastery"

	blobVersion = 1

	errProfileEmpty = "profile ID cannot be empty"
	errZonesNil     = "zones cannot be nil"
)

type persistedZones struct {
	Version int                                 `json:"version"`
	Zones   map[string]*progression.ZoneMastery `json:"zones"`
}

// Config holds the dependencies for the Redis repository.
type Config struct {
	Client    redisclient.Client
	Namespace string
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Namespace == "" {
		return errors.InvalidArgument("namespace is required")
	}
	return nil
}

type redisRepository struct {
	client    redisclient.Client
	namespace string
}

// NewRedisRepository creates a Redis-backed mastery repository.
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client, namespace: cfg.Namespace}, nil
}

var _ Repository = (*redisRepository)(nil)

// Get loads all zone records for the profile.
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument(errProfileEmpty)
	}

	key := r.buildKey(input.ProfileID)
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("zone mastery not found").
				WithMeta("profile_id", input.ProfileID)
		}
		return nil, errors.Wrapf(err, "failed to get zone mastery from Redis")
	}

	var blob persistedZones
	if err := json.Unmarshal([]byte(data), &blob); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "zone mastery blob corrupted").
			WithMeta("key", key)
	}
	if blob.Version > blobVersion {
		return nil, errors.DataLossf("zone mastery blob version %d is newer than supported %d", blob.Version, blobVersion)
	}

	return &GetOutput{Zones: blob.Zones}, nil
}

// Save replaces the zone-mastery blob atomically.
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument(errProfileEmpty)
	}
	if input.Zones == nil {
		return nil, errors.InvalidArgument(errZonesNil)
	}

	data, err := json.Marshal(persistedZones{Version: blobVersion, Zones: input.Zones})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal zone mastery")
	}

	if err := r.client.Set(ctx, r.buildKey(input.ProfileID), data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store zone mastery in Redis")
	}

	return &SaveOutput{}, nil
}

func (r *redisRepository) buildKey(profileID string) string {
	return fmt.Sprintf("progression:%s:%s:%s", r.namespace, profileID, keySuffix)
}
