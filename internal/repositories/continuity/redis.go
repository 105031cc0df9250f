package continuity

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
	// Key pattern: progression:{namespace}:{profile}:continuity
	keySuffix = "continuity"

	blobVersion = 1

	errProfileEmpty = "profile ID cannot be empty"
	errRecordNil    = "record cannot be nil"
)

type persistedRecord struct {
	Version int                           `json:"version"`
	Record  *progression.ContinuityRecord `json:"record"`
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

// NewRedisRepository creates a Redis-backed continuity repository.
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client, namespace: cfg.Namespace}, nil
}

var _ Repository = (*redisRepository)(nil)

// Get loads the continuity record for the profile.
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument(errProfileEmpty)
	}

	key := r.buildKey(input.ProfileID)
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("continuity record not found").
				WithMeta("profile_id", input.ProfileID)
		}
		return nil, errors.Wrapf(err, "failed to get continuity record from Redis")
	}

	var blob persistedRecord
	if err := json.Unmarshal([]byte(data), &blob); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "continuity blob corrupted").
			WithMeta("key", key)
	}
	if blob.Version > blobVersion {
		return nil, errors.DataLossf("continuity blob version %d is newer than supported %d", blob.Version, blobVersion)
	}

	return &GetOutput{Record: blob.Record}, nil
}

// Save replaces the record blob atomically.
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.ProfileID == "" {
		return nil, errors.InvalidArgument(errProfileEmpty)
	}
	if input.Record == nil {
		return nil, errors.InvalidArgument(errRecordNil)
	}

	data, err := json.Marshal(persistedRecord{Version: blobVersion, Record: input.Record})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal continuity record")
	}

	if err := r.client.Set(ctx, r.buildKey(input.ProfileID), data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store continuity record in Redis")
	}

	return &SaveOutput{}, nil
}

func (r *redisRepository) buildKey(profileID string) string {
	return fmt.Sprintf("progression:%s:%s:%s", r.namespace, profileID, keySuffix)
}
