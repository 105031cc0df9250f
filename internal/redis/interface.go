package redis

import (
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mocks/redis.go -package=redismocks -source=interface.go

// Client wraps redis.UniversalClient so repositories can be tested against
// either a real client or a mock.
type Client interface {
	redis.UniversalClient
}
