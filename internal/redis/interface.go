package redis

import (
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mocks/redis.go -package=redismocks -source=interface.go

// Client is the redis surface the repositories depend on. Single node and
// cluster clients both satisfy it.
type Client interface {
	redis.UniversalClient
}
