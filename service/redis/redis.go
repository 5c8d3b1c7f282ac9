package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/mosaic-xyz/goapi/base/ctx"
)

// Forever marks a key without expiration
const Forever = time.Duration(-1)

var (
	// ErrNotFound aliases redigo's nil-reply so callers never import redigo
	ErrNotFound = redis.ErrNil

	// ErrNoTTL is returned by TTL for keys without expiration
	ErrNoTTL = errors.New("key has no ttl")

	// ErrExpireNotExistOrTimeout is returned by Expire when the key does
	// not exist or the timeout could not be set
	ErrExpireNotExistOrTimeout = errors.New("key not exist or timeout cannot be set")
)

type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	GetZip(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	SetZip(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, ks ...string) (int, error)
	Expire(context ctx.Ctx, key string, ttl time.Duration) error
	Incr(context ctx.Ctx, key string) (int64, error)
	Incrby(context ctx.Ctx, key string, val int) (int64, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	TTL(context ctx.Ctx, key string) (int, error)
	GetConn() (redis.Conn, error)
	Name() string
}
