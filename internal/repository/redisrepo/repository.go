package redisrepo

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("not found")

type Default interface {
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd
}

// SessionRecord is what the self-hosted backend keeps per signed-in client.
type SessionRecord struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Provider string    `json:"provider"`
	Expire   time.Time `json:"expire"`
}

type Session interface {
	Create(ctx context.Context, session SessionRecord) error
	Find(ctx context.Context, sessionID string) (*SessionRecord, error)
	DeleteAll(ctx context.Context, userID string) error
}

type RedisRepository struct {
	Default
	Session
}

func New(rdb *redis.Client) *RedisRepository {
	def := newDefaultRepo(rdb)
	return &RedisRepository{
		Default: def,
		Session: newSessionRepo(def),
	}
}
