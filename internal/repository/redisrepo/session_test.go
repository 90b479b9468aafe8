package redisrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDefault keeps values and sets in maps and ignores ttls.
type fakeDefault struct {
	mu     sync.Mutex
	values map[string]string
	sets   map[string]map[string]struct{}
}

func newFakeDefault() *fakeDefault {
	return &fakeDefault{
		values: make(map[string]string),
		sets:   make(map[string]map[string]struct{}),
	}
}

func (f *fakeDefault) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = string(b)
	return nil
}

func (f *fakeDefault) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeDefault) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			n++
		}
		if _, ok := f.sets[key]; ok {
			delete(f.sets, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeDefault) SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	set, ok := f.sets[key]
	if !ok {
		set = make(map[string]struct{})
		f.sets[key] = set
	}
	for _, m := range members {
		set[fmt.Sprint(m)] = struct{}{}
	}
	return redis.NewIntResult(int64(len(members)), nil)
}

func (f *fakeDefault) SMembers(ctx context.Context, key string) *redis.StringSliceCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	members := []string{}
	for m := range f.sets[key] {
		members = append(members, m)
	}
	return redis.NewStringSliceResult(members, nil)
}

func (f *fakeDefault) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func TestSessionRepo(t *testing.T) {
	ctx := context.Background()
	def := newFakeDefault()
	repo := newSessionRepo(def)

	expire := time.Now().Add(time.Hour).UTC()
	require.NoError(t, repo.Create(ctx, SessionRecord{ID: "s1", UserID: "u1", Provider: "email", Expire: expire}))
	require.NoError(t, repo.Create(ctx, SessionRecord{ID: "s2", UserID: "u1", Provider: "email", Expire: expire}))
	require.NoError(t, repo.Create(ctx, SessionRecord{ID: "s3", UserID: "u2", Provider: "email", Expire: expire}))

	session, err := repo.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)

	require.NoError(t, repo.DeleteAll(ctx, "u1"))

	_, err = repo.Find(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Find(ctx, "s2")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Find(ctx, "s3")
	assert.NoError(t, err)
}

func TestSessionRepo_Expired(t *testing.T) {
	ctx := context.Background()
	def := newFakeDefault()
	repo := &sessionRepo{repo: def, now: time.Now}

	require.NoError(t, repo.Create(ctx, SessionRecord{ID: "old", UserID: "u1", Expire: time.Now().Add(-time.Minute)}))
	_, err := repo.Find(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Create(ctx, SessionRecord{ID: "s1", UserID: "u1", Expire: time.Now().Add(time.Minute)}))
	repo.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = repo.Find(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "session:s1", SessionKey("s1"))
	assert.Equal(t, "user-sessions:u1", UserSessionsKey("u1"))
}
