package redisrepo

import (
	"context"
	"time"
)

type sessionRepo struct {
	repo Default
	now  func() time.Time
}

func newSessionRepo(repo Default) Session {
	return &sessionRepo{
		repo: repo,
		now:  time.Now,
	}
}

// Create stores the session until it expires and indexes it under its user
// so that DeleteAll can find it.
func (r *sessionRepo) Create(ctx context.Context, session SessionRecord) error {
	ttl := session.Expire.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	if err := r.repo.SetJSON(ctx, SessionKey(session.ID), session, ttl); err != nil {
		return err
	}

	userKey := UserSessionsKey(session.UserID)
	if err := r.repo.SAdd(ctx, userKey, session.ID).Err(); err != nil {
		return err
	}

	return r.repo.Expire(ctx, userKey, ttl).Err()
}

func (r *sessionRepo) Find(ctx context.Context, sessionID string) (*SessionRecord, error) {
	session, err := Get[SessionRecord](r.repo, ctx, SessionKey(sessionID))
	if err != nil {
		return nil, err
	}
	if session == nil || r.now().After(session.Expire) {
		return nil, ErrNotFound
	}

	return session, nil
}

func (r *sessionRepo) DeleteAll(ctx context.Context, userID string) error {
	userKey := UserSessionsKey(userID)

	ids, err := r.repo.SMembers(ctx, userKey).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, SessionKey(id))
	}
	keys = append(keys, userKey)

	return r.repo.Del(ctx, keys...).Err()
}
