package memory

import (
	"context"
	"time"

	"shopchat-be/pkg/cache"
	"shopchat-be/pkg/store"
)

// Session inactivity TTL. A session untouched for this long expires and the
// next message starts a fresh one.
const sessionTTL = 1 * time.Hour

// SessionRepository keeps chat session state in the cache store, refreshing
// the TTL on every save.
type SessionRepository struct {
	store cache.Store
}

func NewSessionRepository(store cache.Store) *SessionRepository {
	return &SessionRepository{
		store: store,
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	return r.store.Set(ctx, sessionKey(session.ID), session, sessionTTL)
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, bool) {
	var session store.Session
	found, err := r.store.Get(ctx, sessionKey(sessionID), &session)
	if err != nil || !found {
		return nil, false
	}
	return &session, true
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.store.Delete(ctx, sessionKey(sessionID))
}

func sessionKey(id string) string {
	return "session:" + id
}
