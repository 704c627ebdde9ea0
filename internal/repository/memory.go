package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type memorySession struct {
	state     tictactoe.State
	expiresAt time.Time
}

type memSession struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionRepository - process local store, same expiry rules as the redis one.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memSession{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (that *memSession) CreateOrUpdate(_ context.Context, id string, state tictactoe.State) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		that.evictExpired()
	}

	session := memorySession{state: state}
	if that.ttl > 0 {
		session.expiresAt = that.now().Add(that.ttl)
	}

	that.sessions[id] = session

	return nil
}

func (that *memSession) GetByID(_ context.Context, id string) (tictactoe.State, error) {
	that.mu.RLock()
	session, ok := that.sessions[id]
	that.mu.RUnlock()

	if !ok {
		return tictactoe.State{}, apperror.ErrSessionNotFound
	}

	if that.expired(session) {
		that.mu.Lock()
		// the session may have been saved again in between
		if current, ok := that.sessions[id]; ok && that.expired(current) {
			delete(that.sessions, id)
		}
		that.mu.Unlock()

		return tictactoe.State{}, apperror.ErrSessionNotFound
	}

	return session.state, nil
}

func (that *memSession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[id]
	if !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	if that.expired(session) {
		return apperror.ErrSessionNotFound
	}

	return nil
}

// evictExpired - drops every expired session. Callers hold the write lock.
func (that *memSession) evictExpired() {
	for id, session := range that.sessions {
		if that.expired(session) {
			delete(that.sessions, id)
		}
	}
}

func (that *memSession) expired(session memorySession) bool {
	return !session.expiresAt.IsZero() && !that.now().Before(session.expiresAt)
}
