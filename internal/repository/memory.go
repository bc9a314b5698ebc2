package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type memorySession struct {
	data      []byte
	revision  int64
	expiresAt time.Time
}

type memSession struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionRepository - keeps sessions in process memory with the same expiry rules as redis.
// Values are stored encoded so callers never share a snapshot with the store.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memSession{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (that *memSession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	now := that.now()
	session.UpdatedAt = now.UTC()

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.evictExpired(now)
	that.sessions[session.ID] = memorySession{data: sessionJSON, revision: session.Revision, expiresAt: that.expiry(now)}

	return nil
}

func (that *memSession) UpdateIfRevision(_ context.Context, session *entity.Session, revision int64) error {
	now := that.now()

	that.mu.Lock()
	defer that.mu.Unlock()

	stored, ok := that.sessions[session.ID]
	if !ok || that.isExpired(stored, now) {
		return apperror.ErrSessionNotFound
	}

	if stored.revision != revision {
		return apperror.ErrRevisionConflict
	}

	session.UpdatedAt = now.UTC()

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	that.sessions[session.ID] = memorySession{data: sessionJSON, revision: session.Revision, expiresAt: that.expiry(now)}

	return nil
}

func (that *memSession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	stored, ok := that.sessions[id]
	if ok && that.isExpired(stored, that.now()) {
		delete(that.sessions, id)
		ok = false
	}
	that.mu.Unlock()

	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	var existingSession entity.Session
	if err := json.Unmarshal(stored.data, &existingSession); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &existingSession, nil
}

func (that *memSession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored, ok := that.sessions[id]
	delete(that.sessions, id)

	if !ok || that.isExpired(stored, that.now()) {
		return apperror.ErrSessionNotFound
	}

	return nil
}

func (that *memSession) expiry(now time.Time) time.Time {
	if that.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(that.ttl)
}

func (that *memSession) isExpired(stored memorySession, now time.Time) bool {
	return !stored.expiresAt.IsZero() && !now.Before(stored.expiresAt)
}

// evictExpired must be called with mu held.
func (that *memSession) evictExpired(now time.Time) {
	for id, stored := range that.sessions {
		if that.isExpired(stored, now) {
			delete(that.sessions, id)
		}
	}
}
