package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newMemoryRepo(ttl time.Duration) (*memSession, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}

	repo := NewMemorySessionRepository(ttl).(*memSession)
	repo.now = clock.Now

	return repo, clock
}

func TestMemorySessionRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMemoryRepo(time.Hour)

	// Given: a stored session
	session := newTestSession()
	require.NoError(t, repo.CreateOrUpdate(ctx, session))

	// When: it is read back
	retrieved, err := repo.GetByID(ctx, session.ID)

	// Then: the contents match
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.Revision, retrieved.Revision)
	assert.JSONEq(t, string(session.State["history"]), string(retrieved.State["history"]))
}

func TestMemorySessionRepository_NoAliasing(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMemoryRepo(time.Hour)

	// Given: a stored session
	session := newTestSession()
	require.NoError(t, repo.CreateOrUpdate(ctx, session))

	// When: the caller mutates its copy
	session.State["current_move"] = json.RawMessage(`0`)

	// Then: the stored value is unchanged
	retrieved, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`1`), retrieved.State["current_move"])
}

func TestMemorySessionRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	repo, clock := newMemoryRepo(time.Minute)

	// Given: a stored session
	session := newTestSession()
	require.NoError(t, repo.CreateOrUpdate(ctx, session))

	// When: the ttl passes
	clock.now = clock.now.Add(time.Minute)

	// Then: the session is gone
	_, err := repo.GetByID(ctx, session.ID)
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	assert.Empty(t, repo.sessions)
}

func TestMemorySessionRepository_UpdateExtendsExpiry(t *testing.T) {
	ctx := context.Background()
	repo, clock := newMemoryRepo(time.Minute)

	session := newTestSession()
	require.NoError(t, repo.CreateOrUpdate(ctx, session))

	clock.now = clock.now.Add(50 * time.Second)
	require.NoError(t, repo.CreateOrUpdate(ctx, session))

	clock.now = clock.now.Add(50 * time.Second)
	_, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
}

func TestMemorySessionRepository_NoTTL(t *testing.T) {
	ctx := context.Background()
	repo, clock := newMemoryRepo(0)

	session := newTestSession()
	require.NoError(t, repo.CreateOrUpdate(ctx, session))

	clock.now = clock.now.Add(24 * 365 * time.Hour)
	_, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
}

func TestMemorySessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx := context.Background()
		repo, _ := newMemoryRepo(time.Hour)

		session := newTestSession()
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		require.NoError(t, repo.DeleteByID(ctx, session.ID))

		_, err := repo.GetByID(ctx, session.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		repo, _ := newMemoryRepo(time.Hour)

		err := repo.DeleteByID(context.Background(), "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestMemorySessionRepository_UpdateIfRevision(t *testing.T) {
	ctx := context.Background()

	t.Run("Matching revision is saved", func(t *testing.T) {
		// Given: a session stored at revision 3
		repo, _ := newMemoryRepo(time.Hour)
		session := newTestSession()
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		// When: the next revision is saved against revision 3
		session.Revision = 4
		err := repo.UpdateIfRevision(ctx, session, 3)

		// Then: the store holds revision 4
		require.NoError(t, err)
		retrieved, err := repo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), retrieved.Revision)
	})

	t.Run("Second writer of the same revision conflicts", func(t *testing.T) {
		// Given: two copies of a session loaded at revision 3
		repo, _ := newMemoryRepo(time.Hour)
		session := newTestSession()
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		first, err := repo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		second, err := repo.GetByID(ctx, session.ID)
		require.NoError(t, err)

		// When: both save revision 4
		first.Revision = 4
		first.State["current_move"] = json.RawMessage(`0`)
		second.Revision = 4

		require.NoError(t, repo.UpdateIfRevision(ctx, first, 3))
		err = repo.UpdateIfRevision(ctx, second, 3)

		// Then: the second write is rejected and the first survives
		require.ErrorIs(t, err, apperror.ErrRevisionConflict)
		retrieved, err := repo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, json.RawMessage(`0`), retrieved.State["current_move"])
	})

	t.Run("Expired session is not found", func(t *testing.T) {
		repo, clock := newMemoryRepo(time.Minute)
		session := newTestSession()
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		clock.now = clock.now.Add(time.Minute)

		err := repo.UpdateIfRevision(ctx, session, 3)

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
