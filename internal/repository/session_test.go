package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/ui"
	"github.com/rocketscienceinc/tictactoe-history/testing/suite"
)

func newTestSession() *entity.Session {
	session := entity.NewSession()
	session.Revision = 3
	session.State = ui.Snapshot{
		"history":      json.RawMessage(`[["","","","","","","","",""],["","","","","X","","","",""]]`),
		"current_move": json.RawMessage(`1`),
	}

	return session
}

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, time.Hour)

	// Given: a session with some state
	session := newTestSession()

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, session)

	// Then: no error should be returned and the key expires
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "session:"+session.ID).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// Given: a stored session
		session := newTestSession()
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: GetByID is called with its ID
		retrieved, err := sessionRepo.GetByID(ctx, session.ID)

		// Then: revision and state round trip
		require.NoError(t, err)
		assert.Equal(t, session.ID, retrieved.ID)
		assert.Equal(t, session.Revision, retrieved.Revision)
		assert.JSONEq(t, string(session.State["history"]), string(retrieved.State["history"]))
		assert.JSONEq(t, string(session.State["current_move"]), string(retrieved.State["current_move"]))
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// When: GetByID is called with an unknown ID
		retrieved, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: ErrSessionNotFound is returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestSessionRepository_UpdateIfRevision(t *testing.T) {
	t.Run("UpdateIfRevision_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// Given: a session stored at revision 3
		session := newTestSession()
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: revision 4 is saved against revision 3
		session.Revision = 4
		err := sessionRepo.UpdateIfRevision(ctx, session, 3)

		// Then: the store holds revision 4
		require.NoError(t, err)

		retrieved, err := sessionRepo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), retrieved.Revision)
	})

	t.Run("UpdateIfRevision_Conflict", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// Given: a session that already moved past revision 3
		session := newTestSession()
		session.Revision = 4
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: a writer that loaded revision 3 saves
		stale := newTestSession()
		stale.ID = session.ID
		stale.Revision = 4
		err := sessionRepo.UpdateIfRevision(ctx, stale, 3)

		// Then: the write is rejected
		require.ErrorIs(t, err, apperror.ErrRevisionConflict)
	})

	t.Run("UpdateIfRevision_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		err := sessionRepo.UpdateIfRevision(ctx, newTestSession(), 3)

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// Given: a stored session
		session := newTestSession()
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: DeleteByID is called
		err := sessionRepo.DeleteByID(ctx, session.ID)

		// Then: the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, session.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// When: DeleteByID is called with an unknown ID
		err := sessionRepo.DeleteByID(ctx, "9999999")

		// Then: ErrSessionNotFound is returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
