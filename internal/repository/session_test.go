package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-hotseat/testing/suite"
)

func ongoingState() tictactoe.State {
	return tictactoe.State{
		Board: entity.Cells{entity.MarkX, "", "", "", entity.MarkO, "", "", "", ""},
		Players: []tictactoe.PlayerState{
			{Name: "Alice", Mark: entity.MarkX},
			{Name: "Bob", Mark: entity.MarkO},
		},
		Mover:  0,
		Status: entity.StatusOngoing,
	}
}

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, time.Hour)

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, "123", ongoingState())

	// Then: no error should be returned and the key expires
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "session:123").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// Given: a stored session
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, "123", ongoingState()))

		// When: GetByID is called with the existing ID
		state, err := sessionRepo.GetByID(ctx, "123")

		// Then: the retrieved state should match the saved one
		require.NoError(t, err)
		assert.Equal(t, ongoingState(), state)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// When: GetByID is called with a non-existent ID
		_, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: ErrSessionNotFound should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, "123", ongoingState()))

		// When: DeleteByID is called with the existing ID
		err := sessionRepo.DeleteByID(ctx, "123")

		// Then: the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		err := sessionRepo.DeleteByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
