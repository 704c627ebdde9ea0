package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, id string, state tictactoe.State) error
	GetByID(ctx context.Context, id string) (tictactoe.State, error)
	DeleteByID(ctx context.Context, id string) error
}

// SessionManager keeps one game controller per browser session in the session store.
type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	locks       *keyedMutex
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo) *SessionManager {
	return &SessionManager{
		logger:      logger.With("component", "session_manager"),
		sessionRepo: sessionRepo,
		locks:       newKeyedMutex(),
	}
}

// GetOrCreateSession - returns the id of a live session, creating a new one when
// the id is empty, malformed or expired.
func (that *SessionManager) GetOrCreateSession(ctx context.Context, id string) (string, error) {
	log := that.logger.With("method", "GetOrCreateSession")

	if pkg.IsSessionID(id) {
		_, err := that.sessionRepo.GetByID(ctx, id)
		if err == nil {
			return id, nil
		}

		if !errors.Is(err, apperror.ErrSessionNotFound) {
			return "", fmt.Errorf("failed to get session: %w", err)
		}

		log.Info("session expired, creating a new one", "sessionID", id)
	}

	newID := pkg.GenerateNewSessionID()

	if err := that.sessionRepo.CreateOrUpdate(ctx, newID, tictactoe.NewGameController(nil).Snapshot()); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	log.Info("session created", "sessionID", newID)

	return newID, nil
}

// WithSession - loads the session's controller, runs fn on it and stores the result.
// Calls for the same session never overlap. Nothing is stored when fn fails.
func (that *SessionManager) WithSession(ctx context.Context, id string, fn func(game *tictactoe.GameController) error) error {
	unlock := that.locks.Lock(id)
	defer unlock()

	state, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	game, err := tictactoe.Restore(state)
	if err != nil {
		return fmt.Errorf("failed to restore session %s: %w", id, err)
	}

	if err = fn(game); err != nil {
		return err
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, id, game.Snapshot()); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

func (that *SessionManager) EndSession(ctx context.Context, id string) error {
	unlock := that.locks.Lock(id)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session ended", "sessionID", id)

	return nil
}
