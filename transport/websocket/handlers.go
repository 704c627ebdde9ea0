package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

var (
	ErrNotConnected = errors.New("connect first")
	ErrCellRequired = errors.New("cell is required")
)

func (that *Server) handleConnect(ctx context.Context, conn *connection, request RequestPayload) (ResponsePayload, error) {
	sessionID, err := that.sessions.GetOrCreateSession(ctx, request.SessionID)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to open session: %w", err)
	}

	conn.sessionID = sessionID

	return that.present(ctx, conn, func(game *presenter.Presenter) {
		game.Show()
	})
}

func (that *Server) handleStart(ctx context.Context, conn *connection, request RequestPayload) (ResponsePayload, error) {
	return that.present(ctx, conn, func(game *presenter.Presenter) {
		game.OnStartClicked(request.Player1, request.Player2)
	})
}

func (that *Server) handleMove(ctx context.Context, conn *connection, request RequestPayload) (ResponsePayload, error) {
	if request.Cell == nil {
		return ResponsePayload{}, ErrCellRequired
	}

	return that.present(ctx, conn, func(game *presenter.Presenter) {
		game.OnCellSelected(*request.Cell)
	})
}

func (that *Server) handleRestart(ctx context.Context, conn *connection, _ RequestPayload) (ResponsePayload, error) {
	return that.present(ctx, conn, func(game *presenter.Presenter) {
		game.OnRestartClicked()
	})
}

// handleEnd - drops the session, the client has to connect again to play.
func (that *Server) handleEnd(ctx context.Context, conn *connection, _ RequestPayload) (ResponsePayload, error) {
	if conn.sessionID == "" {
		return ResponsePayload{}, ErrNotConnected
	}

	if err := that.sessions.EndSession(ctx, conn.sessionID); err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to end session %s: %w", conn.sessionID, err)
	}

	conn.sessionID = ""

	return ResponsePayload{}, nil
}

// present - runs one user event against the connection's session and collects what gets drawn.
func (that *Server) present(ctx context.Context, conn *connection, event func(game *presenter.Presenter)) (ResponsePayload, error) {
	if conn.sessionID == "" {
		return ResponsePayload{}, ErrNotConnected
	}

	renderer := &responseRenderer{}

	err := that.sessions.WithSession(ctx, conn.sessionID, func(game *tictactoe.GameController) error {
		event(presenter.New(that.logger, game, renderer))
		return nil
	})
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to update session %s: %w", conn.sessionID, err)
	}

	return renderer.payload(conn.sessionID), nil
}
