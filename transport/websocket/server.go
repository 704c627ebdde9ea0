package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const (
	writeTimeout   = 10 * time.Second
	maxMessageSize = 4096
)

type sessionManager interface {
	GetOrCreateSession(ctx context.Context, id string) (string, error)
	WithSession(ctx context.Context, id string, fn func(game *tictactoe.GameController) error) error
	EndSession(ctx context.Context, id string) error
}

// connection is one browser tab. sessionID is set by the connect action.
type connection struct {
	socket    *websocket.Conn
	sessionID string
}

type handlerFunc func(ctx context.Context, conn *connection, request RequestPayload) (ResponsePayload, error)

type Server struct {
	logger   *slog.Logger
	sessions sessionManager
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, sessions sessionManager) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionStart] = server.handleStart
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionRestart] = server.handleRestart
	server.handlers[actionEnd] = server.handleEnd

	return server
}

// ServeHTTP - upgrades the request and serves messages until the client leaves.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	socket, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		// the upgrader has already answered the client
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer socket.Close()

	socket.SetReadLimit(maxMessageSize)

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	if err = that.handleMessages(req.Context(), &connection{socket: socket}); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := conn.socket.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("client left", "sessionID", conn.sessionID)
				return nil
			}

			var (
				syntaxErr *json.SyntaxError
				typeErr   *json.UnmarshalTypeError
			)
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				if err = that.sendError(conn, actionError, "malformed message"); err != nil {
					return err
				}
				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err := that.sendError(conn, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		var request RequestPayload
		if len(message.Payload) > 0 {
			if err := json.Unmarshal(message.Payload, &request); err != nil {
				if err = that.sendError(conn, message.Action, "malformed payload"); err != nil {
					return err
				}
				continue
			}
		}

		response, err := handler(ctx, conn, request)
		if err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			if err = that.sendError(conn, message.Action, err.Error()); err != nil {
				return err
			}
			continue
		}

		if err = that.sendMessage(conn, message.Action, response); err != nil {
			return err
		}
	}
}

func (that *Server) sendMessage(conn *connection, action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.socket.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.socket.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *connection, action, errorMsg string) error {
	payload := ResponsePayload{SessionID: conn.sessionID, Error: errorMsg}
	if err := that.sendMessage(conn, action, payload); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
