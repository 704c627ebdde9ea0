package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

type client struct {
	t      *testing.T
	socket *websocket.Conn
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	sessions := usecase.NewSessionManager(logger, repository.NewMemorySessionRepository(time.Hour))

	server := httptest.NewServer(New(logger, sessions))
	t.Cleanup(server.Close)

	return server
}

func dial(t *testing.T, server *httptest.Server) *client {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	socket, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	t.Cleanup(func() {
		_ = socket.Close()
	})

	return &client{t: t, socket: socket}
}

func (that *client) send(action string, payload any) ResponsePayload {
	that.t.Helper()

	payloadJSON, err := json.Marshal(payload)
	require.NoError(that.t, err)
	require.NoError(that.t, that.socket.WriteJSON(Message{Action: action, Payload: payloadJSON}))

	var message Message
	require.NoError(that.t, that.socket.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(that.t, that.socket.ReadJSON(&message))
	assert.Equal(that.t, action, message.Action)

	var response ResponsePayload
	require.NoError(that.t, json.Unmarshal(message.Payload, &response))

	return response
}

func (that *client) move(cell int) ResponsePayload {
	that.t.Helper()

	return that.send(actionMove, RequestPayload{Cell: &cell})
}

func TestServer_Game(t *testing.T) {
	t.Run("Plays a full game over the socket", func(t *testing.T) {
		// Given: a connected client
		c := dial(t, newTestServer(t))
		connected := c.send(actionConnect, RequestPayload{})
		require.NotEmpty(t, connected.SessionID)
		assert.Equal(t, entity.StatusNotStarted, connected.Status)

		// When: a game is started
		started := c.send(actionStart, RequestPayload{Player1: "Alice", Player2: "Bob"})

		// Then: X is to move on an empty board
		require.NotNil(t, started.Board)
		assert.Equal(t, entity.Cells{}, *started.Board)
		assert.Equal(t, entity.MarkX, started.Turn)
		assert.Equal(t, []PlayerPayload{{Name: "Alice", Mark: entity.MarkX}, {Name: "Bob", Mark: entity.MarkO}}, started.Players)

		// When: X completes the top row
		var last ResponsePayload
		for _, cell := range []int{0, 3, 1, 4, 2} {
			last = c.move(cell)
		}

		// Then: Alice wins
		assert.Equal(t, entity.StatusFinished, last.Status)
		require.NotNil(t, last.Notice)
		assert.Equal(t, presenter.Notice{Kind: presenter.NoticeWin, Message: "Alice wins!"}, *last.Notice)
	})

	t.Run("Reports missing names", func(t *testing.T) {
		c := dial(t, newTestServer(t))
		c.send(actionConnect, RequestPayload{})

		response := c.send(actionStart, RequestPayload{Player1: "Alice"})

		require.NotNil(t, response.Notice)
		assert.Equal(t, presenter.NoticeInvalidPlayerNames, response.Notice.Kind)
		assert.Nil(t, response.Board)
	})

	t.Run("Restart clears the board", func(t *testing.T) {
		c := dial(t, newTestServer(t))
		c.send(actionConnect, RequestPayload{})
		c.send(actionStart, RequestPayload{Player1: "Alice", Player2: "Bob"})
		c.move(4)

		response := c.send(actionRestart, RequestPayload{})

		require.NotNil(t, response.Board)
		assert.Equal(t, entity.Cells{}, *response.Board)
		assert.Equal(t, entity.StatusNotStarted, response.Status)
	})

	t.Run("Reconnecting resumes the session", func(t *testing.T) {
		// Given: a game in progress on one connection
		server := newTestServer(t)
		first := dial(t, server)
		sessionID := first.send(actionConnect, RequestPayload{}).SessionID
		first.send(actionStart, RequestPayload{Player1: "Alice", Player2: "Bob"})
		first.move(8)

		// When: a second connection presents the same session id
		second := dial(t, server)
		resumed := second.send(actionConnect, RequestPayload{SessionID: sessionID})

		// Then: it sees the same board
		assert.Equal(t, sessionID, resumed.SessionID)
		require.NotNil(t, resumed.Board)
		assert.Equal(t, entity.MarkX, resumed.Board[8])
		assert.Equal(t, entity.MarkO, resumed.Turn)
	})

	t.Run("Ending a session forgets it", func(t *testing.T) {
		// Given: a connected client
		server := newTestServer(t)
		c := dial(t, server)
		sessionID := c.send(actionConnect, RequestPayload{}).SessionID

		// When: the session is ended
		ended := c.send(actionEnd, RequestPayload{})

		// Then: the connection has to connect again and gets a fresh session
		assert.Empty(t, ended.Error)
		assert.Equal(t, ErrNotConnected.Error(), c.move(0).Error)

		again := c.send(actionConnect, RequestPayload{SessionID: sessionID})
		assert.NotEmpty(t, again.SessionID)
		assert.NotEqual(t, sessionID, again.SessionID)
	})
}

func TestServer_Errors(t *testing.T) {
	t.Run("Actions before connect", func(t *testing.T) {
		c := dial(t, newTestServer(t))

		response := c.move(0)

		assert.Equal(t, ErrNotConnected.Error(), response.Error)
	})

	t.Run("Move without a cell", func(t *testing.T) {
		c := dial(t, newTestServer(t))
		c.send(actionConnect, RequestPayload{})

		response := c.send(actionMove, RequestPayload{})

		assert.Equal(t, ErrCellRequired.Error(), response.Error)
	})

	t.Run("Mistyped message keeps the connection open", func(t *testing.T) {
		// Given: a connected client
		c := dial(t, newTestServer(t))
		c.send(actionConnect, RequestPayload{})

		// When: a message with a numeric action is sent
		require.NoError(t, c.socket.WriteMessage(websocket.TextMessage, []byte(`{"action":5}`)))

		// Then: an error comes back
		var message Message
		require.NoError(t, c.socket.SetReadDeadline(time.Now().Add(5*time.Second)))
		require.NoError(t, c.socket.ReadJSON(&message))
		assert.Equal(t, actionError, message.Action)

		var response ResponsePayload
		require.NoError(t, json.Unmarshal(message.Payload, &response))
		assert.Equal(t, "malformed message", response.Error)

		// And: the connection still serves the game
		restarted := c.send(actionRestart, RequestPayload{})
		assert.Empty(t, restarted.Error)
		require.NotNil(t, restarted.Board)
	})

	t.Run("Unknown action", func(t *testing.T) {
		c := dial(t, newTestServer(t))

		response := c.send("game:undo", RequestPayload{})

		assert.Equal(t, "unknown action", response.Error)
	})
}
