package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/presenter"
)

const (
	actionConnect = "connect"
	actionStart   = "game:start"
	actionMove    = "game:move"
	actionRestart = "game:restart"
	actionEnd     = "session:end"
	actionError   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	SessionID string `json:"session_id,omitempty"`
	Player1   string `json:"player1,omitempty"`
	Player2   string `json:"player2,omitempty"`
	Cell      *int   `json:"cell,omitempty"`
}

type PlayerPayload struct {
	Name string `json:"name"`
	Mark string `json:"mark"`
}

type ResponsePayload struct {
	SessionID string            `json:"session_id,omitempty"`
	Board     *entity.Cells     `json:"board,omitempty"`
	Status    string            `json:"status,omitempty"`
	Turn      string            `json:"turn,omitempty"`
	Players   []PlayerPayload   `json:"players,omitempty"`
	Notice    *presenter.Notice `json:"notice,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// responseRenderer collects what the presenter draws during one request.
type responseRenderer struct {
	view    *presenter.View
	notices []presenter.Notice
}

func (that *responseRenderer) Render(view presenter.View) {
	that.view = &view
}

func (that *responseRenderer) Notify(notice presenter.Notice) {
	that.notices = append(that.notices, notice)
}

func (that *responseRenderer) payload(sessionID string) ResponsePayload {
	payload := ResponsePayload{SessionID: sessionID}

	if that.view != nil {
		board := that.view.Board
		payload.Board = &board
		payload.Status = that.view.Status
		payload.Turn = that.view.Turn

		for _, player := range that.view.Players {
			payload.Players = append(payload.Players, PlayerPayload{Name: player.Name(), Mark: player.Marker()})
		}
	}

	if len(that.notices) > 0 {
		notice := that.notices[len(that.notices)-1]
		payload.Notice = &notice
	}

	return payload
}
