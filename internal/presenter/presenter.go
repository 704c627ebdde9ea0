// Package presenter connects a front-end to the game controller: every user event
// goes into the controller and the resulting board is rendered again.
package presenter

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type NoticeKind string

const (
	NoticeWin                NoticeKind = "win"
	NoticeTie                NoticeKind = "tie"
	NoticeInvalidPlayerNames NoticeKind = "invalid-player-names"
)

// Notice is a blocking message for the users, like the browser alert of the web version.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// View is everything a front-end needs to draw the game.
type View struct {
	Board   entity.Cells    `json:"board"`
	Status  string          `json:"status"`
	Players []entity.Player `json:"-"`
	// Turn is the marker of the mover, empty when no game is in progress.
	Turn string `json:"turn,omitempty"`
}

// Renderer is implemented by each front-end.
type Renderer interface {
	Render(view View)
	Notify(notice Notice)
}

type gameController interface {
	StartGame(firstName, secondName string) error
	PlayMove(cell int) entity.Outcome
	ResetBoard()

	Board() entity.Cells
	Status() string
	Players() []entity.Player
	CurrentPlayer() (entity.Player, bool)
}

type Presenter struct {
	logger   *slog.Logger
	game     gameController
	renderer Renderer
}

func New(logger *slog.Logger, game gameController, renderer Renderer) *Presenter {
	return &Presenter{
		logger:   logger.With("component", "presenter"),
		game:     game,
		renderer: renderer,
	}
}

// Show - draws the current state without changing it.
func (that *Presenter) Show() {
	that.renderer.Render(that.View())
}

func (that *Presenter) View() View {
	view := View{
		Board:   that.game.Board(),
		Status:  that.game.Status(),
		Players: that.game.Players(),
	}

	if mover, ok := that.game.CurrentPlayer(); ok {
		view.Turn = mover.Marker()
	}

	return view
}

func (that *Presenter) OnStartClicked(firstName, secondName string) {
	log := that.logger.With("method", "OnStartClicked")

	if err := that.game.StartGame(firstName, secondName); err != nil {
		if errors.Is(err, apperror.ErrInvalidPlayerNames) {
			that.renderer.Notify(Notice{Kind: NoticeInvalidPlayerNames, Message: "Both players need to enter their names."})
			return
		}

		log.Error("failed to start game", "error", err)
		return
	}

	log.Info(fmt.Sprintf("%s is player 1 and %s is player 2", firstName, secondName))

	that.Show()
}

func (that *Presenter) OnCellSelected(cell int) {
	log := that.logger.With("method", "OnCellSelected")

	outcome := that.game.PlayMove(cell)
	if outcome.Kind == entity.OutcomeNoOp {
		log.Debug("move ignored", "cell", cell, "reason", outcome.Reason)
	}

	that.Show()

	switch outcome.Kind {
	case entity.OutcomeWin:
		that.renderer.Notify(Notice{Kind: NoticeWin, Message: outcome.Winner.Name() + " wins!"})
	case entity.OutcomeTie:
		that.renderer.Notify(Notice{Kind: NoticeTie, Message: "It's a tie!"})
	}
}

func (that *Presenter) OnRestartClicked() {
	that.game.ResetBoard()
	that.Show()
}
