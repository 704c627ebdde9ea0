package tictactoe

import (
	"golang.org/x/text/unicode/norm"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// GameController owns one hot-seat session: the board, both players and whose turn it is.
// It is not safe for concurrent use.
type GameController struct {
	board   *entity.Board
	players []entity.Player
	mover   int
	status  string
}

func NewGameController(board *entity.Board) *GameController {
	if board == nil {
		board = entity.NewBoard()
	}

	return &GameController{
		board:  board,
		status: entity.StatusNotStarted,
	}
}

// StartGame - defines both players, X moves first. The board is cleared.
func (that *GameController) StartGame(firstName, secondName string) error {
	firstName = norm.NFC.String(firstName)
	secondName = norm.NFC.String(secondName)

	if firstName == "" || secondName == "" {
		return apperror.ErrInvalidPlayerNames
	}

	that.players = []entity.Player{
		entity.NewPlayer(firstName, entity.MarkX),
		entity.NewPlayer(secondName, entity.MarkO),
	}
	that.mover = 0
	that.status = entity.StatusOngoing
	that.board.Reset()

	return nil
}

// PlayMove - puts the mover's marker on the cell and evaluates the board.
func (that *GameController) PlayMove(cell int) entity.Outcome {
	switch that.status {
	case entity.StatusNotStarted:
		return entity.NoOp(apperror.ErrGameIsNotStarted)
	case entity.StatusFinished:
		return entity.NoOp(apperror.ErrGameFinished)
	}

	mover := that.players[that.mover]

	if err := that.board.TrySetMark(cell, mover.Marker()); err != nil {
		return entity.NoOp(err)
	}

	if that.board.Winner() != entity.EmptyCell {
		that.status = entity.StatusFinished
		return entity.Win(mover)
	}

	if that.board.IsFull() {
		that.status = entity.StatusFinished
		return entity.Tie()
	}

	that.mover = 1 - that.mover

	return entity.Continue()
}

// ResetBoard - clears the grid and waits for a new StartGame.
// Players are kept so a front-end can offer the same names again.
func (that *GameController) ResetBoard() {
	that.board.Reset()
	that.mover = 0
	that.status = entity.StatusNotStarted
}

func (that *GameController) Board() entity.Cells {
	return that.board.Cells()
}

func (that *GameController) Status() string {
	return that.status
}

func (that *GameController) Players() []entity.Player {
	players := make([]entity.Player, len(that.players))
	copy(players, that.players)

	return players
}

// CurrentPlayer - returns the mover, false when no game is in progress.
func (that *GameController) CurrentPlayer() (entity.Player, bool) {
	if that.status != entity.StatusOngoing {
		return entity.Player{}, false
	}

	return that.players[that.mover], true
}

// Winner - returns the winning player of a finished game, false on a tie or an unfinished game.
func (that *GameController) Winner() (entity.Player, bool) {
	if that.status != entity.StatusFinished || that.board.Winner() == entity.EmptyCell {
		return entity.Player{}, false
	}

	// a winning move doesn't toggle the mover
	return that.players[that.mover], true
}
