package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type PlayerState struct {
	Name string `json:"name"`
	Mark string `json:"mark"`
}

// State is the serialisable form of a GameController.
type State struct {
	Board   entity.Cells  `json:"board"`
	Players []PlayerState `json:"players,omitempty"`
	Mover   int           `json:"mover"`
	Status  string        `json:"status"`
}

func (that *GameController) Snapshot() State {
	players := make([]PlayerState, 0, len(that.players))
	for _, player := range that.players {
		players = append(players, PlayerState{Name: player.Name(), Mark: player.Marker()})
	}

	return State{
		Board:   that.board.Cells(),
		Players: players,
		Mover:   that.mover,
		Status:  that.status,
	}
}

// Restore - rebuilds a controller from a snapshot taken by Snapshot.
func Restore(state State) (*GameController, error) {
	if err := validateState(state); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidSnapshot, err)
	}

	board := entity.NewBoard()
	for cell, mark := range state.Board {
		if mark != entity.EmptyCell {
			board.SetMark(cell, mark)
		}
	}

	controller := NewGameController(board)
	controller.mover = state.Mover
	controller.status = state.Status

	for _, player := range state.Players {
		controller.players = append(controller.players, entity.NewPlayer(player.Name, player.Mark))
	}

	return controller, nil
}

func validateState(state State) error {
	switch state.Status {
	case entity.StatusNotStarted, entity.StatusOngoing, entity.StatusFinished:
	default:
		return fmt.Errorf("unknown status %q", state.Status)
	}

	if state.Mover != 0 && state.Mover != 1 {
		return fmt.Errorf("mover index %d", state.Mover)
	}

	if err := validatePlayers(state); err != nil {
		return err
	}

	return validateBoard(state)
}

// validatePlayers - X is always player 1 and O player 2.
func validatePlayers(state State) error {
	if len(state.Players) != 0 && len(state.Players) != 2 {
		return fmt.Errorf("%d players", len(state.Players))
	}

	if state.Status != entity.StatusNotStarted && len(state.Players) != 2 {
		return fmt.Errorf("%d players in a started game", len(state.Players))
	}

	marks := []string{entity.MarkX, entity.MarkO}
	for i, player := range state.Players {
		if player.Name == "" || player.Mark != marks[i] {
			return fmt.Errorf("player %d is malformed", i)
		}
	}

	return nil
}

// validateBoard - the board must be reachable by alternating moves from X under the given status.
func validateBoard(state State) error {
	var marksX, marksO int
	for cell, mark := range state.Board {
		switch mark {
		case entity.EmptyCell:
		case entity.MarkX:
			marksX++
		case entity.MarkO:
			marksO++
		default:
			return fmt.Errorf("cell %d holds %q", cell, mark)
		}
	}

	if marksX != marksO && marksX != marksO+1 {
		return fmt.Errorf("%d X and %d O marks", marksX, marksO)
	}

	decided := state.Board.Winner() != entity.EmptyCell || marksX+marksO == entity.BoardSize

	switch state.Status {
	case entity.StatusNotStarted:
		if marksX+marksO != 0 {
			return errors.New("marks on a game that is not started")
		}
	case entity.StatusOngoing:
		if decided {
			return errors.New("ongoing game on a decided board")
		}

		if state.Mover != marksX-marksO {
			return fmt.Errorf("mover index %d after %d X and %d O marks", state.Mover, marksX, marksO)
		}
	case entity.StatusFinished:
		if !decided {
			return errors.New("finished game on an open board")
		}

		// the winner is read from the mover, a win does not pass the turn
		if winner := state.Board.Winner(); winner != entity.EmptyCell && state.Players[state.Mover].Mark != winner {
			return fmt.Errorf("mover index %d did not win", state.Mover)
		}
	}

	return nil
}
