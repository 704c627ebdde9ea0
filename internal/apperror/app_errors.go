package apperror

import "errors"

var (
	ErrInvalidPlayerNames = errors.New("both players need to enter their names")
	ErrGameFinished       = errors.New("game is already finished")
	ErrGameIsNotStarted   = errors.New("game is not started")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrCellOutOfRange     = errors.New("cell index is out of range")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidSnapshot    = errors.New("invalid game snapshot")
)
