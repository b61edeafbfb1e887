package apperror

import "errors"

var (
	ErrGameFinished       = errors.New("game is already finished")
	ErrInvalidCell        = errors.New("invalid cell index")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrEvaluationNotFound = errors.New("evaluation not found")
)
