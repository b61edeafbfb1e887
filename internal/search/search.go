package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/neelrr1/TicTacToeMinimax/internal/apperror"
	"github.com/neelrr1/TicTacToeMinimax/internal/entity"
)

// NoMove is the move of a result computed on a terminal position.
const NoMove = -1

var ErrNoLegalMove = errors.New("no legal move in a non-terminal position")

// Depth limits how many plies a search looks ahead.
type Depth struct {
	plies   int
	bounded bool
}

// Unbounded searches until the game is over.
func Unbounded() Depth {
	return Depth{}
}

// Plies limits the search to n plies. Plies(0) evaluates the position as is
// and a negative n means Unbounded.
func Plies(n int) Depth {
	if n < 0 {
		return Unbounded()
	}
	return Depth{plies: n, bounded: true}
}

func (that Depth) exhausted() bool {
	return that.bounded && that.plies == 0
}

func (that Depth) next() Depth {
	if that.bounded {
		that.plies--
	}
	return that
}

func (that Depth) String() string {
	if !that.bounded {
		return "unbounded"
	}
	return fmt.Sprintf("%d", that.plies)
}

// Result is the score of a position (+1 X wins, -1 O wins, 0 draw) and the
// first move that achieves it. Nodes counts the positions visited.
type Result struct {
	Score int
	Move  int
	Nodes int
}

func (that Result) HasMove() bool {
	return that.Move != NoMove
}

// Minimax searches every line below state.
func Minimax(state entity.GameState, depth Depth) (Result, error) {
	var nodes int

	result, err := minimax(state, depth, &nodes)
	result.Nodes = nodes

	return result, err
}

// AlphaBeta returns the same score and move as Minimax but skips lines that
// cannot change the result.
func AlphaBeta(state entity.GameState, depth Depth) (Result, error) {
	var nodes int

	result, err := alphaBeta(state, depth, math.MinInt, math.MaxInt, &nodes)
	result.Nodes = nodes

	return result, err
}

// BestMove returns the optimal move for the player to move.
func BestMove(state entity.GameState) (int, error) {
	if state.IsOver() {
		return NoMove, apperror.ErrGameFinished
	}

	result, err := AlphaBeta(state, Unbounded())
	if err != nil {
		return NoMove, err
	}

	return result.Move, nil
}

// evaluate scores a leaf from X's point of view.
func evaluate(state entity.GameState) int {
	piece, ok := state.Winner().Winner()
	switch {
	case !ok:
		return 0
	case piece == entity.PlayerX:
		return 1
	default:
		return -1
	}
}

func minimax(state entity.GameState, depth Depth, nodes *int) (Result, error) {
	*nodes++

	if depth.exhausted() || state.IsOver() {
		return Result{Score: evaluate(state), Move: NoMove}, nil
	}

	maximizing := state.Turn() == entity.PlayerX
	best := Result{Score: worstScore(maximizing), Move: NoMove}

	for _, move := range state.ValidMoves() {
		child, err := minimax(state.ApplyMove(move), depth.next(), nodes)
		if err != nil {
			return Result{}, err
		}

		if improves(maximizing, child.Score, best.Score) {
			best.Score = child.Score
			best.Move = move
		}
	}

	if !best.HasMove() {
		return Result{Move: NoMove}, fmt.Errorf("%w: %s", ErrNoLegalMove, state.Key())
	}

	return best, nil
}

func alphaBeta(state entity.GameState, depth Depth, alpha, beta int, nodes *int) (Result, error) {
	*nodes++

	if depth.exhausted() || state.IsOver() {
		return Result{Score: evaluate(state), Move: NoMove}, nil
	}

	maximizing := state.Turn() == entity.PlayerX
	best := Result{Score: worstScore(maximizing), Move: NoMove}

	for _, move := range state.ValidMoves() {
		child, err := alphaBeta(state.ApplyMove(move), depth.next(), alpha, beta, nodes)
		if err != nil {
			return Result{}, err
		}

		if improves(maximizing, child.Score, best.Score) {
			best.Score = child.Score
			best.Move = move
		}

		if maximizing {
			alpha = max(alpha, child.Score)
		} else {
			beta = min(beta, child.Score)
		}

		if beta <= alpha {
			break
		}
	}

	if !best.HasMove() {
		return Result{Move: NoMove}, fmt.Errorf("%w: %s", ErrNoLegalMove, state.Key())
	}

	return best, nil
}

func worstScore(maximizing bool) int {
	if maximizing {
		return math.MinInt
	}
	return math.MaxInt
}

// improves keeps the first move on ties.
func improves(maximizing bool, score, best int) bool {
	if maximizing {
		return score > best
	}
	return score < best
}
