package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/neelrr1/TicTacToeMinimax/internal/apperror"
	"github.com/neelrr1/TicTacToeMinimax/internal/entity"
)

const (
	StrategyRandom = "random"
	StrategyBasic  = "basic"
	StrategyBest   = "best"
)

var (
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrUnknownStrategy  = errors.New("unknown bot strategy")
)

type BotService interface {
	ChooseMove(ctx context.Context, state entity.GameState) (int, error)
}

type solver interface {
	Solve(ctx context.Context, state entity.GameState) (*entity.Evaluation, error)
}

// NewBotService builds the bot for strategy. rng feeds the random and basic
// strategies; solver is only used by the best one.
func NewBotService(strategy string, rng *rand.Rand, solver solver) (BotService, error) {
	switch strategy {
	case StrategyRandom:
		return &randomBot{rng: rng}, nil
	case StrategyBasic:
		return &basicBot{fallback: &randomBot{rng: rng}}, nil
	case StrategyBest:
		return &bestBot{solver: solver}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// randomBot picks uniformly among the empty cells.
type randomBot struct {
	rng *rand.Rand
}

func (that *randomBot) ChooseMove(_ context.Context, state entity.GameState) (int, error) {
	if state.IsOver() {
		return 0, apperror.ErrGameFinished
	}

	availableCells := state.ValidMoves()
	if len(availableCells) == 0 {
		return 0, ErrNoAvailableMoves
	}

	return availableCells[that.rng.Intn(len(availableCells))], nil
}

// basicBot completes its own line if it can, otherwise blocks the opponent's,
// otherwise plays at random.
type basicBot struct {
	fallback *randomBot
}

func (that *basicBot) ChooseMove(ctx context.Context, state entity.GameState) (int, error) {
	if state.IsOver() {
		return 0, apperror.ErrGameFinished
	}

	if move, ok := threatCell(state, state.Turn()); ok {
		return move, nil
	}

	if move, ok := threatCell(state, entity.Opposite(state.Turn())); ok {
		return move, nil
	}

	return that.fallback.ChooseMove(ctx, state)
}

// threatCell returns the first empty cell that would complete a line of piece.
func threatCell(state entity.GameState, piece entity.Cell) (int, bool) {
	for _, combo := range entity.WinCombos {
		own, emptyIndex := 0, -1
		for _, index := range combo {
			switch state.Square(index) {
			case piece:
				own++
			case entity.EmptyCell:
				emptyIndex = index
			}
		}

		if own == 2 && emptyIndex >= 0 {
			return emptyIndex, true
		}
	}

	return 0, false
}

type bestBot struct {
	solver solver
}

func (that *bestBot) ChooseMove(ctx context.Context, state entity.GameState) (int, error) {
	evaluation, err := that.solver.Solve(ctx, state)
	if err != nil {
		return 0, fmt.Errorf("failed to solve position: %w", err)
	}

	return evaluation.Move, nil
}
