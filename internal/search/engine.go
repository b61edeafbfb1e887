package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/neelrr1/TicTacToeMinimax/internal/apperror"
	"github.com/neelrr1/TicTacToeMinimax/internal/entity"
)

const (
	AlgorithmMinimax   = "minimax"
	AlgorithmAlphaBeta = "alphabeta"
)

var ErrUnknownAlgorithm = errors.New("unknown search algorithm")

// Engine runs one of the search algorithms, optionally split across the root
// moves, and logs what each search cost.
type Engine struct {
	logger *slog.Logger

	algorithm string
	parallel  bool
}

func NewEngine(logger *slog.Logger, algorithm string, parallel bool) (*Engine, error) {
	switch algorithm {
	case AlgorithmMinimax, AlgorithmAlphaBeta:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}

	return &Engine{
		logger:    logger.With("component", "search"),
		algorithm: algorithm,
		parallel:  parallel,
	}, nil
}

func (that *Engine) Algorithm() string {
	return that.algorithm
}

// Search evaluates state to the given depth.
func (that *Engine) Search(ctx context.Context, state entity.GameState, depth Depth) (Result, error) {
	log := that.logger.With("method", "Search", "position", state.Key(), "depth", depth.String())

	started := time.Now()

	var (
		result Result
		err    error
	)
	switch {
	case that.parallel && that.algorithm == AlgorithmMinimax:
		result, err = ParallelMinimax(ctx, state, depth)
	case that.parallel:
		result, err = ParallelAlphaBeta(ctx, state, depth)
	case that.algorithm == AlgorithmMinimax:
		result, err = Minimax(state, depth)
	default:
		result, err = AlphaBeta(state, depth)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s search failed: %w", that.algorithm, err)
	}

	log.Debug("search finished",
		"algorithm", that.algorithm,
		"parallel", that.parallel,
		"score", result.Score,
		"move", result.Move,
		"nodes", result.Nodes,
		"elapsed", time.Since(started),
	)

	return result, nil
}

// BestMove runs a full-depth search for the player to move.
func (that *Engine) BestMove(ctx context.Context, state entity.GameState) (Result, error) {
	if state.IsOver() {
		return Result{}, apperror.ErrGameFinished
	}

	return that.Search(ctx, state, Unbounded())
}
