package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/neelrr1/TicTacToeMinimax/internal/entity"
)

type rootLine struct {
	move   int
	result Result
	err    error
}

type searchFunc func(state entity.GameState, depth Depth) (Result, error)

// ParallelAlphaBeta searches every root move on its own goroutine and merges
// the results in move order, so ties resolve exactly as in AlphaBeta. Workers
// do not share bounds, so Nodes is usually higher than a sequential search.
func ParallelAlphaBeta(ctx context.Context, state entity.GameState, depth Depth) (Result, error) {
	return splitRoot(ctx, state, depth, AlphaBeta)
}

// ParallelMinimax is Minimax with the root moves searched concurrently.
func ParallelMinimax(ctx context.Context, state entity.GameState, depth Depth) (Result, error) {
	return splitRoot(ctx, state, depth, Minimax)
}

func splitRoot(ctx context.Context, state entity.GameState, depth Depth, search searchFunc) (Result, error) {
	if depth.exhausted() || state.IsOver() {
		return Result{Score: evaluate(state), Move: NoMove, Nodes: 1}, nil
	}

	moves := state.ValidMoves()
	lines := make([]rootLine, len(moves))

	var wg sync.WaitGroup
	for i, move := range moves {
		wg.Add(1)
		go func() {
			defer wg.Done()

			line := rootLine{move: move}
			if err := ctx.Err(); err != nil {
				line.err = err
			} else {
				line.result, line.err = search(state.ApplyMove(move), depth.next())
			}
			lines[i] = line
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("parallel search interrupted: %w", err)
	}

	return mergeRootLines(state.Turn() == entity.PlayerX, lines)
}

func mergeRootLines(maximizing bool, lines []rootLine) (Result, error) {
	best := Result{Score: worstScore(maximizing), Move: NoMove, Nodes: 1}

	for _, line := range lines {
		if line.err != nil {
			return Result{}, fmt.Errorf("search of move %d: %w", line.move, line.err)
		}

		best.Nodes += line.result.Nodes
		if improves(maximizing, line.result.Score, best.Score) {
			best.Score = line.result.Score
			best.Move = line.move
		}
	}

	if !best.HasMove() {
		return Result{Move: NoMove}, ErrNoLegalMove
	}

	return best, nil
}
