package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/neelrr1/TicTacToeMinimax/internal/apperror"
	"github.com/neelrr1/TicTacToeMinimax/internal/entity"
	"github.com/neelrr1/TicTacToeMinimax/internal/search"
)

type SolverService interface {
	Solve(ctx context.Context, state entity.GameState) (*entity.Evaluation, error)
}

type searchEngine interface {
	BestMove(ctx context.Context, state entity.GameState) (search.Result, error)
}

type evaluationRepo interface {
	GetByKey(ctx context.Context, key string) (*entity.Evaluation, error)
	Save(ctx context.Context, evaluation *entity.Evaluation) error
}

type solverService struct {
	logger *slog.Logger

	engine         searchEngine
	evaluationRepo evaluationRepo
}

// NewSolverService solves positions with engine and remembers the answers in
// evaluationRepo. The cache is best effort: storage errors are logged and the
// position is searched anyway.
func NewSolverService(logger *slog.Logger, engine searchEngine, evaluationRepo evaluationRepo) SolverService {
	return &solverService{
		logger:         logger,
		engine:         engine,
		evaluationRepo: evaluationRepo,
	}
}

func (that *solverService) Solve(ctx context.Context, state entity.GameState) (*entity.Evaluation, error) {
	log := that.logger.With("method", "Solve", "position", state.Key())

	if state.IsOver() {
		return nil, apperror.ErrGameFinished
	}

	cached, err := that.evaluationRepo.GetByKey(ctx, state.Key())
	switch {
	case err == nil:
		log.Debug("evaluation cache hit", "score", cached.Score, "move", cached.Move)
		return cached, nil
	case !errors.Is(err, apperror.ErrEvaluationNotFound):
		log.Warn("failed to read evaluation cache", "error", err)
	}

	result, err := that.engine.BestMove(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to search position: %w", err)
	}

	evaluation := &entity.Evaluation{
		Key:   state.Key(),
		Score: result.Score,
		Move:  result.Move,
	}

	if err = that.evaluationRepo.Save(ctx, evaluation); err != nil {
		log.Warn("failed to store evaluation", "error", err)
	}

	return evaluation, nil
}
