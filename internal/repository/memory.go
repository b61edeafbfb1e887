package repository

import (
	"context"
	"sync"

	"github.com/neelrr1/TicTacToeMinimax/internal/apperror"
	"github.com/neelrr1/TicTacToeMinimax/internal/entity"
)

type memoryEvaluation struct {
	mu          sync.RWMutex
	evaluations map[string]entity.Evaluation
}

// NewMemoryEvaluationRepository keeps solved positions in process memory.
func NewMemoryEvaluationRepository() EvaluationRepository {
	return &memoryEvaluation{
		evaluations: make(map[string]entity.Evaluation),
	}
}

func (that *memoryEvaluation) Save(_ context.Context, evaluation *entity.Evaluation) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.evaluations[evaluation.Key] = *evaluation

	return nil
}

func (that *memoryEvaluation) GetByKey(_ context.Context, key string) (*entity.Evaluation, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	evaluation, ok := that.evaluations[key]
	if !ok {
		return nil, apperror.ErrEvaluationNotFound
	}

	return &evaluation, nil
}

func (that *memoryEvaluation) DeleteByKey(_ context.Context, key string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.evaluations[key]; !ok {
		return apperror.ErrEvaluationNotFound
	}
	delete(that.evaluations, key)

	return nil
}
