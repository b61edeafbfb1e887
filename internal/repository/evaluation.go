package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/neelrr1/TicTacToeMinimax/internal/apperror"
	"github.com/neelrr1/TicTacToeMinimax/internal/entity"
	"github.com/redis/go-redis/v9"
)

const evaluationKeyPrefix = "eval:"

type EvaluationRepository interface {
	Save(ctx context.Context, evaluation *entity.Evaluation) error
	GetByKey(ctx context.Context, key string) (*entity.Evaluation, error)
	DeleteByKey(ctx context.Context, key string) error
}

type dbEvaluation struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEvaluationRepository stores solved positions in Redis. A zero ttl keeps
// them forever.
func NewEvaluationRepository(client *redis.Client, ttl time.Duration) EvaluationRepository {
	return &dbEvaluation{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbEvaluation) Save(ctx context.Context, evaluation *entity.Evaluation) error {
	evaluationJSON, err := json.Marshal(evaluation)
	if err != nil {
		return fmt.Errorf("could not marshal evaluation: %w", err)
	}

	err = that.client.Set(ctx, evaluationKeyPrefix+evaluation.Key, evaluationJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set evaluation: %w", err)
	}

	return nil
}

func (that *dbEvaluation) GetByKey(ctx context.Context, key string) (*entity.Evaluation, error) {
	response, err := that.client.Get(ctx, evaluationKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrEvaluationNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}

	var evaluation entity.Evaluation
	if err = json.Unmarshal([]byte(response), &evaluation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evaluation: %w", err)
	}

	return &evaluation, nil
}

func (that *dbEvaluation) DeleteByKey(ctx context.Context, key string) error {
	deleted, err := that.client.Del(ctx, evaluationKeyPrefix+key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrEvaluationNotFound
	}

	return nil
}
