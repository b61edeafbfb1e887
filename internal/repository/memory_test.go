package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/neelrr1/TicTacToeMinimax/internal/apperror"
	"github.com/neelrr1/TicTacToeMinimax/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryEvaluationRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Save and GetByKey", func(t *testing.T) {
		// Given: an empty repository
		evaluationRepo := NewMemoryEvaluationRepository()

		// When: an evaluation is saved
		evaluation := &entity.Evaluation{Key: "XX_OO____", Score: 1, Move: 2}
		require.NoError(t, evaluationRepo.Save(ctx, evaluation))

		// Then: it can be read back as a copy
		retrieved, err := evaluationRepo.GetByKey(ctx, evaluation.Key)
		require.NoError(t, err)
		assert.Equal(t, evaluation, retrieved)

		retrieved.Move = 7
		again, err := evaluationRepo.GetByKey(ctx, evaluation.Key)
		require.NoError(t, err)
		assert.Equal(t, 2, again.Move)
	})

	t.Run("GetByKey_NotFound", func(t *testing.T) {
		evaluationRepo := NewMemoryEvaluationRepository()

		_, err := evaluationRepo.GetByKey(ctx, "_________")

		require.ErrorIs(t, err, apperror.ErrEvaluationNotFound)
	})

	t.Run("DeleteByKey", func(t *testing.T) {
		evaluationRepo := NewMemoryEvaluationRepository()
		require.NoError(t, evaluationRepo.Save(ctx, &entity.Evaluation{Key: "X________"}))

		require.NoError(t, evaluationRepo.DeleteByKey(ctx, "X________"))
		require.ErrorIs(t, evaluationRepo.DeleteByKey(ctx, "X________"), apperror.ErrEvaluationNotFound)
	})

	t.Run("Concurrent access", func(t *testing.T) {
		evaluationRepo := NewMemoryEvaluationRepository()

		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()

				key := entity.NewGameState().ApplyMove(i).Key()
				assert.NoError(t, evaluationRepo.Save(ctx, &entity.Evaluation{Key: key, Move: i}))
				_, err := evaluationRepo.GetByKey(ctx, key)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
	})
}
