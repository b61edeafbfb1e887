package repository

import (
	"testing"
	"time"

	"github.com/neelrr1/TicTacToeMinimax/internal/apperror"
	"github.com/neelrr1/TicTacToeMinimax/internal/entity"
	"github.com/neelrr1/TicTacToeMinimax/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	evaluationRepo := NewEvaluationRepository(st.Storage, 0)

	// Given: a solved position
	evaluation := &entity.Evaluation{Key: "XX_OO____", Score: 1, Move: 2}

	// When: Save is called
	err := evaluationRepo.Save(ctx, evaluation)

	// Then: no error should be returned, and the evaluation is stored without expiry
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, evaluationKeyPrefix+evaluation.Key).Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl)
}

func TestEvaluationRepository_GetByKey(t *testing.T) {
	t.Run("GetByKey_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		evaluationRepo := NewEvaluationRepository(st.Storage, time.Minute)

		// Given: a stored evaluation
		evaluation := &entity.Evaluation{Key: "_________", Score: 0, Move: 0}
		require.NoError(t, evaluationRepo.Save(ctx, evaluation))

		// When: GetByKey is called with its key
		retrieved, err := evaluationRepo.GetByKey(ctx, evaluation.Key)

		// Then: the retrieved evaluation should match the saved one
		require.NoError(t, err)
		assert.Equal(t, evaluation, retrieved)
	})

	t.Run("GetByKey_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		evaluationRepo := NewEvaluationRepository(st.Storage, 0)

		// When: GetByKey is called with an unknown key
		retrieved, err := evaluationRepo.GetByKey(ctx, "X________")

		// Then: ErrEvaluationNotFound should be returned
		require.ErrorIs(t, err, apperror.ErrEvaluationNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestEvaluationRepository_DeleteByKey(t *testing.T) {
	t.Run("DeleteByKey_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		evaluationRepo := NewEvaluationRepository(st.Storage, 0)

		// Given: a stored evaluation
		evaluation := &entity.Evaluation{Key: "X___O____", Score: 0, Move: 1}
		require.NoError(t, evaluationRepo.Save(ctx, evaluation))

		// When: DeleteByKey is called
		err := evaluationRepo.DeleteByKey(ctx, evaluation.Key)

		// Then: it is gone
		require.NoError(t, err)

		_, err = evaluationRepo.GetByKey(ctx, evaluation.Key)
		require.ErrorIs(t, err, apperror.ErrEvaluationNotFound)
	})

	t.Run("DeleteByKey_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		evaluationRepo := NewEvaluationRepository(st.Storage, 0)

		// When: DeleteByKey is called with an unknown key
		err := evaluationRepo.DeleteByKey(ctx, "9999999")

		// Then: ErrEvaluationNotFound should be returned
		require.ErrorIs(t, err, apperror.ErrEvaluationNotFound)
	})
}
