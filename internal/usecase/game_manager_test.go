package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/neelrr1/TicTacToeMinimax/internal/apperror"
	"github.com/neelrr1/TicTacToeMinimax/internal/entity"
	"github.com/neelrr1/TicTacToeMinimax/internal/repository"
	"github.com/neelrr1/TicTacToeMinimax/internal/search"
	"github.com/neelrr1/TicTacToeMinimax/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errSomeError = errors.New("some error")

type mockBot struct {
	mock.Mock
}

func (m *mockBot) ChooseMove(ctx context.Context, state entity.GameState) (int, error) {
	args := m.Called(ctx, state)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies the human move and the bot reply", func(t *testing.T) {
		// Given: a human playing X and a bot that answers in the center
		bot := &mockBot{}
		afterHuman := entity.NewGameState().ApplyMove(0)
		bot.On("ChooseMove", mock.Anything, afterHuman).Return(4, nil).Once()

		manager := NewGameManager(discardLogger(), bot, entity.PlayerX)
		_, err := manager.Start(ctx)
		require.NoError(t, err)

		// When: the human takes the corner
		state, err := manager.MakeTurn(ctx, 0)

		// Then: both moves are on the board and X is to move again
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, state.Square(0))
		assert.Equal(t, entity.PlayerO, state.Square(4))
		assert.Equal(t, entity.PlayerX, state.Turn())
		assert.Equal(t, state, manager.State())
		bot.AssertExpectations(t)
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		bot := &mockBot{}
		bot.On("ChooseMove", mock.Anything, mock.Anything).Return(4, nil).Once()

		manager := NewGameManager(discardLogger(), bot, entity.PlayerX)
		_, err := manager.MakeTurn(ctx, 0)
		require.NoError(t, err)

		// When: the human plays on the bot's cell
		state, err := manager.MakeTurn(ctx, 4)

		// Then: ErrCellOccupied is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, "X___O____", state.Key())
	})

	t.Run("Rejects an invalid cell", func(t *testing.T) {
		manager := NewGameManager(discardLogger(), &mockBot{}, entity.PlayerX)

		_, err := manager.MakeTurn(ctx, 9)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Rejects moves out of turn", func(t *testing.T) {
		// Given: the human plays O but the game was not started
		manager := NewGameManager(discardLogger(), &mockBot{}, entity.PlayerO)

		_, err := manager.MakeTurn(ctx, 0)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Bot errors are returned", func(t *testing.T) {
		bot := &mockBot{}
		bot.On("ChooseMove", mock.Anything, mock.Anything).Return(0, errSomeError).Once()

		manager := NewGameManager(discardLogger(), bot, entity.PlayerX)

		_, err := manager.MakeTurn(ctx, 0)

		require.ErrorIs(t, err, errSomeError)
	})

	t.Run("Illegal bot moves are rejected", func(t *testing.T) {
		bot := &mockBot{}
		bot.On("ChooseMove", mock.Anything, mock.Anything).Return(0, nil).Once()

		manager := NewGameManager(discardLogger(), bot, entity.PlayerX)

		_, err := manager.MakeTurn(ctx, 0)

		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})
}

func TestGameManager_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("Bot opens when the human plays O", func(t *testing.T) {
		bot := &mockBot{}
		bot.On("ChooseMove", mock.Anything, entity.NewGameState()).Return(0, nil).Once()

		manager := NewGameManager(discardLogger(), bot, entity.PlayerO)

		state, err := manager.Start(ctx)

		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, state.Square(0))
		assert.Equal(t, entity.PlayerO, state.Turn())
	})

	t.Run("Human X starts on an empty board", func(t *testing.T) {
		bot := &mockBot{}
		manager := NewGameManager(discardLogger(), bot, entity.PlayerX)

		state, err := manager.Start(ctx)

		require.NoError(t, err)
		assert.Equal(t, entity.NewGameState(), state)
		bot.AssertNotCalled(t, "ChooseMove", mock.Anything, mock.Anything)
	})
}

func TestGameManager_BestBotNeverLoses(t *testing.T) {
	ctx := context.Background()

	engine, err := search.NewEngine(discardLogger(), search.AlgorithmAlphaBeta, false)
	require.NoError(t, err)
	solver := service.NewSolverService(discardLogger(), engine, repository.NewMemoryEvaluationRepository())
	bestBot, err := service.NewBotService(service.StrategyBest, nil, solver)
	require.NoError(t, err)

	// Given: a human who always takes the lowest free cell
	for _, humanMark := range []entity.Cell{entity.PlayerX, entity.PlayerO} {
		manager := NewGameManager(discardLogger(), bestBot, humanMark)

		state, err := manager.Start(ctx)
		require.NoError(t, err)

		// When: the game is played out
		for !state.IsOver() {
			state, err = manager.MakeTurn(ctx, state.ValidMoves()[0])
			require.NoError(t, err)
		}

		// Then: the human never wins
		winner, ok := state.Winner().Winner()
		assert.False(t, ok && winner == humanMark, state.String())

		_, err = manager.MakeTurn(ctx, 0)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	}
}
