package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neelrr1/TicTacToeMinimax/internal/apperror"
	"github.com/neelrr1/TicTacToeMinimax/internal/entity"
)

type bot interface {
	ChooseMove(ctx context.Context, state entity.GameState) (int, error)
}

// GameManager holds one human-versus-bot game. The bot always works on a
// copy of the current position.
type GameManager struct {
	logger *slog.Logger
	bot    bot

	humanMark entity.Cell
	state     entity.GameState
}

func NewGameManager(logger *slog.Logger, bot bot, humanMark entity.Cell) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game"),
		bot:       bot,
		humanMark: humanMark,
		state:     entity.NewGameState(),
	}
}

func (that *GameManager) State() entity.GameState {
	return that.state
}

func (that *GameManager) HumanMark() entity.Cell {
	return that.humanMark
}

// Start resets the board and lets the bot open when the human plays O.
func (that *GameManager) Start(ctx context.Context) (entity.GameState, error) {
	that.state = entity.NewGameState()

	if that.state.Turn() != that.humanMark {
		if err := that.botTurn(ctx); err != nil {
			return that.state, err
		}
	}

	return that.state, nil
}

// MakeTurn plays the human move on cell and, if the game goes on, the bot's
// reply.
func (that *GameManager) MakeTurn(ctx context.Context, cell int) (entity.GameState, error) {
	log := that.logger.With("method", "MakeTurn", "cell", cell)

	if that.state.IsOver() {
		return that.state, apperror.ErrGameFinished
	}

	if that.state.Turn() != that.humanMark {
		return that.state, apperror.ErrNotYourTurn
	}

	if err := that.state.Validate(cell); err != nil {
		log.Debug("rejected human move", "error", err)
		return that.state, fmt.Errorf("invalid turn: %w", err)
	}

	that.state = that.state.ApplyMove(cell)

	if that.state.IsOver() {
		log.Info("game finished", "outcome", that.state.OutcomeString())
		return that.state, nil
	}

	if err := that.botTurn(ctx); err != nil {
		return that.state, err
	}

	return that.state, nil
}

func (that *GameManager) botTurn(ctx context.Context) error {
	log := that.logger.With("method", "botTurn")

	move, err := that.bot.ChooseMove(ctx, that.state)
	if err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	if err = that.state.Validate(move); err != nil {
		return fmt.Errorf("bot chose an illegal move: %w", err)
	}

	that.state = that.state.ApplyMove(move)
	log.Debug("bot moved", "cell", move, "position", that.state.Key())

	if that.state.IsOver() {
		log.Info("game finished", "outcome", that.state.OutcomeString())
	}

	return nil
}
