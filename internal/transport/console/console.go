package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/neelrr1/TicTacToeMinimax/internal/apperror"
	"github.com/neelrr1/TicTacToeMinimax/internal/entity"
)

type uGame interface {
	Start(ctx context.Context) (entity.GameState, error)
	MakeTurn(ctx context.Context, cell int) (entity.GameState, error)
	HumanMark() entity.Cell
}

// Console plays one game against the bot over a line-oriented text stream.
type Console struct {
	logger *slog.Logger
	uGame  uGame

	in  *bufio.Scanner
	out io.Writer
}

func New(logger *slog.Logger, uGame uGame, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		uGame:  uGame,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Play runs the game until it is over, the input ends or ctx is canceled.
func (that *Console) Play(ctx context.Context) error {
	log := that.logger.With("method", "Play")

	state, err := that.uGame.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	for {
		that.printf("\n%s", state)

		if state.IsOver() {
			that.printf("%s\n", state.OutcomeString())
			return nil
		}

		that.printf("Your move as %s (0-8): ", that.uGame.HumanMark())

		line, ok := that.readLine(ctx)
		if !ok {
			if err = ctx.Err(); err != nil {
				return err
			}
			log.Info("input closed before the game ended")
			return that.in.Err()
		}

		if line == "q" || line == "quit" {
			return nil
		}

		cell, err := strconv.Atoi(line)
		if err != nil {
			that.printf("%q is not a cell index\n", line)
			continue
		}

		state, err = that.uGame.MakeTurn(ctx, cell)
		switch {
		case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrCellOccupied):
			that.printf("Can't play there: %v\n", err)
		case err != nil:
			return fmt.Errorf("failed to make turn: %w", err)
		}
	}
}

func (that *Console) readLine(ctx context.Context) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}

	if !that.in.Scan() {
		return "", false
	}

	return strings.TrimSpace(that.in.Text()), true
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
