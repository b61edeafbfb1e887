package console

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/neelrr1/TicTacToeMinimax/internal/entity"
	"github.com/neelrr1/TicTacToeMinimax/internal/search"
)

type benchRun struct {
	name   string
	search func(entity.GameState, search.Depth) (search.Result, error)
}

// Bench solves state with plain minimax and with alpha-beta and prints how
// long each took and how many positions it visited.
func Bench(logger *slog.Logger, out io.Writer, state entity.GameState) error {
	log := logger.With("component", "bench")

	runs := []benchRun{
		{name: search.AlgorithmMinimax, search: search.Minimax},
		{name: search.AlgorithmAlphaBeta, search: search.AlphaBeta},
	}

	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "algorithm\tscore\tmove\tnodes\telapsed")

	for _, run := range runs {
		started := time.Now()

		result, err := run.search(state, search.Unbounded())
		if err != nil {
			return fmt.Errorf("%s benchmark failed: %w", run.name, err)
		}

		elapsed := time.Since(started)
		log.Info("benchmark finished", "algorithm", run.name, "nodes", result.Nodes, "elapsed", elapsed)

		fmt.Fprintf(writer, "%s\t%d\t%d\t%d\t%s\n", run.name, result.Score, result.Move, result.Nodes, elapsed.Round(time.Microsecond))
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write benchmark table: %w", err)
	}

	return nil
}
