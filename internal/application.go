package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neelrr1/TicTacToeMinimax/internal/config"
	"github.com/neelrr1/TicTacToeMinimax/internal/entity"
	"github.com/neelrr1/TicTacToeMinimax/internal/repository"
	"github.com/neelrr1/TicTacToeMinimax/internal/repository/storage"
	"github.com/neelrr1/TicTacToeMinimax/internal/search"
	"github.com/neelrr1/TicTacToeMinimax/internal/service"
	"github.com/neelrr1/TicTacToeMinimax/internal/transport/console"
	"github.com/neelrr1/TicTacToeMinimax/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application on stdin and stdout.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run wires the components described by conf and runs the configured mode.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	if conf.Mode == config.ModeBench {
		return console.Bench(logger, out, entity.NewGameState())
	}

	evaluationRepo, closeRepo, err := newEvaluationRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeRepo(); closeErr != nil {
			log.Error("could not close evaluation storage", "error", closeErr)
		}
	}()

	engine, err := search.NewEngine(logger, conf.Engine.Algorithm, conf.Engine.Parallel)
	if err != nil {
		return fmt.Errorf("could not create search engine: %w", err)
	}

	solver := service.NewSolverService(logger, engine, evaluationRepo)

	bot, err := service.NewBotService(conf.Game.Opponent, newRand(conf.Game.Seed), solver)
	if err != nil {
		return fmt.Errorf("could not create bot: %w", err)
	}

	humanMark := entity.PlayerX
	if conf.Game.HumanMark == "O" {
		humanMark = entity.PlayerO
	}

	gameManager := usecase.NewGameManager(logger, bot, humanMark)

	log.Info("Starting game", "human", humanMark.String(), "opponent", conf.Game.Opponent, "algorithm", engine.Algorithm())

	if err = console.New(logger, gameManager, in, out).Play(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("game failed: %w", err)
	}

	return nil
}

func newEvaluationRepository(ctx context.Context, conf *config.Config) (repository.EvaluationRepository, func() error, error) {
	if conf.Cache.Backend != config.CacheRedis {
		return repository.NewMemoryEvaluationRepository(), func() error { return nil }, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewEvaluationRepository(redisStorage, conf.Cache.TTL), redisStorage.Close, nil
}

// newRand seeds from the clock when seed is zero.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) //nolint: gosec // it's ok
}
