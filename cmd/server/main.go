package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/crorepati-bot/internal/config"
	httpdelivery "github.com/aliskhannn/crorepati-bot/internal/delivery/http"
	"github.com/aliskhannn/crorepati-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/crorepati-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/crorepati-bot/internal/infra/redis"
	"github.com/aliskhannn/crorepati-bot/internal/logger"
	"github.com/aliskhannn/crorepati-bot/internal/repository"
	"github.com/aliskhannn/crorepati-bot/internal/service"
	"github.com/aliskhannn/crorepati-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	questions, err := repository.NewQuestionRepository(cfg.QuestionsPath)
	if err != nil {
		lg.Fatal("failed to load questions", zap.Error(err))
	}

	games, cleanup, err := newGameStore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to set up game store", zap.Error(err))
	}
	defer cleanup()

	selector := service.NewQuestionSelector(questions, rand.New(rand.NewSource(time.Now().UnixNano())))
	gameService := service.NewGameService(games, selector, lg)

	sweeper := service.NewSweeper(games, cfg.Storage.SweepSchedule, cfg.Storage.GameTTL, lg)
	go func() {
		if err := sweeper.Start(ctx); err != nil {
			lg.Error("sweeper stopped", zap.Error(err))
		}
	}()

	router := httpdelivery.NewRouter(httpdelivery.NewHandler(gameService, lg), lg, cfg.Env)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lg.Info("starting game server",
		zap.String("addr", cfg.Server.Addr),
		zap.String("storage", cfg.Storage.Driver),
		zap.Int("questions", questions.Count()),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("http server listen error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("http server forced to shutdown", zap.Error(err))
	}
}

// newGameStore builds the configured game store and returns a function that
// releases its connections.
func newGameStore(ctx context.Context, cfg *config.Config, lg *zap.Logger) (service.GameRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}

		if err := postgres.ApplyMigrations(dsn); err != nil {
			return nil, nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, err
		}

		return pgrepo.NewGameRepository(pool, postgres.NewTransactor(pool)), pool.Close, nil

	case config.DriverRedis:
		client, err := redis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, nil, err
		}

		return storage.NewRedisGameStorage(client, cfg.Storage.GameTTL, lg), func() { _ = client.Close() }, nil

	default:
		return storage.NewGameStorage(), func() {}, nil
	}
}
