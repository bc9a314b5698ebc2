package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/game"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-history/transport/rest"
	"github.com/rocketscienceinc/tictactoe-history/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application until ctx is canceled or a signal arrives.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sessionRepo, closeStore, err := newSessionRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	gameUseCase := usecase.NewGameManager(logger, sessionRepo, game.Game)

	wsServer := websocket.New(logger, gameUseCase)
	handler := rest.Routes(
		rest.NewHandlers(logger, gameUseCase, conf.Session.TTL),
		map[string]http.Handler{"GET /ws": wsServer.Handler(ctx)},
	)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "store", conf.Session.Store)
	if err = rest.Start(ctx, logger, conf.HTTPPort, handler); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// newSessionRepository - picks the session store named in the config.
func newSessionRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.SessionRepository, func(), error) {
	switch conf.Session.Store {
	case config.StoreMemory:
		return repository.NewMemorySessionRepository(conf.Session.TTL), func() {}, nil
	case config.StoreRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		client, err := storage.NewRedisClient(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewSessionRepository(client, conf.Session.TTL), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", apperror.ErrUnknownStore, conf.Session.Store)
	}
}
