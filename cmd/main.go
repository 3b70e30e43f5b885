package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"goban/internal/adapters"
	"goban/internal/bootstrap"
	gameDelivery "goban/internal/delivery/game"
	ownMiddleware "goban/internal/middleware"
	repo "goban/internal/repository"
	gameUsecase "goban/internal/usecase/game"
)

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func (d *dataBaseAdapters) Close(ctx context.Context) {
	if d == nil {
		return
	}
	_ = d.mongoAdapter.Close(ctx)
	_ = d.redisAdapter.Close(ctx)
}

func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	store, databaseAdapters, err := initGameStore(ctx, logger, *cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", zap.Error(err))
		return
	}
	defer databaseAdapters.Close(context.Background())

	gameUC := gameUsecase.NewGameUseCase(store, logger, *cfg)
	gameHandler := gameDelivery.NewGameHandler(*cfg, logger, gameUC)

	r := chi.NewRouter()
	if cfg.IsLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	gameHandler.Routes(r)

	server := &http.Server{Addr: cfg.Addr(), Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown server", zap.Error(err))
		}
	}()

	logger.Infof("Server is running on %s with %s storage", cfg.Addr(), cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

// initGameStore picks the storage backend named by STORAGE_MODE. The
// memory store needs no adapters and the returned adapters are nil.
func initGameStore(ctx context.Context, log *zap.SugaredLogger, cfg bootstrap.Config) (gameUsecase.GameStore, *dataBaseAdapters, error) {
	if cfg.StorageMode != bootstrap.StorageRemote {
		log.Info("Using in-memory game storage")
		return repo.NewGameMapStorage(cfg.PageLimitGames), nil, nil
	}

	mongoAdapter := adapters.NewAdapterMongo(&cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		return nil, nil, err
	}

	redisAdapter := adapters.NewAdapterRedis(&cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		_ = mongoAdapter.Close(ctx)
		return nil, nil, err
	}

	log.Info("Database adapters initialized")
	store := repo.NewGameRepository(cfg, log, redisAdapter.GetClient(), mongoAdapter.Database)
	return store, &dataBaseAdapters{redisAdapter: redisAdapter, mongoAdapter: mongoAdapter}, nil
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
