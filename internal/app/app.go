// Package app wires configuration, storage, delivery and HTTP into a runnable service.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"recovery-chat/internal/config"
	cacheadapter "recovery-chat/internal/infrastructure/cache/adapter"
	"recovery-chat/internal/infrastructure/database"
	"recovery-chat/internal/infrastructure/metrics"
	queueadapter "recovery-chat/internal/infrastructure/queue/adapter"
	"recovery-chat/internal/infrastructure/realtime"
	"recovery-chat/internal/pkg/chat/application/port"
	"recovery-chat/internal/pkg/chat/application/task"
	"recovery-chat/internal/pkg/chat/delivery"
	chatrepo "recovery-chat/internal/pkg/chat/persistence/repository/adapter"
	chatport "recovery-chat/internal/pkg/chat/persistence/repository/port"
	profileusecase "recovery-chat/internal/pkg/profile/application/usecase"
	profilerepo "recovery-chat/internal/pkg/profile/persistence/repository/adapter"
	profileport "recovery-chat/internal/pkg/profile/persistence/repository/port"
)

const shutdownTimeout = 10 * time.Second

// App is the assembled service. Build it with New, start it with Run and
// release its resources with Close.
type App struct {
	cfg     config.Config
	logger  *zap.Logger
	engine  *gin.Engine
	router  *realtime.Router
	workers []func(context.Context) error
	closers []func() error
}

type storage struct {
	chat     chatport.ChatRepository
	profiles profileport.ProfileRepository
	ping     func(context.Context) error
}

// New connects to the configured stores, applies migrations and builds the
// HTTP engine. With REDIS_URL set, notifications travel through the asynq
// queue and Redis pub/sub; otherwise they are broadcast in-process.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{cfg: cfg, logger: logger, router: realtime.NewRouter()}

	store, err := a.openStorage(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	chatMetrics := metrics.NewChat(registry)
	httpMetrics := metrics.NewHTTP(registry)

	profiles := store.profiles
	var notifier port.Notifier
	if cfg.RedisURL != "" {
		profiles, notifier, err = a.wireRedis(ctx, store.profiles)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
	} else {
		notifier = delivery.NewBroadcastNotifier(realtime.NewLocalBroadcaster(a.router), cfg.NotifyTimeout)
	}

	a.engine = newRouter(routerDeps{
		cfg:         cfg,
		logger:      logger,
		registry:    registry,
		httpMetrics: httpMetrics,
		chatMetrics: chatMetrics,
		chatRepo:    store.chat,
		profiles:    profiles,
		directory:   profileusecase.NewParticipantDirectory(profiles),
		notifier:    notifier,
		realtime:    a.router,
		ping:        store.ping,
	})
	return a, nil
}

func (a *App) openStorage(ctx context.Context) (storage, error) {
	switch a.cfg.DBDriver {
	case database.DriverSQLite:
		db, err := database.OpenSQLite(ctx, a.cfg.DBURL)
		if err != nil {
			return storage{}, err
		}
		a.closers = append(a.closers, db.Close)
		if err := database.MigrateSQLite(ctx, db); err != nil {
			return storage{}, err
		}
		return sqliteStorage(db), nil
	case database.DriverPostgres:
		pool, err := database.Connect(ctx, a.cfg.DBURL, database.WithMaxConns(a.cfg.DBMaxConns))
		if err != nil {
			return storage{}, err
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		if err := database.MigratePostgres(ctx, pool); err != nil {
			return storage{}, err
		}
		return postgresStorage(pool), nil
	default:
		return storage{}, fmt.Errorf("app: unsupported DB_DRIVER %q", a.cfg.DBDriver)
	}
}

func sqliteStorage(db *sql.DB) storage {
	return storage{
		chat:     chatrepo.NewSqliteChatRepository(db),
		profiles: profilerepo.NewSqliteProfileRepository(db),
		ping:     db.PingContext,
	}
}

func postgresStorage(pool *pgxpool.Pool) storage {
	return storage{
		chat:     chatrepo.NewPgChatRepository(pool),
		profiles: profilerepo.NewPgProfileRepository(pool),
		ping:     pool.Ping,
	}
}

// wireRedis puts the profile cache in front of profiles and returns the
// queue-backed notifier. The asynq worker and the pub/sub relay become workers.
func (a *App) wireRedis(ctx context.Context, profiles profileport.ProfileRepository) (profileport.ProfileRepository, port.Notifier, error) {
	client, err := cacheadapter.Connect(ctx, a.cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	a.closers = append(a.closers, client.Close)

	cached := profilerepo.NewCachedProfileRepository(profiles, cacheadapter.NewRedisCache(client, "recovery-chat:"), a.cfg.ProfileCacheTTL, a.logger)

	bridge := realtime.NewRedisBridge(client, a.router, a.logger)
	a.workers = append(a.workers, bridge.Run)

	queueClient, err := queueadapter.NewAsynqClient(a.cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	a.closers = append(a.closers, queueClient.Close)

	queueServer, err := queueadapter.NewAsynqServer(a.cfg.RedisURL, queueadapter.ServerOptions{
		Concurrency: a.cfg.AsynqConcurrency,
		Queues:      a.cfg.AsynqQueues,
	}, a.logger)
	if err != nil {
		return nil, nil, err
	}
	task.RegisterMessageAppendedTask(queueServer, delivery.NewBroadcastNotifier(bridge, a.cfg.NotifyTimeout), a.logger)
	a.workers = append(a.workers, queueServer.Run)

	return cached, task.NewQueueNotifier(queueClient, a.cfg.NotifyTimeout), nil
}

// Handler exposes the HTTP engine, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.engine
}

// Run serves HTTP and runs the background workers until ctx is canceled or
// one of them fails, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// hijacked websocket connections are not tracked by Shutdown
		a.router.Close()
		return srv.Shutdown(shutdownCtx)
	})
	for _, w := range a.workers {
		w := w // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error { return w(ctx) })
	}
	return g.Wait()
}

// Close releases stores and clients in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
