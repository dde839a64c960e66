package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/clippings/internal/config"
	"github.com/MrSnakeDoc/clippings/internal/httpserver"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
	"github.com/MrSnakeDoc/clippings/internal/index"
	"github.com/MrSnakeDoc/clippings/internal/logger"
	"github.com/MrSnakeDoc/clippings/internal/redis"
	"github.com/MrSnakeDoc/clippings/internal/scheduler"
	"github.com/MrSnakeDoc/clippings/internal/sources/categories"
	"github.com/MrSnakeDoc/clippings/internal/store"
	"github.com/MrSnakeDoc/clippings/internal/store/file"
	redisstore "github.com/MrSnakeDoc/clippings/internal/store/redis"
	"github.com/MrSnakeDoc/clippings/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	syncer      *scheduler.RedisSyncer
	reloader    *scheduler.FileReloader
	gc          *scheduler.OrphanCollector
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Redis is optional: without it there is no mirror and no query cache.
	var redisClient *goredis.Client
	var mirror store.Mirror
	var queryCache deps.QueryCache
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.Connect(context.Background(), redis.OptionsFrom(cfg), loggerClient)
		if err != nil {
			loggerClient.Warn("redis unavailable, continuing without mirror and query cache",
				logger.Error(err))
		} else {
			loggerClient.Info("Redis initialized successfully")
			redisClient = client
			rs := redisstore.NewStore(client)
			mirror = rs
			queryCache = rs
		}
	} else {
		loggerClient.Info("redis not configured, mirror and query cache disabled")
	}

	records := file.NewRecords(cfg.DataFile, loggerClient)
	uploads, err := file.NewUploads(cfg.UploadDir, cfg.MaxUploadBytes, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	memIndex := index.NewMemoryIndex()
	svc := store.NewService(records, memIndex, mirror, loggerClient)

	cats, err := categories.NewLoader(cfg.CategoryFile).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	loggerClient.Info("categories loaded", logger.Int("count", len(cats)))

	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewFileReloader(svc, loggerClient, cfg.ReloadInterval, reloadTrigger)

	var gc *scheduler.OrphanCollector
	if cfg.OrphanGC {
		gc = scheduler.NewOrphanCollector(uploads, memIndex, loggerClient, cfg.GCInterval, cfg.OrphanTTL)
	}

	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		Store:           svc,
		Uploads:         uploads,
		Categories:      cats,
		MaxUploadBytes:  cfg.MaxUploadBytes,
		UploadBurst:     cfg.UploadBurst,
		UploadPerMinute: cfg.UploadPerMinute,
		QueryCache:      queryCache,
		QueryCacheTTL:   cfg.QueryCacheTTL,
		RedisClient:     redisClient,
		ReloadTrigger:   reloadTrigger,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		syncer:      scheduler.NewRedisSyncer(svc, loggerClient),
		reloader:    reloader,
		gc:          gc,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting clippingsd %s on %s", version.String(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Restore the file from the redis snapshot if it went missing
	if err := a.syncer.Sync(ctx); err != nil {
		a.logger.Warn("failed to restore from redis on startup, will load from file",
			logger.Error(err))
	}

	// Load the file and start periodic refresh
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start file reloader: %w", err)
	}
	a.logger.Info("file reloader started",
		logger.String("file", a.cfg.DataFile),
		logger.Duration("interval", a.cfg.ReloadInterval))

	if a.gc != nil {
		if err := a.gc.Start(ctx); err != nil {
			return fmt.Errorf("failed to start orphan collector: %w", err)
		}
		a.logger.Info("orphan collector started",
			logger.Duration("interval", a.cfg.GCInterval),
			logger.Duration("ttl", a.cfg.OrphanTTL))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	if a.gc != nil {
		a.gc.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ clippingsd stopped cleanly")
	return nil
}
