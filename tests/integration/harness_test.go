package integration

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/clippings/internal/auth"
	"github.com/MrSnakeDoc/clippings/internal/client"
	"github.com/MrSnakeDoc/clippings/internal/config"
	"github.com/MrSnakeDoc/clippings/internal/domain"
	"github.com/MrSnakeDoc/clippings/internal/httpserver"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
	"github.com/MrSnakeDoc/clippings/internal/index"
	"github.com/MrSnakeDoc/clippings/internal/logger"
	"github.com/MrSnakeDoc/clippings/internal/portal"
	"github.com/MrSnakeDoc/clippings/internal/scheduler"
	"github.com/MrSnakeDoc/clippings/internal/store"
	"github.com/MrSnakeDoc/clippings/internal/store/file"
	redisstore "github.com/MrSnakeDoc/clippings/internal/store/redis"
)

// daemon is a clippingsd wired like the real one, served by httptest.
type daemon struct {
	srv       *httptest.Server
	svc       *store.Service
	dataFile  string
	uploadDir string
	redis     *miniredis.Miniredis
}

type daemonOptions struct {
	seed      domain.Collection
	withRedis bool
	reloader  bool
}

func startDaemon(t *testing.T, opts daemonOptions) *daemon {
	t.Helper()
	dir := t.TempDir()
	log := logger.NewNop()

	cfg := &config.Config{
		ListenPort:      ":0",
		ShutdownTimeout: time.Second,
		RequestTimeout:  10 * time.Second,
		DataFile:        filepath.Join(dir, "clippings.json"),
		UploadDir:       filepath.Join(dir, "data"),
		MaxUploadBytes:  domain.MaxUploadSize,
		ReloadInterval:  time.Hour,
		GCInterval:      time.Hour,
		CORSOrigin:      "*",
		UploadBurst:     100,
		UploadPerMinute: 100,
		AllowedCIDRS:    []string{"127.0.0.1/32", "::1/128"},
		QueryCacheTTL:   time.Minute,
	}

	if opts.seed != nil {
		raw, err := json.Marshal(opts.seed)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(cfg.DataFile, raw, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	d := &daemon{dataFile: cfg.DataFile, uploadDir: cfg.UploadDir}

	var mirror store.Mirror
	var cache deps.QueryCache
	var redisClient *goredis.Client
	if opts.withRedis {
		d.redis = miniredis.RunT(t)
		redisClient = goredis.NewClient(&goredis.Options{Addr: d.redis.Addr()})
		t.Cleanup(func() { _ = redisClient.Close() })
		rs := redisstore.NewStore(redisClient)
		mirror, cache = rs, rs
	}

	uploads, err := file.NewUploads(cfg.UploadDir, cfg.MaxUploadBytes, log)
	if err != nil {
		t.Fatal(err)
	}
	d.svc = store.NewService(file.NewRecords(cfg.DataFile, log), index.NewMemoryIndex(), mirror, log)

	trigger := make(chan struct{}, 1)
	if opts.reloader {
		ctx, cancel := context.WithCancel(context.Background())
		t.Cleanup(cancel)
		r := scheduler.NewFileReloader(d.svc, log, cfg.ReloadInterval, trigger)
		if err := r.Start(ctx); err != nil {
			t.Fatal(err)
		}
	} else if _, err := d.svc.Reload(context.Background(), true); err != nil {
		t.Fatal(err)
	}

	server := httpserver.New(cfg, log, deps.Deps{
		Logger:          log,
		StartTime:       time.Now(),
		TimeNow:         time.Now,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		Store:           d.svc,
		Uploads:         uploads,
		Categories:      domain.Categories(domain.DefaultCategories),
		MaxUploadBytes:  cfg.MaxUploadBytes,
		UploadBurst:     cfg.UploadBurst,
		UploadPerMinute: cfg.UploadPerMinute,
		QueryCache:      cache,
		QueryCacheTTL:   cfg.QueryCacheTTL,
		RedisClient:     redisClient,
		ReloadTrigger:   trigger,
	})
	d.srv = httptest.NewServer(server.Handler())
	t.Cleanup(d.srv.Close)
	return d
}

func (d *daemon) client() *client.Client {
	return client.New(d.srv.URL, 5*time.Second, logger.NewNop())
}

func (d *daemon) portal(t *testing.T) *portal.Portal {
	t.Helper()
	a := auth.New(auth.Credentials{UserID: "ntpc", Password: "admin123"}, auth.WithIntn(func(int) int { return 0 }))
	p := portal.New(d.client(), a, portal.Options{}, logger.NewNop())
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("portal start: %v", err)
	}
	return p
}

func scenarioCollection() domain.Collection {
	return domain.Collection{
		{ID: 1, Title: "Board approves capex", Date: domain.MustParseDate("2024-03-10"), Category: "HR", Description: "Quarterly review", URL: "https://example.com/1.pdf"},
		{ID: 2, Title: "Plant safety audit", Date: domain.MustParseDate("2024-01-05"), Category: "Safety", Description: "Zero incidents", URL: "https://example.com/2.pdf"},
		{ID: 3, Title: "New hiring drive", Date: domain.MustParseDate("2023-12-01"), Category: "HR", Description: "Campus recruitment", URL: "https://example.com/3.pdf"},
	}
}

func ids(c domain.Collection) []int {
	out := make([]int, 0, len(c))
	for _, x := range c {
		out = append(out, x.ID)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
