package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/duodex/internal/config"
	"github.com/kailas-cloud/duodex/internal/db"
	dbRedis "github.com/kailas-cloud/duodex/internal/db/redis"
	logpkg "github.com/kailas-cloud/duodex/internal/logger"
	"github.com/kailas-cloud/duodex/internal/metrics"
	repoarticle "github.com/kailas-cloud/duodex/internal/repository/article"
	"github.com/kailas-cloud/duodex/internal/usecase/health"
	"github.com/kailas-cloud/duodex/internal/usecase/maintenance"
	"github.com/kailas-cloud/duodex/internal/version"
)

// app is the composition root shared by every subcommand.
type app struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
	repo   repoarticle.Backend
	pinger health.DBPinger
	lazy   *db.Lazy // nil for the memory driver
}

// newApp loads configuration, builds the logger and the article backend.
// With the redis driver nothing is dialed until first use.
func newApp(flags *globalFlags) (*app, error) {
	if err := config.LoadDotEnv(flags.envFile); err != nil {
		return nil, err
	}

	env := flags.env
	if env == "" {
		env = config.GetEnv()
	}

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	metrics.RegisterSearchMetrics()

	a := &app{env: env, cfg: cfg, logger: logger}

	switch cfg.Database.Driver {
	case config.DriverRedis:
		a.lazy = db.NewLazy(a.dialRedis)
		a.repo = repoarticle.NewInstrumented(repoarticle.New(a.lazy, cfg.Database.KeyPrefix), logger)
		a.pinger = a.lazy
	case config.DriverMemory:
		a.repo = repoarticle.NewInstrumented(repoarticle.NewMemory(), logger)
		a.pinger = memoryPinger{}
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	return a, nil
}

// dialRedis opens the Redis store, waits for it and makes sure the search index exists.
func (a *app) dialRedis(ctx context.Context) (db.Store, error) {
	store, err := dbRedis.Open(ctx, dbRedis.Config{
		Addrs:            a.cfg.Database.Addrs,
		Password:         a.cfg.Database.Password,
		ReadinessTimeout: time.Duration(a.cfg.Database.ReadinessTimeout) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open redis: %w", err)
	}

	created, err := repoarticle.New(store, a.cfg.Database.KeyPrefix).EnsureIndex(ctx)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("ensure index: %w", err)
	}

	a.logger.Info("Connected to database",
		zap.Strings("db_addrs", a.cfg.Database.Addrs),
		zap.Bool("index_created", created),
	)
	return store, nil
}

// connect forces the lazy dial. Commands that cannot do anything useful
// without the store call it up front.
func (a *app) connect(ctx context.Context) error {
	if a.lazy == nil {
		return nil
	}
	timeout := time.Duration(a.cfg.Database.ReadinessTimeout) * time.Second
	if err := a.lazy.WaitForReady(ctx, timeout); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	return nil
}

// seedMemory loads the configured seed file into the memory driver.
func (a *app) seedMemory(ctx context.Context) error {
	if a.lazy != nil || a.cfg.Seed.File == "" {
		return nil
	}
	f, err := os.Open(filepath.Clean(a.cfg.Seed.File))
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Warn("Seed file not found, starting empty", zap.String("file", a.cfg.Seed.File))
		return nil
	}
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	n, err := maintenance.New(a.repo, a.logger).Seed(ctx, f)
	if err != nil {
		return fmt.Errorf("seed %s: %w", a.cfg.Seed.File, err)
	}
	a.logger.Info("Seeded memory store", zap.String("file", a.cfg.Seed.File), zap.Int("articles", n))
	return nil
}

func (a *app) close() {
	if a.lazy != nil {
		a.lazy.Close()
	}
	_ = a.logger.Sync()
}

func (a *app) logStartup(command string) {
	a.logger.Info("Starting duodex",
		zap.String("command", command),
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", a.env),
		zap.String("db_driver", a.cfg.Database.Driver),
	)
}

// memoryPinger reports the in-process store as always reachable.
type memoryPinger struct{}

func (memoryPinger) Ping(context.Context) error { return nil }
