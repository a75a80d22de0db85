package cli

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starpath/internal/config"
	"github.com/matzehuels/starpath/pkg/cache"
	"github.com/matzehuels/starpath/pkg/pipeline"
	"github.com/matzehuels/starpath/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "starpath"

	// defaultHistoryLimit is the number of routes listed by "history".
	defaultHistoryLimit = 20
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ErrNoPath is returned by "navigate" when the target cannot be reached.
// The message has already been printed; callers only set the exit status.
var ErrNoPath = errors.New("no path found")

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the --config flag. Empty means the default location.
	ConfigPath string

	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// config loads the configuration once per process.
func (c *CLI) config() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	c.cfg = &cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner with the configured cache and history
// backends. noCache replaces the cache with a null cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}

	rc, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	st, err := newStore(ctx, cfg)
	if err != nil {
		rc.Close()
		return nil, err
	}

	var keyer cache.Keyer = cache.NewDefaultKeyer()
	if cfg.Cache.Namespace != "" {
		keyer = cache.NewScopedKeyer(keyer, cfg.Cache.Namespace)
	}
	return pipeline.NewRunner(rc, keyer, st, c.Logger), nil
}

func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	case config.BackendNone:
		return cache.NewNullCache(), nil
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

func newStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMongo:
		return store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.Database)
	case config.BackendNone:
		return store.NewNullStore(), nil
	}
	dir, err := cfg.HistoryDir()
	if err != nil {
		return store.NewNullStore(), nil
	}
	return store.NewFileStore(dir)
}
