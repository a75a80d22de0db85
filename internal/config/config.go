// Package config loads starpath settings.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file, $XDG_CONFIG_HOME/starpath/config.toml unless --config is given
//  3. STARPATH_* environment variables
//
// Example file:
//
//	[log]
//	level = "debug"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/starpath/pkg/errors"
)

const appName = "starpath"

// Backend names.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config aggregates application configuration values.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Neo4j  Neo4jConfig  `toml:"neo4j"`
	Server ServerConfig `toml:"server"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// CacheConfig selects the route cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"` // file|redis|none
	Dir       string `toml:"dir"`
	RedisURL  string `toml:"redis_url"`
	Namespace string `toml:"namespace"` // key prefix, for shared redis databases
}

// StoreConfig selects the route history backend.
type StoreConfig struct {
	Backend  string `toml:"backend"` // file|mongo|none
	Dir      string `toml:"dir"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Neo4jConfig describes the optional graph database source.
type Neo4jConfig struct {
	URI        string `toml:"uri"`
	Username   string `toml:"username"`
	Password   string `toml:"password"`
	Database   string `toml:"database"`
	NodesQuery string `toml:"nodes_query"`
	EdgesQuery string `toml:"edges_query"`
}

// ServerConfig governs the HTTP server.
type ServerConfig struct {
	Addr            string        `toml:"addr"`
	Map             string        `toml:"map"` // star map served when a request names none
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// Default returns the built-in configuration. Directories are left empty and
// resolved by [CacheDir] and [HistoryDir].
func Default() Config {
	return Config{
		Log:   LogConfig{Level: "info"},
		Cache: CacheConfig{Backend: BackendFile},
		Store: StoreConfig{Backend: BackendFile, Database: appName},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Load reads the configuration. An empty path means the default location,
// which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	err := decodeFile(path, &cfg)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// no config file: defaults and environment only
	case errors.Is(err, fs.ErrNotExist):
		return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
	default:
		return Config{}, err
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks backend names, required connection strings, and the log level.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "log.level")
	}

	if !slices.Contains([]string{BackendFile, BackendRedis, BackendNone}, c.Cache.Backend) {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.backend %q must be file, redis or none", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis {
		if err := errs.ValidateURI(c.Cache.RedisURL, "redis", "rediss"); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "cache.redis_url")
		}
	}

	if !slices.Contains([]string{BackendFile, BackendMongo, BackendNone}, c.Store.Backend) {
		return errs.New(errs.ErrCodeInvalidConfig, "store.backend %q must be file, mongo or none", c.Store.Backend)
	}
	if c.Store.Backend == BackendMongo {
		if err := errs.ValidateURI(c.Store.MongoURI, "mongodb", "mongodb+srv"); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "store.mongo_uri")
		}
		if c.Store.Database == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "store.database cannot be empty")
		}
	}

	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server timeouts cannot be negative")
	}
	return nil
}

// LogLevel returns the parsed log level, falling back to info.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// =============================================================================
// Paths
// =============================================================================

// Path returns the default config file location
// ($XDG_CONFIG_HOME/starpath/config.toml, or ~/.config/starpath/config.toml).
func Path() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the route cache directory: cache.dir if set, otherwise
// $XDG_CACHE_HOME/starpath (~/.cache/starpath).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// HistoryDir returns the file history directory: store.dir if set, otherwise
// $XDG_DATA_HOME/starpath/history (~/.local/share/starpath/history).
func (c Config) HistoryDir() (string, error) {
	if c.Store.Dir != "" {
		return c.Store.Dir, nil
	}
	dir, err := xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}

// xdgDir returns $env/starpath, or ~/fallback/starpath when env is unset.
func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}
