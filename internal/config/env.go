package config

import (
	"os"
	"time"

	errs "github.com/matzehuels/starpath/pkg/errors"
)

// envPrefix prefixes every environment override.
const envPrefix = "STARPATH_"

// applyEnv overrides fields from STARPATH_* variables. Empty variables are
// ignored.
func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"LOG_LEVEL":       &c.Log.Level,
		"CACHE_BACKEND":   &c.Cache.Backend,
		"CACHE_DIR":       &c.Cache.Dir,
		"REDIS_URL":       &c.Cache.RedisURL,
		"CACHE_NAMESPACE": &c.Cache.Namespace,
		"STORE_BACKEND":   &c.Store.Backend,
		"HISTORY_DIR":     &c.Store.Dir,
		"MONGO_URI":       &c.Store.MongoURI,
		"MONGO_DATABASE":  &c.Store.Database,
		"NEO4J_URI":       &c.Neo4j.URI,
		"NEO4J_USERNAME":  &c.Neo4j.Username,
		"NEO4J_PASSWORD":  &c.Neo4j.Password,
		"NEO4J_DATABASE":  &c.Neo4j.Database,
		"SERVER_ADDR":     &c.Server.Addr,
		"SERVER_MAP":      &c.Server.Map,
	}
	for key, dst := range strs {
		if v := os.Getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"SERVER_READ_TIMEOUT":     &c.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":    &c.Server.WriteTimeout,
		"SERVER_SHUTDOWN_TIMEOUT": &c.Server.ShutdownTimeout,
	}
	for key, dst := range durations {
		v := os.Getenv(envPrefix + key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "invalid %s%s", envPrefix, key)
		}
		*dst = d
	}
	return nil
}
