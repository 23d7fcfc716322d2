// Package config assembles runtime settings for the EduFolio CLI from
// defaults, an optional JSON file, and command-line flags (in that order,
// later sources winning).
package config

import (
	"time"

	"github.com/Rachitneema03/edufolio/internal/common"
)

// Backend names accepted in config.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// Config holds runtime settings for the EduFolio CLI.
//
// Fields:
//   - Backend: which key-value backend to use (memory, sqlite, bolt).
//   - StoragePath: database file path for the persistent backends.
//   - SessionTTL: how long a session stays valid after login.
type Config struct {
	Backend     string
	StoragePath string
	SessionTTL  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = BackendBolt
	c.StoragePath = "edufolio.db"
	c.SessionTTL = common.DefaultSessionTTL
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
