package config

import (
	"flag"
	"os"
	"time"

	"github.com/Rachitneema03/edufolio/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   storage backend: memory, sqlite or bolt (default from Config)
//	-f string   database file path for persistent backends (default from Config)
//	-t int      session time-to-live in hours (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-f", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend (memory, sqlite, bolt)")
	fs.StringVar(&cfg.StoragePath, "f", cfg.StoragePath, "database file path")
	sessionTTL := fs.Int("t", int(cfg.SessionTTL.Hours()), "session time-to-live (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SessionTTL = time.Duration(*sessionTTL) * time.Hour
}
