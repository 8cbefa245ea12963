package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath     string `long:"db-path" env:"DB_PATH" default:"./yt-sched.db" description:"Path to the SQLite settings database"`
	PresetsDir string `long:"presets-dir" env:"PRESETS_DIR" default:"./presets" description:"Directory containing channel preset files"`

	// Application configuration
	Port            string  `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount     int     `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for task processing"`
	RefreshInterval int     `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"300" description:"Schedule refresh interval in seconds"`
	RateLimit       float64 `long:"rate-limit" env:"RATE_LIMIT" default:"4" description:"Upstream API requests per second"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"yt-sched/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:          raw.DBPath,
		PresetsDir:      raw.PresetsDir,
		Port:            raw.Port,
		WorkerCount:     raw.WorkerCount,
		RefreshInterval: raw.RefreshInterval,
		RateLimit:       raw.RateLimit,
		UserAgent:       raw.UserAgent,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
