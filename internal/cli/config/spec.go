package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/yndnr/easycar-go/internal/storage"
	"github.com/yndnr/easycar-go/internal/telemetry/logger"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// CLIConfig is the configuration for the easycar CLI.
type CLIConfig struct {
	Server  ServerSection  `koanf:"server" yaml:"server"`
	Session SessionSection `koanf:"session" yaml:"session"`
	Store   storage.Config `koanf:"store" yaml:"store"`
	Auth    AuthSection    `koanf:"auth" yaml:"auth"`
	Log     logger.Config  `koanf:"log" yaml:"log"`
	Metrics MetricsSection `koanf:"metrics" yaml:"metrics"`

	// Output is the default output format (table, json, yaml).
	Output string `koanf:"output" yaml:"output"`
}

// ServerSection locates the backend.
type ServerSection struct {
	URL     string        `koanf:"url" yaml:"url"`
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`
	// CAFile adds a PEM bundle to the system roots for https backends.
	CAFile string `koanf:"ca_file" yaml:"ca_file"`
}

// SessionSection tunes the session controller.
type SessionSection struct {
	HydrateDelay time.Duration `koanf:"hydrate_delay" yaml:"hydrate_delay"`
	// PersistFailures is "swallow" or "surface".
	PersistFailures    string `koanf:"persist_failures" yaml:"persist_failures"`
	SupersedeHydration bool   `koanf:"supersede_hydration" yaml:"supersede_hydration"`
	TokenKey           string `koanf:"token_key" yaml:"token_key"`
}

// AuthSection throttles login attempts. Zero attempts disables the throttle.
type AuthSection struct {
	AttemptsPerMinute int `koanf:"attempts_per_minute" yaml:"attempts_per_minute"`
	Burst             int `koanf:"burst" yaml:"burst"`
}

// MetricsSection configures the prometheus textfile written on exit.
type MetricsSection struct {
	Textfile string `koanf:"textfile" yaml:"textfile"`
}

// HomeDir returns ~/.easycar, falling back to the working directory when
// the home directory is unknown.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".easycar"
	}
	return filepath.Join(home, ".easycar")
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server: ServerSection{
			URL:     "http://localhost:5080",
			Timeout: 30 * time.Second,
		},
		Session: SessionSection{
			HydrateDelay:    time.Second,
			PersistFailures: "swallow",
			TokenKey:        storage.DefaultTokenKey,
		},
		Store: storage.DefaultConfig(filepath.Join(HomeDir(), "data")),
		Auth: AuthSection{
			AttemptsPerMinute: 5,
			Burst:             3,
		},
		Log:    logger.CLIConfig(),
		Output: OutputTable,
	}
}
