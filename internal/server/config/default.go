package config

import (
	"os"
	"time"

	"github.com/yndnr/easycar-go/internal/core/service"
	"github.com/yndnr/easycar-go/internal/telemetry/logger"
)

// Default configuration values.
const (
	DefaultAddr            = "127.0.0.1:5080"
	DefaultRateLimit       = 20
	DefaultRateBurst       = 40
	DefaultShutdownTimeout = 10 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// MinSigningKeyLength is the shortest configured signing key accepted.
	MinSigningKeyLength = 16
)

// Demo account seeded when no users are configured.
const (
	DemoEmail    = "demo@easycar.dev"
	DemoPassword = "easycar-demo"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Addr:            DefaultAddr,
			RateLimit:       DefaultRateLimit,
			RateBurst:       DefaultRateBurst,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Auth: AuthSection{
			TokenTTL: service.DefaultTokenTTL,
			Issuer:   service.DefaultTokenIssuer,
		},
		Log: logger.Config{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			Output: os.Stdout,
		},
	}
}
