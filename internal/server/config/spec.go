package config

import (
	"time"

	"github.com/yndnr/easycar-go/internal/telemetry/logger"
)

// ServerConfig is the root configuration for easycar-devserver.
type ServerConfig struct {
	Server ServerSection `koanf:"server" yaml:"server"`
	Auth   AuthSection   `koanf:"auth" yaml:"auth"`
	Users  []UserEntry   `koanf:"users" yaml:"users"`
	Log    logger.Config `koanf:"log" yaml:"log"`
}

// ServerSection configures the HTTP listener.
type ServerSection struct {
	Addr        string `koanf:"addr" yaml:"addr"`
	TLSCertFile string `koanf:"tls_cert_file" yaml:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file" yaml:"tls_key_file"`

	// RateLimit is the sustained requests per second allowed per client
	// IP. Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" yaml:"rate_limit"`
	RateBurst int     `koanf:"rate_burst" yaml:"rate_burst"`

	// TrustProxyHeaders keys the rate limit on X-Forwarded-For / X-Real-IP
	// instead of the peer address. Off unless a proxy sets them.
	TrustProxyHeaders bool `koanf:"trust_proxy_headers" yaml:"trust_proxy_headers"`

	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// AuthSection configures session tokens.
type AuthSection struct {
	// SigningKey is the HS256 key. When empty a random key is generated at
	// startup and tokens do not survive a restart.
	SigningKey string        `koanf:"signing_key" yaml:"signing_key"`
	TokenTTL   time.Duration `koanf:"token_ttl" yaml:"token_ttl"`
	Issuer     string        `koanf:"issuer" yaml:"issuer"`
}

// UserEntry is one account accepted by POST /auth.
type UserEntry struct {
	Email        string `koanf:"email" yaml:"email"`
	PasswordHash string `koanf:"password_hash" yaml:"password_hash"`
}
