package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/yndnr/easycar-go/internal/core/session"
	"github.com/yndnr/easycar-go/internal/storage"
	"github.com/yndnr/easycar-go/internal/telemetry/logger"
)

// Verify validates the configuration.
func Verify(cfg *CLIConfig) error {
	return errors.Join(
		verifyServer(&cfg.Server),
		verifySession(&cfg.Session),
		verifyStore(&cfg.Store),
		verifyAuth(&cfg.Auth),
		verifyLog(&cfg.Log),
		verifyOutput(cfg.Output),
	)
}

func verifyServer(cfg *ServerSection) error {
	if cfg.URL == "" {
		return errors.New("server.url is required")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return fmt.Errorf("server.url: %w", err)
	}
	if cfg.Timeout < 0 {
		return errors.New("server.timeout must not be negative")
	}
	return nil
}

func verifySession(cfg *SessionSection) error {
	if cfg.HydrateDelay < 0 {
		return errors.New("session.hydrate_delay must not be negative")
	}
	if _, err := session.ParsePersistPolicy(cfg.PersistFailures); err != nil {
		return fmt.Errorf("session.persist_failures: %w", err)
	}
	return nil
}

func verifyStore(cfg *storage.Config) error {
	switch cfg.Backend {
	case "", storage.BackendBadger:
		if cfg.Dir == "" {
			return errors.New("store.dir is required for the badger backend")
		}
	case storage.BackendRedis:
		if cfg.Redis.Addr == "" {
			return errors.New("store.redis.addr is required for the redis backend")
		}
		if cfg.Redis.TTL < 0 {
			return errors.New("store.redis.ttl must not be negative")
		}
	case storage.BackendMemory:
	default:
		return fmt.Errorf("store.backend: unknown backend %q", cfg.Backend)
	}
	return nil
}

func verifyAuth(cfg *AuthSection) error {
	if cfg.AttemptsPerMinute < 0 || cfg.Burst < 0 {
		return errors.New("auth.attempts_per_minute and auth.burst must not be negative")
	}
	return nil
}

func verifyLog(cfg *logger.Config) error {
	if _, err := logger.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch cfg.Format {
	case "", "json", "text", "console":
		return nil
	default:
		return fmt.Errorf("log.format: unknown format %q", cfg.Format)
	}
}

func verifyOutput(format string) error {
	switch format {
	case OutputTable, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("output: unknown format %q", format)
	}
}
