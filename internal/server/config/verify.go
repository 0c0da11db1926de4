package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/yndnr/easycar-go/internal/core/domain"
	"github.com/yndnr/easycar-go/internal/telemetry/logger"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	return errors.Join(
		verifyServer(&cfg.Server),
		verifyAuth(&cfg.Auth),
		verifyUsers(cfg.Users),
		verifyLog(&cfg.Log),
	)
}

func verifyServer(cfg *ServerSection) error {
	var errs []error
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		errs = append(errs, fmt.Errorf("server.addr: %w", err))
	}

	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		errs = append(errs, errors.New("server.tls_cert_file and server.tls_key_file must be set together"))
	}
	for _, f := range []string{cfg.TLSCertFile, cfg.TLSKeyFile} {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			errs = append(errs, fmt.Errorf("server tls file: %w", err))
		}
	}

	if cfg.RateLimit < 0 {
		errs = append(errs, errors.New("server.rate_limit must not be negative"))
	}
	if cfg.RateBurst < 0 {
		errs = append(errs, errors.New("server.rate_burst must not be negative"))
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	return errors.Join(errs...)
}

func verifyAuth(cfg *AuthSection) error {
	var errs []error
	if cfg.SigningKey != "" && len(cfg.SigningKey) < MinSigningKeyLength {
		errs = append(errs, fmt.Errorf("auth.signing_key must be at least %d bytes", MinSigningKeyLength))
	}
	if cfg.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	return errors.Join(errs...)
}

func verifyUsers(users []UserEntry) error {
	var errs []error
	seen := make(map[string]bool, len(users))
	for i, u := range users {
		email := strings.ToLower(strings.TrimSpace(u.Email))
		creds := domain.Credentials{Email: email, Password: "placeholder"}
		if err := creds.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("users[%d].email: %q is not a valid email", i, u.Email))
		}
		if seen[email] {
			errs = append(errs, fmt.Errorf("users[%d].email: duplicate %s", i, email))
		}
		seen[email] = true

		if err := domain.CheckPasswordHash(u.PasswordHash); err != nil {
			errs = append(errs, fmt.Errorf("users[%d].password_hash: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func verifyLog(cfg *logger.Config) error {
	var errs []error
	if _, err := logger.ParseLevel(cfg.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(cfg.Format) {
	case "", "json", "text", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", cfg.Format))
	}
	return errors.Join(errs...)
}
