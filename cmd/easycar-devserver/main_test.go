package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yndnr/easycar-go/internal/core/domain"
	"github.com/yndnr/easycar-go/internal/server/config"
	"github.com/yndnr/easycar-go/internal/telemetry/logger"
)

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-version"}, strings.NewReader(""), &out); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "easycar-devserver ") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRun_HashPassword(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-hash-password"}, strings.NewReader("hunter22\n"), &out); err != nil {
		t.Fatal(err)
	}
	hash := strings.TrimSpace(out.String())
	if !domain.VerifyPassword("hunter22", hash) {
		t.Errorf("printed hash %q does not verify", hash)
	}

	if err := run([]string{"-hash-password"}, strings.NewReader("abc"), &out); err == nil {
		t.Error("expected error for short password")
	}
}

func TestRun_BadFlagsAndConfig(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-no-such-flag"}, strings.NewReader(""), &out); err == nil {
		t.Error("expected error for unknown flag")
	}
	if err := run([]string{"-addr", "no-port"}, strings.NewReader(""), &out); err == nil {
		t.Error("expected error for invalid address")
	}
}

func TestInitServices_SeedsDemoUser(t *testing.T) {
	cfg := config.Default()
	services, err := initServices(cfg, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if services.Auth.UserCount() != 1 {
		t.Fatalf("UserCount() = %d, want the demo account", services.Auth.UserCount())
	}

	res, err := services.Auth.Login(t.Context(), domain.Credentials{Email: config.DemoEmail, Password: config.DemoPassword})
	if err != nil || res.Token == "" {
		t.Errorf("demo login = (%v, %v)", res, err)
	}
}

func TestInitServices_ConfiguredUsers(t *testing.T) {
	hash, err := domain.HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Auth.SigningKey = "configured-signing-key"
	cfg.Users = []config.UserEntry{{Email: "ada@example.com", PasswordHash: hash}}

	services, err := initServices(cfg, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := services.Auth.Login(t.Context(), domain.Credentials{Email: config.DemoEmail, Password: config.DemoPassword}); err == nil {
		t.Error("demo account should not exist when users are configured")
	}
}
