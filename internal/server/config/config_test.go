package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/easycar-go/internal/core/domain"
)

func testHash(t *testing.T) string {
	t.Helper()
	hash, err := domain.HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	return hash
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Auth.TokenTTL != 12*time.Hour {
		t.Errorf("Auth.TokenTTL = %v, want 12h", cfg.Auth.TokenTTL)
	}
	if cfg.Log.Level != DefaultLogLevel || cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if len(cfg.Users) != 0 {
		t.Errorf("Users = %v, want none", cfg.Users)
	}
	if cfg.Server.TrustProxyHeaders {
		t.Error("proxy headers should not be trusted by default")
	}
	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	hash := testHash(t)
	path := filepath.Join(t.TempDir(), "devserver.yaml")
	content := `
server:
  addr: 127.0.0.1:9999
  rate_limit: 0
  trust_proxy_headers: true
auth:
  signing_key: file-signing-key-0123
  token_ttl: 30m
users:
  - email: ada@example.com
    password_hash: "` + hash + `"
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("EASYCAR_DEV_AUTH_TOKEN_TTL", "1h")

	cfg, err := Load(path, map[string]any{"log.format": "text", "server.addr": ""})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.RateLimit != 0 {
		t.Errorf("Server.RateLimit = %v, want 0", cfg.Server.RateLimit)
	}
	if cfg.Server.RateBurst != DefaultRateBurst {
		t.Errorf("Server.RateBurst = %d, want default", cfg.Server.RateBurst)
	}
	if !cfg.Server.TrustProxyHeaders {
		t.Error("Server.TrustProxyHeaders should be loaded from the file")
	}
	if cfg.Auth.SigningKey != "file-signing-key-0123" {
		t.Errorf("Auth.SigningKey = %q", cfg.Auth.SigningKey)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("Auth.TokenTTL = %v, want env override 1h", cfg.Auth.TokenTTL)
	}
	if len(cfg.Users) != 1 || cfg.Users[0].Email != "ada@example.com" || cfg.Users[0].PasswordHash != hash {
		t.Errorf("Users = %+v", cfg.Users)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestVerify(t *testing.T) {
	hash := testHash(t)

	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr string
	}{
		{"valid users", func(c *ServerConfig) {
			c.Users = []UserEntry{{Email: "ada@example.com", PasswordHash: hash}}
		}, ""},
		{"bad addr", func(c *ServerConfig) { c.Server.Addr = "localhost" }, "server.addr"},
		{"cert without key", func(c *ServerConfig) { c.Server.TLSCertFile = "cert.pem" }, "set together"},
		{"missing tls files", func(c *ServerConfig) {
			c.Server.TLSCertFile = "/nonexistent/cert.pem"
			c.Server.TLSKeyFile = "/nonexistent/key.pem"
		}, "tls file"},
		{"negative rate", func(c *ServerConfig) { c.Server.RateLimit = -1 }, "rate_limit"},
		{"zero shutdown timeout", func(c *ServerConfig) { c.Server.ShutdownTimeout = 0 }, "shutdown_timeout"},
		{"short signing key", func(c *ServerConfig) { c.Auth.SigningKey = "short" }, "signing_key"},
		{"zero ttl", func(c *ServerConfig) { c.Auth.TokenTTL = 0 }, "token_ttl"},
		{"bad email", func(c *ServerConfig) {
			c.Users = []UserEntry{{Email: "ada", PasswordHash: hash}}
		}, "users[0].email"},
		{"duplicate email", func(c *ServerConfig) {
			c.Users = []UserEntry{{Email: "ada@example.com", PasswordHash: hash}, {Email: "ADA@example.com", PasswordHash: hash}}
		}, "duplicate"},
		{"plaintext password", func(c *ServerConfig) {
			c.Users = []UserEntry{{Email: "ada@example.com", PasswordHash: "secret123"}}
		}, "password_hash"},
		{"bad log level", func(c *ServerConfig) { c.Log.Level = "loud" }, "log.level"},
		{"bad log format", func(c *ServerConfig) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Verify(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Verify() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Verify() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	hash := testHash(t)
	cfg := Default()
	cfg.Auth.SigningKey = "super-secret-key-1234567890"
	cfg.Users = []UserEntry{{Email: "ada@example.com", PasswordHash: hash}}

	sanitized := Sanitize(cfg)

	if cfg.Auth.SigningKey != "super-secret-key-1234567890" || cfg.Users[0].PasswordHash != hash {
		t.Error("original config should not be modified")
	}
	if sanitized.Auth.SigningKey == cfg.Auth.SigningKey {
		t.Error("signing key should be masked")
	}
	if len(sanitized.Auth.SigningKey) != len(cfg.Auth.SigningKey) {
		t.Errorf("masked key length = %d, want %d", len(sanitized.Auth.SigningKey), len(cfg.Auth.SigningKey))
	}
	if strings.Contains(sanitized.Users[0].PasswordHash, "argon2id") {
		t.Error("password hash should be masked")
	}
	if sanitized.Users[0].Email != "ada@example.com" {
		t.Error("email should be kept")
	}
}

func TestSanitize_EmptyKey(t *testing.T) {
	sanitized := Sanitize(Default())
	if sanitized.Auth.SigningKey != "" {
		t.Errorf("SigningKey = %q, want empty", sanitized.Auth.SigningKey)
	}
}
