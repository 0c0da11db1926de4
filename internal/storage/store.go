package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/easycar-go/internal/core/domain"
)

// DefaultTokenKey is the key under which the session token is persisted.
const DefaultTokenKey = "@easycar/session-token"

// Backend names accepted by Open.
const (
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("token store closed")

// TokenStore is key-value persistence that survives process restarts.
//
// Get reports ok=false without error when the key is absent. Removing an
// absent key is not an error. Failures are wrapped as domain.ErrStorage.
type TokenStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Config selects and configures a TokenStore backend.
type Config struct {
	// Backend is one of "badger" (default), "redis" or "memory".
	Backend string `koanf:"backend" yaml:"backend"`

	// Dir is the badger data directory.
	Dir string `koanf:"dir" yaml:"dir"`

	// Secret, when set, seals stored values with a key derived from it.
	Secret string `koanf:"secret" yaml:"secret"`

	Badger BadgerConfig `koanf:"badger" yaml:"badger"`
	Redis  RedisConfig  `koanf:"redis" yaml:"redis"`
}

// BadgerConfig contains Badger tuning for a tiny, write-rarely store.
type BadgerConfig struct {
	// SyncWrites fsyncs every write. Default: true
	SyncWrites bool `koanf:"sync_writes" yaml:"sync_writes"`

	// ValueLogFileSize is the max value log file size in bytes.
	// Default: 16MB
	ValueLogFileSize int64 `koanf:"value_log_file_size" yaml:"value_log_file_size"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string        `koanf:"addr" yaml:"addr"`
	Password string        `koanf:"password" yaml:"password"`
	DB       int           `koanf:"db" yaml:"db"`
	Prefix   string        `koanf:"prefix" yaml:"prefix"`
	TTL      time.Duration `koanf:"ttl" yaml:"ttl"`
}

// DefaultConfig returns the default store configuration rooted at dir.
func DefaultConfig(dir string) Config {
	return Config{
		Backend: BackendBadger,
		Dir:     dir,
		Badger: BadgerConfig{
			SyncWrites:       true,
			ValueLogFileSize: 16 << 20,
		},
		Redis: RedisConfig{
			Addr:   "127.0.0.1:6379",
			Prefix: "easycar:",
		},
	}
}

// Open creates the configured backend, sealing it when a secret is set.
func Open(cfg Config, logger *slog.Logger) (TokenStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		store TokenStore
		err   error
	)
	switch cfg.Backend {
	case "", BackendBadger:
		store, err = NewBadgerStore(cfg.Dir, cfg.Badger, logger)
	case BackendRedis:
		store, err = NewRedisStore(cfg.Redis)
	case BackendMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Secret == "" {
		return store, nil
	}
	sealed, err := NewSealedStore(store, []byte(cfg.Secret))
	if err != nil {
		store.Close()
		return nil, err
	}
	return sealed, nil
}

// RegisterMetrics registers the backend metrics of store on reg, looking
// through a SealedStore. Backends without metrics register nothing.
func RegisterMetrics(store TokenStore, reg prometheus.Registerer) error {
	if sealed, ok := store.(*SealedStore); ok {
		store = sealed.Unwrap()
	}
	if b, ok := store.(*BadgerStore); ok {
		return b.RegisterMetrics(reg)
	}
	return nil
}

// storageError wraps a backend failure as domain.ErrStorage.
func storageError(op, key string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrStorage) {
		return err
	}
	return domain.ErrStorage.WithDetails(op + " " + key).WithCause(err)
}
