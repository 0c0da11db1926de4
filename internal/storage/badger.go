package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"
)

// BadgerStore implements TokenStore on an embedded Badger v3 database.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger
	closed atomic.Bool

	// sizeAtClose keeps the size gauge readable after Close.
	sizeAtClose atomic.Int64
}

// NewBadgerStore opens (or creates) a Badger database in dir.
func NewBadgerStore(dir string, cfg BadgerConfig, logger *slog.Logger) (*BadgerStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = &badgerLogger{logger: logger}
	opts.SyncWrites = cfg.SyncWrites
	opts.NumVersionsToKeep = 1
	opts.MemTableSize = 8 << 20
	opts.BlockCacheSize = 1 << 20
	opts.IndexCacheSize = 1 << 20
	if cfg.ValueLogFileSize > 0 {
		opts.ValueLogFileSize = cfg.ValueLogFileSize
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	logger.Debug("badger token store opened", "dir", dir, "sync_writes", cfg.SyncWrites)

	return &BadgerStore{db: db, logger: logger}, nil
}

// Get retrieves a value by key.
func (s *BadgerStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.closed.Load() {
		return "", false, storageError("get", key, ErrClosed)
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storageError("get", key, err)
	}
	return string(value), true, nil
}

// Set stores a key-value pair.
func (s *BadgerStore) Set(ctx context.Context, key, value string) error {
	if s.closed.Load() {
		return storageError("set", key, ErrClosed)
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	return storageError("set", key, err)
}

// Remove deletes a key. Deleting an absent key succeeds.
func (s *BadgerStore) Remove(ctx context.Context, key string) error {
	if s.closed.Load() {
		return storageError("remove", key, ErrClosed)
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	return storageError("remove", key, err)
}

// Close flushes and closes the database.
func (s *BadgerStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	lsm, vlog := s.db.Size()
	s.sizeAtClose.Store(lsm + vlog)
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("badger: close db: %w", err)
	}
	s.logger.Debug("badger token store closed")
	return nil
}

// RegisterMetrics exposes the on-disk size of the store. After Close the
// gauge reports the size at the time of closing.
func (s *BadgerStore) RegisterMetrics(reg prometheus.Registerer) error {
	size := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "easycar",
		Subsystem: "badger",
		Name:      "size_bytes",
		Help:      "Badger token store size in bytes (LSM + value log)",
	}, func() float64 {
		if s.closed.Load() {
			return float64(s.sizeAtClose.Load())
		}
		lsm, vlog := s.db.Size()
		return float64(lsm + vlog)
	})
	return reg.Register(size)
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
// Badger is chatty at info level, so info is demoted to debug.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
