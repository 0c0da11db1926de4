// Package storage provides the persistent token store for easycar.
//
// The session token is the only thing the client persists. Backends:
//
//   - badger.go: embedded Badger database under ~/.easycar/data (default)
//   - redis.go: shared Redis database, keys namespaced by a prefix
//   - memory.go: process-local map for ephemeral runs and tests
//   - sealed.go: authenticated-encryption wrapper for any backend
//
// All backends report failures as domain.ErrStorage so callers can treat
// persistence uniformly as a best-effort cache of the session.
package storage
