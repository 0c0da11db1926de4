// Package config provides configuration for easycar-devserver.
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - loader.go: file, environment and flag sources via infra/confloader
//   - verify.go: validation (addresses, TLS files, users, log settings)
//   - sanitize.go: masks secrets before the config is logged
//
// Users are configured with argon2id password hashes, never plaintext.
// Generate one with `easycar-devserver -hash-password`.
package config
