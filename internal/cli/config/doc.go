// Package config provides the easycar CLI configuration.
//
//   - spec.go: CLIConfig struct (~/.easycar/cli.yaml) and defaults
//   - loader.go: loading with flag > env > file > default precedence
//   - verify.go: validation
//   - sanitize.go: secret masking for display
package config
