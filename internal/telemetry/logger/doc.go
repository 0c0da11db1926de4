// Package logger provides structured logging for easycar.
//
// It wraps the standard library log/slog:
//
//   - logger.go: Logger interface, handlers and runtime level control
//   - context.go: Context-aware logging with request IDs
//   - redact.go: Sensitive data redaction
//
// Every handler built by New redacts attributes whose key names a secret
// (token, password, secret, authorization) and masks JWT-shaped values
// wherever they appear.
package logger
