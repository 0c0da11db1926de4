package logger

import (
	"log/slog"
	"strings"
)

// jwtPrefix starts every base64url-encoded JSON header, so any value
// beginning with it is treated as a bearer token.
const jwtPrefix = "eyJ"

// Sensitive key patterns that should be redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"authorization",
	"bearer",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive redacts an attribute that carries a credential.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()

		// JWT values are masked even under innocent keys.
		if IsSensitiveValue(strVal) {
			return slog.String(a.Key, maskValue(strVal))
		}

		if strVal != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
		return a
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// maskValue keeps the JWT prefix and the last 4 characters.
func maskValue(value string) string {
	if len(value) <= len(jwtPrefix)+8 {
		return jwtPrefix + "***"
	}
	return jwtPrefix + "..." + value[len(value)-4:]
}

// RedactString masks a token before it is printed outside the logger,
// e.g. in `easycar status` output.
func RedactString(value string) string {
	if value == "" {
		return ""
	}
	if IsSensitiveValue(value) {
		return maskValue(value)
	}
	if len(value) <= 8 {
		return "***"
	}
	return value[:4] + "..." + value[len(value)-4:]
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}

// IsSensitiveValue reports whether a value looks like a JWT.
func IsSensitiveValue(value string) bool {
	return strings.HasPrefix(value, jwtPrefix) && strings.Count(value, ".") == 2
}
