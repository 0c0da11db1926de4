package config

import "strings"

// Sanitize returns a copy of the config with secrets masked for display.
func Sanitize(cfg *CLIConfig) *CLIConfig {
	sanitized := *cfg

	if sanitized.Store.Secret != "" {
		sanitized.Store.Secret = maskSecret(sanitized.Store.Secret)
	}
	if sanitized.Store.Redis.Password != "" {
		sanitized.Store.Redis.Password = maskSecret(sanitized.Store.Redis.Password)
	}

	return &sanitized
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
