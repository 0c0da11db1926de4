package config

import (
	"slices"
	"strings"
)

// Sanitize returns a copy of the config with sensitive fields masked.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	sanitized := *cfg

	if sanitized.Auth.SigningKey != "" {
		sanitized.Auth.SigningKey = maskSecret(sanitized.Auth.SigningKey)
	}

	sanitized.Users = slices.Clone(cfg.Users)
	for i := range sanitized.Users {
		sanitized.Users[i].PasswordHash = maskSecret(sanitized.Users[i].PasswordHash)
	}

	return &sanitized
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
