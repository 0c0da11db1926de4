package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can tell about a session token without
// verifying it. Tokens are opaque to the client; only JWT-shaped tokens
// yield claims.
type TokenInfo struct {
	JWT       bool      `json:"jwt" yaml:"jwt"`
	Subject   string    `json:"subject,omitempty" yaml:"subject,omitempty"`
	IssuedAt  time.Time `json:"issued_at,omitzero" yaml:"issued_at,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitzero" yaml:"expires_at,omitempty"`
}

// Expired reports whether the token carries an expiry that lies before now.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// InspectToken decodes the claims of a JWT-shaped token without checking
// its signature. The backend remains the authority on validity.
func InspectToken(token string) TokenInfo {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}
	}

	info := TokenInfo{JWT: true, Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info
}
