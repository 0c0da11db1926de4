package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	"github.com/yndnr/easycar-go/internal/core/domain"
)

// Token defaults.
const (
	DefaultTokenTTL    = 12 * time.Hour
	DefaultTokenIssuer = "easycar-devserver"
)

// TokenServiceConfig holds configuration for TokenService.
type TokenServiceConfig struct {
	SigningKey string
	TTL        time.Duration
	Issuer     string
}

// TokenService issues and verifies HS256 session tokens. The subject
// claim carries the user's email.
type TokenService struct {
	key    []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenService creates a TokenService. The signing key is required;
// zero TTL and issuer take the defaults.
func NewTokenService(cfg TokenServiceConfig) (*TokenService, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("token signing key is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTokenTTL
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultTokenIssuer
	}
	return &TokenService{
		key:    []byte(cfg.SigningKey),
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

// Issue signs a token for subject.
func (s *TokenService) Issue(subject string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		ID:        ulid.Make().String(),
		Issuer:    s.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify checks the signature, issuer and expiry of token and returns its
// subject. Any failure is ErrUnauthorized.
func (s *TokenService) Verify(token string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	claims := &jwt.RegisteredClaims{}
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return "", domain.ErrUnauthorized.WithCause(err)
	}
	if claims.Subject == "" {
		return "", domain.ErrUnauthorized.WithDetails("token has no subject")
	}
	return claims.Subject, nil
}

// TTL returns the lifetime of issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
