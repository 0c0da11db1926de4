package connection

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/easycar-go/internal/core/domain"
	"github.com/yndnr/easycar-go/internal/telemetry/metric"
)

// Throttle defaults for login attempts.
const (
	DefaultAttemptsPerMinute = 5
	DefaultAttemptBurst      = 3
)

// Authenticator exchanges credentials for a session token.
type Authenticator interface {
	Authenticate(ctx context.Context, creds domain.Credentials) (string, error)
}

// AuthService authenticates against POST /auth.
type AuthService struct {
	client  *HTTPClient
	limiter *rate.Limiter
	metrics *metric.Registry
}

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithThrottle limits login attempts to perMinute with the given burst.
// A non-positive perMinute disables the throttle.
func WithThrottle(perMinute, burst int) AuthOption {
	return func(s *AuthService) {
		if perMinute <= 0 {
			s.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
	}
}

// WithAuthMetrics counts attempts by result on r.
func WithAuthMetrics(r *metric.Registry) AuthOption {
	return func(s *AuthService) { s.metrics = r }
}

// NewAuthService creates an AuthService over client.
func NewAuthService(client *HTTPClient, opts ...AuthOption) *AuthService {
	s := &AuthService{client: client}
	WithThrottle(DefaultAttemptsPerMinute, DefaultAttemptBurst)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type authResponse struct {
	Token string `json:"token"`
}

// Authenticate validates creds, posts them to the backend and returns the
// issued token. Invalid input is domain.ErrValidation and no request is
// made. Every backend or transport failure is domain.ErrAuth.
func (s *AuthService) Authenticate(ctx context.Context, creds domain.Credentials) (string, error) {
	if err := creds.Validate(); err != nil {
		return "", err
	}

	if s.limiter != nil && !s.limiter.Allow() {
		s.metrics.AuthAttempt("throttled")
		return "", domain.ErrAuthThrottled
	}

	token, err := s.exchange(ctx, creds)
	if err != nil {
		s.metrics.AuthAttempt("failure")
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", domain.ErrAuth.WithCause(err)
	}

	s.metrics.AuthAttempt("success")
	return token, nil
}

func (s *AuthService) exchange(ctx context.Context, creds domain.Credentials) (string, error) {
	resp, err := s.client.Post(ctx, "/auth", creds)
	if err != nil {
		return "", err
	}

	var out authResponse
	if err := ParseResponse(resp, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("response carries no token")
	}
	return out.Token, nil
}
