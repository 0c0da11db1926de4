package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yndnr/easycar-go/internal/core/domain"
)

// User is an account the dev server accepts.
type User struct {
	Email        string
	PasswordHash string
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService exchanges credentials for session tokens and resolves
// tokens back to the signed-in user.
type AuthService struct {
	users  map[string]string
	tokens *TokenService
	// dummy is verified for unknown emails.
	dummy string
}

// NewAuthService creates an AuthService over users. Emails are matched
// case-insensitively; every hash must be argon2id.
func NewAuthService(users []User, tokens *TokenService) (*AuthService, error) {
	if tokens == nil {
		return nil, errors.New("token service is required")
	}

	byEmail := make(map[string]string, len(users))
	for i, u := range users {
		email := strings.ToLower(strings.TrimSpace(u.Email))
		if email == "" {
			return nil, fmt.Errorf("users[%d]: email is required", i)
		}
		if _, dup := byEmail[email]; dup {
			return nil, fmt.Errorf("users[%d]: duplicate email %s", i, email)
		}
		if err := domain.CheckPasswordHash(u.PasswordHash); err != nil {
			return nil, fmt.Errorf("users[%d]: %w", i, err)
		}
		byEmail[email] = u.PasswordHash
	}

	dummy, err := domain.HashPassword("easycar-unknown-user")
	if err != nil {
		return nil, err
	}

	return &AuthService{users: byEmail, tokens: tokens, dummy: dummy}, nil
}

// Login validates creds and, when the password matches, issues a token
// whose subject is the normalized email. Unknown users and wrong
// passwords both return ErrAuth.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (*LoginResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(creds.Email)
	hash, ok := s.users[email]
	if !ok {
		domain.VerifyPassword(creds.Password, s.dummy)
		return nil, domain.ErrAuth.WithDetails("invalid email or password")
	}
	if !domain.VerifyPassword(creds.Password, hash) {
		return nil, domain.ErrAuth.WithDetails("invalid email or password")
	}

	token, expiresAt, err := s.tokens.Issue(email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves token to the email of its user. A valid token for
// a user no longer configured is rejected.
func (s *AuthService) Authenticate(token string) (string, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return "", err
	}
	if _, ok := s.users[email]; !ok {
		return "", domain.ErrUnauthorized.WithDetails("unknown user")
	}
	return email, nil
}

// UserCount returns the number of configured users.
func (s *AuthService) UserCount() int {
	return len(s.users)
}
