package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name       string
		creds      Credentials
		wantErr    bool
		wantDetail string
	}{
		{"valid", Credentials{Email: "ana@example.com", Password: "secret1"}, false, ""},
		{"trims email", Credentials{Email: "  ana@example.com ", Password: "secret1"}, false, ""},
		{"missing email", Credentials{Password: "secret1"}, true, "email: enter an email"},
		{"malformed email", Credentials{Email: "ana.example.com", Password: "secret1"}, true, "email: invalid email"},
		{"no domain dot", Credentials{Email: "ana@localhost", Password: "secret1"}, true, "email: invalid email"},
		{"display name", Credentials{Email: "Ana <ana@example.com>", Password: "secret1"}, true, "email: invalid email"},
		{"missing password", Credentials{Email: "ana@example.com"}, true, "password: enter your password"},
		{"short password", Credentials{Email: "ana@example.com", Password: "12345"}, true, "password: password too short"},
		{"both invalid", Credentials{}, true, "email: enter an email; password: enter your password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error should be ErrValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantDetail) {
				t.Errorf("error = %q, want detail %q", err.Error(), tt.wantDetail)
			}
		})
	}
}

func TestNormalizePlate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantMsg string
	}{
		{"abc1d23", "ABC1D23", ""},
		{" ABC1234 ", "ABC1234", ""},
		{"", "", "enter the plate"},
		{"ABC-123", "", "use letters and digits only"},
		{"ABC 123", "", "use letters and digits only"},
		{"ABC12", "", "invalid plate"},
		{"ABC12345", "", "invalid plate"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizePlate(tt.in)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("NormalizePlate(%q) error = %v", tt.in, err)
				}
				if got != tt.want {
					t.Errorf("NormalizePlate(%q) = %q, want %q", tt.in, got, tt.want)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("NormalizePlate(%q) error = %v, want %q", tt.in, err, tt.wantMsg)
			}
		})
	}
}

func TestInspectToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ana@example.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}

	info := InspectToken(signed)
	if !info.JWT {
		t.Fatal("expected JWT token")
	}
	if info.Subject != "ana@example.com" {
		t.Errorf("Subject = %q", info.Subject)
	}
	if !info.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", info.ExpiresAt, exp)
	}
	if info.Expired(time.Now()) {
		t.Error("token should not be expired yet")
	}
	if !info.Expired(exp.Add(time.Second)) {
		t.Error("token should be expired after exp")
	}

	opaque := InspectToken("b2c1f0e9-opaque")
	if opaque.JWT || opaque.Expired(time.Now()) {
		t.Errorf("opaque token info = %+v", opaque)
	}
}
