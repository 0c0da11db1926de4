package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/easycar-go/internal/cli/connection"
	"github.com/yndnr/easycar-go/internal/core/domain"
	"github.com/yndnr/easycar-go/internal/core/service"
	"github.com/yndnr/easycar-go/internal/server/httpserver/handler"
	"github.com/yndnr/easycar-go/internal/telemetry/logger"
	"github.com/yndnr/easycar-go/internal/telemetry/metric"
)

const (
	testEmail    = "ada@example.com"
	testPassword = "secret123"
)

type testServer struct {
	*httptest.Server
	metrics *metric.Registry
	auth    *service.AuthService
}

func newTestServer(t *testing.T, rateLimit float64, burst int) *testServer {
	t.Helper()
	hash, err := domain.HashPassword(testPassword)
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := service.NewTokenService(service.TokenServiceConfig{SigningKey: "router-test-signing-key"})
	if err != nil {
		t.Fatal(err)
	}
	auth, err := service.NewAuthService([]service.User{{Email: testEmail, PasswordHash: hash}}, tokens)
	if err != nil {
		t.Fatal(err)
	}

	metrics := metric.NewRegistry()
	router := NewRouter(&RouterConfig{
		AuthService:    auth,
		VehicleService: service.NewVehicleService(),
		Metrics:        metrics,
		Logger:         logger.Discard(),
		RateLimit:      rateLimit,
		RateBurst:      burst,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, metrics: metrics, auth: auth}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*http.Response, handler.Response) {
	t.Helper()
	req, err := http.NewRequest(method, s.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var env handler.Response
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
	}
	return resp, env
}

func TestRouter_Routes(t *testing.T) {
	srv := newTestServer(t, 0, 0)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK, "OK"},
		{"auth bad password", http.MethodPost, "/auth", `{"email":"ada@example.com","password":"nope-nope"}`, http.StatusUnauthorized, "EC-AUTH-4010"},
		{"vehicles without token", http.MethodGet, "/vehicle", "", http.StatusUnauthorized, "EC-AUTH-4011"},
		{"create without token", http.MethodPost, "/vehicle", `{"plate":"AB12CD3"}`, http.StatusUnauthorized, "EC-AUTH-4011"},
		{"delete without token", http.MethodDelete, "/vehicle/x", "", http.StatusUnauthorized, "EC-AUTH-4011"},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound, "EC-HTTP-4040"},
		{"wrong method", http.MethodGet, "/auth", "", http.StatusMethodNotAllowed, "EC-HTTP-4050"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := srv.do(t, tt.method, tt.path, "", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if env.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", env.Code, tt.wantCode)
			}
			if resp.Header.Get("X-Request-ID") == "" || env.RequestID != resp.Header.Get("X-Request-ID") {
				t.Errorf("request id header %q, envelope %q", resp.Header.Get("X-Request-ID"), env.RequestID)
			}
		})
	}
}

func TestRouter_RejectsBadTokens(t *testing.T) {
	srv := newTestServer(t, 0, 0)

	for _, token := range []string{"garbage", "eyJhbGciOiJIUzI1NiJ9.e30.sig"} {
		resp, env := srv.do(t, http.MethodGet, "/vehicle", token, "")
		if resp.StatusCode != http.StatusUnauthorized || env.Code != domain.ErrUnauthorized.Code {
			t.Errorf("token %q: status = %d, code = %q", token, resp.StatusCode, env.Code)
		}
	}
}

func TestRouter_Metrics(t *testing.T) {
	srv := newTestServer(t, 0, 0)
	srv.do(t, http.MethodGet, "/health", "", "")

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if n := testutil.CollectAndCount(srv.metrics.RequestDuration); n == 0 {
		t.Error("request latency should be recorded")
	}
}

func TestRouter_RateLimit(t *testing.T) {
	srv := newTestServer(t, 0.001, 2)

	for i := 0; i < 2; i++ {
		if resp, _ := srv.do(t, http.MethodGet, "/health", "", ""); resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d status = %d", i, resp.StatusCode)
		}
	}

	resp, env := srv.do(t, http.MethodGet, "/health", "", "")
	if resp.StatusCode != http.StatusTooManyRequests || env.Code != CodeRateLimited {
		t.Errorf("status = %d, code = %q", resp.StatusCode, env.Code)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("Retry-After should be set")
	}
}

// TestRouter_ClientRoundTrip drives the CLI's backend client against the
// dev server.
func TestRouter_ClientRoundTrip(t *testing.T) {
	srv := newTestServer(t, 0, 0)
	ctx := context.Background()

	client := connection.NewHTTPClient(srv.URL, connection.WithClientLogger(logger.Discard()))
	auth := connection.NewAuthService(client)
	vehicles := connection.NewVehicleService(client)

	if _, err := auth.Authenticate(ctx, domain.Credentials{Email: testEmail, Password: "wrong-pass"}); !errors.Is(err, domain.ErrAuth) {
		t.Fatalf("Authenticate(wrong) error = %v", err)
	}

	token, err := auth.Authenticate(ctx, domain.Credentials{Email: testEmail, Password: testPassword})
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if info := domain.InspectToken(token); info.Subject != testEmail {
		t.Errorf("token subject = %q", info.Subject)
	}

	if _, err := vehicles.List(ctx); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("List() without token error = %v, want ErrUnauthorized", err)
	}
	client.SetToken(token)

	list, err := vehicles.List(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("List() = (%v, %v), want empty", list, err)
	}

	v, err := vehicles.Create(ctx, "xy98zw7")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if v.Plate != "XY98ZW7" || v.ID == "" {
		t.Errorf("Create() = %+v", v)
	}

	if _, err := vehicles.Create(ctx, "XY98ZW7"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("duplicate Create() error = %v, want ErrValidation", err)
	}

	list, _ = vehicles.List(ctx)
	if len(list) != 1 || list[0] != v {
		t.Errorf("List() = %+v", list)
	}

	if err := vehicles.Delete(ctx, v.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := vehicles.Delete(ctx, v.ID); !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Errorf("second Delete() error = %v, want ErrVehicleNotFound", err)
	}
}
