package connection

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/easycar-go/internal/infra/buildinfo"
	"github.com/yndnr/easycar-go/internal/telemetry/logger"
	"github.com/yndnr/easycar-go/internal/telemetry/metric"
)

// writeEnvelope writes a backend-style response.
func writeEnvelope(w http.ResponseWriter, status int, code, message string, data any) {
	body := map[string]any{
		"code":       code,
		"message":    message,
		"request_id": "req-1",
		"timestamp":  time.Now().UnixMilli(),
	}
	if data != nil {
		body["data"] = data
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...ClientOption) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts = append([]ClientOption{WithClientLogger(logger.Discard())}, opts...)
	return NewHTTPClient(srv.URL, opts...)
}

func TestNewHTTPClient(t *testing.T) {
	tests := []struct {
		name       string
		server     string
		wantPrefix string
	}{
		{"with http prefix", "http://localhost:8080", "http://localhost:8080"},
		{"with https prefix", "https://localhost:8080", "https://localhost:8080"},
		{"without prefix", "localhost:8080", "http://localhost:8080"},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080"},
		{"hostname only", "api.example.com", "http://api.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewHTTPClient(tt.server)
			if client.BaseURL() != tt.wantPrefix {
				t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), tt.wantPrefix)
			}
		})
	}
}

func TestHTTPClient_Headers(t *testing.T) {
	var got http.Header
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		if r.URL.Path != "/vehicle" {
			t.Errorf("path = %q, want /vehicle", r.URL.Path)
		}
		writeEnvelope(w, http.StatusOK, "OK", "ok", nil)
	})

	t.Run("without token", func(t *testing.T) {
		resp, err := client.Get(context.Background(), "vehicle")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()

		if got.Get("Authorization") != "" {
			t.Errorf("Authorization = %q, want none", got.Get("Authorization"))
		}
		if got.Get("User-Agent") != buildinfo.UserAgent() {
			t.Errorf("User-Agent = %q", got.Get("User-Agent"))
		}
		if len(got.Get("X-Request-ID")) != 26 {
			t.Errorf("X-Request-ID = %q, want a ULID", got.Get("X-Request-ID"))
		}
		if got.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q", got.Get("Accept"))
		}
	})

	t.Run("with token", func(t *testing.T) {
		client.SetToken("tok")
		defer client.SetToken("")

		resp, err := client.Get(context.Background(), "/vehicle")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()

		if got.Get("Authorization") != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", got.Get("Authorization"))
		}
	})
}

func TestHTTPClient_PostBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"plate":"ABC1234"`) {
			t.Errorf("body = %s", body)
		}
		writeEnvelope(w, http.StatusCreated, "OK", "created", nil)
	})

	resp, err := client.Post(context.Background(), "/vehicle", map[string]string{"plate": "ABC1234"})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestHTTPClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	if _, err := client.Get(context.Background(), "/slow"); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestHTTPClient_Metrics(t *testing.T) {
	reg := metric.NewRegistry()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "OK", "ok", nil)
	}, WithClientMetrics(reg))

	for range 2 {
		resp, err := client.Get(context.Background(), "/health")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}

	if n := testutil.CollectAndCount(reg.RequestDuration, "easycar_http_request_duration_seconds"); n != 1 {
		t.Errorf("series = %d, want 1", n)
	}
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		header   string
		wantData string
		wantErr  *APIError
	}{
		{
			name:     "success with data",
			status:   http.StatusOK,
			body:     `{"code":"OK","message":"ok","data":{"token":"abc"}}`,
			wantData: "abc",
		},
		{
			name:   "success without data",
			status: http.StatusOK,
			body:   `{"code":"OK","message":"ok"}`,
		},
		{
			name:    "error envelope",
			status:  http.StatusUnauthorized,
			body:    `{"code":"EC-AUTH-4010","message":"bad credentials","request_id":"r1"}`,
			wantErr: &APIError{Status: 401, Code: "EC-AUTH-4010", Message: "bad credentials", RequestID: "r1"},
		},
		{
			name:    "error without body",
			status:  http.StatusBadGateway,
			header:  "r2",
			wantErr: &APIError{Status: 502, Message: "Bad Gateway", RequestID: "r2"},
		},
		{
			name:    "error with html body",
			status:  http.StatusInternalServerError,
			body:    `<html>oops</html>`,
			wantErr: &APIError{Status: 500, Message: "Internal Server Error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if tt.header != "" {
				rec.Header().Set("X-Request-ID", tt.header)
			}
			rec.WriteHeader(tt.status)
			rec.WriteString(tt.body)

			var out struct {
				Token string `json:"token"`
			}
			err := ParseResponse(rec.Result(), &out)

			if tt.wantErr != nil {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("error = %v, want *APIError", err)
				}
				if *apiErr != *tt.wantErr {
					t.Errorf("APIError = %+v, want %+v", *apiErr, *tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Token != tt.wantData {
				t.Errorf("token = %q, want %q", out.Token, tt.wantData)
			}
		})
	}
}

func TestParseResponse_MalformedSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.WriteString("not json")
	if err := ParseResponse(rec.Result(), nil); err == nil {
		t.Error("expected parse error")
	}
}

func TestAPIError_Error(t *testing.T) {
	withCode := &APIError{Status: 404, Code: "EC-VEH-4040", Message: "vehicle not found"}
	if got := withCode.Error(); got != "[EC-VEH-4040] vehicle not found (HTTP 404)" {
		t.Errorf("Error() = %q", got)
	}
	plain := &APIError{Status: 502, Message: "Bad Gateway"}
	if got := plain.Error(); got != "Bad Gateway (HTTP 502)" {
		t.Errorf("Error() = %q", got)
	}
}
