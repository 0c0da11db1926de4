package command

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/yndnr/easycar-go/internal/core/domain"
)

const (
	testEmail    = "driver@example.com"
	testPassword = "secret123"
)

// fakeBackend is an in-memory stand-in for the easycar API.
type fakeBackend struct {
	*httptest.Server

	mu       sync.Mutex
	tokens   map[string]bool
	vehicles []domain.Vehicle
	nextID   int
	authHits int
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{tokens: make(map[string]bool)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth", b.auth)
	mux.HandleFunc("GET /vehicle", b.authorized(b.list))
	mux.HandleFunc("POST /vehicle", b.authorized(b.create))
	mux.HandleFunc("DELETE /vehicle/{id}", b.authorized(b.delete))

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)
	return b
}

func envelope(w http.ResponseWriter, status int, code, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"code":    code,
		"message": message,
		"data":    data,
	})
}

func (b *fakeBackend) auth(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	json.NewDecoder(r.Body).Decode(&creds)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.authHits++
	if creds.Email != testEmail || creds.Password != testPassword {
		envelope(w, http.StatusUnauthorized, "EC-AUTH-4010", "invalid credentials", nil)
		return
	}
	token := fmt.Sprintf("tok-%d", len(b.tokens)+1)
	b.tokens[token] = true
	envelope(w, http.StatusOK, "OK", "ok", map[string]string{"token": token})
}

func (b *fakeBackend) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		ok := b.tokens[token]
		b.mu.Unlock()
		if !ok {
			envelope(w, http.StatusUnauthorized, "EC-AUTH-4011", "token rejected", nil)
			return
		}
		next(w, r)
	}
}

func (b *fakeBackend) list(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	envelope(w, http.StatusOK, "OK", "ok", append([]domain.Vehicle{}, b.vehicles...))
}

func (b *fakeBackend) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Plate string `json:"plate"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	v := domain.Vehicle{ID: fmt.Sprintf("v%d", b.nextID), Plate: req.Plate}
	b.vehicles = append(b.vehicles, v)
	envelope(w, http.StatusCreated, "OK", "created", v)
}

func (b *fakeBackend) delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, v := range b.vehicles {
		if v.ID == id {
			b.vehicles = append(b.vehicles[:i], b.vehicles[i+1:]...)
			envelope(w, http.StatusOK, "OK", "deleted", nil)
			return
		}
	}
	envelope(w, http.StatusNotFound, "EC-VEH-4040", "vehicle not found", nil)
}

func (b *fakeBackend) revokeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = make(map[string]bool)
}

// testEnv is a CLI installation: a config file pointing at a backend and
// a badger store in a temp dir, so state persists across runs.
type testEnv struct {
	t          *testing.T
	dir        string
	configPath string
	backend    *fakeBackend
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	backend := newFakeBackend(t)
	configPath := filepath.Join(dir, "cli.yaml")
	cfg := fmt.Sprintf(`server:
  url: %s
session:
  hydrate_delay: 0s
store:
  backend: badger
  dir: %s
  badger:
    sync_writes: false
log:
  level: warn
metrics:
  textfile: %s
`, backend.URL, filepath.Join(dir, "data"), filepath.Join(dir, "metrics.prom"))
	if err := os.WriteFile(configPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	return &testEnv{t: t, dir: dir, configPath: configPath, backend: backend}
}

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes one CLI invocation with the given stdin.
func (e *testEnv) run(stdin string, args ...string) result {
	e.t.Helper()
	var stdout, stderr bytes.Buffer

	app := App()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr

	argv := append([]string{"easycar", "--config", e.configPath}, args...)
	err := app.Run(argv)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// login signs in non-interactively and fails the test on error.
func (e *testEnv) login() {
	e.t.Helper()
	if r := e.run(testPassword+"\n", "login", "--email", testEmail, "--password-stdin"); r.err != nil {
		e.t.Fatalf("login: %v\n%s", r.err, r.stderr)
	}
}

// status returns the decoded JSON status.
func (e *testEnv) status() StatusView {
	e.t.Helper()
	r := e.run("", "--output", "json", "status")
	if r.err != nil {
		e.t.Fatalf("status: %v", r.err)
	}
	var view StatusView
	if err := json.Unmarshal([]byte(r.stdout), &view); err != nil {
		e.t.Fatalf("decode status %q: %v", r.stdout, err)
	}
	return view
}
