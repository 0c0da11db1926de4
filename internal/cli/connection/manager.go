package connection

import (
	"sync"

	"github.com/yndnr/easycar-go/internal/core/session"
)

// Manager bundles the backend services that share one HTTP client and
// keeps that client's bearer token equal to the session token.
type Manager struct {
	Client   *HTTPClient
	Auth     *AuthService
	Vehicles *VehicleService

	mu     sync.Mutex
	detach func()
}

// NewManager creates a manager over client.
func NewManager(client *HTTPClient, authOpts ...AuthOption) *Manager {
	return &Manager{
		Client:   client,
		Auth:     NewAuthService(client, authOpts...),
		Vehicles: NewVehicleService(client),
	}
}

// Connect follows src: every published state sets the client token. A
// previous source is detached first.
func (m *Manager) Connect(src session.Source) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.detach != nil {
		m.detach()
	}
	m.detach = src.Subscribe(func(s session.State) {
		m.Client.SetToken(s.Token)
	})
}

// Disconnect stops following the session and clears the token.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.detach != nil {
		m.detach()
		m.detach = nil
	}
	m.Client.SetToken("")
}
