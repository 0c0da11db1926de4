package connection

import (
	"context"
	"testing"

	"github.com/yndnr/easycar-go/internal/core/session"
	"github.com/yndnr/easycar-go/internal/storage"
	"github.com/yndnr/easycar-go/internal/telemetry/logger"
)

func TestManager_FollowsSession(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	store.Set(ctx, storage.DefaultTokenKey, "stored")

	ctrl := session.NewController(store,
		session.WithHydrateDelay(0),
		session.WithLogger(logger.Discard()))
	defer ctrl.Close()

	m := NewManager(NewHTTPClient("localhost:8080"))
	m.Connect(ctrl)
	if m.Client.Token() != "" {
		t.Errorf("token before hydration = %q", m.Client.Token())
	}

	if err := ctrl.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if got := m.Client.Token(); got != "stored" {
		t.Errorf("token after hydration = %q, want stored", got)
	}

	ctrl.SignIn(ctx, "fresh")
	if got := m.Client.Token(); got != "fresh" {
		t.Errorf("token after sign in = %q, want fresh", got)
	}

	ctrl.SignOut(ctx)
	if got := m.Client.Token(); got != "" {
		t.Errorf("token after sign out = %q, want empty", got)
	}
}

func TestManager_Disconnect(t *testing.T) {
	ctx := context.Background()
	ctrl := session.NewController(storage.NewMemoryStore(),
		session.WithHydrateDelay(0),
		session.WithLogger(logger.Discard()))
	defer ctrl.Close()

	m := NewManager(NewHTTPClient("localhost:8080"))
	m.Connect(ctrl)
	ctrl.SignIn(ctx, "tok")

	m.Disconnect()
	m.Disconnect()
	if m.Client.Token() != "" {
		t.Error("Disconnect should clear the token")
	}

	ctrl.SignIn(ctx, "other")
	if m.Client.Token() != "" {
		t.Error("detached manager should not follow the session")
	}
}
