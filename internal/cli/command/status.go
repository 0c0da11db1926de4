package command

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/easycar-go/internal/core/domain"
)

// StatusView is what `easycar status` reports.
type StatusView struct {
	Phase     string    `json:"phase" yaml:"phase"`
	Graph     string    `json:"graph" yaml:"graph"`
	Server    string    `json:"server" yaml:"server"`
	Store     string    `json:"store" yaml:"store"`
	Subject   string    `json:"subject,omitempty" yaml:"subject,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitzero" yaml:"expires_at,omitempty"`
	Expired   bool      `json:"expired" yaml:"expired"`
}

// StatusCommand returns the status command.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show the session state",
		Action: statusAction,
	}
}

func statusAction(c *cli.Context) error {
	rt, err := RuntimeFrom(c)
	if err != nil {
		return err
	}
	if err := rt.Boot(c.Context); err != nil {
		return err
	}

	state := rt.Session.State()
	view := StatusView{
		Phase:  state.Phase().String(),
		Graph:  rt.Gate.Current().String(),
		Server: rt.Conn.Client.BaseURL(),
		Store:  storeName(rt.Config.Store.Backend, rt.Config.Store.Secret != ""),
	}
	if state.HasToken() {
		info := domain.InspectToken(state.Token)
		view.Subject = info.Subject
		view.ExpiresAt = info.ExpiresAt
		view.Expired = info.Expired(time.Now())
	}
	return rt.Render(view)
}

func storeName(backend string, sealed bool) string {
	if backend == "" {
		backend = "badger"
	}
	if sealed {
		return backend + " (sealed)"
	}
	return backend
}
