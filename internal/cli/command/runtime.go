package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/yndnr/easycar-go/internal/cli/config"
	"github.com/yndnr/easycar-go/internal/cli/connection"
	"github.com/yndnr/easycar-go/internal/cli/output"
	"github.com/yndnr/easycar-go/internal/core/domain"
	"github.com/yndnr/easycar-go/internal/core/session"
	"github.com/yndnr/easycar-go/internal/infra/shutdown"
	"github.com/yndnr/easycar-go/internal/infra/tlsroots"
	"github.com/yndnr/easycar-go/internal/storage"
	"github.com/yndnr/easycar-go/internal/telemetry/logger"
	"github.com/yndnr/easycar-go/internal/telemetry/metric"
)

const runtimeKey = "runtime"

// Gate errors.
var (
	ErrNotSignedIn     = errors.New("not signed in: run 'easycar login'")
	ErrAlreadySignedIn = errors.New("already signed in")
	ErrNoRuntime       = errors.New("command runtime not initialized")
)

// Runtime holds the dependencies of one CLI run. Commands get it from the
// app metadata; nothing is reached through package globals.
type Runtime struct {
	Config     *config.CLIConfig
	ConfigArg  string
	Flags      map[string]any
	Logger     logger.Logger
	Metrics    *metric.Registry
	Format     output.Format
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Store      storage.TokenStore
	Session    *session.Controller
	Gate       *session.Gate
	Conn       *connection.Manager
	shutdown   *shutdown.Handler
	bootOnce   sync.Once
	bootErr    error
	storeOpen  func(storage.Config, logger.Logger) (storage.TokenStore, error)
	isTerminal func(any) bool
}

// newRuntime loads the configuration and logger. The session is booted
// lazily by Boot.
func newRuntime(c *cli.Context) (*Runtime, error) {
	flags := map[string]any{
		"server.url": c.String("server"),
		"output":     c.String("output"),
	}
	if c.Bool("verbose") {
		flags["log.level"] = "debug"
	}
	if c.Bool("ephemeral") {
		flags["store.backend"] = storage.BackendMemory
	}

	cfg, err := config.Load(c.String("config"), flags)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logCfg := cfg.Log
	logCfg.Output = c.App.ErrWriter
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)

	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{
		Config:     cfg,
		ConfigArg:  c.String("config"),
		Flags:      flags,
		Logger:     log,
		Metrics:    metric.NewRegistry(),
		Format:     format,
		Stdin:      c.App.Reader,
		Stdout:     c.App.Writer,
		Stderr:     c.App.ErrWriter,
		shutdown:   shutdown.NewHandler(5 * time.Second),
		storeOpen:  openStore,
		isTerminal: isTerminal,
	}

	textfile := cfg.Metrics.Textfile
	rt.shutdown.OnShutdown(func(context.Context) error {
		return rt.Metrics.WriteTextfile(textfile)
	})
	return rt, nil
}

func openStore(cfg storage.Config, log logger.Logger) (storage.TokenStore, error) {
	return storage.Open(cfg, logger.Slog(log))
}

// ConfigPath returns the configuration file in effect.
func (rt *Runtime) ConfigPath() string {
	if rt.ConfigArg != "" {
		return rt.ConfigArg
	}
	return config.DefaultConfigPath()
}

// Boot opens the token store, starts the session controller and waits for
// hydration. It runs once; later calls return the first result.
func (rt *Runtime) Boot(ctx context.Context) error {
	rt.bootOnce.Do(func() {
		rt.bootErr = rt.boot(ctx)
	})
	return rt.bootErr
}

func (rt *Runtime) boot(ctx context.Context) error {
	cfg := rt.Config

	store, err := rt.storeOpen(cfg.Store, rt.Logger)
	if err != nil {
		rt.Logger.Warn("token store unavailable, the session will not persist",
			"backend", cfg.Store.Backend, "error", err)
		rt.Metrics.StoreError("open")
		store = storage.NewMemoryStore()
	}
	if err := storage.RegisterMetrics(store, rt.Metrics.Registerer()); err != nil {
		rt.Logger.Warn("register token store metrics", "error", err)
	}
	rt.Store = store
	rt.shutdown.OnShutdown(func(context.Context) error { return store.Close() })

	policy, err := session.ParsePersistPolicy(cfg.Session.PersistFailures)
	if err != nil {
		return err
	}
	rt.Session = session.NewController(store,
		session.WithLogger(rt.Logger),
		session.WithMetrics(rt.Metrics),
		session.WithHydrateDelay(cfg.Session.HydrateDelay),
		session.WithTokenKey(cfg.Session.TokenKey),
		session.WithPersistPolicy(policy),
		session.WithSupersedeHydration(cfg.Session.SupersedeHydration),
	)
	rt.shutdown.OnShutdown(func(context.Context) error { return rt.Session.Close() })

	rt.Gate = session.NewGate(session.MounterFunc(func(g session.Graph) {
		rt.Logger.Debug("graph mounted", "graph", g.String())
	}))
	rt.Gate.Attach(rt.Session)

	client, err := rt.newClient()
	if err != nil {
		return err
	}
	rt.Conn = connection.NewManager(client,
		connection.WithThrottle(cfg.Auth.AttemptsPerMinute, cfg.Auth.Burst),
		connection.WithAuthMetrics(rt.Metrics))
	rt.Conn.Connect(rt.Session)
	rt.shutdown.OnShutdown(func(context.Context) error {
		rt.Conn.Disconnect()
		return nil
	})

	var spinner *output.Spinner
	if rt.isTerminal(rt.Stderr) && cfg.Session.HydrateDelay > 0 {
		spinner = output.NewSpinner(rt.Stderr, "Loading session")
		spinner.Start()
	}
	err = rt.Session.Start(ctx)
	if spinner != nil {
		if err != nil {
			spinner.Fail("Session could not be loaded")
		} else {
			spinner.Stop()
		}
	}
	return err
}

func (rt *Runtime) newClient() (*connection.HTTPClient, error) {
	opts := []connection.ClientOption{
		connection.WithTimeout(rt.Config.Server.Timeout),
		connection.WithClientLogger(rt.Logger),
		connection.WithClientMetrics(rt.Metrics),
	}
	if strings.HasPrefix(rt.Config.Server.URL, "https://") {
		tlsCfg, err := tlsroots.ClientTLSConfig(rt.Config.Server.CAFile)
		if err != nil {
			return nil, fmt.Errorf("server.ca_file: %w", err)
		}
		opts = append(opts, connection.WithTLSConfig(tlsCfg))
	}
	return connection.NewHTTPClient(rt.Config.Server.URL, opts...), nil
}

// Close runs the shutdown hooks: connection, controller, store, metrics
// textfile.
func (rt *Runtime) Close() error {
	return rt.shutdown.Shutdown()
}

// Require boots the session and checks that want is the mounted graph.
func (rt *Runtime) Require(ctx context.Context, want session.Graph) error {
	if err := rt.Boot(ctx); err != nil {
		return err
	}
	got := rt.Gate.Current()
	switch {
	case got == want:
		return nil
	case want == session.GraphMain:
		return ErrNotSignedIn
	case want == session.GraphLogin && got == session.GraphMain:
		return ErrAlreadySignedIn
	default:
		return fmt.Errorf("session is %s, want %s", got, want)
	}
}

// signOutIfRejected signs the session out when the backend rejected the
// token, since it will not become valid again.
func (rt *Runtime) signOutIfRejected(ctx context.Context, err error) error {
	if !errors.Is(err, domain.ErrUnauthorized) {
		return err
	}
	rt.Logger.Info("backend rejected the session token, signing out")
	if serr := rt.Session.SignOut(ctx); serr != nil {
		rt.Logger.Warn("sign out after rejected token", "error", serr)
	}
	return fmt.Errorf("%w: you have been signed out, run 'easycar login'", err)
}

// Render writes data in the configured format.
func (rt *Runtime) Render(data any) error {
	return output.NewFormatter(rt.Format).Format(rt.Stdout, data)
}

// Printf writes a human-readable message to stdout.
func (rt *Runtime) Printf(format string, args ...any) {
	fmt.Fprintf(rt.Stdout, format, args...)
}

// RuntimeFrom returns the runtime set up by the app's Before hook.
func RuntimeFrom(c *cli.Context) (*Runtime, error) {
	if rt, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
		return rt, nil
	}
	return nil, ErrNoRuntime
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
