package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/easycar-go/internal/cli/config"
	"github.com/yndnr/easycar-go/internal/cli/repl"
	"github.com/yndnr/easycar-go/internal/infra/confloader"
	"github.com/yndnr/easycar-go/internal/infra/shutdown"
	"github.com/yndnr/easycar-go/internal/telemetry/logger"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:   "shell",
		Usage:  "Start an interactive session",
		Action: shellAction,
	}
}

func shellAction(c *cli.Context) error {
	rt, err := RuntimeFrom(c)
	if err != nil {
		return err
	}
	if err := rt.Boot(c.Context); err != nil {
		return err
	}

	if stop := rt.watchConfig(); stop != nil {
		defer stop()
	}

	history := repl.NewHistory(filepath.Join(config.HomeDir(), "history"))
	shell := repl.New(rt.Stdin, rt.Stdout, history, rt.Gate.Current, rt.execLine)
	rt.Stdin = shell.Input()

	// The first interrupt cancels the running command and ends the shell at
	// the next prompt.
	ctx, stop := shutdown.WithSignals(c.Context)
	defer stop()

	rt.Printf("easycar %s, type 'help' for commands.\n", c.App.Version)
	return shell.Run(ctx)
}

// execLine runs one shell line through a fresh app sharing this runtime.
func (rt *Runtime) execLine(ctx context.Context, args []string) error {
	if args[0] == "shell" {
		return errors.New("already in the shell")
	}

	app := newApp()
	app.Metadata = map[string]any{runtimeKey: rt}
	app.Reader = rt.Stdin
	app.Writer = rt.Stdout
	app.ErrWriter = rt.Stderr
	app.HideVersion = true
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app.RunContext(ctx, append([]string{app.Name}, args...))
}

// watchConfig reloads log.level when the config file changes. It returns
// nil when there is no file to watch.
func (rt *Runtime) watchConfig() (stop func()) {
	path := rt.ConfigPath()
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(logger.Slog(rt.Logger)))
	if err != nil {
		rt.Logger.Warn("config watcher unavailable", "error", err)
		return nil
	}
	if err := w.Watch(path); err != nil {
		rt.Logger.Warn("watch config file", "path", path, "error", err)
		w.Stop()
		return nil
	}

	w.OnChange(func(string) {
		cfg, err := config.Load(rt.ConfigArg, rt.Flags)
		if err != nil {
			rt.Logger.Warn("config reload failed", "error", err)
			return
		}
		logger.SetLevel(cfg.Log.Level)
		rt.Logger.Info("log level reloaded", "level", logger.GetLevel())
	})
	w.StartAsync()
	return func() { w.Stop() }
}
