package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/easycar-go/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	app := newApp()
	app.Before = before
	app.After = after
	return app
}

// newApp builds the application without lifecycle hooks.
func newApp() *cli.App {
	return &cli.App{
		Name:      "easycar",
		Usage:     "Track your vehicles from the command line",
		Version:   buildinfo.String(),
		Flags:     globalFlags(),
		Reader:    os.Stdin,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			LoginCommand(),
			LogoutCommand(),
			StatusCommand(),
			VehicleCommand(),
			ShellCommand(),
			ConfigCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file (default ~/.easycar/cli.yaml)",
			EnvVars: []string{"EASYCAR_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "backend URL (e.g. http://localhost:5080)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "log debug output to stderr",
		},
		&cli.BoolFlag{
			Name:  "ephemeral",
			Usage: "keep the session in memory for this run only",
		},
	}
}

func before(c *cli.Context) error {
	rt, err := newRuntime(c)
	if err != nil {
		return err
	}
	c.App.Metadata[runtimeKey] = rt
	return nil
}

func after(c *cli.Context) error {
	rt, err := RuntimeFrom(c)
	if err != nil {
		return nil
	}
	if err := rt.Close(); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "warning: %v\n", err)
	}
	return nil
}
