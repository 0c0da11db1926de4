package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/easycar-go/internal/cli/config"
	"github.com/yndnr/easycar-go/internal/cli/output"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration, secrets masked",
				Action: configShow,
			},
			{
				Name:   "validate",
				Usage:  "Validate the configuration",
				Action: configValidate,
			},
			{
				Name:   "path",
				Usage:  "Print the configuration file path",
				Action: configPath,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	rt, err := RuntimeFrom(c)
	if err != nil {
		return err
	}

	format := rt.Format
	if format == output.FormatTable {
		format = output.FormatYAML
	}
	return output.NewFormatter(format).Format(rt.Stdout, config.Sanitize(rt.Config))
}

// configValidate reloads the configuration from its sources, so an edit
// made after the runtime started is checked too.
func configValidate(c *cli.Context) error {
	rt, err := RuntimeFrom(c)
	if err != nil {
		return err
	}
	if _, err := config.Load(rt.ConfigArg, rt.Flags); err != nil {
		return err
	}
	rt.Printf("✓ Configuration is valid (%s)\n", rt.ConfigPath())
	return nil
}

func configPath(c *cli.Context) error {
	rt, err := RuntimeFrom(c)
	if err != nil {
		return err
	}
	rt.Printf("%s\n", rt.ConfigPath())
	return nil
}
