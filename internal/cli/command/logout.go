package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/easycar-go/internal/cli/output"
	"github.com/yndnr/easycar-go/internal/core/session"
)

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Sign out and forget the stored session",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "skip confirmation",
			},
		},
		Action: logoutAction,
	}
}

func logoutAction(c *cli.Context) error {
	rt, err := RuntimeFrom(c)
	if err != nil {
		return err
	}
	if err := rt.Require(c.Context, session.GraphMain); err != nil {
		return err
	}

	if !c.Bool("force") {
		ok, err := output.Confirm(rt.Stdin, rt.Stderr, "Sign out of your account?")
		if err != nil {
			return err
		}
		if !ok {
			rt.Printf("Cancelled.\n")
			return nil
		}
	}

	if err := rt.Session.SignOut(c.Context); err != nil {
		return err
	}
	rt.Printf("Signed out.\n")
	return nil
}
