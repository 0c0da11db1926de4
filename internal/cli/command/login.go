package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/yndnr/easycar-go/internal/cli/output"
	"github.com/yndnr/easycar-go/internal/core/domain"
	"github.com/yndnr/easycar-go/internal/core/session"
)

// maxLoginAttempts bounds the interactive retry loop.
const maxLoginAttempts = 3

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in with email and password",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "account email (prompted when omitted)",
			},
			&cli.BoolFlag{
				Name:  "password-stdin",
				Usage: "read the password from the first line of stdin",
			},
		},
		Action: loginAction,
	}
}

func loginAction(c *cli.Context) error {
	rt, err := RuntimeFrom(c)
	if err != nil {
		return err
	}
	ctx := c.Context
	if err := rt.Require(ctx, session.GraphLogin); err != nil {
		return err
	}

	email := c.String("email")
	if email == "" {
		if email, err = rt.prompt("Email: "); err != nil {
			return err
		}
	}

	// Prompted passwords can be retried; a piped one cannot.
	interactive := !c.Bool("password-stdin")
	password, err := rt.readPassword(interactive)
	if err != nil {
		return err
	}

	var token string
	for attempt := 1; ; attempt++ {
		token, err = rt.Conn.Auth.Authenticate(ctx, domain.Credentials{Email: email, Password: password})
		password = ""
		if err == nil {
			break
		}
		if !interactive || attempt == maxLoginAttempts || !retryable(err) {
			return err
		}

		fmt.Fprintln(rt.Stderr, retryMessage(err))
		if errors.Is(err, domain.ErrValidation) && strings.Contains(err.Error(), "email") {
			if email, err = rt.prompt("Email: "); err != nil {
				return err
			}
		}
		if password, err = rt.readPassword(true); err != nil {
			return err
		}
	}

	if err := rt.Session.SignIn(ctx, token); err != nil {
		return fmt.Errorf("signed in, but the session was not saved: %w", err)
	}
	rt.Printf("Signed in as %s.\n", strings.TrimSpace(email))
	return nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, domain.ErrAuth) || errors.Is(err, domain.ErrValidation)
}

func retryMessage(err error) string {
	var de *domain.DomainError
	if errors.Is(err, domain.ErrValidation) && errors.As(err, &de) {
		return "Please fix: " + de.Details
	}
	return "Login failed. Check your email and password and try again."
}

// prompt writes label to stderr and reads one line from stdin.
func (rt *Runtime) prompt(label string) (string, error) {
	fmt.Fprint(rt.Stderr, label)
	line, err := output.ReadLine(rt.Stdin)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readPassword prompts for the password, without echo on a terminal.
func (rt *Runtime) readPassword(prompted bool) (string, error) {
	if !prompted {
		line, err := output.ReadLine(rt.Stdin)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return line, nil
	}

	fmt.Fprint(rt.Stderr, "Password: ")
	if f, ok := rt.Stdin.(*os.File); ok && rt.isTerminal(f) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(rt.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	line, err := output.ReadLine(rt.Stdin)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return line, nil
}
