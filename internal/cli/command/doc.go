// Package command provides the easycar CLI commands.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: application, global flags, Before/After hooks
//   - runtime.go: per-run dependencies (config, logger, store, session, backend)
//   - login.go, logout.go: signing in and out
//   - status.go: session phase and token details
//   - vehicle.go: vehicle list, add and delete
//   - shell.go: interactive mode
//   - config.go: configuration display and validation
//
// Commands that need a session are gated on the mounted navigation graph:
// vehicle commands and logout need the main graph, login needs the login
// graph.
package command
