// Package repl provides the interactive easycar shell.
//
//   - repl.go: read-eval-print loop over an Executor
//   - completer.go: commands available in each navigation graph
//   - history.go: command history persisted to ~/.easycar/history
//
// The prompt and the command set follow the session's navigation graph:
// a signed-out shell offers login, a signed-in shell offers vehicles.
package repl
