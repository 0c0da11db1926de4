// Package shutdown coordinates process teardown.
//
// Hooks are registered as resources are acquired (token store, HTTP
// server, config watcher) and run in reverse order, either when a
// SIGINT/SIGTERM arrives (Wait) or when the caller finishes (Shutdown).
package shutdown
