// Package httpserver provides the HTTP server of easycar-devserver.
//
// Routes (gorilla/mux):
//
//   - POST /auth: credentials for a session token
//   - GET /vehicle, POST /vehicle, DELETE /vehicle/{id}: bearer token required
//   - GET /health, GET /metrics
//
// Every request passes RequestID, AccessLog, Recover and, when enabled,
// the per-IP RateLimit middleware.
package httpserver
