// Package handler provides the HTTP handlers of easycar-devserver.
//
//   - auth.go: POST /auth
//   - vehicle.go: GET /vehicle, POST /vehicle, DELETE /vehicle/{id}
//   - health.go: GET /health
//
// Every JSON response uses the Response envelope. Handlers parse the
// request, call a core/service and map domain errors to status codes.
package handler
