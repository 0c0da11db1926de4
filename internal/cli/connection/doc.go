// Package connection talks to the easycar backend.
//
//   - http.go: HTTP client, response envelope and API errors
//   - auth.go: credential exchange (POST /auth) with a client-side throttle
//   - vehicle.go: vehicle list, create and delete
//   - manager.go: keeps the client's bearer token in step with the session
package connection
