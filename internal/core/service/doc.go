// Package service provides the backend services behind easycar-devserver.
//
// The dev server stands in for the real vehicle backend during local work
// and end-to-end tests:
//
//   - AuthService: exchanges email/password for a session token
//   - TokenService: issues and verifies HS256 session tokens
//   - VehicleService: per-user vehicle lists held in memory
//   - RateLimiterRegistry: keyed token-bucket limiters
//
// Services are safe for concurrent use.
package service
