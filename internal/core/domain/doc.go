// Package domain defines the core domain models for easycar.
//
// Domain models are pure value objects without IO dependencies:
//
//   - Credentials: login form input and its validation
//   - Vehicle: a tracked vehicle and plate normalization
//   - TokenInfo: claims read from a session token for display
//   - Errors: domain-specific error definitions
package domain
