// Package main provides the entry point for easycar-devserver.
//
// easycar-devserver is a local stand-in for the easycar backend. It
// serves the same API the CLI talks to:
//
//   - POST /auth: email/password for a session token
//   - GET /vehicle, POST /vehicle, DELETE /vehicle/{id}
//   - GET /health, GET /metrics
//
// Vehicles live in memory and are lost on restart. With no users
// configured a demo account is seeded.
//
// Usage:
//
//	easycar-devserver
//	easycar-devserver -config devserver.yaml -addr 127.0.0.1:5080
//	easycar-devserver -hash-password < password.txt
package main
