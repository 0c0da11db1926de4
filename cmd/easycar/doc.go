// Package main provides the entry point for easycar.
//
// easycar is a command-line client that signs a user in to the easycar
// backend, remembers the session between runs and manages the user's
// vehicles.
//
// Usage:
//
//	easycar login --email driver@example.com
//	easycar vehicle list
//	easycar vehicle add ABC1234
//	easycar shell
package main
