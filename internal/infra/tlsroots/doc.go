// Package tlsroots builds the trust store the CLI uses to reach an HTTPS
// backend: system roots plus an optional private CA (server.ca_file).
package tlsroots
