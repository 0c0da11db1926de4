// Package buildinfo exposes build information for easycar.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/easycar-go/internal/infra/buildinfo.Version=v1.0.0 \
//	  -X github.com/yndnr/easycar-go/internal/infra/buildinfo.Commit=abc123"
package buildinfo
