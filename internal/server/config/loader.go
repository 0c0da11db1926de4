package config

import (
	"github.com/yndnr/easycar-go/internal/infra/confloader"
)

// EnvPrefix prefixes every environment override, e.g.
// EASYCAR_DEV_AUTH_SIGNING_KEY.
const EnvPrefix = "EASYCAR_DEV_"

// Load reads the configuration from path (optional), the environment
// and flags, in increasing precedence, and verifies the result.
func Load(path string, flags map[string]any) (*ServerConfig, error) {
	opts := []confloader.Option{
		confloader.WithEnvPrefix(EnvPrefix),
		confloader.WithOverrides(flags),
	}
	if path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}

	cfg := Default()
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}
	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
