package config

import (
	"path/filepath"

	"github.com/yndnr/easycar-go/internal/infra/confloader"
)

// EnvPrefix prefixes every environment override, e.g. EASYCAR_SERVER_URL.
const EnvPrefix = "EASYCAR_"

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	return filepath.Join(HomeDir(), "cli.yaml")
}

// Load loads the CLI configuration. Precedence is flags > env > file >
// defaults. A missing file at the default path is not an error; an
// explicit path must exist. Flags are dotted keys; empty values are
// ignored.
func Load(path string, flags map[string]any) (*CLIConfig, error) {
	fileOpt := confloader.WithConfigFile(path)
	if path == "" {
		fileOpt = confloader.WithOptionalConfigFile(DefaultConfigPath())
	}

	cfg := Default()
	loader := confloader.NewLoader(
		confloader.WithEnvPrefix(EnvPrefix),
		fileOpt,
		confloader.WithOverrides(flags),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
