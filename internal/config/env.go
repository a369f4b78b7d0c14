package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override, e.g. VOICE_TYPE_API_TOKEN.
const EnvPrefix = "VOICE_TYPE_"

// ApplyEnv overrides cfg with any VOICE_TYPE_* variables that are set.
// Unset variables leave the file values untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("environment overrides are invalid: %w", err)
	}
	return nil
}
