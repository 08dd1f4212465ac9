package config

import "github.com/caarlos0/env/v10"

// parseEnv overlays Config values from environment variables using the
// struct's env tags. Unset variables leave the current values untouched.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
