// Package config reads this repo's one user-facing setting — the
// display theme used when a trace is rendered — the way
// _examples/Manu343726-cucaracha configures itself: a viper instance
// bound to a config file plus environment overrides.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Theme selects the color palette a renderer uses for frame kinds,
// types, and error markers.
type Theme string

const (
	ThemeNone Theme = "none"
	ThemeDark Theme = "dark"
)

// Config is this repo's complete set of user-facing options.
type Config struct {
	Theme Theme
}

// Load reads configuration from environment variables prefixed
// STACKDUMP_, the file at configPath (if non-empty), and finally
// built-in defaults, in that order of precedence.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("theme", string(ThemeNone))
	v.SetEnvPrefix("stackdump")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return &Config{Theme: Theme(v.GetString("theme"))}, nil
}
