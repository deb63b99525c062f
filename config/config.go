// Package config loads the server's TOML configuration. Any value left
// out of the file keeps its default.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/mcuadros/go-defaults"
)

type Config struct {
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

type ServerConfig struct {
	Address      string `toml:"address" default:":9090"`
	BodyLimitMiB int    `toml:"body_limit_mib" default:"8"`
}

type LogConfig struct {
	Dir           string `toml:"dir" default:"logs"`
	RotationHours int    `toml:"rotation_hours" default:"24"`
	MaxAgeDays    int    `toml:"max_age_days" default:"7"`
}

// Load reads the TOML file at path. An empty path or a missing file is
// not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := new(Config)
	defaults.SetDefaults(cfg)
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}
