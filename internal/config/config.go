// Package config loads application settings from defaults, an optional YAML
// file and PATHFINDER_* environment variables, in increasing precedence.
//
//	grid:
//	  rows: 50
//	  width: 800
//	animation:
//	  step_delay: 15ms
//	server:
//	  addr: ":8080"
//	log:
//	  level: info
//	  format: text
//
// Environment names replace dots with underscores, e.g. PATHFINDER_GRID_ROWS.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "PATHFINDER"

// ErrInvalidConfig is returned when a loaded value fails validation.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config is the full application configuration.
type Config struct {
	Grid      GridConfig      `mapstructure:"grid"`
	Animation AnimationConfig `mapstructure:"animation"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
}

// GridConfig sizes the board: Rows × Rows cells drawn in Width pixels.
type GridConfig struct {
	Rows  int `mapstructure:"rows"`
	Width int `mapstructure:"width"`
}

// AnimationConfig paces search playback for front-ends without a frame clock.
type AnimationConfig struct {
	StepDelay time.Duration `mapstructure:"step_delay"`
}

// ServerConfig configures the web front-end.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig selects the logrus level and formatter ("text" or "json").
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var defaults = map[string]interface{}{
	"grid.rows":            50,
	"grid.width":           800,
	"animation.step_delay": "15ms",
	"server.addr":          ":8080",
	"log.level":            "info",
	"log.format":           "text",
}

// Default returns the built-in configuration, ignoring files and environment.
func Default() *Config {
	cfg := &Config{}
	if err := base().Unmarshal(cfg); err != nil {
		panic(err)
	}
	return cfg
}

func base() *viper.Viper {
	vp := viper.New()
	for k, v := range defaults {
		vp.SetDefault(k, v)
	}
	return vp
}

// Load builds a Config. An empty path skips the YAML file.
func Load(path string) (*Config, error) {
	vp := base()
	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	if path != "" {
		vp.SetConfigFile(path)
		vp.SetConfigType("yaml")
		if err := vp.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and returns ErrInvalidConfig wrapped with
// the offending key.
func (c *Config) Validate() error {
	switch {
	case c.Grid.Rows <= 0:
		return fmt.Errorf("%w: grid.rows=%d must be positive", ErrInvalidConfig, c.Grid.Rows)
	case c.Grid.Width < c.Grid.Rows:
		return fmt.Errorf("%w: grid.width=%d is smaller than grid.rows=%d", ErrInvalidConfig, c.Grid.Width, c.Grid.Rows)
	case c.Animation.StepDelay < 0:
		return fmt.Errorf("%w: animation.step_delay=%s is negative", ErrInvalidConfig, c.Animation.StepDelay)
	case c.Server.Addr == "":
		return fmt.Errorf("%w: server.addr is empty", ErrInvalidConfig)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("%w: log.format=%q must be text or json", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}
