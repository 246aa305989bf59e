package bootstrap

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr        string        `mapstructure:"SERVER_ADDR"`
	AIThinkDelay      time.Duration `mapstructure:"AI_THINK_DELAY"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	LogDevelopment    bool          `mapstructure:"LOG_DEVELOPMENT"`
	LogOutput         string        `mapstructure:"LOG_OUTPUT"`
	HeartbeatInterval time.Duration `mapstructure:"HEARTBEAT_INTERVAL"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL"`
}

var defaults = map[string]any{
	"SERVER_ADDR":        ":8080",
	"AI_THINK_DELAY":     "500ms",
	"LOG_LEVEL":          "info",
	"LOG_DEVELOPMENT":    false,
	"LOG_OUTPUT":         "stderr",
	"HEARTBEAT_INTERVAL": "15s",
	"SESSION_TTL":        "30m",
}

// Setup loads the config file at cfgPath, if any, and overlays GOMOKU_*
// environment variables. A missing file leaves the defaults in place.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("GOMOKU")
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		err := v.ReadInConfig()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
