package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/dbeckwith/rust-latest/pkg/logger"
)

const DefaultBaseURL = "https://static.rust-lang.org/dist"

// Config holds all application configuration. Command-line flags override the
// values loaded here.
type Config struct {
	Dist    DistConfig    `mapstructure:"dist"`
	Resolve ResolveConfig `mapstructure:"resolve"`
	Logging logger.Config `mapstructure:"logging"`
}

// DistConfig points at the distribution host serving channel manifests.
type DistConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// ResolveConfig holds the default resolve parameters.
type ResolveConfig struct {
	Channel   string `mapstructure:"channel"`
	Profile   string `mapstructure:"profile"`
	MaxAge    int    `mapstructure:"max_age"`
	Targets   string `mapstructure:"targets"`
	ForceDate bool   `mapstructure:"force_date"`
}

// LoadConfig loads configuration from an optional file, environment variables,
// and built-in defaults, then initializes the logger from it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("dist.base_url", DefaultBaseURL)

	v.SetDefault("resolve.channel", "stable")
	v.SetDefault("resolve.profile", "default")
	v.SetDefault("resolve.max_age", 90)
	v.SetDefault("resolve.targets", "all")
	v.SetDefault("resolve.force_date", false)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("rust-latest")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/rust-latest")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("RUST_LATEST")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := logger.Init(config.Logging); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Dist: DistConfig{
			BaseURL: DefaultBaseURL,
		},
		Resolve: ResolveConfig{
			Channel: "stable",
			Profile: "default",
			MaxAge:  90,
			Targets: "all",
		},
		Logging: logger.Config{
			Level:  "warn",
			Format: "text",
		},
	}
}
