// Package config loads the tessera.yml project configuration.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/tessera-db/tessera/internal/convert"
	"github.com/tessera-db/tessera/internal/dialect"
)

// Config represents the Tessera configuration
type Config struct {
	ProjectName string            `mapstructure:"project_name"`
	Dialect     string            `mapstructure:"dialect"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Converters  []ConverterConfig `mapstructure:"converters"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

// ConverterConfig declares one custom converter: its source and target
// types and an optional direction when the types alone are ambiguous.
type ConverterConfig struct {
	Source    string `mapstructure:"source"`
	Target    string `mapstructure:"target"`
	Direction string `mapstructure:"direction"`
}

// Hint maps the declared direction onto a registry hint.
func (c ConverterConfig) Hint() (convert.Hint, error) {
	switch c.Direction {
	case "":
		return convert.HintUnspecified, nil
	case "reading":
		return convert.HintForceReading, nil
	case "writing":
		return convert.HintForceWriting, nil
	default:
		return convert.HintUnspecified, fmt.Errorf(
			"converter %s -> %s: unknown direction %q (use \"reading\" or \"writing\")",
			c.Source, c.Target, c.Direction,
		)
	}
}

// Load loads the configuration from tessera.yml or tessera.yaml in the
// current directory.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom loads the configuration from the given directory.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("dialect", "postgres")
	v.SetDefault("redis.addr", "localhost:6379")

	// Set config name and paths
	v.SetConfigName("tessera")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Enable environment variable support
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	if _, err := dialect.ByName(config.Dialect); err != nil {
		return err
	}

	for _, c := range config.Converters {
		if c.Source == "" || c.Target == "" {
			return fmt.Errorf("converter declarations need both source and target types")
		}
	}

	return nil
}
