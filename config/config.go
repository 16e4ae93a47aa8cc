// Package config loads sqlbuilder settings with precedence
// env > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/maxshaw/sqlbuilder/conn"
)

const maxWalkDepth = 25

var fileNames = []string{"sqlbuilder.yaml", "sqlbuilder.yml"}

type Config struct {
	Database  DatabaseConfig `mapstructure:"database" json:"database"`
	KeyColumn string         `mapstructure:"key_column" json:"key_column"`
	LogSQL    bool           `mapstructure:"log_sql" json:"log_sql"`
	Gen       GenConfig      `mapstructure:"gen" json:"gen"`
}

// DatabaseConfig holds prefixed connection strings, e.g.
// "pgsql:postgres://localhost/shop".
type DatabaseConfig struct {
	Default string `mapstructure:"default" json:"default"`
	Read    string `mapstructure:"read" json:"read,omitempty"`
	Write   string `mapstructure:"write" json:"write,omitempty"`
}

type GenConfig struct {
	Models  string `mapstructure:"models" json:"models"`
	Output  string `mapstructure:"output" json:"output"`
	Package string `mapstructure:"package" json:"package"`
}

// Load discovers and reads the configuration. An explicit path must exist;
// otherwise sqlbuilder.yaml is searched for from the working directory up to
// the repository root. No file at all means defaults and env only.
//
// It returns the config and the file it came from, if any.
func Load(explicitPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("SQLBUILDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := findConfigFile(explicitPath)
	if err != nil {
		return nil, "", err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, path, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, path, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, path, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.default", "")
	v.SetDefault("database.read", "")
	v.SetDefault("database.write", "")

	v.SetDefault("key_column", "Id")
	v.SetDefault("log_sql", true)

	v.SetDefault("gen.models", "models")
	v.SetDefault("gen.output", "models")
	v.SetDefault("gen.package", "")
}

func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range fileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// Connections returns the configured connection strings.
func (c *Config) Connections() conn.Context {
	return conn.Context{
		Default: c.Database.Default,
		Read:    c.Database.Read,
		Write:   c.Database.Write,
	}
}
