// Package config loads the engine configuration from YAML, applying
// defaults for anything the file omits.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root engine configuration.
type Config struct {
	Redis   RedisConfig   `yaml:"redis"`
	Profile ProfileConfig `yaml:"profile"`
	Content ContentConfig `yaml:"content"`
}

// RedisConfig locates the blob store.
type RedisConfig struct {
	Endpoint        string        `yaml:"endpoint"`
	PoolSize        int           `yaml:"pool_size"`
	MinIdleConns    int           `yaml:"min_idle_conns"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	MaxRetries      int           `yaml:"max_retries"`
}

// ProfileConfig scopes all persisted blobs.
type ProfileConfig struct {
	// Namespace versions the whole key space; bump to start fresh.
	Namespace string `yaml:"namespace"`
	// Default is the profile used when no --profile flag is given.
	Default string `yaml:"default"`
}

// ContentConfig points at the static content shipped with the app.
type ContentConfig struct {
	// CataloguePath is an optional YAML codex catalogue; empty uses the
	// built-in catalogue.
	CataloguePath string `yaml:"catalogue_path"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Redis: RedisConfig{
			Endpoint:        "localhost:6379",
			PoolSize:        4,
			ConnMaxIdleTime: 5 * time.Minute,
			MaxRetries:      3,
		},
		Profile: ProfileConfig{
			Namespace: "v1",
			Default:   "local",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
