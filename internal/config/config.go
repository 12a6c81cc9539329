package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type PrometheusCfg struct {
	Port int `yaml:"port" json:"port"` // 0 disables the metrics endpoint
}

type LoggingCfg struct {
	RotationDays int `yaml:"rotation_days" json:"rotation_days"` // Days to keep logs before rotation
}

type Config struct {
	RootPath          string        `yaml:"root_path" json:"root_path"`
	MinimumAgeMinutes int           `yaml:"minimum_age_minutes" json:"minimum_age_minutes"`
	ProtectedPaths    []string      `yaml:"protected_paths" json:"protected_paths"` // extra paths the engine refuses to touch
	DatabasePath      string        `yaml:"database_path" json:"database_path"`     // SQLite removal history, empty disables
	Prometheus        PrometheusCfg `yaml:"prometheus" json:"prometheus"`
	Logging           LoggingCfg    `yaml:"logging" json:"logging"`
	NoColor           bool          `yaml:"no_color" json:"no_color"`
}

var (
	errInvalidPath = errors.New("path must be absolute")
	errNegativeAge = errors.New("minimum_age_minutes cannot be negative")
)

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) validateAndDefault() error {
	c.applyDefaults()

	if c.MinimumAgeMinutes < 0 {
		return errNegativeAge
	}

	// Root path may also arrive via argv, so it is optional here;
	// when present it must be absolute.
	if c.RootPath != "" {
		cp, err := cleanAbsolute(c.RootPath)
		if err != nil {
			return err
		}
		c.RootPath = cp
	}

	cleaned := make([]string, 0, len(c.ProtectedPaths))
	for _, p := range c.ProtectedPaths {
		cp, err := cleanAbsolute(p)
		if err != nil {
			return err
		}
		cleaned = append(cleaned, cp)
	}
	c.ProtectedPaths = cleaned

	return nil
}

func (c *Config) applyDefaults() {
	if c.Logging.RotationDays <= 0 {
		c.Logging.RotationDays = 30 // Default: keep logs for 30 days
	}
}

func cleanAbsolute(p string) (string, error) {
	if p == "" {
		return "", errInvalidPath
	}
	cp := filepath.Clean(p)
	if !filepath.IsAbs(cp) {
		return "", fmt.Errorf("%w: %s", errInvalidPath, p)
	}
	return cp, nil
}

func (c *Config) MinimumAge() time.Duration {
	return time.Duration(c.MinimumAgeMinutes) * time.Minute
}

func (c *Config) PrometheusAddress() string {
	return fmt.Sprintf(":%d", c.Prometheus.Port)
}
