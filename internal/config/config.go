package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/xpv0/zli-chunk/internal/progress"
)

// Config defines configuration for a compression run.
type Config struct {
	Input        string `yaml:"input"`
	Bin          string `yaml:"bin"`
	Workers      int    `yaml:"workers"`
	ChunkSize    int64  `yaml:"-"`
	OutDir       string `yaml:"out_dir"`
	Progress     bool   `yaml:"progress"`
	KeepFailed   bool   `yaml:"keep_failed"`
	ZstdFallback bool   `yaml:"zstd_fallback"`
	Store        string `yaml:"store"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Bin:       "zli",
		Workers:   4,
		ChunkSize: 1 << 30, // 1 GiB
		OutDir:    ".",
	}
}

// yamlConfig mirrors Config with a human-readable chunk size ("1GiB").
type yamlConfig struct {
	Input        string `yaml:"input"`
	Bin          string `yaml:"bin"`
	Workers      int    `yaml:"workers"`
	ChunkSize    string `yaml:"chunk_size"`
	OutDir       string `yaml:"out_dir"`
	Progress     bool   `yaml:"progress"`
	KeepFailed   bool   `yaml:"keep_failed"`
	ZstdFallback bool   `yaml:"zstd_fallback"`
	Store        string `yaml:"store"`
}

// LoadFromFile loads configuration from a YAML file on top of defaults.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.Input != "" {
		cfg.Input = yc.Input
	}
	if yc.Bin != "" {
		cfg.Bin = yc.Bin
	}
	if yc.Workers != 0 {
		cfg.Workers = yc.Workers
	}
	if yc.ChunkSize != "" {
		size, err := progress.ParseBytes(yc.ChunkSize)
		if err != nil {
			return Config{}, fmt.Errorf("parse chunk_size: %w", err)
		}
		cfg.ChunkSize = size
	}
	if yc.OutDir != "" {
		cfg.OutDir = yc.OutDir
	}
	cfg.Progress = yc.Progress
	cfg.KeepFailed = yc.KeepFailed
	cfg.ZstdFallback = yc.ZstdFallback
	if yc.Store != "" {
		cfg.Store = yc.Store
	}

	return cfg, nil
}

// LoadFromEnv applies environment variable overrides.
// Environment variables use the ZLI_CHUNK_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("ZLI_CHUNK_INPUT"); v != "" {
		c.Input = v
	}
	if v := os.Getenv("ZLI_CHUNK_BIN"); v != "" {
		c.Bin = v
	}
	if v := os.Getenv("ZLI_CHUNK_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse ZLI_CHUNK_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("ZLI_CHUNK_CHUNK_SIZE"); v != "" {
		size, err := progress.ParseBytes(v)
		if err != nil {
			return fmt.Errorf("parse ZLI_CHUNK_CHUNK_SIZE: %w", err)
		}
		c.ChunkSize = size
	}
	if v := os.Getenv("ZLI_CHUNK_OUT_DIR"); v != "" {
		c.OutDir = v
	}
	if v := os.Getenv("ZLI_CHUNK_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}
	if v := os.Getenv("ZLI_CHUNK_KEEP_FAILED"); v != "" {
		c.KeepFailed = v == "true" || v == "1"
	}
	if v := os.Getenv("ZLI_CHUNK_ZSTD_FALLBACK"); v != "" {
		c.ZstdFallback = v == "true" || v == "1"
	}
	if v := os.Getenv("ZLI_CHUNK_STORE"); v != "" {
		c.Store = v
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Bin == "" {
		return errors.New("config: bin is required")
	}
	if c.Workers <= 0 {
		return errors.New("config: workers must be positive")
	}
	if c.ChunkSize <= 0 {
		return errors.New("config: chunk_size must be positive")
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.Input != "" {
		c.Input = override.Input
	}
	if override.Bin != "" {
		c.Bin = override.Bin
	}
	if override.Workers != 0 {
		c.Workers = override.Workers
	}
	if override.ChunkSize != 0 {
		c.ChunkSize = override.ChunkSize
	}
	if override.OutDir != "" {
		c.OutDir = override.OutDir
	}
	if override.Progress {
		c.Progress = true
	}
	if override.KeepFailed {
		c.KeepFailed = true
	}
	if override.ZstdFallback {
		c.ZstdFallback = true
	}
	if override.Store != "" {
		c.Store = override.Store
	}
	return c
}
