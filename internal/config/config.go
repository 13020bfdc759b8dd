// Package config loads the server configuration. Every field has a
// working default so `stlmass serve` runs without a config file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `yaml:"listen_addr"`
	// UploadDir receives uploaded mesh files; each is removed again
	// after processing.
	UploadDir string `yaml:"upload_dir"`
	// ImageDir receives rendered preview images, served under /images.
	ImageDir string `yaml:"image_dir"`
	// DatabasePath is the sqlite file holding the material catalog.
	DatabasePath string `yaml:"database_path"`
	// MaterialOverrides optionally points at a YAML file of density
	// overrides, hot-reloaded while serving.
	MaterialOverrides string `yaml:"material_overrides"`
	// MaxUploadBytes bounds the accepted upload size.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ListenAddr:     ":8080",
		UploadDir:      "uploads",
		ImageDir:       "static/images",
		DatabasePath:   "data/materials.db",
		MaxUploadBytes: 64 << 20,
	}
}

// Load reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = Default().MaxUploadBytes
	}
	return cfg, nil
}
