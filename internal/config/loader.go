package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr               string   `json:"addr" yaml:"addr" toml:"addr"`
	CatalogPath        string   `json:"catalog_path" yaml:"catalog_path" toml:"catalog_path"`
	LogLevel           string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	AllowedOrigins     []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins"`
	FrameIntervalMs    int      `json:"frame_interval_ms" yaml:"frame_interval_ms" toml:"frame_interval_ms"`
	BackoffMs          int      `json:"backoff_ms" yaml:"backoff_ms" toml:"backoff_ms"`
	CompletionBufferMs int      `json:"completion_buffer_ms" yaml:"completion_buffer_ms" toml:"completion_buffer_ms"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil { return cfg, err }
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil { return cfg, err }
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil { return cfg, err }
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
