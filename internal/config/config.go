// Package config handles n3mtool configuration loading and saving.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/flywave/go-n3m/internal/logger"
)

// Config holds all tool settings.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Decode  DecodeConfig  `yaml:"decode"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// SourceConfig locates tile bytes.
type SourceConfig struct {
	MirrorDir string `yaml:"mirror_dir"` // Local copy of the storage layout
	Endpoint  string `yaml:"endpoint"`   // URL template with {shard} and {path}
}

// DecodeConfig holds decoder settings.
type DecodeConfig struct {
	ElevationScaling bool   `yaml:"elevation_scaling"`
	TextureLayout    string `yaml:"texture_layout"` // pairs or quads
	TextureGap       int    `yaml:"texture_gap"`
	MaxTextureCount  int    `yaml:"max_texture_count"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	RenderBuffer bool   `yaml:"render_buffer"`
	BigEndian    bool   `yaml:"big_endian"`
	Normals      bool   `yaml:"normals"`
	OctNormals   bool   `yaml:"oct_normals"` // Two byte normals per vertex in {stem}.nrm
	Geocentric   bool   `yaml:"geocentric"`  // Extra OBJ in earth-centred coordinates
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string            `yaml:"level"`
	File  logger.FileConfig `yaml:"file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			MirrorDir: "tiles",
			Endpoint:  "http://{shard}.maps3d.svc.nokia.com/data4/{path}",
		},
		Decode: DecodeConfig{
			ElevationScaling: true,
			TextureLayout:    "pairs",
			TextureGap:       0,
			MaxTextureCount:  4096,
		},
		Output: OutputConfig{
			Dir: "out",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  logger.DefaultFileConfig(""), // No file output until a path is set
		},
	}
}

// Load returns defaults overridden by the YAML file at path, if any.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the decoder cannot default.
func (c *Config) Validate() error {
	switch c.Decode.TextureLayout {
	case "", "pairs", "quads":
	default:
		return fmt.Errorf("unknown texture layout %q", c.Decode.TextureLayout)
	}
	if c.Decode.TextureGap < 0 {
		return fmt.Errorf("negative texture gap %d", c.Decode.TextureGap)
	}
	return nil
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
