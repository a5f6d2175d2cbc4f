package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Sync    SyncConfig        `yaml:"sync"`
	Drafts  DraftsConfig      `yaml:"drafts"`
	Images  ImagesConfig      `yaml:"images"`
	Logging LoggingConfig     `yaml:"logging"`
	Presets map[string]Preset `yaml:"presets"`
}

type SyncConfig struct {
	MinImageDuration time.Duration `yaml:"min_image_duration"`
	Direction        string        `yaml:"direction"` // left, right, up, down or empty for random
}

type DraftsConfig struct {
	Root string `yaml:"root"` // empty means the platform default
}

type ImagesConfig struct {
	Dir          string `yaml:"dir"`
	ProbeWorkers int    `yaml:"probe_workers"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Sync: SyncConfig{
			MinImageDuration: 5 * time.Second,
		},
		Images: ImagesConfig{
			Dir:          "~/Desktop/Youtube/images",
			ProbeWorkers: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Load overlays the YAML file at path on the defaults. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

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

// MinDurationMicros returns the minimum image duration in document units.
func (c *Config) MinDurationMicros() int64 {
	return c.Sync.MinImageDuration.Microseconds()
}
