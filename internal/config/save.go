package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Path returns the file the config was loaded from, or "" when it came
// from defaults only.
func (c *Config) Path() string {
	return c.path
}

// Save writes the config back to the file it was loaded from, or to the
// user's config directory when there was none.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = filepath.Join(ConfigDir(), "config.yaml")
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	// Create parent directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	c.path = path
	return nil
}
