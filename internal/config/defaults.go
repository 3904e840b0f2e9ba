package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultURL is the community definition archive.
const DefaultURL = "https://codeload.github.com/manueliglesiasgarcia/WineGameDB/legacy.tar.gz/refs/heads/workarounds"

// DefaultRetryMax is the default number of fetch retries.
const DefaultRetryMax = 3

// baseDir is the directory, under the user config dir, that holds the
// catalog, the staging area and the default config file.
const baseDir = "heroic"

// Default tool commands. Shim and runtime installers have no portable
// default and must be configured to be used.
var (
	defaultWinetricks = []string{"winetricks", "-q"}
	defaultOverlay    = []string{"legendary", "eos-overlay"}
)

// DefaultPath returns the config file read when no path is given.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, baseDir, "workarounds.yaml"), nil
}

// Default returns a configuration with every default applied.
func Default() (*Config, error) {
	c := &Config{}
	if err := c.applyDefaults(); err != nil {
		return nil, err
	}
	return c, nil
}

// applyDefaults fills unset fields.
func (c *Config) applyDefaults() error {
	if c.CatalogDir == "" || c.StagingDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("locate user config dir: %w", err)
		}
		if c.CatalogDir == "" {
			c.CatalogDir = filepath.Join(dir, baseDir, "workarounds")
		}
		if c.StagingDir == "" {
			c.StagingDir = filepath.Join(dir, baseDir, "WorkaroundsUpdate")
		}
	}
	if c.Sync.URL == "" {
		c.Sync.URL = DefaultURL
	}
	if c.Sync.RetryMax == 0 {
		c.Sync.RetryMax = DefaultRetryMax
	}
	if len(c.Tools.Winetricks) == 0 {
		c.Tools.Winetricks = append([]string{}, defaultWinetricks...)
	}
	if len(c.Tools.Overlay) == 0 {
		c.Tools.Overlay = append([]string{}, defaultOverlay...)
	}
	return nil
}
