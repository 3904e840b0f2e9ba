package config

import (
	"github.com/roach88/workarounds/internal/definition"
	"github.com/roach88/workarounds/internal/symbolic"
)

// Config is the full configuration.
type Config struct {
	// CatalogDir is the root of the definition catalog.
	CatalogDir string `yaml:"catalog_dir" json:"catalog_dir"`
	// StagingDir is the scratch directory used by sync.
	StagingDir string `yaml:"staging_dir" json:"staging_dir"`
	// JournalPath is the execution journal database. Empty disables it.
	JournalPath string `yaml:"journal_path" json:"journal_path"`

	Sync         Sync          `yaml:"sync" json:"sync"`
	Tools        Tools         `yaml:"tools" json:"tools"`
	Applications []Application `yaml:"applications" json:"applications"`
}

// Sync configures the remote definition archive.
type Sync struct {
	URL      string `yaml:"url" json:"url"`
	RetryMax int    `yaml:"retry_max" json:"retry_max"`
}

// Tools are the base command vectors of the external helpers. Each call
// appends its own arguments, see the host package.
type Tools struct {
	Winetricks []string `yaml:"winetricks" json:"winetricks"`
	Shim       []string `yaml:"shim" json:"shim"`
	Overlay    []string `yaml:"overlay" json:"overlay"`
	Runtime    []string `yaml:"runtime" json:"runtime"`
}

// Application describes one managed application instance.
type Application struct {
	ID          string            `yaml:"id" json:"id"`
	Runner      definition.Runner `yaml:"runner" json:"runner"`
	InstallPath string            `yaml:"install_path" json:"install_path"`
	PrefixPath  string            `yaml:"prefix_path" json:"prefix_path"`
	Layer       Layer             `yaml:"layer" json:"layer"`
}

// Layer is the compatibility layer an application runs under.
type Layer struct {
	Kind    string `yaml:"kind" json:"kind"`
	Bin     string `yaml:"bin" json:"bin"`
	Version string `yaml:"version" json:"version"`
}

// Target returns the path resolution context of a.
func (a Application) Target() symbolic.Target {
	return symbolic.Target{
		InstallPath:  a.InstallPath,
		PrefixPath:   a.PrefixPath,
		LayerKind:    a.Layer.Kind,
		LayerBin:     a.Layer.Bin,
		LayerVersion: a.Layer.Version,
	}
}

// Application returns the application registered as (id, runner).
func (c *Config) Application(id string, runner definition.Runner) (Application, bool) {
	for _, app := range c.Applications {
		if app.ID == id && app.Runner == runner {
			return app, true
		}
	}
	return Application{}, false
}
