package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvCatalogDir = "WORKAROUNDS_CATALOG_DIR"
	EnvStagingDir = "WORKAROUNDS_STAGING_DIR"
	EnvSyncURL    = "WORKAROUNDS_SYNC_URL"
	EnvRetryMax   = "WORKAROUNDS_SYNC_RETRY_MAX"
	EnvJournal    = "WORKAROUNDS_JOURNAL"
)

// dotenvName is the environment file read next to the config file.
const dotenvName = ".env"

// Load reads the configuration at path.
//
// An empty path reads DefaultPath when that file exists and otherwise
// starts from defaults. A missing explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	c := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, c); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	env, err := loadEnv(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	if err := c.applyEnv(env); err != nil {
		return nil, err
	}
	if err := c.applyDefaults(); err != nil {
		return nil, err
	}
	return c, nil
}

// decode parses data according to the extension of path.
func decode(path string, data []byte, c *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".cue", ".json":
		v := cuecontext.New().CompileBytes(data, cue.Filename(path))
		if err := v.Err(); err != nil {
			return fmt.Errorf("compile %s: %w", path, err)
		}
		if err := v.Decode(c); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	return nil
}

// lookupFunc resolves an environment variable.
type lookupFunc func(key string) (string, bool)

// loadEnv returns a lookup that prefers the process environment and falls
// back to the .env file in dir, if any.
func loadEnv(dir string) (lookupFunc, error) {
	file := map[string]string{}
	p := filepath.Join(dir, dotenvName)
	if _, err := os.Stat(p); err == nil {
		m, err := godotenv.Read(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		file = m
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := file[key]
		return v, ok && v != ""
	}, nil
}

func (c *Config) applyEnv(lookup lookupFunc) error {
	if v, ok := lookup(EnvCatalogDir); ok {
		c.CatalogDir = v
	}
	if v, ok := lookup(EnvStagingDir); ok {
		c.StagingDir = v
	}
	if v, ok := lookup(EnvSyncURL); ok {
		c.Sync.URL = v
	}
	if v, ok := lookup(EnvJournal); ok {
		c.JournalPath = v
	}
	if v, ok := lookup(EnvRetryMax); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRetryMax, err)
		}
		c.Sync.RetryMax = n
	}
	return nil
}
