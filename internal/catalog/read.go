package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/roach88/workarounds/internal/definition"
)

// Entry is the cheap catalog listing form of a definition.
type Entry struct {
	Name     string `json:"name"`
	Executed bool   `json:"executed"`
}

// Load reads the named definition for (runner, appID), falling back to the
// root template when no per-application file exists. The template is created
// with factory defaults if it is missing.
func (c *Catalog) Load(runner definition.Runner, appID, name string) (*Loaded, error) {
	if name == "" {
		name = definition.DefaultName
	}

	path := c.Path(runner, appID, name)
	found, err := exists(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	if found {
		c.logger.Debug("reading workaround", "path", path)
		def, err := readMerged(path, appID, runner)
		if err != nil {
			return nil, err
		}
		return &Loaded{Definition: def, Path: path}, nil
	}

	if err := c.EnsureDefault(runner); err != nil {
		return nil, err
	}
	path = c.DefaultPath()
	c.logger.Debug("reading default workaround", "path", path, "app_id", appID, "name", name)
	def, err := readMerged(path, appID, runner)
	if err != nil {
		return nil, err
	}
	return &Loaded{Definition: def, Path: path, FromTemplate: true}, nil
}

// List returns one entry per stored definition of (runner, appID), ordered
// by name. It returns ErrNoDirectory when the application directory is
// absent.
func (c *Catalog) List(runner definition.Runner, appID string) ([]Entry, error) {
	dir := c.Dir(runner, appID)
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, ErrNoDirectory
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	entries := []Entry{}
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), Extension) {
			continue
		}
		name := strings.TrimSuffix(f.Name(), Extension)
		def, err := readMerged(c.Path(runner, appID, name), appID, runner)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Name: name, Executed: def.Executed})
	}
	return entries, nil
}

// readMerged decodes path over a fresh factory default for (appID, runner).
func readMerged(path, appID string, runner definition.Runner) (*definition.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	def := definition.Default(appID, runner)
	if err := definition.Decode(data, def); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}
