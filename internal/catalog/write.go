package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/workarounds/internal/definition"
)

// EnsureDefault writes the factory-default template if it does not exist.
// An existing template is left untouched.
func (c *Catalog) EnsureDefault(runner definition.Runner) error {
	path := c.DefaultPath()
	found, err := exists(path)
	if err != nil {
		return fmt.Errorf("ensure default: %w", err)
	}
	if found {
		return nil
	}

	c.logger.Info("writing default workaround", "path", path, "runner", runner)
	if err := writeDefinition(path, definition.Default(definition.DefaultName, runner)); err != nil {
		return fmt.Errorf("ensure default: %w", err)
	}
	return nil
}

// Save writes def as the named definition of (runner, appID), creating the
// application directory if needed.
func (c *Catalog) Save(runner definition.Runner, appID, name string, def *definition.Definition) error {
	if name == "" {
		name = definition.DefaultName
	}
	path := c.Path(runner, appID, name)
	if err := writeDefinition(path, def); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// writeDefinition encodes def and replaces path through a temporary file in
// the same directory.
func writeDefinition(path string, def *definition.Definition) error {
	data, err := definition.Encode(def)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, data)
}

// WriteFileAtomic writes data to a temporary sibling of path and renames it
// into place, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
