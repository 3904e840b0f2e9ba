package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/workarounds/internal/definition"
)

// Extension is the file suffix of every stored definition.
const Extension = ".json"

// ErrNoDirectory is returned by List when the application has no catalog
// directory. It is distinct from an empty directory, which lists as empty.
var ErrNoDirectory = errors.New("no workaround directory")

// Catalog reads and writes definitions under a root directory.
type Catalog struct {
	root   string
	logger *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for catalog diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = l
	}
}

// New returns a Catalog rooted at root. The directory is not created until
// something is written.
func New(root string, opts ...Option) *Catalog {
	c := &Catalog{
		root:   root,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Root returns the catalog root directory.
func (c *Catalog) Root() string {
	return c.root
}

// DefaultPath returns the location of the factory-default template.
func (c *Catalog) DefaultPath() string {
	return filepath.Join(c.root, definition.DefaultName+Extension)
}

// Dir returns the directory holding the definitions of one application.
func (c *Catalog) Dir(runner definition.Runner, appID string) string {
	return filepath.Join(c.root, fmt.Sprintf("%s-%s", runner, appID))
}

// Path returns the file of one named definition.
func (c *Catalog) Path(runner definition.Runner, appID, name string) string {
	return filepath.Join(c.Dir(runner, appID), name+Extension)
}

// Loaded is a definition together with where it came from.
type Loaded struct {
	Definition *definition.Definition
	// Path is the file the definition was read from.
	Path string
	// FromTemplate is set when the per-application file was absent and the
	// root template was used instead.
	FromTemplate bool
}

// Persistable reports whether the executed flag may be written back for
// this definition. The template, or anything carrying the template id,
// never is.
func (l *Loaded) Persistable() bool {
	return !l.FromTemplate && !l.Definition.IsTemplate()
}

// exists reports whether path exists; other stat errors are returned.
func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
