package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

// DefaultURL is the community definition archive.
const DefaultURL = "https://codeload.github.com/manueliglesiasgarcia/WineGameDB/legacy.tar.gz/refs/heads/workarounds"

// DefaultRetryMax is the number of fetch retries when no client is given.
const DefaultRetryMax = 3

// archiveName is the fetched archive's file name inside staging.
const archiveName = "workarounds.tar.gz"

// Manager synchronizes a catalog directory with the remote archive.
//
// Manager does not coordinate with the execution engine: a file may be
// replaced while an execution is reading it.
type Manager struct {
	root     string
	staging  string
	url      string
	client   *retryablehttp.Client
	retryMax int
	logger   *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithStagingDir sets the scratch directory. It is removed after every sync.
// Default: "WorkaroundsUpdate" next to the catalog root.
func WithStagingDir(dir string) Option {
	return func(m *Manager) {
		m.staging = dir
	}
}

// WithURL sets the archive location. Default: DefaultURL.
func WithURL(url string) Option {
	return func(m *Manager) {
		m.url = url
	}
}

// WithHTTPClient sets the client used to fetch the archive.
func WithHTTPClient(c *retryablehttp.Client) Option {
	return func(m *Manager) {
		m.client = c
	}
}

// WithRetryMax sets the retry count of the default client.
// Ignored when WithHTTPClient is given.
func WithRetryMax(n int) Option {
	return func(m *Manager) {
		m.retryMax = n
	}
}

// WithLogger sets the logger used for sync diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// New creates a Manager for the catalog rooted at root.
func New(root string, opts ...Option) *Manager {
	m := &Manager{
		root:     root,
		staging:  filepath.Join(filepath.Dir(root), "WorkaroundsUpdate"),
		url:      DefaultURL,
		retryMax: DefaultRetryMax,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.client == nil {
		m.client = retryablehttp.NewClient()
		m.client.RetryMax = m.retryMax
		m.client.Logger = m.logger
	}
	return m
}

// Report lists what a sync changed, as slash-separated paths relative to
// the catalog root.
type Report struct {
	SyncID    string   `json:"sync_id"`
	Added     []string `json:"added"`
	Replaced  []string `json:"replaced"`
	Unchanged []string `json:"unchanged"`
}

// UpdateAll runs one sync cycle. A failure is returned as a *PhaseError.
func (m *Manager) UpdateAll(ctx context.Context) (report *Report, err error) {
	report = &Report{
		SyncID:    uuid.Must(uuid.NewV7()).String(),
		Added:     []string{},
		Replaced:  []string{},
		Unchanged: []string{},
	}
	logger := m.logger.With("sync_id", report.SyncID)

	if err := m.prepare(); err != nil {
		return nil, &PhaseError{Phase: PhasePrepare, Err: err}
	}
	defer func() {
		if cerr := os.RemoveAll(m.staging); cerr != nil {
			if err == nil {
				report, err = nil, &PhaseError{Phase: PhaseCleanup, Err: cerr}
				return
			}
			logger.Warn("failed to remove staging directory", "path", m.staging, "error", cerr)
		}
	}()

	archive := filepath.Join(m.staging, archiveName)
	logger.Info("fetching workarounds", "url", m.url)
	if err := m.fetch(ctx, archive); err != nil {
		return nil, &PhaseError{Phase: PhaseFetch, Err: err}
	}

	n, err := extract(archive, m.staging)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseExtract, Err: err}
	}
	logger.Debug("extracted workarounds", "count", n)

	if err := m.compare(logger, report); err != nil {
		return nil, &PhaseError{Phase: PhaseCompare, Err: err}
	}

	logger.Info("workarounds synced",
		"added", len(report.Added),
		"replaced", len(report.Replaced),
		"unchanged", len(report.Unchanged),
	)
	return report, nil
}

// prepare creates the catalog root and an empty staging directory. Leftovers
// from an interrupted sync are discarded.
func (m *Manager) prepare() error {
	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return fmt.Errorf("create catalog root: %w", err)
	}
	if err := os.RemoveAll(m.staging); err != nil {
		return fmt.Errorf("clear staging: %w", err)
	}
	if err := os.MkdirAll(m.staging, 0o755); err != nil {
		return fmt.Errorf("create staging: %w", err)
	}
	return nil
}
