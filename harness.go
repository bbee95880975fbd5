// Package harness wires together the pieces of the web-autotest-pro
// end-to-end suite: resolved settings, browser session lifecycle, per-test
// outcome recording and the results directory layout.
package harness

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/michaelyuwh/web-autotest-pro/capture"
	"github.com/michaelyuwh/web-autotest-pro/config"
	"github.com/michaelyuwh/web-autotest-pro/outcome"
	"github.com/michaelyuwh/web-autotest-pro/report"
	"github.com/michaelyuwh/web-autotest-pro/session"
)

// DefaultResultsRoot is where screenshots and reports land unless overridden.
const DefaultResultsRoot = "test-results"

// Instance bundles everything a scenario needs. Create one per test (or per
// suite) with New or NewWithOptions.
type Instance struct {
	Settings config.Settings
	Sessions *session.Manager
	Outcomes *outcome.Recorder
	Reports  *report.Writer

	resultsRoot string
	logger      *slog.Logger
}

// Options configures an Instance.
type Options struct {
	// Settings overrides environment resolution.
	// Default: config.FromEnv()
	Settings *config.Settings

	// ResultsRoot is the directory for screenshots and reports.
	// Default: "test-results"
	ResultsRoot string

	// Logger receives harness lifecycle messages.
	// Default: slog.Default()
	Logger *slog.Logger
}

// New creates a harness instance with settings resolved from the
// environment and the default results layout.
func New() (*Instance, error) {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a harness instance. It resolves settings, prepares
// the results directory tree and sets up the session manager and outcome
// recorder. Defaults are the zero value of Options.
func NewWithOptions(options Options) (*Instance, error) {
	settings := config.FromEnv()
	if options.Settings != nil {
		settings = *options.Settings
	}

	resultsRoot := options.ResultsRoot
	if resultsRoot == "" {
		resultsRoot = DefaultResultsRoot
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := report.EnsureLayout(resultsRoot); err != nil {
		return nil, err
	}

	return &Instance{
		Settings: settings,
		Sessions: session.NewManager(session.ManagerOptions{
			Settings: settings,
			Logger:   logger,
		}),
		Outcomes:    outcome.NewRecorder(),
		Reports:     report.NewWriter(filepath.Join(resultsRoot, "reports")),
		resultsRoot: resultsRoot,
		logger:      logger,
	}, nil
}

// ScreenshotsDir returns the directory failure screenshots are written to.
func (i *Instance) ScreenshotsDir() string {
	return filepath.Join(i.resultsRoot, "screenshots")
}

// Watch registers outcome observation and screenshot-on-failure for one
// test. Registration order matters: cleanups run last-registered first, so
// the call-phase outcome is recorded before the screenshot fixture reads it.
func (i *Instance) Watch(t *testing.T, sess *session.Session) {
	t.Helper()
	capture.OnFailure(t, i.Outcomes, sess, i.ScreenshotsDir())
	outcome.Observe(t, i.Outcomes)
}

// Close flushes the report writer. Browser sessions are test-scoped and are
// released by their own cleanups, not here.
func (i *Instance) Close() error {
	return i.Reports.Flush()
}
