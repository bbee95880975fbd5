// Package capture persists screenshots of failed tests for post-mortem
// inspection.
package capture

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/michaelyuwh/web-autotest-pro/outcome"
)

// Screenshotter captures a PNG of the active browser viewport.
// session.Session satisfies it; tests can substitute a fake to simulate
// capture failures.
type Screenshotter interface {
	Screenshot() ([]byte, error)
}

// OnFailure registers a cleanup that consults the outcome recorder after the
// test body has run and, only if the call phase failed, captures exactly one
// screenshot into dir. The file is named <test-name>_<unix-timestamp>.png
// and the directory is created if absent.
//
// Capture failures (e.g. the session was already closed) are logged and
// fully suppressed; they never mask the original test failure.
func OnFailure(t *testing.T, rec *outcome.Recorder, shooter Screenshotter, dir string) {
	t.Helper()
	t.Cleanup(func() {
		report, ok := rec.Get(t.Name(), outcome.PhaseCall)
		if !ok {
			// The recorder did not observe this test; fall back to the
			// framework's own outcome.
			report = outcome.ReportFor(t)
			rec.Record(t.Name(), outcome.PhaseCall, report)
		}
		if !report.Failed() {
			return
		}
		Capture(t.Name(), shooter, dir, slog.Default())
	})
}

// Capture performs a single screenshot attempt for the given test and
// returns the written path. It never returns an error; failures are logged
// and reported through the second return value only.
func Capture(testID string, shooter Screenshotter, dir string, logger *slog.Logger) (string, bool) {
	if logger == nil {
		logger = slog.Default()
	}

	png, err := shooter.Screenshot()
	if err != nil {
		logger.Warn("failed to take screenshot", "test", testID, "error", err)
		return "", false
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("failed to create screenshots directory", "dir", dir, "error", err)
		return "", false
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%d.png", sanitizeName(testID), time.Now().Unix()))
	if err := os.WriteFile(path, png, 0o644); err != nil {
		logger.Warn("failed to write screenshot", "path", path, "error", err)
		return "", false
	}

	logger.Info("screenshot saved", "test", testID, "path", path)
	return path, true
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeName makes a test name (which may contain subtest slashes) safe
// for use as a file name.
func sanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}
