//go:build integration
// +build integration

package integration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	harness "github.com/michaelyuwh/web-autotest-pro"
	"github.com/michaelyuwh/web-autotest-pro/markers"
	"github.com/michaelyuwh/web-autotest-pro/outcome"
	"github.com/michaelyuwh/web-autotest-pro/report"
	"github.com/michaelyuwh/web-autotest-pro/session"
)

// Fixtures bundles all commonly needed test fixtures.
type Fixtures struct {
	Harness *harness.Instance
	Session *session.Session
}

// Goto navigates the session to a path under the application base URL.
func (f *Fixtures) Goto(t *testing.T, path string) {
	t.Helper()
	_, err := f.Session.Page.Goto(f.Harness.Settings.BaseURL + path)
	require.NoError(t, err, "failed to navigate to %s", path)
}

// WithSession creates the harness, acquires a browser session with teardown
// registered via t.Cleanup, wires outcome observation plus
// screenshot-on-failure, and calls the test function. This reduces
// boilerplate in scenarios by handling the common setup pattern.
func WithSession(t *testing.T, fn func(t *testing.T, f *Fixtures)) {
	t.Helper()

	markers.RequireIntegration(t)
	markers.SkipIfSlow(t)

	h, err := harness.New()
	require.NoError(t, err, "failed to create harness")
	t.Cleanup(func() {
		if err := h.Close(); err != nil {
			t.Logf("closing harness: %v", err)
		}
	})

	sess, err := h.Sessions.Acquire()
	require.NoError(t, err, "failed to acquire browser session")
	t.Cleanup(sess.Release)

	start := time.Now()
	t.Cleanup(func() {
		h.Reports.Add(report.Result{
			Name:     t.Name(),
			Status:   outcome.ReportFor(t).Status,
			Duration: time.Since(start),
		})
	})

	h.Watch(t, sess)

	fn(t, &Fixtures{Harness: h, Session: sess})
}

// WithAuthenticatedSession layers the login flow on top of WithSession. A
// failed login degrades to an unauthenticated session instead of failing
// the test.
func WithAuthenticatedSession(t *testing.T, fn func(t *testing.T, f *Fixtures)) {
	t.Helper()

	WithSession(t, func(t *testing.T, f *Fixtures) {
		session.Authenticate(f.Session, f.Harness.Settings)
		fn(t, f)
	})
}
