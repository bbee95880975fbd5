package capture

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelyuwh/web-autotest-pro/outcome"
)

// fakeShooter counts capture attempts and can simulate a closed session.
type fakeShooter struct {
	calls int
	err   error
}

func (f *fakeShooter) Screenshot() ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("\x89PNG fake image data"), nil
}

func TestCapture_WritesScreenshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "screenshots")
	shooter := &fakeShooter{}

	path, ok := Capture("TestExample/sub_case", shooter, dir, nil)
	require.True(t, ok)
	assert.Equal(t, 1, shooter.calls)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "TestExample_sub_case_"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestCapture_FailureSuppressed(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "screenshots")
	shooter := &fakeShooter{err: errors.New("session already closed")}

	var path string
	var ok bool
	assert.NotPanics(t, func() {
		path, ok = Capture("TestExample", shooter, dir, nil)
	})

	assert.False(t, ok)
	assert.Empty(t, path)
	// The directory is only created once there is an image to persist.
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestOnFailure_CapturesOnFailedCallPhase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "screenshots")
	rec := outcome.NewRecorder()
	shooter := &fakeShooter{}

	var childName string
	t.Run("failing_child", func(t *testing.T) {
		childName = t.Name()
		OnFailure(t, rec, shooter, dir)
		// Simulate a failed call phase the way the observer records it.
		rec.Record(t.Name(), outcome.PhaseCall, outcome.Report{Status: outcome.StatusFailed})
	})

	assert.Equal(t, 1, shooter.calls, "a failed call phase triggers exactly one capture")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), sanitizeName(childName))
}

func TestOnFailure_NoCaptureOnPassedCallPhase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "screenshots")
	rec := outcome.NewRecorder()
	shooter := &fakeShooter{}

	t.Run("passing_child", func(t *testing.T) {
		OnFailure(t, rec, shooter, dir)
		rec.Record(t.Name(), outcome.PhaseCall, outcome.Report{Status: outcome.StatusPassed})
	})

	assert.Zero(t, shooter.calls, "a passed call phase triggers no capture")
}

func TestOnFailure_FallsBackToFrameworkOutcome(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "screenshots")
	rec := outcome.NewRecorder()
	shooter := &fakeShooter{}

	var childName string
	t.Run("unobserved_child", func(t *testing.T) {
		childName = t.Name()
		// No Observe registered: the fixture derives the outcome itself.
		OnFailure(t, rec, shooter, dir)
	})

	assert.Zero(t, shooter.calls)
	report, ok := rec.Get(childName, outcome.PhaseCall)
	require.True(t, ok)
	assert.Equal(t, outcome.StatusPassed, report.Status)
}

func TestOnFailure_CaptureFailureDoesNotPropagate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "screenshots")
	rec := outcome.NewRecorder()
	shooter := &fakeShooter{err: errors.New("session already closed")}

	t.Run("failing_child", func(t *testing.T) {
		OnFailure(t, rec, shooter, dir)
		rec.Record(t.Name(), outcome.PhaseCall, outcome.Report{Status: outcome.StatusFailed})
	})

	// The cleanup ran, attempted one capture, and swallowed the error
	// without failing this test.
	assert.Equal(t, 1, shooter.calls)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TestSimple", "TestSimple"},
		{"TestSuite/sub test", "TestSuite_sub_test"},
		{"Test#weird$chars", "Test_weird_chars"},
		{"Test.dots-and_underscores", "Test.dots-and_underscores"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in))
	}
}
