package session

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteEndpoint(t *testing.T) {
	endpoint, err := remoteEndpoint("ws://hub:4444/playwright", remoteCapabilities("chrome"))
	require.NoError(t, err)

	assert.Contains(t, endpoint, "ws://hub:4444/playwright?")
	assert.Contains(t, endpoint, "browserName=chrome")
	assert.Contains(t, endpoint, "browserVersion=latest")
	assert.Contains(t, endpoint, "platformName=linux")
}

func TestRemoteEndpoint_PreservesExistingQuery(t *testing.T) {
	endpoint, err := remoteEndpoint("ws://hub:4444/playwright?token=abc", remoteCapabilities("firefox"))
	require.NoError(t, err)

	assert.Contains(t, endpoint, "token=abc")
	assert.Contains(t, endpoint, "browserName=firefox")
}

func TestRemoteCapabilities(t *testing.T) {
	caps := remoteCapabilities("chrome")
	assert.Equal(t, Capabilities{
		BrowserName:    "chrome",
		BrowserVersion: "latest",
		PlatformName:   "linux",
	}, caps)
}

func TestSessionRelease_Idempotent(t *testing.T) {
	// A session whose browser already went away must tolerate repeated
	// Release calls without panicking.
	sess := &Session{log: slog.Default()}

	assert.NotPanics(t, func() {
		sess.Release()
		sess.Release()
	})
}

func TestSessionRelease_NilLogger(t *testing.T) {
	sess := &Session{}

	assert.NotPanics(t, func() {
		sess.Release()
	})
}

func TestNewManager_DefaultLogger(t *testing.T) {
	manager := NewManager(ManagerOptions{Settings: testSettings("chrome")})
	require.NotNil(t, manager.logger)
}
