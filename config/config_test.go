package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	settings := FromEnv()

	assert.Equal(t, "http://localhost:3000", settings.BaseURL)
	assert.Equal(t, "chrome", settings.Browser)
	assert.True(t, settings.Headless)
	assert.Empty(t, settings.HubURL)
	assert.Equal(t, 10*time.Second, settings.ImplicitWait)
	assert.Equal(t, 30*time.Second, settings.PageLoadTimeout)
	assert.Equal(t, 1920, settings.WindowWidth)
	assert.Equal(t, 1080, settings.WindowHeight)
	assert.Equal(t, "testuser", settings.Username)
	assert.Equal(t, "testpass", settings.Password)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_BASE_URL", "https://staging.example.com")
	t.Setenv("SELENIUM_HUB_URL", "http://hub:4444/wd/hub")
	t.Setenv("BROWSER", "Firefox")
	t.Setenv("HEADLESS", "false")
	t.Setenv("TEST_USERNAME", "qa")
	t.Setenv("TEST_PASSWORD", "secret")

	settings := FromEnv()

	assert.Equal(t, "https://staging.example.com", settings.BaseURL)
	assert.Equal(t, "http://hub:4444/wd/hub", settings.HubURL)
	assert.Equal(t, "firefox", settings.Browser, "browser name should be lowercased")
	assert.False(t, settings.Headless)
	assert.Equal(t, "qa", settings.Username)
	assert.Equal(t, "secret", settings.Password)
}

func TestFromEnv_Headless(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"true", true},
		{"1", true},
		{"anything", true},
		{"false", false},
		{"FALSE", false},
		{"False", false},
	}

	for _, tt := range tests {
		t.Run("HEADLESS="+tt.value, func(t *testing.T) {
			t.Setenv("HEADLESS", tt.value)
			assert.Equal(t, tt.want, FromEnv().Headless)
		})
	}
}

func TestFromEnv_NoBrowserValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("BROWSER", "netscape")

	// Resolution must not reject unsupported browsers; that happens at
	// option-build time.
	assert.Equal(t, "netscape", FromEnv().Browser)
}

func TestSettings_WindowSize(t *testing.T) {
	settings := Settings{WindowWidth: 1280, WindowHeight: 720}
	assert.Equal(t, "1280,720", settings.WindowSize())
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_BASE_URL", "SELENIUM_HUB_URL", "HEADLESS", "BROWSER",
		"TEST_USERNAME", "TEST_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}
