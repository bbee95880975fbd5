package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Defaults used when the corresponding environment variable is not set.
const (
	DefaultBaseURL  = "http://localhost:3000"
	DefaultBrowser  = "chrome"
	DefaultUsername = "testuser"
	DefaultPassword = "testpass"

	DefaultImplicitWait    = 10 * time.Second
	DefaultPageLoadTimeout = 30 * time.Second

	DefaultWindowWidth  = 1920
	DefaultWindowHeight = 1080
)

// Settings holds the resolved harness configuration for one test session.
// It is created once per session and never mutated afterwards.
type Settings struct {
	// BaseURL is the address of the Web AutoTest Pro instance under test.
	BaseURL string

	// Browser selects the engine to drive ("chrome" or "firefox").
	// Unsupported names are not rejected here; they fail when launch
	// options are built, before any session is attempted.
	Browser string

	// Headless controls whether the browser runs without a visible window.
	Headless bool

	// HubURL, if set, points to a remote session hub. Sessions are then
	// connected instead of launched locally.
	HubURL string

	// ImplicitWait is applied as the default timeout for element lookups
	// and locator waits.
	ImplicitWait time.Duration

	// PageLoadTimeout bounds page navigations.
	PageLoadTimeout time.Duration

	// WindowWidth and WindowHeight set the browser viewport.
	WindowWidth  int
	WindowHeight int

	// Username and Password are the credentials used by the login flow.
	Username string
	Password string
}

// WindowSize returns the viewport as a "WIDTH,HEIGHT" string, the format
// browser command line flags expect.
func (s Settings) WindowSize() string {
	return fmt.Sprintf("%d,%d", s.WindowWidth, s.WindowHeight)
}

// FromEnv resolves settings from environment variables:
//
//	APP_BASE_URL      application base URL (default http://localhost:3000)
//	SELENIUM_HUB_URL  remote session hub URL (default: unset, launch locally)
//	HEADLESS          "false" disables headless mode (default true)
//	BROWSER           browser engine, lowercased (default chrome)
//	TEST_USERNAME     login username (default testuser)
//	TEST_PASSWORD     login password (default testpass)
//
// FromEnv performs no validation beyond lowercasing the browser name.
func FromEnv() Settings {
	return Settings{
		BaseURL:         envOr("APP_BASE_URL", DefaultBaseURL),
		Browser:         strings.ToLower(envOr("BROWSER", DefaultBrowser)),
		Headless:        !strings.EqualFold(os.Getenv("HEADLESS"), "false"),
		HubURL:          os.Getenv("SELENIUM_HUB_URL"),
		ImplicitWait:    DefaultImplicitWait,
		PageLoadTimeout: DefaultPageLoadTimeout,
		WindowWidth:     DefaultWindowWidth,
		WindowHeight:    DefaultWindowHeight,
		Username:        envOr("TEST_USERNAME", DefaultUsername),
		Password:        envOr("TEST_PASSWORD", DefaultPassword),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
