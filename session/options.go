package session

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/michaelyuwh/web-autotest-pro/config"
)

// UnsupportedBrowserError reports a browser name the harness cannot drive.
// It is a fatal configuration error and is raised before any session is
// attempted.
type UnsupportedBrowserError struct {
	Browser string
}

func (e *UnsupportedBrowserError) Error() string {
	return fmt.Sprintf("unsupported browser: %q", e.Browser)
}

// LaunchOptions builds browser launch options from settings. It is a pure
// function: for a given settings value the flag list is deterministic.
//
// Flags per browser:
//   - chrome: sandbox and GPU disabled plus CI-oriented throttling flags,
//     window geometry from the settings.
//   - firefox: window geometry only.
func LaunchOptions(settings config.Settings) (playwright.BrowserTypeLaunchOptions, error) {
	switch settings.Browser {
	case "chrome":
		return playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(settings.Headless),
			Args: []string{
				"--no-sandbox",
				"--disable-dev-shm-usage",
				"--disable-gpu",
				"--disable-extensions",
				"--disable-plugins",
				fmt.Sprintf("--window-size=%s", settings.WindowSize()),
				"--start-maximized",
				// Keep background tabs running at full speed in CI.
				"--disable-background-timer-throttling",
				"--disable-backgrounding-occluded-windows",
				"--disable-renderer-backgrounding",
			},
		}, nil

	case "firefox":
		return playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(settings.Headless),
			Args: []string{
				fmt.Sprintf("--width=%d", settings.WindowWidth),
				fmt.Sprintf("--height=%d", settings.WindowHeight),
			},
		}, nil

	default:
		return playwright.BrowserTypeLaunchOptions{}, &UnsupportedBrowserError{Browser: settings.Browser}
	}
}
