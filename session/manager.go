package session

import (
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/michaelyuwh/web-autotest-pro/config"
)

// Capabilities describe a requested remote session to a session hub.
type Capabilities struct {
	BrowserName    string
	BrowserVersion string
	PlatformName   string
}

// remoteCapabilities returns the fixed capability descriptor for a browser,
// matching what the hub expects for CI runs.
func remoteCapabilities(browser string) Capabilities {
	return Capabilities{
		BrowserName:    browser,
		BrowserVersion: "latest",
		PlatformName:   "linux",
	}
}

// Manager acquires browser sessions according to the resolved settings.
// Each acquisition owns exactly one browser instance until released.
type Manager struct {
	settings config.Settings
	logger   *slog.Logger
}

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	Settings config.Settings
	// Logger receives lifecycle messages. Default: slog.Default()
	Logger *slog.Logger
}

// NewManager creates a session manager for the given settings.
func NewManager(opts ManagerOptions) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{settings: opts.Settings, logger: logger}
}

// Session is an exclusive handle to one running browser instance, local or
// remote. It is owned by a single test and must be released exactly once;
// Release is safe to call more than once.
type Session struct {
	ID      uuid.UUID
	Browser playwright.Browser
	Context playwright.BrowserContext
	Page    playwright.Page

	pw       *playwright.Playwright
	log      *slog.Logger
	quitOnce sync.Once
}

// Acquire starts a browser session. If a hub URL is configured the session
// is connected remotely with a capability descriptor; otherwise a local
// browser is launched. On success the implicit-wait and page-load timeouts
// from the settings are applied.
//
// An unsupported browser name fails here, before any launch or connection
// attempt. Launch and connection failures propagate unchanged; there is no
// retry.
func (m *Manager) Acquire() (*Session, error) {
	launchOpts, err := LaunchOptions(m.settings)
	if err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright driver: %w", err)
	}

	browserType := m.browserType(pw)

	var browser playwright.Browser
	if m.settings.HubURL != "" {
		caps := remoteCapabilities(m.settings.Browser)
		endpoint, endpointErr := remoteEndpoint(m.settings.HubURL, caps)
		if endpointErr != nil {
			pw.Stop()
			return nil, endpointErr
		}
		m.logger.Debug("connecting to remote session hub",
			"hub", m.settings.HubURL,
			"browser", caps.BrowserName,
			"version", caps.BrowserVersion,
			"platform", caps.PlatformName)
		browser, err = browserType.Connect(endpoint)
	} else {
		browser, err = browserType.Launch(launchOpts)
	}
	if err != nil {
		pw.Stop()
		return nil, err
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  m.settings.WindowWidth,
			Height: m.settings.WindowHeight,
		},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("creating browser context: %w", err)
	}

	// Playwright has no implicit element wait; the context default timeout
	// applies to locator waits, which is the closest equivalent.
	context.SetDefaultTimeout(float64(m.settings.ImplicitWait.Milliseconds()))
	context.SetDefaultNavigationTimeout(float64(m.settings.PageLoadTimeout.Milliseconds()))

	page, err := context.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("creating page: %w", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("generating session ID: %w", err)
	}

	m.logger.Debug("acquired browser session",
		"id", id,
		"browser", m.settings.Browser,
		"headless", m.settings.Headless,
		"remote", m.settings.HubURL != "")

	return &Session{
		ID:      id,
		Browser: browser,
		Context: context,
		Page:    page,
		pw:      pw,
		log:     m.logger,
	}, nil
}

// WithSession acquires a session for the duration of one test. Release is
// registered with t.Cleanup so teardown runs exactly once on every exit
// path, including panics in the test body.
func (m *Manager) WithSession(t *testing.T, fn func(t *testing.T, sess *Session)) {
	t.Helper()

	sess, err := m.Acquire()
	require.NoError(t, err, "failed to acquire browser session")
	t.Cleanup(sess.Release)

	fn(t, sess)
}

// Settings returns the settings this manager was created with.
func (m *Manager) Settings() config.Settings {
	return m.settings
}

func (m *Manager) browserType(pw *playwright.Playwright) playwright.BrowserType {
	if m.settings.Browser == "firefox" {
		return pw.Firefox
	}
	return pw.Chromium
}

// Release quits the browser session. Only the first call performs the
// teardown; later calls are no-ops. Errors during teardown are logged and
// never propagated, so they cannot mask a test failure.
func (s *Session) Release() {
	s.quitOnce.Do(func() {
		if s.Browser != nil {
			if err := s.Browser.Close(); err != nil {
				s.logger().Warn("closing browser", "session", s.ID, "error", err)
			}
		}
		if s.pw != nil {
			if err := s.pw.Stop(); err != nil {
				s.logger().Warn("stopping playwright driver", "session", s.ID, "error", err)
			}
		}
	})
}

// Screenshot captures the current page as a PNG.
func (s *Session) Screenshot() ([]byte, error) {
	return s.Page.Screenshot()
}

func (s *Session) logger() *slog.Logger {
	if s.log != nil {
		return s.log
	}
	return slog.Default()
}

// remoteEndpoint encodes the capability descriptor into the hub URL so
// grid-style intermediaries can route the session.
func remoteEndpoint(hubURL string, caps Capabilities) (string, error) {
	u, err := url.Parse(hubURL)
	if err != nil {
		return "", fmt.Errorf("parsing hub URL: %w", err)
	}
	q := u.Query()
	q.Set("browserName", caps.BrowserName)
	q.Set("browserVersion", caps.BrowserVersion)
	q.Set("platformName", caps.PlatformName)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
