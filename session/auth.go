package session

import (
	"log/slog"

	"github.com/playwright-community/playwright-go"

	"github.com/michaelyuwh/web-autotest-pro/config"
)

// loginPage is the subset of page operations the login flow needs. It keeps
// the degrade path testable without a running browser; playwright.Page
// satisfies it.
type loginPage interface {
	Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error)
	Fill(selector string, value string, options ...playwright.PageFillOptions) error
	Click(selector string, options ...playwright.PageClickOptions) error
	WaitForURL(url interface{}, options ...playwright.PageWaitForURLOptions) error
}

// Authenticate layers a login flow on top of an acquired session: it
// navigates to the login page, submits the configured credentials and waits
// for the dashboard redirect.
//
// Any failure (missing elements, timeout) is logged and the session is
// returned unauthenticated. Callers never see an error; tests degrade to
// reduced capability instead of aborting.
func Authenticate(sess *Session, settings config.Settings) *Session {
	authenticate(sess.Page, settings, sess.logger())
	return sess
}

func authenticate(page loginPage, settings config.Settings, logger *slog.Logger) bool {
	if _, err := page.Goto(settings.BaseURL + "/login"); err != nil {
		logger.Warn("authentication failed, continuing unauthenticated", "stage", "navigate", "error", err)
		return false
	}
	if err := page.Fill("#username", settings.Username); err != nil {
		logger.Warn("authentication failed, continuing unauthenticated", "stage", "username", "error", err)
		return false
	}
	if err := page.Fill("#password", settings.Password); err != nil {
		logger.Warn("authentication failed, continuing unauthenticated", "stage", "password", "error", err)
		return false
	}
	if err := page.Click("#login-button"); err != nil {
		logger.Warn("authentication failed, continuing unauthenticated", "stage", "submit", "error", err)
		return false
	}
	err := page.WaitForURL("**/dashboard**", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(float64(settings.ImplicitWait.Milliseconds())),
	})
	if err != nil {
		logger.Warn("authentication failed, continuing unauthenticated", "stage", "redirect", "error", err)
		return false
	}

	logger.Info("authenticated session", "user", settings.Username)
	return true
}
