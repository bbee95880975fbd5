package session

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"

	"github.com/michaelyuwh/web-autotest-pro/config"
)

// fakeLoginPage simulates a page where the login flow fails at a chosen
// stage, e.g. a blank page without any login form.
type fakeLoginPage struct {
	failGoto bool
	failFill bool
	failWait bool

	gotoURL string
	filled  map[string]string
	clicked []string
}

func (f *fakeLoginPage) Goto(url string, _ ...playwright.PageGotoOptions) (playwright.Response, error) {
	f.gotoURL = url
	if f.failGoto {
		return nil, errors.New("net::ERR_CONNECTION_REFUSED")
	}
	return nil, nil
}

func (f *fakeLoginPage) Fill(selector, value string, _ ...playwright.PageFillOptions) error {
	if f.failFill {
		return errors.New("timeout waiting for selector " + selector)
	}
	if f.filled == nil {
		f.filled = map[string]string{}
	}
	f.filled[selector] = value
	return nil
}

func (f *fakeLoginPage) Click(selector string, _ ...playwright.PageClickOptions) error {
	f.clicked = append(f.clicked, selector)
	return nil
}

func (f *fakeLoginPage) WaitForURL(_ interface{}, _ ...playwright.PageWaitForURLOptions) error {
	if f.failWait {
		return errors.New("timeout waiting for URL **/dashboard**")
	}
	return nil
}

func authTestSettings() config.Settings {
	settings := testSettings("chrome")
	settings.BaseURL = "http://localhost:3000"
	settings.Username = "testuser"
	settings.Password = "testpass"
	return settings
}

func TestAuthenticate_Success(t *testing.T) {
	page := &fakeLoginPage{}

	ok := authenticate(page, authTestSettings(), slog.Default())

	assert.True(t, ok)
	assert.Equal(t, "http://localhost:3000/login", page.gotoURL)
	assert.Equal(t, "testuser", page.filled["#username"])
	assert.Equal(t, "testpass", page.filled["#password"])
	assert.Equal(t, []string{"#login-button"}, page.clicked)
}

func TestAuthenticate_MissingLoginForm_Degrades(t *testing.T) {
	// A blank page has no form fields; the flow must log and yield the
	// unauthenticated session instead of failing the test.
	page := &fakeLoginPage{failFill: true}

	assert.NotPanics(t, func() {
		ok := authenticate(page, authTestSettings(), slog.Default())
		assert.False(t, ok)
	})
}

func TestAuthenticate_NavigationFailure_Degrades(t *testing.T) {
	page := &fakeLoginPage{failGoto: true}

	ok := authenticate(page, authTestSettings(), slog.Default())
	assert.False(t, ok)
	assert.Empty(t, page.filled, "no fields should be filled after a failed navigation")
}

func TestAuthenticate_RedirectTimeout_Degrades(t *testing.T) {
	page := &fakeLoginPage{failWait: true}

	ok := authenticate(page, authTestSettings(), slog.Default())
	assert.False(t, ok)
	// Credentials were submitted even though the redirect never came.
	assert.Equal(t, []string{"#login-button"}, page.clicked)
}
