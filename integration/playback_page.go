//go:build integration
// +build integration

package integration

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

// PlaybackPage provides helper methods for the playback screen of Web
// AutoTest Pro, following the same Page Object pattern as RecorderPage.
type PlaybackPage struct {
	Page playwright.Page
	t    *testing.T
}

// OpenPlayback navigates to the playback screen and waits for it to load. A
// cleanup is registered that stops any playback a failed scenario left
// running.
func OpenPlayback(t *testing.T, f *Fixtures) *PlaybackPage {
	t.Helper()

	f.Goto(t, "/playback")

	err := f.Session.Page.Locator("#playback-container").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(t, err, "playback interface did not load")

	pp := &PlaybackPage{Page: f.Session.Page, t: t}
	t.Cleanup(pp.StopIfRunning)
	return pp
}

// LoadSampleTest opens the test selection modal, picks the first available
// test and confirms the selection.
func (pp *PlaybackPage) LoadSampleTest() {
	pp.t.Helper()

	require.NoError(pp.t, pp.Page.Locator("#load-test").Click())

	err := pp.Page.Locator("#test-selection-modal").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(pp.t, err, "test selection modal did not open")

	items := pp.Page.Locator(".test-item")
	count, err := items.Count()
	require.NoError(pp.t, err)
	require.Greater(pp.t, count, 0, "no saved tests available to load")

	require.NoError(pp.t, items.First().Click())
	require.NoError(pp.t, pp.Page.Locator("#confirm-test-selection").Click())

	err = pp.Page.Locator("#loaded-test-info").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(pp.t, err, "loaded test info did not appear")
}

// LoadErrorTest loads a test designed to produce step errors, falling back
// to the first available test if no dedicated error test exists.
func (pp *PlaybackPage) LoadErrorTest() {
	pp.t.Helper()

	require.NoError(pp.t, pp.Page.Locator("#load-test").Click())

	err := pp.Page.Locator("#test-selection-modal").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(pp.t, err, "test selection modal did not open")

	errorTests := pp.Page.Locator("[data-test-type='error']")
	count, err := errorTests.Count()
	require.NoError(pp.t, err)
	if count > 0 {
		require.NoError(pp.t, errorTests.First().Click())
	} else {
		items := pp.Page.Locator(".test-item")
		itemCount, err := items.Count()
		require.NoError(pp.t, err)
		require.Greater(pp.t, itemCount, 0, "no saved tests available to load")
		require.NoError(pp.t, items.First().Click())
	}

	require.NoError(pp.t, pp.Page.Locator("#confirm-test-selection").Click())
}

// Play starts playback and waits for the running status indicator.
func (pp *PlaybackPage) Play() {
	pp.t.Helper()

	require.NoError(pp.t, pp.Page.Locator("#play-test").Click())

	err := pp.Page.Locator(".playback-running").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(pp.t, err, "playback did not start")
}

// WaitForCompletion waits for the playback-completed indicator within the
// given timeout.
func (pp *PlaybackPage) WaitForCompletion(timeoutMs float64) {
	pp.t.Helper()

	err := pp.Page.Locator(".playback-completed").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(timeoutMs),
	})
	require.NoError(pp.t, err, "playback did not complete")
}

// Pause pauses playback and waits for the paused indicator.
func (pp *PlaybackPage) Pause() {
	pp.t.Helper()

	pause := pp.Page.Locator("#pause-playback")
	err := pause.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(pp.t, err, "pause control did not appear")
	require.NoError(pp.t, pause.Click())

	err = pp.Page.Locator(".playback-paused").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(pp.t, err, "playback did not pause")
}

// Resume resumes a paused playback and waits for the running indicator.
func (pp *PlaybackPage) Resume() {
	pp.t.Helper()

	require.NoError(pp.t, pp.Page.Locator("#resume-playback").Click())

	err := pp.Page.Locator(".playback-running").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(pp.t, err, "playback did not resume")
}

// Stop stops playback mid-execution and waits for the stopped indicator.
func (pp *PlaybackPage) Stop() {
	pp.t.Helper()

	require.NoError(pp.t, pp.Page.Locator("#stop-playback").Click())

	err := pp.Page.Locator(".playback-stopped").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(pp.t, err, "playback did not stop")
}

// StopIfRunning stops a playback left running by the scenario. Errors are
// ignored; playback may legitimately have finished already.
func (pp *PlaybackPage) StopIfRunning() {
	stop := pp.Page.Locator("#stop-playback")
	if visible, _ := stop.IsVisible(); !visible {
		return
	}
	if enabled, _ := stop.IsEnabled(); !enabled {
		return
	}
	_ = stop.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(2000)})
}

// SetSpeed sets the playback speed slider and fires the change event the
// application listens for.
func (pp *PlaybackPage) SetSpeed(multiplier int) {
	pp.t.Helper()

	_, err := pp.Page.Locator("#playback-speed").Evaluate(
		`(el, value) => { el.value = value; el.dispatchEvent(new Event('change', { bubbles: true })); }`,
		multiplier,
	)
	require.NoError(pp.t, err, "failed to set playback speed")
}

// Count returns the number of elements matching selector.
func (pp *PlaybackPage) Count(selector string) int {
	pp.t.Helper()

	count, err := pp.Page.Locator(selector).Count()
	require.NoError(pp.t, err)
	return count
}
