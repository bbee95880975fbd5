//go:build integration
// +build integration

package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
)

const defaultWaitMs = 10000

// Action is one recorded step as exposed through the recorder's DOM. The
// attribute layout belongs to the application under test; the harness only
// reads it back to assert correctness.
type Action struct {
	Type      string `json:"type"`
	Selector  string `json:"selector"`
	Value     string `json:"value"`
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

// RecorderPage provides helper methods for the recorder screen of Web
// AutoTest Pro. It implements the Page Object pattern for cleaner test
// code; every selector is a contract with the external application.
type RecorderPage struct {
	Page playwright.Page
	t    *testing.T
}

// OpenRecorder navigates to the recorder and waits for it to load. A
// cleanup is registered that stops any recording a failed scenario left
// running.
func OpenRecorder(t *testing.T, f *Fixtures) *RecorderPage {
	t.Helper()

	f.Goto(t, "/recorder")

	err := f.Session.Page.Locator("#recorder-container").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(t, err, "recorder did not load")

	rp := &RecorderPage{Page: f.Session.Page, t: t}
	t.Cleanup(rp.StopIfActive)
	return rp
}

// StartRecording starts a new recording session and waits for the active
// status indicator.
func (rp *RecorderPage) StartRecording() {
	rp.t.Helper()

	err := rp.Page.Locator("#start-recording").Click()
	require.NoError(rp.t, err, "failed to click start recording")

	err = rp.Page.Locator(".recording-active").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(rp.t, err, "recording did not become active")
}

// StopRecording stops the active recording session.
func (rp *RecorderPage) StopRecording() {
	rp.t.Helper()

	err := rp.Page.Locator("#stop-recording").Click()
	require.NoError(rp.t, err, "failed to click stop recording")
}

// PauseRecording pauses recording and waits for the paused indicator.
func (rp *RecorderPage) PauseRecording() {
	rp.t.Helper()

	err := rp.Page.Locator("#pause-recording").Click()
	require.NoError(rp.t, err, "failed to click pause recording")

	err = rp.Page.Locator(".recording-paused").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(rp.t, err, "recording did not pause")
}

// ResumeRecording resumes a paused recording and waits for the active
// indicator.
func (rp *RecorderPage) ResumeRecording() {
	rp.t.Helper()

	err := rp.Page.Locator("#resume-recording").Click()
	require.NoError(rp.t, err, "failed to click resume recording")

	err = rp.Page.Locator(".recording-active").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(rp.t, err, "recording did not resume")
}

// StopIfActive stops a recording left running by the scenario. Errors are
// ignored; the recorder may legitimately be stopped already.
func (rp *RecorderPage) StopIfActive() {
	stop := rp.Page.Locator("#stop-recording")
	if visible, _ := stop.IsVisible(); !visible {
		return
	}
	if enabled, _ := stop.IsEnabled(); !enabled {
		return
	}
	_ = stop.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(2000)})
}

// WaitForRecordedActions waits for the recorded actions list to be present
// after stopping a recording.
func (rp *RecorderPage) WaitForRecordedActions() {
	rp.t.Helper()

	err := rp.Page.Locator("#recorded-actions").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(rp.t, err, "recorded actions list did not appear")
}

// RecordedActions returns the recorded steps of the given type, parsed from
// their data-action attributes.
func (rp *RecorderPage) RecordedActions(actionType string) []Action {
	rp.t.Helper()

	locators, err := rp.Page.Locator(fmt.Sprintf(".recorded-action[data-type='%s']", actionType)).All()
	require.NoError(rp.t, err)

	actions := make([]Action, 0, len(locators))
	for _, locator := range locators {
		raw, err := locator.GetAttribute("data-action")
		require.NoError(rp.t, err)

		var action Action
		require.NoError(rp.t, json.Unmarshal([]byte(raw), &action), "invalid data-action payload: %s", raw)
		actions = append(actions, action)
	}
	return actions
}

// SaveTest fills in name and description, saves the recorded test and waits
// for the save confirmation.
func (rp *RecorderPage) SaveTest(name, description string) {
	rp.t.Helper()

	require.NoError(rp.t, rp.Page.Locator("#test-name").Fill(name))
	require.NoError(rp.t, rp.Page.Locator("#test-description").Fill(description))
	require.NoError(rp.t, rp.Page.Locator("#save-test").Click())

	confirmation := rp.Page.Locator(".save-success")
	err := confirmation.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(rp.t, err, "save confirmation did not appear")

	text, err := confirmation.TextContent()
	require.NoError(rp.t, err)
	require.Contains(rp.t, text, "Test saved successfully")
}

// ExportScript selects an export format, triggers the export and returns
// the generated code from the export modal.
func (rp *RecorderPage) ExportScript(format string) string {
	rp.t.Helper()

	values := []string{format}
	_, err := rp.Page.Locator("#export-format").SelectOption(playwright.SelectOptionValues{
		Values: &values,
	})
	require.NoError(rp.t, err, "failed to select export format %s", format)

	require.NoError(rp.t, rp.Page.Locator("#export-test").Click())

	err = rp.Page.Locator("#export-modal").WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(defaultWaitMs),
	})
	require.NoError(rp.t, err, "export modal did not open")

	code, err := rp.Page.Locator("#generated-code").InputValue()
	require.NoError(rp.t, err)
	return code
}
