// Package outcome records per-test, per-phase results so teardown-stage
// fixtures can act on what happened during the test body.
package outcome

import (
	"sync"
	"testing"
)

// Phase identifies one stage of a test's execution.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseCall     Phase = "call"
	PhaseTeardown Phase = "teardown"
)

// Status is the result of one phase.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusErrored Status = "errored"
	StatusSkipped Status = "skipped"
)

// Report records what happened in one phase of one test.
type Report struct {
	Status Status
	// Err holds the error that ended the phase, if one was captured.
	Err error
}

// Failed reports whether the phase ended in a failure or an error.
func (r Report) Failed() bool {
	return r.Status == StatusFailed || r.Status == StatusErrored
}

// Recorder keeps reports keyed by test identifier and phase. It is safe for
// concurrent use. Instead of ambient process state, a Recorder is passed
// explicitly to the fixtures that need post-test behavior.
type Recorder struct {
	mu      sync.RWMutex
	reports map[string]map[Phase]Report
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{reports: make(map[string]map[Phase]Report)}
}

// Record stores the report for one phase of one test.
func (r *Recorder) Record(testID string, phase Phase, report Report) {
	r.mu.Lock()
	defer r.mu.Unlock()

	phases, ok := r.reports[testID]
	if !ok {
		phases = make(map[Phase]Report)
		r.reports[testID] = phases
	}
	phases[phase] = report
}

// Get returns the report for one phase of one test, if recorded.
func (r *Recorder) Get(testID string, phase Phase) (Report, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[testID][phase]
	return report, ok
}

// Failed reports whether the given phase of the test was recorded as failed.
// An unrecorded phase counts as not failed.
func (r *Recorder) Failed(testID string, phase Phase) bool {
	report, ok := r.Get(testID, phase)
	return ok && report.Failed()
}

// Observe records the call-phase outcome of t once the test finishes. It
// reads the result the framework has already computed, so it works even if
// the test body panicked: the framework marks the test failed before cleanup
// functions run.
//
// Register Observe after fixtures that read the call phase in their own
// cleanup (cleanups run last-registered first).
func Observe(t *testing.T, r *Recorder) {
	t.Helper()
	t.Cleanup(func() {
		r.Record(t.Name(), PhaseCall, ReportFor(t))
	})
}

// ReportFor derives a call-phase report from the framework's own outcome.
func ReportFor(t *testing.T) Report {
	switch {
	case t.Skipped():
		return Report{Status: StatusSkipped}
	case t.Failed():
		return Report{Status: StatusFailed}
	default:
		return Report{Status: StatusPassed}
	}
}
