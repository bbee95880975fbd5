// Package markers classifies tests the way the suites are organized, so
// runs can be narrowed to smoke, regression, slow or integration scope.
package markers

import (
	"os"
	"strings"
	"testing"

	"github.com/samber/lo"
)

// Kind is a test classification marker.
type Kind string

const (
	Smoke       Kind = "smoke"
	Regression  Kind = "regression"
	Slow        Kind = "slow"
	Integration Kind = "integration"
)

// Names of scenarios that exercise batch or load behavior and therefore run
// noticeably longer than the rest.
var slowKeywords = []string{"batch", "load", "performance"}

// Classify derives markers from a test's file path and name: anything under
// an integration directory is an integration test, and slow keywords in the
// name mark the test as slow.
func Classify(path, name string) []Kind {
	var kinds []Kind
	if strings.Contains(path, "integration") {
		kinds = append(kinds, Integration)
	}

	lower := strings.ToLower(name)
	if lo.SomeBy(slowKeywords, func(keyword string) bool {
		return strings.Contains(lower, keyword)
	}) {
		kinds = append(kinds, Slow)
	}
	return kinds
}

// Has reports whether kind is among kinds.
func Has(kinds []Kind, kind Kind) bool {
	return lo.Contains(kinds, kind)
}

// SkipIfSlow skips the test when it classifies as slow and the run was
// started with -short.
func SkipIfSlow(t *testing.T) {
	t.Helper()
	if testing.Short() && Has(Classify("", t.Name()), Slow) {
		t.Skip("skipping slow test in short mode")
	}
}

// RequireIntegration skips the test unless end-to-end runs are enabled by
// setting E2E to a value other than "false". The integration build tag
// keeps browser suites out of plain builds; the env gate lets a tagged
// build compile and run its unit-level tests without driving a browser.
func RequireIntegration(t *testing.T) {
	t.Helper()
	if v := os.Getenv("E2E"); v == "" || strings.EqualFold(v, "false") {
		t.Skip("set E2E=true to run browser-driven tests")
	}
}

// Mark declares a test's kinds explicitly, on top of what Classify derives
// from its name, and applies the run filter: when the MARKERS environment
// variable names a comma-separated set of kinds, a test carrying none of
// them is skipped. An unset filter selects every test.
func Mark(t *testing.T, kinds ...Kind) {
	t.Helper()

	filter := os.Getenv("MARKERS")
	if filter == "" {
		return
	}

	selected := lo.Map(strings.Split(filter, ","), func(raw string, _ int) Kind {
		return Kind(strings.ToLower(strings.TrimSpace(raw)))
	})
	carried := append(Classify("", t.Name()), kinds...)
	if !lo.SomeBy(carried, func(kind Kind) bool {
		return lo.Contains(selected, kind)
	}) {
		t.Skipf("skipping: not selected by MARKERS=%s", filter)
	}
}
