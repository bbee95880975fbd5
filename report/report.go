// Package report handles the results directory layout and writes run
// reports for post-mortem inspection.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/samber/lo"

	"github.com/michaelyuwh/web-autotest-pro/outcome"
)

// EnsureLayout creates the results directory tree:
//
//	<root>/screenshots
//	<root>/reports
//
// Creation is idempotent and safe to race across parallel test processes.
func EnsureLayout(root string) error {
	for _, dir := range []string{
		root,
		filepath.Join(root, "screenshots"),
		filepath.Join(root, "reports"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// Result is the outcome of one scenario.
type Result struct {
	Name     string
	Status   outcome.Status
	Duration time.Duration
}

// Writer accumulates scenario results and writes them into the reports
// directory. It is safe for concurrent use.
type Writer struct {
	mu      sync.Mutex
	dir     string
	results []Result
}

// NewWriter creates a report writer targeting the given reports directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Add records the result of one scenario.
func (w *Writer) Add(result Result) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.results = append(w.results, result)
}

// Flush writes the run summary. With no results recorded it is a no-op, so
// the reports directory stays empty for runs that produce nothing.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.results) == 0 {
		return nil
	}

	passed := lo.CountBy(w.results, func(r Result) bool { return r.Status == outcome.StatusPassed })
	total := len(w.results)

	var buf bytes.Buffer
	buf.WriteString("# Test Execution Report\n\n")
	fmt.Fprintf(&buf, "Total Steps: %d\n", total)
	fmt.Fprintf(&buf, "Success Rate: %.0f%%\n", float64(passed)/float64(total)*100)
	fmt.Fprintf(&buf, "Execution Time: %s\n\n", lo.SumBy(w.results, func(r Result) time.Duration { return r.Duration }))
	for _, result := range w.results {
		fmt.Fprintf(&buf, "- %s: %s (%s)\n", result.Name, result.Status, result.Duration)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating reports directory: %w", err)
	}
	path := filepath.Join(w.dir, "run-report.md")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing run report: %w", err)
	}
	return nil
}

// SaveScript renders an exported test script (as surfaced by the
// application's export feature) to syntax-highlighted HTML in the reports
// directory and returns the written path.
func (w *Writer) SaveScript(name, language, code string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}
	formatter := html.New(html.Standalone(true), html.WithLineNumbers(true))

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenising script: %w", err)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", fmt.Errorf("formatting script: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}
	path := filepath.Join(w.dir, sanitizeName(name)+".html")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing script report: %w", err)
	}
	return path, nil
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func sanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}
