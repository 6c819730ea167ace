// Package progress reports site generation progress on the terminal.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives one Step per generated page.
type Reporter interface {
	Start(total int)
	Step(page string)
	Finish(summary string)
}

// New returns a bar reporter on an interactive run and a line reporter in
// CI, both writing to w. A nil writer yields a reporter that prints nothing.
func New(w io.Writer) Reporter {
	if w == nil {
		return Discard{}
	}
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{w: w}
	}
	return &BarReporter{w: w}
}

// BarReporter draws a progress bar.
type BarReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (r *BarReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription("Rendering pages"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) Step(page string) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(page)
	_ = r.bar.Add(1)
}

func (r *BarReporter) Finish(summary string) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	fmt.Fprintln(r.w, summary)
}

// LineReporter prints one line per page, suitable for CI logs.
type LineReporter struct {
	w       io.Writer
	total   int
	current int
}

func (r *LineReporter) Start(total int) {
	r.total = total
	r.current = 0
	fmt.Fprintf(r.w, "Rendering %d pages\n", total)
}

func (r *LineReporter) Step(page string) {
	r.current++
	fmt.Fprintf(r.w, "[%d/%d] %s\n", r.current, r.total, page)
}

func (r *LineReporter) Finish(summary string) {
	fmt.Fprintln(r.w, summary)
}

// Discard ignores all progress.
type Discard struct{}

func (Discard) Start(int)     {}
func (Discard) Step(string)   {}
func (Discard) Finish(string) {}
