package cmd

import (
	"fmt"
	"io"

	"ytgrab/internal/progress"
)

// plainReporter renders progress as plain lines for non-TTY output. Percent
// updates rewrite the current line; stage changes start a new one.
type plainReporter struct {
	w         io.Writer
	lastStage progress.Stage
	midLine   bool
}

func newPlainReporter(w io.Writer) *plainReporter {
	return &plainReporter{w: w}
}

func (r *plainReporter) Update(u progress.Update) {
	if u.Stage != r.lastStage {
		r.finish()
		r.lastStage = u.Stage
		if u.Stage != progress.StageError {
			fmt.Fprintf(r.w, "%s...\n", u.Stage)
		}
	}
	if u.Percent >= 0 && u.Stage == progress.StageDownloading {
		line := fmt.Sprintf("\r  %5.1f%%", u.Percent)
		if u.Speed != nil {
			line += "  " + *u.Speed
		}
		if u.ETA != nil {
			line += "  ETA " + u.ETA.String()
		}
		fmt.Fprint(r.w, line)
		r.midLine = true
	}
}

func (r *plainReporter) Result(res progress.Result) {
	r.finish()
}

// finish terminates a partially written progress line.
func (r *plainReporter) finish() {
	if r.midLine {
		fmt.Fprintln(r.w)
		r.midLine = false
	}
}
