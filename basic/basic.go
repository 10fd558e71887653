/*
NaiveSystems Analyze - A tool for static code analysis
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

/*
Package basic reports the progress of the passes that run over one
token stream. It reads the percentile ordinals the stream itself
carries and imports no package of the engine other than token.
*/
package basic

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/glog"
	"golang.org/x/text/message"

	"naive.systems/tokencheck/token"
)

// StreamProgress returns the percentile a pass has reached on the
// stream, read from the progress values its tokens carry. A stream
// whose progress values were never assigned reports 0.
func StreamProgress(list *token.List) int {
	back := list.Back()
	if back == nil {
		return 0
	}
	return back.ProgressValue()
}

// ProgressReporter prints the lifecycle of the passes over one token
// stream. A list and its passes belong to a single executor, so the
// reporter is not safe for concurrent use.
type ProgressReporter struct {
	out         io.Writer
	printer     *message.Printer
	totalPasses int
	started     int
	finished    int
	startedAt   time.Time
	passStarted time.Time
}

// NewProgressReporter writes progress lines to out (stdout when nil),
// localized through printer.
func NewProgressReporter(out io.Writer, printer *message.Printer, totalPasses int) *ProgressReporter {
	if out == nil {
		out = os.Stdout
	}
	return &ProgressReporter{
		out:         out,
		printer:     printer,
		totalPasses: totalPasses,
		startedAt:   time.Now(),
	}
}

func (r *ProgressReporter) stamp(line string) {
	fmt.Fprintf(r.out, "%s %s\n", time.Now().Format("2006-01-02 15:04:05"), line)
	glog.Info(line)
}

// BeginPass is called before a pass starts mutating the stream.
func (r *ProgressReporter) BeginPass(name string) {
	r.started++
	r.passStarted = time.Now()
	r.stamp(r.printer.Sprintf("Start pass %s (%v/%v)", name, r.started, r.totalPasses))
}

// EndPass is called after a pass finished; the stream percentile is
// read back from the list the pass worked on.
func (r *ProgressReporter) EndPass(name string, list *token.List) {
	r.finished++
	elapsed := time.Since(r.passStarted).Round(time.Millisecond)
	r.stamp(r.printer.Sprintf("Finished pass %s in %v, stream at %d%% (%v/%v)",
		name, elapsed, StreamProgress(list), r.finished, r.totalPasses))
}

// Elapsed is the time since the reporter was created.
func (r *ProgressReporter) Elapsed() time.Duration {
	return time.Since(r.startedAt)
}
