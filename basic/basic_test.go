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
package basic

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"naive.systems/tokencheck/token"
)

func TestStreamProgress(t *testing.T) {
	list := token.NewList()
	if StreamProgress(list) != 0 {
		t.Errorf("an empty stream reports 0")
	}
	for _, s := range []string{"int", "x", ";", "return", ";"} {
		list.Append(s)
	}
	if StreamProgress(list) != 0 {
		t.Errorf("unassigned progress values report 0")
	}
	token.AssignProgressValues(list.Front())
	got := StreamProgress(list)
	if got <= 0 || got > 100 {
		t.Errorf("StreamProgress = %d, want the back token's percentile", got)
	}
	if got != list.Back().ProgressValue() {
		t.Errorf("StreamProgress must read the back token")
	}
}

func TestProgressReporter(t *testing.T) {
	list := token.NewList()
	list.Append("x")
	list.Append(";")
	token.AssignProgressValues(list.Front())

	var out strings.Builder
	printer := message.NewPrinter(language.English)
	reporter := NewProgressReporter(&out, printer, 2)

	reporter.BeginPass("createLinks")
	reporter.EndPass("createLinks", list)
	reporter.BeginPass("combineStringLiterals")
	reporter.EndPass("combineStringLiterals", list)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("reporter wrote %d lines, want 4:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "Start pass createLinks (1/2)") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Finished pass createLinks") ||
		!strings.Contains(lines[1], "stream at 50%") ||
		!strings.Contains(lines[1], "(1/2)") {
		t.Errorf("second line = %q", lines[1])
	}
	if !strings.Contains(lines[3], "Finished pass combineStringLiterals") ||
		!strings.Contains(lines[3], "(2/2)") {
		t.Errorf("last line = %q", lines[3])
	}
	if reporter.Elapsed() < 0 {
		t.Errorf("elapsed time cannot be negative")
	}
}
