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

// Package analyzer runs the stream-normalization passes that prepare
// a token list for the value-flow passes and the checkers.
package analyzer

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"naive.systems/tokencheck/basic"
	"naive.systems/tokencheck/settings"
	"naive.systems/tokencheck/token"
)

// A pass mutates the token list in place.
type pass struct {
	name string
	run  func(*token.List)
}

var passes = []pass{
	{"createLinks", CreateLinks},
	{"createLinks2", CreateLinks2},
	{"combineStringLiterals", CombineStringLiterals},
	{"assignProgressValues", func(l *token.List) { token.AssignProgressValues(l.Front()) }},
}

// Run normalizes the token list. Each pass runs to completion before
// the next starts; between passes a requested termination is honored.
// An invariant violation inside a pass aborts the run with the
// internal error.
func Run(list *token.List, st *settings.Settings) (err error) {
	runID := uuid.New().String()
	printer := message.NewPrinter(language.English)
	reporter := basic.NewProgressReporter(nil, printer, len(passes))
	glog.Infof("analysis run %s: %d passes", runID, len(passes))

	defer func() {
		if r := recover(); r != nil {
			internal, ok := r.(*token.InternalError)
			if !ok {
				panic(r)
			}
			glog.Errorf("run %s aborted: %v", runID, internal)
			err = internal
		}
	}()

	for _, p := range passes {
		if settings.Terminated() {
			return fmt.Errorf("analysis terminated")
		}
		reporter.BeginPass(p.name)
		p.run(list)
		reporter.EndPass(p.name, list)
	}
	glog.Infof("run %s finished in %v", runID, reporter.Elapsed())
	return nil
}

// CombineStringLiterals fuses adjacent string literals into one
// token, the way translation phase six concatenates them.
func CombineStringLiterals(list *token.List) {
	for tok := list.Front(); tok != nil; tok = tok.Next() {
		for token.Match(tok, "%str% %str%") {
			tok.ConcatStr(tok.Next().Str())
			tok.DeleteNext(1)
		}
	}
}
