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

// Package settings is the container for general analysis settings so
// that individual values need not be passed around separately.
package settings

import (
	"fmt"
	"strings"
	"sync/atomic"

	"naive.systems/tokencheck/token"
)

// EnabledGroup selects extra checks by id.
type EnabledGroup int

const (
	Warning EnabledGroup = 1 << iota
	Style
	Performance
	Portability
	Information
	UnusedFunction
	MissingInclude
	Internal
)

var terminated int32

// Terminate requests that long-running analyses exit at their next
// cooperative check. Any executor may set it.
func Terminate(t bool) {
	if t {
		atomic.StoreInt32(&terminated, 1)
	} else {
		atomic.StoreInt32(&terminated, 0)
	}
}

// Terminated reports whether termination was requested.
func Terminated() bool {
	return atomic.LoadInt32(&terminated) != 0
}

// Settings carries the analysis configuration consulted by the
// value-flow queries and the pass runner.
type Settings struct {
	enabled EnabledGroup

	// Inconclusive checks wanted?
	Inconclusive bool

	// Check code in headers; on by default, can be turned off to
	// save CPU.
	CheckHeaders bool

	// Check unused templates.
	CheckUnusedTemplates bool

	MaxCtuDepth int

	Library Library
}

// New returns settings with the defaults the analyzer starts from.
func New() *Settings {
	return &Settings{
		CheckHeaders: true,
		MaxCtuDepth:  10,
		Library:      NewLibrary(),
	}
}

var enabledGroups = map[string]EnabledGroup{
	"warning":        Warning,
	"style":          Style,
	"performance":    Performance,
	"portability":    Portability,
	"information":    Information,
	"unusedFunction": UnusedFunction,
	"missingInclude": MissingInclude,
	"internal":       Internal,
}

// AddEnabled enables groups from a comma-separated id list; the empty
// string or "all" enables everything a user can ask for.
func (s *Settings) AddEnabled(str string) error {
	if str == "" || str == "all" {
		s.enabled |= Warning | Style | Performance | Portability | Information | UnusedFunction | MissingInclude
		return nil
	}
	for _, id := range strings.Split(str, ",") {
		id = strings.TrimSpace(id)
		group, ok := enabledGroups[id]
		if !ok {
			return fmt.Errorf("unrecognized --enable parameter %q", id)
		}
		s.enabled |= group
	}
	return nil
}

// ClearEnabled disables all severities except errors.
func (s *Settings) ClearEnabled() {
	s.enabled = 0
}

// IsEnabled reports whether the group was enabled.
func (s *Settings) IsEnabled(group EnabledGroup) bool {
	return s.enabled&group == group
}

// The value queries consult settings through token.QuerySettings.

func (s *Settings) InconclusiveEnabled() bool { return s.Inconclusive }
func (s *Settings) WarningEnabled() bool      { return s.IsEnabled(Warning) }

func (s *Settings) IsIntArgValid(ftok *token.Token, argnr int, value int64) bool {
	return s.Library.IsIntArgValid(ftok, argnr, value)
}

func (s *Settings) IsFloatArgValid(ftok *token.Token, argnr int, value float64) bool {
	return s.Library.IsFloatArgValid(ftok, argnr, value)
}

var _ token.QuerySettings = (*Settings)(nil)
