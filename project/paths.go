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

package project

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/golang/glog"
)

// MatchesExcluded reports whether file falls under one of the
// project's excluded paths. An entry containing glob characters is
// matched as a doublestar pattern; a plain entry excludes by prefix.
func (p *ProjectFile) MatchesExcluded(file string) bool {
	for _, excluded := range p.ExcludedPaths {
		if strings.ContainsAny(excluded, "*?[{") {
			matched, err := doublestar.Match(excluded, file)
			if err != nil {
				glog.Errorf("bad exclude pattern %q: %v", excluded, err)
				continue
			}
			if matched {
				return true
			}
		} else if strings.HasPrefix(file, excluded) {
			return true
		}
	}
	return false
}

// CheckFiles filters the given files down to the ones the project
// wants analyzed.
func (p *ProjectFile) CheckFiles(files []string) []string {
	var kept []string
	for _, file := range files {
		if !p.MatchesExcluded(file) {
			kept = append(kept, file)
		}
	}
	return kept
}
