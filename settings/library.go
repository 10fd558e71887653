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

package settings

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"gopkg.in/yaml.v2"

	"naive.systems/tokencheck/token"
)

// ArgumentConfig constrains one argument of a configured function.
// Valid is a comma-separated list of values and ranges: "1:100" is a
// closed range, "1:" and ":100" are half-open, "7" is a single value.
type ArgumentConfig struct {
	Nr    int    `yaml:"nr"`
	Valid string `yaml:"valid"`
}

// FunctionConfig is the library entry for one function name.
type FunctionConfig struct {
	Name string           `yaml:"name"`
	Args []ArgumentConfig `yaml:"args"`
}

type libraryFile struct {
	Functions []FunctionConfig `yaml:"functions"`
}

// Library holds the configured knowledge about external functions.
type Library struct {
	validArgs map[string]map[int]string
}

func NewLibrary() Library {
	return Library{validArgs: make(map[string]map[int]string)}
}

// Load reads a YAML library file and merges its function entries.
func (l *Library) Load(path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("os.ReadFile: %v", err)
	}
	var file libraryFile
	if err := yaml.Unmarshal(contents, &file); err != nil {
		return fmt.Errorf("yaml.Unmarshal: %v", err)
	}
	for _, function := range file.Functions {
		args, ok := l.validArgs[function.Name]
		if !ok {
			args = make(map[int]string)
			l.validArgs[function.Name] = args
		}
		for _, arg := range function.Args {
			args[arg.Nr] = arg.Valid
		}
	}
	glog.Infof("library %s: %d function configurations", path, len(file.Functions))
	return nil
}

// AddValidArg registers a validity expression programmatically.
func (l *Library) AddValidArg(function string, argnr int, valid string) {
	args, ok := l.validArgs[function]
	if !ok {
		args = make(map[int]string)
		l.validArgs[function] = args
	}
	args[argnr] = valid
}

func (l *Library) validOf(ftok *token.Token, argnr int) (string, bool) {
	if ftok == nil {
		return "", false
	}
	args, ok := l.validArgs[ftok.Str()]
	if !ok {
		return "", false
	}
	valid, ok := args[argnr]
	return valid, ok
}

// IsIntArgValid reports whether value is acceptable for the given
// argument of the function called at ftok. Unconfigured arguments
// accept everything.
func (l *Library) IsIntArgValid(ftok *token.Token, argnr int, value int64) bool {
	valid, ok := l.validOf(ftok, argnr)
	if !ok || valid == "" {
		return true
	}
	for _, part := range strings.Split(valid, ",") {
		lo, hi, single, err := parseRange(part)
		if err != nil {
			glog.Errorf("bad valid expression %q: %v", valid, err)
			return true
		}
		if single != nil {
			if value == int64(*single) {
				return true
			}
			continue
		}
		if (lo == nil || value >= int64(*lo)) && (hi == nil || value <= int64(*hi)) {
			return true
		}
	}
	return false
}

// IsFloatArgValid is the float counterpart of IsIntArgValid; single
// values only match ranges, never exactly.
func (l *Library) IsFloatArgValid(ftok *token.Token, argnr int, value float64) bool {
	valid, ok := l.validOf(ftok, argnr)
	if !ok || valid == "" {
		return true
	}
	for _, part := range strings.Split(valid, ",") {
		lo, hi, single, err := parseRange(part)
		if err != nil {
			glog.Errorf("bad valid expression %q: %v", valid, err)
			return true
		}
		if single != nil {
			continue
		}
		if (lo == nil || value >= *lo) && (hi == nil || value <= *hi) {
			return true
		}
	}
	return false
}

// parseRange parses "a:b", "a:", ":b" or "a". The returned pointers
// are nil for open ends; single is non-nil for a plain value.
func parseRange(part string) (lo, hi, single *float64, err error) {
	part = strings.TrimSpace(part)
	idx := strings.IndexByte(part, ':')
	if idx < 0 {
		v, err2 := strconv.ParseFloat(part, 64)
		if err2 != nil {
			return nil, nil, nil, err2
		}
		return nil, nil, &v, nil
	}
	if left := part[:idx]; left != "" {
		v, err2 := strconv.ParseFloat(left, 64)
		if err2 != nil {
			return nil, nil, nil, err2
		}
		lo = &v
	}
	if right := part[idx+1:]; right != "" {
		v, err2 := strconv.ParseFloat(right, 64)
		if err2 != nil {
			return nil, nil, nil, err2
		}
		hi = &v
	}
	return lo, hi, nil, nil
}
