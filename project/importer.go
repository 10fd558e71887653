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
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/google/shlex"
)

// CompileCommand is one entry of a compile_commands.json database.
type CompileCommand struct {
	Command   string   `json:"command,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
	File      string   `json:"file"`
	Directory string   `json:"directory"`
}

// FileSettings is what an imported compiler invocation contributes to
// the analysis of one file.
type FileSettings struct {
	File         string
	Defines      []string
	Undefines    []string
	IncludePaths []string
}

// ImportCompileCommands reads a compile_commands.json database and
// recovers the preprocessor configuration per file. Shell-quoted
// command strings are split the way the shell would.
func ImportCompileCommands(path string) ([]FileSettings, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %v", err)
	}
	var commands []CompileCommand
	if err := json.Unmarshal(contents, &commands); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %v", err)
	}

	var settings []FileSettings
	for _, command := range commands {
		args := command.Arguments
		if len(args) == 0 && command.Command != "" {
			args, err = shlex.Split(command.Command)
			if err != nil {
				glog.Errorf("cannot split command for %s: %v", command.File, err)
				continue
			}
		}
		fs := FileSettings{File: command.File}
		for i := 0; i < len(args); i++ {
			arg := args[i]
			value := ""
			switch {
			case strings.HasPrefix(arg, "-D"):
				value = arg[2:]
				if value == "" && i+1 < len(args) {
					i++
					value = args[i]
				}
				if value != "" {
					fs.Defines = append(fs.Defines, value)
				}
			case strings.HasPrefix(arg, "-U"):
				value = arg[2:]
				if value == "" && i+1 < len(args) {
					i++
					value = args[i]
				}
				if value != "" {
					fs.Undefines = append(fs.Undefines, value)
				}
			case strings.HasPrefix(arg, "-I"):
				value = arg[2:]
				if value == "" && i+1 < len(args) {
					i++
					value = args[i]
				}
				if value != "" {
					fs.IncludePaths = append(fs.IncludePaths, value)
				}
			}
		}
		settings = append(settings, fs)
	}
	return settings, nil
}
