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

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/golang/glog"

	"naive.systems/tokencheck/analyzer"
	"naive.systems/tokencheck/project"
	"naive.systems/tokencheck/settings"
	"naive.systems/tokencheck/token"
)

var (
	projectFile = flag.String("project_file", "", "path to the project XML file")
	libraryFile = flag.String("library", "", "path to the function library YAML file")
	dumpKind    = flag.String("dump", "list", "what to print: list, ast or valueflow")
	enable      = flag.String("enable", "", "comma-separated ids of extra checks to enable")
	progress    = flag.Bool("progress", true, "show a progress bar over the input files")
)

// loadTokens reads a pre-tokenized file: whitespace-separated tokens,
// one source line per input line.
func loadTokens(path string) (*token.List, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %v", err)
	}
	list := token.NewList(path)
	for i, line := range strings.Split(string(contents), "\n") {
		list.SetAppendLine(i + 1)
		for _, field := range strings.Fields(line) {
			list.Append(field)
		}
	}
	return list, nil
}

func dump(list *token.List, kind string) error {
	front := list.Front()
	if front == nil {
		return nil
	}
	switch kind {
	case "list":
		fmt.Println(front.StringifyWhole(true))
	case "ast":
		front.PrintAst(true, false, os.Stdout)
	case "valueflow":
		front.PrintValueFlow(true, os.Stdout)
	default:
		return fmt.Errorf("unknown dump kind %q", kind)
	}
	return nil
}

func main() {
	flag.Parse()
	defer glog.Flush()

	st := settings.New()
	if err := st.AddEnabled(*enable); err != nil {
		glog.Fatalf("%v", err)
	}
	if *libraryFile != "" {
		if err := st.Library.Load(*libraryFile); err != nil {
			glog.Fatalf("cannot load library %s: %v", *libraryFile, err)
		}
	}

	proj := project.New(*projectFile)
	if *projectFile != "" && !proj.Read("") {
		glog.Fatalf("cannot read project file %s", *projectFile)
	}

	files := proj.CheckFiles(flag.Args())
	if len(files) == 0 {
		glog.Fatalf("no input files")
	}

	var bar *pb.ProgressBar
	if *progress {
		bar = pb.StartNew(len(files))
	}
	exitCode := 0
	for _, file := range files {
		list, err := loadTokens(file)
		if err != nil {
			glog.Errorf("%s: %v", file, err)
			exitCode = 1
			continue
		}
		if err := analyzer.Run(list, st); err != nil {
			glog.Errorf("%s: %v", file, err)
			exitCode = 1
			continue
		}
		if err := dump(list, *dumpKind); err != nil {
			glog.Errorf("%s: %v", file, err)
			exitCode = 1
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}
	os.Exit(exitCode)
}
