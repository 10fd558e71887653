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

// Package project reads and writes the persisted project file and
// imports compiler databases.
package project

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/golang/glog"
)

const (
	projectElementName         = "project"
	projectVersionAttrib       = "version"
	projectFileVersion         = "1"
	buildDirElementName        = "builddir"
	importProjectElementName   = "importproject"
	analyzeAllVsConfigsElement = "analyze-all-vs-configs"
	includeDirElementName      = "includedir"
	dirElementName             = "dir"
	nameAttrib                 = "name"
	definesElementName         = "defines"
	defineName                 = "define"
	undefinesElementName       = "undefines"
	undefineName               = "undefine"
	pathsElementName           = "paths"
	pathName                   = "dir"
	rootPathName               = "root"
	ignoreElementName          = "ignore"
	ignorePathName             = "path"
	excludeElementName         = "exclude"
	excludePathName            = "path"
	librariesElementName       = "libraries"
	libraryElementName         = "library"
	platformElementName        = "platform"
	suppressionsElementName    = "suppressions"
	suppressionElementName     = "suppression"
	addonElementName           = "addon"
	addonsElementName          = "addons"
	toolElementName            = "tool"
	toolsElementName           = "tools"
	tagsElementName            = "tags"
	tagElementName             = "tag"
	checkHeadersElementName    = "check-headers"
	checkUnusedTemplatesName   = "check-unused-templates"
	maxCtuDepthElementName     = "max-ctu-depth"
	checkUnknownFunctionReturn = "check-unknown-function-return-values"
	checkAllFunctionParamsName = "check-all-function-parameter-values"
	plainNameElementName       = "name"
)

// The tool entries that map to boolean fields.
const (
	ClangAnalyzer = "clang-analyzer"
	ClangTidy     = "clang-tidy"
)

// Suppression silences one diagnostic id, optionally narrowed to a
// file, line or symbol.
type Suppression struct {
	ErrorID    string
	FileName   string
	LineNumber int
	SymbolName string
}

// ProjectFile is the user-editable project configuration.
type ProjectFile struct {
	filename string

	RootPath      string
	BuildDir      string
	Platform      string
	ImportProject string

	AnalyzeAllVsConfigs  bool
	CheckHeaders         bool
	CheckUnusedTemplates bool
	MaxCtuDepth          int

	IncludeDirs   []string
	Defines       []string
	Undefines     []string
	Paths         []string
	ExcludedPaths []string
	Libraries     []string
	Suppressions  []Suppression
	Addons        []string

	ClangAnalyzer bool
	ClangTidy     bool

	Tags []string

	CheckUnknownFunctionReturn      []string
	CheckAllFunctionParameterValues bool
}

// New returns a cleared project file bound to filename.
func New(filename string) *ProjectFile {
	p := &ProjectFile{filename: filename}
	p.Clear()
	return p
}

// Clear resets every field to its post-construction default.
func (p *ProjectFile) Clear() {
	p.RootPath = ""
	p.BuildDir = ""
	p.Platform = ""
	p.ImportProject = ""
	p.AnalyzeAllVsConfigs = false
	p.CheckHeaders = true
	p.CheckUnusedTemplates = false
	p.MaxCtuDepth = 10
	p.IncludeDirs = nil
	p.Defines = nil
	p.Undefines = nil
	p.Paths = nil
	p.ExcludedPaths = nil
	p.Libraries = nil
	p.Suppressions = nil
	p.Addons = nil
	p.ClangAnalyzer = false
	p.ClangTidy = false
	p.Tags = nil
	p.CheckUnknownFunctionReturn = nil
	p.CheckAllFunctionParameterValues = false
}

// Read parses the project file. A missing or unopenable file, or a
// document without a <project> element, reads as false. Unknown
// elements are ignored.
func (p *ProjectFile) Read(filename string) bool {
	if filename != "" {
		p.filename = filename
	}

	file, err := os.Open(p.filename)
	if err != nil {
		glog.Errorf("cannot open project file: %v", err)
		return false
	}
	defer file.Close()

	p.Clear()

	decoder := xml.NewDecoder(file)
	insideProject := false
	projectTagFound := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			glog.Errorf("cannot parse project file: %v", err)
			return false
		}
		switch element := tok.(type) {
		case xml.StartElement:
			name := element.Name.Local
			if name == projectElementName {
				insideProject = true
				projectTagFound = true
			}
			if !insideProject {
				break
			}
			switch name {
			case rootPathName:
				if value := attrValue(element, nameAttrib); value != "" {
					p.RootPath = value
				}
			case buildDirElementName:
				p.BuildDir = readText(decoder)
			case platformElementName:
				p.Platform = readText(decoder)
			case importProjectElementName:
				p.ImportProject = readText(decoder)
			case analyzeAllVsConfigsElement:
				p.AnalyzeAllVsConfigs = readBool(decoder)
			case checkHeadersElementName:
				p.CheckHeaders = readBool(decoder)
			case checkUnusedTemplatesName:
				p.CheckUnusedTemplates = readBool(decoder)
			case maxCtuDepthElementName:
				p.MaxCtuDepth = readInt(decoder, p.MaxCtuDepth)
			case includeDirElementName:
				p.IncludeDirs = append(p.IncludeDirs,
					readNamedChildren(decoder, includeDirElementName, dirElementName)...)
			case definesElementName:
				p.Defines = append(p.Defines,
					readNamedChildren(decoder, definesElementName, defineName)...)
			case undefinesElementName:
				readStringList(&p.Undefines, decoder, undefineName)
			case pathsElementName:
				p.Paths = append(p.Paths,
					readNamedChildren(decoder, pathsElementName, pathName)...)
			case excludeElementName, ignoreElementName:
				// <ignore> is the deprecated spelling, still read
				p.readExcludes(decoder)
			case librariesElementName:
				readStringList(&p.Libraries, decoder, libraryElementName)
			case suppressionsElementName:
				p.readSuppressions(decoder)
			case checkUnknownFunctionReturn:
				readStringList(&p.CheckUnknownFunctionReturn, decoder, plainNameElementName)
			case checkAllFunctionParamsName:
				p.CheckAllFunctionParameterValues = true
			case addonsElementName:
				readStringList(&p.Addons, decoder, addonElementName)
			case toolsElementName:
				var tools []string
				readStringList(&tools, decoder, toolElementName)
				p.ClangAnalyzer = contains(tools, ClangAnalyzer)
				p.ClangTidy = contains(tools, ClangTidy)
			case tagsElementName:
				readStringList(&p.Tags, decoder, tagElementName)
			}
		case xml.EndElement:
			if element.Name.Local == projectElementName {
				insideProject = false
			}
		}
	}

	return projectTagFound
}

func contains(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}

func attrValue(element xml.StartElement, name string) string {
	for _, attr := range element.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// readText returns the text content of the current element, stopping
// at the first character data or the end of the element.
func readText(decoder *xml.Decoder) string {
	for {
		tok, err := decoder.Token()
		if err != nil {
			return ""
		}
		switch t := tok.(type) {
		case xml.CharData:
			return string(bytes.TrimSpace(t))
		case xml.EndElement:
			return ""
		}
	}
}

func readBool(decoder *xml.Decoder) bool {
	return readText(decoder) == "true"
}

func readInt(decoder *xml.Decoder, defaultValue int) int {
	value, err := strconv.Atoi(readText(decoder))
	if err != nil {
		return defaultValue
	}
	return value
}

// readNamedChildren collects the name attributes of child elements
// until the container's end element.
func readNamedChildren(decoder *xml.Decoder, containerName, childName string) []string {
	var values []string
	for {
		tok, err := decoder.Token()
		if err != nil {
			return values
		}
		switch element := tok.(type) {
		case xml.StartElement:
			if element.Name.Local == childName {
				if value := attrValue(element, nameAttrib); value != "" {
					values = append(values, value)
				}
			}
		case xml.EndElement:
			if element.Name.Local == containerName {
				return values
			}
		}
	}
}

// readExcludes reads <path name=…/> entries; both the <exclude> and
// the deprecated <ignore> end elements terminate the list.
func (p *ProjectFile) readExcludes(decoder *xml.Decoder) {
	for {
		tok, err := decoder.Token()
		if err != nil {
			return
		}
		switch element := tok.(type) {
		case xml.StartElement:
			if element.Name.Local == excludePathName {
				if value := attrValue(element, nameAttrib); value != "" {
					p.ExcludedPaths = append(p.ExcludedPaths, value)
				}
			}
		case xml.EndElement:
			if element.Name.Local == ignoreElementName || element.Name.Local == excludeElementName {
				return
			}
		}
	}
}

// readSuppressions reads <suppression> entries. The reader stops at
// the first end element that is not a suppression; this matches the
// long-standing reader and is kept as is.
func (p *ProjectFile) readSuppressions(decoder *xml.Decoder) {
	for {
		tok, err := decoder.Token()
		if err != nil {
			return
		}
		switch element := tok.(type) {
		case xml.StartElement:
			if element.Name.Local == suppressionElementName {
				var suppression Suppression
				suppression.FileName = attrValue(element, "fileName")
				if value := attrValue(element, "lineNumber"); value != "" {
					suppression.LineNumber, _ = strconv.Atoi(value)
				}
				suppression.SymbolName = attrValue(element, "symbolName")
				next, err := decoder.Token()
				if err != nil {
					return
				}
				if chars, ok := next.(xml.CharData); ok {
					suppression.ErrorID = string(bytes.TrimSpace(chars))
				}
				p.Suppressions = append(p.Suppressions, suppression)
			}
		case xml.EndElement:
			if element.Name.Local != suppressionElementName {
				return
			}
		}
	}
}

// readStringList collects the text content of child elements. The
// terminating condition — any end element whose name differs from the
// child element — matches the long-standing reader and is kept as is.
func readStringList(list *[]string, decoder *xml.Decoder, elementName string) {
	for {
		tok, err := decoder.Token()
		if err != nil {
			return
		}
		switch element := tok.(type) {
		case xml.StartElement:
			if element.Name.Local == elementName {
				next, err := decoder.Token()
				if err != nil {
					return
				}
				if chars, ok := next.(xml.CharData); ok {
					*list = append(*list, string(bytes.TrimSpace(chars)))
				}
			}
		case xml.EndElement:
			if element.Name.Local != elementName {
				return
			}
		}
	}
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

type xmlWriter struct {
	buf    bytes.Buffer
	indent int
}

func (w *xmlWriter) line(format string, args ...any) {
	for i := 0; i < w.indent; i++ {
		w.buf.WriteString("    ")
	}
	fmt.Fprintf(&w.buf, format, args...)
	w.buf.WriteByte('\n')
}

func (w *xmlWriter) textElement(name, text string) {
	w.line("<%s>%s</%s>", name, xmlEscape(text), name)
}

func (w *xmlWriter) stringList(list []string, startElementName, childElementName string) {
	if len(list) == 0 {
		return
	}
	w.line("<%s>", startElementName)
	w.indent++
	for _, s := range list {
		w.textElement(childElementName, s)
	}
	w.indent--
	w.line("</%s>", startElementName)
}

func (w *xmlWriter) namedList(list []string, startElementName, childElementName string) {
	if len(list) == 0 {
		return
	}
	w.line("<%s>", startElementName)
	w.indent++
	for _, s := range list {
		w.line("<%s %s=\"%s\"/>", childElementName, nameAttrib, xmlEscape(s))
	}
	w.indent--
	w.line("</%s>", startElementName)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Write serializes the project file, emitting defaults and pretty
// printing the document.
func (p *ProjectFile) Write(filename string) bool {
	if filename != "" {
		p.filename = filename
	}

	var w xmlWriter
	w.line(`<?xml version="1.0" encoding="UTF-8"?>`)
	w.line("<%s %s=\"%s\">", projectElementName, projectVersionAttrib, projectFileVersion)
	w.indent++

	if p.RootPath != "" {
		w.line("<%s %s=\"%s\"/>", rootPathName, nameAttrib, xmlEscape(p.RootPath))
	}
	if p.BuildDir != "" {
		w.textElement(buildDirElementName, p.BuildDir)
	}
	if p.Platform != "" {
		w.textElement(platformElementName, p.Platform)
	}
	if p.ImportProject != "" {
		w.textElement(importProjectElementName, p.ImportProject)
	}
	w.textElement(analyzeAllVsConfigsElement, boolString(p.AnalyzeAllVsConfigs))
	w.textElement(checkHeadersElementName, boolString(p.CheckHeaders))
	w.textElement(checkUnusedTemplatesName, boolString(p.CheckUnusedTemplates))
	w.textElement(maxCtuDepthElementName, strconv.Itoa(p.MaxCtuDepth))

	w.namedList(p.IncludeDirs, includeDirElementName, dirElementName)
	w.namedList(p.Defines, definesElementName, defineName)
	w.stringList(p.Undefines, undefinesElementName, undefineName)
	w.namedList(p.Paths, pathsElementName, pathName)
	w.namedList(p.ExcludedPaths, excludeElementName, excludePathName)
	w.stringList(p.Libraries, librariesElementName, libraryElementName)

	if len(p.Suppressions) > 0 {
		w.line("<%s>", suppressionsElementName)
		w.indent++
		for _, suppression := range p.Suppressions {
			attrs := ""
			if suppression.FileName != "" {
				attrs += fmt.Sprintf(" fileName=\"%s\"", xmlEscape(suppression.FileName))
			}
			if suppression.LineNumber > 0 {
				attrs += fmt.Sprintf(" lineNumber=\"%d\"", suppression.LineNumber)
			}
			if suppression.SymbolName != "" {
				attrs += fmt.Sprintf(" symbolName=\"%s\"", xmlEscape(suppression.SymbolName))
			}
			w.line("<%s%s>%s</%s>", suppressionElementName, attrs,
				xmlEscape(suppression.ErrorID), suppressionElementName)
		}
		w.indent--
		w.line("</%s>", suppressionsElementName)
	}

	w.stringList(p.CheckUnknownFunctionReturn, checkUnknownFunctionReturn, plainNameElementName)
	if p.CheckAllFunctionParameterValues {
		w.line("<%s/>", checkAllFunctionParamsName)
	}
	w.stringList(p.Addons, addonsElementName, addonElementName)

	var tools []string
	if p.ClangAnalyzer {
		tools = append(tools, ClangAnalyzer)
	}
	if p.ClangTidy {
		tools = append(tools, ClangTidy)
	}
	w.stringList(tools, toolsElementName, toolElementName)

	w.stringList(p.Tags, tagsElementName, tagElementName)

	w.indent--
	w.line("</%s>", projectElementName)

	if err := os.WriteFile(p.filename, w.buf.Bytes(), 0644); err != nil {
		glog.Errorf("cannot write project file: %v", err)
		return false
	}
	return true
}
