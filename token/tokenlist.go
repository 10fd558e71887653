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

package token

// List owns the tokens of one translation unit. A list and its
// attached value-flow state belong to exactly one executor; nothing in
// here is safe for concurrent mutation.
type List struct {
	front *Token
	back  *Token
	files []string

	appendLine int
}

// NewList returns an empty list. The names of the files that produced
// the stream may be recorded for the dump formats.
func NewList(files ...string) *List {
	return &List{files: files, appendLine: 1}
}

func (l *List) Front() *Token { return l.front }
func (l *List) Back() *Token  { return l.back }

func (l *List) Files() []string { return l.files }

// SetAppendLine sets the line number stamped on tokens added by
// Append.
func (l *List) SetAppendLine(line int) { l.appendLine = line }

// Append adds one token with the given lexeme at the back of the list.
// The token stream normally comes from the tokenizer front-end; Append
// is the programmatic producer used by tools and tests.
func (l *List) Append(str string) *Token {
	tok := newToken(l)
	tok.impl.lineNumber = l.appendLine
	tok.SetStr(str)
	if l.back == nil {
		l.front = tok
		l.back = tok
		return tok
	}
	tok.prev = l.back
	l.back.next = tok
	l.back = tok
	return tok
}

// Clear drops all tokens. Pointers into the list become garbage.
func (l *List) Clear() {
	l.front = nil
	l.back = nil
}
