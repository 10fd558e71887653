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

import "fmt"

// InternalError signals a violated invariant during matching or AST
// construction. It carries the offending token for diagnostics. The
// core raises it as a panic value; pass runners recover it and abort
// the current pass.
type InternalError struct {
	Tok *Token
	Msg string
}

func (e *InternalError) Error() string {
	if e.Tok != nil && e.Tok.LineNumber() > 0 {
		return fmt.Sprintf("internal error at line %d: %s", e.Tok.LineNumber(), e.Msg)
	}
	return "internal error: " + e.Msg
}
