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

// TypeOf resolves the type entity behind an expression token through
// the symbol back-references: return statements, variables, function
// calls, assignments and member accesses.
func TypeOf(tok *Token) *Type {
	if SimpleMatch(tok, "return") {
		scope := tok.impl.scope
		if scope == nil {
			return nil
		}
		function := scope.Function
		if function == nil {
			return nil
		}
		return function.RetType
	} else if Match(tok, "%type%") {
		return tok.impl.typ
	} else if Match(tok, "%var%") {
		variable := tok.impl.variable
		if variable == nil {
			return nil
		}
		return variable.Type
	} else if Match(tok, "%name%") {
		function := tok.impl.function
		if function == nil {
			return nil
		}
		return function.RetType
	} else if SimpleMatch(tok, "=") {
		return TypeOf(tok.impl.astOperand1)
	} else if SimpleMatch(tok, ".") {
		return TypeOf(tok.impl.astOperand2)
	}
	return nil
}

// TypeDecl returns the token range of the declaration that gives the
// expression its type, end exclusive.
func TypeDecl(tok *Token) (*Token, *Token) {
	if SimpleMatch(tok, "return") {
		scope := tok.impl.scope
		if scope == nil {
			return nil, nil
		}
		function := scope.Function
		if function == nil {
			return nil, nil
		}
		return function.RetDef, function.ReturnDefEnd
	} else if Match(tok, "%type%") {
		return tok, tok.next
	} else if Match(tok, "%var%") {
		variable := tok.impl.variable
		if variable == nil {
			return nil, nil
		}
		if variable.TypeStartToken == nil || variable.TypeEndToken == nil {
			return nil, nil
		}
		return variable.TypeStartToken, variable.TypeEndToken.next
	} else if Match(tok, "%name%") {
		function := tok.impl.function
		if function == nil {
			return nil, nil
		}
		return function.RetDef, function.ReturnDefEnd
	} else if SimpleMatch(tok, "=") {
		return TypeDecl(tok.impl.astOperand1)
	} else if SimpleMatch(tok, ".") {
		return TypeDecl(tok.impl.astOperand2)
	}
	t := TypeOf(tok)
	if t == nil || t.ClassDef == nil {
		return nil, nil
	}
	return t.ClassDef.next, t.ClassDef.TokAt(2)
}

// TypeStr renders the type of an expression token, preferring the
// computed value type over the declaration tokens.
func TypeStr(tok *Token) string {
	if tok.impl.valueType != nil {
		if ret := tok.impl.valueType.String(); ret != "" {
			return ret
		}
	}
	start, end := TypeDecl(tok)
	if start == nil || end == nil {
		return ""
	}
	return start.StringifyRange(end, false)
}
