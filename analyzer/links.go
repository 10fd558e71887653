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

package analyzer

import (
	"naive.systems/tokencheck/token"
)

// CreateLinks pairs the (), [] and {} brackets of the list with a
// stack scan. A closing bracket with no matching opener of the same
// shape aborts with an internal error.
func CreateLinks(list *token.List) {
	var stack []*token.Token
	for tok := list.Front(); tok != nil; tok = tok.Next() {
		switch tok.Str() {
		case "(", "[", "{":
			stack = append(stack, tok)
		case ")", "]", "}":
			if len(stack) == 0 {
				panic(&token.InternalError{Tok: tok, Msg: "unmatched closing bracket"})
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if open.Str() != matchingOpen(tok.Str()) {
				panic(&token.InternalError{Tok: tok, Msg: "mismatched brackets"})
			}
			token.CreateMutualLinks(open, tok)
		}
	}
	if len(stack) > 0 {
		panic(&token.InternalError{Tok: stack[len(stack)-1], Msg: "unmatched opening bracket"})
	}
}

func matchingOpen(close string) string {
	switch close {
	case ")":
		return "("
	case "]":
		return "["
	case "}":
		return "{"
	}
	return ""
}

// CreateLinks2 pairs the template angle brackets. A '<' that follows a
// name and has a well-formed closing '>' becomes a linked bracket
// pair; '>>' closers cannot be linked and are left alone.
func CreateLinks2(list *token.List) {
	for tok := list.Front(); tok != nil; tok = tok.Next() {
		if tok.Str() != "<" || tok.Previous() == nil || !tok.Previous().IsName() {
			continue
		}
		closing := tok.FindClosingBracket()
		if closing == nil || closing.Str() != ">" {
			continue
		}
		token.CreateMutualLinks(tok, closing)
		// relink the lexemes so the brackets reclassify
		tok.SetStr(tok.Str())
		closing.SetStr(closing.Str())
	}
}
