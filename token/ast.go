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

import "strings"

func (t *Token) AstOperand1() *Token { return t.impl.astOperand1 }
func (t *Token) AstOperand2() *Token { return t.impl.astOperand2 }
func (t *Token) AstParent() *Token   { return t.impl.astParent }

// SetAstOperand1 attaches tok's topmost ancestor as the first operand
// of this token. A cycle among the parents of tok aborts the pass.
func (t *Token) SetAstOperand1(tok *Token) {
	if t.impl.astOperand1 != nil {
		t.impl.astOperand1.impl.astParent = nil
	}
	if tok != nil {
		visited := map[*Token]struct{}{}
		for tok.impl.astParent != nil {
			if _, ok := visited[tok.impl.astParent]; ok {
				panic(&InternalError{Tok: t, Msg: "Token::astOperand1() cyclic dependency."})
			}
			visited[tok.impl.astParent] = struct{}{}
			tok = tok.impl.astParent
		}
		tok.impl.astParent = t
	}
	t.impl.astOperand1 = tok
}

// SetAstOperand2 attaches tok's topmost ancestor as the second operand
// of this token, with the same cycle guard.
func (t *Token) SetAstOperand2(tok *Token) {
	if t.impl.astOperand2 != nil {
		t.impl.astOperand2.impl.astParent = nil
	}
	if tok != nil {
		visited := map[*Token]struct{}{}
		for tok.impl.astParent != nil {
			if _, ok := visited[tok.impl.astParent]; ok {
				panic(&InternalError{Tok: t, Msg: "Token::astOperand2() cyclic dependency."})
			}
			visited[tok.impl.astParent] = struct{}{}
			tok = tok.impl.astParent
		}
		tok.impl.astParent = t
	}
	t.impl.astOperand2 = tok
}

// FindLambdaEndToken returns the closing '}' of a lambda whose
// capture list starts at first, or nil when first does not begin a
// lambda.
func FindLambdaEndToken(first *Token) *Token {
	if first == nil || first.str != "[" {
		return nil
	}
	if !Match(first.link, "] (|{") {
		return nil
	}
	if first.impl.astOperand1 != first.link.next {
		return nil
	}
	tok := first
	if tok.impl.astOperand1 != nil && tok.impl.astOperand1.str == "(" {
		tok = tok.impl.astOperand1
	}
	if tok.impl.astOperand1 != nil && tok.impl.astOperand1.str == "{" {
		return tok.impl.astOperand1.link
	}
	return nil
}

// goToLeftParenthesis moves start left over a parenthesis that closes
// inside the range, as in '(*it).x'.
func goToLeftParenthesis(start, end *Token) *Token {
	par := 0
	for tok := start; tok != nil && tok != end; tok = tok.next {
		if tok.str == "(" {
			par++
		} else if tok.str == ")" {
			if par == 0 {
				start = tok.link
			} else {
				par--
			}
		}
	}
	return start
}

// goToRightParenthesis moves end right over a parenthesis that opens
// inside the range, as in '2>(x+1)'.
func goToRightParenthesis(start, end *Token) *Token {
	par := 0
	for tok := end; tok != nil && tok != start; tok = tok.prev {
		if tok.str == ")" {
			par++
		} else if tok.str == "(" {
			if par == 0 {
				end = tok.link
			} else {
				par--
			}
		}
	}
	return end
}

// FindExpressionStartEndTokens returns the minimal contiguous token
// range that covers the AST subtree rooted at this token.
func (t *Token) FindExpressionStartEndTokens() (*Token, *Token) {
	start := t
	for start.impl.astOperand1 != nil &&
		(start.impl.astOperand2 != nil || !start.IsUnaryPreOp() || SimpleMatch(start, "( )") || start.str == "{") {
		start = start.impl.astOperand1
	}

	end := t
	for end.impl.astOperand1 != nil && (end.impl.astOperand2 != nil || end.IsUnaryPreOp()) {
		if end.str == "[" {
			if lambdaEnd := FindLambdaEndToken(end); lambdaEnd != nil {
				end = lambdaEnd
				break
			}
		}
		if Match(end, "(|[") && !(Match(end, "( %type%") && end.impl.astOperand2 == nil) {
			end = end.link
			break
		}
		if end.impl.astOperand2 != nil {
			end = end.impl.astOperand2
		} else {
			end = end.impl.astOperand1
		}
	}

	start = goToLeftParenthesis(start, end)
	end = goToRightParenthesis(start, end)
	if SimpleMatch(end, "{") {
		end = end.link
	}
	return start, end
}

// IsCalculation reports whether the token is an actual computation. A
// unary '*' or '&', or one applied over an array index, is a
// dereference or address-of instead; a '*'/'&' chain with no number or
// variable below it is a type specification.
func (t *Token) IsCalculation() bool {
	if !Match(t, "%cop%|++|--") {
		return false
	}

	if Match(t, "*|&") {
		// dereference or address-of?
		if t.impl.astOperand2 == nil {
			return false
		}
		if t.impl.astOperand2.str == "[" {
			return false
		}

		operands := []*Token{t}
		for len(operands) > 0 {
			op := operands[len(operands)-1]
			operands = operands[:len(operands)-1]
			if op.IsNumber() || op.impl.varID > 0 {
				return true
			}
			if op.impl.astOperand1 != nil {
				operands = append(operands, op.impl.astOperand1)
			}
			if op.impl.astOperand2 != nil {
				operands = append(operands, op.impl.astOperand2)
			} else if Match(op, "*|&") {
				return false
			}
		}

		return false
	}

	return true
}

// IsUnaryPreOp reports whether the token is a prefix unary operator:
// it has only a first operand and that operand lies to its right. For
// '++'/'--' the neighborhood is scanned a few tokens to break the tie.
func (t *Token) IsUnaryPreOp() bool {
	if t.impl.astOperand1 == nil || t.impl.astOperand2 != nil {
		return false
	}
	if !Match(t, "++|--") {
		return true
	}
	tokbefore := t.prev
	tokafter := t.next
	for distance := 1; distance < 10 && tokbefore != nil; distance++ {
		if tokbefore == t.impl.astOperand1 {
			return false
		}
		if tokafter == t.impl.astOperand1 {
			return true
		}
		tokbefore = tokbefore.prev
		if tokafter != nil {
			tokafter = tokafter.prev
		}
	}
	return false // guess
}

// stringFromTokenRange renders [start, end] with a space only between
// adjacent name or number tokens.
func stringFromTokenRange(start, end *Token) string {
	var ret strings.Builder
	if end != nil {
		end = end.next
	}
	for tok := start; tok != nil && tok != end; tok = tok.next {
		if tok.IsUnsigned() {
			ret.WriteString("unsigned ")
		}
		if tok.IsLong() {
			if tok.IsLiteral() {
				ret.WriteString("L")
			} else {
				ret.WriteString("long ")
			}
		}
		if tok.impl.originalName == "" || tok.IsUnsigned() || tok.IsLong() {
			ret.WriteString(tok.str)
		} else {
			ret.WriteString(tok.impl.originalName)
		}
		if Match(tok, "%name%|%num% %name%|%num%") {
			ret.WriteByte(' ')
		}
	}
	return ret.String()
}

// ExpressionString renders the expression covered by the AST subtree
// rooted at this token.
func (t *Token) ExpressionString() string {
	start, end := t.FindExpressionStartEndTokens()
	return stringFromTokenRange(start, end)
}
