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

// FindClosingBracket scans forward from a '<' for the '>' that closes
// it. Linked brackets are jumped over; a ';' or a mismatched closing
// bracket ends the scan with nil. A '>>' token closes two levels at
// once.
func (t *Token) FindClosingBracket() *Token {
	if t.str != "<" {
		return nil
	}

	depth := 0
	for closing := t; closing != nil; closing = closing.next {
		if Match(closing, "{|[|(") {
			closing = closing.link
			if closing == nil {
				return nil
			}
		} else if Match(closing, "}|]|)|;") {
			return nil
		} else if closing.str == "<" {
			depth++
		} else if closing.str == ">" {
			depth--
			if depth == 0 {
				return closing
			}
		} else if closing.str == ">>" {
			if depth <= 2 {
				return closing
			}
			depth -= 2
		}
	}

	return nil
}

// FindOpeningBracket is the backward mirror of FindClosingBracket,
// scanning from a '>' for the '<' that opens it.
func (t *Token) FindOpeningBracket() *Token {
	if t.str != ">" {
		return nil
	}

	depth := 0
	for opening := t; opening != nil; opening = opening.prev {
		if Match(opening, "}|]|)") {
			opening = opening.link
			if opening == nil {
				return nil
			}
		} else if Match(opening, "{|(|;") {
			return nil
		} else if opening.str == ">" {
			depth++
		} else if opening.str == "<" {
			depth--
			if depth == 0 {
				return opening
			}
		}
	}

	return nil
}

// NextArgument scans forward from the first token of an argument,
// skipping balanced brackets, and returns the token after the next
// top-level ','. At the closing ')' or a ';' there is no further
// argument.
func (t *Token) NextArgument() *Token {
	for tok := t; tok != nil; tok = tok.next {
		if tok.str == "," {
			return tok.next
		} else if tok.link != nil && Match(tok, "(|{|[|<") {
			tok = tok.link
		} else if Match(tok, ")|;") {
			return nil
		}
	}
	return nil
}

// NextArgumentBeforeCreateLinks2 is the NextArgument variant usable
// before template brackets are linked: a '<' is skipped through
// FindClosingBracket instead of its link.
func (t *Token) NextArgumentBeforeCreateLinks2() *Token {
	for tok := t; tok != nil; tok = tok.next {
		if tok.str == "," {
			return tok.next
		} else if tok.link != nil && Match(tok, "(|{|[") {
			tok = tok.link
		} else if tok.str == "<" {
			if temp := tok.FindClosingBracket(); temp != nil {
				tok = temp
			}
		} else if Match(tok, ")|;") {
			return nil
		}
	}
	return nil
}

// NextTemplateArgument is the template variant of NextArgument: the
// argument list ends at '>' instead of ')'.
func (t *Token) NextTemplateArgument() *Token {
	for tok := t; tok != nil; tok = tok.next {
		if tok.str == "," {
			return tok.next
		} else if tok.link != nil && Match(tok, "(|{|[|<") {
			tok = tok.link
		} else if Match(tok, ">|;") {
			return nil
		}
	}
	return nil
}
