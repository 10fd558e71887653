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

// The pattern language: a pattern is a sequence of space-separated
// atoms, each consuming one token. An atom is a literal word, an
// alternation a|b|c (a trailing empty alternative makes the atom
// optional), a character class [abc], a negation !!word (which also
// matches a missing token), or a %cmd% class such as %name%, %num%,
// %var%, %varid%, %type%, %str%, %char%, %bool%, %op%, %cop%, %comp%,
// %assign%, %or%, %oror%, %any%.
//
// Matching is allocation free and scans pattern and tokens once.

// chAt reads a byte of s, giving 0 past the end the way a C string
// terminates.
func chAt(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// multiComparePercent matches one %cmd% alternative starting at *h
// (which points at the '%'). Returns 1 on match, -1 when the whole
// alternation failed, and 0xFFFF when the next alternative should be
// tried. *h is left after the command, or after the following '|'.
func multiComparePercent(tok *Token, haystack string, h *int, varid int) int {
	*h++
	switch chAt(haystack, *h) {
	case 0, ' ', '|':
		// simple '%' character
		*h++
		if tok.IsArithmeticalOp() && tok.str == "%" {
			return 1
		}
	case 'v':
		if chAt(haystack, *h+3) == '%' { // %var%
			*h += 4
			if tok.impl.varID != 0 {
				return 1
			}
		} else { // %varid%
			if varid == 0 {
				panic(&InternalError{Tok: tok, Msg: "Match called with varid 0."})
			}
			*h += 6
			if tok.impl.varID == varid {
				return 1
			}
		}
	case 't': // %type%
		*h += 5
		if tok.IsName() && tok.impl.varID == 0 && !tok.IsKeyword() {
			return 1
		}
	case 'a':
		if chAt(haystack, *h+3) == '%' { // %any%
			*h += 4
			return 1
		}
		// %assign%
		*h += 7
		if tok.IsAssignmentOp() {
			return 1
		}
	case 'n':
		if chAt(haystack, *h+4) == '%' { // %name%
			*h += 5
			if tok.IsName() {
				return 1
			}
		} else { // %num%
			*h += 4
			if tok.IsNumber() {
				return 1
			}
		}
	case 'c':
		*h++
		if chAt(haystack, *h) == 'h' { // %char%
			*h += 4
			if tok.kind == KindChar {
				return 1
			}
		} else if chAt(haystack, *h+1) == 'p' { // %cop%
			*h += 3
			if tok.IsConstOp() {
				return 1
			}
		} else { // %comp%
			*h += 4
			if tok.IsComparisonOp() {
				return 1
			}
		}
	case 's': // %str%
		*h += 4
		if tok.kind == KindString {
			return 1
		}
	case 'b': // %bool%
		*h += 5
		if tok.IsBoolean() {
			return 1
		}
	case 'o':
		*h++
		if chAt(haystack, *h+1) == '%' {
			if chAt(haystack, *h) == 'p' { // %op%
				*h += 2
				if tok.IsOp() {
					return 1
				}
			} else { // %or%
				*h += 2
				if tok.kind == KindBitOp && tok.str == "|" {
					return 1
				}
			}
		} else { // %oror%
			*h += 4
			if tok.kind == KindLogicalOp && tok.str == "||" {
				return 1
			}
		}
	default:
		panic(&InternalError{Tok: tok, Msg: "Unexpected command"})
	}

	if chAt(haystack, *h) == '|' {
		*h++
	} else {
		return -1
	}
	return 0xFFFF
}

// multiCompare matches the token against one alternation atom of the
// pattern starting at h. Returns 1 on match, -1 on mismatch, and 0
// when the atom carries an empty alternative so the token must not be
// consumed.
func multiCompare(tok *Token, haystack string, h, varid int) int {
	needle := tok.str
	n := 0
	for {
		if n == 0 && chAt(haystack, h) == '%' &&
			chAt(haystack, h+1) != '|' && chAt(haystack, h+1) != 0 && chAt(haystack, h+1) != ' ' {
			ret := multiComparePercent(tok, haystack, &h, varid)
			if ret < 2 {
				return ret
			}
		} else if chAt(haystack, h) == '|' {
			if n >= len(needle) {
				// needle at the end, we have a match
				return 1
			}
			n = 0
			h++
		} else if chAt(needle, n) == chAt(haystack, h) {
			if n >= len(needle) {
				return 1
			}
			n++
			h++
		} else if chAt(haystack, h) == ' ' || chAt(haystack, h) == 0 {
			if n == 0 {
				return 0
			}
			break
		} else {
			// skip to the next alternative
			n = 0
			for {
				h++
				c := chAt(haystack, h)
				if c == ' ' || c == '|' || c == 0 {
					break
				}
			}
			if chAt(haystack, h) == ' ' || chAt(haystack, h) == 0 {
				return -1
			}
			h++
		}
	}

	if n >= len(needle) {
		return 1
	}
	return -1
}

// firstWordEquals reports whether the first space-delimited word of
// pattern starting at p equals word.
func firstWordEquals(pattern string, p int, word string) bool {
	w := 0
	for {
		if chAt(pattern, p) != chAt(word, w) {
			return chAt(pattern, p) == ' ' && chAt(word, w) == 0
		} else if chAt(pattern, p) == 0 {
			break
		}
		p++
		w++
	}
	return true
}

// chrInFirstWord reports whether c occurs in the first word of pattern
// starting at p.
func chrInFirstWord(pattern string, p int, c byte) bool {
	for {
		ch := chAt(pattern, p)
		if ch == ' ' || ch == 0 {
			return false
		}
		if ch == c {
			return true
		}
		p++
	}
}

// Match matches the pattern against consecutive tokens starting at
// tok. A missing token matches only !!... atoms.
func Match(tok *Token, pattern string) bool {
	return MatchVarid(tok, pattern, 0)
}

// MatchVarid is Match with the value %varid% compares against. Passing
// a zero varid while the pattern contains %varid% is an internal
// error.
func MatchVarid(tok *Token, pattern string, varid int) bool {
	p := 0
	for p < len(pattern) {
		for chAt(pattern, p) == ' ' {
			p++
		}

		// end of pattern, nothing wrong found
		if chAt(pattern, p) == 0 {
			break
		}

		if tok == nil {
			// with no tokens, "!!else" still matches
			if chAt(pattern, p) == '!' && chAt(pattern, p+1) == '!' && chAt(pattern, p+2) != 0 {
				for chAt(pattern, p) != 0 && chAt(pattern, p) != ' ' {
					p++
				}
				continue
			}
			return false
		}

		if chAt(pattern, p) == '[' && chrInFirstWord(pattern, p, ']') {
			// one-character class
			if len(tok.str) != 1 {
				return false
			}
			temp := p + 1
			chrFound := false
			count := 0
			for chAt(pattern, temp) != 0 && chAt(pattern, temp) != ' ' {
				if chAt(pattern, temp) == ']' {
					count++
				} else if chAt(pattern, temp) == tok.str[0] {
					chrFound = true
					break
				}
				temp++
			}
			if count > 1 && tok.str[0] == ']' {
				chrFound = true
			}
			if !chrFound {
				return false
			}
			p = temp
		} else if chAt(pattern, p) == '!' && chAt(pattern, p+1) == '!' && chAt(pattern, p+2) != 0 {
			// anything but the given word
			p += 2
			if firstWordEquals(pattern, p, tok.str) {
				return false
			}
		} else {
			res := multiCompare(tok, pattern, p, varid)
			if res == 0 {
				// empty alternative matched, same token next round
				for chAt(pattern, p) != 0 && chAt(pattern, p) != ' ' {
					p++
				}
				continue
			} else if res == -1 {
				return false
			}
		}

		for chAt(pattern, p) != 0 && chAt(pattern, p) != ' ' {
			p++
		}
		tok = tok.next
	}

	return true
}

// SimpleMatch matches a pattern with no special characters: every
// space-separated word must equal the lexeme of the next token.
func SimpleMatch(tok *Token, pattern string) bool {
	if tok == nil {
		return false
	}
	current := 0
	next := strings.IndexByte(pattern, ' ')
	if next < 0 {
		next = len(pattern)
	}
	for current < len(pattern) {
		if tok == nil || tok.str != pattern[current:next] {
			return false
		}
		current = next
		if current < len(pattern) {
			current++
			idx := strings.IndexByte(pattern[current:], ' ')
			if idx < 0 {
				next = len(pattern)
			} else {
				next = current + idx
			}
		}
		tok = tok.next
	}
	return true
}

// FindSimpleMatch returns the first token in [start, end) at which
// SimpleMatch succeeds. A nil end means the rest of the list.
func FindSimpleMatch(start *Token, pattern string, end *Token) *Token {
	for tok := start; tok != nil && tok != end; tok = tok.next {
		if SimpleMatch(tok, pattern) {
			return tok
		}
	}
	return nil
}

// FindMatch returns the first token in [start, end) at which
// MatchVarid succeeds. A nil end means the rest of the list.
func FindMatch(start *Token, pattern string, end *Token, varid int) *Token {
	for tok := start; tok != nil && tok != end; tok = tok.next {
		if MatchVarid(tok, pattern, varid) {
			return tok
		}
	}
	return nil
}
