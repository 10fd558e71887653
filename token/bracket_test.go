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

import "testing"

func TestFindClosingBracket(t *testing.T) {
	list := lex("< A < B > > ;")
	front := list.Front()

	closing := front.FindClosingBracket()
	if closing != front.TokAt(5) {
		t.Errorf("outer bracket should close at token 5")
	}
	inner := front.TokAt(2).FindClosingBracket()
	if inner != front.TokAt(4) {
		t.Errorf("inner bracket should close at token 4")
	}
}

func TestFindClosingBracketShiftRight(t *testing.T) {
	list := lex("< A < B >> ;")
	front := list.Front()

	closing := front.FindClosingBracket()
	if closing == nil || closing.Str() != ">>" {
		t.Errorf("a >> token closes two levels at once")
	}
}

func TestFindClosingBracketAborts(t *testing.T) {
	for _, code := range []string{"< A ;", "< A )", "x y"} {
		list := lex(code)
		if list.Front().FindClosingBracket() != nil {
			t.Errorf("FindClosingBracket(%q) should be nil", code)
		}
	}
}

func TestFindClosingBracketJumpsLinkedPairs(t *testing.T) {
	list := lex("< f ( > ) >")
	open := list.Front().TokAt(2)
	CreateMutualLinks(open, list.Front().TokAt(4))

	closing := list.Front().FindClosingBracket()
	// the > inside the linked parentheses must be skipped
	if closing != list.Back() {
		t.Errorf("bracket contents must be jumped via their link")
	}
}

func TestFindOpeningBracket(t *testing.T) {
	list := lex("A < B < C > > ;")
	last := list.Front().TokAt(6)
	if last.Str() != ">" {
		t.Fatalf("unexpected token layout")
	}
	opening := last.FindOpeningBracket()
	if opening != list.Front().Next() {
		t.Errorf("outer bracket should open at token 1")
	}
	if list.Front().FindOpeningBracket() != nil {
		t.Errorf("FindOpeningBracket on a non-> token is nil")
	}
}

func TestNextArgument(t *testing.T) {
	list := lex("f ( a , g ( x , y ) , b ) ;")
	front := list.Front()
	CreateMutualLinks(front.Next(), front.TokAt(12))
	CreateMutualLinks(front.TokAt(5), front.TokAt(9))

	first := front.TokAt(2) // a
	second := first.NextArgument()
	if second == nil || second.Str() != "g" {
		t.Fatalf("second argument should start at g")
	}
	third := second.NextArgument()
	if third == nil || third.Str() != "b" {
		t.Fatalf("third argument should start at b, nested commas skipped")
	}
	if third.NextArgument() != nil {
		t.Errorf("no argument follows the last one")
	}
}

func TestNextArgumentBeforeCreateLinks2(t *testing.T) {
	list := lex("f ( a < b , c > , d ) ;")
	front := list.Front()
	CreateMutualLinks(front.Next(), front.TokAt(10))

	first := front.TokAt(2) // a
	second := first.NextArgumentBeforeCreateLinks2()
	// the comma inside the unlinked template brackets must be skipped
	if second == nil || second.Str() != "d" {
		t.Errorf("template argument commas must not terminate the scan")
	}
}

func TestNextTemplateArgument(t *testing.T) {
	list := lex("a , b > ;")
	second := list.Front().NextTemplateArgument()
	if second == nil || second.Str() != "b" {
		t.Fatalf("next template argument should be b")
	}
	if second.NextTemplateArgument() != nil {
		t.Errorf("the closing > ends the template argument list")
	}
}
