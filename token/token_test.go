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

import (
	"strings"
	"testing"
)

func lex(code string) *List {
	list := NewList()
	for _, field := range strings.Fields(code) {
		list.Append(field)
	}
	return list
}

func TestKindDerivation(t *testing.T) {
	for _, tt := range [...]struct {
		str  string
		kind Kind
	}{
		{"true", KindBoolean},
		{"false", KindBoolean},
		{`"hello"`, KindString},
		{"'c'", KindChar},
		{"abc", KindName},
		{"_x", KindName},
		{"$id", KindName},
		{"123", KindNumber},
		{"-3", KindNumber},
		{"=", KindAssignmentOp},
		{"<<=", KindAssignmentOp},
		{">>=", KindAssignmentOp},
		{"+=", KindAssignmentOp},
		{"|=", KindAssignmentOp},
		{",", KindExtendedOp},
		{"(", KindExtendedOp},
		{"]", KindExtendedOp},
		{"?", KindExtendedOp},
		{":", KindExtendedOp},
		{"<<", KindArithmeticalOp},
		{">>", KindArithmeticalOp},
		{"+", KindArithmeticalOp},
		{"%", KindArithmeticalOp},
		{"&", KindBitOp},
		{"~", KindBitOp},
		{"^", KindBitOp},
		{"&&", KindLogicalOp},
		{"||", KindLogicalOp},
		{"!", KindLogicalOp},
		{"==", KindComparisonOp},
		{"!=", KindComparisonOp},
		{"<", KindComparisonOp},
		{">=", KindComparisonOp},
		{"++", KindIncDecOp},
		{"--", KindIncDecOp},
		{"{", KindBracket},
		{"}", KindBracket},
		{"int", KindType},
		{"size_t", KindType},
		{"wchar_t", KindType},
		{";", KindOther},
		{"::", KindOther},
	} {
		tok := NewList().Append(tt.str)
		if tok.Kind() != tt.kind {
			t.Errorf("kind of %q = %v, want %v", tt.str, tok.Kind(), tt.kind)
		}
	}
}

func TestStandardTypeFlag(t *testing.T) {
	tok := NewList().Append("int")
	if !tok.IsStandardType() {
		t.Errorf("int should be a standard type")
	}
	tok.SetStr("foo")
	if tok.IsStandardType() {
		t.Errorf("foo should not be a standard type")
	}
	// names shorter than three characters never qualify
	short := NewList().Append("t")
	if short.IsStandardType() {
		t.Errorf("t should not be a standard type")
	}
}

func TestControlFlowKeywordFlag(t *testing.T) {
	for _, str := range []string{"goto", "do", "if", "else", "for", "while", "switch", "case", "break", "continue", "return"} {
		tok := NewList().Append(str)
		if !tok.IsControlFlowKeyword() {
			t.Errorf("%q should be a control flow keyword", str)
		}
	}
	tok := NewList().Append("function")
	if tok.IsControlFlowKeyword() {
		t.Errorf("function should not be a control flow keyword")
	}
}

func TestVarIDClassification(t *testing.T) {
	tok := NewList().Append("x")
	if tok.Kind() != KindName {
		t.Fatalf("x should start as a name")
	}
	tok.SetVarID(3)
	if tok.Kind() != KindVariable {
		t.Errorf("x@3 should be a variable")
	}
	tok.SetVarID(0)
	if tok.Kind() != KindVariable {
		// a cleared varid keeps the variable classification
		t.Errorf("kind = %v after clearing varid, want KindVariable", tok.Kind())
	}
}

func TestLiteralPrefixes(t *testing.T) {
	for _, tt := range [...]struct {
		str      string
		expected string
		long     bool
	}{
		{`L"abc"`, `"abc"`, true},
		{`u"abc"`, `"abc"`, true},
		{`U"abc"`, `"abc"`, true},
		{`u8"abc"`, `"abc"`, false},
		{`L'c'`, `'c'`, true},
		{`"abc"`, `"abc"`, false},
	} {
		tok := NewList().Append(tt.str)
		if tok.Str() != tt.expected {
			t.Errorf("lexeme of %s = %s, want %s", tt.str, tok.Str(), tt.expected)
		}
		if tok.IsLong() != tt.long {
			t.Errorf("long flag of %s = %v, want %v", tt.str, tok.IsLong(), tt.long)
		}
	}
}

func TestStrValue(t *testing.T) {
	for _, tt := range [...]struct {
		str      string
		expected string
	}{
		{`"hello"`, "hello"},
		{`"he\nllo"`, "he\nllo"},
		{`"he\rllo"`, "he\rllo"},
		{`"he\tllo"`, "he\tllo"},
		{`"he\"llo"`, `he"llo`},
		{`"he\0llo"`, "he"},
		{`""`, ""},
	} {
		tok := NewList().Append(tt.str)
		if got := tok.StrValue(); got != tt.expected {
			t.Errorf("StrValue(%s) = %q, want %q", tt.str, got, tt.expected)
		}
	}
}

func TestConcatStr(t *testing.T) {
	list := lex(`"ab" "cd"`)
	front := list.Front()
	front.ConcatStr(front.Next().Str())
	if front.Str() != `"abcd"` {
		t.Errorf("concatenated lexeme = %s, want \"abcd\"", front.Str())
	}
	if front.Kind() != KindString {
		t.Errorf("concatenated token should stay a string")
	}
}

func TestStrLengthAndSize(t *testing.T) {
	for _, tt := range [...]struct {
		str    string
		length int
		size   int
	}{
		{`"hello"`, 5, 6},
		{`"he\nllo"`, 6, 7},
		{`"he\0llo"`, 2, 7},
		{`""`, 0, 1},
	} {
		tok := NewList().Append(tt.str)
		if got := GetStrLength(tok); got != tt.length {
			t.Errorf("GetStrLength(%s) = %d, want %d", tt.str, got, tt.length)
		}
		if got := GetStrSize(tok); got != tt.size {
			t.Errorf("GetStrSize(%s) = %d, want %d", tt.str, got, tt.size)
		}
	}
}

func TestGetCharAt(t *testing.T) {
	tok := NewList().Append(`"a\nc"`)
	for _, tt := range [...]struct {
		index    int64
		expected string
	}{
		{0, "a"},
		{1, `\n`},
		{2, "c"},
		{3, `\0`},
	} {
		if got := GetCharAt(tok, tt.index); got != tt.expected {
			t.Errorf("GetCharAt(%d) = %q, want %q", tt.index, got, tt.expected)
		}
	}
}

func TestIsUpperCaseName(t *testing.T) {
	for _, tt := range [...]struct {
		str      string
		expected bool
	}{
		{"ABC", true},
		{"ABC_1", true},
		{"Abc", false},
		{"+", false},
	} {
		tok := NewList().Append(tt.str)
		if got := tok.IsUpperCaseName(); got != tt.expected {
			t.Errorf("IsUpperCaseName(%q) = %v, want %v", tt.str, got, tt.expected)
		}
	}
}

func TestDeleteThisMiddle(t *testing.T) {
	list := lex("a b c")
	b := list.Front().Next()
	p := b // external pointer stays valid
	b.DeleteThis()
	if got := list.Front().StringifyRange(nil, false); got != "a c" {
		t.Errorf("list after DeleteThis = %q, want \"a c\"", got)
	}
	if p.Str() != "c" {
		t.Errorf("pointer reads %q after DeleteThis, want \"c\"", p.Str())
	}
}

func TestDeleteThisLast(t *testing.T) {
	list := lex("a b c")
	last := list.Back()
	last.DeleteThis()
	// the previous payload moved into the surviving node
	if got := list.Front().StringifyRange(nil, false); got != "a b" {
		t.Errorf("list = %q, want \"a b\"", got)
	}
	if last.Str() != "b" {
		t.Errorf("surviving node reads %q, want \"b\"", last.Str())
	}

	single := lex("a")
	only := single.Front()
	only.DeleteThis()
	if only.Str() != "" {
		t.Errorf("the final token should degenerate to an empty lexeme, got %q", only.Str())
	}
}

func TestDeleteNextClearsBracketLink(t *testing.T) {
	list := lex("a ( )")
	open := list.Front().Next()
	close := open.Next()
	CreateMutualLinks(open, close)
	list.Front().DeleteNext(1) // removes the "("
	if close.Link() != nil {
		t.Errorf("partner link should be cleared when a linked token is deleted")
	}
	if list.Front().Next() != close {
		t.Errorf("list should be \"a )\"")
	}
}

func TestDeletePrevious(t *testing.T) {
	list := lex("a b c")
	back := list.Back()
	back.DeletePrevious(2)
	if list.Front() != back || back.Previous() != nil {
		t.Errorf("deleting all previous tokens should leave the back as front")
	}
}

func TestInsertToken(t *testing.T) {
	list := lex("a c")
	list.Front().SetLineNumber(4)
	list.Front().InsertToken("b", "", false)
	if got := list.Front().StringifyRange(nil, false); got != "a b c" {
		t.Errorf("list = %q, want \"a b c\"", got)
	}
	if list.Front().Next().LineNumber() != 4 {
		t.Errorf("inserted token should inherit the line number")
	}
	list.Front().InsertToken("x", "", true)
	if list.Front().Str() != "x" {
		t.Errorf("prepending at the front should update the list head")
	}
}

func TestInsertTokenIntoErasedSentinel(t *testing.T) {
	list := lex("a")
	only := list.Front()
	only.DeleteThis() // empty sentinel now
	only.InsertToken("b", "", false)
	if only.Str() != "b" || only.Next() != nil {
		t.Errorf("inserting into the sentinel should replace it in place")
	}
}

func TestSwapWithNext(t *testing.T) {
	list := lex("( x )")
	open := list.Front()
	x := open.Next()
	close := x.Next()
	CreateMutualLinks(open, close)
	open.SwapWithNext()
	if open.Str() != "x" || x.Str() != "(" {
		t.Fatalf("payloads not swapped: %q %q", open.Str(), x.Str())
	}
	if x.Link() != close || close.Link() != x {
		t.Errorf("bracket partner should be rewired to the new carrier")
	}
}

func TestReplace(t *testing.T) {
	list := lex("a X d")
	target := list.Front().Next()

	repl := lex("b c")
	start := repl.Front()
	end := repl.Back()

	Replace(target, start, end)
	if got := list.Front().StringifyRange(nil, false); got != "a b c d" {
		t.Errorf("list = %q, want \"a b c d\"", got)
	}
}

func TestMove(t *testing.T) {
	list := lex("a b c d e")
	b := list.Front().Next()
	c := b.Next()
	d := c.Next()
	Move(b, c, d) // a d b c e after moving "b c" after "d"
	if got := list.Front().StringifyRange(nil, false); got != "a d b c e" {
		t.Errorf("list = %q, want \"a d b c e\"", got)
	}
}

func TestEraseTokens(t *testing.T) {
	list := lex("a b c d")
	EraseTokens(list.Front(), list.Back())
	if got := list.Front().StringifyRange(nil, false); got != "a d" {
		t.Errorf("list = %q, want \"a d\"", got)
	}
}

func TestTokAtStrAtLinkAt(t *testing.T) {
	list := lex("a ( b )")
	front := list.Front()
	CreateMutualLinks(front.Next(), list.Back())
	if front.TokAt(2).Str() != "b" {
		t.Errorf("TokAt(2) = %q", front.TokAt(2).Str())
	}
	if list.Back().TokAt(-3) != front {
		t.Errorf("negative TokAt should walk backwards")
	}
	if front.StrAt(9) != "" {
		t.Errorf("StrAt past the end should be empty")
	}
	if front.LinkAt(1) != list.Back() {
		t.Errorf("LinkAt(1) should give the closing bracket")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("LinkAt outside the list should raise an internal error")
		}
	}()
	front.LinkAt(9)
}

func TestAssignProgressValues(t *testing.T) {
	list := lex("a b c d e f g h")
	AssignProgressValues(list.Front())
	previous := -1
	for tok := list.Front(); tok != nil; tok = tok.Next() {
		if tok.ProgressValue() < previous {
			t.Fatalf("progress values must not decrease")
		}
		previous = tok.ProgressValue()
	}
	if list.Front().ProgressValue() != 0 {
		t.Errorf("first progress value = %d, want 0", list.Front().ProgressValue())
	}
	if list.Back().ProgressValue() > 100 {
		t.Errorf("last progress value = %d, want <= 100", list.Back().ProgressValue())
	}
}

func TestAssignIndexes(t *testing.T) {
	list := lex("a b c")
	list.Front().AssignIndexes()
	want := 1
	for tok := list.Front(); tok != nil; tok = tok.Next() {
		if tok.Index() != want {
			t.Errorf("index of %q = %d, want %d", tok.Str(), tok.Index(), want)
		}
		want++
	}
	// renumbering a tail continues from the predecessor
	list.Front().Next().AssignIndexes()
	if list.Back().Index() != 3 {
		t.Errorf("tail renumbering should continue from the previous index")
	}
}

func TestLinkedListInvariantAfterMutations(t *testing.T) {
	list := lex("a ( b ) c d")
	CreateMutualLinks(list.Front().Next(), list.Front().TokAt(3))

	check := func(step string) {
		for tok := list.Front(); tok != nil; tok = tok.Next() {
			if tok.Next() != nil && tok.Next().Previous() != tok {
				t.Fatalf("%s: next/prev invariant broken at %q", step, tok.Str())
			}
			if tok.Link() != nil && tok.Link().Link() != tok {
				t.Fatalf("%s: bracket symmetry broken at %q", step, tok.Str())
			}
		}
	}

	check("initial")
	list.Front().InsertToken("x", "", false)
	check("insert")
	list.Back().DeletePrevious(1)
	check("deletePrevious")
	list.Front().Next().SwapWithNext()
	check("swap")
	list.Front().DeleteNext(1)
	check("deleteNext")
}
