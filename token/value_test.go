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
	"math"
	"testing"
)

type fakeSettings struct {
	inconclusive bool
	warning      bool
	invalidInt   map[int64]bool
	invalidFloat map[float64]bool
}

func (s *fakeSettings) InconclusiveEnabled() bool { return s.inconclusive }
func (s *fakeSettings) WarningEnabled() bool      { return s.warning }

func (s *fakeSettings) IsIntArgValid(ftok *Token, argnr int, value int64) bool {
	return !s.invalidInt[value]
}

func (s *fakeSettings) IsFloatArgValid(ftok *Token, argnr int, value float64) bool {
	return !s.invalidFloat[value]
}

func TestAddValueDuplicate(t *testing.T) {
	tok := NewList().Append("x")
	v := NewIntValue(5)
	if !tok.AddValue(v) {
		t.Fatalf("first AddValue should mutate")
	}
	if tok.AddValue(v) {
		t.Errorf("second AddValue of the same value should be rejected")
	}
	if len(tok.Values()) != 1 {
		t.Errorf("value list has %d entries, want 1", len(tok.Values()))
	}
}

func TestAddValueKnownReplacesInconclusive(t *testing.T) {
	tok := NewList().Append("x")
	inconclusive := NewIntValue(5)
	inconclusive.SetInconclusive(true)
	tok.AddValue(inconclusive)

	known := NewIntValue(5)
	known.SetKnown()
	if !tok.AddValue(known) {
		t.Fatalf("adding a known value should mutate")
	}
	values := tok.Values()
	if len(values) != 1 {
		t.Fatalf("value list has %d entries, want 1", len(values))
	}
	if !values[0].IsKnown() || values[0].IntValue != 5 {
		t.Errorf("surviving value should be the known 5")
	}
}

func TestAddValueKnownEvictsSameType(t *testing.T) {
	tok := NewList().Append("x")
	tok.AddValue(NewIntValue(1))
	tok.AddValue(NewIntValue(2))
	moved := Value{Type: MovedValue, MoveKind: MovedVariable}
	tok.AddValue(moved)

	known := NewIntValue(7)
	known.SetKnown()
	tok.AddValue(known)

	values := tok.Values()
	if len(values) != 2 {
		t.Fatalf("value list has %d entries, want 2", len(values))
	}
	// the known int is front-inserted, the moved value survives
	if !values[0].IsKnown() || values[0].IntValue != 7 {
		t.Errorf("front value should be the known int")
	}
	if !values[1].IsMovedValue() {
		t.Errorf("the moved value must not be evicted")
	}
}

func TestAddValueCap(t *testing.T) {
	tok := NewList().Append("x")
	for i := 0; i < 10; i++ {
		if !tok.AddValue(NewIntValue(int64(i))) {
			t.Fatalf("value %d should be accepted", i)
		}
	}
	if tok.AddValue(NewIntValue(999)) {
		t.Errorf("the eleventh value should be rejected")
	}
	if len(tok.Values()) != 10 {
		t.Errorf("value list has %d entries, want 10", len(tok.Values()))
	}
}

func TestAddValueInconclusiveReplacement(t *testing.T) {
	tok := NewList().Append("x")
	tok.SetVarID(4)
	inconclusive := NewIntValue(3)
	inconclusive.SetInconclusive(true)
	tok.AddValue(inconclusive)

	possible := NewIntValue(3)
	if !tok.AddValue(possible) {
		t.Fatalf("replacing an inconclusive value should mutate")
	}
	values := tok.Values()
	if len(values) != 1 || !values[0].IsPossible() {
		t.Fatalf("the inconclusive value should be replaced in place")
	}
	if values[0].VarID != 4 {
		t.Errorf("the replacement should adopt the token's varid")
	}
}

func TestAddValueTokAlias(t *testing.T) {
	str1 := NewList().Append(`"abc"`)
	str2 := NewList().Append(`"abc"`)
	tok := NewList().Append("p")

	tok.AddValue(Value{Type: TokValue, TokValue: str1})
	// a different token with the same lexeme is the same alias
	if tok.AddValue(Value{Type: TokValue, TokValue: str2}) {
		t.Errorf("aliases with equal lexemes should be deduplicated")
	}
}

func TestValueEquality(t *testing.T) {
	a := NewIntValue(1)
	b := NewIntValue(1)
	if !a.Equals(&b) {
		t.Errorf("identical int values should be equal")
	}
	b.Conditional = true
	if a.Equals(&b) {
		t.Errorf("conditional flag must participate in equality")
	}

	nan := Value{Type: FloatValue, FloatValue: math.NaN()}
	if nan.Equals(&nan) {
		t.Errorf("NaN never equals anything, not even itself")
	}
	f1 := Value{Type: FloatValue, FloatValue: 1.5}
	f2 := Value{Type: FloatValue, FloatValue: 1.5}
	if !f1.Equals(&f2) {
		t.Errorf("equal floats should be equal")
	}
}

func TestGetValueLE(t *testing.T) {
	tok := NewList().Append("x")
	cond := NewList().Append("c")

	conditional := NewIntValue(3)
	conditional.Condition = cond
	tok.AddValue(conditional)
	tok.AddValue(NewIntValue(1))

	got := tok.GetValueLE(4, nil)
	if got == nil || got.IntValue != 1 {
		t.Fatalf("an unconditional hit is preferred over a conditional one")
	}
	if tok.GetValueLE(0, nil) != nil {
		t.Errorf("no value <= 0 exists")
	}

	// conditional hits are dropped when warnings are off
	condOnly := NewList().Append("y")
	cv := NewIntValue(2)
	cv.Condition = cond
	condOnly.AddValue(cv)
	if condOnly.GetValueLE(5, &fakeSettings{}) != nil {
		t.Errorf("conditional values need the warning capability")
	}
	if condOnly.GetValueLE(5, &fakeSettings{warning: true}) == nil {
		t.Errorf("the conditional value should be returned with warnings on")
	}
}

func TestGetValueGE(t *testing.T) {
	tok := NewList().Append("x")
	inconclusive := NewIntValue(9)
	inconclusive.SetInconclusive(true)
	tok.AddValue(inconclusive)
	tok.AddValue(NewIntValue(5))

	got := tok.GetValueGE(4, nil)
	if got == nil || got.IntValue != 5 {
		t.Fatalf("a conclusive hit is preferred over an inconclusive one")
	}

	strict := &fakeSettings{inconclusive: false, warning: true}
	if tok.GetValueGE(8, strict) != nil {
		t.Errorf("an inconclusive hit needs the inconclusive capability")
	}
	lenient := &fakeSettings{inconclusive: true, warning: true}
	if tok.GetValueGE(8, lenient) == nil {
		t.Errorf("the inconclusive hit should be returned when enabled")
	}
}

func TestGetInvalidValue(t *testing.T) {
	tok := NewList().Append("x")
	ftok := NewList().Append("memset")
	tok.AddValue(NewIntValue(0))
	tok.AddValue(NewIntValue(-1))

	settings := &fakeSettings{
		warning:    true,
		invalidInt: map[int64]bool{-1: true},
	}
	got := tok.GetInvalidValue(ftok, 1, settings)
	if got == nil || got.IntValue != -1 {
		t.Fatalf("the invalid argument value should be found")
	}
	if tok.GetInvalidValue(ftok, 1, nil) != nil {
		t.Errorf("without settings there is nothing to validate against")
	}
}

func TestGetValueTokenMinStrSizeMaxStrLength(t *testing.T) {
	short := NewList().Append(`"ab"`)
	long := NewList().Append(`"abcdef"`)
	embedded := NewList().Append(`"ab\0cdef"`)
	tok := NewList().Append("s")
	tok.AddValue(Value{Type: TokValue, TokValue: long})
	tok.AddValue(Value{Type: TokValue, TokValue: short})
	tok.AddValue(Value{Type: TokValue, TokValue: embedded})

	if got := tok.GetValueTokenMinStrSize(); got != short {
		t.Errorf("min size literal = %q, want \"ab\"", got.Str())
	}
	// the embedded \0 truncates the length but not the size
	if got := tok.GetValueTokenMaxStrLength(); got != long {
		t.Errorf("max length literal = %q, want \"abcdef\"", got.Str())
	}
}

func TestGetValueTokenDeadPointer(t *testing.T) {
	functionScope := &Scope{Kind: ScopeFunction}
	innerScope := &Scope{Kind: ScopeIf, NestedIn: functionScope}

	list := lex("& x ; p")
	amp := list.Front()
	x := amp.Next()
	p := list.Back()

	x.SetVarID(1)
	x.SetVariable(&Variable{Scope: innerScope})
	amp.SetAstOperand1(x)
	p.SetScope(functionScope)

	p.AddValue(Value{Type: TokValue, TokValue: amp})
	if got := p.GetValueTokenDeadPointer(); got != amp {
		t.Fatalf("a pointer into a left scope is dead")
	}

	// the same alias while still inside the scope is alive
	p.SetScope(innerScope)
	if p.GetValueTokenDeadPointer() != nil {
		t.Errorf("a pointer into a live scope is not dead")
	}

	// static variables survive their scope
	x.SetVariable(&Variable{Scope: innerScope, Static: true})
	p.SetScope(functionScope)
	if p.GetValueTokenDeadPointer() != nil {
		t.Errorf("a static variable never dies with its scope")
	}
}
