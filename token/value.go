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

import "math"

// ValueKind grades how certain a value fact is.
type ValueKind int

const (
	// Possible: other unlisted values may also occur.
	Possible ValueKind = iota
	// Known: only listed values occur.
	Known
	// Inconclusive: heuristic, gated by settings.
	Inconclusive
)

// ValueType tags the payload of a Value.
type ValueType int

const (
	IntValue ValueType = iota
	TokValue
	FloatValue
	MovedValue
	UninitValue
	ContainerSizeValue
	LifetimeValue
	BufferSizeValue
)

// MoveKind grades a moved-from fact.
type MoveKind int

const (
	NonMovedVariable MoveKind = iota
	MovedVariable
	ForwardedVariable
)

func (k MoveKind) String() string {
	switch k {
	case NonMovedVariable:
		return "NonMovedVariable"
	case MovedVariable:
		return "MovedVariable"
	case ForwardedVariable:
		return "ForwardedVariable"
	}
	return ""
}

// LifetimeKind tags what a lifetime value tracks.
type LifetimeKind int

const (
	LifetimeObject LifetimeKind = iota
	LifetimeLambda
	LifetimeIterator
	LifetimeAddress
)

// LifetimeScope tells where the tracked object lives.
type LifetimeScope int

const (
	LifetimeLocal LifetimeScope = iota
	LifetimeArgument
)

// ErrorPathItem is one step of the explanation attached to a value.
type ErrorPathItem struct {
	Tok  *Token
	Info string
}

// Value is one value-flow fact attached to a token: what the
// expression could be at runtime.
type Value struct {
	Type ValueType

	// Int payload, also carries container and buffer sizes.
	IntValue int64
	// Token alias payload for pointer aliases, strings and lifetimes.
	TokValue *Token
	// Float payload.
	FloatValue float64
	// Moved-from payload.
	MoveKind MoveKind

	// Variable value this calculated value depends on.
	VarValue int64
	// Condition this value depends on.
	Condition *Token
	ErrorPath []ErrorPathItem
	// VarID of the variable this calculated value depends on.
	VarID int
	// Conditional value.
	Conditional bool
	// Passed as a default argument.
	DefaultArg bool

	LifetimeKind  LifetimeKind
	LifetimeScope LifetimeScope

	Kind ValueKind
}

// NewIntValue returns a possible int value, the common case.
func NewIntValue(val int64) Value {
	return Value{Type: IntValue, IntValue: val, VarValue: val}
}

func (v *Value) IsIntValue() bool           { return v.Type == IntValue }
func (v *Value) IsTokValue() bool           { return v.Type == TokValue }
func (v *Value) IsFloatValue() bool         { return v.Type == FloatValue }
func (v *Value) IsMovedValue() bool         { return v.Type == MovedValue }
func (v *Value) IsUninitValue() bool        { return v.Type == UninitValue }
func (v *Value) IsContainerSizeValue() bool { return v.Type == ContainerSizeValue }
func (v *Value) IsLifetimeValue() bool      { return v.Type == LifetimeValue }
func (v *Value) IsBufferSizeValue() bool    { return v.Type == BufferSizeValue }

func (v *Value) IsLocalLifetimeValue() bool {
	return v.Type == LifetimeValue && v.LifetimeScope == LifetimeLocal
}

func (v *Value) IsArgumentLifetimeValue() bool {
	return v.Type == LifetimeValue && v.LifetimeScope == LifetimeArgument
}

func (v *Value) IsKnown() bool        { return v.Kind == Known }
func (v *Value) IsPossible() bool     { return v.Kind == Possible }
func (v *Value) IsInconclusive() bool { return v.Kind == Inconclusive }

func (v *Value) SetKnown()    { v.Kind = Known }
func (v *Value) SetPossible() { v.Kind = Possible }
func (v *Value) SetInconclusive(inconclusive bool) {
	if inconclusive {
		v.Kind = Inconclusive
	}
}

func (v *Value) ChangeKnownToPossible() {
	if v.IsKnown() {
		v.Kind = Possible
	}
}

// ErrorSeverity reports whether the value justifies an error-severity
// diagnostic rather than a warning.
func (v *Value) ErrorSeverity() bool { return v.Condition == nil && !v.DefaultArg }

// Equals compares two values. Float payloads compare with both strict
// orders after a NaN check, so that NaN never equals anything; do not
// replace this with an equality test.
func (v *Value) Equals(rhs *Value) bool {
	if v.Type != rhs.Type {
		return false
	}
	switch v.Type {
	case IntValue, BufferSizeValue, ContainerSizeValue:
		if v.IntValue != rhs.IntValue {
			return false
		}
	case TokValue, LifetimeValue:
		if v.TokValue != rhs.TokValue {
			return false
		}
	case FloatValue:
		if math.IsNaN(v.FloatValue) || math.IsNaN(rhs.FloatValue) {
			return false
		}
		if v.FloatValue > rhs.FloatValue || v.FloatValue < rhs.FloatValue {
			return false
		}
	case MovedValue:
		if v.MoveKind != rhs.MoveKind {
			return false
		}
	case UninitValue:
	}
	return v.VarValue == rhs.VarValue &&
		v.Condition == rhs.Condition &&
		v.VarID == rhs.VarID &&
		v.Conditional == rhs.Conditional &&
		v.DefaultArg == rhs.DefaultArg &&
		v.Kind == rhs.Kind
}

// Values returns the value facts attached to the token. The slice is
// owned by the token; nil means no facts.
func (t *Token) Values() []Value { return t.impl.values }

// AddValue merges one value fact into the token's list. A Known value
// evicts every same-typed fact first. The list is capped at 10 entries
// as a performance safety valve. A duplicate is dropped, except that a
// non-inconclusive duplicate replaces an inconclusive one. Reports
// whether the list changed.
func (t *Token) AddValue(value Value) bool {
	if value.IsKnown() && t.impl.values != nil {
		kept := t.impl.values[:0]
		for _, x := range t.impl.values {
			if x.Type != value.Type {
				kept = append(kept, x)
			}
		}
		t.impl.values = kept
		if len(t.impl.values) == 0 {
			t.impl.values = nil
		}
	}

	if t.impl.values != nil {
		// more than 10 values is too expensive to track
		if len(t.impl.values) >= 10 {
			return false
		}

		for i := range t.impl.values {
			e := &t.impl.values[i]
			if e.IntValue != value.IntValue {
				continue
			}
			if e.Type != value.Type {
				continue
			}
			if (value.IsTokValue() || value.IsLifetimeValue()) &&
				e.TokValue != value.TokValue && e.TokValue.str != value.TokValue.str {
				continue
			}

			// same value, but the old one is inconclusive so replace it
			if e.IsInconclusive() && !value.IsInconclusive() {
				*e = value
				if e.VarID == 0 {
					e.VarID = t.impl.varID
				}
				return true
			}

			// same value already exists
			return false
		}
	}

	v := value
	if v.VarID == 0 {
		v.VarID = t.impl.varID
	}
	if v.IsKnown() && v.IsIntValue() {
		t.impl.values = append([]Value{v}, t.impl.values...)
	} else {
		t.impl.values = append(t.impl.values, v)
	}
	return true
}

// QuerySettings is the capability the value queries consult. A nil
// QuerySettings skips the final filtering.
type QuerySettings interface {
	InconclusiveEnabled() bool
	WarningEnabled() bool
	IsIntArgValid(ftok *Token, argnr int, value int64) bool
	IsFloatArgValid(ftok *Token, argnr int, value float64) bool
}

// filterValue applies the inconclusive/warning gates to a chosen
// value.
func filterValue(ret *Value, settings QuerySettings) *Value {
	if settings != nil && ret != nil {
		if ret.IsInconclusive() && !settings.InconclusiveEnabled() {
			return nil
		}
		if ret.Condition != nil && !settings.WarningEnabled() {
			return nil
		}
	}
	return ret
}

// GetValueLE returns the first int value <= val, preferring conclusive
// unconditional facts.
func (t *Token) GetValueLE(val int64, settings QuerySettings) *Value {
	if t.impl.values == nil {
		return nil
	}
	var ret *Value
	for i := range t.impl.values {
		it := &t.impl.values[i]
		if it.IsIntValue() && it.IntValue <= val {
			if ret == nil || ret.IsInconclusive() || (ret.Condition != nil && !it.IsInconclusive()) {
				ret = it
			}
			if !ret.IsInconclusive() && ret.Condition == nil {
				break
			}
		}
	}
	return filterValue(ret, settings)
}

// GetValueGE returns the first int value >= val, preferring conclusive
// unconditional facts.
func (t *Token) GetValueGE(val int64, settings QuerySettings) *Value {
	if t.impl.values == nil {
		return nil
	}
	var ret *Value
	for i := range t.impl.values {
		it := &t.impl.values[i]
		if it.IsIntValue() && it.IntValue >= val {
			if ret == nil || ret.IsInconclusive() || (ret.Condition != nil && !it.IsInconclusive()) {
				ret = it
			}
			if !ret.IsInconclusive() && ret.Condition == nil {
				break
			}
		}
	}
	return filterValue(ret, settings)
}

// GetInvalidValue returns the first value that is not a valid argument
// for parameter argnr of the function called at ftok, according to the
// configured library.
func (t *Token) GetInvalidValue(ftok *Token, argnr int, settings QuerySettings) *Value {
	if t.impl.values == nil || settings == nil {
		return nil
	}
	var ret *Value
	for i := range t.impl.values {
		it := &t.impl.values[i]
		if (it.IsIntValue() && !settings.IsIntArgValid(ftok, argnr, it.IntValue)) ||
			(it.IsFloatValue() && !settings.IsFloatArgValid(ftok, argnr, it.FloatValue)) {
			if ret == nil || ret.IsInconclusive() || (ret.Condition != nil && !it.IsInconclusive()) {
				ret = it
			}
			if !ret.IsInconclusive() && ret.Condition == nil {
				break
			}
		}
	}
	return filterValue(ret, settings)
}

// GetValueTokenMinStrSize returns, among token-alias values pointing
// at string literals, the literal with the smallest byte size.
func (t *Token) GetValueTokenMinStrSize() *Token {
	if t.impl.values == nil {
		return nil
	}
	var ret *Token
	minsize := math.MaxInt32
	for i := range t.impl.values {
		it := &t.impl.values[i]
		if it.IsTokValue() && it.TokValue != nil && it.TokValue.kind == KindString {
			size := GetStrSize(it.TokValue)
			if ret == nil || size < minsize {
				minsize = size
				ret = it.TokValue
			}
		}
	}
	return ret
}

// GetValueTokenMaxStrLength returns, among token-alias values pointing
// at string literals, the literal with the greatest character length.
func (t *Token) GetValueTokenMaxStrLength() *Token {
	if t.impl.values == nil {
		return nil
	}
	var ret *Token
	maxlength := 0
	for i := range t.impl.values {
		it := &t.impl.values[i]
		if it.IsTokValue() && it.TokValue != nil && it.TokValue.kind == KindString {
			length := GetStrLength(it.TokValue)
			if ret == nil || length > maxlength {
				maxlength = length
				ret = it.TokValue
			}
		}
	}
	return ret
}

func getFunctionScope(s *Scope) *Scope {
	for s != nil && s.Kind != ScopeFunction {
		s = s.NestedIn
	}
	return s
}

// GetValueTokenDeadPointer returns the address-of expression of a
// pointer alias whose pointee's scope is no longer reachable from this
// token's scope. Static and reference variables never qualify, nor do
// union members of an enclosing union, nor variables of a different
// function.
func (t *Token) GetValueTokenDeadPointer() *Token {
	functionScope := getFunctionScope(t.impl.scope)

	for i := range t.impl.values {
		it := &t.impl.values[i]
		// pointer alias?
		if !it.IsTokValue() || (it.TokValue != nil && it.TokValue.str != "&") {
			continue
		}
		vartok := it.TokValue.impl.astOperand1
		if vartok == nil || !vartok.IsName() || vartok.impl.variable == nil {
			continue
		}
		variable := vartok.impl.variable
		if variable.IsStatic() || variable.IsReference() {
			continue
		}
		if variable.Scope == nil {
			return nil
		}
		if variable.Scope.Kind == ScopeUnion && variable.Scope.NestedIn == t.impl.scope {
			continue
		}
		// must be in the same function, not a subfunction
		if functionScope != getFunctionScope(variable.Scope) {
			continue
		}
		// defined in this scope or an upper scope?
		s := t.impl.scope
		for s != nil && s != variable.Scope {
			s = s.NestedIn
		}
		if s == nil {
			return it.TokValue
		}
	}
	return nil
}
