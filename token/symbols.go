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

// The symbol database proper is built by a separate pass. The types
// below carry only the fields the token stream and its queries touch;
// tokens borrow them and never own them. The symbol database must
// outlive the token list that references it.

// ScopeKind identifies the construct a scope belongs to.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeClass
	ScopeStruct
	ScopeUnion
	ScopeIf
	ScopeElse
	ScopeFor
	ScopeWhile
	ScopeSwitch
	ScopeLambda
)

// Scope is one lexical scope. NestedIn links toward the global scope.
type Scope struct {
	Kind     ScopeKind
	NestedIn *Scope
	Function *Function
}

// Variable describes a declared variable.
type Variable struct {
	Static    bool
	Reference bool
	Scope     *Scope
	Type      *Type

	TypeStartToken *Token
	TypeEndToken   *Token
}

func (v *Variable) IsStatic() bool    { return v.Static }
func (v *Variable) IsReference() bool { return v.Reference }

// Function describes a declared function or lambda.
type Function struct {
	IsLambda bool
	RetType  *Type

	RetDef       *Token
	ReturnDefEnd *Token
}

// Type describes a class, struct, enum or typedef entity.
type Type struct {
	IsEnumType bool
	ClassDef   *Token
}

// Sign is the signedness recorded on an expression type.
type Sign int

const (
	SignUnknown Sign = iota
	SignSigned
	SignUnsigned
)

// ExprType is the computed type of an expression token.
type ExprType struct {
	Sign Sign
	Name string
}

// String renders the type the way the verbose AST dump shows it.
func (vt *ExprType) String() string { return vt.Name }
