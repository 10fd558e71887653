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

// Package token holds the tokenized form of a translation unit: a doubly
// linked stream of tokens with intrusive bracket links, the pattern
// matcher that passes use to recognize idioms, and the value-flow facts
// that checkers query.
package token

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Kind classifies a token. It is derived from the lexeme and the
// attached variable/symbol references, and must be recomputed whenever
// the lexeme changes.
type Kind int

const (
	KindNone Kind = iota
	KindName
	KindKeyword
	KindVariable
	KindType
	KindFunction
	KindLambda
	KindNumber
	KindBoolean
	KindString
	KindChar
	KindArithmeticalOp
	KindBitOp
	KindLogicalOp
	KindComparisonOp
	KindAssignmentOp
	KindIncDecOp
	KindBracket
	KindExtendedOp
	KindOther
)

type tokenFlags uint32

const (
	flagControlFlowKeyword tokenFlags = 1 << iota
	flagStandardType
	flagExpandedMacro
	flagLong
	flagUnsigned
	flagSigned
	flagComplex
	flagLiteral
	flagEnumType
)

var literalPrefixes = []string{"u8", "u", "U", "L"}

var controlFlowKeywords = []string{
	"goto",
	"do",
	"if",
	"else",
	"for",
	"while",
	"switch",
	"case",
	"break",
	"continue",
	"return",
}

var stdTypes = map[string]struct{}{
	"bool":    {},
	"_Bool":   {},
	"char":    {},
	"double":  {},
	"float":   {},
	"int":     {},
	"long":    {},
	"short":   {},
	"size_t":  {},
	"void":    {},
	"wchar_t": {},
}

// TemplateSimplifierPointer is a back-reference held by the template
// simplifier. Token mutators keep its Token field pointing at the node
// that currently carries the payload.
type TemplateSimplifierPointer struct {
	Token *Token
}

// tokenImpl is the payload that travels with the lexeme when tokens are
// swapped or erased in place. External pointers into the list address
// Token nodes, never the payload.
type tokenImpl struct {
	fileIndex     int
	lineNumber    int
	column        int
	varID         int
	progressValue int
	index         int

	variable     *Variable
	function     *Function
	typ          *Type
	scope        *Scope
	valueType    *ExprType
	originalName string

	astOperand1 *Token
	astOperand2 *Token
	astParent   *Token

	templateSimplifierPointers []*TemplateSimplifierPointer

	// nil means no values; an empty list is never kept.
	values []Value
}

// Token is one lexical unit with attached analysis state. Tokens are
// owned by their List and addressed by stable pointers.
type Token struct {
	list  *List
	next  *Token
	prev  *Token
	link  *Token
	str   string
	kind  Kind
	flags tokenFlags
	impl  tokenImpl
}

func newToken(list *List) *Token {
	return &Token{list: list}
}

func (t *Token) Next() *Token     { return t.next }
func (t *Token) Previous() *Token { return t.prev }
func (t *Token) Link() *Token     { return t.link }
func (t *Token) Str() string      { return t.str }
func (t *Token) Kind() Kind       { return t.kind }

// SetLink establishes or clears this token's bracket partner pointer.
// Use CreateMutualLinks to set both directions.
func (t *Token) SetLink(link *Token) { t.link = link }

func (t *Token) VarID() int         { return t.impl.varID }
func (t *Token) FileIndex() int     { return t.impl.fileIndex }
func (t *Token) LineNumber() int    { return t.impl.lineNumber }
func (t *Token) Column() int        { return t.impl.column }
func (t *Token) ProgressValue() int { return t.impl.progressValue }
func (t *Token) Index() int         { return t.impl.index }

func (t *Token) SetFileIndex(i int)  { t.impl.fileIndex = i }
func (t *Token) SetLineNumber(n int) { t.impl.lineNumber = n }
func (t *Token) SetColumn(c int)     { t.impl.column = c }

func (t *Token) SetVarID(varID int) {
	t.impl.varID = varID
	if varID == 0 {
		t.updateProperties()
		return
	}
	t.setKind(KindVariable)
	t.setFlag(flagStandardType, false)
}

func (t *Token) OriginalName() string { return t.impl.originalName }
func (t *Token) SetOriginalName(name string) {
	t.impl.originalName = name
}

func (t *Token) Variable() *Variable  { return t.impl.variable }
func (t *Token) Scope() *Scope        { return t.impl.scope }
func (t *Token) ValueType() *ExprType { return t.impl.valueType }

func (t *Token) SetVariable(v *Variable) { t.impl.variable = v }
func (t *Token) SetScope(s *Scope)       { t.impl.scope = s }

func (t *Token) SetValueType(vt *ExprType) { t.impl.valueType = vt }

// SetFunction attaches a function back-reference and reclassifies the
// token as a function or lambda name.
func (t *Token) SetFunction(f *Function) {
	t.impl.function = f
	if f != nil {
		if f.IsLambda {
			t.setKind(KindLambda)
		} else {
			t.setKind(KindFunction)
		}
	} else if t.kind == KindFunction {
		t.setKind(KindName)
	}
}

func (t *Token) Function() *Function { return t.impl.function }

// SetType attaches a type back-reference and reclassifies the token.
func (t *Token) SetType(typ *Type) {
	t.impl.typ = typ
	if typ != nil {
		t.setKind(KindType)
		t.setFlag(flagEnumType, typ.IsEnumType)
	} else if t.kind == KindType {
		t.setKind(KindName)
	}
}

func (t *Token) Type() *Type { return t.impl.typ }

func (t *Token) AddTemplateSimplifierPointer(p *TemplateSimplifierPointer) {
	p.Token = t
	t.impl.templateSimplifierPointers = append(t.impl.templateSimplifierPointers, p)
}

func (t *Token) setKind(kind Kind) { t.kind = kind }

func (t *Token) setFlag(flag tokenFlags, state bool) {
	if state {
		t.flags |= flag
	} else {
		t.flags &^= flag
	}
}

func (t *Token) getFlag(flag tokenFlags) bool { return t.flags&flag != 0 }

func (t *Token) IsControlFlowKeyword() bool { return t.getFlag(flagControlFlowKeyword) }
func (t *Token) IsStandardType() bool       { return t.getFlag(flagStandardType) }
func (t *Token) IsExpandedMacro() bool      { return t.getFlag(flagExpandedMacro) }
func (t *Token) IsLong() bool               { return t.getFlag(flagLong) }
func (t *Token) IsUnsigned() bool           { return t.getFlag(flagUnsigned) }
func (t *Token) IsSigned() bool             { return t.getFlag(flagSigned) }
func (t *Token) IsComplex() bool            { return t.getFlag(flagComplex) }
func (t *Token) IsLiteral() bool            { return t.getFlag(flagLiteral) }
func (t *Token) IsEnumType() bool           { return t.getFlag(flagEnumType) }

func (t *Token) SetExpandedMacro(b bool) { t.setFlag(flagExpandedMacro, b) }
func (t *Token) SetLong(b bool)          { t.setFlag(flagLong, b) }
func (t *Token) SetUnsigned(b bool)      { t.setFlag(flagUnsigned, b) }
func (t *Token) SetSigned(b bool)        { t.setFlag(flagSigned, b) }
func (t *Token) SetComplex(b bool)       { t.setFlag(flagComplex, b) }

// IsName reports whether the token is a name-shaped token: an
// identifier, keyword, or a name already resolved to a variable, type
// or function.
func (t *Token) IsName() bool {
	switch t.kind {
	case KindName, KindKeyword, KindVariable, KindType, KindFunction:
		return true
	}
	return false
}

func (t *Token) IsNumber() bool  { return t.kind == KindNumber }
func (t *Token) IsBoolean() bool { return t.kind == KindBoolean }
func (t *Token) IsKeyword() bool { return t.kind == KindKeyword }

func (t *Token) IsArithmeticalOp() bool { return t.kind == KindArithmeticalOp }
func (t *Token) IsComparisonOp() bool   { return t.kind == KindComparisonOp }
func (t *Token) IsAssignmentOp() bool   { return t.kind == KindAssignmentOp }
func (t *Token) IsIncDecOp() bool       { return t.kind == KindIncDecOp }

// IsConstOp reports whether the token is an operator without side
// effects: assignment and increment/decrement do not qualify.
func (t *Token) IsConstOp() bool {
	switch t.kind {
	case KindArithmeticalOp, KindBitOp, KindLogicalOp, KindComparisonOp:
		return true
	}
	return false
}

// IsOp reports whether the token is any operator.
func (t *Token) IsOp() bool {
	return t.IsConstOp() || t.kind == KindAssignmentOp || t.kind == KindIncDecOp
}

// IsUpperCaseName reports whether the token is a name with no lowercase
// letters.
func (t *Token) IsUpperCaseName() bool {
	if !t.IsName() {
		return false
	}
	for _, c := range t.str {
		if c >= 'a' && c <= 'z' {
			return false
		}
	}
	return true
}

func isStringCharLiteral(str string, q byte) bool {
	if len(str) == 0 || str[len(str)-1] != q {
		return false
	}
	if str[0] == q && len(str) > 1 {
		return true
	}
	for _, p := range literalPrefixes {
		if len(str) >= len(p)+2 && str[:len(p)] == p && str[len(p)] == q {
			return true
		}
	}
	return false
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// SetStr replaces the lexeme and recomputes the classification. All
// other attributes are preserved.
func (t *Token) SetStr(s string) {
	t.str = s
	t.updateProperties()
}

func (t *Token) updateProperties() {
	t.setFlag(flagControlFlowKeyword, slices.Contains(controlFlowKeywords, t.str))

	if t.str == "" {
		t.setKind(KindNone)
	} else if t.str == "true" || t.str == "false" {
		t.setKind(KindBoolean)
	} else if isStringCharLiteral(t.str, '"') {
		t.setKind(KindString)
	} else if isStringCharLiteral(t.str, '\'') {
		t.setKind(KindChar)
	} else if isAlpha(t.str[0]) || t.str[0] == '_' || t.str[0] == '$' {
		if t.impl.varID != 0 {
			t.setKind(KindVariable)
		} else if t.kind != KindVariable && t.kind != KindFunction && t.kind != KindType && t.kind != KindKeyword {
			t.setKind(KindName)
		}
	} else if isDigit(t.str[0]) || (len(t.str) > 1 && t.str[0] == '-' && isDigit(t.str[1])) {
		t.setKind(KindNumber)
	} else if t.str == "=" || t.str == "<<=" || t.str == ">>=" ||
		(len(t.str) == 2 && t.str[1] == '=' && strings.ContainsRune("+-*/%&^|", rune(t.str[0]))) {
		t.setKind(KindAssignmentOp)
	} else if len(t.str) == 1 && strings.ContainsRune(",[]()?:", rune(t.str[0])) {
		t.setKind(KindExtendedOp)
	} else if t.str == "<<" || t.str == ">>" ||
		(len(t.str) == 1 && strings.ContainsRune("+-*/%", rune(t.str[0]))) {
		t.setKind(KindArithmeticalOp)
	} else if len(t.str) == 1 && strings.ContainsRune("&|^~", rune(t.str[0])) {
		t.setKind(KindBitOp)
	} else if t.str == "&&" || t.str == "||" || t.str == "!" {
		t.setKind(KindLogicalOp)
	} else if t.link == nil &&
		(t.str == "==" || t.str == "!=" || t.str == "<" || t.str == "<=" || t.str == ">" || t.str == ">=") {
		t.setKind(KindComparisonOp)
	} else if t.str == "++" || t.str == "--" {
		t.setKind(KindIncDecOp)
	} else if len(t.str) == 1 && (t.str[0] == '{' || t.str[0] == '}' ||
		(t.link != nil && (t.str[0] == '<' || t.str[0] == '>'))) {
		t.setKind(KindBracket)
	} else {
		t.setKind(KindOther)
	}

	t.updateCharStringLiteral()
	t.updateStandardType()
	switch t.kind {
	case KindNumber, KindBoolean, KindString, KindChar:
		t.setFlag(flagLiteral, true)
	}
}

func (t *Token) updateStandardType() {
	t.setFlag(flagStandardType, false)
	if len(t.str) < 3 {
		return
	}
	if _, ok := stdTypes[t.str]; ok {
		t.setFlag(flagStandardType, true)
		t.setKind(KindType)
	}
}

// Literal prefixes are stripped from the stored lexeme; only a plain
// u8 prefix leaves the "long" flag cleared.
func (t *Token) updateCharStringLiteral() {
	if t.kind != KindString && t.kind != KindChar {
		return
	}
	q := byte('"')
	if t.kind == KindChar {
		q = '\''
	}
	for _, p := range literalPrefixes {
		if len(t.str) > len(p) && t.str[:len(p)] == p && t.str[len(p)] == q {
			t.str = t.str[len(p):]
			t.setFlag(flagLong, p != "u8")
			break
		}
	}
}

// ConcatStr fuses the lexeme of an adjacent string literal into this
// one: the trailing quote here and the leading quote of b are dropped.
func (t *Token) ConcatStr(b string) {
	t.str = t.str[:len(t.str)-1] + b[1:]
	t.updateProperties()
}

// StrValue decodes a string literal into its contents. Each backslash
// escape produces one character; \n, \r and \t decode to their control
// characters, and an embedded \0 truncates the result.
func (t *Token) StrValue() string {
	s := t.str[1 : len(t.str)-1]
	var ret []byte
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			ret = append(ret, s[i])
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		c := s[i]
		switch c {
		case 'n':
			c = '\n'
		case 'r':
			c = '\r'
		case 't':
			c = '\t'
		}
		if c == '0' {
			return string(ret)
		}
		ret = append(ret, c)
	}
	return string(ret)
}

// GetStrLength returns the number of characters in a string literal,
// treating each escape as one character and stopping at an embedded
// \0. The terminator is not counted.
func GetStrLength(tok *Token) int {
	length := 0
	s := tok.str[1 : len(tok.str)-1]
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			if i < len(s) && s[i] == '0' {
				return length
			}
		}
		if i < len(s) && s[i] == 0 {
			return length
		}
		length++
	}
	return length
}

// GetStrSize returns the size in bytes of a string literal including
// the terminator; each escape counts as one byte.
func GetStrSize(tok *Token) int {
	size := 1
	s := tok.str
	for i := 1; i < len(s)-1; i++ {
		if s[i] == '\\' {
			i++
		}
		size++
	}
	return size
}

// GetCharAt returns the index-th character of a string literal,
// rendering escapes as their two-character source form. Past the end
// of the literal it returns "\\0".
func GetCharAt(tok *Token, index int64) string {
	s := tok.str[1 : len(tok.str)-1]
	for i := 0; i < len(s); i++ {
		if index == 0 {
			if s[i] == 0 {
				return "\\0"
			}
			if s[i] == '\\' && i+1 < len(s) {
				return s[i : i+2]
			}
			return s[i : i+1]
		}
		if s[i] == '\\' {
			i++
		}
		index--
	}
	return "\\0"
}

// DeleteNext removes up to count tokens after this one. Bracket
// partners pointing into the removed range are unlinked first.
func (t *Token) DeleteNext(count int) {
	for t.next != nil && count > 0 {
		n := t.next
		if n.link != nil && n.link.link == n {
			n.link.link = nil
		}
		t.next = n.next
		count--
	}
	if t.next != nil {
		t.next.prev = t
	} else if t.list != nil {
		t.list.back = t
	}
}

// DeletePrevious removes up to count tokens before this one.
func (t *Token) DeletePrevious(count int) {
	for t.prev != nil && count > 0 {
		p := t.prev
		if p.link != nil && p.link.link == p {
			p.link.link = nil
		}
		t.prev = p.prev
		count--
	}
	if t.prev != nil {
		t.prev.next = t
	} else if t.list != nil {
		t.list.front = t
	}
}

// takeData moves the payload of from into this token, keeping external
// pointers to this token valid.
func (t *Token) takeData(from *Token) {
	t.str = from.str
	t.kind = from.kind
	t.flags = from.flags
	t.impl = from.impl
	from.impl = tokenImpl{}
	for _, p := range t.impl.templateSimplifierPointers {
		p.Token = t
	}
	t.link = from.link
	if t.link != nil {
		t.link.link = t
	}
}

// DeleteThis erases the token while keeping its address valid: the
// payload of a neighbor is copied into this node and the neighbor is
// freed. A token with no successor takes its predecessor's payload
// instead; when that predecessor is the first token of the list, or
// there is none, the token is not freed but degenerates into an
// empty-lexeme sentinel.
func (t *Token) DeleteThis() {
	if t.next != nil {
		t.takeData(t.next)
		t.next.link = nil
		t.DeleteNext(1)
	} else if t.prev != nil && t.prev.prev != nil {
		t.takeData(t.prev)

		toDelete := t.prev
		t.prev = t.prev.prev
		t.prev.next = t

		toDelete.next = nil
		toDelete.prev = nil
	} else {
		t.SetStr("")
	}
}

// SwapWithNext exchanges payloads with the following token, rewiring
// bracket partners and template back-references.
func (t *Token) SwapWithNext() {
	n := t.next
	if n == nil {
		return
	}
	t.str, n.str = n.str, t.str
	t.kind, n.kind = n.kind, t.kind
	t.flags, n.flags = n.flags, t.flags
	t.impl, n.impl = n.impl, t.impl
	for _, p := range t.impl.templateSimplifierPointers {
		p.Token = t
	}
	for _, p := range n.impl.templateSimplifierPointers {
		p.Token = n
	}
	if n.link != nil {
		n.link.link = t
	}
	if t.link != nil {
		t.link.link = n
	}
	t.link, n.link = n.link, t.link
}

// Replace splices the range [start, end] into the position of
// replaceThis, which is removed from the list. Bracket links inside
// the range are untouched.
func Replace(replaceThis, start, end *Token) {
	if start.prev != nil {
		start.prev.next = end.next
	}
	if end.next != nil {
		end.next.prev = start.prev
	}

	if replaceThis.prev != nil {
		replaceThis.prev.next = start
	}
	if replaceThis.next != nil {
		replaceThis.next.prev = end
	}

	start.prev = replaceThis.prev
	end.next = replaceThis.next

	if end.list != nil && end.list.back == end {
		for end.next != nil {
			end = end.next
		}
		end.list.back = end
	}

	for tok := start; tok != end.next; tok = tok.next {
		tok.impl.progressValue = replaceThis.impl.progressValue
	}
}

// Move splices the contiguous range [srcStart, srcEnd] to the position
// after newLocation. The moved tokens take the destination's progress
// value.
func Move(srcStart, srcEnd, newLocation *Token) {
	srcStart.prev.next = srcEnd.next
	srcEnd.next.prev = srcStart.prev

	srcEnd.next = newLocation.next
	srcStart.prev = newLocation

	newLocation.next.prev = srcEnd
	newLocation.next = srcStart

	for tok := srcStart; tok != srcEnd.next; tok = tok.next {
		tok.impl.progressValue = newLocation.impl.progressValue
	}
}

// TokAt returns the token at the given signed offset, or nil when the
// list ends first.
func (t *Token) TokAt(index int) *Token {
	tok := t
	for index > 0 && tok != nil {
		tok = tok.next
		index--
	}
	for index < 0 && tok != nil {
		tok = tok.prev
		index++
	}
	return tok
}

// LinkAt returns the bracket partner of the token at the given offset.
// An offset outside the list is an internal error.
func (t *Token) LinkAt(index int) *Token {
	tok := t.TokAt(index)
	if tok == nil {
		panic(&InternalError{Tok: t, Msg: "Token::linkAt called with index outside the tokens range."})
	}
	return tok.link
}

// StrAt returns the lexeme at the given offset, or the empty string
// when the list ends first.
func (t *Token) StrAt(index int) string {
	tok := t.TokAt(index)
	if tok == nil {
		return ""
	}
	return tok.str
}

// InsertToken inserts a new token next to this one, inheriting file,
// line and progress from it. When this token is the erased sentinel
// the string replaces it in place.
func (t *Token) InsertToken(tokenStr, originalNameStr string, prepend bool) {
	var tok *Token
	if t.str == "" {
		tok = t
	} else {
		tok = newToken(t.list)
	}
	tok.SetStr(tokenStr)
	if originalNameStr != "" {
		tok.SetOriginalName(originalNameStr)
	}

	if tok == t {
		return
	}
	tok.impl.lineNumber = t.impl.lineNumber
	tok.impl.fileIndex = t.impl.fileIndex
	tok.impl.progressValue = t.impl.progressValue

	if prepend {
		if t.prev != nil {
			tok.prev = t.prev
			tok.prev.next = tok
		} else if t.list != nil {
			t.list.front = tok
		}
		t.prev = tok
		tok.next = t
	} else {
		if t.next != nil {
			tok.next = t.next
			tok.next.prev = tok
		} else if t.list != nil {
			t.list.back = tok
		}
		t.next = tok
		tok.prev = t
	}
}

// EraseTokens deletes all tokens strictly between begin and end.
func EraseTokens(begin, end *Token) {
	if begin == nil || begin == end {
		return
	}
	for begin.next != nil && begin.next != end {
		begin.DeleteNext(1)
	}
}

// CreateMutualLinks pairs two bracket tokens.
func CreateMutualLinks(begin, end *Token) {
	begin.link = end
	end.link = begin
}

// AssignProgressValues stamps every token from tok onward with its
// percentile position in the remaining list.
func AssignProgressValues(tok *Token) {
	totalCount := 0
	for tok2 := tok; tok2 != nil; tok2 = tok2.next {
		totalCount++
	}
	if totalCount == 0 {
		return
	}
	count := 0
	for tok2 := tok; tok2 != nil; tok2 = tok2.next {
		tok2.impl.progressValue = count * 100 / totalCount
		count++
	}
}

// AssignIndexes numbers this token and its successors with gap-free
// ordinals continuing from the predecessor.
func (t *Token) AssignIndexes() {
	index := 1
	if t.prev != nil {
		index = t.prev.impl.index + 1
	}
	for tok := t; tok != nil; tok = tok.next {
		tok.impl.index = index
		index++
	}
}
