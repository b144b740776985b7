package token

import (
	"fmt"

	"tlog.app/go/tlog/tlwire"
)

type (
	Kind int

	Token struct {
		Kind   Kind
		Lexeme string

		Line int
		Col  int
	}

	entry struct {
		Kind     Kind
		Desc     string
		Reserved bool
	}
)

const (
	// pseudo-terminals
	Ident Kind = iota
	Int
	String
	EOP
	Unknown

	// reserved words
	Main
	End
	Output
	Endl
	Or
	Nor
	Xor
	And
	Nand
	Invert
	Guard
	Truth
	Falsehood
	Ordain
	IntegerType
	Testament
	Invoke
	Mutable
	Decree
	Then
	Lest
	Otherwise
	Concluded
	Vigil
	Until
	Whilst
	Maintain
	Persist
	Unchecked

	// punctuation
	Comma
	Semicolon
	OBrace
	CBrace
	OParen
	CParen
	Colon
	LeftArrow

	// operators
	LT
	LTEq
	EQ
	GT
	GTEq
	NotEq
	Plus
	Minus
	Multiply
	Divide
	Modulus
	Power

	numKinds
)

// table is indexed by Kind.
// Int and IntegerType share the "INTEGER" spelling; only IntegerType is reserved.
var table = [numKinds]entry{
	{Ident, "IDENTIFIER", false},
	{Int, "INTEGER", false},
	{String, "STRING", false},
	{EOP, "EOPTOKEN", false},
	{Unknown, "UNKTOKEN", false},

	{Main, "MAIN", true},
	{End, "END", true},
	{Output, "OUTPUT", true},
	{Endl, "ENDL", true},
	{Or, "OR", true},
	{Nor, "NOR", true},
	{Xor, "XOR", true},
	{And, "AND", true},
	{Nand, "NAND", true},
	{Invert, "INVERT", true},
	{Guard, "GUARD", true},
	{Truth, "TRUTH", true},
	{Falsehood, "FALSEHOOD", true},
	{Ordain, "ORDAIN", true},
	{IntegerType, "INTEGER", true},
	{Testament, "TESTAMENT", true},
	{Invoke, "INVOKE", true},
	{Mutable, "MUTABLE", true},
	{Decree, "DECREE", true},
	{Then, "THEN", true},
	{Lest, "LEST", true},
	{Otherwise, "OTHERWISE", true},
	{Concluded, "CONCLUDED", true},
	{Vigil, "VIGIL", true},
	{Until, "UNTIL", true},
	{Whilst, "WHILST", true},
	{Maintain, "MAINTAIN", true},
	{Persist, "PERSIST", true},
	{Unchecked, "UNCHECKED", true},

	{Comma, "COMMA", false},
	{Semicolon, "SEMICOLON", false},
	{OBrace, "OBRACE", false},
	{CBrace, "CBRACE", false},
	{OParen, "OPARENTHESIS", false},
	{CParen, "CPARENTHESIS", false},
	{Colon, "COLON", false},
	{LeftArrow, "LEFTARROW", false},

	{LT, "LT", false},
	{LTEq, "LTEQ", false},
	{EQ, "EQ", false},
	{GT, "GT", false},
	{GTEq, "GTEQ", false},
	{NotEq, "NOTEQ", false},
	{Plus, "PLUS", false},
	{Minus, "MINUS", false},
	{Multiply, "MULTIPLY", false},
	{Divide, "DIVIDE", false},
	{Modulus, "MODULUS", false},
	{Power, "POWER", false},
}

var reserved = func() map[string]Kind {
	m := make(map[string]Kind)

	for _, e := range table {
		if !e.Reserved {
			continue
		}

		if _, ok := m[e.Desc]; ok {
			panic("duplicate reserved word: " + e.Desc)
		}

		m[e.Desc] = e.Kind
	}

	return m
}()

// Lookup maps an upper-cased spelling to its reserved word kind.
func Lookup(upper string) (Kind, bool) {
	k, ok := reserved[upper]
	return k, ok
}

// Describe returns the table spelling of k.
func Describe(k Kind) string {
	if k < 0 || k >= numKinds {
		return "???????"
	}

	return table[k].Desc
}

func (k Kind) String() string {
	return Describe(k)
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %d:%d", Describe(t.Kind), t.Lexeme, t.Line, t.Col)
}

func (t Token) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	b = e.AppendMap(b, 4)

	b = e.AppendKeyString(b, "kind", Describe(t.Kind))
	b = e.AppendKeyString(b, "lexeme", t.Lexeme)
	b = e.AppendKeyInt(b, "line", t.Line)
	b = e.AppendKeyInt(b, "col", t.Col)

	return b
}
