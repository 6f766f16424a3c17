package uscan

import (
	"fmt"
	"strconv"
)

// TokenKind represents the kind of token.
type TokenKind int

const (
	// Special
	EOF TokenKind = iota
	Unknown

	// Configured classes
	Symbol
	Keyword

	// Literals & identifiers
	Identifier
	StringLiteral
	NumberLiteral
	Comment

	// Layout
	Ignore // run of non-newline whitespace
	NewLine
)

var kindNames = [...]string{
	EOF:           "EOF",
	Unknown:       "Unknown",
	Symbol:        "Symbol",
	Keyword:       "Keyword",
	Identifier:    "Identifier",
	StringLiteral: "StringLiteral",
	NumberLiteral: "NumberLiteral",
	Comment:       "Comment",
	Ignore:        "Ignore",
	NewLine:       "NewLine",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
	return kindNames[k]
}

// NumberBase tags a NumberLiteral with the base its digits were written in.
type NumberBase int

const (
	Decimal NumberBase = iota
	Hexadecimal
	Binary
)

func (b NumberBase) String() string {
	switch b {
	case Decimal:
		return "decimal"
	case Hexadecimal:
		return "hex"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("NumberBase(%d)", int(b))
	}
}

// Token is a lexical token with its semantic payload. Positions and span
// lengths live in the parallel slices of ScannerData; Text holds the token's
// value, which is not always the matched source text (a StringLiteral's Text
// excludes the delimiting quotes).
type Token struct {
	Kind   TokenKind
	Text   string
	Number float64    // parsed value, NumberLiteral only
	Base   NumberBase // NumberLiteral only
}

// ValueLen returns the span length implied by the token's value alone:
// the value's character count, plus the two delimiting quotes for string
// literals, and zero for payload-less kinds.
func (t Token) ValueLen() int {
	switch t.Kind {
	case StringLiteral:
		return runeLen(t.Text) + 2
	case Symbol, Keyword, Identifier, NumberLiteral, Comment:
		return runeLen(t.Text)
	default:
		return 0
	}
}

func (t Token) String() string {
	switch t.Kind {
	case NumberLiteral:
		return fmt.Sprintf("NumberLiteral(%q, %s %s)", t.Text, trimFloat(t.Number), t.Base)
	case Symbol, Keyword, Identifier, StringLiteral, Comment, Unknown:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
