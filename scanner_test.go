package uscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The Lua profile, the configuration the scanner was originally built
// against. Kept local so the core tests stay free of other packages.
var luaConfig = &Config{
	Keywords: []string{
		"and", "break", "do", "else", "elseif", "end", "false", "for",
		"function", "if", "in", "local", "nil", "not", "or", "repeat",
		"return", "then", "true", "until", "while",
	},
	Symbols: []string{
		"...", "..", "==", "~=", "<=", ">=", "+", "-", "*", "/", "%",
		"^", "#", "<", ">", "=", "(", ")", "{", "}", "[", "]", ";",
		":", ",", ".",
	},
	SingleLineComment:     "--",
	MultiLineCommentStart: "--[[",
	MultiLineCommentEnd:   "]]",
}

func scanAll(t *testing.T, src string, cfg *Config) *ScannerData {
	t.Helper()
	var data ScannerData
	require.NoError(t, Scan(src, cfg, &data), "source: %q", src)
	return &data
}

// semantic drops layout tokens (Ignore, NewLine) and the trailing EOF.
func semantic(d *ScannerData) []Token {
	var out []Token
	for _, tok := range d.Tokens {
		switch tok.Kind {
		case Ignore, NewLine, EOF:
		default:
			out = append(out, tok)
		}
	}
	return out
}

func kinds(d *ScannerData) []TokenKind {
	out := make([]TokenKind, 0, len(d.Tokens))
	for _, tok := range d.Tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func Test_Scan_LuaFunction(t *testing.T) {
	src := "function test(p1,p2)\n    return p1+p2\nend\n"
	data := scanAll(t, src, luaConfig)

	want := []Token{
		{Kind: Keyword, Text: "function"},
		{Kind: Identifier, Text: "test"},
		{Kind: Symbol, Text: "("},
		{Kind: Identifier, Text: "p1"},
		{Kind: Symbol, Text: ","},
		{Kind: Identifier, Text: "p2"},
		{Kind: Symbol, Text: ")"},
		{Kind: Keyword, Text: "return"},
		{Kind: Identifier, Text: "p1"},
		{Kind: Symbol, Text: "+"},
		{Kind: Identifier, Text: "p2"},
		{Kind: Keyword, Text: "end"},
	}
	assert.Equal(t, want, semantic(data))

	// Span lengths of the semantic tokens, in source order.
	wantLens := []int{8, 4, 1, 2, 1, 2, 1, 6, 2, 1, 2, 3}
	var gotLens []int
	for i, tok := range data.Tokens {
		switch tok.Kind {
		case Ignore, NewLine, EOF:
		default:
			gotLens = append(gotLens, data.Lens[i])
		}
	}
	assert.Equal(t, wantLens, gotLens)
}

func Test_Scan_LayoutTokens(t *testing.T) {
	data := scanAll(t, "a b\nc", luaConfig)
	assert.Equal(t, []TokenKind{Identifier, Ignore, Identifier, NewLine, Identifier, EOF}, kinds(data))
	assert.Equal(t, []int{1, 1, 1, 1, 2, 2}, data.Lines)
	assert.Equal(t, []int{0, 1, 2, 3, 0, 1}, data.Cols)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 0}, data.Lens)
}

func Test_Scan_WhitespaceRunIsOneToken(t *testing.T) {
	data := scanAll(t, "a \t\r b", luaConfig)
	assert.Equal(t, []TokenKind{Identifier, Ignore, Identifier, EOF}, kinds(data))
	assert.Equal(t, 4, data.Lens[1])
}

func Test_Scan_EmptySource(t *testing.T) {
	data := scanAll(t, "", luaConfig)
	require.Equal(t, 1, data.Len())
	assert.Equal(t, EOF, data.Tokens[0].Kind)
	assert.Equal(t, 1, data.Lines[0])
	assert.Equal(t, 0, data.Cols[0])
	assert.Equal(t, 0, data.Lens[0])
}

func Test_Scan_TerminalUniqueness(t *testing.T) {
	for _, src := range []string{"", "x", "local s = 1 + 2\n", "-- only a comment"} {
		data := scanAll(t, src, luaConfig)
		count := 0
		for _, tok := range data.Tokens {
			if tok.Kind == EOF {
				count++
			}
		}
		assert.Equal(t, 1, count, "source: %q", src)
		assert.Equal(t, EOF, data.Tokens[data.Len()-1].Kind, "source: %q", src)
		assert.Equal(t, 0, data.Lens[data.Len()-1], "source: %q", src)
	}
}

func Test_Scan_CoverageReconstruction(t *testing.T) {
	sources := []string{
		"function test(p1,p2)\n    return p1+p2\nend\n",
		`local s="à" -- comment`,
		"a = \"multi\nline\" .. b",
		"--[[ outer --[[ inner ]] still outer ]]x",
		"x @ $ y",
		"15 0xFF 0b1111 3.14",
		"",
	}
	for _, src := range sources {
		data := scanAll(t, src, luaConfig)
		rebuilt := ""
		for i := range data.Tokens {
			rebuilt += data.SourceSlice(i)
		}
		assert.Equal(t, src, rebuilt, "source: %q", src)
	}
}

func Test_Scan_SymbolLongestMatch(t *testing.T) {
	cfg := &Config{Symbols: []string{"=", "=="}}
	data := scanAll(t, "==", cfg)
	assert.Equal(t, []Token{{Kind: Symbol, Text: "=="}}, semantic(data))

	// Lua's dotted family, sharing prefixes three levels deep.
	data = scanAll(t, "... .. .", luaConfig)
	assert.Equal(t, []Token{
		{Kind: Symbol, Text: "..."},
		{Kind: Symbol, Text: ".."},
		{Kind: Symbol, Text: "."},
	}, semantic(data))
}

func Test_Scan_KeywordPrecedence(t *testing.T) {
	cfg := &Config{Keywords: []string{"if"}}
	data := scanAll(t, "if", cfg)
	assert.Equal(t, []Token{{Kind: Keyword, Text: "if"}}, semantic(data))

	data = scanAll(t, "ifx", cfg)
	assert.Equal(t, []Token{{Kind: Identifier, Text: "ifx"}}, semantic(data))
}

func Test_Scan_NumberBases(t *testing.T) {
	tests := []struct {
		src   string
		value float64
		base  NumberBase
	}{
		{"15", 15, Decimal},
		{"0xFF", 255, Hexadecimal},
		{"0Xff", 255, Hexadecimal},
		{"0b1111", 15, Binary},
		{"0B10", 2, Binary},
		{"3.14", 3.14, Decimal},
		{"0", 0, Decimal},
	}
	for _, tc := range tests {
		data := scanAll(t, tc.src, luaConfig)
		toks := semantic(data)
		require.Len(t, toks, 1, "source: %q", tc.src)
		assert.Equal(t, NumberLiteral, toks[0].Kind, "source: %q", tc.src)
		assert.Equal(t, tc.src, toks[0].Text, "source: %q", tc.src)
		assert.Equal(t, tc.value, toks[0].Number, "source: %q", tc.src)
		assert.Equal(t, tc.base, toks[0].Base, "source: %q", tc.src)
	}
}

func Test_Scan_NumberEndsAtDigitAlphabet(t *testing.T) {
	// 0b stops at '2', 0x stops at 'g'.
	data := scanAll(t, "0b102", luaConfig)
	toks := semantic(data)
	require.Len(t, toks, 2)
	assert.Equal(t, Token{Kind: NumberLiteral, Text: "0b10", Number: 2, Base: Binary}, toks[0])
	assert.Equal(t, Token{Kind: NumberLiteral, Text: "2", Number: 2, Base: Decimal}, toks[1])

	// A dot not followed by a digit is not part of the literal.
	data = scanAll(t, "1..2", luaConfig)
	assert.Equal(t, []Token{
		{Kind: NumberLiteral, Text: "1", Number: 1, Base: Decimal},
		{Kind: Symbol, Text: ".."},
		{Kind: NumberLiteral, Text: "2", Number: 2, Base: Decimal},
	}, semantic(data))
}

func Test_Scan_InvalidNumber(t *testing.T) {
	for _, src := range []string{"0x", "0b", "0xg", "0b2x"} {
		var data ScannerData
		err := Scan(src, luaConfig, &data)
		require.Error(t, err, "source: %q", src)
		var se *ScanError
		require.ErrorAs(t, err, &se, "source: %q", src)
		assert.Equal(t, InvalidNumber, se.Kind, "source: %q", src)
		assert.Equal(t, 1, se.Line, "source: %q", src)
		assert.Equal(t, 0, se.Col, "source: %q", src)
	}
}

func Test_Scan_Strings(t *testing.T) {
	data := scanAll(t, `local s="à" -- comment`, luaConfig)
	assert.Equal(t, []Token{
		{Kind: Keyword, Text: "local"},
		{Kind: Identifier, Text: "s"},
		{Kind: Symbol, Text: "="},
		{Kind: StringLiteral, Text: "à"},
		{Kind: Comment, Text: "-- comment"},
	}, semantic(data))

	// Span includes the quotes, value does not.
	assert.Equal(t, []int{5, 1, 1, 1, 3, 1, 10, 0}, data.Lens)
}

func Test_Scan_StringEscapes(t *testing.T) {
	data := scanAll(t, `"a\"b\n\t\\c\q"`, luaConfig)
	toks := semantic(data)
	require.Len(t, toks, 1)
	assert.Equal(t, StringLiteral, toks[0].Kind)
	assert.Equal(t, "a\"b\n\t\\cq", toks[0].Text)
}

func Test_Scan_MultiLineString(t *testing.T) {
	data := scanAll(t, "\"a\nb\" x", luaConfig)
	assert.Equal(t, []Token{
		{Kind: StringLiteral, Text: "a\nb"},
		{Kind: Identifier, Text: "x"},
	}, semantic(data))
	// The identifier sits on line 2, after the closing quote.
	last := data.Len() - 2
	assert.Equal(t, 2, data.Lines[last])
	assert.Equal(t, 3, data.Cols[last])
}

func Test_Scan_UnterminatedString(t *testing.T) {
	var data ScannerData
	err := Scan(`x = "abc`, luaConfig, &data)
	var se *ScanError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, UnterminatedString, se.Kind)
	assert.Equal(t, 1, se.Line)
	assert.Equal(t, 4, se.Col) // the opening quote

	err = Scan("\n\n\"abc", luaConfig, &data)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, UnterminatedString, se.Kind)
	assert.Equal(t, 3, se.Line)
	assert.Equal(t, 0, se.Col)
}

func Test_Scan_SingleLineComment(t *testing.T) {
	data := scanAll(t, "-- hi\nx", luaConfig)
	assert.Equal(t, []TokenKind{Comment, NewLine, Identifier, EOF}, kinds(data))
	// The newline is not part of the comment's span.
	assert.Equal(t, "-- hi", data.Tokens[0].Text)
	assert.Equal(t, 5, data.Lens[0])
}

func Test_Scan_NestedComments(t *testing.T) {
	src := "--[[ outer --[[ inner ]] still outer ]]x"
	data := scanAll(t, src, luaConfig)
	assert.Equal(t, []Token{
		{Kind: Comment, Text: src[:len(src)-1]},
		{Kind: Identifier, Text: "x"},
	}, semantic(data))
	assert.Equal(t, len(src)-1, data.Lens[0])
}

func Test_Scan_BlockCommentSpan(t *testing.T) {
	data := scanAll(t, `local s="" --[[comment]]`, luaConfig)
	assert.Equal(t, []Token{
		{Kind: Keyword, Text: "local"},
		{Kind: Identifier, Text: "s"},
		{Kind: Symbol, Text: "="},
		{Kind: StringLiteral, Text: ""},
		{Kind: Comment, Text: "--[[comment]]"},
	}, semantic(data))
	assert.Equal(t, []int{5, 1, 1, 1, 2, 1, 13, 0}, data.Lens)
}

func Test_Scan_UnterminatedComment(t *testing.T) {
	var data ScannerData
	err := Scan("x\n--[[ never closed\nmore", luaConfig, &data)
	var se *ScanError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, UnterminatedComment, se.Kind)
	assert.Equal(t, 2, se.Line) // the opening marker
	assert.Equal(t, 0, se.Col)

	// Nesting depth never returning to zero is also unterminated.
	err = Scan("--[[ a --[[ b ]]", luaConfig, &data)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, UnterminatedComment, se.Kind)
	assert.Equal(t, 1, se.Line)
	assert.Equal(t, 0, se.Col)
}

func Test_Scan_UnknownIsNotFatal(t *testing.T) {
	data := scanAll(t, "x @ $\ny", luaConfig)
	assert.Equal(t, []Token{
		{Kind: Identifier, Text: "x"},
		{Kind: Unknown, Text: "@"},
		{Kind: Unknown, Text: "$"},
		{Kind: Identifier, Text: "y"},
	}, semantic(data))
	for i, tok := range data.Tokens {
		if tok.Kind == Unknown {
			assert.Equal(t, 1, data.Lens[i])
		}
	}
}

func Test_Scan_Idempotence(t *testing.T) {
	src := "function test(p1,p2)\n    return p1+p2 --[[inline]]\nend\n"
	var first, second ScannerData
	require.NoError(t, Scan(src, luaConfig, &first))
	require.NoError(t, Scan(src, luaConfig, &second))
	assert.Equal(t, first, second)
}

func Test_Scan_ZeroConfig(t *testing.T) {
	// No keywords, no symbols, no comments: words, numbers and strings
	// still scan; everything else is Unknown.
	data := scanAll(t, `abc 12 "s" +`, &Config{})
	assert.Equal(t, []Token{
		{Kind: Identifier, Text: "abc"},
		{Kind: NumberLiteral, Text: "12", Number: 12, Base: Decimal},
		{Kind: StringLiteral, Text: "s"},
		{Kind: Unknown, Text: "+"},
	}, semantic(data))
}

func Test_Scanner_Reuse(t *testing.T) {
	var s Scanner
	var first ScannerData
	require.NoError(t, s.Run("a + b", luaConfig, &first))
	var second ScannerData
	require.NoError(t, s.Run("x", luaConfig, &second))
	assert.Equal(t, []Token{{Kind: Identifier, Text: "x"}}, semantic(&second))
	assert.Equal(t, []int{1}, second.Lines[:1])
}

func Test_Token_ValueLen(t *testing.T) {
	assert.Equal(t, 8, Token{Kind: Keyword, Text: "function"}.ValueLen())
	assert.Equal(t, 3, Token{Kind: StringLiteral, Text: "à"}.ValueLen())
	assert.Equal(t, 2, Token{Kind: Symbol, Text: ".."}.ValueLen())
	assert.Equal(t, 0, Token{Kind: NewLine}.ValueLen())
	assert.Equal(t, 0, Token{Kind: EOF}.ValueLen())
}
