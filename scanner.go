// Package uscan is a generic lexical scanner: given source text and a
// declarative Config (keywords, symbols, comment delimiters), it produces a
// flat, position-annotated token stream for a downstream parser. Varying the
// Config retargets the scanner to another language without touching the
// scanning code.
package uscan

// Version is reported by the CLI.
const Version = "0.4.0"

// ScannerData is the output of one scan: the decoded source plus four
// parallel slices all indexed by token order. Index i fully describes token
// i. The final entry is always exactly one EOF token of length zero.
type ScannerData struct {
	// Source is the complete scanned source.
	Source []rune
	// Tokens holds each token's kind and payload.
	Tokens []Token
	// Lines holds each token's 1-based start line.
	Lines []int
	// Cols holds each token's 0-based start column within its line,
	// counted in characters.
	Cols []int
	// Lens holds each token's span length in characters. Not always equal
	// to the value's length: a StringLiteral's span includes the quotes
	// its Text excludes.
	Lens []int
}

// Len returns the number of tokens.
func (d *ScannerData) Len() int { return len(d.Tokens) }

func (d *ScannerData) add(tok Token, line, col, length int) {
	d.Tokens = append(d.Tokens, tok)
	d.Lines = append(d.Lines, line)
	d.Cols = append(d.Cols, col)
	d.Lens = append(d.Lens, length)
}

// lineOffsets returns the offset of the first character of every line.
func (d *ScannerData) lineOffsets() []int {
	offsets := []int{0}
	for i, r := range d.Source {
		if r == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// SourceSlice returns the literal source text spanned by token i, addressed
// through its (line, column, length) triple. Concatenating the slices of all
// tokens of a successful scan reconstructs the source exactly.
func (d *ScannerData) SourceSlice(i int) string {
	offsets := d.lineOffsets()
	line := d.Lines[i]
	if line < 1 || line > len(offsets) {
		return ""
	}
	start := offsets[line-1] + d.Cols[i]
	end := start + d.Lens[i]
	if start > len(d.Source) {
		start = len(d.Source)
	}
	if end > len(d.Source) {
		end = len(d.Source)
	}
	return string(d.Source[start:end])
}

// Scanner holds the cursor state of one pass. The zero value is ready to
// use; Run resets it, so one Scanner may be reused for sequential scans.
type Scanner struct {
	src []rune

	start int // start offset of current token
	cur   int // current offset
	line  int // 1-based
	col   int // 0-based column within line, in characters

	startLine int
	startCol  int
}

// Scan tokenizes source under cfg into data using a fresh Scanner. data
// should start out empty; after an error it holds whatever was accumulated
// before the failure and must be treated as unusable.
func Scan(source string, cfg *Config, data *ScannerData) error {
	var s Scanner
	return s.Run(source, cfg, data)
}

// Run performs one scan over source, appending every token to data. The pass
// either completes with a trailing zero-length EOF token or stops at the
// first unterminated-construct or invalid-literal failure, returned as a
// *ScanError carrying the construct's start position.
func (s *Scanner) Run(source string, cfg *Config, data *ScannerData) error {
	data.Source = []rune(source)
	s.src = data.Source
	s.start, s.cur = 0, 0
	s.line, s.col = 1, 0

	for {
		s.markStart()
		tok, err := s.scanToken(cfg)
		if err != nil {
			return err
		}
		data.add(tok, s.startLine, s.startCol, s.cur-s.start)
		if tok.Kind == EOF {
			return nil
		}
	}
}

// ----- cursor primitives -----

func (s *Scanner) atEnd() bool { return s.cur >= len(s.src) }

// peek returns the character at cursor+offset without consuming anything.
func (s *Scanner) peek(offset int) (rune, bool) {
	idx := s.cur + offset
	if idx >= len(s.src) {
		return 0, false
	}
	return s.src[idx], true
}

// advance consumes one character, keeping line/column bookkeeping: a newline
// bumps the line and resets the column to 0.
func (s *Scanner) advance() (rune, bool) {
	if s.atEnd() {
		return 0, false
	}
	r := s.src[s.cur]
	s.cur++
	if r == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	return r, true
}

func (s *Scanner) markStart() {
	s.start = s.cur
	s.startLine = s.line
	s.startCol = s.col
}

// matches reports whether the remaining input starts with str. Side-effect
// free: nothing is consumed on either outcome.
func (s *Scanner) matches(str string) bool {
	i := s.cur
	for _, r := range str {
		if i >= len(s.src) || s.src[i] != r {
			return false
		}
		i++
	}
	return true
}

// consumeRun consumes str, which the caller has already probed with matches.
func (s *Scanner) consumeRun(str string) {
	for range str {
		s.advance()
	}
}

// text returns the source slice of the token being scanned.
func (s *Scanner) text() string {
	return string(s.src[s.start:s.cur])
}

// ----- dispatch -----

// scanToken classifies the next character and hands off to exactly one
// sub-scanner. Block comments are probed before line comments so profiles
// whose line prefix is also the block opener's prefix (Lua "--" vs "--[[")
// resolve to the block form.
func (s *Scanner) scanToken(cfg *Config) (Token, error) {
	if s.atEnd() {
		return Token{Kind: EOF}, nil
	}
	ch, _ := s.peek(0)

	if ch == '\n' {
		s.advance()
		return Token{Kind: NewLine}, nil
	}
	if isSpace(ch) {
		return s.scanSpace(), nil
	}
	if cfg.MultiLineCommentStart != "" && cfg.MultiLineCommentEnd != "" && s.matches(cfg.MultiLineCommentStart) {
		return s.scanMultiLineComment(cfg)
	}
	if cfg.SingleLineComment != "" && s.matches(cfg.SingleLineComment) {
		return s.scanSingleLineComment(), nil
	}
	if ch == '"' {
		return s.scanString()
	}
	if isDigit(ch) {
		return s.scanNumber()
	}
	if isAlpha(ch) {
		return s.scanWord(cfg), nil
	}
	if tok, ok := s.scanSymbol(cfg); ok {
		return tok, nil
	}

	s.advance()
	return Token{Kind: Unknown, Text: string(ch)}, nil
}

// ----- sub-scanners -----

// scanSpace consumes one run of non-newline whitespace as a single Ignore
// token, preserving layout for tools that need it.
func (s *Scanner) scanSpace() Token {
	for {
		ch, ok := s.peek(0)
		if !ok || !isSpace(ch) {
			break
		}
		s.advance()
	}
	return Token{Kind: Ignore}
}

// scanSingleLineComment consumes through end of line exclusive; the newline
// itself is left for the driver to emit as a NewLine token.
func (s *Scanner) scanSingleLineComment() Token {
	for {
		ch, ok := s.peek(0)
		if !ok || ch == '\n' {
			break
		}
		s.advance()
	}
	return Token{Kind: Comment, Text: s.text()}
}

// scanMultiLineComment consumes a block comment, tracking nesting depth:
// each occurrence of the start marker increments it, each end marker
// decrements it, and the comment ends on the marker that returns it to zero.
func (s *Scanner) scanMultiLineComment(cfg *Config) (Token, error) {
	s.consumeRun(cfg.MultiLineCommentStart)
	depth := 1
	for depth > 0 {
		if s.atEnd() {
			return Token{}, &ScanError{
				Kind: UnterminatedComment,
				Line: s.startLine,
				Col:  s.startCol,
			}
		}
		switch {
		case s.matches(cfg.MultiLineCommentStart):
			s.consumeRun(cfg.MultiLineCommentStart)
			depth++
		case s.matches(cfg.MultiLineCommentEnd):
			s.consumeRun(cfg.MultiLineCommentEnd)
			depth--
		default:
			s.advance()
		}
	}
	return Token{Kind: Comment, Text: s.text()}, nil
}

// scanString consumes a double-quoted literal. A backslash escapes the next
// character; \n and \t decode, an escaped quote or backslash yields the
// character itself, anything else escaped is kept as written. The token's
// Text excludes the quotes; its span includes them.
func (s *Scanner) scanString() (Token, error) {
	s.advance() // opening quote
	var value []rune
	for !s.atEnd() {
		ch, _ := s.advance()
		if ch == '\\' {
			esc, ok := s.advance()
			if !ok {
				break
			}
			switch esc {
			case 'n':
				value = append(value, '\n')
			case 't':
				value = append(value, '\t')
			default:
				value = append(value, esc)
			}
			continue
		}
		if ch == '"' {
			return Token{Kind: StringLiteral, Text: string(value)}, nil
		}
		value = append(value, ch)
	}
	return Token{}, &ScanError{
		Kind: UnterminatedString,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// scanNumber classifies a numeric literal by its base prefix. 0x/0X starts a
// hexadecimal literal and 0b/0B a binary one; anything else is decimal, with
// an optional fractional part when a '.' is immediately followed by a digit
// (so "1..2" scans as number, symbol, number under a ".." symbol).
func (s *Scanner) scanNumber() (Token, error) {
	if first, _ := s.peek(0); first == '0' {
		if next, ok := s.peek(1); ok && (next == 'x' || next == 'X') {
			s.advance()
			s.advance()
			return s.scanBaseDigits(Hexadecimal, isHexDigit, 16)
		} else if ok && (next == 'b' || next == 'B') {
			s.advance()
			s.advance()
			return s.scanBaseDigits(Binary, isBinDigit, 2)
		}
	}

	number := 0.0
	for {
		ch, ok := s.peek(0)
		if !ok || !isDigit(ch) {
			break
		}
		number = number*10 + float64(ch-'0')
		s.advance()
	}
	if dot, ok := s.peek(0); ok && dot == '.' {
		if frac, ok := s.peek(1); ok && isDigit(frac) {
			s.advance() // '.'
			div := 1.0
			for {
				ch, ok := s.peek(0)
				if !ok || !isDigit(ch) {
					break
				}
				number = number*10 + float64(ch-'0')
				div *= 10
				s.advance()
			}
			number /= div
		}
	}
	return Token{Kind: NumberLiteral, Text: s.text(), Number: number, Base: Decimal}, nil
}

// scanBaseDigits consumes the digits of a base-prefixed literal. The prefix
// has already been consumed; zero following valid digits is a failure.
func (s *Scanner) scanBaseDigits(base NumberBase, valid func(rune) bool, radix int) (Token, error) {
	digitsStart := s.cur
	number := 0.0
	for {
		ch, ok := s.peek(0)
		if !ok || !valid(ch) {
			break
		}
		number = number*float64(radix) + float64(digitValue(ch))
		s.advance()
	}
	if s.cur == digitsStart {
		return Token{}, &ScanError{
			Kind: InvalidNumber,
			Line: s.startLine,
			Col:  s.startCol,
		}
	}
	return Token{Kind: NumberLiteral, Text: s.text(), Number: number, Base: base}, nil
}

func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	default:
		return int(r-'A') + 10
	}
}

// scanWord consumes an identifier-shaped run and reclassifies it as a
// Keyword on an exact, case-sensitive match against the configuration.
func (s *Scanner) scanWord(cfg *Config) Token {
	for {
		ch, ok := s.peek(0)
		if !ok || !isAlphaNum(ch) {
			break
		}
		s.advance()
	}
	text := s.text()
	for _, kw := range cfg.Keywords {
		if kw == text {
			return Token{Kind: Keyword, Text: text}
		}
	}
	return Token{Kind: Identifier, Text: text}
}

// scanSymbol finds the longest configured symbol prefixing the remaining
// input; equal-length ties go to the earlier entry. The probe is
// side-effect free, consumption happens only once a match is confirmed.
func (s *Scanner) scanSymbol(cfg *Config) (Token, bool) {
	best := ""
	bestLen := 0
	for _, sym := range cfg.Symbols {
		n := runeLen(sym)
		if n > bestLen && s.matches(sym) {
			best = sym
			bestLen = n
		}
	}
	if bestLen == 0 {
		return Token{}, false
	}
	s.consumeRun(best)
	return Token{Kind: Symbol, Text: best}, true
}

// ----- character classes -----

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isBinDigit(r rune) bool { return r == '0' || r == '1' }

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isAlphaNum(r rune) bool { return isAlpha(r) || isDigit(r) }

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\r' }
