package uscan

import (
	"fmt"
	"strings"
)

// ErrorKind identifies the lexical failures that abort a scan. Unknown
// characters are not among them: they are emitted as Unknown tokens so a
// downstream parser can report them with full surrounding context.
type ErrorKind int

const (
	// UnterminatedString: an opening quote with no matching close before
	// end of input.
	UnterminatedString ErrorKind = iota
	// UnterminatedComment: a block comment whose nesting depth never
	// returns to zero before end of input.
	UnterminatedComment
	// InvalidNumber: a base prefix (0x, 0b) with no following valid digit.
	InvalidNumber
)

func (k ErrorKind) String() string {
	switch k {
	case UnterminatedString:
		return "string literal was not terminated"
	case UnterminatedComment:
		return "comment was not terminated"
	case InvalidNumber:
		return "number literal has no digits after its base prefix"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ScanError is the first-failure result of a scan. Line and Col locate the
// start of the offending construct (the opening quote, the block comment
// opener, the first digit), not the position where the scanner gave up.
type ScanError struct {
	Kind ErrorKind
	Line int // 1-based
	Col  int // 0-based
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Kind)
}

// FormatErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. It recognizes *ScanError and leaves other
// errors untouched.
func FormatErrorWithSource(err error, src string) error {
	return FormatErrorWithName(err, "", src)
}

// FormatErrorWithName is FormatErrorWithSource with a source name (usually a
// file path) included in the snippet header.
func FormatErrorWithName(err error, srcName string, src string) error {
	e, ok := err.(*ScanError)
	if !ok {
		return err
	}
	// Col is 0-based; render as 1-based.
	return fmt.Errorf("%s", prettyErrorString(src, srcName, e.Line, e.Col+1, e.Kind.String()))
}

// prettyErrorString builds a Python-like snippet with a header and a caret.
// It shows at most one previous and one next line when available.
// Coordinates are treated as 1-based and clamped to the source bounds.
func prettyErrorString(src, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "LEXICAL ERROR in %s at %d:%d: %s\n\n", name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "LEXICAL ERROR at %d:%d: %s\n\n", line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
