package uscan

import (
	"fmt"
	"io"
)

/* ---------- globals & tiny helpers ---------- */

var EnableColor = false // REPL-only; tests can leave this false

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorBlue  = "\033[34m"
)

func colorize(s, c string) string {
	if !EnableColor {
		return s
	}
	return c + s + colorReset
}

func kindColor(k TokenKind) string {
	switch k {
	case Keyword, Comment:
		return colorGreen
	case StringLiteral, NumberLiteral:
		return colorBlue
	case Unknown:
		return colorRed
	default:
		return ""
	}
}

/* ---------- dump ---------- */

// Dump writes one line per token: its index, start line, and description.
// Intended for debugging and the CLI's token listing.
func (d *ScannerData) Dump(w io.Writer) {
	for i, tok := range d.Tokens {
		desc := tok.String()
		if c := kindColor(tok.Kind); c != "" {
			desc = colorize(desc, c)
		}
		fmt.Fprintf(w, "[#%03d line %d] %s\n", i, d.Lines[i], desc)
	}
}
