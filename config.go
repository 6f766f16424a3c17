package uscan

// Config describes a language's lexical shape. The engine never mutates it;
// one Config value may serve any number of concurrent scans.
//
// The zero value is a valid configuration with no keywords, no symbols and no
// comment support. Empty delimiter strings mean "not configured". The engine
// does not validate configurations: duplicate symbols, markers colliding with
// symbols and similar are the caller's responsibility.
type Config struct {
	// Keywords are matched exactly and case-sensitively against
	// identifier-shaped runs.
	Keywords []string

	// Symbols are fixed operator/punctuation strings. They may share
	// prefixes; the scanner picks the longest one matching the remaining
	// input, earlier entries winning equal-length ties.
	Symbols []string

	// SingleLineComment starts a comment running to end of line.
	SingleLineComment string

	// MultiLineCommentStart and MultiLineCommentEnd delimit nestable block
	// comments. Both must be set for block comments to be recognized.
	MultiLineCommentStart string
	MultiLineCommentEnd   string
}
