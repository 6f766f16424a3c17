// Package profiles holds ready-made scanner configurations and a loader for
// user-defined ones. The scanning engine itself is language-agnostic; a
// profile is plain data handed to uscan.Scan.
package profiles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/jice-nospam/uscan"
)

// Lua returns the Lua 5.x configuration.
func Lua() *uscan.Config {
	return &uscan.Config{
		Keywords: []string{
			"and", "break", "do", "else", "elseif", "end", "false",
			"for", "function", "if", "in", "local", "nil", "not",
			"or", "repeat", "return", "then", "true", "until",
			"while",
		},
		Symbols: []string{
			"...", "..", "==", "~=", "<=", ">=", "+", "-", "*", "/",
			"%", "^", "#", "<", ">", "=", "(", ")", "{", "}", "[",
			"]", ";", ":", ",", ".",
		},
		SingleLineComment:     "--",
		MultiLineCommentStart: "--[[",
		MultiLineCommentEnd:   "]]",
	}
}

// Expr returns a small C-flavored expression language: let bindings,
// comparison and boolean operators, // line comments and /* */ blocks.
func Expr() *uscan.Config {
	return &uscan.Config{
		Keywords: []string{"let", "fn", "true", "false"},
		Symbols: []string{
			"==", "!=", "<=", ">=", "&&", "||", "+", "-", "*", "/",
			"%", "<", ">", "=", "!", "(", ")", "{", "}", ",", ";",
		},
		SingleLineComment:     "//",
		MultiLineCommentStart: "/*",
		MultiLineCommentEnd:   "*/",
	}
}

var builtin = map[string]func() *uscan.Config{
	"lua":  Lua,
	"expr": Expr,
}

// Names lists the built-in profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a built-in profile by name, case-insensitively. Unknown
// names come back as an error, with a suggestion when a registered name is
// close enough to look like a typo.
func Lookup(name string) (*uscan.Config, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if mk, ok := builtin[key]; ok {
		return mk(), nil
	}

	bestDist := -1
	best := ""
	for _, candidate := range Names() {
		d := fuzzy.LevenshteinDistance(key, candidate)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	if best != "" && bestDist <= 2 {
		return nil, fmt.Errorf("unknown profile %q (did you mean %q?)", name, best)
	}
	return nil, fmt.Errorf("unknown profile %q (have: %s)", name, strings.Join(Names(), ", "))
}
