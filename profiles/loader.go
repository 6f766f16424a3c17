package profiles

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/jice-nospam/uscan"
)

// profileSchema constrains user profile files. All fields are optional; a
// block comment needs both its markers.
const profileSchema = `
	keywords?: [...string]
	symbols?: [...string]
	singleLineComment?: string
	multiLineComment?: {
		start: string
		end:   string
	}
`

// LoadFile reads a CUE profile file, validates it against the profile schema
// and returns the configuration it describes.
//
// A minimal file:
//
//	keywords: ["if", "else"]
//	symbols: ["==", "=", "(", ")"]
//	singleLineComment: "//"
//	multiLineComment: {start: "/*", end: "*/"}
func LoadFile(path string) (*uscan.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString("close({" + profileSchema + "})")
	if err := schema.Err(); err != nil {
		return nil, err
	}

	value := ctx.CompileBytes(content, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, err
	}
	if err := schema.Unify(value).Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var raw struct {
		Keywords          []string `json:"keywords"`
		Symbols           []string `json:"symbols"`
		SingleLineComment string   `json:"singleLineComment"`
		MultiLineComment  *struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"multiLineComment"`
	}
	if err := value.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg := &uscan.Config{
		Keywords:          raw.Keywords,
		Symbols:           raw.Symbols,
		SingleLineComment: raw.SingleLineComment,
	}
	if raw.MultiLineComment != nil {
		cfg.MultiLineCommentStart = raw.MultiLineComment.Start
		cfg.MultiLineCommentEnd = raw.MultiLineComment.End
	}
	return cfg, nil
}
