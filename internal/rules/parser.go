// Package rules parses validation rule specifications into ordered tokens.
//
// A specification is either a "|"-delimited string such as
// "required|string|max:255" or a list whose items are rule strings or
// opaque rule objects. Each textual token splits into a rule name and
// its comma separated arguments ("max:255" -> max, [255]).
package rules

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/testgen/internal/models"
)

// specAST is the participle grammar root: a flat run of text and pipes
type specAST struct {
	Items []*itemAST `parser:"@@*"`
}

type itemAST struct {
	Pos  lexer.Position
	Text *string `parser:"  @Text"`
	Pipe bool    `parser:"| @Pipe"`
}

var specParser = participle.MustBuild[specAST](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Pipe", Pattern: `\|`},
		{Name: "Text", Pattern: `[^|]+`},
	})),
)

// Token is one normalized rule
type Token struct {
	Raw    string   // token exactly as written, e.g. "min:18"
	Name   string   // rule name, e.g. "min"
	Args   []string // rule arguments, e.g. ["18"]
	Offset int      // byte offset of Raw in a delimited spec
	Object any      // opaque rule object; Raw is empty when set
}

// IsText reports whether the token is a textual rule
func (t Token) IsText() bool {
	return t.Object == nil
}

func newTextToken(raw string, offset int) Token {
	name, args, hasArgs := strings.Cut(raw, ":")
	tok := Token{Raw: raw, Name: name, Offset: offset}
	if hasArgs {
		tok.Args = strings.Split(args, ",")
	}
	return tok
}

// Parse splits a delimited specification into textual tokens.
// Blank tokens (from "a||b" or a trailing "|") are dropped.
func Parse(spec string) ([]Token, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}

	ast, err := specParser.ParseString("", spec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rule spec %q: %w", spec, err)
	}

	tokens := make([]Token, 0, len(ast.Items))
	for _, item := range ast.Items {
		if item.Text == nil || strings.TrimSpace(*item.Text) == "" {
			continue
		}
		tokens = append(tokens, newTextToken(*item.Text, item.Pos.Offset))
	}
	return tokens, nil
}

// Normalize turns a rule specification into ordered tokens. It never fails:
// a delimited string the grammar rejects falls back to a plain split.
func Normalize(spec models.RuleSpec) []Token {
	if !spec.IsList {
		tokens, err := Parse(spec.Delimited)
		if err != nil {
			return splitTokens(spec.Delimited)
		}
		return tokens
	}

	tokens := make([]Token, 0, len(spec.Items))
	for i, item := range spec.Items {
		if !item.IsText() {
			tokens = append(tokens, Token{Object: item.Object, Offset: i})
			continue
		}
		if strings.TrimSpace(item.Text) == "" {
			continue
		}
		tokens = append(tokens, newTextToken(item.Text, i))
	}
	return tokens
}

func splitTokens(spec string) []Token {
	var tokens []Token
	offset := 0
	for _, part := range strings.Split(spec, "|") {
		if strings.TrimSpace(part) != "" {
			tokens = append(tokens, newTextToken(part, offset))
		}
		offset += len(part) + 1
	}
	return tokens
}
