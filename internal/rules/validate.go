package rules

import (
	"fmt"
	"regexp"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/models"
)

var ruleNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks every textual token of a field's spec has a well formed
// rule name. Problems are reported as syntax errors carrying the token
// and its offset so manifests can point at the exact rule.
func Validate(field string, spec models.RuleSpec) []*errors.SyntaxError {
	var problems []*errors.SyntaxError

	var tokens []Token
	if spec.IsList {
		tokens = Normalize(spec)
	} else {
		parsed, err := Parse(spec.Delimited)
		if err != nil {
			problems = append(problems, errors.WrapParseError(fmt.Sprintf("rules of field '%s'", field), err))
			return problems
		}
		tokens = parsed
	}

	for _, tok := range tokens {
		if !tok.IsText() {
			continue
		}
		if ruleNamePattern.MatchString(tok.Name) {
			continue
		}
		problems = append(problems,
			errors.NewSyntaxError(fmt.Sprintf("invalid rule name in field '%s'", field), tok.Raw, tok.Offset).
				WithContext("field", field).
				WithSuggestion("Rule tokens look like 'required' or 'max:255'; separate rules with '|'"))
	}
	return problems
}
