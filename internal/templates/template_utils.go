package templates

import (
	"strings"
	"text/template"

	"github.com/toyz/testgen/internal/models"
)

// Indent is the indentation used inside generated PHP array literals
const Indent = "    "

// TemplateUtils provides common utilities for template generation
type TemplateUtils struct{}

// NewTemplateUtils creates a new template utilities instance
func NewTemplateUtils() *TemplateUtils {
	return &TemplateUtils{}
}

// FuncMap exposes the helpers to templates
func (tu *TemplateUtils) FuncMap() template.FuncMap {
	return template.FuncMap{
		"array": tu.PayloadArray,
	}
}

var phpEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)

// QuoteString renders s as a PHP double-quoted literal, escaping the
// characters PHP would otherwise interpret: backslash, quote and $
func (tu *TemplateUtils) QuoteString(s string) string {
	return `"` + phpEscaper.Replace(s) + `"`
}

// PayloadLines renders payload entries as `"field" => $model->field,` lines
func (tu *TemplateUtils) PayloadLines(entries []models.PayloadEntry) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = tu.QuoteString(e.Field) + " => " + e.Expression + ","
	}
	return lines
}

// PayloadArray renders payload entries as a multi-line PHP array literal,
// or [] when there are none
func (tu *TemplateUtils) PayloadArray(entries []models.PayloadEntry) string {
	if len(entries) == 0 {
		return "[]"
	}

	var b strings.Builder
	b.WriteString("[\n")
	for _, line := range tu.PayloadLines(entries) {
		b.WriteString(Indent)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("]")
	return b.String()
}

// DataProviderLines renders rows as `"The f must be r" => ["f", ""],` lines
func (tu *TemplateUtils) DataProviderLines(rows []models.DataProviderRow) []string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = tu.QuoteString(row.Description) + " => [" + tu.QuoteString(row.Field) + ", " + tu.QuoteString(row.Value) + "],"
	}
	return lines
}

// DefaultTemplateUtils provides a global instance for convenience
var DefaultTemplateUtils = NewTemplateUtils()
