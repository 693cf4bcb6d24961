package generator

import (
	"strings"

	"github.com/toyz/testgen/internal/models"
	"github.com/toyz/testgen/internal/templates"
)

// Builder accumulates the lines, imports and validation rows of one
// generated fragment. Kind builders receive it and write into it; nothing
// already written is ever removed.
type Builder struct {
	lines   []string
	imports *templates.ImportManager
	rows    []models.DataProviderRow
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{imports: templates.NewImportManager()}
}

// Line appends lines verbatim
func (b *Builder) Line(lines ...string) *Builder {
	b.lines = append(b.lines, lines...)
	return b
}

// Blank appends an empty line unless the body is empty or already ends with one
func (b *Builder) Blank() *Builder {
	if n := len(b.lines); n > 0 && b.lines[n-1] != "" {
		b.lines = append(b.lines, "")
	}
	return b
}

// Text appends a multi-line block, one line per newline
func (b *Builder) Text(text string) *Builder {
	if text == "" {
		return b
	}
	return b.Line(strings.Split(text, "\n")...)
}

// Import registers a class to import
func (b *Builder) Import(classes ...string) *Builder {
	b.imports.AddImports(classes...)
	return b
}

// Rows appends data provider rows
func (b *Builder) Rows(rows ...models.DataProviderRow) *Builder {
	b.rows = append(b.rows, rows...)
	return b
}

// Lines returns a copy of the lines written so far
func (b *Builder) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Imports returns the imports registered so far
func (b *Builder) Imports() []string {
	return b.imports.Imports()
}

// Fragment finalizes the builder contents into a fragment
func (b *Builder) Fragment() *models.GeneratedFragment {
	rows := make([]models.DataProviderRow, len(b.rows))
	copy(rows, b.rows)
	return &models.GeneratedFragment{
		Lines:        b.Lines(),
		Imports:      b.Imports(),
		DataProvider: rows,
	}
}
