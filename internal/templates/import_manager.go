package templates

import (
	"strings"
)

// ImportManager collects the classes a generated test must import.
// Each class appears once, in the order it was first requested, and
// nothing is ever removed.
type ImportManager struct {
	classes []string
	seen    map[string]bool
}

// NewImportManager creates a new import manager
func NewImportManager() *ImportManager {
	return &ImportManager{
		classes: make([]string, 0),
		seen:    make(map[string]bool),
	}
}

// AddImport adds a fully qualified class; empty names and repeats are ignored
func (im *ImportManager) AddImport(class string) {
	class = strings.TrimLeft(strings.TrimSpace(class), `\`)
	if class == "" || im.seen[class] {
		return
	}
	im.seen[class] = true
	im.classes = append(im.classes, class)
}

// AddImports adds several classes in order
func (im *ImportManager) AddImports(classes ...string) {
	for _, class := range classes {
		im.AddImport(class)
	}
}

// Has reports whether the class was added
func (im *ImportManager) Has(class string) bool {
	return im.seen[strings.TrimLeft(class, `\`)]
}

// Len returns the number of distinct imports
func (im *ImportManager) Len() int {
	return len(im.classes)
}

// Imports returns a copy of the classes in insertion order
func (im *ImportManager) Imports() []string {
	out := make([]string, len(im.classes))
	copy(out, im.classes)
	return out
}

// GenerateImports renders the use statements, one per line
func (im *ImportManager) GenerateImports() string {
	if len(im.classes) == 0 {
		return ""
	}

	var result strings.Builder
	for _, class := range im.classes {
		result.WriteString("use ")
		result.WriteString(class)
		result.WriteString(";\n")
	}
	return result.String()
}

// Merge appends the imports of other that are not present yet
func (im *ImportManager) Merge(other *ImportManager) {
	im.AddImports(other.classes...)
}
