package cli

import (
	"fmt"
	"strings"

	"github.com/toyz/testgen/internal/models"
	"github.com/toyz/testgen/internal/templates"
	"github.com/toyz/testgen/internal/utils"
)

// fragmentMarker opens every fragment file; the cleaner only removes files
// that start with it
const fragmentMarker = "// testgen:"

// FragmentFileName returns <Controller>_<method>.txt using the controller's
// short name
func FragmentFileName(action *models.ActionMetadata) string {
	return utils.ClassBaseName(action.Controller) + "_" + action.Method + ".txt"
}

// RenderFragment renders a fragment as the text written to disk or stdout
func RenderFragment(f *models.GeneratedFragment) string {
	mode := "web"
	if f.API {
		mode = "api"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s, %s)\n", fragmentMarker, f.Action, f.Kind, mode)

	imports := templates.NewImportManager()
	imports.AddImports(f.Imports...)
	if uses := imports.GenerateImports(); uses != "" {
		b.WriteString("\n")
		b.WriteString(uses)
	}

	b.WriteString("\n")
	b.WriteString(f.Body())
	b.WriteString("\n")

	if len(f.DataProvider) > 0 {
		b.WriteString("\n// data provider\n")
		for _, line := range templates.DefaultTemplateUtils.DataProviderLines(f.DataProvider) {
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
