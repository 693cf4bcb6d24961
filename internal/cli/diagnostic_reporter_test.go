package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/testgen/internal/errors"
)

func TestDiagnosticReporter_ReportWarning(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewDiagnosticReporter(false)
	reporter.SetOutput(&buf)

	reporter.ReportWarning("manifest declares no requests")

	assert.Contains(t, buf.String(), "manifest declares no requests")
}

func TestDiagnosticReporter_ReportError(t *testing.T) {
	loc := errors.SourceLocation{File: "blog.yaml", Line: 12, Column: 5}

	tests := []struct {
		name     string
		verbose  bool
		err      error
		expected []string
		absent   []string
	}{
		{
			name: "validation error",
			err: errors.NewValidationError("actions[0].route.name", "posts store", "must be a dotted route name").
				WithLocation(loc).
				WithSuggestion("use names such as posts.store"),
			expected: []string{
				"Type: ValidationError",
				"Location: blog.yaml:12:5",
				"Suggestions:\n   1. use names such as posts.store",
				"Run with -verbose",
			},
		},
		{
			name: "multiple errors",
			err: &errors.MultipleErrors{Errors: []errors.TestgenError{
				errors.ConfigurationError("framework_version", "'latest' is not a version"),
				errors.NewGenerationError("create-api", "template lookup", "kind 'create' has no API test body"),
			}},
			expected: []string{
				"2 problems found",
				"1) Type: ConfigurationError",
				"Config Type: framework_version",
				"2) Type: GenerationError",
			},
			absent: []string{"were skipped"},
		},
		{
			name: "manifest problems",
			err: &errors.MultipleErrors{Errors: []errors.TestgenError{
				errors.NewValidationError("actions[0].method", "2store", "must be an identifier"),
				errors.WrapFileSystemError("write", "PostController_store.txt", fmt.Errorf("disk full")),
			}},
			expected: []string{"2 problems found", "were skipped entirely"},
		},
		{
			name:    "verbose shows the cause",
			verbose: true,
			err:     errors.WrapFileSystemError("read", "blog.yaml", fmt.Errorf("permission denied")),
			expected: []string{
				"Type: FileSystemError",
				"Underlying cause: permission denied",
				"Operation: read",
			},
			absent: []string{"Run with -verbose"},
		},
		{
			name:     "plain error",
			err:      fmt.Errorf("boom"),
			expected: []string{"Message: boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reporter := NewDiagnosticReporter(tt.verbose)
			reporter.SetOutput(&buf)

			reporter.ReportError(tt.err)

			output := buf.String()
			assert.Contains(t, output, "ERROR: Test Generation Failed")
			for _, fragment := range tt.expected {
				assert.Contains(t, output, fragment)
			}
			for _, fragment := range tt.absent {
				assert.NotContains(t, output, fragment)
			}
		})
	}
}

func TestDiagnosticReporter_MessageWithoutLocationPrefix(t *testing.T) {
	err := errors.NewSyntaxError("invalid rule name", "", 0).
		WithLocation(errors.SourceLocation{File: "blog.yaml", Line: 3})

	assert.Equal(t, "invalid rule name", messageOf(err))
}

func TestFormatContextKey(t *testing.T) {
	assert.Equal(t, "Config Type", formatContextKey("config_type"))
	assert.Equal(t, "Action", formatContextKey("action"))
}
