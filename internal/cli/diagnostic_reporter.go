package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/testgen/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stderr,
	}
}

// SetOutput redirects the report
func (r *DiagnosticReporter) SetOutput(out io.Writer) {
	r.out = out
}

// ReportWarning prints a one-line warning
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError prints every problem carried by err with its location,
// context and suggestions
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: Test Generation Failed\n")
	fmt.Fprintf(r.out, "=============================\n\n")

	var multi *errors.MultipleErrors
	var single errors.TestgenError
	switch {
	case stderrors.As(err, &multi):
		fmt.Fprintf(r.out, "%d problems found\n\n", multi.Count())
		for i, item := range multi.Errors {
			fmt.Fprintf(r.out, "%d) ", i+1)
			r.reportTestgenError(item)
		}
		if multi.HasCode(errors.SyntaxErrorCode) || multi.HasCode(errors.ValidationErrorCode) {
			fmt.Fprintf(r.out, "Manifests with syntax or validation problems were skipped entirely\n\n")
		}
	case stderrors.As(err, &single):
		r.reportTestgenError(single)
	default:
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
	}

	if !r.verbose {
		fmt.Fprintf(r.out, "Run with -verbose for more detailed output\n")
	}
	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) reportTestgenError(err errors.TestgenError) {
	typeName := err.ErrorCode().String()
	fmt.Fprintf(r.out, "Type: %s\n", typeName)
	fmt.Fprintf(r.out, "%s\n", strings.Repeat("-", len(typeName)+6))

	fmt.Fprintf(r.out, "Message: %s\n", messageOf(err))
	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n", loc)
	}

	if r.verbose && err.Unwrap() != nil {
		fmt.Fprintf(r.out, "Underlying cause: %s\n", err.Unwrap().Error())
	}

	if ctx := err.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}
	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}
	fmt.Fprintf(r.out, "\n")
}

// messageOf strips the location prefix Error() adds
func messageOf(err errors.TestgenError) string {
	msg := err.Error()
	if loc := err.Location(); !loc.IsEmpty() {
		msg = strings.TrimPrefix(msg, loc.String()+": ")
	}
	return msg
}

func (r *DiagnosticReporter) printContext(context map[string]any) {
	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(r.out, "Context:\n")
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, suggestion)
	}
}

// GenerationSummary contains information about a CLI run
type GenerationSummary struct {
	RunID              string
	ManifestsProcessed int
	ActionsFound       int
	FragmentsGenerated int
	ActionsFailed      int
	ValidationCases    int
	GeneratedFiles     []string
}

// Stats returns the summary in the form DiagnosticSystem.Summary prints
func (s GenerationSummary) Stats() map[string]any {
	return map[string]any{
		"Run ID":              s.RunID,
		"Manifests processed": s.ManifestsProcessed,
		"Actions found":       s.ActionsFound,
		"Fragments generated": s.FragmentsGenerated,
		"Actions failed":      s.ActionsFailed,
		"Validation cases":    s.ValidationCases,
	}
}
