package errors

import "fmt"

// GenerationError reports an action or template that produced no test body
type GenerationError struct {
	*BaseError
	Target string // Controller@method, or the template name
	Stage  string // setup, kind lookup, template lookup, execute
}

// NewGenerationError creates a generation error for target at stage
func NewGenerationError(target, stage, message string) *GenerationError {
	return &GenerationError{
		BaseError: New(GenerationErrorCode, message),
		Target:    target,
		Stage:     stage,
	}
}

// WrapGenerateError reports that the test body of target failed at stage
func WrapGenerateError(target, stage string, cause error) *GenerationError {
	return &GenerationError{
		BaseError: Wrap(GenerationErrorCode, fmt.Sprintf("failed to generate %s", target), cause),
		Target:    target,
		Stage:     stage,
	}
}

// WrapTemplateError reports a template that failed to execute
func WrapTemplateError(name string, cause error) *GenerationError {
	return &GenerationError{
		BaseError: Wrap(TemplateErrorCode, fmt.Sprintf("failed to execute template '%s'", name), cause),
		Target:    name,
		Stage:     "execute",
	}
}

// WithSuggestion appends a fix suggestion
func (e *GenerationError) WithSuggestion(suggestion string) *GenerationError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// WrapFileSystemError reports a failed read or write of path
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	return Wrap(FileSystemErrorCode, fmt.Sprintf("failed to %s file '%s'", operation, path), cause).
		WithContext("operation", operation).
		WithContext("path", path)
}
