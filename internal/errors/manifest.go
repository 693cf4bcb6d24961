package errors

import "fmt"

// ValidationError reports a manifest field whose value breaks a constraint
type ValidationError struct {
	*BaseError
	Field      string // dotted path, e.g. actions[0].route.name
	Value      any
	Constraint string
}

// NewValidationError creates a validation error for field
func NewValidationError(field string, value any, constraint string) *ValidationError {
	return &ValidationError{
		BaseError:  New(ValidationErrorCode, fmt.Sprintf("validation failed for field '%s': %s", field, constraint)),
		Field:      field,
		Value:      value,
		Constraint: constraint,
	}
}

func (e *ValidationError) WithLocation(loc SourceLocation) *ValidationError {
	e.BaseError.WithLocation(loc)
	return e
}

func (e *ValidationError) WithSuggestion(suggestion string) *ValidationError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// SyntaxError reports text that could not be parsed: a manifest document
// or a rule token
type SyntaxError struct {
	*BaseError
	Token  string // offending token, empty for whole-document failures
	Offset int    // byte offset of Token in its rule specification
}

// NewSyntaxError creates a syntax error, naming token when there is one
func NewSyntaxError(message, token string, offset int) *SyntaxError {
	if token != "" {
		message = fmt.Sprintf("%s (near token '%s')", message, token)
	}
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message),
		Token:     token,
		Offset:    offset,
	}
}

// WrapParseError reports that item could not be parsed
func WrapParseError(item string, cause error) *SyntaxError {
	return &SyntaxError{BaseError: Wrap(SyntaxErrorCode, "failed to parse "+item, cause)}
}

func (e *SyntaxError) WithLocation(loc SourceLocation) *SyntaxError {
	e.BaseError.WithLocation(loc)
	return e
}

func (e *SyntaxError) WithContext(key string, value any) *SyntaxError {
	e.BaseError.WithContext(key, value)
	return e
}

func (e *SyntaxError) WithSuggestion(suggestion string) *SyntaxError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// RegistrationError reports a class the type registry refused
type RegistrationError struct {
	*BaseError
	Kind string // request, model or type
	Name string
}

// NewRegistrationError wraps the registry's refusal of name
func NewRegistrationError(kind, name string, cause error) *RegistrationError {
	message := fmt.Sprintf("failed to register %s '%s'", kind, name)
	if cause != nil {
		message += ": " + cause.Error()
	}
	return &RegistrationError{
		BaseError: Wrap(RegistrationErrorCode, message, cause),
		Kind:      kind,
		Name:      name,
	}
}

// ConfigurationError reports a bad value under the manifest config block
// or a CLI override
func ConfigurationError(key, message string) *BaseError {
	return New(ConfigurationErrorCode, fmt.Sprintf("configuration error in '%s': %s", key, message)).
		WithContext("config_type", key)
}
