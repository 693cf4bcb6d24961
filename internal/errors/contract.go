package errors

import "fmt"

// ContractViolation signals a caller bug: a generator primitive was used
// without the state it depends on. It is raised with panic, never returned.
type ContractViolation struct {
	*BaseError
	Primitive string // primitive that was invoked
	Missing   string // the state that was missing
}

// NewContractViolation creates a contract violation for a primitive
func NewContractViolation(primitive, missing string) *ContractViolation {
	message := fmt.Sprintf("contract violation: %s requires %s", primitive, missing)
	return &ContractViolation{
		BaseError: New(ContractViolationCode, message).
			WithContext("primitive", primitive).
			WithContext("missing", missing),
		Primitive: primitive,
		Missing:   missing,
	}
}

// Violate panics with a ContractViolation
func Violate(primitive, missing string) {
	panic(NewContractViolation(primitive, missing))
}

// AsContractViolation converts a recovered panic value into a ContractViolation.
// Any other panic value is re-raised.
func AsContractViolation(recovered any) *ContractViolation {
	if recovered == nil {
		return nil
	}
	if cv, ok := recovered.(*ContractViolation); ok {
		return cv
	}
	panic(recovered)
}

// ExtractionFailure describes why validation rules could not be read for
// an action. It is only ever logged; generation continues with no rules.
type ExtractionFailure struct {
	*BaseError
	Parameter string // action parameter being inspected
	TypeName  string // declared type of that parameter
}

// NewExtractionFailure creates an extraction failure with one of the
// TypeNotFound, NotInstantiable, EntryPointMissing or RulesFailed codes
func NewExtractionFailure(code ErrorCode, parameter, typeName string, cause error) *ExtractionFailure {
	var message string
	switch code {
	case TypeNotFoundCode:
		message = fmt.Sprintf("type '%s' of parameter $%s is not registered", typeName, parameter)
	case NotInstantiableCode:
		message = fmt.Sprintf("request type '%s' cannot be instantiated", typeName)
	case EntryPointMissingCode:
		message = fmt.Sprintf("request type '%s' has no rules entry point", typeName)
	default:
		code = RulesFailedCode
		message = fmt.Sprintf("rules of request type '%s' failed", typeName)
	}

	return &ExtractionFailure{
		BaseError: Wrap(code, message, cause).
			WithContext("parameter", parameter).
			WithContext("type", typeName),
		Parameter: parameter,
		TypeName:  typeName,
	}
}
