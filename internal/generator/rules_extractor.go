package generator

import (
	"fmt"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/models"
	"github.com/toyz/testgen/internal/registry"
)

// RuleExtractor reads validation rules from the request object an action
// declares as a parameter
type RuleExtractor struct {
	types  registry.TypeRegistry
	logger Logger
}

// NewRuleExtractor creates an extractor over a type registry
func NewRuleExtractor(types registry.TypeRegistry, logger Logger) *RuleExtractor {
	if logger == nil {
		logger = discardLogger{}
	}
	return &RuleExtractor{types: types, logger: logger}
}

// Extract returns the rules of the first parameter whose type is a
// FormRequest. It never fails: every problem is logged and yields an
// empty map.
func (e *RuleExtractor) Extract(action *models.ActionMetadata) models.RuleMap {
	if action == nil || e.types == nil {
		return nil
	}

	for _, param := range action.Parameters {
		if !param.HasType() {
			continue
		}

		if _, known := e.types.Lookup(param.Type); !known {
			e.report(errors.NewExtractionFailure(errors.TypeNotFoundCode, param.Name, param.Type, nil))
			continue
		}
		if !e.types.IsSubclassOf(param.Type, registry.FormRequestClass) {
			continue
		}

		ruleMap, failure := e.invoke(param)
		if failure != nil {
			e.report(failure)
			return nil
		}
		e.logger.Debug("read %d rule field(s) from %s for %s", len(ruleMap), param.Type, action)
		return ruleMap
	}
	return nil
}

// invoke default-constructs the request type and calls its rules entry point
func (e *RuleExtractor) invoke(param models.Parameter) (ruleMap models.RuleMap, failure *errors.ExtractionFailure) {
	code := errors.NotInstantiableCode
	defer func() {
		if r := recover(); r != nil {
			ruleMap = nil
			failure = errors.NewExtractionFailure(code, param.Name, param.Type, fmt.Errorf("panic: %v", r))
		}
	}()

	instance, err := e.types.Instantiate(param.Type)
	if err != nil {
		return nil, errors.NewExtractionFailure(errors.NotInstantiableCode, param.Name, param.Type, err)
	}

	source, ok := instance.(models.RuleSource)
	if !ok {
		return nil, errors.NewExtractionFailure(errors.EntryPointMissingCode, param.Name, param.Type, nil)
	}

	code = errors.RulesFailedCode
	ruleMap, err = source.Rules()
	if err != nil {
		return nil, errors.NewExtractionFailure(errors.RulesFailedCode, param.Name, param.Type, err)
	}
	return ruleMap, nil
}

func (e *RuleExtractor) report(failure *errors.ExtractionFailure) {
	switch failure.ErrorCode() {
	case errors.TypeNotFoundCode:
		e.logger.Debug("%s", failure.Error())
	default:
		if cause := failure.Unwrap(); cause != nil {
			e.logger.Warn("%s: %v", failure.Error(), cause)
			return
		}
		e.logger.Warn("%s", failure.Error())
	}
}
