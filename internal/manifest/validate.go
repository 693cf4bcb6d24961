package manifest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/generator"
	"github.com/toyz/testgen/internal/models"
	"github.com/toyz/testgen/internal/registry"
	"github.com/toyz/testgen/internal/rules"
	"github.com/toyz/testgen/internal/utils"
)

var (
	validClass     = utils.IsPHPClass
	validRouteName = utils.IsRouteName
	validName      = utils.IsPHPIdentifier

	singleRule = utils.Custom("ignore rule", "must be one rule token without '|'", func(s string) bool {
		return strings.TrimSpace(s) != "" && !strings.Contains(s, "|")
	})
)

// Validate checks the whole manifest and reports every problem at once
func (m *Manifest) Validate() error {
	var errs *errors.MultipleErrors

	m.validateConfig(&errs)
	m.validateRequests(&errs)
	m.validateModels(&errs)

	if len(m.Actions) == 0 {
		errors.AddToMultiple(&errs, errors.NewValidationError("actions", nil, "the manifest declares no actions").
			WithLocation(errors.SourceLocation{File: m.Source}))
	}
	for i := range m.Actions {
		m.validateAction(&errs, i)
	}

	return errs.ErrorOrNil()
}

func (m *Manifest) validateConfig(errs **errors.MultipleErrors) {
	if v := m.Config.FrameworkVersion; v != "" && generator.CanonicalVersion(v) == "" {
		err := errors.ConfigurationError("framework_version", fmt.Sprintf("'%s' is not a version", v)).
			WithLocation(errors.SourceLocation{File: m.Source}).
			WithSuggestion("use a release number such as 10 or 10.2")
		errors.AddToMultiple(errs, err)
	}
	if v := m.Config.ActorVariable; v != "" {
		if err := validName("actor_variable")(trimVariable(v)); err != nil {
			errors.AddToMultiple(errs, errors.ConfigurationError("actor_variable", err.Error()))
		}
	}
	if err := utils.ValidateEach("ignore_rules", singleRule)(m.Config.IgnoreRules); err != nil {
		errors.AddToMultiple(errs, errors.ConfigurationError("ignore_rules", err.Error()).
			WithLocation(errors.SourceLocation{File: m.Source}))
	}
	if v := m.Config.ActorClass; v != "" {
		if err := validClass("actor_class")(v); err != nil {
			errors.AddToMultiple(errs, errors.ConfigurationError("actor_class", err.Error()))
		}
	}
}

func (m *Manifest) validateRequests(errs **errors.MultipleErrors) {
	for _, class := range sortedKeys(m.Requests) {
		req := m.Requests[class]
		field := "requests." + class

		if err := validClass(field)(class); err != nil {
			errors.AddToMultiple(errs, errors.NewValidationError(field, class, err.Error()).
				WithLocation(errors.SourceLocation{File: m.Source, Line: req.Rules.Line}))
			continue
		}
		if req.Extends != "" {
			if err := validClass(field + ".extends")(req.Extends); err != nil {
				errors.AddToMultiple(errs, errors.NewValidationError(field+".extends", req.Extends, err.Error()))
			}
		}

		ruleMap, err := req.RuleMap(m.Source)
		if err != nil {
			errors.AddToMultiple(errs, err.(errors.TestgenError))
			continue
		}
		for _, f := range ruleMap {
			for _, syntaxErr := range rules.Validate(f.Field, f.Spec) {
				syntaxErr.WithLocation(errors.SourceLocation{File: m.Source, Line: req.Rules.Line, Column: req.Rules.Column})
				syntaxErr.WithContext("request", class)
				errors.AddToMultiple(errs, syntaxErr)
			}
		}
	}
}

func (m *Manifest) validateModels(errs **errors.MultipleErrors) {
	for _, class := range sortedKeys(m.Models) {
		spec := m.Models[class]
		field := "models." + class

		if err := validClass(field)(class); err != nil {
			errors.AddToMultiple(errs, errors.NewValidationError(field, class, err.Error()))
		}
		if spec.RouteKey != "" {
			if err := validName(field + ".route_key")(spec.RouteKey); err != nil {
				errors.AddToMultiple(errs, errors.NewValidationError(field+".route_key", spec.RouteKey, err.Error()))
			}
		}
	}
}

func (m *Manifest) validateAction(errs **errors.MultipleErrors, i int) {
	a := &m.Actions[i]
	loc := a.Location(m.Source)
	prefix := fmt.Sprintf("actions[%d]", i)

	add := func(field string, value any, err error) {
		errors.AddToMultiple(errs, errors.NewValidationError(prefix+"."+field, value, err.Error()).WithLocation(loc))
	}

	if err := validClass("controller")(a.Controller); err != nil {
		add("controller", a.Controller, err)
	}
	if err := validName("method")(a.Method); err != nil {
		add("method", a.Method, err)
	}
	if err := validRouteName("route.name")(a.Route.Name); err != nil {
		add("route.name", a.Route.Name, err)
	}
	if err := utils.ValidateEach("route.parameters", validName("parameter"))(a.Route.Parameters); err != nil {
		add("route.parameters", a.Route.Parameters, err)
	}
	if err := utils.ValidateEach("route.middleware", utils.NotEmpty("middleware"))(a.Route.Middleware); err != nil {
		add("route.middleware", a.Route.Middleware, err)
	}

	for j, p := range a.Parameters {
		if err := validName("name")(trimVariable(p.Name)); err != nil {
			add(fmt.Sprintf("parameters[%d].name", j), p.Name, err)
		}
		if p.Type != "" {
			if err := validClass("type")(p.Type); err != nil {
				add(fmt.Sprintf("parameters[%d].type", j), p.Type, err)
			}
		}
	}

	kind, kindErr := a.kind()
	if kindErr != nil {
		err := errors.NewValidationError(prefix+".kind", a.Kind, kindErr.Error()).
			WithLocation(loc).
			WithSuggestion(fmt.Sprintf("use one of %v or name the method after the kind", models.AllKinds()))
		errors.AddToMultiple(errs, err)
	}

	if a.Model != "" && !m.hasModel(a.Model) {
		add("model", a.Model, fmt.Errorf("model '%s' is not declared under models", a.Model))
	}
	if a.Parent != "" && !m.hasModel(a.Parent) {
		add("parent", a.Parent, fmt.Errorf("model '%s' is not declared under models", a.Parent))
	}
	if a.Model == "" && kind != models.KindCreate && kind != models.KindUnknown {
		add("model", a.Model, fmt.Errorf("a %s test needs a model", kind))
	}
}

// kind resolves the declared kind, falling back to the method name
func (a *Action) kind() (models.ActionKind, error) {
	if a.Kind != "" {
		return models.ParseActionKind(a.Kind)
	}
	kind, err := models.ParseActionKind(a.Method)
	if err != nil {
		return models.KindUnknown, fmt.Errorf("kind cannot be inferred from method '%s'", a.Method)
	}
	return kind, nil
}

func (m *Manifest) hasModel(class string) bool {
	_, ok := m.Models[registry.NormalizeClass(class)]
	return ok
}

func trimVariable(name string) string {
	if len(name) > 0 && name[0] == '$' {
		return name[1:]
	}
	return name
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
