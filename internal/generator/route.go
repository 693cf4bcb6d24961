package generator

import (
	"strings"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/templates"
)

// RouteBinding is the value one route parameter is bound to
type RouteBinding struct {
	Parameter string
	Value     string // empty when the test author must fill it in
}

// BindRouteParameters binds each parameter named like the model (ignoring
// case) to $model->routeKey and leaves every other parameter empty
func BindRouteParameters(params []string, shortName, modelVariable, routeKey string) []RouteBinding {
	bindings := make([]RouteBinding, len(params))
	for i, param := range params {
		bindings[i] = RouteBinding{Parameter: param}
		if shortName != "" && strings.EqualFold(param, shortName) {
			bindings[i].Value = modelVariable + "->" + routeKey
		}
	}
	return bindings
}

// RouteExpression renders route("name") or route("name", ["p" => v, ...])
func RouteExpression(name string, bindings []RouteBinding) string {
	quote := templates.DefaultTemplateUtils.QuoteString
	if len(bindings) == 0 {
		return "route(" + quote(name) + ")"
	}

	params := make([]string, len(bindings))
	for i, binding := range bindings {
		params[i] = quote(binding.Parameter) + " => " + binding.Value
	}
	return "route(" + quote(name) + ", [" + strings.Join(params, ", ") + "])"
}

// RouteBindings binds the route parameters against the primary model
func (g *Generator) RouteBindings() []RouteBinding {
	params := g.route.ParameterNames()
	if len(params) == 0 {
		return nil
	}
	g.mustModel("RouteBindings")
	return BindRouteParameters(params, g.modelRel.ShortName(), g.ModelVariable(), g.model.RouteKeyName())
}

// Route returns the route resolution expression for the action
func (g *Generator) Route() string {
	name := g.route.Name()
	if strings.TrimSpace(name) == "" {
		errors.Violate("Route", "a named route")
	}
	return RouteExpression(name, g.RouteBindings())
}
