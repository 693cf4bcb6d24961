package manifest

import (
	"gopkg.in/yaml.v3"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/models"
)

// RuleObject is an opaque rule object such as a Rule::unique(...) call.
// It has no textual form and never produces a validation case.
type RuleObject struct {
	Class string
}

// String names the object rule
func (o RuleObject) String() string {
	return o.Class
}

// RuleMap decodes the request's rules in declaration order. Each field is
// a "|"-delimited string, a list of strings and {object: Class} maps, or a
// single {object: Class} map.
func (r Request) RuleMap(source string) (models.RuleMap, error) {
	node := &r.Rules
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, shapeError(source, node, "rules must be a mapping of field to rules")
	}

	var ruleMap models.RuleMap
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, shapeError(source, key, "rule field names must be non-empty strings")
		}

		spec, err := decodeSpec(source, value)
		if err != nil {
			return nil, err
		}
		ruleMap = ruleMap.With(key.Value, spec)
	}
	return ruleMap, nil
}

func decodeSpec(source string, node *yaml.Node) (models.RuleSpec, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return models.DelimitedRules(""), nil
		}
		return models.DelimitedRules(node.Value), nil

	case yaml.SequenceNode:
		items := make([]models.Rule, 0, len(node.Content))
		for _, item := range node.Content {
			rule, err := decodeRule(source, item)
			if err != nil {
				return models.RuleSpec{}, err
			}
			items = append(items, rule)
		}
		return models.RuleList(items...), nil

	case yaml.MappingNode:
		rule, err := decodeRule(source, node)
		if err != nil {
			return models.RuleSpec{}, err
		}
		return models.RuleList(rule), nil
	}
	return models.RuleSpec{}, shapeError(source, node, "rules must be a string, a list or an object")
}

func decodeRule(source string, node *yaml.Node) (models.Rule, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return models.TextRule(node.Value), nil
	case yaml.MappingNode:
		var obj struct {
			Object string `yaml:"object"`
		}
		if err := node.Decode(&obj); err != nil || obj.Object == "" {
			return models.Rule{}, shapeError(source, node, "rule objects are written as {object: Class}")
		}
		return models.ObjectRule(RuleObject{Class: obj.Object}), nil
	}
	return models.Rule{}, shapeError(source, node, "a rule must be a string or {object: Class}")
}

func shapeError(source string, node *yaml.Node, message string) *errors.SyntaxError {
	return errors.NewSyntaxError(message, node.Value, 0).
		WithLocation(errors.SourceLocation{File: source, Line: node.Line, Column: node.Column})
}

// requestSource is the rules entry point of a request declared in a manifest
type requestSource struct {
	rules models.RuleMap
}

// Rules implements models.RuleSource
func (s *requestSource) Rules() (models.RuleMap, error) {
	return s.rules, nil
}
