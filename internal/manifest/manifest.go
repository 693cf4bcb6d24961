// Package manifest loads the YAML (or JSON) document describing the
// controller actions to generate tests for: their routes, the models they
// operate on, and the request classes whose rules drive payloads and
// validation cases.
package manifest

import (
	"gopkg.in/yaml.v3"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/registry"
	"github.com/toyz/testgen/internal/utils"
)

// Manifest is one parsed manifest document
type Manifest struct {
	Config   ConfigBlock          `yaml:"config"`
	Requests map[string]Request   `yaml:"requests"`
	Models   map[string]ModelSpec `yaml:"models"`
	Actions  []Action             `yaml:"actions"`

	// Source names the document in diagnostics, usually its path
	Source string `yaml:"-"`
}

// ConfigBlock holds generator settings; CLI flags override them
type ConfigBlock struct {
	SuperAdminRole   bool     `yaml:"super_admin_role"`
	ActorVariable    string   `yaml:"actor_variable"`
	ActorClass       string   `yaml:"actor_class"`
	FrameworkVersion string   `yaml:"framework_version"`
	IgnoreRules      []string `yaml:"ignore_rules"`
	API              bool     `yaml:"api"`
}

// Request describes a request-validation class
type Request struct {
	Extends  string    `yaml:"extends"`
	Abstract bool      `yaml:"abstract"`
	Rules    yaml.Node `yaml:"rules"`
}

// ModelSpec describes a model class
type ModelSpec struct {
	Table       string `yaml:"table"`
	RouteKey    string `yaml:"route_key"`
	SoftDeletes bool   `yaml:"soft_deletes"`
}

// Action describes one controller action to generate a test for
type Action struct {
	Controller string      `yaml:"controller"`
	Method     string      `yaml:"method"`
	Kind       string      `yaml:"kind"`
	API        *bool       `yaml:"api"`
	Model      string      `yaml:"model"`
	Parent     string      `yaml:"parent"`
	Parameters []Parameter `yaml:"parameters"`
	Route      Route       `yaml:"route"`

	line, column int
}

// Parameter is one declared action parameter
type Parameter struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Route is the route an action is registered under
type Route struct {
	Name       string   `yaml:"name"`
	Parameters []string `yaml:"parameters"`
	Middleware []string `yaml:"middleware"`
}

// UnmarshalYAML records where the action was declared
func (a *Action) UnmarshalYAML(node *yaml.Node) error {
	type plain Action
	if err := node.Decode((*plain)(a)); err != nil {
		return err
	}
	a.line, a.column = node.Line, node.Column
	return nil
}

// Location returns where the action was declared in source
func (a *Action) Location(source string) errors.SourceLocation {
	return errors.SourceLocation{File: source, Line: a.line, Column: a.column}
}

// Parse decodes a manifest document. JSON documents are accepted as YAML.
func Parse(data []byte, source string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		parseErr := errors.WrapParseError("manifest", err)
		parseErr.WithLocation(errors.SourceLocation{File: source})
		parseErr.WithSuggestion("check the manifest indentation and that every action is a mapping")
		return nil, parseErr
	}
	m.Source = source
	m.Requests = normalizeKeys(m.Requests)
	m.Models = normalizeKeys(m.Models)
	return &m, nil
}

// normalizeKeys strips leading namespace separators from class keys
func normalizeKeys[V any](in map[string]V) map[string]V {
	out := make(map[string]V, len(in))
	for class, v := range in {
		out[registry.NormalizeClass(class)] = v
	}
	return out
}

// Loader reads manifests from disk
type Loader struct {
	reader *utils.FileReader
}

// NewLoader creates a loader with its own file cache
func NewLoader() *Loader {
	return &Loader{reader: utils.NewFileReader()}
}

// Load reads, parses and validates the manifest at path
func (l *Loader) Load(path string) (*Manifest, error) {
	data, err := l.reader.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}

	m, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
