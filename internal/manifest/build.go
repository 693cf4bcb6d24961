package manifest

import (
	"fmt"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/generator"
	"github.com/toyz/testgen/internal/models"
	"github.com/toyz/testgen/internal/registry"
)

// Job is everything needed to generate the test body of one action
type Job struct {
	Index  int
	Action *models.ActionMetadata
	Route  *models.RouteMetadata
	Kind   models.ActionKind // KindUnknown lets the generator infer it
	API    *bool
	Model  *models.ModelDescriptor
	Parent *models.ModelDescriptor
}

// Name returns Controller@method
func (j *Job) Name() string {
	return j.Action.String()
}

// NewGenerator creates a generator for the job with its models set
func (j *Job) NewGenerator(cfg generator.Config, opts ...generator.Option) *generator.Generator {
	if j.Kind != models.KindUnknown {
		opts = append(opts, generator.WithKind(j.Kind))
	}
	if j.API != nil {
		opts = append(opts, generator.WithAPI(*j.API))
	}

	g := generator.New(j.Action, j.Route, cfg, opts...)
	if j.Model != nil {
		g.SetModel(j.Model)
	}
	if j.Parent != nil {
		g.SetParent(j.Parent)
	}
	return g
}

// GeneratorConfig turns the config block into a generator configuration
func (m *Manifest) GeneratorConfig() generator.Config {
	cfg := generator.DefaultConfig()
	cfg.SuperAdminRole = m.Config.SuperAdminRole
	cfg.FrameworkVersion = m.Config.FrameworkVersion
	cfg.IgnoreRules = m.Config.IgnoreRules
	cfg.API = m.Config.API
	if m.Config.ActorVariable != "" {
		cfg.ActorVariable = m.Config.ActorVariable
	}
	if m.Config.ActorClass != "" {
		cfg.ActorClass = registry.NormalizeClass(m.Config.ActorClass)
	}
	return cfg
}

// Overrides are settings given outside the manifest, on the command line
// or with an HTTP request. They win over the config block.
type Overrides struct {
	SuperAdmin       bool
	FrameworkVersion string
}

// Apply overlays the overrides on cfg
func (o Overrides) Apply(cfg generator.Config) generator.Config {
	if o.SuperAdmin {
		cfg.SuperAdminRole = true
	}
	if o.FrameworkVersion != "" {
		cfg.FrameworkVersion = o.FrameworkVersion
	}
	return cfg
}

// TypeRegistry registers every declared request and model class. Concrete
// requests get a factory returning their declared rules.
func (m *Manifest) TypeRegistry() (registry.TypeRegistry, error) {
	types := registry.NewTypeRegistry()

	for _, class := range sortedKeys(m.Requests) {
		req := m.Requests[class]
		ruleMap, err := req.RuleMap(m.Source)
		if err != nil {
			return nil, err
		}

		info := registry.TypeInfo{
			Name:     class,
			Extends:  registry.NormalizeClass(req.Extends),
			Abstract: req.Abstract,
		}
		if info.Extends == "" {
			info.Extends = registry.FormRequestClass
		}
		if !req.Abstract {
			source := &requestSource{rules: ruleMap}
			info.Factory = func() (any, error) { return source, nil }
		}

		if err := types.Register(info); err != nil {
			return nil, err
		}
	}

	for _, class := range sortedKeys(m.Models) {
		if _, exists := types.Lookup(class); exists {
			continue
		}
		if err := types.Register(registry.TypeInfo{Name: class}); err != nil {
			return nil, err
		}
	}
	return types, nil
}

// Jobs converts the actions into generation jobs in manifest order
func (m *Manifest) Jobs() ([]*Job, error) {
	jobs := make([]*Job, 0, len(m.Actions))
	for i := range m.Actions {
		a := &m.Actions[i]

		job := &Job{
			Index: i,
			Action: &models.ActionMetadata{
				Controller: registry.NormalizeClass(a.Controller),
				Method:     a.Method,
				Parameters: make([]models.Parameter, len(a.Parameters)),
			},
			Route: &models.RouteMetadata{
				RouteName:   a.Route.Name,
				Parameters:  a.Route.Parameters,
				Middlewares: a.Route.Middleware,
			},
			API: a.API,
		}
		for j, p := range a.Parameters {
			job.Action.Parameters[j] = models.Parameter{Name: trimVariable(p.Name), Type: registry.NormalizeClass(p.Type)}
		}

		if a.Kind != "" {
			kind, err := models.ParseActionKind(a.Kind)
			if err != nil {
				return nil, errors.NewValidationError(fmt.Sprintf("actions[%d].kind", i), a.Kind, err.Error()).
					WithLocation(a.Location(m.Source))
			}
			job.Kind = kind
		}

		var err error
		if job.Model, err = m.descriptor(a.Model); err != nil {
			return nil, err
		}
		if job.Parent, err = m.descriptor(a.Parent); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (m *Manifest) descriptor(class string) (*models.ModelDescriptor, error) {
	if class == "" {
		return nil, nil
	}
	class = registry.NormalizeClass(class)
	spec, ok := m.Models[class]
	if !ok {
		return nil, errors.NewValidationError("model", class, "model is not declared under models").
			WithLocation(errors.SourceLocation{File: m.Source})
	}
	return &models.ModelDescriptor{
		Class:       class,
		Table:       spec.Table,
		RouteKey:    spec.RouteKey,
		SoftDeletes: spec.SoftDeletes,
	}, nil
}
