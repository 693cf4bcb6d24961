package generator

import (
	"fmt"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/models"
	"github.com/toyz/testgen/internal/registry"
	"github.com/toyz/testgen/internal/templates"
	"github.com/toyz/testgen/internal/utils"
)

// Generator produces the test body for one controller action. It is
// single-use: Generate may be called once, and an instance must not be
// shared between goroutines.
type Generator struct {
	action *models.ActionMetadata
	route  models.Route
	config Config

	kind models.ActionKind
	api  *bool

	types     registry.TypeRegistry
	reader    models.RelationReader
	logger    Logger
	kinds     *KindRegistry
	templates *templates.TemplateRegistry

	model     models.Model
	modelRel  models.ModelRelations
	parent    models.Model
	parentRel models.ModelRelations
	imports   *templates.ImportManager

	auth         models.AuthState
	authResolved bool

	rules       models.RuleMap
	rulesLoaded bool

	generated bool
}

// Option configures a Generator
type Option func(*Generator)

// WithTypeRegistry sets the registry request types are resolved from
func WithTypeRegistry(types registry.TypeRegistry) Option {
	return func(g *Generator) { g.types = types }
}

// WithRelationReader replaces the default descriptor based relation reader
func WithRelationReader(reader models.RelationReader) Option {
	return func(g *Generator) { g.reader = reader }
}

// WithLogger sets the logger extraction outcomes are reported to
func WithLogger(logger Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithKindRegistry replaces the default kind builders
func WithKindRegistry(kinds *KindRegistry) Option {
	return func(g *Generator) { g.kinds = kinds }
}

// WithTemplates replaces the default body templates
func WithTemplates(tr *templates.TemplateRegistry) Option {
	return func(g *Generator) { g.templates = tr }
}

// WithKind sets the action kind; by default it is inferred from the method name
func WithKind(kind models.ActionKind) Option {
	return func(g *Generator) { g.kind = kind }
}

// WithAPI forces API or web mode
func WithAPI(api bool) Option {
	return func(g *Generator) { g.api = &api }
}

// New creates a generator for an action and the route it is registered under
func New(action *models.ActionMetadata, route models.Route, cfg Config, opts ...Option) *Generator {
	if action == nil {
		errors.Violate("New", "action metadata")
	}
	if route == nil {
		errors.Violate("New", "route metadata")
	}

	g := &Generator{
		action:  action,
		route:   route,
		config:  cfg.withDefaults(),
		imports: templates.NewImportManager(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.reader == nil {
		g.reader = models.DescriptorReader{}
	}
	if g.logger == nil {
		g.logger = discardLogger{}
	}
	if g.kinds == nil {
		g.kinds = DefaultKindRegistry
	}
	if g.templates == nil {
		g.templates = templates.DefaultTemplateRegistry
	}
	if g.kind == models.KindUnknown {
		if kind, err := models.ParseActionKind(action.Method); err == nil {
			g.kind = kind
		}
	}
	return g
}

// SetModel sets the primary model, registers its import and reads its relations
func (g *Generator) SetModel(model models.Model) *Generator {
	if model == nil {
		errors.Violate("SetModel", "a model")
	}
	g.model = model
	g.modelRel = g.reader.Read(model)
	g.imports.AddImport(model.TypeName())
	return g
}

// SetParent sets the parent model the primary model belongs to
func (g *Generator) SetParent(parent models.Model) *Generator {
	if parent == nil {
		errors.Violate("SetParent", "a model")
	}
	g.parent = parent
	g.parentRel = g.reader.Read(parent)
	g.imports.AddImport(parent.TypeName())
	return g
}

// Action returns the action being generated
func (g *Generator) Action() *models.ActionMetadata {
	return g.action
}

// Config returns the generator configuration
func (g *Generator) Config() Config {
	return g.config
}

// Kind returns the action kind
func (g *Generator) Kind() models.ActionKind {
	return g.kind
}

// HasModel reports whether a primary model is set
func (g *Generator) HasModel() bool {
	return g.model != nil
}

// HasParent reports whether a parent model is set
func (g *Generator) HasParent() bool {
	return g.parent != nil
}

func (g *Generator) mustModel(primitive string) {
	if g.model == nil {
		errors.Violate(primitive, "a model set with SetModel")
	}
}

func (g *Generator) mustParent(primitive string) {
	if g.parent == nil {
		errors.Violate(primitive, "a parent set with SetParent")
	}
}

// ModelShortName returns the class short name of the primary model, e.g. Post
func (g *Generator) ModelShortName() string {
	g.mustModel("ModelShortName")
	return g.modelRel.ShortName()
}

// ModelVariable returns the variable holding the primary model, e.g. $post
func (g *Generator) ModelVariable() string {
	g.mustModel("ModelVariable")
	return "$" + utils.LcFirst(g.modelRel.ShortName())
}

// NewModelVariable returns the variable holding the updated instance, e.g. $newPost
func (g *Generator) NewModelVariable() string {
	g.mustModel("NewModelVariable")
	return "$new" + g.modelRel.ShortName()
}

// ModelMethodName returns the snake-cased short name, e.g. blog_post
func (g *Generator) ModelMethodName() string {
	g.mustModel("ModelMethodName")
	return utils.ToSnakeCase(g.modelRel.ShortName())
}

// Table returns the table of the primary model
func (g *Generator) Table() string {
	g.mustModel("Table")
	return g.model.TableName()
}

// RouteKey returns the route key attribute of the primary model
func (g *Generator) RouteKey() string {
	g.mustModel("RouteKey")
	return g.model.RouteKeyName()
}

// ParentVariable returns the variable holding the parent model
func (g *Generator) ParentVariable() string {
	g.mustParent("ParentVariable")
	return "$" + utils.LcFirst(g.parentRel.ShortName())
}

// AssertDeleted names the assertion proving the primary model was deleted
func (g *Generator) AssertDeleted() string {
	g.mustModel("AssertDeleted")
	return g.config.DeletionAssertion(g.modelRel.IsSoftDeleteAble())
}

// IsAPI reports whether an API test is generated: forced mode first, then
// an "api" middleware on the route, then the configured default
func (g *Generator) IsAPI() bool {
	if g.api != nil {
		return *g.api
	}
	for _, mw := range g.route.Middleware() {
		if mw == "api" {
			return true
		}
	}
	return g.config.API
}

// Rules returns the validation rules of the action, extracting them on first use
func (g *Generator) Rules() models.RuleMap {
	if !g.rulesLoaded {
		g.rules = NewRuleExtractor(g.types, g.logger).Extract(g.action)
		g.rulesLoaded = true
	}
	return g.rules
}

// Generate builds the test body. It runs the kind builder exactly once.
func (g *Generator) Generate() (*models.GeneratedFragment, error) {
	if g.generated {
		errors.Violate("Generate", "a fresh generator")
	}
	g.generated = true
	g.Auth()

	build, ok := g.kinds.Get(g.kind)
	if !ok {
		return nil, errors.NewGenerationError(g.action.String(), "kind lookup",
			fmt.Sprintf("no builder registered for kind '%s'", g.kind)).
			WithSuggestion(fmt.Sprintf("use one of %v or register a builder", g.kinds.Kinds()))
	}

	b := NewBuilder()
	b.imports.Merge(g.imports)
	if err := build(g, b); err != nil {
		return nil, errors.WrapGenerateError(g.action.String(), "build", err)
	}

	fragment := b.Fragment()
	fragment.Action = g.action.String()
	fragment.Kind = g.kind
	fragment.API = g.IsAPI()
	return fragment, nil
}
