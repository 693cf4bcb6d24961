package generator

import (
	"fmt"
	"sort"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/models"
	"github.com/toyz/testgen/internal/templates"
	"github.com/toyz/testgen/internal/utils"
)

// KindBuilder writes the body of one action kind into b
type KindBuilder func(g *Generator, b *Builder) error

// KindRegistry maps action kinds to the builders producing their bodies
type KindRegistry struct {
	*utils.BaseRegistry[models.ActionKind, KindBuilder]
}

// NewKindRegistry creates an empty kind registry
func NewKindRegistry() *KindRegistry {
	base := utils.NewBaseRegistry[models.ActionKind, KindBuilder]("kind",
		func(kind models.ActionKind, build KindBuilder, _ map[models.ActionKind]KindBuilder) error {
			if kind == models.KindUnknown {
				return fmt.Errorf("cannot register a builder for the unknown kind")
			}
			if build == nil {
				return fmt.Errorf("builder for kind '%s' is nil", kind)
			}
			return nil
		},
		utils.NoDuplicateValidator[models.ActionKind, KindBuilder]("action kind"),
	)
	return &KindRegistry{BaseRegistry: base}
}

// MustRegister registers a builder and panics when the registration is rejected
func (r *KindRegistry) MustRegister(kind models.ActionKind, build KindBuilder) {
	if err := r.Register(kind, build); err != nil {
		errors.Violate("KindRegistry.MustRegister", fmt.Sprintf("a new valid kind (%v)", err))
	}
}

// Kinds lists the registered kinds in resource order
func (r *KindRegistry) Kinds() []models.ActionKind {
	kinds := r.List()
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// DefaultKindRegistry holds the builders for every resource action
var DefaultKindRegistry = newDefaultKindRegistry()

func newDefaultKindRegistry() *KindRegistry {
	r := NewKindRegistry()
	r.MustRegister(models.KindIndex, TemplateKind(true, false))
	r.MustRegister(models.KindShow, TemplateKind(true, false))
	r.MustRegister(models.KindCreate, TemplateKind(false, false))
	r.MustRegister(models.KindStore, TemplateKind(true, true))
	r.MustRegister(models.KindEdit, TemplateKind(true, false))
	r.MustRegister(models.KindUpdate, TemplateKind(true, true))
	r.MustRegister(models.KindDestroy, TemplateKind(true, false))
	return r
}

// TemplateKind returns a builder that writes the arrange block and renders
// the kind's body template. needsModel makes a missing model a contract
// violation; withRows attaches validation cases.
func TemplateKind(needsModel, withRows bool) KindBuilder {
	return func(g *Generator, b *Builder) error {
		if needsModel {
			g.mustModel(g.kind.String())
		}

		api := g.IsAPI()
		name := templates.Name(g.kind, api)
		if !g.templates.Has(name) {
			mode := "web"
			if api {
				mode = "API"
			}
			return errors.NewGenerationError(name, "template lookup",
				fmt.Sprintf("kind '%s' has no %s test body", g.kind, mode)).
				WithSuggestion("generate a web test for form actions")
		}

		data := g.BodyData()
		g.WriteArrange(b, api)
		body, err := g.templates.Execute(name, data)
		if err != nil {
			return err
		}
		b.Text(body)

		if withRows {
			b.Rows(g.DataProvider()...)
		}
		return nil
	}
}

// WriteArrange writes the actor and parent setup lines. The actor is only
// created when the route requires auth in a way the current mode can act on.
func (g *Generator) WriteArrange(b *Builder, api bool) {
	actor := g.config.ActorVariable
	auth := g.Auth()

	var actingAs string
	if api {
		actingAs = g.WriteAPIActingAs(b, actor)
	} else {
		actingAs = WebActingAs(auth, actor)
	}

	if actingAs != "" {
		b.Import(g.config.ActorClass)
		b.Line(fmt.Sprintf("%s = %s::factory()->create();", actor, utils.ClassBaseName(g.config.ActorClass)))
		if g.config.SuperAdminRole {
			b.Line(fmt.Sprintf("%s->assignRole('%s');", actor, SuperAdminRole))
		}
		if api {
			b.Line(actingAs)
		}
		b.Blank()
	}

	// a parent of the actor's class is the actor itself
	if g.HasParent() && !(actingAs != "" && g.ParentVariable() == actor) {
		b.Line(fmt.Sprintf("%s = %s::factory()->create();", g.ParentVariable(), g.parentRel.ShortName()))
		b.Blank()
	}
}

// BodyData resolves the values body templates are rendered with. The web
// acting-as chain is left empty in API mode.
func (g *Generator) BodyData() templates.BodyData {
	data := templates.BodyData{Route: g.Route()}
	if !g.IsAPI() {
		data.WebActingAs = WebActingAs(g.Auth(), g.config.ActorVariable)
	}
	if g.HasParent() {
		data.ParentChain = "->for(" + g.ParentVariable() + ")"
	}
	if !g.HasModel() {
		return data
	}

	globals := g.Globals()
	data.ModelVariable = globals.ModelVariable
	data.NewModelVariable = g.NewModelVariable()
	data.ModelShortName = globals.ModelShortName
	data.ModelMethodName = globals.ModelMethodName
	data.RouteKey = g.RouteKey()
	data.Table = globals.Table
	data.AssertDeleted = globals.AssertDeleted
	data.Payload = g.PostData(false)
	data.UpdatePayload = g.PostData(true)
	return data
}
