package templates

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/models"
)

// BodyData is the data every test body template is executed with
type BodyData struct {
	ModelVariable    string                // $post
	NewModelVariable string                // $newPost
	ModelShortName   string                // Post
	ModelMethodName  string                // post
	RouteKey         string                // id
	Route            string                // route("posts.show", ["post" => $post->id])
	Table            string                // posts
	AssertDeleted    string                // assertDeleted | assertSoftDeleted | assertModelMissing
	WebActingAs      string                // actingAs($user)-> or empty
	ParentChain      string                // ->for($user) or empty
	Payload          []models.PayloadEntry // fields of the primary model
	UpdatePayload    []models.PayloadEntry // fields of the freshly made model
}

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]*template.Template
}

// NewTemplateRegistry creates a new template registry with all templates parsed
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]*template.Template),
	}

	registry.registerReadTemplates()
	registry.registerWriteTemplates()
	registry.registerDeleteTemplates()

	return registry
}

// Name builds the registry key of the body template for a kind and mode
func Name(kind models.ActionKind, api bool) string {
	if api {
		return kind.String() + "-api"
	}
	return kind.String() + "-web"
}

// Has reports whether a template is registered
func (tr *TemplateRegistry) Has(name string) bool {
	_, exists := tr.templates[name]
	return exists
}

// Names lists registered template names sorted
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute renders the named template
func (tr *TemplateRegistry) Execute(name string, data BodyData) (string, error) {
	tmpl, exists := tr.templates[name]
	if !exists {
		return "", errors.NewGenerationError(name, "template lookup", fmt.Sprintf("template not found: %s", name))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError(name, err)
	}
	return buf.String(), nil
}

// register parses a template; templates are compiled in, so a parse
// failure is a programming error
func (tr *TemplateRegistry) register(name, text string) {
	tr.templates[name] = template.Must(template.New(name).Funcs(DefaultTemplateUtils.FuncMap()).Parse(text))
}

// registerReadTemplates registers index, show, create and edit bodies
func (tr *TemplateRegistry) registerReadTemplates() {
	tr.register("index-api", `{{.ModelVariable}} = {{.ModelShortName}}::factory(){{.ParentChain}}->create();

$response = $this->getJson({{.Route}});

$response->assertOk();`)

	tr.register("index-web", `{{.ModelVariable}} = {{.ModelShortName}}::factory(){{.ParentChain}}->create();

$response = $this->{{.WebActingAs}}get({{.Route}});

$response->assertOk();`)

	tr.register("show-api", `{{.ModelVariable}} = {{.ModelShortName}}::factory(){{.ParentChain}}->create();

$response = $this->getJson({{.Route}});

$response->assertOk()
    ->assertJsonPath('data.{{.RouteKey}}', {{.ModelVariable}}->{{.RouteKey}});`)

	tr.register("show-web", `{{.ModelVariable}} = {{.ModelShortName}}::factory(){{.ParentChain}}->create();

$response = $this->{{.WebActingAs}}get({{.Route}});

$response->assertOk()
    ->assertViewHas('{{.ModelMethodName}}');`)

	tr.register("create-web", `$response = $this->{{.WebActingAs}}get({{.Route}});

$response->assertOk();`)

	tr.register("edit-web", `{{.ModelVariable}} = {{.ModelShortName}}::factory(){{.ParentChain}}->create();

$response = $this->{{.WebActingAs}}get({{.Route}});

$response->assertOk()
    ->assertViewHas('{{.ModelMethodName}}');`)
}

// registerWriteTemplates registers store and update bodies
func (tr *TemplateRegistry) registerWriteTemplates() {
	tr.register("store-api", `{{.ModelVariable}} = {{.ModelShortName}}::factory(){{.ParentChain}}->make();

$response = $this->postJson({{.Route}}, {{array .Payload}});

$response->assertCreated();
$this->assertDatabaseHas('{{.Table}}', {{array .Payload}});`)

	tr.register("store-web", `{{.ModelVariable}} = {{.ModelShortName}}::factory(){{.ParentChain}}->make();

$response = $this->{{.WebActingAs}}post({{.Route}}, {{array .Payload}});

$response->assertRedirect();
$this->assertDatabaseHas('{{.Table}}', {{array .Payload}});`)

	tr.register("update-api", `{{.ModelVariable}} = {{.ModelShortName}}::factory(){{.ParentChain}}->create();
{{.NewModelVariable}} = {{.ModelShortName}}::factory()->make();

$response = $this->putJson({{.Route}}, {{array .UpdatePayload}});

$response->assertOk();
$this->assertDatabaseHas('{{.Table}}', {{array .UpdatePayload}});`)

	tr.register("update-web", `{{.ModelVariable}} = {{.ModelShortName}}::factory(){{.ParentChain}}->create();
{{.NewModelVariable}} = {{.ModelShortName}}::factory()->make();

$response = $this->{{.WebActingAs}}put({{.Route}}, {{array .UpdatePayload}});

$response->assertRedirect();
$this->assertDatabaseHas('{{.Table}}', {{array .UpdatePayload}});`)
}

// registerDeleteTemplates registers destroy bodies
func (tr *TemplateRegistry) registerDeleteTemplates() {
	tr.register("destroy-api", `{{.ModelVariable}} = {{.ModelShortName}}::factory(){{.ParentChain}}->create();

$response = $this->deleteJson({{.Route}});

$response->assertNoContent();
$this->{{.AssertDeleted}}({{.ModelVariable}});`)

	tr.register("destroy-web", `{{.ModelVariable}} = {{.ModelShortName}}::factory(){{.ParentChain}}->create();

$response = $this->{{.WebActingAs}}delete({{.Route}});

$response->assertRedirect();
$this->{{.AssertDeleted}}({{.ModelVariable}});`)
}

// Global template registry instance
var DefaultTemplateRegistry = NewTemplateRegistry()
