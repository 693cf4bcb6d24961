package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/generator"
	"github.com/toyz/testgen/internal/models"
	"github.com/toyz/testgen/internal/registry"
)

const blogManifest = `
config:
  super_admin_role: true
  framework_version: "10.2"
  actor_variable: admin

requests:
  App\Http\Requests\BaseRequest:
    abstract: true
  App\Http\Requests\StorePostRequest:
    extends: App\Http\Requests\BaseRequest
    rules:
      title: required|string|max:255
      age: numeric|min:18
      tags:
        - array
        - {object: Illuminate\Validation\Rules\In}
      slug: {object: Illuminate\Validation\Rules\Unique}

models:
  \App\Models\Post:
    soft_deletes: true
  App\Models\Blog:
    route_key: slug

actions:
  - controller: App\Http\Controllers\PostController
    method: store
    api: true
    model: App\Models\Post
    parent: App\Models\Blog
    parameters:
      - {name: $request, type: \App\Http\Requests\StorePostRequest}
    route:
      name: blogs.posts.store
      parameters: [blog]
      middleware: [api, auth:sanctum]
  - controller: App\Http\Controllers\PostController
    method: create
    route:
      name: posts.create
      middleware: [web, auth]
  - controller: App\Http\Controllers\PostController
    method: remove
    kind: destroy
    model: \App\Models\Post
    route:
      name: posts.destroy
      parameters: [post]
`

func parseBlog(t *testing.T) *Manifest {
	t.Helper()
	m, err := Parse([]byte(blogManifest), "blog.yaml")
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	return m
}

func TestParse(t *testing.T) {
	m := parseBlog(t)

	assert.Equal(t, "blog.yaml", m.Source)
	assert.True(t, m.Config.SuperAdminRole)
	assert.Len(t, m.Actions, 3)
	assert.Contains(t, m.Models, `App\Models\Post`)
	assert.Equal(t, "slug", m.Models[`App\Models\Blog`].RouteKey)

	loc := m.Actions[1].Location(m.Source)
	assert.Equal(t, "blog.yaml", loc.File)
	assert.Greater(t, loc.Line, m.Actions[0].Location(m.Source).Line)
}

func TestRequest_RuleMapKeepsOrder(t *testing.T) {
	m := parseBlog(t)

	ruleMap, err := m.Requests[`App\Http\Requests\StorePostRequest`].RuleMap(m.Source)
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "age", "tags", "slug"}, ruleMap.Fields())

	title, _ := ruleMap.Get("title")
	assert.Equal(t, models.DelimitedRules("required|string|max:255"), title)

	tags, _ := ruleMap.Get("tags")
	assert.Equal(t, models.RuleList(
		models.TextRule("array"),
		models.ObjectRule(RuleObject{Class: `Illuminate\Validation\Rules\In`}),
	), tags)

	slug, _ := ruleMap.Get("slug")
	assert.Equal(t, models.RuleList(models.ObjectRule(RuleObject{Class: `Illuminate\Validation\Rules\Unique`})), slug)

	empty, err := m.Requests[`App\Http\Requests\BaseRequest`].RuleMap(m.Source)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParse_JSON(t *testing.T) {
	doc := `{
  "models": {"App\\Models\\Post": {}},
  "actions": [
    {"controller": "PostController", "method": "index", "model": "App\\Models\\Post",
     "route": {"name": "posts.index", "middleware": ["api"]}}
  ]
}`
	m, err := Parse([]byte(doc), "request body")
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, "posts.index", m.Actions[0].Route.Name)
	assert.Equal(t, []string{"api"}, m.Actions[0].Route.Middleware)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("actions: [\n  - bad"), "broken.yaml")
	require.Error(t, err)

	var syntaxErr *errors.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "broken.yaml", syntaxErr.Location().File)
	assert.NotEmpty(t, syntaxErr.Suggestions())
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected []string
	}{
		{
			name:     "no actions",
			doc:      "config: {}\n",
			expected: []string{"declares no actions"},
		},
		{
			name: "bad action fields",
			doc: `
actions:
  - controller: App/Http/PostController
    method: 2store
    route:
      name: "posts store"
      middleware: [""]
`,
			expected: []string{
				"actions[0].controller",
				"actions[0].method",
				"actions[0].route.name",
				"actions[0].route.middleware",
				"kind cannot be inferred from method '2store'",
			},
		},
		{
			name: "kinds and models",
			doc: `
models:
  App\Models\Post: {}
actions:
  - {controller: PostController, method: publish, route: {name: posts.publish}}
  - {controller: PostController, method: show, kind: reveal, route: {name: posts.show}}
  - {controller: PostController, method: update, model: App\Models\Missing, route: {name: posts.update}}
  - {controller: PostController, method: destroy, route: {name: posts.destroy}}
  - {controller: PostController, method: index, model: App\Models\Post, parent: App\Models\Nope, route: {name: posts.index}}
`,
			expected: []string{
				"kind cannot be inferred from method 'publish'",
				"unknown action kind 'reveal'",
				"model 'App\\Models\\Missing' is not declared",
				"a destroy test needs a model",
				"model 'App\\Models\\Nope' is not declared",
			},
		},
		{
			name: "rules",
			doc: `
requests:
  App\Http\Requests\StorePostRequest:
    rules:
      age: "numeric|:18"
  App\Http\Requests\Broken:
    rules: [required]
  App\Http\Requests\BadItem:
    rules:
      tags: [[nested]]
models:
  App\Models\Post: {}
actions:
  - {controller: PostController, method: create, route: {name: posts.create}}
`,
			expected: []string{":18", "rules must be a mapping", "a rule must be a string or {object: Class}"},
		},
		{
			name: "config",
			doc: `
config:
  framework_version: latest
  actor_variable: "$2user"
  actor_class: App/Models/User
  ignore_rules: [nullable, "string|numeric"]
actions:
  - {controller: PostController, method: create, route: {name: posts.create}}
`,
			expected: []string{"framework_version", "actor_variable", "actor_class", "ignore_rules[1]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.doc), "test.yaml")
			require.NoError(t, err)

			err = m.Validate()
			require.Error(t, err)

			var multi *errors.MultipleErrors
			require.ErrorAs(t, err, &multi)
			assert.Equal(t, len(tt.expected), multi.Count(), err.Error())
			for _, fragment := range tt.expected {
				assert.Contains(t, err.Error(), fragment)
			}
		})
	}
}

func TestManifest_GeneratorConfig(t *testing.T) {
	cfg := parseBlog(t).GeneratorConfig()

	assert.True(t, cfg.SuperAdminRole)
	assert.Equal(t, "admin", cfg.ActorVariable)
	assert.Equal(t, generator.DefaultActorClass, cfg.ActorClass)
	assert.Equal(t, "10.2", cfg.FrameworkVersion)
	assert.Nil(t, cfg.IgnoreRules)
	assert.False(t, cfg.API)
}

func TestManifest_TypeRegistry(t *testing.T) {
	m := parseBlog(t)
	types, err := m.TypeRegistry()
	require.NoError(t, err)

	assert.True(t, types.IsSubclassOf(`App\Http\Requests\StorePostRequest`, registry.FormRequestClass))
	_, err = types.Instantiate(`App\Http\Requests\BaseRequest`)
	assert.Error(t, err)

	instance, err := types.Instantiate(`App\Http\Requests\StorePostRequest`)
	require.NoError(t, err)
	source, ok := instance.(models.RuleSource)
	require.True(t, ok)
	ruleMap, err := source.Rules()
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "age", "tags", "slug"}, ruleMap.Fields())

	_, known := types.Lookup(`App\Models\Post`)
	assert.True(t, known)
	assert.False(t, types.IsSubclassOf(`App\Models\Post`, registry.FormRequestClass))
}

func TestManifest_Jobs(t *testing.T) {
	m := parseBlog(t)
	jobs, err := m.Jobs()
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	store := jobs[0]
	assert.Equal(t, `App\Http\Controllers\PostController@store`, store.Name())
	assert.Equal(t, []models.Parameter{{Name: "request", Type: `App\Http\Requests\StorePostRequest`}}, store.Action.Parameters)
	assert.Equal(t, models.KindUnknown, store.Kind)
	require.NotNil(t, store.API)
	assert.True(t, *store.API)
	assert.Equal(t, &models.ModelDescriptor{Class: `App\Models\Post`, SoftDeletes: true}, store.Model)
	assert.Equal(t, &models.ModelDescriptor{Class: `App\Models\Blog`, RouteKey: "slug"}, store.Parent)

	create := jobs[1]
	assert.Nil(t, create.Model)
	assert.Nil(t, create.API)

	destroy := jobs[2]
	assert.Equal(t, models.KindDestroy, destroy.Kind)
	assert.Equal(t, 2, destroy.Index)
}

func TestJob_NewGenerator(t *testing.T) {
	m := parseBlog(t)
	jobs, err := m.Jobs()
	require.NoError(t, err)
	types, err := m.TypeRegistry()
	require.NoError(t, err)

	fragment, err := jobs[0].NewGenerator(m.GeneratorConfig(), generator.WithTypeRegistry(types)).Generate()
	require.NoError(t, err)

	assert.True(t, fragment.API)
	assert.Equal(t, models.KindStore, fragment.Kind)
	assert.Equal(t, []string{`App\Models\Post`, `App\Models\Blog`, generator.SanctumClass, generator.DefaultActorClass}, fragment.Imports)
	assert.Contains(t, fragment.Body(), "$admin->assignRole('super-admin');")
	assert.Contains(t, fragment.Body(), `route("blogs.posts.store", ["blog" => ])`)
	assert.Equal(t, []models.DataProviderRow{
		{Description: "The title must be required", Field: "title"},
		{Description: "The title must be max:255", Field: "title"},
		{Description: "The age must be min:18", Field: "age"},
		{Description: "The tags must be array", Field: "tags"},
	}, fragment.DataProvider)

	fragment, err = jobs[2].NewGenerator(m.GeneratorConfig()).Generate()
	require.NoError(t, err)
	assert.False(t, fragment.API)
	assert.Contains(t, fragment.Body(), "$this->assertSoftDeleted($post);")
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(blogManifest), 0o644))

	m, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, m.Source)

	_, err = NewLoader().Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	var base *errors.BaseError
	require.ErrorAs(t, err, &base)
	assert.Equal(t, errors.FileSystemErrorCode, base.ErrorCode())

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("config: {}\n"), 0o644))
	_, err = NewLoader().Load(invalid)
	assert.ErrorContains(t, err, "declares no actions")
}

func TestOverrides_Apply(t *testing.T) {
	cfg := parseBlog(t).GeneratorConfig()

	unchanged := Overrides{}.Apply(cfg)
	assert.Equal(t, cfg, unchanged)

	cfg.SuperAdminRole = false
	applied := Overrides{SuperAdmin: true, FrameworkVersion: "11"}.Apply(cfg)
	assert.True(t, applied.SuperAdminRole)
	assert.Equal(t, "11", applied.FrameworkVersion)
	assert.Equal(t, "admin", applied.ActorVariable)
}
