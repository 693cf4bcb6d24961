package generator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/testgen/internal/models"
	"github.com/toyz/testgen/internal/registry"
)

func TestRuleExtractor_Outcomes(t *testing.T) {
	rules := models.RuleMap{{Field: "title", Spec: models.DelimitedRules("required")}}

	types := registry.NewTypeRegistry()
	for _, info := range []registry.TypeInfo{
		{Name: `App\Models\Post`},
		{Name: `App\Http\Requests\Ok`, Extends: registry.FormRequestClass, Factory: func() (any, error) { return &fakeRequest{rules: rules}, nil }},
		{Name: `App\Http\Requests\Other`, Extends: registry.FormRequestClass, Factory: func() (any, error) {
			return &fakeRequest{rules: models.RuleMap{{Field: "other"}}}, nil
		}},
		{Name: `App\Http\Requests\Abstract`, Extends: registry.FormRequestClass, Abstract: true},
		{Name: `App\Http\Requests\NoRules`, Extends: registry.FormRequestClass, Factory: func() (any, error) { return struct{}{}, nil }},
		{Name: `App\Http\Requests\Failing`, Extends: registry.FormRequestClass, Factory: func() (any, error) {
			return &fakeRequest{err: fmt.Errorf("database unavailable")}, nil
		}},
		{Name: `App\Http\Requests\Panicking`, Extends: registry.FormRequestClass, Factory: func() (any, error) { return &fakeRequest{panics: true}, nil }},
		{Name: `App\Http\Requests\Exploding`, Extends: registry.FormRequestClass, Factory: func() (any, error) { panic("constructor exploded") }},
	} {
		require.NoError(t, types.Register(info))
	}

	tests := []struct {
		name     string
		params   []models.Parameter
		expected models.RuleMap
		debug    string
		warn     string
	}{
		{
			name:     "first request wins",
			params:   []models.Parameter{{Name: "post", Type: `App\Models\Post`}, {Name: "request", Type: `App\Http\Requests\Ok`}, {Name: "other", Type: `App\Http\Requests\Other`}},
			expected: rules,
			debug:    "read 1 rule field(s)",
		},
		{
			name:   "untyped and unknown parameters",
			params: []models.Parameter{{Name: "id", Type: ""}, {Name: "request", Type: `App\Http\Requests\Missing`}},
			debug:  "is not registered",
		},
		{
			name:   "not instantiable",
			params: []models.Parameter{{Name: "request", Type: `App\Http\Requests\Abstract`}},
			warn:   "cannot be instantiated",
		},
		{
			name:   "entry point missing",
			params: []models.Parameter{{Name: "request", Type: `App\Http\Requests\NoRules`}},
			warn:   "has no rules entry point",
		},
		{
			name:   "rules return an error",
			params: []models.Parameter{{Name: "request", Type: `App\Http\Requests\Failing`}},
			warn:   "database unavailable",
		},
		{
			name:   "rules panic",
			params: []models.Parameter{{Name: "request", Type: `App\Http\Requests\Panicking`}},
			warn:   "rules exploded",
		},
		{
			name:   "factory panics",
			params: []models.Parameter{{Name: "request", Type: `App\Http\Requests\Exploding`}, {Name: "other", Type: `App\Http\Requests\Ok`}},
			warn:   "cannot be instantiated: panic: constructor exploded",
		},
		{
			name:   "failure stops the scan",
			params: []models.Parameter{{Name: "request", Type: `App\Http\Requests\Abstract`}, {Name: "other", Type: `App\Http\Requests\Ok`}},
			warn:   "cannot be instantiated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			action := &models.ActionMetadata{Controller: "PostController", Method: "store", Parameters: tt.params}

			var got models.RuleMap
			require.NotPanics(t, func() { got = NewRuleExtractor(types, logger).Extract(action) })
			assert.Equal(t, tt.expected, got)

			if tt.debug != "" {
				require.NotEmpty(t, logger.debug)
				assert.Contains(t, logger.debug[0], tt.debug)
			}
			if tt.warn != "" {
				require.Len(t, logger.warn, 1)
				assert.Contains(t, logger.warn[0], tt.warn)
			} else {
				assert.Empty(t, logger.warn)
			}
		})
	}
}

func TestRuleExtractor_NoRegistry(t *testing.T) {
	action := &models.ActionMetadata{Parameters: []models.Parameter{{Name: "request", Type: `App\Http\Requests\Ok`}}}
	assert.Empty(t, NewRuleExtractor(nil, nil).Extract(action))
	assert.Empty(t, NewRuleExtractor(registry.NewTypeRegistry(), nil).Extract(nil))
}

func TestGenerator_RulesExtractedOnce(t *testing.T) {
	calls := 0
	types := registry.NewTypeRegistry()
	require.NoError(t, types.Register(registry.TypeInfo{
		Name:    storeRequest,
		Extends: registry.FormRequestClass,
		Factory: func() (any, error) {
			calls++
			return &fakeRequest{rules: postRules()}, nil
		},
	}))

	g := New(storeAction(), &models.RouteMetadata{RouteName: "posts.store"}, DefaultConfig(), WithTypeRegistry(types)).
		SetModel(&models.ModelDescriptor{Class: `App\Models\Post`})
	g.PostData(false)
	g.DataProvider()
	_, err := g.Generate()
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}
