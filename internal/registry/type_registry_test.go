package registry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/testgen/internal/errors"
)

func TestTypeRegistry_Register(t *testing.T) {
	r := NewTypeRegistry()

	require.NoError(t, r.Register(TypeInfo{Name: `\App\Http\Requests\StorePostRequest`, Extends: `\` + FormRequestClass}))

	info, ok := r.Lookup(`App\Http\Requests\StorePostRequest`)
	require.True(t, ok)
	assert.Equal(t, `App\Http\Requests\StorePostRequest`, info.Name)
	assert.Equal(t, FormRequestClass, info.Extends)

	err := r.Register(TypeInfo{Name: `App\Http\Requests\StorePostRequest`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
	var regErr *errors.RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "type", regErr.Kind)
	assert.Equal(t, `App\Http\Requests\StorePostRequest`, regErr.Name)

	err = r.Register(TypeInfo{Name: ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")

	assert.Equal(t, []string{`App\Http\Requests\StorePostRequest`, FormRequestClass}, r.Names())
}

func TestTypeRegistry_IsSubclassOf(t *testing.T) {
	r := NewTypeRegistry()
	require.NoError(t, r.Register(TypeInfo{Name: `App\Http\Requests\BaseRequest`, Extends: FormRequestClass, Abstract: true}))
	require.NoError(t, r.Register(TypeInfo{Name: `App\Http\Requests\UpdatePostRequest`, Extends: `App\Http\Requests\BaseRequest`}))
	require.NoError(t, r.Register(TypeInfo{Name: `App\Models\Post`}))
	require.NoError(t, r.Register(TypeInfo{Name: `App\Loop\A`, Extends: `App\Loop\B`}))
	require.NoError(t, r.Register(TypeInfo{Name: `App\Loop\B`, Extends: `App\Loop\A`}))

	tests := []struct {
		name     string
		class    string
		expected bool
	}{
		{"direct child", `App\Http\Requests\BaseRequest`, true},
		{"grandchild", `App\Http\Requests\UpdatePostRequest`, true},
		{"base itself", FormRequestClass, true},
		{"unrelated", `App\Models\Post`, false},
		{"unknown", `App\Missing`, false},
		{"cycle", `App\Loop\A`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.IsSubclassOf(tt.class, FormRequestClass))
		})
	}
}

func TestTypeRegistry_Instantiate(t *testing.T) {
	r := NewTypeRegistry()
	require.NoError(t, r.Register(TypeInfo{Name: "Ok", Factory: func() (any, error) { return "instance", nil }}))
	require.NoError(t, r.Register(TypeInfo{Name: "NoCtor"}))
	require.NoError(t, r.Register(TypeInfo{Name: "Broken", Factory: func() (any, error) { return nil, fmt.Errorf("boom") }}))
	require.NoError(t, r.Register(TypeInfo{Name: "Nil", Factory: func() (any, error) { return nil, nil }}))

	instance, err := r.Instantiate("Ok")
	require.NoError(t, err)
	assert.Equal(t, "instance", instance)

	for name, msg := range map[string]string{
		"Missing":        "not registered",
		FormRequestClass: "abstract",
		"NoCtor":         "no default constructor",
		"Broken":         "boom",
		"Nil":            "returned nil",
	} {
		_, err := r.Instantiate(name)
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), msg, name)
	}
}
