package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/utils"
)

// FormRequestClass is the request-validation base class rule sources extend
const FormRequestClass = `Illuminate\Foundation\Http\FormRequest`

// Factory default-constructs an instance of a registered type
type Factory func() (any, error)

// TypeInfo describes one registered class
type TypeInfo struct {
	Name     string  // fully qualified class name
	Extends  string  // parent class, empty for roots
	Abstract bool    // abstract classes cannot be instantiated
	Factory  Factory // nil when the class has no default constructor
}

// typeRegistry implements TypeRegistry on top of the generic registry
type typeRegistry struct {
	types *utils.BaseRegistry[string, TypeInfo]
}

// NewTypeRegistry creates a registry that already knows the FormRequest base
func NewTypeRegistry() TypeRegistry {
	types := utils.NewBaseRegistry[string, TypeInfo]("type",
		utils.NotEmptyKeyValidator[TypeInfo]("class name"),
		utils.NoDuplicateValidator[string, TypeInfo]("class"),
	)

	r := &typeRegistry{types: types}
	_ = r.Register(TypeInfo{Name: FormRequestClass, Abstract: true})
	return r
}

// NormalizeClass strips the leading namespace separator from a class name
func NormalizeClass(name string) string {
	return strings.TrimLeft(strings.TrimSpace(name), `\`)
}

// Register adds a class to the registry
func (r *typeRegistry) Register(info TypeInfo) error {
	info.Name = NormalizeClass(info.Name)
	info.Extends = NormalizeClass(info.Extends)

	if err := r.types.Register(info.Name, info); err != nil {
		return errors.NewRegistrationError("type", info.Name, err)
	}
	return nil
}

// Lookup retrieves a class by name
func (r *typeRegistry) Lookup(name string) (TypeInfo, bool) {
	return r.types.Get(NormalizeClass(name))
}

// IsSubclassOf reports whether name is base or transitively extends it.
// Unknown classes and inheritance cycles yield false.
func (r *typeRegistry) IsSubclassOf(name, base string) bool {
	name = NormalizeClass(name)
	base = NormalizeClass(base)

	seen := make(map[string]bool)
	for name != "" && !seen[name] {
		if name == base {
			return true
		}
		seen[name] = true

		info, ok := r.types.Get(name)
		if !ok {
			return false
		}
		name = info.Extends
	}
	return false
}

// Instantiate default-constructs a registered class
func (r *typeRegistry) Instantiate(name string) (any, error) {
	info, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("class '%s' is not registered", name)
	}
	if info.Abstract {
		return nil, fmt.Errorf("class '%s' is abstract", info.Name)
	}
	if info.Factory == nil {
		return nil, fmt.Errorf("class '%s' has no default constructor", info.Name)
	}

	instance, err := info.Factory()
	if err != nil {
		return nil, fmt.Errorf("failed to construct '%s': %w", info.Name, err)
	}
	if instance == nil {
		return nil, fmt.Errorf("constructor of '%s' returned nil", info.Name)
	}
	return instance, nil
}

// Names returns the registered class names sorted
func (r *typeRegistry) Names() []string {
	names := r.types.List()
	sort.Strings(names)
	return names
}
