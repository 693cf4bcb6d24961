package registry

// TypeRegistry tracks the classes action parameters can be declared with,
// their parent classes, and how to construct them
type TypeRegistry interface {
	Register(info TypeInfo) error
	Lookup(name string) (TypeInfo, bool)
	IsSubclassOf(name, base string) bool
	Instantiate(name string) (any, error)
	Names() []string
}
