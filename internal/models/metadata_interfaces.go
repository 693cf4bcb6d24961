package models

// Route is the route metadata source an action is bound to
type Route interface {
	Name() string
	ParameterNames() []string
	Middleware() []string
}

// Model is a data model under test
type Model interface {
	// TypeName is the fully qualified class, e.g. App\Models\Post
	TypeName() string
	TableName() string
	RouteKeyName() string
}

// ModelRelations is what the relation reader knows about a model
type ModelRelations interface {
	ShortName() string
	IsSoftDeleteAble() bool
}

// RelationReader reads relation metadata for a model
type RelationReader interface {
	Read(model Model) ModelRelations
}

// RuleSource is a request-validation object exposing its rules
type RuleSource interface {
	Rules() (RuleMap, error)
}
