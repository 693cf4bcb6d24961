package models

import (
	"fmt"
	"strings"
)

// ActionKind identifies which test body is generated for an action
type ActionKind int

const (
	KindUnknown ActionKind = iota
	KindIndex
	KindShow
	KindCreate
	KindStore
	KindEdit
	KindUpdate
	KindDestroy
)

var kindNames = map[ActionKind]string{
	KindIndex:   "index",
	KindShow:    "show",
	KindCreate:  "create",
	KindStore:   "store",
	KindEdit:    "edit",
	KindUpdate:  "update",
	KindDestroy: "destroy",
}

// String returns the controller method name conventionally used for the kind
func (k ActionKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseActionKind maps a kind name (case-insensitive) to an ActionKind
func ParseActionKind(name string) (ActionKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown action kind '%s'", name)
}

// AllKinds lists the known kinds in resource order
func AllKinds() []ActionKind {
	return []ActionKind{KindIndex, KindShow, KindCreate, KindStore, KindEdit, KindUpdate, KindDestroy}
}

// Parameter is one declared parameter of a controller action
type Parameter struct {
	Name string // parameter name without the leading $
	Type string // declared class, empty when untyped
}

// HasType reports whether the parameter carries a declared type
func (p Parameter) HasType() bool {
	return strings.TrimSpace(p.Type) != ""
}

// ActionMetadata reflects one controller action
type ActionMetadata struct {
	Controller string      // fully qualified controller class
	Method     string      // action method name
	Parameters []Parameter // declared parameters in signature order
}

// String renders the action as Controller@method
func (a *ActionMetadata) String() string {
	if a == nil {
		return "<nil action>"
	}
	return fmt.Sprintf("%s@%s", a.Controller, a.Method)
}

// RouteMetadata is the route an action is registered under
type RouteMetadata struct {
	RouteName   string   // named route, e.g. posts.update
	Parameters  []string // route parameter names in declaration order
	Middlewares []string // middleware identifiers gathered for the route
}

// Name returns the route name
func (r *RouteMetadata) Name() string {
	return r.RouteName
}

// ParameterNames returns the declared route parameter names
func (r *RouteMetadata) ParameterNames() []string {
	return r.Parameters
}

// Middleware returns the gathered middleware identifiers
func (r *RouteMetadata) Middleware() []string {
	return r.Middlewares
}

