package models

import (
	"strings"

	"github.com/toyz/testgen/internal/utils"
)

// DefaultRouteKey is the route key used when a model does not declare one
const DefaultRouteKey = "id"

// ModelDescriptor describes a model class and its storage
type ModelDescriptor struct {
	Class       string // fully qualified class, e.g. App\Models\BlogPost
	Table       string // storage table; derived from the class when empty
	RouteKey    string // route key attribute; "id" when empty
	SoftDeletes bool   // whether the model uses soft deletes
}

// TypeName returns the fully qualified class
func (m *ModelDescriptor) TypeName() string {
	return strings.TrimLeft(m.Class, `\`)
}

// TableName returns the table, defaulting to the snake-cased plural short name
func (m *ModelDescriptor) TableName() string {
	if m.Table != "" {
		return m.Table
	}
	return utils.Pluralize(utils.ToSnakeCase(utils.ClassBaseName(m.Class)))
}

// RouteKeyName returns the attribute used for route model binding
func (m *ModelDescriptor) RouteKeyName() string {
	if m.RouteKey != "" {
		return m.RouteKey
	}
	return DefaultRouteKey
}

// Relations is a plain ModelRelations value
type Relations struct {
	Short      string
	SoftDelete bool
}

// ShortName returns the class short name
func (r Relations) ShortName() string {
	return r.Short
}

// IsSoftDeleteAble reports soft delete support
func (r Relations) IsSoftDeleteAble() bool {
	return r.SoftDelete
}

// DescriptorReader reads relation metadata straight from model descriptors.
// Models that are not descriptors only get their short name.
type DescriptorReader struct{}

// Read implements RelationReader
func (DescriptorReader) Read(model Model) ModelRelations {
	rel := Relations{Short: utils.ClassBaseName(model.TypeName())}
	if d, ok := model.(*ModelDescriptor); ok {
		rel.SoftDelete = d.SoftDeletes
	}
	return rel
}
