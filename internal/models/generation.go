package models

import "strings"

// AuthState holds the authentication schemes recognized on a route
type AuthState struct {
	Web      bool // "auth"
	Sanctum  bool // "auth:sanctum"
	Passport bool // "auth:api"
}

// Required reports whether any recognized auth middleware is present
func (a AuthState) Required() bool {
	return a.Web || a.Sanctum || a.Passport
}

// DataProviderRow is one invalid-input case for a validation test
type DataProviderRow struct {
	Description string // "The {field} must be {rule}"
	Field       string // input field under test
	Value       string // sample value, always blank
}

// PayloadEntry is one field of a request payload literal
type PayloadEntry struct {
	Field      string
	Expression string // e.g. $post->title
}

// GeneratedFragment is the generated body of one test method
type GeneratedFragment struct {
	Action       string            // Controller@method the fragment was generated for
	Kind         ActionKind        // kind used to generate the body
	API          bool              // whether an API (JSON) test was generated
	Lines        []string          // body lines in order
	Imports      []string          // fully qualified classes to import, each once
	DataProvider []DataProviderRow // validation cases, empty when the action has no rules
}

// Body joins the lines with newlines
func (f *GeneratedFragment) Body() string {
	return strings.Join(f.Lines, "\n")
}
