package generator

// Globals is the substitution dictionary shared by every kind builder
type Globals struct {
	ModelVariable   string
	ModelShortName  string
	Route           string
	ModelMethodName string
	APIActingAs     string
	WebActingAs     string
	Table           string
	AssertDeleted   string
}

// Map returns the dictionary keyed by placeholder name
func (gl Globals) Map() map[string]string {
	return map[string]string{
		"modelVariable":   gl.ModelVariable,
		"modelShortName":  gl.ModelShortName,
		"route":           gl.Route,
		"modelMethodName": gl.ModelMethodName,
		"apiActingAs":     gl.APIActingAs,
		"webActingAs":     gl.WebActingAs,
		"table":           gl.Table,
		"assertDeleted":   gl.AssertDeleted,
	}
}

// Globals resolves the dictionary. Imports needed by the acting-as
// statements are registered by WriteArrange, not here.
func (g *Generator) Globals() Globals {
	g.mustModel("Globals")
	actor := g.config.ActorVariable
	apiActingAs, _ := APIActingAs(g.Auth(), actor)
	return Globals{
		ModelVariable:   g.ModelVariable(),
		ModelShortName:  g.ModelShortName(),
		Route:           g.Route(),
		ModelMethodName: g.ModelMethodName(),
		APIActingAs:     apiActingAs,
		WebActingAs:     WebActingAs(g.Auth(), actor),
		Table:           g.Table(),
		AssertDeleted:   g.AssertDeleted(),
	}
}
