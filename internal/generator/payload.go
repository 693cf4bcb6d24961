package generator

import "github.com/toyz/testgen/internal/models"

// Payload maps every rule field to an attribute of modelVariable
func Payload(ruleMap models.RuleMap, modelVariable string) []models.PayloadEntry {
	entries := make([]models.PayloadEntry, len(ruleMap))
	for i, field := range ruleMap {
		entries[i] = models.PayloadEntry{
			Field:      field.Field,
			Expression: modelVariable + "->" + field.Field,
		}
	}
	return entries
}

// PostData builds the request payload from the action's rules. With update
// set the fields are read from the freshly made instance ($newPost).
func (g *Generator) PostData(update bool) []models.PayloadEntry {
	variable := g.ModelVariable()
	if update {
		variable = g.NewModelVariable()
	}
	return Payload(g.Rules(), variable)
}
