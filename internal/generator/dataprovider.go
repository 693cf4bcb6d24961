package generator

import (
	"github.com/toyz/testgen/internal/models"
	"github.com/toyz/testgen/internal/rules"
)

// DataProviderRows turns a rule map into validation failure cases. Field
// order and rule order are preserved; object rules and ignored tokens
// produce no row.
func DataProviderRows(ruleMap models.RuleMap, ignore rules.IgnoreSet) []models.DataProviderRow {
	var rows []models.DataProviderRow
	for _, field := range ruleMap {
		for _, tok := range rules.Normalize(field.Spec) {
			if !tok.IsText() || ignore.Ignores(tok) {
				continue
			}
			rows = append(rows, models.DataProviderRow{
				Description: "The " + field.Field + " must be " + tok.Raw,
				Field:       field.Field,
				Value:       "",
			})
		}
	}
	return rows
}

// DataProvider returns the validation cases for the action's rules
func (g *Generator) DataProvider() []models.DataProviderRow {
	return DataProviderRows(g.Rules(), g.config.IgnoreSet())
}
