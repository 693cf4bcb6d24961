package models

import "fmt"

// Rule is one validation rule: either a textual token such as "min:18"
// or an opaque rule object that has no textual form
type Rule struct {
	Text   string
	Object any
}

// TextRule creates a textual rule
func TextRule(text string) Rule {
	return Rule{Text: text}
}

// ObjectRule creates an opaque rule object
func ObjectRule(v any) Rule {
	return Rule{Object: v}
}

// IsText reports whether the rule is a plain textual token
func (r Rule) IsText() bool {
	return r.Object == nil
}

// String renders the rule for diagnostics
func (r Rule) String() string {
	if r.IsText() {
		return r.Text
	}
	return fmt.Sprintf("<object %T>", r.Object)
}

// RuleSpec is the rule specification of one field. It is either a
// "|"-delimited string (Delimited) or an ordered list of rules (Items).
type RuleSpec struct {
	Delimited string
	Items     []Rule
	IsList    bool
}

// DelimitedRules creates a spec from a "|"-delimited rule string
func DelimitedRules(s string) RuleSpec {
	return RuleSpec{Delimited: s}
}

// RuleList creates a spec from an ordered list of rules
func RuleList(items ...Rule) RuleSpec {
	return RuleSpec{Items: items, IsList: true}
}

// TextRules creates a list spec of textual rules
func TextRules(tokens ...string) RuleSpec {
	items := make([]Rule, len(tokens))
	for i, t := range tokens {
		items[i] = TextRule(t)
	}
	return RuleList(items...)
}

// RuleField pairs a field with its rule specification
type RuleField struct {
	Field string
	Spec  RuleSpec
}

// RuleMap maps field names to rule specifications in declaration order
type RuleMap []RuleField

// Fields returns the field names in order
func (m RuleMap) Fields() []string {
	fields := make([]string, len(m))
	for i, f := range m {
		fields[i] = f.Field
	}
	return fields
}

// Get returns the spec for field
func (m RuleMap) Get(field string) (RuleSpec, bool) {
	for _, f := range m {
		if f.Field == field {
			return f.Spec, true
		}
	}
	return RuleSpec{}, false
}

// With returns a copy of m with field set. An existing field keeps its
// position and has its spec replaced.
func (m RuleMap) With(field string, spec RuleSpec) RuleMap {
	out := make(RuleMap, len(m), len(m)+1)
	copy(out, m)
	for i := range out {
		if out[i].Field == field {
			out[i].Spec = spec
			return out
		}
	}
	return append(out, RuleField{Field: field, Spec: spec})
}
