// Package rules holds the secret-detection rule catalog: a gitleaks-schema
// TOML rule file compiled into a struct-of-arrays Catalog, plus the engine
// operations (CheckName, CheckValues) that run a candidate string against
// every compiled rule.
package rules

// RuleId indexes a compiled rule within a Catalog. It is only meaningful
// relative to the Catalog that produced it.
type RuleId int

// Catalog holds every compiled rule as a set of parallel slices indexed by
// RuleId, mirroring the struct-of-arrays layout the rule set is grounded
// on. Zero value is an empty catalog.
type Catalog struct {
	ids           []string
	descriptions  []string
	nameCriteria  []*Pattern
	valueCriteria []*Pattern
	keywords      [][]string
	entropy       []*float64
}

// Len returns the number of compiled rules in the catalog.
func (c *Catalog) Len() int {
	return len(c.ids)
}

func (c *Catalog) addRule(id, description string, name, value *Pattern, keywords []string, entropy *float64) RuleId {
	c.ids = append(c.ids, id)
	c.descriptions = append(c.descriptions, description)
	c.nameCriteria = append(c.nameCriteria, name)
	c.valueCriteria = append(c.valueCriteria, value)
	c.keywords = append(c.keywords, keywords)
	c.entropy = append(c.entropy, entropy)
	return RuleId(len(c.ids) - 1)
}

// GetDisplayID returns the rule's gitleaks id (e.g. "aws-access-key-id").
func (c *Catalog) GetDisplayID(id RuleId) string {
	return c.ids[id]
}

// GetDescription returns the rule's human-readable description.
func (c *Catalog) GetDescription(id RuleId) string {
	return c.descriptions[id]
}

// GetNameCriteria returns the rule's name-side pattern, or nil if the rule's
// regex had no assignment infix to split on.
func (c *Catalog) GetNameCriteria(id RuleId) *Pattern {
	return c.nameCriteria[id]
}

// GetValueCriteria returns the rule's value-side pattern. Every compiled
// rule has one; rules whose value pattern failed to compile are never
// added to the catalog.
func (c *Catalog) GetValueCriteria(id RuleId) *Pattern {
	return c.valueCriteria[id]
}

// IterValueCriteria calls fn for every rule's id and value pattern, in
// catalog order.
func (c *Catalog) IterValueCriteria(fn func(RuleId, *Pattern)) {
	for i := range c.valueCriteria {
		fn(RuleId(i), c.valueCriteria[i])
	}
}

// isGenericRule reports whether a rule's display id begins with "generic",
// the gitleaks-compatibility marker that triggers the digit requirement in
// CheckValues.
func (c *Catalog) isGenericRule(id RuleId) bool {
	return hasPrefixFold(c.ids[id], "generic")
}

func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := s[i], prefix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}
