package rules

import "strings"

// Match is one value-pattern hit produced by CheckValues: the matching
// rule, the byte offset of the captured text within the haystack, and the
// captured text itself.
type Match struct {
	RuleID RuleId
	Offset int
	Text   string
}

// CheckValues runs every rule's value pattern against candidate and
// returns every surviving match, implementing the check_values algorithm
// from spec.md §4.1: keyword pre-filter, capture extraction, empty-capture
// drop, the generic-rule digit requirement, and the entropy threshold.
//
// It does not apply name/value correlation — that filter needs the
// enclosing identifier, which only the caller (the Key Extractor's AST
// visitor) has in scope.
func (c *Catalog) CheckValues(candidate string) []Match {
	var out []Match
	for i, pattern := range c.valueCriteria {
		id := RuleId(i)
		if keywords := c.keywords[id]; len(keywords) > 0 && !containsAnyKeyword(candidate, keywords) {
			continue
		}
		for _, cap := range pattern.Captures(candidate) {
			if strings.TrimSpace(cap.Text) == "" {
				continue
			}
			if c.isGenericRule(id) && !ContainsDigit(cap.Text) {
				continue
			}
			if threshold := c.entropy[id]; threshold != nil && !(ShannonEntropy([]byte(cap.Text)) > *threshold) {
				continue
			}
			out = append(out, Match{RuleID: id, Offset: cap.Offset, Text: cap.Text})
		}
	}
	return out
}

// CheckName reports whether identifier satisfies rule id's name pattern.
// A rule with no name pattern has nothing to check and returns false.
func (c *Catalog) CheckName(id RuleId, identifier string) bool {
	pattern := c.nameCriteria[id]
	if pattern == nil {
		return false
	}
	return pattern.Matches(identifier)
}

// containsAnyKeyword reports whether candidate contains at least one of
// keywords as a case-sensitive ASCII substring, per spec.md §4.1.
func containsAnyKeyword(candidate string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(candidate, k) {
			return true
		}
	}
	return false
}
