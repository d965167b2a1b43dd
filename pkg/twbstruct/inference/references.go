// Package inference resolves the physical base tables a calculated field reads
// from, through any depth of nested calculations.
package inference

import (
	"regexp"
	"strings"
)

var referencePattern = regexp.MustCompile(`\[([^\]]+)\]`)

// datePartKeywords are bracketed tokens that name date parts, not fields.
var datePartKeywords = map[string]bool{
	"year":    true,
	"month":   true,
	"quarter": true,
	"day":     true,
	"week":    true,
}

// ExtractReferences returns the bracketed field references of a formula, in
// order of first appearance, without duplicates. Parameter references and
// date-part keywords are skipped.
func ExtractReferences(formula string) []string {
	refs := []string{}
	if formula == "" {
		return refs
	}

	seen := make(map[string]bool)
	for _, m := range referencePattern.FindAllStringSubmatch(formula, -1) {
		name := m[1]
		if name == "Parameters" || strings.HasPrefix(name, "Parameters.") {
			continue
		}
		if datePartKeywords[strings.ToLower(name)] {
			continue
		}
		ref := "[" + name + "]"
		if seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	return refs
}
