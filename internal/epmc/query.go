// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package epmc

import (
	"fmt"
	"strings"

	"github.com/bverhoef/metamine/pkg/types"
)

// fullTextFields lists the article sections the term must appear in,
// matching the query produced by the Europe PMC query builder.
var fullTextFields = []string{"ABSTRACT", "RESULTS", "METHODS", "TABLE", "SUPPL", "FIG"}

// termClause returns the OR-joined field-scoped expression matching papers
// whose abstract, results, methods, tables, supplements, or figures contain
// the exact term.
func termClause(term string) string {
	parts := make([]string, len(fullTextFields))
	for i, f := range fullTextFields {
		parts[i] = fmt.Sprintf(`%s:"%s"`, f, term)
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// categoryClause returns the cross-reference predicate scoping the term to
// its category. Unknown categories pass the term through unmodified.
func categoryClause(term string, cat types.Category) string {
	switch cat {
	case types.CategoryMetabolite:
		return fmt.Sprintf(`CHEBITERM:"%s"`, term)
	case types.CategoryGeneOntology:
		return fmt.Sprintf(`GOTERM:"%s"`, term)
	default:
		return term
	}
}

// BuildQuery assembles the full boolean query expression for one term:
// the field-scoped clause, the category predicate, and the publication
// type, source, and organism restrictions. Pure string construction;
// malformed terms pass through verbatim.
func BuildQuery(term string, cat types.Category, cfg types.SearchConfig) string {
	pubType := cfg.PubType
	if pubType == "" {
		pubType = "Journal Article"
	}
	source := cfg.Source
	if source == "" {
		source = "MED"
	}
	organism := cfg.Organism
	if organism == "" {
		organism = "HUMAN"
	}

	clauses := []string{
		termClause(term),
		categoryClause(term, cat),
		fmt.Sprintf(`PUB_TYPE:"%s"`, pubType),
		fmt.Sprintf(`SRC:"%s"`, source),
		fmt.Sprintf(`ORGANISM:"%s"`, organism),
	}
	return strings.Join(clauses, " AND ")
}
