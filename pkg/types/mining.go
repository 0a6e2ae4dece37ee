// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the metamine pipeline.
package types

// Category identifies the class of a search term. It selects the
// cross-reference predicate embedded in the literature query: metabolite
// terms are scoped to ChEBI annotations, GO terms to GO annotations.
// Other categories pass the term through unscoped.
type Category string

const (
	// CategoryMetabolite marks a metabolite name from the HMDB-derived catalogue.
	CategoryMetabolite Category = "metabolite"

	// CategoryGeneOntology marks a Gene Ontology term name.
	CategoryGeneOntology Category = "go"
)

// Association records one piece of literature evidence: a single paper
// mentioning both a GO term and a metabolite term. The same (GO,
// metabolite) pair appears once per corroborating paper.
type Association struct {
	// GOTerm is the Gene Ontology term name. After ancestor expansion it
	// may name an ancestor of the directly matched term.
	GOTerm string `json:"gene_ontology" yaml:"gene_ontology"`

	// Metabolite is the metabolite name as searched.
	Metabolite string `json:"metabolite" yaml:"metabolite"`

	// PaperID is the opaque literature-database identifier of the paper
	// in which both terms co-occur.
	PaperID string `json:"paper_id" yaml:"paper_id"`
}
