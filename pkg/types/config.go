// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "metamine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the literature search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Source restricts results to a bibliographic source (default "MED").
	Source string `json:"source" yaml:"source"`

	// Organism restricts results to studies tagged with an organism
	// (default "HUMAN").
	Organism string `json:"organism" yaml:"organism"`

	// PubType restricts results to a publication type
	// (default "Journal Article").
	PubType string `json:"pub_type" yaml:"pub_type"`

	// PageSize is the number of identifiers requested per page (default 1000).
	PageSize int `json:"page_size" yaml:"page_size"`

	// Workers is the size of the term worker pool (default 10).
	Workers int `json:"workers" yaml:"workers"`

	// MaxRetries is the number of retry attempts for a failed page fetch
	// (default 5). After exhaustion the term's search fails terminally.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RequestsPerSecond caps the aggregate request rate across workers.
	// Zero disables throttling.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// TermTimeout bounds the total search time for a single term,
	// including all of its pages and retries. Zero means no bound.
	TermTimeout time.Duration `json:"term_timeout" yaml:"term_timeout"`
}

// OntologyConfig holds settings for the QuickGO hierarchy client.
type OntologyConfig struct {
	HTTPConfig `yaml:",inline"`

	// BatchSize is the number of term ids sent per request (default 50),
	// respecting the service's request-size limit.
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// RootID is the GO id whose descendant subtree forms the allowed
	// catalogue (e.g. "GO:0008150" for biological_process).
	RootID string `json:"root_id" yaml:"root_id"`
}

// MiningConfig groups all stage configurations for a mining run.
type MiningConfig struct {
	// Folder is the data directory holding the term catalogues and
	// receiving the output tables.
	Folder string `json:"folder" yaml:"folder"`

	Search   SearchConfig   `json:"search" yaml:"search"`
	Ontology OntologyConfig `json:"ontology" yaml:"ontology"`
}
