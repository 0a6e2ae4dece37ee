// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package epmc

import (
	"fmt"
	"os"
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.yaml.in/yaml/v3"

	"github.com/bverhoef/metamine/pkg/types"
)

// ResultsFile is the on-disk representation of a term search run. A
// completed category's results can be saved to a file and reloaded
// later without re-querying the search service.
type ResultsFile struct {
	Category types.Category      `yaml:"category"`
	Results  map[string][]string `yaml:"results"`
	Summary  ResultsSummary      `yaml:"summary"`
}

// ResultsSummary stores run statistics and a timestamp.
type ResultsSummary struct {
	Terms     int       `yaml:"terms"`
	Papers    int64     `yaml:"papers"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteResultsFile saves a term → paper-ID-set mapping to a YAML file.
// Identifier lists are sorted so the file is stable across runs.
func WriteResultsFile(path string, cat types.Category, results map[string]mapset.Set[string], papers int64) error {
	rf := ResultsFile{
		Category: cat,
		Results:  make(map[string][]string, len(results)),
		Summary: ResultsSummary{
			Terms:     len(results),
			Papers:    papers,
			Timestamp: time.Now(),
		},
	}
	for term, ids := range results {
		list := ids.ToSlice()
		sort.Strings(list)
		rf.Results[term] = list
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling results file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultsFile loads a previously saved search results file from disk.
func ReadResultsFile(path string) (*ResultsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results file: %w", err)
	}
	var rf ResultsFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing results file: %w", err)
	}
	return &rf, nil
}

// Sets converts the stored identifier lists back into a term → set mapping.
func (rf *ResultsFile) Sets() map[string]mapset.Set[string] {
	out := make(map[string]mapset.Set[string], len(rf.Results))
	for term, ids := range rf.Results {
		out[term] = mapset.NewThreadUnsafeSet(ids...)
	}
	return out
}
