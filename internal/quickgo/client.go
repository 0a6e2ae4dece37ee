// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quickgo looks up Gene Ontology hierarchy relationships
// (descendants, ancestors) and display names against the QuickGO
// service. Identifiers are paged in fixed-size batches to respect the
// service's request-size limit. Failures are not retried here; a failed
// lookup is fatal for the current mining run.
package quickgo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/bverhoef/metamine/internal/catalog"
	"github.com/bverhoef/metamine/pkg/types"
)

// apiBase is the QuickGO GO-terms endpoint. Declared as a var so tests
// can substitute an httptest server.
var apiBase = "https://www.ebi.ac.uk/QuickGO/services/ontology/go/terms"

const defaultBatchSize = 50

// Client issues batched lookups against QuickGO.
type Client struct {
	HTTP   *http.Client
	Config types.OntologyConfig
}

// NewClient builds a Client from cfg.
func NewClient(cfg types.OntologyConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		HTTP:   &http.Client{Timeout: timeout},
		Config: cfg,
	}
}

func (c *Client) batchSize() int {
	if c.Config.BatchSize > 0 {
		return c.Config.BatchSize
	}
	return defaultBatchSize
}

// termResult holds the QuickGO response fields the pipeline consumes.
type termResult struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Descendants []string `json:"descendants"`
	Ancestors   []string `json:"ancestors"`
}

// get requests one batch of ids, optionally under a sub-resource
// endpoint ("descendants", "ancestors", or "" for name lookup).
func (c *Client) get(ctx context.Context, ids []string, endpoint string) ([]termResult, error) {
	reqURL := apiBase + "/" + strings.Join(ids, ",")
	if endpoint != "" {
		reqURL += "/" + endpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("QuickGO request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("QuickGO returned HTTP %d", resp.StatusCode)
	}

	var body struct {
		Results []termResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parsing QuickGO response: %w", err)
	}
	return body.Results, nil
}

// Descendants returns all descendant concept ids of id, plus id itself.
func (c *Client) Descendants(ctx context.Context, id string) (mapset.Set[string], error) {
	results, err := c.get(ctx, []string{id}, "descendants")
	if err != nil {
		return nil, fmt.Errorf("descendants of %s: %w", id, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("descendants of %s: empty result", id)
	}

	set := mapset.NewThreadUnsafeSet(results[0].Descendants...)
	set.Add(id)
	return set, nil
}

// Names resolves a list of concept ids to a name → id mapping, paging
// the ids in fixed-size batches.
func (c *Client) Names(ctx context.Context, ids []string) (map[string]string, error) {
	n := c.batchSize()
	total := make(map[string]string, len(ids))
	for i := 0; i < len(ids); i += n {
		end := i + n
		if end > len(ids) {
			end = len(ids)
		}
		results, err := c.get(ctx, ids[i:end], "")
		if err != nil {
			return nil, fmt.Errorf("name lookup batch %d: %w", i/n, err)
		}
		for _, r := range results {
			total[r.Name] = r.ID
		}
	}
	return total, nil
}

// Ancestors returns, for each input concept name, the chain of its
// ancestor names intersected with the allowed catalogue, plus the name
// itself. Out-of-catalogue ancestors are silently dropped from the
// chain; an input name that the catalogue does not cover is an explicit
// validation error.
func (c *Client) Ancestors(ctx context.Context, names []string, cat *catalog.GOCatalog) (map[string][]string, error) {
	// Resolve names to ids, deduplicating while preserving order.
	seen := make(map[string]bool, len(names))
	var ids []string
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		id, ok := cat.IDByName(name)
		if !ok {
			return nil, fmt.Errorf("GO term %q is not covered by the allowed catalogue", name)
		}
		ids = append(ids, id)
	}

	n := c.batchSize()
	total := make(map[string][]string, len(ids))
	for i := 0; i < len(ids); i += n {
		end := i + n
		if end > len(ids) {
			end = len(ids)
		}
		results, err := c.get(ctx, ids[i:end], "ancestors")
		if err != nil {
			return nil, fmt.Errorf("ancestor lookup batch %d: %w", i/n, err)
		}
		for _, r := range results {
			name, ok := cat.NameByID(r.ID)
			if !ok {
				return nil, fmt.Errorf("QuickGO returned id %s absent from the allowed catalogue", r.ID)
			}
			var chain []string
			for _, anc := range r.Ancestors {
				if ancName, allowed := cat.NameByID(anc); allowed {
					chain = append(chain, ancName)
				}
			}
			total[name] = append(chain, name)
		}
	}
	return total, nil
}
