// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package epmc

import (
	"context"
	"fmt"
	"io"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/bverhoef/metamine/pkg/types"
)

const defaultWorkers = 10

// SearchAll fans the term list out across a bounded worker pool and
// collects a term → paper-identifier-set mapping. Terms with zero hits
// are omitted. A term whose search fails terminally is reported as a
// warning on w and omitted; sibling terms are unaffected. Completion
// order across terms is not guaranteed; the mapping is keyed by term.
func (c *Client) SearchAll(ctx context.Context, terms []string, cat types.Category, w io.Writer) map[string]mapset.Set[string] {
	workers := c.Config.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(terms) && len(terms) > 0 {
		workers = len(terms)
	}

	type termResult struct {
		term string
		ids  mapset.Set[string]
		err  error
	}

	jobs := make(chan string)
	out := make(chan termResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for term := range jobs {
				ids, err := c.Search(ctx, term, cat)
				out <- termResult{term: term, ids: ids, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, t := range terms {
			select {
			case jobs <- t:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	results := make(map[string]mapset.Set[string])
	done := 0
	for r := range out {
		done++
		if r.err != nil {
			fmt.Fprintf(w, "warning: term %q failed: %v\n", r.term, r.err)
			continue
		}
		if r.ids.Cardinality() > 0 {
			results[r.term] = r.ids
		}
		if done%100 == 0 || done == len(terms) {
			fmt.Fprintf(w, "searched %d/%d terms\n", done, len(terms))
		}
	}
	return results
}
