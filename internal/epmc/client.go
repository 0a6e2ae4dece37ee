// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package epmc queries the Europe PMC full-text search service for the
// paper identifiers matching a term. Results are paginated behind an
// opaque cursor; Search follows the cursor to exhaustion.
package epmc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/time/rate"

	"github.com/bverhoef/metamine/internal/httputil"
	"github.com/bverhoef/metamine/pkg/types"
)

// searchBase is the Europe PMC REST search endpoint. Declared as a var
// so tests can substitute an httptest server.
var searchBase = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"

// PageRetryBaseDelay controls the base duration for exponential backoff
// between failed page fetches. Tests override this to avoid real sleeps.
var PageRetryBaseDelay = 2 * time.Second

const (
	defaultPageSize   = 1000
	defaultMaxRetries = 5

	// initialCursor is the cursor value requesting the first result page.
	initialCursor = "*"
)

// Client searches Europe PMC for one term at a time. A single Client is
// shared across dispatcher workers; the optional rate limiter caps the
// aggregate request rate.
type Client struct {
	HTTP    *http.Client
	Limiter *rate.Limiter
	Config  types.SearchConfig

	// papers accumulates server-reported hit counts across searches,
	// for observability only.
	papers atomic.Int64
}

// NewClient builds a Client from cfg, deriving the HTTP client and the
// shared rate limiter from its settings.
func NewClient(cfg types.SearchConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		Limiter: limiter,
		Config:  cfg,
	}
}

// Papers returns the running total of server-reported hits.
func (c *Client) Papers() int64 { return c.papers.Load() }

// searchResponse holds the Europe PMC response fields the pipeline consumes.
type searchResponse struct {
	HitCount       int    `json:"hitCount"`
	NextCursorMark string `json:"nextCursorMark"`
	ResultList     struct {
		Result []struct {
			ID string `json:"id"`
		} `json:"result"`
	} `json:"resultList"`
}

// searchPage issues a single page request for term at cursor.
func (c *Client) searchPage(ctx context.Context, term string, cat types.Category, cursor string) (*searchResponse, error) {
	pageSize := c.Config.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	params := url.Values{
		"query":      {BuildQuery(term, cat, c.Config)},
		"synonym":    {"true"},
		"resultType": {"idlist"},
		"pageSize":   {strconv.Itoa(pageSize)},
		"cursorMark": {cursor},
		"format":     {"json"},
	}

	reqURL := searchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.Config.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("Europe PMC request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Europe PMC returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Europe PMC response: %w", err)
	}
	return &sr, nil
}

// searchPageWithRetry retries transport and parse failures with
// exponential backoff, surfacing a terminal error once the attempt
// budget is exhausted.
func (c *Client) searchPageWithRetry(ctx context.Context, term string, cat types.Category, cursor string) (*searchResponse, error) {
	maxRetries := c.Config.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * PageRetryBaseDelay
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		sr, err := c.searchPage(ctx, term, cat, cursor)
		if err == nil {
			return sr, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("page fetch failed after %d attempts: %w", maxRetries+1, lastErr)
}

// Search returns the complete set of paper identifiers matching term
// under the category's search predicate, following the pagination
// cursor until the server reports zero hits or returns an unchanged
// cursor. An unchanged cursor is the exhaustion signal, not an error.
func (c *Client) Search(ctx context.Context, term string, cat types.Category) (mapset.Set[string], error) {
	if c.Config.TermTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Config.TermTimeout)
		defer cancel()
	}

	ids := mapset.NewThreadUnsafeSet[string]()
	cursor := initialCursor
	for {
		sr, err := c.searchPageWithRetry(ctx, term, cat, cursor)
		if err != nil {
			return nil, fmt.Errorf("searching %q: %w", term, err)
		}

		for _, r := range sr.ResultList.Result {
			ids.Add(r.ID)
		}

		if sr.HitCount == 0 || sr.NextCursorMark == cursor {
			c.papers.Add(int64(sr.HitCount))
			return ids, nil
		}
		cursor = sr.NextCursorMark
	}
}

// Probe reports how many of the given terms have at least one hit,
// using a single first-page request per term.
func (c *Client) Probe(ctx context.Context, terms []string, cat types.Category) (int, error) {
	found := 0
	for _, term := range terms {
		sr, err := c.searchPageWithRetry(ctx, term, cat, initialCursor)
		if err != nil {
			return found, fmt.Errorf("probing %q: %w", term, err)
		}
		if sr.HitCount > 0 {
			found++
		}
	}
	return found, nil
}
