// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quickgo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/bverhoef/metamine/internal/catalog"
	"github.com/bverhoef/metamine/pkg/types"
)

func testCatalog(t *testing.T, names map[string]string) *catalog.GOCatalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Go_names.csv")
	if err := catalog.WriteGOCatalog(path, names); err != nil {
		t.Fatal(err)
	}
	cat, err := catalog.LoadGOCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func overrideBase(t *testing.T, ts *httptest.Server) {
	t.Helper()
	old := apiBase
	apiBase = ts.URL
	t.Cleanup(func() { apiBase = old })
}

func TestDescendantsIncludesSelf(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/descendants") {
			t.Errorf("path = %q, want descendants endpoint", r.URL.Path)
		}
		fmt.Fprint(w, `{"results":[{"id":"GO:0008150","descendants":["GO:0006096","GO:0006915","GO:0006096"]}]}`)
	}))
	defer ts.Close()
	overrideBase(t, ts)

	c := NewClient(types.OntologyConfig{})
	c.HTTP = ts.Client()

	set, err := c.Descendants(context.Background(), "GO:0008150")
	if err != nil {
		t.Fatalf("Descendants: %v", err)
	}
	if set.Cardinality() != 3 {
		t.Errorf("Cardinality = %d, want 3 (two descendants + self)", set.Cardinality())
	}
	if !set.Contains("GO:0008150") {
		t.Error("descendant set must include the concept itself")
	}
}

func TestNamesBatching(t *testing.T) {
	var calls int32
	var batchSizes []int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		ids := strings.Split(strings.TrimPrefix(r.URL.Path, "/"), ",")
		batchSizes = append(batchSizes, len(ids))

		var parts []string
		for _, id := range ids {
			parts = append(parts, fmt.Sprintf(`{"id":%q,"name":"name-%s"}`, id, id))
		}
		fmt.Fprintf(w, `{"results":[%s]}`, strings.Join(parts, ","))
	}))
	defer ts.Close()
	overrideBase(t, ts)

	ids := make([]string, 120)
	for i := range ids {
		ids[i] = fmt.Sprintf("GO:%07d", i)
	}

	c := NewClient(types.OntologyConfig{})
	c.HTTP = ts.Client()

	names, err := c.Names(context.Background(), ids)
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if !reflect.DeepEqual(batchSizes, []int{50, 50, 20}) {
		t.Errorf("batch sizes = %v, want [50 50 20]", batchSizes)
	}
	if len(names) != 120 {
		t.Errorf("len(names) = %d, want 120 (no key collisions)", len(names))
	}
	if id, ok := names["name-GO:0000003"]; !ok || id != "GO:0000003" {
		t.Errorf("names[name-GO:0000003] = %q, %v", id, ok)
	}
}

func TestAncestorsFiltersToCatalogue(t *testing.T) {
	cat := testCatalog(t, map[string]string{
		"glycolytic process": "GO:0006096",
		"biological_process": "GO:0008150",
	})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// GO:0099999 is outside the catalogue and must be dropped.
		fmt.Fprint(w, `{"results":[{"id":"GO:0006096","ancestors":["GO:0008150","GO:0099999"]}]}`)
	}))
	defer ts.Close()
	overrideBase(t, ts)

	c := NewClient(types.OntologyConfig{})
	c.HTTP = ts.Client()

	chains, err := c.Ancestors(context.Background(), []string{"glycolytic process", "glycolytic process"}, cat)
	if err != nil {
		t.Fatalf("Ancestors: %v", err)
	}
	want := map[string][]string{
		"glycolytic process": {"biological_process", "glycolytic process"},
	}
	if !reflect.DeepEqual(chains, want) {
		t.Errorf("chains = %v, want %v", chains, want)
	}
}

func TestAncestorsUnknownNameFails(t *testing.T) {
	cat := testCatalog(t, map[string]string{"biological_process": "GO:0008150"})

	c := NewClient(types.OntologyConfig{})
	_, err := c.Ancestors(context.Background(), []string{"not in catalogue"}, cat)
	if err == nil || !strings.Contains(err.Error(), "not covered") {
		t.Errorf("expected catalogue coverage error, got %v", err)
	}
}

func TestGetFailsLoudly(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed json", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "<html>not json</html>")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()
			overrideBase(t, ts)

			c := NewClient(types.OntologyConfig{})
			c.HTTP = ts.Client()

			if _, err := c.Names(context.Background(), []string{"GO:0008150"}); err == nil {
				t.Error("expected error")
			}
		})
	}
}
