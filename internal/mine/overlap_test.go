// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mine

import (
	"bytes"
	"sort"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/bverhoef/metamine/pkg/types"
)

func sets(m map[string][]string) map[string]mapset.Set[string] {
	out := make(map[string]mapset.Set[string], len(m))
	for k, ids := range m {
		out[k] = mapset.NewThreadUnsafeSet(ids...)
	}
	return out
}

// sortRows orders associations for order-independent comparison.
func sortRows(rows []types.Association) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.GOTerm != b.GOTerm {
			return a.GOTerm < b.GOTerm
		}
		if a.Metabolite != b.Metabolite {
			return a.Metabolite < b.Metabolite
		}
		return a.PaperID < b.PaperID
	})
}

func TestOverlapScenario(t *testing.T) {
	gos := sets(map[string][]string{
		"A": {"p1", "p2"},
		"B": {"p3"},
	})
	mets := sets(map[string][]string{
		"X": {"p1"},
		"Y": {"p2", "p3"},
	})

	var buf bytes.Buffer
	rows := Overlap(gos, mets, &buf)
	sortRows(rows)

	want := []types.Association{
		{GOTerm: "A", Metabolite: "X", PaperID: "p1"},
		{GOTerm: "A", Metabolite: "Y", PaperID: "p2"},
		{GOTerm: "B", Metabolite: "Y", PaperID: "p3"},
	}
	if len(rows) != len(want) {
		t.Fatalf("len(rows) = %d, want %d: %v", len(rows), len(want), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("rows[%d] = %v, want %v", i, rows[i], want[i])
		}
	}
}

func TestOverlapOnlyIntersection(t *testing.T) {
	gos := sets(map[string][]string{"A": {"p1", "p2", "p3"}})
	mets := sets(map[string][]string{"X": {"p2", "p9"}})

	var buf bytes.Buffer
	rows := Overlap(gos, mets, &buf)

	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].PaperID != "p2" {
		t.Errorf("PaperID = %q, want p2", rows[0].PaperID)
	}
}

func TestOverlapDisjointSetsEmitNothing(t *testing.T) {
	gos := sets(map[string][]string{"A": {"p1"}})
	mets := sets(map[string][]string{"X": {"p2"}})

	var buf bytes.Buffer
	if rows := Overlap(gos, mets, &buf); len(rows) != 0 {
		t.Errorf("rows = %v, want none", rows)
	}
}

func TestOverlapIdempotent(t *testing.T) {
	gos := sets(map[string][]string{"A": {"p1", "p2"}, "B": {"p2", "p3"}})
	mets := sets(map[string][]string{"X": {"p1", "p3"}, "Y": {"p2"}})

	var buf bytes.Buffer
	first := Overlap(gos, mets, &buf)
	second := Overlap(gos, mets, &buf)

	sortRows(first)
	sortRows(second)
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestOverlapRoundTripSubset(t *testing.T) {
	// Reconstructing a GO term's paper set from the output must yield a
	// subset of the true set.
	gos := sets(map[string][]string{"A": {"p1", "p2", "p3"}})
	mets := sets(map[string][]string{"X": {"p1"}, "Y": {"p2", "p9"}})

	var buf bytes.Buffer
	rows := Overlap(gos, mets, &buf)

	reconstructed := mapset.NewThreadUnsafeSet[string]()
	for _, r := range rows {
		if r.GOTerm == "A" {
			reconstructed.Add(r.PaperID)
		}
	}
	if !reconstructed.IsSubset(gos["A"]) {
		t.Errorf("reconstructed %v is not a subset of %v", reconstructed, gos["A"])
	}
}
