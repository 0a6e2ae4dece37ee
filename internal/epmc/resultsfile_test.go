// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package epmc

import (
	"path/filepath"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/bverhoef/metamine/pkg/types"
)

func TestResultsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go_results.yaml")

	in := map[string]mapset.Set[string]{
		"glycolysis": mapset.NewThreadUnsafeSet("p2", "p1"),
		"apoptosis":  mapset.NewThreadUnsafeSet("p3"),
	}
	if err := WriteResultsFile(path, types.CategoryGeneOntology, in, 3); err != nil {
		t.Fatalf("WriteResultsFile: %v", err)
	}

	rf, err := ReadResultsFile(path)
	if err != nil {
		t.Fatalf("ReadResultsFile: %v", err)
	}
	if rf.Category != types.CategoryGeneOntology {
		t.Errorf("Category = %q", rf.Category)
	}
	if rf.Summary.Terms != 2 || rf.Summary.Papers != 3 {
		t.Errorf("Summary = %+v, want 2 terms, 3 papers", rf.Summary)
	}

	sets := rf.Sets()
	if !sets["glycolysis"].Equal(in["glycolysis"]) {
		t.Errorf("glycolysis = %v, want %v", sets["glycolysis"], in["glycolysis"])
	}
	if !sets["apoptosis"].Equal(in["apoptosis"]) {
		t.Errorf("apoptosis = %v, want %v", sets["apoptosis"], in["apoptosis"])
	}
}

func TestReadResultsFileMissing(t *testing.T) {
	if _, err := ReadResultsFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
