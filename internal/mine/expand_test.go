// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mine

import (
	"strings"
	"testing"

	"github.com/bverhoef/metamine/pkg/types"
)

func TestExpandScenario(t *testing.T) {
	rows := []types.Association{
		{GOTerm: "A", Metabolite: "X", PaperID: "p1"},
	}
	ancestors := map[string][]string{
		"A":    {"Root", "A"},
		"Root": {"Root"},
	}

	expanded, err := Expand(rows, ancestors)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	sortRows(expanded)

	want := []types.Association{
		{GOTerm: "A", Metabolite: "X", PaperID: "p1"},
		{GOTerm: "Root", Metabolite: "X", PaperID: "p1"},
	}
	if len(expanded) != len(want) {
		t.Fatalf("len(expanded) = %d, want %d: %v", len(expanded), len(want), expanded)
	}
	for i := range want {
		if expanded[i] != want[i] {
			t.Errorf("expanded[%d] = %v, want %v", i, expanded[i], want[i])
		}
	}
}

func TestExpandSupersetOfDirect(t *testing.T) {
	rows := []types.Association{
		{GOTerm: "A", Metabolite: "X", PaperID: "p1"},
		{GOTerm: "B", Metabolite: "Y", PaperID: "p2"},
	}
	ancestors := map[string][]string{
		"A": {"Root", "A"},
		"B": {"B"},
	}

	expanded, err := Expand(rows, ancestors)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	for _, direct := range rows {
		found := false
		for _, e := range expanded {
			if e == direct {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("direct row %v missing from expanded table", direct)
		}
	}
}

func TestExpandStaysInCatalogue(t *testing.T) {
	// The ancestor map is built from the allowed catalogue; expansion
	// must never emit a name outside it.
	allowed := map[string]bool{"A": true, "Root": true}
	rows := []types.Association{{GOTerm: "A", Metabolite: "X", PaperID: "p1"}}
	ancestors := map[string][]string{"A": {"Root", "A"}}

	expanded, err := Expand(rows, ancestors)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	for _, e := range expanded {
		if !allowed[e.GOTerm] {
			t.Errorf("expanded row names %q, outside the allowed catalogue", e.GOTerm)
		}
	}
}

func TestExpandMissingChainFails(t *testing.T) {
	rows := []types.Association{{GOTerm: "Drifted", Metabolite: "X", PaperID: "p1"}}

	_, err := Expand(rows, map[string][]string{})
	if err == nil || !strings.Contains(err.Error(), "Drifted") {
		t.Errorf("expected coverage error naming the term, got %v", err)
	}
}

func TestExpandEmptyInput(t *testing.T) {
	expanded, err := Expand(nil, map[string][]string{})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(expanded) != 0 {
		t.Errorf("len(expanded) = %d, want 0", len(expanded))
	}
}
