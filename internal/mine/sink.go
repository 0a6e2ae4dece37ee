// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mine

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/bverhoef/metamine/pkg/types"
)

// tsvWriter returns a csv.Writer configured for tab-separated output.
func tsvWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return cw
}

// WriteTSV writes the association table as tab-separated text with the
// header Gene Ontology, Metabolite, Paper ID, one row per association
// instance.
func WriteTSV(w io.Writer, rows []types.Association) error {
	cw := tsvWriter(w)
	if err := cw.Write([]string{"Gene Ontology", "Metabolite", "Paper ID"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.GOTerm, r.Metabolite, r.PaperID}); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// pairCount aggregates the corroborating-paper count for one
// (GO term, metabolite) pair.
type pairCount struct {
	goTerm     string
	metabolite string
	count      int
}

// WriteCounts writes per-pair evidence counts as tab-separated text,
// ordered by count descending (ties broken by term names) so the
// strongest associations lead the file.
func WriteCounts(w io.Writer, rows []types.Association) error {
	type pair struct{ g, m string }
	counts := make(map[pair]int)
	for _, r := range rows {
		counts[pair{r.GOTerm, r.Metabolite}]++
	}

	sorted := make([]pairCount, 0, len(counts))
	for p, n := range counts {
		sorted = append(sorted, pairCount{goTerm: p.g, metabolite: p.m, count: n})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		if sorted[i].goTerm != sorted[j].goTerm {
			return sorted[i].goTerm < sorted[j].goTerm
		}
		return sorted[i].metabolite < sorted[j].metabolite
	})

	cw := tsvWriter(w)
	if err := cw.Write([]string{"Gene Ontology", "Metabolite", "Count"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, pc := range sorted {
		if err := cw.Write([]string{pc.goTerm, pc.metabolite, strconv.Itoa(pc.count)}); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
