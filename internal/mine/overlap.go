// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mine turns per-term search results into an association table:
// cross-set overlap between the GO and metabolite paper sets, ancestor
// expansion through the GO hierarchy, and the delimited output sinks.
package mine

import (
	"fmt"
	"io"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/bverhoef/metamine/pkg/types"
)

// Overlap computes the full cross-join co-occurrence table: for every
// (GO term, metabolite term) pair, one Association per paper identifier
// in the intersection of the two terms' result sets. Pairs with no
// shared paper contribute no rows. Intersect walks the smaller of the
// two sets, so each pair costs near-linear time in the smaller set.
func Overlap(gos, mets map[string]mapset.Set[string], w io.Writer) []types.Association {
	total := len(gos) * len(mets)
	var rows []types.Association

	done := 0
	for g, gids := range gos {
		for m, mids := range mets {
			shared := gids.Intersect(mids)
			shared.Each(func(id string) bool {
				rows = append(rows, types.Association{GOTerm: g, Metabolite: m, PaperID: id})
				return false
			})
		}
		done += len(mets)
		if done%100000 < len(mets) || done == total {
			fmt.Fprintf(w, "compared %d/%d pairs, %d associations\n", done, total, len(rows))
		}
	}
	return rows
}
