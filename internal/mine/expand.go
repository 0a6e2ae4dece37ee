// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mine

import (
	"fmt"

	"github.com/bverhoef/metamine/pkg/types"
)

// Expand replaces each association's GO term with its allowed ancestor
// chain, fanning the row out into one row per chain element. Chains
// include the term itself, so the expanded table is a superset of the
// direct one: direct associations plus the implied ones credited to
// each ancestor. A GO term that has no chain in ancestors means the
// catalogue does not cover the association table; that is reported as
// an error rather than dropped.
func Expand(rows []types.Association, ancestors map[string][]string) ([]types.Association, error) {
	out := make([]types.Association, 0, len(rows))
	for _, r := range rows {
		chain, ok := ancestors[r.GOTerm]
		if !ok {
			return nil, fmt.Errorf("no ancestor chain for GO term %q: allowed catalogue does not cover the association table", r.GOTerm)
		}
		for _, name := range chain {
			out = append(out, types.Association{GOTerm: name, Metabolite: r.Metabolite, PaperID: r.PaperID})
		}
	}
	return out, nil
}
