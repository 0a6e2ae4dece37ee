// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bverhoef/metamine/internal/catalog"
	"github.com/bverhoef/metamine/internal/epmc"
	"github.com/bverhoef/metamine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search Europe PMC for one term category",
	Long: `Search runs the Europe PMC query stage for a single category of terms,
without the overlap and expansion stages. Terms come from --terms or, when
omitted, from the category's catalogue file in the data folder.

With --probe only the first result page of each term is fetched and the
number of terms with at least one hit is reported, which is a cheap way to
sanity-check a catalogue before a full mining run.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := miningConfig(cmd)
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	catName, _ := cmd.Flags().GetString("category")
	cat, err := parseCategory(catName)
	if err != nil {
		return err
	}

	terms, err := searchTerms(cmd, cat, cfg.Folder)
	if err != nil {
		return err
	}
	if len(terms) == 0 {
		return fmt.Errorf("no terms to search")
	}

	client := epmc.NewClient(cfg.Search)

	if probe, _ := cmd.Flags().GetBool("probe"); probe {
		found, err := client.Probe(ctx, terms, cat)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d/%d terms have hits\n", found, len(terms))
		return nil
	}

	results := client.SearchAll(ctx, terms, cat, out)
	if err := ctx.Err(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d/%d terms have hits (%d papers seen)\n",
		len(results), len(terms), client.Papers())

	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		if err := epmc.WriteResultsFile(outPath, cat, results, client.Papers()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", outPath)
	}
	return nil
}

func parseCategory(s string) (types.Category, error) {
	switch types.Category(strings.ToLower(s)) {
	case types.CategoryMetabolite:
		return types.CategoryMetabolite, nil
	case types.CategoryGeneOntology:
		return types.CategoryGeneOntology, nil
	default:
		return "", fmt.Errorf("unknown category %q (want metabolite or go)", s)
	}
}

// searchTerms resolves the term list for a category: the --terms flag
// wins, otherwise the category's catalogue file is loaded.
func searchTerms(cmd *cobra.Command, cat types.Category, folder string) ([]string, error) {
	if list, _ := cmd.Flags().GetString("terms"); list != "" {
		var terms []string
		for _, t := range strings.Split(list, ",") {
			if t = strings.TrimSpace(t); t != "" {
				terms = append(terms, t)
			}
		}
		return terms, nil
	}

	switch cat {
	case types.CategoryGeneOntology:
		goCat, err := catalog.LoadGOCatalog(filepath.Join(folder, goCatalogueFile))
		if err != nil {
			return nil, err
		}
		return goCat.Names(), nil
	default:
		return catalog.LoadMetaboliteNames(filepath.Join(folder, metCatalogueFile))
	}
}

func init() {
	searchCmd.Flags().String("category", "metabolite", "term category to search (metabolite or go)")
	searchCmd.Flags().String("terms", "", "comma-separated terms to search instead of the catalogue file")
	searchCmd.Flags().Bool("probe", false, "only check which terms have hits, one page per term")
	searchCmd.Flags().String("out", "", "write the results to a YAML file")

	rootCmd.AddCommand(searchCmd)
}
