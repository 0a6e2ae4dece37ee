// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/cobra"

	"github.com/bverhoef/metamine/internal/catalog"
	"github.com/bverhoef/metamine/internal/checkpoint"
	"github.com/bverhoef/metamine/internal/epmc"
	"github.com/bverhoef/metamine/internal/mine"
	"github.com/bverhoef/metamine/internal/quickgo"
	"github.com/bverhoef/metamine/pkg/types"
)

const (
	goCatalogueFile  = "Go_names.csv"
	metCatalogueFile = "Metabolite_name.csv"
	outputFile       = "textmining_all.tsv"
	countsFile       = "textmining_counts.tsv"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Run the full co-occurrence mining pipeline",
	Long: `Mine searches Europe PMC for every GO term and metabolite name in the
catalogues, computes paper-identifier overlap between the two categories,
expands each direct association through the GO ancestor hierarchy, and
writes the expanded association table plus per-pair evidence counts.

Completed category searches are checkpointed to a local SQLite database;
with --resume a checkpointed category is reloaded instead of re-searched.`,
	RunE: runMine,
}

func runMine(cmd *cobra.Command, args []string) error {
	cfg := miningConfig(cmd)
	resume, _ := cmd.Flags().GetBool("resume")
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	goCat, err := catalog.LoadGOCatalog(filepath.Join(cfg.Folder, goCatalogueFile))
	if err != nil {
		return err
	}
	metNames, err := catalog.LoadMetaboliteNames(filepath.Join(cfg.Folder, metCatalogueFile))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Loaded %d GO terms and %d metabolite names\n", goCat.Len(), len(metNames))

	store, err := checkpoint.NewStore(cfg.Folder)
	if err != nil {
		return err
	}
	defer store.Close()

	client := epmc.NewClient(cfg.Search)

	fmt.Fprintln(out, "Mining GO terms")
	gos, err := searchCategory(ctx, client, store, types.CategoryGeneOntology, goCat.Names(), resume, out)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Mining metabolites")
	mets, err := searchCategory(ctx, client, store, types.CategoryMetabolite, metNames, resume, out)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Finding co-occurrences")
	direct := mine.Overlap(gos, mets, out)
	fmt.Fprintf(out, "%d direct associations\n", len(direct))

	expanded, err := expandAssociations(ctx, cfg.Ontology, direct, goCat)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d associations after ancestor expansion\n", len(expanded))

	if err := writeTable(filepath.Join(cfg.Folder, outputFile), expanded, mine.WriteTSV); err != nil {
		return err
	}
	if err := writeTable(filepath.Join(cfg.Folder, countsFile), expanded, mine.WriteCounts); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %s and %s (%d papers seen)\n",
		filepath.Join(cfg.Folder, outputFile), filepath.Join(cfg.Folder, countsFile), client.Papers())
	return nil
}

// searchCategory runs the dispatcher for one category, reusing a
// checkpoint when --resume is set and saving one afterwards. A failed
// checkpoint save is a warning, not a run failure.
func searchCategory(ctx context.Context, client *epmc.Client, store *checkpoint.Store, cat types.Category, terms []string, resume bool, w io.Writer) (map[string]mapset.Set[string], error) {
	if resume {
		results, ok, err := store.Load(ctx, cat)
		if err != nil {
			return nil, err
		}
		if ok {
			fmt.Fprintf(w, "resumed %s from checkpoint (%d terms with hits)\n", cat, len(results))
			return results, nil
		}
	}

	results := client.SearchAll(ctx, terms, cat, w)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := store.Save(ctx, cat, results); err != nil {
		fmt.Fprintf(w, "warning: checkpoint save failed: %v\n", err)
	}
	return results, nil
}

// expandAssociations looks up the allowed ancestor chains for every GO
// term in the direct table and fans each row out across its chain.
func expandAssociations(ctx context.Context, cfg types.OntologyConfig, direct []types.Association, goCat *catalog.GOCatalog) ([]types.Association, error) {
	if len(direct) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool)
	var goTerms []string
	for _, r := range direct {
		if !seen[r.GOTerm] {
			seen[r.GOTerm] = true
			goTerms = append(goTerms, r.GOTerm)
		}
	}

	qg := quickgo.NewClient(cfg)
	chains, err := qg.Ancestors(ctx, goTerms, goCat)
	if err != nil {
		return nil, err
	}
	return mine.Expand(direct, chains)
}

func writeTable(path string, rows []types.Association, write func(io.Writer, []types.Association) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func init() {
	mineCmd.Flags().Bool("resume", false, "reuse checkpointed search results where available")

	rootCmd.AddCommand(mineCmd)
}
