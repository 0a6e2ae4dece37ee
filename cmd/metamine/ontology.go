// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bverhoef/metamine/internal/catalog"
	"github.com/bverhoef/metamine/internal/quickgo"
)

var ontologyCmd = &cobra.Command{
	Use:   "ontology",
	Short: "Gene Ontology catalogue utilities",
}

var descendantsCmd = &cobra.Command{
	Use:   "descendants",
	Short: "Build the allowed GO catalogue from a root term",
	Long: `Descendants queries QuickGO for every descendant of the root term,
resolves their display names, and writes the id,name catalogue file the
mining pipeline reads. The default root is biological_process.`,
	RunE: runDescendants,
}

func runDescendants(cmd *cobra.Command, args []string) error {
	cfg := miningConfig(cmd)
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	root := cfg.Ontology.RootID
	if flagRoot, _ := cmd.Flags().GetString("root"); flagRoot != "" {
		root = flagRoot
	}

	client := quickgo.NewClient(cfg.Ontology)

	ids, err := client.Descendants(ctx, root)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s has %d descendants\n", root, ids.Cardinality())

	idList := ids.ToSlice()
	sort.Strings(idList)
	names, err := client.Names(ctx, idList)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.Folder, goCatalogueFile)
	if err := catalog.WriteGOCatalog(path, names); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d terms to %s\n", len(names), path)
	return nil
}

func init() {
	descendantsCmd.Flags().String("root", "", "root GO identifier to expand (default from config)")

	ontologyCmd.AddCommand(descendantsCmd)
	rootCmd.AddCommand(ontologyCmd)
}
